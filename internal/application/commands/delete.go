package commands

import (
	"context"
	"fmt"

	"launchtree/internal/application"
	"launchtree/internal/domain"
)

// DeleteResult contains the result of a delete operation
type DeleteResult struct {
	DeletedID string
	Removed   int
	Message   string
}

// DeleteCommand detaches a node, and its subtree, from the tree.
// Favorites and recent entries pointing at removed ids are left in place;
// readers skip them.
type DeleteCommand struct {
	session *application.Session
	ID      string
}

// NewDeleteCommand creates a new DeleteCommand
func NewDeleteCommand(session *application.Session, id string) *DeleteCommand {
	return &DeleteCommand{
		session: session,
		ID:      id,
	}
}

// Validate checks if the delete operation is valid
func (c *DeleteCommand) Validate() error {
	if c.ID == "" {
		return &application.ValidationError{
			Field:   "id",
			Message: "ID is required",
		}
	}

	if c.ID == domain.RootID {
		return &application.ValidationError{
			Field:   "id",
			Message: "cannot delete the root",
		}
	}

	return nil
}

// Execute runs the delete command
func (c *DeleteCommand) Execute(ctx context.Context) (*DeleteResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	removed, ok := domain.RemoveNode(c.session.Root(), c.ID)
	if !ok {
		return nil, fmt.Errorf("failed to delete %s: %w", c.ID, application.ErrNotFound)
	}

	if err := c.session.SaveTree(); err != nil {
		return nil, err
	}

	count := domain.Count(removed)
	msg := fmt.Sprintf("Deleted %q", domain.DisplayName(removed))
	if count > 1 {
		msg = fmt.Sprintf("Deleted %q and %d nested nodes", domain.DisplayName(removed), count-1)
	}

	return &DeleteResult{
		DeletedID: c.ID,
		Removed:   count,
		Message:   msg,
	}, nil
}
