package commands

import (
	"context"
	"fmt"
	"strings"

	"launchtree/internal/application"
	"launchtree/internal/domain"
)

// EditNodeResult contains the result of editing a node
type EditNodeResult struct {
	Node            *domain.Node
	FavoriteDropped bool
	Message         string
}

// EditNodeCommand changes a node's name, type or target
type EditNodeCommand struct {
	session *application.Session
	NodeID  string
	Update  application.NodeUpdate
}

// NewEditNodeCommand creates a new EditNodeCommand
func NewEditNodeCommand(session *application.Session, nodeID string, update application.NodeUpdate) *EditNodeCommand {
	return &EditNodeCommand{
		session: session,
		NodeID:  nodeID,
		Update:  update,
	}
}

// Validate checks if the edit operation is valid
func (c *EditNodeCommand) Validate() error {
	if err := application.ValidateRequired("nodeID", c.NodeID); err != nil {
		return err
	}

	if c.Update.Name == nil && c.Update.Type == nil && c.Update.Target == nil {
		return &application.ValidationError{
			Field:   "update",
			Message: "nothing to change",
		}
	}

	if c.NodeID == domain.RootID && c.Update.Type != nil && strings.TrimSpace(*c.Update.Type) != string(domain.NodeTypeGroup) {
		return &application.ValidationError{
			Field:   "type",
			Message: "root must stay a group",
		}
	}

	return nil
}

// Execute runs the edit node command. A node that stops being launchable
// also stops being a favorite.
func (c *EditNodeCommand) Execute(ctx context.Context) (*EditNodeResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	ref, err := c.session.Find(c.NodeID)
	if err != nil {
		return nil, err
	}

	if err := application.ApplyNodeUpdate(ref.Node, c.Update); err != nil {
		return nil, err
	}

	if err := c.session.SaveTree(); err != nil {
		return nil, err
	}

	result := &EditNodeResult{
		Node:    ref.Node,
		Message: fmt.Sprintf("Updated %q", domain.DisplayName(ref.Node)),
	}

	if !ref.Node.Type.IsLaunchable() && c.session.State().IsFavorite(ref.Node.ID) {
		if err := c.session.UpdateState(func(s *domain.UserState) {
			s.SetFavorite(ref.Node.ID, false)
		}); err != nil {
			return nil, err
		}
		result.FavoriteDropped = true
	}

	return result, nil
}
