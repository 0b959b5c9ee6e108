package commands

import (
	"context"
	"fmt"

	"launchtree/internal/application"
	"launchtree/internal/domain"
)

// AddNodeResult contains the result of adding a node
type AddNodeResult struct {
	Node     *domain.Node
	ParentID string
	Row      int
	Message  string
}

// AddNodeCommand creates a node next to, or inside, the selected node
type AddNodeCommand struct {
	session    *application.Session
	SelectedID string
	Type       string
	Name       string
	Target     string
}

// NewAddNodeCommand creates a new AddNodeCommand
func NewAddNodeCommand(session *application.Session, selectedID, nodeType, name, target string) *AddNodeCommand {
	return &AddNodeCommand{
		session:    session,
		SelectedID: selectedID,
		Type:       nodeType,
		Name:       name,
		Target:     target,
	}
}

// Validate checks if the add operation is valid
func (c *AddNodeCommand) Validate() error {
	if err := application.ValidateRequired("name", c.Name); err != nil {
		return err
	}

	if _, ok := domain.ParseNodeType(c.Type); !ok {
		return &application.ValidationError{
			Field:   "type",
			Message: fmt.Sprintf("unsupported type: %s", c.Type),
		}
	}

	return nil
}

// Execute runs the add node command
func (c *AddNodeCommand) Execute(ctx context.Context) (*AddNodeResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	nodeType, _ := domain.ParseNodeType(c.Type)
	node, err := application.ValidateNewNode(c.Name, nodeType, c.Target)
	if err != nil {
		return nil, err
	}

	root := c.session.Root()
	parent, row := domain.ResolveInsertAnchor(root, c.SelectedID)
	if !domain.InsertRelativeToSelection(root, c.SelectedID, node) {
		return nil, &application.MoveError{
			SourceID: node.ID,
			DestID:   parent.ID,
			Reason:   "destination is not a group",
		}
	}

	if err := c.session.SaveTree(); err != nil {
		return nil, err
	}

	return &AddNodeResult{
		Node:     node,
		ParentID: parent.ID,
		Row:      row,
		Message:  fmt.Sprintf("Added %s %q under %s", node.Type, node.Name, domain.DisplayName(parent)),
	}, nil
}
