package commands

import (
	"context"
	"fmt"

	"launchtree/internal/application"
	"launchtree/internal/domain"
)

// MoveNodeResult contains the result of moving a node
type MoveNodeResult struct {
	Node     *domain.Node
	ParentID string
	Row      int
	Message  string
}

// MoveNodeCommand reparents or reorders a node
type MoveNodeCommand struct {
	session      *application.Session
	SourceID     string
	DestParentID string
	DestRow      int
}

// NewMoveNodeCommand creates a new MoveNodeCommand. destRow counts
// positions in the destination before the source is detached.
func NewMoveNodeCommand(session *application.Session, sourceID, destParentID string, destRow int) *MoveNodeCommand {
	return &MoveNodeCommand{
		session:      session,
		SourceID:     sourceID,
		DestParentID: destParentID,
		DestRow:      destRow,
	}
}

// Validate checks if the move operation is valid
func (c *MoveNodeCommand) Validate() error {
	if err := application.ValidateRequired("sourceID", c.SourceID); err != nil {
		return err
	}
	return application.ValidateRequired("parentID", c.DestParentID)
}

// Execute runs the move command
func (c *MoveNodeCommand) Execute(ctx context.Context) (*MoveNodeResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	root := c.session.Root()
	if !domain.MoveNode(root, c.SourceID, c.DestParentID, c.DestRow) {
		return nil, &application.MoveError{
			SourceID: c.SourceID,
			DestID:   c.DestParentID,
			Reason:   ExplainMoveRejection(root, c.SourceID, c.DestParentID),
		}
	}

	if err := c.session.SaveTree(); err != nil {
		return nil, err
	}

	ref, _ := domain.FindNodeRef(root, c.SourceID)
	return &MoveNodeResult{
		Node:     ref.Node,
		ParentID: ref.Parent.ID,
		Row:      ref.Index,
		Message:  fmt.Sprintf("Moved %q to %s", domain.DisplayName(ref.Node), domain.DisplayName(ref.Parent)),
	}, nil
}

// ExplainMoveRejection names the first check a move fails, in the order
// MoveNode applies them.
func ExplainMoveRejection(root *domain.Node, sourceID, destParentID string) string {
	srcRef, ok := domain.FindNodeRef(root, sourceID)
	if !ok {
		return fmt.Sprintf("source %s not found", sourceID)
	}
	dstRef, ok := domain.FindNodeRef(root, destParentID)
	if !ok {
		return fmt.Sprintf("destination %s not found", destParentID)
	}

	switch {
	case srcRef.Node.ID == root.ID:
		return "the root cannot be moved"
	case srcRef.Node.ID == dstRef.Node.ID:
		return "a node cannot become its own parent"
	case domain.ContainsID(srcRef.Node, dstRef.Node.ID):
		return "destination is inside the source"
	case dstRef.Node.Type != domain.NodeTypeGroup:
		return "destination is not a group"
	case srcRef.Parent == nil:
		return "source has no parent"
	}
	return "move rejected"
}

// ReorderResult contains the result of shifting a node among its siblings
type ReorderResult struct {
	Node    *domain.Node
	Moved   bool
	Message string
}

// ReorderCommand shifts a node up or down within its own parent
type ReorderCommand struct {
	session *application.Session
	NodeID  string
	Delta   int
}

// NewReorderCommand creates a new ReorderCommand. Negative deltas move
// the node towards the first sibling.
func NewReorderCommand(session *application.Session, nodeID string, delta int) *ReorderCommand {
	return &ReorderCommand{
		session: session,
		NodeID:  nodeID,
		Delta:   delta,
	}
}

// Execute runs the reorder command. Shifting past either end is a no-op.
func (c *ReorderCommand) Execute(ctx context.Context) (*ReorderResult, error) {
	if err := application.ValidateRequired("nodeID", c.NodeID); err != nil {
		return nil, err
	}

	ref, err := c.session.Find(c.NodeID)
	if err != nil {
		return nil, err
	}
	if ref.Parent == nil {
		return nil, &application.MoveError{
			SourceID: c.NodeID,
			DestID:   c.NodeID,
			Reason:   "the root cannot be moved",
		}
	}

	target := ref.Index + c.Delta
	if c.Delta == 0 || target < 0 || target >= len(ref.Parent.Children) {
		return &ReorderResult{Node: ref.Node, Message: "Already at the edge"}, nil
	}

	// MoveNode counts rows before detaching, so a later slot is one further
	destRow := target
	if c.Delta > 0 {
		destRow++
	}

	if !domain.MoveNode(c.session.Root(), c.NodeID, ref.Parent.ID, destRow) {
		return nil, &application.MoveError{
			SourceID: c.NodeID,
			DestID:   ref.Parent.ID,
			Reason:   ExplainMoveRejection(c.session.Root(), c.NodeID, ref.Parent.ID),
		}
	}

	if err := c.session.SaveTree(); err != nil {
		return nil, err
	}

	return &ReorderResult{
		Node:    ref.Node,
		Moved:   true,
		Message: fmt.Sprintf("Moved %q to position %d", domain.DisplayName(ref.Node), target+1),
	}, nil
}
