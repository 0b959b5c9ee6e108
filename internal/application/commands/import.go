package commands

import (
	"context"
	"fmt"

	"launchtree/internal/application"
	"launchtree/internal/domain"
	"launchtree/internal/ports"
)

// ImportDropResult contains the nodes created from dropped values
type ImportDropResult struct {
	Nodes   []*domain.Node
	Message string
}

// ImportDropCommand turns dropped paths and URLs into nodes at the selection
type ImportDropCommand struct {
	session    *application.Session
	importer   ports.DropImporter
	SelectedID string
	Values     []string
}

// NewImportDropCommand creates a new ImportDropCommand
func NewImportDropCommand(session *application.Session, importer ports.DropImporter, selectedID string, values []string) *ImportDropCommand {
	return &ImportDropCommand{
		session:    session,
		importer:   importer,
		SelectedID: selectedID,
		Values:     values,
	}
}

// Execute runs the import command. Entries keep their input order: into a
// selected group they are appended, after a selected leaf each one follows
// the previous.
func (c *ImportDropCommand) Execute(ctx context.Context) (*ImportDropResult, error) {
	entries := c.importer.BuildDropEntries(c.Values)
	if len(entries) == 0 {
		return nil, &application.ValidationError{
			Field:   "values",
			Message: "nothing to import",
		}
	}

	root := c.session.Root()
	anchor := c.SelectedID
	chain := false
	if ref, ok := domain.FindNodeRef(root, anchor); ok && ref.Node.Type != domain.NodeTypeGroup {
		chain = true
	}

	nodes := make([]*domain.Node, 0, len(entries))
	for _, entry := range entries {
		node := entry.Node()
		if !domain.InsertRelativeToSelection(root, anchor, node) {
			continue
		}
		nodes = append(nodes, node)
		if chain {
			anchor = node.ID
		}
	}

	if len(nodes) == 0 {
		return nil, &application.MoveError{
			SourceID: "drop",
			DestID:   c.SelectedID,
			Reason:   "destination is not a group",
		}
	}

	if err := c.session.SaveTree(); err != nil {
		return nil, err
	}

	return &ImportDropResult{
		Nodes:   nodes,
		Message: fmt.Sprintf("Imported %d item(s)", len(nodes)),
	}, nil
}
