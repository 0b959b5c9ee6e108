package commands

import (
	"context"
	"fmt"

	"launchtree/internal/application"
	"launchtree/internal/domain"
)

// ListViewResult is what a view mode shows. In ViewAll, Visible selects
// nodes of the tree; in the flat modes, Nodes is the list to display.
type ListViewResult struct {
	Mode    domain.ViewMode
	Visible domain.IDSet
	Nodes   []*domain.Node
}

// ListViewCommand lists the nodes of a view mode filtered by a query
type ListViewCommand struct {
	session *application.Session
	// Mode overrides the persisted view mode when set
	Mode  domain.ViewMode
	Query string
}

// NewListViewCommand creates a new ListViewCommand
func NewListViewCommand(session *application.Session, mode domain.ViewMode, query string) *ListViewCommand {
	return &ListViewCommand{
		session: session,
		Mode:    mode,
		Query:   query,
	}
}

// Execute runs the list view command
func (c *ListViewCommand) Execute(ctx context.Context) (*ListViewResult, error) {
	mode := c.Mode
	if mode == "" {
		mode = c.session.State().ViewMode()
	}

	root := c.session.Root()
	result := &ListViewResult{Mode: mode}

	switch mode {
	case domain.ViewAll:
		result.Visible = domain.ComputeVisibleIDs(root, c.Query)
	case domain.ViewFavorites:
		result.Nodes = leavesOnly(domain.FavoriteNodes(root, c.session.State(), c.Query))
	case domain.ViewRecent:
		result.Nodes = leavesOnly(domain.RecentNodes(root, c.session.State(), c.Query))
	default:
		return nil, &application.ValidationError{
			Field:   "mode",
			Message: fmt.Sprintf("unknown view mode: %s", mode),
		}
	}

	return result, nil
}

// leavesOnly keeps path and url nodes; an edit may have turned a favorite into a group
func leavesOnly(nodes []*domain.Node) []*domain.Node {
	out := nodes[:0]
	for _, n := range nodes {
		if n.Type.IsLaunchable() {
			out = append(out, n)
		}
	}
	return out
}

// SetViewModeCommand persists the chosen view mode
type SetViewModeCommand struct {
	session *application.Session
	Mode    string
}

// NewSetViewModeCommand creates a new SetViewModeCommand
func NewSetViewModeCommand(session *application.Session, mode string) *SetViewModeCommand {
	return &SetViewModeCommand{
		session: session,
		Mode:    mode,
	}
}

// Validate checks if the view mode is known
func (c *SetViewModeCommand) Validate() error {
	if _, ok := domain.ParseViewMode(c.Mode); !ok {
		return &application.ValidationError{
			Field:   "mode",
			Message: fmt.Sprintf("unknown view mode: %s", c.Mode),
		}
	}
	return nil
}

// Execute runs the set view mode command
func (c *SetViewModeCommand) Execute(ctx context.Context) (domain.ViewMode, error) {
	if err := c.Validate(); err != nil {
		return "", err
	}

	mode, _ := domain.ParseViewMode(c.Mode)
	if err := c.session.UpdateState(func(s *domain.UserState) {
		s.UI.ViewMode = mode
	}); err != nil {
		return "", err
	}
	return mode, nil
}
