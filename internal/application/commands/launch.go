package commands

import (
	"context"
	"errors"
	"fmt"

	"launchtree/internal/application"
	"launchtree/internal/domain"
	"launchtree/internal/ports"
)

// LaunchResult contains the result of a launch
type LaunchResult struct {
	Node    *domain.Node
	Message string
}

// LaunchCommand opens a path or url node through the OS
type LaunchCommand struct {
	session  *application.Session
	launcher ports.Launcher
	history  ports.LaunchHistory
	NodeID   string
}

// NewLaunchCommand creates a new LaunchCommand. history may be nil.
func NewLaunchCommand(session *application.Session, launcher ports.Launcher, history ports.LaunchHistory, nodeID string) *LaunchCommand {
	return &LaunchCommand{
		session:  session,
		launcher: launcher,
		history:  history,
		NodeID:   nodeID,
	}
}

// Validate checks if the launch operation is valid
func (c *LaunchCommand) Validate() error {
	return application.ValidateRequired("nodeID", c.NodeID)
}

// Execute records the attempt in the recent list, then opens the target.
// Recency is kept even when opening fails.
func (c *LaunchCommand) Execute(ctx context.Context) (*LaunchResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	ref, err := c.session.Find(c.NodeID)
	if err != nil {
		return nil, err
	}
	node := ref.Node
	if !node.Type.IsLaunchable() {
		return nil, &application.LaunchError{NodeID: node.ID, Err: application.ErrNotLaunchable}
	}

	logger := c.session.Logger()
	now := c.session.Now()

	if err := c.session.SetState(domain.UpdateRecent(c.session.State(), node.ID, now)); err != nil {
		logger.Warn("failed to save recent list", "node", node.ID, "error", err)
	}

	openErr := c.launcher.Open(node)
	if openErr != nil {
		var launchErr *application.LaunchError
		if !errors.As(openErr, &launchErr) {
			openErr = &application.LaunchError{NodeID: node.ID, Target: node.Target, Err: openErr}
		}
	}

	if c.history != nil {
		rec := domain.LaunchRecord{
			NodeID: node.ID,
			Name:   node.Name,
			Type:   node.Type,
			Target: node.Target,
			At:     now,
			OK:     openErr == nil,
		}
		if openErr != nil {
			rec.Error = openErr.Error()
		}
		if err := c.history.Record(ctx, rec); err != nil {
			logger.Warn("failed to record launch", "node", node.ID, "error", err)
		}
	}

	if openErr != nil {
		logger.Error("launch failed", "node", node.ID, "target", node.Target, "error", openErr)
		return nil, openErr
	}

	logger.Info("launched", "node", node.ID, "type", node.Type, "target", node.Target)
	return &LaunchResult{
		Node:    node,
		Message: fmt.Sprintf("Opened %s", node.Target),
	}, nil
}

// ListHistoryCommand lists recorded launch attempts, newest first
type ListHistoryCommand struct {
	history ports.LaunchHistory
	Limit   int
}

// NewListHistoryCommand creates a new ListHistoryCommand
func NewListHistoryCommand(history ports.LaunchHistory, limit int) *ListHistoryCommand {
	return &ListHistoryCommand{
		history: history,
		Limit:   limit,
	}
}

// Execute runs the list history command
func (c *ListHistoryCommand) Execute(ctx context.Context) ([]domain.LaunchRecord, error) {
	limit := c.Limit
	if limit <= 0 {
		limit = 50
	}
	records, err := c.history.List(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list history: %w", err)
	}
	return records, nil
}
