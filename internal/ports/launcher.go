package ports

import (
	"context"

	"launchtree/internal/domain"
)

// Launcher opens a validated path or url node with the operating system
type Launcher interface {
	// Open hands the node's target to the OS. Errors wrap
	// application.ErrInvalidTarget or application.ErrUnsupportedPlatform
	// when the failure is known.
	Open(node *domain.Node) error
}

// LaunchHistory records launch attempts
type LaunchHistory interface {
	Record(ctx context.Context, rec domain.LaunchRecord) error
	List(ctx context.Context, limit int) ([]domain.LaunchRecord, error)
	Close() error
}
