package application

import (
	"errors"
	"fmt"
)

// Sentinel errors for common conditions
var (
	ErrNotFound            = errors.New("not found")
	ErrInvalidOperation    = errors.New("invalid operation")
	ErrMissingTarget       = errors.New("missing target")
	ErrInvalidTarget       = errors.New("invalid target")
	ErrUnsupportedPlatform = errors.New("unsupported platform")
	ErrNotLaunchable       = errors.New("node is not launchable")
)

// ValidationError represents a validation failure with details
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// MoveError represents a rejected move or insert
type MoveError struct {
	SourceID string
	DestID   string
	Reason   string
}

func (e *MoveError) Error() string {
	return fmt.Sprintf("cannot move %s to %s: %s", e.SourceID, e.DestID, e.Reason)
}

func (e *MoveError) Is(target error) bool {
	return target == ErrInvalidOperation
}

// LaunchError reports a failed attempt to open a node's target
type LaunchError struct {
	NodeID string
	Target string
	Err    error
}

func (e *LaunchError) Error() string {
	if e.Target == "" {
		return fmt.Sprintf("cannot launch %s: %v", e.NodeID, e.Err)
	}
	return fmt.Sprintf("cannot launch %s (%s): %v", e.NodeID, e.Target, e.Err)
}

func (e *LaunchError) Unwrap() error {
	return e.Err
}
