package application

import (
	"fmt"
	"log/slog"
	"time"

	"launchtree/internal/domain"
	"launchtree/internal/ports"
)

// Session owns the loaded tree and user state for one running instance.
// Every mutation is persisted right away; there is no batching.
type Session struct {
	trees  ports.TreeRepository
	states ports.UserStateRepository
	logger *slog.Logger
	now    func() time.Time

	root  *domain.Node
	state domain.UserState
}

// SessionOption configures a Session
type SessionOption func(*Session)

// WithClock overrides the wall clock used for recency timestamps
func WithClock(now func() time.Time) SessionOption {
	return func(s *Session) {
		s.now = now
	}
}

// WithLogger sets the session logger
func WithLogger(logger *slog.Logger) SessionOption {
	return func(s *Session) {
		s.logger = logger
	}
}

// NewSession creates a session and loads the tree and user state
func NewSession(trees ports.TreeRepository, states ports.UserStateRepository, opts ...SessionOption) *Session {
	s := &Session{
		trees:  trees,
		states: states,
		logger: slog.Default(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.Reload()
	return s
}

// Reload replaces the in-memory tree and state with what storage holds
func (s *Session) Reload() {
	s.root = s.trees.LoadTree()
	s.state = s.states.LoadUserState()
}

// Root returns the tree root
func (s *Session) Root() *domain.Node {
	return s.root
}

// State returns a copy of the user state header; maps and slices are shared
func (s *Session) State() domain.UserState {
	return s.state
}

// Now returns the current time from the session clock
func (s *Session) Now() time.Time {
	return s.now()
}

// Logger returns the session logger
func (s *Session) Logger() *slog.Logger {
	return s.logger
}

// Find looks up a node by id
func (s *Session) Find(id string) (domain.NodeRef, error) {
	ref, ok := domain.FindNodeRef(s.root, id)
	if !ok {
		return domain.NodeRef{}, fmt.Errorf("node %s: %w", id, ErrNotFound)
	}
	return ref, nil
}

// SaveTree persists the current tree
func (s *Session) SaveTree() error {
	if err := s.trees.SaveTree(s.root); err != nil {
		return fmt.Errorf("failed to save tree: %w", err)
	}
	return nil
}

// SetState replaces the user state and persists it
func (s *Session) SetState(state domain.UserState) error {
	s.state = state
	if err := s.states.SaveUserState(s.state); err != nil {
		return fmt.Errorf("failed to save user state: %w", err)
	}
	return nil
}

// UpdateState applies fn to the user state and persists the result
func (s *Session) UpdateState(fn func(state *domain.UserState)) error {
	next := s.state
	fn(&next)
	return s.SetState(next)
}
