package commands

import (
	"context"
	"fmt"

	"launchtree/internal/application"
	"launchtree/internal/domain"
)

// FavoriteResult contains the result of a favorite change
type FavoriteResult struct {
	Node     *domain.Node
	Favorite bool
	Message  string
}

// FavoriteCommand marks or unmarks a launchable node as a favorite
type FavoriteCommand struct {
	session *application.Session
	NodeID  string
	// Set forces a value; nil toggles
	Set *bool
}

// NewToggleFavoriteCommand creates a FavoriteCommand that flips the flag
func NewToggleFavoriteCommand(session *application.Session, nodeID string) *FavoriteCommand {
	return &FavoriteCommand{
		session: session,
		NodeID:  nodeID,
	}
}

// NewSetFavoriteCommand creates a FavoriteCommand that sets the flag
func NewSetFavoriteCommand(session *application.Session, nodeID string, favorite bool) *FavoriteCommand {
	return &FavoriteCommand{
		session: session,
		NodeID:  nodeID,
		Set:     &favorite,
	}
}

// Validate checks if the favorite operation is valid
func (c *FavoriteCommand) Validate() error {
	return application.ValidateRequired("nodeID", c.NodeID)
}

// Execute runs the favorite command. Groups and separators are rejected.
func (c *FavoriteCommand) Execute(ctx context.Context) (*FavoriteResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	ref, err := c.session.Find(c.NodeID)
	if err != nil {
		return nil, err
	}
	if !ref.Node.Type.IsLaunchable() {
		return nil, &application.ValidationError{
			Field:   "nodeID",
			Message: fmt.Sprintf("only path and url nodes can be favorites, got %s", ref.Node.Type),
		}
	}

	var favorite bool
	if err := c.session.UpdateState(func(s *domain.UserState) {
		if c.Set != nil {
			s.SetFavorite(c.NodeID, *c.Set)
			favorite = *c.Set
			return
		}
		favorite = s.ToggleFavorite(c.NodeID)
	}); err != nil {
		return nil, err
	}

	verb := "Removed from favorites"
	if favorite {
		verb = "Added to favorites"
	}

	return &FavoriteResult{
		Node:     ref.Node,
		Favorite: favorite,
		Message:  fmt.Sprintf("%s: %q", verb, domain.DisplayName(ref.Node)),
	}, nil
}
