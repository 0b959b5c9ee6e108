package commands

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"testing"

	"launchtree/internal/application"
	"launchtree/internal/domain"
)

func TestMoveNodeCommand_Validate(t *testing.T) {
	tests := []struct {
		name     string
		sourceID string
		destID   string
		wantErr  bool
		errMsg   string
	}{
		{
			name:     "valid move",
			sourceID: "x",
			destID:   "b",
			wantErr:  false,
		},
		{
			name:     "empty source ID",
			sourceID: "",
			destID:   "b",
			wantErr:  true,
			errMsg:   "source ID is required",
		},
		{
			name:     "empty destination ID",
			sourceID: "x",
			destID:   "",
			wantErr:  true,
			errMsg:   "parent ID is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := NewMoveNodeCommand(nil, tt.sourceID, tt.destID, 0)
			err := cmd.Validate()

			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
				return
			}

			if tt.wantErr && tt.errMsg != "" {
				if !strings.Contains(err.Error(), tt.errMsg) {
					t.Errorf("error message = %q, want to contain %q", err.Error(), tt.errMsg)
				}
			}
		})
	}
}

func TestMoveNodeCommand_Execute(t *testing.T) {
	tests := []struct {
		name       string
		sourceID   string
		destID     string
		row        int
		wantParent string
		wantOrder  []string
	}{
		{
			name:       "to front of root",
			sourceID:   "x",
			destID:     domain.RootID,
			row:        0,
			wantParent: domain.RootID,
			wantOrder:  []string{"x", "a", "b"},
		},
		{
			name:       "into empty group",
			sourceID:   "x",
			destID:     "b",
			row:        0,
			wantParent: "b",
			wantOrder:  []string{"a", "b"},
		},
		{
			name:       "later within same parent",
			sourceID:   "a",
			destID:     domain.RootID,
			row:        3,
			wantParent: domain.RootID,
			wantOrder:  []string{"b", "x", "a"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sess, store := newTestSession(t)

			result, err := NewMoveNodeCommand(sess, tt.sourceID, tt.destID, tt.row).Execute(context.Background())
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if result.ParentID != tt.wantParent {
				t.Errorf("parent = %s, want %s", result.ParentID, tt.wantParent)
			}
			if got := childIDs(sess.Root()); !reflect.DeepEqual(got, tt.wantOrder) {
				t.Errorf("root children = %v, want %v", got, tt.wantOrder)
			}
			if store.treeSaves != 1 {
				t.Errorf("tree saves = %d, want 1", store.treeSaves)
			}
		})
	}
}

func TestMoveNodeCommand_Rejections(t *testing.T) {
	tests := []struct {
		name       string
		sourceID   string
		destID     string
		wantReason string
	}{
		{"missing source", "nope", "b", "source nope not found"},
		{"missing destination", "x", "nope", "destination nope not found"},
		{"root", domain.RootID, "b", "the root cannot be moved"},
		{"self parent", "a", "a", "a node cannot become its own parent"},
		{"into descendant", "a", "i1", "destination is inside the source"},
		{"into leaf", "x", "i1", "destination is not a group"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sess, store := newTestSession(t)
			before := domain.Serialize(sess.Root())

			_, err := NewMoveNodeCommand(sess, tt.sourceID, tt.destID, 0).Execute(context.Background())

			var moveErr *application.MoveError
			if !errors.As(err, &moveErr) {
				t.Fatalf("expected MoveError, got %v", err)
			}
			if moveErr.Reason != tt.wantReason {
				t.Errorf("reason = %q, want %q", moveErr.Reason, tt.wantReason)
			}
			if !errors.Is(err, application.ErrInvalidOperation) {
				t.Error("expected ErrInvalidOperation")
			}
			if !reflect.DeepEqual(before, domain.Serialize(sess.Root())) {
				t.Error("rejected move must leave the tree unchanged")
			}
			if store.treeSaves != 0 {
				t.Error("rejected move must not save")
			}
		})
	}
}

func TestReorderCommand(t *testing.T) {
	tests := []struct {
		name      string
		nodeID    string
		delta     int
		wantMoved bool
		wantOrder []string
	}{
		{"down one", "a", 1, true, []string{"b", "a", "x"}},
		{"up one", "x", -1, true, []string{"a", "x", "b"}},
		{"past the end", "x", 1, false, []string{"a", "b", "x"}},
		{"past the start", "a", -1, false, []string{"a", "b", "x"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sess, _ := newTestSession(t)

			result, err := NewReorderCommand(sess, tt.nodeID, tt.delta).Execute(context.Background())
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if result.Moved != tt.wantMoved {
				t.Errorf("moved = %v, want %v", result.Moved, tt.wantMoved)
			}
			if got := childIDs(sess.Root()); !reflect.DeepEqual(got, tt.wantOrder) {
				t.Errorf("root children = %v, want %v", got, tt.wantOrder)
			}
		})
	}
}

func TestReorderCommand_Root(t *testing.T) {
	sess, _ := newTestSession(t)

	_, err := NewReorderCommand(sess, domain.RootID, 1).Execute(context.Background())
	if !errors.Is(err, application.ErrInvalidOperation) {
		t.Errorf("expected invalid operation, got %v", err)
	}
}
