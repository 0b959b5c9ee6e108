package commands

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"launchtree/internal/application"
	"launchtree/internal/domain"
)

func str(s string) *string { return &s }

func TestAddNodeCommand(t *testing.T) {
	tests := []struct {
		name       string
		selectedID string
		nodeType   string
		nodeName   string
		target     string
		wantParent string
		wantRow    int
		wantErr    bool
	}{
		{"no selection appends to root", "", "url", "Site", "https://example.com", domain.RootID, 3, false},
		{"group selection appends inside", "a", "separator", "----", "", "a", 2, false},
		{"leaf selection inserts after", "i1", "path", "Shell", "/bin/sh", "a", 1, false},
		{"unknown selection appends to root", "ghost", "group", "Misc", "", domain.RootID, 3, false},
		{"missing target", "", "path", "Shell", "  ", "", 0, true},
		{"bad type", "", "item", "Thing", "", "", 0, true},
		{"empty name", "", "group", " ", "", "", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sess, store := newTestSession(t)

			result, err := NewAddNodeCommand(sess, tt.selectedID, tt.nodeType, tt.nodeName, tt.target).Execute(context.Background())
			if tt.wantErr {
				var valErr *application.ValidationError
				if !errors.As(err, &valErr) {
					t.Fatalf("expected ValidationError, got %v", err)
				}
				if store.treeSaves != 0 {
					t.Error("rejected add must not save")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			ref, ok := domain.FindNodeRef(sess.Root(), result.Node.ID)
			if !ok {
				t.Fatal("added node not found in tree")
			}
			if ref.Parent.ID != tt.wantParent || ref.Index != tt.wantRow {
				t.Errorf("placed at %s[%d], want %s[%d]", ref.Parent.ID, ref.Index, tt.wantParent, tt.wantRow)
			}
			if result.ParentID != tt.wantParent || result.Row != tt.wantRow {
				t.Errorf("result reports %s[%d]", result.ParentID, result.Row)
			}
			if store.treeSaves != 1 {
				t.Errorf("tree saves = %d, want 1", store.treeSaves)
			}
		})
	}
}

func TestEditNodeCommand(t *testing.T) {
	sess, store := newTestSession(t)
	if err := sess.UpdateState(func(s *domain.UserState) { s.SetFavorite("x", true) }); err != nil {
		t.Fatal(err)
	}

	result, err := NewEditNodeCommand(sess, "x", application.NodeUpdate{Type: str("group")}).Execute(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Node.Type != domain.NodeTypeGroup || result.Node.Target != "" {
		t.Errorf("unexpected node %+v", result.Node)
	}
	if !result.FavoriteDropped || store.state.IsFavorite("x") {
		t.Error("group must not stay a favorite")
	}
	if store.treeSaves != 1 {
		t.Errorf("tree saves = %d, want 1", store.treeSaves)
	}
}

func TestEditNodeCommand_Rejections(t *testing.T) {
	tests := []struct {
		name    string
		nodeID  string
		update  application.NodeUpdate
		wantErr error
	}{
		{"missing node", "ghost", application.NodeUpdate{Name: str("X")}, application.ErrNotFound},
		{"group with children to path", "a", application.NodeUpdate{Type: str("path"), Target: str("/x")}, nil},
		{"nothing to change", "x", application.NodeUpdate{}, nil},
		{"root type change", domain.RootID, application.NodeUpdate{Type: str("url")}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sess, store := newTestSession(t)
			_, err := NewEditNodeCommand(sess, tt.nodeID, tt.update).Execute(context.Background())
			if err == nil {
				t.Fatal("expected error")
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Errorf("error = %v, want %v", err, tt.wantErr)
			}
			if store.treeSaves != 0 {
				t.Error("rejected edit must not save")
			}
		})
	}
}

func TestDeleteCommand(t *testing.T) {
	sess, store := newTestSession(t)

	result, err := NewDeleteCommand(sess, "a").Execute(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Removed != 3 {
		t.Errorf("removed = %d, want 3", result.Removed)
	}
	if got := childIDs(sess.Root()); !reflect.DeepEqual(got, []string{"b", "x"}) {
		t.Errorf("root children = %v", got)
	}
	if store.treeSaves != 1 {
		t.Errorf("tree saves = %d, want 1", store.treeSaves)
	}

	if _, err := NewDeleteCommand(sess, "a").Execute(context.Background()); !errors.Is(err, application.ErrNotFound) {
		t.Errorf("second delete error = %v, want ErrNotFound", err)
	}
	if _, err := NewDeleteCommand(sess, domain.RootID).Execute(context.Background()); err == nil {
		t.Error("expected root delete to be rejected")
	}
}

func TestFavoriteCommand(t *testing.T) {
	sess, store := newTestSession(t)
	ctx := context.Background()

	result, err := NewToggleFavoriteCommand(sess, "i1").Execute(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !result.Favorite || !store.state.IsFavorite("i1") {
		t.Error("expected i1 to be a favorite")
	}

	result, err = NewToggleFavoriteCommand(sess, "i1").Execute(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Favorite || store.state.IsFavorite("i1") {
		t.Error("expected second toggle to remove i1")
	}

	// Setting is idempotent
	for range 2 {
		if _, err := NewSetFavoriteCommand(sess, "i2", true).Execute(ctx); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if !store.state.IsFavorite("i2") || len(store.state.Favorites) != 1 {
		t.Errorf("favorites = %v", store.state.Favorites)
	}

	var valErr *application.ValidationError
	if _, err := NewToggleFavoriteCommand(sess, "a").Execute(ctx); !errors.As(err, &valErr) {
		t.Errorf("expected group favorite to be rejected, got %v", err)
	}
}

func TestListViewCommand(t *testing.T) {
	sess, _ := newTestSession(t)
	ctx := context.Background()
	launcher := &fakeLauncher{}

	for _, id := range []string{"x", "i1"} {
		if _, err := NewSetFavoriteCommand(sess, id, true).Execute(ctx); err != nil {
			t.Fatal(err)
		}
	}
	for _, id := range []string{"i2", "x"} {
		if _, err := NewLaunchCommand(sess, launcher, nil, id).Execute(ctx); err != nil {
			t.Fatal(err)
		}
	}

	tests := []struct {
		name  string
		mode  domain.ViewMode
		query string
		want  []string
	}{
		{"favorites in tree order", domain.ViewFavorites, "", []string{"i1", "x"}},
		{"favorites filtered", domain.ViewFavorites, "notes", []string{"x"}},
		{"recent newest first", domain.ViewRecent, "", []string{"x", "i2"}},
		{"recent filtered", domain.ViewRecent, "docs", []string{"i2"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := NewListViewCommand(sess, tt.mode, tt.query).Execute(ctx)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got := nodeIDs(result.Nodes); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("nodes = %v, want %v", got, tt.want)
			}
		})
	}

	// Dangling ids are skipped
	if _, err := NewDeleteCommand(sess, "x").Execute(ctx); err != nil {
		t.Fatal(err)
	}
	result, err := NewListViewCommand(sess, domain.ViewRecent, "").Execute(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if got := nodeIDs(result.Nodes); !reflect.DeepEqual(got, []string{"i2"}) {
		t.Errorf("recent after delete = %v", got)
	}

	all, err := NewListViewCommand(sess, "", "").Execute(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if all.Mode != domain.ViewAll || len(all.Visible) != domain.Count(sess.Root()) {
		t.Errorf("default mode should show the whole tree, got %s with %d", all.Mode, len(all.Visible))
	}
}

func TestSetViewModeCommand(t *testing.T) {
	sess, store := newTestSession(t)

	mode, err := NewSetViewModeCommand(sess, "recent").Execute(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if mode != domain.ViewRecent || store.state.UI.ViewMode != domain.ViewRecent {
		t.Errorf("mode = %s, stored %s", mode, store.state.UI.ViewMode)
	}

	if _, err := NewSetViewModeCommand(sess, "bogus").Execute(context.Background()); err == nil {
		t.Error("expected unknown mode to be rejected")
	}
}

func TestLaunchCommand(t *testing.T) {
	sess, store := newTestSession(t)
	launcher := &fakeLauncher{}
	history := &fakeHistory{}

	result, err := NewLaunchCommand(sess, launcher, history, "i2").Execute(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Node.ID != "i2" || !reflect.DeepEqual(launcher.opened, []string{"i2"}) {
		t.Errorf("unexpected launch %+v, opened %v", result, launcher.opened)
	}
	if len(store.state.Recent) != 1 || store.state.Recent[0].ID != "i2" {
		t.Errorf("recent = %v", store.state.Recent)
	}
	if len(history.records) != 1 || !history.records[0].OK {
		t.Errorf("history = %+v", history.records)
	}
}

func TestLaunchCommand_FailureStillRecordsRecency(t *testing.T) {
	sess, store := newTestSession(t)
	launcher := &fakeLauncher{err: application.ErrInvalidTarget}
	history := &fakeHistory{}

	_, err := NewLaunchCommand(sess, launcher, history, "x").Execute(context.Background())

	var launchErr *application.LaunchError
	if !errors.As(err, &launchErr) {
		t.Fatalf("expected LaunchError, got %v", err)
	}
	if !errors.Is(err, application.ErrInvalidTarget) {
		t.Error("expected cause to be ErrInvalidTarget")
	}
	if len(store.state.Recent) != 1 || store.state.Recent[0].ID != "x" {
		t.Errorf("recent = %v, want attempt recorded", store.state.Recent)
	}
	if len(history.records) != 1 || history.records[0].OK || history.records[0].Error == "" {
		t.Errorf("history = %+v", history.records)
	}
}

func TestLaunchCommand_NotLaunchable(t *testing.T) {
	sess, store := newTestSession(t)
	launcher := &fakeLauncher{}

	_, err := NewLaunchCommand(sess, launcher, nil, "a").Execute(context.Background())
	if !errors.Is(err, application.ErrNotLaunchable) {
		t.Errorf("error = %v, want ErrNotLaunchable", err)
	}
	if len(launcher.opened) != 0 || len(store.state.Recent) != 0 {
		t.Error("groups must not be opened or recorded")
	}
}

func TestListHistoryCommand(t *testing.T) {
	history := &fakeHistory{records: []domain.LaunchRecord{{NodeID: "1"}, {NodeID: "2"}, {NodeID: "3"}}}

	records, err := NewListHistoryCommand(history, 2).Execute(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(records) != 2 || records[0].NodeID != "3" {
		t.Errorf("records = %+v", records)
	}
}

func TestImportDropCommand(t *testing.T) {
	entries := []domain.DropEntry{
		{Type: domain.NodeTypeURL, Name: "https://one.example", Target: "https://one.example"},
		{Type: domain.NodeTypePath, Name: "two.txt", Target: "/tmp/two.txt"},
	}

	tests := []struct {
		name       string
		selectedID string
		wantParent string
		wantFirst  int
	}{
		{"into group", "b", "b", 0},
		{"after leaf", "i1", "a", 1},
		{"no selection", "", domain.RootID, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sess, store := newTestSession(t)

			result, err := NewImportDropCommand(sess, &fakeImporter{entries: entries}, tt.selectedID, nil).Execute(context.Background())
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(result.Nodes) != 2 {
				t.Fatalf("imported %d nodes, want 2", len(result.Nodes))
			}
			for i, n := range result.Nodes {
				ref, ok := domain.FindNodeRef(sess.Root(), n.ID)
				if !ok {
					t.Fatalf("node %s missing", n.ID)
				}
				if ref.Parent.ID != tt.wantParent || ref.Index != tt.wantFirst+i {
					t.Errorf("node %d at %s[%d], want %s[%d]", i, ref.Parent.ID, ref.Index, tt.wantParent, tt.wantFirst+i)
				}
			}
			if store.treeSaves != 1 {
				t.Errorf("tree saves = %d, want 1", store.treeSaves)
			}
		})
	}
}

func TestImportDropCommand_Nothing(t *testing.T) {
	sess, _ := newTestSession(t)

	_, err := NewImportDropCommand(sess, &fakeImporter{}, "", []string{"  "}).Execute(context.Background())
	var valErr *application.ValidationError
	if !errors.As(err, &valErr) {
		t.Errorf("expected ValidationError, got %v", err)
	}
}
