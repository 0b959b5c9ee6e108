package domain

import (
	"encoding/json"
	"fmt"
	"reflect"
	"testing"
	"time"
)

func TestUpdateRecent_PromotesDuplicate(t *testing.T) {
	state := NewUserState()
	state.Recent = []RecentEntry{{ID: "a", TS: 10}, {ID: "b", TS: 9}}

	updated := UpdateRecent(state, "b", time.Unix(100, 0))

	want := []RecentEntry{{ID: "b", TS: 100}, {ID: "a", TS: 10}}
	if !reflect.DeepEqual(updated.Recent, want) {
		t.Errorf("recent = %v, want %v", updated.Recent, want)
	}
	if len(state.Recent) != 2 || state.Recent[0].ID != "a" {
		t.Error("input state must not be modified")
	}
}

func TestUpdateRecent_LimitsTo20(t *testing.T) {
	state := NewUserState()
	for i := 0; i < 25; i++ {
		state = UpdateRecent(state, fmt.Sprintf("id-%d", i), time.Unix(int64(i), 0))
	}

	if len(state.Recent) != MaxRecent {
		t.Fatalf("len = %d, want %d", len(state.Recent), MaxRecent)
	}
	if state.Recent[0].ID != "id-24" {
		t.Errorf("newest = %s, want id-24", state.Recent[0].ID)
	}
	if state.Recent[MaxRecent-1].ID != "id-5" {
		t.Errorf("oldest = %s, want id-5", state.Recent[MaxRecent-1].ID)
	}
	for _, e := range state.Recent {
		if e.ID == "id-4" {
			t.Error("id-4 should have been evicted")
		}
	}
}

func TestUpdateRecent_ZeroTimeUsesNow(t *testing.T) {
	before := time.Now().Unix()
	state := UpdateRecent(NewUserState(), "a", time.Time{})
	if state.Recent[0].TS < before {
		t.Errorf("ts = %d, want >= %d", state.Recent[0].TS, before)
	}
}

func TestToggleFavorite(t *testing.T) {
	state := NewUserState()

	if !state.ToggleFavorite("n1") {
		t.Error("first toggle should favorite")
	}
	if !state.IsFavorite("n1") {
		t.Error("expected n1 to be favorite")
	}
	if state.ToggleFavorite("n1") {
		t.Error("second toggle should unfavorite")
	}
	if _, ok := state.Favorites["n1"]; ok {
		t.Error("unfavorited ids must be removed, not stored as false")
	}

	state.SetFavorite("n2", true)
	state.SetFavorite("n2", true)
	if len(state.Favorites) != 1 {
		t.Errorf("SetFavorite should be idempotent, got %v", state.Favorites)
	}
}

func decodeRaw(t *testing.T, s string) any {
	t.Helper()
	var raw any
	if err := json.Unmarshal([]byte(s), &raw); err != nil {
		t.Fatalf("bad fixture: %v", err)
	}
	return raw
}

func TestNormalizeUserState(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want UserState
	}{
		{
			name: "well formed",
			raw:  `{"favorites":{"n1":true},"recent":[{"id":"n1","ts":1730000100}],"ui":{"view_mode":"favorites"}}`,
			want: UserState{
				Favorites: map[string]bool{"n1": true},
				Recent:    []RecentEntry{{ID: "n1", TS: 1730000100}},
				UI:        UIState{ViewMode: ViewFavorites},
			},
		},
		{
			name: "not an object",
			raw:  `[1,2,3]`,
			want: NewUserState(),
		},
		{
			name: "favorites not a map",
			raw:  `{"favorites":["a"],"ui":{"view_mode":"recent"}}`,
			want: UserState{Favorites: map[string]bool{}, Recent: []RecentEntry{}, UI: UIState{ViewMode: ViewRecent}},
		},
		{
			name: "falsy favorites dropped",
			raw:  `{"favorites":{"a":true,"b":false,"c":0,"d":1,"e":"","f":null}}`,
			want: UserState{Favorites: map[string]bool{"a": true, "d": true}, Recent: []RecentEntry{}, UI: UIState{ViewMode: ViewAll}},
		},
		{
			name: "recent filtered sorted deduped",
			raw: `{"recent":[
				{"id":"old","ts":1},
				{"id":"dup","ts":5},
				"junk",
				{"id":3,"ts":7},
				{"id":"nots"},
				{"id":"str","ts":"9"},
				{"id":"bad","ts":"x"},
				{"id":"dup","ts":8}
			]}`,
			want: UserState{
				Favorites: map[string]bool{},
				Recent:    []RecentEntry{{ID: "str", TS: 9}, {ID: "dup", TS: 8}, {ID: "old", TS: 1}},
				UI:        UIState{ViewMode: ViewAll},
			},
		},
		{
			name: "invalid view mode",
			raw:  `{"ui":{"view_mode":"grid"}}`,
			want: NewUserState(),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NormalizeUserState(decodeRaw(t, tt.raw))
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("NormalizeUserState() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestNormalizeUserState_CapsRecent(t *testing.T) {
	entries := make([]any, 0, 30)
	for i := 0; i < 30; i++ {
		entries = append(entries, map[string]any{"id": fmt.Sprintf("n%d", i), "ts": float64(i)})
	}

	state := NormalizeUserState(map[string]any{"recent": entries})

	if len(state.Recent) != MaxRecent {
		t.Fatalf("len = %d, want %d", len(state.Recent), MaxRecent)
	}
	if state.Recent[0].ID != "n29" {
		t.Errorf("newest = %s, want n29", state.Recent[0].ID)
	}
}

func TestViewMode_Next(t *testing.T) {
	if ViewAll.Next() != ViewFavorites || ViewFavorites.Next() != ViewRecent || ViewRecent.Next() != ViewAll {
		t.Error("view modes should cycle all -> favorites -> recent -> all")
	}
}

func TestFavoriteAndRecentNodes_SkipDangling(t *testing.T) {
	root := sampleTree()
	state := NewUserState()
	state.SetFavorite("x", true)
	state.SetFavorite("i1", true)
	state.SetFavorite("gone", true)
	state.Recent = []RecentEntry{{ID: "i2", TS: 3}, {ID: "gone", TS: 2}, {ID: "x", TS: 1}}

	var favIDs []string
	for _, n := range FavoriteNodes(root, state, "") {
		favIDs = append(favIDs, n.ID)
	}
	if !reflect.DeepEqual(favIDs, []string{"i1", "x"}) {
		t.Errorf("favorites = %v, want tree order [i1 x]", favIDs)
	}

	var recentIDs []string
	for _, n := range RecentNodes(root, state, "") {
		recentIDs = append(recentIDs, n.ID)
	}
	if !reflect.DeepEqual(recentIDs, []string{"i2", "x"}) {
		t.Errorf("recent = %v, want [i2 x]", recentIDs)
	}

	if got := RecentNodes(root, state, "i2"); len(got) != 1 || got[0].ID != "i2" {
		t.Errorf("query should filter recent nodes, got %v", got)
	}
}
