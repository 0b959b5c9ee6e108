package domain

import (
	"math"
	"slices"
	"strconv"
	"strings"
	"time"
)

// ViewMode selects which nodes the presentation layer lists
type ViewMode string

const (
	ViewAll       ViewMode = "all"
	ViewFavorites ViewMode = "favorites"
	ViewRecent    ViewMode = "recent"
)

// ViewModes lists the modes in cycling order
var ViewModes = []ViewMode{ViewAll, ViewFavorites, ViewRecent}

// MaxRecent bounds the recency list
const MaxRecent = 20

// ParseViewMode validates a view mode string
func ParseViewMode(s string) (ViewMode, bool) {
	m := ViewMode(strings.TrimSpace(s))
	switch m {
	case ViewAll, ViewFavorites, ViewRecent:
		return m, true
	default:
		return "", false
	}
}

// Next returns the mode after m in ViewModes
func (m ViewMode) Next() ViewMode {
	i := slices.Index(ViewModes, m)
	return ViewModes[(i+1)%len(ViewModes)]
}

// RecentEntry records one launch attempt
type RecentEntry struct {
	ID string `json:"id"`
	TS int64  `json:"ts"`
}

// UIState holds presentation preferences
type UIState struct {
	ViewMode ViewMode `json:"view_mode"`
}

// UserState is per-user state keyed by node id. It does not own nodes;
// ids that no longer exist in the tree are skipped by readers.
type UserState struct {
	Favorites map[string]bool `json:"favorites"`
	Recent    []RecentEntry   `json:"recent"`
	UI        UIState         `json:"ui"`
}

// NewUserState returns an empty state in the "all" view
func NewUserState() UserState {
	return UserState{
		Favorites: map[string]bool{},
		Recent:    []RecentEntry{},
		UI:        UIState{ViewMode: ViewAll},
	}
}

// NormalizeUserState coerces an untyped decoded record into a UserState.
// Malformed parts are replaced by their empty defaults.
func NormalizeUserState(raw any) UserState {
	state := NewUserState()
	record, ok := raw.(map[string]any)
	if !ok {
		return state
	}

	if favs, ok := record["favorites"].(map[string]any); ok {
		for id, v := range favs {
			if truthy(v) {
				state.Favorites[id] = true
			}
		}
	}

	if recent, ok := record["recent"].([]any); ok {
		entries := make([]RecentEntry, 0, len(recent))
		for _, item := range recent {
			entry, ok := item.(map[string]any)
			if !ok {
				continue
			}
			id, ok := entry["id"].(string)
			if !ok {
				continue
			}
			ts, ok := coerceInt(entry["ts"])
			if !ok {
				continue
			}
			entries = append(entries, RecentEntry{ID: id, TS: ts})
		}
		state.Recent = normalizeRecent(entries)
	}

	if ui, ok := record["ui"].(map[string]any); ok {
		if s, ok := ui["view_mode"].(string); ok {
			if mode, ok := ParseViewMode(s); ok {
				state.UI.ViewMode = mode
			}
		}
	}

	return state
}

// normalizeRecent sorts newest first, keeps the first entry per id and caps the list
func normalizeRecent(entries []RecentEntry) []RecentEntry {
	slices.SortStableFunc(entries, func(a, b RecentEntry) int {
		switch {
		case a.TS > b.TS:
			return -1
		case a.TS < b.TS:
			return 1
		default:
			return 0
		}
	})

	seen := make(map[string]bool, len(entries))
	out := make([]RecentEntry, 0, min(len(entries), MaxRecent))
	for _, e := range entries {
		if seen[e.ID] {
			continue
		}
		seen[e.ID] = true
		out = append(out, e)
		if len(out) == MaxRecent {
			break
		}
	}
	return out
}

// UpdateRecent moves nodeID to the front of the recency list stamped with at
// (or now when at is zero) and truncates the list. The input is not modified.
func UpdateRecent(state UserState, nodeID string, at time.Time) UserState {
	if at.IsZero() {
		at = time.Now()
	}

	recent := make([]RecentEntry, 0, MaxRecent)
	recent = append(recent, RecentEntry{ID: nodeID, TS: at.Unix()})
	for _, e := range state.Recent {
		if e.ID == nodeID {
			continue
		}
		recent = append(recent, e)
		if len(recent) == MaxRecent {
			break
		}
	}

	out := state.clone()
	out.Recent = recent
	return out
}

// SetFavorite marks or unmarks id. Only true entries are stored.
func (s *UserState) SetFavorite(id string, favorite bool) {
	if s.Favorites == nil {
		s.Favorites = map[string]bool{}
	}
	if favorite {
		s.Favorites[id] = true
		return
	}
	delete(s.Favorites, id)
}

// ToggleFavorite flips the favorite flag of id and returns the new value.
// Callers must only pass ids of path or url nodes.
func (s *UserState) ToggleFavorite(id string) bool {
	next := !s.IsFavorite(id)
	s.SetFavorite(id, next)
	return next
}

// IsFavorite reports whether id is marked
func (s UserState) IsFavorite(id string) bool {
	return s.Favorites[id]
}

// ViewMode returns the stored mode, defaulting to ViewAll
func (s UserState) ViewMode() ViewMode {
	if mode, ok := ParseViewMode(string(s.UI.ViewMode)); ok {
		return mode
	}
	return ViewAll
}

func (s UserState) clone() UserState {
	out := UserState{
		Favorites: make(map[string]bool, len(s.Favorites)),
		Recent:    slices.Clone(s.Recent),
		UI:        s.UI,
	}
	for k, v := range s.Favorites {
		out.Favorites[k] = v
	}
	return out
}

func truthy(v any) bool {
	switch val := v.(type) {
	case nil:
		return false
	case bool:
		return val
	case float64:
		return val != 0
	case string:
		return val != ""
	case []any:
		return len(val) > 0
	case map[string]any:
		return len(val) > 0
	default:
		return true
	}
}

func coerceInt(v any) (int64, bool) {
	switch val := v.(type) {
	case float64:
		if math.IsNaN(val) || math.IsInf(val, 0) {
			return 0, false
		}
		return int64(val), true
	case string:
		n, err := strconv.ParseInt(strings.TrimSpace(val), 10, 64)
		if err != nil {
			return 0, false
		}
		return n, true
	default:
		return 0, false
	}
}
