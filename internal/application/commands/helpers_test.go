package commands

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"launchtree/internal/application"
	"launchtree/internal/domain"
)

type memoryStore struct {
	root       *domain.Node
	state      domain.UserState
	treeSaves  int
	stateSaves int
}

func (m *memoryStore) LoadTree() *domain.Node { return m.root }

func (m *memoryStore) SaveTree(root *domain.Node) error {
	m.root = root
	m.treeSaves++
	return nil
}

func (m *memoryStore) LoadUserState() domain.UserState { return m.state }

func (m *memoryStore) SaveUserState(state domain.UserState) error {
	m.state = state
	m.stateSaves++
	return nil
}

type fakeLauncher struct {
	opened []string
	err    error
}

func (f *fakeLauncher) Open(node *domain.Node) error {
	f.opened = append(f.opened, node.ID)
	return f.err
}

type fakeHistory struct {
	records []domain.LaunchRecord
}

func (f *fakeHistory) Record(ctx context.Context, rec domain.LaunchRecord) error {
	f.records = append(f.records, rec)
	return nil
}

func (f *fakeHistory) List(ctx context.Context, limit int) ([]domain.LaunchRecord, error) {
	out := make([]domain.LaunchRecord, 0, len(f.records))
	for i := len(f.records) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, f.records[i])
	}
	return out, nil
}

func (f *fakeHistory) Close() error { return nil }

type fakeImporter struct {
	entries []domain.DropEntry
}

func (f *fakeImporter) BuildDropEntries(values []string) []domain.DropEntry {
	return f.entries
}

// testTree builds root{a[i1 path, i2 url], b, x path}
func testTree() *domain.Node {
	return &domain.Node{ID: domain.RootID, Name: "Root", Type: domain.NodeTypeGroup, Children: []*domain.Node{
		{ID: "a", Name: "Apps", Type: domain.NodeTypeGroup, Children: []*domain.Node{
			{ID: "i1", Name: "Editor", Type: domain.NodeTypePath, Target: "/usr/bin/editor"},
			{ID: "i2", Name: "Docs", Type: domain.NodeTypeURL, Target: "https://docs.example.com"},
		}},
		{ID: "b", Name: "Backups", Type: domain.NodeTypeGroup},
		{ID: "x", Name: "Notes", Type: domain.NodeTypePath, Target: "/home/me/notes.txt"},
	}}
}

type clock struct {
	t time.Time
}

func (c *clock) now() time.Time {
	c.t = c.t.Add(time.Second)
	return c.t
}

func newTestSession(t *testing.T) (*application.Session, *memoryStore) {
	t.Helper()
	store := &memoryStore{root: testTree(), state: domain.NewUserState()}
	c := &clock{t: time.Unix(1_700_000_000, 0)}
	sess := application.NewSession(store, store,
		application.WithClock(c.now),
		application.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
	)
	return sess, store
}

func childIDs(n *domain.Node) []string {
	ids := make([]string, 0, len(n.Children))
	for _, c := range n.Children {
		ids = append(ids, c.ID)
	}
	return ids
}

func nodeIDs(nodes []*domain.Node) []string {
	ids := make([]string, 0, len(nodes))
	for _, n := range nodes {
		ids = append(ids, n.ID)
	}
	return ids
}
