package filesystem

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"launchtree/internal/domain"
)

func setupTestRepo(t *testing.T, opts ...Option) (*Repository, string) {
	t.Helper()

	dir := t.TempDir()
	opts = append([]Option{WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))}, opts...)
	repo := NewRepository(filepath.Join(dir, "launcher.json"), filepath.Join(dir, "user_state.json"), opts...)
	return repo, dir
}

func writeJSON(t *testing.T, path string, v any) {
	t.Helper()
	data, err := json.Marshal(v)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, data, 0o644))
}

func readRootName(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var payload map[string]any
	require.NoError(t, json.Unmarshal(data, &payload))
	return payload["name"].(string)
}

func rootRecord(name string) map[string]any {
	return map[string]any{"id": "root", "name": name, "type": "group", "target": "", "children": []any{}}
}

func TestPaths(t *testing.T) {
	repo, dir := setupTestRepo(t)

	assert.Equal(t, filepath.Join(dir, "launcher.json.bak"), repo.BackupPath())
	assert.Equal(t, filepath.Join(dir, "backup"), repo.BackupDir())
	assert.Equal(t, filepath.Join(dir, "launcher.example.json"), repo.ExamplePath())
	assert.Equal(t, filepath.Join(dir, "user_state.json"), repo.UserStatePath())
}

func TestSaveTree_CreatesBakAndGeneration(t *testing.T) {
	repo, _ := setupTestRepo(t)

	writeJSON(t, repo.Path(), rootRecord("Old"))

	root := domain.DefaultRoot()
	require.NoError(t, repo.SaveTree(root))

	assert.Equal(t, "Old", readRootName(t, repo.BackupPath()), ".bak mirrors the previous primary")
	assert.Equal(t, "Root", readRootName(t, repo.Path()))

	gens, err := repo.ListGenerations()
	require.NoError(t, err)
	require.Len(t, gens, 1)
	assert.Equal(t, "Old", readRootName(t, gens[0].Path))
}

func TestSaveTree_FirstSaveWritesBak(t *testing.T) {
	repo, _ := setupTestRepo(t)

	require.NoError(t, repo.SaveTree(domain.DefaultRoot()))

	require.FileExists(t, repo.BackupPath())
	assert.Equal(t, "Root", readRootName(t, repo.BackupPath()))

	gens, err := repo.ListGenerations()
	require.NoError(t, err)
	assert.Empty(t, gens, "no generation without a previous primary")
}

func TestSaveTree_Format(t *testing.T) {
	repo, _ := setupTestRepo(t)

	root := domain.DefaultRoot()
	root.Children = append(root.Children, &domain.Node{ID: "n1", Name: "Café", Type: domain.NodeTypeURL, Target: "https://example.com/?a=1&b=2"})
	require.NoError(t, repo.SaveTree(root))

	data, err := os.ReadFile(repo.Path())
	require.NoError(t, err)
	assert.Contains(t, string(data), "\n  \"name\": \"Root\"")
	assert.Contains(t, string(data), "Café")
	assert.Contains(t, string(data), "a=1&b=2")
	assert.Equal(t, byte('\n'), data[len(data)-1])
}

func TestRotateBackups_KeepsNewest(t *testing.T) {
	repo, _ := setupTestRepo(t, WithBackupKeep(50))
	require.NoError(t, os.MkdirAll(repo.BackupDir(), 0o755))

	for i := range 55 {
		name := fmt.Sprintf("launcher_20240101_000000_%03d.json", i)
		require.NoError(t, os.WriteFile(filepath.Join(repo.BackupDir(), name), []byte("{}"), 0o644))
	}
	// Unrelated files are left alone
	require.NoError(t, os.WriteFile(filepath.Join(repo.BackupDir(), "notes.txt"), []byte("x"), 0o644))

	repo.RotateBackups()

	gens, err := repo.ListGenerations()
	require.NoError(t, err)
	require.Len(t, gens, 50)
	assert.Equal(t, "launcher_20240101_000000_054.json", gens[0].Name)
	assert.Equal(t, "launcher_20240101_000000_005.json", gens[49].Name)
	assert.FileExists(t, filepath.Join(repo.BackupDir(), "notes.txt"))
}

func TestSaveTree_GenerationNames(t *testing.T) {
	at := time.Date(2024, 3, 5, 7, 8, 9, 123456000, time.Local)
	repo, _ := setupTestRepo(t, WithClock(func() time.Time { return at }))

	require.NoError(t, repo.SaveTree(domain.DefaultRoot()))
	require.NoError(t, repo.SaveTree(domain.DefaultRoot()))

	gens, err := repo.ListGenerations()
	require.NoError(t, err)
	require.Len(t, gens, 1)
	assert.Equal(t, "launcher_20240305_070809_123456.json", gens[0].Name)
}

func TestLoadTree_RecoversFromBakWhenBroken(t *testing.T) {
	repo, _ := setupTestRepo(t)

	require.NoError(t, os.WriteFile(repo.Path(), []byte("not-json"), 0o644))
	writeJSON(t, repo.BackupPath(), rootRecord("Recovered"))

	root := repo.LoadTree()

	assert.Equal(t, "Recovered", root.Name)
	assert.Equal(t, "Recovered", readRootName(t, repo.Path()), "backup copied back to primary")
}

func TestLoadTree_RecoversFromBakWhenMissing(t *testing.T) {
	repo, _ := setupTestRepo(t)

	writeJSON(t, repo.BackupPath(), rootRecord("FromBak"))

	root := repo.LoadTree()

	assert.Equal(t, "FromBak", root.Name)
	assert.FileExists(t, repo.Path())
}

func TestLoadTree_BootstrapsFromExample(t *testing.T) {
	repo, _ := setupTestRepo(t)

	writeJSON(t, repo.ExamplePath(), rootRecord("Example"))

	root := repo.LoadTree()

	assert.Equal(t, "Example", root.Name)
	assert.FileExists(t, repo.Path())
}

func TestLoadTree_ExampleIgnoredWhenPrimaryExists(t *testing.T) {
	repo, _ := setupTestRepo(t)

	writeJSON(t, repo.Path(), rootRecord("Primary"))
	writeJSON(t, repo.ExamplePath(), rootRecord("Example"))

	assert.Equal(t, "Primary", repo.LoadTree().Name)
}

func TestLoadTree_FallsBackToDefault(t *testing.T) {
	repo, _ := setupTestRepo(t)

	require.NoError(t, os.WriteFile(repo.Path(), []byte("[1, 2]"), 0o644))

	root := repo.LoadTree()

	assert.Equal(t, domain.RootID, root.ID)
	assert.Equal(t, domain.NodeTypeGroup, root.Type)
	assert.Empty(t, root.Children)

	// The default is persisted so the next load succeeds
	again := repo.LoadTree()
	assert.Equal(t, domain.RootID, again.ID)
	assert.Equal(t, "Root", readRootName(t, repo.Path()))
}

func TestLoadTree_RoundTrip(t *testing.T) {
	repo, _ := setupTestRepo(t)

	root := domain.DefaultRoot()
	group := domain.MakeNode("Tools", domain.NodeTypeGroup, "")
	group.Children = []*domain.Node{
		domain.MakeNode("Shell", domain.NodeTypePath, "/bin/sh"),
		domain.MakeNode("----", domain.NodeTypeSeparator, ""),
	}
	root.Children = []*domain.Node{group, domain.MakeNode("Site", domain.NodeTypeURL, "https://example.com")}

	require.NoError(t, repo.SaveTree(root))
	assert.Equal(t, domain.Serialize(root), domain.Serialize(repo.LoadTree()))
}

func TestUserState_RoundTrip(t *testing.T) {
	repo, _ := setupTestRepo(t)

	state := domain.UserState{
		Favorites: map[string]bool{"n1": true},
		Recent:    []domain.RecentEntry{{ID: "n1", TS: 1730000100}},
		UI:        domain.UIState{ViewMode: domain.ViewFavorites},
	}
	require.NoError(t, repo.SaveUserState(state))

	assert.Equal(t, state, repo.LoadUserState())
}

func TestUserState_ViewModePersists(t *testing.T) {
	repo, _ := setupTestRepo(t)

	state := domain.NewUserState()
	state.UI.ViewMode = domain.ViewRecent
	require.NoError(t, repo.SaveUserState(state))

	assert.Equal(t, domain.ViewRecent, repo.LoadUserState().ViewMode())

	data, err := os.ReadFile(repo.UserStatePath())
	require.NoError(t, err)
	var payload map[string]any
	require.NoError(t, json.Unmarshal(data, &payload))
	assert.Equal(t, "recent", payload["ui"].(map[string]any)["view_mode"])
	assert.Equal(t, map[string]any{}, payload["favorites"])
	assert.Equal(t, []any{}, payload["recent"])
}

func TestUserState_MissingOrBroken(t *testing.T) {
	repo, _ := setupTestRepo(t)

	assert.Equal(t, domain.NewUserState(), repo.LoadUserState())

	require.NoError(t, os.WriteFile(repo.UserStatePath(), []byte("{broken"), 0o644))
	assert.Equal(t, domain.NewUserState(), repo.LoadUserState())
}
