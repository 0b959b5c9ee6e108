package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func isolate(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("XDG_DATA_HOME", "")
	for _, key := range []string{"DATA_DIR", "TREE_FILE", "USER_STATE_FILE", "HISTORY_DB", "BACKUP_KEEP", "LOG_LEVEL", "EDITOR"} {
		t.Setenv("LAUNCHTREE_"+key, "")
		os.Unsetenv("LAUNCHTREE_" + key)
	}
	return home
}

func TestLoad_Defaults(t *testing.T) {
	home := isolate(t)
	t.Setenv("EDITOR", "nano")

	cfg, err := Load("")
	require.NoError(t, err)

	dataDir := filepath.Join(home, ".local", "share", "launchtree")
	assert.Equal(t, dataDir, cfg.DataDir)
	assert.Equal(t, filepath.Join(dataDir, "launcher.json"), cfg.TreePath())
	assert.Equal(t, filepath.Join(dataDir, "user_state.json"), cfg.UserStatePath())
	assert.Equal(t, filepath.Join(dataDir, "history.db"), cfg.HistoryPath())
	assert.Equal(t, filepath.Join(dataDir, "logs", "app.log"), cfg.LogPath())
	assert.Equal(t, 50, cfg.BackupKeep)
	assert.Equal(t, slog.LevelInfo, cfg.SlogLevel())
	assert.Equal(t, "nano", cfg.Editor)
	assert.Empty(t, cfg.ConfigFile)
}

func TestLoad_File(t *testing.T) {
	isolate(t)
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
data_dir: `+dir+`
tree_file: /abs/tree.json
backup_keep: 7
log_level: DEBUG
history_db: ""
`), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "/abs/tree.json", cfg.TreePath())
	assert.Equal(t, 7, cfg.BackupKeep)
	assert.Equal(t, slog.LevelDebug, cfg.SlogLevel())
	assert.Empty(t, cfg.HistoryPath())
	assert.Equal(t, path, cfg.ConfigFile)
}

func TestLoad_Env(t *testing.T) {
	isolate(t)
	dir := t.TempDir()
	t.Setenv("LAUNCHTREE_DATA_DIR", dir)
	t.Setenv("LAUNCHTREE_LOG_LEVEL", "warn")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, dir, cfg.DataDir)
	assert.Equal(t, slog.LevelWarn, cfg.SlogLevel())
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"zero backups", "backup_keep: 0\n"},
		{"bad level", "log_level: loud\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			isolate(t)
			path := filepath.Join(t.TempDir(), "config.yaml")
			require.NoError(t, os.WriteFile(path, []byte(tt.body), 0o644))

			_, err := Load(path)
			require.Error(t, err)
			assert.Contains(t, err.Error(), "invalid config")
		})
	}
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	isolate(t)

	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}
