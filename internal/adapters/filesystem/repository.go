package filesystem

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"launchtree/internal/domain"
)

// DefaultBackupKeep is how many generation snapshots are retained
const DefaultBackupKeep = 50

// Repository stores the launcher tree and the user state as JSON files.
//
// Layout, for a tree file named launcher.json:
//
//	launcher.json           primary
//	launcher.json.bak       rolling copy of the previous primary
//	launcher.example.json   template used when the primary is missing
//	backup/launcher_*.json  timestamped generations, newest kept
type Repository struct {
	path      string
	statePath string
	keep      int
	logger    *slog.Logger
	now       func() time.Time
}

// Option configures a Repository
type Option func(*Repository)

// WithBackupKeep sets the number of generation snapshots to retain
func WithBackupKeep(n int) Option {
	return func(r *Repository) {
		if n > 0 {
			r.keep = n
		}
	}
}

// WithLogger sets the logger used for recovery and save messages
func WithLogger(logger *slog.Logger) Option {
	return func(r *Repository) {
		r.logger = logger
	}
}

// WithClock overrides the clock used for generation file names
func WithClock(now func() time.Time) Option {
	return func(r *Repository) {
		r.now = now
	}
}

// NewRepository creates a repository for the given tree and user-state files
func NewRepository(treePath, statePath string, opts ...Option) *Repository {
	r := &Repository{
		path:      expandHome(treePath),
		statePath: expandHome(statePath),
		keep:      DefaultBackupKeep,
		logger:    slog.Default(),
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func expandHome(path string) string {
	// Expand ~ to home directory
	if strings.HasPrefix(path, "~") {
		home, _ := os.UserHomeDir()
		path = filepath.Join(home, path[1:])
	}
	return path
}

// Path returns the primary tree file
func (r *Repository) Path() string {
	return r.path
}

// BackupPath returns the rolling backup file
func (r *Repository) BackupPath() string {
	return r.path + ".bak"
}

// BackupDir returns the directory holding generation snapshots
func (r *Repository) BackupDir() string {
	return filepath.Join(filepath.Dir(r.path), "backup")
}

// ExamplePath returns the template used to bootstrap a new installation
func (r *Repository) ExamplePath() string {
	stem, ext := r.stem()
	return filepath.Join(filepath.Dir(r.path), stem+".example"+ext)
}

// UserStatePath returns the user-state file
func (r *Repository) UserStatePath() string {
	return r.statePath
}

func (r *Repository) stem() (string, string) {
	base := filepath.Base(r.path)
	ext := filepath.Ext(base)
	return strings.TrimSuffix(base, ext), ext
}

func (r *Repository) generationPrefix() string {
	stem, _ := r.stem()
	return stem + "_"
}

func (r *Repository) generationPath() string {
	t := r.now()
	stamp := fmt.Sprintf("%s_%06d", t.Format("20060102_150405"), t.Nanosecond()/1000)
	_, ext := r.stem()
	return filepath.Join(r.BackupDir(), r.generationPrefix()+stamp+ext)
}

// decodeError marks a file that was read but did not parse
type decodeError struct {
	err error
}

func (e *decodeError) Error() string { return e.err.Error() }
func (e *decodeError) Unwrap() error { return e.err }

func readTree(path string) (*domain.Node, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	root, err := domain.DecodeTree(data)
	if err != nil {
		return nil, &decodeError{err: err}
	}
	return root, nil
}

func failureReason(err error) string {
	var decErr *decodeError
	if errors.As(err, &decErr) {
		return "decode error"
	}
	return "read error"
}

// LoadTree loads the tree, falling through bootstrap, primary, rolling
// backup and finally a fresh default root, which is saved right away.
// It never fails.
func (r *Repository) LoadTree() *domain.Node {
	root, err := r.loadTree()
	if err == nil {
		return root
	}

	r.logger.Warn("falling back to default empty root", "path", r.path, "error", err)
	root = domain.DefaultRoot()
	if err := r.SaveTree(root); err != nil {
		r.logger.Error("failed saving default root", "path", r.path, "error", err)
	}
	return root
}

func (r *Repository) loadTree() (*domain.Node, error) {
	root, err := r.bootstrapFromExample()
	if err != nil {
		r.logger.Error("failed loading example", "path", r.ExamplePath(), "error", err)
		return r.recoverFromBackup(failureReason(err))
	}
	if root != nil {
		return root, nil
	}

	root, err = readTree(r.path)
	switch {
	case err == nil:
		r.logger.Info("loaded", "path", r.path)
		return root, nil
	case errors.Is(err, fs.ErrNotExist):
		return r.recoverFromBackup("missing primary file")
	default:
		r.logger.Error("failed loading tree", "path", r.path, "error", err)
		return r.recoverFromBackup(failureReason(err))
	}
}

// bootstrapFromExample copies the example over a missing primary.
// Returns nil, nil when there is nothing to do.
func (r *Repository) bootstrapFromExample() (*domain.Node, error) {
	if fileExists(r.path) || !fileExists(r.ExamplePath()) {
		return nil, nil
	}
	if err := os.MkdirAll(filepath.Dir(r.path), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create data dir: %w", err)
	}
	if err := copyFile(r.ExamplePath(), r.path); err != nil {
		return nil, err
	}
	root, err := readTree(r.path)
	if err != nil {
		return nil, err
	}
	r.logger.Info("initialized from example", "path", r.path, "example", r.ExamplePath())
	return root, nil
}

// recoverFromBackup restores the rolling backup over the primary and loads it
func (r *Repository) recoverFromBackup(reason string) (*domain.Node, error) {
	bak := r.BackupPath()
	if !fileExists(bak) {
		return nil, fmt.Errorf("no backup to recover from after %s", reason)
	}
	if err := copyFile(bak, r.path); err != nil {
		return nil, fmt.Errorf("failed to restore backup: %w", err)
	}
	root, err := readTree(r.path)
	if err != nil {
		return nil, fmt.Errorf("failed to load restored backup: %w", err)
	}
	r.logger.Info("recovered from .bak", "reason", reason, "path", r.path)
	return root, nil
}

// SaveTree writes the tree. An existing primary is first copied to the
// rolling backup and to a new generation; the rolling backup is created
// from the new data on the first save.
func (r *Repository) SaveTree(root *domain.Node) error {
	data, err := domain.EncodeTree(root)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(r.path), 0o755); err != nil {
		return fmt.Errorf("failed to create data dir: %w", err)
	}
	if err := os.MkdirAll(r.BackupDir(), 0o755); err != nil {
		return fmt.Errorf("failed to create backup dir: %w", err)
	}

	if fileExists(r.path) {
		if err := r.preSaveBackups(); err != nil {
			r.logger.Error("failed creating pre-save backups", "path", r.path, "error", err)
		}
	}

	if err := writeFileAtomic(r.path, data); err != nil {
		return fmt.Errorf("failed to write tree: %w", err)
	}

	if !fileExists(r.BackupPath()) {
		if err := writeFileAtomic(r.BackupPath(), data); err != nil {
			return fmt.Errorf("failed to write backup: %w", err)
		}
	}

	r.RotateBackups()
	r.logger.Info("saved", "path", r.path, "bak", r.BackupPath(), "generations", r.BackupDir())
	return nil
}

func (r *Repository) preSaveBackups() error {
	if err := copyFile(r.path, r.BackupPath()); err != nil {
		return err
	}
	return copyFile(r.path, r.generationPath())
}

// Generation describes one timestamped snapshot
type Generation struct {
	Name    string
	Path    string
	Size    int64
	ModTime time.Time
}

func (r *Repository) generationNames() ([]string, error) {
	entries, err := os.ReadDir(r.BackupDir())
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read backup dir: %w", err)
	}

	prefix := r.generationPrefix()
	_, ext := r.stem()
	var names []string
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasPrefix(name, prefix) || !strings.HasSuffix(name, ext) {
			continue
		}
		names = append(names, name)
	}

	// The timestamp format sorts lexically in time order
	sort.Sort(sort.Reverse(sort.StringSlice(names)))
	return names, nil
}

// RotateBackups deletes generations beyond the retention count, oldest first.
// Failures are logged and skipped.
func (r *Repository) RotateBackups() {
	names, err := r.generationNames()
	if err != nil {
		r.logger.Warn("failed listing backups", "dir", r.BackupDir(), "error", err)
		return
	}
	if len(names) <= r.keep {
		return
	}
	for _, name := range names[r.keep:] {
		stale := filepath.Join(r.BackupDir(), name)
		if err := os.Remove(stale); err != nil && !errors.Is(err, fs.ErrNotExist) {
			r.logger.Warn("failed deleting old backup", "path", stale, "error", err)
		}
	}
}

// ListGenerations returns the retained snapshots, newest first
func (r *Repository) ListGenerations() ([]Generation, error) {
	names, err := r.generationNames()
	if err != nil {
		return nil, err
	}

	gens := make([]Generation, 0, len(names))
	for _, name := range names {
		path := filepath.Join(r.BackupDir(), name)
		info, err := os.Stat(path)
		if err != nil {
			continue
		}
		gens = append(gens, Generation{
			Name:    name,
			Path:    path,
			Size:    info.Size(),
			ModTime: info.ModTime(),
		})
	}
	return gens, nil
}

// LoadUserState reads the user-state file. A missing or unreadable file
// yields an empty state.
func (r *Repository) LoadUserState() domain.UserState {
	data, err := os.ReadFile(r.statePath)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			r.logger.Warn("failed reading user state", "path", r.statePath, "error", err)
		}
		return domain.NewUserState()
	}

	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		r.logger.Warn("failed parsing user state", "path", r.statePath, "error", err)
		return domain.NewUserState()
	}
	return domain.NormalizeUserState(raw)
}

// SaveUserState writes the user-state file
func (r *Repository) SaveUserState(state domain.UserState) error {
	if state.Favorites == nil {
		state.Favorites = map[string]bool{}
	}
	if state.Recent == nil {
		state.Recent = []domain.RecentEntry{}
	}
	state.UI.ViewMode = state.ViewMode()

	data, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode user state: %w", err)
	}
	data = append(data, '\n')

	if err := os.MkdirAll(filepath.Dir(r.statePath), 0o755); err != nil {
		return fmt.Errorf("failed to create state dir: %w", err)
	}
	if err := writeFileAtomic(r.statePath, data); err != nil {
		return fmt.Errorf("failed to write user state: %w", err)
	}
	return nil
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

// copyFile copies src over dst and carries the modification time across
func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", src, err)
	}
	defer in.Close()

	info, err := in.Stat()
	if err != nil {
		return fmt.Errorf("failed to stat %s: %w", src, err)
	}

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, info.Mode().Perm())
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", dst, err)
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return fmt.Errorf("failed to copy %s: %w", src, err)
	}
	if err := out.Close(); err != nil {
		return fmt.Errorf("failed to close %s: %w", dst, err)
	}

	_ = os.Chtimes(dst, info.ModTime(), info.ModTime())
	return nil
}

// writeFileAtomic writes through a temp file in the same directory and
// renames it into place. The temp file is removed on any failure.
func writeFileAtomic(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return err
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		os.Remove(tmpName)
		return err
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return err
	}
	return nil
}
