package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"launchtree/internal/domain"
	"launchtree/internal/ports"

	_ "github.com/mattn/go-sqlite3"
)

const schemaVersion = "1"

// DefaultMaxRows bounds the history table; older rows are pruned on insert
const DefaultMaxRows = 1000

// History implements ports.LaunchHistory using SQLite
type History struct {
	db      *sql.DB
	dbPath  string
	maxRows int
}

// Ensure History implements LaunchHistory
var _ ports.LaunchHistory = (*History)(nil)

// OpenHistory opens, creating if needed, the history database at dbPath
func OpenHistory(dbPath string) (*History, error) {
	// Expand ~ in path
	if strings.HasPrefix(dbPath, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to get home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("failed to create history directory: %w", err)
	}

	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// One process, one writer
	db.SetMaxOpenConns(1)

	_, err = db.Exec(`
		PRAGMA synchronous = NORMAL;

		CREATE TABLE IF NOT EXISTS launches (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			node_id TEXT NOT NULL,
			name TEXT NOT NULL,
			type TEXT NOT NULL,
			target TEXT NOT NULL,
			launched_at INTEGER NOT NULL,
			ok INTEGER NOT NULL,
			error TEXT NOT NULL DEFAULT ''
		);
		CREATE TABLE IF NOT EXISTS meta (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_launches_node ON launches(node_id);
		CREATE INDEX IF NOT EXISTS idx_launches_at ON launches(launched_at);
	`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to setup database: %w", err)
	}

	if _, err := db.Exec(`INSERT OR REPLACE INTO meta (key, value) VALUES ('schema_version', ?)`, schemaVersion); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to update metadata: %w", err)
	}

	return &History{db: db, dbPath: dbPath, maxRows: DefaultMaxRows}, nil
}

// Path returns the database file
func (h *History) Path() string {
	return h.dbPath
}

// Close closes the database connection
func (h *History) Close() error {
	if h.db != nil {
		return h.db.Close()
	}
	return nil
}

// Record appends a launch attempt and prunes the oldest rows past the limit
func (h *History) Record(ctx context.Context, rec domain.LaunchRecord) error {
	tx, err := h.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	at := rec.At
	if at.IsZero() {
		at = time.Now()
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO launches (node_id, name, type, target, launched_at, ok, error)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, rec.NodeID, rec.Name, string(rec.Type), rec.Target, at.UnixMilli(), rec.OK, rec.Error)
	if err != nil {
		return fmt.Errorf("failed to record launch: %w", err)
	}

	_, err = tx.ExecContext(ctx, `
		DELETE FROM launches WHERE id NOT IN (
			SELECT id FROM launches ORDER BY id DESC LIMIT ?
		)
	`, h.maxRows)
	if err != nil {
		return fmt.Errorf("failed to prune history: %w", err)
	}

	return tx.Commit()
}

// List returns up to limit launch attempts, newest first
func (h *History) List(ctx context.Context, limit int) ([]domain.LaunchRecord, error) {
	rows, err := h.db.QueryContext(ctx, `
		SELECT node_id, name, type, target, launched_at, ok, error
		FROM launches
		ORDER BY id DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query history: %w", err)
	}
	defer rows.Close()

	var records []domain.LaunchRecord
	for rows.Next() {
		var (
			rec      domain.LaunchRecord
			nodeType string
			at       int64
		)
		if err := rows.Scan(&rec.NodeID, &rec.Name, &nodeType, &rec.Target, &at, &rec.OK, &rec.Error); err != nil {
			return nil, fmt.Errorf("failed to scan history: %w", err)
		}
		rec.Type = domain.NodeType(nodeType)
		rec.At = time.UnixMilli(at)
		records = append(records, rec)
	}
	return records, rows.Err()
}

// LaunchCount is how often a node was launched
type LaunchCount struct {
	NodeID string
	Name   string
	Count  int
	Last   time.Time
}

// TopLaunched returns the most launched nodes, ties broken by recency
func (h *History) TopLaunched(ctx context.Context, limit int) ([]LaunchCount, error) {
	rows, err := h.db.QueryContext(ctx, `
		SELECT node_id, MAX(name), COUNT(*) AS n, MAX(launched_at) AS last
		FROM launches
		WHERE ok = 1
		GROUP BY node_id
		ORDER BY n DESC, last DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query launch counts: %w", err)
	}
	defer rows.Close()

	var counts []LaunchCount
	for rows.Next() {
		var (
			c    LaunchCount
			last int64
		)
		if err := rows.Scan(&c.NodeID, &c.Name, &c.Count, &last); err != nil {
			return nil, fmt.Errorf("failed to scan launch counts: %w", err)
		}
		c.Last = time.UnixMilli(last)
		counts = append(counts, c)
	}
	return counts, rows.Err()
}
