// Package export persists search results to a SQLite database so matched
// file metadata can be queried outside the process that ran the scan.
package export

import (
	"context"
	"database/sql"
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"
	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"github.com/harrison/filefind/internal/table"
)

//go:embed schema.sql
var schemaSQL string

// Scan records one exported search invocation.
type Scan struct {
	ID          string
	CreatedAt   time.Time
	PathPattern string
	FilePattern string
	Query       string
	RowCount    int
}

// Match is one exported (filename, key, value) triple.
type Match struct {
	ScanID   string
	Filename string
	Key      string
	Value    string
}

// Store manages the SQLite database holding exported results.
type Store struct {
	db     *sql.DB
	dbPath string
	lock   *flock.Flock
}

// NewStore creates a Store and initializes the database schema. A file
// lock next to the database coordinates writers across processes; the
// in-memory database ":memory:" skips locking.
func NewStore(dbPath string) (*Store, error) {
	if dbPath != ":memory:" {
		dir := filepath.Dir(dbPath)
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if _, err := db.Exec("PRAGMA busy_timeout=5000"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set busy_timeout: %w", err)
	}
	if _, err := db.Exec(schemaSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("init schema: %w", err)
	}

	s := &Store{db: db, dbPath: dbPath}
	if dbPath != ":memory:" {
		s.lock = flock.New(dbPath + ".lock")
	}
	return s, nil
}

// Close closes the database connection
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// SaveScan writes one search result under a fresh scan id and returns the
// id. The whole write runs in a single transaction under the store's file
// lock, so concurrent exporters never interleave rows.
func (s *Store) SaveScan(ctx context.Context, pathPattern, filePattern, query string, c *table.Container) (string, error) {
	if s.lock != nil {
		if err := s.lock.Lock(); err != nil {
			return "", fmt.Errorf("acquire export lock: %w", err)
		}
		defer s.lock.Unlock()
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return "", fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	scanID := uuid.New().String()
	_, err = tx.ExecContext(ctx,
		`INSERT INTO scans (id, created_at, path_pattern, file_pattern, query, row_count)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		scanID, time.Now().UTC(), pathPattern, filePattern, query, c.Len())
	if err != nil {
		return "", fmt.Errorf("insert scan: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO matches (scan_id, filename, key, value) VALUES (?, ?, ?, ?)`)
	if err != nil {
		return "", fmt.Errorf("prepare match insert: %w", err)
	}
	defer stmt.Close()

	keys := c.Columns()[1:]
	for filename, fields := range c.All() {
		for _, key := range keys {
			if _, err := stmt.ExecContext(ctx, scanID, filename, key, fields[key]); err != nil {
				return "", fmt.Errorf("insert match: %w", err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("commit scan: %w", err)
	}
	return scanID, nil
}

// Scans returns all recorded scans, newest first.
func (s *Store) Scans(ctx context.Context) ([]Scan, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, created_at, path_pattern, file_pattern, query, row_count
		 FROM scans ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("query scans: %w", err)
	}
	defer rows.Close()

	var scans []Scan
	for rows.Next() {
		var sc Scan
		if err := rows.Scan(&sc.ID, &sc.CreatedAt, &sc.PathPattern, &sc.FilePattern, &sc.Query, &sc.RowCount); err != nil {
			return nil, fmt.Errorf("scan row: %w", err)
		}
		scans = append(scans, sc)
	}
	return scans, rows.Err()
}

// Matches returns all exported triples of one scan in insertion order.
func (s *Store) Matches(ctx context.Context, scanID string) ([]Match, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT scan_id, filename, key, value FROM matches WHERE scan_id = ? ORDER BY id`,
		scanID)
	if err != nil {
		return nil, fmt.Errorf("query matches: %w", err)
	}
	defer rows.Close()

	var matches []Match
	for rows.Next() {
		var m Match
		if err := rows.Scan(&m.ScanID, &m.Filename, &m.Key, &m.Value); err != nil {
			return nil, fmt.Errorf("scan row: %w", err)
		}
		matches = append(matches, m)
	}
	return matches, rows.Err()
}
