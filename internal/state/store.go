// Package state persists evaluation history in a SQLite database.
package state

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	// sqlite driver for the history database.
	_ "modernc.org/sqlite"
)

// Entry is one recorded evaluation.
type Entry struct {
	ID         string
	Expression string
	OK         bool
	Value      float64
	Message    string
	CreatedAt  time.Time
}

// Store is a SQLite-backed history store.
type Store struct {
	db   *sql.DB
	path string
}

// Open opens (creating if necessary) the history database at path and
// runs pending migrations. Use ":memory:" for an in-memory database.
func Open(path string) (*Store, error) {
	if path != ":memory:" {
		if dir := filepath.Dir(path); dir != "." && dir != "" {
			if err := os.MkdirAll(dir, 0o750); err != nil {
				return nil, fmt.Errorf("failed to create history directory: %w", err)
			}
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open history database: %w", err)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping history database: %w", err)
	}

	s := &Store{db: db, path: path}
	if err := s.migrate(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Append records one evaluation and returns the stored entry.
func (s *Store) Append(expression string, ok bool, value float64, message string) (*Entry, error) {
	e := &Entry{
		ID:         uuid.New().String(),
		Expression: expression,
		OK:         ok,
		Value:      value,
		Message:    message,
		CreatedAt:  time.Now().UTC(),
	}

	_, err := s.db.Exec(
		`INSERT INTO history (id, expression, ok, value, message, created_at) VALUES (?, ?, ?, ?, ?, ?)`,
		e.ID, e.Expression, e.OK, e.Value, e.Message, e.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to record evaluation: %w", err)
	}
	return e, nil
}

// Recent returns up to limit entries, newest first.
func (s *Store) Recent(limit int) ([]Entry, error) {
	rows, err := s.db.Query(
		`SELECT id, expression, ok, value, message, created_at
		 FROM history ORDER BY created_at DESC, id LIMIT ?`, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list history: %w", err)
	}
	defer func() { _ = rows.Close() }()

	return scanEntries(rows)
}

// Search returns up to limit entries whose expression contains term,
// newest first.
func (s *Store) Search(term string, limit int) ([]Entry, error) {
	rows, err := s.db.Query(
		`SELECT id, expression, ok, value, message, created_at
		 FROM history WHERE expression LIKE ?
		 ORDER BY created_at DESC, id LIMIT ?`,
		"%"+term+"%", limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to search history: %w", err)
	}
	defer func() { _ = rows.Close() }()

	return scanEntries(rows)
}

// Clear removes all history entries and returns how many were deleted.
func (s *Store) Clear() (int64, error) {
	res, err := s.db.Exec(`DELETE FROM history`)
	if err != nil {
		return 0, fmt.Errorf("failed to clear history: %w", err)
	}
	n, _ := res.RowsAffected()
	return n, nil
}

func scanEntries(rows *sql.Rows) ([]Entry, error) {
	var entries []Entry
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.ID, &e.Expression, &e.OK, &e.Value, &e.Message, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan history entry: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read history rows: %w", err)
	}
	return entries, nil
}
