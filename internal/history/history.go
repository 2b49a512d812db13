// Package history records past searches in a SQLite database. Listings are
// never persisted — the job cache stays in-memory — only the search
// parameters and how many results they produced.
package history

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"github.com/jobdeck/jobdeck/internal/model"
)

// Entry is one recorded search.
type Entry struct {
	Query    string
	Location string
	Sources  []model.Source
	Results  int
	RunAt    time.Time
}

// Store persists search history in a SQLite database.
type Store struct {
	db *sql.DB
}

// Open opens (or creates) the history database at dbPath and ensures the
// searches table exists.
func Open(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening history db: %w", err)
	}

	// Verify the connection is alive.
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("pinging history db: %w", err)
	}

	createTable := `CREATE TABLE IF NOT EXISTS searches (
		id       INTEGER PRIMARY KEY AUTOINCREMENT,
		query    TEXT NOT NULL,
		location TEXT NOT NULL DEFAULT '',
		sources  TEXT NOT NULL DEFAULT '',
		results  INTEGER NOT NULL DEFAULT 0,
		run_at   DATETIME DEFAULT CURRENT_TIMESTAMP
	)`
	if _, err := db.Exec(createTable); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating searches table: %w", err)
	}

	return &Store{db: db}, nil
}

// Record stores one completed search.
func (s *Store) Record(query, location string, sources []model.Source, results int) error {
	names := make([]string, len(sources))
	for i, src := range sources {
		names[i] = string(src)
	}

	_, err := s.db.Exec(
		"INSERT INTO searches (query, location, sources, results) VALUES (?, ?, ?, ?)",
		query, location, strings.Join(names, ","), results,
	)
	if err != nil {
		return fmt.Errorf("recording search %q: %w", query, err)
	}
	return nil
}

// Recent returns the newest n searches, most recent first.
func (s *Store) Recent(n int) ([]Entry, error) {
	rows, err := s.db.Query(
		"SELECT query, location, sources, results, run_at FROM searches ORDER BY id DESC LIMIT ?", n,
	)
	if err != nil {
		return nil, fmt.Errorf("querying history: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		var sources string
		if err := rows.Scan(&e.Query, &e.Location, &sources, &e.Results, &e.RunAt); err != nil {
			return nil, fmt.Errorf("scanning history row: %w", err)
		}
		if sources != "" {
			for _, name := range strings.Split(sources, ",") {
				if src, ok := model.ParseSource(name); ok {
					e.Sources = append(e.Sources, src)
				}
			}
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// Cleanup deletes history entries older than the given duration.
func (s *Store) Cleanup(olderThan time.Duration) error {
	cutoff := time.Now().Add(-olderThan)
	_, err := s.db.Exec("DELETE FROM searches WHERE run_at < ?", cutoff)
	if err != nil {
		return fmt.Errorf("cleaning up history older than %v: %w", olderThan, err)
	}
	return nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}
