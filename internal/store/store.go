// Package store persists scanned feature locations in DuckDB so they can be
// queried without re-reading the genome directory.
package store

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/marcboeker/go-duckdb"
)

// Store manages a DuckDB connection holding feature locations.
type Store struct {
	db   *sql.DB
	path string
}

// Open opens or creates a DuckDB database at the given path.
// Use an empty string for an in-memory database.
func Open(path string) (*Store, error) {
	if path != "" {
		dir := filepath.Dir(path)
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create store directory: %w", err)
		}
	}

	db, err := sql.Open("duckdb", path)
	if err != nil {
		return nil, fmt.Errorf("open duckdb: %w", err)
	}

	s := &Store{db: db, path: path}
	if err := s.ensureSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ensure schema: %w", err)
	}

	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// DB returns the underlying *sql.DB for direct access.
func (s *Store) DB() *sql.DB {
	return s.db
}

// ensureSchema creates tables if they don't exist.
func (s *Store) ensureSchema() error {
	_, err := s.db.Exec(`CREATE TABLE IF NOT EXISTS feature_locations (
		genome_id VARCHAR,
		feature_id VARCHAR,
		feature_type VARCHAR,
		contig VARCHAR,
		left_pos BIGINT,
		right_pos BIGINT,
		strand VARCHAR,
		segments INTEGER,
		span BIGINT,
		function VARCHAR,
		PRIMARY KEY (genome_id, feature_id)
	)`)
	if err != nil {
		return fmt.Errorf("create feature_locations table: %w", err)
	}
	return nil
}
