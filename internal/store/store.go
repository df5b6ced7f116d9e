// Package store persists verified proofs by name to a SQL backend, so a
// caller can save a proof's text and verification outcome and retrieve
// it later. It is an external collaborator in the sense of §6 of the
// specification: the core verifier has no notion of storage.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/dolthub/driver"
	_ "github.com/go-sql-driver/mysql"
)

// Store wraps a database/sql handle for the proofs table.
type Store struct {
	db *sql.DB
}

// Open opens a Store against the given driver ("mysql" or "dolt") and
// DSN, without yet issuing any queries.
func Open(driver, dsn string) (*Store, error) {
	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("store: opening %s: %w", driver, err)
	}
	return &Store{db: db}, nil
}

// Init creates the proofs table if it does not already exist.
func (s *Store) Init(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS proofs (
			name        VARCHAR(255) PRIMARY KEY,
			source      TEXT NOT NULL,
			all_valid   BOOLEAN NOT NULL,
			verified_at TIMESTAMP NOT NULL
		)`)
	if err != nil {
		return fmt.Errorf("store: initializing schema: %w", err)
	}
	return nil
}

// Save upserts a proof's source text and overall verification outcome
// under name.
func (s *Store) Save(ctx context.Context, name, source string, allValid bool) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO proofs (name, source, all_valid, verified_at)
		VALUES (?, ?, ?, ?)
		ON DUPLICATE KEY UPDATE source = VALUES(source), all_valid = VALUES(all_valid), verified_at = VALUES(verified_at)`,
		name, source, allValid, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("store: saving proof %q: %w", name, err)
	}
	return nil
}

// Load retrieves a previously saved proof's source text by name.
func (s *Store) Load(ctx context.Context, name string) (string, error) {
	var source string
	err := s.db.QueryRowContext(ctx, `SELECT source FROM proofs WHERE name = ?`, name).Scan(&source)
	if err != nil {
		return "", fmt.Errorf("store: loading proof %q: %w", name, err)
	}
	return source, nil
}

// Close releases the underlying database handle.
func (s *Store) Close() error {
	return s.db.Close()
}
