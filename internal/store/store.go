// Package store handles SQLite persistence of suspended sessions.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/verte-zerg/tuiaim/internal/model"

	_ "modernc.org/sqlite" // SQLite driver.
)

// DefaultSlot is the checkpoint name used when none is given.
const DefaultSlot = "default"

// ErrNoCheckpoint is returned when a slot holds no suspended session.
var ErrNoCheckpoint = errors.New("no checkpoint")

// Checkpoint is one suspended session. Payload is the encoded engine snapshot;
// the other fields are copied out of it for listing.
type Checkpoint struct {
	Name       string
	SavedAt    time.Time
	Mode       model.Mode
	Difficulty model.Difficulty
	Lives      int
	Hits       int
	Elapsed    time.Duration
	Payload    []byte
}

// Store wraps SQLite access for checkpoints.
type Store struct {
	db *sql.DB
}

// Open opens or creates the SQLite database and applies migrations.
func Open(path string) (*Store, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		if cerr := db.Close(); cerr != nil {
			// Best-effort close on migration failure.
			_ = cerr
		}
		return nil, err
	}
	return store, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS checkpoints (
			name TEXT PRIMARY KEY,
			saved_at TEXT NOT NULL,
			mode TEXT NOT NULL,
			difficulty TEXT NOT NULL,
			lives INTEGER NOT NULL,
			hits INTEGER NOT NULL,
			elapsed_ms INTEGER NOT NULL,
			payload BLOB NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_checkpoints_saved_at ON checkpoints(saved_at);`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

// Save writes cp, replacing any checkpoint already stored under the same name.
func (s *Store) Save(ctx context.Context, cp Checkpoint) error {
	if cp.Name == "" {
		cp.Name = DefaultSlot
	}
	if len(cp.Payload) == 0 {
		return fmt.Errorf("checkpoint %q has no payload", cp.Name)
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO checkpoints (name, saved_at, mode, difficulty, lives, hits, elapsed_ms, payload)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(name) DO UPDATE SET
			saved_at = excluded.saved_at,
			mode = excluded.mode,
			difficulty = excluded.difficulty,
			lives = excluded.lives,
			hits = excluded.hits,
			elapsed_ms = excluded.elapsed_ms,
			payload = excluded.payload`,
		cp.Name,
		cp.SavedAt.UTC().Format(time.RFC3339Nano),
		string(cp.Mode),
		string(cp.Difficulty),
		cp.Lives,
		cp.Hits,
		cp.Elapsed.Milliseconds(),
		cp.Payload,
	)
	if err != nil {
		return fmt.Errorf("save checkpoint %q: %w", cp.Name, err)
	}
	return nil
}

// Load returns the checkpoint stored under name, or ErrNoCheckpoint.
func (s *Store) Load(ctx context.Context, name string) (Checkpoint, error) {
	if name == "" {
		name = DefaultSlot
	}
	row := s.db.QueryRowContext(ctx,
		`SELECT name, saved_at, mode, difficulty, lives, hits, elapsed_ms, payload
		 FROM checkpoints WHERE name = ?`, name)
	cp, err := scanCheckpoint(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Checkpoint{}, fmt.Errorf("%w %q", ErrNoCheckpoint, name)
	}
	if err != nil {
		return Checkpoint{}, fmt.Errorf("load checkpoint %q: %w", name, err)
	}
	return cp, nil
}

// Delete removes the checkpoint stored under name. Deleting a missing slot returns ErrNoCheckpoint.
func (s *Store) Delete(ctx context.Context, name string) error {
	if name == "" {
		name = DefaultSlot
	}
	res, err := s.db.ExecContext(ctx, `DELETE FROM checkpoints WHERE name = ?`, name)
	if err != nil {
		return fmt.Errorf("delete checkpoint %q: %w", name, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete checkpoint %q: %w", name, err)
	}
	if n == 0 {
		return fmt.Errorf("%w %q", ErrNoCheckpoint, name)
	}
	return nil
}

// List returns all checkpoints without their payloads, newest first.
func (s *Store) List(ctx context.Context) ([]Checkpoint, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT name, saved_at, mode, difficulty, lives, hits, elapsed_ms, X''
		 FROM checkpoints
		 ORDER BY saved_at DESC, name ASC`)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	var result []Checkpoint
	for rows.Next() {
		cp, err := scanCheckpoint(rows)
		if err != nil {
			return nil, err
		}
		cp.Payload = nil
		result = append(result, cp)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanCheckpoint(row scanner) (Checkpoint, error) {
	var cp Checkpoint
	var savedAt, mode, difficulty string
	var elapsedMs int64
	if err := row.Scan(&cp.Name, &savedAt, &mode, &difficulty, &cp.Lives, &cp.Hits, &elapsedMs, &cp.Payload); err != nil {
		return Checkpoint{}, err
	}
	parsed, err := time.Parse(time.RFC3339Nano, savedAt)
	if err != nil {
		return Checkpoint{}, err
	}
	cp.SavedAt = parsed
	cp.Mode = model.Mode(mode)
	cp.Difficulty = model.Difficulty(difficulty)
	cp.Elapsed = time.Duration(elapsedMs) * time.Millisecond
	return cp, nil
}
