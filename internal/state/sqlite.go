package state

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

// SQLiteStore keeps the id in a single-row table of a local SQLite database.
type SQLiteStore struct {
	db *sql.DB
}

// OpenSQLite opens (or creates) the SQLite database at path.
func OpenSQLite(ctx context.Context, path string) (*SQLiteStore, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating state dir %s: %w", dir, err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening state db: %w", err)
	}

	if _, err := db.ExecContext(ctx, fmt.Sprintf(lastWorkoutSchema, "last_workout")); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating state table: %w", err)
	}
	if err := upgradeLegacyTable(ctx, db); err != nil {
		db.Close()
		return nil, err
	}

	return &SQLiteStore{db: db}, nil
}

const lastWorkoutSchema = `CREATE TABLE IF NOT EXISTS %s (
	slot      INTEGER PRIMARY KEY CHECK (slot = 1),
	id        TEXT NOT NULL,
	synced_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
)`

// upgradeLegacyTable rewrites a last_workout (id TEXT) table, as written by
// the express server, into the single-row layout. The most recently
// inserted id is kept.
func upgradeLegacyTable(ctx context.Context, db *sql.DB) error {
	hasSlot, err := hasColumn(ctx, db, "last_workout", "slot")
	if err != nil {
		return err
	}
	if hasSlot {
		return nil
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning state upgrade: %w", err)
	}
	defer tx.Rollback()

	stmts := []string{
		fmt.Sprintf(lastWorkoutSchema, "last_workout_v2"),
		`INSERT INTO last_workout_v2 (slot, id)
		 SELECT 1, id FROM last_workout
		 WHERE id IS NOT NULL AND id != ''
		 ORDER BY rowid DESC LIMIT 1`,
		`DROP TABLE last_workout`,
		`ALTER TABLE last_workout_v2 RENAME TO last_workout`,
	}
	for _, stmt := range stmts {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("upgrading state table: %w", err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing state upgrade: %w", err)
	}
	return nil
}

func hasColumn(ctx context.Context, db *sql.DB, table, column string) (bool, error) {
	rows, err := db.QueryContext(ctx, `SELECT name FROM pragma_table_info(?)`, table)
	if err != nil {
		return false, fmt.Errorf("inspecting %s: %w", table, err)
	}
	defer rows.Close()

	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return false, fmt.Errorf("inspecting %s: %w", table, err)
		}
		if name == column {
			return true, nil
		}
	}
	return false, rows.Err()
}

// Load returns the stored id, if any.
func (s *SQLiteStore) Load(ctx context.Context) (string, bool, error) {
	var id string
	err := s.db.QueryRowContext(ctx, `SELECT id FROM last_workout WHERE slot = 1`).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("reading last workout: %w", err)
	}
	return id, true, nil
}

// Save overwrites the stored id.
func (s *SQLiteStore) Save(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO last_workout (slot, id, synced_at) VALUES (1, ?, CURRENT_TIMESTAMP)`,
		id,
	)
	if err != nil {
		return fmt.Errorf("saving last workout: %w", err)
	}
	return nil
}

// Clear deletes the stored id.
func (s *SQLiteStore) Clear(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM last_workout`); err != nil {
		return fmt.Errorf("clearing last workout: %w", err)
	}
	return nil
}

// Close closes the state database.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
