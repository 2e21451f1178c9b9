package state

import (
	"context"
	"embed"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

const lastWorkoutKey = "last_workout_id"

// PostgresStore keeps the id as a row of the sync_state key/value table.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// OpenPostgres applies the embedded migrations and connects a pool.
func OpenPostgres(ctx context.Context, dsn string) (*PostgresStore, error) {
	if err := RunMigrations(dsn); err != nil {
		return nil, err
	}

	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("creating pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("pinging database: %w", err)
	}
	return &PostgresStore{pool: pool}, nil
}

// RunMigrations applies all pending migrations embedded in the binary.
func RunMigrations(dsn string) error {
	src, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return fmt.Errorf("loading migrations: %w", err)
	}

	m, err := migrate.NewWithSourceInstance("iofs", src, dsn)
	if err != nil {
		return fmt.Errorf("creating migrator: %w", err)
	}
	defer m.Close()

	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		return fmt.Errorf("running migrations: %w", err)
	}
	return nil
}

// Load returns the stored id, if any.
func (s *PostgresStore) Load(ctx context.Context) (string, bool, error) {
	var id string
	err := s.pool.QueryRow(ctx, `SELECT value FROM sync_state WHERE key = $1`, lastWorkoutKey).Scan(&id)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("reading sync state: %w", err)
	}
	return id, true, nil
}

// Save upserts the stored id.
func (s *PostgresStore) Save(ctx context.Context, id string) error {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO sync_state (key, value, updated_at) VALUES ($1, $2, now())
		 ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = now()`,
		lastWorkoutKey, id,
	)
	if err != nil {
		return fmt.Errorf("saving sync state: %w", err)
	}
	return nil
}

// Clear deletes the stored id.
func (s *PostgresStore) Clear(ctx context.Context) error {
	if _, err := s.pool.Exec(ctx, `DELETE FROM sync_state WHERE key = $1`, lastWorkoutKey); err != nil {
		return fmt.Errorf("clearing sync state: %w", err)
	}
	return nil
}

// Close closes the connection pool.
func (s *PostgresStore) Close() error {
	s.pool.Close()
	return nil
}
