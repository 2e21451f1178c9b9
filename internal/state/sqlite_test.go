package state

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestSQLiteStoreLifecycle runs the shared lifecycle against SQLite.
func TestSQLiteStoreLifecycle(t *testing.T) {
	s, err := OpenSQLite(context.Background(), filepath.Join(t.TempDir(), "workouts.db"))
	require.NoError(t, err)
	defer s.Close()

	exerciseStore(t, s)
}

// TestSQLiteStorePersists verifies the id survives reopening the database.
func TestSQLiteStorePersists(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "workouts.db")

	s, err := OpenSQLite(ctx, path)
	require.NoError(t, err)
	require.NoError(t, s.Save(ctx, "w42"))
	require.NoError(t, s.Close())

	s, err = OpenSQLite(ctx, path)
	require.NoError(t, err)
	defer s.Close()

	id, ok, err := s.Load(ctx)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "w42", id)

	var rows int
	require.NoError(t, s.db.QueryRow(`SELECT COUNT(*) FROM last_workout`).Scan(&rows))
	assert.Equal(t, 1, rows, "single current value, no history")
}

// seedLegacyDB creates a last_workout (id TEXT) table holding ids, in
// insertion order.
func seedLegacyDB(t *testing.T, path string, ids ...string) {
	t.Helper()
	db, err := sql.Open("sqlite", path)
	require.NoError(t, err)
	defer db.Close()

	_, err = db.Exec(`CREATE TABLE last_workout (id TEXT)`)
	require.NoError(t, err)
	for _, id := range ids {
		_, err = db.Exec(`INSERT INTO last_workout (id) VALUES (?)`, id)
		require.NoError(t, err)
	}
}

// TestSQLiteUpgradesLegacyTable verifies a database written by the express
// server opens, keeps its newest id and then behaves like a fresh store.
func TestSQLiteUpgradesLegacyTable(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "workouts.db")
	seedLegacyDB(t, path, "w-older", "w-old")

	s, err := OpenSQLite(ctx, path)
	require.NoError(t, err)
	defer s.Close()

	id, ok, err := s.Load(ctx)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "w-old", id)

	var rows int
	require.NoError(t, s.db.QueryRow(`SELECT COUNT(*) FROM last_workout`).Scan(&rows))
	assert.Equal(t, 1, rows)

	require.NoError(t, s.Save(ctx, "w-new"))
	id, _, err = s.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, "w-new", id)
}

// TestSQLiteUpgradesEmptyLegacyTable verifies an empty legacy table reads
// as absent.
func TestSQLiteUpgradesEmptyLegacyTable(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "workouts.db")
	seedLegacyDB(t, path)

	s, err := OpenSQLite(ctx, path)
	require.NoError(t, err)
	defer s.Close()

	_, ok, err := s.Load(ctx)
	require.NoError(t, err)
	assert.False(t, ok)

	exerciseStore(t, s)
}
