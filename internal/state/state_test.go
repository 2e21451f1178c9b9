package state

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/claude/hevy2notion/internal/config"
)

// exerciseStore runs the lifecycle every backend must follow: absent on
// first run, last write wins, Clear returns to absent, Clear is idempotent.
func exerciseStore(t *testing.T, s Store) {
	t.Helper()
	ctx := context.Background()

	id, ok, err := s.Load(ctx)
	require.NoError(t, err)
	assert.False(t, ok, "fresh store must report no id")
	assert.Empty(t, id)

	require.NoError(t, s.Save(ctx, "w1"))
	id, ok, err = s.Load(ctx)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "w1", id)

	require.NoError(t, s.Save(ctx, "w2"))
	id, _, err = s.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, "w2", id, "only the latest id is kept")

	require.NoError(t, s.Clear(ctx))
	_, ok, err = s.Load(ctx)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, s.Clear(ctx))
}

// TestOpenFile verifies the default backend is the file store.
func TestOpenFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "id.txt")
	s, err := Open(context.Background(), config.StateConfig{Path: path})
	require.NoError(t, err)
	defer s.Close()

	_, isFile := s.(*FileStore)
	assert.True(t, isFile)
	exerciseStore(t, s)
}

// TestOpenSQLite verifies the sqlite backend is selected and usable.
func TestOpenSQLite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "workouts.db")
	s, err := Open(context.Background(), config.StateConfig{Backend: config.BackendSQLite, Path: path})
	require.NoError(t, err)
	defer s.Close()

	_, isSQLite := s.(*SQLiteStore)
	assert.True(t, isSQLite)
	exerciseStore(t, s)
}

// TestOpenUnknown verifies an unsupported backend name is rejected.
func TestOpenUnknown(t *testing.T) {
	_, err := Open(context.Background(), config.StateConfig{Backend: "redis"})
	assert.Error(t, err)
}

// TestPostgresStore runs against a real database when
// HEVY2NOTION_TEST_POSTGRES_DSN is set.
func TestPostgresStore(t *testing.T) {
	dsn := os.Getenv("HEVY2NOTION_TEST_POSTGRES_DSN")
	if dsn == "" {
		t.Skip("HEVY2NOTION_TEST_POSTGRES_DSN not set")
	}
	s, err := OpenPostgres(context.Background(), dsn)
	require.NoError(t, err)
	defer s.Close()

	require.NoError(t, s.Clear(context.Background()))
	exerciseStore(t, s)
}
