package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/claude/hevy2notion/internal/syncer"
	"github.com/claude/hevy2notion/internal/testutil"
)

type fixture struct {
	source *testutil.FakeSource
	writer *testutil.FakeWriter
	store  *testutil.MemStore
	h      *handlers
}

func newFixture(lastID string) *fixture {
	f := &fixture{
		source: testutil.NewFakeSource(testutil.LegDay()),
		writer: &testutil.FakeWriter{},
		store:  testutil.NewMemStore(lastID),
	}
	s := syncer.New(f.source, f.writer, f.store, syncer.Options{PageID: "db-123"}, testutil.DiscardLogger())
	f.h = &handlers{syncer: s, log: testutil.DiscardLogger()}
	return f
}

func resultText(t *testing.T, res *mcp.CallToolResult) string {
	t.Helper()
	require.NotEmpty(t, res.Content)
	tc, ok := res.Content[0].(mcp.TextContent)
	require.True(t, ok, "content is %T", res.Content[0])
	return tc.Text
}

func TestNewRegistersTools(t *testing.T) {
	f := newFixture("")
	srv := New(f.h.syncer, "test", testutil.DiscardLogger())
	require.NotNil(t, srv)

	tools := srv.ListTools()
	for _, name := range []string{"sync_latest_workout", "preview_latest_workout", "get_sync_state", "clear_sync_state"} {
		assert.Contains(t, tools, name)
	}
}

func TestSyncLatestWorkout(t *testing.T) {
	f := newFixture("")

	res, err := f.h.syncLatestWorkout(context.Background(), mcp.CallToolRequest{})
	require.NoError(t, err)
	assert.False(t, res.IsError)

	var got syncer.Result
	require.NoError(t, json.Unmarshal([]byte(resultText(t, res)), &got))
	assert.Equal(t, syncer.StatusSynced, got.Status)
	assert.Equal(t, "w1", got.WorkoutID)
	assert.NotEmpty(t, got.RunID)
	assert.Equal(t, 2, f.writer.Writes())

	// Second call is a no-op.
	res, err = f.h.syncLatestWorkout(context.Background(), mcp.CallToolRequest{})
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal([]byte(resultText(t, res)), &got))
	assert.Equal(t, syncer.StatusSkipped, got.Status)
	assert.Equal(t, 2, f.writer.Writes())
}

func TestSyncLatestWorkoutWriteError(t *testing.T) {
	f := newFixture("")
	f.writer.PropertiesErr = errors.New("notion down")

	res, err := f.h.syncLatestWorkout(context.Background(), mcp.CallToolRequest{})
	require.NoError(t, err)
	assert.True(t, res.IsError)
	assert.Contains(t, resultText(t, res), "notion down")
}

func TestSyncLatestWorkoutFetchError(t *testing.T) {
	f := newFixture("")
	f.source.Err = errors.New("timeout")

	res, err := f.h.syncLatestWorkout(context.Background(), mcp.CallToolRequest{})
	require.NoError(t, err)
	assert.True(t, res.IsError)
	assert.Contains(t, resultText(t, res), "timeout")
}

func TestPreviewLatestWorkout(t *testing.T) {
	f := newFixture("")

	res, err := f.h.previewLatestWorkout(context.Background(), mcp.CallToolRequest{})
	require.NoError(t, err)
	assert.False(t, res.IsError)

	var got syncer.Preview
	require.NoError(t, json.Unmarshal([]byte(resultText(t, res)), &got))
	assert.Equal(t, "Leg Day", got.Workout.Title)
	assert.False(t, got.AlreadySynced)
	assert.Zero(t, f.writer.Writes())
}

func TestPreviewNoWorkouts(t *testing.T) {
	f := newFixture("")
	f.source.Page.Workouts = nil

	res, err := f.h.previewLatestWorkout(context.Background(), mcp.CallToolRequest{})
	require.NoError(t, err)
	assert.False(t, res.IsError)
	assert.Equal(t, "Hevy returned no workouts.", resultText(t, res))
}

func TestGetAndClearSyncState(t *testing.T) {
	f := newFixture("w1")

	res, err := f.h.getSyncState(context.Background(), mcp.CallToolRequest{})
	require.NoError(t, err)
	assert.JSONEq(t, `{"last_workout_id":"w1","present":true}`, resultText(t, res))

	res, err = f.h.clearSyncState(context.Background(), mcp.CallToolRequest{})
	require.NoError(t, err)
	assert.False(t, res.IsError)

	res, err = f.h.getSyncState(context.Background(), mcp.CallToolRequest{})
	require.NoError(t, err)
	assert.JSONEq(t, `{"last_workout_id":"","present":false}`, resultText(t, res))
}

func TestSyncStateResource(t *testing.T) {
	f := newFixture("w9")

	req := mcp.ReadResourceRequest{}
	req.Params.URI = "hevy2notion://sync_state"
	contents, err := f.h.syncState(context.Background(), req)
	require.NoError(t, err)
	require.Len(t, contents, 1)

	text, ok := contents[0].(mcp.TextResourceContents)
	require.True(t, ok)
	assert.Equal(t, "hevy2notion://sync_state", text.URI)
	assert.JSONEq(t, `{"last_workout_id":"w9","present":true}`, text.Text)
}

func TestSyncStateResourceError(t *testing.T) {
	f := newFixture("")
	f.store.LoadErr = errors.New("boom")

	_, err := f.h.syncState(context.Background(), mcp.ReadResourceRequest{})
	assert.Error(t, err)
}
