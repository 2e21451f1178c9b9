// Package testutil provides in-memory stand-ins for the Hevy source, the
// Notion writer and the state store.
package testutil

import (
	"context"
	"io"
	"log/slog"
	"sync"

	"github.com/claude/hevy2notion/internal/models"
)

// DiscardLogger returns a logger that drops everything.
func DiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func floatPtr(f float64) *float64 { return &f }

// LegDay is the reference workout: one squat set of 100 kg x 5.
func LegDay() models.Workout {
	return models.Workout{
		ID:    "w1",
		Title: "Leg Day",
		Exercises: []models.Exercise{{
			Title: "Squat",
			Sets:  []models.WorkoutSet{{WeightKg: floatPtr(100), Reps: 5, SetType: "normal"}},
		}},
	}
}

// FakeSource returns a fixed page or error.
type FakeSource struct {
	Page  *models.WorkoutsPage
	Err   error
	Calls int
}

// NewFakeSource returns a source serving the given workouts, newest first.
func NewFakeSource(workouts ...models.Workout) *FakeSource {
	return &FakeSource{Page: &models.WorkoutsPage{Page: 1, PageCount: 1, Workouts: workouts}}
}

func (f *FakeSource) LatestWorkouts(context.Context) (*models.WorkoutsPage, error) {
	f.Calls++
	if f.Err != nil {
		return nil, f.Err
	}
	return f.Page, nil
}

// PropertyWrite records an UpdatePageProperties call.
type PropertyWrite struct {
	PageID string
	Update models.PageUpdate
}

// BlockWrite records an AppendBlockChildren call.
type BlockWrite struct {
	BlockID  string
	Children models.BlockChildren
}

// FakeWriter records Notion writes and fails them on demand.
type FakeWriter struct {
	PropertiesErr error
	BlocksErr     error

	Properties []PropertyWrite
	Blocks     []BlockWrite
}

func (f *FakeWriter) UpdatePageProperties(_ context.Context, pageID string, update models.PageUpdate) error {
	f.Properties = append(f.Properties, PropertyWrite{PageID: pageID, Update: update})
	return f.PropertiesErr
}

func (f *FakeWriter) AppendBlockChildren(_ context.Context, blockID string, children models.BlockChildren) error {
	f.Blocks = append(f.Blocks, BlockWrite{BlockID: blockID, Children: children})
	return f.BlocksErr
}

// Writes returns the total number of write calls.
func (f *FakeWriter) Writes() int {
	return len(f.Properties) + len(f.Blocks)
}

// MemStore is an in-memory state.Store.
type MemStore struct {
	mu      sync.Mutex
	id      string
	ok      bool
	LoadErr error
	SaveErr error
}

// NewMemStore returns a store seeded with id; an empty id means absent.
func NewMemStore(id string) *MemStore {
	return &MemStore{id: id, ok: id != ""}
}

func (m *MemStore) Load(context.Context) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.LoadErr != nil {
		return "", false, m.LoadErr
	}
	return m.id, m.ok, nil
}

func (m *MemStore) Save(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.SaveErr != nil {
		return m.SaveErr
	}
	m.id, m.ok = id, true
	return nil
}

func (m *MemStore) Clear(context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.id, m.ok = "", false
	return nil
}

func (m *MemStore) Close() error { return nil }

// ID returns the stored id and whether one is set.
func (m *MemStore) ID() (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.id, m.ok
}
