// Package syncer mirrors the latest Hevy workout into a Notion page.
//
// A run fetches the most recent workout, skips it when its id equals the
// persisted last-synced id, and otherwise writes the page title property,
// appends the workout blocks and records the id. Writes are best effort:
// a failed write is logged and reported, and the id is recorded anyway.
package syncer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/claude/hevy2notion/internal/convert"
	"github.com/claude/hevy2notion/internal/models"
	"github.com/claude/hevy2notion/internal/state"
)

// Run outcomes.
const (
	StatusSynced     = "synced"
	StatusSkipped    = "skipped"
	StatusNoWorkouts = "no_workouts"
)

// ErrFetch marks errors raised while fetching workouts from Hevy.
var ErrFetch = errors.New("fetching hevy workouts")

// WorkoutSource returns the newest page of workouts.
type WorkoutSource interface {
	LatestWorkouts(ctx context.Context) (*models.WorkoutsPage, error)
}

// PageWriter performs the two Notion writes of a sync.
type PageWriter interface {
	UpdatePageProperties(ctx context.Context, pageID string, update models.PageUpdate) error
	AppendBlockChildren(ctx context.Context, blockID string, children models.BlockChildren) error
}

// Options identifies the Notion target.
type Options struct {
	// PageID is the database row page that receives the workout.
	PageID string
	// Property is the rich text property set to the workout title.
	Property string
}

// Result describes one run.
type Result struct {
	RunID        string   `json:"run_id"`
	Status       string   `json:"status"`
	WorkoutID    string   `json:"workout_id,omitempty"`
	WorkoutTitle string   `json:"workout_title,omitempty"`
	Errors       []string `json:"errors,omitempty"`

	errs []error
}

// Err joins the write and persist errors of the run, or nil.
func (r *Result) Err() error {
	return errors.Join(r.errs...)
}

func (r *Result) addErr(err error) {
	r.errs = append(r.errs, err)
	r.Errors = append(r.Errors, err.Error())
}

// Preview is the latest workout as it would be written, without writing.
type Preview struct {
	Workout       models.Workout `json:"workout"`
	Description   string         `json:"description"`
	LastWorkoutID string         `json:"last_workout_id,omitempty"`
	AlreadySynced bool           `json:"already_synced"`
}

// Syncer runs fetch → dedup check → sync cycles. Runs within one process
// are serialized; nothing guards against a second process.
type Syncer struct {
	source WorkoutSource
	writer PageWriter
	store  state.Store
	opts   Options
	log    *slog.Logger

	mu sync.Mutex
}

// New creates a Syncer.
func New(source WorkoutSource, writer PageWriter, store state.Store, opts Options, log *slog.Logger) *Syncer {
	if opts.Property == "" {
		opts.Property = convert.DefaultProperty
	}
	return &Syncer{
		source: source,
		writer: writer,
		store:  store,
		opts:   opts,
		log:    log,
	}
}

// AlreadySynced reports whether the most recent workout (the first of
// workouts) carries the persisted id. With no persisted id nothing has been
// synced yet.
func AlreadySynced(workouts []models.Workout, lastID string, ok bool) bool {
	if !ok || len(workouts) == 0 {
		return false
	}
	return workouts[0].ID == lastID
}

// Run performs one cycle. The returned error is non-nil only when the cycle
// could not start (fetch or state read failed); write failures are in
// Result.Err.
func (s *Syncer) Run(ctx context.Context) (*Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	res := &Result{RunID: uuid.NewString()}
	log := s.log.With("run_id", res.RunID)

	page, err := s.source.LatestWorkouts(ctx)
	if err != nil {
		log.Error("fetching hevy data failed", "error", err)
		return res, fmt.Errorf("%w: %w", ErrFetch, err)
	}

	lastID, ok, err := s.store.Load(ctx)
	if err != nil {
		log.Error("reading sync state failed", "error", err)
		return res, fmt.Errorf("reading sync state: %w", err)
	}

	workout, found := page.Latest()
	if !found {
		res.Status = StatusNoWorkouts
		log.Info("no workouts returned by hevy")
		return res, nil
	}
	res.WorkoutID = workout.ID
	res.WorkoutTitle = workout.Title

	if AlreadySynced(page.Workouts, lastID, ok) {
		res.Status = StatusSkipped
		log.Info("latest workout already synced", "workout_id", workout.ID)
		return res, nil
	}

	s.sync(ctx, log, workout, res)
	res.Status = StatusSynced
	return res, nil
}

// sync writes one workout to Notion and records its id. Each step runs even
// if the previous one failed.
func (s *Syncer) sync(ctx context.Context, log *slog.Logger, w models.Workout, res *Result) {
	log = log.With("workout_id", w.ID)

	if err := s.writer.UpdatePageProperties(ctx, s.opts.PageID, convert.TitleProperties(w, s.opts.Property)); err != nil {
		log.Error("updating notion properties failed", "error", err)
		res.addErr(fmt.Errorf("updating properties: %w", err))
	}

	if err := s.writer.AppendBlockChildren(ctx, s.opts.PageID, convert.WorkoutBlocks(w)); err != nil {
		log.Error("appending notion blocks failed", "error", err)
		res.addErr(fmt.Errorf("appending blocks: %w", err))
	}

	if err := s.store.Save(ctx, w.ID); err != nil {
		log.Error("saving sync state failed", "error", err)
		res.addErr(fmt.Errorf("saving sync state: %w", err))
	}

	log.Info("workout synced", "title", w.Title, "errors", len(res.errs))
}

// Preview fetches the latest workout and renders it without writing.
// It returns nil and no error when Hevy has no workouts.
func (s *Syncer) Preview(ctx context.Context) (*Preview, error) {
	page, err := s.source.LatestWorkouts(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFetch, err)
	}
	workout, found := page.Latest()
	if !found {
		return nil, nil
	}

	lastID, ok, err := s.store.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("reading sync state: %w", err)
	}

	return &Preview{
		Workout:       workout,
		Description:   convert.Description(workout),
		LastWorkoutID: lastID,
		AlreadySynced: AlreadySynced(page.Workouts, lastID, ok),
	}, nil
}

// LastWorkoutID returns the persisted id, if any.
func (s *Syncer) LastWorkoutID(ctx context.Context) (string, bool, error) {
	return s.store.Load(ctx)
}

// Reset clears the persisted id so the next run syncs the latest workout
// again.
func (s *Syncer) Reset(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.store.Clear(ctx); err != nil {
		return fmt.Errorf("clearing sync state: %w", err)
	}
	s.log.Info("sync state cleared")
	return nil
}
