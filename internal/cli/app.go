package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/claude/hevy2notion/internal/config"
	"github.com/claude/hevy2notion/internal/hevy"
	"github.com/claude/hevy2notion/internal/notion"
	"github.com/claude/hevy2notion/internal/state"
	"github.com/claude/hevy2notion/internal/syncer"
)

// app is the wiring shared by every command: config, logger, state store
// and the syncer built on top of them.
type app struct {
	cfg    *config.Config
	log    *slog.Logger
	store  state.Store
	syncer *syncer.Syncer
}

func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

func loadConfig(opts *RootOptions) (*config.Config, error) {
	if err := config.LoadDotEnv(opts.EnvFile); err != nil {
		return nil, err
	}
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	return cfg, nil
}

// newApp loads config and opens the state store. Logs go to logOut.
func newApp(ctx context.Context, opts *RootOptions, logOut io.Writer) (*app, error) {
	cfg, err := loadConfig(opts)
	if err != nil {
		return nil, err
	}

	log := newLogger(logOut, opts.Verbose)
	log.Debug("config loaded", "state_backend", cfg.State.Backend, "property", cfg.Notion.Property)

	store, err := state.Open(ctx, cfg.State)
	if err != nil {
		return nil, fmt.Errorf("opening %s state store: %w", cfg.State.Backend, err)
	}

	s := syncer.New(
		hevy.NewClient(cfg.Hevy.BaseURL, cfg.Hevy.APIKey),
		notion.NewClient(cfg.Notion.BaseURL, cfg.Notion.Token, cfg.Notion.Version),
		store,
		syncer.Options{PageID: cfg.Notion.DatabaseID, Property: cfg.Notion.Property},
		log,
	)

	return &app{cfg: cfg, log: log, store: store, syncer: s}, nil
}

func (a *app) Close() error {
	return a.store.Close()
}
