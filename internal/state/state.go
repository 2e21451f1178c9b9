// Package state persists the id of the last workout mirrored to Notion.
//
// Only the current value is kept. An absent value is a normal state (first
// run, or after Clear) and is reported as ok == false without an error.
package state

import (
	"context"
	"fmt"

	"github.com/claude/hevy2notion/internal/config"
)

// Store holds the single last-synced workout id.
type Store interface {
	Load(ctx context.Context) (id string, ok bool, err error)
	Save(ctx context.Context, id string) error
	Clear(ctx context.Context) error
	Close() error
}

// Open creates the Store selected by cfg.Backend.
func Open(ctx context.Context, cfg config.StateConfig) (Store, error) {
	switch cfg.Backend {
	case config.BackendFile, "":
		return NewFileStore(cfg.Path), nil
	case config.BackendSQLite:
		s, err := OpenSQLite(ctx, cfg.Path)
		if err != nil {
			return nil, err
		}
		return s, nil
	case config.BackendPostgres:
		s, err := OpenPostgres(ctx, cfg.DSN)
		if err != nil {
			return nil, err
		}
		return s, nil
	case config.BackendS3:
		s, err := OpenS3(ctx, cfg.Bucket, cfg.Key, cfg.Region, cfg.Endpoint)
		if err != nil {
			return nil, err
		}
		return s, nil
	default:
		return nil, fmt.Errorf("unknown state backend %q", cfg.Backend)
	}
}
