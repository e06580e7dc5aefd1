// Package store persists tasks and the emotional log.
//
// Tasks are saved with replace semantics: every SaveTasks call writes the
// whole collection. Emotions are append-only. Three backends share the
// same contract: JSONL files (the default), SQLite and Badger.
package store

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/amonks/mindful/task"
)

// Backend names accepted by Open.
const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
	BackendBadger = "badger"
)

// ErrUnknownBackend is returned by Open for an unrecognized backend name.
var ErrUnknownBackend = errors.New("unknown store backend")

// Store is the durable home of the board.
type Store interface {
	// LoadTasks returns every task in saved order.
	LoadTasks(ctx context.Context) ([]task.Task, error)
	// SaveTasks replaces the stored tasks with tasks.
	SaveTasks(ctx context.Context, tasks []task.Task) error
	// LoadEmotions returns the emotional log oldest first.
	LoadEmotions(ctx context.Context) ([]task.EmotionalState, error)
	// SaveEmotion appends one entry to the emotional log.
	SaveEmotion(ctx context.Context, entry task.EmotionalState) error
	// Clear removes all tasks and emotions.
	Clear(ctx context.Context) error
	// Close releases resources held by the store.
	Close() error
}

// Watchable is implemented by stores backed by a directory that other
// processes may change.
type Watchable interface {
	WatchPath() string
}

// Config selects and configures a backend.
type Config struct {
	// Backend is one of BackendFile, BackendSQLite or BackendBadger.
	// Empty selects BackendFile.
	Backend string

	// Dir holds the store's files. Required unless InMemory is set.
	Dir string

	// InMemory keeps Badger data in memory. Only valid for BackendBadger.
	InMemory bool

	// Logger receives backend diagnostics. Defaults to slog.Default().
	Logger *slog.Logger
}

// Open opens the configured backend.
func Open(cfg Config) (Store, error) {
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	if cfg.Dir == "" && !cfg.InMemory {
		return nil, fmt.Errorf("store directory is required")
	}

	switch cfg.Backend {
	case "", BackendFile:
		return OpenFileStore(cfg.Dir), nil
	case BackendSQLite:
		return OpenSQLiteStore(filepath.Join(cfg.Dir, SQLiteFile))
	case BackendBadger:
		return OpenBadgerStore(BadgerConfig{
			Path:       filepath.Join(cfg.Dir, BadgerDir),
			InMemory:   cfg.InMemory,
			SyncWrites: !cfg.InMemory,
			Logger:     cfg.Logger,
		})
	default:
		return nil, fmt.Errorf("%w %q: must be %s, %s, or %s", ErrUnknownBackend, cfg.Backend, BackendFile, BackendSQLite, BackendBadger)
	}
}

// ValidBackends returns the supported backend names.
func ValidBackends() []string {
	return []string{BackendFile, BackendSQLite, BackendBadger}
}
