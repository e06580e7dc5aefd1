// Package board holds the application state and applies every change
// through a single dispatcher.
//
// A Board owns the task list, the emotional log, the start waiting for
// confirmation and the check-in waiting for an answer. Each accepted
// mutation is followed by a persistence call. Persistence failures are
// logged and never reported to the caller; the in-memory state stays
// authoritative.
package board

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/amonks/mindful/store"
	"github.com/amonks/mindful/task"
)

// Board is the application state object.
type Board struct {
	mu sync.Mutex

	store  store.Store
	logger *slog.Logger
	policy task.CheckInPolicy
	now    func() time.Time

	tasks          []task.Task
	emotions       []task.EmotionalState
	pendingStart   string
	pendingCheckIn task.CheckInContext
}

// Options configures a Board.
type Options struct {
	// Store persists state. If nil, the board is memory-only.
	Store store.Store

	// Logger receives persistence failures. Defaults to slog.Default().
	Logger *slog.Logger

	// Policy decides whether completing a task asks for a check-in.
	// Defaults to a RandomPolicy with task.DefaultCheckInProbability.
	Policy task.CheckInPolicy

	// Now returns the current time. Defaults to time.Now.
	Now func() time.Time

	// PendingStart restores a start awaiting confirmation.
	PendingStart string

	// PendingCheckIn restores a check-in awaiting an answer.
	PendingCheckIn task.CheckInContext
}

// New creates a board holding the given state without touching the store.
func New(tasks []task.Task, emotions []task.EmotionalState, opts Options) *Board {
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.Policy == nil {
		opts.Policy = task.RandomPolicy{Probability: task.DefaultCheckInProbability}
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	b := &Board{
		store:          opts.Store,
		logger:         opts.Logger,
		policy:         opts.Policy,
		now:            opts.Now,
		tasks:          task.Clone(tasks),
		emotions:       append([]task.EmotionalState(nil), emotions...),
		pendingStart:   opts.PendingStart,
		pendingCheckIn: opts.PendingCheckIn,
	}
	if b.pendingStart != "" {
		if _, ok := task.Find(b.tasks, b.pendingStart); !ok {
			b.pendingStart = ""
		}
	}
	return b
}

// Load reads tasks and emotions from opts.Store and assigns missing
// orders, saving at once when any changed. Read failures are logged and
// leave the corresponding collection empty.
func Load(ctx context.Context, opts Options) *Board {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	var tasks []task.Task
	var emotions []task.EmotionalState
	if opts.Store != nil {
		var err error
		tasks, err = opts.Store.LoadTasks(ctx)
		if err != nil {
			logger.Error("load tasks", "error", err)
			tasks = nil
		}
		emotions, err = opts.Store.LoadEmotions(ctx)
		if err != nil {
			logger.Error("load emotions", "error", err)
			emotions = nil
		}
	}

	b := New(tasks, emotions, opts)
	if migrated, changed := task.AssignMissingOrder(b.tasks); changed {
		b.logger.Info("assigned order to legacy tasks")
		b.tasks = migrated
		b.persistTasks(ctx)
	}
	return b
}

// Tasks returns a copy of every task.
func (b *Board) Tasks() []task.Task {
	b.mu.Lock()
	defer b.mu.Unlock()
	return task.Clone(b.tasks)
}

// Emotions returns a copy of the emotional log.
func (b *Board) Emotions() []task.EmotionalState {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]task.EmotionalState(nil), b.emotions...)
}

// Views derives the board columns from the current tasks.
func (b *Board) Views() task.Views {
	b.mu.Lock()
	defer b.mu.Unlock()
	return task.DeriveViews(b.tasks)
}

// Stats summarizes the current state.
func (b *Board) Stats() task.Stats {
	b.mu.Lock()
	defer b.mu.Unlock()
	return task.ComputeStats(b.tasks, b.emotions)
}

// PendingStart returns the task waiting for start confirmation.
func (b *Board) PendingStart() (task.Task, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.pendingStart == "" {
		return task.Task{}, false
	}
	return task.Find(b.tasks, b.pendingStart)
}

// PendingCheckIn returns the context of a check-in waiting for an answer.
func (b *Board) PendingCheckIn() (task.CheckInContext, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.pendingCheckIn, b.pendingCheckIn != ""
}

// Resolve returns the full task ID for a unique prefix.
func (b *Board) Resolve(prefix string) (string, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return task.NewIDIndex(b.tasks).Resolve(prefix)
}

// PrefixLengths returns the shortest unique prefix length for each task ID.
func (b *Board) PrefixLengths() map[string]int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return task.NewIDIndex(b.tasks).PrefixLengths()
}

func (b *Board) persistTasks(ctx context.Context) {
	if b.store == nil {
		return
	}
	if err := b.store.SaveTasks(ctx, b.tasks); err != nil {
		b.logger.Error("save tasks", "error", err)
	}
}

func (b *Board) persistEmotion(ctx context.Context, entry task.EmotionalState) {
	if b.store == nil {
		return
	}
	if err := b.store.SaveEmotion(ctx, entry); err != nil {
		b.logger.Error("save emotion", "error", err)
	}
}

func (b *Board) clearStore(ctx context.Context) {
	if b.store == nil {
		return
	}
	if err := b.store.Clear(ctx); err != nil {
		b.logger.Error("clear store", "error", err)
	}
}
