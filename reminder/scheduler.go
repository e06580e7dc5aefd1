// Package reminder nudges the user when a task's reminder time arrives.
//
// A Scheduler reloads tasks on every tick and notifies about reminders
// that fell due within the last window. Each reminder is delivered at most
// once per scheduler, so overlapping ticks are harmless.
package reminder

import (
	"context"
	"log/slog"
	"time"

	"github.com/amonks/mindful/task"
)

const (
	// DefaultInterval is how often the scheduler checks for due reminders.
	DefaultInterval = 30 * time.Second

	// DefaultWindow is how far back a reminder still counts as due.
	DefaultWindow = 60 * time.Second
)

// TaskSource supplies the current tasks. store.Store satisfies it.
type TaskSource interface {
	LoadTasks(ctx context.Context) ([]task.Task, error)
}

// Options configures a Scheduler.
type Options struct {
	// Interval between checks. Defaults to DefaultInterval.
	Interval time.Duration

	// Window is the look-back for due reminders. Defaults to DefaultWindow.
	Window time.Duration

	// Now returns the current time. Defaults to time.Now.
	Now func() time.Time

	// Logger receives load and delivery failures. Defaults to slog.Default().
	Logger *slog.Logger

	// Changes triggers an immediate check when it receives a value.
	Changes <-chan struct{}
}

// Scheduler checks for due reminders on a fixed interval.
type Scheduler struct {
	source   TaskSource
	notifier Notifier
	opts     Options

	delivered map[string]int64
}

// New creates a scheduler.
func New(source TaskSource, notifier Notifier, opts Options) *Scheduler {
	if opts.Interval <= 0 {
		opts.Interval = DefaultInterval
	}
	if opts.Window <= 0 {
		opts.Window = DefaultWindow
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	return &Scheduler{
		source:    source,
		notifier:  notifier,
		opts:      opts,
		delivered: make(map[string]int64),
	}
}

// Due returns unfinished tasks whose reminder is at or before now and
// after now minus window.
func Due(tasks []task.Task, now time.Time, window time.Duration) []task.Task {
	nowMs := task.Millis(now)
	oldest := nowMs - window.Milliseconds()

	var due []task.Task
	for _, t := range tasks {
		if t.Reminder == nil || t.Status == task.StatusDone {
			continue
		}
		if *t.Reminder <= nowMs && *t.Reminder > oldest {
			due = append(due, t)
		}
	}
	return due
}

// Check runs one tick and returns how many reminders were delivered.
func (s *Scheduler) Check(ctx context.Context) (int, error) {
	tasks, err := s.source.LoadTasks(ctx)
	if err != nil {
		return 0, err
	}

	now := s.opts.Now()
	due := Due(tasks, now, s.opts.Window)
	s.prune(due)

	sent := 0
	for _, t := range due {
		if s.delivered[t.ID] == *t.Reminder {
			continue
		}
		if err := s.notifier.Notify(ctx, t); err != nil {
			s.opts.Logger.Error("deliver reminder", "task", t.ID, "error", err)
			continue
		}
		s.delivered[t.ID] = *t.Reminder
		sent++
	}
	return sent, nil
}

// prune forgets deliveries that are no longer due so the set stays small.
func (s *Scheduler) prune(due []task.Task) {
	keep := make(map[string]bool, len(due))
	for _, t := range due {
		keep[t.ID] = true
	}
	for id := range s.delivered {
		if !keep[id] {
			delete(s.delivered, id)
		}
	}
}

// Run checks immediately, then on every interval and every change signal,
// until ctx is cancelled. Check failures are logged and do not stop the loop.
func (s *Scheduler) Run(ctx context.Context) error {
	ticker := time.NewTicker(s.opts.Interval)
	defer ticker.Stop()

	s.tick(ctx)
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			s.tick(ctx)
		case _, ok := <-s.opts.Changes:
			if !ok {
				s.opts.Changes = nil
				continue
			}
			s.opts.Logger.Debug("store changed, checking reminders")
			s.tick(ctx)
		}
	}
}

func (s *Scheduler) tick(ctx context.Context) {
	if _, err := s.Check(ctx); err != nil {
		s.opts.Logger.Error("check reminders", "error", err)
	}
}
