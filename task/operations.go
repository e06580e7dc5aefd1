package task

import (
	"fmt"
	"time"

	internalstrings "github.com/amonks/mindful/internal/strings"
)

// CreateOptions configures a new task.
type CreateOptions struct {
	Quadrant Quadrant
	// Reminder is an optional reminder time.
	Reminder *time.Time
	// ID overrides the generated identifier. Used by tests and imports.
	ID string
}

// Create appends a new backlog task at the bottom of its quadrant.
// Newlines in content are stored as LF.
func Create(tasks []Task, content string, opts CreateOptions, now time.Time) ([]Task, Task, error) {
	content = internalstrings.NormalizeNewlines(content)
	if err := ValidateContent(content); err != nil {
		return nil, Task{}, err
	}
	if !opts.Quadrant.IsValid() {
		return nil, Task{}, fmt.Errorf("%w %q: must be %s", ErrInvalidQuadrant, opts.Quadrant, quadrantValidList())
	}

	id := opts.ID
	if id == "" {
		id = NewID()
	}

	created := Task{
		ID:        id,
		Content:   content,
		Quadrant:  opts.Quadrant,
		Status:    StatusBacklog,
		CreatedAt: Millis(now),
		Order:     IntPtr(NextOrder(tasks, opts.Quadrant)),
	}
	if opts.Reminder != nil {
		created.Reminder = Int64Ptr(Millis(*opts.Reminder))
	}

	out := Clone(tasks)
	out = append(out, created)
	return out, created.clone(), nil
}

// NextOrder returns one past the largest order among backlog tasks in the
// quadrant, or 1 when the quadrant's backlog is empty.
func NextOrder(tasks []Task, quadrant Quadrant) int {
	maxOrder := 0
	for _, t := range tasks {
		if t.Quadrant != quadrant || t.Status != StatusBacklog {
			continue
		}
		if t.OrderValue() > maxOrder {
			maxOrder = t.OrderValue()
		}
	}
	return maxOrder + 1
}

// StartOutcome reports the result of AttemptStart.
type StartOutcome int

const (
	// StartBlocked means another task is already in progress.
	StartBlocked StartOutcome = iota
	// StartPendingConfirmation means the task is not the top priority
	// and needs ConfirmStart before it begins.
	StartPendingConfirmation
	// Started means the task is now in progress.
	Started
)

// String returns a human-readable outcome name.
func (o StartOutcome) String() string {
	switch o {
	case StartBlocked:
		return "blocked"
	case StartPendingConfirmation:
		return "pending confirmation"
	case Started:
		return "started"
	default:
		return "unknown"
	}
}

// Focused returns the task currently in progress, if any.
func Focused(tasks []Task) (Task, bool) {
	return DeriveViews(tasks).Focus()
}

// AttemptStart starts the task when it is the top-priority backlog task.
// Otherwise the tasks are returned unchanged with StartBlocked (and an
// error wrapping ErrFocusOccupied) or StartPendingConfirmation.
func AttemptStart(tasks []Task, id string) ([]Task, StartOutcome, error) {
	target, ok := Find(tasks, id)
	if !ok {
		return tasks, StartBlocked, fmt.Errorf("%w: %s", ErrTaskNotFound, id)
	}

	views := DeriveViews(tasks)
	if focus, busy := views.Focus(); busy {
		return tasks, StartBlocked, fmt.Errorf("%w: %s", ErrFocusOccupied, focus.ID)
	}
	if target.Status != StatusBacklog {
		return tasks, StartBlocked, fmt.Errorf("%w: %s is %s", ErrNotInBacklog, id, target.Status)
	}

	top, ok := views.Top()
	if ok && top.ID != id {
		return tasks, StartPendingConfirmation, nil
	}

	started, err := Start(tasks, id)
	if err != nil {
		return tasks, StartBlocked, err
	}
	return started, Started, nil
}

// Start moves a backlog task to in progress without the priority check.
// Use it to carry out a confirmed start.
func Start(tasks []Task, id string) ([]Task, error) {
	idx := indexOf(tasks, id)
	if idx < 0 {
		return nil, fmt.Errorf("%w: %s", ErrTaskNotFound, id)
	}
	if focus, busy := Focused(tasks); busy {
		return nil, fmt.Errorf("%w: %s", ErrFocusOccupied, focus.ID)
	}
	if tasks[idx].Status != StatusBacklog {
		return nil, fmt.Errorf("%w: %s is %s", ErrNotInBacklog, id, tasks[idx].Status)
	}

	out := Clone(tasks)
	out[idx].Status = StatusInProgress
	return out, nil
}

// Complete marks an in-progress task as done at now.
func Complete(tasks []Task, id string, now time.Time) ([]Task, error) {
	idx := indexOf(tasks, id)
	if idx < 0 {
		return nil, fmt.Errorf("%w: %s", ErrTaskNotFound, id)
	}
	if tasks[idx].Status != StatusInProgress {
		return nil, fmt.Errorf("%w: %s is %s", ErrNotInProgress, id, tasks[idx].Status)
	}

	out := Clone(tasks)
	out[idx].Status = StatusDone
	out[idx].CompletedAt = Int64Ptr(Millis(now))
	return out, nil
}

// Delete removes the task regardless of status. Deleting an unknown ID is
// a no-op and reports false.
func Delete(tasks []Task, id string) ([]Task, bool) {
	idx := indexOf(tasks, id)
	if idx < 0 {
		return tasks, false
	}

	out := make([]Task, 0, len(tasks)-1)
	for i, t := range tasks {
		if i == idx {
			continue
		}
		out = append(out, t.clone())
	}
	return out, true
}
