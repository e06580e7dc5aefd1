package task

import (
	"time"

	"github.com/google/uuid"
)

// Task is a single unit of work on the board.
//
// Timestamps are epoch milliseconds so records round-trip unchanged through
// every store and the tabular export.
type Task struct {
	// ID is an opaque unique identifier (UUID v4).
	ID string `json:"id"`

	// Content is the free-text description; immutable after creation.
	Content string `json:"content"`

	// Quadrant is the Eisenhower cell; changes only through DragSwap.
	Quadrant Quadrant `json:"quadrant"`

	// Status is the lifecycle state; never regresses.
	Status Status `json:"status"`

	// CreatedAt is when the task was created.
	CreatedAt int64 `json:"createdAt"`

	// CompletedAt is set exactly once, on transition to done.
	CompletedAt *int64 `json:"completedAt,omitempty"`

	// Order ranks the task within its quadrant and status group.
	// Nil only for records written before ordering existed.
	Order *int `json:"order,omitempty"`

	// Reminder is an optional time to nudge the user about the task.
	Reminder *int64 `json:"reminder,omitempty"`
}

// NewID returns a fresh task identifier.
func NewID() string {
	return uuid.NewString()
}

// Millis converts a time to epoch milliseconds.
func Millis(t time.Time) int64 {
	return t.UnixMilli()
}

// FromMillis converts epoch milliseconds to a local time.
func FromMillis(ms int64) time.Time {
	return time.UnixMilli(ms)
}

// IntPtr returns a pointer to v.
func IntPtr(v int) *int {
	return &v
}

// Int64Ptr returns a pointer to v.
func Int64Ptr(v int64) *int64 {
	return &v
}

// OrderValue returns the order, or 0 when it has never been assigned.
func (t Task) OrderValue() int {
	if t.Order == nil {
		return 0
	}
	return *t.Order
}

// CompletedAtValue returns the completion time in ms, or 0 when absent.
func (t Task) CompletedAtValue() int64 {
	if t.CompletedAt == nil {
		return 0
	}
	return *t.CompletedAt
}

// Created returns the creation time.
func (t Task) Created() time.Time {
	return FromMillis(t.CreatedAt)
}

// Completed returns the completion time if the task is done.
func (t Task) Completed() (time.Time, bool) {
	if t.CompletedAt == nil {
		return time.Time{}, false
	}
	return FromMillis(*t.CompletedAt), true
}

// ReminderTime returns the reminder time if one is set.
func (t Task) ReminderTime() (time.Time, bool) {
	if t.Reminder == nil {
		return time.Time{}, false
	}
	return FromMillis(*t.Reminder), true
}

// clone returns a deep copy so pointer fields are never shared between
// the input and output of an operation.
func (t Task) clone() Task {
	out := t
	if t.CompletedAt != nil {
		out.CompletedAt = Int64Ptr(*t.CompletedAt)
	}
	if t.Order != nil {
		out.Order = IntPtr(*t.Order)
	}
	if t.Reminder != nil {
		out.Reminder = Int64Ptr(*t.Reminder)
	}
	return out
}

// Clone returns a deep copy of tasks.
func Clone(tasks []Task) []Task {
	if tasks == nil {
		return nil
	}
	out := make([]Task, len(tasks))
	for i, t := range tasks {
		out[i] = t.clone()
	}
	return out
}

func indexOf(tasks []Task, id string) int {
	for i := range tasks {
		if tasks[i].ID == id {
			return i
		}
	}
	return -1
}

// Find returns the task with the given ID.
func Find(tasks []Task, id string) (Task, bool) {
	idx := indexOf(tasks, id)
	if idx < 0 {
		return Task{}, false
	}
	return tasks[idx].clone(), true
}
