// Package task implements the single-focus Eisenhower task model.
//
// Tasks live in one of four quadrants and move through a one-way lifecycle:
// backlog, in progress, done. At most one task may be in progress at a time,
// and starting anything other than the highest-priority backlog task needs
// an explicit confirmation.
//
// Every operation is a pure function over a task slice. Callers own the
// slice; operations return a fresh copy and never mutate their input.
//
// The public API mirrors the CLI commands:
//   - Create, AttemptStart, Start, Complete, Delete for the lifecycle
//   - Reorder, DragSwap for backlog arrangement
//   - DeriveViews, ComputeStats for querying
package task

import (
	"fmt"
	"strings"

	internalstrings "github.com/amonks/mindful/internal/strings"
	"github.com/amonks/mindful/internal/validation"
)

// Status represents the lifecycle state of a task.
type Status string

const (
	// StatusBacklog indicates the task is waiting to be worked on.
	StatusBacklog Status = "BACKLOG"

	// StatusInProgress indicates the task is the current focus.
	StatusInProgress Status = "IN_PROGRESS"

	// StatusDone indicates the task has been completed.
	StatusDone Status = "DONE"
)

// ValidStatuses returns all valid status values.
func ValidStatuses() []Status {
	return []Status{StatusBacklog, StatusInProgress, StatusDone}
}

// IsValid returns true if the status is a known valid value.
func (s Status) IsValid() bool {
	for _, valid := range ValidStatuses() {
		if s == valid {
			return true
		}
	}
	return false
}

// ParseStatus accepts canonical names and their lowercase or dashed forms.
func ParseStatus(value string) (Status, error) {
	normalized := strings.ReplaceAll(strings.ToUpper(strings.TrimSpace(value)), "-", "_")
	status := Status(normalized)
	if !status.IsValid() {
		return "", validation.FormatInvalidValueError(ErrInvalidStatus, Status(value), ValidStatuses())
	}
	return status, nil
}

// Direction is a one-step move within a backlog group.
type Direction string

const (
	DirectionUp   Direction = "up"
	DirectionDown Direction = "down"
)

// ParseDirection parses "up" or "down".
func ParseDirection(value string) (Direction, error) {
	switch Direction(internalstrings.NormalizeLowerTrimSpace(value)) {
	case DirectionUp:
		return DirectionUp, nil
	case DirectionDown:
		return DirectionDown, nil
	default:
		return "", fmt.Errorf("invalid direction %q: must be up or down", value)
	}
}

// MaxContentLength is the maximum size of task content in bytes.
const MaxContentLength = 2000

// DefaultVisibleLimit is how many backlog and completed tasks are shown
// before the remainder is summarized.
const DefaultVisibleLimit = 5
