package task

import (
	"errors"
	"fmt"
	"strings"

	"github.com/amonks/mindful/internal/validation"
)

var (
	// ErrFocusOccupied is returned when a task is already in progress.
	ErrFocusOccupied = errors.New("another task is already in progress")

	// ErrTaskNotFound is returned when a task with the given ID doesn't exist.
	ErrTaskNotFound = errors.New("task not found")

	// ErrAmbiguousTaskIDPrefix is returned when an ID prefix matches multiple tasks.
	ErrAmbiguousTaskIDPrefix = errors.New("ambiguous task ID prefix")

	// ErrNotInBacklog is returned when starting a task that is not in the backlog.
	ErrNotInBacklog = errors.New("task is not in the backlog")

	// ErrNotInProgress is returned when completing a task that is not in progress.
	ErrNotInProgress = errors.New("task is not in progress")

	// ErrNoTaskInProgress is returned when nothing is in focus.
	ErrNoTaskInProgress = errors.New("no task in progress")

	// ErrEmptyContent is returned when task content is empty.
	ErrEmptyContent = errors.New("content cannot be empty")

	// ErrContentTooLong is returned when task content exceeds MaxContentLength.
	ErrContentTooLong = errors.New("content exceeds maximum length")

	// ErrInvalidQuadrant is returned when an unknown quadrant is provided.
	ErrInvalidQuadrant = errors.New("invalid quadrant")

	// ErrInvalidStatus is returned when an unknown status is provided.
	ErrInvalidStatus = errors.New("invalid status")

	// ErrInvalidFeeling is returned when an unknown feeling is provided.
	ErrInvalidFeeling = errors.New("invalid feeling")

	// ErrInvalidContext is returned when an unknown check-in context is provided.
	ErrInvalidContext = errors.New("invalid check-in context")

	// ErrNoPendingStart is returned when confirming with nothing awaiting confirmation.
	ErrNoPendingStart = errors.New("no start awaiting confirmation")

	// ErrDoneMissingCompletedAt is returned when a done task has no completion time.
	ErrDoneMissingCompletedAt = errors.New("done task must have completedAt timestamp")

	// ErrNotDoneHasCompletedAt is returned when an unfinished task has a completion time.
	ErrNotDoneHasCompletedAt = errors.New("unfinished task cannot have completedAt timestamp")
)

// ValidateContent checks if the content is valid.
func ValidateContent(content string) error {
	if strings.TrimSpace(content) == "" {
		return ErrEmptyContent
	}
	if len(content) > MaxContentLength {
		return fmt.Errorf("%w: %d > %d", ErrContentTooLong, len(content), MaxContentLength)
	}
	return nil
}

// ValidateTask checks if a task record is internally consistent.
func ValidateTask(t *Task) error {
	if t.ID == "" {
		return fmt.Errorf("id cannot be empty")
	}
	if err := ValidateContent(t.Content); err != nil {
		return err
	}
	if !t.Quadrant.IsValid() {
		return fmt.Errorf("%w %q: must be %s", ErrInvalidQuadrant, t.Quadrant, quadrantValidList())
	}
	if !t.Status.IsValid() {
		return validation.FormatInvalidValueError(ErrInvalidStatus, t.Status, ValidStatuses())
	}
	if t.Status == StatusDone && t.CompletedAt == nil {
		return ErrDoneMissingCompletedAt
	}
	if t.Status != StatusDone && t.CompletedAt != nil {
		return ErrNotDoneHasCompletedAt
	}
	return nil
}
