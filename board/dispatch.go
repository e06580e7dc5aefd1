package board

import (
	"context"
	"fmt"
	"time"

	"github.com/amonks/mindful/task"
)

// Event is a request to change the board. Only the types in this file
// implement it.
type Event interface {
	event()
}

// CreateTask adds a backlog task at the bottom of its quadrant.
type CreateTask struct {
	Content  string
	Quadrant task.Quadrant
	Reminder *time.Time
}

// AttemptStart starts a task, subject to the single-focus and priority rules.
type AttemptStart struct {
	ID string
}

// ConfirmStart starts the task that AttemptStart left pending.
type ConfirmStart struct{}

// CancelStart abandons a pending start.
type CancelStart struct{}

// CompleteTask marks the in-progress task done.
type CompleteTask struct {
	ID string
}

// DeleteTask removes a task. Unknown IDs are ignored.
type DeleteTask struct {
	ID string
}

// ReorderTask moves a task one step within its quadrant and status group.
type ReorderTask struct {
	ID        string
	Direction task.Direction
}

// DragSwap exchanges the positions, including quadrants, of two tasks.
type DragSwap struct {
	SourceID string
	TargetID string
}

// LogEmotion appends a check-in and answers any pending prompt.
type LogEmotion struct {
	Feeling task.Feeling
	Context task.CheckInContext
}

// DismissCheckIn drops a pending check-in without logging anything.
type DismissCheckIn struct{}

// Startup asks for a startup check-in when there are tasks on the board.
type Startup struct{}

// ReplaceAll swaps both collections wholesale, as an import does.
type ReplaceAll struct {
	Tasks    []task.Task
	Emotions []task.EmotionalState
}

// ClearAll removes every task and emotion.
type ClearAll struct{}

func (CreateTask) event()     {}
func (AttemptStart) event()   {}
func (ConfirmStart) event()   {}
func (CancelStart) event()    {}
func (CompleteTask) event()   {}
func (DeleteTask) event()     {}
func (ReorderTask) event()    {}
func (DragSwap) event()       {}
func (LogEmotion) event()     {}
func (DismissCheckIn) event() {}
func (Startup) event()        {}
func (ReplaceAll) event()     {}
func (ClearAll) event()       {}

// Result describes what a dispatched event did.
type Result struct {
	// Changed reports whether the task list or log changed.
	Changed bool

	// Task is the task the event acted on, when there is one.
	Task task.Task

	// Outcome is set for AttemptStart and ConfirmStart.
	Outcome task.StartOutcome

	// CheckIn is the context of a check-in raised by this event.
	CheckIn task.CheckInContext
}

// Dispatch applies an event. Validation failures are returned; the
// persistence that follows an accepted change never fails the call.
func (b *Board) Dispatch(ctx context.Context, ev Event) (Result, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	switch ev := ev.(type) {
	case CreateTask:
		return b.create(ctx, ev)
	case AttemptStart:
		return b.attemptStart(ctx, ev)
	case ConfirmStart:
		return b.confirmStart(ctx)
	case CancelStart:
		changed := b.pendingStart != ""
		b.pendingStart = ""
		return Result{Changed: changed}, nil
	case CompleteTask:
		return b.complete(ctx, ev)
	case DeleteTask:
		return b.delete(ctx, ev)
	case ReorderTask:
		updated, ok := task.Reorder(b.tasks, ev.ID, ev.Direction)
		return b.applyMove(ctx, updated, ok, ev.ID)
	case DragSwap:
		updated, ok := task.DragSwap(b.tasks, ev.SourceID, ev.TargetID)
		return b.applyMove(ctx, updated, ok, ev.SourceID)
	case LogEmotion:
		return b.logEmotion(ctx, ev)
	case DismissCheckIn:
		changed := b.pendingCheckIn != ""
		b.pendingCheckIn = ""
		return Result{Changed: changed}, nil
	case Startup:
		if len(b.tasks) == 0 {
			return Result{}, nil
		}
		b.pendingCheckIn = task.ContextStartup
		return Result{CheckIn: task.ContextStartup}, nil
	case ReplaceAll:
		return b.replaceAll(ctx, ev)
	case ClearAll:
		b.tasks = nil
		b.emotions = nil
		b.pendingStart = ""
		b.pendingCheckIn = ""
		b.clearStore(ctx)
		return Result{Changed: true}, nil
	default:
		return Result{}, fmt.Errorf("unknown event %T", ev)
	}
}

func (b *Board) create(ctx context.Context, ev CreateTask) (Result, error) {
	updated, created, err := task.Create(b.tasks, ev.Content, task.CreateOptions{
		Quadrant: ev.Quadrant,
		Reminder: ev.Reminder,
	}, b.now())
	if err != nil {
		return Result{}, err
	}
	b.tasks = updated
	b.persistTasks(ctx)
	return Result{Changed: true, Task: created}, nil
}

func (b *Board) attemptStart(ctx context.Context, ev AttemptStart) (Result, error) {
	updated, outcome, err := task.AttemptStart(b.tasks, ev.ID)
	target, _ := task.Find(b.tasks, ev.ID)
	if err != nil {
		return Result{Task: target, Outcome: outcome}, err
	}

	switch outcome {
	case task.Started:
		b.tasks = updated
		b.pendingStart = ""
		b.persistTasks(ctx)
		started, _ := task.Find(b.tasks, ev.ID)
		return Result{Changed: true, Task: started, Outcome: outcome}, nil
	case task.StartPendingConfirmation:
		b.pendingStart = ev.ID
		return Result{Task: target, Outcome: outcome}, nil
	default:
		return Result{Task: target, Outcome: outcome}, nil
	}
}

func (b *Board) confirmStart(ctx context.Context) (Result, error) {
	if b.pendingStart == "" {
		return Result{}, task.ErrNoPendingStart
	}
	id := b.pendingStart
	b.pendingStart = ""

	updated, err := task.Start(b.tasks, id)
	if err != nil {
		target, _ := task.Find(b.tasks, id)
		return Result{Task: target, Outcome: task.StartBlocked}, err
	}
	b.tasks = updated
	b.persistTasks(ctx)
	started, _ := task.Find(b.tasks, id)
	return Result{Changed: true, Task: started, Outcome: task.Started}, nil
}

func (b *Board) complete(ctx context.Context, ev CompleteTask) (Result, error) {
	updated, err := task.Complete(b.tasks, ev.ID, b.now())
	if err != nil {
		return Result{}, err
	}
	b.tasks = updated
	b.persistTasks(ctx)

	done, _ := task.Find(b.tasks, ev.ID)
	result := Result{Changed: true, Task: done}
	if b.policy.ShouldPrompt() {
		b.pendingCheckIn = task.ContextCompletion
		result.CheckIn = task.ContextCompletion
	}
	return result, nil
}

func (b *Board) delete(ctx context.Context, ev DeleteTask) (Result, error) {
	target, _ := task.Find(b.tasks, ev.ID)
	updated, ok := task.Delete(b.tasks, ev.ID)
	if !ok {
		return Result{}, nil
	}
	b.tasks = updated
	if b.pendingStart == ev.ID {
		b.pendingStart = ""
	}
	b.persistTasks(ctx)
	return Result{Changed: true, Task: target}, nil
}

func (b *Board) applyMove(ctx context.Context, updated []task.Task, ok bool, id string) (Result, error) {
	if !ok {
		return Result{}, nil
	}
	b.tasks = updated
	b.persistTasks(ctx)
	moved, _ := task.Find(b.tasks, id)
	return Result{Changed: true, Task: moved}, nil
}

func (b *Board) logEmotion(ctx context.Context, ev LogEmotion) (Result, error) {
	entry, err := task.NewEmotion(ev.Feeling, ev.Context, b.now())
	if err != nil {
		return Result{}, err
	}
	b.emotions = append(b.emotions, entry)
	b.pendingCheckIn = ""
	b.persistEmotion(ctx, entry)
	return Result{Changed: true}, nil
}

func (b *Board) replaceAll(ctx context.Context, ev ReplaceAll) (Result, error) {
	inProgress := 0
	for _, t := range ev.Tasks {
		if t.Status == task.StatusInProgress {
			inProgress++
		}
	}
	if inProgress > 1 {
		return Result{}, fmt.Errorf("%w: replacement has %d tasks in progress", task.ErrFocusOccupied, inProgress)
	}

	tasks := task.Clone(ev.Tasks)
	if migrated, changed := task.AssignMissingOrder(tasks); changed {
		tasks = migrated
	}

	b.tasks = tasks
	b.emotions = append([]task.EmotionalState(nil), ev.Emotions...)
	b.pendingStart = ""
	b.pendingCheckIn = ""

	b.clearStore(ctx)
	b.persistTasks(ctx)
	for _, entry := range b.emotions {
		b.persistEmotion(ctx, entry)
	}
	return Result{Changed: true}, nil
}
