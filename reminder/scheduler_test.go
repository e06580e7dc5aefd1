package reminder

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/amonks/mindful/task"
)

type staticSource struct {
	mu    sync.Mutex
	tasks []task.Task
	err   error
}

func (s *staticSource) LoadTasks(ctx context.Context) ([]task.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return task.Clone(s.tasks), s.err
}

func (s *staticSource) set(tasks []task.Task) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tasks = tasks
}

type recordingNotifier struct {
	mu   sync.Mutex
	ids  []string
	fail bool
}

func (n *recordingNotifier) Notify(ctx context.Context, t task.Task) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.fail {
		return errors.New("no display")
	}
	n.ids = append(n.ids, t.ID)
	return nil
}

func (n *recordingNotifier) delivered() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]string(nil), n.ids...)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

var reminderNow = time.UnixMilli(1700000100000)

func reminderTask(id string, status task.Status, reminderAt time.Time) task.Task {
	t := task.Task{
		ID:        id,
		Content:   "task " + id,
		Quadrant:  task.QuadrantDoFirst,
		Status:    status,
		CreatedAt: 1700000000000,
		Reminder:  task.Int64Ptr(task.Millis(reminderAt)),
	}
	if status == task.StatusDone {
		t.CompletedAt = task.Int64Ptr(1700000050000)
	}
	return t
}

func TestDue(t *testing.T) {
	window := DefaultWindow
	tasks := []task.Task{
		reminderTask("now", task.StatusBacklog, reminderNow),
		reminderTask("recent", task.StatusInProgress, reminderNow.Add(-30*time.Second)),
		reminderTask("edge", task.StatusBacklog, reminderNow.Add(-window)),
		reminderTask("stale", task.StatusBacklog, reminderNow.Add(-5*time.Minute)),
		reminderTask("future", task.StatusBacklog, reminderNow.Add(time.Second)),
		reminderTask("done", task.StatusDone, reminderNow),
		{ID: "none", Content: "no reminder", Quadrant: task.QuadrantDoFirst, Status: task.StatusBacklog},
	}

	due := Due(tasks, reminderNow, window)
	var ids []string
	for _, d := range due {
		ids = append(ids, d.ID)
	}
	if strings.Join(ids, ",") != "now,recent" {
		t.Fatalf("expected now,recent, got %v", ids)
	}
}

func TestCheckDeliversOnce(t *testing.T) {
	source := &staticSource{tasks: []task.Task{
		reminderTask("a", task.StatusBacklog, reminderNow.Add(-10*time.Second)),
	}}
	notifier := &recordingNotifier{}
	now := reminderNow
	s := New(source, notifier, Options{Now: func() time.Time { return now }, Logger: discardLogger()})

	for i := 0; i < 3; i++ {
		if _, err := s.Check(context.Background()); err != nil {
			t.Fatalf("check: %v", err)
		}
		now = now.Add(10 * time.Second)
	}

	if got := notifier.delivered(); len(got) != 1 || got[0] != "a" {
		t.Fatalf("expected one delivery for a, got %v", got)
	}
}

func TestCheckRedeliversChangedReminder(t *testing.T) {
	source := &staticSource{tasks: []task.Task{
		reminderTask("a", task.StatusBacklog, reminderNow.Add(-10*time.Second)),
	}}
	notifier := &recordingNotifier{}
	s := New(source, notifier, Options{Now: func() time.Time { return reminderNow }, Logger: discardLogger()})

	if _, err := s.Check(context.Background()); err != nil {
		t.Fatalf("check: %v", err)
	}
	source.set([]task.Task{reminderTask("a", task.StatusBacklog, reminderNow.Add(-5*time.Second))})
	if _, err := s.Check(context.Background()); err != nil {
		t.Fatalf("check: %v", err)
	}

	if got := notifier.delivered(); len(got) != 2 {
		t.Fatalf("expected two deliveries, got %v", got)
	}
}

func TestCheckSkipsTaskCompletedBeforeTick(t *testing.T) {
	source := &staticSource{tasks: []task.Task{
		reminderTask("a", task.StatusDone, reminderNow.Add(-10*time.Second)),
	}}
	notifier := &recordingNotifier{}
	s := New(source, notifier, Options{Now: func() time.Time { return reminderNow }, Logger: discardLogger()})

	sent, err := s.Check(context.Background())
	if err != nil {
		t.Fatalf("check: %v", err)
	}
	if sent != 0 {
		t.Fatalf("expected no deliveries, got %d", sent)
	}
}

func TestCheckRetriesFailedDelivery(t *testing.T) {
	source := &staticSource{tasks: []task.Task{
		reminderTask("a", task.StatusBacklog, reminderNow.Add(-10*time.Second)),
	}}
	notifier := &recordingNotifier{fail: true}
	var logs bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, nil))
	s := New(source, notifier, Options{Now: func() time.Time { return reminderNow }, Logger: logger})

	sent, err := s.Check(context.Background())
	if err != nil {
		t.Fatalf("check: %v", err)
	}
	if sent != 0 {
		t.Fatalf("expected no deliveries, got %d", sent)
	}
	if !strings.Contains(logs.String(), "deliver reminder") {
		t.Fatalf("expected delivery failure to be logged, got %q", logs.String())
	}

	notifier.mu.Lock()
	notifier.fail = false
	notifier.mu.Unlock()
	if sent, _ := s.Check(context.Background()); sent != 1 {
		t.Fatalf("expected retry to deliver, got %d", sent)
	}
}

func TestCheckReturnsLoadError(t *testing.T) {
	source := &staticSource{err: errors.New("disk gone")}
	s := New(source, &recordingNotifier{}, Options{Logger: discardLogger()})
	if _, err := s.Check(context.Background()); err == nil {
		t.Fatal("expected load error")
	}
}

func TestRunChecksOnChangeSignal(t *testing.T) {
	source := &staticSource{}
	notifier := &recordingNotifier{}
	changes := make(chan struct{}, 1)
	s := New(source, notifier, Options{
		Interval: time.Hour,
		Now:      func() time.Time { return reminderNow },
		Logger:   discardLogger(),
		Changes:  changes,
	})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Run(ctx) }()

	source.set([]task.Task{reminderTask("a", task.StatusBacklog, reminderNow)})
	changes <- struct{}{}

	deadline := time.Now().Add(2 * time.Second)
	for len(notifier.delivered()) == 0 && time.Now().Before(deadline) {
		time.Sleep(10 * time.Millisecond)
	}
	cancel()

	if err := <-done; err != nil {
		t.Fatalf("expected nil on cancel, got %v", err)
	}
	if got := notifier.delivered(); len(got) != 1 {
		t.Fatalf("expected one delivery, got %v", got)
	}
}

func TestWatchSignalsOnWrite(t *testing.T) {
	dir := t.TempDir()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	changes, err := Watch(ctx, dir, discardLogger())
	if err != nil {
		t.Fatalf("watch: %v", err)
	}

	if err := os.WriteFile(filepath.Join(dir, "store.lock"), nil, 0o644); err != nil {
		t.Fatalf("write lock: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "tasks.jsonl"), []byte("{}\n"), 0o644); err != nil {
		t.Fatalf("write tasks: %v", err)
	}

	select {
	case <-changes:
	case <-time.After(2 * time.Second):
		t.Fatal("expected change signal")
	}
}
