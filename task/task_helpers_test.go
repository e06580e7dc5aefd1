package task

import (
	"testing"
	"time"
)

var testNow = time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)

func backlogTask(id string, q Quadrant, order int, createdAt int64) Task {
	return Task{
		ID:        id,
		Content:   "task " + id,
		Quadrant:  q,
		Status:    StatusBacklog,
		CreatedAt: createdAt,
		Order:     IntPtr(order),
	}
}

func mustFind(t *testing.T, tasks []Task, id string) Task {
	t.Helper()
	found, ok := Find(tasks, id)
	if !ok {
		t.Fatalf("expected task %s to exist", id)
	}
	return found
}

func taskIDs(tasks []Task) []string {
	out := make([]string, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, t.ID)
	}
	return out
}

func equalIDs(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func countInProgress(tasks []Task) int {
	n := 0
	for _, t := range tasks {
		if t.Status == StatusInProgress {
			n++
		}
	}
	return n
}
