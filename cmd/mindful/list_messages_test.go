package main

import "testing"

func TestBacklogEmptyMessageNoTasks(t *testing.T) {
	message := backlogEmptyMessage(0)
	if message != "No tasks yet. Add one with `mindful add`." {
		t.Fatalf("expected empty board message, got %q", message)
	}
}

func TestBacklogEmptyMessageWithOtherTasks(t *testing.T) {
	message := backlogEmptyMessage(3)
	if message != "Backlog is clear." {
		t.Fatalf("expected clear backlog message, got %q", message)
	}
}

func TestBacklogHiddenMessage(t *testing.T) {
	if message := backlogHiddenMessage(0); message != "" {
		t.Fatalf("expected no message, got %q", message)
	}
	if message := backlogHiddenMessage(4); message != "+4 more (use --all to show)" {
		t.Fatalf("expected hidden count, got %q", message)
	}
}

func TestDoneHiddenMessage(t *testing.T) {
	if message := doneHiddenMessage(1); message != "+1 older task hidden" {
		t.Fatalf("expected singular message, got %q", message)
	}
	if message := doneHiddenMessage(7); message != "+7 older tasks hidden" {
		t.Fatalf("expected plural message, got %q", message)
	}
}
