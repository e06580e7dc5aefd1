package editor

import (
	"errors"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/amonks/mindful/task"
)

var editNow = time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)

func TestRenderTaskTOML_Create(t *testing.T) {
	content, err := RenderTaskTOML(DefaultCreateData())
	if err != nil {
		t.Fatalf("RenderTaskTOML failed: %v", err)
	}

	if !strings.Contains(content, `quadrant = "DO_FIRST"`) {
		t.Error("expected default quadrant DO_FIRST")
	}
	if !strings.Contains(content, "ELIMINATE") {
		t.Error("expected quadrant comment to list every quadrant")
	}
	if !strings.Contains(content, `remind = ""`) {
		t.Error("expected empty reminder")
	}
	if !strings.Contains(content, "---") {
		t.Error("expected frontmatter separator")
	}
}

func TestRenderTaskTOML_Prefilled(t *testing.T) {
	content, err := RenderTaskTOML(TaskData{Quadrant: "SCHEDULE", Remind: "+1h", Content: "Plan the week"})
	if err != nil {
		t.Fatalf("RenderTaskTOML failed: %v", err)
	}

	if !strings.Contains(content, `quadrant = "SCHEDULE"`) {
		t.Error("expected quadrant to be set")
	}
	if !strings.Contains(content, `remind = "+1h"`) {
		t.Error("expected reminder to be set")
	}
	if !strings.HasSuffix(content, "---\nPlan the week\n") {
		t.Errorf("expected content after separator, got %q", content)
	}
}

func TestParseTaskTOML(t *testing.T) {
	content := `
 quadrant = "schedule"
 remind = "+30m"
 ---
 Write the quarterly report
 with charts
 `

	parsed, err := ParseTaskTOML(content, editNow)
	if err != nil {
		t.Fatalf("ParseTaskTOML failed: %v", err)
	}

	if parsed.Quadrant != task.QuadrantSchedule {
		t.Errorf("expected SCHEDULE, got %q", parsed.Quadrant)
	}
	if parsed.Reminder == nil || !parsed.Reminder.Equal(editNow.Add(30*time.Minute)) {
		t.Errorf("expected reminder in 30m, got %v", parsed.Reminder)
	}
	if !strings.HasPrefix(parsed.Content, "Write the quarterly report") {
		t.Errorf("expected trimmed content, got %q", parsed.Content)
	}
	if !strings.Contains(parsed.Content, "with charts") {
		t.Errorf("expected multi-line content, got %q", parsed.Content)
	}
}

func TestParseTaskTOML_DefaultsQuadrant(t *testing.T) {
	parsed, err := ParseTaskTOML("---\nCall mom\n", editNow)
	if err != nil {
		t.Fatalf("ParseTaskTOML failed: %v", err)
	}
	if parsed.Quadrant != task.QuadrantDoFirst {
		t.Errorf("expected DO_FIRST, got %q", parsed.Quadrant)
	}
	if parsed.Reminder != nil {
		t.Errorf("expected no reminder, got %v", parsed.Reminder)
	}
}

func TestParseTaskTOML_Validation(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr error
	}{
		{
			name:    "empty content",
			content: "quadrant = \"DO_FIRST\"\n---\n   \n",
			wantErr: task.ErrEmptyContent,
		},
		{
			name:    "invalid quadrant",
			content: "quadrant = \"urgent\"\n---\ntext\n",
			wantErr: task.ErrInvalidQuadrant,
		},
		{
			name:    "invalid reminder",
			content: "remind = \"later\"\n---\ntext\n",
			wantErr: task.ErrInvalidReminder,
		},
		{
			name:    "too long",
			content: "---\n" + strings.Repeat("a", task.MaxContentLength+1),
			wantErr: task.ErrContentTooLong,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseTaskTOML(tt.content, editNow)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestParseTaskTOML_BadTOML(t *testing.T) {
	if _, err := ParseTaskTOML("quadrant = \n---\ntext", editNow); err == nil {
		t.Fatal("expected TOML error")
	}
}

func TestToCreateOptions(t *testing.T) {
	at := editNow.Add(time.Hour)
	parsed := &ParsedTask{Quadrant: task.QuadrantDelegate, Reminder: &at, Content: "x"}

	opts := parsed.ToCreateOptions()

	if opts.Quadrant != task.QuadrantDelegate {
		t.Errorf("expected DELEGATE, got %v", opts.Quadrant)
	}
	if opts.Reminder == nil || !opts.Reminder.Equal(at) {
		t.Errorf("expected reminder %v, got %v", at, opts.Reminder)
	}
}

func TestCreateTaskTempFileExtension(t *testing.T) {
	file, err := createTaskTempFile()
	if err != nil {
		t.Fatalf("createTaskTempFile failed: %v", err)
	}
	t.Cleanup(func() {
		os.Remove(file.Name())
	})

	if !strings.HasSuffix(file.Name(), ".md") {
		t.Errorf("expected temp file to end with .md, got %q", file.Name())
	}
}
