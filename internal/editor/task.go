package editor

import (
	"bytes"
	"fmt"
	"os"
	"strings"
	"text/template"
	"time"

	"github.com/BurntSushi/toml"

	internalstrings "github.com/amonks/mindful/internal/strings"
	"github.com/amonks/mindful/task"
)

// TaskData represents the data used to render the TOML template.
type TaskData struct {
	// Quadrant is the Eisenhower quadrant name.
	Quadrant string
	// Remind is the reminder as typed by the user, if any.
	Remind string
	// Content is the task text, placed after the frontmatter.
	Content string
}

// DefaultCreateData returns TaskData with default values for creating a new task.
func DefaultCreateData() TaskData {
	return TaskData{Quadrant: string(task.QuadrantDoFirst)}
}

var taskTemplate = template.Must(template.New("task").Funcs(template.FuncMap{
	"quadrants": quadrantList,
}).Parse(`quadrant = {{ printf "%q" .Quadrant }} # {{ quadrants }}
remind = {{ printf "%q" .Remind }} # empty, +30m, 2006-01-02 15:04, or RFC 3339
---
{{ .Content }}
`))

// RenderTaskTOML renders the task data as a TOML string for editing.
func RenderTaskTOML(data TaskData) (string, error) {
	var buf bytes.Buffer
	if err := taskTemplate.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("render template: %w", err)
	}
	return buf.String(), nil
}

// ParsedTask represents the parsed result from the TOML editor output.
type ParsedTask struct {
	Quadrant task.Quadrant
	Reminder *time.Time
	Content  string
}

type taskFrontmatter struct {
	Quadrant string `toml:"quadrant"`
	Remind   string `toml:"remind"`
}

// ParseTaskTOML parses the TOML content from the editor. Relative
// reminders are resolved against now.
func ParseTaskTOML(content string, now time.Time) (*ParsedTask, error) {
	frontmatter, body := splitFrontmatter(internalstrings.NormalizeNewlines(content))

	var raw taskFrontmatter
	if _, err := toml.Decode(frontmatter, &raw); err != nil {
		return nil, fmt.Errorf("parse TOML: %w", err)
	}

	quadrant := task.QuadrantDoFirst
	if !internalstrings.IsBlank(raw.Quadrant) {
		parsed, err := task.ParseQuadrant(raw.Quadrant)
		if err != nil {
			return nil, err
		}
		quadrant = parsed
	}

	reminder, err := task.ParseReminder(raw.Remind, now)
	if err != nil {
		return nil, err
	}

	text := internalstrings.NormalizeContent(body)
	if err := task.ValidateContent(text); err != nil {
		return nil, err
	}

	return &ParsedTask{Quadrant: quadrant, Reminder: reminder, Content: text}, nil
}

func splitFrontmatter(content string) (string, string) {
	content = strings.TrimLeft(content, "\n")
	if content == "" {
		return "", ""
	}

	lines := strings.Split(content, "\n")
	separatorIndex := -1
	for i, line := range lines {
		if strings.TrimSpace(line) == "---" {
			separatorIndex = i
			break
		}
	}
	if separatorIndex == -1 {
		return content, ""
	}

	frontmatter := strings.Join(lines[:separatorIndex], "\n")
	body := strings.Join(lines[separatorIndex+1:], "\n")
	return frontmatter, body
}

func createTaskTempFile() (*os.File, error) {
	return os.CreateTemp("", "mindful-task-*.md")
}

func quadrantList() string {
	valid := task.ValidQuadrants()
	values := make([]string, 0, len(valid))
	for _, q := range valid {
		values = append(values, string(q))
	}
	return strings.Join(values, ", ")
}

// EditTask opens the editor with pre-populated data and returns the parsed result.
func EditTask(data TaskData, now time.Time) (*ParsedTask, error) {
	content, err := RenderTaskTOML(data)
	if err != nil {
		return nil, err
	}

	tmpfile, err := createTaskTempFile()
	if err != nil {
		return nil, fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmpfile.Name()
	defer os.Remove(tmpPath)

	if _, err := tmpfile.WriteString(content); err != nil {
		tmpfile.Close()
		return nil, fmt.Errorf("write temp file: %w", err)
	}
	if err := tmpfile.Close(); err != nil {
		return nil, fmt.Errorf("close temp file: %w", err)
	}

	if err := Edit(tmpPath); err != nil {
		return nil, err
	}

	edited, err := os.ReadFile(tmpPath)
	if err != nil {
		return nil, fmt.Errorf("read edited file: %w", err)
	}

	return ParseTaskTOML(string(edited), now)
}

// ToCreateOptions converts a ParsedTask to task.CreateOptions.
func (p *ParsedTask) ToCreateOptions() task.CreateOptions {
	return task.CreateOptions{
		Quadrant: p.Quadrant,
		Reminder: p.Reminder,
	}
}
