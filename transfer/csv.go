// Package transfer exports and imports the board as a single CSV table.
//
// Tasks and emotions share one table. The Type column tells them apart and
// columns that do not apply to a row are left empty. Cells are quoted per
// RFC 4180 when they contain a comma, quote or newline.
//
// Import is all-or-nothing: the whole input is parsed and validated before
// anything is returned.
//
// encoding/csv reads a CRLF inside a quoted cell back as LF, so task
// content round-trips only when its newlines are already LF. Content
// created through the CLI and the board is normalized that way.
package transfer

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/amonks/mindful/task"
)

// Row types.
const (
	TypeTask    = "TASK"
	TypeEmotion = "EMOTION"
)

// Header is the first row of every export.
var Header = []string{
	"Type", "ID", "Content", "Quadrant", "Status", "CreatedAt", "CompletedAt",
	"Order", "Reminder", "Timestamp", "Feeling", "Context",
}

const (
	colType = iota
	colID
	colContent
	colQuadrant
	colStatus
	colCreatedAt
	colCompletedAt
	colOrder
	colReminder
	colTimestamp
	colFeeling
	colContext
	columnCount
)

// ErrMalformed is wrapped by every import parse failure.
var ErrMalformed = errors.New("malformed import")

// ParseError reports the line that made an import fail.
type ParseError struct {
	Line int
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("line %d: %v", e.Line, e.Err)
}

func (e *ParseError) Unwrap() []error {
	return []error{ErrMalformed, e.Err}
}

// Export writes the header, every task, then every emotion.
func Export(w io.Writer, tasks []task.Task, emotions []task.EmotionalState) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(Header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	for _, t := range tasks {
		row := make([]string, columnCount)
		row[colType] = TypeTask
		row[colID] = t.ID
		row[colContent] = t.Content
		row[colQuadrant] = string(t.Quadrant)
		row[colStatus] = string(t.Status)
		row[colCreatedAt] = strconv.FormatInt(t.CreatedAt, 10)
		row[colCompletedAt] = formatOptionalInt64(t.CompletedAt)
		if t.Order != nil {
			row[colOrder] = strconv.Itoa(*t.Order)
		}
		row[colReminder] = formatOptionalInt64(t.Reminder)
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("write task %s: %w", t.ID, err)
		}
	}

	for i, e := range emotions {
		row := make([]string, columnCount)
		row[colType] = TypeEmotion
		row[colTimestamp] = strconv.FormatInt(e.Timestamp, 10)
		row[colFeeling] = string(e.Feeling)
		row[colContext] = string(e.Context)
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("write emotion %d: %w", i, err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("flush csv: %w", err)
	}
	return nil
}

// Import parses an export. Any malformed row fails the whole import with
// a *ParseError and no partial results.
func Import(r io.Reader) ([]task.Task, []task.EmotionalState, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = columnCount

	header, err := reader.Read()
	if err == io.EOF {
		return nil, nil, &ParseError{Line: 1, Err: errors.New("missing header")}
	}
	if err != nil {
		return nil, nil, csvError(err)
	}
	if err := checkHeader(header); err != nil {
		return nil, nil, &ParseError{Line: 1, Err: err}
	}

	var (
		tasks    []task.Task
		emotions []task.EmotionalState
		seen     = make(map[string]int)
		focus    string
	)
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, nil, csvError(err)
		}
		line, _ := reader.FieldPos(0)

		switch record[colType] {
		case TypeTask:
			t, err := parseTask(record)
			if err != nil {
				return nil, nil, &ParseError{Line: line, Err: err}
			}
			if first, dup := seen[t.ID]; dup {
				return nil, nil, &ParseError{Line: line, Err: fmt.Errorf("duplicate task id %q (first on line %d)", t.ID, first)}
			}
			seen[t.ID] = line
			if t.Status == task.StatusInProgress {
				if focus != "" {
					return nil, nil, &ParseError{Line: line, Err: fmt.Errorf("%w: %q and %q are both in progress", task.ErrFocusOccupied, focus, t.ID)}
				}
				focus = t.ID
			}
			tasks = append(tasks, t)
		case TypeEmotion:
			e, err := parseEmotion(record)
			if err != nil {
				return nil, nil, &ParseError{Line: line, Err: err}
			}
			emotions = append(emotions, e)
		default:
			return nil, nil, &ParseError{Line: line, Err: fmt.Errorf("unknown row type %q", record[colType])}
		}
	}

	return tasks, emotions, nil
}

func checkHeader(header []string) error {
	if len(header) != len(Header) {
		return fmt.Errorf("expected %d columns, got %d", len(Header), len(header))
	}
	for i, name := range Header {
		if header[i] != name {
			return fmt.Errorf("expected column %d to be %q, got %q", i+1, name, header[i])
		}
	}
	return nil
}

func csvError(err error) error {
	var parseErr *csv.ParseError
	if errors.As(err, &parseErr) {
		return &ParseError{Line: parseErr.StartLine, Err: parseErr.Err}
	}
	return fmt.Errorf("read csv: %w", err)
}

func parseTask(record []string) (task.Task, error) {
	t := task.Task{
		ID:       record[colID],
		Content:  record[colContent],
		Quadrant: task.Quadrant(record[colQuadrant]),
		Status:   task.Status(record[colStatus]),
	}

	createdAt, err := strconv.ParseInt(record[colCreatedAt], 10, 64)
	if err != nil {
		return task.Task{}, fmt.Errorf("invalid CreatedAt %q", record[colCreatedAt])
	}
	t.CreatedAt = createdAt

	if t.CompletedAt, err = parseOptionalInt64("CompletedAt", record[colCompletedAt]); err != nil {
		return task.Task{}, err
	}
	if t.Reminder, err = parseOptionalInt64("Reminder", record[colReminder]); err != nil {
		return task.Task{}, err
	}
	if record[colOrder] != "" {
		order, err := strconv.Atoi(record[colOrder])
		if err != nil {
			return task.Task{}, fmt.Errorf("invalid Order %q", record[colOrder])
		}
		t.Order = task.IntPtr(order)
	}

	if err := task.ValidateTask(&t); err != nil {
		return task.Task{}, err
	}
	return t, nil
}

func parseEmotion(record []string) (task.EmotionalState, error) {
	ts, err := strconv.ParseInt(record[colTimestamp], 10, 64)
	if err != nil {
		return task.EmotionalState{}, fmt.Errorf("invalid Timestamp %q", record[colTimestamp])
	}
	feeling := task.Feeling(record[colFeeling])
	if !feeling.IsValid() {
		return task.EmotionalState{}, fmt.Errorf("%w: %q", task.ErrInvalidFeeling, record[colFeeling])
	}
	context := task.CheckInContext(record[colContext])
	if !context.IsValid() {
		return task.EmotionalState{}, fmt.Errorf("%w: %q", task.ErrInvalidContext, record[colContext])
	}
	return task.EmotionalState{Timestamp: ts, Feeling: feeling, Context: context}, nil
}

func formatOptionalInt64(v *int64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatInt(*v, 10)
}

func parseOptionalInt64(name, value string) (*int64, error) {
	if value == "" {
		return nil, nil
	}
	n, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid %s %q", name, value)
	}
	return &n, nil
}
