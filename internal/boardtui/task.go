package boardtui

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	internalstrings "github.com/amonks/mindful/internal/strings"
	"github.com/amonks/mindful/internal/ui"
	"github.com/amonks/mindful/task"
)

type taskItem struct {
	task   task.Task
	marked bool
}

func (item taskItem) FilterValue() string {
	return item.task.Content
}

type taskItemDelegate struct {
	normalStyle   lipgloss.Style
	selectedStyle lipgloss.Style
	markedStyle   lipgloss.Style
	doneStyle     lipgloss.Style
	now           func() time.Time
}

func newTaskItemDelegate(now func() time.Time) taskItemDelegate {
	return taskItemDelegate{
		normalStyle:   itemNormalStyle,
		selectedStyle: itemSelectedStyle,
		markedStyle:   itemMarkedStyle,
		doneStyle:     valueMuted,
		now:           now,
	}
}

func (d taskItemDelegate) Height() int                             { return 1 }
func (d taskItemDelegate) Spacing() int                            { return 0 }
func (d taskItemDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd { return nil }

func (d taskItemDelegate) Render(w io.Writer, m list.Model, index int, listItem list.Item) {
	item, ok := listItem.(taskItem)
	if !ok {
		return
	}

	line := formatTaskItem(item, m.Width(), d.now())
	style := d.normalStyle
	switch {
	case index == m.Index():
		style = d.selectedStyle
	case item.marked:
		style = d.markedStyle
	case item.task.Status == task.StatusDone:
		style = d.doneStyle
	}
	fmt.Fprint(w, style.Render(line))
}

func formatTaskItem(item taskItem, width int, now time.Time) string {
	content := internalstrings.NormalizeWhitespace(item.task.Content)
	prefix := "  "
	if item.marked {
		prefix = "* "
	}

	var suffix string
	switch item.task.Status {
	case task.StatusBacklog:
		prefix += "[" + item.task.Quadrant.Label() + "] "
		if at, ok := item.task.ReminderTime(); ok {
			suffix = " (" + ui.FormatTimeUntil(at, now) + ")"
		}
	case task.StatusDone:
		if at, ok := item.task.Completed(); ok {
			suffix = " (" + ui.FormatTimeAgo(at, now) + ")"
		}
	}

	line := prefix + content + suffix
	return truncateText(line, width)
}

// tasksToItems converts a board column into list items, marking the task
// picked as a swap source.
func tasksToItems(tasks []task.Task, markedID string) []list.Item {
	items := make([]list.Item, 0, len(tasks))
	for _, t := range tasks {
		items = append(items, taskItem{task: t, marked: t.ID == markedID})
	}
	return items
}

// addForm collects the fields of a new task.
type addForm struct {
	content  textinput.Model
	remind   textinput.Model
	quadrant task.Quadrant
	field    int
}

func newAddForm() addForm {
	content := textinput.New()
	content.Placeholder = "What needs doing?"
	content.CharLimit = task.MaxContentLength
	content.Prompt = ""
	content.Focus()

	remind := textinput.New()
	remind.Placeholder = "+30m or 2006-01-02 15:04"
	remind.Prompt = ""

	return addForm{content: content, remind: remind, quadrant: task.QuadrantDoFirst}
}

func (form addForm) cycleQuadrant(delta int) addForm {
	quadrants := task.ValidQuadrants()
	current := 0
	for i, q := range quadrants {
		if q == form.quadrant {
			current = i
			break
		}
	}
	next := (current + delta + len(quadrants)) % len(quadrants)
	form.quadrant = quadrants[next]
	return form
}

func (form addForm) advanceField() addForm {
	form.field = (form.field + 1) % 2
	if form.field == 0 {
		form.content.Focus()
		form.remind.Blur()
	} else {
		form.remind.Focus()
		form.content.Blur()
	}
	return form
}

func (form addForm) Update(msg tea.Msg) (addForm, tea.Cmd) {
	var cmd tea.Cmd
	if form.field == 0 {
		form.content, cmd = form.content.Update(msg)
	} else {
		form.remind, cmd = form.remind.Update(msg)
	}
	return form, cmd
}

func (form addForm) View() string {
	rows := []string{
		labelStyle.Render("New task"),
		"",
		formatFormRow("Content", form.content.View(), form.field == 0),
		formatFormRow("Quadrant", "< "+ui.QuadrantBadge(form.quadrant)+" >", false),
		formatFormRow("Remind", form.remind.View(), form.field == 1),
		"",
		valueMuted.Render("enter save | tab next field | ctrl+left/right quadrant | esc cancel"),
	}
	return strings.Join(rows, "\n")
}

func formatFormRow(label, value string, focused bool) string {
	marker := "  "
	if focused {
		marker = selectedBorder.Render("> ")
	}
	return fmt.Sprintf("%s%s %s", marker, labelStyle.Render(label+":"), value)
}

func truncateText(value string, width int) string {
	if width <= 0 {
		return value
	}
	return runewidth.Truncate(value, width, "...")
}
