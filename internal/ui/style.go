package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/indent"
	"github.com/muesli/reflow/wordwrap"

	"github.com/amonks/mindful/task"
)

// DefaultWrapWidth is used for prose when the terminal width is unknown.
const DefaultWrapWidth = 72

var quadrantColors = map[task.Quadrant]lipgloss.Color{
	task.QuadrantDoFirst:   lipgloss.Color("1"),
	task.QuadrantSchedule:  lipgloss.Color("4"),
	task.QuadrantDelegate:  lipgloss.Color("3"),
	task.QuadrantEliminate: lipgloss.Color("8"),
}

var (
	headingStyle = lipgloss.NewStyle().Bold(true)
	mutedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	focusStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("2"))
)

// QuadrantStyle returns the style used for a quadrant's label.
func QuadrantStyle(q task.Quadrant) lipgloss.Style {
	style := lipgloss.NewStyle()
	if color, ok := quadrantColors[q]; ok {
		style = style.Foreground(color)
	}
	return style
}

// QuadrantBadge renders the quadrant label in its color.
func QuadrantBadge(q task.Quadrant) string {
	return QuadrantStyle(q).Render(q.Label())
}

// Heading renders a section title.
func Heading(text string) string {
	return headingStyle.Render(text)
}

// Muted renders secondary text.
func Muted(text string) string {
	return mutedStyle.Render(text)
}

// Focus renders the in-progress marker text.
func Focus(text string) string {
	return focusStyle.Render(text)
}

// Wrap word-wraps text to width and indents every line by prefix spaces.
func Wrap(text string, width int, prefix uint) string {
	if width <= 0 {
		width = DefaultWrapWidth
	}
	wrapped := wordwrap.String(strings.TrimSpace(text), width-int(prefix))
	if prefix == 0 {
		return wrapped
	}
	return indent.String(wrapped, prefix)
}
