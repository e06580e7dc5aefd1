package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/amonks/mindful/internal/markdown"
	"github.com/amonks/mindful/internal/ui"
	"github.com/amonks/mindful/task"
)

const detailIndent = 2

func formatTaskDetail(t task.Task, prefixLengths map[string]int, now time.Time) string {
	highlight := logHighlighter(prefixLengths, ui.HighlightID)

	rows := [][2]string{
		{"ID", highlight(t.ID)},
		{"Quadrant", ui.QuadrantBadge(t.Quadrant)},
		{"Status", string(t.Status)},
		{"Created", formatAbsolute(t.Created(), now)},
	}
	if completedAt, ok := t.Completed(); ok {
		rows = append(rows, [2]string{"Completed", formatAbsolute(completedAt, now)})
		if d, ok := leadTime(t, now); ok {
			rows = append(rows, [2]string{"Took", ui.FormatDurationShort(d)})
		}
	}
	if t.Order != nil {
		rows = append(rows, [2]string{"Order", fmt.Sprintf("%d", *t.Order)})
	}
	if at, ok := t.ReminderTime(); ok {
		rows = append(rows, [2]string{"Reminder", at.Local().Format("2006-01-02 15:04") + " (" + ui.FormatTimeUntil(at, now) + ")"})
	}

	var b strings.Builder
	for _, row := range rows {
		fmt.Fprintf(&b, "%-10s %s\n", row[0]+":", row[1])
	}
	b.WriteString("\n")
	b.WriteString(renderContent(t.Content))
	b.WriteString("\n")
	return b.String()
}

func renderContent(content string) string {
	if markdown.Plain(content) {
		return ui.Wrap(content, ui.DefaultWrapWidth, detailIndent)
	}
	rendered := markdown.SafeRender(ui.DefaultWrapWidth, detailIndent, []byte(content))
	if len(rendered) == 0 {
		return ui.Wrap(content, ui.DefaultWrapWidth, detailIndent)
	}
	return string(rendered)
}

func formatAbsolute(at time.Time, now time.Time) string {
	return at.Local().Format("2006-01-02 15:04") + " (" + ui.FormatTimeAgo(at, now) + ")"
}
