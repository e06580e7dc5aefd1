package reminder

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"

	"github.com/charmbracelet/lipgloss"

	"github.com/amonks/mindful/board"
	"github.com/amonks/mindful/task"
)

// Notifier delivers a reminder for a task.
type Notifier interface {
	Notify(ctx context.Context, t task.Task) error
}

var (
	reminderTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("3"))
	reminderBodyStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("7"))
)

// TerminalNotifier writes reminders to a terminal.
type TerminalNotifier struct {
	W io.Writer
	// Bell rings the terminal bell before each reminder.
	Bell bool
}

// Notify writes one styled line for the reminder.
func (n TerminalNotifier) Notify(ctx context.Context, t task.Task) error {
	bell := ""
	if n.Bell {
		bell = "\a"
	}
	_, err := fmt.Fprintf(n.W, "%s%s %s\n", bell,
		reminderTitleStyle.Render(board.ReminderTitle+":"),
		reminderBodyStyle.Render(board.ReminderBody(t.Content)),
	)
	return err
}

// CommandNotifier runs an external command such as notify-send, passing the
// reminder body as the final argument.
type CommandNotifier struct {
	Command []string
}

// Notify runs the command and waits for it to exit.
func (n CommandNotifier) Notify(ctx context.Context, t task.Task) error {
	if len(n.Command) == 0 {
		return errors.New("reminder command is empty")
	}
	args := append(append([]string(nil), n.Command[1:]...), board.ReminderBody(t.Content))
	cmd := exec.CommandContext(ctx, n.Command[0], args...)
	if output, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("run %s: %w: %s", n.Command[0], err, output)
	}
	return nil
}

// MultiNotifier delivers to every notifier and joins their errors.
type MultiNotifier []Notifier

// Notify calls each notifier in turn.
func (m MultiNotifier) Notify(ctx context.Context, t task.Task) error {
	var errs []error
	for _, n := range m {
		if err := n.Notify(ctx, t); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
