// Package editor opens tasks in the user's editor and reports whether the
// process is attached to a terminal.
package editor

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"golang.org/x/term"
)

// IsInteractive returns true if stdin is a terminal.
func IsInteractive() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}

// IsTerminalOutput returns true if stdout is a terminal.
func IsTerminalOutput() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}

// Edit opens path in $VISUAL or $EDITOR (vi when neither is set) and waits
// for it to exit. Editor values may carry arguments, as in "code --wait".
func Edit(path string) error {
	name, args := editorCommand(os.Getenv("VISUAL"), os.Getenv("EDITOR"))

	cmd := exec.Command(name, append(args, path)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return fmt.Errorf("editor exited with status %d", exitErr.ExitCode())
		}
		return fmt.Errorf("failed to run editor: %w", err)
	}

	return nil
}

func editorCommand(visual, editor string) (string, []string) {
	for _, value := range []string{visual, editor} {
		if fields := strings.Fields(value); len(fields) > 0 {
			return fields[0], fields[1:]
		}
	}
	return "vi", nil
}
