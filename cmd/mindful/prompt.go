package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

// Prompter asks the user questions on the terminal.
type Prompter interface {
	// Confirm asks a yes/no question and returns true if they say yes.
	Confirm(message string) (bool, error)
	// Ask prints message and returns the trimmed line typed in reply.
	Ask(message string) (string, error)
}

// StdioPrompter implements Prompter using stdin/stdout.
type StdioPrompter struct {
	In  io.Reader
	Out io.Writer
}

var prompter Prompter = StdioPrompter{In: os.Stdin, Out: os.Stdout}

// Confirm asks the user a yes/no question via stdin/stdout.
func (p StdioPrompter) Confirm(message string) (bool, error) {
	response, err := p.Ask(message + " [y/n]:")
	if err != nil {
		return false, err
	}
	return response == "y" || response == "Y" || response == "yes" || response == "Yes", nil
}

// Ask reads one line from stdin.
func (p StdioPrompter) Ask(message string) (string, error) {
	fmt.Fprintf(p.Out, "%s ", message)
	line, err := bufio.NewReader(p.In).ReadString('\n')
	if err != nil && line == "" {
		return "", err
	}
	return strings.TrimSpace(line), nil
}
