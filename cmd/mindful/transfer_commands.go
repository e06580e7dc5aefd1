package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/amonks/mindful/board"
	"github.com/amonks/mindful/internal/editor"
	"github.com/amonks/mindful/transfer"
)

// export
var exportCmd = &cobra.Command{
	Use:   "export [file]",
	Short: "Write tasks and check-ins as CSV",
	Long: `Write tasks and check-ins as CSV.

Writes to stdout when no file is given or the file is "-".`,
	Args: cobra.MaximumNArgs(1),
	RunE: runExport,
}

// import
var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Replace the board with a CSV export",
	Long: `Replace the board with a CSV export.

Every task and check-in is replaced. A malformed file changes nothing.
Use "-" to read from stdin.`,
	Args: cobra.ExactArgs(1),
	RunE: runImport,
}

var importYes bool

// reset
var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Delete every task and check-in",
	Args:  cobra.NoArgs,
	RunE:  runReset,
}

var resetYes bool

func init() {
	rootCmd.AddCommand(exportCmd, importCmd, resetCmd)

	importCmd.Flags().BoolVarP(&importYes, "yes", "y", false, "Replace without asking")
	resetCmd.Flags().BoolVarP(&resetYes, "yes", "y", false, "Reset without asking")
}

func runExport(cmd *cobra.Command, args []string) error {
	app, err := openApp(cmd.Context())
	if err != nil {
		return err
	}
	defer app.Close()

	tasks, emotions := app.board.Tasks(), app.board.Emotions()
	if len(args) == 0 || args[0] == "-" {
		return transfer.Export(os.Stdout, tasks, emotions)
	}

	f, err := os.Create(args[0])
	if err != nil {
		return fmt.Errorf("create export: %w", err)
	}
	if err := transfer.Export(f, tasks, emotions); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close export: %w", err)
	}
	fmt.Printf("Exported %d tasks and %d check-ins to %s\n", len(tasks), len(emotions), args[0])
	return nil
}

func runImport(cmd *cobra.Command, args []string) error {
	var r io.Reader = os.Stdin
	if args[0] != "-" {
		f, err := os.Open(args[0])
		if err != nil {
			return fmt.Errorf("open import: %w", err)
		}
		defer f.Close()
		r = f
	}

	tasks, emotions, err := transfer.Import(r)
	if err != nil {
		return fmt.Errorf("import %s: %w", args[0], err)
	}

	ok, err := confirmDestructive(importYes, fmt.Sprintf("Replace the board with %d tasks and %d check-ins?", len(tasks), len(emotions)))
	if err != nil {
		return err
	}
	if !ok {
		fmt.Println("Import cancelled.")
		return nil
	}

	app, err := openApp(cmd.Context())
	if err != nil {
		return err
	}
	defer app.Close()

	if _, err := app.board.Dispatch(cmd.Context(), board.ReplaceAll{Tasks: tasks, Emotions: emotions}); err != nil {
		return err
	}
	fmt.Printf("Imported %d tasks and %d check-ins\n", len(tasks), len(emotions))
	return nil
}

func runReset(cmd *cobra.Command, args []string) error {
	ok, err := confirmDestructive(resetYes, "Delete every task and check-in?")
	if err != nil {
		return err
	}
	if !ok {
		fmt.Println("Reset cancelled.")
		return nil
	}

	app, err := openApp(cmd.Context())
	if err != nil {
		return err
	}
	defer app.Close()

	if _, err := app.board.Dispatch(cmd.Context(), board.ClearAll{}); err != nil {
		return err
	}
	fmt.Println("Cleared all tasks and check-ins")
	return nil
}

// confirmDestructive asks before replacing data. Without a terminal the
// caller must pass --yes.
func confirmDestructive(yes bool, message string) (bool, error) {
	if yes {
		return true, nil
	}
	if !editor.IsInteractive() {
		return false, fmt.Errorf("refusing to continue without confirmation (use --yes)")
	}
	return prompter.Confirm(message)
}
