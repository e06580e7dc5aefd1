package main

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/amonks/mindful/internal/boardtui"
	"github.com/amonks/mindful/reminder"
)

var boardCmd = &cobra.Command{
	Use:   "board",
	Short: "Open the interactive board",
	Args:  cobra.NoArgs,
	RunE:  runBoard,
}

func init() {
	rootCmd.AddCommand(boardCmd)
}

func runBoard(cmd *cobra.Command, args []string) error {
	app, err := openApp(cmd.Context())
	if err != nil {
		return err
	}
	defer app.Close()

	var notifier reminder.Notifier
	if len(app.cfg.Reminder.Command) > 0 {
		notifier = reminder.CommandNotifier{Command: app.cfg.Reminder.Command}
	}
	return boardtui.Run(cmd.Context(), app.board, boardtui.Options{
		ReminderInterval: time.Duration(app.cfg.Reminder.Interval),
		Notifier:         notifier,
		Logger:           app.logger,
	})
}
