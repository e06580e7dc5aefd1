package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/amonks/mindful/internal/config"
	"github.com/amonks/mindful/internal/editor"
	"github.com/amonks/mindful/reminder"
	"github.com/amonks/mindful/store"
)

var remindCmd = &cobra.Command{
	Use:   "remind",
	Short: "Watch for due reminders until interrupted",
	Long: `Watch for due reminders until interrupted.

Checks every interval (30s by default) and whenever the data directory
changes. Each due reminder is printed once, and also passed to the
configured reminder command.`,
	Args: cobra.NoArgs,
	RunE: runRemind,
}

var (
	remindInterval time.Duration
	remindOnce     bool
)

func init() {
	rootCmd.AddCommand(remindCmd)

	remindCmd.Flags().DurationVar(&remindInterval, "interval", 0, "Time between checks (default from config, or 30s)")
	remindCmd.Flags().BoolVar(&remindOnce, "once", false, "Check once and exit")
}

func runRemind(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	set, err := loadSettings()
	if err != nil {
		return err
	}
	source, changes, closeSource, err := openReminderSource(ctx, set)
	if err != nil {
		return err
	}
	defer closeSource()

	opts := reminderOptions(set.cfg)
	if hasChangedFlags(cmd, "interval") {
		opts.Interval = remindInterval
	}
	opts.Logger = set.logger

	notifier := reminderNotifier(set.cfg)
	if remindOnce {
		scheduler := reminder.New(source, notifier, opts)
		_, err := scheduler.Check(ctx)
		return err
	}

	opts.Changes = changes
	scheduler := reminder.New(source, notifier, opts)
	fmt.Fprintf(cmd.ErrOrStderr(), "Watching for reminders every %s (ctrl+c to stop)\n", effectiveInterval(opts.Interval))
	return scheduler.Run(ctx)
}

// openReminderSource picks how the scheduler reads tasks. Stores that can be
// watched stay open for the whole run. Others hold an exclusive lock while
// open, so they are reopened for each check and released in between.
func openReminderSource(ctx context.Context, set settings) (reminder.TaskSource, <-chan struct{}, func(), error) {
	st, err := store.Open(set.storeConfig())
	if err != nil {
		return nil, nil, nil, err
	}
	watchable, ok := st.(store.Watchable)
	if !ok {
		if err := st.Close(); err != nil {
			return nil, nil, nil, fmt.Errorf("close store: %w", err)
		}
		set.logger.Info("store does not support watching; polling only", "backend", set.backend)
		return store.ReopeningSource{Config: set.storeConfig()}, nil, func() {}, nil
	}
	closeStore := func() {
		if err := st.Close(); err != nil {
			set.logger.Warn("close store", "error", err)
		}
	}
	changes, err := reminder.Watch(ctx, watchable.WatchPath(), set.logger)
	if err != nil {
		set.logger.Warn("watch store", "error", err)
		return st, nil, closeStore, nil
	}
	return st, changes, closeStore, nil
}

func reminderOptions(cfg *config.Config) reminder.Options {
	return reminder.Options{
		Interval: time.Duration(cfg.Reminder.Interval),
		Window:   time.Duration(cfg.Reminder.Window),
	}
}

func reminderNotifier(cfg *config.Config) reminder.Notifier {
	terminal := reminder.TerminalNotifier{W: os.Stdout, Bell: editor.IsTerminalOutput()}
	if len(cfg.Reminder.Command) == 0 {
		return terminal
	}
	return reminder.MultiNotifier{terminal, reminder.CommandNotifier{Command: cfg.Reminder.Command}}
}

func effectiveInterval(interval time.Duration) time.Duration {
	if interval <= 0 {
		return reminder.DefaultInterval
	}
	return interval
}
