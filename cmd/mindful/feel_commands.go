package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/amonks/mindful/board"
	"github.com/amonks/mindful/internal/editor"
	"github.com/amonks/mindful/internal/listflags"
	"github.com/amonks/mindful/internal/ui"
	"github.com/amonks/mindful/task"
)

// feel
var feelCmd = &cobra.Command{
	Use:   "feel <feeling>",
	Short: "Log how you feel",
	Long: `Log how you feel.

Feelings are overwhelmed, anxious, neutral, calm, and control (or 1-5 in
that order). The check-in context defaults to the pending check-in, or
startup when none is pending.`,
	Args: cobra.ExactArgs(1),
	RunE: runFeel,
}

var feelContext string

// checkin
var checkinCmd = &cobra.Command{
	Use:   "checkin",
	Short: "Show or answer the pending check-in",
	Args:  cobra.NoArgs,
	RunE:  runCheckin,
}

var (
	checkinStartup bool
	checkinDismiss bool
)

// stats
var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Summarize backlog load and recent check-ins",
	Args:  cobra.NoArgs,
	RunE:  runStats,
}

var statsJSON bool

func init() {
	rootCmd.AddCommand(feelCmd, checkinCmd, statsCmd)

	feelCmd.Flags().StringVar(&feelContext, "context", "", "Check-in context (startup, completion)")

	checkinCmd.Flags().BoolVar(&checkinStartup, "startup", false, "Ask the opening check-in when there are tasks")
	checkinCmd.Flags().BoolVar(&checkinDismiss, "dismiss", false, "Skip the pending check-in")

	listflags.AddJSONFlag(statsCmd, &statsJSON)
}

func runFeel(cmd *cobra.Command, args []string) error {
	feeling, err := task.ParseFeeling(args[0])
	if err != nil {
		return err
	}

	app, err := openApp(cmd.Context())
	if err != nil {
		return err
	}
	defer app.Close()

	checkIn := task.ContextStartup
	if pending, ok := app.board.PendingCheckIn(); ok {
		checkIn = pending
	}
	if hasChangedFlags(cmd, "context") {
		checkIn, err = task.ParseCheckInContext(feelContext)
		if err != nil {
			return err
		}
	}

	return logFeeling(cmd, app, feeling, checkIn)
}

func logFeeling(cmd *cobra.Command, app *app, feeling task.Feeling, checkIn task.CheckInContext) error {
	if _, err := app.board.Dispatch(cmd.Context(), board.LogEmotion{Feeling: feeling, Context: checkIn}); err != nil {
		return err
	}
	fmt.Printf("Logged %s %s\n", feeling.Emoji(), feeling.Label())
	return nil
}

func runCheckin(cmd *cobra.Command, args []string) error {
	app, err := openApp(cmd.Context())
	if err != nil {
		return err
	}
	defer app.Close()

	if checkinDismiss {
		res, err := app.board.Dispatch(cmd.Context(), board.DismissCheckIn{})
		if err != nil {
			return err
		}
		if res.Changed {
			fmt.Println("Check-in skipped.")
		} else {
			fmt.Println("No check-in pending.")
		}
		return nil
	}

	if checkinStartup {
		if _, err := app.board.Dispatch(cmd.Context(), board.Startup{}); err != nil {
			return err
		}
	}

	pending, ok := app.board.PendingCheckIn()
	if !ok {
		fmt.Println("No check-in pending.")
		return nil
	}
	return askCheckIn(cmd, app, pending)
}

// askCheckIn asks how the user feels. Without a terminal it prints the
// question and leaves the check-in pending for "mindful feel".
func askCheckIn(cmd *cobra.Command, app *app, checkIn task.CheckInContext) error {
	fmt.Println()
	fmt.Println(ui.Heading(checkIn.Question()))
	fmt.Print(formatFeelingChoices())

	if !editor.IsInteractive() {
		fmt.Println("Answer with `mindful feel <feeling>`, or skip with `mindful checkin --dismiss`.")
		return nil
	}

	answer, err := prompter.Ask("Feeling (1-5, enter to skip):")
	if err != nil {
		return err
	}
	if answer == "" {
		_, err := app.board.Dispatch(cmd.Context(), board.DismissCheckIn{})
		return err
	}
	feeling, err := task.ParseFeeling(answer)
	if err != nil {
		return err
	}
	return logFeeling(cmd, app, feeling, checkIn)
}

func formatFeelingChoices() string {
	var b strings.Builder
	for i, feeling := range task.ValidFeelings() {
		fmt.Fprintf(&b, "  %d %s %s\n", i+1, feeling.Emoji(), feeling.Label())
	}
	return b.String()
}

func runStats(cmd *cobra.Command, args []string) error {
	app, err := openApp(cmd.Context())
	if err != nil {
		return err
	}
	defer app.Close()

	stats := app.board.Stats()
	if statsJSON {
		if stats.RecentEmotions == nil {
			stats.RecentEmotions = []task.EmotionalState{}
		}
		return encodeJSONToStdout(stats)
	}
	fmt.Print(formatStats(stats, time.Now()))
	return nil
}

func formatStats(stats task.Stats, now time.Time) string {
	var b strings.Builder
	b.WriteString(ui.Heading("Backlog Load") + "\n")
	table := ui.NewTableBuilder([]string{"QUADRANT", "TASKS", "SHARE"}, len(stats.Backlog))
	for _, count := range stats.Backlog {
		table.AddRow([]string{ui.QuadrantBadge(count.Quadrant), fmt.Sprintf("%d", count.Count), fmt.Sprintf("%d%%", count.Percent)})
	}
	b.WriteString(table.String())

	fmt.Fprintf(&b, "\nBacklog: %d  In focus: %d  Completed: %d  Check-ins: %d\n",
		stats.BacklogTotal, stats.InProgress, stats.Completed, stats.CheckIns)

	if len(stats.RecentEmotions) == 0 {
		return b.String()
	}
	b.WriteString("\n" + ui.Heading("Recent Check-ins") + "\n")
	for _, entry := range stats.RecentEmotions {
		fmt.Fprintf(&b, "  %s %-11s %-10s %s\n", entry.Feeling.Emoji(), entry.Feeling.Label(),
			strings.ToLower(string(entry.Context)), ui.Muted(ui.FormatTimeAgo(entry.Time(), now)))
	}
	return b.String()
}
