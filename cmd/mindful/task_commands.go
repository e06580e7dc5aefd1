package main

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/amonks/mindful/board"
	"github.com/amonks/mindful/internal/age"
	"github.com/amonks/mindful/internal/editor"
	"github.com/amonks/mindful/internal/listflags"
	internalstrings "github.com/amonks/mindful/internal/strings"
	"github.com/amonks/mindful/internal/ui"
	"github.com/amonks/mindful/task"
)

// add
var addCmd = &cobra.Command{
	Use:   "add [content]",
	Short: "Add a task to the bottom of its quadrant",
	Long: `Add a task to the bottom of its quadrant.

By default, opens $EDITOR with a TOML header for the quadrant and reminder
when running interactively without content. Use --no-edit to skip the
editor, or --edit to force opening it.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runAdd,
}

var (
	addQuadrant string
	addRemind   string
	addEdit     bool
	addNoEdit   bool
)

// list
var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "Show the board: backlog, focus, and completed tasks",
	Args:    cobra.NoArgs,
	RunE:    runList,
}

var (
	listAll  bool
	listJSON bool
)

// next
var nextCmd = &cobra.Command{
	Use:   "next",
	Short: "Show the highest-priority backlog task",
	Args:  cobra.NoArgs,
	RunE:  runNext,
}

// show
var showCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show one task in detail",
	Args:  cobra.ExactArgs(1),
	RunE:  runShow,
}

var showJSON bool

// start
var startCmd = &cobra.Command{
	Use:   "start <id>",
	Short: "Focus on a backlog task",
	Long: `Focus on a backlog task.

Only one task can be in focus. Starting anything other than the top task
asks for confirmation first: interactively, or by leaving the start pending
for "mindful confirm" or "mindful cancel".`,
	Args: cobra.ExactArgs(1),
	RunE: runStart,
}

var startYes bool

// confirm
var confirmCmd = &cobra.Command{
	Use:   "confirm",
	Short: "Start the task waiting for confirmation",
	Args:  cobra.NoArgs,
	RunE:  runConfirm,
}

// cancel
var cancelCmd = &cobra.Command{
	Use:   "cancel",
	Short: "Abandon the start waiting for confirmation",
	Args:  cobra.NoArgs,
	RunE:  runCancel,
}

// done
var doneCmd = &cobra.Command{
	Use:   "done [id]",
	Short: "Complete the task in focus",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runDone,
}

// delete
var deleteCmd = &cobra.Command{
	Use:     "delete <id>...",
	Aliases: []string{"rm"},
	Short:   "Delete one or more tasks",
	Args:    cobra.MinimumNArgs(1),
	RunE:    runDelete,
}

var deleteYes bool

// up / down
var upCmd = &cobra.Command{
	Use:   "up <id>",
	Short: "Move a task one place up within its quadrant",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runReorder(cmd, args[0], task.DirectionUp)
	},
}

var downCmd = &cobra.Command{
	Use:   "down <id>",
	Short: "Move a task one place down within its quadrant",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runReorder(cmd, args[0], task.DirectionDown)
	},
}

// swap
var swapCmd = &cobra.Command{
	Use:   "swap <source> <target>",
	Short: "Exchange the positions and quadrants of two tasks",
	Args:  cobra.ExactArgs(2),
	RunE:  runSwap,
}

func init() {
	rootCmd.AddCommand(addCmd, listCmd, nextCmd, showCmd, startCmd, confirmCmd, cancelCmd,
		doneCmd, deleteCmd, upCmd, downCmd, swapCmd)

	addTaskFlagAliases(addCmd)
	addCmd.Flags().StringVarP(&addQuadrant, "quadrant", "q", string(task.QuadrantDoFirst), "Quadrant (do-first, schedule, delegate, eliminate)")
	addCmd.Flags().StringVar(&addRemind, "remind", "", "Reminder time (RFC 3339, \"2006-01-02 15:04\", or +duration)")
	addCmd.Flags().BoolVarP(&addEdit, "edit", "e", false, "Open $EDITOR (default if interactive)")
	addCmd.Flags().BoolVar(&addNoEdit, "no-edit", false, "Do not open $EDITOR")

	listflags.AddAllFlag(listCmd, &listAll)
	listflags.AddJSONFlag(listCmd, &listJSON)

	listflags.AddJSONFlag(showCmd, &showJSON)

	startCmd.Flags().BoolVarP(&startYes, "yes", "y", false, "Start without the priority confirmation")
	deleteCmd.Flags().BoolVarP(&deleteYes, "yes", "y", false, "Delete without asking")
}

func runAdd(cmd *cobra.Command, args []string) error {
	now := time.Now()
	var content string
	if len(args) > 0 {
		content = args[0]
	}

	var opts task.CreateOptions
	if shouldUseEditor(content != "", addEdit, addNoEdit, editor.IsInteractive()) {
		data := editor.DefaultCreateData()
		data.Content = content
		if hasChangedFlags(cmd, "quadrant") {
			data.Quadrant = addQuadrant
		}
		if hasChangedFlags(cmd, "remind") {
			data.Remind = addRemind
		}

		parsed, err := editor.EditTask(data, now)
		if err != nil {
			return err
		}
		content = parsed.Content
		opts = parsed.ToCreateOptions()
	} else {
		if internalstrings.IsBlank(content) {
			return fmt.Errorf("content is required (use --edit to open editor)")
		}
		quadrant, err := task.ParseQuadrant(addQuadrant)
		if err != nil {
			return err
		}
		remind, err := task.ParseReminder(addRemind, now)
		if err != nil {
			return err
		}
		opts = task.CreateOptions{Quadrant: quadrant, Reminder: remind}
	}

	app, err := openApp(cmd.Context())
	if err != nil {
		return err
	}
	defer app.Close()

	res, err := app.board.Dispatch(cmd.Context(), board.CreateTask{
		Content:  internalstrings.NormalizeContent(content),
		Quadrant: opts.Quadrant,
		Reminder: opts.Reminder,
	})
	if err != nil {
		return err
	}

	highlight := logHighlighter(app.board.PrefixLengths(), ui.ShortID)
	fmt.Printf("Created task %s: %s\n", highlight(res.Task.ID), summaryLine(res.Task.Content))
	return nil
}

// listOutput is the --json shape of the board.
type listOutput struct {
	Backlog    []task.Task `json:"backlog"`
	InProgress []task.Task `json:"inProgress"`
	Done       []task.Task `json:"done"`
}

func runList(cmd *cobra.Command, args []string) error {
	app, err := openApp(cmd.Context())
	if err != nil {
		return err
	}
	defer app.Close()

	views := app.board.Views()
	if listJSON {
		return encodeJSONToStdout(listOutput{
			Backlog:    nonNil(views.Backlog),
			InProgress: nonNil(views.InProgress),
			Done:       nonNil(views.Done),
		})
	}

	backlogLimit, doneLimit := app.backlogLimit(), app.doneLimit()
	if listAll {
		backlogLimit, doneLimit = 0, 0
	}
	fmt.Print(formatBoard(views, app.board.PrefixLengths(), backlogLimit, doneLimit, time.Now()))
	return nil
}

func formatBoard(views task.Views, prefixLengths map[string]int, backlogLimit, doneLimit int, now time.Time) string {
	highlight := logHighlighter(prefixLengths, ui.ShortID)
	var b strings.Builder

	b.WriteString(ui.Heading("Backlog") + "\n")
	backlog, hiddenBacklog := task.Limit(views.Backlog, backlogLimit)
	if len(backlog) == 0 {
		total := len(views.Backlog) + len(views.InProgress) + len(views.Done)
		b.WriteString(backlogEmptyMessage(total) + "\n")
	} else {
		table := ui.NewTableBuilder([]string{"ID", "QUADRANT", "TASK", "REMINDER"}, len(backlog))
		for _, t := range backlog {
			reminder := "-"
			if at, ok := t.ReminderTime(); ok {
				reminder = ui.FormatTimeUntil(at, now)
			}
			table.AddRow([]string{highlight(t.ID), ui.QuadrantBadge(t.Quadrant), ui.TruncateTableCell(summaryLine(t.Content)), reminder})
		}
		b.WriteString(table.String())
		if msg := backlogHiddenMessage(hiddenBacklog); msg != "" {
			b.WriteString(ui.Muted(msg) + "\n")
		}
	}

	b.WriteString("\n" + ui.Heading("In Focus") + "\n")
	if focus, ok := views.Focus(); ok {
		open := ui.FormatTimeAgeShort(focus.Created(), now)
		fmt.Fprintf(&b, "%s  %s  %s\n", highlight(focus.ID), ui.Focus(summaryLine(focus.Content)), ui.Muted("open "+open))
	} else {
		b.WriteString(ui.Muted("Nothing in focus. Start the top task with `mindful start`.") + "\n")
	}

	b.WriteString("\n" + ui.Heading("Completed") + "\n")
	done, hiddenDone := task.Limit(views.Done, doneLimit)
	if len(done) == 0 {
		b.WriteString(ui.Muted("Nothing completed yet.") + "\n")
		return b.String()
	}
	table := ui.NewTableBuilder([]string{"ID", "TASK", "COMPLETED", "TOOK"}, len(done))
	for _, t := range done {
		completedAt, _ := t.Completed()
		took := "-"
		if d, ok := leadTime(t, now); ok {
			took = ui.FormatDurationShort(d)
		}
		table.AddRow([]string{highlight(t.ID), ui.TruncateTableCell(summaryLine(t.Content)), ui.FormatTimeAgo(completedAt, now), took})
	}
	b.WriteString(table.String())
	if msg := doneHiddenMessage(hiddenDone); msg != "" {
		b.WriteString(ui.Muted(msg) + "\n")
	}
	return b.String()
}

func runNext(cmd *cobra.Command, args []string) error {
	app, err := openApp(cmd.Context())
	if err != nil {
		return err
	}
	defer app.Close()

	top, ok := app.board.Views().Top()
	if !ok {
		fmt.Println("Backlog is clear.")
		return nil
	}
	highlight := logHighlighter(app.board.PrefixLengths(), ui.ShortID)
	fmt.Println(ui.Heading("Next Up"))
	fmt.Printf("%s  %s  %s\n", highlight(top.ID), ui.QuadrantBadge(top.Quadrant), summaryLine(top.Content))
	return nil
}

func runShow(cmd *cobra.Command, args []string) error {
	app, err := openApp(cmd.Context())
	if err != nil {
		return err
	}
	defer app.Close()

	id, err := app.resolveID(args[0])
	if err != nil {
		return err
	}
	found, ok := task.Find(app.board.Tasks(), id)
	if !ok {
		return fmt.Errorf("%w: %s", task.ErrTaskNotFound, args[0])
	}

	if showJSON {
		return encodeJSONToStdout(found)
	}
	fmt.Print(formatTaskDetail(found, app.board.PrefixLengths(), time.Now()))
	return nil
}

func runStart(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	app, err := openApp(ctx)
	if err != nil {
		return err
	}
	defer app.Close()

	id, err := app.resolveID(args[0])
	if err != nil {
		return err
	}

	res, err := app.board.Dispatch(ctx, board.AttemptStart{ID: id})
	if err != nil {
		if errors.Is(err, task.ErrFocusOccupied) {
			fmt.Fprintln(cmd.ErrOrStderr(), board.FocusOccupiedMessage)
		}
		return err
	}

	highlight := logHighlighter(app.board.PrefixLengths(), ui.ShortID)
	if res.Outcome == task.Started {
		fmt.Printf("Started task %s: %s\n", highlight(res.Task.ID), summaryLine(res.Task.Content))
		return nil
	}

	confirmed := startYes
	if !confirmed {
		fmt.Print(formatFriction(ui.DefaultWrapWidth))
		if !editor.IsInteractive() {
			fmt.Println("Run `mindful confirm` to start it anyway, or `mindful cancel` to keep your priorities.")
			return nil
		}
		confirmed, err = prompter.Confirm(board.FrictionQuestion)
		if err != nil {
			return err
		}
	}

	if !confirmed {
		if _, err := app.board.Dispatch(ctx, board.CancelStart{}); err != nil {
			return err
		}
		fmt.Println("Start cancelled.")
		return nil
	}

	res, err = app.board.Dispatch(ctx, board.ConfirmStart{})
	if err != nil {
		return err
	}
	fmt.Printf("Started task %s: %s\n", highlight(res.Task.ID), summaryLine(res.Task.Content))
	return nil
}

func formatFriction(width int) string {
	return ui.Heading(board.FrictionTitle) + "\n" +
		ui.Wrap(board.FrictionMessage, width, 0) + "\n" +
		board.FrictionQuestion + "\n"
}

func runConfirm(cmd *cobra.Command, args []string) error {
	app, err := openApp(cmd.Context())
	if err != nil {
		return err
	}
	defer app.Close()

	res, err := app.board.Dispatch(cmd.Context(), board.ConfirmStart{})
	if err != nil {
		return err
	}
	highlight := logHighlighter(app.board.PrefixLengths(), ui.ShortID)
	fmt.Printf("Started task %s: %s\n", highlight(res.Task.ID), summaryLine(res.Task.Content))
	return nil
}

func runCancel(cmd *cobra.Command, args []string) error {
	app, err := openApp(cmd.Context())
	if err != nil {
		return err
	}
	defer app.Close()

	res, err := app.board.Dispatch(cmd.Context(), board.CancelStart{})
	if err != nil {
		return err
	}
	if !res.Changed {
		fmt.Println("No start is waiting for confirmation.")
		return nil
	}
	fmt.Println("Start cancelled.")
	return nil
}

func runDone(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	app, err := openApp(ctx)
	if err != nil {
		return err
	}
	defer app.Close()

	var id string
	if len(args) > 0 {
		id, err = app.resolveID(args[0])
		if err != nil {
			return err
		}
	} else {
		focus, ok := app.board.Views().Focus()
		if !ok {
			return task.ErrNoTaskInProgress
		}
		id = focus.ID
	}

	res, err := app.board.Dispatch(ctx, board.CompleteTask{ID: id})
	if err != nil {
		return err
	}
	highlight := logHighlighter(app.board.PrefixLengths(), ui.ShortID)
	fmt.Printf("Completed task %s: %s\n", highlight(res.Task.ID), summaryLine(res.Task.Content))

	if res.CheckIn != "" {
		return askCheckIn(cmd, app, res.CheckIn)
	}
	return nil
}

func runDelete(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	app, err := openApp(ctx)
	if err != nil {
		return err
	}
	defer app.Close()

	ids := make([]string, 0, len(args))
	for _, arg := range args {
		id, err := app.resolveID(arg)
		if err != nil {
			return err
		}
		ids = append(ids, id)
	}

	ok, err := confirmDestructive(deleteYes, fmt.Sprintf("Delete %d task(s)?", len(ids)))
	if err != nil {
		return err
	}
	if !ok {
		fmt.Println("Nothing deleted.")
		return nil
	}

	highlight := logHighlighter(app.board.PrefixLengths(), ui.ShortID)
	for _, id := range ids {
		res, err := app.board.Dispatch(ctx, board.DeleteTask{ID: id})
		if err != nil {
			return err
		}
		if res.Changed {
			fmt.Printf("Deleted task %s: %s\n", highlight(res.Task.ID), summaryLine(res.Task.Content))
		}
	}
	return nil
}

func runReorder(cmd *cobra.Command, arg string, dir task.Direction) error {
	app, err := openApp(cmd.Context())
	if err != nil {
		return err
	}
	defer app.Close()

	id, err := app.resolveID(arg)
	if err != nil {
		return err
	}
	res, err := app.board.Dispatch(cmd.Context(), board.ReorderTask{ID: id, Direction: dir})
	if err != nil {
		return err
	}
	if !res.Changed {
		fmt.Printf("Task is already at the %s of its group.\n", map[task.Direction]string{task.DirectionUp: "top", task.DirectionDown: "bottom"}[dir])
		return nil
	}
	highlight := logHighlighter(app.board.PrefixLengths(), ui.ShortID)
	fmt.Printf("Moved task %s %s: %s\n", highlight(res.Task.ID), dir, summaryLine(res.Task.Content))
	return nil
}

func runSwap(cmd *cobra.Command, args []string) error {
	app, err := openApp(cmd.Context())
	if err != nil {
		return err
	}
	defer app.Close()

	source, err := app.resolveID(args[0])
	if err != nil {
		return err
	}
	target, err := app.resolveID(args[1])
	if err != nil {
		return err
	}
	res, err := app.board.Dispatch(cmd.Context(), board.DragSwap{SourceID: source, TargetID: target})
	if err != nil {
		return err
	}
	if !res.Changed {
		fmt.Println("Nothing to swap.")
		return nil
	}
	highlight := logHighlighter(app.board.PrefixLengths(), ui.ShortID)
	fmt.Printf("Swapped %s and %s\n", highlight(source), highlight(target))
	return nil
}

func leadTime(t task.Task, now time.Time) (time.Duration, bool) {
	completedAt, done := t.Completed()
	return age.LeadTime(t.Created(), completedAt, done, now)
}

func summaryLine(content string) string {
	line, _, _ := strings.Cut(internalstrings.NormalizeNewlines(content), "\n")
	return internalstrings.TrimSpace(line)
}

func nonNil(tasks []task.Task) []task.Task {
	if tasks == nil {
		return []task.Task{}
	}
	return tasks
}
