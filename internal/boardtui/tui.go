// Package boardtui is the interactive terminal board.
package boardtui

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"

	"github.com/amonks/mindful/board"
	internalstrings "github.com/amonks/mindful/internal/strings"
	"github.com/amonks/mindful/reminder"
	"github.com/amonks/mindful/task"
)

type column int

const (
	columnBacklog column = iota
	columnFocus
	columnDone
	columnCount
)

var columnTitles = [columnCount]string{"Backlog", "In Focus", "Completed"}

type statusLevel int

const (
	statusNone statusLevel = iota
	statusInfo
	statusError
	statusReminder
)

type modalKind int

const (
	modalNone modalKind = iota
	modalHelp
	modalFriction
	modalDelete
	modalCheckIn
	modalAdd
)

// Options configures the board UI.
type Options struct {
	// Now returns the current time. Defaults to time.Now.
	Now func() time.Time

	// ReminderInterval is how often reminders are checked. Defaults to
	// reminder.DefaultInterval. A negative value disables reminders.
	ReminderInterval time.Duration

	// Notifier also receives due reminders, in addition to the status line.
	Notifier reminder.Notifier

	// Logger receives reminder failures. Defaults to slog.Default().
	Logger *slog.Logger
}

type model struct {
	ctx         context.Context
	board       *board.Board
	now         func() time.Time
	width       int
	height      int
	active      column
	lists       [columnCount]list.Model
	modal       confirmModal
	form        addForm
	checkIn     task.CheckInContext
	feeling     int
	status      string
	statusLevel statusLevel
	markedID    string
	deleteID    string
	reminders   *reminderLoop
}

type confirmModal struct {
	kind        modalKind
	message     string
	confirmText string
	cancelText  string
	selected    int
}

type dispatchedMsg struct {
	event  board.Event
	result board.Result
	err    error
}

type reminderTickMsg struct{}

type remindersDueMsg struct {
	tasks []task.Task
	err   error
}

// Run shows the board until the user quits or ctx is cancelled.
func Run(ctx context.Context, b *board.Board, opts Options) error {
	if b == nil {
		return fmt.Errorf("board is required")
	}
	if ctx == nil {
		ctx = context.Background()
	}
	program := tea.NewProgram(newModel(ctx, b, opts), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := program.Run()
	return err
}

func newModel(ctx context.Context, b *board.Board, opts Options) model {
	if opts.Now == nil {
		opts.Now = time.Now
	}

	var lists [columnCount]list.Model
	for i := range lists {
		l := list.New(nil, newTaskItemDelegate(opts.Now), 0, 0)
		l.Title = columnTitles[i]
		l.SetShowStatusBar(false)
		l.SetFilteringEnabled(false)
		l.SetShowHelp(false)
		l.SetShowPagination(false)
		lists[i] = l
	}

	m := model{
		ctx:   ctx,
		board: b,
		now:   opts.Now,
		lists: lists,
		modal: confirmModal{kind: modalNone},
	}
	if opts.ReminderInterval >= 0 {
		m.reminders = newReminderLoop(b, opts)
	}
	m.refresh("")
	return m
}

func (m model) Init() tea.Cmd {
	return tea.Batch(m.dispatchCmd(board.Startup{}), m.checkRemindersCmd())
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()
		return m, nil
	case dispatchedMsg:
		return m.handleDispatched(msg)
	case reminderTickMsg:
		return m, m.checkRemindersCmd()
	case remindersDueMsg:
		return m.handleRemindersDue(msg)
	}

	if m.modal.kind != modalNone {
		return m.updateModal(msg)
	}

	if key, ok := msg.(tea.KeyMsg); ok {
		updated, cmd, handled := m.handleKey(key)
		if handled {
			return updated, cmd
		}
		m = updated
	}
	return m, nil
}

func (m model) View() string {
	if m.width == 0 || m.height == 0 {
		return "Loading board..."
	}
	contentHeight := m.height - 3
	if contentHeight < 1 {
		contentHeight = 1
	}

	widths := splitColumns(m.width)
	panes := make([]string, 0, columnCount)
	for i := range m.lists {
		panes = append(panes, m.renderPane(m.lists[i].View(), widths[i], contentHeight, column(i) == m.active))
	}
	content := lipgloss.JoinHorizontal(lipgloss.Top, panes...)

	view := strings.Join([]string{m.renderTitleBar(), m.renderHelpLine(), content, m.renderStatusLine()}, "\n")
	if m.modal.kind != modalNone {
		view = m.renderModalOverlay(view)
	}
	return view
}

func (m model) handleKey(msg tea.KeyMsg) (model, tea.Cmd, bool) {
	key := msg.String()
	switch key {
	case "?":
		return m.openHelp(), nil, true
	}

	if updated, cmd, handled := m.handleListNavigation(key); handled {
		return updated, cmd, true
	}

	switch key {
	case "ctrl+c", "q":
		return m, tea.Quit, true
	case "tab", "right", "l":
		return m.switchColumn(1), nil, true
	case "shift+tab", "backtab", "left", "h":
		return m.switchColumn(-1), nil, true
	case "1":
		return m.activateColumn(columnBacklog), nil, true
	case "2":
		return m.activateColumn(columnFocus), nil, true
	case "3":
		return m.activateColumn(columnDone), nil, true
	case "a", "n":
		return m.openAdd(), nil, true
	case "s", "enter":
		if item, ok := m.currentItem(); ok && m.active == columnBacklog {
			return m, m.dispatchCmd(board.AttemptStart{ID: item.task.ID}), true
		}
		return m, nil, true
	case "d", "c":
		focus, ok := m.board.Views().Focus()
		if !ok {
			m.setStatus("Nothing is in focus.", statusError)
			return m, nil, true
		}
		return m, m.dispatchCmd(board.CompleteTask{ID: focus.ID}), true
	case "x", "delete":
		return m.promptDelete(), nil, true
	case "K", "shift+up":
		return m.reorderSelected(task.DirectionUp)
	case "J", "shift+down":
		return m.reorderSelected(task.DirectionDown)
	case "m":
		return m.markOrSwap()
	case "f":
		return m.openCheckIn(task.ContextStartup), nil, true
	case "esc":
		if m.markedID != "" {
			m.markedID = ""
			m.refresh(m.selectedID())
			m.setStatus("Swap cancelled.", statusInfo)
		}
		return m, nil, true
	}

	return m, nil, false
}

func (m model) switchColumn(delta int) model {
	next := (int(m.active) + delta + int(columnCount)) % int(columnCount)
	return m.activateColumn(column(next))
}

func (m model) activateColumn(target column) model {
	m.active = target
	return m
}

func (m model) reorderSelected(dir task.Direction) (model, tea.Cmd, bool) {
	item, ok := m.currentItem()
	if !ok {
		return m, nil, true
	}
	return m, m.dispatchCmd(board.ReorderTask{ID: item.task.ID, Direction: dir}), true
}

func (m model) markOrSwap() (model, tea.Cmd, bool) {
	if m.active != columnBacklog {
		m.setStatus("Only backlog tasks can be swapped.", statusError)
		return m, nil, true
	}
	item, ok := m.currentItem()
	if !ok {
		return m, nil, true
	}
	if m.markedID == "" {
		m.markedID = item.task.ID
		m.refresh(item.task.ID)
		m.setStatus("Marked. Move to another task and press m to swap.", statusInfo)
		return m, nil, true
	}
	if m.markedID == item.task.ID {
		m.markedID = ""
		m.refresh(item.task.ID)
		m.setStatus("Swap cancelled.", statusInfo)
		return m, nil, true
	}
	source := m.markedID
	m.markedID = ""
	return m, m.dispatchCmd(board.DragSwap{SourceID: source, TargetID: item.task.ID}), true
}

func (m model) handleDispatched(msg dispatchedMsg) (tea.Model, tea.Cmd) {
	selected := m.selectedID()
	if msg.err != nil {
		m.refresh(selected)
		if errors.Is(msg.err, task.ErrFocusOccupied) {
			m.setStatus(board.FocusOccupiedMessage, statusError)
		} else {
			m.setStatus(msg.err.Error(), statusError)
		}
		return m, nil
	}

	res := msg.result
	switch ev := msg.event.(type) {
	case board.CreateTask:
		m.refresh(res.Task.ID)
		m.setStatus("Created task: "+summarize(res.Task.Content), statusInfo)
	case board.AttemptStart:
		switch res.Outcome {
		case task.StartPendingConfirmation:
			m.refresh(ev.ID)
			m = m.promptFriction()
		case task.Started:
			m.refresh(ev.ID)
			m.setStatus("Started: "+summarize(res.Task.Content), statusInfo)
		}
	case board.ConfirmStart:
		m.refresh(res.Task.ID)
		m.setStatus("Started: "+summarize(res.Task.Content), statusInfo)
	case board.CancelStart:
		m.refresh(selected)
		m.setStatus("Start cancelled.", statusInfo)
	case board.CompleteTask:
		m.refresh(res.Task.ID)
		m.setStatus("Completed: "+summarize(res.Task.Content), statusInfo)
		if res.CheckIn != "" {
			m = m.openCheckIn(res.CheckIn)
		}
	case board.DeleteTask:
		m.refresh(selected)
		if res.Changed {
			m.setStatus("Deleted task.", statusInfo)
		}
	case board.ReorderTask, board.DragSwap:
		m.refresh(selected)
		if !res.Changed {
			m.setStatus("Cannot move that task any further.", statusError)
		}
	case board.LogEmotion:
		m.refresh(selected)
		m.setStatus("Logged feeling: "+ev.Feeling.Label(), statusInfo)
	case board.Startup:
		m.refresh(selected)
		if res.CheckIn != "" {
			m = m.openCheckIn(res.CheckIn)
		}
	default:
		m.refresh(selected)
	}
	return m, nil
}

func (m model) updateModal(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		if m.modal.kind == modalAdd {
			var cmd tea.Cmd
			m.form, cmd = m.form.Update(msg)
			return m, cmd
		}
		return m, nil
	}

	switch m.modal.kind {
	case modalHelp:
		switch key.String() {
		case "?", "esc":
			m.modal = confirmModal{kind: modalNone}
			return m, nil
		case "ctrl+c", "q":
			return m, tea.Quit
		}
		return m, nil
	case modalCheckIn:
		return m.updateCheckIn(key)
	case modalAdd:
		return m.updateAdd(key)
	}

	selection := m.modal.selected
	switch key.String() {
	case "left", "right", "tab", "shift+tab", "backtab":
		if selection == 0 {
			selection = 1
		} else {
			selection = 0
		}
		m.modal.selected = selection
		return m, nil
	case "enter":
		confirm := selection == 0
		return m.resolveModal(confirm)
	case "y":
		return m.resolveModal(true)
	case "esc", "n":
		return m.resolveModal(false)
	}
	return m, nil
}

func (m model) resolveModal(confirm bool) (tea.Model, tea.Cmd) {
	kind := m.modal.kind
	m.modal = confirmModal{kind: modalNone}
	switch kind {
	case modalFriction:
		if confirm {
			return m, m.dispatchCmd(board.ConfirmStart{})
		}
		return m, m.dispatchCmd(board.CancelStart{})
	case modalDelete:
		id := m.deleteID
		m.deleteID = ""
		if confirm && id != "" {
			return m, m.dispatchCmd(board.DeleteTask{ID: id})
		}
		return m, nil
	default:
		return m, nil
	}
}

func (m model) updateCheckIn(key tea.KeyMsg) (tea.Model, tea.Cmd) {
	feelings := task.ValidFeelings()
	switch key.String() {
	case "up", "k", "left", "h", "shift+tab":
		if m.feeling > 0 {
			m.feeling--
		}
		return m, nil
	case "down", "j", "right", "l", "tab":
		if m.feeling < len(feelings)-1 {
			m.feeling++
		}
		return m, nil
	case "1", "2", "3", "4", "5":
		m.feeling = int(key.String()[0] - '1')
		return m.logFeeling(feelings[m.feeling])
	case "enter":
		return m.logFeeling(feelings[m.feeling])
	case "esc":
		m.modal = confirmModal{kind: modalNone}
		m.checkIn = ""
		return m, m.dispatchCmd(board.DismissCheckIn{})
	case "ctrl+c":
		return m, tea.Quit
	}
	return m, nil
}

func (m model) logFeeling(feeling task.Feeling) (tea.Model, tea.Cmd) {
	checkIn := m.checkIn
	m.modal = confirmModal{kind: modalNone}
	m.checkIn = ""
	return m, m.dispatchCmd(board.LogEmotion{Feeling: feeling, Context: checkIn})
}

func (m model) updateAdd(key tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch key.String() {
	case "esc":
		m.modal = confirmModal{kind: modalNone}
		return m, nil
	case "ctrl+c":
		return m, tea.Quit
	case "tab", "shift+tab":
		m.form = m.form.advanceField()
		return m, nil
	case "up":
		m.form = m.form.cycleQuadrant(-1)
		return m, nil
	case "down":
		m.form = m.form.cycleQuadrant(1)
		return m, nil
	case "enter":
		content := internalstrings.NormalizeContent(m.form.content.Value())
		if err := task.ValidateContent(content); err != nil {
			m.setStatus(err.Error(), statusError)
			return m, nil
		}
		remind, err := task.ParseReminder(m.form.remind.Value(), m.now())
		if err != nil {
			m.setStatus(err.Error(), statusError)
			return m, nil
		}
		m.modal = confirmModal{kind: modalNone}
		return m, m.dispatchCmd(board.CreateTask{Content: content, Quadrant: m.form.quadrant, Reminder: remind})
	}

	var cmd tea.Cmd
	m.form, cmd = m.form.Update(key)
	return m, cmd
}

func (m model) promptFriction() model {
	message := strings.Join([]string{
		labelStyle.Render(board.FrictionTitle),
		"",
		wordwrap.String(board.FrictionMessage, m.modalWidth()),
		"",
		board.FrictionQuestion,
	}, "\n")
	m.modal = confirmModal{
		kind:        modalFriction,
		message:     message,
		confirmText: "Start anyway",
		cancelText:  "Cancel",
		selected:    1,
	}
	return m
}

func (m model) promptDelete() model {
	item, ok := m.currentItem()
	if !ok {
		return m
	}
	m.deleteID = item.task.ID
	m.modal = confirmModal{
		kind:        modalDelete,
		message:     "Delete task?\n\n" + truncateText(summarize(item.task.Content), m.modalWidth()),
		confirmText: "Delete",
		cancelText:  "Keep",
		selected:    1,
	}
	return m
}

func (m model) openCheckIn(checkIn task.CheckInContext) model {
	m.checkIn = checkIn
	m.feeling = len(task.ValidFeelings()) / 2
	m.modal = confirmModal{kind: modalCheckIn, message: checkIn.Question()}
	return m
}

func (m model) openAdd() model {
	m.form = newAddForm()
	if m.active == columnBacklog {
		if item, ok := m.currentItem(); ok {
			m.form.quadrant = item.task.Quadrant
		}
	}
	m.modal = confirmModal{kind: modalAdd}
	return m
}

func (m model) openHelp() model {
	m.modal = confirmModal{kind: modalHelp}
	return m
}

func (m model) helpContent() string {
	sections := []string{
		labelStyle.Render("Global"),
		"q or ctrl+c: quit",
		"tab / left/right / 1-3: switch column",
		"?: toggle help",
		"",
		labelStyle.Render("Navigation"),
		"up/down or j/k: move selection",
		"home/end: first/last task",
		"",
		labelStyle.Render("Tasks"),
		"a: add task",
		"s or enter: start selected backlog task",
		"d: complete the task in focus",
		"x: delete selected task",
		"K/J: move selected task up/down",
		"m: mark a backlog task, then m on another to swap",
		"f: log how you feel",
		"",
		labelStyle.Render("Help"),
		"press ? or esc to close",
	}
	return strings.Join(sections, "\n")
}

// refresh reloads every column from the board and keeps selectID
// selected when it is still on the board.
func (m *model) refresh(selectID string) {
	views := m.board.Views()
	columns := [columnCount][]task.Task{views.Backlog, views.InProgress, views.Done}
	for i := range m.lists {
		index := m.lists[i].Index()
		m.lists[i].SetItems(tasksToItems(columns[i], m.markedID))
		if n := len(columns[i]); index >= n {
			index = max(n-1, 0)
		}
		m.lists[i].Select(index)
	}
	if selectID == "" {
		return
	}
	for i, tasks := range columns {
		for j, t := range tasks {
			if t.ID == selectID {
				m.lists[i].Select(j)
				m.active = column(i)
				return
			}
		}
	}
}

func (m *model) resize() {
	contentHeight := m.height - 3
	if contentHeight < 1 {
		contentHeight = 1
	}
	listHeight := contentHeight - 2
	if listHeight < 1 {
		listHeight = 1
	}
	for i, width := range splitColumns(m.width) {
		listWidth := width - 4
		if listWidth < 1 {
			listWidth = 1
		}
		m.lists[i].SetSize(listWidth, listHeight)
	}
}

func splitColumns(width int) [columnCount]int {
	var widths [columnCount]int
	base := width / int(columnCount)
	for i := range widths {
		widths[i] = base
	}
	widths[columnCount-1] += width - base*int(columnCount)
	return widths
}

func (m model) modalWidth() int {
	width := m.width/2 - 6
	if width < 30 {
		width = 30
	}
	return width
}

func (m model) renderTitleBar() string {
	title := titleStyle.Render("MindfulTask")
	focus := valueMuted.Render("No task in focus")
	if current, ok := m.board.Views().Focus(); ok {
		focus = "Focus: " + summarize(current.Content)
	}
	helpHint := valueMuted.Render("Press ? for help")

	available := m.width - lipgloss.Width(title) - lipgloss.Width(helpHint) - 2
	focus = truncateText(focus, max(available, 1))
	spacerWidth := m.width - lipgloss.Width(title) - lipgloss.Width(focus) - lipgloss.Width(helpHint) - 1
	if spacerWidth < 1 {
		spacerWidth = 1
	}
	spacer := strings.Repeat(" ", spacerWidth)
	return titleBarStyle.Width(m.width).Render(title + " " + focus + spacer + helpHint)
}

func (m model) renderPane(content string, width, height int, focused bool) string {
	style := paneStyle
	if focused {
		style = paneActiveStyle
	}
	width -= 2
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	return style.Width(width).Height(height).Render(content)
}

func (m model) renderStatusLine() string {
	text := m.status
	if internalstrings.IsBlank(text) {
		return ""
	}
	style := valueMuted
	switch m.statusLevel {
	case statusError:
		style = statusErrorStyle
	case statusInfo:
		style = statusSuccessStyle
	case statusReminder:
		style = reminderStyle
	}
	return style.Render(truncateText(text, m.width))
}

func (m model) renderHelpLine() string {
	text := internalstrings.TrimSpace(m.helpSummary())
	if text == "" {
		return ""
	}
	return helpBarStyle.Width(m.width).Render(truncateText(text, m.width))
}

func (m model) helpSummary() string {
	if m.markedID != "" {
		return "Keys: j/k move | m swap with marked | esc cancel swap"
	}
	switch m.active {
	case columnFocus:
		return "Keys: d done | x delete | a add | f feeling | tab column | ? help | q quit"
	case columnDone:
		return "Keys: up/down move | K/J reorder | x delete | tab column | ? help | q quit"
	default:
		return "Keys: up/down move | s start | K/J reorder | m swap | a add | x delete | tab column | ? help | q quit"
	}
}

func (m *model) setStatus(text string, level statusLevel) {
	m.status = text
	m.statusLevel = level
}

func (m model) renderModalOverlay(content string) string {
	if m.modal.kind == modalNone {
		return content
	}
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, m.modalView())
}

func (m model) modalView() string {
	switch m.modal.kind {
	case modalHelp:
		return modalStyle.Render(m.helpContent())
	case modalAdd:
		return modalStyle.Render(m.form.View())
	case modalCheckIn:
		return modalStyle.Render(m.checkInView())
	}

	options := []string{m.modal.confirmText, m.modal.cancelText}
	buttons := make([]string, 0, len(options))
	for i, option := range options {
		style := valueMuted
		if i == m.modal.selected {
			style = selectedBorder
		}
		buttons = append(buttons, style.Render("["+option+"]"))
	}
	content := strings.Join([]string{m.modal.message, "", strings.Join(buttons, " ")}, "\n")
	return modalStyle.Render(content)
}

func (m model) checkInView() string {
	lines := []string{labelStyle.Render(m.modal.message), ""}
	for i, feeling := range task.ValidFeelings() {
		line := fmt.Sprintf("%d %s %s", i+1, feeling.Emoji(), feeling.Label())
		if i == m.feeling {
			lines = append(lines, selectedBorder.Render("> "+line))
			continue
		}
		lines = append(lines, "  "+line)
	}
	lines = append(lines, "", valueMuted.Render("1-5 or enter to log | esc skip"))
	return strings.Join(lines, "\n")
}

func (m model) handleListNavigation(key string) (model, tea.Cmd, bool) {
	switch key {
	case "up", "k":
		return m.moveListSelection(-1)
	case "down", "j":
		return m.moveListSelection(1)
	case "home":
		return m.moveListSelection(-1 * len(m.activeItems()))
	case "end":
		return m.moveListSelection(len(m.activeItems()))
	}
	return m, nil, false
}

func (m model) moveListSelection(delta int) (model, tea.Cmd, bool) {
	items := m.activeItems()
	if len(items) == 0 {
		return m, nil, true
	}
	current := m.lists[m.active].Index()
	if current < 0 {
		current = 0
	}
	next := current + delta
	if next < 0 {
		next = 0
	}
	if next >= len(items) {
		next = len(items) - 1
	}
	m.lists[m.active].Select(next)
	return m, nil, true
}

func (m model) activeItems() []list.Item {
	return m.lists[m.active].Items()
}

func (m model) currentItem() (taskItem, bool) {
	items := m.activeItems()
	index := m.lists[m.active].Index()
	if index < 0 || index >= len(items) {
		return taskItem{}, false
	}
	item, ok := items[index].(taskItem)
	return item, ok
}

func (m model) selectedID() string {
	if item, ok := m.currentItem(); ok {
		return item.task.ID
	}
	return ""
}

func (m model) dispatchCmd(ev board.Event) tea.Cmd {
	return func() tea.Msg {
		res, err := m.board.Dispatch(m.ctx, ev)
		return dispatchedMsg{event: ev, result: res, err: err}
	}
}

func (m model) handleRemindersDue(msg remindersDueMsg) (tea.Model, tea.Cmd) {
	if msg.err == nil && len(msg.tasks) > 0 {
		latest := msg.tasks[len(msg.tasks)-1]
		m.setStatus(board.ReminderTitle+": "+board.ReminderBody(summarize(latest.Content)), statusReminder)
	}
	return m, m.reminderTickCmd()
}

func (m model) checkRemindersCmd() tea.Cmd {
	if m.reminders == nil {
		return nil
	}
	loop := m.reminders
	ctx := m.ctx
	return func() tea.Msg {
		_, err := loop.scheduler.Check(ctx)
		return remindersDueMsg{tasks: loop.collector.drain(), err: err}
	}
}

func (m model) reminderTickCmd() tea.Cmd {
	if m.reminders == nil {
		return nil
	}
	return tea.Tick(m.reminders.interval, func(time.Time) tea.Msg {
		return reminderTickMsg{}
	})
}

func summarize(content string) string {
	line, _, _ := strings.Cut(internalstrings.NormalizeNewlines(content), "\n")
	return internalstrings.TrimSpace(line)
}

// reminderLoop runs a reminder.Scheduler against the board between
// redraws and hands due tasks back to the model.
type reminderLoop struct {
	scheduler *reminder.Scheduler
	collector *collectNotifier
	interval  time.Duration
}

func newReminderLoop(b *board.Board, opts Options) *reminderLoop {
	interval := opts.ReminderInterval
	if interval == 0 {
		interval = reminder.DefaultInterval
	}
	collector := &collectNotifier{}
	var notifier reminder.Notifier = collector
	if opts.Notifier != nil {
		notifier = reminder.MultiNotifier{collector, opts.Notifier}
	}
	scheduler := reminder.New(boardSource{board: b}, notifier, reminder.Options{
		Interval: interval,
		Now:      opts.Now,
		Logger:   opts.Logger,
	})
	return &reminderLoop{scheduler: scheduler, collector: collector, interval: interval}
}

type boardSource struct {
	board *board.Board
}

func (s boardSource) LoadTasks(context.Context) ([]task.Task, error) {
	return s.board.Tasks(), nil
}

type collectNotifier struct {
	mu  sync.Mutex
	due []task.Task
}

func (n *collectNotifier) Notify(_ context.Context, t task.Task) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.due = append(n.due, t)
	return nil
}

func (n *collectNotifier) drain() []task.Task {
	n.mu.Lock()
	defer n.mu.Unlock()
	due := n.due
	n.due = nil
	return due
}
