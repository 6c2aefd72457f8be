package views

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/tgienger/todo/internal/db"
	"github.com/tgienger/todo/internal/logging"
	"github.com/tgienger/todo/internal/models"
	"github.com/tgienger/todo/internal/ui/keys"
	"github.com/tgienger/todo/internal/ui/styles"
)

// lastTaskKey is the settings key that remembers the selected task across runs
const lastTaskKey = "last_task_id"

// headerHeight is the number of lines above the first row (title + blank line)
const headerHeight = 2

// TaskListView owns the tasks and one TaskRow per task. Rows report intents
// through callbacks; this view turns them into store writes.
type TaskListView struct {
	db     *db.DB
	log    *logging.Logger
	tasks  []models.Task
	rows   []*TaskRow
	styles *styles.Styles
	keys   keys.KeyMap
	help   help.Model

	width     int
	height    int
	charLimit int

	// UI state
	cursor    int
	scrollY   int
	restoreID int64 // task to select after the first load

	// Delete confirmation
	confirmingDelete bool
	deleteTargetID   int64
	deleteTargetName string

	// Status line, cleared on the next key press
	status      string
	statusLevel statusLevel
}

// NewTaskListView creates a new task list view
func NewTaskListView(database *db.DB, logger *logging.Logger, charLimit int) *TaskListView {
	s := styles.NewStyles()

	h := help.New()
	h.Styles.ShortKey = s.HelpKey
	h.Styles.ShortDesc = s.HelpDesc
	h.Styles.ShortSeparator = s.HelpDesc
	h.Styles.FullKey = s.HelpKey
	h.Styles.FullDesc = s.HelpDesc
	h.Styles.FullSeparator = s.HelpDesc

	return &TaskListView{
		db:        database,
		log:       logger.With("component", "task_list"),
		styles:    s,
		keys:      keys.DefaultKeyMap(),
		help:      h,
		charLimit: charLimit,
	}
}

type tasksLoadedMsg struct {
	tasks []models.Task
}

// taskChangedMsg reports a completed store write
type taskChangedMsg struct {
	op string
	id int64
}

type errMsg struct {
	op  string
	err error
}

// Init restores the last selected task and loads the list
func (v *TaskListView) Init() tea.Cmd {
	if s, err := v.db.GetSetting(lastTaskKey); err == nil && s != "" {
		if id, err := strconv.ParseInt(s, 10, 64); err == nil {
			v.restoreID = id
		}
	}
	return v.loadTasks
}

func (v *TaskListView) loadTasks() tea.Msg {
	tasks, err := v.db.ListTasks()
	if err != nil {
		return errMsg{op: "load", err: err}
	}
	return tasksLoadedMsg{tasks: tasks}
}

// Rows returns the rows in display order
func (v *TaskListView) Rows() []*TaskRow { return v.rows }

// Cursor returns the index of the selected row
func (v *TaskListView) Cursor() int { return v.cursor }

func (v *TaskListView) selectedRow() *TaskRow {
	if v.cursor < 0 || v.cursor >= len(v.rows) {
		return nil
	}
	return v.rows[v.cursor]
}

func (v *TaskListView) newRow(index int, task models.Task) *TaskRow {
	row := NewTaskRow(index, task, RowCallbacks{
		OnToggle: v.toggleTask,
		OnRemove: v.confirmRemove,
		OnEdit:   v.renameTask,
	})
	row.SetCharLimit(v.charLimit)
	row.SetWidth(styles.ContentWidth(v.rowWidth()))
	return row
}

func (v *TaskListView) rowWidth() int {
	if v.width == 0 {
		return styles.MaxWidth
	}
	return v.width
}

func (v *TaskListView) toggleTask(id int64) tea.Cmd {
	return func() tea.Msg {
		if err := v.db.ToggleTaskDone(id); err != nil {
			return errMsg{op: "toggle", err: err}
		}
		return taskChangedMsg{op: "toggle", id: id}
	}
}

func (v *TaskListView) renameTask(id int64, title string) tea.Cmd {
	title = strings.TrimSpace(title)
	if title == "" {
		v.setStatus("Title can't be empty", statusWarn)
		return v.loadTasks
	}
	return func() tea.Msg {
		if err := v.db.RenameTask(id, title); err != nil {
			return errMsg{op: "rename", err: err}
		}
		return taskChangedMsg{op: "rename", id: id}
	}
}

// confirmRemove asks before deleting; the write happens in updateConfirmDelete
func (v *TaskListView) confirmRemove(id int64) tea.Cmd {
	for _, t := range v.tasks {
		if t.ID == id {
			v.confirmingDelete = true
			v.deleteTargetID = id
			v.deleteTargetName = t.Title
			return nil
		}
	}
	return nil
}

func (v *TaskListView) deleteTask(id int64) tea.Cmd {
	return func() tea.Msg {
		if err := v.db.DeleteTask(id); err != nil {
			return errMsg{op: "delete", err: err}
		}
		return taskChangedMsg{op: "delete", id: id}
	}
}

type statusLevel int

const (
	statusInfo statusLevel = iota
	statusWarn
	statusError
)

func (v *TaskListView) setStatus(s string, level statusLevel) {
	v.status = s
	v.statusLevel = level
}

// Update handles messages
func (v *TaskListView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.width = msg.Width
		v.height = msg.Height
		v.help.Width = styles.ContentWidth(v.width)
		for _, row := range v.rows {
			row.SetWidth(styles.ContentWidth(v.width))
		}
		v.ensureVisible()
		return v, nil

	case tasksLoadedMsg:
		v.syncRows(msg.tasks)
		return v, nil

	case taskChangedMsg:
		v.log.Info("task changed", "op", msg.op, "task_id", msg.id)
		return v, v.loadTasks

	case errMsg:
		v.log.Error("store operation failed", "op", msg.op, "error", msg.err)
		v.setStatus(fmt.Sprintf("Could not %s task: %v", msg.op, msg.err), statusError)
		return v, v.loadTasks

	case tea.KeyMsg:
		v.setStatus("", statusInfo)

		// ctrl+c quits from every state, including dialogs and edits
		if key.Matches(msg, v.keys.ForceQuit) {
			return v, tea.Quit
		}

		if v.confirmingDelete {
			return v.updateConfirmDelete(msg)
		}

		if row := v.selectedRow(); row != nil && row.IsEditing() {
			return v, row.Update(msg)
		}

		return v.updateNormal(msg)

	case tea.MouseMsg:
		return v.updateMouse(msg)
	}

	// Cursor blink and other input internals belong to the row being edited
	if row := v.selectedRow(); row != nil && row.IsEditing() {
		return v, row.Update(msg)
	}
	return v, nil
}

func (v *TaskListView) updateNormal(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, v.keys.Quit):
		return v, tea.Quit

	case key.Matches(msg, v.keys.Help):
		v.help.ShowAll = !v.help.ShowAll
		return v, nil

	case key.Matches(msg, v.keys.Up):
		v.moveCursor(v.cursor - 1)
		return v, nil

	case key.Matches(msg, v.keys.Down):
		v.moveCursor(v.cursor + 1)
		return v, nil
	}

	if row := v.selectedRow(); row != nil {
		return v, row.Update(msg)
	}
	return v, nil
}

func (v *TaskListView) updateConfirmDelete(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, v.keys.Confirm):
		v.confirmingDelete = false
		return v, v.deleteTask(v.deleteTargetID)
	case key.Matches(msg, v.keys.Deny):
		v.confirmingDelete = false
		return v, nil
	}
	return v, nil
}

func (v *TaskListView) updateMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if v.confirmingDelete {
		return v, nil
	}
	if msg.Action != tea.MouseActionPress || msg.Button != tea.MouseButtonLeft {
		return v, nil
	}

	idx := v.scrollY + msg.Y - headerHeight
	if msg.Y < headerHeight || idx >= len(v.rows) || idx >= v.scrollY+v.visibleRows() {
		return v, nil
	}

	// Only one row edits at a time; leaving it by mouse discards its draft
	if idx != v.cursor {
		if prev := v.selectedRow(); prev != nil && prev.IsEditing() {
			prev.CancelEditing()
		}
		v.moveCursor(idx)
	}

	rowMsg := msg
	rowMsg.X -= styles.CenterOffset(v.width)
	rowMsg.Y = 0
	return v, v.rows[idx].Update(rowMsg)
}

func (v *TaskListView) moveCursor(to int) {
	if len(v.rows) == 0 {
		return
	}
	to = clamp(to, 0, len(v.rows)-1)
	if to == v.cursor {
		return
	}
	v.cursor = to
	v.ensureVisible()

	id := v.rows[to].Item().ID
	if err := v.db.SetSetting(lastTaskKey, strconv.FormatInt(id, 10)); err != nil {
		v.log.Warn("failed to save selection", "task_id", id, "error", err)
	}
}

// syncRows matches rows to a fresh task list by id. Surviving rows keep their
// edit state; rows for removed tasks are dropped.
func (v *TaskListView) syncRows(tasks []models.Task) {
	selectedID := v.restoreID
	if row := v.selectedRow(); row != nil && selectedID == 0 {
		selectedID = row.Item().ID
	}
	v.restoreID = 0

	existing := make(map[int64]*TaskRow, len(v.rows))
	for _, row := range v.rows {
		existing[row.Item().ID] = row
	}

	rows := make([]*TaskRow, len(tasks))
	for i, t := range tasks {
		if row, ok := existing[t.ID]; ok {
			row.SetIndex(i)
			row.SetItem(t)
			rows[i] = row
			continue
		}
		rows[i] = v.newRow(i, t)
	}

	v.tasks = tasks
	v.rows = rows

	v.cursor = clamp(v.cursor, 0, max(0, len(rows)-1))
	for i, t := range tasks {
		if t.ID == selectedID {
			v.cursor = i
			break
		}
	}
	v.ensureVisible()
}

func (v *TaskListView) visibleRows() int {
	if v.height == 0 {
		return len(v.rows) + 1
	}
	// title, blank, blank, status, help (padding included)
	return max(v.height-headerHeight-6, 1)
}

func (v *TaskListView) ensureVisible() {
	visible := v.visibleRows()
	if v.cursor < v.scrollY {
		v.scrollY = v.cursor
	} else if v.cursor >= v.scrollY+visible {
		v.scrollY = v.cursor - visible + 1
	}
	v.scrollY = clamp(v.scrollY, 0, max(0, len(v.rows)-visible))
}

// View renders the view
func (v *TaskListView) View() string {
	if v.confirmingDelete {
		return v.renderDeleteConfirm()
	}

	var b strings.Builder

	b.WriteString(v.renderHeader())
	b.WriteString("\n\n")
	b.WriteString(v.renderTaskList())
	b.WriteString("\n\n")
	b.WriteString(v.renderStatus())
	b.WriteString("\n")
	b.WriteString(v.renderHelp())

	return styles.CenterView(b.String(), v.width, v.height)
}

func (v *TaskListView) renderHeader() string {
	s := v.styles
	done := 0
	for _, t := range v.tasks {
		if t.Done {
			done++
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top,
		s.Title.Render("Tasks"),
		s.TitleMuted.Render(fmt.Sprintf("  %d/%d done", done, len(v.tasks))),
	)
}

func (v *TaskListView) renderTaskList() string {
	if len(v.rows) == 0 {
		return v.styles.TitleMuted.Render("No tasks.")
	}

	end := min(v.scrollY+v.visibleRows(), len(v.rows))
	items := make([]string, 0, end-v.scrollY)
	for i := v.scrollY; i < end; i++ {
		items = append(items, v.rows[i].View(i == v.cursor))
	}
	return lipgloss.JoinVertical(lipgloss.Left, items...)
}

func (v *TaskListView) renderStatus() string {
	if v.status == "" {
		return ""
	}
	switch v.statusLevel {
	case statusError:
		return v.styles.StatusError.Render(v.status)
	case statusWarn:
		return v.styles.StatusWarn.Render(v.status)
	}
	return v.styles.StatusBar.Render(v.status)
}

func (v *TaskListView) renderHelp() string {
	var km help.KeyMap = v.keys
	if row := v.selectedRow(); row != nil && row.IsEditing() {
		km = keys.EditingKeyMap{KeyMap: v.keys}
	}
	return v.styles.Help.Render(v.help.View(km))
}

func (v *TaskListView) renderDeleteConfirm() string {
	s := v.styles
	contentWidth := styles.ContentWidth(v.width)

	content := lipgloss.JoinVertical(lipgloss.Center,
		s.Title.Foreground(styles.Current.Error).Render("Delete Task?"),
		"",
		s.TitleMuted.Render(fmt.Sprintf("%q will be removed.", v.deleteTargetName)),
		"",
		lipgloss.JoinHorizontal(lipgloss.Center,
			s.ButtonPrimary.Render(" Y - Yes "),
			"  ",
			s.Button.Render(" N - No "),
		),
	)

	centered := lipgloss.Place(contentWidth, v.height,
		lipgloss.Center, lipgloss.Center,
		s.Dialog.Render(content),
	)
	return styles.CenterView(centered, v.width, v.height)
}

// clamp returns val clamped between minVal and maxVal
func clamp(val, minVal, maxVal int) int {
	if val < minVal {
		return minVal
	}
	if val > maxVal {
		return maxVal
	}
	return val
}
