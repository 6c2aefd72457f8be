package views

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/tgienger/todo/internal/models"
	"github.com/tgienger/todo/internal/ui/keys"
	"github.com/tgienger/todo/internal/ui/styles"
)

// RowState is the edit mode of a TaskRow
type RowState int

const (
	Viewing RowState = iota
	Editing
)

func (s RowState) String() string {
	switch s {
	case Viewing:
		return "viewing"
	case Editing:
		return "editing"
	}
	return fmt.Sprintf("RowState(%d)", int(s))
}

// Region identifies an interactive part of a rendered row
type Region int

const (
	RegionNone   Region = iota
	RegionButton        // title area; toggles completion
	RegionMarker        // completion marker; toggles completion
	RegionEdit          // edit-start control, shown while viewing
	RegionCancel        // cancel control, shown while editing
	RegionDelete        // delete control, always shown
)

var regionPrefixes = map[Region]string{
	RegionButton: "button",
	RegionMarker: "marker",
	RegionEdit:   "edit",
	RegionCancel: "cancel",
	RegionDelete: "trash",
}

// Row layout, in columns
const (
	rowPadding    = 1
	markerWidth   = 3
	gapWidth      = 1
	actionWidth   = 1
	dividerWidth  = 3
	deleteWidth   = 1
	minTitleWidth = 8

	rowChrome = 2*rowPadding + markerWidth + 2*gapWidth + actionWidth + dividerWidth + deleteWidth
)

const (
	markerEmpty = "[ ]"
	markerDone  = "[✓]"
	iconEdit    = "✎"
	iconCancel  = "✗"
	iconDelete  = "⌫"
	divider     = " │ "
)

const defaultCharLimit = 200

// titleReplacer flattens a stored title onto one display line
var titleReplacer = strings.NewReplacer("\t", " ", "\r\n", " ", "\n", " ")

// RowCallbacks are the intents a TaskRow forwards to the list that owns it.
// Each returns a command for the owner's side effects and may return nil.
type RowCallbacks struct {
	OnToggle func(id int64) tea.Cmd
	OnRemove func(id int64) tea.Cmd
	OnEdit   func(id int64, title string) tea.Cmd
}

// TaskRow renders one task and owns its local edit state. It never writes to
// the task itself; every change is requested through RowCallbacks.
type TaskRow struct {
	index  int
	item   models.Task
	cb     RowCallbacks
	styles *styles.Styles
	keys   keys.KeyMap

	state     RowState
	draft     string
	input     textinput.Model // only holds text while editing
	charLimit int
	width     int
}

// NewTaskRow creates a row in the Viewing state with the draft set to the item's title
func NewTaskRow(index int, item models.Task, cb RowCallbacks) *TaskRow {
	s := styles.NewStyles()
	input := textinput.New()
	input.Prompt = ""
	input.Cursor.Style = s.Cursor

	r := &TaskRow{
		index:     index,
		item:      item,
		cb:        cb,
		styles:    s,
		keys:      keys.DefaultKeyMap(),
		state:     Viewing,
		draft:     item.Title,
		input:     input,
		charLimit: defaultCharLimit,
	}
	r.syncInputStyle()
	r.SetWidth(styles.MaxWidth)
	return r
}

func (r *TaskRow) Index() int        { return r.index }
func (r *TaskRow) Item() models.Task { return r.item }
func (r *TaskRow) State() RowState   { return r.state }
func (r *TaskRow) IsEditing() bool   { return r.state == Editing }
func (r *TaskRow) Draft() string     { return r.draft }

// Focused reports whether the title field has input focus
func (r *TaskRow) Focused() bool { return r.input.Focused() }

// SetIndex updates the row position used for region identifiers
func (r *TaskRow) SetIndex(index int) { r.index = index }

// SetCharLimit caps the length of titles typed into the row. It takes effect
// the next time editing starts; an existing longer title is never cut.
func (r *TaskRow) SetCharLimit(n int) { r.charLimit = n }

// SetWidth sets the total rendered width of the row
func (r *TaskRow) SetWidth(width int) {
	r.width = width
	r.input.Width = r.titleWidth() - 1 // one column for the cursor
}

// SetItem replaces the displayed task with a fresh copy from the owner.
// While viewing, the draft follows the new title; an edit in progress keeps its draft.
func (r *TaskRow) SetItem(item models.Task) {
	r.item = item
	if r.state == Viewing {
		r.draft = item.Title
	}
	r.syncInputStyle()
}

// SetDraft replaces the draft text, as if the user had typed it.
// The title is display-only while viewing, so this is ignored then.
func (r *TaskRow) SetDraft(title string) {
	if r.state != Editing {
		return
	}
	r.input.SetValue(title)
	r.draft = r.input.Value()
}

// Toggle asks the owner to flip completion. Available in every state.
func (r *TaskRow) Toggle() tea.Cmd {
	return r.cb.OnToggle(r.item.ID)
}

// Remove asks the owner to delete the task. Available in every state.
func (r *TaskRow) Remove() tea.Cmd {
	return r.cb.OnRemove(r.item.ID)
}

// StartEditing moves Viewing -> Editing
func (r *TaskRow) StartEditing() tea.Cmd {
	if r.state != Viewing {
		return nil
	}
	return r.setState(Editing)
}

// CancelEditing moves Editing -> Viewing and discards the draft
func (r *TaskRow) CancelEditing() tea.Cmd {
	if r.state != Editing {
		return nil
	}
	r.draft = r.item.Title
	return r.setState(Viewing)
}

// SubmitEditing moves Editing -> Viewing and hands the draft to the owner
func (r *TaskRow) SubmitEditing() tea.Cmd {
	if r.state != Editing {
		return nil
	}
	cmd := r.cb.OnEdit(r.item.ID, r.draft)
	return tea.Batch(cmd, r.setState(Viewing))
}

// setState is the only place the state changes. Focus follows the new state
// before control returns to the event loop.
func (r *TaskRow) setState(s RowState) tea.Cmd {
	r.state = s
	if s == Editing {
		// The field sanitizes and caps what it holds, so the draft stays the
		// stored title until the user actually changes the text.
		r.input.CharLimit = max(r.charLimit, utf8.RuneCountInString(r.draft))
		r.input.SetValue(r.draft)
		cmd := r.input.Focus()
		r.input.CursorEnd()
		return cmd
	}
	r.input.Blur()
	r.input.SetValue("")
	return nil
}

func (r *TaskRow) syncInputStyle() {
	if r.item.Done {
		r.input.TextStyle = r.styles.TaskTextDone
		return
	}
	r.input.TextStyle = r.styles.TaskInput
}

// Activate performs the action bound to a region, as a click or tap would
func (r *TaskRow) Activate(region Region) tea.Cmd {
	switch region {
	case RegionButton, RegionMarker:
		return r.Toggle()
	case RegionEdit:
		return r.StartEditing()
	case RegionCancel:
		return r.CancelEditing()
	case RegionDelete:
		return r.Remove()
	}
	return nil
}

// RegionID returns the automation identifier of a region, e.g. "marker-3"
func (r *TaskRow) RegionID(region Region) string {
	prefix, ok := regionPrefixes[region]
	if !ok {
		return ""
	}
	return fmt.Sprintf("%s-%d", prefix, r.index)
}

// HitTest maps a column within the rendered row to the region drawn there
func (r *TaskRow) HitTest(x int) Region {
	tw := r.titleWidth()

	x -= rowPadding
	switch {
	case x < 0:
		return RegionNone
	case x < markerWidth:
		return RegionMarker
	}
	x -= markerWidth

	if x < gapWidth+tw {
		return RegionButton
	}
	x -= gapWidth + tw + gapWidth

	switch {
	case x < 0:
		return RegionNone
	case x < actionWidth:
		if r.state == Editing {
			return RegionCancel
		}
		return RegionEdit
	}
	x -= actionWidth + dividerWidth

	if x >= 0 && x < deleteWidth {
		return RegionDelete
	}
	return RegionNone
}

// Update handles input for the row
func (r *TaskRow) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if r.state == Editing {
			return r.updateEditing(msg)
		}
		return r.updateViewing(msg)

	case tea.MouseMsg:
		if msg.Action != tea.MouseActionPress || msg.Button != tea.MouseButtonLeft {
			return nil
		}
		return r.Activate(r.HitTest(msg.X))
	}

	// Cursor blink and other input internals
	if r.state == Editing {
		var cmd tea.Cmd
		r.input, cmd = r.input.Update(msg)
		return cmd
	}
	return nil
}

func (r *TaskRow) updateViewing(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, r.keys.Toggle):
		return r.Toggle()
	case key.Matches(msg, r.keys.Edit):
		return r.StartEditing()
	case key.Matches(msg, r.keys.Delete):
		return r.Remove()
	}
	return nil
}

func (r *TaskRow) updateEditing(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, r.keys.Submit):
		return r.SubmitEditing()
	case key.Matches(msg, r.keys.Cancel):
		return r.CancelEditing()
	case key.Matches(msg, r.keys.ToggleEditing):
		return r.Toggle()
	case key.Matches(msg, r.keys.DeleteEditing):
		return r.Remove()
	}

	before := r.input.Value()
	var cmd tea.Cmd
	r.input, cmd = r.input.Update(msg)
	if v := r.input.Value(); v != before {
		r.draft = v
	}
	return cmd
}

func (r *TaskRow) titleWidth() int {
	return max(r.width-rowChrome, minTitleWidth)
}

// View renders the row on a single line
func (r *TaskRow) View(selected bool) string {
	s := r.styles
	tw := r.titleWidth()

	marker := s.Marker.Render(markerEmpty)
	textStyle := s.TaskText
	if r.item.Done {
		marker = s.MarkerDone.Render(markerDone)
		textStyle = s.TaskTextDone
	}

	var title string
	if r.state == Editing {
		title = r.input.View()
	} else {
		title = textStyle.Render(ansi.Truncate(titleReplacer.Replace(r.item.Title), tw, "…"))
	}
	title = lipgloss.NewStyle().Width(tw).MaxWidth(tw).Render(title)

	action := s.Icon.Render(iconEdit)
	if r.state == Editing {
		action = s.Icon.Render(iconCancel)
	}

	line := lipgloss.JoinHorizontal(lipgloss.Top,
		marker,
		" ",
		title,
		" ",
		action,
		s.Divider.Render(divider),
		s.IconDanger.Render(iconDelete),
	)

	rowStyle := s.Row
	if selected {
		rowStyle = s.RowSelected
	}
	return rowStyle.Render(line)
}
