package views

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/tgienger/todo/internal/models"
)

// keyMsg constructs a tea.KeyMsg from a string like "e", "enter", "ctrl+t".
// Single-character strings are mapped to KeyRunes; named keys get their
// corresponding KeyType constant.
func keyMsg(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "space":
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{' '}}
	case "backspace":
		return tea.KeyMsg{Type: tea.KeyBackspace}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "ctrl+t":
		return tea.KeyMsg{Type: tea.KeyCtrlT}
	case "ctrl+x":
		return tea.KeyMsg{Type: tea.KeyCtrlX}
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
	}
}

// typeText sends each rune of s to update as a separate key press
func typeText(update func(tea.Msg) tea.Cmd, s string) {
	for _, r := range s {
		update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
}

// click constructs a left-button press at column x, row y
func click(x, y int) tea.MouseMsg {
	return tea.MouseMsg{
		X:      x,
		Y:      y,
		Action: tea.MouseActionPress,
		Button: tea.MouseButtonLeft,
	}
}

type editCall struct {
	id    int64
	title string
}

// recorder stands in for the list that owns a row. Toggling flips the task
// and hands the fresh copy back to the row, the way a reload would.
type recorder struct {
	row     *TaskRow
	task    models.Task
	toggles []int64
	removes []int64
	edits   []editCall
}

func newRecordedRow(task models.Task) *recorder {
	rec := &recorder{task: task}
	rec.row = NewTaskRow(0, task, RowCallbacks{
		OnToggle: func(id int64) tea.Cmd {
			rec.toggles = append(rec.toggles, id)
			rec.task.Done = !rec.task.Done
			rec.row.SetItem(rec.task)
			return nil
		},
		OnRemove: func(id int64) tea.Cmd {
			rec.removes = append(rec.removes, id)
			return nil
		},
		OnEdit: func(id int64, title string) tea.Cmd {
			rec.edits = append(rec.edits, editCall{id: id, title: title})
			return nil
		},
	})
	return rec
}

func buyMilk() models.Task {
	return models.Task{ID: 5, Title: "Buy milk", Done: false}
}
