package views

import (
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"
	"github.com/tgienger/todo/internal/models"
)

func TestNewTaskRowStartsViewing(t *testing.T) {
	rec := newRecordedRow(buyMilk())
	row := rec.row

	if row.State() != Viewing {
		t.Errorf("State() = %v, want %v", row.State(), Viewing)
	}
	if row.Draft() != "Buy milk" {
		t.Errorf("Draft() = %q, want %q", row.Draft(), "Buy milk")
	}
	if row.Focused() {
		t.Error("title field should not be focused while viewing")
	}
}

func TestToggleCallsOnToggleInEveryState(t *testing.T) {
	for _, editing := range []bool{false, true} {
		rec := newRecordedRow(buyMilk())
		if editing {
			rec.row.StartEditing()
		}

		rec.row.Activate(RegionMarker)

		if len(rec.toggles) != 1 || rec.toggles[0] != 5 {
			t.Errorf("editing=%v: toggles = %v, want [5]", editing, rec.toggles)
		}
		if editing != rec.row.IsEditing() {
			t.Errorf("editing=%v: toggle changed edit state to %v", editing, rec.row.State())
		}
	}
}

func TestTitleRegionToggles(t *testing.T) {
	rec := newRecordedRow(buyMilk())

	rec.row.Activate(RegionButton)

	if len(rec.toggles) != 1 || rec.toggles[0] != 5 {
		t.Errorf("toggles = %v, want [5]", rec.toggles)
	}
}

func TestRemoveCallsOnRemoveInEveryState(t *testing.T) {
	for _, editing := range []bool{false, true} {
		rec := newRecordedRow(buyMilk())
		if editing {
			rec.row.StartEditing()
		}
		before := rec.row.State()

		rec.row.Activate(RegionDelete)

		if len(rec.removes) != 1 || rec.removes[0] != 5 {
			t.Errorf("editing=%v: removes = %v, want [5]", editing, rec.removes)
		}
		if rec.row.State() != before {
			t.Errorf("editing=%v: remove changed state %v -> %v", editing, before, rec.row.State())
		}
	}
}

func TestStartEditing(t *testing.T) {
	rec := newRecordedRow(buyMilk())

	rec.row.Activate(RegionEdit)

	if rec.row.State() != Editing {
		t.Fatalf("State() = %v, want %v", rec.row.State(), Editing)
	}
	if !rec.row.Focused() {
		t.Error("title field should be focused while editing")
	}
	if rec.row.Draft() != "Buy milk" {
		t.Errorf("Draft() = %q, want %q", rec.row.Draft(), "Buy milk")
	}
	if len(rec.edits) != 0 {
		t.Errorf("edits = %v, want none", rec.edits)
	}
}

func TestCancelEditingDiscardsDraft(t *testing.T) {
	rec := newRecordedRow(buyMilk())
	row := rec.row

	row.Activate(RegionEdit)
	row.SetDraft("X")
	row.Activate(RegionCancel)

	if row.State() != Viewing {
		t.Errorf("State() = %v, want %v", row.State(), Viewing)
	}
	if row.Draft() != "Buy milk" {
		t.Errorf("Draft() = %q, want %q", row.Draft(), "Buy milk")
	}
	if row.Focused() {
		t.Error("title field should lose focus on cancel")
	}
	if len(rec.edits) != 0 {
		t.Errorf("edits = %v, want none", rec.edits)
	}
}

func TestSubmitEditingCallsOnEdit(t *testing.T) {
	rec := newRecordedRow(buyMilk())
	row := rec.row

	row.Activate(RegionEdit)
	row.SetDraft("Buy oat milk")
	row.SubmitEditing()

	if len(rec.edits) != 1 {
		t.Fatalf("edits = %v, want exactly one", rec.edits)
	}
	if rec.edits[0] != (editCall{id: 5, title: "Buy oat milk"}) {
		t.Errorf("edit = %+v, want {5 Buy oat milk}", rec.edits[0])
	}
	if row.State() != Viewing {
		t.Errorf("State() = %v, want %v", row.State(), Viewing)
	}
	if row.Focused() {
		t.Error("title field should lose focus on submit")
	}
	if row.Draft() != "Buy oat milk" {
		t.Errorf("Draft() = %q, want submitted value until the owner re-syncs", row.Draft())
	}
}

func TestRenameScenarioWithKeys(t *testing.T) {
	rec := newRecordedRow(buyMilk())
	row := rec.row

	row.Update(keyMsg("e"))
	if row.State() != Editing {
		t.Fatalf("State() = %v after e, want %v", row.State(), Editing)
	}
	if row.Draft() != "Buy milk" {
		t.Errorf("Draft() = %q, want %q", row.Draft(), "Buy milk")
	}

	// Cursor starts at the end, so this inserts before "milk"
	for i := 0; i < len("milk"); i++ {
		row.Update(keyMsg("backspace"))
	}
	typeText(row.Update, "oat milk")
	row.Update(keyMsg("enter"))

	if len(rec.edits) != 1 || rec.edits[0] != (editCall{id: 5, title: "Buy oat milk"}) {
		t.Errorf("edits = %+v, want [{5 Buy oat milk}]", rec.edits)
	}
	if row.State() != Viewing {
		t.Errorf("State() = %v, want %v", row.State(), Viewing)
	}
}

func TestCancelScenarioWithKeys(t *testing.T) {
	rec := newRecordedRow(buyMilk())
	row := rec.row

	row.Update(keyMsg("e"))
	for i := 0; i < len("Buy milk"); i++ {
		row.Update(keyMsg("backspace"))
	}
	typeText(row.Update, "X")
	if row.Draft() != "X" {
		t.Fatalf("Draft() = %q, want %q", row.Draft(), "X")
	}
	row.Update(keyMsg("esc"))

	if len(rec.edits) != 0 {
		t.Errorf("edits = %v, want none", rec.edits)
	}
	if row.Draft() != "Buy milk" {
		t.Errorf("Draft() = %q, want %q", row.Draft(), "Buy milk")
	}
	if row.State() != Viewing {
		t.Errorf("State() = %v, want %v", row.State(), Viewing)
	}
}

func TestViewingKeys(t *testing.T) {
	rec := newRecordedRow(buyMilk())

	rec.row.Update(keyMsg(" "))
	rec.row.Update(keyMsg("d"))

	if len(rec.toggles) != 1 {
		t.Errorf("toggles = %v, want one", rec.toggles)
	}
	if len(rec.removes) != 1 {
		t.Errorf("removes = %v, want one", rec.removes)
	}
}

func TestEditingKeysTypeInsteadOfActing(t *testing.T) {
	rec := newRecordedRow(buyMilk())
	row := rec.row

	row.Update(keyMsg("e"))
	typeText(row.Update, " de")

	if row.Draft() != "Buy milk de" {
		t.Errorf("Draft() = %q, want %q", row.Draft(), "Buy milk de")
	}
	if len(rec.toggles) != 0 || len(rec.removes) != 0 {
		t.Errorf("typing triggered actions: toggles=%v removes=%v", rec.toggles, rec.removes)
	}

	row.Update(keyMsg("ctrl+t"))
	row.Update(keyMsg("ctrl+x"))
	if len(rec.toggles) != 1 || len(rec.removes) != 1 {
		t.Errorf("toggles=%v removes=%v, want one each", rec.toggles, rec.removes)
	}
	if !row.IsEditing() {
		t.Error("toggle/remove should not leave editing")
	}
}

func TestWrongStateEventsAreNoOps(t *testing.T) {
	rec := newRecordedRow(buyMilk())
	row := rec.row

	row.CancelEditing()
	row.SubmitEditing()
	if row.State() != Viewing || len(rec.edits) != 0 {
		t.Errorf("cancel/submit while viewing: state=%v edits=%v", row.State(), rec.edits)
	}

	row.StartEditing()
	row.SetDraft("draft")
	row.StartEditing()
	if row.Draft() != "draft" {
		t.Errorf("second StartEditing changed draft to %q", row.Draft())
	}
}

func TestSetDraftIgnoredWhileViewing(t *testing.T) {
	rec := newRecordedRow(buyMilk())

	rec.row.SetDraft("nope")

	if rec.row.Draft() != "Buy milk" {
		t.Errorf("Draft() = %q, want %q", rec.row.Draft(), "Buy milk")
	}
}

func TestSetItemSyncsDraftOnlyWhileViewing(t *testing.T) {
	rec := newRecordedRow(buyMilk())
	row := rec.row

	row.SetItem(models.Task{ID: 5, Title: "Buy bread"})
	if row.Draft() != "Buy bread" {
		t.Errorf("Draft() = %q, want %q", row.Draft(), "Buy bread")
	}

	row.StartEditing()
	row.SetDraft("Buy rye bread")
	row.SetItem(models.Task{ID: 5, Title: "Buy bread", Done: true})
	if row.Draft() != "Buy rye bread" {
		t.Errorf("Draft() = %q, edit in progress should survive SetItem", row.Draft())
	}

	row.CancelEditing()
	if row.Draft() != "Buy bread" {
		t.Errorf("Draft() = %q, want %q after cancel", row.Draft(), "Buy bread")
	}
}

func TestToggleStylingIdempotent(t *testing.T) {
	rec := newRecordedRow(buyMilk())
	original := rec.row.View(false)

	rec.row.Activate(RegionMarker)
	done := rec.row.View(false)
	if done == original {
		t.Fatal("view did not change after toggle")
	}
	if !strings.Contains(ansi.Strip(done), markerDone) {
		t.Errorf("done view missing %q: %q", markerDone, ansi.Strip(done))
	}

	for i := 0; i < 3; i++ {
		rec.row.Activate(RegionMarker)
	}
	if got := rec.row.View(false); got != original {
		t.Errorf("after an even number of toggles view = %q, want %q", got, original)
	}
}

func TestViewShowsActionsForState(t *testing.T) {
	rec := newRecordedRow(buyMilk())

	plain := ansi.Strip(rec.row.View(false))
	if !strings.Contains(plain, markerEmpty) || !strings.Contains(plain, "Buy milk") {
		t.Errorf("view = %q, want empty marker and title", plain)
	}
	if !strings.Contains(plain, iconEdit) || strings.Contains(plain, iconCancel) {
		t.Errorf("viewing row should show edit control only: %q", plain)
	}
	if !strings.Contains(plain, iconDelete) {
		t.Errorf("view missing delete control: %q", plain)
	}

	rec.row.StartEditing()
	plain = ansi.Strip(rec.row.View(false))
	if !strings.Contains(plain, iconCancel) || strings.Contains(plain, iconEdit) {
		t.Errorf("editing row should show cancel control only: %q", plain)
	}
	if !strings.Contains(plain, iconDelete) {
		t.Errorf("view missing delete control while editing: %q", plain)
	}
}

func TestViewIsOneLineAtWidth(t *testing.T) {
	rec := newRecordedRow(models.Task{ID: 1, Title: strings.Repeat("long title ", 20)})
	rec.row.SetWidth(40)

	for _, editing := range []bool{false, true} {
		if editing {
			rec.row.StartEditing()
		}
		view := rec.row.View(true)
		if strings.Contains(view, "\n") {
			t.Errorf("editing=%v: view wraps: %q", editing, view)
		}
		if w := ansi.StringWidth(view); w != 40 {
			t.Errorf("editing=%v: width = %d, want 40", editing, w)
		}
	}
}

func TestRegionIDs(t *testing.T) {
	row := NewTaskRow(3, buyMilk(), RowCallbacks{})

	tests := []struct {
		region Region
		want   string
	}{
		{RegionButton, "button-3"},
		{RegionMarker, "marker-3"},
		{RegionEdit, "edit-3"},
		{RegionCancel, "cancel-3"},
		{RegionDelete, "trash-3"},
		{RegionNone, ""},
	}
	for _, tt := range tests {
		if got := row.RegionID(tt.region); got != tt.want {
			t.Errorf("RegionID(%d) = %q, want %q", tt.region, got, tt.want)
		}
	}
	if row.RegionID(RegionEdit) == row.RegionID(RegionDelete) {
		t.Error("edit and delete controls share an identifier")
	}

	row.SetIndex(7)
	if got := row.RegionID(RegionMarker); got != "marker-7" {
		t.Errorf("after SetIndex RegionID = %q, want %q", got, "marker-7")
	}
}

func TestHitTestMatchesLayout(t *testing.T) {
	rec := newRecordedRow(buyMilk())
	row := rec.row
	row.SetWidth(40)

	plain := ansi.Strip(row.View(false))
	cols := []rune(plain)
	find := func(s string) int {
		i := strings.Index(plain, s)
		if i < 0 {
			t.Fatalf("%q not in %q", s, plain)
		}
		return len([]rune(plain[:i]))
	}

	if got := row.HitTest(find(markerEmpty)); got != RegionMarker {
		t.Errorf("HitTest(marker) = %d, want RegionMarker", got)
	}
	if got := row.HitTest(find("Buy milk")); got != RegionButton {
		t.Errorf("HitTest(title) = %d, want RegionButton", got)
	}
	if got := row.HitTest(find(iconEdit)); got != RegionEdit {
		t.Errorf("HitTest(edit) = %d, want RegionEdit", got)
	}
	if got := row.HitTest(find(iconDelete)); got != RegionDelete {
		t.Errorf("HitTest(delete) = %d, want RegionDelete", got)
	}
	if got := row.HitTest(0); got != RegionNone {
		t.Errorf("HitTest(0) = %d, want RegionNone", got)
	}
	if got := row.HitTest(len(cols) + 5); got != RegionNone {
		t.Errorf("HitTest(past end) = %d, want RegionNone", got)
	}

	row.StartEditing()
	if got := row.HitTest(find(iconEdit)); got != RegionCancel {
		t.Errorf("HitTest(action) while editing = %d, want RegionCancel", got)
	}
}

func TestMouseClickDispatch(t *testing.T) {
	rec := newRecordedRow(buyMilk())
	row := rec.row
	row.SetWidth(40)
	plain := ansi.Strip(row.View(false))
	col := func(s string) int { return len([]rune(plain[:strings.Index(plain, s)])) }

	row.Update(click(col(iconEdit), 0))
	if !row.IsEditing() {
		t.Fatal("click on edit control should start editing")
	}
	row.Update(click(col(iconEdit), 0))
	if row.IsEditing() {
		t.Fatal("click on cancel control should stop editing")
	}
	row.Update(click(col(markerEmpty), 0))
	row.Update(click(col(iconDelete), 0))

	if len(rec.toggles) != 1 || len(rec.removes) != 1 || len(rec.edits) != 0 {
		t.Errorf("toggles=%v removes=%v edits=%v", rec.toggles, rec.removes, rec.edits)
	}
}

func TestDraftKeepsStoredTitleWhileViewing(t *testing.T) {
	tests := []struct {
		name  string
		title string
	}{
		{"longer than the limit", strings.Repeat("x", 250)},
		{"tab", "a\tb"},
		{"newline", "line\nbreak"},
		{"long with tab", "Press e to rename me,\tspace to complete me"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			task := models.Task{ID: 7, Title: tt.title}
			rec := newRecordedRow(task)
			row := rec.row
			row.SetCharLimit(10)

			if row.Draft() != tt.title {
				t.Errorf("after NewTaskRow Draft() = %q", row.Draft())
			}

			row.SetItem(models.Task{ID: 7, Title: "other"})
			row.SetItem(task)
			if row.Draft() != tt.title {
				t.Errorf("after SetItem Draft() = %q", row.Draft())
			}

			row.StartEditing()
			if row.Draft() != tt.title {
				t.Errorf("after StartEditing Draft() = %q", row.Draft())
			}
			row.CancelEditing()
			if row.Draft() != tt.title {
				t.Errorf("after CancelEditing Draft() = %q", row.Draft())
			}

			row.StartEditing()
			row.SubmitEditing()
			if len(rec.edits) != 1 || rec.edits[0].title != tt.title {
				t.Errorf("unchanged submit edits = %+v, want the stored title", rec.edits)
			}

			if strings.ContainsAny(ansi.Strip(row.View(false)), "\t\n") {
				t.Errorf("view should stay on one line: %q", ansi.Strip(row.View(false)))
			}
		})
	}
}

func TestEditingLongTitleKeepsExistingText(t *testing.T) {
	title := strings.Repeat("y", 30)
	rec := newRecordedRow(models.Task{ID: 1, Title: title})
	row := rec.row
	row.SetCharLimit(10)

	row.Update(keyMsg("e"))
	row.Update(keyMsg("backspace"))

	if want := title[:29]; row.Draft() != want {
		t.Errorf("Draft() = %q, want %q", row.Draft(), want)
	}
}

func TestInputStyleFollowsItemWithoutRendering(t *testing.T) {
	rec := newRecordedRow(buyMilk())
	row := rec.row

	if row.input.TextStyle.GetStrikethrough() {
		t.Error("open task should not use the done text style")
	}

	row.SetItem(models.Task{ID: 5, Title: "Buy milk", Done: true})
	if !row.input.TextStyle.GetStrikethrough() {
		t.Error("SetItem should switch the field to the done text style")
	}

	row.StartEditing()
	before := row.input.TextStyle.GetStrikethrough()
	row.View(true)
	if row.input.TextStyle.GetStrikethrough() != before {
		t.Error("View changed the field style")
	}
}
