package cli

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/matzehuels/genogram/pkg/person"
)

func testFamily() []person.Record {
	return []person.Record{
		{ID: "adam", Name: "Adam", Gender: "male", SpouseIDs: []string{"eve"}},
		{ID: "eve", Name: "Eve", Gender: "female"},
		{ID: "cain", Gender: "male", FatherIDs: []string{"adam"}, MotherIDs: []string{"eve"}},
	}
}

func TestDisplayName(t *testing.T) {
	if got := displayName(person.Record{ID: "x", Name: "Xavier"}); got != "Xavier" {
		t.Errorf("displayName = %q, want Xavier", got)
	}
	if got := displayName(person.Record{ID: "x"}); got != "x" {
		t.Errorf("displayName without name = %q, want x", got)
	}
}

func TestGenderSymbol(t *testing.T) {
	tests := []struct {
		gender string
		want   string
	}{
		{"male", "□ male"},
		{"female", "○ female"},
		{"m", "□ male"},
		{"F", "○ female"},
		{"unknown", "?"},
	}

	for _, tt := range tests {
		if got := genderSymbol(person.Record{Gender: tt.gender}); got != tt.want {
			t.Errorf("genderSymbol(%q) = %q, want %q", tt.gender, got, tt.want)
		}
	}
}

func TestNameList(t *testing.T) {
	byID := map[string]person.Record{
		"adam": {ID: "adam", Name: "Adam"},
		"eve":  {ID: "eve"},
	}

	got := nameList([]string{"adam", "eve", "ghost"}, byID)
	want := "Adam, eve, ghost"
	if got != want {
		t.Errorf("nameList = %q, want %q", got, want)
	}

	if got := nameList(nil, byID); got != "" {
		t.Errorf("empty nameList = %q, want empty", got)
	}
}

func TestPersonListModelNavigation(t *testing.T) {
	m := NewPersonListModel(testFamily())

	// Down moves the cursor
	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyDown})
	m = next.(PersonListModel)
	if m.Cursor != 1 {
		t.Errorf("cursor after down = %d, want 1", m.Cursor)
	}

	// Up moves it back
	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyUp})
	m = next.(PersonListModel)
	if m.Cursor != 0 {
		t.Errorf("cursor after up = %d, want 0", m.Cursor)
	}

	// Up at the top stays put
	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyUp})
	m = next.(PersonListModel)
	if m.Cursor != 0 {
		t.Errorf("cursor should not go negative, got %d", m.Cursor)
	}
}

func TestPersonListModelSelect(t *testing.T) {
	m := NewPersonListModel(testFamily())

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = next.(PersonListModel)

	if m.Selected == nil {
		t.Fatal("Selected not set after enter")
	}
	if m.Selected.ID != "adam" {
		t.Errorf("Selected.ID = %q, want adam", m.Selected.ID)
	}
	if cmd == nil {
		t.Error("enter should quit")
	}
}

func TestPersonListModelQuit(t *testing.T) {
	m := NewPersonListModel(testFamily())

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	if cmd == nil {
		t.Error("q should quit")
	}
}

func TestPersonListModelView(t *testing.T) {
	m := NewPersonListModel(testFamily())
	view := m.View()

	if !strings.Contains(view, "Adam") {
		t.Error("view should list Adam")
	}
	if !strings.Contains(view, "cain") {
		t.Error("view should fall back to the id for unnamed persons")
	}
	if !strings.Contains(view, "[1/3]") {
		t.Error("view should show the position indicator")
	}
}
