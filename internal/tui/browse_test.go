// Copyright (c) 2026 Livetable Team
// Livetable - server-rendered data tables
// This source code is licensed under the MIT license found in the LICENSE file.

package tui

import (
	"context"
	"errors"
	"reflect"
	"strconv"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/toeirei/livetable/internal/host"
	"github.com/toeirei/livetable/internal/model"
)

func newTestComponent(t *testing.T) *host.Component {
	t.Helper()
	names := []string{"Alice", "Bob", "Carol", "Dave", "Eve"}
	rows := make([]model.Row, len(names))
	for i, n := range names {
		rows[i] = model.Row{"id": model.Int(int64(i + 1)), "name": model.String(n)}
	}
	c, err := host.NewComponent(host.Definition{
		Name:  "people",
		Title: "People",
		Columns: []model.Column{
			{Attribute: "id", Heading: "ID", Sortable: true},
			{Attribute: "name", Heading: "Name", Sortable: true, Searchable: true},
		},
		PerPage:       2,
		Checkbox:      true,
		SortAttribute: "id",
	}, host.NewMemorySource(rows))
	if err != nil {
		t.Fatalf("NewComponent: %v", err)
	}
	return c
}

func press(m Model, keys ...string) Model {
	for _, k := range keys {
		var msg tea.KeyMsg
		switch k {
		case "space":
			msg = tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
		case "enter":
			msg = tea.KeyMsg{Type: tea.KeyEnter}
		case "esc":
			msg = tea.KeyMsg{Type: tea.KeyEsc}
		default:
			msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
		}
		next, _ := m.Update(msg)
		m = next.(Model)
	}
	return m
}

func rowNames(m Model) []string {
	var out []string
	for _, r := range m.ViewModel().Rows {
		out = append(out, r.Get("name").String())
	}
	return out
}

func TestBrowse_Paging(t *testing.T) {
	m := New(context.Background(), newTestComponent(t))
	if got := rowNames(m); !reflect.DeepEqual(got, []string{"Alice", "Bob"}) {
		t.Fatalf("unexpected first page %v", got)
	}
	m = press(m, "n", "n", "n")
	if m.State().Page != 3 || !reflect.DeepEqual(rowNames(m), []string{"Eve"}) {
		t.Fatalf("expected to stop on the last page, got page %d %v", m.State().Page, rowNames(m))
	}
	m = press(m, "p")
	if m.State().Page != 2 {
		t.Fatalf("expected page 2, got %d", m.State().Page)
	}
}

func TestBrowse_Sort(t *testing.T) {
	m := New(context.Background(), newTestComponent(t))
	m = press(m, "s")
	if m.State().SortAttribute != "name" || m.State().SortDirection != model.Asc {
		t.Fatalf("expected ascending sort by name, got %+v", m.State())
	}
	m = press(m, "r")
	if m.State().SortDirection != model.Desc {
		t.Fatalf("expected r to reverse the direction")
	}
	if got := rowNames(m); !reflect.DeepEqual(got, []string{"Eve", "Dave"}) {
		t.Fatalf("unexpected rows after descending sort %v", got)
	}
	m = press(m, "S")
	if m.State().SortAttribute != "id" {
		t.Fatalf("expected S to move back to id, got %q", m.State().SortAttribute)
	}
}

func TestBrowse_Search(t *testing.T) {
	m := New(context.Background(), newTestComponent(t))
	m = press(m, "n", "/", "c", "a", "r")
	if m.State().Search != "car" || m.State().Page != 1 {
		t.Fatalf("search should update state and reset the page, got %+v", m.State())
	}
	if got := rowNames(m); !reflect.DeepEqual(got, []string{"Carol"}) {
		t.Fatalf("unexpected search result %v", got)
	}
	m = press(m, "esc")
	if m.State().Search != "" || len(m.ViewModel().Rows) != 2 {
		t.Fatalf("esc should clear the search")
	}
}

func TestBrowse_SelectAndCopy(t *testing.T) {
	var copied string
	m := New(context.Background(), newTestComponent(t), WithClipboard(func(s string) error {
		copied = s
		return nil
	}))
	m = press(m, "space")
	if !reflect.DeepEqual(m.State().CheckboxValues, []string{"1"}) {
		t.Fatalf("space should select the cursor row, got %v", m.State().CheckboxValues)
	}
	m = press(m, "space")
	if len(m.State().CheckboxValues) != 0 {
		t.Fatalf("space again should deselect, got %v", m.State().CheckboxValues)
	}

	m = press(m, "a")
	want := []string{"1", "2", "3", "4", "5"}
	if !m.State().CheckboxAll || !reflect.DeepEqual(m.State().CheckboxValues, want) {
		t.Fatalf("a should select every row, got %+v", m.State())
	}
	m = press(m, "y")
	if copied != strings.Join(want, "\n") {
		t.Fatalf("unexpected clipboard contents %q", copied)
	}
	if !strings.Contains(m.View(), "Copied "+strconv.Itoa(len(want))) {
		t.Fatalf("expected copy status in view:\n%s", m.View())
	}

	m = press(m, "space")
	if m.State().CheckboxAll {
		t.Fatalf("changing a single row should clear select-all")
	}
}

func TestBrowse_CopyError(t *testing.T) {
	m := New(context.Background(), newTestComponent(t), WithClipboard(func(string) error {
		return errors.New("no clipboard")
	}))
	m = press(m, "y")
	if !strings.Contains(m.View(), "Nothing selected") {
		t.Fatalf("expected nothing-selected status")
	}
	m = press(m, "space", "y")
	if !strings.Contains(m.View(), "no clipboard") {
		t.Fatalf("expected clipboard error in view:\n%s", m.View())
	}
}

func TestBrowse_Quit(t *testing.T) {
	m := New(context.Background(), newTestComponent(t))
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	if cmd == nil {
		t.Fatalf("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatalf("expected tea.QuitMsg")
	}
}
