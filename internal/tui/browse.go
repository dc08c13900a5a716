// Copyright (c) 2026 Livetable Team
// Livetable - server-rendered data tables
// This source code is licensed under the MIT license found in the LICENSE file.

// Package tui provides an interactive terminal browser for one table. Every
// key press is turned into the same intents the HTML table emits and applied
// through the host component.
package tui

import (
	"context"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"

	"github.com/atotto/clipboard"
	gslices "github.com/bobg/go-generics/v4/slices"
	btable "github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/toeirei/livetable/internal/host"
	"github.com/toeirei/livetable/internal/i18n"
	"github.com/toeirei/livetable/internal/logging"
	"github.com/toeirei/livetable/internal/model"
	"github.com/toeirei/livetable/internal/paginate"
	"github.com/toeirei/livetable/internal/state"
	"github.com/toeirei/livetable/internal/table"
	"github.com/toeirei/livetable/internal/termrender"
)

const maxColumnWidth = 40

// Translator is satisfied by i18n.Localizer.
type Translator = paginate.Translator

// Model is the bubbletea model of the table browser.
type Model struct {
	ctx      context.Context
	comp     *host.Component
	resolver table.DecorationResolver
	tr       Translator
	copyFn   func(string) error

	st        state.State
	vm        table.ViewModel
	table     btable.Model
	search    textinput.Model
	searching bool
	status    string
	err       error
}

type Option func(*Model)

func WithTranslator(t Translator) Option { return func(m *Model) { m.tr = t } }

func WithResolver(r table.DecorationResolver) Option { return func(m *Model) { m.resolver = r } }

// WithClipboard replaces the system clipboard writer.
func WithClipboard(fn func(string) error) Option { return func(m *Model) { m.copyFn = fn } }

// WithState starts the browser from s instead of the initial state.
func WithState(s state.State) Option { return func(m *Model) { m.st = s } }

// New returns a browser over comp and loads the first page.
func New(ctx context.Context, comp *host.Component, opts ...Option) Model {
	m := Model{
		ctx:      ctx,
		comp:     comp,
		resolver: comp.Resolver(table.DefaultResolver{}),
		tr:       i18n.Default(),
		copyFn:   clipboard.WriteAll,
		st:       comp.Definition().InitialState(),
	}
	for _, o := range opts {
		o(&m)
	}

	ti := textinput.New()
	ti.Prompt = m.tr.T("Search") + ": "
	ti.SetValue(m.st.Search)
	m.search = ti

	t := btable.New(btable.WithFocused(true), btable.WithHeight(comp.Definition().PerPage+1))
	s := btable.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(colorSubtle).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(colorWhite).
		Background(colorHighlight).
		Bold(false)
	t.SetStyles(s)
	m.table = t

	m.reload()
	return m
}

// State returns the current table state.
func (m Model) State() state.State { return m.st }

// ViewModel returns the view model of the page on screen.
func (m Model) ViewModel() table.ViewModel { return m.vm }

func (m *Model) reload() {
	vm, err := m.comp.ViewModel(m.ctx, m.st)
	if err != nil {
		m.err = err
		return
	}
	m.err = nil
	m.vm = vm
	if vm.Page != nil {
		m.st.Page = vm.Page.Number
	}
	m.rebuildTable()
}

// rebuildTable lays the view model out as bubbles table columns and rows.
func (m *Model) rebuildTable() {
	vm := m.vm
	titles := make([]string, 0, len(vm.Columns)+1)
	if vm.Checkbox {
		titles = append(titles, termrender.Unchecked)
		if vm.CheckboxAll {
			titles[0] = termrender.Checked
		}
	}
	for _, c := range vm.Columns {
		titles = append(titles, termrender.Heading(c, vm.SortAttribute, vm.SortDirection))
	}

	rows := gslices.Map(vm.Rows, func(row model.Row) btable.Row {
		cells := make(btable.Row, 0, len(titles))
		if vm.Checkbox {
			mark := termrender.Unchecked
			if slices.Contains(vm.CheckboxValues, row.Key(vm.CheckboxAttribute)) {
				mark = termrender.Checked
			}
			cells = append(cells, mark)
		}
		for _, c := range vm.Columns {
			cells = append(cells, strings.ReplaceAll(m.resolver.CellValue(row, c).Text, "\n", " "))
		}
		return cells
	})

	cols := make([]btable.Column, len(titles))
	for i, title := range titles {
		w := lipgloss.Width(title)
		for _, r := range rows {
			w = max(w, lipgloss.Width(r[i]))
		}
		cols[i] = btable.Column{Title: title, Width: min(w, maxColumnWidth)}
	}

	// columns must be replaced before rows so row widths match
	m.table.SetRows(nil)
	m.table.SetColumns(cols)
	m.table.SetRows(rows)
	if m.table.Cursor() >= len(rows) {
		m.table.SetCursor(max(len(rows)-1, 0))
	}
}

func (m *Model) dispatch(in state.Intent) {
	s, err := m.comp.Dispatch(m.ctx, m.st, in)
	if err != nil {
		m.err = err
		return
	}
	m.st = s
	m.reload()
}

// sortable lists the sortable attributes in column order.
func (m Model) sortable() []string {
	var out []string
	for _, c := range m.vm.Columns {
		if c.Sortable {
			out = append(out, c.Attribute)
		}
	}
	return out
}

// cycleSort sorts by the sortable column step positions away from the
// current one. Switching columns always starts ascending.
func (m *Model) cycleSort(step int) {
	attrs := m.sortable()
	if len(attrs) == 0 {
		return
	}
	i := slices.Index(attrs, m.st.SortAttribute)
	next := (i + step + len(attrs)) % len(attrs)
	if i < 0 && step < 0 {
		next = len(attrs) - 1
	}
	m.dispatch(state.Sort{Attribute: attrs[next]})
}

func (m *Model) toggleCursorRow() {
	if !m.vm.Checkbox || len(m.vm.Rows) == 0 {
		return
	}
	row := m.vm.Rows[m.table.Cursor()]
	key := row.Key(m.vm.CheckboxAttribute)
	var values []string
	if slices.Contains(m.st.CheckboxValues, key) {
		values = gslices.Filter(m.st.CheckboxValues, func(v string) bool { return v != key })
	} else {
		values = append(slices.Clone(m.st.CheckboxValues), key)
	}
	m.dispatch(state.CheckboxValuesChanged{Values: values})
}

func (m *Model) copySelection() {
	if len(m.st.CheckboxValues) == 0 {
		m.status = m.tr.T("Nothing selected")
		return
	}
	if err := m.copyFn(strings.Join(m.st.CheckboxValues, "\n")); err != nil {
		m.err = fmt.Errorf("copy selection: %w", err)
		return
	}
	m.status = m.tr.TData("Copied {{.Count}} key(s)", map[string]any{"Count": len(m.st.CheckboxValues)})
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		// title(2) + search(2) + footer(3) + margins(2)
		m.table.SetHeight(max(msg.Height-9, 3))
		m.table.SetWidth(msg.Width - 4)
		return m, nil

	case tea.KeyMsg:
		if m.searching {
			switch msg.Type {
			case tea.KeyEsc:
				m.searching = false
				m.search.Blur()
				m.search.SetValue("")
				m.dispatch(state.SearchChanged{Text: ""})
				return m, nil
			case tea.KeyEnter:
				m.searching = false
				m.search.Blur()
				return m, nil
			}
			var cmd tea.Cmd
			m.search, cmd = m.search.Update(msg)
			if m.search.Value() != m.st.Search {
				m.dispatch(state.SearchChanged{Text: m.search.Value()})
			}
			return m, cmd
		}

		m.status = ""
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "/":
			m.searching = true
			return m, m.search.Focus()
		case "s":
			m.cycleSort(1)
			return m, nil
		case "S":
			m.cycleSort(-1)
			return m, nil
		case "r":
			if m.st.SortAttribute != "" {
				m.dispatch(state.Sort{Attribute: m.st.SortAttribute})
			}
			return m, nil
		case " ":
			m.toggleCursorRow()
			return m, nil
		case "a":
			m.dispatch(state.CheckboxAllToggled{Checked: !m.st.CheckboxAll})
			return m, nil
		case "n", "right":
			if m.vm.Page != nil && m.vm.Page.HasNext() {
				m.dispatch(state.PageChanged{Page: m.st.Page + 1})
			}
			return m, nil
		case "p", "left":
			if m.vm.Page != nil && m.vm.Page.HasPrev() {
				m.dispatch(state.PageChanged{Page: m.st.Page - 1})
			}
			return m, nil
		case "y":
			m.copySelection()
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	var b strings.Builder
	def := m.comp.Definition()
	title := def.Title
	if title == "" {
		title = def.Name
	}
	b.WriteString(titleStyle.Render(title) + "\n\n")

	if m.searching {
		b.WriteString(m.search.View())
	} else {
		b.WriteString(helpStyle.Render(m.tr.T("Search")+":") + " " + m.st.Search)
	}
	b.WriteString("\n\n")

	if len(m.vm.Rows) == 0 {
		b.WriteString(helpStyle.Render(m.tr.T("No results to display.")))
	} else {
		b.WriteString(m.table.View())
	}
	b.WriteString("\n")

	if p := m.vm.Page; p != nil && len(m.vm.Rows) > 0 {
		footer := paginate.Summary(*p, m.tr)
		if p.HasPages() {
			footer += " · " + m.tr.TData("Page {{.Page}} of {{.Last}}", map[string]any{"Page": p.Number, "Last": p.LastPage()})
		}
		if n := len(m.st.CheckboxValues); n > 0 {
			footer += fmt.Sprintf(" · %s: %d", m.tr.T("Selected"), n)
		}
		b.WriteString(helpStyle.Render(footer) + "\n")
	}
	if m.err != nil {
		b.WriteString(errorStyle.Render(m.err.Error()) + "\n")
	}
	if m.status != "" {
		b.WriteString(statusMessageStyle.Render(m.status) + "\n")
	}
	b.WriteString(helpStyle.Render(m.tr.T("browse.help")))
	return docStyle.Render(b.String())
}

// Run starts the browser on the alternate screen. Log output is discarded
// while the program owns the terminal.
func Run(ctx context.Context, comp *host.Component, opts ...Option) (state.State, error) {
	logging.SetOutput(io.Discard)
	defer logging.SetOutput(os.Stderr)

	final, err := tea.NewProgram(New(ctx, comp, opts...), tea.WithAltScreen(), tea.WithContext(ctx)).Run()
	if err != nil {
		return state.State{}, fmt.Errorf("browse: %w", err)
	}
	return final.(Model).State(), nil
}
