// Copyright (c) 2026 Livetable Team
// Livetable - server-rendered data tables
// This source code is licensed under the MIT license found in the LICENSE file.

// Package termrender renders a table view model for terminals. It shows the
// same search box, sort indicators, checkboxes and pagination summary as the
// HTML renderer, drawn with lipgloss.
package termrender

import (
	"slices"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	ltable "github.com/charmbracelet/lipgloss/table"
	"github.com/toeirei/livetable/internal/model"
	"github.com/toeirei/livetable/internal/paginate"
	"github.com/toeirei/livetable/internal/table"
)

const (
	colorSubtle    = lipgloss.Color("240")
	colorHighlight = lipgloss.Color("81")
	colorSpecial   = lipgloss.Color("208")
	colorError     = lipgloss.Color("196")
	colorSuccess   = lipgloss.Color("40")
)

var (
	headerStyle  = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle    = lipgloss.NewStyle().Padding(0, 1)
	subtleStyle  = lipgloss.NewStyle().Foreground(colorSubtle)
	searchStyle  = lipgloss.NewStyle().Foreground(colorHighlight)
	borderStyle  = lipgloss.NewStyle().Foreground(colorSubtle)
	emptyStyle   = lipgloss.NewStyle().Foreground(colorSubtle).Italic(true)
	summaryStyle = lipgloss.NewStyle().Foreground(colorSubtle)
)

// Checkbox and sort markers.
const (
	Checked   = "[x]"
	Unchecked = "[ ]"
	ArrowUp   = "▲"
	ArrowDown = "▼"
)

// Translator is satisfied by i18n.Localizer.
type Translator = paginate.Translator

// Renderer draws view models as text.
type Renderer struct {
	resolver   table.DecorationResolver
	translator Translator
	width      int
}

type Option func(*Renderer)

func WithResolver(r table.DecorationResolver) Option {
	return func(x *Renderer) { x.resolver = r }
}

func WithTranslator(t Translator) Option {
	return func(x *Renderer) { x.translator = t }
}

// WithWidth limits the table to w cells. Zero means unlimited.
func WithWidth(w int) Option {
	return func(x *Renderer) { x.width = w }
}

func New(opts ...Option) *Renderer {
	r := &Renderer{resolver: table.DefaultResolver{}}
	for _, o := range opts {
		o(r)
	}
	return r
}

// Render is shorthand for New(opts...).Render(vm).
func Render(vm table.ViewModel, opts ...Option) string {
	return New(opts...).Render(vm)
}

func (r *Renderer) t(id string) string {
	if r.translator == nil {
		return id
	}
	return r.translator.T(id)
}

// Render returns the text rendition of vm.
func (r *Renderer) Render(vm table.ViewModel) string {
	var b strings.Builder
	b.WriteString(searchStyle.Render(r.t("Search")+":") + " " + vm.Search + "\n")

	if len(vm.Rows) == 0 {
		b.WriteString(emptyStyle.Render(r.t("No results to display.")) + "\n")
		return b.String()
	}

	headers := make([]string, 0, len(vm.Columns)+1)
	if vm.Checkbox {
		headers = append(headers, box(vm.CheckboxAll))
	}
	for _, c := range vm.Columns {
		headers = append(headers, Heading(c, vm.SortAttribute, vm.SortDirection))
	}

	rowClasses := make([]string, len(vm.Rows))
	rows := make([][]string, 0, len(vm.Rows))
	for i, row := range vm.Rows {
		rowClasses[i] = r.rowClass(row)
		cells := make([]string, 0, len(headers))
		if vm.Checkbox {
			cells = append(cells, box(slices.Contains(vm.CheckboxValues, row.Key(vm.CheckboxAttribute))))
		}
		for _, c := range vm.Columns {
			cells = append(cells, r.cellText(row, c))
		}
		rows = append(rows, cells)
	}

	t := ltable.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(borderStyle).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == ltable.HeaderRow {
				return headerStyle
			}
			if row >= 0 && row < len(rowClasses) {
				return cellStyle.Inherit(ClassStyle(rowClasses[row]))
			}
			return cellStyle
		})
	if r.width > 0 {
		t = t.Width(r.width)
	}
	b.WriteString(t.String() + "\n")

	if vm.Page != nil {
		b.WriteString(summaryStyle.Render(r.footer(*vm.Page)) + "\n")
	}
	return b.String()
}

func (r *Renderer) footer(p paginate.Page) string {
	s := paginate.Summary(p, r.translator)
	if !p.HasPages() {
		return s
	}
	page := map[string]any{"Page": p.Number, "Last": p.LastPage()}
	if r.translator != nil {
		return s + " · " + r.translator.TData("Page {{.Page}} of {{.Last}}", page)
	}
	return s + " · Page " + strconv.Itoa(p.Number) + " of " + strconv.Itoa(p.LastPage())
}

func (r *Renderer) rowClass(row model.Row) (class string) {
	defer func() {
		if recover() != nil {
			class = ""
		}
	}()
	return r.resolver.RowClass(row)
}

func (r *Renderer) cellText(row model.Row, c model.Column) (text string) {
	defer func() {
		if recover() != nil {
			text = ""
		}
	}()
	return strings.ReplaceAll(r.resolver.CellValue(row, c).Text, "\n", " ")
}

// Heading returns the column title with its sort marker. Sortable columns
// other than the active one show a dimmed up arrow.
func Heading(c model.Column, attr string, dir model.SortDirection) string {
	if !c.Sortable {
		return c.Heading
	}
	if c.Attribute != attr {
		return c.Heading + " " + subtleStyle.Render(ArrowUp)
	}
	if dir == model.Asc {
		return c.Heading + " " + ArrowUp
	}
	return c.Heading + " " + ArrowDown
}

// ClassStyle maps bootstrap contextual classes onto terminal colors.
func ClassStyle(class string) lipgloss.Style {
	s := lipgloss.NewStyle()
	for _, c := range strings.Fields(class) {
		switch {
		case strings.Contains(c, "muted"), strings.Contains(c, "secondary"):
			s = s.Foreground(colorSubtle)
		case strings.Contains(c, "danger"):
			s = s.Foreground(colorError)
		case strings.Contains(c, "success"):
			s = s.Foreground(colorSuccess)
		case strings.Contains(c, "warning"):
			s = s.Foreground(colorSpecial)
		case strings.Contains(c, "info"), strings.Contains(c, "primary"):
			s = s.Foreground(colorHighlight)
		case c == "font-weight-bold", c == "fw-bold":
			s = s.Bold(true)
		}
	}
	return s
}

func box(checked bool) string {
	if checked {
		return Checked
	}
	return Unchecked
}
