// Copyright (c) 2026 Livetable Team
// Livetable - server-rendered data tables
// This source code is licensed under the MIT license found in the LICENSE file.

package table

import (
	"bytes"
	"embed"
	"html/template"
	"io"

	"github.com/toeirei/livetable/internal/format"
	"github.com/toeirei/livetable/internal/logging"
	"github.com/toeirei/livetable/internal/model"
	"github.com/toeirei/livetable/internal/state"
	"golang.org/x/text/language"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

var baseTemplate = template.Must(template.ParseFS(templateFS, "templates/*.tmpl"))

// Renderer turns a ViewModel into table markup. It keeps no state between
// calls and is safe for concurrent use once built.
type Renderer struct {
	resolver   DecorationResolver
	translator Translator
	paginator  Paginator
	views      Views
	linker     Linker
}

// Option configures a Renderer.
type Option func(*Renderer)

func WithResolver(d DecorationResolver) Option { return func(r *Renderer) { r.resolver = d } }
func WithTranslator(t Translator) Option { return func(r *Renderer) { r.translator = t } }
func WithPaginator(p Paginator) Option { return func(r *Renderer) { r.paginator = p } }
func WithViews(v Views) Option { return func(r *Renderer) { r.views = v } }
func WithLinker(l Linker) Option { return func(r *Renderer) { r.linker = l } }

// New returns a Renderer. Without options it formats values as English text
// and passes message IDs through untranslated.
func New(opts ...Option) *Renderer {
	r := &Renderer{
		resolver:   DefaultResolver{Formats: format.NewRegistry(language.English)},
		translator: identity{},
	}
	for _, o := range opts {
		o(r)
	}
	return r
}

type headerCell struct {
	Attribute string
	Heading   string
	Sortable  bool
	Active    bool
	Icon      string
	Href      string
}

type bodyCell struct {
	Class string
	Body  template.HTML
}

type bodyRow struct {
	Class   string
	Key     string
	Checked bool
	Cells   []bodyCell
}

type renderData struct {
	ID             string
	Search         string
	SearchLabel    string
	NoResults      string
	SelectAllLabel string
	SelectRowLabel string

	HasHeader bool
	Header    template.HTML
	HasFooter bool
	Footer    template.HTML

	Empty       bool
	TableClass  string
	TheadClass  string
	Checkbox    bool
	CheckboxAll bool
	Headers     []headerCell
	Rows        []bodyRow
	Pagination  template.HTML
}

// Render returns the markup for vm. Faults in resolvers or views degrade the
// affected row or cell and never abort the render.
func (r *Renderer) Render(vm ViewModel) template.HTML {
	var buf bytes.Buffer
	if err := r.RenderTo(&buf, vm); err != nil {
		logging.Errorf("table render failed: %v", err)
		return ""
	}
	return template.HTML(buf.String())
}

// RenderTo writes the markup for vm to w. The only error is a failed write.
func (r *Renderer) RenderTo(w io.Writer, vm ViewModel) error {
	return baseTemplate.ExecuteTemplate(w, "table", r.build(vm))
}

func (r *Renderer) build(vm ViewModel) renderData {
	d := renderData{
		ID:             vm.ID,
		Search:         vm.Search,
		SearchLabel:    r.translator.T("Search"),
		NoResults:      r.translator.T("No results to display."),
		SelectAllLabel: r.translator.T("Select all"),
		SelectRowLabel: r.translator.T("Select row"),
		Empty:          len(vm.Rows) == 0,
		TableClass:     vm.TableClass,
		TheadClass:     vm.TheadClass,
		Checkbox:       vm.Checkbox,
		CheckboxAll:    vm.CheckboxAll,
	}

	slot := SlotContext{Model: vm}
	if vm.HeaderView != "" {
		d.HasHeader = true
		d.Header = r.view(vm.HeaderView, slot)
	}
	if vm.FooterView != "" {
		d.HasFooter = true
		d.Footer = r.view(vm.FooterView, slot)
	}
	if d.Empty {
		return d
	}
	if vm.Page != nil && r.paginator != nil {
		d.Pagination = r.paginator.Links(*vm.Page)
	}

	d.Headers = make([]headerCell, 0, len(vm.Columns))
	for _, c := range vm.Columns {
		h := headerCell{Attribute: c.Attribute, Heading: c.Heading, Sortable: c.Sortable}
		if c.Sortable {
			if vm.SortAttribute == c.Attribute {
				h.Active = true
				h.Icon = "down"
				if vm.SortDirection == model.Asc {
					h.Icon = "up-alt"
				}
			}
			if r.linker != nil {
				h.Href = r.linker(state.Sort{Attribute: c.Attribute})
			}
		}
		d.Headers = append(d.Headers, h)
	}

	selected := make(map[string]struct{}, len(vm.CheckboxValues))
	for _, v := range vm.CheckboxValues {
		selected[v] = struct{}{}
	}

	d.Rows = make([]bodyRow, 0, len(vm.Rows))
	for _, row := range vm.Rows {
		br := bodyRow{Class: r.rowClass(row), Cells: make([]bodyCell, 0, len(vm.Columns))}
		if vm.Checkbox {
			br.Key = row.Key(vm.CheckboxAttribute)
			_, br.Checked = selected[br.Key]
		}
		for _, c := range vm.Columns {
			cell := bodyCell{Class: r.cellClass(row, c)}
			if c.View != "" {
				cell.Body = r.view(c.View, CellContext{Row: row, Column: c, Value: row.Get(c.Attribute)})
			} else {
				cell.Body = r.cellValue(row, c).Markup()
			}
			br.Cells = append(br.Cells, cell)
		}
		d.Rows = append(d.Rows, br)
	}
	return d
}

func (r *Renderer) rowClass(row model.Row) (class string) {
	defer func() {
		if p := recover(); p != nil {
			logging.Warnf("row class resolver panicked: %v", p)
			class = ""
		}
	}()
	return r.resolver.RowClass(row)
}

func (r *Renderer) cellClass(row model.Row, col model.Column) (class string) {
	defer func() {
		if p := recover(); p != nil {
			logging.Warnf("cell class resolver panicked on %q: %v", col.Attribute, p)
			class = ""
		}
	}()
	return r.resolver.CellClass(row, col)
}

func (r *Renderer) cellValue(row model.Row, col model.Column) (d format.Display) {
	defer func() {
		if p := recover(); p != nil {
			logging.Warnf("cell value resolver panicked on %q: %v", col.Attribute, p)
			d = format.Display{}
		}
	}()
	return r.resolver.CellValue(row, col)
}

func (r *Renderer) view(name string, data any) (out template.HTML) {
	if r.views == nil {
		logging.Warnf("view %q requested but no views are configured", name)
		return ""
	}
	defer func() {
		if p := recover(); p != nil {
			logging.Warnf("view %q panicked: %v", name, p)
			out = ""
		}
	}()
	html, err := r.views.Render(name, data)
	if err != nil {
		logging.Warnf("view %q failed: %v", name, err)
		return ""
	}
	return html
}
