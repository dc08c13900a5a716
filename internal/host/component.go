// Copyright (c) 2026 Livetable Team
// Livetable - server-rendered data tables
// This source code is licensed under the MIT license found in the LICENSE file.

// Package host plays the part of the stateful component around a table: it
// owns a Definition and a Source, turns a state.State into a ViewModel, and
// applies intents through the state reducer.
package host

import (
	"context"
	"errors"
	"fmt"

	"github.com/toeirei/livetable/internal/model"
	"github.com/toeirei/livetable/internal/paginate"
	"github.com/toeirei/livetable/internal/state"
	"github.com/toeirei/livetable/internal/table"
)

// Definition configures one table.
type Definition struct {
	Name              string              `mapstructure:"name" yaml:"name"`
	Title             string              `mapstructure:"title" yaml:"title,omitempty"`
	Source            string              `mapstructure:"source" yaml:"source,omitempty"`
	Data              string              `mapstructure:"data" yaml:"data,omitempty"`
	Columns           []model.Column      `mapstructure:"columns" yaml:"columns"`
	PerPage           int                 `mapstructure:"per_page" yaml:"per_page,omitempty"`
	Checkbox          bool                `mapstructure:"checkbox" yaml:"checkbox,omitempty"`
	CheckboxAttribute string              `mapstructure:"checkbox_attribute" yaml:"checkbox_attribute,omitempty"`
	SortAttribute     string              `mapstructure:"sort_attribute" yaml:"sort_attribute,omitempty"`
	SortDirection     model.SortDirection `mapstructure:"sort_direction" yaml:"sort_direction,omitempty"`
	TableClass        string              `mapstructure:"table_class" yaml:"table_class,omitempty"`
	TheadClass        string              `mapstructure:"thead_class" yaml:"thead_class,omitempty"`
	HeaderView        string              `mapstructure:"header_view" yaml:"header_view,omitempty"`
	FooterView        string              `mapstructure:"footer_view" yaml:"footer_view,omitempty"`
	RowClasses        []table.ClassRule   `mapstructure:"row_classes" yaml:"row_classes,omitempty"`
	CellClasses       []table.ClassRule   `mapstructure:"cell_classes" yaml:"cell_classes,omitempty"`
}

// Defaults applied by Normalize.
const (
	DefaultCheckboxAttribute = "id"
	DefaultTableClass        = "table-hover table-striped"
	DefaultTheadClass        = "thead-light"
)

var ErrNoColumns = errors.New("table has no columns")

// Normalize fills defaults and validates the column set.
func (d Definition) Normalize() (Definition, error) {
	if len(d.Columns) == 0 {
		return d, fmt.Errorf("table %q: %w", d.Name, ErrNoColumns)
	}
	cols := make([]model.Column, len(d.Columns))
	for i, c := range d.Columns {
		if c.Attribute == "" && c.Heading != "" {
			c.Attribute = model.SnakeCase(c.Heading)
		}
		if c.Heading == "" {
			c.Heading = c.Attribute
		}
		cols[i] = c
	}
	d.Columns = cols
	if err := model.ValidateColumns(d.Columns); err != nil {
		return d, fmt.Errorf("table %q: %w", d.Name, err)
	}
	if d.PerPage <= 0 {
		d.PerPage = paginate.DefaultPerPage
	}
	if d.CheckboxAttribute == "" {
		d.CheckboxAttribute = DefaultCheckboxAttribute
	}
	if d.TableClass == "" {
		d.TableClass = DefaultTableClass
	}
	if d.TheadClass == "" {
		d.TheadClass = DefaultTheadClass
	}
	if d.SortDirection == "" {
		d.SortDirection = model.Asc
	}
	return d, nil
}

// InitialState is the state a fresh component starts in.
func (d Definition) InitialState() state.State {
	return state.State{SortAttribute: d.SortAttribute, SortDirection: d.SortDirection, Page: 1}
}

// Searchable returns the attributes flagged searchable.
func (d Definition) Searchable() []string {
	var out []string
	for _, c := range d.Columns {
		if c.Searchable {
			out = append(out, c.Attribute)
		}
	}
	return out
}

func (d Definition) sortable(attr string) bool {
	c, ok := model.FindColumn(d.Columns, attr)
	return ok && c.Sortable
}

// Component binds a Definition to a Source.
type Component struct {
	def Definition
	src Source
}

// NewComponent normalises def and returns a component reading from src.
func NewComponent(def Definition, src Source) (*Component, error) {
	d, err := def.Normalize()
	if err != nil {
		return nil, err
	}
	if src == nil {
		return nil, fmt.Errorf("table %q: no source", d.Name)
	}
	return &Component{def: d, src: src}, nil
}

// Definition returns the normalised definition.
func (c *Component) Definition() Definition { return c.def }

// ViewModel loads the page described by s and returns the view model to
// render. Sorting by a column that is not sortable is ignored.
func (c *Component) ViewModel(ctx context.Context, s state.State) (table.ViewModel, error) {
	q := Query{
		Tokens:     TokenizeSearchQuery(s.Search),
		Searchable: c.def.Searchable(),
		Limit:      c.def.PerPage,
	}
	if c.def.sortable(s.SortAttribute) {
		q.SortAttribute = s.SortAttribute
		q.SortDirection = s.SortDirection
	}
	page := max(s.Page, 1)
	q.Offset = (page - 1) * c.def.PerPage

	res, err := c.src.Query(ctx, q)
	if err != nil {
		return table.ViewModel{}, fmt.Errorf("load %s: %w", c.def.Name, err)
	}
	p := paginate.New(page, c.def.PerPage, res.Total)
	if p.Number != page {
		// requested page ran past the end; reload the last one
		q.Offset = p.Offset()
		if res, err = c.src.Query(ctx, q); err != nil {
			return table.ViewModel{}, fmt.Errorf("load %s: %w", c.def.Name, err)
		}
	}

	return table.ViewModel{
		ID:                "livetable-" + c.def.Name,
		Rows:              res.Rows,
		Columns:           c.def.Columns,
		Checkbox:          c.def.Checkbox,
		CheckboxAttribute: c.def.CheckboxAttribute,
		CheckboxAll:       s.CheckboxAll,
		CheckboxValues:    s.CheckboxValues,
		SortAttribute:     q.SortAttribute,
		SortDirection:     q.SortDirection,
		Search:            s.Search,
		TableClass:        c.def.TableClass,
		TheadClass:        c.def.TheadClass,
		HeaderView:        c.def.HeaderView,
		FooterView:        c.def.FooterView,
		Page:              &p,
	}, nil
}

// Dispatch applies in to s. Select-all resolves keys through the source.
func (c *Component) Dispatch(ctx context.Context, s state.State, in state.Intent) (state.State, error) {
	keys := func(search string) ([]string, error) {
		return c.src.Keys(ctx, TokenizeSearchQuery(search), c.def.Searchable(), c.def.CheckboxAttribute)
	}
	return state.Apply(s, in, keys)
}

// Resolver layers the definition's class rules onto base.
func (c *Component) Resolver(base table.DefaultResolver) table.DefaultResolver {
	if len(c.def.RowClasses) > 0 {
		base.RowClassFunc = table.RowRules(c.def.RowClasses)
	}
	if len(c.def.CellClasses) > 0 {
		base.CellClassFunc = table.CellRules(c.def.CellClasses)
	}
	return base
}
