// Copyright (c) 2026 Livetable Team
// Livetable - server-rendered data tables
// This source code is licensed under the MIT license found in the LICENSE file.

package cli

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/toeirei/livetable/internal/db"
	"github.com/toeirei/livetable/internal/format"
	"github.com/toeirei/livetable/internal/host"
	"github.com/toeirei/livetable/internal/i18n"
	"github.com/toeirei/livetable/internal/model"
	"github.com/toeirei/livetable/internal/paginate"
	"github.com/toeirei/livetable/internal/state"
	"github.com/toeirei/livetable/internal/table"
)

// Table sources.
const (
	sourceYAML = "yaml"
	sourceDB   = "db"
)

// definitions returns the configured tables, or the demo contacts table
// when none are configured.
func (a *app) definitions() []host.Definition {
	if len(a.cfg.Tables) == 0 {
		return []host.Definition{db.ContactsDefinition()}
	}
	return a.cfg.Tables
}

func (a *app) definition(name string) (host.Definition, error) {
	defs := a.definitions()
	if name == "" {
		if len(defs) == 1 {
			return defs[0], nil
		}
		return host.Definition{}, fmt.Errorf("choose a table: %s", strings.Join(tableNames(defs), ", "))
	}
	for _, d := range defs {
		if d.Name == name {
			return d, nil
		}
	}
	return host.Definition{}, fmt.Errorf("%w: %q", host.ErrUnknownTable, name)
}

func tableNames(defs []host.Definition) []string {
	names := make([]string, 0, len(defs))
	for _, d := range defs {
		names = append(names, d.Name)
	}
	return names
}

// component builds the component for def with its row source.
func (a *app) component(def host.Definition) (*host.Component, error) {
	norm, err := def.Normalize()
	if err != nil {
		return nil, err
	}
	var src host.Source
	switch norm.Source {
	case sourceDB:
		bdb, err := a.database()
		if err != nil {
			return nil, err
		}
		name := norm.Data
		if name == "" {
			name = norm.Name
		}
		attrs := make([]string, 0, len(norm.Columns)+1)
		for _, c := range norm.Columns {
			attrs = append(attrs, c.Attribute)
		}
		if !slices.Contains(attrs, norm.CheckboxAttribute) {
			attrs = append(attrs, norm.CheckboxAttribute)
		}
		src = db.NewSource(bdb, name, attrs...)
	case "", sourceYAML:
		if norm.Data == "" {
			return nil, fmt.Errorf("table %q: no data file", norm.Name)
		}
		rows, err := host.LoadYAMLRows(norm.Data)
		if err != nil {
			return nil, fmt.Errorf("table %q: %w", norm.Name, err)
		}
		src = host.NewMemorySource(rows)
	default:
		return nil, fmt.Errorf("table %q: unknown source %q", norm.Name, norm.Source)
	}
	return host.NewComponent(norm, src)
}

// pick builds the component a command operates on: the rows file given
// with --data, else the table named by the first argument.
func (a *app) pick(data string, args []string) (*host.Component, error) {
	var def host.Definition
	var err error
	if data != "" {
		def, err = fileDefinition(data)
	} else {
		name := ""
		if len(args) > 0 {
			name = args[0]
		}
		def, err = a.definition(name)
	}
	if err != nil {
		return nil, err
	}
	return a.component(def)
}

// registry builds every configured table.
func (a *app) registry() (*host.Registry, error) {
	reg := host.NewRegistry()
	for _, def := range a.definitions() {
		c, err := a.component(def)
		if err != nil {
			return nil, err
		}
		if err := reg.Add(c); err != nil {
			return nil, err
		}
	}
	return reg, nil
}

// fileDefinition describes an ad-hoc table over a YAML rows file. Every
// attribute becomes a sortable, searchable column, id first.
func fileDefinition(path string) (host.Definition, error) {
	rows, err := host.LoadYAMLRows(path)
	if err != nil {
		return host.Definition{}, err
	}
	seen := map[string]bool{}
	var attrs []string
	for _, r := range rows {
		for k := range r {
			if !seen[k] {
				seen[k] = true
				attrs = append(attrs, k)
			}
		}
	}
	slices.SortFunc(attrs, func(x, y string) int {
		switch {
		case x == "id":
			return -1
		case y == "id":
			return 1
		}
		return strings.Compare(x, y)
	})
	if len(attrs) == 0 {
		return host.Definition{}, fmt.Errorf("%s: no rows", path)
	}
	cols := make([]model.Column, 0, len(attrs))
	for _, k := range attrs {
		cols = append(cols, model.Column{Attribute: k, Heading: k, Sortable: true, Searchable: true})
	}
	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	return host.Definition{Name: name, Title: name, Source: sourceYAML, Data: path, Columns: cols}, nil
}

// views parses the configured view templates, if any.
func (a *app) views() (table.Views, error) {
	if a.cfg.Views == "" {
		return nil, nil
	}
	dir, pattern := ".", a.cfg.Views
	if filepath.IsAbs(pattern) {
		dir, pattern = filepath.Dir(pattern), filepath.Base(pattern)
	}
	v, err := table.ParseViewsFS(os.DirFS(dir), pattern)
	if err != nil {
		return nil, fmt.Errorf("parse views %s: %w", a.cfg.Views, err)
	}
	return v, nil
}

// htmlRenderer returns a renderer whose links carry the state as a query
// string relative to the current page.
func (a *app) htmlRenderer(ctx context.Context, c *host.Component, st state.State, loc *i18n.Localizer) (*table.Renderer, error) {
	linker := func(in state.Intent) string {
		next, err := c.Dispatch(ctx, st, in)
		if err != nil {
			return ""
		}
		return queryURL(next)
	}
	opts := []table.Option{
		table.WithResolver(c.Resolver(table.DefaultResolver{Formats: format.NewRegistry(loc.Tag())})),
		table.WithTranslator(loc),
		table.WithLinker(linker),
		table.WithPaginator(paginate.Links{
			URL:        func(n int) string { return linker(state.PageChanged{Page: n}) },
			Translator: loc,
		}),
	}
	views, err := a.views()
	if err != nil {
		return nil, err
	}
	if views != nil {
		opts = append(opts, table.WithViews(views))
	}
	return table.New(opts...), nil
}

func queryURL(st state.State) string {
	q := st.Query()
	if len(q) == 0 {
		return "?"
	}
	return "?" + q.Encode()
}

// stateFromFlags builds a state the same way the server reads a URL.
func stateFromFlags(def state.State, search, sortAttr, sortDir string, page int) state.State {
	v := url.Values{}
	if search != "" {
		v.Set(state.ParamSearch, search)
	}
	if sortAttr != "" {
		v.Set(state.ParamSortAttribute, sortAttr)
	}
	if sortDir != "" {
		v.Set(state.ParamSortDirection, sortDir)
	}
	if page > 0 {
		v.Set(state.ParamPage, fmt.Sprint(page))
	}
	return state.FromQuery(v, def)
}
