// Copyright (c) 2026 Livetable Team
// Livetable - server-rendered data tables
// This source code is licensed under the MIT license found in the LICENSE file.

package table

import (
	"bytes"
	"errors"
	"fmt"
	"html/template"
	"io/fs"

	"github.com/toeirei/livetable/internal/model"
)

// Views renders named templates for custom cells and header/footer slots.
type Views interface {
	Render(name string, data any) (template.HTML, error)
}

// CellContext is passed to a column's custom view.
type CellContext struct {
	Row    model.Row
	Column model.Column
	Value  model.Value
}

// SlotContext is passed to header and footer views.
type SlotContext struct {
	Model ViewModel
}

// ErrUnknownView is returned for a view name that is not defined.
var ErrUnknownView = errors.New("unknown view")

// TemplateViews is a Views backed by an html/template set.
type TemplateViews struct {
	tmpl *template.Template
}

// NewTemplateViews wraps an already-parsed template set.
func NewTemplateViews(t *template.Template) *TemplateViews {
	return &TemplateViews{tmpl: t}
}

// ParseViewsFS parses the templates matching patterns in fsys. Each file is
// addressable by its base name, and {{define}} blocks by their own name.
func ParseViewsFS(fsys fs.FS, patterns ...string) (*TemplateViews, error) {
	t, err := template.New("views").Funcs(ViewFuncs()).ParseFS(fsys, patterns...)
	if err != nil {
		return nil, fmt.Errorf("parse views: %w", err)
	}
	return &TemplateViews{tmpl: t}, nil
}

// ViewFuncs are available to every view template.
func ViewFuncs() template.FuncMap {
	return template.FuncMap{
		"get": func(r model.Row, attr string) string { return r.Get(attr).String() },
	}
}

// Render executes the named template.
func (v *TemplateViews) Render(name string, data any) (template.HTML, error) {
	if v == nil || v.tmpl == nil || v.tmpl.Lookup(name) == nil {
		return "", fmt.Errorf("%w: %q", ErrUnknownView, name)
	}
	var buf bytes.Buffer
	if err := v.tmpl.ExecuteTemplate(&buf, name, data); err != nil {
		return "", fmt.Errorf("render view %q: %w", name, err)
	}
	return template.HTML(buf.String()), nil
}
