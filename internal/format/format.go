// Copyright (c) 2026 Livetable Team
// Livetable - server-rendered data tables
// This source code is licensed under the MIT license found in the LICENSE file.

// Package format turns cell values into display text. Formatters are looked
// up by the column's Format key so that callers can register their own.
package format

import (
	"html/template"
	"sync"
	"time"

	"github.com/toeirei/livetable/internal/model"
	"golang.org/x/text/language"
)

// Display is the rendered form of a cell. HTML, when set, is trusted markup
// produced by a formatter; otherwise Text is escaped on output.
type Display struct {
	Text string
	HTML template.HTML
}

// TextDisplay wraps plain text.
func TextDisplay(s string) Display { return Display{Text: s} }

// IsHTML reports whether the display carries pre-rendered markup.
func (d Display) IsHTML() bool { return d.HTML != "" }

// Markup returns d as HTML, escaping Text when no markup is present.
func (d Display) Markup() template.HTML {
	if d.HTML != "" {
		return d.HTML
	}
	return template.HTML(template.HTMLEscapeString(d.Text))
}

// String returns the plain text form.
func (d Display) String() string { return d.Text }

// Formatter converts one value for the given column.
type Formatter interface {
	Format(v model.Value, col model.Column) Display
}

// FormatterFunc adapts a function to Formatter.
type FormatterFunc func(v model.Value, col model.Column) Display

func (f FormatterFunc) Format(v model.Value, col model.Column) Display { return f(v, col) }

// Registry maps format names to formatters.
type Registry struct {
	mu         sync.RWMutex
	formatters map[string]Formatter
	lang       language.Tag
	now        func() time.Time
}

// Option configures a Registry.
type Option func(*Registry)

// WithClock overrides the time source used by relative formatting.
func WithClock(now func() time.Time) Option {
	return func(r *Registry) { r.now = now }
}

// NewRegistry returns a registry holding the built-in formatters for lang.
func NewRegistry(lang language.Tag, opts ...Option) *Registry {
	r := &Registry{
		formatters: make(map[string]Formatter),
		lang:       lang,
		now:        time.Now,
	}
	for _, o := range opts {
		o(r)
	}
	r.registerBuiltins()
	return r
}

// Register adds or replaces the formatter for name.
func (r *Registry) Register(name string, f Formatter) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.formatters[name] = f
}

// Lookup returns the formatter registered for name.
func (r *Registry) Lookup(name string) (Formatter, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	f, ok := r.formatters[name]
	return f, ok
}

// Format renders v using col.Format. Null always renders empty and unknown
// format names fall back to plain text.
func (r *Registry) Format(v model.Value, col model.Column) Display {
	if v.IsNull() {
		return Display{}
	}
	f, ok := r.Lookup(col.Format)
	if !ok {
		f, _ = r.Lookup(Text)
	}
	return f.Format(v, col)
}
