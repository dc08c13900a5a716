// Copyright (c) 2026 Livetable Team
// Livetable - server-rendered data tables
// This source code is licensed under the MIT license found in the LICENSE file.

package format

import (
	"strings"
	"testing"
	"time"

	"github.com/toeirei/livetable/internal/model"
	"golang.org/x/text/language"
)

func col(format string, opts map[string]string) model.Column {
	return model.Column{Attribute: "v", Format: format, Options: opts}
}

func TestRegistry_NullIsEmpty(t *testing.T) {
	r := NewRegistry(language.English)
	for _, f := range []string{"", Text, Number, Date, Boolean, Markdown} {
		if d := r.Format(model.Null(), col(f, nil)); d.Text != "" || d.IsHTML() {
			t.Fatalf("format %q: expected empty display for null, got %+v", f, d)
		}
	}
}

func TestRegistry_UnknownFallsBackToText(t *testing.T) {
	r := NewRegistry(language.English)
	if got := r.Format(model.Int(42), col("currency-of-mars", nil)).Text; got != "42" {
		t.Fatalf("unexpected fallback text %q", got)
	}
}

func TestRegistry_Number(t *testing.T) {
	r := NewRegistry(language.English)
	if got := r.Format(model.Int(1234567), col(Number, nil)).Text; got != "1,234,567" {
		t.Fatalf("unexpected number %q", got)
	}
	if got := r.Format(model.Float(1234.5), col(Number, map[string]string{"decimals": "2"})).Text; got != "1,234.50" {
		t.Fatalf("unexpected decimals %q", got)
	}
	if got := r.Format(model.String("n/a"), col(Number, nil)).Text; got != "n/a" {
		t.Fatalf("non-numeric should pass through, got %q", got)
	}
}

func TestRegistry_Dates(t *testing.T) {
	r := NewRegistry(language.English)
	ts := time.Date(2025, 12, 24, 18, 30, 0, 0, time.UTC)
	if got := r.Format(model.Time(ts), col(Date, nil)).Text; got != "2025-12-24" {
		t.Fatalf("unexpected date %q", got)
	}
	if got := r.Format(model.String("2025-12-24 18:30:00"), col(DateTime, nil)).Text; got != "2025-12-24 18:30" {
		t.Fatalf("unexpected datetime %q", got)
	}
	if got := r.Format(model.Time(ts), col(Date, map[string]string{"layout": "02.01.2006"})).Text; got != "24.12.2025" {
		t.Fatalf("unexpected custom layout %q", got)
	}
	if got := r.Format(model.String("soon"), col(Date, nil)).Text; got != "soon" {
		t.Fatalf("unparsable date should pass through, got %q", got)
	}
}

func TestRegistry_Bool(t *testing.T) {
	r := NewRegistry(language.English)
	if got := r.Format(model.Bool(true), col(Boolean, nil)).Text; got != "Yes" {
		t.Fatalf("unexpected %q", got)
	}
	if got := r.Format(model.Int(0), col(Boolean, map[string]string{"false": "inactive"})).Text; got != "inactive" {
		t.Fatalf("unexpected %q", got)
	}
}

func TestRegistry_BytesAndRelative(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	r := NewRegistry(language.English, WithClock(func() time.Time { return now }))
	if got := r.Format(model.Int(1536), col(Bytes, map[string]string{"units": "iec"})).Text; got != "1.5 KiB" {
		t.Fatalf("unexpected bytes %q", got)
	}
	if got := r.Format(model.Time(now.Add(-3*time.Hour)), col(Relative, nil)).Text; got != "3 hours ago" {
		t.Fatalf("unexpected relative %q", got)
	}
}

func TestRegistry_MarkdownIsInlineAndSafe(t *testing.T) {
	r := NewRegistry(language.English)
	d := r.Format(model.String("**bold** <script>x</script>"), col(Markdown, nil))
	if !d.IsHTML() {
		t.Fatalf("expected html display")
	}
	if !strings.Contains(string(d.HTML), "<strong>bold</strong>") {
		t.Fatalf("missing strong: %s", d.HTML)
	}
	if strings.Contains(string(d.HTML), "<script>") {
		t.Fatalf("raw html leaked: %s", d.HTML)
	}
	if strings.HasPrefix(string(d.HTML), "<p>") {
		t.Fatalf("single paragraph should be unwrapped: %s", d.HTML)
	}
}

func TestRegistry_Register(t *testing.T) {
	r := NewRegistry(language.English)
	r.Register("upper", FormatterFunc(func(v model.Value, _ model.Column) Display {
		return TextDisplay(strings.ToUpper(v.String()))
	}))
	if got := r.Format(model.String("abc"), col("upper", nil)).Text; got != "ABC" {
		t.Fatalf("custom formatter not used, got %q", got)
	}
}

func TestDisplay_MarkupEscapesText(t *testing.T) {
	if got := TextDisplay("<b>").Markup(); got != "&lt;b&gt;" {
		t.Fatalf("unexpected markup %q", got)
	}
}
