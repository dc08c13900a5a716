// Copyright (c) 2026 Livetable Team
// Livetable - server-rendered data tables
// This source code is licensed under the MIT license found in the LICENSE file.

package format

import (
	"bytes"
	"html/template"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/toeirei/livetable/internal/logging"
	"github.com/toeirei/livetable/internal/model"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// Built-in format names.
const (
	Text     = "text"
	Number   = "number"
	Date     = "date"
	DateTime = "datetime"
	Boolean  = "bool"
	Bytes    = "bytes"
	Relative = "relative"
	Markdown = "markdown"
)

const (
	defaultDateLayout     = "2006-01-02"
	defaultDateTimeLayout = "2006-01-02 15:04"
)

// layouts tried when a date column holds a string.
var parseLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
}

func (r *Registry) registerBuiltins() {
	text := FormatterFunc(func(v model.Value, _ model.Column) Display { return TextDisplay(v.String()) })
	r.formatters[""] = text
	r.formatters[Text] = text
	r.formatters[Number] = FormatterFunc(r.formatNumber)
	r.formatters[Date] = FormatterFunc(func(v model.Value, col model.Column) Display {
		return formatTime(v, col.Option("layout", defaultDateLayout))
	})
	r.formatters[DateTime] = FormatterFunc(func(v model.Value, col model.Column) Display {
		return formatTime(v, col.Option("layout", defaultDateTimeLayout))
	})
	r.formatters[Boolean] = FormatterFunc(formatBool)
	r.formatters[Bytes] = FormatterFunc(formatBytes)
	r.formatters[Relative] = FormatterFunc(r.formatRelative)
	r.formatters[Markdown] = FormatterFunc(formatMarkdown)
}

func numeric(v model.Value) (float64, bool) {
	switch v.Kind() {
	case model.KindInt:
		return float64(v.Int()), true
	case model.KindFloat:
		return v.Float(), true
	case model.KindString:
		f, err := strconv.ParseFloat(strings.TrimSpace(v.Str()), 64)
		return f, err == nil
	}
	return 0, false
}

func (r *Registry) formatNumber(v model.Value, col model.Column) Display {
	f, ok := numeric(v)
	if !ok {
		return TextDisplay(v.String())
	}
	p := message.NewPrinter(r.lang)
	if d := col.Option("decimals", ""); d != "" {
		if n, err := strconv.Atoi(d); err == nil && n >= 0 {
			return TextDisplay(p.Sprint(number.Decimal(f, number.Scale(n))))
		}
	}
	if v.Kind() == model.KindInt {
		return TextDisplay(p.Sprint(number.Decimal(v.Int())))
	}
	return TextDisplay(p.Sprint(number.Decimal(f)))
}

func asTime(v model.Value) (time.Time, bool) {
	switch v.Kind() {
	case model.KindTime:
		return v.Time(), true
	case model.KindInt:
		return time.Unix(v.Int(), 0).UTC(), true
	case model.KindString:
		s := strings.TrimSpace(v.Str())
		for _, l := range parseLayouts {
			if t, err := time.Parse(l, s); err == nil {
				return t, true
			}
		}
	}
	return time.Time{}, false
}

func formatTime(v model.Value, layout string) Display {
	t, ok := asTime(v)
	if !ok {
		return TextDisplay(v.String())
	}
	return TextDisplay(t.Format(layout))
}

func formatBool(v model.Value, col model.Column) Display {
	var b bool
	switch v.Kind() {
	case model.KindBool:
		b = v.Bool()
	case model.KindInt:
		b = v.Int() != 0
	case model.KindString:
		parsed, err := strconv.ParseBool(v.Str())
		if err != nil {
			return TextDisplay(v.String())
		}
		b = parsed
	default:
		return TextDisplay(v.String())
	}
	if b {
		return TextDisplay(col.Option("true", "Yes"))
	}
	return TextDisplay(col.Option("false", "No"))
}

func formatBytes(v model.Value, col model.Column) Display {
	f, ok := numeric(v)
	if !ok || f < 0 {
		return TextDisplay(v.String())
	}
	if col.Option("units", "si") == "iec" {
		return TextDisplay(humanize.IBytes(uint64(f)))
	}
	return TextDisplay(humanize.Bytes(uint64(f)))
}

func (r *Registry) formatRelative(v model.Value, _ model.Column) Display {
	t, ok := asTime(v)
	if !ok {
		return TextDisplay(v.String())
	}
	return TextDisplay(humanize.RelTime(t, r.now(), "ago", "from now"))
}

var (
	markdownOnce sync.Once
	markdownMD   goldmark.Markdown
)

func markdownParser() goldmark.Markdown {
	markdownOnce.Do(func() {
		markdownMD = goldmark.New(goldmark.WithExtensions(extension.GFM))
	})
	return markdownMD
}

// formatMarkdown renders the value as inline HTML. goldmark omits raw HTML
// from the source unless WithUnsafe is set, so the output is safe to embed.
func formatMarkdown(v model.Value, _ model.Column) Display {
	src := v.String()
	var buf bytes.Buffer
	if err := markdownParser().Convert([]byte(src), &buf); err != nil {
		logging.Warnf("markdown cell render failed: %v", err)
		return TextDisplay(src)
	}
	html := strings.TrimSpace(buf.String())
	// single paragraphs are unwrapped so the cell stays inline
	if strings.HasPrefix(html, "<p>") && strings.HasSuffix(html, "</p>") && strings.Count(html, "<p>") == 1 {
		html = strings.TrimSuffix(strings.TrimPrefix(html, "<p>"), "</p>")
	}
	return Display{Text: src, HTML: template.HTML(html)}
}
