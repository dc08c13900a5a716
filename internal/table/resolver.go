// Copyright (c) 2026 Livetable Team
// Livetable - server-rendered data tables
// This source code is licensed under the MIT license found in the LICENSE file.

package table

import (
	"strings"

	"github.com/toeirei/livetable/internal/format"
	"github.com/toeirei/livetable/internal/model"
)

// DecorationResolver decides per-row and per-cell classes and the display
// value of a cell. Implementations must be pure functions of their inputs.
type DecorationResolver interface {
	RowClass(row model.Row) string
	CellClass(row model.Row, col model.Column) string
	CellValue(row model.Row, col model.Column) format.Display
}

// DefaultResolver formats values through a format.Registry and delegates
// classes to optional hooks.
type DefaultResolver struct {
	Formats       *format.Registry
	RowClassFunc  func(row model.Row) string
	CellClassFunc func(row model.Row, col model.Column) string
}

func (d DefaultResolver) RowClass(row model.Row) string {
	if d.RowClassFunc == nil {
		return ""
	}
	return d.RowClassFunc(row)
}

func (d DefaultResolver) CellClass(row model.Row, col model.Column) string {
	if d.CellClassFunc == nil {
		return ""
	}
	return d.CellClassFunc(row, col)
}

// CellValue looks col.Attribute up on row. A missing attribute is Null and
// renders empty.
func (d DefaultResolver) CellValue(row model.Row, col model.Column) format.Display {
	v := row.Get(col.Attribute)
	if d.Formats == nil {
		return format.TextDisplay(v.String())
	}
	return d.Formats.Format(v, col)
}

// ClassRule adds Class to a row (or to cells of Column) when the row's
// Attribute renders as Equals. An empty Equals matches any non-empty value.
type ClassRule struct {
	Attribute string `mapstructure:"attribute" yaml:"attribute"`
	Equals    string `mapstructure:"equals" yaml:"equals,omitempty"`
	Column    string `mapstructure:"column" yaml:"column,omitempty"`
	Class     string `mapstructure:"class" yaml:"class"`
}

func (r ClassRule) matches(row model.Row) bool {
	v := row.Get(r.Attribute).String()
	if r.Equals == "" {
		return v != ""
	}
	return strings.EqualFold(v, r.Equals)
}

// RowRules returns a RowClassFunc applying rules in order.
func RowRules(rules []ClassRule) func(model.Row) string {
	return func(row model.Row) string {
		var classes []string
		for _, r := range rules {
			if r.matches(row) {
				classes = append(classes, r.Class)
			}
		}
		return strings.Join(classes, " ")
	}
}

// CellRules returns a CellClassFunc applying rules whose Column matches.
// Rules with an empty Column apply to every cell.
func CellRules(rules []ClassRule) func(model.Row, model.Column) string {
	return func(row model.Row, col model.Column) string {
		var classes []string
		for _, r := range rules {
			if r.Column != "" && r.Column != col.Attribute {
				continue
			}
			if r.matches(row) {
				classes = append(classes, r.Class)
			}
		}
		return strings.Join(classes, " ")
	}
}
