// Copyright (c) 2026 Livetable Team
// Livetable - server-rendered data tables
// This source code is licensed under the MIT license found in the LICENSE file.

package model

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
)

// SortDirection is the ordering applied to the sort column.
type SortDirection string

const (
	Asc  SortDirection = "asc"
	Desc SortDirection = "desc"
)

// ParseSortDirection normalises s. Anything other than asc/desc yields "",
// which renderers treat as "not ascending".
func ParseSortDirection(s string) SortDirection {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "asc":
		return Asc
	case "desc":
		return Desc
	default:
		return ""
	}
}

// Toggle flips asc to desc and anything else to asc.
func (d SortDirection) Toggle() SortDirection {
	if d == Asc {
		return Desc
	}
	return Asc
}

// Column describes one table column.
type Column struct {
	Attribute  string            `mapstructure:"attribute" yaml:"attribute"`
	Heading    string            `mapstructure:"heading" yaml:"heading"`
	Sortable   bool              `mapstructure:"sortable" yaml:"sortable,omitempty"`
	Searchable bool              `mapstructure:"searchable" yaml:"searchable,omitempty"`
	View       string            `mapstructure:"view" yaml:"view,omitempty"`
	Format     string            `mapstructure:"format" yaml:"format,omitempty"`
	Options    map[string]string `mapstructure:"options" yaml:"options,omitempty"`
}

// NewColumn returns a column whose attribute is the snake_case form of heading.
func NewColumn(heading string) Column {
	return Column{Attribute: SnakeCase(heading), Heading: heading}
}

// Option returns the named formatting option or def when unset.
func (c Column) Option(name, def string) string {
	if v, ok := c.Options[name]; ok && v != "" {
		return v
	}
	return def
}

// SnakeCase lower-cases s and joins its words with underscores.
// "First Name" and "FirstName" both become "first_name".
func SnakeCase(s string) string {
	var b strings.Builder
	prevLower := false
	pendingSep := false
	for _, r := range strings.TrimSpace(s) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			if (pendingSep || (unicode.IsUpper(r) && prevLower)) && b.Len() > 0 {
				b.WriteByte('_')
			}
			pendingSep = false
			b.WriteRune(unicode.ToLower(r))
			prevLower = unicode.IsLower(r) || unicode.IsDigit(r)
		default:
			pendingSep = true
			prevLower = false
		}
	}
	return b.String()
}

var (
	ErrEmptyAttribute     = errors.New("column attribute is empty")
	ErrDuplicateAttribute = errors.New("duplicate column attribute")
)

// ValidateColumns checks that every attribute is non-empty and unique.
func ValidateColumns(cols []Column) error {
	seen := make(map[string]struct{}, len(cols))
	for i, c := range cols {
		if c.Attribute == "" {
			return fmt.Errorf("column %d (%q): %w", i, c.Heading, ErrEmptyAttribute)
		}
		if _, dup := seen[c.Attribute]; dup {
			return fmt.Errorf("column %q: %w", c.Attribute, ErrDuplicateAttribute)
		}
		seen[c.Attribute] = struct{}{}
	}
	return nil
}

// FindColumn returns the column with the given attribute.
func FindColumn(cols []Column, attr string) (Column, bool) {
	for _, c := range cols {
		if c.Attribute == attr {
			return c, true
		}
	}
	return Column{}, false
}
