// Copyright (c) 2026 Livetable Team
// Livetable - server-rendered data tables
// This source code is licensed under the MIT license found in the LICENSE file.

package host

import (
	"context"
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/sahilm/fuzzy"
	"github.com/toeirei/livetable/internal/model"
	"gopkg.in/yaml.v3"
)

// MemorySource serves rows held in memory. Search matches every token as a
// substring of a searchable column; when that finds nothing, the query falls
// back to fuzzy matching so that typos still surface candidates.
type MemorySource struct {
	rows []model.Row
}

// NewMemorySource copies rows into a new source.
func NewMemorySource(rows []model.Row) *MemorySource {
	return &MemorySource{rows: slices.Clone(rows)}
}

// LoadYAMLRows reads a YAML sequence of mappings into rows.
func LoadYAMLRows(path string) ([]model.Row, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var raw []map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse rows %s: %w", path, err)
	}
	rows := make([]model.Row, 0, len(raw))
	for _, m := range raw {
		rows = append(rows, model.RowOf(m))
	}
	return rows, nil
}

// Len returns the number of rows held.
func (m *MemorySource) Len() int { return len(m.rows) }

// rowSource implements fuzzy.Source over the searchable text of rows.
type rowSource struct {
	rows       []model.Row
	searchable []string
}

func (s rowSource) String(i int) string {
	parts := make([]string, 0, len(s.searchable))
	for _, a := range s.searchable {
		parts = append(parts, s.rows[i].Get(a).String())
	}
	return strings.Join(parts, " ")
}

func (s rowSource) Len() int { return len(s.rows) }

func (m *MemorySource) filter(tokens, searchable []string) []model.Row {
	if len(tokens) == 0 || len(searchable) == 0 {
		return m.rows
	}
	src := rowSource{rows: m.rows, searchable: searchable}
	out := make([]model.Row, 0, len(m.rows))
	for i, r := range m.rows {
		text := strings.ToLower(src.String(i))
		matchedAll := true
		for _, tok := range tokens {
			if !strings.Contains(text, tok) {
				matchedAll = false
				break
			}
		}
		if matchedAll {
			out = append(out, r)
		}
	}
	if len(out) > 0 {
		return out
	}

	matches := fuzzy.FindFrom(strings.Join(tokens, ""), src)
	for _, match := range matches {
		out = append(out, m.rows[match.Index])
	}
	return out
}

// Query implements Source.
func (m *MemorySource) Query(_ context.Context, q Query) (Result, error) {
	rows := slices.Clone(m.filter(q.Tokens, q.Searchable))
	if q.SortAttribute != "" {
		slices.SortStableFunc(rows, func(a, b model.Row) int {
			c := model.Compare(a.Get(q.SortAttribute), b.Get(q.SortAttribute))
			if q.SortDirection == model.Desc {
				return -c
			}
			return c
		})
	}
	total := len(rows)
	start := min(max(q.Offset, 0), total)
	end := total
	if q.Limit > 0 {
		end = min(start+q.Limit, total)
	}
	return Result{Rows: rows[start:end], Total: total}, nil
}

// Keys implements Source.
func (m *MemorySource) Keys(_ context.Context, tokens, searchable []string, keyAttr string) ([]string, error) {
	rows := m.filter(tokens, searchable)
	keys := make([]string, 0, len(rows))
	for _, r := range rows {
		keys = append(keys, r.Key(keyAttr))
	}
	return keys, nil
}
