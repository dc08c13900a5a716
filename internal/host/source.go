// Copyright (c) 2026 Livetable Team
// Livetable - server-rendered data tables
// This source code is licensed under the MIT license found in the LICENSE file.

package host

import (
	"context"
	"strings"

	"github.com/toeirei/livetable/internal/model"
)

// Query asks a Source for one page of rows.
type Query struct {
	// Tokens are lower-cased search words; a row matches when every token
	// is found in at least one searchable column.
	Tokens []string
	// Searchable lists the attributes searched.
	Searchable []string

	SortAttribute string
	SortDirection model.SortDirection

	Offset int
	Limit  int
}

// Result is one page of rows plus the total number of matches.
type Result struct {
	Rows  []model.Row
	Total int
}

// Source supplies rows to a Component.
type Source interface {
	Query(ctx context.Context, q Query) (Result, error)
	// Keys returns the key attribute of every row matching the tokens.
	Keys(ctx context.Context, tokens, searchable []string, keyAttr string) ([]string, error)
}

// TokenizeSearchQuery splits a query into lower-cased tokens, trimming whitespace.
// Returns nil for empty input.
func TokenizeSearchQuery(q string) []string {
	q = strings.TrimSpace(q)
	if q == "" {
		return nil
	}
	parts := strings.Fields(q)
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.ToLower(strings.TrimSpace(p))
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
