// Copyright (c) 2026 Livetable Team
// Livetable - server-rendered data tables
// This source code is licensed under the MIT license found in the LICENSE file.

package db

import (
	"context"
	"fmt"
	"slices"

	"github.com/toeirei/livetable/internal/host"
	"github.com/toeirei/livetable/internal/model"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect"
)

// Source serves rows from one SQL table. Searching uses tokenized LIKE
// matching so that it behaves the same on every engine.
type Source struct {
	DB    *bun.DB
	Table string
	// Columns, when set, restricts the attributes that may be searched or
	// sorted on. Other attributes are dropped from queries.
	Columns []string
}

var _ host.Source = (*Source)(nil)

// NewSource returns a source over table, allowing only the given columns
// in ORDER BY and search clauses.
func NewSource(bdb *bun.DB, table string, columns ...string) *Source {
	return &Source{DB: bdb, Table: table, Columns: columns}
}

func (s *Source) allowed(attr string) bool {
	if attr == "" {
		return false
	}
	return len(s.Columns) == 0 || slices.Contains(s.Columns, attr)
}

// textExpr casts a column to text so LOWER/LIKE work on numeric columns.
func (s *Source) textExpr() string {
	if s.DB.Dialect().Name() == dialect.MySQL {
		return "LOWER(CAST(? AS CHAR))"
	}
	return "LOWER(CAST(? AS TEXT))"
}

// where requires every token to match at least one searchable column.
func (s *Source) where(q *bun.SelectQuery, tokens, searchable []string) *bun.SelectQuery {
	var cols []string
	for _, c := range searchable {
		if s.allowed(c) {
			cols = append(cols, c)
		}
	}
	if len(tokens) == 0 || len(cols) == 0 {
		return q
	}
	expr := s.textExpr() + " LIKE ?"
	for _, tok := range tokens {
		like := "%" + tok + "%"
		q = q.WhereGroup(" AND ", func(q *bun.SelectQuery) *bun.SelectQuery {
			for _, c := range cols {
				q = q.WhereOr(expr, bun.Ident(c), like)
			}
			return q
		})
	}
	return q
}

// Query implements host.Source.
func (s *Source) Query(ctx context.Context, hq host.Query) (host.Result, error) {
	total, err := s.where(s.DB.NewSelect().Table(s.Table), hq.Tokens, hq.Searchable).Count(ctx)
	if err != nil {
		return host.Result{}, fmt.Errorf("count %s: %w", s.Table, MapDBError(err))
	}

	q := s.where(s.DB.NewSelect().Table(s.Table), hq.Tokens, hq.Searchable)
	if s.allowed(hq.SortAttribute) {
		if hq.SortDirection == model.Desc {
			q = q.OrderExpr("? DESC", bun.Ident(hq.SortAttribute))
		} else {
			q = q.OrderExpr("? ASC", bun.Ident(hq.SortAttribute))
		}
	}
	if hq.Limit > 0 {
		q = q.Limit(hq.Limit)
	}
	if hq.Offset > 0 {
		q = q.Offset(hq.Offset)
	}

	var raw []map[string]interface{}
	if err := q.Scan(ctx, &raw); err != nil {
		return host.Result{}, fmt.Errorf("select %s: %w", s.Table, MapDBError(err))
	}
	rows := make([]model.Row, 0, len(raw))
	for _, m := range raw {
		rows = append(rows, model.RowOf(m))
	}
	return host.Result{Rows: rows, Total: total}, nil
}

// Keys implements host.Source.
func (s *Source) Keys(ctx context.Context, tokens, searchable []string, keyAttr string) ([]string, error) {
	q := s.where(s.DB.NewSelect().Table(s.Table), tokens, searchable).
		ColumnExpr("?", bun.Ident(keyAttr)).
		OrderExpr("? ASC", bun.Ident(keyAttr))
	var raw []map[string]interface{}
	if err := q.Scan(ctx, &raw); err != nil {
		return nil, fmt.Errorf("select keys from %s: %w", s.Table, MapDBError(err))
	}
	keys := make([]string, 0, len(raw))
	for _, m := range raw {
		keys = append(keys, model.ValueOf(m[keyAttr]).String())
	}
	return keys, nil
}
