// Copyright (c) 2026 Livetable Team
// Livetable - server-rendered data tables
// This source code is licensed under the MIT license found in the LICENSE file.

package table

import (
	"html/template"

	"github.com/toeirei/livetable/internal/model"
	"github.com/toeirei/livetable/internal/paginate"
	"github.com/toeirei/livetable/internal/state"
)

// ViewModel is the read-only input of a render. The host builds a fresh one
// for every render cycle.
type ViewModel struct {
	// ID, when set, becomes the wrapper element id and data-component value.
	ID string

	Rows    []model.Row
	Columns []model.Column

	Checkbox          bool
	CheckboxAttribute string
	CheckboxAll       bool
	CheckboxValues    []string

	SortAttribute string
	SortDirection model.SortDirection
	Search        string

	TableClass string
	TheadClass string

	HeaderView string
	FooterView string

	// Page describes the window Rows belongs to. Nil renders no pagination.
	Page *paginate.Page
}

// Translator resolves display strings by message ID.
type Translator interface {
	T(messageID string) string
}

// Paginator renders page navigation for an already-computed page window.
type Paginator interface {
	Links(p paginate.Page) template.HTML
}

// Linker turns an intent into an href. Renderers without a Linker emit the
// intent only as data attributes.
type Linker func(in state.Intent) string

type identity struct{}

func (identity) T(id string) string { return id }
