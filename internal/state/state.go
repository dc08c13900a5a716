// Copyright (c) 2026 Livetable Team
// Livetable - server-rendered data tables
// This source code is licensed under the MIT license found in the LICENSE file.

// package state holds the host-owned table state and the reducer that
// applies intents to it. States are values: Apply returns a new State and
// never modifies its input.
package state

import (
	"fmt"
	"net/url"
	"slices"
	"strconv"
	"strings"

	"github.com/toeirei/livetable/internal/model"
)

// State is everything about a table that changes through interaction.
type State struct {
	Search         string
	SortAttribute  string
	SortDirection  model.SortDirection
	CheckboxAll    bool
	CheckboxValues []string
	Page           int
}

// KeysFunc returns the checkbox keys of every row matching search. It backs
// the select-all intent, which selects across pages.
type KeysFunc func(search string) ([]string, error)

// Clone returns a deep copy of s.
func (s State) Clone() State {
	s.CheckboxValues = slices.Clone(s.CheckboxValues)
	return s
}

// IsSelected reports whether key is in the checkbox selection.
func (s State) IsSelected(key string) bool {
	return slices.Contains(s.CheckboxValues, key)
}

// Apply returns the state that results from in. keys may be nil when the
// caller never emits CheckboxAllToggled.
func Apply(s State, in Intent, keys KeysFunc) (State, error) {
	next := s.Clone()
	switch in := in.(type) {
	case SearchChanged:
		if in.Text != s.Search {
			next.Search = in.Text
			next.Page = 1
		}
	case Sort:
		if in.Attribute == "" {
			return next, nil
		}
		if s.SortAttribute != in.Attribute {
			next.SortDirection = model.Asc
		} else {
			next.SortDirection = s.SortDirection.Toggle()
		}
		next.SortAttribute = in.Attribute
	case CheckboxAllToggled:
		next.CheckboxAll = in.Checked
		next.CheckboxValues = nil
		if in.Checked && keys != nil {
			all, err := keys(s.Search)
			if err != nil {
				return s, fmt.Errorf("select all: %w", err)
			}
			next.CheckboxValues = dedupe(all)
		}
	case CheckboxValuesChanged:
		next.CheckboxAll = false
		next.CheckboxValues = dedupe(in.Values)
	case PageChanged:
		next.Page = max(in.Page, 1)
	default:
		return s, fmt.Errorf("unknown intent %T", in)
	}
	return next, nil
}

func dedupe(values []string) []string {
	if len(values) == 0 {
		return nil
	}
	out := make([]string, 0, len(values))
	seen := make(map[string]struct{}, len(values))
	for _, v := range values {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}

// Query parameter names used by Query and FromQuery.
const (
	ParamSearch        = "search"
	ParamSortAttribute = "sort_attribute"
	ParamSortDirection = "sort_direction"
	ParamPage          = "page"
)

// Query encodes the navigational part of s (search, sort, page) for links.
// Selection is not part of the query.
func (s State) Query() url.Values {
	v := url.Values{}
	if s.Search != "" {
		v.Set(ParamSearch, s.Search)
	}
	if s.SortAttribute != "" {
		v.Set(ParamSortAttribute, s.SortAttribute)
		if s.SortDirection != "" {
			v.Set(ParamSortDirection, string(s.SortDirection))
		}
	}
	if s.Page > 1 {
		v.Set(ParamPage, strconv.Itoa(s.Page))
	}
	return v
}

// FromQuery reads a state from v, taking unset fields from def.
func FromQuery(v url.Values, def State) State {
	s := def.Clone()
	if v.Has(ParamSearch) {
		s.Search = strings.TrimSpace(v.Get(ParamSearch))
	}
	if a := v.Get(ParamSortAttribute); a != "" {
		s.SortAttribute = a
	}
	if v.Has(ParamSortDirection) {
		s.SortDirection = model.ParseSortDirection(v.Get(ParamSortDirection))
	}
	if p, err := strconv.Atoi(v.Get(ParamPage)); err == nil {
		s.Page = max(p, 1)
	}
	if s.Page < 1 {
		s.Page = 1
	}
	return s
}
