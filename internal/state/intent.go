// Copyright (c) 2026 Livetable Team
// Livetable - server-rendered data tables
// This source code is licensed under the MIT license found in the LICENSE file.

package state

// Intent names, as emitted in rendered markup via data-intent.
const (
	NameSearchChanged         = "search-changed"
	NameSort                  = "sort"
	NameCheckboxAllToggled    = "checkbox-all-toggled"
	NameCheckboxValuesChanged = "checkbox-values-changed"
	NamePageChanged           = "page"
)

// Intent is a requested state change reported by a renderer. Intents are
// applied by the host, never by the renderer itself.
type Intent interface {
	Name() string
}

// SearchChanged reports new search text.
type SearchChanged struct{ Text string }

// Sort requests ordering by Attribute.
type Sort struct{ Attribute string }

// CheckboxAllToggled reports the select-all control changing.
type CheckboxAllToggled struct{ Checked bool }

// CheckboxValuesChanged reports the full set of selected row keys.
type CheckboxValuesChanged struct{ Values []string }

// PageChanged requests a different page.
type PageChanged struct{ Page int }

func (SearchChanged) Name() string         { return NameSearchChanged }
func (Sort) Name() string                  { return NameSort }
func (CheckboxAllToggled) Name() string    { return NameCheckboxAllToggled }
func (CheckboxValuesChanged) Name() string { return NameCheckboxValuesChanged }
func (PageChanged) Name() string           { return NamePageChanged }
