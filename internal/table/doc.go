// Copyright (c) 2026 Livetable Team
// Livetable - server-rendered data tables
// This source code is licensed under the MIT license found in the LICENSE file.

// Package table renders the markup of a searchable, sortable, paginated data
// table from a ViewModel.
//
// The renderer owns no state. Interaction is reported outward: controls in
// the markup carry data-intent attributes (search-changed, sort,
// checkbox-all-toggled, checkbox-values-changed, page) whose names match the
// intents in package state. A host applies those intents, builds a new
// ViewModel and renders again.
//
// Per-row and per-cell decisions go through a DecorationResolver. The
// DefaultResolver looks values up by column attribute and formats them with
// a format.Registry keyed by the column's Format, so new formatting rules are
// added by registering a formatter rather than changing the renderer.
//
// Rendering degrades instead of failing: a missing attribute renders empty, a
// panicking resolver leaves the row or cell without an extra class, and a
// failing view renders an empty body. Each such fault is logged.
package table
