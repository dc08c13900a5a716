// Copyright (c) 2026 Livetable Team
// Livetable - server-rendered data tables
// This source code is licensed under the MIT license found in the LICENSE file.

package model

// Row is a single record of a table, keyed by column attribute.
// Rows are read-only for the duration of a render.
type Row map[string]Value

// RowOf converts a generic map (as scanned from SQL or decoded from YAML)
// into a Row.
func RowOf(m map[string]any) Row {
	r := make(Row, len(m))
	for k, v := range m {
		r[k] = ValueOf(v)
	}
	return r
}

// Get returns the value for attr. A missing attribute yields Null.
func (r Row) Get(attr string) Value {
	if r == nil {
		return Null()
	}
	return r[attr]
}

// Has reports whether attr is present on the row.
func (r Row) Has(attr string) bool {
	_, ok := r[attr]
	return ok
}

// Key returns the display form of attr, used for checkbox values and
// selection sets.
func (r Row) Key(attr string) string {
	return r.Get(attr).String()
}
