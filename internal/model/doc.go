// Copyright (c) 2026 Livetable Team
// Livetable - server-rendered data tables
// This source code is licensed under the MIT license found in the LICENSE file.

// Package model holds the transient values a table is built from: typed cell
// values, rows keyed by attribute, and column descriptors.
package model
