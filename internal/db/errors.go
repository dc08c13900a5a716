// Copyright (c) 2026 Livetable Team
// Livetable - server-rendered data tables
// This source code is licensed under the MIT license found in the LICENSE file.

package db

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrDuplicate is returned when attempting to insert a record that already exists.
	ErrDuplicate = errors.New("duplicate record")
	// ErrUnknownTable is returned when the queried table does not exist.
	ErrUnknownTable = errors.New("unknown table")
)

// MapDBError maps common driver failures to the sentinel errors above,
// keeping the driver message. The match is string based so that this file
// does not depend on any one driver's error type.
func MapDBError(err error) error {
	if err == nil {
		return nil
	}
	le := strings.ToLower(err.Error())
	switch {
	// MySQL duplicate entry (1062), Postgres unique violation (23505), SQLite unique constraint
	case strings.Contains(le, "duplicate") || strings.Contains(le, "unique") ||
		strings.Contains(le, "23505") || strings.Contains(le, "1062"):
		return fmt.Errorf("%w: %v", ErrDuplicate, err)
	// SQLite "no such table", Postgres 42P01, MySQL 1146
	case strings.Contains(le, "no such table") || strings.Contains(le, "42p01") ||
		strings.Contains(le, "1146") || strings.Contains(le, "doesn't exist"):
		return fmt.Errorf("%w: %v", ErrUnknownTable, err)
	}
	return err
}
