// Copyright (c) 2026 Livetable Team
// Livetable - server-rendered data tables
// This source code is licensed under the MIT license found in the LICENSE file.

package db

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"
	"time"

	"github.com/toeirei/livetable/internal/logging"
)

//go:embed migrations
var embeddedMigrations embed.FS

// RunMigrations applies the embedded *.up.sql files for dbType that are not
// yet recorded in schema_migrations, each in its own transaction.
func RunMigrations(db *sql.DB, dbType string) error {
	start := time.Now()
	dir := path.Join("migrations", dbType)

	entries, err := fs.ReadDir(embeddedMigrations, dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("failed to read embedded migrations (%s): %w", dir, err)
	}
	var ups []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), ".up.sql") {
			ups = append(ups, e.Name())
		}
	}
	sort.Strings(ups)

	versionCol := "TEXT"
	if dbType == MySQL {
		// MySQL cannot index TEXT without a prefix length
		versionCol = "VARCHAR(191)"
	}
	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS schema_migrations (version ` + versionCol + ` PRIMARY KEY, applied_at TIMESTAMP)`); err != nil {
		return fmt.Errorf("failed to ensure schema_migrations table: %w", err)
	}

	selectQ := "SELECT 1 FROM schema_migrations WHERE version = ?"
	insertQ := "INSERT INTO schema_migrations(version, applied_at) VALUES(?, ?)"
	if dbType == Postgres {
		selectQ = "SELECT 1 FROM schema_migrations WHERE version = $1"
		insertQ = "INSERT INTO schema_migrations(version, applied_at) VALUES($1, $2)"
	}

	applied := 0
	for _, name := range ups {
		version := strings.TrimSuffix(name, ".up.sql")

		var exists int
		err := db.QueryRow(selectQ, version).Scan(&exists)
		if err == nil {
			continue
		}
		if !errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("failed to check migration version %s: %w", version, err)
		}

		data, err := embeddedMigrations.ReadFile(path.Join(dir, name))
		if err != nil {
			return fmt.Errorf("failed to read migration %s: %w", name, err)
		}
		tx, err := db.Begin()
		if err != nil {
			return fmt.Errorf("failed to begin transaction for migration %s: %w", version, err)
		}
		if _, err := tx.Exec(string(data)); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("failed to execute migration %s: %w", version, err)
		}
		if _, err := tx.Exec(insertQ, version, time.Now()); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("failed to record migration %s: %w", version, err)
		}
		if err := tx.Commit(); err != nil {
			return fmt.Errorf("failed to commit migration %s: %w", version, err)
		}
		applied++
	}
	logging.Debugf("db: applied %d migration(s) for %s in %s", applied, dbType, time.Since(start))
	return nil
}
