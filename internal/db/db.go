// Copyright (c) 2026 Livetable Team
// Livetable - server-rendered data tables
// This source code is licensed under the MIT license found in the LICENSE file.

// Package db reads table rows from SQL databases. It opens SQLite, PostgreSQL
// and MySQL through bun and exposes a host.Source over any table.
package db

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/toeirei/livetable/internal/logging"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/mysqldialect"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	_ "modernc.org/sqlite"

	_ "github.com/go-sql-driver/mysql"
	_ "github.com/jackc/pgx/v5/stdlib"
)

// sqlOpenFunc allows tests to override database opening behavior.
var sqlOpenFunc = sql.Open

// Supported database types.
const (
	SQLite   = "sqlite"
	Postgres = "postgres"
	MySQL    = "mysql"
)

// driverName maps a database type to its registered database/sql driver.
// The pgx stdlib registers itself as "pgx".
func driverName(dbType string) (string, error) {
	switch dbType {
	case SQLite, MySQL:
		return dbType, nil
	case Postgres:
		return "pgx", nil
	default:
		return "", fmt.Errorf("unsupported database type: '%s'", dbType)
	}
}

// Open connects to dsn, applies pending migrations and returns a bun handle
// using the dialect for dbType.
func Open(dbType, dsn string) (*bun.DB, error) {
	drv, err := driverName(dbType)
	if err != nil {
		return nil, err
	}
	start := time.Now()
	sqlDB, err := sqlOpenFunc(drv, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	configurePool(sqlDB, dbType, dsn)
	logging.Debugf("db: opened %s driver in %s", drv, time.Since(start))

	if err := RunMigrations(sqlDB, dbType); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}
	return createBunDB(sqlDB, dbType), nil
}

func createBunDB(sqlDB *sql.DB, dbType string) *bun.DB {
	switch dbType {
	case Postgres:
		return bun.NewDB(sqlDB, pgdialect.New())
	case MySQL:
		return bun.NewDB(sqlDB, mysqldialect.New())
	default:
		return bun.NewDB(sqlDB, sqlitedialect.New())
	}
}

// configurePool applies pool limits. Values can be overridden through
// LIVETABLE_DB_MAX_OPEN_CONNS, LIVETABLE_DB_MAX_IDLE_CONNS,
// LIVETABLE_DB_CONN_MAX_LIFETIME_SECONDS and LIVETABLE_DB_CONN_MAX_IDLE_SECONDS.
func configurePool(sqlDB *sql.DB, dbType, dsn string) {
	maxOpen := envInt("LIVETABLE_DB_MAX_OPEN_CONNS", 25)
	maxIdle := envInt("LIVETABLE_DB_MAX_IDLE_CONNS", 25)
	// each connection to ":memory:" gets its own empty database
	if dbType == SQLite && dsn == ":memory:" {
		maxOpen, maxIdle = 1, 1
	}
	sqlDB.SetMaxOpenConns(maxOpen)
	sqlDB.SetMaxIdleConns(maxIdle)
	sqlDB.SetConnMaxLifetime(time.Duration(envInt("LIVETABLE_DB_CONN_MAX_LIFETIME_SECONDS", 300)) * time.Second)
	sqlDB.SetConnMaxIdleTime(time.Duration(envInt("LIVETABLE_DB_CONN_MAX_IDLE_SECONDS", 60)) * time.Second)
}

func envInt(name string, def int) int {
	v := os.Getenv(name)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		logging.Warnf("db: ignoring invalid %s=%q", name, v)
		return def
	}
	return n
}

// RunMaintenance performs engine-specific housekeeping: PRAGMA optimize,
// VACUUM and an integrity check on SQLite, VACUUM ANALYZE on PostgreSQL and
// OPTIMIZE TABLE for every table on MySQL.
func RunMaintenance(dbType, dsn string) error {
	drv, err := driverName(dbType)
	if err != nil {
		return err
	}
	sqlDB, err := sqlOpenFunc(drv, dsn)
	if err != nil {
		return fmt.Errorf("failed to open database for maintenance: %w", err)
	}
	defer func() { _ = sqlDB.Close() }()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	switch dbType {
	case SQLite:
		if _, err := sqlDB.ExecContext(ctx, "PRAGMA optimize;"); err != nil {
			return fmt.Errorf("sqlite optimize failed: %w", err)
		}
		if _, err := sqlDB.ExecContext(ctx, "VACUUM;"); err != nil {
			return fmt.Errorf("sqlite vacuum failed: %w", err)
		}
		_, _ = sqlDB.ExecContext(ctx, "PRAGMA wal_checkpoint(TRUNCATE);")
		var res string
		if err := sqlDB.QueryRowContext(ctx, "PRAGMA integrity_check;").Scan(&res); err != nil {
			return fmt.Errorf("sqlite integrity_check failed: %w", err)
		}
		if res != "ok" {
			return fmt.Errorf("sqlite integrity_check failed: %s", res)
		}
	case Postgres:
		if _, err := sqlDB.ExecContext(ctx, "VACUUM ANALYZE;"); err != nil {
			return fmt.Errorf("postgres vacuum failed: %w", err)
		}
	case MySQL:
		rows, err := sqlDB.QueryContext(ctx, "SHOW TABLES")
		if err != nil {
			return fmt.Errorf("mysql show tables failed: %w", err)
		}
		var tables []string
		for rows.Next() {
			var name string
			if err := rows.Scan(&name); err != nil {
				_ = rows.Close()
				return fmt.Errorf("mysql read table name failed: %w", err)
			}
			tables = append(tables, name)
		}
		_ = rows.Close()
		var lastErr error
		for _, name := range tables {
			if _, err := sqlDB.ExecContext(ctx, "OPTIMIZE TABLE `"+name+"`"); err != nil {
				logging.Warnf("db: mysql optimize table %s failed: %v", name, err)
				lastErr = err
			}
		}
		if lastErr != nil {
			return fmt.Errorf("mysql optimize encountered errors: %w", lastErr)
		}
	}
	return nil
}
