// Copyright (c) 2026 Livetable Team
// Livetable - server-rendered data tables
// This source code is licensed under the MIT license found in the LICENSE file.

package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/cobra"
	cfg "github.com/toeirei/livetable/internal/config"
	"github.com/toeirei/livetable/internal/model"
)

func TestLoadConfig_DefaultsWithoutFile(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Chdir(t.TempDir())

	got, err := cfg.LoadConfig[cfg.Config](&cobra.Command{}, cfg.Defaults(), nil)
	if err != nil {
		t.Fatalf("missing config file should not be an error, got %v", err)
	}
	if got.Database.Type != "sqlite" || got.Language != "en" {
		t.Fatalf("defaults not applied: %+v", got)
	}
	if got.Server.ReadTimeout != 30*time.Second {
		t.Fatalf("expected duration default to decode, got %v", got.Server.ReadTimeout)
	}
}

func TestLoadConfig_EnvVarParsing(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Chdir(t.TempDir())
	t.Setenv("LIVETABLE_DATABASE_TYPE", "postgres")
	t.Setenv("LIVETABLE_SERVER_ADDR", ":9999")
	t.Setenv("LIVETABLE_SERVER_SHUTDOWN_TIMEOUT", "2s")

	got, err := cfg.LoadConfig[cfg.Config](&cobra.Command{}, cfg.Defaults(), nil)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if got.Database.Type != "postgres" || got.Server.Addr != ":9999" {
		t.Fatalf("env not applied: %+v", got)
	}
	if got.Server.ShutdownTimeout != 2*time.Second {
		t.Fatalf("expected 2s, got %v", got.Server.ShutdownTimeout)
	}
}

func TestLoadConfig_FlagOverridesEnv(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Chdir(t.TempDir())
	t.Setenv("LIVETABLE_LANGUAGE", "fr")

	cmd := &cobra.Command{}
	cmd.Flags().String("language", "", "")
	if err := cmd.Flags().Set("language", "de"); err != nil {
		t.Fatal(err)
	}
	got, err := cfg.LoadConfig[cfg.Config](cmd, cfg.Defaults(), nil)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if got.Language != "de" {
		t.Fatalf("expected flag value de, got %q", got.Language)
	}
}

func TestLoadConfig_ReadsTables(t *testing.T) {
	tmp := t.TempDir()
	data := `language: de
tables:
  - name: people
    title: People
    data: people.yaml
    per_page: 25
    sort_attribute: name
    sort_direction: desc
    checkbox: true
    columns:
      - heading: Full Name
        sortable: true
        searchable: true
      - attribute: balance
        format: number
        options:
          decimals: "2"
    row_classes:
      - attribute: active
        equals: "false"
        class: text-muted
`
	file := filepath.Join(tmp, "cfg.yaml")
	if err := os.WriteFile(file, []byte(data), 0o600); err != nil {
		t.Fatalf("write file: %v", err)
	}

	got, err := cfg.LoadConfig[cfg.Config](&cobra.Command{}, cfg.Defaults(), &file)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if len(got.Tables) != 1 {
		t.Fatalf("expected one table, got %d", len(got.Tables))
	}
	tbl := got.Tables[0]
	if tbl.PerPage != 25 || tbl.SortDirection != model.Desc || !tbl.Checkbox {
		t.Fatalf("table settings not decoded: %+v", tbl)
	}
	if len(tbl.Columns) != 2 || tbl.Columns[0].Heading != "Full Name" || !tbl.Columns[0].Sortable {
		t.Fatalf("columns not decoded: %+v", tbl.Columns)
	}
	if tbl.Columns[1].Option("decimals", "0") != "2" {
		t.Fatalf("column options not decoded: %+v", tbl.Columns[1])
	}
	if len(tbl.RowClasses) != 1 || tbl.RowClasses[0].Class != "text-muted" {
		t.Fatalf("row classes not decoded: %+v", tbl.RowClasses)
	}
}

func TestLoadConfig_MalformedFile(t *testing.T) {
	file := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(file, []byte("tables: [unclosed"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := cfg.LoadConfig[cfg.Config](&cobra.Command{}, cfg.Defaults(), &file); err == nil {
		t.Fatalf("expected parse error")
	}
}

func TestWriteConfigFile_RoundTrip(t *testing.T) {
	tmp := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", tmp)
	t.Setenv("HOME", tmp)

	c := cfg.Config{Language: "de"}
	c.Database.Type = "sqlite"
	c.Database.Dsn = "./livetable.db"
	c.Server.Addr = ":8081"

	path, err := cfg.WriteConfigFile(&c, false)
	if err != nil {
		t.Fatalf("WriteConfigFile failed: %v", err)
	}
	got, err := cfg.LoadConfig[cfg.Config](&cobra.Command{}, cfg.Defaults(), &path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if got.Language != "de" || got.Server.Addr != ":8081" {
		t.Fatalf("round trip lost values: %+v", got)
	}
}
