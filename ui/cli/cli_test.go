// Copyright (c) 2026 Livetable Team
// Livetable - server-rendered data tables
// This source code is licensed under the MIT license found in the LICENSE file.

package cli

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"runtime/debug"
	"strings"
	"testing"

	"github.com/toeirei/livetable/internal/host"
)

// isolate points the config lookup at empty directories.
func isolate(t *testing.T) string {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	dir := t.TempDir()
	t.Chdir(dir)
	return dir
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCmd()
	var buf bytes.Buffer
	cmd.SetOut(&buf)
	cmd.SetErr(&buf)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return buf.String(), err
}

func writeRows(t *testing.T, dir string) string {
	t.Helper()
	path := filepath.Join(dir, "people.yaml")
	data := "- id: 1\n  name: Alice\n  city: Berlin\n- id: 2\n  name: Bob\n  city: Paris\n- id: 3\n  name: Carol\n  city: Berlin\n"
	if err := os.WriteFile(path, []byte(data), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestVersionCmd(t *testing.T) {
	out, err := run(t, "version")
	if err != nil {
		t.Fatalf("version: %v", err)
	}
	if !strings.Contains(out, "version: ") || !strings.Contains(out, "commit: ") {
		t.Fatalf("unexpected output %q", out)
	}
}

func TestResolveBuildVersion_FromBuildInfo(t *testing.T) {
	info := &debug.BuildInfo{
		Main:     debug.Module{Path: modulePath, Version: "v1.4.0"},
		Settings: []debug.BuildSetting{{Key: "vcs.revision", Value: "abc123"}, {Key: "vcs.time", Value: "2026-01-02T03:04:05Z"}},
	}
	v, c, d := resolveBuildVersion(info)
	if v != "v1.4.0" || c != "abc123" || d != "2026-01-02T03:04:05Z" {
		t.Fatalf("unexpected version info %q %q %q", v, c, d)
	}
}

func TestRender_DataFileHTML(t *testing.T) {
	dir := isolate(t)
	rows := writeRows(t, dir)
	out, err := run(t, "render", "--data", rows, "--search", "berlin")
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	for _, want := range []string{"<table", "Alice", "Carol", "Showing 1 to 2 of 2 results"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in output:\n%s", want, out)
		}
	}
	if strings.Contains(out, "Bob") {
		t.Fatalf("search should filter Bob out:\n%s", out)
	}
}

func TestRender_DataFileText(t *testing.T) {
	dir := isolate(t)
	rows := writeRows(t, dir)
	out, err := run(t, "render", "--data", rows, "-o", "text", "--sort", "name", "--direction", "desc")
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if strings.Contains(out, "<table") {
		t.Fatalf("text output should not be HTML:\n%s", out)
	}
	carol, alice := strings.Index(out, "Carol"), strings.Index(out, "Alice")
	if carol < 0 || alice < 0 || carol > alice {
		t.Fatalf("expected descending name order:\n%s", out)
	}
}

func TestRender_UnknownOutput(t *testing.T) {
	dir := isolate(t)
	rows := writeRows(t, dir)
	if _, err := run(t, "render", "--data", rows, "-o", "pdf"); err == nil {
		t.Fatalf("expected error for unknown output format")
	}
}

func TestRender_UnknownTable(t *testing.T) {
	isolate(t)
	_, err := run(t, "render", "nope")
	if !errors.Is(err, host.ErrUnknownTable) {
		t.Fatalf("expected ErrUnknownTable, got %v", err)
	}
}

func TestSeedThenRender(t *testing.T) {
	dir := isolate(t)
	dsn := filepath.Join(dir, "livetable.db")

	out, err := run(t, "--database.dsn", dsn, "seed", "--count", "12")
	if err != nil {
		t.Fatalf("seed: %v", err)
	}
	if !strings.Contains(out, "seeded 12 contacts") {
		t.Fatalf("unexpected seed output %q", out)
	}

	out, err = run(t, "--database.dsn", dsn, "render", "contacts", "--page", "2", "-o", "html")
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(out, "Showing 11 to 12 of 12 results") {
		t.Fatalf("expected second page summary:\n%s", out)
	}

	out, err = run(t, "--database.dsn", dsn, "render", "--select-all", "-o", "text")
	if err != nil {
		t.Fatalf("render select-all: %v", err)
	}
	if strings.Contains(out, "[ ]") {
		t.Fatalf("every row should be checked:\n%s", out)
	}
}

func TestConfigInitAndShow(t *testing.T) {
	isolate(t)
	out, err := run(t, "config", "init")
	if err != nil {
		t.Fatalf("config init: %v", err)
	}
	path := strings.TrimSpace(strings.TrimPrefix(out, "wrote "))
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read written config: %v", err)
	}
	if !strings.Contains(string(data), "name: contacts") {
		t.Fatalf("expected demo table in config:\n%s", data)
	}

	out, err = run(t, "config", "show")
	if err != nil {
		t.Fatalf("config show: %v", err)
	}
	if !strings.Contains(out, "type: sqlite") || !strings.Contains(out, "name: contacts") {
		t.Fatalf("show should print the effective config, including the written tables:\n%s", out)
	}
}
