// Copyright (c) 2026 Livetable Team
// Livetable - server-rendered data tables
// This source code is licensed under the MIT license found in the LICENSE file.

package server

import (
	"compress/gzip"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/toeirei/livetable/internal/host"
	"github.com/toeirei/livetable/internal/model"
)

func newTestRegistry(t *testing.T, n int) *host.Registry {
	t.Helper()
	rows := make([]model.Row, n)
	for i := range rows {
		rows[i] = model.Row{
			"id":   model.Int(int64(i + 1)),
			"name": model.String(fmt.Sprintf("Person %02d", i+1)),
		}
	}
	rows[0]["name"] = model.String("Alice <admin>")
	c, err := host.NewComponent(host.Definition{
		Name:  "people",
		Title: "People",
		Columns: []model.Column{
			{Attribute: "id", Heading: "ID", Sortable: true},
			{Attribute: "name", Heading: "Name", Sortable: true, Searchable: true},
		},
		PerPage:       5,
		SortAttribute: "id",
	}, host.NewMemorySource(rows))
	if err != nil {
		t.Fatalf("NewComponent: %v", err)
	}
	reg := host.NewRegistry()
	if err := reg.Add(c); err != nil {
		t.Fatalf("Add: %v", err)
	}
	return reg
}

func get(t *testing.T, h http.Handler, target string, header map[string]string) (*http.Response, string) {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	for k, v := range header {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	res := rec.Result()
	var body io.Reader = res.Body
	if res.Header.Get("Content-Encoding") == "gzip" {
		zr, err := gzip.NewReader(res.Body)
		if err != nil {
			t.Fatalf("gzip reader: %v", err)
		}
		body = zr
	}
	b, err := io.ReadAll(body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	return res, string(b)
}

func TestIndex_ListsTables(t *testing.T) {
	h := New(newTestRegistry(t, 3), Options{}).Handler()
	res, body := get(t, h, "/", nil)
	if res.StatusCode != http.StatusOK {
		t.Fatalf("unexpected status %d", res.StatusCode)
	}
	if !strings.Contains(body, `href="/t/people"`) || !strings.Contains(body, "People") {
		t.Fatalf("index should link the table:\n%s", body)
	}
}

func TestTable_Page(t *testing.T) {
	h := New(newTestRegistry(t, 12), Options{}).Handler()
	res, body := get(t, h, "/t/people?page=2", nil)
	if res.StatusCode != http.StatusOK {
		t.Fatalf("unexpected status %d", res.StatusCode)
	}
	for _, want := range []string{
		"<!doctype html>",
		`<form method="get" action="/t/people">`,
		`name="sort_attribute" value="id"`,
		"Person 06",
		"Showing 6 to 10 of 12 results",
		`href="/t/people?page=3&amp;sort_attribute=id&amp;sort_direction=asc"`,
		`href="/t/people?sort_attribute=id&amp;sort_direction=asc"`,
	} {
		if !strings.Contains(body, want) {
			t.Fatalf("expected %q in page:\n%s", want, body)
		}
	}
	if strings.Contains(body, "Person 11") {
		t.Fatalf("page 2 should not contain rows of page 3")
	}
}

func TestTable_SortLinkToggles(t *testing.T) {
	h := New(newTestRegistry(t, 3), Options{}).Handler()
	_, body := get(t, h, "/t/people/fragment?sort_attribute=id&sort_direction=asc", nil)
	if !strings.Contains(body, "sort_attribute=id&amp;sort_direction=desc") {
		t.Fatalf("active column should link to the opposite direction:\n%s", body)
	}
	if !strings.Contains(body, "sort_attribute=name&amp;sort_direction=asc") {
		t.Fatalf("other columns should link ascending:\n%s", body)
	}
}

func TestTable_SearchAndEscaping(t *testing.T) {
	h := New(newTestRegistry(t, 12), Options{}).Handler()
	_, body := get(t, h, "/t/people/fragment?search=alice", nil)
	if strings.Contains(body, "<html") {
		t.Fatalf("fragment should not include the page shell")
	}
	if !strings.Contains(body, "Alice &lt;admin&gt;") || strings.Contains(body, "<admin>") {
		t.Fatalf("cell values must be escaped:\n%s", body)
	}
	if strings.Contains(body, "Person 02") {
		t.Fatalf("search should filter rows")
	}
}

func TestTable_Localized(t *testing.T) {
	h := New(newTestRegistry(t, 3), Options{}).Handler()
	_, body := get(t, h, "/t/people", map[string]string{"Accept-Language": "de-DE,de;q=0.9"})
	if !strings.Contains(body, `placeholder="Suchen"`) || !strings.Contains(body, `lang="de"`) {
		t.Fatalf("expected German page:\n%s", body)
	}
	h = New(newTestRegistry(t, 3), Options{Language: "de"}).Handler()
	_, body = get(t, h, "/t/people", nil)
	if !strings.Contains(body, `placeholder="Suchen"`) {
		t.Fatalf("expected configured default language")
	}
}

func TestTable_UnknownTable(t *testing.T) {
	h := New(newTestRegistry(t, 3), Options{}).Handler()
	res, _ := get(t, h, "/t/nope", nil)
	if res.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", res.StatusCode)
	}
}

func TestTable_Gzip(t *testing.T) {
	h := New(newTestRegistry(t, 12), Options{}).Handler()
	res, body := get(t, h, "/t/people", map[string]string{"Accept-Encoding": "gzip"})
	if res.Header.Get("Content-Encoding") != "gzip" {
		t.Fatalf("expected gzip encoded response, headers %v", res.Header)
	}
	if !strings.Contains(body, "Person 02") {
		t.Fatalf("unexpected decoded body:\n%s", body)
	}
}

func TestServe_GracefulShutdown(t *testing.T) {
	s := New(newTestRegistry(t, 3), Options{Addr: "127.0.0.1:0", ShutdownTimeout: time.Second})
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Serve(ctx) }()

	select {
	case <-s.Ready():
	case err := <-done:
		t.Fatalf("Serve failed early: %v", err)
	case <-time.After(5 * time.Second):
		t.Fatalf("server did not become ready")
	}

	res, err := http.Get("http://" + s.Addr().String() + "/t/people")
	if err != nil {
		t.Fatalf("GET: %v", err)
	}
	_ = res.Body.Close()
	if res.StatusCode != http.StatusOK {
		t.Fatalf("unexpected status %d", res.StatusCode)
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Serve returned %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatalf("server did not shut down")
	}
}
