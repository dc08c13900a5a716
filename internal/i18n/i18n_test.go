// Copyright (c) 2026 Livetable Team
// Livetable - server-rendered data tables
// This source code is licensed under the MIT license found in the LICENSE file.

package i18n

import "testing"

func TestAvailableLocales(t *testing.T) {
	av := AvailableLocales()
	for _, k := range []string{"en", "de"} {
		if _, ok := av[k]; !ok {
			t.Fatalf("expected available locale %q to be present, got %v", k, av)
		}
	}
	if av["de"] != "Deutsch" {
		t.Fatalf("unexpected display name for de: %q", av["de"])
	}
}

func TestLocalizer_TranslatesAndFallsBack(t *testing.T) {
	de := NewLocalizer("de")
	if got := de.T("Search"); got != "Suchen" {
		t.Fatalf("expected 'Suchen', got %q", got)
	}
	if got := de.T("No results to display."); got != "Keine Ergebnisse vorhanden." {
		t.Fatalf("unexpected translation %q", got)
	}
	if got := de.T("not.a.real.key"); got != "not.a.real.key" {
		t.Fatalf("missing ID should be returned verbatim, got %q", got)
	}
	fr := NewLocalizer("fr")
	if got := fr.T("Search"); got != "Search" {
		t.Fatalf("unsupported language should fall back to English, got %q", got)
	}
}

func TestLocalizer_TemplateData(t *testing.T) {
	en := NewLocalizer("en")
	got := en.TData("Showing {{.From}} to {{.To}} of {{.Total}} results", map[string]any{"From": 11, "To": 20, "Total": 42})
	if got != "Showing 11 to 20 of 42 results" {
		t.Fatalf("unexpected %q", got)
	}
	got = en.TData("Unknown {{.X}} message", map[string]any{"X": "fallback"})
	if got != "Unknown fallback message" {
		t.Fatalf("fallback template not applied: %q", got)
	}
}

func TestLocalizer_Tag(t *testing.T) {
	if tag := NewLocalizer("de-AT,de;q=0.9").Tag().String(); tag != "de" {
		t.Fatalf("expected de, got %s", tag)
	}
	if tag := NewLocalizer("").Tag().String(); tag != "en" {
		t.Fatalf("expected en fallback, got %s", tag)
	}
}

func TestPackageLevelT(t *testing.T) {
	Init("en")
	if got := T("Next"); got != "Next" {
		t.Fatalf("unexpected %q", got)
	}
	SetLang("de")
	defer Init("en")
	if got := T("Next"); got != "Weiter" {
		t.Fatalf("unexpected %q", got)
	}
}
