package glubblog

import "testing"

func TestSlugify(t *testing.T) {
	tests := map[string]string{
		"Mocking open()":          "mocking-open",
		"  Patch  where it's used": "patch-where-it-s-used",
		"Größe über alles":        "groesse-ueber-alles",
		"2020-03-01_notes":        "2020-03-01-notes",
		"---":                     "",
	}
	for in, want := range tests {
		if got := Slugify(in); got != want {
			t.Errorf("Slugify(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestTitleFromName(t *testing.T) {
	tests := map[string]string{
		"untitled-notes":          "Untitled Notes",
		"2021-01-02_side_effects": "Side Effects",
		"mock":                    "Mock",
	}
	for in, want := range tests {
		if got := titleFromName(in); got != want {
			t.Errorf("titleFromName(%q) = %q, want %q", in, got, want)
		}
	}
}
