package faq

import (
	"os"
	"path/filepath"
	"testing"
)

func TestMatch(t *testing.T) {
	table := Default()

	tests := []struct {
		name        string
		input       string
		wantKeyword string
		wantMatch   bool
	}{
		{"plain keyword", "What are your hours?", "hours", true},
		{"case insensitive", "TELL ME YOUR HOURS", "hours", true},
		{"keyword mid sentence", "do you charge for shipping to Canada", "shipping", true},
		{"no keyword", "Can I get a refund for my broken blender?", "", false},
		{"empty input", "", "", false},
		{"keyword as substring of word", "whereabouts is your location exactly", "location", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entry, ok := table.Match(tt.input)
			if ok != tt.wantMatch {
				t.Fatalf("Match(%q) ok = %v, want %v", tt.input, ok, tt.wantMatch)
			}
			if ok && entry.Keyword != tt.wantKeyword {
				t.Errorf("Match(%q) keyword = %q, want %q", tt.input, entry.Keyword, tt.wantKeyword)
			}
		})
	}
}

func TestMatchTieBreakDeclaredOrder(t *testing.T) {
	table, err := New([]Entry{
		{"shipping", "about shipping"},
		{"returns", "about returns"},
	})
	if err != nil {
		t.Fatal(err)
	}

	// Both keywords present: the earlier entry must win, every time.
	for i := 0; i < 10; i++ {
		entry, ok := table.Match("what is your returns and shipping policy")
		if !ok {
			t.Fatal("Match() ok = false, want true")
		}
		if entry.Keyword != "shipping" {
			t.Fatalf("Match() keyword = %q, want %q (declared-order tie-break)", entry.Keyword, "shipping")
		}
	}
}

func TestNewValidation(t *testing.T) {
	tests := []struct {
		name    string
		entries []Entry
	}{
		{"empty keyword", []Entry{{"", "resp"}}},
		{"upper-case keyword", []Entry{{"Hours", "resp"}}},
		{"empty response", []Entry{{"hours", ""}}},
		{"duplicate keyword", []Entry{{"hours", "a"}, {"hours", "b"}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := New(tt.entries); err == nil {
				t.Errorf("New(%v) error = nil, want error", tt.entries)
			}
		})
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "faq.json")
	content := `[
		{"keyword": "warranty", "response": "One year limited warranty."},
		{"keyword": "hours", "response": "Always open."}
	]`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	table, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if table.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", table.Len())
	}

	entry, ok := table.Match("does it come with a warranty and what are your hours")
	if !ok || entry.Keyword != "warranty" {
		t.Errorf("Match() = %v, %v; want warranty entry (file order)", entry, ok)
	}
}

func TestLoadErrors(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Error("Load() on missing file: error = nil, want error")
	}

	empty := filepath.Join(t.TempDir(), "empty.json")
	if err := os.WriteFile(empty, []byte(`[]`), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(empty); err == nil {
		t.Error("Load() on empty table: error = nil, want error")
	}
}
