package taxonomy

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefaultTaxonomy(t *testing.T) {
	tax := Default()
	if tax.Len() < 30 {
		t.Fatalf("expected at least 30 categories, got %d", tax.Len())
	}

	seen := make(map[string]bool)
	for _, cat := range tax.Categories {
		if cat.Name == "" {
			t.Fatal("category with empty name")
		}
		if seen[strings.ToLower(cat.Name)] {
			t.Fatalf("duplicate category %q", cat.Name)
		}
		seen[strings.ToLower(cat.Name)] = true

		if len(cat.Triggers) == 0 {
			t.Fatalf("category %q has no triggers", cat.Name)
		}
		for _, trig := range cat.Triggers {
			if trig == "" {
				t.Fatalf("category %q has an empty trigger", cat.Name)
			}
			if trig != strings.ToLower(trig) {
				t.Fatalf("trigger %q in %q not folded to lower case", trig, cat.Name)
			}
		}
	}
}

func TestLoadEmptyPathUsesDefault(t *testing.T) {
	tax, err := Load("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tax.Len() != Default().Len() {
		t.Fatalf("expected default taxonomy, got %d categories", tax.Len())
	}
}

func TestLoadFromYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "taxonomy.yaml")
	doc := `categories:
  - name: Housing
    triggers: ["Homeless", "eviction"]
  - name: Food
    triggers: ["food bank"]
`
	if err := os.WriteFile(path, []byte(doc), 0o600); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	tax, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tax.Len() != 2 {
		t.Fatalf("expected 2 categories, got %d", tax.Len())
	}
	if tax.Categories[0].Triggers[0] != "homeless" {
		t.Fatalf("expected folded trigger, got %q", tax.Categories[0].Triggers[0])
	}
}

func TestLoadRejectsBadTaxonomies(t *testing.T) {
	cases := []struct {
		name string
		doc  string
	}{
		{"duplicate names", "categories:\n  - name: Housing\n    triggers: [\"a\"]\n  - name: housing\n    triggers: [\"b\"]\n"},
		{"empty trigger", "categories:\n  - name: Housing\n    triggers: [\"a\", \"  \"]\n"},
		{"no triggers", "categories:\n  - name: Housing\n    triggers: []\n"},
		{"no categories", "categories: []\n"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "taxonomy.yaml")
			if err := os.WriteFile(path, []byte(tc.doc), 0o600); err != nil {
				t.Fatalf("write fixture: %v", err)
			}
			if _, err := Load(path); err == nil {
				t.Fatal("expected validation error")
			}
		})
	}
}

func TestNamesPreserveOrder(t *testing.T) {
	tax := Default()
	names := tax.Names()
	if len(names) != tax.Len() {
		t.Fatalf("expected %d names, got %d", tax.Len(), len(names))
	}
	for i, cat := range tax.Categories {
		if names[i] != cat.Name {
			t.Fatalf("name order mismatch at %d: %q vs %q", i, names[i], cat.Name)
		}
	}
}
