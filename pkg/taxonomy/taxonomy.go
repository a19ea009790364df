package taxonomy

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Category maps one social-needs category to the ordered phrase list that
// triggers it. Trigger order only matters for early exit during scanning.
type Category struct {
	Name     string   `yaml:"name" json:"name"`
	Triggers []string `yaml:"triggers" json:"triggers"`
}

type Taxonomy struct {
	Categories []Category `yaml:"categories" json:"categories"`
}

// Load reads a taxonomy from YAML, falling back to the compiled-in default
// when no path is given. Trigger phrases are lower-cased here, once, so the
// classifier can match without re-folding them per note.
func Load(path string) (Taxonomy, error) {
	if path == "" {
		return Default(), nil
	}
	content, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return Default(), err
	}

	var tax Taxonomy
	if err := yaml.Unmarshal(content, &tax); err != nil {
		return Taxonomy{}, err
	}
	if err := tax.validate(); err != nil {
		return Taxonomy{}, err
	}
	tax.fold()
	return tax, nil
}

// Default returns the curated HRSN category table. The data lives in
// defaults.go.
func Default() Taxonomy {
	tax := Taxonomy{Categories: defaultCategories()}
	tax.fold()
	return tax
}

func (t Taxonomy) validate() error {
	if len(t.Categories) == 0 {
		return fmt.Errorf("taxonomy has no categories")
	}
	seen := make(map[string]struct{}, len(t.Categories))
	for _, cat := range t.Categories {
		name := strings.TrimSpace(cat.Name)
		if name == "" {
			return fmt.Errorf("taxonomy category with empty name")
		}
		key := strings.ToLower(name)
		if _, dup := seen[key]; dup {
			return fmt.Errorf("duplicate taxonomy category %q", cat.Name)
		}
		seen[key] = struct{}{}
		if len(cat.Triggers) == 0 {
			return fmt.Errorf("category %q has no triggers", cat.Name)
		}
		for _, trig := range cat.Triggers {
			if strings.TrimSpace(trig) == "" {
				return fmt.Errorf("category %q has an empty trigger", cat.Name)
			}
		}
	}
	return nil
}

func (t *Taxonomy) fold() {
	for i := range t.Categories {
		for j, trig := range t.Categories[i].Triggers {
			t.Categories[i].Triggers[j] = strings.ToLower(strings.TrimSpace(trig))
		}
	}
}

// Names returns category names in declaration order.
func (t Taxonomy) Names() []string {
	names := make([]string, 0, len(t.Categories))
	for _, cat := range t.Categories {
		names = append(names, cat.Name)
	}
	return names
}

func (t Taxonomy) Len() int {
	return len(t.Categories)
}
