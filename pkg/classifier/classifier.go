package classifier

import (
	"strings"

	"github.com/carelens-ai/platform/pkg/taxonomy"
)

// FlagYes is the marker merged into raw records for each matched category.
// Upload eras store category flags as "Yes"/absent columns, so the
// classifier emits the same shape.
const FlagYes = "Yes"

// Classifier maps free-text note content onto the social-needs taxonomy by
// case-insensitive substring matching. It holds no mutable state; one
// instance can serve concurrent calls.
type Classifier struct {
	categories []taxonomy.Category
}

func New(tax taxonomy.Taxonomy) *Classifier {
	return &Classifier{categories: tax.Categories}
}

// Classify returns the names of every category with at least one trigger
// present in text, in taxonomy order. Membership is a presence flag only:
// neither the matching trigger nor the match count is recorded. Empty text
// yields an empty result, not an error.
func (c *Classifier) Classify(text string) []string {
	matched := make([]string, 0, 8)
	if c == nil || text == "" {
		return matched
	}

	folded := strings.ToLower(text)
	for _, cat := range c.categories {
		for _, trig := range cat.Triggers {
			if strings.Contains(folded, trig) {
				matched = append(matched, cat.Name)
				break
			}
		}
	}
	return matched
}

// Flags returns Classify's result keyed by category name with FlagYes
// values, ready to merge into a raw mention row before normalization.
func (c *Classifier) Flags(text string) map[string]string {
	names := c.Classify(text)
	flags := make(map[string]string, len(names))
	for _, name := range names {
		flags[name] = FlagYes
	}
	return flags
}
