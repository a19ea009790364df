package redact

import (
	"regexp"
	"strings"
)

type compiledRule struct {
	rule Rule
	re   *regexp.Regexp
}

// Scrubber masks identifier shapes in free text before rows are persisted.
// It is applied only to the configured note-text fields of a raw row, so
// structured columns such as the service date keep their original values.
type Scrubber struct {
	rules []compiledRule
}

func NewScrubber(cfg Config) (*Scrubber, error) {
	var compiled []compiledRule
	for _, rule := range cfg.Rules {
		if !rule.Enabled {
			continue
		}
		re, err := regexp.Compile(rule.Pattern)
		if err != nil {
			return nil, err
		}
		compiled = append(compiled, compiledRule{rule: rule, re: re})
	}
	return &Scrubber{rules: compiled}, nil
}

// ScrubText masks every rule match in text and reports how many matches
// were replaced.
func (s *Scrubber) ScrubText(text string) (string, int) {
	if s == nil {
		return text, 0
	}
	masked := text
	total := 0
	for _, rule := range s.rules {
		if n := len(rule.re.FindAllStringIndex(masked, -1)); n > 0 {
			total += n
			masked = rule.re.ReplaceAllString(masked, rule.rule.Mask)
		}
	}
	return masked, total
}

// ScrubRow masks the named free-text fields of a raw row in place,
// tolerating era casings of the field names. It reports how many matches
// were replaced across the row.
func (s *Scrubber) ScrubRow(row map[string]interface{}, noteFields []string) int {
	if s == nil {
		return 0
	}
	total := 0
	for _, field := range noteFields {
		for key, value := range row {
			if !strings.EqualFold(key, field) {
				continue
			}
			text, ok := value.(string)
			if !ok || text == "" {
				continue
			}
			masked, n := s.ScrubText(text)
			if n > 0 {
				row[key] = masked
				total += n
			}
		}
	}
	return total
}

// ScrubRows applies ScrubRow to each row and reports the total number of
// masked matches.
func (s *Scrubber) ScrubRows(rows []map[string]interface{}, noteFields []string) int {
	total := 0
	for _, row := range rows {
		total += s.ScrubRow(row, noteFields)
	}
	return total
}
