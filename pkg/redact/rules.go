package redact

import (
	"errors"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

type Rule struct {
	Name    string `yaml:"name" json:"name"`
	Type    string `yaml:"type" json:"type"`
	Pattern string `yaml:"pattern" json:"pattern"`
	Mask    string `yaml:"mask" json:"mask"`
	Enabled bool   `yaml:"enabled" json:"enabled"`
}

type Config struct {
	Rules []Rule `yaml:"rules" json:"rules"`
}

func LoadRules(path string) (Config, error) {
	if path == "" {
		return DefaultRules(), nil
	}
	content, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return DefaultRules(), err
	}

	var cfg Config
	if err := yaml.Unmarshal(content, &cfg); err != nil {
		return Config{}, err
	}

	if len(cfg.Rules) == 0 {
		return Config{}, errors.New("no redaction rules configured")
	}

	return cfg, nil
}

// DefaultRules covers the identifier shapes routinely dictated into note
// text. Dates of birth are masked here precisely because they share a
// shape with service dates; that is why scrubbing is restricted to note
// fields and never applied to the structured columns.
func DefaultRules() Config {
	return Config{Rules: []Rule{
		{Name: "SSN", Type: "ssn", Pattern: `\b\d{3}-\d{2}-\d{4}\b`, Mask: "***-**-****", Enabled: true},
		{Name: "DOB", Type: "dob", Pattern: `\b\d{1,2}/\d{1,2}/\d{4}\b`, Mask: "##/##/####", Enabled: true},
		{Name: "Email", Type: "email", Pattern: `\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Z|a-z]{2,}\b`, Mask: "***@***", Enabled: true},
		{Name: "Phone", Type: "phone", Pattern: `\b\d{3}-\d{3}-\d{4}\b|\(\d{3}\)\s?\d{3}-\d{4}\b`, Mask: "(***) ***-****", Enabled: true},
		{Name: "MRN", Type: "mrn", Pattern: `\b[Mm][Rr][Nn][:#]?\s*\d{6,10}\b`, Mask: "MRN *******", Enabled: true},
	}}
}
