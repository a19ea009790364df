package normalizer

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// FieldMap lists, per logical field, the ordered raw field-name candidates
// accumulated across upload eras. Resolution tries candidates in order and
// the first non-empty value wins; matching falls back to case-insensitive
// comparison so "Segment" and "SEGMENT" era spellings resolve without
// listing every casing. Keeping the chains here, as data, is what keeps the
// era mess out of the aggregation code.
type FieldMap struct {
	CategoryValue      []string `yaml:"category_value" json:"category_value"`
	DateOfService      []string `yaml:"date_of_service" json:"date_of_service"`
	PatientID          []string `yaml:"patient_id" json:"patient_id"`
	MentionKind        []string `yaml:"mention_kind" json:"mention_kind"`
	HrsnIndicator      []string `yaml:"hrsn_indicator" json:"hrsn_indicator"`
	LinkedDiagnosis    []string `yaml:"linked_diagnosis" json:"linked_diagnosis"`
	DiagnosticCategory []string `yaml:"diagnostic_category" json:"diagnostic_category"`
	Position           []string `yaml:"position" json:"position"`
}

// LoadFieldMap reads era field mappings from YAML, falling back to the
// compiled-in chains when no path is given.
func LoadFieldMap(path string) (FieldMap, error) {
	if path == "" {
		return DefaultFieldMap(), nil
	}
	content, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return DefaultFieldMap(), err
	}

	var fm FieldMap
	if err := yaml.Unmarshal(content, &fm); err != nil {
		return FieldMap{}, err
	}
	if err := fm.validate(); err != nil {
		return FieldMap{}, err
	}
	return fm, nil
}

func (fm FieldMap) validate() error {
	chains := map[string][]string{
		"category_value":      fm.CategoryValue,
		"date_of_service":     fm.DateOfService,
		"patient_id":          fm.PatientID,
		"mention_kind":        fm.MentionKind,
		"hrsn_indicator":      fm.HrsnIndicator,
		"linked_diagnosis":    fm.LinkedDiagnosis,
		"diagnostic_category": fm.DiagnosticCategory,
		"position":            fm.Position,
	}
	for name, chain := range chains {
		if len(chain) == 0 {
			return fmt.Errorf("field map: %s has no candidates", name)
		}
		for _, cand := range chain {
			if strings.TrimSpace(cand) == "" {
				return fmt.Errorf("field map: %s has an empty candidate", name)
			}
		}
	}
	return nil
}

// DefaultFieldMap covers the upload eras seen to date. Order within a chain
// is newest-era first.
func DefaultFieldMap() FieldMap {
	return FieldMap{
		CategoryValue:      []string{"segment", "symptom_segment", "symptom", "mention_value"},
		DateOfService:      []string{"date_of_service", "date of service", "service_date", "dos", "date"},
		PatientID:          []string{"patient_id", "patient id", "patientid", "patient", "mrn"},
		MentionKind:        []string{"mention_kind", "mention_type", "record_type", "type"},
		HrsnIndicator:      []string{"classification", "class", "indicator_class"},
		LinkedDiagnosis:    []string{"diagnosis", "linked_diagnosis", "dx", "diagnosis_name"},
		DiagnosticCategory: []string{"diagnostic_category", "diagnostic category", "dx_category"},
		Position:           []string{"position", "position_in_text", "offset", "char_offset"},
	}
}

// ResolvePatientID resolves just the patient identifier from a raw row,
// for callers that index rows by patient without normalizing them.
func (fm FieldMap) ResolvePatientID(raw map[string]interface{}) string {
	return lookupString(raw, fm.PatientID)
}

// lookupString resolves a chain against a raw row: exact keys first, then a
// case-insensitive pass for era spellings. The first non-empty value wins.
func lookupString(raw map[string]interface{}, candidates []string) string {
	for _, key := range candidates {
		if v, ok := raw[key]; ok {
			if s := getString(v); s != "" {
				return s
			}
		}
	}
	for _, key := range candidates {
		for rawKey, v := range raw {
			if strings.EqualFold(rawKey, key) {
				if s := getString(v); s != "" {
					return s
				}
			}
		}
	}
	return ""
}

// lookupInt resolves the first candidate that is present and numeric.
// Unlike lookupString, presence wins over non-zeroness: zero is a valid
// text position.
func lookupInt(raw map[string]interface{}, candidates []string) (int, bool) {
	for _, key := range candidates {
		if v, ok := raw[key]; ok {
			if n, ok := toInt(v); ok {
				return n, true
			}
		}
	}
	for _, key := range candidates {
		for rawKey, v := range raw {
			if strings.EqualFold(rawKey, key) {
				if n, ok := toInt(v); ok {
					return n, true
				}
			}
		}
	}
	return 0, false
}

func getString(v interface{}) string {
	switch val := v.(type) {
	case string:
		return strings.TrimSpace(val)
	case fmt.Stringer:
		return strings.TrimSpace(val.String())
	default:
		return ""
	}
}

func toInt(v interface{}) (int, bool) {
	switch val := v.(type) {
	case int:
		return val, true
	case int64:
		return int(val), true
	case float64:
		// JSON decoding hands numbers over as float64
		return int(val), true
	case string:
		trimmed := strings.TrimSpace(val)
		if trimmed == "" {
			return 0, false
		}
		var n int
		if _, err := fmt.Sscanf(trimmed, "%d", &n); err != nil {
			return 0, false
		}
		return n, true
	default:
		return 0, false
	}
}
