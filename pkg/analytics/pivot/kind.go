package pivot

import (
	"strconv"
	"strings"

	"github.com/carelens-ai/platform/pkg/common/models"
)

// Kind is one flavor of pivot. Each kind carries its record predicate, the
// field that becomes the row bucket, and its dedup key recipe as data, so
// the whole counting policy is visible in one table below instead of being
// scattered through the engine as branches.
type Kind struct {
	name     string
	matches  func(models.MentionRecord) bool
	rowValue func(models.MentionRecord) string
	dedupKey func(models.MentionRecord) string
}

// Name returns the wire name of the kind, as accepted by KindByName.
func (k Kind) Name() string { return k.name }

// The closed set of pivot kinds.
//
// Symptom and Hrsn bucket rows by the mention's own category value. The
// diagnosis flavors bucket by the linked field instead, while their dedup
// key still carries the full mention identity plus both linked fields, so
// one symptom can contribute to several diagnosis buckets without ever
// double-counting inside one bucket.
var (
	Symptom = Kind{
		name:     "symptom",
		matches:  func(m models.MentionRecord) bool { return m.Kind == models.KindSymptom },
		rowValue: func(m models.MentionRecord) string { return m.CategoryValue },
		dedupKey: mentionKey,
	}

	Diagnosis = Kind{
		name:     "diagnosis",
		matches:  func(m models.MentionRecord) bool { return m.Kind == models.KindSymptom },
		rowValue: func(m models.MentionRecord) string { return m.LinkedDiagnosis },
		dedupKey: linkedKey,
	}

	DiagnosticCategory = Kind{
		name:     "diagnosticCategory",
		matches:  func(m models.MentionRecord) bool { return m.Kind == models.KindSymptom },
		rowValue: func(m models.MentionRecord) string { return m.LinkedDiagnosticCategory },
		dedupKey: linkedKey,
	}

	Hrsn = Kind{
		name:     "hrsn",
		matches:  func(m models.MentionRecord) bool { return m.HrsnFlag },
		rowValue: func(m models.MentionRecord) string { return m.CategoryValue },
		dedupKey: mentionKey,
	}
)

var kinds = []Kind{Symptom, Diagnosis, DiagnosticCategory, Hrsn}

// Kinds returns the closed set, in presentation order.
func Kinds() []Kind {
	out := make([]Kind, len(kinds))
	copy(out, kinds)
	return out
}

// KindNames returns the wire names of the closed set.
func KindNames() []string {
	names := make([]string, len(kinds))
	for i, k := range kinds {
		names[i] = k.name
	}
	return names
}

// KindByName resolves a kind from its wire name, tolerating casing and
// separator variants such as "diagnostic_category".
func KindByName(name string) (Kind, bool) {
	cleaned := strings.TrimSpace(name)
	for _, k := range kinds {
		if strings.EqualFold(cleaned, k.name) {
			return k, true
		}
	}
	squashed := strings.NewReplacer("_", "", "-", "", " ", "").Replace(cleaned)
	for _, k := range kinds {
		if strings.EqualFold(squashed, k.name) {
			return k, true
		}
	}
	return Kind{}, false
}

// keySep cannot occur in field text, so joined keys never collide across
// field boundaries.
const keySep = "\x1f"

func mentionKey(m models.MentionRecord) string {
	return strings.Join([]string{
		m.PatientID,
		m.CategoryValue,
		m.DateLabel(),
		strconv.Itoa(m.PositionInText),
	}, keySep)
}

func linkedKey(m models.MentionRecord) string {
	return strings.Join([]string{
		m.PatientID,
		m.CategoryValue,
		m.DateLabel(),
		m.LinkedDiagnosis,
		m.LinkedDiagnosticCategory,
		strconv.Itoa(m.PositionInText),
	}, keySep)
}
