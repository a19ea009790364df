package normalizer

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/carelens-ai/platform/pkg/common/models"
)

// HrsnSentinel is the indicator-field value that marks a mention as a
// health-related social need regardless of its kind. It comes from the
// Z-code classification column of the original screening exports.
const HrsnSentinel = "Z-Code"

// Rejection reasons. Rejected rows are dropped from aggregation, never
// defaulted; callers that care count them via NormalizeAll.
var (
	ErrNoCategoryValue = errors.New("no category value resolved")
	ErrNoDate          = errors.New("no service date present")
	ErrBadDate         = errors.New("service date not parseable")
)

// serviceDateLayouts are the accepted textual date shapes, tried in order:
// ISO, slash with 4-digit year, slash with 2-digit year.
var serviceDateLayouts = []string{"2006-01-02", "1/2/2006", "1/2/06"}

// Normalizer converts heterogeneous raw mention rows into canonical
// MentionRecords. It is stateless apart from the immutable field map.
type Normalizer struct {
	fields FieldMap
}

func New(fields FieldMap) *Normalizer {
	return &Normalizer{fields: fields}
}

// Normalize resolves one raw row. It returns a rejection error when the row
// has no resolvable category value or no parseable service date; everything
// else falls back to a usable zero (missing position becomes 0, missing
// kind becomes Symptom).
func (n *Normalizer) Normalize(raw map[string]interface{}) (models.MentionRecord, error) {
	value := lookupString(raw, n.fields.CategoryValue)
	if value == "" {
		return models.MentionRecord{}, ErrNoCategoryValue
	}

	dateStr := lookupString(raw, n.fields.DateOfService)
	if dateStr == "" {
		return models.MentionRecord{}, ErrNoDate
	}
	date, err := parseServiceDate(dateStr)
	if err != nil {
		return models.MentionRecord{}, fmt.Errorf("%w: %q", ErrBadDate, dateStr)
	}

	kind := models.KindSymptom
	if strings.EqualFold(lookupString(raw, n.fields.MentionKind), string(models.KindProblem)) {
		kind = models.KindProblem
	}

	hrsn := kind == models.KindProblem ||
		strings.EqualFold(lookupString(raw, n.fields.HrsnIndicator), HrsnSentinel)

	position, _ := lookupInt(raw, n.fields.Position)
	if position < 0 {
		position = 0
	}

	return models.MentionRecord{
		PatientID:                lookupString(raw, n.fields.PatientID),
		DateOfService:            date,
		CategoryValue:            value,
		Kind:                     kind,
		HrsnFlag:                 hrsn,
		PositionInText:           position,
		LinkedDiagnosis:          lookupString(raw, n.fields.LinkedDiagnosis),
		LinkedDiagnosticCategory: lookupString(raw, n.fields.DiagnosticCategory),
	}, nil
}

// RejectStats counts rows dropped per reason during NormalizeAll.
type RejectStats struct {
	MissingValue int `json:"missing_value,omitempty"`
	MissingDate  int `json:"missing_date,omitempty"`
	BadDate      int `json:"bad_date,omitempty"`
}

func (s RejectStats) Total() int {
	return s.MissingValue + s.MissingDate + s.BadDate
}

// Counts renders the stats as a reason->count map, omitting zero reasons.
func (s RejectStats) Counts() map[string]int {
	counts := make(map[string]int, 3)
	if s.MissingValue > 0 {
		counts["missing_value"] = s.MissingValue
	}
	if s.MissingDate > 0 {
		counts["missing_date"] = s.MissingDate
	}
	if s.BadDate > 0 {
		counts["bad_date"] = s.BadDate
	}
	return counts
}

// NormalizeAll resolves a batch, silently dropping rejected rows from the
// returned collection while reporting how many were dropped and why.
func (n *Normalizer) NormalizeAll(rows []map[string]interface{}) ([]models.MentionRecord, RejectStats) {
	records := make([]models.MentionRecord, 0, len(rows))
	var stats RejectStats

	for _, row := range rows {
		rec, err := n.Normalize(row)
		switch {
		case err == nil:
			records = append(records, rec)
		case errors.Is(err, ErrNoCategoryValue):
			stats.MissingValue++
		case errors.Is(err, ErrNoDate):
			stats.MissingDate++
		case errors.Is(err, ErrBadDate):
			stats.BadDate++
		}
	}
	return records, stats
}

// parseServiceDate parses the accepted date shapes and truncates the result
// to a calendar date in UTC. RFC3339 timestamps from newer EHR exports are
// accepted and truncated the same way.
func parseServiceDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if strings.ContainsRune(s, 'T') {
		if ts, err := time.Parse(time.RFC3339, s); err == nil {
			return toDate(ts), nil
		}
	}
	for _, layout := range serviceDateLayouts {
		if ts, err := time.Parse(layout, s); err == nil {
			return toDate(ts), nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date %q", s)
}

func toDate(ts time.Time) time.Time {
	return time.Date(ts.Year(), ts.Month(), ts.Day(), 0, 0, 0, 0, time.UTC)
}
