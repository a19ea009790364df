package normalizer

import (
	"errors"
	"testing"
	"time"

	"github.com/carelens-ai/platform/pkg/common/models"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestNormalizeResolvesLegacyFieldNames(t *testing.T) {
	n := New(DefaultFieldMap())

	// Rows from three export eras describing the same mention.
	rows := []map[string]interface{}{
		{
			"segment":         "Food Insecurity",
			"date_of_service": "2024-03-05",
			"patient_id":      "p-1",
		},
		{
			"symptom_segment": "Food Insecurity",
			"dos":             "3/5/2024",
			"mrn":             "p-1",
		},
		{
			"Symptom":         "Food Insecurity",
			"Date of Service": "3/5/24",
			"Patient ID":      "p-1",
		},
	}

	want := day(2024, time.March, 5)
	for i, row := range rows {
		rec, err := n.Normalize(row)
		if err != nil {
			t.Fatalf("row %d: unexpected error: %v", i, err)
		}
		if rec.CategoryValue != "Food Insecurity" {
			t.Errorf("row %d: category = %q, want Food Insecurity", i, rec.CategoryValue)
		}
		if !rec.DateOfService.Equal(want) {
			t.Errorf("row %d: date = %v, want %v", i, rec.DateOfService, want)
		}
		if rec.PatientID != "p-1" {
			t.Errorf("row %d: patient = %q, want p-1", i, rec.PatientID)
		}
	}
}

func TestNormalizeFirstCandidateWins(t *testing.T) {
	n := New(DefaultFieldMap())

	rec, err := n.Normalize(map[string]interface{}{
		"segment":         "Transportation",
		"symptom_segment": "Housing Instability",
		"date_of_service": "2024-01-02",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.CategoryValue != "Transportation" {
		t.Errorf("category = %q, want Transportation (earlier candidate)", rec.CategoryValue)
	}
}

func TestNormalizeRejections(t *testing.T) {
	n := New(DefaultFieldMap())

	tests := []struct {
		name string
		row  map[string]interface{}
		want error
	}{
		{
			name: "no category value",
			row:  map[string]interface{}{"date_of_service": "2024-01-02"},
			want: ErrNoCategoryValue,
		},
		{
			name: "blank category value",
			row:  map[string]interface{}{"segment": "  ", "date_of_service": "2024-01-02"},
			want: ErrNoCategoryValue,
		},
		{
			name: "no date",
			row:  map[string]interface{}{"segment": "Transportation"},
			want: ErrNoDate,
		},
		{
			name: "garbage date",
			row:  map[string]interface{}{"segment": "Transportation", "date_of_service": "yesterday"},
			want: ErrBadDate,
		},
		{
			name: "month out of range",
			row:  map[string]interface{}{"segment": "Transportation", "date_of_service": "13/40/2024"},
			want: ErrBadDate,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := n.Normalize(tt.row)
			if !errors.Is(err, tt.want) {
				t.Errorf("error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestNormalizeDateShapes(t *testing.T) {
	n := New(DefaultFieldMap())

	tests := []struct {
		in   string
		want time.Time
	}{
		{"2024-03-05", day(2024, time.March, 5)},
		{"3/5/2024", day(2024, time.March, 5)},
		{"03/05/2024", day(2024, time.March, 5)},
		{"3/5/24", day(2024, time.March, 5)},
		{"12/31/99", day(1999, time.December, 31)},
		{"2024-03-05T14:30:00Z", day(2024, time.March, 5)},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			rec, err := n.Normalize(map[string]interface{}{
				"segment":         "Transportation",
				"date_of_service": tt.in,
			})
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !rec.DateOfService.Equal(tt.want) {
				t.Errorf("date = %v, want %v", rec.DateOfService, tt.want)
			}
		})
	}
}

func TestNormalizeKindAndHrsnFlag(t *testing.T) {
	n := New(DefaultFieldMap())

	tests := []struct {
		name     string
		row      map[string]interface{}
		wantKind models.MentionKind
		wantHrsn bool
	}{
		{
			name:     "default kind is symptom",
			row:      map[string]interface{}{},
			wantKind: models.KindSymptom,
			wantHrsn: false,
		},
		{
			name:     "problem kind is always hrsn",
			row:      map[string]interface{}{"mention_kind": "Problem"},
			wantKind: models.KindProblem,
			wantHrsn: true,
		},
		{
			name:     "problem kind is case insensitive",
			row:      map[string]interface{}{"mention_kind": "PROBLEM"},
			wantKind: models.KindProblem,
			wantHrsn: true,
		},
		{
			name:     "z-code indicator marks symptom as hrsn",
			row:      map[string]interface{}{"classification": "z-code"},
			wantKind: models.KindSymptom,
			wantHrsn: true,
		},
		{
			name:     "other indicator does not",
			row:      map[string]interface{}{"classification": "clinical"},
			wantKind: models.KindSymptom,
			wantHrsn: false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.row["segment"] = "Transportation"
			tt.row["date_of_service"] = "2024-01-02"
			rec, err := n.Normalize(tt.row)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if rec.Kind != tt.wantKind {
				t.Errorf("kind = %q, want %q", rec.Kind, tt.wantKind)
			}
			if rec.HrsnFlag != tt.wantHrsn {
				t.Errorf("hrsn = %v, want %v", rec.HrsnFlag, tt.wantHrsn)
			}
		})
	}
}

func TestNormalizePosition(t *testing.T) {
	n := New(DefaultFieldMap())

	tests := []struct {
		name string
		row  map[string]interface{}
		want int
	}{
		{name: "absent defaults to zero", row: map[string]interface{}{}, want: 0},
		{name: "explicit zero stays zero", row: map[string]interface{}{"position": 0}, want: 0},
		{name: "json number", row: map[string]interface{}{"position": float64(7)}, want: 7},
		{name: "string number", row: map[string]interface{}{"position": "12"}, want: 12},
		{name: "negative clamps to zero", row: map[string]interface{}{"position": -3}, want: 0},
		{name: "unparseable defaults to zero", row: map[string]interface{}{"position": "start"}, want: 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.row["segment"] = "Transportation"
			tt.row["date_of_service"] = "2024-01-02"
			rec, err := n.Normalize(tt.row)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if rec.PositionInText != tt.want {
				t.Errorf("position = %d, want %d", rec.PositionInText, tt.want)
			}
		})
	}
}

func TestNormalizeLinkedFields(t *testing.T) {
	n := New(DefaultFieldMap())

	rec, err := n.Normalize(map[string]interface{}{
		"segment":             "Housing Instability",
		"date_of_service":     "2024-01-02",
		"diagnosis":           "Unspecified anxiety disorder",
		"diagnostic_category": "Behavioral Health",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.LinkedDiagnosis != "Unspecified anxiety disorder" {
		t.Errorf("diagnosis = %q", rec.LinkedDiagnosis)
	}
	if rec.LinkedDiagnosticCategory != "Behavioral Health" {
		t.Errorf("diagnostic category = %q", rec.LinkedDiagnosticCategory)
	}
}

func TestNormalizeAllCountsRejections(t *testing.T) {
	n := New(DefaultFieldMap())

	rows := []map[string]interface{}{
		{"segment": "Transportation", "date_of_service": "2024-01-02"},
		{"date_of_service": "2024-01-02"},
		{"segment": "Transportation"},
		{"segment": "Transportation", "date_of_service": "not a date"},
		{"segment": "Food Insecurity", "date_of_service": "1/9/24"},
	}

	records, stats := n.NormalizeAll(rows)
	if len(records) != 2 {
		t.Fatalf("got %d records, want 2", len(records))
	}
	if stats.MissingValue != 1 || stats.MissingDate != 1 || stats.BadDate != 1 {
		t.Errorf("stats = %+v, want one of each", stats)
	}
	if stats.Total() != 3 {
		t.Errorf("total = %d, want 3", stats.Total())
	}

	counts := stats.Counts()
	for _, reason := range []string{"missing_value", "missing_date", "bad_date"} {
		if counts[reason] != 1 {
			t.Errorf("counts[%s] = %d, want 1", reason, counts[reason])
		}
	}
}

func TestRejectStatsCountsOmitsZeroes(t *testing.T) {
	counts := (RejectStats{BadDate: 2}).Counts()
	if len(counts) != 1 || counts["bad_date"] != 2 {
		t.Errorf("counts = %v, want only bad_date=2", counts)
	}
}
