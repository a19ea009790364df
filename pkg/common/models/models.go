package models

import (
	"time"
)

// Upstream data models
type MentionBatchRequest struct {
	Source    string                   `json:"source"` // ehr-export, csv-upload, partner-feed
	Era       string                   `json:"era,omitempty"`
	PatientID string                   `json:"patient_id,omitempty"`
	Rows      []map[string]interface{} `json:"rows"`
	Metadata  map[string]string        `json:"metadata,omitempty"`
}

type MentionBatchResponse struct {
	BatchID   string    `json:"batch_id"`
	Status    string    `json:"status"`
	RowCount  int       `json:"row_count"`
	Timestamp time.Time `json:"timestamp"`
}

// Event Bus models
type Event struct {
	ID        string                 `json:"id"`
	Type      string                 `json:"type"` // mention-batch, note-classified
	Source    string                 `json:"source"`
	Data      map[string]interface{} `json:"data"`
	Timestamp time.Time              `json:"timestamp"`
	Metadata  map[string]string      `json:"metadata,omitempty"`
}

// EventMentionBatch announces that an upload batch landed in storage.
const EventMentionBatch = "mention-batch"

// Classification
type ClassifyRequest struct {
	Text string `json:"text"`
}

// CategorySummary describes one taxonomy category for dashboard legends:
// the name plus how many trigger phrases back it, without the phrases
// themselves.
type CategorySummary struct {
	Name         string `json:"name"`
	TriggerCount int    `json:"trigger_count"`
}

type ClassifyResponse struct {
	Categories []string          `json:"categories"`
	Flags      map[string]string `json:"flags"` // category -> "Yes"
}

// MentionKind distinguishes symptom mentions from problem-list entries.
type MentionKind string

const (
	KindSymptom MentionKind = "Symptom"
	KindProblem MentionKind = "Problem"
)

// MentionRecord is the canonical form of one mention after normalization.
// DateOfService is truncated to a calendar date in UTC; rows that could not
// resolve a parseable date never become MentionRecords.
type MentionRecord struct {
	PatientID                string      `json:"patient_id"`
	DateOfService            time.Time   `json:"date_of_service"`
	CategoryValue            string      `json:"category_value"`
	Kind                     MentionKind `json:"kind"`
	HrsnFlag                 bool        `json:"hrsn_flag"`
	PositionInText           int         `json:"position_in_text"`
	LinkedDiagnosis          string      `json:"linked_diagnosis,omitempty"`
	LinkedDiagnosticCategory string      `json:"linked_diagnostic_category,omitempty"`
}

// DateLabel renders the service date as the column label used by pivot
// tables. ISO dates sort chronologically as plain strings.
func (m MentionRecord) DateLabel() string {
	return m.DateOfService.Format("2006-01-02")
}

// PivotTable is a dense row x column frequency matrix. Every (row, column)
// pair in Rows x Columns has an explicit entry in Cells, zero included, so
// consumers never need presence checks. RowTotals carries the totals the
// rows were ranked by; by construction each equals the sum of that row's
// cells.
type PivotTable struct {
	Columns   []string                  `json:"columns"`
	Rows      []string                  `json:"rows"`
	Cells     map[string]map[string]int `json:"cells"`
	RowTotals map[string]int            `json:"row_totals"`
	MaxCell   int                       `json:"max_cell"`
}

// EmptyPivotTable returns the shaped zero value: empty slices and maps,
// never nil, so "no data" needs no special casing downstream.
func EmptyPivotTable() PivotTable {
	return PivotTable{
		Columns:   []string{},
		Rows:      []string{},
		Cells:     map[string]map[string]int{},
		RowTotals: map[string]int{},
	}
}

// Pivot serving models
type PivotRequest struct {
	Kind       string   `json:"kind"`
	PatientIDs []string `json:"patient_ids,omitempty"`
	MaxRows    int      `json:"max_rows,omitempty"`
	Decorate   bool     `json:"decorate,omitempty"`
}

type PivotMeta struct {
	Kind        string         `json:"kind"`
	RowsFetched int            `json:"rows_fetched"`
	Rejected    map[string]int `json:"rejected,omitempty"`
	CacheHit    bool           `json:"cache_hit"`
	ComputedAt  time.Time      `json:"computed_at"`
}

// Rendering carries per-cell presentation buckets aligned with the pivot:
// Tiers[row][i] is the color tier for Cells[row][Columns[i]], Radii[row][i]
// the bubble radius for the same cell.
type Rendering struct {
	TierCount int              `json:"tier_count"`
	Tiers     map[string][]int `json:"tiers"`
	Radii     map[string][]int `json:"radii"`
}

type PivotResponse struct {
	Pivot     PivotTable `json:"pivot"`
	Rendering *Rendering `json:"rendering,omitempty"`
	Meta      PivotMeta  `json:"meta"`
}
