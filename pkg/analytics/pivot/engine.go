package pivot

import (
	"sort"

	"github.com/carelens-ai/platform/pkg/common/models"
)

// DefaultMaxRows caps the row count when the caller passes no limit. The
// cap exists because symptom vocabularies run to thousands of distinct
// values and the renderers degrade well before that.
const DefaultMaxRows = 500

// Aggregate builds a dense category-by-date frequency matrix from
// normalized mention records. It is a pure function of its inputs.
//
// The pipeline runs in five ordered phases: filter records through the
// kind's predicate, count distinct dedup keys per row bucket, rank rows by
// total and truncate to maxRows, re-count the surviving rows per date, and
// finally reshape into a zero-filled matrix. Because every dedup key
// embeds the service date, a row's total always equals the sum of its
// cells.
//
// Ties in the ranking are broken by ascending row value so equal-total
// rows come back in a stable order regardless of input order. No survivors
// after filtering yields the shaped empty table, never an error.
func Aggregate(records []models.MentionRecord, kind Kind, maxRows int) models.PivotTable {
	if maxRows <= 0 {
		maxRows = DefaultMaxRows
	}

	// Pass 1: totals per row bucket, first sighting of each key counts.
	totals := make(map[string]int)
	seen := make(map[string]struct{}, len(records))
	for _, rec := range records {
		if !kind.matches(rec) {
			continue
		}
		row := kind.rowValue(rec)
		if row == "" {
			continue
		}
		key := kind.dedupKey(rec)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		totals[row]++
	}
	if len(totals) == 0 {
		return models.EmptyPivotTable()
	}

	// Rank by total descending, ties by row value ascending, then truncate.
	rows := make([]string, 0, len(totals))
	for row := range totals {
		rows = append(rows, row)
	}
	sort.Slice(rows, func(i, j int) bool {
		if totals[rows[i]] != totals[rows[j]] {
			return totals[rows[i]] > totals[rows[j]]
		}
		return rows[i] < rows[j]
	})
	if len(rows) > maxRows {
		rows = rows[:maxRows]
	}
	kept := make(map[string]bool, len(rows))
	for _, row := range rows {
		kept[row] = true
	}

	// Pass 2: per-date counts for surviving rows, same keys as pass 1.
	counts := make(map[string]map[string]int, len(rows))
	dates := make(map[string]struct{})
	cellSeen := make(map[string]struct{}, len(seen))
	for _, rec := range records {
		if !kind.matches(rec) {
			continue
		}
		row := kind.rowValue(rec)
		if !kept[row] {
			continue
		}
		key := kind.dedupKey(rec)
		if _, dup := cellSeen[key]; dup {
			continue
		}
		cellSeen[key] = struct{}{}

		date := rec.DateLabel()
		dates[date] = struct{}{}
		if counts[row] == nil {
			counts[row] = make(map[string]int)
		}
		counts[row][date]++
	}

	// ISO date labels sort chronologically as strings.
	columns := make([]string, 0, len(dates))
	for date := range dates {
		columns = append(columns, date)
	}
	sort.Strings(columns)

	// Reshape into the dense matrix, zero-filling absent pairs.
	cells := make(map[string]map[string]int, len(rows))
	rowTotals := make(map[string]int, len(rows))
	maxCell := 0
	for _, row := range rows {
		cells[row] = make(map[string]int, len(columns))
		for _, col := range columns {
			n := counts[row][col]
			cells[row][col] = n
			if n > maxCell {
				maxCell = n
			}
		}
		rowTotals[row] = totals[row]
	}

	return models.PivotTable{
		Columns:   columns,
		Rows:      rows,
		Cells:     cells,
		RowTotals: rowTotals,
		MaxCell:   maxCell,
	}
}
