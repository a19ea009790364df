package scale

import (
	"github.com/carelens-ai/platform/pkg/common/models"
)

// tierBands is the number of non-empty color bands; tier 0 is reserved for
// empty cells.
const tierBands = 7

// TierCount is the total number of color tiers including the empty tier,
// exported so renderers can size their palettes.
const TierCount = tierBands + 1

// smallRangeMax is the largest running max for which every integer value
// gets its own tier instead of a proportional band.
const smallRangeMax = 5

// TierFor maps a cell value to a color tier given the running maximum of
// the table being rendered. Zero always maps to the empty tier. Small
// ranges assign one tier per integer so a table of ones and twos still
// shows contrast; larger ranges divide [1, runningMax] into proportional
// bands. Monotonic in value for a fixed runningMax.
func TierFor(value, runningMax int) int {
	if value <= 0 {
		return 0
	}
	if runningMax < value {
		runningMax = value
	}
	if runningMax <= smallRangeMax {
		return value
	}
	tier := (value*tierBands + runningMax - 1) / runningMax
	if tier < 1 {
		tier = 1
	}
	if tier > tierBands {
		tier = tierBands
	}
	return tier
}

// RadiusCeiling is the largest bubble radius, in pixels, reached at values
// of ten and above.
const RadiusCeiling = 26

// radiusSteps holds the hand-tuned radius per value from zero upward. The
// bubble chart reads relative frequency off radius ordering, so the steps
// must never decrease.
var radiusSteps = []int{0, 4, 7, 9, 11, 13, 16, 19, 21, 23, RadiusCeiling}

// RadiusFor maps a cell value to a bubble radius in pixels. Zero stays
// zero so empty cells draw nothing.
func RadiusFor(value int) int {
	if value <= 0 {
		return 0
	}
	if value >= len(radiusSteps) {
		return RadiusCeiling
	}
	return radiusSteps[value]
}

// Decorate computes per-cell rendering buckets for a pivot table. Tier and
// radius slices are aligned with the table's column order, one slice per
// row, so renderers can walk columns by index.
func Decorate(table models.PivotTable) *models.Rendering {
	r := &models.Rendering{
		TierCount: TierCount,
		Tiers:     make(map[string][]int, len(table.Rows)),
		Radii:     make(map[string][]int, len(table.Rows)),
	}
	for _, row := range table.Rows {
		tiers := make([]int, len(table.Columns))
		radii := make([]int, len(table.Columns))
		for i, col := range table.Columns {
			v := table.Cells[row][col]
			tiers[i] = TierFor(v, table.MaxCell)
			radii[i] = RadiusFor(v)
		}
		r.Tiers[row] = tiers
		r.Radii[row] = radii
	}
	return r
}
