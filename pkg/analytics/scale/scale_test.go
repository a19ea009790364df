package scale

import (
	"testing"

	"github.com/carelens-ai/platform/pkg/common/models"
)

func TestTierZeroIsEmptyTier(t *testing.T) {
	for _, max := range []int{0, 1, 5, 100} {
		if got := TierFor(0, max); got != 0 {
			t.Errorf("TierFor(0, %d) = %d, want 0", max, got)
		}
	}
}

func TestTierSmallRangeOneTierPerValue(t *testing.T) {
	for v := 1; v <= 5; v++ {
		if got := TierFor(v, 5); got != v {
			t.Errorf("TierFor(%d, 5) = %d, want %d", v, got, v)
		}
	}
}

func TestTierProportionalBands(t *testing.T) {
	tests := []struct {
		value, max, want int
	}{
		{1, 100, 1},
		{50, 100, 4},
		{100, 100, 7},
		{1, 7, 1},
		{7, 7, 7},
	}
	for _, tt := range tests {
		if got := TierFor(tt.value, tt.max); got != tt.want {
			t.Errorf("TierFor(%d, %d) = %d, want %d", tt.value, tt.max, got, tt.want)
		}
	}
}

func TestTierMonotonic(t *testing.T) {
	for _, max := range []int{3, 5, 6, 10, 37, 100} {
		prev := 0
		for v := 0; v <= max; v++ {
			tier := TierFor(v, max)
			if tier < prev {
				t.Fatalf("TierFor(%d, %d) = %d dropped below %d", v, max, tier, prev)
			}
			prev = tier
		}
	}
}

func TestTierNeverExceedsBandCount(t *testing.T) {
	for _, max := range []int{1, 5, 10, 1000} {
		for _, v := range []int{1, max, max + 5, max * 2} {
			if got := TierFor(v, max); got >= TierCount {
				t.Errorf("TierFor(%d, %d) = %d, exceeds tier count %d", v, max, got, TierCount)
			}
		}
	}
}

func TestRadiusZeroStaysZero(t *testing.T) {
	if got := RadiusFor(0); got != 0 {
		t.Errorf("RadiusFor(0) = %d, want 0", got)
	}
}

func TestRadiusNonDecreasing(t *testing.T) {
	for v := 0; v < 50; v++ {
		if RadiusFor(v) > RadiusFor(v+1) {
			t.Fatalf("RadiusFor(%d) = %d > RadiusFor(%d) = %d", v, RadiusFor(v), v+1, RadiusFor(v+1))
		}
	}
}

func TestRadiusCeiling(t *testing.T) {
	for _, v := range []int{10, 11, 500} {
		if got := RadiusFor(v); got != RadiusCeiling {
			t.Errorf("RadiusFor(%d) = %d, want ceiling %d", v, got, RadiusCeiling)
		}
	}
}

func TestDecorateAlignsWithColumns(t *testing.T) {
	table := models.PivotTable{
		Columns: []string{"2024-01-01", "2024-01-02"},
		Rows:    []string{"Anxiety"},
		Cells: map[string]map[string]int{
			"Anxiety": {"2024-01-01": 3, "2024-01-02": 0},
		},
		RowTotals: map[string]int{"Anxiety": 3},
		MaxCell:   3,
	}

	r := Decorate(table)
	if r.TierCount != TierCount {
		t.Errorf("tier count = %d, want %d", r.TierCount, TierCount)
	}
	tiers := r.Tiers["Anxiety"]
	if len(tiers) != 2 {
		t.Fatalf("tiers = %v, want one entry per column", tiers)
	}
	if tiers[0] != TierFor(3, 3) || tiers[1] != 0 {
		t.Errorf("tiers = %v, want [%d 0]", tiers, TierFor(3, 3))
	}
	radii := r.Radii["Anxiety"]
	if radii[0] != RadiusFor(3) || radii[1] != 0 {
		t.Errorf("radii = %v, want [%d 0]", radii, RadiusFor(3))
	}
}

func TestDecorateEmptyTable(t *testing.T) {
	r := Decorate(models.EmptyPivotTable())
	if len(r.Tiers) != 0 || len(r.Radii) != 0 {
		t.Errorf("decorated empty table = %+v, want empty maps", r)
	}
	if r.TierCount != TierCount {
		t.Errorf("tier count = %d, want %d", r.TierCount, TierCount)
	}
}
