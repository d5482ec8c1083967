package feature

import (
	"testing"

	"github.com/LLrodyaLL/predictive-analytics-project/core"
)

func TestPromoDays(t *testing.T) {
	tests := []struct {
		name   string
		promos []core.Promo
		want   int
	}{
		{
			name:   "no promos",
			promos: nil,
			want:   0,
		},
		{
			name: "single day promo",
			promos: []core.Promo{
				{StartDate: "2026-01-10", EndDate: "2026-01-10"},
			},
			want: 1,
		},
		{
			name: "inclusive range",
			promos: []core.Promo{
				{StartDate: "2026-01-01", EndDate: "2026-01-05"},
			},
			want: 5,
		},
		{
			// Jan 1-3 plus Jan 3-4: day 3 overlaps, {1,2,3,4} = 4 distinct days.
			name: "overlapping promos count distinct days",
			promos: []core.Promo{
				{StartDate: "2026-01-01", EndDate: "2026-01-03"},
				{StartDate: "2026-01-03", EndDate: "2026-01-04"},
			},
			want: 4,
		},
		{
			name: "disjoint promos add up",
			promos: []core.Promo{
				{StartDate: "2026-01-01", EndDate: "2026-01-02"},
				{StartDate: "2026-02-01", EndDate: "2026-02-03"},
			},
			want: 5,
		},
		{
			// The broken promo is skipped, the valid one still counts.
			name: "unparseable timestamp skips only that promo",
			promos: []core.Promo{
				{StartDate: "not-a-date", EndDate: "2026-01-05"},
				{StartDate: "2026-01-01", EndDate: "2026-01-02"},
			},
			want: 2,
		},
		{
			name: "timestamps with time component normalize to days",
			promos: []core.Promo{
				{StartDate: "2026-01-01T10:30:00", EndDate: "2026-01-02T23:59:59"},
			},
			want: 2,
		},
		{
			name: "RFC3339 timestamps",
			promos: []core.Promo{
				{StartDate: "2026-01-01T00:00:00Z", EndDate: "2026-01-03T12:00:00Z"},
			},
			want: 3,
		},
		{
			// end before start yields an empty range, not a panic
			name: "inverted range counts nothing",
			promos: []core.Promo{
				{StartDate: "2026-01-05", EndDate: "2026-01-01"},
			},
			want: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := PromoDays(tt.promos); got != tt.want {
				t.Errorf("PromoDays() = %d, want %d", got, tt.want)
			}
		})
	}
}
