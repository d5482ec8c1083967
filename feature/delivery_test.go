package feature

import (
	"strings"
	"testing"

	"github.com/LLrodyaLL/predictive-analytics-project/core"
	"github.com/LLrodyaLL/predictive-analytics-project/logistics"
)

func testExtractor(t *testing.T, csv string) *Extractor {
	t.Helper()
	matrix, err := logistics.Parse(strings.NewReader(csv))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	e, err := NewExtractor(failingSource{}, matrix)
	if err != nil {
		t.Fatalf("NewExtractor() error = %v", err)
	}
	return e
}

func TestApplyDelivery(t *testing.T) {
	header := "warehouse,federal_district,south,volga,ural,far_east,siberia,north_west,central\n"

	t.Run("fills per-region hours and average", func(t *testing.T) {
		e := testExtractor(t, header+"Казань,ПФО,48,24,72,120,96,60,36\n")
		rec := core.NewFeatureRecord(1, "q")
		e.applyDelivery(rec, []string{"Казань"})

		if got := rec.DeliveryHours[core.RegionVolga]; got != 24 {
			t.Errorf("volga = %d, want 24", got)
		}
		if got := rec.DeliveryHours[core.RegionFarEast]; got != 120 {
			t.Errorf("far_east = %d, want 120", got)
		}
		// (48+24+72+120+96+60+36)/7 = 65.14..., truncated to 65
		if rec.AvgDeliveryTime != 65 {
			t.Errorf("AvgDeliveryTime = %d, want 65", rec.AvgDeliveryTime)
		}
	})

	t.Run("all durations unmeasured leaves zeros", func(t *testing.T) {
		e := testExtractor(t, header+"Казань,ПФО,1,1,0,1,1,0,1\n")
		rec := core.NewFeatureRecord(1, "q")
		e.applyDelivery(rec, []string{"Казань"})

		for _, region := range core.Regions {
			if rec.DeliveryHours[region] != 0 {
				t.Errorf("%s = %d, want 0", region, rec.DeliveryHours[region])
			}
		}
		if rec.AvgDeliveryTime != 0 {
			t.Errorf("AvgDeliveryTime = %d, want 0 (no division by zero)", rec.AvgDeliveryTime)
		}
	})

	t.Run("region without data keeps zero, average over the rest", func(t *testing.T) {
		e := testExtractor(t, header+"Казань,ПФО,48,,,,,,24\n")
		rec := core.NewFeatureRecord(1, "q")
		e.applyDelivery(rec, []string{"Казань"})

		if rec.DeliveryHours[core.RegionUral] != 0 {
			t.Errorf("ural = %d, want 0", rec.DeliveryHours[core.RegionUral])
		}
		// only south=48 and central=24 are valid: (48+24)/2 = 36
		if rec.AvgDeliveryTime != 36 {
			t.Errorf("AvgDeliveryTime = %d, want 36", rec.AvgDeliveryTime)
		}
	})
}
