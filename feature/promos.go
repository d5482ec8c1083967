package feature

import (
	"time"

	"github.com/LLrodyaLL/predictive-analytics-project/core"
)

// 促销时间戳的候选格式：带时区的 ISO、无时区的 ISO、纯日期。
var promoDateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// PromoDays 统计所有促销覆盖的去重自然日数量。
//
// 每个促销把 [start_date, end_date] 闭区间内的每个自然日放进集合，
// 多个促销的重叠日期只算一次。起止任一时间戳解析失败时只跳过
// 该条促销，不影响其余促销的统计。
func PromoDays(promos []core.Promo) int {
	dates := make(map[time.Time]struct{})
	for _, promo := range promos {
		start, err := parsePromoDate(promo.StartDate)
		if err != nil {
			continue
		}
		end, err := parsePromoDate(promo.EndDate)
		if err != nil {
			continue
		}
		for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
			dates[d] = struct{}{}
		}
	}
	return len(dates)
}

// parsePromoDate 解析时间戳并归一化到自然日（UTC 零点）。
func parsePromoDate(s string) (time.Time, error) {
	var lastErr error
	for _, layout := range promoDateLayouts {
		t, err := time.Parse(layout, s)
		if err == nil {
			return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), nil
		}
		lastErr = err
	}
	return time.Time{}, lastErr
}
