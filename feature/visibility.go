package feature

import (
	"math"

	"github.com/LLrodyaLL/predictive-analytics-project/core"
)

// VisibilityScore 计算地理可见性评分，取值恒在 {0, 1, 2}。
//
// 每个有采样的区域单独打分：全部采样可用记 2，部分可用记 1，
// 全不可用记 0；零采样的区域既不计分也不占分母。对有效区域的
// 分数取平均后四舍五入到整数，再夹到 [0, 2]。
// 无数据（nil、空结果、没有任何有效区域）一律记 0。
func VisibilityScore(geo *core.GeoAvailability) int {
	if geo == nil || len(geo.Results) == 0 {
		return 0
	}

	total := 0
	validRegions := 0
	for _, region := range geo.Results {
		samples := len(region.Availability)
		if samples == 0 {
			continue
		}

		available := 0
		for _, s := range region.Availability {
			if s.IsAvailable != nil && *s.IsAvailable {
				available++
			}
		}

		switch {
		case available == samples:
			total += 2
		case available > 0:
			total += 1
		}
		validRegions++
	}

	if validRegions == 0 {
		return 0
	}

	score := int(math.Round(float64(total) / float64(validRegions)))
	if score < 0 {
		score = 0
	}
	if score > 2 {
		score = 2
	}
	return score
}
