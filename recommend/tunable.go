package recommend

import "github.com/LLrodyaLL/predictive-analytics-project/core"

// Tunable 是一个可调特征：扰动步长加上下界（边界可以单侧开放）。
// 只有这张封闭表里的特征才参与敏感性扫描。
type Tunable struct {
	Feature string
	Step    float64
	Min     *float64 // nil 表示下界开放
	Max     *float64 // nil 表示上界开放
}

// Clamp 把候选值夹进 [Min, Max]。
func (t Tunable) Clamp(v float64) float64 {
	if t.Min != nil && v < *t.Min {
		v = *t.Min
	}
	if t.Max != nil && v > *t.Max {
		v = *t.Max
	}
	return v
}

func bound(v float64) *float64 { return &v }

// DefaultTunables 是默认的可调特征表。
//
// 声明顺序有语义：improvement 相同的候选按这里的先后出现在结果里
// （稳定排序，先声明者优先），所以调整顺序会改变并列时的输出。
func DefaultTunables() []Tunable {
	return []Tunable{
		{Feature: core.FeaturePrice, Step: -100, Min: bound(0)},
		{Feature: core.FeatureDiscount, Step: 5, Min: bound(0), Max: bound(70)},
		{Feature: core.FeatureRating, Step: 0.1, Min: bound(0), Max: bound(5)},
		{Feature: core.FeatureInStockPercent, Step: 5, Min: bound(0), Max: bound(100)},
		{Feature: core.FeaturePromoDays, Step: 5, Min: bound(0), Max: bound(31)},
		{Feature: core.FeatureAvgVisibility, Step: 0.05, Min: bound(0), Max: bound(2)},
		{Feature: core.FeatureReviewsLastDay, Step: 10, Min: bound(0)},
		{Feature: core.FeatureAvgDeliveryTime, Step: -1, Min: bound(20)},
		{Feature: core.DeliveryFeature(core.RegionSouth), Step: -2, Min: bound(20)},
		{Feature: core.DeliveryFeature(core.RegionVolga), Step: -2, Min: bound(20)},
		{Feature: core.DeliveryFeature(core.RegionCentral), Step: -2, Min: bound(20)},
	}
}
