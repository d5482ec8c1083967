package feature

import (
	"github.com/LLrodyaLL/predictive-analytics-project/core"
)

// applyDelivery 填充每个管区的配送时长与平均配送时长。
//
// 仓库集合交给物流矩阵解析（匹配不到时矩阵内部退到默认仓库列表）；
// 没有有效最小值的管区保持 0，平均值只在至少有一个有效值时计算
// （截断到整数），避免除零。
func (e *Extractor) applyDelivery(rec *core.FeatureRecord, warehouses []string) {
	durations := e.matrix.MinDurations(warehouses)

	var valid []float64
	for _, region := range core.Regions {
		v, ok := durations[region]
		if !ok || v <= 0 {
			continue
		}
		rec.DeliveryHours[region] = int(v)
		valid = append(valid, v)
	}
	if len(valid) > 0 {
		rec.AvgDeliveryTime = int(mean(valid))
	}
}
