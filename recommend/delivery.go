package recommend

import (
	"fmt"
	"sort"

	"github.com/LLrodyaLL/predictive-analytics-project/core"
)

// deliveryTargetCut 是给短板管区的目标值：比现状低 5 小时。
const deliveryTargetCut = 5

// RegionDelivery 是一个管区的配送时长。
type RegionDelivery struct {
	Region core.Region `json:"region"`
	Hours  int         `json:"hours"`
}

// DeliveryDiagnosis 是配送短板诊断：点名配送最慢的管区，
// 附一组固定话术的物流建议和一个目标时长。
type DeliveryDiagnosis struct {
	Regions     []RegionDelivery `json:"regions"` // 按时长降序
	WorstRegion core.Region      `json:"worst_region"`
	WorstHours  int              `json:"worst_hours"`
	TargetHours int              `json:"target_hours"`
	Advice      []string         `json:"advice"`
}

// DiagnoseDelivery 在记录的全部管区配送列中选出时长最大的管区。
//
// 注意方向：这里选的是“最差”的管区（时长越大越差），与建议排序的
// 改进最大化方向相反——配送诊断关心短板，不关心边际收益。
func DiagnoseDelivery(rec *core.FeatureRecord) *DeliveryDiagnosis {
	regions := make([]RegionDelivery, 0, len(core.Regions))
	for _, region := range core.Regions {
		regions = append(regions, RegionDelivery{
			Region: region,
			Hours:  rec.DeliveryHours[region],
		})
	}
	// 稳定排序：时长相同的管区按 core.Regions 的声明顺序。
	sort.SliceStable(regions, func(i, j int) bool {
		return regions[i].Hours > regions[j].Hours
	})

	worst := regions[0]
	return &DeliveryDiagnosis{
		Regions:     regions,
		WorstRegion: worst.Region,
		WorstHours:  worst.Hours,
		TargetHours: worst.Hours - deliveryTargetCut,
		Advice: []string{
			fmt.Sprintf("optimize logistics in %s", worst.Region),
			fmt.Sprintf("consider additional warehouses in %s", worst.Region),
			fmt.Sprintf("target delivery time: %d hours", worst.Hours-deliveryTargetCut),
		},
	}
}
