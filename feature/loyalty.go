package feature

import "github.com/LLrodyaLL/predictive-analytics-project/core"

// loyaltyBands 是按营收的会员分档，阈值严格降序。
// 判定从高档向低档扫描，第一个 threshold <= revenue 的档位胜出。
var loyaltyBands = []struct {
	Level     string
	Threshold float64
}{
	{core.LoyaltyGold, 8_709_000},
	{core.LoyaltySilver, 1_868_000},
	{core.LoyaltyBronze, 382_000},
	{core.LoyaltyStarter, 50_000},
}

// LoyaltyLevel 由营收推导会员等级。
// 恒有且仅有一个结果：低于所有阈值时为 LoyaltyNoData 哨兵值。
func LoyaltyLevel(revenue float64) string {
	for _, band := range loyaltyBands {
		if revenue >= band.Threshold {
			return band.Level
		}
	}
	return core.LoyaltyNoData
}
