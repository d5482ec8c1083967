package core

import "math"

// Region 是联邦管区（федеральный округ）的固定代码。
// 该集合是封闭的：特征抽取、物流矩阵 schema、推荐引擎的配送诊断
// 三者共享同一份代码表，任何一方都不得私自扩展。
type Region = string

const (
	RegionSouth     Region = "south"      // ЮФО 南部
	RegionVolga     Region = "volga"      // ПФО 伏尔加
	RegionUral      Region = "ural"       // УФО 乌拉尔
	RegionFarEast   Region = "far_east"   // ДФО 远东
	RegionSiberia   Region = "siberia"    // СФО 西伯利亚
	RegionNorthWest Region = "north_west" // СЗФО 西北
	RegionCentral   Region = "central"    // ЦФО 中央
)

// Regions 是七个联邦管区的固定顺序列表。
// 顺序即声明顺序，配送特征与诊断的遍历都以此为准（保证确定性）。
var Regions = []Region{
	RegionSouth,
	RegionVolga,
	RegionUral,
	RegionFarEast,
	RegionSiberia,
	RegionNorthWest,
	RegionCentral,
}

// 会员等级（по выручке 按营收分档）。
// 分档阈值在 feature 包中维护；这里只定义类别值，
// 因为预测模型把 loyalty_level 作为类别特征消费。
const (
	LoyaltyGold    = "gold"
	LoyaltySilver  = "silver"
	LoyaltyBronze  = "bronze"
	LoyaltyStarter = "starter"
	LoyaltyNoData  = "no_data" // 营收低于所有阈值或无数据时的哨兵值
)

// MainWarehouseUnknown 是主仓库未知时的哨兵值。
const MainWarehouseUnknown = "undetermined"

// FeatureRecord 是一条 (product, query) 的完整特征记录。
//
// 设计约束：
//   - 每个字段都有明确的默认值：即使所有上游数据源全部失败，
//     记录仍然结构完整，只是字段值退化为 0/nil/哨兵值
//   - 位置类特征（avg_position 等）仅用于报告展示，不进入模型输入
//   - DeliveryHours 的 key 恒为 Regions 中的七个代码，不多不少
type FeatureRecord struct {
	ProductID int64  `json:"product_id"`
	Query     string `json:"query"`

	// 商业指标
	Orders         float64 `json:"orders"`
	Revenue        float64 `json:"revenue"`
	Price          float64 `json:"price"`
	Discount       float64 `json:"discount"`
	OldPrice       float64 `json:"old_price"`
	Rating         float64 `json:"rating"`           // 0-5
	InStockPercent float64 `json:"in_stock_percent"` // 0-100
	ReviewsLastDay float64 `json:"reviews_last_day"`

	// 会员等级（类别特征）
	LoyaltyLevel string `json:"loyalty_level"`

	// 促销
	HasPromos int `json:"has_promos"` // 0/1
	PromoDays int `json:"promo_days"` // 去重后的自然日数量

	// 品牌
	BrandRating  float64 `json:"brand_rating"`
	BrandReviews float64 `json:"brand_reviews"`

	// 可见性
	SumViews      float64 `json:"sum_views"`
	AvgVisibility int     `json:"avg_visibility"` // 0/1/2

	// 物流
	DeliveryHours   map[Region]int `json:"delivery_hours"`
	AvgDeliveryTime int            `json:"avg_delivery_time"`

	// 搜索位置（仅报告用）
	AvgPosition        *float64 `json:"avg_position"`
	ExpectedPosition   *float64 `json:"expected_position"`
	PositionsCount     int      `json:"positions_count"`
	PositionsFound     int      `json:"positions_found"`
	FirstValidPosition *float64 `json:"first_valid_position"`
	MainWarehouse      string   `json:"main_warehouse"`
}

// NewFeatureRecord 创建一条全默认值的特征记录。
// 任何抽取流程都必须从这里出发，保证“字段永不缺席，只会退化”。
func NewFeatureRecord(productID int64, query string) *FeatureRecord {
	delivery := make(map[Region]int, len(Regions))
	for _, r := range Regions {
		delivery[r] = 0
	}
	return &FeatureRecord{
		ProductID:     productID,
		Query:         query,
		LoyaltyLevel:  LoyaltyNoData,
		DeliveryHours: delivery,
		MainWarehouse: MainWarehouseUnknown,
	}
}

// 模型输入的特征名常量。
// 推荐引擎的可调特征表引用这些名字，与 ModelInput 保持一致。
const (
	FeatureOrders          = "orders"
	FeatureRevenue         = "revenue"
	FeaturePrice           = "price"
	FeatureDiscount        = "discount"
	FeatureRating          = "rating"
	FeatureInStockPercent  = "in_stock_percent"
	FeatureBrandRating     = "brand_rating"
	FeatureBrandReviews    = "brand_reviews"
	FeaturePromoDays       = "promo_days"
	FeatureAvgVisibility   = "avg_visibility"
	FeatureSumViews        = "sum_views"
	FeatureHasPromos       = "has_promos"
	FeatureReviewsLastDay  = "reviews_last_day"
	FeatureAvgDeliveryTime = "avg_delivery_time"

	FeatureMainWarehouse = "main_warehouse"
	FeatureLoyaltyLevel  = "loyalty_level"
)

// DeliveryFeature 返回指定管区的配送特征名，如 "delivery_central"。
func DeliveryFeature(region Region) string {
	return "delivery_" + region
}

// ModelInput 是预测模型的精确输入 schema：数值特征 + 类别特征。
// 模型按名字消费特征，所以两个 map 的 key 集合是模型契约的一部分。
type ModelInput struct {
	Numeric     map[string]float64
	Categorical map[string]string
}

// Clone 深拷贝一份输入，用于敏感性扫描的单特征扰动
// （扰动作用在副本上，原始输入保持不变）。
func (in *ModelInput) Clone() *ModelInput {
	numeric := make(map[string]float64, len(in.Numeric))
	for k, v := range in.Numeric {
		numeric[k] = v
	}
	categorical := make(map[string]string, len(in.Categorical))
	for k, v := range in.Categorical {
		categorical[k] = v
	}
	return &ModelInput{Numeric: numeric, Categorical: categorical}
}

// ModelInput 构建预测模型的输入。
// 注意：位置类特征不在其中——模型训练集里没有这些列。
func (r *FeatureRecord) ModelInput() *ModelInput {
	numeric := map[string]float64{
		FeatureOrders:          r.Orders,
		FeatureRevenue:         r.Revenue,
		FeaturePrice:           r.Price,
		FeatureDiscount:        r.Discount,
		FeatureRating:          r.Rating,
		FeatureInStockPercent:  r.InStockPercent,
		FeatureBrandRating:     r.BrandRating,
		FeatureBrandReviews:    r.BrandReviews,
		FeaturePromoDays:       float64(r.PromoDays),
		FeatureAvgVisibility:   float64(r.AvgVisibility),
		FeatureSumViews:        r.SumViews,
		FeatureHasPromos:       float64(r.HasPromos),
		FeatureReviewsLastDay:  r.ReviewsLastDay,
		FeatureAvgDeliveryTime: float64(r.AvgDeliveryTime),
	}
	for _, region := range Regions {
		numeric[DeliveryFeature(region)] = float64(r.DeliveryHours[region])
	}
	return &ModelInput{
		Numeric: numeric,
		Categorical: map[string]string{
			FeatureMainWarehouse: r.MainWarehouse,
			FeatureLoyaltyLevel:  r.LoyaltyLevel,
		},
	}
}

// Round1 四舍五入到一位小数（avg_position 的展示精度约定）。
func Round1(v float64) float64 {
	return math.Round(v*10) / 10
}
