package core

import "context"

// DataSource 是外部分析服务的领域接口。
//
// 设计原则：
//   - 定义在领域层（core），由基础设施层（wildbox）实现
//   - 每个方法对应一个独立的数据拉取：返回 nil/空切片 表示“无数据”，
//     返回 error 表示传输或数据形状失败——对抽取器而言两者等价，
//     都退化为字段默认值
//   - 每次调用自行限定等待时间，超时与其他失败同类处理，绝不无限挂起
type DataSource interface {
	// FetchProduct 拉取商品的商业/品牌/促销/可见性动态数据。
	FetchProduct(ctx context.Context, productID int64) (*ProductDetails, error)

	// FetchBrand 拉取品牌数据。
	FetchBrand(ctx context.Context, brandID int64) (*BrandDetails, error)

	// FetchGeoAvailability 拉取商品在固定区域列表下的可用性采样。
	FetchGeoAvailability(ctx context.Context, productID int64) (*GeoAvailability, error)

	// FetchWarehouses 拉取当前备有该商品的仓库名列表（已去重）。
	FetchWarehouses(ctx context.Context, productID int64) ([]string, error)

	// FetchPositions 拉取 (product, query) 的原始搜索位置观测记录。
	FetchPositions(ctx context.Context, productID int64, query string) ([]PositionRecord, error)
}

// ProductDetails 是商品详情的显式可选字段 schema。
// 上游 API 的字段都可能缺失，统一用指针表达“未提供”，
// 抽取器在指针为 nil 时落到字段默认值。
type ProductDetails struct {
	Orders         *float64 `json:"orders"`
	Proceeds       *float64 `json:"proceeds"` // 营收（revenue 的上游字段名）
	Price          *float64 `json:"price"`
	Discount       *float64 `json:"discount"`
	OldPrice       *float64 `json:"old_price"`
	Rating         *float64 `json:"rating"`
	InStockPercent *float64 `json:"in_stock_percent"`

	// 评论数有两个候选字段，reviews 优先，feedbacks 兜底。
	Reviews   *float64 `json:"reviews"`
	Feedbacks *float64 `json:"feedbacks"`

	Promos  []Promo      `json:"promos"`
	Brand   *BrandRef    `json:"brand"`
	Dynamic []DynamicDay `json:"dynamic"`
}

// BrandRef 是商品详情中内嵌的品牌引用。
type BrandRef struct {
	ID int64 `json:"id"`
}

// DynamicDay 是按日的可见性动态，sum_views 由各日 visibility 累加得到。
type DynamicDay struct {
	Visibility float64 `json:"visibility"`
}

// Promo 是一次促销的起止时间戳（ISO 格式文本，解析失败只跳过该条）。
type Promo struct {
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
}

// BrandDetails 是品牌数据（查不到时品牌特征记 0）。
type BrandDetails struct {
	Rating  *float64 `json:"rating"`
	Reviews *float64 `json:"reviews"`
}

// GeoAvailability 是按区域的可用性采样集合。
type GeoAvailability struct {
	Results []RegionAvailability `json:"results"`
}

// RegionAvailability 是单个区域的采样列表；采样数为 0 的区域
// 不参与可见性均值（既不计分也不占分母）。
type RegionAvailability struct {
	Availability []AvailabilitySample `json:"availability"`
}

// AvailabilitySample 是一次可用性采样。
type AvailabilitySample struct {
	IsAvailable *bool `json:"is_availability"`
}

// PositionRecord 是一条原始搜索位置观测。
//
// 上游对“位置数字”用过多个字段名，且值类型不稳定（数字或数字文本），
// 所以字段保留为 any，由抽取逻辑按固定优先级解析：
// expected_position → position → general_position → pos。
// 这一顺序是契约：同时带 position 与 expected_position 的记录
// 必须取 expected_position。
type PositionRecord struct {
	ExpectedPosition any `json:"expected_position"`
	Position         any `json:"position"`
	GeneralPosition  any `json:"general_position"`
	Pos              any `json:"pos"`
}
