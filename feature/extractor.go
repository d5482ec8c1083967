// Package feature 实现特征抽取流水线：给定 (product, query, 物流矩阵)，
// 产出一条结构完整的 core.FeatureRecord。
//
// 错误策略（整个包的第一设计约束）：
//   - 对外部数据源的每个子拉取都在本地捕获失败（拉取出错、字段缺失、
//     值形状不对），带 product_id 上下文记日志，然后让相应字段退化为
//     文档化的默认值
//   - Extract 对单个商品永不失败：批量处理成百上千个商品时，
//     一个商品的失败不能中断其余商品
//   - 唯一的前置校验是物流矩阵：矩阵不合法在构造抽取器时就拒绝
package feature

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/LLrodyaLL/predictive-analytics-project/core"
	"github.com/LLrodyaLL/predictive-analytics-project/logistics"
	"github.com/LLrodyaLL/predictive-analytics-project/metrics"
)

// Extractor 把外部数据源与物流矩阵组装成特征记录。
// matrix 在整个批次内只读共享，Extract 可以被多个 worker 并发调用。
type Extractor struct {
	source core.DataSource
	matrix *logistics.Matrix
	logger zerolog.Logger
}

// Option 抽取器配置选项
type Option func(*Extractor)

// WithLogger 设置日志器（默认 zerolog.Nop）
func WithLogger(logger zerolog.Logger) Option {
	return func(e *Extractor) {
		e.logger = logger
	}
}

// NewExtractor 创建抽取器。
// source 与 matrix 是硬前置条件：任一缺失直接返回 INVALID_INPUT，
// 这是批次开始前唯一会被拒绝的输入。
func NewExtractor(source core.DataSource, matrix *logistics.Matrix, opts ...Option) (*Extractor, error) {
	if source == nil {
		return nil, core.NewDomainError(core.ModuleFeature, core.ErrorCodeInvalidInput,
			"extractor: data source is required")
	}
	if matrix == nil {
		return nil, core.NewDomainError(core.ModuleFeature, core.ErrorCodeInvalidInput,
			"extractor: logistics matrix is required")
	}

	e := &Extractor{
		source: source,
		matrix: matrix,
		logger: zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e, nil
}

// Extract 为一个 (product, query) 产出完整特征记录，永不失败。
//
// 四路子拉取之间没有数据依赖（品牌拉取依赖商品详情，跟在同一路里），
// 所以并发执行；每一路内部自行降级，goroutine 永远返回 nil。
func (e *Extractor) Extract(ctx context.Context, productID int64, query string) *core.FeatureRecord {
	start := time.Now()
	rec := core.NewFeatureRecord(productID, query)

	var degraded atomic.Bool
	fail := func(op string, err error) {
		degraded.Store(true)
		metrics.ExtractionFailuresTotal.WithLabelValues(op).Inc()
		e.logger.Error().Err(err).
			Int64("product_id", productID).
			Str("operation", op).
			Msg("sub-fetch degraded to defaults")
	}

	var eg errgroup.Group

	// 商品详情 → 商业指标/促销/可见性动态，以及内嵌的品牌拉取
	eg.Go(func() error {
		product, err := e.source.FetchProduct(ctx, productID)
		if err != nil {
			fail("product_details", err)
			return nil
		}
		if product == nil {
			return nil // 空结果：所有商品字段保持默认值
		}
		e.applyProduct(rec, product)

		if product.Brand == nil {
			return nil
		}
		brand, err := e.source.FetchBrand(ctx, product.Brand.ID)
		if err != nil {
			fail("brand_details", err)
			return nil
		}
		if brand != nil {
			rec.BrandRating = deref(brand.Rating)
			rec.BrandReviews = deref(brand.Reviews)
		}
		return nil
	})

	// 地理可见性评分
	eg.Go(func() error {
		geo, err := e.source.FetchGeoAvailability(ctx, productID)
		if err != nil {
			fail("geo_visibility", err)
			return nil
		}
		rec.AvgVisibility = VisibilityScore(geo)
		return nil
	})

	// 仓库列表 → 主仓库 + 配送特征
	eg.Go(func() error {
		warehouses, err := e.source.FetchWarehouses(ctx, productID)
		if err != nil {
			fail("warehouses", err)
			warehouses = nil // 配送特征照常计算，走默认仓库
		}
		if len(warehouses) > 0 {
			rec.MainWarehouse = warehouses[0]
		}
		e.applyDelivery(rec, warehouses)
		return nil
	})

	// 搜索位置观测
	eg.Go(func() error {
		positions, err := e.source.FetchPositions(ctx, productID, query)
		if err != nil {
			fail("positions", err)
			return nil
		}
		applyPositions(rec, positions)
		return nil
	})

	_ = eg.Wait() // 每一路都只返回 nil

	outcome := metrics.OutcomeComplete
	if degraded.Load() {
		outcome = metrics.OutcomeDegraded
	}
	metrics.ExtractionsTotal.WithLabelValues(outcome).Inc()
	metrics.ExtractionDuration.Observe(time.Since(start).Seconds())

	e.logger.Info().
		Int64("product_id", productID).
		Str("query", query).
		Str("outcome", outcome).
		Dur("took", time.Since(start)).
		Msg("feature record extracted")
	return rec
}

// applyProduct 把商品详情映射到商业/促销/可见性字段。
func (e *Extractor) applyProduct(rec *core.FeatureRecord, product *core.ProductDetails) {
	rec.Orders = deref(product.Orders)
	rec.Revenue = deref(product.Proceeds)
	rec.Price = deref(product.Price)
	rec.Discount = deref(product.Discount)
	rec.OldPrice = deref(product.OldPrice)
	rec.Rating = deref(product.Rating)
	rec.InStockPercent = deref(product.InStockPercent)
	rec.LoyaltyLevel = LoyaltyLevel(rec.Revenue)

	// reviews 优先，feedbacks 兜底
	switch {
	case product.Reviews != nil:
		rec.ReviewsLastDay = *product.Reviews
	case product.Feedbacks != nil:
		rec.ReviewsLastDay = *product.Feedbacks
	}

	if len(product.Promos) > 0 {
		rec.HasPromos = 1
	}
	rec.PromoDays = PromoDays(product.Promos)

	for _, day := range product.Dynamic {
		rec.SumViews += day.Visibility
	}
}

func deref(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}

func mean(values []float64) float64 {
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}
