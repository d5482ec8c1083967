// Package batch 实现批量数据集构建：对一组 (product, query) 并发抽取
// 特征并导出 CSV 数据集。
//
// 商品之间天然可并行（除只读的物流矩阵外没有共享可变状态），
// worker 数量有上限，照顾上游数据源的速率承受力。
package batch

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/LLrodyaLL/predictive-analytics-project/core"
	"github.com/LLrodyaLL/predictive-analytics-project/feature"
)

// Request 是一个批次项：商品 + 搜索词。
type Request struct {
	ProductID int64
	Query     string
}

// Runner 驱动批量抽取。
type Runner struct {
	extractor     *feature.Extractor
	logger        zerolog.Logger
	maxConcurrent int
}

// RunnerOption 批处理配置选项
type RunnerOption func(*Runner)

// WithRunnerLogger 设置日志器（默认 zerolog.Nop）
func WithRunnerLogger(logger zerolog.Logger) RunnerOption {
	return func(r *Runner) {
		r.logger = logger
	}
}

// WithRunnerConcurrency 设置 worker 上限（默认 4）。
func WithRunnerConcurrency(n int) RunnerOption {
	return func(r *Runner) {
		r.maxConcurrent = n
	}
}

// NewRunner 创建批处理器。抽取器在构造时就带着已校验的物流矩阵，
// 所以这里没有额外的前置检查。
func NewRunner(extractor *feature.Extractor, opts ...RunnerOption) (*Runner, error) {
	if extractor == nil {
		return nil, core.NewDomainError(core.ModuleFeature, core.ErrorCodeInvalidInput,
			"runner: extractor is required")
	}
	r := &Runner{
		extractor:     extractor,
		logger:        zerolog.Nop(),
		maxConcurrent: 4,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r, nil
}

// BuildDataset 对每个批次项抽取一条特征记录，结果顺序与输入一致。
// 单个商品的失败在抽取器内部降级，这里永远拿到 len(reqs) 条记录。
func (r *Runner) BuildDataset(ctx context.Context, reqs []Request) []*core.FeatureRecord {
	records := make([]*core.FeatureRecord, len(reqs))

	var eg errgroup.Group
	limit := r.maxConcurrent
	if limit < 1 {
		limit = 1
	}
	eg.SetLimit(limit)

	for i, req := range reqs {
		eg.Go(func() error {
			r.logger.Info().
				Int64("product_id", req.ProductID).
				Str("query", req.Query).
				Msg("processing product")
			records[i] = r.extractor.Extract(ctx, req.ProductID, req.Query)
			return nil
		})
	}
	_ = eg.Wait()

	return records
}

// Merge 合并两批记录并按 (product_id, query) 去重，后来者覆盖先来者
// （重跑同一商品时新数据胜出）。输出保持首见顺序。
func Merge(batches ...[]*core.FeatureRecord) []*core.FeatureRecord {
	type key struct {
		id    int64
		query string
	}
	index := make(map[key]int)
	var merged []*core.FeatureRecord
	for _, batch := range batches {
		for _, rec := range batch {
			k := key{rec.ProductID, rec.Query}
			if pos, ok := index[k]; ok {
				merged[pos] = rec
				continue
			}
			index[k] = len(merged)
			merged = append(merged, rec)
		}
	}
	return merged
}

// csvHeader 是数据集的固定列顺序：标识列、模型输入列、报告列。
func csvHeader() []string {
	header := []string{
		"product_id", "query",
		core.FeatureOrders, core.FeatureRevenue, core.FeaturePrice,
		core.FeatureDiscount, "old_price", core.FeatureRating,
		core.FeatureInStockPercent, core.FeatureReviewsLastDay,
		core.FeatureLoyaltyLevel, core.FeatureHasPromos, core.FeaturePromoDays,
		core.FeatureBrandRating, core.FeatureBrandReviews,
		core.FeatureSumViews, core.FeatureAvgVisibility,
	}
	for _, region := range core.Regions {
		header = append(header, core.DeliveryFeature(region))
	}
	header = append(header,
		core.FeatureAvgDeliveryTime, core.FeatureMainWarehouse,
		"avg_position", "expected_position", "positions_count",
		"positions_found", "first_valid_position",
	)
	return header
}

// WriteCSV 把记录集导出为 CSV 数据集。
func WriteCSV(w io.Writer, records []*core.FeatureRecord) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(csvHeader()); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	for _, rec := range records {
		row := []string{
			strconv.FormatInt(rec.ProductID, 10),
			rec.Query,
			formatFloat(rec.Orders),
			formatFloat(rec.Revenue),
			formatFloat(rec.Price),
			formatFloat(rec.Discount),
			formatFloat(rec.OldPrice),
			formatFloat(rec.Rating),
			formatFloat(rec.InStockPercent),
			formatFloat(rec.ReviewsLastDay),
			rec.LoyaltyLevel,
			strconv.Itoa(rec.HasPromos),
			strconv.Itoa(rec.PromoDays),
			formatFloat(rec.BrandRating),
			formatFloat(rec.BrandReviews),
			formatFloat(rec.SumViews),
			strconv.Itoa(rec.AvgVisibility),
		}
		for _, region := range core.Regions {
			row = append(row, strconv.Itoa(rec.DeliveryHours[region]))
		}
		row = append(row,
			strconv.Itoa(rec.AvgDeliveryTime),
			rec.MainWarehouse,
			formatOptional(rec.AvgPosition),
			formatOptional(rec.ExpectedPosition),
			strconv.Itoa(rec.PositionsCount),
			strconv.Itoa(rec.PositionsFound),
			formatOptional(rec.FirstValidPosition),
		)
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("write record %d: %w", rec.ProductID, err)
		}
	}

	writer.Flush()
	return writer.Error()
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// formatOptional 可空值的 CSV 表示：nil 写空单元格。
func formatOptional(v *float64) string {
	if v == nil {
		return ""
	}
	return formatFloat(*v)
}
