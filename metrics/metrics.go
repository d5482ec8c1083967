// Package metrics 暴露特征抽取与排位预测的 Prometheus 指标。
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// ExtractionsTotal 按结果（complete/degraded）统计的抽取次数。
	// degraded 表示至少有一个子拉取失败、相应字段退化为默认值。
	ExtractionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "rankpredict",
		Subsystem: "feature",
		Name:      "extractions_total",
		Help:      "Number of feature extractions by outcome.",
	}, []string{"outcome"})

	// ExtractionFailuresTotal 按子操作统计的数据形状失败次数。
	ExtractionFailuresTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "rankpredict",
		Subsystem: "feature",
		Name:      "extraction_failures_total",
		Help:      "Number of degraded sub-fetches by operation.",
	}, []string{"operation"})

	// ExtractionDuration 单个商品的抽取耗时。
	ExtractionDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "rankpredict",
		Subsystem: "feature",
		Name:      "extraction_duration_seconds",
		Help:      "Feature extraction latency per product.",
		Buckets:   prometheus.DefBuckets,
	})

	// PredictionsTotal 模型预测调用次数（含敏感性扫描中的扰动调用）。
	PredictionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "rankpredict",
		Subsystem: "model",
		Name:      "predictions_total",
		Help:      "Number of rank predictor invocations by model.",
	}, []string{"model"})

	// PredictionDuration 模型预测耗时。
	PredictionDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "rankpredict",
		Subsystem: "model",
		Name:      "prediction_duration_seconds",
		Help:      "Rank predictor latency by model.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"model"})
)

// 抽取结果取值。
const (
	OutcomeComplete = "complete"
	OutcomeDegraded = "degraded"
)
