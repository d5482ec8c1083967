package recommend

import (
	"fmt"

	"github.com/LLrodyaLL/predictive-analytics-project/core"
	"github.com/LLrodyaLL/predictive-analytics-project/pkg/dsl"
)

// StatusLevel 是单个指标的评价。
type StatusLevel string

const (
	StatusGood      StatusLevel = "good"
	StatusNormal    StatusLevel = "normal"
	StatusNeedsWork StatusLevel = "needs_improvement"
)

// MetricRule 是一个指标的状态规则：Good/Bad 是在 `features` 上求值的
// CEL 表达式。Good 命中记 good，否则 Bad 命中记 needs_improvement，
// 都不命中记 normal。
type MetricRule struct {
	Metric string `yaml:"metric"`
	Good   string `yaml:"good"`
	Bad    string `yaml:"bad"`
}

// DefaultStatusRules 是默认的指标状态阈值。
func DefaultStatusRules() []MetricRule {
	return []MetricRule{
		{Metric: core.FeatureRating, Good: "features.rating >= 4.5", Bad: "features.rating <= 3.5"},
		{Metric: core.FeatureInStockPercent, Good: "features.in_stock_percent >= 95.0", Bad: "features.in_stock_percent <= 70.0"},
		{Metric: core.FeatureDiscount, Good: "features.discount >= 30.0", Bad: "features.discount <= 10.0"},
		{Metric: core.FeatureReviewsLastDay, Good: "features.reviews_last_day >= 1000.0", Bad: "features.reviews_last_day <= 100.0"},
		{Metric: core.FeatureAvgDeliveryTime, Good: "features.avg_delivery_time <= 48.0", Bad: "features.avg_delivery_time >= 72.0"},
		{Metric: core.FeaturePromoDays, Good: "features.promo_days >= 15.0", Bad: "features.promo_days <= 5.0"},
	}
}

// MetricStatus 是一个指标的评价结果。
type MetricStatus struct {
	Metric string      `json:"metric"`
	Value  float64     `json:"value"`
	Status StatusLevel `json:"status"`
}

type compiledRule struct {
	metric string
	good   *dsl.Program
	bad    *dsl.Program
}

func compileRules(rules []MetricRule) ([]compiledRule, error) {
	compiled := make([]compiledRule, 0, len(rules))
	for _, rule := range rules {
		good, err := dsl.Compile(rule.Good)
		if err != nil {
			return nil, fmt.Errorf("status rule %s: %w", rule.Metric, err)
		}
		bad, err := dsl.Compile(rule.Bad)
		if err != nil {
			return nil, fmt.Errorf("status rule %s: %w", rule.Metric, err)
		}
		compiled = append(compiled, compiledRule{metric: rule.Metric, good: good, bad: bad})
	}
	return compiled, nil
}

// evaluateStatuses 对每个有规则的指标求状态。
// 规则执行失败（例如引用了记录里没有的特征）只跳过该指标。
func (e *Engine) evaluateStatuses(features map[string]float64) []MetricStatus {
	statuses := make([]MetricStatus, 0, len(e.rules))
	for _, rule := range e.rules {
		value, ok := features[rule.metric]
		if !ok {
			continue
		}

		status := StatusNormal
		good, err := rule.good.Evaluate(features)
		if err != nil {
			e.logger.Warn().Err(err).Str("metric", rule.metric).Msg("status rule failed")
			continue
		}
		if good {
			status = StatusGood
		} else {
			bad, err := rule.bad.Evaluate(features)
			if err != nil {
				e.logger.Warn().Err(err).Str("metric", rule.metric).Msg("status rule failed")
				continue
			}
			if bad {
				status = StatusNeedsWork
			}
		}

		statuses = append(statuses, MetricStatus{Metric: rule.metric, Value: value, Status: status})
	}
	return statuses
}
