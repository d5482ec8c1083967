// Package recommend 实现推荐引擎：在单条特征记录上做“一次只动一个
// 特征”的敏感性扫描，估计每个可调特征对预测排位的边际影响，
// 输出按改进幅度排序的建议清单、配送短板诊断与指标状态分析。
//
// 扫描是 one-at-a-time 分析而非联合优化：扰动作用在基线的副本上，
// 特征之间的交互效应显式不在范围内。
package recommend

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/LLrodyaLL/predictive-analytics-project/core"
	"github.com/LLrodyaLL/predictive-analytics-project/metrics"
)

// SignificanceThreshold 是执行摘要的显著性阈值：top-3 改进之和
// 达到它即判定“可显著改善”，否则提示需要进一步措施。
const SignificanceThreshold = 1000

// 执行摘要结论。
const (
	VerdictSignificant     = "significant improvement possible"
	VerdictFurtherMeasures = "requires further measures"
)

// Recommendation 是一条单特征扰动建议。
// Improvement 保留全精度：排序用它，展示时才截断为整数。
type Recommendation struct {
	Feature     string  `json:"feature"`
	Original    float64 `json:"original_value"`
	Proposed    float64 `json:"proposed_value"`
	Improvement float64 `json:"predicted_improvement"`
}

// Summary 是 top-3 的执行摘要。
type Summary struct {
	Top              []Recommendation `json:"top"`
	TotalImprovement float64          `json:"total_improvement"`
	Significant      bool             `json:"significant"`
	Verdict          string           `json:"verdict"`
}

// Report 是一次推荐请求的完整结果。
type Report struct {
	Baseline        float64            `json:"baseline"`
	Recommendations []Recommendation   `json:"recommendations"` // top-5
	Summary         Summary            `json:"summary"`
	Delivery        *DeliveryDiagnosis `json:"delivery"`
	Statuses        []MetricStatus     `json:"statuses"`
	ActionPlan      []string           `json:"action_plan"`
}

// actionPlan 是报告末尾的固定行动清单。
var actionPlan = []string{
	"optimize promo participation",
	"tune the pricing policy",
	"improve logistics in problem regions",
	"launch a review collection campaign",
}

// Engine 是推荐引擎。predictor 必须线程安全：候选扰动可以并发评估，
// 完成顺序不影响最终排序（按 improvement 降序 + 声明顺序平局）。
type Engine struct {
	predictor     core.RankPredictor
	tunables      []Tunable
	rules         []compiledRule
	logger        zerolog.Logger
	maxConcurrent int
}

// EngineOption 引擎配置选项
type EngineOption func(*engineConfig)

type engineConfig struct {
	tunables      []Tunable
	rules         []MetricRule
	logger        zerolog.Logger
	maxConcurrent int
}

// WithTunables 覆盖默认可调特征表（顺序即平局优先级）。
func WithTunables(tunables []Tunable) EngineOption {
	return func(c *engineConfig) {
		c.tunables = tunables
	}
}

// WithStatusRules 覆盖默认指标状态规则。
func WithStatusRules(rules []MetricRule) EngineOption {
	return func(c *engineConfig) {
		c.rules = rules
	}
}

// WithEngineLogger 设置日志器（默认 zerolog.Nop）
func WithEngineLogger(logger zerolog.Logger) EngineOption {
	return func(c *engineConfig) {
		c.logger = logger
	}
}

// WithMaxConcurrent 设置候选评估的最大并发数（默认 1，串行）。
func WithMaxConcurrent(n int) EngineOption {
	return func(c *engineConfig) {
		c.maxConcurrent = n
	}
}

// NewEngine 创建推荐引擎。状态规则在这里一次性编译，
// 规则表达式不合法立刻报错，而不是等到第一次请求。
func NewEngine(predictor core.RankPredictor, opts ...EngineOption) (*Engine, error) {
	if predictor == nil {
		return nil, core.NewDomainError(core.ModuleRecommend, core.ErrorCodeInvalidInput,
			"engine: rank predictor is required")
	}

	cfg := &engineConfig{
		tunables:      DefaultTunables(),
		rules:         DefaultStatusRules(),
		logger:        zerolog.Nop(),
		maxConcurrent: 1,
	}
	for _, opt := range opts {
		opt(cfg)
	}

	rules, err := compileRules(cfg.rules)
	if err != nil {
		return nil, err
	}

	return &Engine{
		predictor:     predictor,
		tunables:      cfg.tunables,
		rules:         rules,
		logger:        cfg.logger,
		maxConcurrent: cfg.maxConcurrent,
	}, nil
}

// Recommend 对恰好一条记录执行敏感性扫描。
//
// 单记录前置条件是硬性的：零条或多条记录直接返回 INVALID_INPUT，
// 不发起任何一次预测调用——扫描只对单个商品有意义，这是批次级
// 前置条件而不是可恢复的逐项失败。
func (e *Engine) Recommend(ctx context.Context, records []*core.FeatureRecord) (*Report, error) {
	if len(records) != 1 {
		return nil, core.NewDomainError(core.ModuleRecommend, core.ErrorCodeInvalidInput,
			fmt.Sprintf("recommendation requires exactly one record, got %d", len(records)))
	}
	rec := records[0]
	base := rec.ModelInput()

	baseline, err := e.predict(ctx, base)
	if err != nil {
		return nil, fmt.Errorf("baseline prediction: %w", err)
	}

	candidates := e.sweep(ctx, base, baseline)

	// 按 improvement 降序；稳定排序保证并列时先声明的可调特征在前。
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].Improvement > candidates[j].Improvement
	})

	top5 := candidates
	if len(top5) > 5 {
		top5 = top5[:5]
	}
	top3 := candidates
	if len(top3) > 3 {
		top3 = top3[:3]
	}
	total := 0.0
	for _, c := range top3 {
		total += c.Improvement
	}
	significant := total >= SignificanceThreshold
	verdict := VerdictFurtherMeasures
	if significant {
		verdict = VerdictSignificant
	}

	e.logger.Info().
		Int64("product_id", rec.ProductID).
		Float64("baseline", baseline).
		Int("candidates", len(candidates)).
		Float64("top3_total", total).
		Msg("sensitivity sweep finished")

	return &Report{
		Baseline:        baseline,
		Recommendations: top5,
		Summary: Summary{
			Top:              top3,
			TotalImprovement: total,
			Significant:      significant,
			Verdict:          verdict,
		},
		Delivery:   DiagnoseDelivery(rec),
		Statuses:   e.evaluateStatuses(base.Numeric),
		ActionPlan: actionPlan,
	}, nil
}

// sweep 逐个可调特征做单点扰动，返回 improvement > 0 的候选。
// 结果槽位按可调特征的声明顺序排列，与并发完成顺序无关。
func (e *Engine) sweep(ctx context.Context, base *core.ModelInput, baseline float64) []Recommendation {
	results := make([]*Recommendation, len(e.tunables))

	var eg errgroup.Group
	limit := e.maxConcurrent
	if limit < 1 {
		limit = 1
	}
	eg.SetLimit(limit)

	for i, tunable := range e.tunables {
		eg.Go(func() error {
			original, ok := base.Numeric[tunable.Feature]
			if !ok {
				return nil // 记录里没有这个特征：不产生建议
			}
			candidate := tunable.Clamp(original + tunable.Step)
			if candidate == original {
				return nil // 已在边界上：扰动无效
			}

			// 扰动作用在副本上，其余特征保持原值；下一个候选
			// 从全新副本出发，扰动不会叠加。
			scratch := base.Clone()
			scratch.Numeric[tunable.Feature] = candidate

			predicted, err := e.predict(ctx, scratch)
			if err != nil {
				e.logger.Warn().Err(err).
					Str("feature", tunable.Feature).
					Msg("candidate evaluation failed, skipping")
				return nil
			}

			improvement := baseline - predicted
			if improvement <= 0 {
				return nil // 变差或无变化的扰动不进入建议
			}
			results[i] = &Recommendation{
				Feature:     tunable.Feature,
				Original:    original,
				Proposed:    candidate,
				Improvement: improvement,
			}
			return nil
		})
	}
	_ = eg.Wait()

	candidates := make([]Recommendation, 0, len(results))
	for _, r := range results {
		if r != nil {
			candidates = append(candidates, *r)
		}
	}
	return candidates
}

func (e *Engine) predict(ctx context.Context, in *core.ModelInput) (float64, error) {
	start := time.Now()
	v, err := e.predictor.Predict(ctx, in)
	metrics.PredictionsTotal.WithLabelValues(e.predictor.Name()).Inc()
	metrics.PredictionDuration.WithLabelValues(e.predictor.Name()).Observe(time.Since(start).Seconds())
	return v, err
}
