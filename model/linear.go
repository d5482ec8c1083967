package model

import (
	"context"
	"encoding/json"
	"os"

	"github.com/LLrodyaLL/predictive-analytics-project/core"
)

// LinearModel 是本地线性回归模型。
//
// 预测原理：rank = Bias + sum(Weight_i * Feature_i) + 类别偏置，
// 结果在 0 处截断（排位不为负）。表达能力有限，但加载即用、
// 完全确定，适合测试、原型和模型服务不可用时的兜底。
type LinearModel struct {
	Bias    float64            // 偏置项
	Weights map[string]float64 // 数值特征权重

	// CategoryWeights 类别特征的取值偏置，如
	// {"loyalty_level": {"gold": -120, "no_data": 80}}。
	// 未登记的取值贡献 0。
	CategoryWeights map[string]map[string]float64
}

// LoadLinearModel 从 JSON 文件加载线性模型。
func LoadLinearModel(path string) (*LinearModel, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var raw struct {
		Bias            float64                       `json:"bias"`
		Weights         map[string]float64            `json:"weights"`
		CategoryWeights map[string]map[string]float64 `json:"category_weights"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}
	return &LinearModel{
		Bias:            raw.Bias,
		Weights:         raw.Weights,
		CategoryWeights: raw.CategoryWeights,
	}, nil
}

func (m *LinearModel) Name() string { return "linear" }

// Predict 实现 core.RankPredictor 接口
func (m *LinearModel) Predict(_ context.Context, in *core.ModelInput) (float64, error) {
	score := m.Bias
	for k, v := range in.Numeric {
		if w, ok := m.Weights[k]; ok {
			score += w * v
		}
	}
	for field, value := range in.Categorical {
		if table, ok := m.CategoryWeights[field]; ok {
			score += table[value]
		}
	}
	if score < 0 {
		score = 0
	}
	return score, nil
}
