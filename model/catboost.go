// Package model 提供 core.RankPredictor 的实现：
// 远程的 CatBoost 模型服务客户端与本地线性模型。
// 模型加载一次、预测多次——预测是一次函数调用或一次 HTTP 往返，
// 永远不是“每次预测启动一个子进程”。
package model

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/LLrodyaLL/predictive-analytics-project/core"
)

// CatBoostClient 是 CatBoost 模型服务的 REST 客户端。
//
// 服务端把训练好的回归模型常驻内存，按名字暴露预测端点；
// 类别特征（main_warehouse、loyalty_level）以原始文本传给服务端，
// 由模型按已注册类别消费。
type CatBoostClient struct {
	// Endpoint 服务端点，如 "http://localhost:8080"
	Endpoint string

	// ModelName 模型名称
	ModelName string

	// Timeout 超时时间
	Timeout time.Duration

	// AuthToken Bearer 认证令牌（可选）
	AuthToken string

	httpClient *http.Client
}

// CatBoostOption CatBoost 客户端配置选项
type CatBoostOption func(*CatBoostClient)

// WithCatBoostTimeout 设置超时时间
func WithCatBoostTimeout(timeout time.Duration) CatBoostOption {
	return func(c *CatBoostClient) {
		c.Timeout = timeout
	}
}

// WithCatBoostAuthToken 设置 Bearer 认证令牌
func WithCatBoostAuthToken(token string) CatBoostOption {
	return func(c *CatBoostClient) {
		c.AuthToken = token
	}
}

// NewCatBoostClient 创建一个新的 CatBoost 模型服务客户端。
func NewCatBoostClient(endpoint, modelName string, opts ...CatBoostOption) *CatBoostClient {
	client := &CatBoostClient{
		Endpoint:  endpoint,
		ModelName: modelName,
		Timeout:   30 * time.Second,
	}
	for _, opt := range opts {
		opt(client)
	}
	client.httpClient = &http.Client{Timeout: client.Timeout}
	return client
}

func (c *CatBoostClient) Name() string { return "catboost:" + c.ModelName }

// predictPayload 是预测请求体：数值特征与类别特征分开传，
// 服务端按列名对齐到训练 schema。
type predictPayload struct {
	Features    map[string]float64 `json:"features"`
	Categorical map[string]string  `json:"categorical"`
}

type predictResult struct {
	Predictions []float64 `json:"predictions"`
}

// Predict 实现 core.RankPredictor 接口
func (c *CatBoostClient) Predict(ctx context.Context, in *core.ModelInput) (float64, error) {
	if in == nil || len(in.Numeric) == 0 {
		return 0, fmt.Errorf("catboost: model input is empty")
	}

	body, err := json.Marshal(predictPayload{
		Features:    in.Numeric,
		Categorical: in.Categorical,
	})
	if err != nil {
		return 0, fmt.Errorf("catboost: marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/v1/models/%s:predict", c.Endpoint, c.ModelName)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return 0, fmt.Errorf("catboost: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.AuthToken != "" {
		req.Header.Set("Authorization", "Bearer "+c.AuthToken)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, core.NewDomainError(core.ModuleModel, core.ErrorCodeUnavailable,
			fmt.Sprintf("catboost: request failed: %v", err))
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(resp.Body)
		return 0, fmt.Errorf("catboost: status=%d, body=%s", resp.StatusCode, string(raw))
	}

	var result predictResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return 0, fmt.Errorf("catboost: decode response: %w", err)
	}
	if len(result.Predictions) == 0 {
		return 0, fmt.Errorf("catboost: empty predictions")
	}
	return result.Predictions[0], nil
}

// Health 健康检查
func (c *CatBoostClient) Health(ctx context.Context) error {
	url := fmt.Sprintf("%s/v1/models/%s", c.Endpoint, c.ModelName)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return core.NewDomainError(core.ModuleModel, core.ErrorCodeUnavailable,
			fmt.Sprintf("catboost: health check failed: %v", err))
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("catboost: unhealthy, status=%d", resp.StatusCode)
	}
	return nil
}
