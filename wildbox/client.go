// Package wildbox 是外部分析服务的 HTTP 客户端，实现 core.DataSource。
//
// 客户端只负责传输与解码：把上游的松散 JSON 收敛为 core 包的显式
// 可选字段 schema。任何传输失败、非 2xx、解码失败都以 error 返回，
// 由抽取器决定降级；空结果（查无此商品/品牌）返回 nil 而不是错误。
// 每个端点都有自己的超时上限，调用永远不会无限挂起。
package wildbox

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/LLrodyaLL/predictive-analytics-project/core"
)

// geoRegionIDs 是地理可见性查询的固定区域列表。
const geoRegionIDs = "1,2,3,4,5,6,7,8,9,10"

// AuthConfig 是上游服务的请求凭证（来自环境变量，见 config 包）。
type AuthConfig struct {
	Token     string
	CompanyID string
	UserID    string
}

// Client 是分析服务客户端。
// 位置端点明显慢于其它端点，单独给更长的超时。
type Client struct {
	baseURL string
	auth    AuthConfig
	logger  zerolog.Logger

	httpClient      *http.Client // 常规端点
	positionsClient *http.Client // 位置端点

	historyDays int // 动态数据回溯窗口（天）
	now         func() time.Time
}

// ClientOption 客户端配置选项
type ClientOption func(*Client)

// WithTimeout 设置常规端点超时（默认 30s）
func WithTimeout(timeout time.Duration) ClientOption {
	return func(c *Client) {
		c.httpClient.Timeout = timeout
	}
}

// WithPositionsTimeout 设置位置端点超时（默认 45s）
func WithPositionsTimeout(timeout time.Duration) ClientOption {
	return func(c *Client) {
		c.positionsClient.Timeout = timeout
	}
}

// WithHistoryDays 设置动态数据回溯窗口（默认 30 天）
func WithHistoryDays(days int) ClientOption {
	return func(c *Client) {
		c.historyDays = days
	}
}

// WithClientLogger 设置日志器（默认 zerolog.Nop）
func WithClientLogger(logger zerolog.Logger) ClientOption {
	return func(c *Client) {
		c.logger = logger
	}
}

// NewClient 创建分析服务客户端。
func NewClient(baseURL string, auth AuthConfig, opts ...ClientOption) *Client {
	c := &Client{
		baseURL:         strings.TrimRight(baseURL, "/"),
		auth:            auth,
		logger:          zerolog.Nop(),
		httpClient:      &http.Client{Timeout: 30 * time.Second},
		positionsClient: &http.Client{Timeout: 45 * time.Second},
		historyDays:     30,
		now:             time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// dateWindow 返回回溯窗口的起止日期（date_from, date_to）。
func (c *Client) dateWindow() (string, string) {
	to := c.now()
	from := to.AddDate(0, 0, -c.historyDays)
	return from.Format("2006-01-02"), to.Format("2006-01-02")
}

// resultsEnvelope 是上游列表端点的通用包装：{"results": [...]}。
type resultsEnvelope[T any] struct {
	Results []T `json:"results"`
}

// FetchProduct 实现 core.DataSource 接口
func (c *Client) FetchProduct(ctx context.Context, productID int64) (*core.ProductDetails, error) {
	from, to := c.dateWindow()
	params := url.Values{
		"product_ids": {strconv.FormatInt(productID, 10)},
		"date_from":   {from},
		"date_to":     {to},
		"extra_fields": {strings.Join([]string{
			"orders", "proceeds", "in_stock_percent", "price", "discount",
			"old_price", "rating", "reviews", "feedbacks", "promos",
			"brand", "dynamic",
		}, ",")},
	}

	body, err := c.get(ctx, c.httpClient, "/api/wb_dynamic/products/", params)
	if err != nil {
		return nil, err
	}

	var envelope resultsEnvelope[core.ProductDetails]
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, fmt.Errorf("wildbox: decode product %d: %w", productID, err)
	}
	if len(envelope.Results) == 0 {
		return nil, nil // 查无此商品
	}
	return &envelope.Results[0], nil
}

// FetchBrand 实现 core.DataSource 接口
func (c *Client) FetchBrand(ctx context.Context, brandID int64) (*core.BrandDetails, error) {
	from, to := c.dateWindow()
	params := url.Values{
		"brand_ids":    {strconv.FormatInt(brandID, 10)},
		"date_from":    {from},
		"date_to":      {to},
		"extra_fields": {"rating,reviews"},
	}

	body, err := c.get(ctx, c.httpClient, "/api/wb_dynamic/brands/", params)
	if err != nil {
		return nil, err
	}

	var envelope resultsEnvelope[core.BrandDetails]
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, fmt.Errorf("wildbox: decode brand %d: %w", brandID, err)
	}
	if len(envelope.Results) == 0 {
		return nil, nil
	}
	return &envelope.Results[0], nil
}

// FetchGeoAvailability 实现 core.DataSource 接口
func (c *Client) FetchGeoAvailability(ctx context.Context, productID int64) (*core.GeoAvailability, error) {
	params := url.Values{
		"geolocation_ids": {geoRegionIDs},
		"limit":           {"10"},
		"offset":          {"0"},
	}
	path := fmt.Sprintf("/api/parsers/products/%d/availability/", productID)

	body, err := c.get(ctx, c.httpClient, path, params)
	if err != nil {
		return nil, err
	}

	var geo core.GeoAvailability
	if err := json.Unmarshal(body, &geo); err != nil {
		return nil, fmt.Errorf("wildbox: decode availability %d: %w", productID, err)
	}
	return &geo, nil
}

// FetchWarehouses 实现 core.DataSource 接口。
// 去重保持首见顺序：主仓库取列表第一个，顺序必须确定。
func (c *Client) FetchWarehouses(ctx context.Context, productID int64) ([]string, error) {
	from, to := c.dateWindow()
	params := url.Values{
		"product_ids":  {strconv.FormatInt(productID, 10)},
		"date_from":    {from},
		"date_to":      {to},
		"extra_fields": {"name,quantity"},
		"limit":        {"1000"},
	}

	body, err := c.get(ctx, c.httpClient, "/api/wb_dynamic/warehouses/", params)
	if err != nil {
		return nil, err
	}

	var raw []struct {
		Name string `json:"name"`
	}
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, fmt.Errorf("wildbox: decode warehouses %d: %w", productID, err)
	}

	seen := make(map[string]struct{}, len(raw))
	names := make([]string, 0, len(raw))
	for _, w := range raw {
		if w.Name == "" {
			continue
		}
		if _, ok := seen[w.Name]; ok {
			continue
		}
		seen[w.Name] = struct{}{}
		names = append(names, w.Name)
	}
	return names, nil
}

// FetchPositions 实现 core.DataSource 接口。
// 位置端点的响应形状不稳定：正常是记录列表，异常时是带 detail
// 的对象——后者视为空结果而不是错误。
func (c *Client) FetchPositions(ctx context.Context, productID int64, query string) ([]core.PositionRecord, error) {
	params := url.Values{
		"product_id": {strconv.FormatInt(productID, 10)},
		"phrase":     {query},
		"pages_max":  {"30"},
	}

	body, err := c.get(ctx, c.positionsClient, "/api/monitoring/positions/", params)
	if err != nil {
		return nil, err
	}

	var positions []core.PositionRecord
	if err := json.Unmarshal(body, &positions); err == nil {
		return positions, nil
	}

	var detail struct {
		Detail string `json:"detail"`
	}
	if err := json.Unmarshal(body, &detail); err == nil && detail.Detail != "" {
		c.logger.Warn().
			Int64("product_id", productID).
			Str("detail", detail.Detail).
			Msg("positions endpoint returned detail, treating as empty")
		return nil, nil
	}
	return nil, fmt.Errorf("wildbox: decode positions %d: unexpected payload", productID)
}

// get 执行一次带凭证的 GET 请求并读取响应体。
func (c *Client) get(ctx context.Context, client *http.Client, path string, params url.Values) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("wildbox: build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", c.auth.Token)
	req.Header.Set("CompanyID", c.auth.CompanyID)
	req.Header.Set("UserID", c.auth.UserID)

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("wildbox: %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("wildbox: %s: status=%d, body=%s", path, resp.StatusCode, string(raw))
	}
	return io.ReadAll(resp.Body)
}
