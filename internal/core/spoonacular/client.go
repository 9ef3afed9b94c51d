// Package spoonacular 呼叫 Spoonacular complexSearch 取得每餐的食譜。
package spoonacular

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"meal-planner/internal/pkg/common"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"
)

const (
	defaultBaseURL = "https://api.spoonacular.com"
	searchPath     = "/recipes/complexSearch"
)

// ErrMissingAPIKey 未設定 API 金鑰
var ErrMissingAPIKey = errors.New("spoonacular api key is required")

// Config 客戶端設定
type Config struct {
	APIKey  string
	BaseURL string
	Timeout time.Duration
	// Workers SearchAll 同時進行的請求數
	Workers int
	// RateLimit 每秒請求數；<= 0 代表不限制
	RateLimit float64
	RateBurst int
}

// Client 食譜搜尋客戶端，可並發使用
type Client struct {
	client  *resty.Client
	limiter *rate.Limiter
	timeout time.Duration
	workers int
}

// MealResult 單一餐點的搜尋結果；Err 與 Result 互斥
type MealResult struct {
	Index   int
	Request SearchRequest
	Result  *SearchResult
	Err     error
}

// MarshalJSON 將錯誤輸出為字串
func (m MealResult) MarshalJSON() ([]byte, error) {
	out := struct {
		Index   int           `json:"index"`
		Request SearchRequest `json:"request"`
		Result  *SearchResult `json:"result,omitempty"`
		Error   string        `json:"error,omitempty"`
		Status  int           `json:"status,omitempty"`
	}{
		Index:   m.Index,
		Request: m.Request,
		Result:  m.Result,
	}
	if m.Err != nil {
		out.Error = m.Err.Error()
		out.Status, _ = IsAPIError(m.Err)
	}
	return json.Marshal(out)
}

// NewClient 創建客戶端
func NewClient(cfg Config) (*Client, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, ErrMissingAPIKey
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultBaseURL
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 20 * time.Second
	}
	if cfg.Workers <= 0 {
		cfg.Workers = 1
	}

	limit := rate.Inf
	if cfg.RateLimit > 0 {
		limit = rate.Limit(cfg.RateLimit)
	}
	burst := cfg.RateBurst
	if burst <= 0 {
		burst = 1
	}

	client := resty.New().
		SetBaseURL(strings.TrimRight(cfg.BaseURL, "/")).
		SetTimeout(cfg.Timeout).
		SetHeader("Accept", "application/json").
		SetQueryParam("apiKey", cfg.APIKey).
		SetLogger(&restyLogger{secret: cfg.APIKey})

	return &Client{
		client:  client,
		limiter: rate.NewLimiter(limit, burst),
		timeout: cfg.Timeout,
		workers: cfg.Workers,
	}, nil
}

// Search 執行一次搜尋，不重試
func (c *Client) Search(ctx context.Context, req SearchRequest) (*SearchResult, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	start := time.Now()
	resp, err := c.client.R().
		SetContext(ctx).
		SetQueryParamsFromValues(req.Values()).
		Get(searchPath)
	elapsed := time.Since(start)
	if err != nil {
		observeSearch("transport_error", elapsed)
		return nil, fmt.Errorf("recipe search request failed: %w", redact(err))
	}

	if resp.StatusCode() < 200 || resp.StatusCode() > 299 {
		observeSearch("api_error", elapsed)
		apiErr := newAPIError(resp.StatusCode(), resp.Body())
		common.LogWarn("食譜搜尋失敗",
			zap.Int("status_code", apiErr.StatusCode),
			zap.String("message", apiErr.Message()),
			zap.Duration("duration", elapsed),
		)
		return nil, apiErr
	}

	result, err := decodeResult(resp.Body())
	if err != nil {
		observeSearch("decode_error", elapsed)
		return nil, err
	}

	observeSearch("success", elapsed)
	common.LogDebug("食譜搜尋完成",
		zap.Int("results", len(result.Results)),
		zap.Int("total_results", result.TotalResults),
		zap.Duration("duration", elapsed),
	)
	return result, nil
}

// SearchAll 逐餐搜尋；結果與輸入位置一一對應，單餐失敗不影響其他餐
func (c *Client) SearchAll(ctx context.Context, reqs []SearchRequest) []MealResult {
	results := make([]MealResult, len(reqs))

	var g errgroup.Group
	g.SetLimit(c.workers)
	for i, req := range reqs {
		results[i] = MealResult{Index: i, Request: req}
		g.Go(func() error {
			res, err := c.Search(ctx, req)
			results[i].Result, results[i].Err = res, err
			if err != nil {
				common.LogWarn("餐點搜尋失敗", zap.Int("meal", i), zap.Error(err))
			}
			return nil
		})
	}
	_ = g.Wait()

	return results
}

// Close 關閉閒置連線
func (c *Client) Close() error {
	c.client.GetClient().CloseIdleConnections()
	return nil
}

// restyLogger 將 resty 的日誌轉給 zap，並遮蔽 API 金鑰
type restyLogger struct {
	secret string
}

func (l *restyLogger) clean(format string, v ...interface{}) string {
	return strings.ReplaceAll(fmt.Sprintf(format, v...), l.secret, common.MaskSecret(l.secret))
}

func (l *restyLogger) Errorf(format string, v ...interface{}) {
	common.LogError(l.clean(format, v...))
}

func (l *restyLogger) Warnf(format string, v ...interface{}) {
	common.LogWarn(l.clean(format, v...))
}

func (l *restyLogger) Debugf(format string, v ...interface{}) {
	common.LogDebug(l.clean(format, v...))
}

func decodeResult(body []byte) (*SearchResult, error) {
	var raw rawSearchResult
	if err := common.ParseJSONBytes(body, &raw); err != nil {
		return nil, &DecodeError{Err: err}
	}

	var missing []string
	if raw.Results == nil {
		missing = append(missing, "results")
	}
	if raw.Offset == nil {
		missing = append(missing, "offset")
	}
	if raw.Number == nil {
		missing = append(missing, "number")
	}
	if raw.TotalResults == nil {
		missing = append(missing, "totalResults")
	}
	if len(missing) > 0 {
		return nil, &DecodeError{Err: fmt.Errorf("missing required fields: %s", strings.Join(missing, ", "))}
	}

	return &SearchResult{
		Results:      *raw.Results,
		Offset:       *raw.Offset,
		Number:       *raw.Number,
		TotalResults: *raw.TotalResults,
	}, nil
}
