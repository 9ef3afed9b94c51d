// Package extractor 以每欄位一次 LLM 呼叫，將自由文字轉成結構化的餐點條件。
//
// meal_count 最先擷取；people_per_meal 與 meal_types 需要它作為上下文，
// 在它完成後才送出。其餘 14 個欄位一開始就並行送出。
// 任一欄位失敗即取消其餘呼叫，不會回傳部分結果。
package extractor

import (
	"context"
	"errors"
	"strings"
	"time"

	"meal-planner/internal/core/ai/provider"
	"meal-planner/internal/pkg/common"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"
)

const (
	defaultConcurrency = 4
	defaultTimeout     = 60 * time.Second
	defaultMaxTokens   = 256
)

// ErrEmptyText 輸入文字為空
var ErrEmptyText = errors.New("meal plan text is empty")

// Extractor 條件擷取器
type Extractor struct {
	gen         provider.Generator
	concurrency int
	timeout     time.Duration
	maxTokens   int
	temperature float64
}

// Option 擷取器選項
type Option func(*Extractor)

// WithConcurrency 同時進行的 LLM 呼叫上限
func WithConcurrency(n int) Option {
	return func(e *Extractor) {
		if n > 0 {
			e.concurrency = n
		}
	}
}

// WithTimeout 單一欄位的呼叫超時
func WithTimeout(d time.Duration) Option {
	return func(e *Extractor) {
		if d > 0 {
			e.timeout = d
		}
	}
}

// WithMaxTokens 單一欄位回覆的 token 上限
func WithMaxTokens(n int) Option {
	return func(e *Extractor) {
		if n > 0 {
			e.maxTokens = n
		}
	}
}

// WithTemperature 取樣溫度
func WithTemperature(t float64) Option {
	return func(e *Extractor) {
		e.temperature = t
	}
}

// New 創建擷取器
func New(gen provider.Generator, opts ...Option) *Extractor {
	e := &Extractor{
		gen:         gen,
		concurrency: defaultConcurrency,
		timeout:     defaultTimeout,
		maxTokens:   defaultMaxTokens,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Extract 擷取全部欄位；只有 17 個欄位都成功時才回傳結果
func (e *Extractor) Extract(ctx context.Context, text string) (*Criteria, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, ErrEmptyText
	}

	start := time.Now()
	var (
		c   Criteria
		sem = semaphore.NewWeighted(int64(e.concurrency))
	)
	// meal_count 先佔一個名額，確保最先送出
	if err := sem.Acquire(ctx, 1); err != nil {
		return nil, &ExtractionError{Field: FieldMealCount, Err: err}
	}
	g, gctx := errgroup.WithContext(ctx)

	// 每個 goroutine 只寫入自己負責的欄位
	run := func(f field, mealCount int) error {
		if err := sem.Acquire(gctx, 1); err != nil {
			return &ExtractionError{Field: f.name, Err: err}
		}
		defer sem.Release(1)

		v, err := e.query(gctx, f, text, mealCount)
		if err != nil {
			return err
		}
		f.assign(&c, v)
		return nil
	}

	var countField field
	var independent, dependents []field
	for _, f := range fields {
		switch {
		case f.name == FieldMealCount:
			countField = f
		case f.needsCount:
			dependents = append(dependents, f)
		default:
			independent = append(independent, f)
		}
	}

	g.Go(func() error {
		v, err := e.query(gctx, countField, text, 0)
		sem.Release(1)
		if err != nil {
			return err
		}
		countField.assign(&c, v)
		count := v.(int)
		for _, f := range dependents {
			g.Go(func() error { return run(f, count) })
		}
		return nil
	})
	for _, f := range independent {
		g.Go(func() error { return run(f, 0) })
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	common.LogInfo("條件擷取完成",
		zap.Int("meal_count", c.MealCount),
		zap.Int("people_per_meal", c.PeoplePerMeal),
		zap.Duration("duration", time.Since(start)),
	)
	return &c, nil
}

// query 送出單一欄位查詢並解析結果
func (e *Extractor) query(ctx context.Context, f field, text string, mealCount int) (any, error) {
	ctx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	start := time.Now()
	v, err := e.call(ctx, f, text, mealCount)
	elapsed := time.Since(start)

	common.LogAICall(f.name, elapsed, err)
	observeField(f.name, elapsed, err)
	if err != nil {
		return nil, &ExtractionError{Field: f.name, Err: err}
	}
	return v, nil
}

func (e *Extractor) call(ctx context.Context, f field, text string, mealCount int) (any, error) {
	resp, err := e.gen.Generate(ctx, &provider.Request{
		Messages: []provider.Message{
			{Role: provider.RoleSystem, Content: f.instruction()},
			{Role: provider.RoleUser, Content: f.input(text, mealCount)},
		},
		MaxTokens:   e.maxTokens,
		Temperature: e.temperature,
		JSONMode:    true,
	})
	if err != nil {
		return nil, err
	}
	if resp == nil {
		return nil, errors.New("empty response")
	}
	return f.parse(resp.Content)
}
