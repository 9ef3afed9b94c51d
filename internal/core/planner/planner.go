// Package planner 串接條件擷取、請求產生、食譜搜尋與 Markdown 輸出。
package planner

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"meal-planner/internal/core/extractor"
	"meal-planner/internal/core/spoonacular"
	"meal-planner/internal/pkg/common"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Stage 失敗的處理階段
type Stage string

const (
	StageExtraction Stage = "extraction"
	StageSynthesis  Stage = "synthesis"
	StageSearch     Stage = "search"
	StageFormat     Stage = "format"
)

// StageError 標示失敗階段的錯誤
type StageError struct {
	Stage Stage
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("%s failed: %v", e.Stage, e.Err)
}

func (e *StageError) Unwrap() error {
	return e.Err
}

// ErrTooManyMeals 擷取出的餐點數超過設定上限
var ErrTooManyMeals = errors.New("meal count exceeds limit")

// MealError 單餐搜尋失敗，Index 從 0 起算
type MealError struct {
	Index int
	Err   error
}

func (e *MealError) Error() string {
	return fmt.Sprintf("meal %d: %v", e.Index, e.Err)
}

func (e *MealError) Unwrap() error {
	return e.Err
}

// CriteriaExtractor 條件擷取
type CriteriaExtractor interface {
	Extract(ctx context.Context, text string) (*extractor.Criteria, error)
}

// RequestSynthesizer 搜尋請求產生
type RequestSynthesizer interface {
	Synthesize(c *extractor.Criteria) []spoonacular.SearchRequest
}

// RecipeSearcher 食譜搜尋
type RecipeSearcher interface {
	SearchAll(ctx context.Context, reqs []spoonacular.SearchRequest) []spoonacular.MealResult
}

// MarkdownFormatter Markdown 轉換
type MarkdownFormatter interface {
	Format(ctx context.Context, v any) (string, error)
}

// Plan 一次計畫的完整結果
type Plan struct {
	Criteria *extractor.Criteria         `json:"criteria"`
	Requests []spoonacular.SearchRequest `json:"requests"`
	Meals    []spoonacular.MealResult    `json:"meals"`
	Markdown string                      `json:"markdown,omitempty"`
}

// Failed 搜尋失敗的餐點數
func (p *Plan) Failed() int {
	n := 0
	for _, m := range p.Meals {
		if m.Err != nil {
			n++
		}
	}
	return n
}

// Planner 餐點計畫流程
type Planner struct {
	extractor   CriteriaExtractor
	synthesizer RequestSynthesizer
	searcher    RecipeSearcher
	formatter   MarkdownFormatter
	renderLimit int
	maxMeals    int
}

// Option 流程選項
type Option func(*Planner)

// WithMaxMeals 餐點數上限，超過時以 synthesis 階段錯誤拒絕；<= 0 代表不限制
func WithMaxMeals(n int) Option {
	return func(p *Planner) {
		p.maxMeals = n
	}
}

// New 創建流程；formatter 可為 nil，此時 Render 會回傳錯誤
func New(ex CriteriaExtractor, syn RequestSynthesizer, searcher RecipeSearcher, formatter MarkdownFormatter, opts ...Option) *Planner {
	p := &Planner{
		extractor:   ex,
		synthesizer: syn,
		searcher:    searcher,
		formatter:   formatter,
		renderLimit: 2,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// ExtractCriteria 只執行條件擷取
func (p *Planner) ExtractCriteria(ctx context.Context, text string) (*extractor.Criteria, error) {
	c, err := p.extractor.Extract(ctx, text)
	if err != nil {
		return nil, p.fail(StageExtraction, err)
	}
	return c, nil
}

// Plan 執行完整流程。所有餐點都搜尋失敗時，同時回傳 plan 與 search 階段錯誤。
func (p *Planner) Plan(ctx context.Context, text string) (*Plan, error) {
	start := time.Now()
	defer func() { planDuration.Observe(time.Since(start).Seconds()) }()

	c, err := p.ExtractCriteria(ctx, text)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, p.fail(StageSynthesis, errors.New("no criteria extracted"))
	}
	if p.maxMeals > 0 && c.MealCount > p.maxMeals {
		return nil, p.fail(StageSynthesis, fmt.Errorf("%w: meal_count=%d max_meals=%d", ErrTooManyMeals, c.MealCount, p.maxMeals))
	}

	reqs := p.synthesizer.Synthesize(c)
	plan := &Plan{Criteria: c, Requests: reqs, Meals: []spoonacular.MealResult{}}
	if len(reqs) == 0 {
		common.LogWarn("沒有可搜尋的餐點", zap.Int("meal_count", c.MealCount))
		return plan, nil
	}

	plan.Meals = p.searcher.SearchAll(ctx, reqs)
	failed := plan.Failed()
	mealsPlanned.Add(float64(len(plan.Meals) - failed))

	if failed == len(plan.Meals) {
		errs := make([]error, len(plan.Meals))
		for i, m := range plan.Meals {
			errs[i] = &MealError{Index: m.Index, Err: m.Err}
		}
		return plan, p.fail(StageSearch, errors.Join(errs...))
	}

	common.LogInfo("餐點計畫完成",
		zap.Int("meals", len(plan.Meals)),
		zap.Int("failed", failed),
		zap.Duration("duration", time.Since(start)),
	)
	return plan, nil
}

// Render 將條件與每餐食譜轉為 Markdown，每個段落一次格式化呼叫
func (p *Planner) Render(ctx context.Context, plan *Plan) (string, error) {
	if p.formatter == nil {
		return "", p.fail(StageFormat, errors.New("formatter not configured"))
	}
	if plan == nil || plan.Criteria == nil {
		return "", p.fail(StageFormat, errors.New("empty plan"))
	}

	sections := make([]string, len(plan.Meals)+1)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(p.renderLimit)
	g.Go(func() error {
		md, err := p.formatter.Format(gctx, plan.Criteria)
		sections[0] = md
		return err
	})
	for i, meal := range plan.Meals {
		g.Go(func() error {
			md, err := p.renderMeal(gctx, meal)
			sections[i+1] = md
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return "", p.fail(StageFormat, err)
	}

	out := sections[:0]
	for _, s := range sections {
		if s != "" {
			out = append(out, s)
		}
	}
	return strings.Join(out, "\n\n---\n\n"), nil
}

func (p *Planner) renderMeal(ctx context.Context, meal spoonacular.MealResult) (string, error) {
	title := fmt.Sprintf("### Meal %d", meal.Index+1)
	if meal.Err != nil {
		if status, ok := spoonacular.IsAPIError(meal.Err); ok {
			return fmt.Sprintf("%s\n\n_Recipe search failed (HTTP %d)._", title, status), nil
		}
		return fmt.Sprintf("%s\n\n_Recipe search failed._", title), nil
	}
	if meal.Result == nil || len(meal.Result.Results) == 0 {
		return fmt.Sprintf("%s\n\n_No matching recipes found._", title), nil
	}

	parts := make([]string, 0, len(meal.Result.Results))
	for _, recipe := range meal.Result.Results {
		md, err := p.formatter.Format(ctx, recipe)
		if err != nil {
			return "", err
		}
		parts = append(parts, md)
	}
	return title + "\n\n" + strings.Join(parts, "\n\n"), nil
}

func (p *Planner) fail(stage Stage, err error) error {
	stageFailures.WithLabelValues(string(stage)).Inc()
	common.LogError("餐點計畫失敗", zap.String("stage", string(stage)), zap.Error(err))
	return &StageError{Stage: stage, Err: err}
}
