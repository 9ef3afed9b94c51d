// Package synthesizer 將擷取出的條件展開為每餐一個食譜搜尋請求。
package synthesizer

import (
	"meal-planner/internal/core/extractor"
	"meal-planner/internal/core/matcher"
	"meal-planner/internal/core/spoonacular"
	"meal-planner/internal/core/vocabulary"
)

// Synthesizer 搜尋請求產生器，建立後不可變
type Synthesizer struct {
	matcher       *matcher.Matcher
	wrapMealTypes bool
	number        int
}

// Option 產生器選項
type Option func(*Synthesizer)

// WithMatcher 替換模糊比對器
func WithMatcher(m *matcher.Matcher) Option {
	return func(s *Synthesizer) {
		if m != nil {
			s.matcher = m
		}
	}
}

// WithMealTypeWrap 餐點類型不足時循環使用（i mod len），預設為留空
func WithMealTypeWrap(wrap bool) Option {
	return func(s *Synthesizer) {
		s.wrapMealTypes = wrap
	}
}

// WithNumber 每餐取回的食譜數
func WithNumber(n int) Option {
	return func(s *Synthesizer) {
		if n > 0 {
			s.number = n
		}
	}
}

// New 創建產生器
func New(opts ...Option) *Synthesizer {
	s := &Synthesizer{
		matcher: matcher.Default,
		number:  spoonacular.DefaultNumber,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Synthesize 產生 max(meal_count, 0) 個請求；第 i 個請求對應第 i 餐
func (s *Synthesizer) Synthesize(c *extractor.Criteria) []spoonacular.SearchRequest {
	if c == nil || c.MealCount <= 0 {
		return []spoonacular.SearchRequest{}
	}

	count := c.MealCount

	// 所有請求共用的條件只比對一次
	cuisines := matcher.Match(s.matcher, c.IncludeCuisines, vocabulary.Cuisines())
	excluded := matcher.Match(s.matcher, c.ExcludeCuisines, vocabulary.Cuisines())
	diets := matcher.Match(s.matcher, c.Diets, vocabulary.Diets())
	intolerances := matcher.Match(s.matcher, c.Intolerances, vocabulary.Intolerances())
	mealTypes := matcher.Match(s.matcher, c.MealTypes, vocabulary.MealTypes())

	var minServings *int
	if c.PeoplePerMeal > 0 {
		minServings = intPtr(c.PeoplePerMeal)
	}

	reqs := make([]spoonacular.SearchRequest, 0, count)
	for i := 0; i < count; i++ {
		req := spoonacular.NewSearchRequest()
		req.Number = s.number
		req.Cuisine = cloneSlice(cuisines)
		req.ExcludeCuisine = cloneSlice(excluded)
		req.Diet = cloneSlice(diets)
		req.Intolerances = cloneSlice(intolerances)
		req.IncludeIngredients = cloneSlice(c.IncludeIngredients)
		req.ExcludeIngredients = cloneSlice(c.ExcludeIngredients)
		req.Type = s.mealType(mealTypes, i)
		if minServings != nil {
			req.MinServings = intPtr(*minServings)
		}
		applyNutrition(&req, c)
		reqs = append(reqs, req)
	}
	return reqs
}

func (s *Synthesizer) mealType(types []vocabulary.MealType, i int) *vocabulary.MealType {
	switch {
	case i < len(types):
	case s.wrapMealTypes && len(types) > 0:
		i %= len(types)
	default:
		return nil
	}
	t := types[i]
	return &t
}

// applyNutrition 為每個為真的營養旗標填入門檻
func applyNutrition(req *spoonacular.SearchRequest, c *extractor.Criteria) {
	flags := []struct {
		on  bool
		n   vocabulary.Nutrient
		dst **int
	}{
		{c.HighFiber, vocabulary.HighFiber, &req.MinFiber},
		{c.HighProtein, vocabulary.HighProtein, &req.MinProtein},
		{c.LowCalorie, vocabulary.LowCalorie, &req.MaxCalories},
		{c.LowCarb, vocabulary.LowCarb, &req.MaxCarbs},
		{c.LowFat, vocabulary.LowFat, &req.MaxFat},
		{c.LowCholesterol, vocabulary.LowCholesterol, &req.MaxCholesterol},
		{c.LowSatFat, vocabulary.LowSaturatedFat, &req.MaxSaturatedFat},
		{c.LowSodium, vocabulary.LowSodium, &req.MaxSodium},
	}
	for _, f := range flags {
		if !f.on {
			continue
		}
		if v, ok := vocabulary.Threshold(f.n); ok {
			*f.dst = intPtr(v)
		}
	}
}

func intPtr(v int) *int { return &v }

// cloneSlice 複製切片，空切片回傳 nil 以便序列化時省略
func cloneSlice[T any](in []T) []T {
	if len(in) == 0 {
		return nil
	}
	return append([]T(nil), in...)
}
