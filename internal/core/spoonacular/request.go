package spoonacular

import (
	"net/url"
	"strconv"
	"strings"

	"meal-planner/internal/core/vocabulary"
)

// SearchRequest 單一餐點的 complexSearch 查詢。
// nil 指標與空切片代表「不限制」，序列化時不會出現在查詢參數中。
type SearchRequest struct {
	Query              string                   `json:"query,omitempty"`
	Cuisine            []vocabulary.Cuisine     `json:"cuisine,omitempty"`
	ExcludeCuisine     []vocabulary.Cuisine     `json:"excludeCuisine,omitempty"`
	Diet               []vocabulary.Diet        `json:"diet,omitempty"`
	Intolerances       []vocabulary.Intolerance `json:"intolerances,omitempty"`
	IncludeIngredients []string                 `json:"includeIngredients,omitempty"`
	ExcludeIngredients []string                 `json:"excludeIngredients,omitempty"`
	Type               *vocabulary.MealType     `json:"type,omitempty"`
	MinServings        *int                     `json:"minServings,omitempty"`
	MinFiber           *int                     `json:"minFiber,omitempty"`
	MinProtein         *int                     `json:"minProtein,omitempty"`
	MaxCalories        *int                     `json:"maxCalories,omitempty"`
	MaxCarbs           *int                     `json:"maxCarbs,omitempty"`
	MaxFat             *int                     `json:"maxFat,omitempty"`
	MaxCholesterol     *int                     `json:"maxCholesterol,omitempty"`
	MaxSaturatedFat    *int                     `json:"maxSaturatedFat,omitempty"`
	MaxSodium          *int                     `json:"maxSodium,omitempty"`

	InstructionsRequired  bool `json:"instructionsRequired"`
	AddRecipeInstructions bool `json:"addRecipeInstructions"`
	AddRecipeNutrition    bool `json:"addRecipeNutrition"`
	AddRecipeInformation  bool `json:"addRecipeInformation"`
	Offset                int  `json:"offset"`
	Number                int  `json:"number"`
}

// DefaultNumber 每餐取回的食譜數
const DefaultNumber = 1

// NewSearchRequest 建立帶固定旗標的空查詢
func NewSearchRequest() SearchRequest {
	return SearchRequest{
		InstructionsRequired:  true,
		AddRecipeInstructions: true,
		AddRecipeNutrition:    true,
		AddRecipeInformation:  true,
		Offset:                0,
		Number:                DefaultNumber,
	}
}

// Values 序列化為查詢參數，多值欄位以逗號連接。不含 apiKey。
func (r SearchRequest) Values() url.Values {
	v := url.Values{}

	if q := strings.TrimSpace(r.Query); q != "" {
		v.Set("query", q)
	}
	setList(v, "cuisine", r.Cuisine)
	setList(v, "excludeCuisine", r.ExcludeCuisine)
	setList(v, "diet", r.Diet)
	setList(v, "intolerances", r.Intolerances)
	setList(v, "includeIngredients", r.IncludeIngredients)
	setList(v, "excludeIngredients", r.ExcludeIngredients)
	if r.Type != nil {
		v.Set("type", string(*r.Type))
	}

	for _, p := range []struct {
		key string
		val *int
	}{
		{"minServings", r.MinServings},
		{"minFiber", r.MinFiber},
		{"minProtein", r.MinProtein},
		{"maxCalories", r.MaxCalories},
		{"maxCarbs", r.MaxCarbs},
		{"maxFat", r.MaxFat},
		{"maxCholesterol", r.MaxCholesterol},
		{"maxSaturatedFat", r.MaxSaturatedFat},
		{"maxSodium", r.MaxSodium},
	} {
		if p.val != nil {
			v.Set(p.key, strconv.Itoa(*p.val))
		}
	}

	v.Set("instructionsRequired", strconv.FormatBool(r.InstructionsRequired))
	v.Set("addRecipeInstructions", strconv.FormatBool(r.AddRecipeInstructions))
	v.Set("addRecipeNutrition", strconv.FormatBool(r.AddRecipeNutrition))
	v.Set("addRecipeInformation", strconv.FormatBool(r.AddRecipeInformation))
	v.Set("offset", strconv.Itoa(r.Offset))
	v.Set("number", strconv.Itoa(r.Number))
	return v
}

func setList[T ~string](v url.Values, key string, items []T) {
	parts := make([]string, 0, len(items))
	for _, item := range items {
		if s := strings.TrimSpace(string(item)); s != "" {
			parts = append(parts, s)
		}
	}
	if len(parts) > 0 {
		v.Set(key, strings.Join(parts, ","))
	}
}
