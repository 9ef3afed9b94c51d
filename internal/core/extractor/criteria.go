package extractor

import "fmt"

// Criteria 從自由文字擷取出的餐點條件
type Criteria struct {
	MealCount          int      `json:"meal_count"`
	PeoplePerMeal      int      `json:"people_per_meal"`
	MealTypes          []string `json:"meal_types"`
	IncludeCuisines    []string `json:"include_cuisines"`
	ExcludeCuisines    []string `json:"exclude_cuisines"`
	Diets              []string `json:"diets"`
	Intolerances       []string `json:"intolerances"`
	IncludeIngredients []string `json:"include_ingredients"`
	ExcludeIngredients []string `json:"exclude_ingredients"`
	HighFiber          bool     `json:"high_fiber"`
	HighProtein        bool     `json:"high_protein"`
	LowCalorie         bool     `json:"low_calorie"`
	LowCarb            bool     `json:"low_carb"`
	LowFat             bool     `json:"low_fat"`
	LowCholesterol     bool     `json:"low_cholesterol"`
	LowSatFat          bool     `json:"low_sat_fat"`
	LowSodium          bool     `json:"low_sodium"`
}

// ExtractionError 單一欄位擷取失敗
type ExtractionError struct {
	Field string
	Err   error
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("extract %s: %v", e.Field, e.Err)
}

func (e *ExtractionError) Unwrap() error {
	return e.Err
}
