package spoonacular

// SearchResult complexSearch 回應。四個頂層欄位為必要欄位。
type SearchResult struct {
	Results      []RecipeDetail `json:"results"`
	Offset       int            `json:"offset"`
	Number       int            `json:"number"`
	TotalResults int            `json:"totalResults"`
}

// rawSearchResult 用於檢查必要欄位是否存在
type rawSearchResult struct {
	Results      *[]RecipeDetail `json:"results"`
	Offset       *int            `json:"offset"`
	Number       *int            `json:"number"`
	TotalResults *int            `json:"totalResults"`
}

// RecipeDetail 食譜內容；API 依查詢參數決定回傳哪些欄位，全部為選填
type RecipeDetail struct {
	ID             *int    `json:"id,omitempty"`
	Title          *string `json:"title,omitempty"`
	Image          *string `json:"image,omitempty"`
	ImageType      *string `json:"imageType,omitempty"`
	Servings       *int    `json:"servings,omitempty"`
	ReadyInMinutes *int    `json:"readyInMinutes,omitempty"`
	CookingMinutes *int    `json:"cookingMinutes,omitempty"`

	PreparationMinutes   *int     `json:"preparationMinutes,omitempty"`
	License              *string  `json:"license,omitempty"`
	SourceName           *string  `json:"sourceName,omitempty"`
	SourceURL            *string  `json:"sourceUrl,omitempty"`
	SpoonacularSourceURL *string  `json:"spoonacularSourceUrl,omitempty"`
	HealthScore          *float64 `json:"healthScore,omitempty"`
	SpoonacularScore     *float64 `json:"spoonacularScore,omitempty"`
	PricePerServing      *float64 `json:"pricePerServing,omitempty"`
	CreditsText          *string  `json:"creditsText,omitempty"`
	Gaps                 *string  `json:"gaps,omitempty"`
	Instructions         *string  `json:"instructions,omitempty"`
	Summary              *string  `json:"summary,omitempty"`

	Cheap                    *bool    `json:"cheap,omitempty"`
	DairyFree                *bool    `json:"dairyFree,omitempty"`
	GlutenFree               *bool    `json:"glutenFree,omitempty"`
	Ketogenic                *bool    `json:"ketogenic,omitempty"`
	LowFodmap                *bool    `json:"lowFodmap,omitempty"`
	Sustainable              *bool    `json:"sustainable,omitempty"`
	Vegan                    *bool    `json:"vegan,omitempty"`
	Vegetarian               *bool    `json:"vegetarian,omitempty"`
	VeryHealthy              *bool    `json:"veryHealthy,omitempty"`
	VeryPopular              *bool    `json:"veryPopular,omitempty"`
	Whole30                  *bool    `json:"whole30,omitempty"`
	WeightWatcherSmartPoints *float64 `json:"weightWatcherSmartPoints,omitempty"`

	Cuisines  []string `json:"cuisines,omitempty"`
	Diets     []string `json:"diets,omitempty"`
	Occasions []string `json:"occasions,omitempty"`
	DishTypes []string `json:"dishTypes,omitempty"`

	ExtendedIngredients  []ExtendedIngredient `json:"extendedIngredients,omitempty"`
	AnalyzedInstructions []InstructionSet     `json:"analyzedInstructions,omitempty"`
	Nutrition            *Nutrition           `json:"nutrition,omitempty"`
	WinePairing          *WinePairing         `json:"winePairing,omitempty"`
}

// UnitMeasure 單位換算
type UnitMeasure struct {
	Amount    *float64 `json:"amount,omitempty"`
	UnitLong  *string  `json:"unitLong,omitempty"`
	UnitShort *string  `json:"unitShort,omitempty"`
}

// Measures 美制與公制份量
type Measures struct {
	US     *UnitMeasure `json:"us,omitempty"`
	Metric *UnitMeasure `json:"metric,omitempty"`
}

// ExtendedIngredient 食材明細
type ExtendedIngredient struct {
	ID           *int      `json:"id,omitempty"`
	Aisle        *string   `json:"aisle,omitempty"`
	Amount       *float64  `json:"amount,omitempty"`
	Consistency  *string   `json:"consistency,omitempty"`
	Image        *string   `json:"image,omitempty"`
	Measures     *Measures `json:"measures,omitempty"`
	Meta         []string  `json:"meta,omitempty"`
	Name         *string   `json:"name,omitempty"`
	Original     *string   `json:"original,omitempty"`
	OriginalName *string   `json:"originalName,omitempty"`
	Unit         *string   `json:"unit,omitempty"`
}

// InstructionSet 分段步驟
type InstructionSet struct {
	Name  *string           `json:"name,omitempty"`
	Steps []InstructionStep `json:"steps,omitempty"`
}

// InstructionStep 單一步驟
type InstructionStep struct {
	Number *int    `json:"number,omitempty"`
	Step   *string `json:"step,omitempty"`
}

// Nutrition addRecipeNutrition 回傳的營養資訊
type Nutrition struct {
	Nutrients        []Nutrient        `json:"nutrients,omitempty"`
	CaloricBreakdown *CaloricBreakdown `json:"caloricBreakdown,omitempty"`
	WeightPerServing *Weight           `json:"weightPerServing,omitempty"`
}

// Nutrient 單一營養素
type Nutrient struct {
	Name                *string  `json:"name,omitempty"`
	Amount              *float64 `json:"amount,omitempty"`
	Unit                *string  `json:"unit,omitempty"`
	PercentOfDailyNeeds *float64 `json:"percentOfDailyNeeds,omitempty"`
}

// CaloricBreakdown 熱量來源比例
type CaloricBreakdown struct {
	PercentProtein *float64 `json:"percentProtein,omitempty"`
	PercentFat     *float64 `json:"percentFat,omitempty"`
	PercentCarbs   *float64 `json:"percentCarbs,omitempty"`
}

// Weight 重量
type Weight struct {
	Amount *float64 `json:"amount,omitempty"`
	Unit   *string  `json:"unit,omitempty"`
}

// WinePairing 佐餐酒建議
type WinePairing struct {
	PairedWines    []string       `json:"pairedWines,omitempty"`
	PairingText    *string        `json:"pairingText,omitempty"`
	ProductMatches []ProductMatch `json:"productMatches,omitempty"`
}

// ProductMatch 推薦酒款
type ProductMatch struct {
	ID            *int     `json:"id,omitempty"`
	Title         *string  `json:"title,omitempty"`
	Description   *string  `json:"description,omitempty"`
	Price         *string  `json:"price,omitempty"`
	ImageURL      *string  `json:"imageUrl,omitempty"`
	AverageRating *float64 `json:"averageRating,omitempty"`
	RatingCount   *float64 `json:"ratingCount,omitempty"`
	Score         *float64 `json:"score,omitempty"`
	Link          *string  `json:"link,omitempty"`
}
