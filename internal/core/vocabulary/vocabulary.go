// Package vocabulary 定義食譜搜尋 API 認得的固定詞彙與營養門檻
package vocabulary

// Cuisine 料理類型
type Cuisine string

// Diet 飲食型態
type Diet string

// Intolerance 食物不耐或過敏原
type Intolerance string

// MealType 餐點類型
type MealType string

const (
	CuisineAfrican         Cuisine = "African"
	CuisineAsian           Cuisine = "Asian"
	CuisineAmerican        Cuisine = "American"
	CuisineBritish         Cuisine = "British"
	CuisineCajun           Cuisine = "Cajun"
	CuisineCaribbean       Cuisine = "Caribbean"
	CuisineChinese         Cuisine = "Chinese"
	CuisineEasternEuropean Cuisine = "Eastern European"
	CuisineEuropean        Cuisine = "European"
	CuisineFrench          Cuisine = "French"
	CuisineGerman          Cuisine = "German"
	CuisineGreek           Cuisine = "Greek"
	CuisineIndian          Cuisine = "Indian"
	CuisineIrish           Cuisine = "Irish"
	CuisineItalian         Cuisine = "Italian"
	CuisineJapanese        Cuisine = "Japanese"
	CuisineJewish          Cuisine = "Jewish"
	CuisineKorean          Cuisine = "Korean"
	CuisineLatinAmerican   Cuisine = "Latin American"
	CuisineMediterranean   Cuisine = "Mediterranean"
	CuisineMexican         Cuisine = "Mexican"
	CuisineMiddleEastern   Cuisine = "Middle Eastern"
	CuisineNordic          Cuisine = "Nordic"
	CuisineSouthern        Cuisine = "Southern"
	CuisineSpanish         Cuisine = "Spanish"
	CuisineThai            Cuisine = "Thai"
	CuisineVietnamese      Cuisine = "Vietnamese"
)

const (
	DietGlutenFree      Diet = "Gluten Free"
	DietKetogenic       Diet = "Ketogenic"
	DietVegetarian      Diet = "Vegetarian"
	DietLactoVegetarian Diet = "Lacto Vegetarian"
	DietOvoVegetarian   Diet = "Ovo Vegetarian"
	DietVegan           Diet = "Vegan"
	DietPescatarian     Diet = "Pescatarian"
	DietPaleo           Diet = "Paleo"
	DietPrimal          Diet = "Primal"
	DietLowFODMAP       Diet = "Low FODMAP"
	DietWhole30         Diet = "Whole30"
)

const (
	IntoleranceDairy     Intolerance = "Dairy"
	IntoleranceEgg       Intolerance = "Egg"
	IntoleranceGluten    Intolerance = "Gluten"
	IntoleranceGrain     Intolerance = "Grain"
	IntolerancePeanut    Intolerance = "Peanut"
	IntoleranceSeafood   Intolerance = "Seafood"
	IntoleranceSesame    Intolerance = "Sesame"
	IntoleranceShellfish Intolerance = "Shellfish"
	IntoleranceSoy       Intolerance = "Soy"
	IntoleranceSulfite   Intolerance = "Sulfite"
	IntoleranceTreeNut   Intolerance = "Tree Nut"
	IntoleranceWheat     Intolerance = "Wheat"
)

const (
	MealTypeMainCourse MealType = "main course"
	MealTypeSideDish   MealType = "side dish"
	MealTypeDessert    MealType = "dessert"
	MealTypeAppetizer  MealType = "appetizer"
	MealTypeSalad      MealType = "salad"
	MealTypeBread      MealType = "bread"
	MealTypeBreakfast  MealType = "breakfast"
	MealTypeSoup       MealType = "soup"
	MealTypeBeverage   MealType = "beverage"
	MealTypeSauce      MealType = "sauce"
	MealTypeMarinade   MealType = "marinade"
	MealTypeFingerfood MealType = "fingerfood"
	MealTypeSnack      MealType = "snack"
	MealTypeDrink      MealType = "drink"
)

var (
	cuisines = []Cuisine{
		CuisineAfrican, CuisineAsian, CuisineAmerican, CuisineBritish, CuisineCajun,
		CuisineCaribbean, CuisineChinese, CuisineEasternEuropean, CuisineEuropean, CuisineFrench,
		CuisineGerman, CuisineGreek, CuisineIndian, CuisineIrish, CuisineItalian,
		CuisineJapanese, CuisineJewish, CuisineKorean, CuisineLatinAmerican, CuisineMediterranean,
		CuisineMexican, CuisineMiddleEastern, CuisineNordic, CuisineSouthern, CuisineSpanish,
		CuisineThai, CuisineVietnamese,
	}

	diets = []Diet{
		DietGlutenFree, DietKetogenic, DietVegetarian, DietLactoVegetarian, DietOvoVegetarian,
		DietVegan, DietPescatarian, DietPaleo, DietPrimal, DietLowFODMAP, DietWhole30,
	}

	intolerances = []Intolerance{
		IntoleranceDairy, IntoleranceEgg, IntoleranceGluten, IntoleranceGrain, IntolerancePeanut,
		IntoleranceSeafood, IntoleranceSesame, IntoleranceShellfish, IntoleranceSoy,
		IntoleranceSulfite, IntoleranceTreeNut, IntoleranceWheat,
	}

	mealTypes = []MealType{
		MealTypeMainCourse, MealTypeSideDish, MealTypeDessert, MealTypeAppetizer, MealTypeSalad,
		MealTypeBread, MealTypeBreakfast, MealTypeSoup, MealTypeBeverage, MealTypeSauce,
		MealTypeMarinade, MealTypeFingerfood, MealTypeSnack, MealTypeDrink,
	}
)

// Cuisines 回傳所有料理類型（副本）
func Cuisines() []Cuisine { return append([]Cuisine(nil), cuisines...) }

// Diets 回傳所有飲食型態（副本）
func Diets() []Diet { return append([]Diet(nil), diets...) }

// Intolerances 回傳所有不耐類型（副本）
func Intolerances() []Intolerance { return append([]Intolerance(nil), intolerances...) }

// MealTypes 回傳所有餐點類型（副本）
func MealTypes() []MealType { return append([]MealType(nil), mealTypes...) }

// Nutrient 營養旗標
type Nutrient string

const (
	HighFiber       Nutrient = "high_fiber"
	HighProtein     Nutrient = "high_protein"
	LowCalorie      Nutrient = "low_calorie"
	LowCarb         Nutrient = "low_carb"
	LowFat          Nutrient = "low_fat"
	LowCholesterol  Nutrient = "low_cholesterol"
	LowSaturatedFat Nutrient = "low_sat_fat"
	LowSodium       Nutrient = "low_sodium"
)

var nutrients = []Nutrient{
	HighFiber, HighProtein, LowCalorie, LowCarb, LowFat, LowCholesterol, LowSaturatedFat, LowSodium,
}

// 每份的門檻值：high 為下限，low 為上限
var thresholds = map[Nutrient]int{
	HighFiber:       5,   // g
	HighProtein:     25,  // g
	LowCalorie:      500, // kcal
	LowCarb:         30,  // g
	LowFat:          15,  // g
	LowCholesterol:  100, // mg
	LowSaturatedFat: 3,   // g
	LowSodium:       500, // mg
}

// Nutrients 回傳所有營養旗標（固定順序）
func Nutrients() []Nutrient { return append([]Nutrient(nil), nutrients...) }

// Threshold 取得營養旗標對應的門檻值，未知旗標回傳 0, false
func Threshold(n Nutrient) (int, bool) {
	v, ok := thresholds[n]
	return v, ok
}
