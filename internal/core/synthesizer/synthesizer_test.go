package synthesizer

import (
	"testing"

	"meal-planner/internal/core/extractor"
	"meal-planner/internal/core/matcher"
	"meal-planner/internal/core/spoonacular"
	"meal-planner/internal/core/vocabulary"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMealTypesPositional(t *testing.T) {
	c := &extractor.Criteria{MealCount: 2, MealTypes: []string{"dessert"}}

	reqs := New().Synthesize(c)
	require.Len(t, reqs, 2)
	require.NotNil(t, reqs[0].Type)
	assert.Equal(t, vocabulary.MealTypeDessert, *reqs[0].Type)
	assert.Nil(t, reqs[1].Type)
	assert.False(t, reqs[1].Values().Has("type"))
}

func TestMealTypesWrap(t *testing.T) {
	c := &extractor.Criteria{MealCount: 3, MealTypes: []string{"breakfast", "soup"}}

	reqs := New(WithMealTypeWrap(true)).Synthesize(c)
	require.Len(t, reqs, 3)
	assert.Equal(t, vocabulary.MealTypeBreakfast, *reqs[0].Type)
	assert.Equal(t, vocabulary.MealTypeSoup, *reqs[1].Type)
	assert.Equal(t, vocabulary.MealTypeBreakfast, *reqs[2].Type)

	// 沒有任何可用的餐點類型時仍留空
	reqs = New(WithMealTypeWrap(true)).Synthesize(&extractor.Criteria{MealCount: 2})
	assert.Nil(t, reqs[0].Type)
	assert.Nil(t, reqs[1].Type)
}

func TestMealTypesMatchedBeforeIndexing(t *testing.T) {
	// 無法比對的值被丟棄後，後面的值往前遞補
	c := &extractor.Criteria{MealCount: 2, MealTypes: []string{"Quxzplorf", "Desert", "salad"}}

	reqs := New().Synthesize(c)
	assert.Equal(t, vocabulary.MealTypeDessert, *reqs[0].Type)
	assert.Equal(t, vocabulary.MealTypeSalad, *reqs[1].Type)
}

func TestNutritionThresholds(t *testing.T) {
	c := &extractor.Criteria{MealCount: 1, HighFiber: true, LowSodium: false}

	reqs := New().Synthesize(c)
	require.Len(t, reqs, 1)
	require.NotNil(t, reqs[0].MinFiber)
	assert.Equal(t, 5, *reqs[0].MinFiber)
	assert.Nil(t, reqs[0].MaxSodium)
}

func TestAllNutritionFlags(t *testing.T) {
	c := &extractor.Criteria{
		MealCount:      1,
		HighFiber:      true,
		HighProtein:    true,
		LowCalorie:     true,
		LowCarb:        true,
		LowFat:         true,
		LowCholesterol: true,
		LowSatFat:      true,
		LowSodium:      true,
	}
	v := New().Synthesize(c)[0].Values()

	want := map[string]string{
		"minFiber":        "5",
		"minProtein":      "25",
		"maxCalories":     "500",
		"maxCarbs":        "30",
		"maxFat":          "15",
		"maxCholesterol":  "100",
		"maxSaturatedFat": "3",
		"maxSodium":       "500",
	}
	for key, val := range want {
		assert.Equal(t, val, v.Get(key), key)
	}
}

func TestCountInvariant(t *testing.T) {
	for n := -3; n <= 25; n++ {
		reqs := New().Synthesize(&extractor.Criteria{MealCount: n, MealTypes: []string{"soup"}})
		require.NotNil(t, reqs)
		assert.Len(t, reqs, max(n, 0), "meal_count=%d", n)
	}
}

func TestNonPositiveMealCount(t *testing.T) {
	for _, n := range []int{0, -1} {
		reqs := New().Synthesize(&extractor.Criteria{MealCount: n, Diets: []string{"vegan"}})
		assert.NotNil(t, reqs)
		assert.Empty(t, reqs)
	}
	assert.Empty(t, New().Synthesize(nil))
}

func TestLargeMealCountNotTruncated(t *testing.T) {
	reqs := New().Synthesize(&extractor.Criteria{MealCount: 500, MealTypes: []string{"dinner"}})
	require.Len(t, reqs, 500)
	require.NotNil(t, reqs[0].Type)
	assert.Nil(t, reqs[499].Type)
}

func TestSharedCriteria(t *testing.T) {
	c := &extractor.Criteria{
		MealCount:          3,
		PeoplePerMeal:      4,
		IncludeCuisines:    []string{"Mexicn", "Quxzplorf"},
		ExcludeCuisines:    []string{"french"},
		Diets:              []string{"gluten free"},
		Intolerances:       []string{"peanuts"},
		IncludeIngredients: []string{"pears", "cheese sticks"},
		ExcludeIngredients: []string{"peanut butter"},
	}

	reqs := New().Synthesize(c)
	require.Len(t, reqs, 3)
	for _, r := range reqs {
		assert.Equal(t, []vocabulary.Cuisine{vocabulary.CuisineMexican}, r.Cuisine)
		assert.Equal(t, []vocabulary.Cuisine{vocabulary.CuisineFrench}, r.ExcludeCuisine)
		assert.Equal(t, []vocabulary.Diet{vocabulary.DietGlutenFree}, r.Diet)
		assert.Equal(t, []vocabulary.Intolerance{vocabulary.IntolerancePeanut}, r.Intolerances)
		assert.Equal(t, []string{"pears", "cheese sticks"}, r.IncludeIngredients)
		assert.Equal(t, []string{"peanut butter"}, r.ExcludeIngredients)
		require.NotNil(t, r.MinServings)
		assert.Equal(t, 4, *r.MinServings)
		assert.True(t, r.InstructionsRequired)
		assert.Equal(t, 1, r.Number)
	}

	// 每個請求持有自己的副本
	reqs[0].IncludeIngredients[0] = "apples"
	*reqs[0].MinServings = 10
	assert.Equal(t, "pears", reqs[1].IncludeIngredients[0])
	assert.Equal(t, 4, *reqs[1].MinServings)
	assert.Equal(t, "pears", c.IncludeIngredients[0])
}

func TestEmptyMatchesOmitted(t *testing.T) {
	c := &extractor.Criteria{MealCount: 1, IncludeCuisines: []string{"Quxzplorf"}, Diets: []string{}}

	r := New().Synthesize(c)[0]
	assert.Nil(t, r.Cuisine)
	assert.Nil(t, r.Diet)
	assert.Nil(t, r.MinServings)
	v := r.Values()
	assert.False(t, v.Has("cuisine"))
	assert.False(t, v.Has("diet"))
	assert.False(t, v.Has("minServings"))
}

func TestOptions(t *testing.T) {
	strict := matcher.New(matcher.WithThreshold(0.95))
	reqs := New(WithMatcher(strict), WithNumber(3)).Synthesize(&extractor.Criteria{
		MealCount:       1,
		IncludeCuisines: []string{"Mexicn"},
	})
	assert.Nil(t, reqs[0].Cuisine)
	assert.Equal(t, 3, reqs[0].Number)
	assert.IsType(t, spoonacular.SearchRequest{}, reqs[0])
}
