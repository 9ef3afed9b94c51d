package spoonacular

import (
	"testing"

	"meal-planner/internal/core/vocabulary"

	"github.com/stretchr/testify/assert"
)

func TestValuesOmitsAbsentFields(t *testing.T) {
	v := NewSearchRequest().Values()

	for _, key := range []string{
		"query", "cuisine", "excludeCuisine", "diet", "intolerances",
		"includeIngredients", "excludeIngredients", "type", "minServings",
		"minFiber", "minProtein", "maxCalories", "maxCarbs", "maxFat",
		"maxCholesterol", "maxSaturatedFat", "maxSodium", "apiKey",
	} {
		assert.False(t, v.Has(key), key)
	}

	assert.Equal(t, "true", v.Get("instructionsRequired"))
	assert.Equal(t, "true", v.Get("addRecipeInstructions"))
	assert.Equal(t, "true", v.Get("addRecipeNutrition"))
	assert.Equal(t, "true", v.Get("addRecipeInformation"))
	assert.Equal(t, "0", v.Get("offset"))
	assert.Equal(t, "1", v.Get("number"))
}

func TestValuesPresentFields(t *testing.T) {
	soup := vocabulary.MealTypeSoup
	servings, sodium := 2, 500

	r := NewSearchRequest()
	r.Diet = []vocabulary.Diet{vocabulary.DietGlutenFree, vocabulary.DietVegan}
	r.Intolerances = []vocabulary.Intolerance{vocabulary.IntolerancePeanut}
	r.ExcludeIngredients = []string{"asparagus", " "}
	r.IncludeIngredients = []string{}
	r.Type = &soup
	r.MinServings = &servings
	r.MaxSodium = &sodium

	v := r.Values()
	assert.Equal(t, "Gluten Free,Vegan", v.Get("diet"))
	assert.Equal(t, "Peanut", v.Get("intolerances"))
	assert.Equal(t, "asparagus", v.Get("excludeIngredients"))
	assert.False(t, v.Has("includeIngredients"))
	assert.Equal(t, "soup", v.Get("type"))
	assert.Equal(t, "2", v.Get("minServings"))
	assert.Equal(t, "500", v.Get("maxSodium"))
	assert.Len(t, v["diet"], 1)
}
