package vocabulary

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSetSizes(t *testing.T) {
	assert.Len(t, Cuisines(), 27)
	assert.Len(t, Diets(), 11)
	assert.Len(t, Intolerances(), 12)
	assert.Len(t, MealTypes(), 14)
	assert.Len(t, Nutrients(), 8)
}

func TestSetsAreCopies(t *testing.T) {
	c := Cuisines()
	c[0] = "Martian"
	assert.Equal(t, CuisineAfrican, Cuisines()[0])
}

func TestSetsHaveUniqueLabels(t *testing.T) {
	seen := map[string]bool{}
	for _, c := range Cuisines() {
		assert.False(t, seen[string(c)], "duplicate cuisine %q", c)
		seen[string(c)] = true
	}
	seen = map[string]bool{}
	for _, m := range MealTypes() {
		assert.False(t, seen[string(m)], "duplicate meal type %q", m)
		seen[string(m)] = true
	}
}

func TestThreshold(t *testing.T) {
	tests := []struct {
		nutrient Nutrient
		want     int
	}{
		{HighFiber, 5},
		{HighProtein, 25},
		{LowCalorie, 500},
		{LowCarb, 30},
		{LowFat, 15},
		{LowCholesterol, 100},
		{LowSaturatedFat, 3},
		{LowSodium, 500},
	}
	for _, tt := range tests {
		t.Run(string(tt.nutrient), func(t *testing.T) {
			got, ok := Threshold(tt.nutrient)
			assert.True(t, ok)
			assert.Equal(t, tt.want, got)
		})
	}

	_, ok := Threshold("high_sugar")
	assert.False(t, ok)
}
