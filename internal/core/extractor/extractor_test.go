package extractor

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"meal-planner/internal/core/ai/provider"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	dinnerForTwo = "Plan a dinner for two that does not include asparagus. My partner is allergic to peanuts and I am on a low sodium diet."
	familyOfFour = "Plan two lunches and two dinners for a family of four. Pears and cheese sticks are favorites, and we do not like peanut butter. Try to keep the meals high in protein and low in fat."
)

// stubGenerator 依 system prompt 中的欄位名稱回傳預設內容
type stubGenerator struct {
	replies map[string]string
	errs    map[string]error
	delay   time.Duration
	block   map[string]bool

	mu       sync.Mutex
	order    []string
	inputs   map[string]string
	inFlight int32
	peak     int32
}

func newStub(replies map[string]string) *stubGenerator {
	return &stubGenerator{
		replies: replies,
		errs:    map[string]error{},
		block:   map[string]bool{},
		inputs:  map[string]string{},
	}
}

func fieldOf(req *provider.Request) string {
	system := req.Messages[0].Content
	for _, name := range FieldNames() {
		if strings.Contains(system, fmt.Sprintf(`{"%s":`, name)) {
			return name
		}
	}
	return ""
}

func (s *stubGenerator) Generate(ctx context.Context, req *provider.Request) (*provider.Response, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	n := atomic.AddInt32(&s.inFlight, 1)
	defer atomic.AddInt32(&s.inFlight, -1)
	for {
		p := atomic.LoadInt32(&s.peak)
		if n <= p || atomic.CompareAndSwapInt32(&s.peak, p, n) {
			break
		}
	}

	name := fieldOf(req)
	s.mu.Lock()
	s.order = append(s.order, name)
	s.inputs[name] = req.Messages[1].Content
	blocked := s.block[name]
	err := s.errs[name]
	reply, ok := s.replies[name]
	s.mu.Unlock()

	if blocked {
		<-ctx.Done()
		return nil, ctx.Err()
	}
	if s.delay > 0 {
		select {
		case <-time.After(s.delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("no reply for %q", name)
	}
	return &provider.Response{Content: reply}, nil
}

func (s *stubGenerator) position(name string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, n := range s.order {
		if n == name {
			return i
		}
	}
	return -1
}

func familyReplies() map[string]string {
	return map[string]string{
		FieldMealCount:          `{"meal_count": 4}`,
		FieldPeoplePerMeal:      "```json\n{\"people_per_meal\": \"4\"}\n```",
		FieldMealTypes:          `{"meal_types": ["lunch", "lunch", "dinner", "dinner"]}`,
		FieldIncludeCuisines:    `{"include_cuisines": []}`,
		FieldExcludeCuisines:    `{"exclude_cuisines": null}`,
		FieldDiets:              `{"diets": []}`,
		FieldIntolerances:       `{"intolerances": []}`,
		FieldIncludeIngredients: `Sure! {"include_ingredients": ["pears", "cheese sticks"]}`,
		FieldExcludeIngredients: `{"exclude_ingredients": ["peanut butter"]}`,
		FieldHighFiber:          `{"high_fiber": false}`,
		FieldHighProtein:        `{"high_protein": true}`,
		FieldLowCalorie:         `{"low_calorie": false}`,
		FieldLowCarb:            `{"low_carb": false}`,
		FieldLowFat:             `{"low_fat": "True"}`,
		FieldLowCholesterol:     `{"low_cholesterol": false}`,
		FieldLowSatFat:          `{"low_sat_fat": false}`,
		FieldLowSodium:          `{"low_sodium": false}`,
	}
}

func TestExtract(t *testing.T) {
	stub := newStub(familyReplies())
	c, err := New(stub).Extract(context.Background(), familyOfFour)
	require.NoError(t, err)

	assert.Equal(t, &Criteria{
		MealCount:          4,
		PeoplePerMeal:      4,
		MealTypes:          []string{"lunch", "lunch", "dinner", "dinner"},
		IncludeCuisines:    []string{},
		ExcludeCuisines:    []string{},
		Diets:              []string{},
		Intolerances:       []string{},
		IncludeIngredients: []string{"pears", "cheese sticks"},
		ExcludeIngredients: []string{"peanut butter"},
		HighProtein:        true,
		LowFat:             true,
	}, c)
	assert.Len(t, stub.order, 17)

	out, err := json.Marshal(c)
	require.NoError(t, err)
	assert.Contains(t, string(out), `"low_sat_fat":false`)
	assert.Contains(t, string(out), `"exclude_cuisines":[]`)
}

func TestExtractDependentFieldsWaitForMealCount(t *testing.T) {
	stub := newStub(familyReplies())
	_, err := New(stub, WithConcurrency(1)).Extract(context.Background(), familyOfFour)
	require.NoError(t, err)

	count := stub.position(FieldMealCount)
	assert.Equal(t, 0, count)
	assert.Greater(t, stub.position(FieldPeoplePerMeal), count)
	assert.Greater(t, stub.position(FieldMealTypes), count)

	assert.Contains(t, stub.inputs[FieldPeoplePerMeal], "meal_count: 4")
	assert.Contains(t, stub.inputs[FieldMealTypes], "meal_count: 4")
	assert.NotContains(t, stub.inputs[FieldDiets], "meal_count")
	assert.Contains(t, stub.inputs[FieldDiets], familyOfFour)
}

func TestExtractBoundsConcurrency(t *testing.T) {
	stub := newStub(familyReplies())
	stub.delay = 10 * time.Millisecond

	_, err := New(stub, WithConcurrency(3)).Extract(context.Background(), familyOfFour)
	require.NoError(t, err)
	assert.LessOrEqual(t, atomic.LoadInt32(&stub.peak), int32(3))
	assert.Greater(t, atomic.LoadInt32(&stub.peak), int32(1))
}

func TestExtractBackendFailureNamesField(t *testing.T) {
	stub := newStub(familyReplies())
	boom := errors.New("backend unreachable")
	stub.errs[FieldDiets] = boom

	c, err := New(stub).Extract(context.Background(), dinnerForTwo)
	assert.Nil(t, c)

	var extErr *ExtractionError
	require.ErrorAs(t, err, &extErr)
	assert.Equal(t, FieldDiets, extErr.Field)
	assert.ErrorIs(t, err, boom)
}

func TestExtractMalformedOutput(t *testing.T) {
	tests := []struct {
		name  string
		field string
		reply string
	}{
		{name: "no json", field: FieldMealCount, reply: "I think two meals"},
		{name: "fractional count", field: FieldMealCount, reply: `{"meal_count": 2.5}`},
		{name: "wrong key", field: FieldHighFiber, reply: `{"fiber": true}`},
		{name: "bool as word", field: FieldLowSodium, reply: `{"low_sodium": "maybe"}`},
		{name: "list of numbers", field: FieldIntolerances, reply: `{"intolerances": [1, 2]}`},
		{name: "count dependent", field: FieldPeoplePerMeal, reply: `{"people_per_meal": "a few"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			replies := familyReplies()
			replies[tt.field] = tt.reply

			_, err := New(newStub(replies)).Extract(context.Background(), dinnerForTwo)
			var extErr *ExtractionError
			require.ErrorAs(t, err, &extErr)
			assert.Equal(t, tt.field, extErr.Field)
		})
	}
}

func TestExtractMealCountFailureSkipsDependents(t *testing.T) {
	stub := newStub(familyReplies())
	stub.errs[FieldMealCount] = errors.New("down")

	_, err := New(stub).Extract(context.Background(), dinnerForTwo)
	var extErr *ExtractionError
	require.ErrorAs(t, err, &extErr)
	assert.Equal(t, FieldMealCount, extErr.Field)
	assert.Equal(t, -1, stub.position(FieldPeoplePerMeal))
	assert.Equal(t, -1, stub.position(FieldMealTypes))
}

func TestExtractPerFieldTimeout(t *testing.T) {
	stub := newStub(familyReplies())
	stub.block[FieldLowCarb] = true

	_, err := New(stub, WithTimeout(20*time.Millisecond)).Extract(context.Background(), dinnerForTwo)
	var extErr *ExtractionError
	require.ErrorAs(t, err, &extErr)
	assert.Equal(t, FieldLowCarb, extErr.Field)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestExtractEmptyText(t *testing.T) {
	_, err := New(newStub(nil)).Extract(context.Background(), "   ")
	assert.ErrorIs(t, err, ErrEmptyText)
}

func TestExtractCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := New(newStub(familyReplies())).Extract(ctx, dinnerForTwo)
	assert.ErrorIs(t, err, context.Canceled)
}
