package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"meal-planner/internal/core/extractor"
	"meal-planner/internal/core/planner"
	"meal-planner/internal/core/spoonacular"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

type stubPlanner struct {
	text     string
	planErr  error
	rendered bool
	closed   bool
}

func (s *stubPlanner) ExtractCriteria(ctx context.Context, text string) (*extractor.Criteria, error) {
	s.text = text
	return &extractor.Criteria{MealCount: 2, PeoplePerMeal: 4, Diets: []string{"vegan"}}, nil
}

func (s *stubPlanner) Plan(ctx context.Context, text string) (*planner.Plan, error) {
	s.text = text
	c, _ := s.ExtractCriteria(ctx, text)
	return &planner.Plan{
		Criteria: c,
		Requests: []spoonacular.SearchRequest{spoonacular.NewSearchRequest()},
		Meals:    []spoonacular.MealResult{{Index: 0, Err: s.planErr}},
	}, s.planErr
}

func (s *stubPlanner) Render(ctx context.Context, p *planner.Plan) (string, error) {
	s.rendered = true
	return "## Criteria", nil
}

func run(t *testing.T, stub *stubPlanner, stdin string, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	factory := func(ctx context.Context, logLevel string) (Planner, func() error, error) {
		return stub, func() error { stub.closed = true; return nil }, nil
	}
	cmd := New(factory, strings.NewReader(stdin), &out)
	err := cmd.Run(context.Background(), append([]string{"mealplan"}, args...))
	return out.String(), err
}

func TestPlanJSON(t *testing.T) {
	stub := &stubPlanner{}
	out, err := run(t, stub, "", "plan", "two", "vegan", "dinners")
	require.NoError(t, err)

	assert.Equal(t, "two vegan dinners", stub.text)
	assert.True(t, stub.closed)

	var body map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &body))
	assert.Contains(t, body, "criteria")
	assert.Contains(t, body, "meals")
}

func TestPlanCriteriaOnlyYAML(t *testing.T) {
	out, err := run(t, &stubPlanner{}, "", "plan", "--criteria-only", "--output", "yaml", "dinner")
	require.NoError(t, err)

	var body map[string]any
	require.NoError(t, yaml.Unmarshal([]byte(out), &body))
	assert.Equal(t, 2, body["meal_count"])
	assert.Equal(t, 4, body["people_per_meal"])
	assert.Equal(t, []any{"vegan"}, body["diets"])
}

func TestPlanMarkdown(t *testing.T) {
	stub := &stubPlanner{}
	out, err := run(t, stub, "", "plan", "-o", "markdown", "dinner")
	require.NoError(t, err)
	assert.True(t, stub.rendered)
	assert.Equal(t, "## Criteria\n", out)
}

func TestPlanReadsStdin(t *testing.T) {
	stub := &stubPlanner{}
	_, err := run(t, stub, "  lunch for one\n", "plan", "-c")
	require.NoError(t, err)
	assert.Equal(t, "lunch for one", stub.text)
}

func TestPlanErrors(t *testing.T) {
	_, err := run(t, &stubPlanner{}, "", "plan", "-o", "xml", "dinner")
	assert.ErrorContains(t, err, "unknown output format")

	_, err = run(t, &stubPlanner{}, "   ", "plan")
	assert.ErrorContains(t, err, "text is required")
}

func TestPlanAllMealsFailedStillPrints(t *testing.T) {
	stub := &stubPlanner{planErr: &planner.StageError{Stage: planner.StageSearch, Err: errors.New("quota")}}
	out, err := run(t, stub, "", "plan", "dinner")

	var stageErr *planner.StageError
	require.ErrorAs(t, err, &stageErr)
	assert.Equal(t, planner.StageSearch, stageErr.Stage)
	assert.Contains(t, out, `"error": "search failed: quota"`)
}

func TestNormalize(t *testing.T) {
	data, err := toYAML(map[string]any{"calories": 1.5, "count": 3})
	require.NoError(t, err)
	assert.Contains(t, string(data), "calories: 1.5")
	assert.Contains(t, string(data), "count: 3")
}
