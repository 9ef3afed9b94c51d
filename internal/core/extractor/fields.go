package extractor

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"meal-planner/internal/core/vocabulary"
	"meal-planner/internal/pkg/common"
)

// 欄位名稱，同時是模型輸出 JSON 物件的 key
const (
	FieldMealCount          = "meal_count"
	FieldPeoplePerMeal      = "people_per_meal"
	FieldMealTypes          = "meal_types"
	FieldIncludeCuisines    = "include_cuisines"
	FieldExcludeCuisines    = "exclude_cuisines"
	FieldDiets              = "diets"
	FieldIntolerances       = "intolerances"
	FieldIncludeIngredients = "include_ingredients"
	FieldExcludeIngredients = "exclude_ingredients"
	FieldHighFiber          = "high_fiber"
	FieldHighProtein        = "high_protein"
	FieldLowCalorie         = "low_calorie"
	FieldLowCarb            = "low_carb"
	FieldLowFat             = "low_fat"
	FieldLowCholesterol     = "low_cholesterol"
	FieldLowSatFat          = "low_sat_fat"
	FieldLowSodium          = "low_sodium"
)

type kind int

const (
	kindInt kind = iota
	kindBool
	kindStrings
)

func (k kind) shape() string {
	switch k {
	case kindInt:
		return "a single integer"
	case kindBool:
		return "a single boolean"
	default:
		return "a list of strings"
	}
}

func (k kind) example() string {
	switch k {
	case kindInt:
		return "2"
	case kindBool:
		return "false"
	default:
		return `["..."]`
	}
}

// field 一個欄位的擷取規則
type field struct {
	name     string
	kind     kind
	question string
	// mealsOnly 加上「以整餐思考」規則
	mealsOnly bool
	// needsCount 需要先擷取的 meal_count 作為上下文
	needsCount bool
	rules      []string
	labels     []string
	assign     func(c *Criteria, v any)
}

func intInto(dst func(*Criteria) *int) func(*Criteria, any) {
	return func(c *Criteria, v any) { *dst(c) = v.(int) }
}

func boolInto(dst func(*Criteria) *bool) func(*Criteria, any) {
	return func(c *Criteria, v any) { *dst(c) = v.(bool) }
}

func listInto(dst func(*Criteria) *[]string) func(*Criteria, any) {
	return func(c *Criteria, v any) { *dst(c) = v.([]string) }
}

func labelsOf[T ~string](vals []T) []string {
	out := make([]string, len(vals))
	for i, v := range vals {
		out[i] = string(v)
	}
	return out
}

func nutritionField(name, label, topic string, dst func(*Criteria) *bool) field {
	return field{
		name:      name,
		kind:      kindBool,
		question:  fmt.Sprintf("True or false, does the given prompt include a request for %s?", label),
		mealsOnly: true,
		rules:     []string{fmt.Sprintf("Return a default value of False if no mention is made of %s", topic)},
		assign:    boolInto(dst),
	}
}

// fields 依序定義全部 17 個欄位
var fields = []field{
	{
		name:      FieldMealCount,
		kind:      kindInt,
		question:  "How many meals are being requested?",
		mealsOnly: true,
		assign:    intInto(func(c *Criteria) *int { return &c.MealCount }),
	},
	{
		name:       FieldPeoplePerMeal,
		kind:       kindInt,
		question:   "How many people are attending each meal?",
		mealsOnly:  true,
		needsCount: true,
		assign:     intInto(func(c *Criteria) *int { return &c.PeoplePerMeal }),
	},
	{
		name:       FieldMealTypes,
		kind:       kindStrings,
		question:   "What meal types are requested?",
		mealsOnly:  true,
		needsCount: true,
		rules:      []string{"If no meal types are requested, return an empty list"},
		labels:     labelsOf(vocabulary.MealTypes()),
		assign:     listInto(func(c *Criteria) *[]string { return &c.MealTypes }),
	},
	{
		name:      FieldIncludeCuisines,
		kind:      kindStrings,
		question:  "What cuisines are desired, liked, or requested?",
		mealsOnly: true,
		rules:     []string{"If no cuisines are desired, return an empty list"},
		labels:    labelsOf(vocabulary.Cuisines()),
		assign:    listInto(func(c *Criteria) *[]string { return &c.IncludeCuisines }),
	},
	{
		name:      FieldExcludeCuisines,
		kind:      kindStrings,
		question:  "What cuisines are not desired or disliked?",
		mealsOnly: true,
		rules:     []string{"If no cuisines match, return an empty list"},
		labels:    labelsOf(vocabulary.Cuisines()),
		assign:    listInto(func(c *Criteria) *[]string { return &c.ExcludeCuisines }),
	},
	{
		name:      FieldDiets,
		kind:      kindStrings,
		question:  "What diets are desired, liked, requested, or being followed?",
		mealsOnly: true,
		rules:     []string{"If there are no diets mentioned, return an empty list"},
		labels:    labelsOf(vocabulary.Diets()),
		assign:    listInto(func(c *Criteria) *[]string { return &c.Diets }),
	},
	{
		name:      FieldIntolerances,
		kind:      kindStrings,
		question:  "What food intolerances or allergies are specified, noted, or indicated?",
		mealsOnly: true,
		rules:     []string{"If there are no food intolerances, return an empty list"},
		labels:    labelsOf(vocabulary.Intolerances()),
		assign:    listInto(func(c *Criteria) *[]string { return &c.Intolerances }),
	},
	{
		name:     FieldIncludeIngredients,
		kind:     kindStrings,
		question: "What ingredients are requested, available, or desired?",
		rules: []string{
			"Do not include any ingredients not specifically described in the prompt",
			"If no ingredients are mentioned, return an empty list",
		},
		assign: listInto(func(c *Criteria) *[]string { return &c.IncludeIngredients }),
	},
	{
		name:     FieldExcludeIngredients,
		kind:     kindStrings,
		question: "What ingredients are unavailable or disliked?",
		rules: []string{
			"Do not include any ingredients not specifically described in the prompt",
			"If no ingredients are mentioned, return an empty list",
		},
		assign: listInto(func(c *Criteria) *[]string { return &c.ExcludeIngredients }),
	},
	nutritionField(FieldHighFiber, "a high fiber diet", "fiber",
		func(c *Criteria) *bool { return &c.HighFiber }),
	nutritionField(FieldHighProtein, "a high protein diet", "protein",
		func(c *Criteria) *bool { return &c.HighProtein }),
	nutritionField(FieldLowCalorie, "a low calorie diet", "calories",
		func(c *Criteria) *bool { return &c.LowCalorie }),
	nutritionField(FieldLowCarb, "a low carb diet", "carbs",
		func(c *Criteria) *bool { return &c.LowCarb }),
	nutritionField(FieldLowFat, "a low fat diet", "fat",
		func(c *Criteria) *bool { return &c.LowFat }),
	nutritionField(FieldLowCholesterol, "a low cholesterol diet", "cholesterol",
		func(c *Criteria) *bool { return &c.LowCholesterol }),
	nutritionField(FieldLowSatFat, "a diet low in saturated fat", "saturated fat",
		func(c *Criteria) *bool { return &c.LowSatFat }),
	nutritionField(FieldLowSodium, "a low sodium diet", "sodium or salt",
		func(c *Criteria) *bool { return &c.LowSodium }),
}

// FieldNames 回傳全部欄位名稱（固定順序）
func FieldNames() []string {
	names := make([]string, len(fields))
	for i, f := range fields {
		names[i] = f.name
	}
	return names
}

// instruction 組出欄位的 system prompt
func (f field) instruction() string {
	var b strings.Builder
	b.WriteString("You are an information-extraction specialist. Always:\n")
	b.WriteString("- Read the entire input carefully\n")
	b.WriteString("- Extract only the fields and information requested\n")
	fmt.Fprintf(&b, "- Return them exactly as %s, with no additional commentary\n", f.kind.shape())
	if f.mealsOnly {
		b.WriteString("- Think in terms of entire meals only, not recipes or courses\n")
	}
	fmt.Fprintf(&b, "- Your response should answer the question, %q\n", f.question)
	for _, r := range f.rules {
		fmt.Fprintf(&b, "- %s\n", r)
	}
	if len(f.labels) > 0 {
		fmt.Fprintf(&b, "- Prefer these names when they apply: %s\n", strings.Join(f.labels, ", "))
	}
	fmt.Fprintf(&b, "- Respond with only a JSON object of the form {\"%s\": %s}", f.name, f.kind.example())
	return b.String()
}

// input 組出欄位的 user prompt
func (f field) input(text string, mealCount int) string {
	var b strings.Builder
	fmt.Fprintf(&b, "meal_plan_prompt: %s", text)
	if f.needsCount {
		fmt.Fprintf(&b, "\nmeal_count: %d", mealCount)
	}
	return b.String()
}

// parse 從模型回覆取出欄位值並轉型
func (f field) parse(content string) (any, error) {
	obj, err := common.ExtractJSONObject(common.StripCodeFence(content))
	if err != nil {
		return nil, err
	}

	var m map[string]json.RawMessage
	if err := common.ParseJSON(obj, &m); err != nil {
		// 小模型常漏掉鍵名的雙引號
		if common.ParseJSON(common.QuoteJSONKeys(obj), &m) != nil {
			return nil, fmt.Errorf("invalid JSON object: %w", err)
		}
	}
	raw, ok := m[f.name]
	if !ok {
		return nil, fmt.Errorf("missing key %q", f.name)
	}

	switch f.kind {
	case kindInt:
		return coerceInt(raw)
	case kindBool:
		return coerceBool(raw)
	default:
		return coerceStrings(raw)
	}
}

func decodeValue(raw json.RawMessage) (any, error) {
	var v any
	if err := common.ParseJSONBytes(raw, &v); err != nil {
		return nil, err
	}
	return v, nil
}

func coerceInt(raw json.RawMessage) (int, error) {
	v, err := decodeValue(raw)
	if err != nil {
		return 0, err
	}
	switch t := v.(type) {
	case json.Number:
		if n, err := t.Int64(); err == nil {
			return int(n), nil
		}
		f, err := t.Float64()
		if err != nil || f != float64(int64(f)) {
			return 0, fmt.Errorf("not an integer: %s", t)
		}
		return int(f), nil
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(t))
		if err != nil {
			return 0, fmt.Errorf("not an integer: %q", t)
		}
		return n, nil
	default:
		return 0, fmt.Errorf("expected integer, got %s", string(raw))
	}
}

func coerceBool(raw json.RawMessage) (bool, error) {
	v, err := decodeValue(raw)
	if err != nil {
		return false, err
	}
	switch t := v.(type) {
	case bool:
		return t, nil
	case string:
		switch strings.ToLower(strings.TrimSpace(t)) {
		case "true":
			return true, nil
		case "false":
			return false, nil
		}
		return false, fmt.Errorf("not a boolean: %q", t)
	default:
		return false, fmt.Errorf("expected boolean, got %s", string(raw))
	}
}

var errNotList = errors.New("expected list of strings")

func coerceStrings(raw json.RawMessage) ([]string, error) {
	v, err := decodeValue(raw)
	if err != nil {
		return nil, err
	}
	switch t := v.(type) {
	case nil:
		return []string{}, nil
	case string:
		// 模型偶爾回傳單一字串
		if s := strings.TrimSpace(t); s != "" {
			return []string{s}, nil
		}
		return []string{}, nil
	case []any:
		out := make([]string, 0, len(t))
		for _, item := range t {
			s, ok := item.(string)
			if !ok {
				return nil, fmt.Errorf("%w: element %v", errNotList, item)
			}
			if s = strings.TrimSpace(s); s != "" {
				out = append(out, s)
			}
		}
		return out, nil
	default:
		return nil, fmt.Errorf("%w, got %s", errNotList, string(raw))
	}
}
