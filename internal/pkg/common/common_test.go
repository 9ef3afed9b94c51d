package common

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestCustomError(t *testing.T) {
	cause := errors.New("upstream 402")
	err := ErrSearchAPI.WithCause(cause)

	assert.Equal(t, http.StatusBadGateway, err.Status)
	assert.ErrorIs(t, err, cause)
	assert.ErrorIs(t, fmt.Errorf("wrapped: %w", err), ErrSearchAPI)
	assert.NotErrorIs(t, err, ErrSearchDecode)
	assert.Contains(t, err.Error(), "upstream 402")

	resp := err.Response("search", "meal=2")
	assert.Equal(t, ErrCodeSearchAPIError, resp.Code)
	assert.Equal(t, "search", resp.Stage)
	assert.Equal(t, "meal=2", resp.Details)
}

func TestParseJSON(t *testing.T) {
	var v map[string]any
	require.NoError(t, ParseJSON(`{"meal_count": 3}`, &v))
	assert.Equal(t, "3", fmt.Sprint(v["meal_count"]))

	assert.Error(t, ParseJSON(`{"a": 1} {"b": 2}`, &v))
	assert.Error(t, ParseJSONBytes([]byte(`{"a":`), &v))
}

func TestQuoteJSONKeys(t *testing.T) {
	assert.Equal(t, `{"meal_count": 2, "diets": ["vegan"]}`, QuoteJSONKeys(`{meal_count: 2, diets: ["vegan"]}`))
	assert.Equal(t, `{"a": 1}`, QuoteJSONKeys(`{"a": 1}`))
}

func TestStripCodeFence(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"```json\n{\"a\": 1}\n```", `{"a": 1}`},
		{"```markdown\n# Title\n```", "# Title"},
		{"```{\"a\": 1}```", `{"a": 1}`},
		{"  plain  ", "plain"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, StripCodeFence(tt.in))
	}
}

func TestExtractJSONObject(t *testing.T) {
	obj, err := ExtractJSONObject("Sure! {\"low_fat\": true} hope this helps")
	require.NoError(t, err)
	assert.Equal(t, `{"low_fat": true}`, obj)

	_, err = ExtractJSONObject("no object here")
	assert.Error(t, err)
}

func TestMaskSecret(t *testing.T) {
	assert.Equal(t, "****", MaskSecret(""))
	assert.Equal(t, "****", MaskSecret("short"))
	assert.Equal(t, "abcd...6789", MaskSecret("abcdef0123456789"))
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, zapcore.DebugLevel, ParseLevel("DEBUG"))
	assert.Equal(t, zapcore.WarnLevel, ParseLevel(" warning "))
	assert.Equal(t, zapcore.InfoLevel, ParseLevel("nonsense"))
}

func TestLogFiltersSecrets(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	prev := Logger
	Logger = zap.New(core)
	t.Cleanup(func() { Logger = prev })

	LogInfo("config loaded",
		zap.String("spoonacular_api_key", "raw-key"),
		zap.String("apiKey", "raw-key"),
		zap.String("model", "gemma3:4b"),
	)

	entries := logs.All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	assert.NotContains(t, fields, "spoonacular_api_key")
	assert.NotContains(t, fields, "apiKey")
	assert.Equal(t, "gemma3:4b", fields["model"])
}

func TestLogAICall(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	prev := Logger
	Logger = zap.New(core)
	t.Cleanup(func() { Logger = prev })

	LogAICall("diets", 0, nil)
	LogAICall("diets", 0, errors.New("timeout"))

	entries := logs.All()
	require.Len(t, entries, 2)
	assert.Equal(t, zapcore.DebugLevel, entries[0].Level)
	assert.Equal(t, zapcore.ErrorLevel, entries[1].Level)
	assert.Equal(t, "diets", entries[1].ContextMap()["field"])
}
