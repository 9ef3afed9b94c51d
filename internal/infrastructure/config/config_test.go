package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("LLM_PROVIDER", "")
	t.Setenv("OPENROUTER_API_KEY", "or-test-key-123456")
	t.Setenv("SPOONACULAR_API_KEY", "spoon-test-key-123456")
}

func TestLoadConfigDefaults(t *testing.T) {
	t.Chdir(t.TempDir())
	setRequiredEnv(t)

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, ProviderOpenRouter, cfg.LLM.Provider)
	assert.Equal(t, "https://api.spoonacular.com", cfg.Spoonacular.BaseURL)
	assert.Equal(t, 4, cfg.Extraction.Concurrency)
	assert.Equal(t, 60*time.Second, cfg.Extraction.Timeout)
	assert.Zero(t, cfg.Synthesis.MaxMeals)
	assert.False(t, cfg.Synthesis.WrapMealTypes)
	assert.Equal(t, 1, cfg.Spoonacular.Number)
	assert.Equal(t, "spoon-test-key-123456", cfg.Spoonacular.APIKey)
}

func TestLoadConfigEnvOverrides(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("LLM_PROVIDER", ProviderOllama)
	t.Setenv("OLLAMA_MODEL", "llama3.2:3b")
	t.Setenv("SPOONAPIKEY", "legacy-spoon-key")
	t.Setenv("APP_EXTRACTION_CONCURRENCY", "8")
	t.Setenv("APP_SYNTHESIS_WRAP_MEAL_TYPES", "true")
	t.Setenv("RATE_LIMIT_WINDOW", "30s")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, ProviderOllama, cfg.LLM.Provider)
	assert.Equal(t, "llama3.2:3b", cfg.Ollama.Model)
	assert.Equal(t, "legacy-spoon-key", cfg.Spoonacular.APIKey)
	assert.Equal(t, 8, cfg.Extraction.Concurrency)
	assert.True(t, cfg.Synthesis.WrapMealTypes)
	assert.Equal(t, 30*time.Second, cfg.RateLimit.Window)
}

func TestLoadConfigValidation(t *testing.T) {
	tests := []struct {
		name   string
		env    map[string]string
		errMsg string
	}{
		{
			name:   "missing spoonacular key",
			env:    map[string]string{"OPENROUTER_API_KEY": "or-key"},
			errMsg: "spoonacular api key is required",
		},
		{
			name:   "missing openrouter key",
			env:    map[string]string{"SPOONACULAR_API_KEY": "spoon-key"},
			errMsg: "openrouter api key is required",
		},
		{
			name: "unknown provider",
			env: map[string]string{
				"SPOONACULAR_API_KEY": "spoon-key",
				"LLM_PROVIDER":        "gpt4all",
			},
			errMsg: "unknown llm provider",
		},
		{
			name: "zero workers",
			env: map[string]string{
				"OPENROUTER_API_KEY":      "or-key",
				"SPOONACULAR_API_KEY":     "spoon-key",
				"APP_SPOONACULAR_WORKERS": "0",
			},
			errMsg: "invalid spoonacular workers",
		},
		{
			name: "negative max meals",
			env: map[string]string{
				"OPENROUTER_API_KEY":      "or-key",
				"SPOONACULAR_API_KEY":     "spoon-key",
				"APP_SYNTHESIS_MAX_MEALS": "-1",
			},
			errMsg: "invalid synthesis max meals",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Chdir(t.TempDir())
			t.Setenv("LLM_PROVIDER", "")
			t.Setenv("OPENROUTER_API_KEY", "")
			t.Setenv("SPOONACULAR_API_KEY", "")
			t.Setenv("SPOONAPIKEY", "")
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			_, err := LoadConfig()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}
