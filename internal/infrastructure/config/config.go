package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// 支援的 LLM 後端
const (
	ProviderOpenRouter = "openrouter"
	ProviderOllama     = "ollama"
)

// Config 應用配置
type Config struct {
	App         AppConfig         `mapstructure:"app"`
	Server      ServerConfig      `mapstructure:"server"`
	LLM         LLMConfig         `mapstructure:"llm"`
	OpenRouter  OpenRouterConfig  `mapstructure:"openrouter"`
	Ollama      OllamaConfig      `mapstructure:"ollama"`
	Extraction  ExtractionConfig  `mapstructure:"extraction"`
	Synthesis   SynthesisConfig   `mapstructure:"synthesis"`
	Spoonacular SpoonacularConfig `mapstructure:"spoonacular"`
	RateLimit   RateLimitConfig   `mapstructure:"rate_limit"`
	BodyLimit   int64             `mapstructure:"body_limit"`
	DedupWindow time.Duration     `mapstructure:"dedup_window"`
	LogLevel    string            `mapstructure:"log_level"`
}

// AppConfig 應用程式設定
type AppConfig struct {
	Env     string `mapstructure:"env"`
	Debug   bool   `mapstructure:"debug"`
	Version string `mapstructure:"version"`
	Name    string `mapstructure:"name"`
}

// ServerConfig 服務器配置
type ServerConfig struct {
	Port           int           `mapstructure:"port"`
	ReadTimeout    time.Duration `mapstructure:"read_timeout"`
	WriteTimeout   time.Duration `mapstructure:"write_timeout"`
	IdleTimeout    time.Duration `mapstructure:"idle_timeout"`
	RequestTimeout time.Duration `mapstructure:"request_timeout"`
}

// LLMConfig 文字生成後端的共用設定
type LLMConfig struct {
	Provider    string  `mapstructure:"provider"`
	Temperature float64 `mapstructure:"temperature"`
}

// OpenRouterConfig OpenRouter 配置
type OpenRouterConfig struct {
	APIKey    string        `mapstructure:"api_key"`
	BaseURL   string        `mapstructure:"base_url"`
	Model     string        `mapstructure:"model"`
	MaxTokens int           `mapstructure:"max_tokens"`
	Timeout   time.Duration `mapstructure:"timeout"`
}

// OllamaConfig 本地 Ollama 配置
type OllamaConfig struct {
	BaseURL string        `mapstructure:"base_url"`
	Model   string        `mapstructure:"model"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// ExtractionConfig 條件擷取設定
type ExtractionConfig struct {
	Concurrency int           `mapstructure:"concurrency"`
	Timeout     time.Duration `mapstructure:"timeout"`
}

// SynthesisConfig 搜尋請求產生設定
type SynthesisConfig struct {
	WrapMealTypes bool `mapstructure:"wrap_meal_types"`
	MaxMeals      int  `mapstructure:"max_meals"`
}

// SpoonacularConfig 食譜搜尋 API 設定
type SpoonacularConfig struct {
	APIKey    string        `mapstructure:"api_key"`
	BaseURL   string        `mapstructure:"base_url"`
	Timeout   time.Duration `mapstructure:"timeout"`
	Workers   int           `mapstructure:"workers"`
	RateLimit float64       `mapstructure:"rate_limit"`
	RateBurst int           `mapstructure:"rate_burst"`
	Number    int           `mapstructure:"number"`
}

// RateLimitConfig 速率限制配置
type RateLimitConfig struct {
	Enabled  bool          `mapstructure:"enabled"`
	Requests int           `mapstructure:"requests"`
	Window   time.Duration `mapstructure:"window"`
}

// LoadConfig 載入設定
func LoadConfig() (*Config, error) {
	// .env 可有可無
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix("APP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// 綁定環境變量
	bindings := map[string][]string{
		"llm.provider":          {"LLM_PROVIDER"},
		"openrouter.api_key":    {"OPENROUTER_API_KEY"},
		"openrouter.model":      {"OPENROUTER_MODEL"},
		"openrouter.max_tokens": {"MODEL_MAX_TOKENS"},
		"ollama.base_url":       {"OLLAMA_BASE_URL"},
		"ollama.model":          {"OLLAMA_MODEL"},
		"spoonacular.api_key":   {"SPOONACULAR_API_KEY", "SPOONAPIKEY"},
		"spoonacular.base_url":  {"SPOONACULAR_BASE_URL"},
		"rate_limit.enabled":    {"RATE_LIMIT_ENABLED"},
		"rate_limit.requests":   {"RATE_LIMIT_REQUESTS"},
		"rate_limit.window":     {"RATE_LIMIT_WINDOW"},
		"dedup_window":          {"DEDUP_WINDOW"},
		"log_level":             {"LOG_LEVEL"},
	}
	for key, envs := range bindings {
		if err := v.BindEnv(append([]string{key}, envs...)...); err != nil {
			return nil, fmt.Errorf("failed to bind env for %s: %w", key, err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validateConfig(&config); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &config, nil
}

// setDefaults 設定預設值
func setDefaults(v *viper.Viper) {
	// 應用程式設定
	v.SetDefault("app.env", "development")
	v.SetDefault("app.debug", true)
	v.SetDefault("app.version", "1.0.0")
	v.SetDefault("app.name", "meal-planner")

	// 伺服器設定
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.read_timeout", "30s")
	v.SetDefault("server.write_timeout", "180s")
	v.SetDefault("server.idle_timeout", "120s")
	v.SetDefault("server.request_timeout", "170s")

	// LLM 設定
	v.SetDefault("llm.provider", ProviderOpenRouter)
	v.SetDefault("llm.temperature", 0.0)

	v.SetDefault("openrouter.base_url", "https://openrouter.ai/api/v1")
	v.SetDefault("openrouter.model", "google/gemma-3-4b-it:free")
	v.SetDefault("openrouter.max_tokens", 512)
	v.SetDefault("openrouter.timeout", "60s")

	v.SetDefault("ollama.base_url", "http://localhost:11434")
	v.SetDefault("ollama.model", "gemma3:4b")
	v.SetDefault("ollama.timeout", "120s")

	// 擷取與產生設定
	v.SetDefault("extraction.concurrency", 4)
	v.SetDefault("extraction.timeout", "60s")
	v.SetDefault("synthesis.wrap_meal_types", false)
	v.SetDefault("synthesis.max_meals", 0)

	// 食譜搜尋設定
	v.SetDefault("spoonacular.base_url", "https://api.spoonacular.com")
	v.SetDefault("spoonacular.timeout", "20s")
	v.SetDefault("spoonacular.workers", 2)
	v.SetDefault("spoonacular.rate_limit", 1.0)
	v.SetDefault("spoonacular.rate_burst", 2)
	v.SetDefault("spoonacular.number", 1)

	// 限流設定
	v.SetDefault("rate_limit.enabled", true)
	v.SetDefault("rate_limit.requests", 30)
	v.SetDefault("rate_limit.window", "1m")

	v.SetDefault("body_limit", 64*1024)
	v.SetDefault("dedup_window", "1s")
	v.SetDefault("log_level", "info")
}

// validateConfig 驗證設定
func validateConfig(config *Config) error {
	if config.Server.Port <= 0 {
		return fmt.Errorf("server port is required")
	}

	switch config.LLM.Provider {
	case ProviderOpenRouter:
		if config.OpenRouter.APIKey == "" {
			return fmt.Errorf("openrouter api key is required")
		}
		if config.OpenRouter.Timeout <= 0 {
			return fmt.Errorf("invalid openrouter timeout")
		}
	case ProviderOllama:
		if config.Ollama.BaseURL == "" {
			return fmt.Errorf("ollama base url is required")
		}
		if config.Ollama.Timeout <= 0 {
			return fmt.Errorf("invalid ollama timeout")
		}
	default:
		return fmt.Errorf("unknown llm provider %q", config.LLM.Provider)
	}

	if config.Extraction.Concurrency <= 0 {
		return fmt.Errorf("invalid extraction concurrency")
	}
	if config.Extraction.Timeout <= 0 {
		return fmt.Errorf("invalid extraction timeout")
	}
	if config.Synthesis.MaxMeals < 0 {
		return fmt.Errorf("invalid synthesis max meals")
	}

	if config.Spoonacular.APIKey == "" {
		return fmt.Errorf("spoonacular api key is required")
	}
	if config.Spoonacular.Workers <= 0 {
		return fmt.Errorf("invalid spoonacular workers")
	}
	if config.Spoonacular.Timeout <= 0 {
		return fmt.Errorf("invalid spoonacular timeout")
	}
	if config.Spoonacular.RateLimit <= 0 || config.Spoonacular.RateBurst <= 0 {
		return fmt.Errorf("invalid spoonacular rate limit")
	}
	if config.Spoonacular.Number <= 0 {
		return fmt.Errorf("invalid spoonacular result number")
	}

	if config.RateLimit.Enabled {
		if config.RateLimit.Requests <= 0 {
			return fmt.Errorf("invalid rate limit requests")
		}
		if config.RateLimit.Window <= 0 {
			return fmt.Errorf("invalid rate limit window")
		}
	}

	return nil
}
