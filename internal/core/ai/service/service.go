package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"meal-planner/internal/core/ai/ollama"
	"meal-planner/internal/core/ai/openrouter"
	"meal-planner/internal/core/ai/provider"
	"meal-planner/internal/infrastructure/config"
	"meal-planner/internal/pkg/common"

	"go.uber.org/zap"
)

// Service 包裝實際的 LLM 後端，統一記錄呼叫耗時與結果
type Service struct {
	backend string
	inner   provider.Provider
}

var _ provider.Provider = (*Service)(nil)

// ErrEmptyResponse 後端未回傳錯誤也未回傳內容
var ErrEmptyResponse = errors.New("llm backend returned no response")

// NewProvider 依設定選擇 LLM 後端
func NewProvider(cfg *config.Config) (*Service, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is required")
	}

	var inner provider.Provider
	switch cfg.LLM.Provider {
	case config.ProviderOpenRouter, "":
		inner = openrouter.NewClient(provider.Config{
			APIKey:      cfg.OpenRouter.APIKey,
			Model:       cfg.OpenRouter.Model,
			BaseURL:     cfg.OpenRouter.BaseURL,
			Timeout:     cfg.OpenRouter.Timeout,
			MaxTokens:   cfg.OpenRouter.MaxTokens,
			Temperature: cfg.LLM.Temperature,
		})
	case config.ProviderOllama:
		inner = ollama.NewClient(provider.Config{
			Model:       cfg.Ollama.Model,
			BaseURL:     cfg.Ollama.BaseURL,
			Timeout:     cfg.Ollama.Timeout,
			Temperature: cfg.LLM.Temperature,
		})
	default:
		return nil, fmt.Errorf("unknown llm provider %q", cfg.LLM.Provider)
	}

	backend := cfg.LLM.Provider
	if backend == "" {
		backend = config.ProviderOpenRouter
	}
	return Wrap(backend, inner), nil
}

// Wrap 以記錄與指標包裝任意後端
func Wrap(backend string, inner provider.Provider) *Service {
	return &Service{backend: backend, inner: inner}
}

// Backend 後端名稱
func (s *Service) Backend() string {
	return s.backend
}

// Generate 轉呼叫後端並記錄結果
func (s *Service) Generate(ctx context.Context, req *provider.Request) (*provider.Response, error) {
	start := time.Now()
	resp, err := s.inner.Generate(ctx, req)
	elapsed := time.Since(start)
	if err == nil && resp == nil {
		err = ErrEmptyResponse
	}

	outcome := "success"
	if err != nil {
		outcome = "error"
		common.LogWarn("LLM 呼叫失敗",
			zap.String("backend", s.backend),
			zap.String("model", s.inner.GetModel()),
			zap.Duration("duration", elapsed),
			zap.Error(err),
		)
	} else {
		llmTokens.WithLabelValues(s.backend).Add(float64(resp.Usage.TotalTokens))
		common.LogDebug("LLM 呼叫完成",
			zap.String("backend", s.backend),
			zap.Duration("duration", elapsed),
			zap.Int("total_tokens", resp.Usage.TotalTokens),
		)
	}
	llmRequests.WithLabelValues(s.backend, outcome).Inc()
	llmDuration.WithLabelValues(s.backend).Observe(elapsed.Seconds())

	return resp, err
}

// GetModel 模型名稱
func (s *Service) GetModel() string {
	return s.inner.GetModel()
}

// GetTimeout 請求超時時間
func (s *Service) GetTimeout() time.Duration {
	return s.inner.GetTimeout()
}

// Close 關閉後端連線
func (s *Service) Close() error {
	return s.inner.Close()
}
