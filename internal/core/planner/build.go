package planner

import (
	"io"

	"meal-planner/internal/core/ai/provider"
	"meal-planner/internal/core/extractor"
	"meal-planner/internal/core/formatter"
	"meal-planner/internal/core/spoonacular"
	"meal-planner/internal/core/synthesizer"
	"meal-planner/internal/infrastructure/config"
)

// FromConfig 依設定組裝完整流程
func FromConfig(cfg *config.Config, gen provider.Generator) (*Planner, error) {
	search, err := spoonacular.NewClient(spoonacular.Config{
		APIKey:    cfg.Spoonacular.APIKey,
		BaseURL:   cfg.Spoonacular.BaseURL,
		Timeout:   cfg.Spoonacular.Timeout,
		Workers:   cfg.Spoonacular.Workers,
		RateLimit: cfg.Spoonacular.RateLimit,
		RateBurst: cfg.Spoonacular.RateBurst,
	})
	if err != nil {
		return nil, err
	}

	ex := extractor.New(gen,
		extractor.WithConcurrency(cfg.Extraction.Concurrency),
		extractor.WithTimeout(cfg.Extraction.Timeout),
		extractor.WithTemperature(cfg.LLM.Temperature),
	)
	syn := synthesizer.New(
		synthesizer.WithMealTypeWrap(cfg.Synthesis.WrapMealTypes),
		synthesizer.WithNumber(cfg.Spoonacular.Number),
	)
	fm := formatter.New(gen, formatter.WithTimeout(cfg.Extraction.Timeout))

	return New(ex, syn, search, fm, WithMaxMeals(cfg.Synthesis.MaxMeals)), nil
}

// Close 釋放搜尋客戶端的連線
func (p *Planner) Close() error {
	if c, ok := p.searcher.(io.Closer); ok {
		return c.Close()
	}
	return nil
}
