// Package formatter 以一次 LLM 呼叫將任意 JSON 內容轉成易讀的 Markdown。
package formatter

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"meal-planner/internal/core/ai/provider"
	"meal-planner/internal/pkg/common"
)

const instruction = `You are a markdown and json expert. Always:
- Read the entire input carefully
- Write markdown based solely on the input
- Return a markdown formatted string that is a human readable article
- Break the result into sections based on the json input
- Be concise, and disregard any null or empty values in the input json
- Respond with the markdown only, without wrapping it in a code block`

const (
	defaultTimeout   = 90 * time.Second
	defaultMaxTokens = 1024
)

// ErrEmptyOutput 模型沒有回傳內容
var ErrEmptyOutput = errors.New("formatter returned empty markdown")

// Formatter Markdown 格式化器
type Formatter struct {
	gen       provider.Generator
	timeout   time.Duration
	maxTokens int
}

// Option 格式化器選項
type Option func(*Formatter)

// WithTimeout 單次呼叫超時
func WithTimeout(d time.Duration) Option {
	return func(f *Formatter) {
		if d > 0 {
			f.timeout = d
		}
	}
}

// WithMaxTokens 回覆 token 上限
func WithMaxTokens(n int) Option {
	return func(f *Formatter) {
		if n > 0 {
			f.maxTokens = n
		}
	}
}

// New 創建格式化器
func New(gen provider.Generator, opts ...Option) *Formatter {
	f := &Formatter{gen: gen, timeout: defaultTimeout, maxTokens: defaultMaxTokens}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Format 將 v 編碼成 JSON 後交給模型轉為 Markdown。
// string、[]byte 與 json.RawMessage 視為已編碼的 JSON。
func (f *Formatter) Format(ctx context.Context, v any) (string, error) {
	payload, err := encode(v)
	if err != nil {
		return "", err
	}

	ctx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	resp, err := f.gen.Generate(ctx, &provider.Request{
		Messages: []provider.Message{
			{Role: provider.RoleSystem, Content: instruction},
			{Role: provider.RoleUser, Content: "json_object: " + payload},
		},
		MaxTokens: f.maxTokens,
	})
	if err != nil {
		return "", fmt.Errorf("format markdown: %w", err)
	}
	if resp == nil {
		return "", ErrEmptyOutput
	}

	md := common.StripCodeFence(resp.Content)
	if md == "" {
		return "", ErrEmptyOutput
	}
	return md, nil
}

func encode(v any) (string, error) {
	switch t := v.(type) {
	case nil:
		return "", errors.New("nothing to format")
	case string:
		return nonEmpty(t)
	case []byte:
		return nonEmpty(string(t))
	case json.RawMessage:
		return nonEmpty(string(t))
	}
	s, err := common.ToJSON(v)
	if err != nil {
		return "", fmt.Errorf("encode input: %w", err)
	}
	return s, nil
}

func nonEmpty(s string) (string, error) {
	if s = strings.TrimSpace(s); s == "" {
		return "", errors.New("nothing to format")
	}
	return s, nil
}
