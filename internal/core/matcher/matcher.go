// Package matcher 將 LLM 擷取出的自由字串對應到固定詞彙。
//
// 每個輸入字串獨立計算與詞彙中每個值的相似度，取分數最高者；
// 分數低於門檻時直接丟棄（不是錯誤）。同分時取詞彙中順序較前者。
package matcher

import (
	"strings"
	"unicode/utf8"

	"github.com/agnivade/levenshtein"
	"golang.org/x/text/cases"
)

// DefaultThreshold 接受配對的最低相似度（含）
const DefaultThreshold = 0.7

// 浮點比較容忍值，避免 0.7 因捨入誤差被判為未達門檻
const scoreEpsilon = 1e-9

// Scorer 計算兩字串的相似度，1.0 代表完全相同
type Scorer func(a, b string) float64

// Matcher 模糊比對器，建立後不可變，可並發使用
type Matcher struct {
	scorer    Scorer
	threshold float64
}

// Option 比對器選項
type Option func(*Matcher)

// WithScorer 替換相似度演算法
func WithScorer(s Scorer) Option {
	return func(m *Matcher) {
		if s != nil {
			m.scorer = s
		}
	}
}

// WithThreshold 設定門檻值
func WithThreshold(t float64) Option {
	return func(m *Matcher) {
		m.threshold = t
	}
}

// New 創建比對器
func New(opts ...Option) *Matcher {
	m := &Matcher{
		scorer:    Similarity,
		threshold: DefaultThreshold,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Default 使用 Levenshtein 相似度與 0.7 門檻的比對器
var Default = New()

// Threshold 回傳門檻值
func (m *Matcher) Threshold() float64 {
	return m.threshold
}

// Best 找出與 input 最接近的 label 索引；未達門檻時 ok 為 false
func (m *Matcher) Best(input string, labels []string) (index int, score float64, ok bool) {
	index = -1
	for i, label := range labels {
		s := m.scorer(input, label)
		// 嚴格大於：同分保留較前者
		if index == -1 || s > score {
			index, score = i, s
		}
	}
	if index == -1 || score+scoreEpsilon < m.threshold {
		return -1, score, false
	}
	return index, score, true
}

// Match 將 inputs 逐一對應到 vocab 中最接近的值。
// nil 輸入回傳 nil；空切片回傳空切片。結果保持輸入順序且不去重。
func Match[T ~string](m *Matcher, inputs []string, vocab []T) []T {
	if inputs == nil {
		return nil
	}
	if m == nil {
		m = Default
	}

	labels := make([]string, len(vocab))
	for i, v := range vocab {
		labels[i] = string(v)
	}

	out := make([]T, 0, len(inputs))
	for _, input := range inputs {
		if idx, _, ok := m.Best(input, labels); ok {
			out = append(out, vocab[idx])
		}
	}
	return out
}

// Similarity 正規化 Levenshtein 相似度：1 - distance / max(len)。
// 比較前會去除前後空白並做 Unicode case folding；任一方為空字串時回傳 0。
func Similarity(a, b string) float64 {
	a, b = normalize(a), normalize(b)
	if a == "" || b == "" {
		return 0
	}
	if a == b {
		return 1
	}

	longest := utf8.RuneCountInString(a)
	if n := utf8.RuneCountInString(b); n > longest {
		longest = n
	}
	dist := levenshtein.ComputeDistance(a, b)
	return 1 - float64(dist)/float64(longest)
}

func normalize(s string) string {
	s = strings.Join(strings.Fields(s), " ")
	// Caser 帶狀態，不可跨 goroutine 共用
	return cases.Fold().String(s)
}
