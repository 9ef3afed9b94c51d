package formatter

import (
	"context"
	"errors"
	"strings"
	"testing"

	"meal-planner/internal/core/ai/provider"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type replyGenerator struct {
	content string
	err     error
	last    *provider.Request
}

func (g *replyGenerator) Generate(ctx context.Context, req *provider.Request) (*provider.Response, error) {
	g.last = req
	if g.err != nil {
		return nil, g.err
	}
	return &provider.Response{Content: g.content}, nil
}

func TestFormat(t *testing.T) {
	gen := &replyGenerator{content: "```markdown\n## Meal Plan\n- 2 meals\n```"}

	md, err := New(gen).Format(context.Background(), map[string]int{"meal_count": 2})
	require.NoError(t, err)
	assert.Equal(t, "## Meal Plan\n- 2 meals", md)

	require.Len(t, gen.last.Messages, 2)
	assert.Contains(t, gen.last.Messages[0].Content, "disregard any null or empty values")
	assert.Equal(t, `json_object: {"meal_count":2}`, gen.last.Messages[1].Content)
	assert.False(t, gen.last.JSONMode)
}

func TestFormatRawJSON(t *testing.T) {
	gen := &replyGenerator{content: "# Recipe"}

	_, err := New(gen).Format(context.Background(), `  {"title":"Soup"} `)
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(gen.last.Messages[1].Content, `{"title":"Soup"}`))
}

func TestFormatErrors(t *testing.T) {
	boom := errors.New("boom")

	_, err := New(&replyGenerator{err: boom}).Format(context.Background(), map[string]string{"a": "b"})
	assert.ErrorIs(t, err, boom)

	_, err = New(&replyGenerator{content: "``` ```"}).Format(context.Background(), map[string]string{"a": "b"})
	assert.ErrorIs(t, err, ErrEmptyOutput)

	_, err = New(&replyGenerator{content: "x"}).Format(context.Background(), nil)
	assert.Error(t, err)

	_, err = New(&replyGenerator{content: "x"}).Format(context.Background(), "   ")
	assert.Error(t, err)

	_, err = New(&replyGenerator{content: "x"}).Format(context.Background(), make(chan int))
	assert.ErrorContains(t, err, "encode input")
}
