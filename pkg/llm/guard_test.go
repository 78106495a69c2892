package llm

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type blockingProvider struct{}

func (blockingProvider) Chat(ctx context.Context, _ []Message, _ ...Option) (string, error) {
	<-ctx.Done()
	return "", ctx.Err()
}

func (b blockingProvider) Generate(ctx context.Context, prompt string, opts ...Option) (string, error) {
	return b.Chat(ctx, nil, opts...)
}

type echoProvider struct{}

func (echoProvider) Chat(_ context.Context, h []Message, _ ...Option) (string, error) {
	return h[len(h)-1].Content, nil
}

func (e echoProvider) Generate(ctx context.Context, prompt string, opts ...Option) (string, error) {
	return e.Chat(ctx, []Message{{Role: RoleUser, Content: prompt}}, opts...)
}

func TestNewGuarded_Passthrough(t *testing.T) {
	inner := echoProvider{}
	assert.Equal(t, LLMProvider(inner), NewGuarded(inner, 0, 0, 0))
}

func TestGuarded_Timeout(t *testing.T) {
	p := NewGuarded(blockingProvider{}, 20*time.Millisecond, 0, 0)

	start := time.Now()
	_, err := p.Generate(context.Background(), "hi")

	require.Error(t, err)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Less(t, time.Since(start), time.Second)
}

func TestGuarded_RateLimitHonoursContext(t *testing.T) {
	p := NewGuarded(echoProvider{}, 0, 0.001, 1)

	out, err := p.Generate(context.Background(), "first")
	require.NoError(t, err)
	assert.Equal(t, "first", out)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	_, err = p.Generate(ctx, "second")
	assert.Error(t, err)
}

func TestApplyOptions(t *testing.T) {
	o := ApplyOptions(Options{Temperature: 0.7, Model: "base"}, WithModel("override"), WithMaxTokens(42))
	assert.Equal(t, "override", o.Model)
	assert.Equal(t, 42, o.MaxTokens)
	assert.Equal(t, 0.7, o.Temperature)
}
