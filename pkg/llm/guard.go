package llm

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/time/rate"
)

// Guarded wraps a provider so every call is bounded by a timeout and
// throttled by a shared token bucket.
type Guarded struct {
	inner   LLMProvider
	timeout time.Duration
	limiter *rate.Limiter
}

var _ LLMProvider = &Guarded{}

// NewGuarded returns inner unchanged when both timeout and rps are zero.
func NewGuarded(inner LLMProvider, timeout time.Duration, rps float64, burst int) LLMProvider {
	if timeout <= 0 && rps <= 0 {
		return inner
	}
	g := &Guarded{inner: inner, timeout: timeout}
	if rps > 0 {
		if burst < 1 {
			burst = 1
		}
		g.limiter = rate.NewLimiter(rate.Limit(rps), burst)
	}
	return g
}

func (g *Guarded) Chat(ctx context.Context, history []Message, options ...Option) (string, error) {
	ctx, cancel := g.bound(ctx)
	defer cancel()
	if err := g.wait(ctx); err != nil {
		return "", err
	}
	return g.inner.Chat(ctx, history, options...)
}

func (g *Guarded) Generate(ctx context.Context, prompt string, options ...Option) (string, error) {
	ctx, cancel := g.bound(ctx)
	defer cancel()
	if err := g.wait(ctx); err != nil {
		return "", err
	}
	return g.inner.Generate(ctx, prompt, options...)
}

func (g *Guarded) bound(ctx context.Context) (context.Context, context.CancelFunc) {
	if g.timeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, g.timeout)
}

func (g *Guarded) wait(ctx context.Context) error {
	if g.limiter == nil {
		return nil
	}
	if err := g.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("llm rate limit: %w", err)
	}
	return nil
}
