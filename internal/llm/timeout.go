// ABOUTME: TimeoutProvider decorator bounds each LLM call with a deadline
// ABOUTME: A stalled provider fails with context.DeadlineExceeded instead of hanging
package llm

import (
	"context"
	"time"
)

// TimeoutProvider is a decorator that applies a deadline to every call.
type TimeoutProvider struct {
	inner   Provider
	timeout time.Duration
}

// WithTimeout wraps a Provider so each Generate call is bounded by the
// given duration. A non-positive duration returns the provider unchanged.
func WithTimeout(p Provider, d time.Duration) Provider {
	if d <= 0 {
		return p
	}
	return &TimeoutProvider{inner: p, timeout: d}
}

func (t *TimeoutProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	ctx, cancel := context.WithTimeout(ctx, t.timeout)
	defer cancel()
	return t.inner.Generate(ctx, req)
}

func (t *TimeoutProvider) ModelID() string {
	return t.inner.ModelID()
}
