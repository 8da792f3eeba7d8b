// ABOUTME: Tests for the TimeoutProvider decorator
// ABOUTME: Verifies stalled calls fail with a deadline instead of hanging

package llm

import (
	"context"
	"errors"
	"testing"
	"time"
)

// slowProvider blocks until its delay elapses or the context ends.
type slowProvider struct {
	delay time.Duration
}

func (s *slowProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-time.After(s.delay):
		return &Response{Content: "late answer"}, nil
	}
}

func (s *slowProvider) ModelID() string {
	return "slow-model"
}

func TestWithTimeout_StalledCallFails(t *testing.T) {
	p := WithTimeout(&slowProvider{delay: time.Minute}, 20*time.Millisecond)

	start := time.Now()
	_, err := p.Generate(context.Background(), Request{})
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("Generate() error = %v, want deadline exceeded", err)
	}
	if elapsed := time.Since(start); elapsed > 5*time.Second {
		t.Errorf("Generate() took %v, deadline not applied", elapsed)
	}
}

func TestWithTimeout_FastCallSucceeds(t *testing.T) {
	p := WithTimeout(&slowProvider{delay: time.Millisecond}, 5*time.Second)

	resp, err := p.Generate(context.Background(), Request{})
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if resp.Content != "late answer" {
		t.Errorf("Content = %q", resp.Content)
	}
}

func TestWithTimeout_ZeroDurationIsPassthrough(t *testing.T) {
	inner := NewMockProvider()
	if p := WithTimeout(inner, 0); p != Provider(inner) {
		t.Error("WithTimeout(p, 0) should return the provider unchanged")
	}
}

func TestWithTimeout_ModelID(t *testing.T) {
	p := WithTimeout(&slowProvider{}, time.Second)
	if got := p.ModelID(); got != "slow-model" {
		t.Errorf("ModelID() = %q, want slow-model", got)
	}
}
