// ABOUTME: LoggingProvider decorator records every LLM request with logrus
// ABOUTME: Latency, token usage, and failures are logged, never fatal
package llm

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"
)

// LoggingProvider is a decorator that logs every LLM request.
type LoggingProvider struct {
	inner Provider
	log   *logrus.Logger
}

// WithLogging wraps a Provider with structured request logging.
func WithLogging(p Provider, log *logrus.Logger) Provider {
	return &LoggingProvider{inner: p, log: log}
}

func (l *LoggingProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	start := time.Now()

	resp, err := l.inner.Generate(ctx, req)

	fields := logrus.Fields{
		"model":      l.inner.ModelID(),
		"messages":   len(req.Messages),
		"latency_ms": time.Since(start).Milliseconds(),
	}
	if resp != nil {
		fields["input_tokens"] = resp.Usage.InputTokens
		fields["output_tokens"] = resp.Usage.OutputTokens
	}

	if err != nil {
		fields["error"] = err.Error()
		l.log.WithFields(fields).Warn("llm request failed")
	} else {
		l.log.WithFields(fields).Debug("llm request completed")
	}

	return resp, err
}

func (l *LoggingProvider) ModelID() string {
	return l.inner.ModelID()
}
