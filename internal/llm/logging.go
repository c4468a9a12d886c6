package llm

import (
	"context"
	"encoding/json"
	"time"

	"github.com/sirupsen/logrus"

	"questify/internal/schema"
)

// WithLogging logs request sizes, latency and errors through the given
// logger. A nil logger uses the logrus standard logger.
func WithLogging(logger *logrus.Logger) Middleware {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return func(next Client) Client {
		return &logging{next: next, log: logger}
	}
}

type logging struct {
	next Client
	log  *logrus.Logger
}

func (l *logging) Name() string { return l.next.Name() }
func (l *logging) Close() error { return l.next.Close() }

func (l *logging) CompleteText(ctx context.Context, system, prompt string, temperature float64) (string, error) {
	start := time.Now()
	out, err := l.next.CompleteText(ctx, system, prompt, temperature)
	entry := l.log.WithFields(logrus.Fields{
		"client":      l.next.Name(),
		"kind":        "text",
		"prompt_size": len(system) + len(prompt),
		"temperature": temperature,
		"elapsed_ms":  time.Since(start).Milliseconds(),
	})
	if err != nil {
		entry.WithError(err).Warn("completion failed")
	} else {
		entry.Debug("completion ok")
	}
	return out, err
}

func (l *logging) CompleteJSON(ctx context.Context, system, prompt string, desc schema.Descriptor, temperature float64) (json.RawMessage, error) {
	start := time.Now()
	raw, err := l.next.CompleteJSON(ctx, system, prompt, desc, temperature)
	entry := l.log.WithFields(logrus.Fields{
		"client":      l.next.Name(),
		"kind":        "json",
		"schema":      desc.Name,
		"prompt_size": len(system) + len(prompt),
		"temperature": temperature,
		"elapsed_ms":  time.Since(start).Milliseconds(),
	})
	if err != nil {
		entry.WithError(err).Warn("completion failed")
	} else {
		entry.WithField("response_size", len(raw)).Debug("completion ok")
	}
	return raw, err
}
