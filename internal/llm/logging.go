package llm

import (
	"context"
	"time"

	"github.com/BTECHK/sql-coach/internal/store"
)

// EventSink receives one record per LLM request. *store.Store
// implements it; tests use a local fake.
type EventSink interface {
	RecordLLM(ctx context.Context, ev store.LLMEvent)
}

// LoggingProvider is a decorator that records every LLM request as an
// event.
type LoggingProvider struct {
	inner Provider
	sink  EventSink
}

// WithLogging wraps a Provider with event logging. A nil sink disables
// logging without changing behavior.
func WithLogging(p Provider, sink EventSink) Provider {
	return &LoggingProvider{inner: p, sink: sink}
}

func (l *LoggingProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	start := time.Now()
	purpose := PurposeFrom(ctx)

	resp, err := l.inner.Generate(ctx, req)

	if l.sink != nil {
		ev := store.LLMEvent{
			Provider:  l.inner.ModelID(),
			Model:     l.inner.ModelID(),
			Purpose:   purpose,
			LatencyMs: time.Since(start).Milliseconds(),
			Success:   err == nil,
		}
		if resp != nil {
			ev.Model = resp.Model
		}
		if err != nil {
			ev.ErrorMessage = err.Error()
		}
		l.sink.RecordLLM(ctx, ev)
	}

	return resp, err
}

func (l *LoggingProvider) ModelID() string {
	return l.inner.ModelID()
}
