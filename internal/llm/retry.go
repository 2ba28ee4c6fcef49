package llm

import (
	"context"
	"errors"
	"math/rand/v2"
	"time"
)

// retrier re-issues failed Generate calls with exponential backoff.
// Context cancellation, token-limit overruns, and a second invalid
// response end the attempt loop immediately.
type retrier struct {
	next Provider
	cfg  RetryConfig
}

// WithRetry wraps a Provider so transient failures are retried.
func WithRetry(p Provider, cfg RetryConfig) Provider {
	return &retrier{next: p, cfg: cfg}
}

func (r *retrier) ModelID() string {
	return r.next.ModelID()
}

func (r *retrier) Generate(ctx context.Context, req Request) (*Response, error) {
	var lastErr error
	invalidSeen := false

	for attempt := range r.cfg.MaxAttempts {
		resp, err := r.next.Generate(ctx, req)
		if err == nil {
			return resp, nil
		}
		lastErr = err

		if !retryable(err, &invalidSeen) {
			return nil, err
		}
		if attempt == r.cfg.MaxAttempts-1 {
			break
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(r.waitFor(attempt, err)):
		}
	}
	return nil, lastErr
}

// retryable classifies an attempt's error. invalidSeen tracks the
// one-retry allowance for malformed model output.
func retryable(err error, invalidSeen *bool) bool {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}

	var maxTok *ErrMaxTokensExceeded
	if errors.As(err, &maxTok) {
		// Hitting the token ceiling again would just burn quota.
		return false
	}

	var invalid *ErrInvalidResponse
	if errors.As(err, &invalid) {
		if *invalidSeen {
			return false
		}
		*invalidSeen = true
		return true
	}

	// Rate limits, provider outages, and anything else (network
	// hiccups and the like) are treated as transient.
	return true
}

// waitFor returns the sleep before the next attempt. A rate limit
// with a server-supplied delay takes precedence over backoff.
func (r *retrier) waitFor(attempt int, err error) time.Duration {
	var rl *ErrRateLimit
	if errors.As(err, &rl) && rl.RetryAfter > 0 {
		return rl.RetryAfter
	}

	wait := float64(r.cfg.InitialWait)
	for range attempt {
		wait *= r.cfg.Multiplier
	}
	if ceiling := float64(r.cfg.MaxWait); wait > ceiling {
		wait = ceiling
	}

	// ±20% jitter keeps concurrent clients from thundering.
	wait *= 1 + 0.2*(2*rand.Float64()-1)
	if wait < 0 {
		wait = 0
	}
	return time.Duration(wait)
}
