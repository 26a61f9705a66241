package retry

import (
	"context"
	"log/slog"
	"time"
)

// Policy bounds an exponential backoff loop: up to Retries additional
// attempts after the first, starting at Delay and multiplying by Backoff
// between attempts.
type Policy struct {
	Retries int
	Delay   time.Duration
	Backoff float64

	// sleep is swapped out in tests.
	sleep func(ctx context.Context, d time.Duration) error
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// Do runs fn until it succeeds, fails permanently, or the policy is
// exhausted. transient decides whether an error is worth retrying;
// a non-transient error propagates immediately. On exhaustion the last
// error is returned unchanged.
func Do[T any](ctx context.Context, p Policy, transient func(error) bool, fn func(ctx context.Context) (T, error)) (T, error) {
	var zero T

	sleep := p.sleep
	if sleep == nil {
		sleep = sleepCtx
	}

	delay := p.Delay
	var lastErr error

	for attempt := 0; attempt <= p.Retries; attempt++ {
		result, err := fn(ctx)
		if err == nil {
			return result, nil
		}
		if !transient(err) {
			return zero, err
		}

		lastErr = err
		if attempt == p.Retries {
			slog.Error("giving up after retries", "attempts", attempt+1, "error", err)
			break
		}

		slog.Warn("operation failed, retrying", "attempt", attempt+1, "delay", delay, "error", err)
		if err := sleep(ctx, delay); err != nil {
			return zero, err
		}
		delay = time.Duration(float64(delay) * p.Backoff)
	}

	return zero, lastErr
}
