package taskqueue

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"time"
)

const defaultMaxRetries = 3

var baseBackoff = 100 * time.Millisecond

// errPermanent marks a failure that retrying cannot fix.
var errPermanent = errors.New("permanent task queue error")

func backoffFor(attempt int) time.Duration {
	return time.Duration(math.Pow(2, float64(attempt-1))) * baseBackoff
}

func withRetry[T any](ctx context.Context, maxRetries int, taskID string, fn func(context.Context) (T, error)) (T, error) {
	var (
		zero    T
		lastErr error
	)
	for attempt := 0; attempt < maxRetries; attempt++ {
		if attempt > 0 {
			backoff := backoffFor(attempt)
			slog.DebugContext(ctx, "retrying task registration",
				slog.String("task_id", taskID),
				slog.Int("attempt", attempt+1),
				slog.Duration("backoff", backoff),
			)
			select {
			case <-ctx.Done():
				return zero, ctx.Err()
			case <-time.After(backoff):
			}
		}

		result, err := fn(ctx)
		if err == nil {
			return result, nil
		}
		lastErr = err
		if errors.Is(err, errPermanent) {
			break
		}
	}

	slog.ErrorContext(ctx, "all retries exhausted for task registration",
		slog.String("task_id", taskID),
		slog.Int("max_retries", maxRetries),
		slog.String("error", lastErr.Error()),
	)
	return zero, fmt.Errorf("failed to register task after %d retries: %w", maxRetries, lastErr)
}
