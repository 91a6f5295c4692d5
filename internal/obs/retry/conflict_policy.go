package retry

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
)

// ConflictPolicy retries only errors matching conflict, typically an
// optimistic-write rejection, with short jittered backoff.
func ConflictPolicy(name string, attempts int, conflict error, log *zap.Logger) Policy {
	if attempts <= 0 {
		attempts = 5
	}
	return Policy{
		Name:     name,
		Attempts: attempts,
		Backoff:  ExpoJitter{Base: 50 * time.Millisecond, Max: 2 * time.Second, Jitter: 0.3},
		Retryable: func(err error) bool {
			return errors.Is(err, conflict)
		},
		OnAttempt: func(i int, err error) {
			if log != nil && errors.Is(err, conflict) {
				log.Info("write conflict, retrying", zap.String("op", name), zap.Int("attempt", i+1), zap.Error(err))
			}
		},
		OnExhaust: func(err error) {
			if log != nil && errors.Is(err, conflict) && !errors.Is(err, context.Canceled) {
				log.Error("write conflict retries exhausted", zap.String("op", name), zap.Error(err))
			}
		},
	}
}
