// Package policy provides composable execution wrappers applied at call
// sites: time-boxed memoization, structured execution logging and bounded
// retry with linear backoff.
package policy

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"
)

type cacheEntry struct {
	value    any
	storedAt time.Time
}

// Cache is a process-local memoization store. Entries are unbounded in count
// and expire only when checked on access.
type Cache struct {
	mu      sync.Mutex
	entries map[string]cacheEntry
}

func NewCache() *Cache {
	return &Cache{entries: make(map[string]cacheEntry)}
}

// Key builds a cache key from a method identity and a snapshot of its
// arguments.
func Key(method string, args ...any) string {
	snapshot, err := json.Marshal(args)
	if err != nil {
		snapshot = []byte(fmt.Sprintf("%v", args))
	}
	return method + ":" + string(snapshot)
}

// Cached memoizes successful results of fn under the method+args key for ttl.
// Errors are never cached.
func Cached[T any](c *Cache, ttl time.Duration, method string, fn func() (T, error), args ...any) (T, error) {
	key := Key(method, args...)

	c.mu.Lock()
	if e, ok := c.entries[key]; ok {
		if time.Since(e.storedAt) < ttl {
			c.mu.Unlock()
			return e.value.(T), nil
		}
		delete(c.entries, key)
	}
	c.mu.Unlock()

	value, err := fn()
	if err != nil {
		return value, err
	}

	c.mu.Lock()
	c.entries[key] = cacheEntry{value: value, storedAt: time.Now()}
	c.mu.Unlock()

	return value, nil
}

// Logged records start, arguments, duration and outcome around fn. It has no
// behavioral effect.
func Logged[T any](log *zap.Logger, op string, fn func() (T, error), args ...any) (T, error) {
	start := time.Now()

	log.Info("operation started",
		zap.String("op", op),
		zap.Any("args", args),
	)

	value, err := fn()
	if err != nil {
		log.Error("operation failed",
			zap.String("op", op),
			zap.Duration("duration", time.Since(start)),
			zap.Error(err),
		)
		return value, err
	}

	log.Info("operation completed",
		zap.String("op", op),
		zap.Duration("duration", time.Since(start)),
	)
	return value, nil
}

// Retry re-invokes fn up to maxRetries times, waiting delay × attempt between
// attempts. The whole wrapped body re-executes on every attempt, side effects
// included. The last error is returned if all attempts fail.
func Retry[T any](ctx context.Context, maxRetries int, delay time.Duration, fn func() (T, error)) (T, error) {
	var zero T
	var lastErr error

	if maxRetries < 1 {
		maxRetries = 1
	}

	for attempt := 1; attempt <= maxRetries; attempt++ {
		value, err := fn()
		if err == nil {
			return value, nil
		}
		lastErr = err

		if attempt < maxRetries {
			select {
			case <-time.After(delay * time.Duration(attempt)):
			case <-ctx.Done():
				return zero, ctx.Err()
			}
		}
	}

	return zero, lastErr
}
