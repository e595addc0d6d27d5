package policy

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestCached(t *testing.T) {
	t.Run("MemoizesByMethodAndArgs", func(t *testing.T) {
		cache := NewCache()
		calls := 0
		fetch := func() (string, error) {
			calls++
			return "value", nil
		}

		v1, err := Cached(cache, time.Minute, "GetOrderByID", fetch, "o1")
		require.NoError(t, err)
		v2, err := Cached(cache, time.Minute, "GetOrderByID", fetch, "o1")
		require.NoError(t, err)

		assert.Equal(t, "value", v1)
		assert.Equal(t, "value", v2)
		assert.Equal(t, 1, calls)

		_, err = Cached(cache, time.Minute, "GetOrderByID", fetch, "o2")
		require.NoError(t, err)
		assert.Equal(t, 2, calls, "different args must miss")

		_, err = Cached(cache, time.Minute, "GetOrderByNumber", fetch, "o1")
		require.NoError(t, err)
		assert.Equal(t, 3, calls, "different method must miss")
	})

	t.Run("ExpiresAfterTTL", func(t *testing.T) {
		cache := NewCache()
		calls := 0
		fetch := func() (int, error) {
			calls++
			return calls, nil
		}

		v, err := Cached(cache, 10*time.Millisecond, "Stats", fetch)
		require.NoError(t, err)
		assert.Equal(t, 1, v)

		time.Sleep(20 * time.Millisecond)

		v, err = Cached(cache, 10*time.Millisecond, "Stats", fetch)
		require.NoError(t, err)
		assert.Equal(t, 2, v)
	})

	t.Run("DoesNotCacheErrors", func(t *testing.T) {
		cache := NewCache()
		calls := 0
		fetch := func() (string, error) {
			calls++
			return "", errors.New("boom")
		}

		_, err := Cached(cache, time.Minute, "Failing", fetch)
		assert.Error(t, err)
		_, err = Cached(cache, time.Minute, "Failing", fetch)
		assert.Error(t, err)
		assert.Equal(t, 2, calls)
	})
}

func TestLogged(t *testing.T) {
	log := zap.NewNop()

	v, err := Logged(log, "Op", func() (int, error) { return 42, nil }, "arg")
	require.NoError(t, err)
	assert.Equal(t, 42, v)

	wantErr := errors.New("boom")
	_, err = Logged(log, "Op", func() (int, error) { return 0, wantErr })
	assert.Equal(t, wantErr, err)
}

func TestRetry(t *testing.T) {
	t.Run("SucceedsOnThirdAttempt", func(t *testing.T) {
		calls := 0
		v, err := Retry(context.Background(), 3, time.Millisecond, func() (string, error) {
			calls++
			if calls < 3 {
				return "", errors.New("transient")
			}
			return "ok", nil
		})
		require.NoError(t, err)
		assert.Equal(t, "ok", v)
		assert.Equal(t, 3, calls)
	})

	t.Run("ExhaustionReturnsLastError", func(t *testing.T) {
		calls := 0
		lastErr := errors.New("still down")
		_, err := Retry(context.Background(), 2, time.Millisecond, func() (string, error) {
			calls++
			return "", lastErr
		})
		assert.Equal(t, lastErr, err)
		assert.Equal(t, 2, calls)
	})

	t.Run("LinearBackoff", func(t *testing.T) {
		delay := 20 * time.Millisecond
		start := time.Now()
		calls := 0
		_, _ = Retry(context.Background(), 3, delay, func() (struct{}, error) {
			calls++
			return struct{}{}, errors.New("nope")
		})
		elapsed := time.Since(start)

		// waits delay×1 and delay×2 between the three attempts
		assert.Equal(t, 3, calls)
		assert.GreaterOrEqual(t, elapsed, 3*delay)
	})

	t.Run("CancelledContextStopsWaiting", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		calls := 0
		go func() {
			time.Sleep(5 * time.Millisecond)
			cancel()
		}()

		_, err := Retry(ctx, 5, time.Second, func() (struct{}, error) {
			calls++
			return struct{}{}, errors.New("down")
		})
		assert.ErrorIs(t, err, context.Canceled)
		assert.Equal(t, 1, calls)
	})
}
