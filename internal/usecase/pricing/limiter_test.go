package pricing

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLimiter_BurstWithinQuota(t *testing.T) {
	ctx := context.Background()
	limiter := NewLimiter(5, time.Minute)

	start := time.Now()
	for i := 0; i < 5; i++ {
		require.NoError(t, limiter.Acquire(ctx))
	}

	// The full burst should pass without any rate-limit delay
	assert.Less(t, time.Since(start), 100*time.Millisecond)
}

func TestLimiter_BlocksOverQuota(t *testing.T) {
	ctx := context.Background()
	limiter := NewLimiter(2, 200*time.Millisecond)

	require.NoError(t, limiter.Acquire(ctx))
	require.NoError(t, limiter.Acquire(ctx))

	// Quota exhausted: the third acquire must wait for a refill
	start := time.Now()
	require.NoError(t, limiter.Acquire(ctx))
	assert.GreaterOrEqual(t, time.Since(start), 50*time.Millisecond)
}

func TestLimiter_AcquireHonorsContextCancellation(t *testing.T) {
	limiter := NewLimiter(1, time.Hour)

	require.NoError(t, limiter.Acquire(context.Background()))

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	err := limiter.Acquire(ctx)
	assert.Error(t, err)
}

func TestLimiter_ConcurrentAcquiresRespectQuota(t *testing.T) {
	ctx := context.Background()
	limiter := NewLimiter(3, 150*time.Millisecond)

	start := time.Now()
	var wg sync.WaitGroup
	for i := 0; i < 6; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = limiter.Acquire(ctx)
		}()
	}
	wg.Wait()

	// 6 acquires at 3 per 150ms: the second half must have waited
	assert.GreaterOrEqual(t, time.Since(start), 50*time.Millisecond)
}
