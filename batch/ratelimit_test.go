package batch_test

import (
	"context"
	"testing"
	"time"

	"github.com/hricks/onpage/batch"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDomainLimiter_Wait(t *testing.T) {
	t.Parallel()

	t.Run("paces requests within a domain", func(t *testing.T) {
		t.Parallel()

		limiter := batch.NewDomainLimiter(100) // 10ms between requests
		ctx := context.Background()

		start := time.Now()
		require.NoError(t, limiter.Wait(ctx, "example.com"))
		require.NoError(t, limiter.Wait(ctx, "example.com"))
		require.NoError(t, limiter.Wait(ctx, "example.com"))

		// Two waits after the first token, about 10ms each.
		assert.GreaterOrEqual(t, time.Since(start), 15*time.Millisecond)
	})

	t.Run("domains do not block each other", func(t *testing.T) {
		t.Parallel()

		limiter := batch.NewDomainLimiter(1) // 1s between requests per domain
		ctx := context.Background()

		start := time.Now()
		require.NoError(t, limiter.Wait(ctx, "alpha.example"))
		require.NoError(t, limiter.Wait(ctx, "beta.example"))
		require.NoError(t, limiter.Wait(ctx, "gamma.example"))

		// First token per domain is immediate.
		assert.Less(t, time.Since(start), 500*time.Millisecond)
	})

	t.Run("respects context cancellation", func(t *testing.T) {
		t.Parallel()

		limiter := batch.NewDomainLimiter(0.001)
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
		defer cancel()

		require.NoError(t, limiter.Wait(ctx, "example.com"))
		err := limiter.Wait(ctx, "example.com")
		require.Error(t, err)
	})
}
