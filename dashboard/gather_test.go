package dashboard_test

import (
	"context"
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/jrsteele09/go-auth-console/dashboard"
	"github.com/stretchr/testify/require"
)

func TestGather_KeepsItemOrder(t *testing.T) {
	items := []int{1, 2, 3, 4, 5}
	results := dashboard.Gather(context.Background(), 2, items, func(_ context.Context, n int) (int, error) {
		if n%2 == 0 {
			return 0, fmt.Errorf("even %d", n)
		}
		time.Sleep(time.Duration(5-n) * time.Millisecond)
		return n * 10, nil
	})

	require.Len(t, results, len(items))
	for i, n := range items {
		if n%2 == 0 {
			require.False(t, results[i].OK())
			require.EqualError(t, results[i].Err, fmt.Sprintf("even %d", n))
			continue
		}
		require.True(t, results[i].OK())
		require.Equal(t, n*10, results[i].Value)
	}
}

func TestGather_RespectsLimit(t *testing.T) {
	var inFlight, peak atomic.Int32
	items := make([]int, 20)
	dashboard.Gather(context.Background(), 3, items, func(_ context.Context, _ int) (struct{}, error) {
		n := inFlight.Add(1)
		for {
			p := peak.Load()
			if n <= p || peak.CompareAndSwap(p, n) {
				break
			}
		}
		time.Sleep(2 * time.Millisecond)
		inFlight.Add(-1)
		return struct{}{}, nil
	})
	require.LessOrEqual(t, peak.Load(), int32(3))
	require.Positive(t, peak.Load())
}

func TestGather_FailuresDoNotCancelOthers(t *testing.T) {
	var calls atomic.Int32
	results := dashboard.Gather(context.Background(), 4, []string{"a", "b", "c", "d"}, func(ctx context.Context, s string) (string, error) {
		calls.Add(1)
		if s == "a" {
			return "", fmt.Errorf("boom")
		}
		time.Sleep(5 * time.Millisecond)
		return s, ctx.Err()
	})
	require.EqualValues(t, 4, calls.Load())
	require.Error(t, results[0].Err)
	for _, r := range results[1:] {
		require.NoError(t, r.Err)
	}
}

func TestGather_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var calls atomic.Int32
	results := dashboard.Gather(ctx, 0, []int{1, 2}, func(context.Context, int) (int, error) {
		calls.Add(1)
		return 1, nil
	})
	require.Zero(t, calls.Load())
	for _, r := range results {
		require.ErrorIs(t, r.Err, context.Canceled)
	}
}

func TestGather_Empty(t *testing.T) {
	results := dashboard.Gather(context.Background(), 8, []int(nil), func(context.Context, int) (int, error) {
		return 0, nil
	})
	require.Empty(t, results)
}
