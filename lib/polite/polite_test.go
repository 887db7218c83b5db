package polite

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestWaitSpacesRequests(t *testing.T) {
	l := NewLimiter(Config{
		Interval: 50 * time.Millisecond,
	})

	start := time.Now()
	for i := 0; i < 3; i++ {
		err := l.Wait(context.Background())
		require.NoError(t, err)
	}
	// the first request is allowed immediately, the next two
	// should each wait out the interval
	require.GreaterOrEqual(t, time.Since(start), 100*time.Millisecond)
}

func TestWaitHonorsCancellation(t *testing.T) {
	l := NewLimiter(Config{
		Interval: time.Hour,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	// burn the initial token
	err := l.Wait(ctx)
	require.NoError(t, err)

	err = l.Wait(ctx)
	require.Error(t, err)
}

func TestPeriodicPause(t *testing.T) {
	l := NewLimiter(Config{
		Interval:   time.Millisecond,
		PauseEvery: 2,
		PauseFor:   100 * time.Millisecond,
	})

	start := time.Now()
	for i := 0; i < 2; i++ {
		err := l.Wait(context.Background())
		require.NoError(t, err)
	}
	require.GreaterOrEqual(t, time.Since(start), 100*time.Millisecond)
}
