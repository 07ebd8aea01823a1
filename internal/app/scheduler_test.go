package app

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

type countingCloser struct {
	calls   atomic.Int32
	maxIdle atomic.Int64
}

func (c *countingCloser) CloseIdle(maxIdle time.Duration) int {
	c.calls.Add(1)
	c.maxIdle.Store(int64(maxIdle))
	return 1
}

func TestSchedulerSweepsIdleSessions(t *testing.T) {
	closer := &countingCloser{}
	s := NewScheduler(closer, 40*time.Millisecond, zap.NewNop())
	assert.Equal(t, 10*time.Millisecond, s.interval)

	s.Start(context.Background())
	assert.Eventually(t, func() bool { return closer.calls.Load() >= 2 }, time.Second, 5*time.Millisecond)
	s.Stop()

	assert.Equal(t, int64(40*time.Millisecond), closer.maxIdle.Load())

	// после Stop проверки прекращаются
	calls := closer.calls.Load()
	time.Sleep(30 * time.Millisecond)
	assert.Equal(t, calls, closer.calls.Load())
}

func TestSchedulerInterval(t *testing.T) {
	tests := []struct {
		maxIdle time.Duration
		want    time.Duration
	}{
		{maxIdle: 12 * time.Hour, want: time.Hour},
		{maxIdle: 20 * time.Minute, want: 5 * time.Minute},
		{maxIdle: 0, want: time.Minute},
	}
	for _, tt := range tests {
		s := NewScheduler(&countingCloser{}, tt.maxIdle, zap.NewNop())
		assert.Equal(t, tt.want, s.interval, tt.maxIdle.String())
	}
}

func TestSchedulerStopsOnContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	s := NewScheduler(&countingCloser{}, time.Hour, zap.NewNop())
	s.Start(ctx)
	cancel()

	select {
	case <-s.doneChan:
	case <-time.After(time.Second):
		t.Fatal("scheduler did not stop on context cancel")
	}
}
