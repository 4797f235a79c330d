package ratelimit

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock(t time.Time) *fakeClock { return &fakeClock{now: t} }

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Add(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

func TestTokenBucketLimiter_BurstThenBlocksThenRefills(t *testing.T) {
	t.Parallel()

	clk := newFakeClock(time.Unix(0, 0))
	l := NewTokenBucketLimiter(clk, Config{Rate: 1, Burst: 2})

	require.True(t, l.Allow("actor:trk-1"))
	require.True(t, l.Allow("actor:trk-1"))
	require.False(t, l.Allow("actor:trk-1"), "bucket empty")

	clk.Add(time.Second)
	require.True(t, l.Allow("actor:trk-1"), "one token refilled")
	require.False(t, l.Allow("actor:trk-1"))

	clk.Add(10 * time.Second)
	require.True(t, l.Allow("actor:trk-1"))
	require.True(t, l.Allow("actor:trk-1"))
	require.False(t, l.Allow("actor:trk-1"), "refill is capped by burst")
}

func TestTokenBucketLimiter_IsPerKey(t *testing.T) {
	t.Parallel()

	l := NewTokenBucketLimiter(newFakeClock(time.Unix(0, 0)), Config{Rate: 1, Burst: 1})

	require.True(t, l.Allow("actor:gen-1"))
	require.False(t, l.Allow("actor:gen-1"))
	require.True(t, l.Allow("actor:gen-2"), "independent bucket")
}

func TestTokenBucketLimiter_SweepRemovesIdleBuckets(t *testing.T) {
	t.Parallel()

	clk := newFakeClock(time.Unix(0, 0))
	l := NewTokenBucketLimiter(clk, Config{Rate: 10, Burst: 1, TTL: 2 * time.Second})

	_ = l.Allow("A")
	_ = l.Allow("B")
	require.Equal(t, 2, l.Len())

	// sweeps run at most once a minute
	clk.Add(59 * time.Second)
	_ = l.Allow("B")
	clk.Add(2 * time.Second)
	_ = l.Allow("B")

	require.Equal(t, 1, l.Len())
	_, ok := l.buckets["B"]
	require.True(t, ok)
}

func TestTokenBucketLimiter_MaxBucketsRefusesNewKeys(t *testing.T) {
	t.Parallel()

	l := NewTokenBucketLimiter(newFakeClock(time.Unix(0, 0)), Config{Rate: 1, Burst: 5, MaxBuckets: 1})

	require.True(t, l.Allow("actor:a"))
	require.False(t, l.Allow("actor:b"))
	require.True(t, l.Allow("actor:a"))
}

func TestNewTokenBucketLimiter_Defaults(t *testing.T) {
	t.Parallel()

	l := NewTokenBucketLimiter(nil, Config{MaxBuckets: -3})
	require.Equal(t, 1.0, l.cfg.Rate)
	require.Equal(t, 1, l.cfg.Burst)
	require.Equal(t, 0, l.cfg.MaxBuckets)
	require.IsType(t, RealClock{}, l.clock)
}
