package feed

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixedClock struct {
	now time.Time
}

func (c fixedClock) Now() time.Time { return c.now }

// fixedRand always returns the same value, pinning the walk direction.
type fixedRand struct {
	v float64
}

func (r fixedRand) Float64() float64 { return r.v }

func TestTick_OnePerTicker(t *testing.T) {
	tickers := []string{"GOOG", "TSLA", "NVDA"}
	s := NewSimulator(tickers, time.Second, RealClock{}, NewRand())

	ticks := s.Tick()
	require.Len(t, ticks, len(tickers))

	seen := make(map[string]bool)
	for _, tick := range ticks {
		seen[tick.Ticker] = true
		assert.Greater(t, tick.Price, 0.0)
	}
	for _, ticker := range tickers {
		assert.True(t, seen[ticker], "missing tick for %s", ticker)
	}
}

func TestTick_PriceNeverBelowFloor(t *testing.T) {
	// Float64()=0 seeds every price at 50.00 and makes every step the maximum
	// downward drift, driving the walk into the floor.
	s := NewSimulator([]string{"GOOG"}, time.Second, RealClock{}, fixedRand{v: 0})

	var last float64
	for i := 0; i < 500; i++ {
		ticks := s.Tick()
		require.Len(t, ticks, 1)
		last = ticks[0].Price
		assert.GreaterOrEqual(t, last, 1.0)
	}
	assert.Equal(t, 1.0, last)
}

func TestTick_DriftBounded(t *testing.T) {
	s := NewSimulator([]string{"GOOG"}, time.Second, RealClock{}, fixedRand{v: 1})

	before := s.Prices()["GOOG"]
	tick := s.Tick()[0]

	// Float64()=1 is the maximum upward drift of 2%, plus cent rounding.
	assert.InDelta(t, before*1.02, tick.Price, 0.005)
}

func TestTick_Timestamp(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	s := NewSimulator([]string{"GOOG"}, time.Second, fixedClock{now: now}, NewRand())

	tick := s.Tick()[0]
	assert.Equal(t, now.UnixMilli(), tick.Timestamp)
}

func TestNewSimulator_SeedRange(t *testing.T) {
	s := NewSimulator([]string{"GOOG", "TSLA"}, time.Second, RealClock{}, NewRand())

	for ticker, price := range s.Prices() {
		assert.GreaterOrEqual(t, price, 50.0, "seed for %s", ticker)
		assert.LessOrEqual(t, price, 1050.0, "seed for %s", ticker)
	}
}

func TestPrices_SnapshotIsCopy(t *testing.T) {
	s := NewSimulator([]string{"GOOG"}, time.Second, RealClock{}, NewRand())

	snap := s.Prices()
	snap["GOOG"] = -42

	assert.NotEqual(t, -42.0, s.Prices()["GOOG"])
}
