package feed

import (
	"context"
	"math"
	"sync"
	"time"

	"stockfeed/internal/models"

	"github.com/sirupsen/logrus"
)

const (
	// priceFloor bounds every price from below; the walk never produces a
	// value under one unit.
	priceFloor = 1.0

	// maxDrift is the symmetric per-tick fluctuation range (±2%).
	maxDrift = 0.02

	// Initial prices are seeded uniformly in [seedBase, seedBase+seedSpan).
	seedBase = 50.0
	seedSpan = 1000.0
)

// Simulator owns the current price per ticker and advances every price once
// per interval with a bounded random walk. It runs whether or not anyone is
// subscribed; undelivered ticks are simply superseded by the next interval.
type Simulator struct {
	tickers  []string
	interval time.Duration
	clock    Clock
	rnd      Rand

	mu     sync.RWMutex
	prices map[string]float64
}

func NewSimulator(tickers []string, interval time.Duration, clock Clock, rnd Rand) *Simulator {
	prices := make(map[string]float64, len(tickers))
	for _, t := range tickers {
		prices[t] = round2(seedBase + rnd.Float64()*seedSpan)
	}
	return &Simulator{
		tickers:  tickers,
		interval: interval,
		clock:    clock,
		rnd:      rnd,
		prices:   prices,
	}
}

// Tick advances every ticker one step and returns exactly one PriceTick per
// configured ticker.
func (s *Simulator) Tick() []*models.PriceTick {
	now := s.clock.Now().UnixMilli()

	s.mu.Lock()
	defer s.mu.Unlock()

	ticks := make([]*models.PriceTick, 0, len(s.tickers))
	for _, t := range s.tickers {
		delta := (s.rnd.Float64()*2 - 1) * maxDrift
		price := s.prices[t] * (1 + delta)
		if price < priceFloor {
			price = priceFloor
		}
		price = round2(price)
		s.prices[t] = price

		ticks = append(ticks, &models.PriceTick{
			Ticker:    t,
			Price:     price,
			Timestamp: now,
		})
	}
	return ticks
}

// Prices returns a snapshot of the current price per ticker.
func (s *Simulator) Prices() map[string]float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[string]float64, len(s.prices))
	for t, p := range s.prices {
		out[t] = p
	}
	return out
}

// Run generates ticks on the configured interval and hands each one to sink
// until ctx is cancelled. Sink must not block; the hub dispatches with
// non-blocking per-session sends.
func (s *Simulator) Run(ctx context.Context, sink func(*models.PriceTick)) {
	logrus.WithFields(logrus.Fields{
		"tickers":  s.tickers,
		"interval": s.interval,
	}).Info("price feed started")

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logrus.Info("price feed stopped")
			return
		case <-ticker.C:
			for _, tick := range s.Tick() {
				sink(tick)
			}
		}
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
