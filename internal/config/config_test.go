package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{"ADDRESS", "PORT", "TICKERS", "TICK_INTERVAL_MS", "MONGO_URI"} {
		t.Setenv(key, "")
	}

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0", cfg.Address)
	assert.Equal(t, 7000, cfg.Port)
	assert.Equal(t, []string{"GOOG", "TSLA", "AMZN", "META", "NVDA"}, cfg.Tickers)
	assert.Equal(t, time.Second, cfg.TickInterval)
	assert.Empty(t, cfg.MongoURI)
}

func TestLoad_TickersParsing(t *testing.T) {
	t.Setenv("TICKERS", " goog, tsla ,,NVDA ")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, []string{"GOOG", "TSLA", "NVDA"}, cfg.Tickers)
}

func TestLoad_InvalidPort(t *testing.T) {
	t.Setenv("PORT", "not-a-port")

	_, err := Load()
	assert.Error(t, err)
}

func TestLoad_InvalidInterval(t *testing.T) {
	t.Setenv("TICK_INTERVAL_MS", "0")

	_, err := Load()
	assert.Error(t, err)
}
