package config

import (
	"errors"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Address      string
	Port         int
	BaseURL      string
	JWTSecret    string
	MongoURI     string
	Tickers      []string
	TickInterval time.Duration
}

func Load() (*Config, error) {
	_ = godotenv.Load(".env")

	portStr := os.Getenv("PORT")
	if portStr == "" {
		portStr = "7000"
	}
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return nil, errors.New("invalid PORT value")
	}

	address := os.Getenv("ADDRESS")
	if address == "" {
		address = "0.0.0.0"
	}

	baseURL := os.Getenv("BASE_URL")
	if baseURL == "" {
		baseURL = "http://localhost:" + portStr
	}

	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		jwtSecret = "default_jwt_secret"
	}

	// Empty means the in-memory user store; subscriptions are in-memory either way.
	mongoURI := os.Getenv("MONGO_URI")

	tickersStr := os.Getenv("TICKERS")
	if tickersStr == "" {
		tickersStr = "GOOG,TSLA,AMZN,META,NVDA"
	}
	var tickers []string
	for _, t := range strings.Split(tickersStr, ",") {
		t = strings.ToUpper(strings.TrimSpace(t))
		if t != "" {
			tickers = append(tickers, t)
		}
	}
	if len(tickers) == 0 {
		return nil, errors.New("TICKERS must name at least one symbol")
	}

	intervalStr := os.Getenv("TICK_INTERVAL_MS")
	if intervalStr == "" {
		intervalStr = "1000"
	}
	intervalMs, err := strconv.Atoi(intervalStr)
	if err != nil || intervalMs <= 0 {
		return nil, errors.New("invalid TICK_INTERVAL_MS value")
	}

	return &Config{
		Address:      address,
		Port:         port,
		BaseURL:      baseURL,
		JWTSecret:    jwtSecret,
		MongoURI:     mongoURI,
		Tickers:      tickers,
		TickInterval: time.Duration(intervalMs) * time.Millisecond,
	}, nil
}
