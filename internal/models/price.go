package models

// PriceTick is one generated price observation for a ticker. Ticks are
// immutable once produced; a skipped delivery is superseded by the next tick.
type PriceTick struct {
	Ticker    string  `json:"ticker"`
	Price     float64 `json:"price"`
	Timestamp int64   `json:"timestamp"`
}

// PriceUpdate is the outbound websocket frame wrapping a tick.
type PriceUpdate struct {
	Type      string  `json:"type"`
	Ticker    string  `json:"ticker"`
	Price     float64 `json:"price"`
	Timestamp int64   `json:"timestamp"`
}

func NewPriceUpdate(tick *PriceTick) PriceUpdate {
	return PriceUpdate{
		Type:      "price_update",
		Ticker:    tick.Ticker,
		Price:     tick.Price,
		Timestamp: tick.Timestamp,
	}
}
