package api

import (
	"net/http"

	"stockfeed/internal/feed"
	"stockfeed/internal/registry"

	"github.com/gin-gonic/gin"
)

type MarketHandler struct {
	registry  *registry.Registry
	simulator *feed.Simulator
}

func NewMarketHandler(reg *registry.Registry, sim *feed.Simulator) *MarketHandler {
	return &MarketHandler{registry: reg, simulator: sim}
}

// @Summary List the ticker universe
// @Tags Market
// @Produce json
// @Success 200 {object} map[string]interface{} "Configured tickers"
// @Router /tickers [get]
func (h *MarketHandler) GetTickers(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"tickers": h.registry.Tickers()})
}

// @Summary Current price snapshot
// @Description Latest simulated price per ticker, for first render before the feed connects
// @Tags Market
// @Produce json
// @Success 200 {object} map[string]interface{} "Prices by ticker"
// @Router /prices [get]
func (h *MarketHandler) GetPrices(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"prices": h.simulator.Prices()})
}
