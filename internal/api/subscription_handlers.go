package api

import (
	"errors"
	"net/http"
	"strings"

	"stockfeed/internal/registry"

	"github.com/gin-gonic/gin"
)

type SubscribeRequest struct {
	Ticker string `json:"ticker" binding:"required"`
}

type SubscriptionHandler struct {
	registry *registry.Registry
}

func NewSubscriptionHandler(reg *registry.Registry) *SubscriptionHandler {
	return &SubscriptionHandler{registry: reg}
}

// @Summary Get active subscriptions
// @Description Returns the authenticated user's current subscription set
// @Tags Subscriptions
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]interface{} "Active tickers"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Router /subscriptions [get]
func (h *SubscriptionHandler) GetSubscriptions(c *gin.Context) {
	userID := c.GetString("user_id")
	c.JSON(http.StatusOK, gin.H{"active": h.registry.Snapshot(userID)})
}

// @Summary Toggle a subscription
// @Description Flips the authenticated user's subscription to a ticker and reports the action taken
// @Tags Subscriptions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param subscribe body SubscribeRequest true "Ticker"
// @Success 200 {object} map[string]interface{} "Action and resulting set"
// @Failure 400 {object} map[string]string "Invalid ticker"
// @Failure 404 {object} map[string]string "User not found"
// @Router /subscribe [post]
func (h *SubscriptionHandler) ToggleSubscription(c *gin.Context) {
	var req SubscribeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Ticker required"})
		return
	}

	userID := c.GetString("user_id")
	ticker := strings.ToUpper(strings.TrimSpace(req.Ticker))

	action, active, err := h.registry.Toggle(userID, ticker)
	if errors.Is(err, registry.ErrUnknownTicker) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ticker"})
		return
	}
	if errors.Is(err, registry.ErrUnknownUser) {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"action": action,
		"active": active,
	})
}
