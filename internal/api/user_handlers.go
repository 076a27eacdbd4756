package api

import (
	"net/http"

	"stockfeed/internal/config"
	"stockfeed/internal/middleware"
	"stockfeed/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type LoginRequest struct {
	Email string `json:"email" binding:"required,email"`
}

type UserHandler struct {
	userService service.UserService
	cfg         *config.Config
}

func NewUserHandler(userService service.UserService, cfg *config.Config) *UserHandler {
	return &UserHandler{userService: userService, cfg: cfg}
}

// @Summary Log in by email
// @Description Finds or creates the user for the given email and returns a bearer token
// @Tags Users
// @Accept json
// @Produce json
// @Param login body LoginRequest true "Email"
// @Success 200 {object} map[string]interface{} "User and token"
// @Failure 400 {object} map[string]string "Email required"
// @Failure 500 {object} map[string]string "Server error"
// @Router /users/login [post]
func (h *UserHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Valid email required"})
		return
	}

	user, err := h.userService.Login(req.Email)
	if err != nil {
		logrus.WithField("email", req.Email).Errorf("login failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to log in"})
		return
	}

	token, err := middleware.GenerateJWT(user.ID, h.cfg)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to issue token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user":  user,
		"token": token,
	})
}
