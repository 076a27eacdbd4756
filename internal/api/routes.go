package api

import (
	"stockfeed/internal/config"
	"stockfeed/internal/feed"
	"stockfeed/internal/middleware"
	"stockfeed/internal/registry"
	"stockfeed/internal/service"
	"stockfeed/internal/ws"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func SetupRoutes(r *gin.Engine, cfg *config.Config, userService service.UserService, reg *registry.Registry, sim *feed.Simulator, wsHandler *ws.WebSocketHandler) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
	}))

	userHandler := NewUserHandler(userService, cfg)
	subscriptionHandler := NewSubscriptionHandler(reg)
	marketHandler := NewMarketHandler(reg, sim)

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/docs/swagger.json")))
	r.GET("/docs/swagger.json", func(c *gin.Context) {
		c.File("docs/swagger.json")
	})

	v1 := r.Group("/api/v1")
	{
		v1.POST("/users/login", userHandler.Login)
		v1.GET("/tickers", marketHandler.GetTickers)
		v1.GET("/prices", marketHandler.GetPrices)

		user := v1.Group("/").Use(middleware.UserAuthMiddleware(userService, cfg))
		{
			user.GET("/subscriptions", subscriptionHandler.GetSubscriptions)
			user.POST("/subscribe", subscriptionHandler.ToggleSubscription)
		}
	}

	r.GET("/ws", wsHandler.HandleConnection)
}
