package main

import (
	"context"
	"fmt"
	"time"

	"stockfeed/internal/api"
	"stockfeed/internal/config"
	"stockfeed/internal/feed"
	"stockfeed/internal/middleware"
	"stockfeed/internal/registry"
	"stockfeed/internal/repository"
	"stockfeed/internal/service"
	"stockfeed/internal/ws"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func main() {
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	cfg, err := config.Load()
	if err != nil {
		logrus.Fatalf("Failed to load config: %v", err)
	}

	var userRepo repository.UserRepository
	if cfg.MongoURI != "" {
		client, err := mongo.Connect(context.Background(), options.Client().ApplyURI(cfg.MongoURI))
		if err != nil {
			logrus.Fatalf("Failed to connect to MongoDB: %v", err)
		}
		defer client.Disconnect(context.Background())

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := client.Ping(ctx, nil); err != nil {
			logrus.Fatalf("Failed to ping MongoDB: %v", err)
		}
		userRepo = repository.NewMongoUserRepository(client, "stockfeed", "users")
	} else {
		logrus.Info("MONGO_URI not set, using in-memory user store")
		userRepo = repository.NewInMemoryUserRepository()
	}

	reg := registry.New(cfg.Tickers)
	userService := service.NewUserService(userRepo, reg)

	hub := ws.NewHub(reg)
	wsHandler := ws.NewWebSocketHandler(hub)

	sim := feed.NewSimulator(cfg.Tickers, cfg.TickInterval, feed.RealClock{}, feed.NewRand())
	go sim.Run(context.Background(), hub.Broadcast)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.LoggerMiddleware())

	api.SetupRoutes(r, cfg, userService, reg, sim, wsHandler)

	addr := fmt.Sprintf("%s:%d", cfg.Address, cfg.Port)
	logrus.Infof("Starting server on %s", addr)
	logrus.Infof("WebSocket endpoint available at %s/ws", cfg.BaseURL)
	logrus.Infof("Swagger UI available at %s/swagger/index.html", cfg.BaseURL)

	if err := r.Run(addr); err != nil {
		logrus.Fatalf("Failed to start server: %v", err)
	}
}
