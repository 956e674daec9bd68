package main

import (
	"context"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/MrRexos/wisdom-booking-api/internal/config"
	dbpkg "github.com/MrRexos/wisdom-booking-api/internal/db"
	"github.com/MrRexos/wisdom-booking-api/internal/lock"
	"github.com/MrRexos/wisdom-booking-api/internal/middleware"
	"github.com/MrRexos/wisdom-booking-api/internal/payments"
	"github.com/MrRexos/wisdom-booking-api/internal/routes"
)

func main() {

	_ = godotenv.Load()

	cfg := config.Load()
	db := dbpkg.NewDB(cfg)

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync()

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
	})

	gateway, err := payments.NewMercadoPagoGateway(
		cfg.MPAccessToken,
		cfg.PaymentTimeout,
		logger,
	)
	if err != nil {
		log.Fatalf("failed to init payment gateway: %v", err)
	}

	r := gin.Default()

	r.Use(middleware.CORSMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	sweeper := routes.RegisterRoutes(r, cfg, routes.Deps{
		DB:      db,
		Gateway: gateway,
		Locks:   lock.NewBookingLocker(rdb, cfg.LockTTL),
		Log:     logger,
	})

	go sweeper.Run(context.Background())

	log.Printf("Server running on %s", cfg.Addr())
	if err := r.Run(cfg.Addr()); err != nil {
		log.Fatalf("failed to start server: %v", err)
	}
}
