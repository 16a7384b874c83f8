package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/redis/go-redis/v9"

	"github.com/vijay0896/LoanApp/internal/config"
	"github.com/vijay0896/LoanApp/internal/handlers"
	"github.com/vijay0896/LoanApp/internal/middleware"
	"github.com/vijay0896/LoanApp/internal/notify"
	"github.com/vijay0896/LoanApp/internal/repository"
	"github.com/vijay0896/LoanApp/internal/routes"
	"github.com/vijay0896/LoanApp/internal/services"
	"github.com/vijay0896/LoanApp/internal/storage"
	"github.com/vijay0896/LoanApp/internal/utils"
)

func main() {
	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "config/config.yaml"
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		panic(err)
	}
	dev := cfg.App.Env == "development"

	logger, err := utils.NewLogger(dev)
	if err != nil {
		panic(err)
	}
	defer func() { _ = logger.Sync() }()

	// Mongo
	mc, err := repository.NewMongoClient(cfg.Mongo.URI)
	if err != nil {
		logger.Fatalf("mongo connect: %v", err)
	}
	db := mc.Database(cfg.Mongo.Database)
	userRepo := repository.NewUserRepository(db.Collection("users"))
	borrowerRepo := repository.NewBorrowerRepository(db.Collection("borrowers"))

	// S3 store
	store, err := storage.NewS3Store(context.Background(), cfg.AWS.Region, cfg.AWS.Bucket, cfg.AWS.Endpoint, cfg.S3.PublicRead)
	if err != nil {
		logger.Fatalf("s3 init: %v", err)
	}

	// notifier
	var notifier notify.Notifier = notify.Noop{}
	var kn *notify.KafkaNotifier
	if len(cfg.Kafka.Brokers) > 0 && cfg.Kafka.Topic != "" {
		kn = notify.NewKafkaNotifier(cfg.Kafka.Brokers, cfg.Kafka.Topic)
		notifier = kn
	} else {
		logger.Warn("no kafka brokers configured, notifications disabled")
	}

	// services
	authSvc := services.NewAuthService(userRepo, notifier, []byte(cfg.JWT.Secret), cfg.TokenExpiry, logger)
	loanSvc := services.NewLoanService(borrowerRepo, store, notifier, cfg.PresignTTL, logger)

	// rate limiter on the auth surface
	var limiter *middleware.RateLimiter
	if cfg.Redis.Addr != "" {
		rdb := redis.NewClient(&redis.Options{Addr: cfg.Redis.Addr, Password: cfg.Redis.Password, DB: cfg.Redis.DB})
		limiter = middleware.NewRateLimiter(rdb, "loanapp:auth", cfg.RateLimit.Limit, cfg.RateLimitWindow)
	}

	// fiber app & routes
	app := fiber.New(fiber.Config{
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
	})
	app.Use(fiberlogger.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins:     strings.Join(cfg.App.CORSOrigins, ","),
		AllowMethods:     "GET,POST,PUT,PATCH,DELETE,HEAD",
		AllowCredentials: true,
	}))

	ah := handlers.NewAuthHandler(authSvc, logger)
	lh := handlers.NewLoanHandler(loanSvc, store, logger)
	routes.Register(app, ah, lh, []byte(cfg.JWT.Secret), limiter)

	go func() {
		addr := fmt.Sprintf(":%d", cfg.App.Port)
		logger.Infof("starting lending service on %s", addr)
		if err := app.Listen(addr); err != nil {
			logger.Fatalf("listen failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt)
	<-quit
	logger.Info("shutdown requested")
	timeoutCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	_ = app.Shutdown()
	_ = mc.Disconnect(timeoutCtx)
	if kn != nil {
		_ = kn.Close()
	}
	logger.Info("shutdown completed")
}
