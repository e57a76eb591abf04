package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"kanam-academy-backend/config"
	_ "kanam-academy-backend/docs" // Important for Swagger
	v1 "kanam-academy-backend/internal/delivery/http/v1"
	"kanam-academy-backend/internal/usecase"
	"kanam-academy-backend/pkg/email"
	"kanam-academy-backend/pkg/logger"
	"kanam-academy-backend/pkg/redis"
	"kanam-academy-backend/pkg/validation"
)

// @title           Kanam Academy Contact API
// @version         1.0
// @description     Contact form backend for the Kanam Academy marketing site.
// @host            localhost:8080
// @BasePath        /v1
func main() {
	// 1. Load Config
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// 2. Setup Logger
	if err := logger.Init(logger.Options{
		Level:        cfg.LogLevel,
		Format:       cfg.LogFormat,
		ServiceName:  "kanam-contact-api",
		Environment:  cfg.Env,
		Version:      cfg.Version,
		RollbarToken: cfg.RollbarToken,
	}); err != nil {
		log.Fatalf("Failed to init logger: %v", err)
	}
	defer logger.Sync()
	logger.Log.Info("Starting contact backend", zap.String("port", cfg.Port), zap.String("env", cfg.Env))

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	// 3. Setup Redis (optional, rate limiting falls back to memory)
	var redisPing func(ctx context.Context) error
	if cfg.UpstashRedisURL != "" {
		if err := redis.Initialize(redis.Config{URL: cfg.UpstashRedisURL, Password: cfg.UpstashRedisPassword}); err != nil {
			logger.Log.Warn("Redis unavailable - rate limiting uses in-memory fallback", zap.Error(err))
		} else {
			redisPing = redis.HealthCheck
			defer redis.Close()
		}
	}

	// 4. Setup Email
	mailSettings := cfg.Mail()
	mailer, err := email.NewSender(mailSettings)
	if err != nil {
		logger.Log.Fatal("Failed to set up email", zap.Error(err))
	}
	if !mailSettings.Configured() {
		logger.Log.Warn("Email service not fully configured - contact form will answer 503",
			zap.String("driver", mailSettings.Driver))
	}

	// 5. Setup UseCases
	contactUC := usecase.NewContactUsecase(mailer, mailSettings, validation.New())
	healthUC := usecase.NewHealthUsecase(contactUC, redisPing)

	// 6. Setup Router
	router := v1.NewRouter(v1.RouterDeps{
		ContactUC: contactUC,
		HealthUC:  healthUC,
		Config:    cfg,
	})

	// 7. Start Server
	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	serveErr := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
	}()

	// Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case err := <-serveErr:
		logger.Log.Error("Listen failed", zap.Error(err))
		logger.Sync()
		os.Exit(1)
	case <-quit:
	}
	logger.Log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Log.Error("Server forced to shutdown", zap.Error(err))
	}

	logger.Log.Info("Server exiting")
}
