package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/saloon-scheduler/internal/audit"
	"github.com/BruksfildServices01/saloon-scheduler/internal/config"
	dbpkg "github.com/BruksfildServices01/saloon-scheduler/internal/db"
	domain "github.com/BruksfildServices01/saloon-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/saloon-scheduler/internal/infra/payment"
	"github.com/BruksfildServices01/saloon-scheduler/internal/infra/ratelimit"
	"github.com/BruksfildServices01/saloon-scheduler/internal/logger"
	"github.com/BruksfildServices01/saloon-scheduler/internal/routes"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		// No logger yet.
		os.Stderr.WriteString(err.Error() + "\n")
		os.Exit(1)
	}

	log, err := logger.New(cfg.IsProduction(), cfg.LogLevel)
	if err != nil {
		os.Stderr.WriteString(err.Error() + "\n")
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	db, err := dbpkg.NewDB(cfg, log)
	if err != nil {
		log.Fatal("database", zap.Error(err))
	}

	dispatcher := audit.NewDispatcher(audit.New(db), log)

	var payments domain.PaymentGateway
	gateway, err := payment.NewMercadoPagoGateway(cfg.MercadoPagoAccessToken, cfg.MercadoPagoNotificationURL)
	switch {
	case err == nil:
		payments = gateway
	case errors.Is(err, payment.ErrNotConfigured):
		log.Info("online payments disabled")
	default:
		log.Fatal("payment gateway", zap.Error(err))
	}

	var rdb *redis.Client
	var limiter ratelimit.Limiter
	if cfg.RedisAddr != "" {
		rdb = redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		pingCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		err := rdb.Ping(pingCtx).Err()
		cancel()
		if err != nil {
			log.Fatal("redis", zap.String("addr", cfg.RedisAddr), zap.Error(err))
		}
		limiter = ratelimit.NewRedisLimiter(rdb, cfg.RateLimitPerMinute, time.Minute, "saloon:rl")
	} else {
		limiter = ratelimit.NewLocalLimiter(cfg.RateLimitPerMinute)
	}

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery())

	routes.RegisterRoutes(r, routes.Dependencies{
		DB:       db,
		Config:   cfg,
		Log:      log,
		Audit:    dispatcher,
		Payments: payments,
		Limiter:  limiter,
	})

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		log.Info("server running", zap.String("addr", cfg.Addr()))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("failed to start server", zap.Error(err))
		}
	}()

	<-ctx.Done()
	log.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("http shutdown", zap.Error(err))
	}
	if err := dispatcher.Close(shutdownCtx); err != nil {
		log.Warn("audit queue not drained", zap.Error(err))
	}
	if rdb != nil {
		_ = rdb.Close()
	}
	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
}
