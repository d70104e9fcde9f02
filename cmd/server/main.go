// Package main runs the Morocco events HTTP server with WebSocket updates and graceful shutdown.
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/morocco-events/backend/config"
	"github.com/morocco-events/backend/internal/activity"
	"github.com/morocco-events/backend/internal/auth"
	"github.com/morocco-events/backend/internal/dashboard"
	"github.com/morocco-events/backend/internal/events"
	"github.com/morocco-events/backend/internal/i18n"
	"github.com/morocco-events/backend/internal/metrics"
	"github.com/morocco-events/backend/internal/middleware"
	"github.com/morocco-events/backend/internal/models"
	"github.com/morocco-events/backend/internal/realtime"
	"github.com/morocco-events/backend/internal/uploads"
	"github.com/morocco-events/backend/pkg/database"
	"github.com/morocco-events/backend/pkg/redis"
	"github.com/morocco-events/backend/pkg/storage"
	"github.com/morocco-events/backend/pkg/validation"
)

func main() {
	logger := newLogger()
	defer logger.Sync()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("load config", zap.Error(err))
	}
	validation.Init()

	ctx := context.Background()
	pool, err := database.NewPostgresPool(ctx, cfg.Database.DSN(), logger)
	if err != nil {
		logger.Fatal("database", zap.Error(err))
	}
	defer pool.Close()

	if err := database.Migrate(ctx, pool); err != nil {
		logger.Fatal("migrate", zap.Error(err))
	}

	rdb, err := redis.NewClient(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB, logger)
	if err != nil {
		logger.Fatal("redis", zap.Error(err))
	}
	defer rdb.Close()

	m := metrics.New()

	// Image uploads stay disabled (503) without a bucket.
	var images uploads.ImageStore
	if cfg.AWS.S3Enabled() {
		s3Client, err := storage.NewS3(ctx, storage.S3Config{
			Region:          cfg.AWS.Region,
			AccessKeyID:     cfg.AWS.AccessKeyID,
			SecretAccessKey: cfg.AWS.SecretAccessKey,
			ImagesBucket:    cfg.AWS.ImagesBucket,
			Endpoint:        cfg.AWS.S3Endpoint,
		}, logger)
		if err != nil {
			logger.Warn("s3 disabled", zap.Error(err))
		} else {
			images = s3Client
		}
	}

	// Realtime
	redisPubSub := realtime.NewRedisPubSub(rdb.Client, logger)
	hub := realtime.NewHub(logger, redisPubSub, redisPubSub, m)

	// Auth
	jwtService := auth.NewJWTService(cfg.JWT.Secret, cfg.JWT.TokenTTL())
	authService := auth.NewService(auth.NewRepository(pool), jwtService, auth.NewRedisRevocations(rdb.Client), logger)
	authHandler := auth.NewHandler(authService, logger)

	// Events and activity feed
	activityRepo := activity.NewRepository(pool)
	recorder := activity.NewRecorder(activityRepo, logger)
	eventService := events.NewService(events.NewRepository(pool), recorder, hub, m, logger)
	eventHandler := events.NewHandler(eventService, logger)

	dashboardHandler := dashboard.NewHandler(dashboard.NewService(eventService, activityRepo), logger)
	uploadHandler := uploads.NewHandler(images, logger)
	i18nHandler := i18n.NewHandler()
	wsHandler := realtime.NewHandler(hub, eventService, cfg.Server.CORSAllowedOrigins, logger)

	defaultLocale, ok := i18n.ParseLocale(cfg.I18n.DefaultLocale)
	if !ok {
		logger.Warn("unsupported DEFAULT_LOCALE, using en", zap.String("locale", cfg.I18n.DefaultLocale))
		defaultLocale = i18n.English
	}

	requireAuth := middleware.JWT(authService.Authorize)
	requireAdmin := middleware.RequireRole(models.RoleAdmin)
	window := cfg.RateLimit.Window()
	authLimit := middleware.RateLimit(rdb.Client, cfg.RateLimit.AuthMax, window, middleware.KeyByIPAndRoute("auth"), logger)
	subscribeLimit := middleware.RateLimit(rdb.Client, cfg.RateLimit.SubscribeMax, window, middleware.KeyByIPAndRoute("subscribe"), logger)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.CORS(cfg.Server.CORSAllowedOrigins))
	router.Use(middleware.Locale(defaultLocale))
	router.Use(middleware.Logger(logger))
	router.Use(middleware.Metrics(m))

	// Health
	router.GET("/health", func(c *gin.Context) {
		status := http.StatusOK
		dbStatus, redisStatus := "ok", "ok"
		if err := pool.Ping(c.Request.Context()); err != nil {
			logger.Warn("database health check failed", zap.Error(err))
			status, dbStatus = http.StatusServiceUnavailable, "down"
		}
		if err := rdb.Healthy(c.Request.Context()); err != nil {
			status, redisStatus = http.StatusServiceUnavailable, "down"
		}
		c.JSON(status, gin.H{"status": http.StatusText(status), "database": dbStatus, "redis": redisStatus})
	})
	router.GET("/metrics", gin.WrapH(m.Handler()))

	api := router.Group("/api")
	authHandler.Routes(api, requireAuth, authLimit)
	eventHandler.Register(api, requireAuth, requireAdmin, subscribeLimit)
	dashboardHandler.Routes(api, requireAuth)
	api.GET("/i18n/:locale", i18nHandler.Dictionary)
	api.POST("/uploads/images", requireAuth, uploadHandler.UploadImages)

	// WebSocket (anonymous, read-only)
	router.GET("/ws/events/:id", wsHandler.ServeEvent)

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	go func() {
		logger.Info("server listening", zap.String("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown", zap.Error(err))
	}
	hub.Close()
	logger.Info("server stopped")
}

func newLogger() *zap.Logger {
	config := zap.NewProductionConfig()
	config.EncoderConfig.TimeKey = "timestamp"
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	logger, _ := config.Build()
	return logger
}
