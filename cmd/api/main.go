package main

import (
	"context"
	"fmt"
	stdlog "log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Sachin1yadav/aitrendpromt/internal/api/handlers"
	"github.com/Sachin1yadav/aitrendpromt/internal/api/middleware"
	"github.com/Sachin1yadav/aitrendpromt/internal/api/routes"
	"github.com/Sachin1yadav/aitrendpromt/internal/domain/analytics"
	"github.com/Sachin1yadav/aitrendpromt/internal/domain/prompt"
	"github.com/Sachin1yadav/aitrendpromt/internal/infrastructure/cache"
	"github.com/Sachin1yadav/aitrendpromt/internal/infrastructure/persistence/clickhouse"
	"github.com/Sachin1yadav/aitrendpromt/internal/infrastructure/persistence/postgres/connection"
	"github.com/Sachin1yadav/aitrendpromt/internal/infrastructure/persistence/postgres/migrations"
	"github.com/Sachin1yadav/aitrendpromt/internal/infrastructure/scheduler"
	"github.com/Sachin1yadav/aitrendpromt/pkg/config"
	"github.com/Sachin1yadav/aitrendpromt/pkg/logger"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// RequestLoggerMiddleware logs all incoming HTTP requests
func RequestLoggerMiddleware(log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		method := c.Request.Method

		log.Info("Request started",
			zap.String("path", path),
			zap.String("method", method),
			zap.String("client_ip", c.ClientIP()),
		)

		c.Next()

		log.Info("Request completed",
			zap.String("path", path),
			zap.String("method", method),
			zap.String("client_ip", c.ClientIP()),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
		)
	}
}

func main() {
	// Load configuration
	cfg, err := config.LoadConfig("") // Empty string will make it search in default locations
	if err != nil {
		stdlog.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	log := logger.NewLogger()
	defer log.Sync()

	log.Info("Configuration loaded successfully")
	log.Info("Server mode: " + cfg.Server.Mode)

	// Set up Gin
	if cfg.Server.Mode == "production" {
		gin.SetMode(gin.ReleaseMode)
	} else {
		gin.SetMode(gin.DebugMode)
	}
	gin.DefaultWriter = os.Stdout

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(RequestLoggerMiddleware(log))

	metricsMiddleware := middleware.NewMetricsMiddleware()
	router.Use(metricsMiddleware.CollectMetrics())

	router.Use(cors.New(cors.Config{
		AllowOrigins: cfg.CORS.AllowedOrigins,
		AllowMethods: cfg.CORS.AllowedMethods,
		AllowHeaders: append(cfg.CORS.AllowedHeaders,
			"Accept-Encoding",
			"Content-Type",
			"Authorization",
		),
		ExposeHeaders: []string{
			"Content-Length",
			"Content-Type",
		},
		AllowCredentials: cfg.CORS.AllowCredentials,
		MaxAge:           12 * time.Hour,
	}))

	// Prometheus metrics endpoint
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Connect to Postgres
	db, err := connection.NewDatabase(cfg)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}

	// Run database migrations
	if err := migrations.AutoMigrate(db, log.Logger); err != nil {
		log.Fatal("Failed to run database migrations", zap.Error(err))
	}

	// Connect to ClickHouse and make sure the event table exists
	chClient, err := clickhouse.NewClient(cfg)
	if err != nil {
		log.Fatal("Failed to connect to ClickHouse", zap.Error(err))
	}
	defer chClient.Close()

	schemaCtx, cancelSchema := context.WithTimeout(context.Background(), 30*time.Second)
	if err := chClient.EnsureSchema(schemaCtx); err != nil {
		cancelSchema()
		log.Fatal("Failed to ensure ClickHouse schema", zap.Error(err))
	}
	cancelSchema()

	// Initialize Redis
	redisConfig := cache.NewConfigFromEnv(cfg)
	redisClient, err := cache.NewRedisClient(redisConfig)
	if err != nil {
		log.Fatal("Failed to connect to Redis", zap.Error(err))
	}
	defer redisClient.Close()

	// Initialize repositories
	promptRepo := prompt.NewRepository(db)
	analyticsRepo := analytics.NewRepository(chClient)

	// Initialize services
	promptService := prompt.NewService(promptRepo, log.Logger)
	analyticsService := analytics.NewService(analyticsRepo, log.Logger)

	// Cache middleware for the public catalog responses
	cacheMiddleware := middleware.NewCacheMiddleware(redisClient, "aitrendpromt", 5*time.Minute)

	// Admin credential check
	credentialChecker := middleware.NewSharedSecretChecker(cfg.Auth.AdminSecret)

	// Initialize and start the trend rank scheduler
	trendScheduler := scheduler.NewScheduler(analyticsRepo, promptRepo, log)
	trendScheduler.Start()
	defer trendScheduler.Stop()
	log.Info("Trend rank scheduler started successfully")

	// Initialize handlers
	promptHandler := handlers.NewPromptHandler(promptService)
	adminHandler := handlers.NewAdminHandler(promptService)
	analyticsHandler := handlers.NewAnalyticsHandler(analyticsService, log.Logger, cfg.Server.Mode)

	// Register routes
	promptRoutes := routes.NewPromptRoutes(promptHandler)
	promptRoutes.RegisterRoutes(router, cacheMiddleware)
	log.Info("Registered prompt routes at /api/prompts")

	adminRoutes := routes.NewAdminRoutes(adminHandler, credentialChecker)
	adminRoutes.RegisterRoutes(router, cacheMiddleware)
	log.Info("Registered admin routes at /api/admin/prompts")

	analyticsRoutes := routes.NewAnalyticsRoutes(analyticsHandler, credentialChecker)
	analyticsRoutes.RegisterRoutes(router)
	log.Info("Registered analytics routes at /api/analytics")

	routes.SetupHealthRoutes(router, map[string]routes.DependencyCheck{
		"postgres": func(ctx context.Context) error {
			sqlDB, err := db.DB.DB()
			if err != nil {
				return err
			}
			if err := sqlDB.PingContext(ctx); err == nil {
				return nil
			}
			// Try to re-establish the pool before reporting not ready.
			if err := db.Reconnect(); err != nil {
				return err
			}
			sqlDB, err = db.DB.DB()
			if err != nil {
				return err
			}
			return sqlDB.PingContext(ctx)
		},
		"clickhouse": func(ctx context.Context) error {
			return chClient.Conn.Ping(ctx)
		},
		"redis": func(ctx context.Context) error {
			return redisClient.HealthCheck(ctx)
		},
	}, redisClient)
	log.Info("Registered health check routes at /health, /health/ready and /health/cache")

	// Start server
	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: router,
	}

	// Graceful shutdown
	go func() {
		log.Info(fmt.Sprintf("Server starting on port %d", cfg.Server.Port))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	// Shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	log.Info("Shutting down server...")
	if err := server.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited properly")
}
