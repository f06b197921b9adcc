package main

import (
	"fmt"
	"log"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"github.com/vitaltrack/backend/internal/config"
	"github.com/vitaltrack/backend/internal/handlers"
	"github.com/vitaltrack/backend/internal/logger"
	"github.com/vitaltrack/backend/internal/middleware"
	"github.com/vitaltrack/backend/internal/repository"
	"github.com/vitaltrack/backend/internal/service"
	"github.com/vitaltrack/backend/pkg/supabase"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the API server",
	Long:  `Start the HTTP API server and listen for requests.`,
	RunE:  runServe,
}

var (
	port string
)

func init() {
	serveCmd.Flags().StringVarP(&port, "port", "p", "", "Port to listen on (overrides config)")
}

func runServe(cmd *cobra.Command, args []string) error {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// Override port from flag if provided
	if port != "" {
		cfg.Server.Port = port
	}

	initLogger(cfg)

	log.Printf("Starting VitalTrack API server in %s mode", cfg.Server.Env)

	// Initialize Supabase client
	supabaseClient := supabase.NewClient(cfg.Supabase.URL, cfg.Supabase.ServiceKey)

	// Initialize repositories
	logRepo := repository.NewDailyLogRepository(supabaseClient)
	insightRepo := repository.NewInsightRepository(supabaseClient)

	// Initialize services
	metricsService := service.NewMetricsService(logRepo, insightRepo, cfg.Metrics)

	// Initialize handlers
	dashboardHandler := handlers.NewDashboardHandler(metricsService)
	insightsHandler := handlers.NewInsightsHandler(metricsService)

	// Set Gin mode based on environment
	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Initialize Gin router
	router := gin.New()
	router.Use(gin.Recovery())

	// Middleware
	router.Use(middleware.SecurityHeaders())
	router.Use(middleware.CORS())
	router.Use(middleware.Logger())
	router.Use(middleware.RateLimit())

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status": "ok",
			"env":    cfg.Server.Env,
		})
	})

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		// Protected routes
		protected := v1.Group("")
		protected.Use(middleware.Auth(supabaseClient))
		{
			// Dashboard
			protected.GET("/dashboard", dashboardHandler.GetDashboard)

			// Metric routes
			protected.GET("/metrics/recovery", dashboardHandler.GetRecovery)
			protected.GET("/metrics/wellness", dashboardHandler.GetWellness)
			protected.GET("/metrics/streaks", dashboardHandler.GetStreaks)
			protected.GET("/metrics/correlations", dashboardHandler.GetCorrelations)
			protected.GET("/metrics/patterns", dashboardHandler.GetPatterns)

			// Insight routes
			protected.GET("/insights", insightsHandler.GetInsights)
			protected.POST("/insights/refresh", middleware.RateLimitRefresh(), insightsHandler.RefreshInsights)
			protected.POST("/insights/:id/viewed", insightsHandler.MarkViewed)
			protected.POST("/insights/:id/dismiss", insightsHandler.Dismiss)
			protected.POST("/insights/:id/snooze", insightsHandler.Snooze)
		}
	}

	log.Printf("Server listening on port %s", cfg.Server.Port)
	if err := router.Run(":" + cfg.Server.Port); err != nil {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

func initLogger(cfg *config.Config) {
	logCfg := logger.DefaultConfig()
	if cfg.Server.Env != "production" {
		logCfg.Format = "text"
		logCfg.Level = logger.LevelDebug
	}
	logger.SetDefault(logger.NewSlogLogger(logCfg))
}
