package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/agentfleet/costpilot/internal/api"
	"github.com/agentfleet/costpilot/internal/catalog"
	"github.com/agentfleet/costpilot/internal/config"
	"github.com/agentfleet/costpilot/internal/engine"
	"github.com/agentfleet/costpilot/internal/middleware"
	"github.com/agentfleet/costpilot/pkg/cache"
)

func main() {
	fmt.Println("==============================================")
	fmt.Println("  CostPilot - Agent Deployment Cost Estimator")
	fmt.Println("==============================================")

	// Load .env if present; environment variables take precedence.
	if err := godotenv.Load(); err == nil {
		log.Println("Loaded configuration from .env file.")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	fmt.Printf("Starting server on port %s...\n", cfg.Port)

	// Initialize Redis connection. Redis is optional: without it the
	// service runs with no estimate cache and no rate limiting.
	var redisCache *cache.Cache
	{
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		redisCache, err = cache.New(ctx, cfg.RedisAddr(), cfg.RedisPassword)
		cancel()
		if err != nil {
			log.Printf("WARNING: Redis unavailable (%v). Caching and rate limiting disabled.", err)
			redisCache = nil
		} else {
			defer redisCache.Close()
		}
	}

	// Initialize components.
	eng := engine.New(catalog.Default())
	handlers := api.NewHandlers(eng, redisCache, cfg.EstimateCacheTTL)

	// Set up Gin router.
	if cfg.LogLevel != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(middleware.RecoveryMiddleware())
	r.Use(middleware.RequestIDMiddleware())
	r.Use(middleware.LoggingMiddleware())
	r.Use(middleware.RateLimitMiddleware(redisCache, cfg.RateLimitRequests, cfg.RateLimitWindow))

	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "X-Request-ID"},
		ExposeHeaders:    []string{"X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Health check.
	r.GET("/health", handlers.HealthCheck)

	// API v1 routes.
	v1 := r.Group("/api/v1")
	{
		v1.POST("/costs/calculate", handlers.CalculateCosts)
		v1.POST("/costs/calculate-agent", handlers.CalculateAgentCost)

		v1.GET("/agents", handlers.ListAgents)
		v1.GET("/agents/:id", handlers.GetAgent)

		v1.GET("/tiers", handlers.ListTiers)
		v1.GET("/tiers/:id", handlers.GetTier)
		v1.GET("/tiers/:id/models", handlers.GetTierModels)
		v1.GET("/tiers/:id/summary", handlers.GetTierSummary)
		v1.GET("/tiers/:id/on-premise", handlers.GetTierOnPremise)
	}

	// Start HTTP server with graceful shutdown.
	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		log.Printf("CostPilot is ready on :%s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	// Wait for interrupt signal.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}
	log.Println("Server exited.")
}
