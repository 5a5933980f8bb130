package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"

	"communityhub/internal/config"
	"communityhub/internal/database"
	"communityhub/internal/handlers"
	"communityhub/internal/jobs"
	"communityhub/internal/logging"
	"communityhub/internal/middleware"
	"communityhub/internal/services"
	"communityhub/pkg/auth"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	// Initialize structured logging (JSON in production, text in dev)
	logging.Init()

	log.Println("🚀 Starting CommunityHub feed server...")

	// Load .env file (ignore error if file doesn't exist)
	if err := godotenv.Load(); err != nil {
		log.Printf("⚠️  No .env file found or error loading it: %v", err)
	}

	cfg := config.Load()
	log.Printf("📋 Configuration loaded (Port: %s, trending interval: %v)", cfg.Port, cfg.TrendingInterval)

	if cfg.MongoURI == "" {
		log.Fatal("❌ MONGODB_URI environment variable is required")
	}

	mongoDB, err := database.NewMongoDB(cfg.MongoURI)
	if err != nil {
		log.Fatalf("❌ Failed to connect to MongoDB: %v", err)
	}
	defer mongoDB.Close(context.Background())

	if err := mongoDB.Initialize(context.Background()); err != nil {
		log.Fatalf("❌ Failed to initialize MongoDB indexes: %v", err)
	}

	// Redis is optional; without it community stats are computed on
	// every request
	var redisService *services.RedisService
	if cfg.RedisURL != "" {
		redisService, err = services.NewRedisService(cfg.RedisURL)
		if err != nil {
			log.Printf("⚠️ Redis unavailable: %v (stats caching disabled)", err)
			redisService = nil
		} else {
			defer redisService.Close()
		}
	} else {
		log.Println("⚠️ REDIS_URL not set - stats caching disabled")
	}

	// JWT validation (issuance lives in the auth service)
	var jwtValidator *auth.JWTValidator
	if cfg.JWTSecret != "" {
		jwtValidator, err = auth.NewJWTValidator(cfg.JWTSecret)
		if err != nil {
			log.Fatalf("❌ Failed to initialize JWT validation: %v", err)
		}
		log.Println("✅ JWT validation initialized")
	} else if cfg.Environment == "production" {
		log.Fatal("❌ JWT_SECRET is required in production")
	} else {
		log.Println("⚠️ JWT_SECRET not set - auth disabled (development mode only)")
	}

	// Services
	metrics := services.InitMetrics()
	contentService := services.NewContentService(mongoDB)
	trendingStore := services.NewTrendingStore(mongoDB)
	feedService := services.NewFeedService(trendingStore, contentService, cfg.FeedCandidateCap, metrics)
	statsService := services.NewStatsService(mongoDB, redisService, cfg.StatsCacheTTL)

	// Trending scheduler: warm-up pass at startup, then one pass per
	// interval
	recomputeJob := jobs.NewTrendingRecomputeJob(trendingStore, contentService, metrics)
	scheduler, err := jobs.NewScheduler("trending-recompute", cfg.TrendingInterval, recomputeJob)
	if err != nil {
		log.Fatalf("❌ Failed to create scheduler: %v", err)
	}
	if err := scheduler.Start(context.Background()); err != nil {
		log.Fatalf("❌ Failed to start scheduler: %v", err)
	}

	// HTTP server
	app := fiber.New(fiber.Config{
		AppName:      "CommunityHub Feed Server",
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
	})

	app.Use(recover.New())
	app.Use(cors.New())
	app.Use(logger.New(logger.Config{
		Format: "${time} ${status} ${latency} ${method} ${path}\n",
	}))

	prometheusMiddleware := fiberprometheus.New("communityhub")
	prometheusMiddleware.RegisterAt(app, "/metrics")
	app.Use(prometheusMiddleware.Middleware)

	// Handlers
	feedHandler := handlers.NewFeedHandler(feedService, contentService, statsService, metrics, cfg)
	adminHandler := handlers.NewAdminHandler(trendingStore, contentService)
	healthHandler := handlers.NewHealthHandler(mongoDB)

	app.Get("/health", healthHandler.Handle)

	api := app.Group("/api")

	feed := api.Group("/feed")
	feed.Get("/", middleware.AuthMiddleware(jwtValidator), middleware.AuthenticatedLimiter(), feedHandler.GetFeed)
	feed.Get("/public", middleware.PublicReadLimiter(), feedHandler.GetPublicFeed)
	feed.Get("/trending", middleware.PublicReadLimiter(), feedHandler.GetTrending)
	feed.Get("/community-stats", middleware.PublicReadLimiter(), feedHandler.GetCommunityStats)

	admin := api.Group("/admin", middleware.AuthMiddleware(jwtValidator), middleware.AdminMiddleware())
	admin.Get("/trending", adminHandler.GetTrending)

	// Graceful shutdown
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		log.Println("🛑 Shutting down...")
		if err := scheduler.Stop(); err != nil {
			log.Printf("⚠️ Scheduler shutdown error: %v", err)
		}
		if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
			log.Printf("⚠️ Server shutdown error: %v", err)
		}
	}()

	log.Printf("🌐 Listening on :%s", cfg.Port)
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatalf("❌ Server error: %v", err)
	}

	log.Println("👋 Server stopped")
}
