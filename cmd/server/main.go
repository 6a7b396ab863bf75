package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"medicaidgov/internal/cache"
	"medicaidgov/internal/config"
	"medicaidgov/internal/fetch"
	"medicaidgov/internal/handlers"
	"medicaidgov/internal/jobs"
	"medicaidgov/internal/medicaid"
	"medicaidgov/internal/tools"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	log.Println("🚀 Starting Medicaid Open Data Server...")

	// Load .env file (ignore error if file doesn't exist)
	if err := godotenv.Load(); err != nil {
		log.Printf("⚠️  No .env file found or error loading it: %v", err)
	}

	cfg := config.Load()
	log.Printf("📋 Configuration loaded (Port: %s, fetch timeout: %v)", cfg.Port, cfg.FetchTimeout)

	// Core services. The cache is constructed once here and injected
	// everywhere that needs it.
	cacheManager := cache.New()
	client := fetch.NewClient(cfg.FetchTimeout, cfg.MaxDownloadBytes)
	service := medicaid.NewService(cacheManager, client, nil)

	// Tool registry
	registry := tools.NewRegistry()
	if err := registry.Register(tools.NewMedicaidInfoTool(service)); err != nil {
		log.Fatalf("❌ Failed to register medicaid_info tool: %v", err)
	}
	log.Printf("🔧 Registered %d tools", registry.Count())

	// Background dataset re-warm
	jobScheduler := jobs.NewJobScheduler()
	if cfg.RefreshEnabled {
		jobScheduler.Register("dataset_refresh", jobs.NewDatasetRefreshJob(service, cfg.RefreshInterval))
		if err := jobScheduler.Start(); err != nil {
			log.Printf("⚠️ Failed to start job scheduler: %v", err)
		}
	}

	// Fiber app. The long timeouts cover cold-cache queries that have to
	// pull the full NADAC file before answering.
	app := fiber.New(fiber.Config{
		AppName:      "Medicaid Open Data v1.0",
		ReadTimeout:  10 * time.Minute,
		WriteTimeout: 10 * time.Minute,
		IdleTimeout:  10 * time.Minute,
		BodyLimit:    1 * 1024 * 1024,
	})

	app.Use(recover.New())
	app.Use(logger.New())

	allowedOrigins := os.Getenv("ALLOWED_ORIGINS")
	if allowedOrigins == "" {
		allowedOrigins = "http://localhost:5173,http://localhost:3000"
		log.Println("⚠️  ALLOWED_ORIGINS not set, using development defaults")
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins: allowedOrigins,
		AllowMethods: "GET,POST,OPTIONS",
		AllowHeaders: "Origin,Content-Type,Accept",
	}))

	// Rate limit the tool API; health stays unthrottled for probes.
	app.Use("/api", limiter.New(limiter.Config{
		Max:        60,
		Expiration: 1 * time.Minute,
	}))

	healthHandler := handlers.NewHealthHandler(cacheManager, jobScheduler)
	toolsHandler := handlers.NewToolsHandler(registry)
	cacheHandler := handlers.NewCacheHandler(cacheManager)

	app.Get("/health", healthHandler.Handle)
	app.Get("/api/tools", toolsHandler.ListTools)
	app.Post("/api/tools/execute", toolsHandler.ExecuteTool)
	app.Get("/api/cache/stats", cacheHandler.Stats)
	app.Post("/api/cache/clear", cacheHandler.Clear)

	// Handle graceful shutdown
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		log.Println("\n🛑 Shutting down server...")

		jobScheduler.Stop()

		if err := app.Shutdown(); err != nil {
			log.Printf("⚠️ Error shutting down server: %v", err)
		}
	}()

	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatalf("❌ Failed to start server: %v", err)
	}
}
