package main

import (
	"context"
	"log"

	"vetorre/backend/config"
	"vetorre/backend/controllers"
	"vetorre/backend/feed"
	"vetorre/backend/gemini"
	"vetorre/backend/middleware"
	"vetorre/backend/models"
	"vetorre/backend/routes"
	"vetorre/backend/store"
	"vetorre/backend/utils"
	"vetorre/backend/workflow"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Error loading config: %v", err)
	}

	// Initialize database
	db, err := utils.InitDB(cfg)
	if err != nil {
		log.Fatalf("Error initializing database: %v", err)
	}

	// Initialize logger
	logger := utils.InitLogger()

	// Content store and migrations
	contentStore := store.NewGormStore(db)
	if err := contentStore.Migrate(); err != nil {
		log.Fatalf("Error migrating database: %v", err)
	}

	// Local mirrors, kept in sync with the store's change feed
	tools := store.NewMirror(func(t models.Tool) string { return t.ID })
	news := store.NewMirror(func(a models.Article) string { return a.ID })

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go store.SyncTools(ctx, contentStore, tools, logger)
	go store.SyncArticles(ctx, contentStore, news, logger)

	// Generation and ingestion collaborators
	geminiClient := gemini.NewClient(cfg.GeminiProxyURL, logger)
	fetcher := feed.NewFetcher(cfg.CORSProxyURL)
	converter := feed.NewConverter(geminiClient)
	publisher := workflow.NewPublisher(contentStore)

	// Create Fiber app
	app := fiber.New()

	// Middleware
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))
	app.Use(middleware.LoggingMiddleware(logger))

	// Setup routes
	routes.SetupRoutes(app, routes.Deps{
		DB:        db,
		Cfg:       cfg,
		Store:     contentStore,
		Tools:     tools,
		News:      news,
		Gemini:    geminiClient,
		Fetcher:   fetcher,
		Converter: converter,
		Publisher: publisher,
		Verifier:  &controllers.HMACVerifier{Secret: cfg.CheckoutSecret},
	})

	// Start server
	log.Fatal(app.Listen(":" + cfg.ServerPort))
}
