package api

import (
	"log"

	"github.com/gofiber/fiber/v2"

	"github.com/paulbarron/portfolio/internal/cache"
	"github.com/paulbarron/portfolio/internal/config"
	"github.com/paulbarron/portfolio/internal/middleware"
)

// SetupRoutes configures all the routes for the application
func SetupRoutes(app *fiber.App, store cache.Cache, cfg *config.Config) {
	handlers, err := NewHandlers(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize handlers: %v", err)
	}

	app.Get("/health", handlers.HealthCheck)

	// Article catalog, behind the revalidation-window cache
	api := app.Group("/api/v1")
	articles := api.Group("/articles", middleware.ResponseCache(store, cfg.CacheTTL))
	{
		articles.Get("", handlers.ListArticles)     // Unified catalog listing
		articles.Get("/:slug", handlers.GetArticle) // Single item by slug
	}

	// Thin passthrough endpoints to third-party APIs
	app.Get("/api/avatar", middleware.ResponseCache(store, cfg.AvatarCacheTTL), handlers.GetAvatar)
	app.Post("/api/subscribe", handlers.Subscribe)

	// 404 Handler
	app.Use(func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Endpoint not found",
		})
	})
}
