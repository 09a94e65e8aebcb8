package main

import (
	"context"
	"log"
	"time"

	"learned_site/config"
	"learned_site/handlers"
	"learned_site/middleware"
	"learned_site/services"
	"learned_site/services/i18n"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
)

func main() {
	// Load configuration
	cfg := config.Load()

	if err := i18n.Load(); err != nil {
		log.Fatalf("Failed to load translations: %v", err)
	}

	middleware.InitAssetVersions("static")

	// Load the course catalog once; it is read-only afterwards
	storage := services.NewStorage(cfg, ".")
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	catalog, err := services.LoadCatalog(ctx, storage, cfg.CatalogPath)
	cancel()
	if err != nil {
		log.Fatalf("Failed to load course catalog: %v", err)
	}

	// Create Echo instance
	e := echo.New()

	// Middleware
	e.Use(echomiddleware.RequestLogger())
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins: cfg.AllowedOrigins,
	}))

	// Make config and catalog available to handlers
	e.Use(handlers.WithDependencies(cfg, catalog))
	e.Use(middleware.CSPNonce())
	e.Use(middleware.CSRF(cfg))
	e.Use(middleware.Locale(cfg))

	// Static files
	e.Static("/static", "static")

	// Pages
	e.GET("/", handlers.HomeHandler)
	e.GET("/courses", handlers.CoursesPageHandler)
	e.GET("/contact", handlers.ContactPageHandler)

	// Course filter: htmx fragments, JSON and the live session
	e.GET("/htmx/courses", handlers.CoursesHTMXHandler)
	e.GET("/api/courses", handlers.CoursesAPIHandler, middleware.APIRateLimiter.Middleware())
	e.GET("/ws/courses", handlers.CoursesLiveHandler)

	// Forms
	e.POST("/contact", handlers.ContactPostHandler, middleware.ContactRateLimiter.Middleware())
	e.POST("/newsletter", handlers.NewsletterPostHandler, middleware.NewsletterRateLimiter.Middleware())

	// SEO and monitoring
	e.GET("/sitemap.xml", handlers.GetSitemapHandler)
	e.GET("/robots.txt", handlers.RobotsHandler)
	e.GET("/health", handlers.HealthHandler)

	// Start server
	log.Printf("Server starting on port %s (%d courses)", cfg.ServerPort, len(catalog.Courses))
	if err := e.Start(":" + cfg.ServerPort); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
