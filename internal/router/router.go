package router

import (
	"github.com/gofiber/fiber/v3"
	recoverer "github.com/gofiber/fiber/v3/middleware/recover"

	"github.com/Hrhcoolshegs/verdict/internal/handler"
	"github.com/Hrhcoolshegs/verdict/internal/middleware"
)

// Handlers holds all handler instances needed by the router.
type Handlers struct {
	Movie   *handler.MovieHandler
	Verdict *handler.VerdictHandler
	Auth    *handler.AuthHandler
	Stats   *handler.StatsHandler
	Health  *handler.HealthHandler
}

// Setup configures the middleware stack and all API routes on the given Fiber app.
func Setup(app *fiber.App, h *Handlers, corsOrigins string) {
	// Middleware stack (order matters)
	app.Use(recoverer.New())
	app.Use(middleware.NewRequestLogger())
	app.Use(handler.MetricsMiddleware())
	app.Use(middleware.NewCORS(corsOrigins))

	// Health checks (before API group, no rate limits)
	app.Get("/health/live", h.Health.Live)
	app.Get("/health/ready", h.Health.Ready)

	// Prometheus metrics
	app.Get("/metrics", handler.MetricsHandler())

	// API routes
	api := app.Group("/api")

	catalogLimit := middleware.NewCatalogRateLimiter().Handler()
	searchLimit := middleware.NewSearchRateLimiter().Handler()
	verdictLimit := middleware.NewVerdictSubmitRateLimiter().Handler()
	otpLimit := middleware.NewOTPRateLimiter().Handler()
	statsLimit := middleware.NewStatsRateLimiter().Handler()

	// Movie routes — fixed paths before the :movieId wildcard
	api.Get("/movies", h.Movie.List, catalogLimit)
	api.Get("/movies/search", h.Movie.Search, searchLimit)
	api.Get("/movies/random", h.Movie.Random, catalogLimit)
	api.Get("/movies/:movieId", h.Movie.GetByID, catalogLimit)

	// Verdict routes
	api.Post("/verdicts", h.Verdict.Submit, verdictLimit)
	api.Get("/verdicts/:movieId/voted", h.Verdict.HasVoted, catalogLimit)
	api.Get("/verdicts/:movieId", h.Verdict.Prior, catalogLimit)

	// Identity verification routes
	api.Post("/auth/verify", h.Auth.Begin, otpLimit)
	api.Post("/auth/confirm", h.Auth.Confirm, otpLimit)
	api.Post("/auth/signout", h.Auth.SignOut)

	// Stats routes
	api.Get("/stats", h.Stats.GetStats, statsLimit)
}
