package api

import (
	"log/slog"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	corslib "github.com/rs/cors"
	httpSwagger "github.com/swaggo/http-swagger/v2"

	"github.com/nordliga/liga-data/internal/api/handler"
	"github.com/nordliga/liga-data/internal/cache"
	"github.com/nordliga/liga-data/internal/config"
	"github.com/nordliga/liga-data/internal/db"
	"github.com/nordliga/liga-data/internal/store"
)

// NewRouter creates and configures the Chi router with all middleware and routes.
func NewRouter(pool *db.Pool, st *store.Store, appCache *cache.Cache, cfg *config.Config, logger *slog.Logger) *chi.Mux {
	r := chi.NewRouter()

	// --- Middleware stack ---
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(TimingMiddleware)
	r.Use(middleware.Compress(5)) // gzip

	// CORS
	c := corslib.New(corslib.Options{
		AllowedOrigins:   cfg.CORSAllowOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "HEAD", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Accept-Encoding", "Content-Type", "If-None-Match", "Cache-Control"},
		ExposedHeaders:   []string{"X-Process-Time", "X-Cache", "ETag"},
		AllowCredentials: false,
	})
	r.Use(c.Handler)

	// Rate limiting
	if cfg.RateLimitEnabled {
		r.Use(RateLimitMiddleware(cfg.RateLimitRequests, cfg.RateLimitWindow))
	}

	// --- Handler dependencies ---
	h := handler.New(pool, st, appCache, cfg, logger)

	// --- Routes ---

	// Root
	r.Get("/", h.Root)

	// Health checks
	r.Route("/health", func(r chi.Router) {
		r.Get("/", h.HealthCheck)
		r.Get("/db", h.HealthCheckDB)
		r.Get("/cache", h.HealthCheckCache)
	})

	// Swagger UI
	r.Get("/docs/*", httpSwagger.Handler(
		httpSwagger.URL("/docs/doc.json"),
	))

	// API v1 routes
	r.Route("/api/v1", func(r chi.Router) {
		// Leagues
		r.Get("/leagues", h.ListLeagues)
		r.Get("/leagues/{file}", h.GetLeagueView)
		r.Get("/leagues/{file}/head-to-head", h.GetHeadToHead)
		r.Put("/leagues/{file}/rounds/{round}", h.SaveMatchday)

		// Point corrections
		r.Get("/leagues/{file}/corrections", h.GetCorrections)
		r.Post("/leagues/{file}/corrections", h.SaveCorrection)
		r.Delete("/leagues/{file}/corrections/{teamID}", h.DeleteCorrection)

		// News
		r.Get("/news", h.GetNewsList)
		r.Get("/news/search", h.SearchNews)
		r.Get("/news/{id}", h.GetNewsItem)
		r.Get("/matches/{id}/news", h.GetMatchNews)
	})

	return r
}
