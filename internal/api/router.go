package api

import (
	"github.com/go-chi/chi/v5"
	"github.com/hoanghai1803/veritas/internal/api/handlers"
	"github.com/hoanghai1803/veritas/internal/config"
)

// NewRouter creates and configures the HTTP router with all API routes.
func NewRouter(analyzer handlers.Analyzer, extractor handlers.ArticleExtractor, cfg *config.Config) *chi.Mux {
	r := chi.NewRouter()

	// Global middleware.
	r.Use(RequestID)
	r.Use(RequestLogger)
	r.Use(Recovery)
	r.Use(CORS)

	// API sub-router.
	r.Route("/api", func(api chi.Router) {
		api.Post("/analyze", handlers.Analyze(analyzer))
		api.Post("/extract", handlers.ExtractArticle(extractor))
		api.Get("/health", handlers.Health(cfg))
	})

	r.NotFound(handlers.NotFound)

	return r
}
