package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/ndewijer/InvestBoard-Backend/internal/api/handlers"
	custommiddleware "github.com/ndewijer/InvestBoard-Backend/internal/api/middleware"
	"github.com/ndewijer/InvestBoard-Backend/internal/config"
	"github.com/ndewijer/InvestBoard-Backend/internal/model"
	"github.com/ndewijer/InvestBoard-Backend/internal/service"
)

// NewRouter creates and configures the HTTP router
func NewRouter(marketDataService *service.MarketDataService, systemService *service.SystemService, cfg *config.Config) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(custommiddleware.Logger)
	r.Use(middleware.Recoverer)

	// CORS middleware
	corsMiddleware := custommiddleware.NewCORS(cfg.CORS.AllowedOrigins)
	r.Use(corsMiddleware.Handler)

	systemHandler := handlers.NewSystemHandler(systemService)
	marketHandler := handlers.NewMarketDataHandler(marketDataService)
	cacheHandler := handlers.NewCacheHandler(marketDataService)

	// API routes
	r.Route("/api", func(r chi.Router) {
		r.Get("/health", systemHandler.Health)

		r.Get("/stocks/{symbol}", marketHandler.Stock)
		r.Get("/mutual-funds/{code}", marketHandler.MutualFund)

		r.Route("/ipo", func(r chi.Router) {
			for _, category := range model.IPOCategories {
				r.Get("/"+string(category), marketHandler.IPOList(category))
			}
			r.Get("/{id}", marketHandler.IPO)
		})

		r.Get("/market/snapshot", marketHandler.MarketSnapshot)

		r.Route("/cache", func(r chi.Router) {
			r.Get("/stats", cacheHandler.Stats)
			r.Delete("/", cacheHandler.ClearAll)
			r.Delete("/{key}", cacheHandler.ClearKey)
		})
	})

	return r
}
