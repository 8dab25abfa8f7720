package middleware

import (
	"github.com/go-chi/cors"

	"github.com/ndewijer/InvestBoard-Backend/internal/api/response"
)

// NewCORS creates a new CORS middleware with the given allowed origins.
// The dashboard only reads data and clears the memory cache.
func NewCORS(allowedOrigins []string) *cors.Cors {
	return cors.New(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{"GET", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		ExposedHeaders:   []string{"Content-Type", response.CacheSourceHeader},
		AllowCredentials: true,
		MaxAge:           300,
	})
}
