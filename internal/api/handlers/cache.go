package handlers

import (
	"net/http"

	"github.com/ndewijer/InvestBoard-Backend/internal/api/response"
	"github.com/ndewijer/InvestBoard-Backend/internal/service"
	"github.com/ndewijer/InvestBoard-Backend/internal/validation"
)

// CacheHandler exposes administration of the memory cache.
// The durable store is never modified from here.
type CacheHandler struct {
	marketDataService *service.MarketDataService
}

// NewCacheHandler creates a new CacheHandler
func NewCacheHandler(marketDataService *service.MarketDataService) *CacheHandler {
	return &CacheHandler{
		marketDataService: marketDataService,
	}
}

// Stats handles GET /api/cache/stats.
func (h *CacheHandler) Stats(w http.ResponseWriter, r *http.Request) {
	response.RespondJSON(w, http.StatusOK, h.marketDataService.CacheStats())
}

// ClearAll handles DELETE /api/cache.
func (h *CacheHandler) ClearAll(w http.ResponseWriter, r *http.Request) {
	h.marketDataService.ClearCache()
	w.WriteHeader(http.StatusNoContent)
}

// ClearKey handles DELETE /api/cache/{key}. Clearing an absent key is not an error.
func (h *CacheHandler) ClearKey(w http.ResponseWriter, r *http.Request) {
	key, err := validation.ParseCacheKey(pathParam(r, "key"))
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "Invalid request", err.Error())
		return
	}

	h.marketDataService.ClearCacheKey(key)
	w.WriteHeader(http.StatusNoContent)
}
