package handlers

import (
	"net/http"

	"github.com/ndewijer/InvestBoard-Backend/internal/api/response"
	"github.com/ndewijer/InvestBoard-Backend/internal/model"
	"github.com/ndewijer/InvestBoard-Backend/internal/service"
	"github.com/ndewijer/InvestBoard-Backend/internal/validation"
)

// MarketDataHandler serves cached-or-fresh market data.
// Every endpoint accepts ?refresh=true to bypass both cache tiers.
type MarketDataHandler struct {
	marketDataService *service.MarketDataService
}

// NewMarketDataHandler creates a new MarketDataHandler
func NewMarketDataHandler(marketDataService *service.MarketDataService) *MarketDataHandler {
	return &MarketDataHandler{
		marketDataService: marketDataService,
	}
}

// Stock handles GET requests for a single listed company.
//
// Endpoint: GET /api/stocks/{symbol}
// Response: 200 OK with the stock JSON document
// Error: 400 Bad Request for an invalid symbol, 500 if the data could not be fetched
func (h *MarketDataHandler) Stock(w http.ResponseWriter, r *http.Request) {
	symbol, err := validation.ParseStockSymbol(pathParam(r, "symbol"))
	if err != nil {
		respondFetchError(w, "stock", err)
		return
	}

	result, err := h.marketDataService.GetStock(r.Context(), symbol, refreshRequested(r))
	if err != nil {
		respondFetchError(w, "stock", err)
		return
	}
	response.RespondPayload(w, http.StatusOK, result.Data, string(result.Source))
}

// MutualFund handles GET requests for a mutual fund scheme.
//
// Endpoint: GET /api/mutual-funds/{code}
func (h *MarketDataHandler) MutualFund(w http.ResponseWriter, r *http.Request) {
	code, err := validation.ParseFundCode(pathParam(r, "code"))
	if err != nil {
		respondFetchError(w, "mutual fund", err)
		return
	}

	result, err := h.marketDataService.GetMutualFund(r.Context(), code, refreshRequested(r))
	if err != nil {
		respondFetchError(w, "mutual fund", err)
		return
	}
	response.RespondPayload(w, http.StatusOK, result.Data, string(result.Source))
}

// IPO handles GET requests for a single IPO by name or id.
//
// Endpoint: GET /api/ipo/{id}
func (h *MarketDataHandler) IPO(w http.ResponseWriter, r *http.Request) {
	id, err := validation.ParseIPOID(pathParam(r, "id"))
	if err != nil {
		respondFetchError(w, "IPO", err)
		return
	}

	result, err := h.marketDataService.GetIPO(r.Context(), id, refreshRequested(r))
	if err != nil {
		respondFetchError(w, "IPO", err)
		return
	}
	response.RespondPayload(w, http.StatusOK, result.Data, string(result.Source))
}

// IPOList returns the handler for one IPO list view. The body is always a JSON array.
//
// Endpoints: GET /api/ipo/current, /api/ipo/upcoming, /api/ipo/past
func (h *MarketDataHandler) IPOList(category model.IPOCategory) http.HandlerFunc {
	what := string(category) + " IPO"
	return func(w http.ResponseWriter, r *http.Request) {
		result, err := h.marketDataService.GetIPOList(r.Context(), category, refreshRequested(r))
		if err != nil {
			respondFetchError(w, what, err)
			return
		}
		response.RespondPayload(w, http.StatusOK, result.Data, string(result.Source))
	}
}

// MarketSnapshot handles GET requests for the market overview.
//
// Endpoint: GET /api/market/snapshot
func (h *MarketDataHandler) MarketSnapshot(w http.ResponseWriter, r *http.Request) {
	result, err := h.marketDataService.GetMarketSnapshot(r.Context(), refreshRequested(r))
	if err != nil {
		respondFetchError(w, "market snapshot", err)
		return
	}
	response.RespondPayload(w, http.StatusOK, result.Data, string(result.Source))
}
