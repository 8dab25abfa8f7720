package handlers

import (
	"errors"
	"log"
	"net/http"
	"net/url"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/ndewijer/InvestBoard-Backend/internal/api/response"
	"github.com/ndewijer/InvestBoard-Backend/internal/apperrors"
)

// refreshRequested reports whether the request asks to bypass the caches.
// Anything other than a true boolean value is treated as false.
func refreshRequested(r *http.Request) bool {
	refresh, err := strconv.ParseBool(r.URL.Query().Get("refresh"))
	return err == nil && refresh
}

// pathParam returns a decoded URL parameter. chi matches against RawPath
// when it is set, leaving parameters encoded; otherwise they are already
// decoded and must not be unescaped again.
func pathParam(r *http.Request, name string) string {
	value := chi.URLParam(r, name)
	if r.URL.RawPath == "" {
		return value
	}
	if decoded, err := url.PathUnescape(value); err == nil {
		return decoded
	}
	return value
}

// respondFetchError maps a pipeline error to an HTTP response.
// what names the entity for the user-facing message, e.g. "stock".
func respondFetchError(w http.ResponseWriter, what string, err error) {
	switch {
	case errors.Is(err, apperrors.ErrInvalidIdentifier),
		errors.Is(err, apperrors.ErrInvalidIPOCategory):
		response.RespondError(w, http.StatusBadRequest, "Invalid request", err.Error())
	case errors.Is(err, apperrors.ErrCompletionExhausted):
		response.RespondError(w, http.StatusInternalServerError, "Failed to fetch "+what+" data", err.Error())
	default:
		log.Printf("Unexpected error fetching %s data: %v", what, err)
		response.RespondError(w, http.StatusInternalServerError, "Failed to fetch "+what+" data", nil)
	}
}
