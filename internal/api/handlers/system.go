package handlers

import (
	"net/http"
	"time"

	"github.com/ndewijer/InvestBoard-Backend/internal/api/response"
	"github.com/ndewijer/InvestBoard-Backend/internal/service"
)

// SystemHandler handles system-related HTTP requests
type SystemHandler struct {
	systemService *service.SystemService
}

// NewSystemHandler creates a new SystemHandler
func NewSystemHandler(systemService *service.SystemService) *SystemHandler {
	return &SystemHandler{
		systemService: systemService,
	}
}

// HealthResponse represents the health check response
type HealthResponse struct {
	Status    string `json:"status"`
	Database  string `json:"database"`
	Timestamp string `json:"timestamp"`
	Error     string `json:"error,omitempty"`
}

// Health checks durable store connectivity.
//
// Endpoint: GET /api/health
// Response: 200 OK when the store answers, 500 otherwise
func (h *SystemHandler) Health(w http.ResponseWriter, r *http.Request) {
	health := h.systemService.CheckHealth(r.Context())

	status := http.StatusOK
	if health.Error != "" {
		status = http.StatusInternalServerError
	}

	response.RespondJSON(w, status, HealthResponse{
		Status:    health.Status,
		Database:  health.Database,
		Timestamp: health.CheckedAt.Format(time.RFC3339),
		Error:     health.Error,
	})
}
