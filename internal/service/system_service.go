package service

import (
	"context"
	"time"

	"github.com/ndewijer/InvestBoard-Backend/internal/model"
)

// SystemService handles system-related operations
type SystemService struct {
	store CacheStore
	now   func() time.Time
}

// NewSystemService creates a new SystemService
func NewSystemService(store CacheStore) *SystemService {
	return &SystemService{
		store: store,
		now:   time.Now,
	}
}

// CheckHealth pings the durable store and reports its state.
func (s *SystemService) CheckHealth(ctx context.Context) model.Health {
	health := model.Health{
		Status:    "healthy",
		Database:  "connected",
		CheckedAt: s.now().UTC(),
	}
	if err := s.store.Ping(ctx); err != nil {
		health.Status = "unhealthy"
		health.Database = "disconnected"
		health.Error = err.Error()
	}
	return health
}
