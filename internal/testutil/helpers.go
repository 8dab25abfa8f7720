package testutil

import (
	"context"
	"database/sql"
	"encoding/json"
	"math/rand"
	"strings"
	"testing"

	"github.com/ndewijer/InvestBoard-Backend/internal/memcache"
	"github.com/ndewijer/InvestBoard-Backend/internal/model"
	"github.com/ndewijer/InvestBoard-Backend/internal/repository"
	"github.com/ndewijer/InvestBoard-Backend/internal/service"
)

// NewTestMarketDataService wires a MarketDataService to the SQLite store in db,
// a fresh memory cache, and the given completer.
func NewTestMarketDataService(t *testing.T, db *sql.DB, completer service.Completer) (*service.MarketDataService, *memcache.Cache) {
	t.Helper()

	memory := memcache.New()
	return service.NewMarketDataService(repository.NewCachedEntityRepository(db), memory, completer), memory
}

// NewTestMarketDataServiceWithStore is NewTestMarketDataService for an arbitrary store,
// typically a *MockStore.
func NewTestMarketDataServiceWithStore(t *testing.T, store service.CacheStore, completer service.Completer) (*service.MarketDataService, *memcache.Cache) {
	t.Helper()

	memory := memcache.New()
	return service.NewMarketDataService(store, memory, completer), memory
}

func NewTestSystemService(t *testing.T, db *sql.DB) *service.SystemService {
	t.Helper()

	return service.NewSystemService(repository.NewCachedEntityRepository(db))
}

// SeedCachedRecord writes a record straight into the durable store.
//
// Example usage:
//
//	testutil.SeedCachedRecord(t, db, model.EntityStock, "TCS", `{"symbol":"TCS"}`)
func SeedCachedRecord(t *testing.T, db *sql.DB, entityType model.EntityType, key, payload string) {
	t.Helper()

	repo := repository.NewCachedEntityRepository(db)
	if err := repo.Upsert(context.Background(), entityType, key, json.RawMessage(payload), nil); err != nil {
		t.Fatalf("Failed to seed cached record %s/%s: %v", entityType, key, err)
	}
}

// GetCachedRecord reads a record straight from the durable store, failing the test on error.
func GetCachedRecord(t *testing.T, db *sql.DB, entityType model.EntityType, key string) *model.CachedRecord {
	t.Helper()

	rec, err := repository.NewCachedEntityRepository(db).Get(context.Background(), entityType, key)
	if err != nil {
		t.Fatalf("Failed to load cached record %s/%s: %v", entityType, key, err)
	}
	return rec
}

// MakeSymbol generates a unique-looking ticker symbol for testing.
//
// Example usage:
//
//	symbol := testutil.MakeSymbol("INFY")
//	// Returns: "INFY1A2B"
func MakeSymbol(base string) string {
	return strings.ToUpper(base + randomAlphanumeric(4))
}

// randomAlphanumeric generates a random alphanumeric string of the specified length.
func randomAlphanumeric(length int) string {
	const charset = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	b := make([]byte, length)
	for i := range b {
		//nolint:gosec // Test helper, cryptographic randomness not needed
		b[i] = charset[rand.Intn(len(charset))]
	}
	return string(b)
}
