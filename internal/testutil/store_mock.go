package testutil

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/ndewijer/InvestBoard-Backend/internal/apperrors"
	"github.com/ndewijer/InvestBoard-Backend/internal/model"
)

// UpsertCall records the arguments of one Upsert call.
type UpsertCall struct {
	EntityType model.EntityType
	Key        string
	Payload    json.RawMessage
	SourceURLs []string
}

// MockStore is an in-memory service.CacheStore with switchable failures.
type MockStore struct {
	mu      sync.Mutex
	records map[string]*model.CachedRecord

	// FailReads makes Get return ErrCacheUnavailable.
	FailReads bool
	// FailWrites makes Upsert return ErrPersistenceWrite.
	FailWrites bool
	// FailPing makes Ping return ErrCacheUnavailable.
	FailPing bool

	GetCount int
	Upserts  []UpsertCall
}

// NewMockStore creates an empty store.
func NewMockStore() *MockStore {
	return &MockStore{records: make(map[string]*model.CachedRecord)}
}

// NewFailingStore creates a store whose reads, writes and pings all fail,
// as if the backing database were unreachable.
func NewFailingStore() *MockStore {
	s := NewMockStore()
	s.FailReads = true
	s.FailWrites = true
	s.FailPing = true
	return s
}

func storeKey(entityType model.EntityType, key string) string {
	return string(entityType) + "\x00" + key
}

func (s *MockStore) Get(_ context.Context, entityType model.EntityType, key string) (*model.CachedRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.GetCount++
	if s.FailReads {
		return nil, fmt.Errorf("%w: connection refused", apperrors.ErrCacheUnavailable)
	}
	rec, ok := s.records[storeKey(entityType, key)]
	if !ok {
		return nil, apperrors.ErrCacheMiss
	}
	cp := *rec
	return &cp, nil
}

func (s *MockStore) Upsert(_ context.Context, entityType model.EntityType, key string, payload json.RawMessage, sourceURLs []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.Upserts = append(s.Upserts, UpsertCall{EntityType: entityType, Key: key, Payload: payload, SourceURLs: sourceURLs})
	if s.FailWrites {
		return fmt.Errorf("%w: connection refused", apperrors.ErrPersistenceWrite)
	}
	s.records[storeKey(entityType, key)] = &model.CachedRecord{
		EntityType: entityType,
		Key:        key,
		Payload:    payload,
		SourceURLs: sourceURLs,
	}
	return nil
}

func (s *MockStore) Ping(_ context.Context) error {
	if s.FailPing {
		return apperrors.ErrCacheUnavailable
	}
	return nil
}

// Put seeds a record without counting it as an upsert.
func (s *MockStore) Put(entityType model.EntityType, key, payload string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records[storeKey(entityType, key)] = &model.CachedRecord{
		EntityType: entityType,
		Key:        key,
		Payload:    json.RawMessage(payload),
	}
}

// UpsertCount returns how many times Upsert was called.
func (s *MockStore) UpsertCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.Upserts)
}
