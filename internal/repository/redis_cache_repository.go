package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/ndewijer/InvestBoard-Backend/internal/apperrors"
	"github.com/ndewijer/InvestBoard-Backend/internal/model"
)

const redisKeyPrefix = "investboard:cached_entity"

// RedisCacheRepository stores cached records as JSON documents in Redis.
// It is the alternative durable backend selected with CACHE_BACKEND=redis.
type RedisCacheRepository struct {
	client *redis.Client
	now    func() time.Time
}

type redisRecord struct {
	ID         string          `json:"id"`
	EntityType string          `json:"entity_type"`
	Key        string          `json:"key"`
	Data       json.RawMessage `json:"data"`
	SourceURLs []string        `json:"source_urls"`
	FetchedAt  time.Time       `json:"fetched_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
}

// NewRedisCacheRepository creates a repository from a redis:// URL.
// The connection is established lazily; use Ping to verify it.
func NewRedisCacheRepository(redisURL string) (*RedisCacheRepository, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse redis url: %w", err)
	}
	return &RedisCacheRepository{client: redis.NewClient(opt), now: time.Now}, nil
}

func redisKey(entityType model.EntityType, key string) string {
	return fmt.Sprintf("%s:%s:%s", redisKeyPrefix, entityType, key)
}

// Get retrieves the cached record for the given entity type and key.
func (r *RedisCacheRepository) Get(ctx context.Context, entityType model.EntityType, key string) (*model.CachedRecord, error) {
	b, err := r.client.Get(ctx, redisKey(entityType, key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, apperrors.ErrCacheMiss
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %w", apperrors.ErrCacheUnavailable, err)
	}

	var rec redisRecord
	if err := json.Unmarshal(b, &rec); err != nil {
		return nil, fmt.Errorf("failed to decode cached record %s/%s: %w", entityType, key, err)
	}

	return &model.CachedRecord{
		ID:         rec.ID,
		EntityType: model.EntityType(rec.EntityType),
		Key:        rec.Key,
		Payload:    rec.Data,
		SourceURLs: rec.SourceURLs,
		FetchedAt:  rec.FetchedAt,
		UpdatedAt:  rec.UpdatedAt,
	}, nil
}

// Upsert writes the record without expiry, replacing any previous value.
func (r *RedisCacheRepository) Upsert(ctx context.Context, entityType model.EntityType, key string, payload json.RawMessage, sourceURLs []string) error {
	if !json.Valid(payload) {
		return fmt.Errorf("%w: payload for %s/%s is not valid JSON", apperrors.ErrPersistenceWrite, entityType, key)
	}
	if sourceURLs == nil {
		sourceURLs = []string{}
	}

	id := uuid.New().String()
	if existing, err := r.Get(ctx, entityType, key); err == nil {
		id = existing.ID
	}

	now := r.now().UTC()
	b, err := json.Marshal(redisRecord{
		ID:         id,
		EntityType: string(entityType),
		Key:        key,
		Data:       payload,
		SourceURLs: sourceURLs,
		FetchedAt:  now,
		UpdatedAt:  now,
	})
	if err != nil {
		return fmt.Errorf("%w: %w", apperrors.ErrPersistenceWrite, err)
	}

	if err := r.client.Set(ctx, redisKey(entityType, key), b, 0).Err(); err != nil {
		return fmt.Errorf("%w: %w", apperrors.ErrPersistenceWrite, err)
	}
	return nil
}

// Ping checks that the Redis server is reachable.
func (r *RedisCacheRepository) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

// Close releases the underlying connection pool.
func (r *RedisCacheRepository) Close() error {
	return r.client.Close()
}
