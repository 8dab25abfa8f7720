package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/ndewijer/InvestBoard-Backend/internal/apperrors"
	"github.com/ndewijer/InvestBoard-Backend/internal/database"
	"github.com/ndewijer/InvestBoard-Backend/internal/model"
)

// CachedEntityRepository provides data access methods for the cached_entity table.
// Records are addressed by (entity_type, key) and written with upsert semantics.
type CachedEntityRepository struct {
	db  *sql.DB
	now func() time.Time
}

// NewCachedEntityRepository creates a new CachedEntityRepository with the provided database connection.
func NewCachedEntityRepository(db *sql.DB) *CachedEntityRepository {
	return &CachedEntityRepository{db: db, now: time.Now}
}

// Get retrieves the cached record for the given entity type and key.
//
// Returns apperrors.ErrCacheMiss if no record exists and an error wrapping
// apperrors.ErrCacheUnavailable if the database cannot be queried.
func (r *CachedEntityRepository) Get(ctx context.Context, entityType model.EntityType, key string) (*model.CachedRecord, error) {
	query := `
		SELECT id, entity_type, key, data, source_urls, fetched_at, updated_at
		FROM cached_entity
		WHERE entity_type = ? AND key = ?
	`

	var (
		rec        model.CachedRecord
		data       string
		sourceURLs string
		fetchedAt  string
		updatedAt  string
	)

	err := r.db.QueryRowContext(ctx, query, string(entityType), key).Scan(
		&rec.ID,
		&rec.EntityType,
		&rec.Key,
		&data,
		&sourceURLs,
		&fetchedAt,
		&updatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.ErrCacheMiss
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %w", apperrors.ErrCacheUnavailable, err)
	}

	rec.Payload = json.RawMessage(data)
	rec.SourceURLs = decodeSourceURLs(sourceURLs)

	if rec.FetchedAt, err = ParseTime(fetchedAt); err != nil {
		return nil, fmt.Errorf("failed to parse fetched_at for %s/%s: %w", entityType, key, err)
	}
	if rec.UpdatedAt, err = ParseTime(updatedAt); err != nil {
		return nil, fmt.Errorf("failed to parse updated_at for %s/%s: %w", entityType, key, err)
	}

	return &rec, nil
}

// Upsert creates the record for (entityType, key) or replaces its payload,
// source URLs and timestamps if it already exists. The row id is kept on update.
func (r *CachedEntityRepository) Upsert(ctx context.Context, entityType model.EntityType, key string, payload json.RawMessage, sourceURLs []string) error {
	if !json.Valid(payload) {
		return fmt.Errorf("%w: payload for %s/%s is not valid JSON", apperrors.ErrPersistenceWrite, entityType, key)
	}

	urls, err := encodeSourceURLs(sourceURLs)
	if err != nil {
		return fmt.Errorf("%w: %w", apperrors.ErrPersistenceWrite, err)
	}

	now := formatTime(r.now())

	query := `
		INSERT INTO cached_entity (id, entity_type, key, data, source_urls, fetched_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (entity_type, key) DO UPDATE SET
			data = excluded.data,
			source_urls = excluded.source_urls,
			fetched_at = excluded.fetched_at,
			updated_at = excluded.updated_at
	`

	_, err = r.db.ExecContext(ctx, query,
		uuid.New().String(),
		string(entityType),
		key,
		string(payload),
		urls,
		now,
		now,
	)
	if err != nil {
		return fmt.Errorf("%w: %w", apperrors.ErrPersistenceWrite, err)
	}
	return nil
}

// Ping checks that the database is reachable.
func (r *CachedEntityRepository) Ping(ctx context.Context) error {
	return database.HealthCheck(ctx, r.db)
}
