package model

import (
	"encoding/json"
	"time"
)

// EntityType is the category of financial record held in the cache.
type EntityType string

const (
	EntityStock          EntityType = "stock"
	EntityMutualFund     EntityType = "mutual_fund"
	EntityIPO            EntityType = "ipo"
	EntityMarketSnapshot EntityType = "market_snapshot"
)

// Valid reports whether t is one of the known entity types.
func (t EntityType) Valid() bool {
	switch t {
	case EntityStock, EntityMutualFund, EntityIPO, EntityMarketSnapshot:
		return true
	}
	return false
}

// CachedRecord represents a row in the cached_entity table.
// Identity is the (EntityType, Key) pair; Payload holds the JSON document
// exactly as it was returned by the completion model.
type CachedRecord struct {
	ID         string
	EntityType EntityType
	Key        string
	Payload    json.RawMessage
	SourceURLs []string
	FetchedAt  time.Time
	UpdatedAt  time.Time
}

// CompletionResult is the outcome of a single completion call, including the
// optional fallback attempt. It is never persisted.
type CompletionResult struct {
	OK          bool            `json:"ok"`
	Data        json.RawMessage `json:"data,omitempty"`
	RawResponse json.RawMessage `json:"raw,omitempty"`
	Error       string          `json:"error,omitempty"`
	ModelUsed   string          `json:"modelUsed"`
}
