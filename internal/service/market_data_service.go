package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"

	"golang.org/x/sync/singleflight"

	"github.com/ndewijer/InvestBoard-Backend/internal/apperrors"
	"github.com/ndewijer/InvestBoard-Backend/internal/memcache"
	"github.com/ndewijer/InvestBoard-Backend/internal/model"
	"github.com/ndewijer/InvestBoard-Backend/internal/openrouter"
	"github.com/ndewijer/InvestBoard-Backend/internal/prompts"
)

// snapshotKey is the durable key of the singleton market snapshot.
const snapshotKey = "global"

// ipoListPrefix namespaces IPO list records apart from single IPOs, which
// share the ipo entity type.
const ipoListPrefix = "list:"

// IPOListDurableKey is the durable key of an IPO list view.
func IPOListDurableKey(category model.IPOCategory) string {
	return ipoListPrefix + string(category)
}

// CacheStore is the durable cache tier. Get returns apperrors.ErrCacheMiss
// when no record exists; any other error is treated as an outage.
type CacheStore interface {
	Get(ctx context.Context, entityType model.EntityType, key string) (*model.CachedRecord, error)
	Upsert(ctx context.Context, entityType model.EntityType, key string, payload json.RawMessage, sourceURLs []string) error
	Ping(ctx context.Context) error
}

// Completer produces structured JSON from a prompt pair.
type Completer interface {
	Complete(ctx context.Context, systemPrompt, userPrompt string, opts openrouter.Options) model.CompletionResult
}

// Source reports which tier answered a request.
type Source string

const (
	SourceDurable Source = "durable"
	SourceMemory  Source = "memory"
	SourceFresh   Source = "fresh"
)

// Result is a payload together with the tier it came from.
// Callers that only need the data can ignore Source.
type Result struct {
	Data   json.RawMessage
	Source Source
}

// MarketDataService implements the fetch-cache-fallback pipeline for every
// entity type: durable cache, then memory cache, then a completion call whose
// result is written through to both tiers.
type MarketDataService struct {
	store     CacheStore
	memory    *memcache.Cache
	completer Completer
	inflight  singleflight.Group
}

// NewMarketDataService creates a new MarketDataService with the provided tiers and completion client.
func NewMarketDataService(store CacheStore, memory *memcache.Cache, completer Completer) *MarketDataService {
	return &MarketDataService{
		store:     store,
		memory:    memory,
		completer: completer,
	}
}

// fetchPlan describes one entity lookup.
type fetchPlan struct {
	entityType model.EntityType
	durableKey string
	memoryKey  string
	prompt     prompts.Prompt
	maxTokens  int
	normalize  func(json.RawMessage) json.RawMessage
}

// GetStock returns data for a listed company. Symbols are uppercased so
// "tcs" and "TCS" share cache slots.
func (s *MarketDataService) GetStock(ctx context.Context, symbol string, refresh bool) (Result, error) {
	symbol = strings.ToUpper(symbol)
	return s.fetch(ctx, fetchPlan{
		entityType: model.EntityStock,
		durableKey: symbol,
		memoryKey:  memcache.StockKey(symbol),
		prompt:     prompts.Stock(symbol),
		maxTokens:  2000,
	}, refresh)
}

// GetMutualFund returns data for a mutual fund scheme code.
func (s *MarketDataService) GetMutualFund(ctx context.Context, code string, refresh bool) (Result, error) {
	return s.fetch(ctx, fetchPlan{
		entityType: model.EntityMutualFund,
		durableKey: code,
		memoryKey:  memcache.MutualFundKey(code),
		prompt:     prompts.MutualFund(code),
		maxTokens:  3000,
	}, refresh)
}

// GetIPO returns details of a single IPO by name or id.
// Ids in the list namespace are rejected.
func (s *MarketDataService) GetIPO(ctx context.Context, id string, refresh bool) (Result, error) {
	if strings.HasPrefix(strings.ToLower(id), ipoListPrefix) {
		return Result{}, fmt.Errorf("%w: IPO id %q is reserved", apperrors.ErrInvalidIdentifier, id)
	}
	return s.fetch(ctx, fetchPlan{
		entityType: model.EntityIPO,
		durableKey: id,
		memoryKey:  memcache.IPOKey(id),
		prompt:     prompts.IPO(id),
		maxTokens:  2500,
	}, refresh)
}

// GetIPOList returns one of the IPO list views. The payload is always a JSON array.
func (s *MarketDataService) GetIPOList(ctx context.Context, category model.IPOCategory, refresh bool) (Result, error) {
	if _, ok := model.ParseIPOCategory(string(category)); !ok {
		return Result{}, fmt.Errorf("%w: %q", apperrors.ErrInvalidIPOCategory, category)
	}
	return s.fetch(ctx, fetchPlan{
		entityType: model.EntityIPO,
		durableKey: IPOListDurableKey(category),
		memoryKey:  memcache.IPOListKey(category),
		prompt:     prompts.IPOList(category),
		maxTokens:  2000,
		normalize:  EnsureArray,
	}, refresh)
}

// GetMarketSnapshot returns the singleton market overview.
func (s *MarketDataService) GetMarketSnapshot(ctx context.Context, refresh bool) (Result, error) {
	return s.fetch(ctx, fetchPlan{
		entityType: model.EntityMarketSnapshot,
		durableKey: snapshotKey,
		memoryKey:  memcache.MarketSnapshotKey(),
		prompt:     prompts.MarketSnapshot(),
		maxTokens:  1500,
	}, refresh)
}

// ClearCache drops every memory cache entry.
func (s *MarketDataService) ClearCache() {
	s.memory.ClearAll()
}

// ClearCacheKey drops a single memory cache entry.
func (s *MarketDataService) ClearCacheKey(key string) {
	s.memory.Clear(key)
}

// CacheStats describes the memory cache.
func (s *MarketDataService) CacheStats() model.CacheStats {
	return s.memory.Stats()
}

// fetch runs the pipeline for one plan.
//
// Unless refresh is set, the durable store is consulted first and the memory
// cache second. A durable read error is logged and treated as a miss. On a
// total miss (or refresh) the completion client is called. Concurrent misses
// for the same memory key share one upstream call.
func (s *MarketDataService) fetch(ctx context.Context, plan fetchPlan, refresh bool) (Result, error) {
	if !refresh {
		if res, ok := s.readCached(ctx, plan); ok {
			return res, nil
		}
	}

	ch := s.inflight.DoChan(plan.memoryKey, func() (any, error) {
		// The shared call outlives any single waiting request.
		return s.fetchFresh(context.WithoutCancel(ctx), plan)
	})

	select {
	case <-ctx.Done():
		return Result{}, ctx.Err()
	case r := <-ch:
		if r.Err != nil {
			return Result{}, r.Err
		}
		return Result{Data: r.Val.(json.RawMessage), Source: SourceFresh}, nil
	}
}

func (s *MarketDataService) readCached(ctx context.Context, plan fetchPlan) (Result, bool) {
	rec, err := s.store.Get(ctx, plan.entityType, plan.durableKey)
	switch {
	case err == nil:
		return Result{Data: plan.apply(rec.Payload), Source: SourceDurable}, true
	case errors.Is(err, apperrors.ErrCacheMiss):
	default:
		log.Printf("Durable cache read failed for %s/%s, falling back to memory: %v", plan.entityType, plan.durableKey, err)
	}

	if data, ok := s.memory.Get(plan.memoryKey); ok {
		return Result{Data: plan.apply(data), Source: SourceMemory}, true
	}
	return Result{}, false
}

// fetchFresh calls the completion model and writes the result through.
// The payload is settled before persistence is attempted, and a failed
// durable write never fails the fetch.
func (s *MarketDataService) fetchFresh(ctx context.Context, plan fetchPlan) (json.RawMessage, error) {
	result := s.completer.Complete(ctx, plan.prompt.System, plan.prompt.User, openrouter.Options{
		Temperature: 0,
		MaxTokens:   plan.maxTokens,
	})
	if !result.OK {
		log.Printf("Completion failed for %s/%s: %s", plan.entityType, plan.durableKey, result.Error)
		return nil, fmt.Errorf("%w: %s", apperrors.ErrCompletionExhausted, result.Error)
	}
	if openrouter.IsEmptyDocument(result.Data) {
		log.Printf("Completion for %s/%s returned no data", plan.entityType, plan.durableKey)
		return nil, fmt.Errorf("%w: empty payload", apperrors.ErrCompletionExhausted)
	}

	data := plan.apply(result.Data)
	s.memory.Set(plan.memoryKey, data)

	if err := s.store.Upsert(ctx, plan.entityType, plan.durableKey, data, SourceURLs(data)); err != nil {
		log.Printf("Durable cache write failed for %s/%s: %v", plan.entityType, plan.durableKey, err)
	}

	return data, nil
}

func (p fetchPlan) apply(data json.RawMessage) json.RawMessage {
	if p.normalize == nil {
		return data
	}
	return p.normalize(data)
}
