package apperrors

import "errors"

// Cache errors describe the state of the durable and memory cache tiers.
var (
	// ErrCacheMiss indicates that no record exists for the requested key.
	ErrCacheMiss = errors.New("cache miss")

	// ErrCacheUnavailable indicates that the durable store could not be reached.
	// Callers treat it as a miss and fall through to the next tier.
	ErrCacheUnavailable = errors.New("durable cache unavailable")

	// ErrPersistenceWrite indicates that a durable upsert failed after a successful fetch.
	ErrPersistenceWrite = errors.New("failed to persist cached record")
)

// Completion errors describe failures talking to the completion model.
var (
	// ErrNoAPIKey indicates that no completion API key has been configured.
	ErrNoAPIKey = errors.New("completion API key not configured")

	// ErrCompletionNetwork indicates a transport or non-2xx HTTP failure.
	ErrCompletionNetwork = errors.New("completion request failed")

	// ErrCompletionTimeout indicates that the completion call exceeded its time budget.
	ErrCompletionTimeout = errors.New("completion request timed out")

	// ErrCompletionParse indicates that the model output did not contain valid JSON.
	ErrCompletionParse = errors.New("completion response is not valid JSON")

	// ErrCompletionExhausted indicates that the primary and fallback models both failed.
	ErrCompletionExhausted = errors.New("completion failed on all models")
)

// Validation errors for request parameters.
var (
	ErrInvalidIdentifier  = errors.New("invalid identifier")
	ErrInvalidIPOCategory = errors.New("invalid IPO category")
	ErrInvalidEntityType  = errors.New("invalid entity type")
)
