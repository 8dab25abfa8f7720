package model

import "time"

// Health is the result of a durable store connectivity check.
type Health struct {
	Status    string
	Database  string
	Error     string
	CheckedAt time.Time
}

// CacheStats describes the contents of the process-local memory cache.
type CacheStats struct {
	Size int      `json:"size"`
	Keys []string `json:"keys"`
}
