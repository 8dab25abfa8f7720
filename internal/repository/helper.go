package repository

import (
	"encoding/json"
	"fmt"
	"time"
)

// timeLayout is how timestamps are stored in TEXT/DATETIME columns.
const timeLayout = time.RFC3339Nano

// ParseTime parses a stored timestamp in RFC3339 (with or without fractional
// seconds) or "2006-01-02 15:04:05" format.
func ParseTime(str string) (time.Time, error) {
	returnTime, err := time.Parse(timeLayout, str)
	if err != nil {
		returnTime, err = time.Parse("2006-01-02 15:04:05", str)
		if err != nil {
			return time.Time{}, fmt.Errorf("failed to parse timestamp: %w", err)
		}
	}
	return returnTime.UTC(), nil
}

func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

func encodeSourceURLs(urls []string) (string, error) {
	if urls == nil {
		urls = []string{}
	}
	b, err := json.Marshal(urls)
	if err != nil {
		return "", fmt.Errorf("failed to encode source urls: %w", err)
	}
	return string(b), nil
}

func decodeSourceURLs(raw string) []string {
	urls := []string{}
	if raw == "" {
		return urls
	}
	if err := json.Unmarshal([]byte(raw), &urls); err != nil {
		return []string{}
	}
	return urls
}
