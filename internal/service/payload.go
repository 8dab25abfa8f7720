package service

import (
	"bytes"
	"encoding/json"
)

// sourceURLFields lists the payload fields holding source URLs, highest priority first.
var sourceURLFields = []string{"source_urls", "sourceUrls"}

// SourceURLs pulls the list of source URLs out of a payload.
// Only object payloads carry sources; non-string entries are skipped.
// The result is never nil.
func SourceURLs(payload json.RawMessage) []string {
	urls := []string{}

	var obj map[string]json.RawMessage
	if err := json.Unmarshal(payload, &obj); err != nil {
		return urls
	}

	for _, field := range sourceURLFields {
		raw, ok := obj[field]
		if !ok {
			continue
		}
		var items []any
		if err := json.Unmarshal(raw, &items); err != nil {
			continue
		}
		for _, item := range items {
			if s, ok := item.(string); ok && s != "" {
				urls = append(urls, s)
			}
		}
		return urls
	}
	return urls
}

// EnsureArray wraps a non-array JSON document in a single-element array.
// A null or empty document becomes an empty array.
func EnsureArray(data json.RawMessage) json.RawMessage {
	trimmed := bytes.TrimSpace(data)
	switch {
	case len(trimmed) == 0, bytes.Equal(trimmed, []byte("null")):
		return json.RawMessage("[]")
	case trimmed[0] == '[':
		return data
	}

	wrapped := make([]byte, 0, len(trimmed)+2)
	wrapped = append(wrapped, '[')
	wrapped = append(wrapped, trimmed...)
	wrapped = append(wrapped, ']')
	return json.RawMessage(wrapped)
}
