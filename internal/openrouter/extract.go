package openrouter

import (
	"bytes"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/ndewijer/InvestBoard-Backend/internal/apperrors"
)

var fencePattern = regexp.MustCompile("(?s)```(?:json|JSON)?\\s*(.*?)```")

// ExtractJSON returns the part of a model response most likely to be JSON.
//
// Priority:
//  1. the body of the first markdown code fence
//  2. the first balanced {...} or [...] span that is valid JSON
//     (brackets inside string literals are ignored)
//  3. the span from the first opener to the last matching closer
//  4. the trimmed input
func ExtractJSON(content string) string {
	if m := fencePattern.FindStringSubmatch(content); m != nil {
		return strings.TrimSpace(m[1])
	}

	start := strings.IndexAny(content, "{[")
	if start < 0 {
		return strings.TrimSpace(content)
	}

	for i := start; i >= 0; {
		if end := balancedEnd(content, i); end > i {
			if candidate := content[i : end+1]; json.Valid([]byte(candidate)) {
				return candidate
			}
		}
		next := strings.IndexAny(content[i+1:], "{[")
		if next < 0 {
			break
		}
		i += next + 1
	}

	closer := "}"
	if content[start] == '[' {
		closer = "]"
	}
	if end := strings.LastIndex(content, closer); end > start {
		return strings.TrimSpace(content[start : end+1])
	}

	return strings.TrimSpace(content)
}

// balancedEnd returns the index of the bracket closing the one at start, or -1.
func balancedEnd(s string, start int) int {
	depth := 0
	inString := false
	escaped := false

	for i := start; i < len(s); i++ {
		c := s[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}

		switch c {
		case '"':
			inString = true
		case '{', '[':
			depth++
		case '}', ']':
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}

// ParseJSON extracts and validates JSON from a model response.
// The result is compacted so equivalent documents compare byte-equal.
func ParseJSON(content string) (json.RawMessage, error) {
	candidate := ExtractJSON(content)
	if candidate == "" {
		return nil, fmt.Errorf("%w: empty response", apperrors.ErrCompletionParse)
	}

	var buf bytes.Buffer
	if err := json.Compact(&buf, []byte(candidate)); err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrCompletionParse, err)
	}
	if IsEmptyDocument(buf.Bytes()) {
		return nil, fmt.Errorf("%w: null document", apperrors.ErrCompletionParse)
	}
	return json.RawMessage(buf.Bytes()), nil
}

// IsEmptyDocument reports whether data carries no payload: blank input or the
// JSON literal null.
func IsEmptyDocument(data []byte) bool {
	trimmed := bytes.TrimSpace(data)
	return len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null"))
}
