package openrouter

import (
	"errors"
	"testing"

	"github.com/ndewijer/InvestBoard-Backend/internal/apperrors"
)

func TestExtractJSON(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{
			name:    "fenced json block",
			content: "Here you go:\n```json\n{\"a\":1}\n```\nThanks",
			want:    `{"a":1}`,
		},
		{
			name:    "fence without language tag",
			content: "```\n[1,2]\n```",
			want:    `[1,2]`,
		},
		{
			name:    "object wrapped in prose",
			content: `The answer is {"symbol":"TCS"} as requested.`,
			want:    `{"symbol":"TCS"}`,
		},
		{
			name:    "array wrapped in prose",
			content: `List: [{"id":"x"}] done`,
			want:    `[{"id":"x"}]`,
		},
		{
			name:    "braces inside strings are ignored",
			content: `note {"text":"a } b"} trailing }`,
			want:    `{"text":"a } b"}`,
		},
		{
			name:    "stray bracket before the document",
			content: `see [1] below: {"ok":true}`,
			want:    `[1]`,
		},
		{
			name:    "plain json",
			content: `  {"a":[1,2,{"b":null}]}  `,
			want:    `{"a":[1,2,{"b":null}]}`,
		},
		{
			name:    "no json at all",
			content: "  sorry, no data  ",
			want:    "sorry, no data",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExtractJSON(tt.content); got != tt.want {
				t.Errorf("ExtractJSON() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestParseJSON(t *testing.T) {
	t.Run("fenced, prose-wrapped and bare inputs parse to the same document", func(t *testing.T) {
		doc := `{"symbol": "TCS", "price": 4000.5, "tags": ["it", "large cap"]}`
		inputs := []string{
			doc,
			"```json\n" + doc + "\n```",
			"Sure! Here is the data: " + doc + " Let me know if you need more.",
		}

		want, err := ParseJSON(doc)
		if err != nil {
			t.Fatalf("ParseJSON(bare) error: %v", err)
		}

		for _, in := range inputs {
			got, err := ParseJSON(in)
			if err != nil {
				t.Fatalf("ParseJSON(%q) error: %v", in, err)
			}
			if string(got) != string(want) {
				t.Errorf("ParseJSON(%q) = %s, want %s", in, got, want)
			}
		}
	})

	t.Run("returns compacted output", func(t *testing.T) {
		got, err := ParseJSON("{\n  \"a\": 1\n}")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if string(got) != `{"a":1}` {
			t.Errorf("got %s", got)
		}
	})

	t.Run("prose only is a parse error", func(t *testing.T) {
		_, err := ParseJSON("I could not find that company.")
		if !errors.Is(err, apperrors.ErrCompletionParse) {
			t.Errorf("expected ErrCompletionParse, got %v", err)
		}
	})

	t.Run("empty content is a parse error", func(t *testing.T) {
		_, err := ParseJSON("   ")
		if !errors.Is(err, apperrors.ErrCompletionParse) {
			t.Errorf("expected ErrCompletionParse, got %v", err)
		}
	})

	t.Run("null document is a parse error", func(t *testing.T) {
		for _, in := range []string{"null", " null ", "```json\nnull\n```"} {
			_, err := ParseJSON(in)
			if !errors.Is(err, apperrors.ErrCompletionParse) {
				t.Errorf("ParseJSON(%q): expected ErrCompletionParse, got %v", in, err)
			}
		}
	})

	t.Run("null inside a document is kept", func(t *testing.T) {
		got, err := ParseJSON(`{"listingDate": null}`)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if string(got) != `{"listingDate":null}` {
			t.Errorf("got %s", got)
		}
	})

	t.Run("truncated document is a parse error", func(t *testing.T) {
		_, err := ParseJSON(`{"symbol":"TCS","price":`)
		if !errors.Is(err, apperrors.ErrCompletionParse) {
			t.Errorf("expected ErrCompletionParse, got %v", err)
		}
	})
}
