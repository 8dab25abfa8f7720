package openrouter

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/ndewijer/InvestBoard-Backend/internal/apperrors"
	"github.com/ndewijer/InvestBoard-Backend/internal/config"
)

// fakeProvider is a chat completions endpoint that answers per model id.
type fakeProvider struct {
	mu       sync.Mutex
	requests []chatRequest
	headers  []http.Header
	reply    func(model string) (status int, content string)
	delay    time.Duration
}

func (f *fakeProvider) handler(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	//nolint:errcheck // Test server - malformed body shows up as empty model
	json.NewDecoder(r.Body).Decode(&req)

	f.mu.Lock()
	f.requests = append(f.requests, req)
	f.headers = append(f.headers, r.Header.Clone())
	f.mu.Unlock()

	if f.delay > 0 {
		select {
		case <-time.After(f.delay):
		case <-r.Context().Done():
			return
		}
	}

	status, content := f.reply(req.Model)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if status != http.StatusOK {
		fmt.Fprint(w, `{"error":{"message":"upstream failure"}}`)
		return
	}
	//nolint:errcheck // Test server
	json.NewEncoder(w).Encode(map[string]any{
		"choices": []map[string]any{
			{"message": map[string]string{"role": "assistant", "content": content}},
		},
	})
}

func (f *fakeProvider) calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.requests)
}

func (f *fakeProvider) request(i int) (chatRequest, http.Header) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.requests[i], f.headers[i]
}

func (f *fakeProvider) models() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, len(f.requests))
	for i, r := range f.requests {
		out[i] = r.Model
	}
	return out
}

func newTestClient(t *testing.T, f *fakeProvider, mutate func(*config.OpenRouterConfig)) *Client {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(f.handler))
	t.Cleanup(srv.Close)

	cfg := config.OpenRouterConfig{
		BaseURL:       srv.URL + "/api/v1",
		APIKey:        "test-key",
		PrimaryModel:  "primary/model",
		FallbackModel: "fallback/model",
		Timeout:       2 * time.Second,
		AppURL:        "http://localhost:3000",
		AppTitle:      "InvestBoard",
	}
	if mutate != nil {
		mutate(&cfg)
	}
	return NewClient(cfg, WithHTTPClient(srv.Client()))
}

func TestClient_Complete(t *testing.T) {
	t.Run("primary success makes exactly one call", func(t *testing.T) {
		f := &fakeProvider{reply: func(string) (int, string) {
			return http.StatusOK, "```json\n{\"symbol\":\"TCS\"}\n```"
		}}
		c := newTestClient(t, f, nil)

		res := c.Complete(context.Background(), "sys", "user", Options{})

		if !res.OK {
			t.Fatalf("expected ok, got error %q", res.Error)
		}
		if string(res.Data) != `{"symbol":"TCS"}` {
			t.Errorf("unexpected data: %s", res.Data)
		}
		if res.ModelUsed != "primary/model" {
			t.Errorf("expected primary model, got %s", res.ModelUsed)
		}
		if f.calls() != 1 {
			t.Errorf("expected 1 call, got %d", f.calls())
		}
		if len(res.RawResponse) == 0 {
			t.Error("expected raw provider response to be kept")
		}
	})

	t.Run("sends request body and headers", func(t *testing.T) {
		f := &fakeProvider{reply: func(string) (int, string) { return http.StatusOK, `{}` }}
		c := newTestClient(t, f, nil)

		c.Complete(context.Background(), "system text", "user text", Options{Temperature: 0.2, MaxTokens: 3000})

		req, h := f.request(0)
		if req.Temperature != 0.2 || req.MaxTokens != 3000 {
			t.Errorf("unexpected sampling params: %+v", req)
		}
		if len(req.Messages) != 2 || req.Messages[0].Role != "system" || req.Messages[1].Content != "user text" {
			t.Errorf("unexpected messages: %+v", req.Messages)
		}
		if h.Get("Authorization") != "Bearer test-key" {
			t.Errorf("unexpected Authorization header %q", h.Get("Authorization"))
		}
		if h.Get("HTTP-Referer") != "http://localhost:3000" || h.Get("X-Title") != "InvestBoard" {
			t.Errorf("unexpected attribution headers: %v", h)
		}
	})

	t.Run("defaults max tokens", func(t *testing.T) {
		f := &fakeProvider{reply: func(string) (int, string) { return http.StatusOK, `{}` }}
		c := newTestClient(t, f, nil)

		c.Complete(context.Background(), "s", "u", Options{})

		if req, _ := f.request(0); req.MaxTokens != defaultMaxTokens {
			t.Errorf("expected max_tokens %d, got %d", defaultMaxTokens, req.MaxTokens)
		}
	})

	t.Run("unparseable primary answer falls back", func(t *testing.T) {
		f := &fakeProvider{reply: func(model string) (int, string) {
			if model == "primary/model" {
				return http.StatusOK, "I am not sure about that."
			}
			return http.StatusOK, `{"from":"fallback"}`
		}}
		c := newTestClient(t, f, nil)

		res := c.Complete(context.Background(), "s", "u", Options{})

		if !res.OK {
			t.Fatalf("expected fallback success, got %q", res.Error)
		}
		if res.ModelUsed != "fallback/model" {
			t.Errorf("expected fallback model, got %s", res.ModelUsed)
		}
		if got := f.models(); len(got) != 2 || got[0] != "primary/model" || got[1] != "fallback/model" {
			t.Errorf("unexpected call order: %v", got)
		}
	})

	t.Run("null primary answer falls back", func(t *testing.T) {
		f := &fakeProvider{reply: func(model string) (int, string) {
			if model == "primary/model" {
				return http.StatusOK, "null"
			}
			return http.StatusOK, `{"from":"fallback"}`
		}}
		c := newTestClient(t, f, nil)

		res := c.Complete(context.Background(), "s", "u", Options{})

		if !res.OK || string(res.Data) != `{"from":"fallback"}` {
			t.Fatalf("expected fallback data, got %+v", res)
		}
		if f.calls() != 2 {
			t.Errorf("expected 2 calls, got %d", f.calls())
		}
	})

	t.Run("http error on primary falls back", func(t *testing.T) {
		f := &fakeProvider{reply: func(model string) (int, string) {
			if model == "primary/model" {
				return http.StatusBadGateway, ""
			}
			return http.StatusOK, `[1]`
		}}
		c := newTestClient(t, f, nil)

		res := c.Complete(context.Background(), "s", "u", Options{})

		if !res.OK || string(res.Data) != `[1]` {
			t.Fatalf("expected fallback data, got %+v", res)
		}
	})

	t.Run("disabled fallback stops after primary", func(t *testing.T) {
		f := &fakeProvider{reply: func(string) (int, string) { return http.StatusOK, "no json here" }}
		c := newTestClient(t, f, nil)

		res := c.Complete(context.Background(), "s", "u", Options{DisableFallback: true})

		if res.OK {
			t.Fatal("expected failure")
		}
		if f.calls() != 1 {
			t.Errorf("expected 1 call, got %d", f.calls())
		}
		if !strings.Contains(res.Error, "primary/model") {
			t.Errorf("expected error to name the primary model, got %q", res.Error)
		}
	})

	t.Run("both attempts failing reports the fallback error", func(t *testing.T) {
		f := &fakeProvider{reply: func(string) (int, string) { return http.StatusInternalServerError, "" }}
		c := newTestClient(t, f, nil)

		res := c.Complete(context.Background(), "s", "u", Options{})

		if res.OK {
			t.Fatal("expected failure")
		}
		if f.calls() != 2 {
			t.Errorf("expected 2 calls, got %d", f.calls())
		}
		if !strings.Contains(res.Error, "fallback/model") || !strings.Contains(res.Error, "500") {
			t.Errorf("unexpected error %q", res.Error)
		}
	})

	t.Run("per-attempt timeout", func(t *testing.T) {
		f := &fakeProvider{
			reply: func(string) (int, string) { return http.StatusOK, `{}` },
			delay: 500 * time.Millisecond,
		}
		c := newTestClient(t, f, func(cfg *config.OpenRouterConfig) { cfg.Timeout = 50 * time.Millisecond })

		res := c.Complete(context.Background(), "s", "u", Options{DisableFallback: true})

		if res.OK {
			t.Fatal("expected timeout failure")
		}
		if !strings.Contains(res.Error, apperrors.ErrCompletionTimeout.Error()) {
			t.Errorf("expected timeout error, got %q", res.Error)
		}
	})

	t.Run("cancelled caller skips fallback", func(t *testing.T) {
		f := &fakeProvider{reply: func(string) (int, string) { return http.StatusOK, `{}` }}
		c := newTestClient(t, f, nil)

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		res := c.Complete(ctx, "s", "u", Options{})

		if res.OK {
			t.Fatal("expected failure with cancelled context")
		}
		if f.calls() != 0 {
			t.Errorf("expected no calls to reach the server, got %d", f.calls())
		}
	})

	t.Run("missing api key fails without calling out", func(t *testing.T) {
		f := &fakeProvider{reply: func(string) (int, string) { return http.StatusOK, `{}` }}
		c := newTestClient(t, f, func(cfg *config.OpenRouterConfig) { cfg.APIKey = "" })

		res := c.Complete(context.Background(), "s", "u", Options{})

		if res.OK || res.Error != apperrors.ErrNoAPIKey.Error() {
			t.Errorf("expected no api key error, got %+v", res)
		}
		if f.calls() != 0 {
			t.Errorf("expected 0 calls, got %d", f.calls())
		}
	})

	t.Run("web search appends the online suffix once", func(t *testing.T) {
		f := &fakeProvider{reply: func(string) (int, string) { return http.StatusOK, `{}` }}
		c := newTestClient(t, f, func(cfg *config.OpenRouterConfig) {
			cfg.WebSearch = true
			cfg.FallbackModel = "fallback/model:online"
		})

		res := c.Complete(context.Background(), "s", "u", Options{})

		if res.ModelUsed != "primary/model:online" {
			t.Errorf("expected online suffix, got %s", res.ModelUsed)
		}
		if got := c.modelID("fallback/model:online"); got != "fallback/model:online" {
			t.Errorf("suffix applied twice: %s", got)
		}
	})

	t.Run("per-call model override", func(t *testing.T) {
		f := &fakeProvider{reply: func(string) (int, string) { return http.StatusOK, `{}` }}
		c := newTestClient(t, f, nil)

		res := c.Complete(context.Background(), "s", "u", Options{PrimaryModel: "other/model"})

		if res.ModelUsed != "other/model" {
			t.Errorf("expected override model, got %s", res.ModelUsed)
		}
	})
}

func TestTruncate(t *testing.T) {
	if got := truncate("abc", 5); got != "abc" {
		t.Errorf("got %q", got)
	}
	if got := truncate("abcdef", 3); got != "abc..." {
		t.Errorf("got %q", got)
	}
}
