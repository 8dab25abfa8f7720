// Package openrouter is a client for OpenRouter-style chat completion
// endpoints that must answer with JSON. A failed or unparseable answer from
// the primary model is retried once against a fallback model.
package openrouter

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/ndewijer/InvestBoard-Backend/internal/apperrors"
	"github.com/ndewijer/InvestBoard-Backend/internal/config"
	"github.com/ndewijer/InvestBoard-Backend/internal/model"
)

const (
	onlineSuffix     = ":online"
	defaultMaxTokens = 2000
	logSnippetLength = 200
)

// Options configures a single Complete call.
type Options struct {
	Temperature float64
	MaxTokens   int

	// PrimaryModel and FallbackModel override the configured model ids.
	PrimaryModel  string
	FallbackModel string

	// DisableFallback stops after the primary attempt, whatever its outcome.
	DisableFallback bool
}

// Client calls the chat completions endpoint.
type Client struct {
	apiKey        string
	baseURL       string
	primaryModel  string
	fallbackModel string
	webSearch     bool
	timeout       time.Duration
	referer       string
	title         string
	httpClient    *http.Client
}

// Option configures the client.
type Option func(*Client)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// NewClient creates a completion client from configuration.
func NewClient(cfg config.OpenRouterConfig, opts ...Option) *Client {
	c := &Client{
		apiKey:        cfg.APIKey,
		baseURL:       strings.TrimRight(cfg.BaseURL, "/"),
		primaryModel:  cfg.PrimaryModel,
		fallbackModel: cfg.FallbackModel,
		webSearch:     cfg.WebSearch,
		timeout:       cfg.Timeout,
		referer:       cfg.AppURL,
		title:         cfg.AppTitle,
		httpClient:    &http.Client{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens"`
	Messages    []chatMessage `json:"messages"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// Complete sends the prompts to the primary model and returns the parsed JSON
// answer. On a transport error, timeout or parse failure it retries once on
// the fallback model unless opts.DisableFallback is set. Failures are
// reported through the result, never as a panic or separate error.
func (c *Client) Complete(ctx context.Context, systemPrompt, userPrompt string, opts Options) model.CompletionResult {
	if c.apiKey == "" {
		return model.CompletionResult{Error: apperrors.ErrNoAPIKey.Error()}
	}

	primary := c.modelID(firstNonEmpty(opts.PrimaryModel, c.primaryModel))
	fallback := c.modelID(firstNonEmpty(opts.FallbackModel, c.fallbackModel))

	data, raw, err := c.attempt(ctx, primary, systemPrompt, userPrompt, opts)
	if err == nil {
		return model.CompletionResult{OK: true, Data: data, RawResponse: raw, ModelUsed: primary}
	}
	log.Printf("Primary model %s failed: %v", primary, err)

	if opts.DisableFallback {
		return model.CompletionResult{
			Error:       fmt.Sprintf("primary model %s: %v", primary, err),
			RawResponse: raw,
			ModelUsed:   primary,
		}
	}

	// The caller is gone; a second attempt would be cancelled as well.
	if ctx.Err() != nil {
		return model.CompletionResult{
			Error:     fmt.Sprintf("primary model %s: %v", primary, err),
			ModelUsed: primary,
		}
	}

	data, raw, err = c.attempt(ctx, fallback, systemPrompt, userPrompt, opts)
	if err == nil {
		return model.CompletionResult{OK: true, Data: data, RawResponse: raw, ModelUsed: fallback}
	}
	log.Printf("Fallback model %s failed: %v", fallback, err)

	return model.CompletionResult{
		Error:       fmt.Sprintf("fallback model %s: %v", fallback, err),
		RawResponse: raw,
		ModelUsed:   fallback,
	}
}

// attempt performs one HTTP call and parses the answer. raw is the provider
// response body when one was received.
func (c *Client) attempt(ctx context.Context, modelID, systemPrompt, userPrompt string, opts Options) (json.RawMessage, json.RawMessage, error) {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	content, raw, err := c.call(ctx, modelID, systemPrompt, userPrompt, opts)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, raw, fmt.Errorf("%w after %s: %v", apperrors.ErrCompletionTimeout, c.timeout, err)
		}
		return nil, raw, err
	}

	data, err := ParseJSON(content)
	if err != nil {
		log.Printf("Unparseable content from %s: %s", modelID, truncate(content, logSnippetLength))
		return nil, raw, err
	}
	return data, raw, nil
}

func (c *Client) call(ctx context.Context, modelID, systemPrompt, userPrompt string, opts Options) (string, json.RawMessage, error) {
	maxTokens := opts.MaxTokens
	if maxTokens <= 0 {
		maxTokens = defaultMaxTokens
	}

	body, err := json.Marshal(chatRequest{
		Model:       modelID,
		Temperature: opts.Temperature,
		MaxTokens:   maxTokens,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: userPrompt},
		},
	})
	if err != nil {
		return "", nil, fmt.Errorf("failed to encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return "", nil, fmt.Errorf("%w: %v", apperrors.ErrCompletionNetwork, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("HTTP-Referer", c.referer)
	req.Header.Set("X-Title", c.title)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", apperrors.ErrCompletionNetwork, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", nil, fmt.Errorf("%w: reading body: %w", apperrors.ErrCompletionNetwork, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", nil, fmt.Errorf("%w: HTTP %d: %s", apperrors.ErrCompletionNetwork, resp.StatusCode, truncate(string(data), logSnippetLength))
	}

	var parsed chatResponse
	if err := json.Unmarshal(data, &parsed); err != nil {
		return "", nil, fmt.Errorf("%w: decoding provider response: %v", apperrors.ErrCompletionNetwork, err)
	}

	var content string
	if len(parsed.Choices) > 0 {
		content = parsed.Choices[0].Message.Content
	}
	return content, json.RawMessage(data), nil
}

// modelID appends the web search suffix when enabled.
func (c *Client) modelID(base string) string {
	if c.webSearch && !strings.Contains(base, onlineSuffix) {
		return base + onlineSuffix
	}
	return base
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
