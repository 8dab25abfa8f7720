package config

import (
	"testing"
	"time"

	"github.com/fernet/fernet-go"
)

func TestLoad(t *testing.T) {
	t.Run("applies defaults", func(t *testing.T) {
		t.Setenv("OPENROUTER_API_KEY", "")
		t.Setenv("OPENROUTER_API_KEY_ENCRYPTED", "")
		t.Setenv("CACHE_BACKEND", "")
		t.Setenv("MEMORY_CACHE_TTL", "")

		cfg, err := Load()
		if err != nil {
			t.Fatalf("Load() returned unexpected error: %v", err)
		}

		if cfg.Server.Addr != "localhost:5001" {
			t.Errorf("Expected addr localhost:5001, got %s", cfg.Server.Addr)
		}
		if cfg.Cache.Backend != CacheBackendSQLite {
			t.Errorf("Expected sqlite backend, got %s", cfg.Cache.Backend)
		}
		if cfg.Cache.MemoryTTL != 0 {
			t.Errorf("Expected no memory TTL, got %v", cfg.Cache.MemoryTTL)
		}
		if cfg.OpenRouter.PrimaryModel != "openai/gpt-5-nano" {
			t.Errorf("Unexpected primary model %s", cfg.OpenRouter.PrimaryModel)
		}
		if cfg.OpenRouter.Timeout != 60*time.Second {
			t.Errorf("Expected 60s timeout, got %v", cfg.OpenRouter.Timeout)
		}
		if !cfg.OpenRouter.WebSearch {
			t.Error("Expected web search enabled by default")
		}
	})

	t.Run("reads overrides", func(t *testing.T) {
		t.Setenv("SERVER_HOST", "0.0.0.0")
		t.Setenv("SERVER_PORT", "8080")
		t.Setenv("MEMORY_CACHE_TTL", "24h")
		t.Setenv("OPENROUTER_TIMEOUT", "15")
		t.Setenv("OPENROUTER_BASE_URL", "http://llm.local/v1/")
		t.Setenv("OPENROUTER_WEB_SEARCH", "false")
		t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example, https://b.example")

		cfg, err := Load()
		if err != nil {
			t.Fatalf("Load() returned unexpected error: %v", err)
		}

		if cfg.Server.Addr != "0.0.0.0:8080" {
			t.Errorf("Expected addr 0.0.0.0:8080, got %s", cfg.Server.Addr)
		}
		if cfg.Cache.MemoryTTL != 24*time.Hour {
			t.Errorf("Expected 24h TTL, got %v", cfg.Cache.MemoryTTL)
		}
		if cfg.OpenRouter.Timeout != 15*time.Second {
			t.Errorf("Expected 15s timeout, got %v", cfg.OpenRouter.Timeout)
		}
		if cfg.OpenRouter.BaseURL != "http://llm.local/v1" {
			t.Errorf("Expected trailing slash trimmed, got %s", cfg.OpenRouter.BaseURL)
		}
		if cfg.OpenRouter.WebSearch {
			t.Error("Expected web search disabled")
		}
		if len(cfg.CORS.AllowedOrigins) != 2 || cfg.CORS.AllowedOrigins[1] != "https://b.example" {
			t.Errorf("Unexpected origins %v", cfg.CORS.AllowedOrigins)
		}
	})

	t.Run("rejects unknown cache backend", func(t *testing.T) {
		t.Setenv("CACHE_BACKEND", "memcached")

		if _, err := Load(); err == nil {
			t.Error("Expected error for unsupported backend")
		}
	})

	t.Run("rejects malformed duration", func(t *testing.T) {
		t.Setenv("MEMORY_CACHE_TTL", "forever")

		if _, err := Load(); err == nil {
			t.Error("Expected error for malformed duration")
		}
	})
}

func TestResolveAPIKey(t *testing.T) {
	t.Run("prefers plain key", func(t *testing.T) {
		t.Setenv("OPENROUTER_API_KEY", "sk-plain")
		t.Setenv("OPENROUTER_API_KEY_ENCRYPTED", "ignored")

		key, err := resolveAPIKey()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if key != "sk-plain" {
			t.Errorf("Expected sk-plain, got %s", key)
		}
	})

	t.Run("decrypts fernet token", func(t *testing.T) {
		var k fernet.Key
		if err := k.Generate(); err != nil {
			t.Fatalf("failed to generate key: %v", err)
		}
		tok, err := fernet.EncryptAndSign([]byte("sk-secret"), &k)
		if err != nil {
			t.Fatalf("failed to encrypt: %v", err)
		}

		t.Setenv("OPENROUTER_API_KEY", "")
		t.Setenv("OPENROUTER_API_KEY_ENCRYPTED", string(tok))
		t.Setenv("SECRET_KEY", k.Encode())

		key, err := resolveAPIKey()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if key != "sk-secret" {
			t.Errorf("Expected sk-secret, got %s", key)
		}
	})

	t.Run("fails without secret key", func(t *testing.T) {
		t.Setenv("OPENROUTER_API_KEY", "")
		t.Setenv("OPENROUTER_API_KEY_ENCRYPTED", "token")
		t.Setenv("SECRET_KEY", "")

		if _, err := resolveAPIKey(); err == nil {
			t.Error("Expected error when SECRET_KEY is missing")
		}
	})

	t.Run("fails with wrong secret key", func(t *testing.T) {
		var k1, k2 fernet.Key
		_ = k1.Generate()
		_ = k2.Generate()
		tok, _ := fernet.EncryptAndSign([]byte("sk-secret"), &k1)

		if _, err := DecryptSecret(string(tok), k2.Encode()); err == nil {
			t.Error("Expected decryption failure with mismatched key")
		}
	})
}
