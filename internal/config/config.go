package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/fernet/fernet-go"
	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	Server     ServerConfig
	Database   DatabaseConfig
	Cache      CacheConfig
	OpenRouter OpenRouterConfig
	CORS       CORSConfig
	Refresh    RefreshConfig
}

// ServerConfig holds server-specific configuration
type ServerConfig struct {
	Port string
	Host string
	Addr string // Combined host:port for convenience
}

// DatabaseConfig holds database-specific configuration
type DatabaseConfig struct {
	Path string
}

// CacheConfig selects the durable cache backend and the memory cache policy.
type CacheConfig struct {
	Backend   string // "sqlite" or "redis"
	RedisURL  string
	MemoryTTL time.Duration // 0 disables expiry
}

// OpenRouterConfig holds settings for the chat completion provider.
type OpenRouterConfig struct {
	BaseURL       string
	APIKey        string
	PrimaryModel  string
	FallbackModel string
	WebSearch     bool
	Timeout       time.Duration
	AppURL        string
	AppTitle      string
}

// CORSConfig holds CORS-specific configuration
type CORSConfig struct {
	AllowedOrigins []string
}

// RefreshConfig controls the background refresh scheduler.
// An empty Schedule disables it.
type RefreshConfig struct {
	Schedule string
}

// Cache backends
const (
	CacheBackendSQLite = "sqlite"
	CacheBackendRedis  = "redis"
)

// Load reads configuration from environment variables and .env file
func Load() (*Config, error) {
	// Try to load .env file (ignore error if it doesn't exist)
	_ = godotenv.Load()

	memoryTTL, err := getEnvDuration("MEMORY_CACHE_TTL", 0)
	if err != nil {
		return nil, err
	}
	timeout, err := getEnvDuration("OPENROUTER_TIMEOUT", 60*time.Second)
	if err != nil {
		return nil, err
	}

	apiKey, err := resolveAPIKey()
	if err != nil {
		return nil, err
	}

	config := &Config{
		Server: ServerConfig{
			Port: getEnv("SERVER_PORT", "5001"),
			Host: getEnv("SERVER_HOST", "localhost"),
		},
		Database: DatabaseConfig{
			Path: getEnv("DB_PATH", "./data/investboard.db"),
		},
		Cache: CacheConfig{
			Backend:   strings.ToLower(getEnv("CACHE_BACKEND", CacheBackendSQLite)),
			RedisURL:  getEnv("REDIS_URL", "redis://localhost:6379/0"),
			MemoryTTL: memoryTTL,
		},
		OpenRouter: OpenRouterConfig{
			BaseURL:       strings.TrimRight(getEnv("OPENROUTER_BASE_URL", "https://openrouter.ai/api/v1"), "/"),
			APIKey:        apiKey,
			PrimaryModel:  getEnv("OPENROUTER_MODEL_NANO", "openai/gpt-5-nano"),
			FallbackModel: getEnv("OPENROUTER_MODEL_MINI", "openai/gpt-5-mini"),
			WebSearch:     getEnvBool("OPENROUTER_WEB_SEARCH", true),
			Timeout:       timeout,
			AppURL:        getEnv("APP_URL", "http://localhost:3000"),
			AppTitle:      getEnv("APP_TITLE", "InvestBoard Dashboard"),
		},
		CORS: CORSConfig{
			AllowedOrigins: getEnvList("CORS_ALLOWED_ORIGINS", []string{
				"http://localhost:3000",
				"http://localhost",
			}),
		},
		Refresh: RefreshConfig{
			Schedule: getEnv("REFRESH_SCHEDULE", ""),
		},
	}

	if config.Cache.Backend != CacheBackendSQLite && config.Cache.Backend != CacheBackendRedis {
		return nil, fmt.Errorf("unsupported CACHE_BACKEND %q", config.Cache.Backend)
	}

	// Combine host and port
	config.Server.Addr = fmt.Sprintf("%s:%s", config.Server.Host, config.Server.Port)

	return config, nil
}

// resolveAPIKey returns OPENROUTER_API_KEY, or decrypts
// OPENROUTER_API_KEY_ENCRYPTED with the fernet key in SECRET_KEY.
func resolveAPIKey() (string, error) {
	if key := os.Getenv("OPENROUTER_API_KEY"); key != "" {
		return key, nil
	}

	token := os.Getenv("OPENROUTER_API_KEY_ENCRYPTED")
	if token == "" {
		return "", nil
	}

	secret := os.Getenv("SECRET_KEY")
	if secret == "" {
		return "", fmt.Errorf("OPENROUTER_API_KEY_ENCRYPTED is set but SECRET_KEY is empty")
	}

	return DecryptSecret(token, secret)
}

// DecryptSecret decrypts a fernet token with the given base64 fernet key.
// Tokens never expire.
func DecryptSecret(token, secret string) (string, error) {
	keys, err := fernet.DecodeKeys(secret)
	if err != nil {
		return "", fmt.Errorf("failed to decode SECRET_KEY: %w", err)
	}

	msg := fernet.VerifyAndDecrypt([]byte(token), -1, keys)
	if msg == nil {
		return "", fmt.Errorf("failed to decrypt OPENROUTER_API_KEY_ENCRYPTED")
	}
	return string(msg), nil
}

// getEnv gets an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		return defaultValue
	}
	return b
}

// getEnvDuration parses a Go duration string ("90s", "24h").
// A bare integer is read as seconds.
func getEnvDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	if secs, err := strconv.Atoi(value); err == nil {
		return time.Duration(secs) * time.Second, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid duration for %s: %w", key, err)
	}
	return d, nil
}

func getEnvList(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	var out []string
	for _, part := range strings.Split(value, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
