package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all application configuration.
type Config struct {
	Server    ServerConfig
	Fetcher   FetcherConfig
	Login     LoginConfig
	Auth      AuthConfig
	RateLimit RateLimitConfig
	Log       LogConfig
}

// ServerConfig controls the HTTP server.
type ServerConfig struct {
	// Host defaults to loopback: the daemon reads the local user's
	// browser profiles and should not be exposed beyond the machine.
	Host string // default: "127.0.0.1"
	Port int    // default: 8089
	Mode string // "debug", "release", "test"; default: "release"
}

// FetcherConfig controls outbound HTTP behavior.
type FetcherConfig struct {
	// RequestTimeout is the deadline for a single outbound request.
	RequestTimeout time.Duration // default: 60s

	// MaxBodyBytes caps how much of a response body is buffered for a
	// fetch (downloads stream and are not capped).
	MaxBodyBytes int64 // default: 10 MiB

	// DefaultProxy is the proxy URL applied to all outbound requests.
	DefaultProxy string
}

// LoginConfig controls the wait-for-interactive-login loop.
type LoginConfig struct {
	// PollInterval is the delay between authentication probes.
	PollInterval time.Duration // default: 5s

	// WaitCeiling is the maximum total time spent waiting for login.
	WaitCeiling time.Duration // default: 120s
}

// AuthConfig controls API key authentication.
type AuthConfig struct {
	// Enabled toggles API key authentication. Off by default since the
	// server binds loopback.
	Enabled bool // default: false

	// APIKeys is the list of valid API keys.
	APIKeys []string
}

// RateLimitConfig controls per-key rate limiting.
type RateLimitConfig struct {
	// RequestsPerSecond is the sustained rate per API key.
	RequestsPerSecond float64 // default: 5

	// Burst is the maximum burst size per API key.
	Burst int // default: 10
}

// LogConfig controls structured logging.
type LogConfig struct {
	Level  string // default: "info"
	Format string // "json" or "text"; default: "json"
}

// Load reads configuration from environment variables with sane defaults.
func Load() *Config {
	return &Config{
		Server: ServerConfig{
			Host: envOr("COOKIEFETCH_HOST", "127.0.0.1"),
			Port: envIntOr("COOKIEFETCH_PORT", 8089),
			Mode: envOr("COOKIEFETCH_MODE", "release"),
		},
		Fetcher: FetcherConfig{
			RequestTimeout: envDurationOr("COOKIEFETCH_REQUEST_TIMEOUT", 60*time.Second),
			MaxBodyBytes:   envInt64Or("COOKIEFETCH_MAX_BODY_BYTES", 10*1024*1024),
			DefaultProxy:   os.Getenv("COOKIEFETCH_PROXY"),
		},
		Login: LoginConfig{
			PollInterval: envDurationOr("COOKIEFETCH_LOGIN_POLL_INTERVAL", 5*time.Second),
			WaitCeiling:  envDurationOr("COOKIEFETCH_LOGIN_WAIT_CEILING", 120*time.Second),
		},
		Auth: AuthConfig{
			Enabled: envBoolOr("COOKIEFETCH_AUTH_ENABLED", false),
			APIKeys: envSliceOr("COOKIEFETCH_API_KEYS", nil),
		},
		RateLimit: RateLimitConfig{
			RequestsPerSecond: envFloatOr("COOKIEFETCH_RATE_RPS", 5.0),
			Burst:             envIntOr("COOKIEFETCH_RATE_BURST", 10),
		},
		Log: LogConfig{
			Level:  envOr("COOKIEFETCH_LOG_LEVEL", "info"),
			Format: envOr("COOKIEFETCH_LOG_FORMAT", "json"),
		},
	}
}

// --- helper functions ---

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envIntOr(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}

func envInt64Or(key string, fallback int64) int64 {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.ParseInt(v, 10, 64); err == nil {
			return i
		}
	}
	return fallback
}

func envBoolOr(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

func envFloatOr(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}

func envDurationOr(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}

func envSliceOr(key string, fallback []string) []string {
	if v := os.Getenv(key); v != "" {
		parts := strings.Split(v, ",")
		result := make([]string, 0, len(parts))
		for _, p := range parts {
			if trimmed := strings.TrimSpace(p); trimmed != "" {
				result = append(result, trimmed)
			}
		}
		return result
	}
	return fallback
}
