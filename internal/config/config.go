package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds runtime configuration parsed from environment variables.
type Config struct {
	HTTPAddr        string
	UpstreamBaseURL string
	UserEmail       string
	ShutdownTimeout time.Duration
	BadgeInterval   time.Duration
	AllowedOrigins  []string
}

// FromEnv builds Config with defaults, overridden by environment variables.
func FromEnv() Config {
	return Config{
		HTTPAddr:        envOrDefault("HTTP_ADDR", ":8080"),
		UpstreamBaseURL: envOrDefault("CART_API_BASE_URL", "http://localhost:5000/api"),
		UserEmail:       envOrDefault("USER_EMAIL", ""),
		ShutdownTimeout: envDuration("SHUTDOWN_TIMEOUT_SECONDS", 10*time.Second),
		BadgeInterval:   envDuration("BADGE_POLL_SECONDS", 10*time.Second),
		AllowedOrigins:  envList("ALLOWED_ORIGINS", []string{"http://localhost:3000"}),
	}
}

func envOrDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		seconds, err := strconv.Atoi(v)
		if err == nil {
			return time.Duration(seconds) * time.Second
		}
	}
	return def
}

func envList(key string, def []string) []string {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	var out []string
	for _, p := range strings.Split(v, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return def
	}
	return out
}
