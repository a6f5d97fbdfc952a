// Package config loads and validates application configuration from environment variables.
// Both binaries share it: cmd/lunchmap reads the client settings and
// cmd/mockapi the server settings.
package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration values for the Lunchmap binaries.
// Values are populated by Load from environment variables.
type Config struct {
	// APIURL is the base URL of the shop API. Defaults to "http://localhost:8080".
	APIURL string

	// HTTPTimeout bounds each API request made by the client. Defaults to 10s.
	HTTPTimeout time.Duration

	// LogLevel controls the minimum log level. Defaults to "info".
	// Valid values: debug, info, warn, error.
	LogLevel string

	// Port is the TCP port the mock API listens on. Defaults to "8080".
	Port string

	// CORSOrigins is the list of allowed cross-origin request origins for the mock API.
	// Defaults to ["http://localhost:5173"] (Vite dev server).
	// Set CORS_ORIGINS to a comma-separated list to override.
	CORSOrigins []string

	// MaxBodyBytes caps request bodies accepted by the mock API. Defaults to 1 MiB.
	MaxBodyBytes int64

	// SeedPath optionally points at a JSON file of shops loaded into the mock API at startup.
	SeedPath string
}

// Load reads configuration from environment variables and returns a Config.
// Returns an error naming every variable whose value cannot be used.
func Load() (Config, error) {
	return LoadWithOverrides(nil)
}

// Overrides maps environment variable names to values that take precedence
// over the environment, e.g. values given as command-line flags. Empty
// values are ignored.
type Overrides map[string]string

// LoadWithOverrides is Load with o applied before validation, so an override
// is checked exactly like the variable it replaces.
func LoadWithOverrides(o Overrides) (Config, error) {
	get := func(key, fallback string) string {
		if v := o[key]; v != "" {
			return v
		}
		return getEnv(key, fallback)
	}

	cfg := Config{
		APIURL:      strings.TrimRight(get("API_URL", "http://localhost:8080"), "/"),
		LogLevel:    get("LOG_LEVEL", "info"),
		Port:        get("PORT", "8080"),
		CORSOrigins: splitCSV(get("CORS_ORIGINS", "http://localhost:5173")),
		SeedPath:    get("SEED_PATH", ""),
	}

	var invalid []string

	if u, err := url.Parse(cfg.APIURL); err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		invalid = append(invalid, "API_URL")
	}

	timeout, err := time.ParseDuration(get("HTTP_TIMEOUT", "10s"))
	if err != nil || timeout <= 0 {
		invalid = append(invalid, "HTTP_TIMEOUT")
	}
	cfg.HTTPTimeout = timeout

	maxBody, err := strconv.ParseInt(get("MAX_BODY_BYTES", "1048576"), 10, 64)
	if err != nil || maxBody <= 0 {
		invalid = append(invalid, "MAX_BODY_BYTES")
	}
	cfg.MaxBodyBytes = maxBody

	if _, err := strconv.Atoi(cfg.Port); err != nil {
		invalid = append(invalid, "PORT")
	}

	if len(invalid) > 0 {
		return Config{}, fmt.Errorf("invalid environment variables: %s", strings.Join(invalid, ", "))
	}

	return cfg, nil
}

// LoadDotEnv loads variables from the given .env files (default ".env") into
// the process environment without overriding variables already set.
// A missing file is not an error; it reports whether anything was loaded.
func LoadDotEnv(files ...string) bool {
	return godotenv.Load(files...) == nil
}

// getEnv returns the value of the environment variable named by key,
// or fallback if the variable is not set or is empty.
func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// splitCSV splits a comma-separated string into a trimmed slice, ignoring empty entries.
func splitCSV(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if t := strings.TrimSpace(part); t != "" {
			out = append(out, t)
		}
	}
	return out
}
