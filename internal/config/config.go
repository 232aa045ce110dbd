package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/insightdelivered/enbd-statement-parser/internal/parser"
)

const (
	defaultPort        = "8080"
	defaultLogLevel    = "info"
	defaultLogFormat   = "console"
	defaultMaxUploadMB = 32
)

type Config struct {
	Port        string
	LogLevel    string
	LogFormat   string
	MaxUploadMB int
	Parse       parser.Options
}

// Load reads the configuration from the environment, applying defaults.
func Load() (Config, error) {
	cfg := Config{
		Port:        env("PORT", defaultPort),
		LogLevel:    strings.ToLower(env("LOG_LEVEL", defaultLogLevel)),
		LogFormat:   strings.ToLower(env("LOG_FORMAT", defaultLogFormat)),
		MaxUploadMB: defaultMaxUploadMB,
	}

	if cfg.LogFormat != "console" && cfg.LogFormat != "json" {
		return Config{}, fmt.Errorf("LOG_FORMAT: unknown format %q (want console or json)", cfg.LogFormat)
	}

	if raw := env("MAX_UPLOAD_MB", ""); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			return Config{}, fmt.Errorf("MAX_UPLOAD_MB: want a positive integer, got %q", raw)
		}
		cfg.MaxUploadMB = n
	}

	var err error
	if cfg.Parse.StrayLines, err = parser.ParseStrayLinePolicy(strings.ToLower(env("STRAY_LINES", ""))); err != nil {
		return Config{}, fmt.Errorf("STRAY_LINES: %w", err)
	}
	if cfg.Parse.Unterminated, err = parser.ParseUnterminatedPolicy(strings.ToLower(env("UNTERMINATED_LINES", ""))); err != nil {
		return Config{}, fmt.Errorf("UNTERMINATED_LINES: %w", err)
	}
	if cfg.Parse.InvalidAmounts, err = parser.ParseInvalidAmountPolicy(strings.ToLower(env("INVALID_AMOUNTS", ""))); err != nil {
		return Config{}, fmt.Errorf("INVALID_AMOUNTS: %w", err)
	}

	return cfg, nil
}

// Addr is the listen address for the HTTP server.
func (c Config) Addr() string {
	if strings.Contains(c.Port, ":") {
		return c.Port
	}
	return ":" + c.Port
}

func env(key, fallback string) string {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	return v
}
