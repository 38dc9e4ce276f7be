// Package config loads client settings from the environment.
package config

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// durationSeconds parses env as time.Duration: "10s", "5m" or a bare
// number of seconds (e.g. "10" -> 10s).
type durationSeconds time.Duration

// SetValue implements cleanenv's setter for custom types.
func (d *durationSeconds) SetValue(s string) error {
	v, err := parseDuration(s)
	if err != nil {
		return err
	}

	*d = durationSeconds(v)

	return nil
}

func (d durationSeconds) Duration() time.Duration {
	return time.Duration(d)
}

func parseDuration(s string) (time.Duration, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("empty duration")
	}

	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return time.Duration(n) * time.Second, nil
	}

	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, fmt.Errorf("duration must be like 10s, 5m or a number of seconds: %w", err)
	}

	return d, nil
}

// Config holds everything the client reads from the environment.
type Config struct {
	// APIURL is the base address of the remote todo service.
	APIURL string `env:"TODO_API_URL" env-default:"http://localhost:8080"`

	// LogPath receives the debug log; the TUI owns the terminal, so
	// logs never go to stdout.
	LogPath string `env:"TODO_LOG_PATH" env-default:"todoconsole.log"`

	// LogLevel is a zerolog level name (debug, info, warn, error).
	LogLevel string `env:"TODO_LOG_LEVEL" env-default:"info"`

	// RequestTimeout bounds each HTTP request. Zero disables the bound.
	RequestTimeout durationSeconds `env:"TODO_REQUEST_TIMEOUT" env-default:"10s"`
}

// Load reads the configuration from the environment.
func Load() (Config, error) {
	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return Config{}, fmt.Errorf("read env: %w", err)
	}

	if !strings.HasPrefix(cfg.APIURL, "http://") && !strings.HasPrefix(cfg.APIURL, "https://") {
		return Config{}, fmt.Errorf("TODO_API_URL must be an http(s) URL, got %q", cfg.APIURL)
	}

	return cfg, nil
}
