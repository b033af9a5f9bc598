package config

import (
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"
)

// Validate checks if the configuration is valid and joins every problem found.
func (c *Config) Validate() error {
	var errs []error

	if !slices.Contains(outputModes, c.OutputFormat) {
		errs = append(errs, fmt.Errorf("output: unknown mode %q (want one of %s)",
			c.OutputFormat, strings.Join(outputModes, ", ")))
	}
	if _, err := ParseLevel(c.Log.Level); err != nil {
		errs = append(errs, fmt.Errorf("log.level: %w", err))
	}
	if c.Log.Format != "text" && c.Log.Format != "json" {
		errs = append(errs, fmt.Errorf("log.format: unknown format %q (want text or json)", c.Log.Format))
	}
	if c.Batch.Workers <= 0 {
		errs = append(errs, fmt.Errorf("batch.workers: must be positive, got %d", c.Batch.Workers))
	}
	if c.Watch.Debounce < 0 {
		errs = append(errs, fmt.Errorf("watch.debounce: must not be negative, got %s", c.Watch.Debounce))
	}
	if c.Server.HistorySize < 0 {
		errs = append(errs, fmt.Errorf("server.history_size: must not be negative, got %d", c.Server.HistorySize))
	}
	if c.Server.Addr == "" {
		errs = append(errs, errors.New("server.addr is required"))
	}

	return errors.Join(errs...)
}

// ParseLevel parses a log level name such as "debug" or "WARN".
func ParseLevel(s string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return 0, fmt.Errorf("unknown level %q", s)
	}
	return level, nil
}
