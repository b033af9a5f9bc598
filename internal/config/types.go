// Package config provides configuration types shared by the CLI, the batch
// runner and the HTTP server. It is decoupled from CLI concerns.
package config

import (
	"time"

	"github.com/leapstack-labs/leapcalc/pkg/calc"
)

// CalcConfig configures the arithmetic language.
type CalcConfig struct {
	// Words enables the word lexicon (plus, times, seven, ...).
	Words bool `koanf:"words"`
	// Spell adds the English spelling of each result.
	Spell bool `koanf:"spell"`
}

// Options returns the lexer options for c.
func (c CalcConfig) Options() calc.Options {
	return calc.Options{Words: c.Words}
}

// QueryConfig configures the query language.
type QueryConfig struct {
	Default string `koanf:"default"` // query used when none is given
	Out     string `koanf:"out"`     // file receiving the JSON description
}

// BatchConfig configures the batch runner.
type BatchConfig struct {
	Workers         int      `koanf:"workers"`
	CommentPrefixes []string `koanf:"comment_prefixes"`
}

// WatchConfig configures file watching.
type WatchConfig struct {
	Debounce time.Duration `koanf:"debounce"`
}

// ServerConfig configures the HTTP API.
type ServerConfig struct {
	Addr              string        `koanf:"addr"`
	ReadHeaderTimeout time.Duration `koanf:"read_header_timeout"`
	ShutdownTimeout   time.Duration `koanf:"shutdown_timeout"`
	// SessionSecret signs playground session cookies. A random key is
	// generated at startup when empty, so sessions do not survive restarts.
	SessionSecret string `koanf:"session_secret"`
	// HistorySize bounds the playground's shared evaluation history.
	HistorySize int `koanf:"history_size"`
}

// LogConfig configures structured logging.
type LogConfig struct {
	Level  string `koanf:"level"`  // debug, info, warn, error
	Format string `koanf:"format"` // text, json
}
