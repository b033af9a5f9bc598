package config

import "time"

// Default configuration values.
const (
	DefaultOutput            = "auto" // Auto-detect: TTY=text, non-TTY=markdown
	DefaultLogLevel          = "info"
	DefaultLogFormat         = "text"
	DefaultQuery             = "SELECT id, name FROM users WHERE id > 124"
	DefaultWorkers           = 4
	DefaultAddr              = "127.0.0.1:8080"
	DefaultReadHeaderTimeout = 10 * time.Second
	DefaultShutdownTimeout   = 5 * time.Second
	DefaultDebounce          = 100 * time.Millisecond
	DefaultCommentPrefixes   = "#"
	DefaultHistorySize       = 20
)

// Defaults returns the default value of every configuration key, keyed by
// its dotted path.
func Defaults() map[string]any {
	return map[string]any{
		"verbose":                    false,
		"output":                     DefaultOutput,
		"log.level":                  DefaultLogLevel,
		"log.format":                 DefaultLogFormat,
		"calc.words":                 true,
		"calc.spell":                 false,
		"query.default":              DefaultQuery,
		"query.out":                  "",
		"batch.workers":              DefaultWorkers,
		"batch.comment_prefixes":     DefaultCommentPrefixes,
		"watch.debounce":             DefaultDebounce,
		"server.addr":                DefaultAddr,
		"server.read_header_timeout": DefaultReadHeaderTimeout,
		"server.shutdown_timeout":    DefaultShutdownTimeout,
		"server.session_secret":      "",
		"server.history_size":        DefaultHistorySize,
	}
}

// ApplyServerDefaults fills unset server fields.
func ApplyServerDefaults(c *ServerConfig) {
	if c == nil {
		return
	}
	if c.Addr == "" {
		c.Addr = DefaultAddr
	}
	if c.ReadHeaderTimeout <= 0 {
		c.ReadHeaderTimeout = DefaultReadHeaderTimeout
	}
	if c.ShutdownTimeout <= 0 {
		c.ShutdownTimeout = DefaultShutdownTimeout
	}
	if c.HistorySize <= 0 {
		c.HistorySize = DefaultHistorySize
	}
}
