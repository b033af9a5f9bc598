// Package config provides configuration management for the leapcalc CLI.
//
// This package composes the shared configuration types from internal/config
// into the full CLI configuration and loads it from defaults, a YAML file,
// LEAPCALC_ environment variables and command-line flags.
package config

import (
	sharedcfg "github.com/leapstack-labs/leapcalc/internal/config"
)

// Config holds all CLI configuration options.
type Config struct {
	Verbose      bool                   `koanf:"verbose"`
	OutputFormat string                 `koanf:"output"`
	Log          sharedcfg.LogConfig    `koanf:"log"`
	Calc         sharedcfg.CalcConfig   `koanf:"calc"`
	Query        sharedcfg.QueryConfig  `koanf:"query"`
	Batch        sharedcfg.BatchConfig  `koanf:"batch"`
	Watch        sharedcfg.WatchConfig  `koanf:"watch"`
	Server       sharedcfg.ServerConfig `koanf:"server"`
}

// Output modes accepted by --output.
var outputModes = []string{"auto", "text", "markdown", "json", "yaml"}

// OutputModes returns the accepted --output values.
func OutputModes() []string {
	return append([]string(nil), outputModes...)
}

// Default returns the configuration with every default applied.
func Default() *Config {
	return &Config{
		OutputFormat: sharedcfg.DefaultOutput,
		Log: sharedcfg.LogConfig{
			Level:  sharedcfg.DefaultLogLevel,
			Format: sharedcfg.DefaultLogFormat,
		},
		Calc:  sharedcfg.CalcConfig{Words: true},
		Query: sharedcfg.QueryConfig{Default: sharedcfg.DefaultQuery},
		Batch: sharedcfg.BatchConfig{
			Workers:         sharedcfg.DefaultWorkers,
			CommentPrefixes: []string{sharedcfg.DefaultCommentPrefixes},
		},
		Watch: sharedcfg.WatchConfig{Debounce: sharedcfg.DefaultDebounce},
		Server: sharedcfg.ServerConfig{
			Addr:              sharedcfg.DefaultAddr,
			ReadHeaderTimeout: sharedcfg.DefaultReadHeaderTimeout,
			ShutdownTimeout:   sharedcfg.DefaultShutdownTimeout,
			HistorySize:       sharedcfg.DefaultHistorySize,
		},
	}
}
