// Package config loads server settings from PAIXI_* environment
// variables with defaults that work out of the box on a dev machine.
package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds the server-level settings. LLM provider selection lives in
// the llm package's own config.
type Config struct {
	// Addr is the HTTP listen address.
	Addr string

	// DBPath overrides the SQLite database file location. Empty means
	// the store's default resolution order applies.
	DBPath string

	// LogMode selects the logger encoder: "dev" or "prod".
	LogMode string

	// ChatWindow is how long after /start the curriculum stays parked in
	// free chat.
	ChatWindow time.Duration

	// KnowledgeRoot is the directory scanned for local lesson notes fed
	// into the persona prompt.
	KnowledgeRoot string
}

// Default returns the out-of-the-box configuration.
func Default() Config {
	return Config{
		Addr:          ":8000",
		LogMode:       "dev",
		ChatWindow:    120 * time.Second,
		KnowledgeRoot: ".",
	}
}

// FromEnv builds a Config from the environment, falling back to defaults
// for unset or malformed values.
func FromEnv() Config {
	cfg := Default()

	if v := os.Getenv("PAIXI_ADDR"); v != "" {
		cfg.Addr = v
	}
	if v := os.Getenv("PAIXI_DB"); v != "" {
		cfg.DBPath = v
	}
	if v := os.Getenv("PAIXI_LOG_MODE"); v != "" {
		cfg.LogMode = v
	}
	if v := os.Getenv("PAIXI_CHAT_WINDOW"); v != "" {
		if secs, err := strconv.Atoi(v); err == nil && secs >= 0 {
			cfg.ChatWindow = time.Duration(secs) * time.Second
		}
	}
	if v := os.Getenv("PAIXI_KNOWLEDGE_ROOT"); v != "" {
		cfg.KnowledgeRoot = v
	}

	return cfg
}
