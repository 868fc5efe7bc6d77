package config

import (
	"testing"
	"time"
)

func TestDefaults(t *testing.T) {
	cfg := Default()
	if cfg.Addr != ":8000" {
		t.Errorf("Addr = %q", cfg.Addr)
	}
	if cfg.ChatWindow != 120*time.Second {
		t.Errorf("ChatWindow = %s", cfg.ChatWindow)
	}
}

func TestFromEnvOverrides(t *testing.T) {
	t.Setenv("PAIXI_ADDR", ":9090")
	t.Setenv("PAIXI_CHAT_WINDOW", "30")
	t.Setenv("PAIXI_LOG_MODE", "prod")

	cfg := FromEnv()
	if cfg.Addr != ":9090" {
		t.Errorf("Addr = %q", cfg.Addr)
	}
	if cfg.ChatWindow != 30*time.Second {
		t.Errorf("ChatWindow = %s", cfg.ChatWindow)
	}
	if cfg.LogMode != "prod" {
		t.Errorf("LogMode = %q", cfg.LogMode)
	}
}

func TestFromEnvMalformedWindowKeepsDefault(t *testing.T) {
	t.Setenv("PAIXI_CHAT_WINDOW", "soon")
	cfg := FromEnv()
	if cfg.ChatWindow != 120*time.Second {
		t.Errorf("ChatWindow = %s, want default", cfg.ChatWindow)
	}
}
