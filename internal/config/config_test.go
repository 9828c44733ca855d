package config

import (
	"testing"
	"time"
)

func TestParse_Defaults(t *testing.T) {
	t.Setenv("TELEGRAM_BOT_TOKEN", "token")
	t.Setenv("BOT_DATA_PATH", t.TempDir())

	cfg, err := Parse()
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if cfg.GreetingTTL != 15*time.Minute {
		t.Fatalf("want 15m greeting ttl, got %v", cfg.GreetingTTL)
	}
	if cfg.MaxConcurrentHandlers != 16 {
		t.Fatalf("want 16 handlers, got %d", cfg.MaxConcurrentHandlers)
	}
	if cfg.RepoURL != "https://github.com/thedioxider/api-club-bot" {
		t.Fatalf("unexpected repo url: %q", cfg.RepoURL)
	}
}

func TestParse_MissingDataPathFails(t *testing.T) {
	t.Setenv("TELEGRAM_BOT_TOKEN", "token")
	t.Setenv("BOT_DATA_PATH", "")

	if _, err := Parse(); err == nil {
		t.Fatalf("expected error when BOT_DATA_PATH is missing")
	}
}

func TestParse_ClampsConcurrency(t *testing.T) {
	t.Setenv("TELEGRAM_BOT_TOKEN", "token")
	t.Setenv("BOT_DATA_PATH", t.TempDir())
	t.Setenv("MAX_CONCURRENT_HANDLERS", "0")

	cfg, err := Parse()
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if cfg.MaxConcurrentHandlers != 1 {
		t.Fatalf("want 1, got %d", cfg.MaxConcurrentHandlers)
	}
}
