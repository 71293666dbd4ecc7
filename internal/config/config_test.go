package config

import (
	"reflect"
	"testing"
	"time"

	"github.com/iamasit07/connect4-ai/internal/service/bot"
)

func TestLoadConfigDefaults(t *testing.T) {
	for _, key := range []string{
		"PORT", "FRONTEND_URL", "ALLOWED_ORIGINS", "SEARCH_DEPTH", "MAX_SEARCH_DEPTH", "TIE_BREAK",
		"RANDOM_SEED", "SEARCH_TIMEOUT_MS", "SEARCH_NODE_BUDGET", "MOVE_CACHE_TTL_MINUTES",
		"REDIS_ENABLED", "REDIS_URL", "SESSION_IDLE_TIMEOUT_MINUTES", "CLEANUP_INTERVAL_MINUTES",
	} {
		t.Setenv(key, "")
	}

	cfg := LoadConfig()
	if cfg.Port != "8080" || cfg.SearchDepth != bot.DEFAULT_DEPTH || cfg.TieBreak != bot.TieBreakFirst {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
	if cfg.MaxSearchDepth != bot.DEFAULT_MAX_DEPTH {
		t.Fatalf("expected max depth %d, got %d", bot.DEFAULT_MAX_DEPTH, cfg.MaxSearchDepth)
	}
	if cfg.RandomSeed == 0 {
		t.Fatalf("an unset seed should be drawn from the clock")
	}
	if cfg.SearchTimeout != 0 || cfg.SearchNodeBudget != 0 {
		t.Fatalf("search should be unbounded by default")
	}
	if cfg.RedisEnabled || cfg.RedisURL != "localhost:6379" {
		t.Fatalf("unexpected redis defaults: %+v", cfg)
	}
	if cfg.MoveCacheTTL != time.Hour || cfg.SessionIdleTimeout != 24*time.Hour || cfg.CleanupInterval != 10*time.Minute {
		t.Fatalf("unexpected durations: %+v", cfg)
	}
	if !reflect.DeepEqual(cfg.AllowedOrigins, []string{"http://localhost:5173"}) {
		t.Fatalf("unexpected origins %v", cfg.AllowedOrigins)
	}
	if AppConfig != cfg {
		t.Fatalf("LoadConfig should set AppConfig")
	}
}

func TestLoadConfigFromEnv(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("FRONTEND_URL", "https://play.example.com")
	t.Setenv("ALLOWED_ORIGINS", " https://a.example.com, ,https://b.example.com")
	t.Setenv("SEARCH_DEPTH", "6")
	t.Setenv("MAX_SEARCH_DEPTH", "10")
	t.Setenv("TIE_BREAK", "random")
	t.Setenv("RANDOM_SEED", "7")
	t.Setenv("SEARCH_TIMEOUT_MS", "250")
	t.Setenv("SEARCH_NODE_BUDGET", "5000")
	t.Setenv("REDIS_ENABLED", "true")

	cfg := LoadConfig()
	want := []string{"https://play.example.com", "https://a.example.com", "https://b.example.com"}
	if !reflect.DeepEqual(cfg.AllowedOrigins, want) {
		t.Fatalf("expected origins %v, got %v", want, cfg.AllowedOrigins)
	}

	opts := cfg.EngineOptions()
	wantOpts := bot.Options{
		Depth:      6,
		MaxDepth:   10,
		TieBreak:   bot.TieBreakRandom,
		Seed:       7,
		Timeout:    250 * time.Millisecond,
		NodeBudget: 5000,
	}
	if opts != wantOpts {
		t.Fatalf("expected %+v, got %+v", wantOpts, opts)
	}
	if cfg.Port != "9000" || !cfg.RedisEnabled {
		t.Fatalf("unexpected config %+v", cfg)
	}
}

func TestLoadConfigRejectsBadValues(t *testing.T) {
	t.Setenv("SEARCH_DEPTH", "0")
	t.Setenv("MAX_SEARCH_DEPTH", "2")
	t.Setenv("TIE_BREAK", "coin")
	t.Setenv("CLEANUP_INTERVAL_MINUTES", "soon")
	t.Setenv("REDIS_ENABLED", "maybe")

	cfg := LoadConfig()
	if cfg.SearchDepth != bot.DEFAULT_DEPTH {
		t.Fatalf("expected the default depth, got %d", cfg.SearchDepth)
	}
	if cfg.MaxSearchDepth != cfg.SearchDepth {
		t.Fatalf("a max depth below the default should be raised to it, got %d", cfg.MaxSearchDepth)
	}
	if cfg.TieBreak != bot.TieBreakFirst {
		t.Fatalf("expected the first-best policy, got %v", cfg.TieBreak)
	}
	if cfg.CleanupInterval != 10*time.Minute || cfg.RedisEnabled {
		t.Fatalf("bad values should fall back to defaults: %+v", cfg)
	}
}
