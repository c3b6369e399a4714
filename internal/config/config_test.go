package config

import (
	"testing"
	"time"

	"github.com/KPfeil25/world-cup-26-predictions/internal/platform/logging"
)

func TestLoad_AppEnvValidation(t *testing.T) {
	t.Setenv("APP_ENV", "invalid")
	if _, err := Load(); err == nil {
		t.Fatalf("expected error for invalid APP_ENV")
	}
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.HTTPAddr != ":8080" {
		t.Fatalf("unexpected HTTPAddr: %q", cfg.HTTPAddr)
	}
	if cfg.DataDir != "data" {
		t.Fatalf("unexpected DataDir: %q", cfg.DataDir)
	}
	if cfg.ModelDir != "models" {
		t.Fatalf("unexpected ModelDir: %q", cfg.ModelDir)
	}
	if !cfg.CacheEnabled || cfg.CacheTTL != 15*time.Minute {
		t.Fatalf("unexpected cache settings: enabled=%v ttl=%s", cfg.CacheEnabled, cfg.CacheTTL)
	}
	if cfg.DefaultConfidence != 70 {
		t.Fatalf("unexpected DefaultConfidence: %v", cfg.DefaultConfidence)
	}
	if cfg.LogLevel != logging.LevelInfo {
		t.Fatalf("unexpected LogLevel: %v", cfg.LogLevel)
	}
}

func TestLoad_UptraceRequiresDSNWhenEnabled(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "true")
	t.Setenv("UPTRACE_DSN", "")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error when UPTRACE_ENABLED=true without UPTRACE_DSN")
	}
}

func TestLoad_DefaultConfidenceBounds(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("PREDICT_DEFAULT_CONFIDENCE", "140")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error for out-of-range PREDICT_DEFAULT_CONFIDENCE")
	}
}

func TestLoad_CORSList(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("APP_CORS_ALLOWED_ORIGINS", "https://a.example, https://b.example,")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if len(cfg.CORSAllowedOrigins) != 2 {
		t.Fatalf("unexpected origins: %v", cfg.CORSAllowedOrigins)
	}
}
