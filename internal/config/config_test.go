package config

import (
	"testing"
	"time"
)

func TestLoad_AppEnvValidation(t *testing.T) {
	t.Setenv("APP_ENV", "weird")

	if _, err := Load(); err == nil {
		t.Fatal("expected invalid APP_ENV to fail")
	}
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("APP_ENV", "dev")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}

	if cfg.ServiceName != "football-oracle-api" {
		t.Fatalf("service name %q", cfg.ServiceName)
	}
	if cfg.HTTPAddr != ":8080" {
		t.Fatalf("http addr %q", cfg.HTTPAddr)
	}
	if cfg.FootballDataBaseURL != "https://api.football-data.org/v4" {
		t.Fatalf("football-data base url %q", cfg.FootballDataBaseURL)
	}
	if cfg.FootballDataCompetition != "PL" {
		t.Fatalf("competition %q", cfg.FootballDataCompetition)
	}
	if cfg.FootballDataCacheTTL != time.Hour {
		t.Fatalf("cache ttl %s, want 1h", cfg.FootballDataCacheTTL)
	}
	if cfg.GeminiModel != "gemini-2.0-flash" {
		t.Fatalf("model %q", cfg.GeminiModel)
	}
	if len(cfg.CORSAllowedOrigins) != 1 || cfg.CORSAllowedOrigins[0] != "*" {
		t.Fatalf("cors origins %v", cfg.CORSAllowedOrigins)
	}
}

func TestLoad_UptraceRequiresDSNWhenEnabled(t *testing.T) {
	t.Setenv("UPTRACE_ENABLED", "true")
	t.Setenv("UPTRACE_DSN", "")

	if _, err := Load(); err == nil {
		t.Fatal("expected missing UPTRACE_DSN to fail")
	}
}

func TestLoad_BetterStackRequiresEndpointWhenEnabled(t *testing.T) {
	t.Setenv("BETTERSTACK_ENABLED", "true")
	t.Setenv("BETTERSTACK_ENDPOINT", "")

	if _, err := Load(); err == nil {
		t.Fatal("expected missing BETTERSTACK_ENDPOINT to fail")
	}
}

func TestLoad_ProviderOverrides(t *testing.T) {
	t.Setenv("FOOTBALL_DATA_TOKEN", "abc123")
	t.Setenv("FOOTBALL_DATA_COMPETITION", "CL")
	t.Setenv("FOOTBALL_DATA_CACHE_TTL", "30m")
	t.Setenv("GEMINI_API_KEY", "gkey")
	t.Setenv("GEMINI_MODEL", "gemini-2.0-pro")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}

	if cfg.FootballDataToken != "abc123" {
		t.Fatalf("token %q", cfg.FootballDataToken)
	}
	if cfg.FootballDataCompetition != "CL" {
		t.Fatalf("competition %q", cfg.FootballDataCompetition)
	}
	if cfg.FootballDataCacheTTL != 30*time.Minute {
		t.Fatalf("cache ttl %s", cfg.FootballDataCacheTTL)
	}
	if cfg.GeminiAPIKey != "gkey" || cfg.GeminiModel != "gemini-2.0-pro" {
		t.Fatalf("gemini config %q/%q", cfg.GeminiAPIKey, cfg.GeminiModel)
	}
}

func TestLoad_CircuitKnobValidation(t *testing.T) {
	t.Setenv("FOOTBALL_DATA_CIRCUIT_FAILURE_COUNT", "0")

	if _, err := Load(); err == nil {
		t.Fatal("expected zero failure count to fail")
	}
}
