package config

import (
	"testing"
	"time"
)

func TestLoad_AppEnvValidation(t *testing.T) {
	t.Setenv("APP_ENV", "invalid")
	if _, err := Load(); err == nil {
		t.Fatalf("expected error for invalid APP_ENV")
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

func TestLoad_ProdRequiresInternalJobToken(t *testing.T) {
	t.Setenv("APP_ENV", EnvProd)
	t.Setenv("UPTRACE_ENABLED", "false")
	t.Setenv("INTERNAL_JOB_TOKEN", "")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error when APP_ENV=prod without INTERNAL_JOB_TOKEN")
	}
}

func TestLoad_AuroryDefaults(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "false")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.AuroryBaseURL != "https://aggregator-api.live.aurory.io/v1" {
		t.Fatalf("unexpected aurory base url: %q", cfg.AuroryBaseURL)
	}
	if cfg.AuroryPageDelay != 500*time.Millisecond {
		t.Fatalf("unexpected page delay: %s", cfg.AuroryPageDelay)
	}
	if cfg.AuroryMaxRetries != 3 {
		t.Fatalf("unexpected max retries: %d", cfg.AuroryMaxRetries)
	}
	if !cfg.AuroryDescending {
		t.Fatalf("expected descending pagination by default")
	}
	if cfg.DBURL != "" {
		t.Fatalf("expected empty DB_URL by default, got %q", cfg.DBURL)
	}
}

func TestLoad_BonusWindowsParsing(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "false")

	t.Run("empty gives empty schedule", func(t *testing.T) {
		t.Setenv("BONUS_WINDOWS", "")
		cfg, err := Load()
		if err != nil {
			t.Fatalf("load config: %v", err)
		}
		if len(cfg.BonusWindows) != 0 {
			t.Fatalf("unexpected bonus windows: %+v", cfg.BonusWindows)
		}
	})

	t.Run("valid schedule", func(t *testing.T) {
		t.Setenv("BONUS_WINDOWS", `{"VIP862924621":[{"start":"2026-03-01T00:00:00Z","end":"2026-03-02T00:00:00Z"}]}`)
		cfg, err := Load()
		if err != nil {
			t.Fatalf("load config: %v", err)
		}
		windows := cfg.BonusWindows["VIP862924621"]
		if len(windows) != 1 {
			t.Fatalf("unexpected window count: %d", len(windows))
		}
		if !windows[0].Start.Equal(time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC)) {
			t.Fatalf("unexpected window start: %s", windows[0].Start)
		}
	})

	t.Run("inverted window rejected", func(t *testing.T) {
		t.Setenv("BONUS_WINDOWS", `{"VIP862924621":[{"start":"2026-03-02T00:00:00Z","end":"2026-03-01T00:00:00Z"}]}`)
		if _, err := Load(); err == nil {
			t.Fatalf("expected error for inverted window")
		}
	})

	t.Run("invalid JSON rejected", func(t *testing.T) {
		t.Setenv("BONUS_WINDOWS", "{not json")
		if _, err := Load(); err == nil {
			t.Fatalf("expected error for invalid BONUS_WINDOWS JSON")
		}
	})
}

func TestLoad_PprofDefaultsAddrWhenEnabled(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "false")
	t.Setenv("PPROF_ENABLED", "true")
	t.Setenv("PPROF_ADDR", "  ")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.PprofAddr != ":6060" {
		t.Fatalf("expected default pprof addr :6060, got %q", cfg.PprofAddr)
	}
}

func TestLoad_PyroscopeAppNameDefaultsToServiceName(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "false")
	t.Setenv("APP_SERVICE_NAME", "elite-hunter-api-test")
	t.Setenv("PYROSCOPE_ENABLED", "true")
	t.Setenv("PYROSCOPE_SERVER_ADDRESS", "http://localhost:4040")
	t.Setenv("PYROSCOPE_APP_NAME", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.PyroscopeAppName != "elite-hunter-api-test" {
		t.Fatalf("unexpected pyroscope app name: %q", cfg.PyroscopeAppName)
	}
}

func TestLoad_CORSOriginsDefaultAndParsing(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "false")

	t.Run("default wildcard", func(t *testing.T) {
		t.Setenv("CORS_ALLOWED_ORIGINS", "")
		cfg, err := Load()
		if err != nil {
			t.Fatalf("load config: %v", err)
		}
		if len(cfg.CORSAllowedOrigins) != 1 || cfg.CORSAllowedOrigins[0] != "*" {
			t.Fatalf("unexpected default CORS origins: %+v", cfg.CORSAllowedOrigins)
		}
	})

	t.Run("comma separated parsing", func(t *testing.T) {
		t.Setenv("CORS_ALLOWED_ORIGINS", " https://leaderboard.aurory.io, http://localhost:5173 ")
		cfg, err := Load()
		if err != nil {
			t.Fatalf("load config: %v", err)
		}
		if len(cfg.CORSAllowedOrigins) != 2 {
			t.Fatalf("unexpected CORS origins length: %d", len(cfg.CORSAllowedOrigins))
		}
		if cfg.CORSAllowedOrigins[0] != "https://leaderboard.aurory.io" {
			t.Fatalf("unexpected first CORS origin: %s", cfg.CORSAllowedOrigins[0])
		}
	})
}

func TestLoad_JobIntervalValidation(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "false")

	t.Run("defaults", func(t *testing.T) {
		cfg, err := Load()
		if err != nil {
			t.Fatalf("load config: %v", err)
		}
		if cfg.JobUpdateInterval != time.Hour {
			t.Fatalf("unexpected default update interval: %s", cfg.JobUpdateInterval)
		}
		if cfg.JobWindowLead != 5*time.Minute {
			t.Fatalf("unexpected default window lead: %s", cfg.JobWindowLead)
		}
		if cfg.BadgeWorkers != 8 {
			t.Fatalf("unexpected default badge workers: %d", cfg.BadgeWorkers)
		}
	})

	t.Run("invalid interval", func(t *testing.T) {
		t.Setenv("JOB_UPDATE_INTERVAL", "bad")
		if _, err := Load(); err == nil {
			t.Fatalf("expected error for invalid JOB_UPDATE_INTERVAL")
		}
	})
}
