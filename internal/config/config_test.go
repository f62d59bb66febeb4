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

func TestLoad_UptraceDSNFromOTLPHeaders(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "true")
	t.Setenv("UPTRACE_DSN", "")
	t.Setenv("OTEL_EXPORTER_OTLP_HEADERS", "uptrace-dsn=https://token@api.uptrace.dev/1234")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.UptraceDSN != "https://token@api.uptrace.dev/1234" {
		t.Fatalf("unexpected uptrace dsn: %q", cfg.UptraceDSN)
	}
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

func TestLoad_PyroscopeRequiresServerAddressWhenEnabled(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "false")
	t.Setenv("PYROSCOPE_ENABLED", "true")
	t.Setenv("PYROSCOPE_SERVER_ADDRESS", "")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error when PYROSCOPE_ENABLED=true without PYROSCOPE_SERVER_ADDRESS")
	}
}

func TestLoad_PyroscopeAppNameDefaultsToServiceName(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "false")
	t.Setenv("APP_SERVICE_NAME", "keeper-league-api-test")
	t.Setenv("PYROSCOPE_ENABLED", "true")
	t.Setenv("PYROSCOPE_SERVER_ADDRESS", "http://localhost:4040")
	t.Setenv("PYROSCOPE_APP_NAME", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.PyroscopeAppName != "keeper-league-api-test" {
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
		t.Setenv("CORS_ALLOWED_ORIGINS", " https://keeper-league.app, http://localhost:5173 ")
		cfg, err := Load()
		if err != nil {
			t.Fatalf("load config: %v", err)
		}
		if len(cfg.CORSAllowedOrigins) != 2 {
			t.Fatalf("unexpected CORS origins length: %d", len(cfg.CORSAllowedOrigins))
		}
		if cfg.CORSAllowedOrigins[0] != "https://keeper-league.app" {
			t.Fatalf("unexpected first CORS origin: %s", cfg.CORSAllowedOrigins[0])
		}
		if cfg.CORSAllowedOrigins[1] != "http://localhost:5173" {
			t.Fatalf("unexpected second CORS origin: %s", cfg.CORSAllowedOrigins[1])
		}
	})
}

func TestLoad_DBDisablePreparedBinaryResultParsing(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "false")

	t.Run("default true", func(t *testing.T) {
		t.Setenv("DB_DISABLE_PREPARED_BINARY_RESULT", "")
		cfg, err := Load()
		if err != nil {
			t.Fatalf("load config: %v", err)
		}
		if !cfg.DBDisablePreparedBinary {
			t.Fatalf("expected DBDisablePreparedBinary=true by default")
		}
	})

	t.Run("invalid value", func(t *testing.T) {
		t.Setenv("DB_DISABLE_PREPARED_BINARY_RESULT", "not-bool")
		if _, err := Load(); err == nil {
			t.Fatalf("expected error for invalid DB_DISABLE_PREPARED_BINARY_RESULT")
		}
	})
}

func TestLoad_SleeperConfigParsing(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "false")

	t.Run("defaults", func(t *testing.T) {
		t.Setenv("SLEEPER_BASE_URL", "")
		t.Setenv("SLEEPER_TIMEOUT", "")
		t.Setenv("SLEEPER_MAX_RETRIES", "")

		cfg, err := Load()
		if err != nil {
			t.Fatalf("load config: %v", err)
		}
		if cfg.SleeperBaseURL != "https://api.sleeper.app/v1" {
			t.Fatalf("unexpected sleeper base url: %q", cfg.SleeperBaseURL)
		}
		if cfg.SleeperTimeout != 10*time.Second {
			t.Fatalf("unexpected sleeper timeout: %s", cfg.SleeperTimeout)
		}
		if cfg.SleeperMaxRetries != 2 {
			t.Fatalf("unexpected sleeper max retries: %d", cfg.SleeperMaxRetries)
		}
		if !cfg.SleeperCircuitEnabled {
			t.Fatalf("expected sleeper circuit breaker enabled by default")
		}
		if cfg.SleeperCircuitFailureCount != 5 {
			t.Fatalf("unexpected sleeper circuit failure count: %d", cfg.SleeperCircuitFailureCount)
		}
		if cfg.SleeperCircuitOpenTimeout != 15*time.Second {
			t.Fatalf("unexpected sleeper circuit open timeout: %s", cfg.SleeperCircuitOpenTimeout)
		}
	})

	t.Run("invalid timeout", func(t *testing.T) {
		t.Setenv("SLEEPER_TIMEOUT", "bad")
		if _, err := Load(); err == nil {
			t.Fatalf("expected error for invalid SLEEPER_TIMEOUT")
		}
	})

	t.Run("negative retries rejected", func(t *testing.T) {
		t.Setenv("SLEEPER_TIMEOUT", "10s")
		t.Setenv("SLEEPER_MAX_RETRIES", "-1")
		if _, err := Load(); err == nil {
			t.Fatalf("expected error for negative SLEEPER_MAX_RETRIES")
		}
	})
}

func TestLoad_ESPNConfigParsing(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "false")

	t.Run("enabled by default", func(t *testing.T) {
		t.Setenv("ESPN_ENABLED", "")
		cfg, err := Load()
		if err != nil {
			t.Fatalf("load config: %v", err)
		}
		if !cfg.ESPNEnabled {
			t.Fatalf("expected ESPNEnabled=true by default")
		}
		if cfg.ESPNCacheTTL != 45*time.Second {
			t.Fatalf("unexpected espn cache ttl: %s", cfg.ESPNCacheTTL)
		}
	})

	t.Run("custom values", func(t *testing.T) {
		t.Setenv("ESPN_TIMEOUT", "5s")
		t.Setenv("ESPN_MAX_RETRIES", "3")
		t.Setenv("ESPN_CACHE_TTL", "2m")
		t.Setenv("ESPN_CIRCUIT_ENABLED", "false")

		cfg, err := Load()
		if err != nil {
			t.Fatalf("load config: %v", err)
		}
		if cfg.ESPNTimeout != 5*time.Second {
			t.Fatalf("unexpected espn timeout: %s", cfg.ESPNTimeout)
		}
		if cfg.ESPNMaxRetries != 3 {
			t.Fatalf("unexpected espn max retries: %d", cfg.ESPNMaxRetries)
		}
		if cfg.ESPNCacheTTL != 2*time.Minute {
			t.Fatalf("unexpected espn cache ttl: %s", cfg.ESPNCacheTTL)
		}
		if cfg.ESPNCircuitEnabled {
			t.Fatalf("expected ESPNCircuitEnabled=false")
		}
	})
}

func TestLoad_GameStatusConfigParsing(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "false")

	t.Run("disabled by default", func(t *testing.T) {
		t.Setenv("GAME_STATUS_API_ENABLED", "")
		cfg, err := Load()
		if err != nil {
			t.Fatalf("load config: %v", err)
		}
		if cfg.GameStatusEnabled {
			t.Fatalf("expected GameStatusEnabled=false by default")
		}
	})

	t.Run("enabled requires url", func(t *testing.T) {
		t.Setenv("GAME_STATUS_API_ENABLED", "true")
		t.Setenv("GAME_STATUS_API_URL", "")
		if _, err := Load(); err == nil {
			t.Fatalf("expected error when GAME_STATUS_API_ENABLED=true without GAME_STATUS_API_URL")
		}
	})

	t.Run("enabled with key and extra headers", func(t *testing.T) {
		t.Setenv("GAME_STATUS_API_ENABLED", "true")
		t.Setenv("GAME_STATUS_API_URL", "https://scores.example.com")
		t.Setenv("GAME_STATUS_API_PATH", "/v1/scoreboard")
		t.Setenv("GAME_STATUS_API_KEY", "secret-key")
		t.Setenv("GAME_STATUS_API_KEY_HEADER", "X-Api-Key")
		t.Setenv("GAME_STATUS_API_HEADERS", "Accept:application/json, X-Client:keeper-league")
		t.Setenv("GAME_STATUS_API_PARAMS", "format:json")

		cfg, err := Load()
		if err != nil {
			t.Fatalf("load config: %v", err)
		}
		if !cfg.GameStatusEnabled {
			t.Fatalf("expected GameStatusEnabled=true")
		}
		if cfg.GameStatusPath != "/v1/scoreboard" {
			t.Fatalf("unexpected game status path: %q", cfg.GameStatusPath)
		}
		if cfg.GameStatusAPIKeyHeader != "X-Api-Key" {
			t.Fatalf("unexpected game status key header: %q", cfg.GameStatusAPIKeyHeader)
		}
		if cfg.GameStatusExtraHeaders["X-Client"] != "keeper-league" {
			t.Fatalf("unexpected extra header value")
		}
		if cfg.GameStatusExtraParams["format"] != "json" {
			t.Fatalf("unexpected extra param value")
		}
	})

	t.Run("invalid header map", func(t *testing.T) {
		t.Setenv("GAME_STATUS_API_ENABLED", "false")
		t.Setenv("GAME_STATUS_API_HEADERS", "no-colon-here")
		if _, err := Load(); err == nil {
			t.Fatalf("expected error for malformed GAME_STATUS_API_HEADERS")
		}
	})
}

func TestLoad_LiveRefreshConfigParsing(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "false")

	t.Run("defaults", func(t *testing.T) {
		t.Setenv("LIVE_REFRESH_ENABLED", "")
		t.Setenv("LIVE_REFRESH_INTERVAL", "")

		cfg, err := Load()
		if err != nil {
			t.Fatalf("load config: %v", err)
		}
		if !cfg.LiveRefreshEnabled {
			t.Fatalf("expected live refresh enabled by default")
		}
		if cfg.LiveRefreshInterval != 30*time.Second {
			t.Fatalf("unexpected default live refresh interval: %s", cfg.LiveRefreshInterval)
		}
	})

	t.Run("non-positive interval rejected", func(t *testing.T) {
		t.Setenv("LIVE_REFRESH_INTERVAL", "0s")
		if _, err := Load(); err == nil {
			t.Fatalf("expected error for non-positive LIVE_REFRESH_INTERVAL")
		}
	})
}

func TestLoad_SyncWorkerCountParsing(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "false")

	t.Run("default", func(t *testing.T) {
		t.Setenv("SYNC_WORKER_COUNT", "")
		cfg, err := Load()
		if err != nil {
			t.Fatalf("load config: %v", err)
		}
		if cfg.SyncWorkerCount != 4 {
			t.Fatalf("unexpected default sync worker count: %d", cfg.SyncWorkerCount)
		}
	})

	t.Run("zero rejected", func(t *testing.T) {
		t.Setenv("SYNC_WORKER_COUNT", "0")
		if _, err := Load(); err == nil {
			t.Fatalf("expected error for SYNC_WORKER_COUNT=0")
		}
	})
}
