package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func noDotEnv(t *testing.T) {
	t.Helper()
	t.Setenv(envFile, filepath.Join(t.TempDir(), "missing.env"))
}

func TestLoadDefaults(t *testing.T) {
	noDotEnv(t)
	cfg := Load()

	if cfg.Port != defaultPort {
		t.Fatalf("expected default port %s, got %s", defaultPort, cfg.Port)
	}
	if cfg.LogLevel != "info" || cfg.LogFormat != "text" {
		t.Fatalf("unexpected log defaults %s/%s", cfg.LogLevel, cfg.LogFormat)
	}
	if cfg.Store.Driver != StoreMemory || cfg.Store.SQLiteDSN != defaultSQLiteDSN {
		t.Fatalf("unexpected store defaults %+v", cfg.Store)
	}
	if cfg.CatalogFile != "" || cfg.StaticDir != "" {
		t.Fatalf("expected empty catalog/static defaults, got %q/%q", cfg.CatalogFile, cfg.StaticDir)
	}
	if cfg.MaxBodyBytes != 4096 {
		t.Fatalf("expected 4096 body limit, got %d", cfg.MaxBodyBytes)
	}
	if cfg.ShutdownTimeout != 10*time.Second {
		t.Fatalf("expected 10s shutdown timeout, got %s", cfg.ShutdownTimeout)
	}
	if !cfg.Metrics.Enabled || cfg.Metrics.Port != "9090" || cfg.Metrics.ServiceName != "activities-service" || !cfg.Metrics.OtlpInsecure {
		t.Fatalf("unexpected metrics defaults %+v", cfg.Metrics)
	}
}

func TestLoadOverrides(t *testing.T) {
	noDotEnv(t)
	t.Setenv(envPort, "5000")
	t.Setenv(envLogLevel, "debug")
	t.Setenv(envLogFormat, "json")
	t.Setenv(envStoreDriver, "SQLite")
	t.Setenv(envSQLiteDSN, "file:rosters.db")
	t.Setenv(envCatalogFile, "/etc/activities.yaml")
	t.Setenv(envStaticDir, "./static")
	t.Setenv(envShutdownTimeout, "3s")
	t.Setenv(envMaxBodyBytes, "1024")
	t.Setenv(envMetricsOn, "false")
	t.Setenv(envOtelEndpoint, "collector:4318")

	cfg := Load()

	if cfg.Port != "5000" || cfg.LogLevel != "debug" || cfg.LogFormat != "json" {
		t.Fatalf("unexpected overrides %+v", cfg)
	}
	if cfg.Store.Driver != StoreSQLite || cfg.Store.SQLiteDSN != "file:rosters.db" {
		t.Fatalf("unexpected store overrides %+v", cfg.Store)
	}
	if cfg.CatalogFile != "/etc/activities.yaml" || cfg.StaticDir != "./static" {
		t.Fatalf("unexpected path overrides %+v", cfg)
	}
	if cfg.ShutdownTimeout != 3*time.Second {
		t.Fatalf("expected 3s, got %s", cfg.ShutdownTimeout)
	}
	if cfg.MaxBodyBytes != 1024 {
		t.Fatalf("expected 1024, got %d", cfg.MaxBodyBytes)
	}
	if cfg.Metrics.Enabled || cfg.Metrics.OtlpEndpoint != "collector:4318" {
		t.Fatalf("unexpected metrics overrides %+v", cfg.Metrics)
	}
}

func TestLoadUnknownStoreDriverFallsBackToMemory(t *testing.T) {
	noDotEnv(t)
	t.Setenv(envStoreDriver, "postgres")

	if got := Load().Store.Driver; got != StoreMemory {
		t.Fatalf("expected memory driver, got %s", got)
	}
}

func TestLoadInvalidDurationFallsBack(t *testing.T) {
	noDotEnv(t)
	t.Setenv(envShutdownTimeout, "not-a-duration")

	if got := Load().ShutdownTimeout; got != defaultShutdownTimeout {
		t.Fatalf("expected default shutdown timeout on invalid value, got %s", got)
	}
}

func TestLoadReadsDotEnvWithoutOverriding(t *testing.T) {
	const fileOnly = "ACTIVITIES_DOTENV_ONLY"
	path := filepath.Join(t.TempDir(), "test.env")
	content := "PORT=7000\n" + fileOnly + "=from-file\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write env file: %v", err)
	}
	t.Setenv(envFile, path)
	t.Setenv(envPort, "6000")
	t.Cleanup(func() { _ = os.Unsetenv(fileOnly) })

	cfg := Load()

	if cfg.Port != "6000" {
		t.Fatalf("expected real env to win, got %s", cfg.Port)
	}
	if got := os.Getenv(fileOnly); got != "from-file" {
		t.Fatalf("expected dotenv value to be loaded, got %q", got)
	}
}

func TestLoadDotEnvMissingFileIsIgnored(t *testing.T) {
	if err := loadDotEnv(filepath.Join(t.TempDir(), "nope.env")); err != nil {
		t.Fatalf("expected missing file to be ignored, got %v", err)
	}
}
