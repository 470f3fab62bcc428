package config

import (
	"errors"
	"io/fs"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds runtime configuration for the server.
type Config struct {
	Port            string
	LogLevel        string
	LogFormat       string
	CatalogFile     string
	StaticDir       string
	ShutdownTimeout Duration
	MaxBodyBytes    int
	Store           StoreConfig
	Metrics         MetricsConfig
}

// StoreConfig selects the roster backend.
type StoreConfig struct {
	Driver    string
	SQLiteDSN string
}

// Load reads configuration from environment variables with sensible defaults.
// Values from an optional .env file (ENV_FILE overrides the path) fill in
// variables that are not already set.
func Load() Config {
	_ = loadDotEnv(envOrDefault(envFile, defaultEnvFile))

	return Config{
		Port:            envOrDefault(envPort, defaultPort),
		LogLevel:        envOrDefault(envLogLevel, defaultLogLevel),
		LogFormat:       envOrDefault(envLogFormat, defaultLogFormat),
		CatalogFile:     envOrDefault(envCatalogFile, ""),
		StaticDir:       envOrDefault(envStaticDir, ""),
		ShutdownTimeout: durationEnvOrDefault(envShutdownTimeout, defaultShutdownTimeout),
		MaxBodyBytes:    intEnvOrDefault(envMaxBodyBytes, defaultMaxBodyBytes),
		Store:           loadStore(),
		Metrics:         loadMetrics(),
	}
}

func loadDotEnv(path string) error {
	err := godotenv.Load(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return err
}

func loadStore() StoreConfig {
	driver := strings.ToLower(strings.TrimSpace(envOrDefault(envStoreDriver, defaultStoreDriver)))
	if driver != StoreSQLite {
		driver = StoreMemory
	}
	return StoreConfig{
		Driver:    driver,
		SQLiteDSN: envOrDefault(envSQLiteDSN, defaultSQLiteDSN),
	}
}
