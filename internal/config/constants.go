package config

import "time"

const (
	envFile            = "ENV_FILE"
	envPort            = "PORT"
	envLogLevel        = "LOG_LEVEL"
	envLogFormat       = "LOG_FORMAT"
	envStoreDriver     = "STORE_DRIVER"
	envSQLiteDSN       = "SQLITE_DSN"
	envCatalogFile     = "CATALOG_FILE"
	envStaticDir       = "STATIC_DIR"
	envShutdownTimeout = "SHUTDOWN_TIMEOUT"
	envMaxBodyBytes    = "MAX_BODY_BYTES"
	envMetricsPort     = "METRICS_PORT"
	envMetricsOn       = "METRICS_ENABLED"
	envOtelEndpoint    = "OTEL_EXPORTER_OTLP_ENDPOINT"
	envOtelService     = "OTEL_SERVICE_NAME"
	envOtelInsecure    = "OTEL_EXPORTER_OTLP_INSECURE"

	defaultEnvFile         = ".env"
	defaultPort            = "8000"
	defaultLogLevel        = "info"
	defaultLogFormat       = "text"
	defaultStoreDriver     = StoreMemory
	defaultSQLiteDSN       = "file::memory:"
	defaultShutdownTimeout = 10 * Duration(time.Second)
	defaultMaxBodyBytes    = 4096
	defaultMetricsPort     = "9090"
	defaultServiceName     = "activities-service"
)

// Store drivers accepted by STORE_DRIVER.
const (
	StoreMemory = "memory"
	StoreSQLite = "sqlite"
)
