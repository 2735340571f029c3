package config

import (
	"os"
	"strconv"
	"time"
)

// Config collects the environment-driven settings shared by the
// workflow-server and workflow-scheduler binaries.
type Config struct {
	// DatabaseURL holds WORKFLOW_DB_URL. tasks.NewPool reads that
	// variable itself and does not take this field.
	DatabaseURL string

	// LogLevel / LogFormat mirror the conventions read directly by
	// observability.SetupLogger; kept here too so a caller can log the
	// resolved configuration at startup.
	LogLevel  string
	LogFormat string

	// HTTPAddr is the address the server binary listens on.
	HTTPAddr string

	// DefinitionsDir and WatchDefinitions are read from the environment
	// only; Load starts no watcher and the binaries do not use them.
	DefinitionsDir   string
	WatchDefinitions bool

	// PoolWorkers sizes the default scheduling.Pool.
	PoolWorkers int

	// ShutdownTimeout bounds graceful shutdown of the HTTP/scheduler
	// binaries.
	ShutdownTimeout time.Duration
}

// Load reads Config from the environment, applying defaults for unset
// variables.
func Load() Config {
	return Config{
		DatabaseURL:      os.Getenv("WORKFLOW_DB_URL"),
		LogLevel:         envOr("LOG_LEVEL", "INFO"),
		LogFormat:        envOr("LOG_FORMAT", "json"),
		HTTPAddr:         envOr("WORKFLOW_HTTP_ADDR", ":8080"),
		DefinitionsDir:   os.Getenv("WORKFLOW_DEFINITIONS_DIR"),
		WatchDefinitions: envBool("WORKFLOW_WATCH_DEFINITIONS", false),
		PoolWorkers:      envInt("WORKFLOW_POOL_WORKERS", 8),
		ShutdownTimeout:  envDuration("WORKFLOW_SHUTDOWN_TIMEOUT", 10*time.Second),
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func envBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return b
}

func envDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}
	return d
}
