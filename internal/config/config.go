package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the runtime settings of the bbform tool. Values come from a
// local .env file or the environment; every field has a working default so a
// locally running bbstat service needs no setup.
type Config struct {
	// SourceURL is the base URL of the bbstat CSV service.
	SourceURL string
	// HTTPTimeout bounds each retrieval request.
	HTTPTimeout time.Duration
}

// Load reads .env (if present) and the environment.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		SourceURL:   envStr("BBSTAT_SOURCE_URL", "http://localhost:3000"),
		HTTPTimeout: time.Duration(envInt("BBSTAT_HTTP_TIMEOUT_SEC", 30)) * time.Second,
	}
}

func envStr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}
