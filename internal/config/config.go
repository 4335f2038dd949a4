package config

import (
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// Config carries everything the binaries read from the environment.
type Config struct {
	HTTPAddr     string
	PostgresDSN  string
	KafkaBrokers []string
	LogLevel     string
}

// Load reads an optional .env file, then the environment. Missing keys fall
// back to defaults suitable for local development: in-memory store, no
// broker.
func Load() Config {
	_ = godotenv.Load()

	cfg := Config{
		HTTPAddr:    getenv("HTTP_ADDR", ":8080"),
		PostgresDSN: os.Getenv("POSTGRES_DSN"),
		LogLevel:    getenv("LOG_LEVEL", "info"),
	}
	if brokers := os.Getenv("KAFKA_BROKERS"); brokers != "" {
		cfg.KafkaBrokers = strings.Split(brokers, ",")
	}
	return cfg
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
