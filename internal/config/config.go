package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	ServiceName string

	ServerPort int

	DatabaseURL string

	LogLevel string

	ShutdownTimeout time.Duration
}

// LoadEnvFile loads variables from path into the environment without
// overriding values that are already set.
func LoadEnvFile(path string) {
	if err := godotenv.Load(path); err != nil {
		log.Printf("notice: %s not loaded: %v; using system environment variables", path, err)
	}
}

func Load() Config {
	return Config{
		ServiceName: EnvDefault("SERVICE_NAME", "orders"),

		ServerPort: EnvIntDefault("SERVER_PORT", 8080),

		DatabaseURL: strings.TrimSpace(os.Getenv("DATABASE_URL")),

		LogLevel: EnvDefault("LOG_LEVEL", "info"),

		ShutdownTimeout: time.Duration(EnvIntDefault("SHUTDOWN_TIMEOUT_SEC", 10)) * time.Second,
	}
}

// Validate reports the first required setting that is missing.
func (c Config) Validate() error {
	if c.DatabaseURL == "" {
		return fmt.Errorf("missing required env %s", "DATABASE_URL")
	}
	if c.ServerPort <= 0 || c.ServerPort > 65535 {
		return fmt.Errorf("invalid SERVER_PORT %d", c.ServerPort)
	}
	return nil
}

func (c Config) Addr() string {
	return ":" + strconv.Itoa(c.ServerPort)
}

func EnvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func EnvIntDefault(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}
