package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{"SERVICE_NAME", "SERVER_PORT", "LOG_LEVEL", "SHUTDOWN_TIMEOUT_SEC"} {
		t.Setenv(key, "")
	}
	t.Setenv("DATABASE_URL", "  sqlite://orders.db ")

	cfg := Load()
	assert.Equal(t, "orders", cfg.ServiceName)
	assert.Equal(t, 8080, cfg.ServerPort)
	assert.Equal(t, "sqlite://orders.db", cfg.DatabaseURL)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, 10*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, ":8080", cfg.Addr())
	assert.NoError(t, cfg.Validate())
}

func TestLoad_FromEnv(t *testing.T) {
	t.Setenv("SERVICE_NAME", "orders-eu")
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("DATABASE_URL", "postgres://orders@localhost/orders")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("SHUTDOWN_TIMEOUT_SEC", "3")

	cfg := Load()
	assert.Equal(t, "orders-eu", cfg.ServiceName)
	assert.Equal(t, 9090, cfg.ServerPort)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, 3*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, ":9090", cfg.Addr())
}

func TestValidate(t *testing.T) {
	t.Parallel()

	assert.EqualError(t, Config{ServerPort: 8080}.Validate(), "missing required env DATABASE_URL")
	assert.Error(t, Config{ServerPort: 0, DatabaseURL: "x"}.Validate())
	assert.Error(t, Config{ServerPort: 70000, DatabaseURL: "x"}.Validate())
}

func TestEnvIntDefault_Malformed(t *testing.T) {
	t.Setenv("SERVER_PORT", "eighty")
	assert.Equal(t, 8080, EnvIntDefault("SERVER_PORT", 8080))
}

func TestLoadEnvFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("DATABASE_URL=file::memory:\nSERVER_PORT=7000\n"), 0o600))

	t.Setenv("DATABASE_URL", "")
	require.NoError(t, os.Unsetenv("DATABASE_URL"))
	t.Setenv("SERVER_PORT", "6000")

	LoadEnvFile(path)
	t.Cleanup(func() { _ = os.Unsetenv("DATABASE_URL") })

	cfg := Load()
	assert.Equal(t, "file::memory:", cfg.DatabaseURL)
	assert.Equal(t, 6000, cfg.ServerPort, "existing variables win over the file")

	LoadEnvFile(filepath.Join(t.TempDir(), "missing.env"))
}
