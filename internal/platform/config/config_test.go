package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{"APP_PORT", "DATABASE_URL", "JWT_SECRET", "ADMIN_EMAIL",
		"ADMIN_PASSWORD_HASH", "LOG_LEVEL", "APP_DEV", "ATOMIC_ORDERS"} {
		t.Setenv(key, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)
	assert.Equal(t, DefaultPort, cfg.Port)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.False(t, cfg.AtomicOrders)
	assert.Error(t, cfg.ValidateAPI())
}

func TestLoad_FromEnvFile(t *testing.T) {
	clearEnv(t)
	// godotenv does not override variables that are already set, even when empty.
	for _, key := range []string{"APP_PORT", "JWT_SECRET", "ADMIN_EMAIL", "ADMIN_PASSWORD_HASH", "ATOMIC_ORDERS"} {
		require.NoError(t, os.Unsetenv(key))
	}
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte(
		"APP_PORT=9090\nJWT_SECRET=k\nADMIN_EMAIL=a@b.c\nADMIN_PASSWORD_HASH=h\nATOMIC_ORDERS=true\n"), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "9090", cfg.Port)
	assert.True(t, cfg.AtomicOrders)
	assert.NoError(t, cfg.ValidateAPI())
}

func TestLoad_InvalidBool(t *testing.T) {
	clearEnv(t)
	t.Setenv("ATOMIC_ORDERS", "maybe")
	_, err := Load("")
	assert.Error(t, err)
}
