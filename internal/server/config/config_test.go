package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("AWS_REGION", "eu-west-1")
	t.Setenv("CORS_ALLOWED_ORIGIN", "http://localhost:3000")
}

func TestLoad_Defaults(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.ServerAddr)
	assert.Equal(t, "users", cfg.UsersTable)
	assert.Equal(t, 2*time.Second, cfg.DurableTimeout)
	assert.Equal(t, "test-secret", cfg.JWTSecret)
	assert.Empty(t, cfg.DDBBaseEndpoint)
}

func TestLoad_Overrides(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("SERVER_ADDR", ":9090")
	t.Setenv("DDB_TABLE", "talenthub-users")
	t.Setenv("DDB_BASE_ENDPOINT", "http://127.0.0.1:8000")
	t.Setenv("DURABLE_TIMEOUT", "500ms")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.ServerAddr)
	assert.Equal(t, "talenthub-users", cfg.UsersTable)
	assert.Equal(t, "http://127.0.0.1:8000", cfg.DDBBaseEndpoint)
	assert.Equal(t, 500*time.Millisecond, cfg.DurableTimeout)
}

func TestLoad_MissingSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")
	t.Setenv("AWS_REGION", "eu-west-1")
	t.Setenv("CORS_ALLOWED_ORIGIN", "http://localhost:3000")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "JWT_SECRET")
}

func TestLoad_ReportsAllMissing(t *testing.T) {
	t.Setenv("JWT_SECRET", "")
	t.Setenv("AWS_REGION", "")
	t.Setenv("CORS_ALLOWED_ORIGIN", "")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "JWT_SECRET")
	assert.Contains(t, err.Error(), "AWS_REGION")
	assert.Contains(t, err.Error(), "CORS_ALLOWED_ORIGIN")
}
