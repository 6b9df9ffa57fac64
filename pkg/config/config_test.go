package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig(t *testing.T) {
	t.Setenv("SERVER_PORT", "8080")
	t.Setenv("STORE_BACKEND", "postgres")
	t.Setenv("DB_HOST", "localhost")
	t.Setenv("DB_PORT", "5432")
	t.Setenv("DB_USER", "testuser")
	t.Setenv("DB_PASSWORD", "testpass")
	t.Setenv("DB_NAME", "testdb")
	t.Setenv("REDIS_HOST", "localhost")
	t.Setenv("REDIS_PORT", "6379")
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("JWT_TTL", "2h")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}

	assert.NotNil(t, cfg)
	assert.Equal(t, "8080", cfg.ServerPort)
	assert.Equal(t, "postgres", cfg.StoreBackend)
	assert.Equal(t, "localhost", cfg.DBHost)
	assert.Equal(t, "5432", cfg.DBPort)
	assert.Equal(t, "testuser", cfg.DBUser)
	assert.Equal(t, "testpass", cfg.DBPassword)
	assert.Equal(t, "testdb", cfg.DBName)
	assert.Equal(t, "localhost:6379", cfg.RedisAddr())
	assert.Equal(t, "test-secret", cfg.JWTSecret)
	assert.Equal(t, 2*time.Hour, cfg.JWTTTL)
	assert.Contains(t, cfg.PostgresDSN(), "dbname=testdb")
}

func TestLoadConfig_Defaults(t *testing.T) {
	os.Unsetenv("SERVER_PORT")
	os.Unsetenv("STORE_BACKEND")
	os.Unsetenv("GEMINI_MODEL")
	os.Unsetenv("CONFIG_FILE")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}

	assert.Equal(t, "8080", cfg.ServerPort)
	assert.Equal(t, "redis", cfg.StoreBackend)
	assert.Equal(t, "gemini-2.5-flash", cfg.GeminiModel)
	assert.Equal(t, 20, cfg.AuthRateLimit)
	assert.NotEmpty(t, cfg.CORSOrigins)
}

func TestLoadConfig_UnknownBackend(t *testing.T) {
	t.Setenv("STORE_BACKEND", "mongo")

	_, err := Load()
	assert.Error(t, err)
}

func TestLoadConfig_YAMLOverlay(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := "serverPort: \"9001\"\nstoreBackend: badger\nbadgerPath: /tmp/ct\ngeminiTimeout: 5s\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	t.Setenv("CONFIG_FILE", path)
	os.Unsetenv("SERVER_PORT")
	os.Unsetenv("STORE_BACKEND")
	os.Unsetenv("BADGER_PATH")
	os.Unsetenv("GEMINI_TIMEOUT")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9001", cfg.ServerPort)
	assert.Equal(t, "badger", cfg.StoreBackend)
	assert.Equal(t, "/tmp/ct", cfg.BadgerPath)
	assert.Equal(t, 5*time.Second, cfg.GeminiTimeout)
}

func TestLoadConfig_EnvWinsOverFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("serverPort: \"9001\"\n"), 0o600))

	t.Setenv("CONFIG_FILE", path)
	t.Setenv("SERVER_PORT", "7000")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "7000", cfg.ServerPort)
}

func TestLoadConfig_BadDurationsFallBack(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := "jwtTTL: abc\ngeminiTimeout: 3s\nauthRateWindow: \"0s\"\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	t.Setenv("CONFIG_FILE", path)
	t.Setenv("STORE_BACKEND", "")
	t.Setenv("JWT_TTL", "")
	t.Setenv("GEMINI_TIMEOUT", "soon")
	t.Setenv("AUTH_RATE_WINDOW", "")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 24*time.Hour, cfg.JWTTTL)
	assert.Equal(t, 3*time.Second, cfg.GeminiTimeout)
	assert.Equal(t, time.Minute, cfg.AuthRateWindow)
}
