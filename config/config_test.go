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
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)

	assert.Equal(t, Default(), cfg)
	assert.Equal(t, "User", cfg.MongoCollection)
	assert.Equal(t, 5*time.Second, cfg.MongoOpTimeout)
}

func TestLoad_Environment(t *testing.T) {
	t.Setenv("MONGO_URI", "mongodb://db:27017")
	t.Setenv("MONGO_DATABASE", "tasks_test")
	t.Setenv("HTTP_ADDR", ":8080")
	t.Setenv("MONGO_OP_TIMEOUT", "2s")
	t.Setenv("LOG_LEVEL", "ERROR")

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)

	assert.Equal(t, "mongodb://db:27017", cfg.MongoURI)
	assert.Equal(t, "tasks_test", cfg.MongoDatabase)
	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.Equal(t, 2*time.Second, cfg.MongoOpTimeout)
	assert.Equal(t, "error", cfg.LogLevel)
}

func TestLoad_EnvFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.env")
	require.NoError(t, os.WriteFile(path, []byte("ACTIVITY_DB_PATH=/tmp/activity-test.db\n"), 0o600))
	t.Cleanup(func() { os.Unsetenv("ACTIVITY_DB_PATH") })

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "/tmp/activity-test.db", cfg.ActivityDBPath)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{"bad timeout", "MONGO_OP_TIMEOUT", "soon"},
		{"bad shutdown timeout", "SHUTDOWN_TIMEOUT", "10"},
		{"negative timeout", "MONGO_OP_TIMEOUT", "-1s"},
		{"bad log level", "LOG_LEVEL", "verbose"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)
			_, err := Load(filepath.Join(t.TempDir(), "missing.env"))
			assert.Error(t, err)
		})
	}
}
