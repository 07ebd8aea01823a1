package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDefaults(t *testing.T) {
	unsetAll(t, "ENV", "STORE_DRIVER", "DB_DSN", "GEMINI_API_KEY", "API_KEY", "GEMINI_MODEL", "SESSION_IDLE_TIMEOUT")

	cfg, err := Parse()
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.Environment)
	assert.Equal(t, "gemini-2.5-flash", cfg.Gemini.Model)
	assert.Equal(t, 12*time.Hour, cfg.SessionIdleTimeout)
	assert.False(t, cfg.StoreConfigured())
	assert.Empty(t, cfg.GeminiAPIKey())
}

func TestStoreConfigured(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
		want bool
	}{
		{name: "dsn implies postgres", env: map[string]string{"DB_DSN": "postgres://x"}, want: true},
		{name: "postgres without dsn", env: map[string]string{"STORE_DRIVER": "postgres"}, want: false},
		{name: "redis", env: map[string]string{"STORE_DRIVER": "redis", "REDIS_ADDR": "localhost:6379"}, want: true},
		{name: "redis without addr", env: map[string]string{"STORE_DRIVER": "Redis"}, want: false},
		{name: "firestore", env: map[string]string{"STORE_DRIVER": "firestore", "FIREBASE_PROJECT_ID": "kvk"}, want: true},
		{name: "memory", env: map[string]string{"STORE_DRIVER": "memory"}, want: true},
		{name: "nothing", env: map[string]string{}, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			unsetAll(t, "STORE_DRIVER", "DB_DSN", "REDIS_ADDR", "FIREBASE_PROJECT_ID")
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			cfg, err := Parse()
			require.NoError(t, err)
			assert.Equal(t, tt.want, cfg.StoreConfigured())
		})
	}
}

func TestParseRejectsUnknownDriver(t *testing.T) {
	t.Setenv("STORE_DRIVER", "mongo")

	_, err := Parse()
	assert.Error(t, err)
}

func TestGeminiAPIKeyFallback(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "")
	t.Setenv("API_KEY", "legacy")

	cfg, err := Parse()
	require.NoError(t, err)
	assert.Equal(t, "legacy", cfg.GeminiAPIKey())

	t.Setenv("GEMINI_API_KEY", "primary")
	cfg, err = Parse()
	require.NoError(t, err)
	assert.Equal(t, "primary", cfg.GeminiAPIKey())
}

// unsetAll удаляет переменные на время теста; t.Setenv восстановит их после
func unsetAll(t *testing.T, keys ...string) {
	t.Helper()
	for _, key := range keys {
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}
}
