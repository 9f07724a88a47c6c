package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// clearEnv unsets every variable Config reads for the duration of the test.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"GOLDEN_PORT", "GOLDEN_LOG_LEVEL", "GOLDEN_LOG_FORMAT", "GOLDEN_STORE", "GOLDEN_TABLE",
		"GOLDEN_DB_PATH", "DATABASE_URL", "GOLDEN_AUTO_MIGRATE", "SUPABASE_URL", "SUPABASE_ANON_KEY",
		"OPENAI_API_KEY", "OPENAI_BASE_URL", "OPENAI_MODEL", "RANDOMUSER_URL", "GOLDEN_HTTP_TIMEOUT",
		"GOLDEN_FEED_INTERVAL", "GOLDEN_BOARD_TTL",
	} {
		t.Setenv(k, "")
		require.NoError(t, os.Unsetenv(k))
	}
}

func noEnvFile(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "missing.env")
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load(noEnvFile(t))
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, ":8080", cfg.Addr())
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "console", cfg.LogFormat)
	assert.Equal(t, StoreSQLite, cfg.Store)
	assert.Equal(t, "Comments", cfg.Table)
	assert.False(t, cfg.AutoMigrate)
	assert.Equal(t, "https://api.openai.com/v1", cfg.OpenAIBaseURL)
	assert.Equal(t, "gpt-3.5-turbo", cfg.OpenAIModel)
	assert.Equal(t, "https://randomuser.me/api/", cfg.RandomUserURL)
	assert.Equal(t, 15*time.Second, cfg.HTTPTimeout)
	assert.Equal(t, 5*time.Second, cfg.FeedInterval)
	assert.Equal(t, 30*time.Minute, cfg.BoardTTL)
	assert.True(t, cfg.StoreConfigured())
}

func TestLoadFromEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("GOLDEN_PORT", "9090")
	t.Setenv("GOLDEN_STORE", " REST ")
	t.Setenv("SUPABASE_URL", "https://abc.supabase.co")
	t.Setenv("SUPABASE_ANON_KEY", "anon")
	t.Setenv("GOLDEN_FEED_INTERVAL", "2s")

	cfg, err := Load(noEnvFile(t))
	require.NoError(t, err)
	assert.Equal(t, 9090, cfg.Port)
	assert.Equal(t, StoreREST, cfg.Store)
	assert.Equal(t, 2*time.Second, cfg.FeedInterval)
	assert.True(t, cfg.StoreConfigured())
}

func TestLoadEnvFile(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("GOLDEN_PORT=7070\nOPENAI_API_KEY=sk-file\n"), 0o600))
	t.Setenv("OPENAI_API_KEY", "sk-env")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 7070, cfg.Port)
	assert.Equal(t, "sk-env", cfg.OpenAIKey)
}

func TestLoadInvalid(t *testing.T) {
	tests := []struct {
		name string
		key  string
		val  string
	}{
		{"unknown store", "GOLDEN_STORE", "mongo"},
		{"bad port", "GOLDEN_PORT", "http"},
		{"port range", "GOLDEN_PORT", "70000"},
		{"bad duration", "GOLDEN_FEED_INTERVAL", "soon"},
		{"zero interval", "GOLDEN_FEED_INTERVAL", "0s"},
		{"negative ttl", "GOLDEN_BOARD_TTL", "-1m"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(tt.key, tt.val)
			_, err := Load(noEnvFile(t))
			assert.Error(t, err)
		})
	}
}

func TestStoreConfigured(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
		want bool
	}{
		{"sqlite", Config{Store: StoreSQLite}, true},
		{"postgres without dsn", Config{Store: StorePostgres}, false},
		{"postgres with dsn", Config{Store: StorePostgres, DatabaseURL: "postgres://localhost/golden"}, true},
		{"rest without key", Config{Store: StoreREST, SupabaseURL: "https://x.supabase.co"}, false},
		{"rest complete", Config{Store: StoreREST, SupabaseURL: "https://x.supabase.co", SupabaseKey: "k"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.cfg.StoreConfigured())
		})
	}
}
