package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadFile_Defaults(t *testing.T) {
	cfg, err := LoadFile(writeConfig(t, ""))
	require.NoError(t, err)

	assert.Equal(t, "sooquk-dashboard", cfg.App.Name)
	assert.Equal(t, "development", cfg.App.Env)
	assert.Equal(t, "en", cfg.App.Locale)
	assert.Equal(t, "http://localhost:8080/api", cfg.API.BaseURL)
	assert.Equal(t, 30*time.Second, cfg.API.Timeout)
	assert.Equal(t, "memory", cfg.Cache.Driver)
	assert.Equal(t, 1000, cfg.Cache.MaxEntries)
	assert.Equal(t, 3, cfg.Query.RetryAttempts)
	assert.Equal(t, time.Minute, cfg.Query.DefaultStaleTime)
	assert.Equal(t, "localhost:6379", cfg.Redis.Addr())
	assert.False(t, cfg.IsProduction())
}

func TestLoadFile_Values(t *testing.T) {
	path := writeConfig(t, `
[app]
locale = "ar"

[api]
base_url = "https://admin.example.com/api"
timeout = "5s"
rate_limit = 20

[cache]
driver = "tiered"
max_entries = 50

[query]
retry_attempts = 0
default_stale_time = "90s"

[query.stale_times]
orders = "30s"
cities = "1h"
`)
	cfg, err := LoadFile(path)
	require.NoError(t, err)

	assert.Equal(t, "ar", cfg.App.Locale)
	assert.Equal(t, "https://admin.example.com/api", cfg.API.BaseURL)
	assert.Equal(t, 5*time.Second, cfg.API.Timeout)
	assert.Equal(t, 20.0, cfg.API.RateLimit)
	assert.Equal(t, "tiered", cfg.Cache.Driver)
	assert.Equal(t, 50, cfg.Cache.MaxEntries)
	assert.Equal(t, 0, cfg.Query.RetryAttempts, "an explicit zero disables retries")
	assert.Equal(t, 90*time.Second, cfg.Query.DefaultStaleTime)
	assert.Equal(t, 30*time.Second, cfg.Query.StaleTimes["orders"])
	assert.Equal(t, time.Hour, cfg.Query.StaleTimes["cities"])
}

func TestLoadFile_EnvOverrides(t *testing.T) {
	t.Setenv("SOOQUK_API_BASE_URL", "http://stub:9000/api")
	t.Setenv("SOOQUK_CACHE_DRIVER", "redis")
	t.Setenv("SOOQUK_REDIS_PORT", "6380")

	cfg, err := LoadFile(writeConfig(t, `[api]
base_url = "http://ignored/api"`))
	require.NoError(t, err)

	assert.Equal(t, "http://stub:9000/api", cfg.API.BaseURL)
	assert.Equal(t, "redis", cfg.Cache.Driver)
	assert.Equal(t, 6380, cfg.Redis.Port)
}

func TestLoadFile_Validation(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{
			name: "relative base url",
			body: `[api]
base_url = "/api"`,
			want: "api.base_url",
		},
		{
			name: "unknown cache driver",
			body: `[cache]
driver = "memcached"`,
			want: "cache.driver",
		},
		{
			name: "bad stale time",
			body: `[query.stale_times]
orders = "soon"`,
			want: "query.stale_times.orders",
		},
		{
			name: "unsupported locale",
			body: `[app]
locale = "fr"`,
			want: "app.locale",
		},
		{
			name: "plain http in production",
			body: `[app]
env = "production"`,
			want: "https",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadFile(writeConfig(t, tt.body))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}
