package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfig_Defaults(t *testing.T) {
	t.Setenv("STORE_DRIVER", "memory")

	cfg, err := NewConfig()
	require.NoError(t, err)

	assert.Equal(t, EnvLocal, cfg.App.Env)
	assert.True(t, cfg.IsLocal())
	assert.False(t, cfg.IsNotLocal())
	assert.Equal(t, "en", cfg.App.Locale)
	assert.Equal(t, 30*time.Second, cfg.Store.Timeout)
	assert.True(t, cfg.Cache.Enabled)
	assert.Equal(t, 256, cfg.Cache.BoardsSize)
	assert.Equal(t, "permissive", cfg.Roster.ReassignPolicy)
	assert.Equal(t, []ConfigBasicClient{{Username: "roster", Password: "roster"}}, cfg.Auth.BasicClients)
	assert.Equal(t, []string{"*"}, cfg.HTTP.CorsAllowOrigins)
	assert.Equal(t, 20.0, cfg.HTTP.RateLimitRPS)
	assert.Equal(t, 40, cfg.HTTP.RateLimitBurst)
}

func TestNewConfig_Overrides(t *testing.T) {
	t.Setenv("APP_ENV", "Production")
	t.Setenv("STORE_DRIVER", "REST")
	t.Setenv("STORE_URL", "https://console.example.com/api")
	t.Setenv("STORE_TIMEOUT", "5s")
	t.Setenv("AUTH_BASIC_CLIENTS", "admin:secret, ops:pa:ss ,broken")
	t.Setenv("ROSTER_REASSIGN_POLICY", "Strict")

	cfg, err := NewConfig()
	require.NoError(t, err)

	assert.Equal(t, EnvProduction, cfg.App.Env)
	assert.True(t, cfg.IsNotLocal())
	assert.Equal(t, StoreDriverRest, cfg.Store.Driver)
	assert.Equal(t, 5*time.Second, cfg.Store.Timeout)
	assert.Equal(t, "strict", cfg.Roster.ReassignPolicy)
	assert.Equal(t, []ConfigBasicClient{
		{Username: "admin", Password: "secret"},
		{Username: "ops", Password: "pa:ss"},
	}, cfg.Auth.BasicClients)
}

func TestNewConfig_Invalid(t *testing.T) {
	cases := []struct {
		name string
		env  map[string]string
	}{
		{name: "rest without url", env: map[string]string{"STORE_DRIVER": "rest"}},
		{name: "unknown driver", env: map[string]string{"STORE_DRIVER": "postgres"}},
		{name: "rabbitmq without url", env: map[string]string{"STORE_DRIVER": "memory", "RABBITMQ_ENABLED": "true"}},
		{name: "unknown policy", env: map[string]string{"STORE_DRIVER": "memory", "ROSTER_REASSIGN_POLICY": "lenient"}},
		{name: "negative rate limit", env: map[string]string{"STORE_DRIVER": "memory", "HTTP_RATE_LIMIT_RPS": "-1"}},
		{name: "rate limit without burst", env: map[string]string{"STORE_DRIVER": "memory", "HTTP_RATE_LIMIT_BURST": "0"}},
		{name: "zero cache size", env: map[string]string{"STORE_DRIVER": "memory", "CACHE_BOARDS_SIZE": "0"}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			for key, value := range tc.env {
				t.Setenv(key, value)
			}
			_, err := NewConfig()
			assert.Error(t, err)
		})
	}
}

func TestConfig_LocationFallsBackToUTC(t *testing.T) {
	cfg := &Config{}
	cfg.App.Timezone = "Mars/Olympus"
	assert.Equal(t, time.UTC, cfg.Location())

	cfg.App.Timezone = "Europe/Moscow"
	assert.Equal(t, "Europe/Moscow", cfg.Location().String())
}
