package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	for _, key := range []string{
		"TELEGRAM_TOKEN", "ENV", "DB_DSN", "USERS_FILE", "PORTAL_BASE_URL",
		"PORTAL_LOGIN", "PORTAL_PASSWORD", "HTTP_TIMEOUT", "WEATHER_LAT",
		"WEATHER_LON", "TIMEZONE", "KEEPALIVE_INTERVAL",
	} {
		t.Setenv(key, "")
	}
}

func TestFromEnv_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := FromEnv()
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.Environment)
	assert.Equal(t, "data/users.yaml", cfg.UsersFile)
	assert.Equal(t, "https://sibsutis.ru", cfg.PortalBaseURL)
	assert.Equal(t, 15*time.Second, cfg.HTTPTimeout)
	assert.Equal(t, 30*time.Minute, cfg.KeepAliveInterval)
	assert.InDelta(t, 55.0344, cfg.WeatherLat, 1e-9)
	assert.False(t, cfg.UseDatabase())
	assert.Error(t, cfg.Validate())
}

func TestFromEnv_Overrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("TELEGRAM_TOKEN", "123:abc")
	t.Setenv("DB_DSN", "postgres://localhost/campus")
	t.Setenv("HTTP_TIMEOUT", "3s")
	t.Setenv("KEEPALIVE_INTERVAL", "0")
	t.Setenv("TIMEZONE", "UTC")
	t.Setenv("WEATHER_LON", "83.1")

	cfg, err := FromEnv()
	require.NoError(t, err)

	assert.NoError(t, cfg.Validate())
	assert.True(t, cfg.UseDatabase())
	assert.Equal(t, 3*time.Second, cfg.HTTPTimeout)
	assert.Zero(t, cfg.KeepAliveInterval)
	assert.Equal(t, time.UTC, cfg.Location)
	assert.InDelta(t, 83.1, cfg.WeatherLon, 1e-9)
}

func TestFromEnv_Invalid(t *testing.T) {
	tests := map[string]string{
		"HTTP_TIMEOUT":       "soon",
		"KEEPALIVE_INTERVAL": "-1m",
		"WEATHER_LAT":        "north",
		"TIMEZONE":           "Mars/Olympus",
	}

	for key, value := range tests {
		t.Run(key, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(key, value)

			_, err := FromEnv()
			assert.Error(t, err)
		})
	}
}
