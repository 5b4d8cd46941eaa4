package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequired(t *testing.T) {
	t.Helper()
	t.Setenv("POSTGRES_USER", "app")
	t.Setenv("POSTGRES_PASSWORD", "p@ss/word")
	t.Setenv("POSTGRES_DB", "tripslot")
}

func TestNewDefaults(t *testing.T) {
	setRequired(t)

	cfg, err := New()
	require.NoError(t, err)

	assert.Equal(t, "localhost", cfg.Server.Host)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, []string{"*"}, cfg.Server.CORSOrigins)
	assert.Equal(t, 5432, cfg.Postgres.Port)
	assert.True(t, cfg.Postgres.AutoMigrate)
	assert.Equal(t, "localhost:6380", cfg.Redis.Addr)
	assert.Equal(t, 10, cfg.Limits.Bookings)
	assert.Equal(t, time.Minute, cfg.Limits.Window)
	assert.Equal(t, time.Hour, cfg.Jobs.Interval)
	assert.Equal(t, 168*time.Hour, cfg.Jobs.Grace)
	assert.Empty(t, cfg.SMTP.Host)
	assert.Empty(t, cfg.Tracing.Endpoint)
}

func TestNewOverrides(t *testing.T) {
	setRequired(t)
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("RATE_LIMIT_BOOKINGS", "3")
	t.Setenv("PROMO_SWEEP_INTERVAL", "15m")
	t.Setenv("OTEL_EXPORTER_OTLP_ENDPOINT", "collector:4317")
	t.Setenv("SMTP_HOST", "smtp.example.com")

	cfg, err := New()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, 3, cfg.Limits.Bookings)
	assert.Equal(t, 15*time.Minute, cfg.Jobs.Interval)
	assert.Equal(t, "collector:4317", cfg.Tracing.Endpoint)
	assert.Equal(t, "smtp.example.com", cfg.SMTP.Host)
}

func TestNewMissingRequired(t *testing.T) {
	for _, k := range []string{"POSTGRES_USER", "POSTGRES_PASSWORD", "POSTGRES_DB"} {
		t.Setenv(k, "")
		require.NoError(t, os.Unsetenv(k))
	}

	_, err := New()
	assert.Error(t, err)
}

func TestNewRejectsBadPort(t *testing.T) {
	setRequired(t)
	t.Setenv("SERVER_PORT", "70000")

	_, err := New()
	assert.Error(t, err)
}

func TestPostgresDSN(t *testing.T) {
	c := PostgresConfig{
		User:     "app",
		Password: "p@ss/word",
		Name:     "tripslot",
		Host:     "db",
		Port:     5432,
		SSLMode:  "disable",
	}

	assert.Equal(t, "postgres://app:p%40ss%2Fword@db:5432/tripslot?sslmode=disable", c.DSN())
}
