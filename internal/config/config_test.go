package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	require.Equal(t, "CarHubServer", cfg.JWTIssuer)
	require.Equal(t, "CarHubClient", cfg.JWTAudience)
	require.Equal(t, 99*time.Minute, cfg.JWTAccessExpiry)
	require.Equal(t, 5*time.Second, cfg.MaintenancePollInterval)
	require.Equal(t, 5*time.Second, cfg.MaintenanceStartDelay)
	require.Equal(t, "8080", cfg.Port)
	require.Empty(t, cfg.SentryDSN)
	require.Empty(t, cfg.Environment)
}

func TestLoadReadsEnvironment(t *testing.T) {
	t.Setenv("JWT_ACCESS_EXPIRY", "30m")
	t.Setenv("SENTRY_DSN", "https://key@sentry.example/1")
	t.Setenv("APP_ENV", "staging")

	cfg := Load()

	require.Equal(t, 30*time.Minute, cfg.JWTAccessExpiry)
	require.Equal(t, "https://key@sentry.example/1", cfg.SentryDSN)
	require.Equal(t, "staging", cfg.Environment)
}

func TestParseDurationFallsBack(t *testing.T) {
	t.Setenv("JWT_ACCESS_EXPIRY", "ninety-nine minutes")

	cfg := Load()
	require.Equal(t, 99*time.Minute, cfg.JWTAccessExpiry)
}

func TestDSN(t *testing.T) {
	cfg := &Config{
		DBHost:     "db",
		DBPort:     "5432",
		DBUser:     "carhub",
		DBPassword: "secret",
		DBName:     "carhub_db",
		DBSSLMode:  "disable",
	}
	require.Equal(t,
		"host=db user=carhub password=secret dbname=carhub_db port=5432 sslmode=disable TimeZone=UTC",
		cfg.DSN())
}
