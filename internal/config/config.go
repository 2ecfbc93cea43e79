package config

import (
	"os"
	"time"
)

type Config struct {
	// Database
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	// JWT
	JWTSecret       string
	JWTIssuer       string
	JWTAudience     string
	JWTAccessExpiry time.Duration

	// Google OAuth
	GoogleClientID     string
	GoogleClientSecret string
	GoogleRedirectURL  string
	GoogleTimeout      time.Duration

	// Maintenance
	MaintenancePollInterval time.Duration
	MaintenanceStartDelay   time.Duration

	// Server
	Port        string
	CORSOrigins string

	// Observability
	SentryDSN   string
	Environment string
}

func Load() *Config {
	return &Config{
		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "postgres"),
		DBPassword: getEnv("DB_PASSWORD", ""),
		DBName:     getEnv("DB_NAME", "carhub_db"),
		DBSSLMode:  getEnv("DB_SSLMODE", "disable"),

		JWTSecret:       getEnv("JWT_SECRET", ""),
		JWTIssuer:       getEnv("JWT_ISSUER", "CarHubServer"),
		JWTAudience:     getEnv("JWT_AUDIENCE", "CarHubClient"),
		JWTAccessExpiry: parseDuration(getEnv("JWT_ACCESS_EXPIRY", "99m"), 99*time.Minute),

		GoogleClientID:     getEnv("GOOGLE_CLIENT_ID", ""),
		GoogleClientSecret: getEnv("GOOGLE_CLIENT_SECRET", ""),
		GoogleRedirectURL:  getEnv("GOOGLE_REDIRECT_URL", ""),
		GoogleTimeout:      parseDuration(getEnv("GOOGLE_TIMEOUT", "10s"), 10*time.Second),

		MaintenancePollInterval: parseDuration(getEnv("MAINTENANCE_POLL_INTERVAL", "5s"), 5*time.Second),
		MaintenanceStartDelay:   parseDuration(getEnv("MAINTENANCE_START_DELAY", "5s"), 5*time.Second),

		Port:        getEnv("PORT", "8080"),
		CORSOrigins: getEnv("CORS_ORIGINS", "*"),

		SentryDSN:   getEnv("SENTRY_DSN", ""),
		Environment: getEnv("APP_ENV", ""),
	}
}

func (c *Config) DSN() string {
	return "host=" + c.DBHost +
		" user=" + c.DBUser +
		" password=" + c.DBPassword +
		" dbname=" + c.DBName +
		" port=" + c.DBPort +
		" sslmode=" + c.DBSSLMode +
		" TimeZone=UTC"
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func parseDuration(s string, fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(s)
	if err != nil {
		return fallback
	}
	return d
}
