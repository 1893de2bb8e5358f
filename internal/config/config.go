package config

import (
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
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
	JWTSecret        string
	JWTAccessExpiry  time.Duration
	JWTRefreshExpiry time.Duration

	// Google sign-in
	GoogleClientIDs string

	// Admin bootstrap
	AdminEmails string

	// Revalidation
	RedisURL          string
	RevalidateChannel string

	// Where PENDING users are sent to complete their profile.
	RegistrationPath string

	LogRetention time.Duration

	// Server
	Port        string
	CORSOrigins string
	AppEnv      string
	SentryDSN   string
}

func Load() *Config {
	// .env is optional; real environment variables win.
	_ = godotenv.Load()

	return &Config{
		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "postgres"),
		DBPassword: getEnv("DB_PASSWORD", ""),
		DBName:     getEnv("DB_NAME", "booking_admin"),
		DBSSLMode:  getEnv("DB_SSLMODE", "disable"),

		JWTSecret:        getEnv("JWT_SECRET", ""),
		JWTAccessExpiry:  parseDuration(getEnv("JWT_ACCESS_EXPIRY", "15m"), 15*time.Minute),
		JWTRefreshExpiry: parseDuration(getEnv("JWT_REFRESH_EXPIRY", "168h"), 168*time.Hour),

		GoogleClientIDs: getEnv("GOOGLE_CLIENT_IDS", ""),
		AdminEmails:     getEnv("ADMIN_EMAILS", ""),

		RedisURL:          getEnv("REDIS_URL", ""),
		RevalidateChannel: getEnv("REVALIDATE_CHANNEL", "booking-admin:revalidate"),

		RegistrationPath: getEnv("REGISTRATION_PATH", "/auth/register"),
		LogRetention:     parseDuration(getEnv("LOG_RETENTION", "720h"), 30*24*time.Hour),

		Port:        getEnv("PORT", "8080"),
		CORSOrigins: getEnv("CORS_ORIGINS", "*"),
		AppEnv:      getEnv("APP_ENV", "development"),
		SentryDSN:   getEnv("SENTRY_DSN", ""),
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

// GoogleAudiences returns the OAuth client IDs accepted as ID-token audience.
func (c *Config) GoogleAudiences() []string {
	return splitList(c.GoogleClientIDs)
}

// IsAdminEmail reports whether email is in the ADMIN_EMAILS bootstrap list.
func (c *Config) IsAdminEmail(email string) bool {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return false
	}
	for _, e := range splitList(c.AdminEmails) {
		if strings.ToLower(e) == email {
			return true
		}
	}
	return false
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
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
