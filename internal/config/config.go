package config

import (
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port        string
	Env         string
	DatabaseURL string

	JWTSecret     string
	SessionExpiry time.Duration

	Identity IdentityConfig

	AllowedOrigins []string
}

type IdentityConfig struct {
	URL        string
	ServiceKey string
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	sessionExpiry, err := time.ParseDuration(getEnv("SESSION_EXPIRY", "168h"))
	if err != nil {
		sessionExpiry = 168 * time.Hour
	}

	return &Config{
		Port:        getEnv("PORT", "8080"),
		Env:         getEnv("ENV", "development"),
		DatabaseURL: getEnv("DATABASE_URL", ""),

		JWTSecret:     getEnvOrPanic("JWT_SECRET"),
		SessionExpiry: sessionExpiry,

		Identity: IdentityConfig{
			URL:        getEnv("AUTH_URL", "http://localhost:9999"),
			ServiceKey: getEnvOrPanic("AUTH_SERVICE_KEY"),
		},

		AllowedOrigins: splitEnv("ALLOWED_ORIGINS", "http://localhost:3000,http://localhost:5173"),
	}, nil
}

func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvOrPanic(key string) string {
	value, ok := os.LookupEnv(key)
	if !ok || value == "" {
		panic("required environment variable not set: " + key)
	}
	return value
}

func splitEnv(key, fallback string) []string {
	raw := getEnv(key, fallback)
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
