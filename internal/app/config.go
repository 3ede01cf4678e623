package app

import (
	"os"
	"strconv"
)

type Config struct {
	Env  string
	Port string

	DatabaseDSN string

	JWTSecret string

	SMTPHost string
	SMTPPort string
	SMTPFrom string
	// ShopEmail receives operational digests (pending-order reminders).
	ShopEmail string

	UploadDir string

	// RateLimitPerMinute caps requests per client IP; 0 disables the limiter.
	RateLimitPerMinute int
}

func getEnv(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

func getEnvInt(k string, d int) int {
	if v := os.Getenv(k); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return d
}

func LoadConfig() Config {
	return Config{
		Env:                getEnv("APP_ENV", "dev"),
		Port:               getEnv("APP_PORT", "8080"),
		DatabaseDSN:        getEnv("DB_DSN", ""),
		JWTSecret:          getEnv("JWT_SECRET", ""),
		SMTPHost:           getEnv("SMTP_HOST", "localhost"),
		SMTPPort:           getEnv("SMTP_PORT", "1025"),
		SMTPFrom:           getEnv("SMTP_FROM", "noreply@localhost"),
		ShopEmail:          getEnv("SHOP_EMAIL", ""),
		UploadDir:          getEnv("UPLOAD_DIR", "./upload"),
		RateLimitPerMinute: getEnvInt("RATE_LIMIT_PER_MINUTE", 100),
	}
}
