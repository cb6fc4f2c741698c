package utils

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"xnews/pkg/database"
)

// DevSecretKey is only meant for local runs; the server warns when it is in use.
const DevSecretKey = "dev-secret-change-me"

type AppConfig struct {
	Addr      string
	DBPath    string
	SecretKey string

	// CSRFTTL bounds how long a rendered form stays submittable.
	CSRFTTL time.Duration

	// SubmitRate and SubmitBurst throttle form POSTs per client IP.
	SubmitRate  float64
	SubmitBurst int

	LogLevel  string
	LogFormat string
}

func LoadAppConfig() AppConfig {
	return AppConfig{
		Addr:        envOr("XNEWS_ADDR", ":8080"),
		DBPath:      database.DefaultConfig().Path,
		SecretKey:   envOr("XNEWS_SECRET_KEY", DevSecretKey),
		CSRFTTL:     envDuration("XNEWS_CSRF_TTL", time.Hour),
		SubmitRate:  envFloat("XNEWS_SUBMIT_RATE", 1),
		SubmitBurst: envInt("XNEWS_SUBMIT_BURST", 10),
		LogLevel:    envOr("XNEWS_LOG_LEVEL", "info"),
		LogFormat:   envOr("XNEWS_LOG_FORMAT", "json"),
	}
}

func (c AppConfig) Validate() error {
	if strings.TrimSpace(c.Addr) == "" {
		return fmt.Errorf("addr cannot be empty")
	}
	if strings.TrimSpace(c.DBPath) == "" {
		return fmt.Errorf("db path cannot be empty")
	}
	if c.SecretKey == "" {
		return fmt.Errorf("secret key cannot be empty")
	}
	if c.CSRFTTL <= 0 {
		return fmt.Errorf("csrf ttl must be positive")
	}
	if c.SubmitRate <= 0 || c.SubmitBurst <= 0 {
		return fmt.Errorf("submit rate and burst must be positive")
	}
	return nil
}

func envOr(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

// invalid values fall back to the default
func envDuration(key string, def time.Duration) time.Duration {
	d, err := time.ParseDuration(os.Getenv(key))
	if err != nil || d <= 0 {
		return def
	}
	return d
}

func envInt(key string, def int) int {
	n, err := strconv.Atoi(strings.TrimSpace(os.Getenv(key)))
	if err != nil || n <= 0 {
		return def
	}
	return n
}

func envFloat(key string, def float64) float64 {
	f, err := strconv.ParseFloat(strings.TrimSpace(os.Getenv(key)), 64)
	if err != nil || f <= 0 {
		return def
	}
	return f
}
