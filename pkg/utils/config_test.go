package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadAppConfig_Defaults(t *testing.T) {
	for _, key := range []string{
		"XNEWS_ADDR", "XNEWS_SECRET_KEY", "XNEWS_CSRF_TTL",
		"XNEWS_SUBMIT_RATE", "XNEWS_SUBMIT_BURST", "XNEWS_LOG_LEVEL", "XNEWS_LOG_FORMAT",
	} {
		t.Setenv(key, "")
	}
	t.Setenv("XNEWS_DB_PATH", "/tmp/x.db")

	cfg := LoadAppConfig()

	assert.Equal(t, ":8080", cfg.Addr)
	assert.Equal(t, "/tmp/x.db", cfg.DBPath)
	assert.Equal(t, DevSecretKey, cfg.SecretKey)
	assert.Equal(t, time.Hour, cfg.CSRFTTL)
	assert.Equal(t, 1.0, cfg.SubmitRate)
	assert.Equal(t, 10, cfg.SubmitBurst)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.NoError(t, cfg.Validate())
}

func TestLoadAppConfig_Env(t *testing.T) {
	t.Setenv("XNEWS_ADDR", "127.0.0.1:9000")
	t.Setenv("XNEWS_SECRET_KEY", "Vitaly")
	t.Setenv("XNEWS_CSRF_TTL", "15m")
	t.Setenv("XNEWS_SUBMIT_RATE", "0.5")
	t.Setenv("XNEWS_SUBMIT_BURST", "3")

	cfg := LoadAppConfig()

	assert.Equal(t, "127.0.0.1:9000", cfg.Addr)
	assert.Equal(t, "Vitaly", cfg.SecretKey)
	assert.Equal(t, 15*time.Minute, cfg.CSRFTTL)
	assert.Equal(t, 0.5, cfg.SubmitRate)
	assert.Equal(t, 3, cfg.SubmitBurst)
}

func TestLoadAppConfig_InvalidFallsBack(t *testing.T) {
	t.Setenv("XNEWS_CSRF_TTL", "soon")
	t.Setenv("XNEWS_SUBMIT_RATE", "-1")
	t.Setenv("XNEWS_SUBMIT_BURST", "many")

	cfg := LoadAppConfig()

	assert.Equal(t, time.Hour, cfg.CSRFTTL)
	assert.Equal(t, 1.0, cfg.SubmitRate)
	assert.Equal(t, 10, cfg.SubmitBurst)
}

func TestAppConfig_Validate(t *testing.T) {
	valid := AppConfig{
		Addr: ":8080", DBPath: "x.db", SecretKey: "k",
		CSRFTTL: time.Minute, SubmitRate: 1, SubmitBurst: 1,
	}
	assert.NoError(t, valid.Validate())

	tests := []struct {
		name   string
		mutate func(*AppConfig)
	}{
		{"empty addr", func(c *AppConfig) { c.Addr = " " }},
		{"empty db path", func(c *AppConfig) { c.DBPath = "" }},
		{"empty secret", func(c *AppConfig) { c.SecretKey = "" }},
		{"zero ttl", func(c *AppConfig) { c.CSRFTTL = 0 }},
		{"zero burst", func(c *AppConfig) { c.SubmitBurst = 0 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid
			tt.mutate(&cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}
