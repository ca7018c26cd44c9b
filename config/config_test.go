package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"PORT", "GO_ENV", "STORE_BACKEND", "JWT_EXPIRY", "REPORT_DAILY_LIMIT", "CORS_ORIGINS", "SEED_SAMPLE_DATA"} {
		t.Setenv(key, "")
	}
	cfg := Load()

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "memory", cfg.StoreBackend)
	assert.Equal(t, 72*time.Hour, cfg.JWTExpiry)
	assert.Equal(t, 10, cfg.ReportDailyLimit)
	assert.True(t, cfg.SeedSampleData)
	assert.Equal(t, []string{"http://localhost:3000"}, cfg.CORSOrigins)
	assert.False(t, cfg.IsProduction())
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("GO_ENV", "production")
	t.Setenv("DOMAIN", "reports.example.org")
	t.Setenv("STORE_BACKEND", "Mongo")
	t.Setenv("JWT_EXPIRY", "90m")
	t.Setenv("REPORT_DAILY_LIMIT", "-3")
	t.Setenv("CORS_ORIGINS", "https://a.example, ,https://b.example")
	t.Setenv("SEED_SAMPLE_DATA", "false")
	t.Setenv("FLEET_RESERVATION_TTL", "soon")

	cfg := Load()
	assert.True(t, cfg.IsProduction())
	assert.Empty(t, cfg.CookieDomain())
	assert.Equal(t, "mongo", cfg.StoreBackend)
	assert.Equal(t, 90*time.Minute, cfg.JWTExpiry)
	assert.Equal(t, 10, cfg.ReportDailyLimit)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORSOrigins)
	assert.False(t, cfg.SeedSampleData)
	assert.Equal(t, 72*time.Hour, cfg.FleetReservationTTL)
}

func TestNewLogger(t *testing.T) {
	logger, err := NewLogger(&Config{LogLevel: "debug"})
	require.NoError(t, err)
	assert.NotNil(t, logger)

	_, err = NewLogger(&Config{LogLevel: "loud"})
	assert.Error(t, err)
}
