package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestApplyDefaults(t *testing.T) {
	var cfg Config
	cfg.applyDefaults()

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, 15*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, 15*time.Second, cfg.Server.WriteTimeout)
	assert.Equal(t, "disable", cfg.Database.SSLMode)
	assert.Equal(t, 24, cfg.JWT.ExpiryHours)
	assert.Equal(t, float64(50), cfg.RateLimit.RequestsPerSecond)
	assert.Equal(t, 100, cfg.RateLimit.Burst)
	assert.Equal(t, 15*time.Minute, cfg.Reminder.Interval)
}

func TestApplyDefaultsKeepsExplicitValues(t *testing.T) {
	cfg := Config{}
	cfg.Server.Port = 9090
	cfg.Database.SSLMode = "require"
	cfg.applyDefaults()

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "require", cfg.Database.SSLMode)
}
