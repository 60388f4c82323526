package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("SLOTS_PER_DAY", "")
	t.Setenv("BOOKING_CONFLICT_RULE", "")
	t.Setenv("REDIS_ADDR", "")
	t.Setenv("S3_BUCKET", "")
	t.Setenv("MP_ACCESS_TOKEN", "")

	cfg := Load()

	assert.Equal(t, 10, cfg.SlotsPerDay)
	assert.Equal(t, "start_in_range", cfg.ConflictRule)
	assert.Equal(t, 5*time.Second, cfg.BookingLockTTL)
	assert.False(t, cfg.RedisEnabled())
	assert.False(t, cfg.ExportEnabled())
	assert.False(t, cfg.PaymentsEnabled())
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("SLOTS_PER_DAY", "16")
	t.Setenv("BOOKING_CONFLICT_RULE", "overlap")
	t.Setenv("BOOKING_LOCK_TTL", "2s")
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("REDIS_ADDR", "localhost:6379")
	t.Setenv("CORS_ORIGINS", "https://app.example.com, ,https://admin.example.com")

	cfg := Load()

	assert.Equal(t, 16, cfg.SlotsPerDay)
	assert.Equal(t, "overlap", cfg.ConflictRule)
	assert.Equal(t, 2*time.Second, cfg.BookingLockTTL)
	assert.Equal(t, ":9090", cfg.Addr())
	assert.True(t, cfg.RedisEnabled())
	assert.Equal(t, []string{"https://app.example.com", "https://admin.example.com"}, cfg.CORSOrigins)
}

func TestLoadIgnoresMalformedNumbers(t *testing.T) {
	t.Setenv("SLOTS_PER_DAY", "ten")
	t.Setenv("BOOKING_LOCK_TTL", "soon")

	cfg := Load()

	assert.Equal(t, 10, cfg.SlotsPerDay)
	assert.Equal(t, 5*time.Second, cfg.BookingLockTTL)
}
