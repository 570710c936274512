package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	// Server config
	assert.Equal(t, "8000", cfg.Server.Port)
	assert.Equal(t, "0.0.0.0", cfg.Server.Host)
	assert.Equal(t, int64(8<<20), cfg.Server.MaxBodyBytes)

	// Logging config
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.False(t, cfg.Logging.Development)

	// Rate limit config
	assert.Equal(t, 2.0, cfg.RateLimit.RequestsPerSecond)
	assert.Equal(t, 5, cfg.RateLimit.Burst)
	assert.True(t, cfg.RateLimit.Enabled)
	assert.False(t, cfg.RateLimit.Global)

	// Render config
	assert.Equal(t, 1400, cfg.Render.TargetWidth)
	assert.Equal(t, 24, cfg.Render.MaxZoom)
	assert.Equal(t, 6, cfg.Render.IconThreshold)
	assert.Equal(t, "", cfg.Render.IconDir)
	assert.Equal(t, int64(4), cfg.Render.MaxConcurrency)
	assert.Equal(t, int64(16<<20), cfg.Render.MaxCanvasPixels)

	// Attachment config
	assert.Equal(t, int64(4<<20), cfg.Attachment.MaxBytes)
	assert.Equal(t, 10*time.Second, cfg.Attachment.Timeout)
	assert.Equal(t, 2, cfg.Attachment.MaxRetries)
}

func TestLoadWithEnvironmentVariables(t *testing.T) {
	envVars := map[string]string{
		"PORT":                     "9000",
		"HOST":                     "127.0.0.1",
		"MAX_BODY_BYTES":           "1024",
		"LOG_LEVEL":                "debug",
		"LOG_DEV":                  "true",
		"RATE_LIMIT_RPS":           "0.5",
		"RATE_LIMIT_BURST":         "1",
		"RATE_LIMIT_ENABLED":       "false",
		"RATE_LIMIT_GLOBAL":        "true",
		"RENDER_TARGET_WIDTH":      "800",
		"RENDER_MAX_ZOOM":          "16",
		"RENDER_ICON_THRESHOLD":    "8",
		"ICON_DIR":                 "/srv/img",
		"RENDER_MAX_CONCURRENCY":   "1",
		"RENDER_MAX_CANVAS_PIXELS": "1000",
		"MAX_ATTACHMENT_BYTES":     "2048",
		"ATTACHMENT_TIMEOUT":       "3s",
		"ATTACHMENT_RETRIES":       "0",
	}
	for key, value := range envVars {
		t.Setenv(key, value)
	}

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9000", cfg.Server.Port)
	assert.Equal(t, "127.0.0.1", cfg.Server.Host)
	assert.Equal(t, int64(1024), cfg.Server.MaxBodyBytes)

	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.True(t, cfg.Logging.Development)

	assert.Equal(t, 0.5, cfg.RateLimit.RequestsPerSecond)
	assert.Equal(t, 1, cfg.RateLimit.Burst)
	assert.False(t, cfg.RateLimit.Enabled)
	assert.True(t, cfg.RateLimit.Global)

	assert.Equal(t, 800, cfg.Render.TargetWidth)
	assert.Equal(t, 16, cfg.Render.MaxZoom)
	assert.Equal(t, 8, cfg.Render.IconThreshold)
	assert.Equal(t, "/srv/img", cfg.Render.IconDir)
	assert.Equal(t, int64(1), cfg.Render.MaxConcurrency)
	assert.Equal(t, int64(1000), cfg.Render.MaxCanvasPixels)

	assert.Equal(t, int64(2048), cfg.Attachment.MaxBytes)
	assert.Equal(t, 3*time.Second, cfg.Attachment.Timeout)
	assert.Equal(t, 0, cfg.Attachment.MaxRetries)
}

func TestLoadInvalidValue(t *testing.T) {
	t.Setenv("RENDER_MAX_ZOOM", "lots")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load config")

	// LoadOrDefault falls back instead of failing.
	cfg := LoadOrDefault()
	assert.Equal(t, 24, cfg.Render.MaxZoom)
}
