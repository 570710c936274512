package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config holds all application configuration.
type Config struct {
	Server     ServerConfig
	Logging    LogConfig
	RateLimit  RateLimitConfig
	Render     RenderConfig
	Attachment AttachmentConfig
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Port         string `envconfig:"PORT" default:"8000"`
	Host         string `envconfig:"HOST" default:"0.0.0.0"`
	MaxBodyBytes int64  `envconfig:"MAX_BODY_BYTES" default:"8388608"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level       string `envconfig:"LOG_LEVEL" default:"info"`
	Development bool   `envconfig:"LOG_DEV" default:"false"`
}

// RateLimitConfig holds rate limiting configuration. Limits are per client
// IP unless Global is set, in which case one bucket covers every caller.
type RateLimitConfig struct {
	RequestsPerSecond float64 `envconfig:"RATE_LIMIT_RPS" default:"2"`
	Burst             int     `envconfig:"RATE_LIMIT_BURST" default:"5"`
	Enabled           bool    `envconfig:"RATE_LIMIT_ENABLED" default:"true"`
	Global            bool    `envconfig:"RATE_LIMIT_GLOBAL" default:"false"`
}

// RenderConfig holds the zoom policy, icon source and render limits.
type RenderConfig struct {
	TargetWidth     int    `envconfig:"RENDER_TARGET_WIDTH" default:"1400"`
	MaxZoom         int    `envconfig:"RENDER_MAX_ZOOM" default:"24"`
	IconThreshold   int    `envconfig:"RENDER_ICON_THRESHOLD" default:"6"`
	IconDir         string `envconfig:"ICON_DIR" default:""`
	MaxConcurrency  int64  `envconfig:"RENDER_MAX_CONCURRENCY" default:"4"`
	MaxCanvasPixels int64  `envconfig:"RENDER_MAX_CANVAS_PIXELS" default:"16777216"`
}

// AttachmentConfig holds settings for fetching blueprint attachments.
type AttachmentConfig struct {
	MaxBytes   int64         `envconfig:"MAX_ATTACHMENT_BYTES" default:"4194304"`
	Timeout    time.Duration `envconfig:"ATTACHMENT_TIMEOUT" default:"10s"`
	MaxRetries int           `envconfig:"ATTACHMENT_RETRIES" default:"2"`
}

// Load loads configuration from environment variables.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return &cfg, nil
}

// LoadOrDefault loads configuration from environment or returns default.
func LoadOrDefault() *Config {
	cfg, err := Load()
	if err != nil {
		return Default()
	}
	return cfg
}

// Default returns default configuration.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port:         "8000",
			Host:         "0.0.0.0",
			MaxBodyBytes: 8 << 20,
		},
		Logging: LogConfig{
			Level:       "info",
			Development: false,
		},
		RateLimit: RateLimitConfig{
			RequestsPerSecond: 2,
			Burst:             5,
			Enabled:           true,
			Global:            false,
		},
		Render: RenderConfig{
			TargetWidth:     1400,
			MaxZoom:         24,
			IconThreshold:   6,
			MaxConcurrency:  4,
			MaxCanvasPixels: 16 << 20,
		},
		Attachment: AttachmentConfig{
			MaxBytes:   4 << 20,
			Timeout:    10 * time.Second,
			MaxRetries: 2,
		},
	}
}
