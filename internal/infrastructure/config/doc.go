// Package config provides 12-factor configuration management for the
// blueprint viewer.
//
// Configuration is loaded from environment variables with sensible defaults.
//
// Configuration Sections:
//   - Server: HTTP server settings (port, host, body limit)
//   - Logging: Log level and output format
//   - RateLimit: Per-client or global rate limiting
//   - Render: Zoom policy, icon directory, concurrency and canvas caps
//   - Attachment: Limits for fetching blueprint attachments
//
// Example Usage:
//
//	cfg := config.LoadOrDefault()
//	fmt.Printf("Server running on %s:%s\n", cfg.Server.Host, cfg.Server.Port)
//
// Environment Variables:
//   - PORT, HOST, MAX_BODY_BYTES
//   - LOG_LEVEL, LOG_DEV
//   - RATE_LIMIT_RPS, RATE_LIMIT_BURST, RATE_LIMIT_ENABLED, RATE_LIMIT_GLOBAL
//   - RENDER_TARGET_WIDTH, RENDER_MAX_ZOOM, RENDER_ICON_THRESHOLD, ICON_DIR, RENDER_MAX_CONCURRENCY,
//     RENDER_MAX_CANVAS_PIXELS
//   - MAX_ATTACHMENT_BYTES, ATTACHMENT_TIMEOUT, ATTACHMENT_RETRIES
package config
