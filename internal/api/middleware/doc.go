// Package middleware provides HTTP middleware for the blueprint API.
//
// Middleware stack includes:
//   - CORS: cross-origin access to the read-only endpoints
//   - RateLimit: per-client token bucket, keyed by IP or a custom KeyFunc
//   - GlobalRateLimit: one bucket shared by every client
//   - BodyLimit: caps request bodies before handlers read them
//
// Rate Limiting:
//   - Idle clients are forgotten after ten minutes
//   - Rejected requests carry a Retry-After header
//
// Example Usage:
//
//	router.Use(middleware.CORS(middleware.DefaultCORSConfig()))
//	router.Use(middleware.RateLimit(middleware.DefaultRateLimitConfig()))
//	router.Use(middleware.BodyLimit(cfg.Server.MaxBodyBytes))
package middleware
