// Package main is the entry point for the vcbot HTTP server.
//
// The server answers blueprint commands for Virtual Circuit Board players:
// component statistics and rendered images of a pasted blueprint, plus
// user guide lookups.
//
// Configuration:
//   - Environment variables (12-factor, see internal/infrastructure/config)
//   - CLI flags (override env vars)
//
// Usage:
//
//	# Production mode
//	./server -port 8000 -icons ./img
//
//	# Development mode (colored logs, debug level)
//	./server -dev
//
// Signals:
//   - SIGINT, SIGTERM: Graceful shutdown
package main
