/*
Package monitoring provides Prometheus metrics for the server.

# Overview

Each Metrics value owns a private registry, so a process (or a test) can
create as many as it needs without colliding on metric names. Tracked:

  - HTTP requests (count, latency, body size) by route template
  - stats and render operations by outcome
  - rejected blueprints by cause code
  - blueprint area and render zoom distributions
  - renders currently in flight
  - attachment downloads by outcome

# Usage

	metrics := monitoring.NewMetrics()
	router.Use(monitoring.Middleware(metrics))
	router.GET("/metrics", gin.WrapH(metrics.Handler()))

	timer := monitoring.NewTimer(metrics, "render")
	// ... perform operation ...
	timer.Stop("success")
*/
package monitoring
