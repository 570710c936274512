/*
Package tracing assigns request IDs and records per-request spans.

Every HTTP request gets an ID, taken from an incoming X-Request-ID header
when present or generated as a ULID otherwise. The ID travels in the
request context so that handlers and the viewer can attach it to log lines,
and it is echoed back in the response header.

# Usage

	tracer := tracing.New(logger)
	defer tracer.Close()

	router.Use(tracing.HTTPMiddleware(tracer))
	router.Use(tracing.AccessLog(logger))

	// Later, inside a handler:
	logger.Info("rendered", tracing.Field(c.Request.Context()))

Spans are handed to a buffered collector and logged asynchronously, so a
slow log sink never blocks a request.
*/
package tracing
