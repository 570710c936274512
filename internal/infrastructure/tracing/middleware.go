package tracing

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/GriffinCanCode/vcbot/internal/shared/id"
)

// maxRequestIDLen bounds caller supplied IDs before they reach the logs.
const maxRequestIDLen = 64

// HTTPMiddleware creates Gin middleware that assigns every request an ID,
// echoes it in the response and records a span for the request. A caller
// supplied ID is kept only if it is a well-formed prefixed ULID.
func HTTPMiddleware(tracer *Tracer) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		if rid := c.GetHeader(Header); len(rid) <= maxRequestIDLen && id.IsValid(rid) {
			ctx = WithRequestID(ctx, rid)
		}

		span, ctx := tracer.StartSpan(ctx, c.FullPath())
		span.SetTag("http.method", c.Request.Method)

		c.Request = c.Request.WithContext(ctx)
		c.Header(Header, span.RequestID)

		c.Next()

		span.Status = c.Writer.Status()
		if len(c.Errors) > 0 {
			span.SetError(c.Errors.Last())
		} else if span.Status >= http.StatusInternalServerError {
			span.SetTag("http.status_text", http.StatusText(span.Status))
		}
		span.Finish()
		tracer.Submit(span)
	}
}

// AccessLog creates Gin middleware that writes one log line per request.
func AccessLog(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		fields := []zap.Field{
			Field(c.Request.Context()),
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.String("client_ip", c.ClientIP()),
		}
		switch status := c.Writer.Status(); {
		case status >= http.StatusInternalServerError:
			logger.Error("request failed", fields...)
		case status >= http.StatusBadRequest:
			logger.Info("request rejected", fields...)
		default:
			logger.Debug("request served", fields...)
		}
	}
}
