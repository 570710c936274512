package http

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/GriffinCanCode/vcbot/internal/domain/blueprint"
	"github.com/GriffinCanCode/vcbot/internal/domain/guide"
	"github.com/GriffinCanCode/vcbot/internal/domain/viewer"
	"github.com/GriffinCanCode/vcbot/internal/infrastructure/fetch"
	"github.com/GriffinCanCode/vcbot/internal/infrastructure/logging"
	"github.com/GriffinCanCode/vcbot/internal/infrastructure/tracing"
	"github.com/GriffinCanCode/vcbot/internal/shared/id"
)

// StatusClientClosed is the non-standard status logged when the caller
// went away before the response was ready.
const StatusClientClosed = 499

// Handlers contains all HTTP handlers
type Handlers struct {
	viewer    *viewer.Viewer
	fetcher   Fetcher
	logger    *logging.Logger
	startedAt time.Time
}

// NewHandlers creates a new handler set
func NewHandlers(v *viewer.Viewer, fetcher Fetcher, logger *logging.Logger) *Handlers {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Handlers{
		viewer:    v,
		fetcher:   fetcher,
		logger:    logger.Named("http"),
		startedAt: time.Now(),
	}
}

// Register mounts the API routes on r.
func (h *Handlers) Register(r gin.IRouter) {
	r.GET("/", h.Root)
	r.GET("/health", h.Health)
	r.GET("/hello", h.Hello)
	r.GET("/guide", h.Guide)
	r.POST("/stats", h.Stats)
	r.POST("/render", h.Render)
}

// Root handles service identification
func (h *Handlers) Root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "online",
		"service": "vcbot",
		"version": "1.0.0",
	})
}

// Health handles health checks
func (h *Handlers) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":         "ok",
		"uptime_seconds": int64(time.Since(h.startedAt).Seconds()),
	})
}

// Hello greets the caller
func (h *Handlers) Hello(c *gin.Context) {
	name := strings.TrimSpace(c.Query("user"))
	if name == "" {
		name = "there"
	}
	c.JSON(http.StatusOK, gin.H{"message": "Hello! " + name})
}

// Guide looks up pages of the user guide
func (h *Handlers) Guide(c *gin.Context) {
	res, err := guide.Lookup(strings.Fields(c.Query("q"))...)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"outcome": res.Outcome,
		"topics":  res.Topics,
		"pages":   res.Pages,
		"message": res.Message(),
	})
}

// Stats reports the component counts of a blueprint
func (h *Handlers) Stats(c *gin.Context) {
	text, ok := h.resolve(c)
	if !ok {
		return
	}

	report, err := h.viewer.Summarize(c.Request.Context(), text)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"report":  report.String(),
		"stats":   report,
	})
}

// Render draws a blueprint as a PNG image
func (h *Handlers) Render(c *gin.Context) {
	text, ok := h.resolve(c)
	if !ok {
		return
	}

	var buf bytes.Buffer
	res, err := h.viewer.Render(c.Request.Context(), text, &buf)
	if err != nil {
		h.writeError(c, err)
		return
	}

	name := id.NewImageID().FileName()
	c.Header("Content-Disposition", `inline; filename="`+name+`"`)
	c.Header("X-Render-Zoom", strconv.Itoa(res.Zoom))
	c.Data(http.StatusOK, "image/png", buf.Bytes())
}

func (h *Handlers) resolve(c *gin.Context) (string, bool) {
	req, err := bindRequest(c)
	if err != nil {
		h.writeError(c, err)
		return "", false
	}
	text, err := req.Resolve(c.Request.Context(), h.fetcher)
	if err != nil {
		h.writeError(c, err)
		return "", false
	}
	return text, true
}

// writeError maps err to a status code and writes the JSON error body.
func (h *Handlers) writeError(c *gin.Context, err error) {
	status := StatusFor(err)
	msg := err.Error()
	if status == http.StatusInternalServerError {
		h.logger.Error("request failed", tracing.Field(c.Request.Context()), zap.Error(err))
		msg = "internal error"
	}
	_ = c.Error(err)
	c.JSON(status, gin.H{"success": false, "error": msg})
}

// StatusFor returns the HTTP status for an error returned while serving a
// blueprint request.
func StatusFor(err error) int {
	var maxBytes *http.MaxBytesError
	switch {
	case errors.As(err, &maxBytes), errors.Is(err, viewer.ErrCanvasTooLarge):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, errNoBlueprint), errors.Is(err, errMalformed),
		blueprint.IsInvalid(err), fetch.IsClientError(err):
		return http.StatusBadRequest
	case errors.Is(err, fetch.ErrUpstream):
		return http.StatusBadGateway
	case errors.Is(err, context.Canceled):
		return StatusClientClosed
	case errors.Is(err, viewer.ErrBusy):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
