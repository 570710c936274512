package viewer

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/GriffinCanCode/vcbot/internal/domain/blueprint"
	"github.com/GriffinCanCode/vcbot/internal/domain/render"
	"github.com/GriffinCanCode/vcbot/internal/domain/stats"
	"github.com/GriffinCanCode/vcbot/internal/infrastructure/logging"
	"github.com/GriffinCanCode/vcbot/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/vcbot/internal/infrastructure/tracing"
	"go.uber.org/zap"
	"golang.org/x/sync/semaphore"
)

const (
	OpStats  = "stats"
	OpRender = "render"
)

const (
	// DefaultMaxConcurrentRenders bounds renders when no limit is configured.
	DefaultMaxConcurrentRenders = 4
	// DefaultMaxCanvasPixels caps a render canvas at 64 MiB.
	DefaultMaxCanvasPixels = 16 << 20
)

var (
	// ErrBusy is returned when a render could not start before its context
	// ended.
	ErrBusy = errors.New("renderer busy")
	// ErrCanvasTooLarge is returned when the zoomed image would exceed
	// MaxCanvasPixels.
	ErrCanvasTooLarge = errors.New("render canvas too large")
)

// Viewer runs the stats and render commands over blueprint text.
type Viewer struct {
	renderer *render.Renderer
	logger   *logging.Logger
	metrics  *monitoring.Metrics
	tracer   *tracing.Tracer
	sem      *semaphore.Weighted

	maxCanvas uint64
}

// Config wires a Viewer. Renderer and Metrics are required.
type Config struct {
	Renderer             *render.Renderer
	Logger               *logging.Logger
	Metrics              *monitoring.Metrics
	Tracer               *tracing.Tracer
	MaxConcurrentRenders int64
	MaxCanvasPixels      int64
}

// New creates a viewer.
func New(cfg Config) *Viewer {
	if cfg.Logger == nil {
		cfg.Logger = logging.NewNop()
	}
	if cfg.MaxConcurrentRenders <= 0 {
		cfg.MaxConcurrentRenders = DefaultMaxConcurrentRenders
	}
	if cfg.MaxCanvasPixels <= 0 {
		cfg.MaxCanvasPixels = DefaultMaxCanvasPixels
	}
	return &Viewer{
		renderer: cfg.Renderer,
		logger:   cfg.Logger.Named("viewer"),
		metrics:  cfg.Metrics,
		tracer:   cfg.Tracer,
		sem:      semaphore.NewWeighted(cfg.MaxConcurrentRenders),

		maxCanvas: uint64(cfg.MaxCanvasPixels),
	}
}

// Renderer returns the renderer backing the viewer.
func (v *Viewer) Renderer() *render.Renderer {
	return v.renderer
}

// Summarize decodes text and counts its components.
func (v *Viewer) Summarize(ctx context.Context, text string) (*stats.Report, error) {
	timer := monitoring.NewTimer(v.metrics, OpStats)
	span, ctx := v.startSpan(ctx, OpStats)

	bp, err := v.decode(ctx, OpStats, text)
	if err != nil {
		v.finish(span, timer, err)
		return nil, err
	}

	report := stats.Summarize(bp)
	span.SetTag("checksum", report.Checksum)
	v.finish(span, timer, nil)
	return report, nil
}

// Render decodes text and writes it to w as a PNG. At most
// MaxConcurrentRenders run at once; waiting honours ctx. Blueprints whose
// zoomed canvas exceeds MaxCanvasPixels fail with ErrCanvasTooLarge.
func (v *Viewer) Render(ctx context.Context, text string, w io.Writer) (render.Result, error) {
	timer := monitoring.NewTimer(v.metrics, OpRender)
	span, ctx := v.startSpan(ctx, OpRender)

	if err := v.sem.Acquire(ctx, 1); err != nil {
		err = fmt.Errorf("%w: %w", ErrBusy, err)
		v.finish(span, timer, err)
		return render.Result{}, err
	}
	defer v.sem.Release(1)

	v.metrics.RendersInFlight.Inc()
	defer v.metrics.RendersInFlight.Dec()

	bp, err := v.decode(ctx, OpRender, text)
	if err != nil {
		v.finish(span, timer, err)
		return render.Result{}, err
	}

	zoom := v.renderer.Zoom(bp.Width)
	if px := render.CanvasPixels(bp.Width, bp.Height, zoom); px > v.maxCanvas {
		err := fmt.Errorf("%w: %dx%d at zoom %d is %d pixels, limit %d",
			ErrCanvasTooLarge, bp.Width, bp.Height, zoom, px, v.maxCanvas)
		v.metrics.RecordInvalid(OpRender, "canvas_too_large")
		v.logger.Info("render canvas too large",
			tracing.Field(ctx),
			zap.Uint64("pixels", px),
			zap.Int("zoom", zoom),
		)
		v.finish(span, timer, err)
		return render.Result{}, err
	}

	img, res := v.renderer.ImageAt(bp, zoom)
	v.metrics.ObserveZoom(res.Zoom)
	span.SetTag("zoom", fmt.Sprint(res.Zoom))

	if err := render.Encode(w, img); err != nil {
		v.finish(span, timer, err)
		return render.Result{}, err
	}

	v.logger.Debug("blueprint rendered",
		tracing.Field(ctx),
		zap.Int("width", res.Width),
		zap.Int("height", res.Height),
		zap.Int("zoom", res.Zoom),
		zap.Bool("icons", res.Icons),
	)
	v.finish(span, timer, nil)
	return res, nil
}

func (v *Viewer) decode(ctx context.Context, op, text string) (*blueprint.Blueprint, error) {
	bp, err := blueprint.Decode(text)
	if err != nil {
		if code := blueprint.CauseCode(err); code != "" {
			v.metrics.RecordInvalid(op, code)
			v.logger.Info("invalid blueprint",
				tracing.Field(ctx),
				zap.String("operation", op),
				zap.String("cause", code),
			)
		}
		return nil, err
	}
	v.metrics.ObserveBlueprint(bp.Area())
	return bp, nil
}

func (v *Viewer) startSpan(ctx context.Context, op string) (*tracing.Span, context.Context) {
	if v.tracer == nil {
		return &tracing.Span{RequestID: tracing.RequestID(ctx), Name: op, Tags: map[string]string{}}, ctx
	}
	return v.tracer.StartSpan(ctx, op)
}

func (v *Viewer) finish(span *tracing.Span, timer *monitoring.Timer, err error) {
	status := Status(err)
	timer.Stop(status)
	if err != nil {
		span.SetError(err)
	}
	if v.tracer != nil {
		span.Finish()
		v.tracer.Submit(span)
	}
}

// Status classifies an operation outcome for metrics.
func Status(err error) string {
	switch {
	case err == nil:
		return "success"
	case blueprint.IsInvalid(err):
		return "invalid"
	case errors.Is(err, ErrCanvasTooLarge):
		return "too_large"
	case errors.Is(err, ErrBusy):
		return "busy"
	default:
		return "error"
	}
}
