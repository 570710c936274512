package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	apihttp "github.com/GriffinCanCode/vcbot/internal/api/http"
	"github.com/GriffinCanCode/vcbot/internal/api/middleware"
	"github.com/GriffinCanCode/vcbot/internal/domain/icons"
	"github.com/GriffinCanCode/vcbot/internal/domain/render"
	"github.com/GriffinCanCode/vcbot/internal/domain/viewer"
	"github.com/GriffinCanCode/vcbot/internal/infrastructure/config"
	"github.com/GriffinCanCode/vcbot/internal/infrastructure/fetch"
	"github.com/GriffinCanCode/vcbot/internal/infrastructure/logging"
	"github.com/GriffinCanCode/vcbot/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/vcbot/internal/infrastructure/tracing"
)

// Server wraps the HTTP server and dependencies
type Server struct {
	router  *gin.Engine
	http    *http.Server
	logger  *logging.Logger
	config  *config.Config
	metrics *monitoring.Metrics
	tracer  *tracing.Tracer
}

// NewServer creates a new server instance
func NewServer(cfg *config.Config) (*Server, error) {
	logger, err := logging.New(logging.Config{
		Level:       cfg.Logging.Level,
		Development: cfg.Logging.Development,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}
	return New(cfg, logger)
}

// New creates a server with an existing logger.
func New(cfg *config.Config, logger *logging.Logger) (*Server, error) {
	logger.Info("Initializing vcbot server",
		zap.String("port", cfg.Server.Port),
		zap.Int("target_width", cfg.Render.TargetWidth),
		zap.Int("max_zoom", cfg.Render.MaxZoom),
	)

	atlas, err := icons.LoadDir(cfg.Render.IconDir)
	if err != nil {
		return nil, err
	}
	if cfg.Render.IconDir == "" {
		logger.Info("Using builtin icon atlas")
	} else {
		logger.Info("Loaded icon atlas", zap.String("dir", cfg.Render.IconDir))
	}

	metrics := monitoring.NewMetrics()
	tracer := tracing.New(logger.Named("trace").Logger)

	renderer := render.New(atlas, render.Options{
		TargetWidth:   cfg.Render.TargetWidth,
		MaxZoom:       cfg.Render.MaxZoom,
		IconThreshold: cfg.Render.IconThreshold,
	})
	v := viewer.New(viewer.Config{
		Renderer:             renderer,
		Logger:               logger,
		Metrics:              metrics,
		Tracer:               tracer,
		MaxConcurrentRenders: cfg.Render.MaxConcurrency,
		MaxCanvasPixels:      cfg.Render.MaxCanvasPixels,
	})
	fetcher := &meteredFetcher{
		fetcher: fetch.New(fetch.Options{
			MaxBytes:   cfg.Attachment.MaxBytes,
			Timeout:    cfg.Attachment.Timeout,
			MaxRetries: cfg.Attachment.MaxRetries,
		}, logger.Named("fetch").Logger),
		metrics: metrics,
	}

	if !cfg.Logging.Development {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(tracing.HTTPMiddleware(tracer))
	router.Use(tracing.AccessLog(logger.Named("access").Logger))
	router.Use(monitoring.Middleware(metrics))
	router.Use(middleware.CORS(middleware.DefaultCORSConfig()))

	router.GET("/metrics", gin.WrapH(metrics.Handler()))

	api := router.Group("/")
	api.Use(middleware.BodyLimit(cfg.Server.MaxBodyBytes))
	if cfg.RateLimit.Enabled {
		logger.Info("Rate limiting enabled",
			zap.Float64("rps", cfg.RateLimit.RequestsPerSecond),
			zap.Int("burst", cfg.RateLimit.Burst),
			zap.Bool("global", cfg.RateLimit.Global),
		)
		limit := middleware.RateLimitConfig{
			RequestsPerSecond: cfg.RateLimit.RequestsPerSecond,
			Burst:             cfg.RateLimit.Burst,
		}
		if cfg.RateLimit.Global {
			api.Use(middleware.GlobalRateLimit(limit))
		} else {
			api.Use(middleware.RateLimit(limit))
		}
	}
	apihttp.NewHandlers(v, fetcher, logger).Register(api)

	logger.Info("Server initialized successfully")

	return &Server{
		router: router,
		http: &http.Server{
			Addr:              net.JoinHostPort(cfg.Server.Host, cfg.Server.Port),
			Handler:           router,
			ReadHeaderTimeout: 10 * time.Second,
		},
		logger:  logger,
		config:  cfg,
		metrics: metrics,
		tracer:  tracer,
	}, nil
}

// Handler returns the root HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Metrics returns the server's metrics.
func (s *Server) Metrics() *monitoring.Metrics {
	return s.metrics
}

// Run starts the HTTP server and blocks until it stops. A server stopped
// by Shutdown returns nil.
func (s *Server) Run() error {
	s.logger.Info("Starting HTTP server", zap.String("addr", s.http.Addr))
	if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown gracefully stops the server, waiting for in-flight requests
// until ctx ends.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down server...")
	defer s.tracer.Close()

	if err := s.http.Shutdown(ctx); err != nil {
		s.logger.Error("Failed to shut down HTTP server", zap.Error(err))
		return fmt.Errorf("failed to shut down HTTP server: %w", err)
	}
	_ = s.logger.Sync()
	return nil
}

// meteredFetcher counts attachment downloads by outcome.
type meteredFetcher struct {
	fetcher apihttp.Fetcher
	metrics *monitoring.Metrics
}

func (f *meteredFetcher) Fetch(ctx context.Context, url string) (string, error) {
	text, err := f.fetcher.Fetch(ctx, url)
	switch {
	case err == nil:
		f.metrics.RecordAttachmentFetch("success")
	case fetch.IsClientError(err):
		f.metrics.RecordAttachmentFetch("rejected")
	default:
		f.metrics.RecordAttachmentFetch("error")
	}
	return text, err
}
