package tracing

import (
	"context"
	"sync"
	"time"

	"github.com/GriffinCanCode/vcbot/internal/shared/id"
	"go.uber.org/zap"
)

// Header carries the request ID in both directions.
const Header = "X-Request-ID"

// Span represents a single timed operation within a request
type Span struct {
	RequestID string
	Name      string
	StartTime time.Time
	Duration  time.Duration
	Tags      map[string]string
	Error     error
	Status    int
}

// Tracer logs finished spans off the request path
type Tracer struct {
	logger *zap.Logger
	spans  chan *Span
	done   chan struct{}
	once   sync.Once
}

// New creates a tracer and starts its collector.
func New(logger *zap.Logger) *Tracer {
	t := &Tracer{
		logger: logger,
		spans:  make(chan *Span, 1000),
		done:   make(chan struct{}),
	}
	go t.collect()
	return t
}

// StartSpan creates a span tied to the request ID in ctx, assigning a new
// ID when there is none.
func (t *Tracer) StartSpan(ctx context.Context, name string) (*Span, context.Context) {
	rid := RequestID(ctx)
	if rid == "" {
		rid = id.NewRequestID().String()
		ctx = WithRequestID(ctx, rid)
	}
	return &Span{
		RequestID: rid,
		Name:      name,
		StartTime: time.Now(),
		Tags:      make(map[string]string),
	}, ctx
}

// SetTag adds a tag to the span
func (s *Span) SetTag(key, value string) {
	s.Tags[key] = value
}

// SetError records an error in the span
func (s *Span) SetError(err error) {
	s.Error = err
}

// Finish stamps the span duration
func (s *Span) Finish() {
	s.Duration = time.Since(s.StartTime)
}

// Submit hands a finished span to the collector. Spans are dropped when
// the buffer is full or the tracer is closed.
func (t *Tracer) Submit(span *Span) {
	select {
	case <-t.done:
		return
	default:
	}
	select {
	case t.spans <- span:
	default:
		t.logger.Warn("span buffer full, dropping span",
			zap.String("request_id", span.RequestID),
			zap.String("operation", span.Name),
		)
	}
}

// Close stops the collector. Spans still buffered are discarded.
func (t *Tracer) Close() {
	t.once.Do(func() { close(t.done) })
}

func (t *Tracer) collect() {
	for {
		select {
		case <-t.done:
			return
		case span := <-t.spans:
			t.process(span)
		}
	}
}

func (t *Tracer) process(span *Span) {
	fields := []zap.Field{
		zap.String("request_id", span.RequestID),
		zap.String("operation", span.Name),
		zap.Duration("duration", span.Duration),
	}
	if span.Status != 0 {
		fields = append(fields, zap.Int("status", span.Status))
	}
	for k, v := range span.Tags {
		fields = append(fields, zap.String(k, v))
	}

	if span.Error != nil {
		fields = append(fields, zap.Error(span.Error))
		t.logger.Warn("span completed with error", fields...)
		return
	}
	t.logger.Debug("span completed", fields...)
}

type contextKey struct{}

// WithRequestID stores a request ID in ctx
func WithRequestID(ctx context.Context, rid string) context.Context {
	return context.WithValue(ctx, contextKey{}, rid)
}

// RequestID retrieves the request ID from ctx
func RequestID(ctx context.Context) string {
	rid, _ := ctx.Value(contextKey{}).(string)
	return rid
}

// Field returns the request ID of ctx as a log field
func Field(ctx context.Context) zap.Field {
	return zap.String("request_id", RequestID(ctx))
}
