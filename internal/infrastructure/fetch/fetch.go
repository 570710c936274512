package fetch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"time"
	"unicode/utf8"

	"github.com/gabriel-vasile/mimetype"
	"github.com/go-resty/resty/v2"
	"github.com/hashicorp/go-retryablehttp"
	"go.uber.org/zap"
)

var (
	// ErrInvalidURL is returned for URLs that are not absolute http(s).
	ErrInvalidURL = errors.New("invalid attachment url")
	// ErrTooLarge is returned when the attachment exceeds the size limit.
	ErrTooLarge = errors.New("attachment too large")
	// ErrNotText is returned when the attachment is not UTF-8 text.
	ErrNotText = errors.New("attachment is not text")
	// ErrUpstream is returned when the attachment could not be downloaded.
	ErrUpstream = errors.New("attachment download failed")
)

// IsClientError reports whether err was caused by the attachment itself
// rather than by the host serving it.
func IsClientError(err error) bool {
	return errors.Is(err, ErrInvalidURL) || errors.Is(err, ErrTooLarge) || errors.Is(err, ErrNotText)
}

// Options configures a Fetcher.
type Options struct {
	MaxBytes     int64
	Timeout      time.Duration
	MaxRetries   int
	RetryWaitMin time.Duration
	RetryWaitMax time.Duration
	UserAgent    string
}

// DefaultOptions returns production fetch settings.
func DefaultOptions() Options {
	return Options{
		MaxBytes:     4 << 20,
		Timeout:      10 * time.Second,
		MaxRetries:   2,
		RetryWaitMin: 500 * time.Millisecond,
		RetryWaitMax: 5 * time.Second,
		UserAgent:    "vcbot/1.0",
	}
}

// Fetcher downloads blueprint attachments.
type Fetcher struct {
	client *resty.Client
	opts   Options
	logger *zap.Logger
}

// New creates a fetcher. Transient failures (connection errors, 429 and
// 5xx) are retried by the transport.
func New(opts Options, logger *zap.Logger) *Fetcher {
	def := DefaultOptions()
	if opts.MaxBytes <= 0 {
		opts.MaxBytes = def.MaxBytes
	}
	if opts.Timeout <= 0 {
		opts.Timeout = def.Timeout
	}
	if opts.MaxRetries < 0 {
		opts.MaxRetries = 0
	}
	if opts.RetryWaitMin <= 0 {
		opts.RetryWaitMin = def.RetryWaitMin
	}
	if opts.RetryWaitMax < opts.RetryWaitMin {
		opts.RetryWaitMax = opts.RetryWaitMin
	}
	if opts.UserAgent == "" {
		opts.UserAgent = def.UserAgent
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	retryClient := retryablehttp.NewClient()
	retryClient.RetryMax = opts.MaxRetries
	retryClient.RetryWaitMin = opts.RetryWaitMin
	retryClient.RetryWaitMax = opts.RetryWaitMax
	retryClient.Logger = leveledLogger{logger.Sugar()}

	restyClient := resty.NewWithClient(retryClient.StandardClient()).
		SetTimeout(opts.Timeout).
		SetHeader("User-Agent", opts.UserAgent).
		SetDoNotParseResponse(true)

	return &Fetcher{client: restyClient, opts: opts, logger: logger}
}

// Fetch downloads rawURL and returns its body as text.
func (f *Fetcher) Fetch(ctx context.Context, rawURL string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return "", ErrInvalidURL
	}

	resp, err := f.client.R().SetContext(ctx).Get(u.String())
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrUpstream, err)
	}
	body := resp.RawBody()
	defer body.Close()

	if resp.StatusCode() < 200 || resp.StatusCode() >= 300 {
		return "", fmt.Errorf("%w: HTTP %d", ErrUpstream, resp.StatusCode())
	}
	if resp.RawResponse.ContentLength > f.opts.MaxBytes {
		return "", fmt.Errorf("%w: %d bytes", ErrTooLarge, resp.RawResponse.ContentLength)
	}

	data, err := io.ReadAll(io.LimitReader(body, f.opts.MaxBytes+1))
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrUpstream, err)
	}
	if int64(len(data)) > f.opts.MaxBytes {
		return "", fmt.Errorf("%w: over %d bytes", ErrTooLarge, f.opts.MaxBytes)
	}
	return Text(data)
}

// Text validates that data is UTF-8 text and returns it as a string.
func Text(data []byte) (string, error) {
	if !isText(mimetype.Detect(data)) || !utf8.Valid(data) {
		return "", ErrNotText
	}
	return string(data), nil
}

func isText(m *mimetype.MIME) bool {
	for ; m != nil; m = m.Parent() {
		if m.Is("text/plain") {
			return true
		}
	}
	return false
}

// leveledLogger adapts zap to retryablehttp's LeveledLogger.
type leveledLogger struct {
	s *zap.SugaredLogger
}

func (l leveledLogger) Error(msg string, kv ...interface{}) { l.s.Errorw(msg, kv...) }
func (l leveledLogger) Info(msg string, kv ...interface{})  { l.s.Debugw(msg, kv...) }
func (l leveledLogger) Debug(msg string, kv ...interface{}) { l.s.Debugw(msg, kv...) }
func (l leveledLogger) Warn(msg string, kv ...interface{})  { l.s.Warnw(msg, kv...) }
