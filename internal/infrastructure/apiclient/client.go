// Package apiclient is the HTTP transport of the resource clients. Each
// call issues exactly one request; failures are returned as
// *shared.APIError and never retried here.
package apiclient

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/sooquk/dashboard/internal/domain/shared"
	"github.com/sooquk/dashboard/internal/infrastructure/logger"
)

const tracerName = "github.com/sooquk/dashboard/internal/infrastructure/apiclient"

// TokenSource supplies the bearer token of the signed-in admin
type TokenSource interface {
	Token(ctx context.Context) (string, error)
}

// StaticToken is a fixed bearer token
type StaticToken string

// Token returns the token
func (t StaticToken) Token(context.Context) (string, error) {
	return string(t), nil
}

// Config configures a Client
type Config struct {
	BaseURL   string
	Timeout   time.Duration
	UserAgent string
	Locale    string
	// RateLimit throttles outgoing requests per second; 0 disables it
	RateLimit float64
	RateBurst int
}

// Client performs requests against the REST backend
type Client struct {
	httpClient *http.Client
	baseURL    *url.URL
	tokens     TokenSource
	limiter    *rate.Limiter
	logger     *zap.Logger
	tracer     trace.Tracer

	mu      sync.RWMutex
	headers map[string]string
}

// Option configures a Client
type Option func(*Client)

// WithHTTPClient replaces the underlying http.Client
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithTokenSource sets where bearer tokens come from
func WithTokenSource(ts TokenSource) Option {
	return func(c *Client) {
		c.tokens = ts
	}
}

// WithLogger sets the logger
func WithLogger(l *zap.Logger) Option {
	return func(c *Client) {
		c.logger = l
	}
}

// WithTracerProvider sets the tracer provider used for request spans
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(c *Client) {
		c.tracer = tp.Tracer(tracerName)
	}
}

// NewClient creates a client for cfg.BaseURL
func NewClient(cfg Config, opts ...Option) (*Client, error) {
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("base URL is required")
	}
	base, err := url.Parse(cfg.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid base URL: %w", err)
	}
	if !strings.HasSuffix(base.Path, "/") {
		base.Path += "/"
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}

	c := &Client{
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
			Transport: &http.Transport{
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		},
		baseURL: base,
		logger:  zap.NewNop(),
		tracer:  otel.Tracer(tracerName),
		headers: map[string]string{
			"Accept": "application/json",
		},
	}
	if cfg.UserAgent != "" {
		c.headers["User-Agent"] = cfg.UserAgent
	}
	if cfg.Locale != "" {
		c.headers["Accept-Language"] = cfg.Locale
	}
	if cfg.RateLimit > 0 {
		burst := cfg.RateBurst
		if burst <= 0 {
			burst = 1
		}
		c.limiter = rate.NewLimiter(rate.Limit(cfg.RateLimit), burst)
	}

	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// SetHeader sets a default header for all requests
func (c *Client) SetHeader(key, value string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.headers[key] = value
}

// BaseURL returns the base URL
func (c *Client) BaseURL() string {
	return c.baseURL.String()
}

// Request is one call to the backend
type Request struct {
	Method  string
	Path    string
	Query   shared.Params
	Body    Body
	Headers map[string]string
}

// Response is a completed call with a 2xx status
type Response struct {
	StatusCode int
	Headers    http.Header
	Body       []byte
	RequestID  string
	Duration   time.Duration
}

// Do executes req. Non-2xx responses become *shared.APIError.
func (c *Client) Do(ctx context.Context, req Request) (*Response, error) {
	u, err := c.buildURL(req.Path, req.Query)
	if err != nil {
		return nil, fmt.Errorf("building URL: %w", err)
	}

	ctx, span := c.tracer.Start(ctx, req.Method+" "+req.Path,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("http.request.method", req.Method),
			attribute.String("url.path", u.Path),
		))
	defer span.End()

	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			span.RecordError(err)
			return nil, shared.NewNetworkError(err)
		}
	}

	var body io.Reader
	contentType := ""
	if req.Body != nil {
		payload, ct, err := req.Body.Encode()
		if err != nil {
			return nil, fmt.Errorf("encoding request body: %w", err)
		}
		body = bytes.NewReader(payload)
		contentType = ct
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.Method, u.String(), body)
	if err != nil {
		return nil, fmt.Errorf("creating HTTP request: %w", err)
	}
	requestID := uuid.NewString()
	c.setHeaders(httpReq, req.Headers)
	httpReq.Header.Set("X-Request-ID", requestID)
	if contentType != "" {
		httpReq.Header.Set("Content-Type", contentType)
	}
	if c.tokens != nil {
		token, err := c.tokens.Token(ctx)
		if err != nil {
			return nil, fmt.Errorf("obtaining access token: %w", err)
		}
		if token != "" {
			httpReq.Header.Set("Authorization", "Bearer "+token)
		}
	}

	log := c.logger.With(
		zap.String("request_id", requestID),
		zap.String("method", req.Method),
		zap.String("path", u.Path))
	if traceID := logger.GetTraceID(ctx); traceID != "" {
		log = log.With(zap.String("trace_id", traceID))
	}

	start := time.Now()
	httpResp, err := c.httpClient.Do(httpReq)
	duration := time.Since(start)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "transport error")
		log.Debug("Request failed", zap.Duration("duration", duration), zap.Error(err))
		apiErr := shared.NewNetworkError(err)
		apiErr.RequestID = requestID
		return nil, apiErr
	}
	defer httpResp.Body.Close()

	data, err := io.ReadAll(httpResp.Body)
	if err != nil {
		span.RecordError(err)
		apiErr := shared.NewNetworkError(fmt.Errorf("reading response body: %w", err))
		apiErr.StatusCode = httpResp.StatusCode
		apiErr.RequestID = requestID
		return nil, apiErr
	}

	span.SetAttributes(attribute.Int("http.response.status_code", httpResp.StatusCode))
	log.Debug("Request completed",
		zap.Int("status", httpResp.StatusCode),
		zap.Duration("duration", duration))

	if httpResp.StatusCode < 200 || httpResp.StatusCode >= 300 {
		span.SetStatus(codes.Error, http.StatusText(httpResp.StatusCode))
		return nil, errorFromResponse(httpResp.StatusCode, data, requestID)
	}

	return &Response{
		StatusCode: httpResp.StatusCode,
		Headers:    httpResp.Header,
		Body:       data,
		RequestID:  requestID,
		Duration:   duration,
	}, nil
}

// buildURL resolves path against the base URL. Query values are passed
// through verbatim; Params never hold unset values.
func (c *Client) buildURL(path string, params shared.Params) (*url.URL, error) {
	rel, err := url.Parse(strings.TrimPrefix(path, "/"))
	if err != nil {
		return nil, err
	}
	u := c.baseURL.ResolveReference(rel)
	if len(params) > 0 {
		u.RawQuery = params.Encode()
	}
	return u, nil
}

func (c *Client) setHeaders(req *http.Request, custom map[string]string) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for k, v := range c.headers {
		req.Header.Set(k, v)
	}
	for k, v := range custom {
		req.Header.Set(k, v)
	}
}
