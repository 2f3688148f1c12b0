package httpclient

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"

	"github.com/paifilter/paikit/errors"
	"github.com/paifilter/paikit/logger"
	"github.com/paifilter/paikit/observability"
	"github.com/paifilter/paikit/resilience"
)

// Client is the resilient HTTP client. It holds only read-only
// configuration; concurrent calls share nothing mutable, so a single
// long-lived Client per process is safe and intended.
type Client struct {
	httpClient *http.Client
	config     Config
	log        *logger.Logger
	metrics    *observability.ClientMetrics
}

// Option configures a Client.
type Option func(*Client)

// WithLogger sets the logger used for retry and request diagnostics.
func WithLogger(log *logger.Logger) Option {
	return func(c *Client) {
		if log != nil {
			c.log = log.WithComponent("httpclient")
		}
	}
}

// WithMetrics enables request metric recording.
func WithMetrics(m *observability.ClientMetrics) Option {
	return func(c *Client) { c.metrics = m }
}

// New creates a new HTTP client with the given configuration.
func New(cfg Config, opts ...Option) (*Client, error) {
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	transport := http.DefaultTransport.(*http.Transport).Clone()

	c := &Client{
		httpClient: &http.Client{
			Transport: transport,
			Timeout:   cfg.Timeout,
		},
		config: cfg,
		log:    logger.Nop(),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c, nil
}

// Do executes an HTTP request, retrying transient transport failures with
// linear backoff, and returns either the response or a normalized error
// envelope. Retries are sequential; the call does not resolve until a
// success occurs or retries are exhausted.
func (c *Client) Do(ctx context.Context, req Request) (*Response, error) {
	requestID := uuid.NewString()
	start := time.Now()

	ctx, span := observability.StartSpan(ctx, observability.SpanHTTPRequest)
	span.SetAttributes(
		attribute.String(observability.AttrMethod, req.Method),
		attribute.String(observability.AttrEndpoint, req.Path),
		attribute.String(observability.AttrRequestID, requestID),
	)
	defer span.End()

	retries := 0
	var resp *Response
	var err error

	if c.config.Retry != nil {
		retryCfg := *c.config.Retry
		if retryCfg.RetryIf == nil {
			retryCfg.RetryIf = IsRetryable
		}
		userOnRetry := retryCfg.OnRetry
		retryCfg.OnRetry = func(attempt int, attemptErr error, delay time.Duration) {
			retries = attempt
			c.log.Debug("retrying request", logger.Fields(
				logger.FieldMethod, req.Method,
				logger.FieldEndpoint, req.Path,
				logger.FieldRequestID, requestID,
				logger.FieldAttempt, attempt,
				logger.FieldDelay, delay.Milliseconds(),
				logger.FieldError, attemptErr.Error(),
			))
			if c.metrics != nil {
				c.metrics.RecordRetry(ctx, req.Path)
			}
			if userOnRetry != nil {
				userOnRetry(attempt, attemptErr, delay)
			}
		}
		resp, err = resilience.Retry(ctx, retryCfg, func() (*Response, error) {
			return c.executeRequest(ctx, req, requestID)
		})
	} else {
		resp, err = c.executeRequest(ctx, req, requestID)
	}

	span.SetAttributes(attribute.Int(observability.AttrAttempts, retries+1))

	if err != nil {
		apiErr := normalizeFinalError(err, requestID)
		span.SetAttributes(attribute.String(observability.AttrErrorCode, string(apiErr.Detail.Code)))
		observability.SetSpanError(ctx, apiErr)
		if c.metrics != nil {
			c.metrics.RecordError(ctx, string(apiErr.Detail.Code))
			c.metrics.RecordRequest(ctx, req.Method, req.Path, string(apiErr.Detail.Code), time.Since(start))
		}
		c.log.Debug("request failed", logger.Fields(
			logger.FieldMethod, req.Method,
			logger.FieldEndpoint, req.Path,
			logger.FieldRequestID, requestID,
			logger.FieldError, apiErr.Error(),
		))
		return resp, apiErr
	}

	span.SetAttributes(attribute.Int(observability.AttrStatusCode, resp.StatusCode))
	if c.metrics != nil {
		c.metrics.RecordRequest(ctx, req.Method, req.Path, "ok", time.Since(start))
	}
	c.log.Debug("request completed", logger.Fields(
		logger.FieldMethod, req.Method,
		logger.FieldEndpoint, req.Path,
		logger.FieldRequestID, requestID,
		logger.FieldStatusCode, resp.StatusCode,
		logger.FieldDuration, time.Since(start).Milliseconds(),
	))
	return resp, nil
}

// Unwrap returns the underlying *http.Client for advanced use cases.
func (c *Client) Unwrap() *http.Client {
	return c.httpClient
}

// BaseURL returns the configured base endpoint.
func (c *Client) BaseURL() string {
	return c.config.BaseURL
}

// Close releases idle connections held by the client.
func (c *Client) Close() {
	c.httpClient.CloseIdleConnections()
}

// executeRequest builds and sends a single HTTP attempt.
func (c *Client) executeRequest(ctx context.Context, req Request, requestID string) (*Response, error) {
	httpReq, err := c.buildRequest(ctx, req, requestID)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		if ctx.Err() != nil {
			// Caller cancellation, not a transport fault. The retry loop
			// stops on this rather than backing off.
			return nil, ctx.Err()
		}
		// No response received at all: the only retryable failure class.
		return nil, errors.NetworkError(err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		// The connection died mid-body. No usable response was received,
		// so this counts as a transport failure and is retried.
		return nil, errors.NetworkError(err)
	}

	result := &Response{
		StatusCode: resp.StatusCode,
		Headers:    flattenHeaders(resp.Header),
		Body:       body,
		RequestID:  requestID,
	}

	if !result.IsSuccess() {
		return result, normalizeStatusError(resp.StatusCode, body, requestID)
	}

	return result, nil
}

// buildRequest constructs an *http.Request from the client config and request.
func (c *Client) buildRequest(ctx context.Context, req Request, requestID string) (*http.Request, error) {
	url := strings.TrimRight(c.config.BaseURL, "/") + "/" + strings.TrimLeft(req.Path, "/")

	body, contentType, err := encodeBody(req.Body)
	if err != nil {
		return nil, errors.New(errors.CodeInternalError, "encode request body: "+err.Error()).WithCause(err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.Method, url, body)
	if err != nil {
		return nil, errors.New(errors.CodeInternalError, "create request: "+err.Error()).WithCause(err)
	}

	if len(req.Query) > 0 {
		q := httpReq.URL.Query()
		for k, v := range req.Query {
			q.Set(k, v)
		}
		httpReq.URL.RawQuery = q.Encode()
	}

	for k, v := range c.config.Headers {
		httpReq.Header.Set(k, v)
	}
	for k, v := range req.Headers {
		httpReq.Header.Set(k, v)
	}

	if body != nil && httpReq.Header.Get("Content-Type") == "" && contentType != "" {
		httpReq.Header.Set("Content-Type", contentType)
	}
	httpReq.Header.Set("X-Request-ID", requestID)

	return httpReq, nil
}

// normalizeFinalError guarantees the envelope invariant: every failure
// surfaced to a caller is an *errors.APIError.
func normalizeFinalError(err error, requestID string) *errors.APIError {
	if apiErr, ok := errors.AsAPIError(err); ok {
		if apiErr.RequestID == "" {
			apiErr.RequestID = requestID
		}
		return apiErr
	}
	apiErr := errors.NetworkError(err)
	apiErr.RequestID = requestID
	return apiErr
}

// encodeBody converts a body value into an io.Reader and content type.
func encodeBody(body any) (io.Reader, string, error) {
	if body == nil {
		return nil, "", nil
	}
	switch v := body.(type) {
	case []byte:
		return bytes.NewReader(v), "", nil
	default:
		data, err := json.Marshal(v)
		if err != nil {
			return nil, "", err
		}
		return bytes.NewReader(data), "application/json", nil
	}
}

// flattenHeaders converts multi-value headers to single-value.
func flattenHeaders(h http.Header) map[string]string {
	result := make(map[string]string, len(h))
	for k, v := range h {
		if len(v) > 0 {
			result[k] = v[0]
		}
	}
	return result
}
