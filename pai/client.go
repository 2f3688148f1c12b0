package pai

import (
	"context"

	"github.com/paifilter/paikit/config"
	"github.com/paifilter/paikit/httpclient"
	"github.com/paifilter/paikit/resilience"
)

// API endpoint paths.
const (
	pathHealth      = "/"
	pathVectorize   = "/api/v1/vectorize"
	pathContext     = "/api/v1/context"
	pathSearch      = "/api/v1/search"
	pathInsight     = "/api/v1/insight"
	pathSignals     = "/api/v1/signals"
	pathSignalStats = "/api/v1/signals/stats"
	pathFeeds       = "/api/v1/feeds"
	pathFeedsFetch  = "/api/v1/feeds/fetch"
)

// Client is a typed client for the PAI backend. It is safe for concurrent
// use; all request state is per-call.
type Client struct {
	http *httpclient.Client
}

// New wraps an existing transport client.
func New(hc *httpclient.Client) *Client {
	return &Client{http: hc}
}

// NewDefault creates a client against http://localhost:8000 with the
// standard retry policy.
func NewDefault(opts ...httpclient.Option) (*Client, error) {
	hc, err := httpclient.New(httpclient.Config{
		BaseURL: config.DefaultAPIURL,
		Retry:   httpclient.DefaultRetryConfig(),
	}, opts...)
	if err != nil {
		return nil, err
	}
	return New(hc), nil
}

// NewFromConfig creates a client from loaded application configuration.
// MaxRetries of zero disables retry entirely.
func NewFromConfig(cfg *config.Config, opts ...httpclient.Option) (*Client, error) {
	var retry *resilience.RetryConfig
	if cfg.MaxRetries > 0 {
		retry = httpclient.DefaultRetryConfig()
		retry.MaxRetries = cfg.MaxRetries
		if cfg.RetryDelay > 0 {
			retry.BaseDelay = cfg.RetryDelay
		}
	}

	hc, err := httpclient.New(httpclient.Config{
		BaseURL: cfg.APIURL,
		Timeout: cfg.Timeout,
		Retry:   retry,
	}, opts...)
	if err != nil {
		return nil, err
	}
	return New(hc), nil
}

// Transport exposes the underlying resilient client.
func (c *Client) Transport() *httpclient.Client { return c.http }

// HealthCheck reports backend availability and configured integrations.
func (c *Client) HealthCheck(ctx context.Context) (*HealthStatus, error) {
	return get[HealthStatus](c, ctx, pathHealth)
}

// Vectorize embeds the given text and returns the embedding's dimension
// and a preview of its first values.
func (c *Client) Vectorize(ctx context.Context, text string) (*VectorizeResult, error) {
	in, err := newTextInput(text)
	if err != nil {
		return nil, err
	}
	resp, err := httpclient.Post[VectorizeResult](c.http, ctx, pathVectorize, in)
	if err != nil {
		return nil, err
	}
	return &resp.Data, nil
}

// SaveContext embeds the given text and stores it in the vector database
// for later retrieval.
func (c *Client) SaveContext(ctx context.Context, text string) (*ContextResult, error) {
	in, err := newTextInput(text)
	if err != nil {
		return nil, err
	}
	resp, err := httpclient.Post[ContextResult](c.http, ctx, pathContext, in)
	if err != nil {
		return nil, err
	}
	return &resp.Data, nil
}

// Search performs a semantic search over stored context. A non-positive
// topK selects the default of 3 results.
func (c *Client) Search(ctx context.Context, text string, topK int) (*SearchResult, error) {
	in, err := newSearchInput(text, topK)
	if err != nil {
		return nil, err
	}
	resp, err := httpclient.Post[SearchResult](c.http, ctx, pathSearch, in)
	if err != nil {
		return nil, err
	}
	return &resp.Data, nil
}

// GetInsight generates an AI insight grounded in the stored context most
// relevant to the given text.
func (c *Client) GetInsight(ctx context.Context, text string) (*InsightResult, error) {
	in, err := newTextInput(text)
	if err != nil {
		return nil, err
	}
	resp, err := httpclient.Post[InsightResult](c.http, ctx, pathInsight, in)
	if err != nil {
		return nil, err
	}
	return &resp.Data, nil
}

// get is a small helper for the parameterless GET operations.
func get[T any](c *Client, ctx context.Context, path string) (*T, error) {
	resp, err := httpclient.Get[T](c.http, ctx, path)
	if err != nil {
		return nil, err
	}
	return &resp.Data, nil
}
