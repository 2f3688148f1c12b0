// Package httpclient provides the resilient HTTP client underneath the PAI
// API surface.
//
// The client wraps a configured base endpoint and presents every caller
// with one of two outcomes: a successfully decoded typed result, or a
// normalized error envelope (errors.APIError). Transient transport
// failures — connection refused, DNS failure, per-attempt timeout — are
// retried with linear backoff; any failure that arrives with an HTTP
// response, whatever the status code, is surfaced immediately without
// retry.
//
//	client, err := httpclient.New(httpclient.Config{
//	    BaseURL: "http://localhost:8000",
//	    Retry:   httpclient.DefaultRetryConfig(),
//	})
//
//	resp, err := client.Do(ctx, httpclient.Request{
//	    Method: http.MethodPost,
//	    Path:   "/api/v1/vectorize",
//	    Body:   map[string]string{"text": "hello"},
//	})
package httpclient
