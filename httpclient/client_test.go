package httpclient

import (
	"context"
	"encoding/json"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/paifilter/paikit/errors"
	"github.com/paifilter/paikit/resilience"
)

// fastRetry returns the standard policy with a test-friendly base delay.
func fastRetry() *resilience.RetryConfig {
	cfg := DefaultRetryConfig()
	cfg.BaseDelay = time.Millisecond
	return cfg
}

// refusingListener accepts and immediately drops every connection,
// counting the attempts. Simulates a backend that never responds.
func refusingListener(t *testing.T) (addr string, attempts *atomic.Int64) {
	t.Helper()
	l, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	t.Cleanup(func() { _ = l.Close() })

	var count atomic.Int64
	go func() {
		for {
			conn, err := l.Accept()
			if err != nil {
				return
			}
			count.Add(1)
			_ = conn.Close()
		}
	}()
	return "http://" + l.Addr().String(), &count
}

func TestClient_Do_GET(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			t.Errorf("expected GET, got %s", r.Method)
		}
		if r.URL.Path != "/api/v1/feeds" {
			t.Errorf("expected /api/v1/feeds, got %s", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode([]map[string]string{{"name": "TechCrunch"}})
	}))
	defer srv.Close()

	c, err := New(Config{BaseURL: srv.URL})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	resp, err := c.Do(context.Background(), Request{
		Method: http.MethodGet,
		Path:   "/api/v1/feeds",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.StatusCode != 200 {
		t.Errorf("expected 200, got %d", resp.StatusCode)
	}
	if !strings.Contains(string(resp.Body), "TechCrunch") {
		t.Errorf("response body should contain TechCrunch, got %s", string(resp.Body))
	}
}

func TestClient_Do_POST_JSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("expected POST, got %s", r.Method)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("expected Content-Type application/json, got %s", ct)
		}
		var body map[string]string
		json.NewDecoder(r.Body).Decode(&body)
		if body["text"] != "hello" {
			t.Errorf("expected text=hello, got %q", body["text"])
		}
		w.WriteHeader(200)
	}))
	defer srv.Close()

	c, err := New(Config{BaseURL: srv.URL})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	_, err = c.Do(context.Background(), Request{
		Method: http.MethodPost,
		Path:   "/api/v1/vectorize",
		Body:   map[string]string{"text": "hello"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestClient_Do_SetsRequestID(t *testing.T) {
	var gotID string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotID = r.Header.Get("X-Request-ID")
		w.WriteHeader(200)
	}))
	defer srv.Close()

	c, _ := New(Config{BaseURL: srv.URL})
	resp, err := c.Do(context.Background(), Request{Method: http.MethodGet, Path: "/"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotID == "" {
		t.Error("expected X-Request-ID header to be set")
	}
	if resp.RequestID != gotID {
		t.Errorf("expected response RequestID %q, got %q", gotID, resp.RequestID)
	}
}

func TestClient_Do_DefaultHeadersAndQuery(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("X-Custom"); got != "value" {
			t.Errorf("expected X-Custom=value, got %q", got)
		}
		if got := r.URL.Query().Get("top_k"); got != "5" {
			t.Errorf("expected top_k=5, got %q", got)
		}
		w.WriteHeader(200)
	}))
	defer srv.Close()

	c, _ := New(Config{
		BaseURL: srv.URL,
		Headers: map[string]string{"X-Custom": "value"},
	})
	_, err := c.Do(context.Background(), Request{
		Method: http.MethodGet,
		Path:   "/",
		Query:  map[string]string{"top_k": "5"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestClient_Do_NoResponse_RetriesToExhaustion(t *testing.T) {
	addr, attempts := refusingListener(t)

	c, _ := New(Config{BaseURL: addr, Retry: fastRetry()})
	_, err := c.Do(context.Background(), Request{Method: http.MethodPost, Path: "/api/v1/vectorize", Body: map[string]string{"text": "x"}})
	if err == nil {
		t.Fatal("expected error")
	}

	// 1 initial attempt + 3 retries
	if got := attempts.Load(); got != 4 {
		t.Errorf("expected 4 connection attempts, got %d", got)
	}
	if !errors.IsNetworkError(err) {
		t.Errorf("expected network_error, got %v", err)
	}
	apiErr, _ := errors.AsAPIError(err)
	if apiErr.Detail.Message == "" {
		t.Error("expected transport message to be preserved")
	}
	if apiErr.Timestamp.IsZero() {
		t.Error("expected timestamp on normalized error")
	}
}

func TestClient_Do_HTTPError_NeverRetried(t *testing.T) {
	var calls atomic.Int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(500)
	}))
	defer srv.Close()

	c, _ := New(Config{BaseURL: srv.URL, Retry: fastRetry()})
	_, err := c.Do(context.Background(), Request{Method: http.MethodPost, Path: "/api/v1/insight"})
	if err == nil {
		t.Fatal("expected error")
	}
	if got := calls.Load(); got != 1 {
		t.Errorf("expected exactly 1 attempt for a status-coded failure, got %d", got)
	}
	if errors.IsNetworkError(err) {
		t.Error("status-coded failure must not be network_error")
	}
}

func TestClient_Do_PreShapedErrorBody_PassesThroughUnchanged(t *testing.T) {
	var calls atomic.Int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(500)
		w.Write([]byte(`{"success":false,"error":{"code":"insight_failed","message":"model unavailable"},"timestamp":"2025-06-01T00:00:00Z"}`))
	}))
	defer srv.Close()

	c, _ := New(Config{BaseURL: srv.URL, Retry: fastRetry()})
	_, err := c.Do(context.Background(), Request{Method: http.MethodPost, Path: "/api/v1/insight"})
	if err == nil {
		t.Fatal("expected error")
	}

	apiErr, ok := errors.AsAPIError(err)
	if !ok {
		t.Fatalf("expected APIError, got %T", err)
	}
	if apiErr.Detail.Code != "insight_failed" {
		t.Errorf("expected insight_failed, got %s", apiErr.Detail.Code)
	}
	if apiErr.Detail.Message != "model unavailable" {
		t.Errorf("expected backend message preserved, got %q", apiErr.Detail.Message)
	}
	if apiErr.HTTPStatus != 500 {
		t.Errorf("expected HTTPStatus 500, got %d", apiErr.HTTPStatus)
	}
	if !apiErr.Timestamp.Equal(time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("expected backend timestamp preserved, got %v", apiErr.Timestamp)
	}
	if got := calls.Load(); got != 1 {
		t.Errorf("expected zero retries, got %d attempts", got)
	}
}

func TestClient_Do_NetworkErrorBodyWithStatus_NeverRetried(t *testing.T) {
	// A gateway can answer 502 with a pass-through body whose code is
	// network_error. A response was received, so exactly one attempt.
	var calls atomic.Int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(502)
		w.Write([]byte(`{"success":false,"error":{"code":"network_error","message":"upstream connect error"},"timestamp":"2025-06-01T00:00:00Z"}`))
	}))
	defer srv.Close()

	c, _ := New(Config{BaseURL: srv.URL, Retry: fastRetry()})
	_, err := c.Do(context.Background(), Request{Method: http.MethodPost, Path: "/api/v1/vectorize", Body: map[string]string{"text": "x"}})
	if err == nil {
		t.Fatal("expected error")
	}
	if got := calls.Load(); got != 1 {
		t.Errorf("a received response must never be retried, got %d attempts", got)
	}
	apiErr, ok := errors.AsAPIError(err)
	if !ok {
		t.Fatalf("expected APIError, got %T", err)
	}
	if apiErr.Detail.Code != errors.CodeNetworkError {
		t.Errorf("expected pass-through code preserved, got %s", apiErr.Detail.Code)
	}
	if apiErr.HTTPStatus != 502 {
		t.Errorf("expected HTTPStatus 502, got %d", apiErr.HTTPStatus)
	}
	if apiErr.Retryable() {
		t.Error("status-coded envelope must not be retryable")
	}
}

func TestClient_Do_SucceedsAfterTransientFailure(t *testing.T) {
	// First two connections are dropped, then a real server handles the rest.
	l, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var dropped atomic.Int64
	srv := &http.Server{Handler: http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(200)
		w.Write([]byte(`{"status":"online"}`))
	})}
	go func() {
		for {
			conn, err := l.Accept()
			if err != nil {
				return
			}
			if dropped.Load() < 2 {
				dropped.Add(1)
				_ = conn.Close()
				continue
			}
			go srv.Serve(&oneShotListener{conn: conn})
		}
	}()
	t.Cleanup(func() { _ = l.Close() })

	c, _ := New(Config{BaseURL: "http://" + l.Addr().String(), Retry: fastRetry()})
	resp, err := c.Do(context.Background(), Request{Method: http.MethodGet, Path: "/"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.StatusCode != 200 {
		t.Errorf("expected 200, got %d", resp.StatusCode)
	}
	if dropped.Load() != 2 {
		t.Errorf("expected 2 dropped connections, got %d", dropped.Load())
	}
}

// oneShotListener serves a single already-accepted connection.
type oneShotListener struct {
	conn net.Conn
	done atomic.Bool
}

func (l *oneShotListener) Accept() (net.Conn, error) {
	if l.done.Swap(true) {
		return nil, net.ErrClosed
	}
	return l.conn, nil
}

func (l *oneShotListener) Close() error   { return nil }
func (l *oneShotListener) Addr() net.Addr { return l.conn.LocalAddr() }

func TestClient_Do_LinearBackoffDelays(t *testing.T) {
	addr, _ := refusingListener(t)

	var delays []time.Duration
	retry := fastRetry()
	retry.OnRetry = func(attempt int, err error, delay time.Duration) {
		delays = append(delays, delay)
	}

	c, _ := New(Config{BaseURL: addr, Retry: retry})
	_, _ = c.Do(context.Background(), Request{Method: http.MethodGet, Path: "/"})

	want := []time.Duration{1 * time.Millisecond, 2 * time.Millisecond, 3 * time.Millisecond}
	if len(delays) != len(want) {
		t.Fatalf("expected %d delays, got %d", len(want), len(delays))
	}
	for i, d := range delays {
		if d != want[i] {
			t.Errorf("delay %d: expected %v, got %v", i+1, want[i], d)
		}
	}
}

func TestClient_Do_ContextCancellation_StopsRetrying(t *testing.T) {
	addr, attempts := refusingListener(t)

	retry := DefaultRetryConfig()
	retry.BaseDelay = 50 * time.Millisecond

	c, _ := New(Config{BaseURL: addr, Retry: retry})
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := c.Do(ctx, Request{Method: http.MethodGet, Path: "/"})
	if err == nil {
		t.Fatal("expected error")
	}
	// Cancellation aborts the backoff sleep; nowhere near 4 attempts.
	if got := attempts.Load(); got > 2 {
		t.Errorf("expected at most 2 attempts before cancellation, got %d", got)
	}
	apiErr, ok := errors.AsAPIError(err)
	if !ok {
		t.Fatalf("expected normalized envelope, got %T", err)
	}
	if apiErr.Detail.Code != errors.CodeNetworkError {
		t.Errorf("expected network_error envelope, got %s", apiErr.Detail.Code)
	}
}

func TestClient_Do_NoRetryConfig_SingleAttempt(t *testing.T) {
	addr, attempts := refusingListener(t)

	c, _ := New(Config{BaseURL: addr})
	_, err := c.Do(context.Background(), Request{Method: http.MethodGet, Path: "/"})
	if err == nil {
		t.Fatal("expected error")
	}
	if got := attempts.Load(); got != 1 {
		t.Errorf("expected 1 attempt with retry disabled, got %d", got)
	}
}

func TestClient_Do_UnencodableBody_InternalError(t *testing.T) {
	var calls atomic.Int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
	}))
	defer srv.Close()

	c, _ := New(Config{BaseURL: srv.URL, Retry: fastRetry()})
	_, err := c.Do(context.Background(), Request{
		Method: http.MethodPost,
		Path:   "/api/v1/context",
		Body:   make(chan int),
	})
	if err == nil {
		t.Fatal("expected error")
	}
	if !errors.IsCode(err, errors.CodeInternalError) {
		t.Errorf("expected internal_error for an unencodable body, got %v", err)
	}
	if errors.IsValidationError(err) {
		t.Error("construction failures must not masquerade as input validation")
	}
	if got := calls.Load(); got != 0 {
		t.Errorf("expected no request to be sent, got %d", got)
	}
}

func TestNew_RequiresBaseURL(t *testing.T) {
	if _, err := New(Config{}); err == nil {
		t.Error("expected error for missing base URL")
	}
}

func TestNew_DefaultTimeout(t *testing.T) {
	c, err := New(Config{BaseURL: "http://localhost:8000"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.Unwrap().Timeout != 30*time.Second {
		t.Errorf("expected 30s timeout, got %v", c.Unwrap().Timeout)
	}
}
