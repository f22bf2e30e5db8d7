package fplapi

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"
)

func newTestClient(t *testing.T, handler http.Handler) (*Client, *httptest.Server) {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	client, err := New(Config{
		BaseURL:        srv.URL,
		Timeout:        2 * time.Second,
		RetryBaseDelay: time.Millisecond,
	})
	if err != nil {
		t.Fatalf("failed to create client: %v", err)
	}
	return client, srv
}

func TestNewRequiresBaseURL(t *testing.T) {
	if _, err := New(Config{}); err == nil {
		t.Fatal("expected error for empty base url, got nil")
	}
}

func TestBootstrap(t *testing.T) {
	var gotPath string
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"events": [{"id": 1}, {"id": 2}],
			"teams": [{"id": 1}],
			"elements": [{"id": 100}, {"id": 101}, {"id": 102}]
		}`))
	}))

	doc, err := client.Bootstrap(context.Background())
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if gotPath != "/bootstrap-static/" {
		t.Errorf("expected /bootstrap-static/, got %q", gotPath)
	}
	if len(doc.Events) != 2 || len(doc.Teams) != 1 || len(doc.Elements) != 3 {
		t.Errorf("expected 2/1/3 raw elements, got %d/%d/%d",
			len(doc.Events), len(doc.Teams), len(doc.Elements))
	}
}

func TestFixtures(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/fixtures/" {
			t.Errorf("expected /fixtures/, got %q", r.URL.Path)
		}
		if r.URL.Query().Get("event") != "5" {
			t.Errorf("expected event=5, got %q", r.URL.Query().Get("event"))
		}
		w.Write([]byte(`[{"id": 41}, {"id": 42}]`))
	}))

	fixtures, err := client.Fixtures(context.Background(), 5)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(fixtures) != 2 {
		t.Errorf("expected 2 raw fixtures, got %d", len(fixtures))
	}
}

func TestLiveAndPicksPaths(t *testing.T) {
	var paths []string
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		paths = append(paths, r.URL.Path)
		switch r.URL.Path {
		case "/event/5/live/":
			w.Write([]byte(`{"elements": [{"id": 100}]}`))
		case "/entry/777/event/5/picks/":
			w.Write([]byte(`{"picks": [{"element": 100}, {"element": 101}]}`))
		default:
			http.NotFound(w, r)
		}
	}))

	live, err := client.Live(context.Background(), 5)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(live) != 1 {
		t.Errorf("expected 1 live element, got %d", len(live))
	}

	picks, err := client.Picks(context.Background(), 777, 5)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(picks) != 2 {
		t.Errorf("expected 2 picks, got %d", len(picks))
	}

	if len(paths) != 2 {
		t.Fatalf("expected 2 requests, got %v", paths)
	}
}

func TestRateLimitRetry(t *testing.T) {
	var calls atomic.Int32
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		w.Write([]byte(`[{"id": 41}]`))
	}))

	fixtures, err := client.Fixtures(context.Background(), 5)
	if err != nil {
		t.Fatalf("expected retries to recover, got %v", err)
	}
	if len(fixtures) != 1 {
		t.Errorf("expected 1 fixture, got %d", len(fixtures))
	}
	if got := calls.Load(); got != 3 {
		t.Errorf("expected 3 attempts, got %d", got)
	}
}

func TestRateLimitGivesUp(t *testing.T) {
	var calls atomic.Int32
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusTooManyRequests)
	}))

	_, err := client.Fixtures(context.Background(), 5)
	if err == nil {
		t.Fatal("expected error after exhausting retries, got nil")
	}
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *APIError, got %T", err)
	}
	if apiErr.Status != http.StatusTooManyRequests {
		t.Errorf("expected status 429, got %d", apiErr.Status)
	}
	if got := calls.Load(); got != maxRateLimitAttempts {
		t.Errorf("expected %d attempts, got %d", maxRateLimitAttempts, got)
	}
}

func TestServerErrorSurfacesStatus(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "upstream maintenance", http.StatusServiceUnavailable)
	}))

	_, err := client.Bootstrap(context.Background())
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *APIError, got %T", err)
	}
	if apiErr.Status != http.StatusServiceUnavailable {
		t.Errorf("expected status 503, got %d", apiErr.Status)
	}
	if apiErr.Endpoint != "/bootstrap-static/" {
		t.Errorf("expected endpoint in error, got %q", apiErr.Endpoint)
	}
}

func TestMalformedResponseBody(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<!doctype html>`))
	}))

	_, err := client.Bootstrap(context.Background())
	if err == nil {
		t.Fatal("expected decode error, got nil")
	}
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *APIError, got %T", err)
	}
}

func TestCircuitBreakerOpensAfterConsecutiveFailures(t *testing.T) {
	var calls atomic.Int32
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
	}))

	ctx := context.Background()
	for i := 0; i < 5; i++ {
		if _, err := client.Fixtures(ctx, 5); err == nil {
			t.Fatalf("expected failure on attempt %d, got nil", i+1)
		}
	}
	before := calls.Load()

	// The breaker is open now; this call must be rejected without an HTTP
	// request reaching the server.
	_, err := client.Fixtures(ctx, 5)
	if err == nil {
		t.Fatal("expected open-circuit rejection, got nil")
	}
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *APIError, got %T", err)
	}
	if calls.Load() != before {
		t.Errorf("expected no request while the circuit is open, got %d extra",
			calls.Load()-before)
	}
}

func TestTimeoutSurfacesAsAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	t.Cleanup(srv.Close)

	client, err := New(Config{BaseURL: srv.URL, Timeout: 50 * time.Millisecond})
	if err != nil {
		t.Fatalf("failed to create client: %v", err)
	}

	_, err = client.Bootstrap(context.Background())
	if err == nil {
		t.Fatal("expected timeout error, got nil")
	}
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *APIError, got %T", err)
	}
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("expected the deadline cause to be preserved, got %v", err)
	}
}
