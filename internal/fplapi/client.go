// Package fplapi is the HTTP client for the external statistics API. It is
// the only component with unbounded external latency, so every call carries
// its own timeout, a circuit breaker guards the upstream, and HTTP 429 is
// retried with exponential backoff.
package fplapi

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/goccy/go-json"
	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/goliatone/go-fpl-sync/schema"
)

// maxErrorBodySize bounds how much of an error response body is read back
// for diagnostics.
const maxErrorBodySize = 16 * 1024

const maxRateLimitAttempts = 5

// Config holds the client settings.
type Config struct {
	// BaseURL is the API root, e.g. https://fantasy.premierleague.com/api
	BaseURL string

	// Timeout bounds each request, deadline included. A timed-out fetch
	// surfaces as an APIError like any other fetch failure.
	Timeout time.Duration

	// RetryBaseDelay is the first backoff step after an HTTP 429. Doubled
	// per attempt.
	RetryBaseDelay time.Duration

	// HTTPClient optionally overrides the transport. Defaults to
	// http.DefaultClient.
	HTTPClient *http.Client
}

// Client talks to the external API and hands raw element batches to the
// schema validator.
type Client struct {
	http           *http.Client
	base           string
	timeout        time.Duration
	retryBaseDelay time.Duration
	breaker        *gobreaker.CircuitBreaker[[]byte]
}

// New creates a Client. The circuit breaker opens on five consecutive
// failures and recovers after thirty seconds.
func New(cfg Config) (*Client, error) {
	if cfg.BaseURL == "" {
		return nil, errors.New("fplapi: BaseURL must not be empty")
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}
	if cfg.RetryBaseDelay <= 0 {
		cfg.RetryBaseDelay = time.Second
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	breaker := gobreaker.NewCircuitBreaker[[]byte](gobreaker.Settings{
		Name:        "fplapi",
		MaxRequests: 1,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
	})

	return &Client{
		http:           httpClient,
		base:           strings.TrimRight(cfg.BaseURL, "/"),
		timeout:        cfg.Timeout,
		retryBaseDelay: cfg.RetryBaseDelay,
		breaker:        breaker,
	}, nil
}

// Bootstrap fetches the season-wide snapshot: events, teams and players.
func (c *Client) Bootstrap(ctx context.Context) (*schema.BootstrapDocument, error) {
	var doc schema.BootstrapDocument
	if err := c.getJSON(ctx, "/bootstrap-static/", &doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

// Fixtures fetches the fixtures of one event.
func (c *Client) Fixtures(ctx context.Context, eventID int64) ([]json.RawMessage, error) {
	var fixtures []json.RawMessage
	endpoint := fmt.Sprintf("/fixtures/?event=%d", eventID)
	if err := c.getJSON(ctx, endpoint, &fixtures); err != nil {
		return nil, err
	}
	return fixtures, nil
}

// Live fetches the per-player live stat lines of one event.
func (c *Client) Live(ctx context.Context, eventID int64) ([]json.RawMessage, error) {
	var doc schema.LiveDocument
	endpoint := fmt.Sprintf("/event/%d/live/", eventID)
	if err := c.getJSON(ctx, endpoint, &doc); err != nil {
		return nil, err
	}
	return doc.Elements, nil
}

// Picks fetches one entry's squad picks for one event.
func (c *Client) Picks(ctx context.Context, entryID, eventID int64) ([]json.RawMessage, error) {
	var doc schema.PicksDocument
	endpoint := fmt.Sprintf("/entry/%d/event/%d/picks/", entryID, eventID)
	if err := c.getJSON(ctx, endpoint, &doc); err != nil {
		return nil, err
	}
	return doc.Picks, nil
}

func (c *Client) getJSON(ctx context.Context, endpoint string, dest any) error {
	body, err := c.breaker.Execute(func() ([]byte, error) {
		return c.get(ctx, endpoint)
	})
	if err != nil {
		var apiErr *APIError
		if errors.As(err, &apiErr) {
			return apiErr
		}
		// Breaker rejections and transport errors arrive unwrapped.
		return &APIError{Endpoint: endpoint, Err: err}
	}

	if err := json.Unmarshal(body, dest); err != nil {
		return &APIError{Endpoint: endpoint, Err: fmt.Errorf("decode response: %w", err)}
	}
	return nil
}

func (c *Client) get(ctx context.Context, endpoint string) ([]byte, error) {
	delay := c.retryBaseDelay

	for attempt := 1; ; attempt++ {
		body, status, err := c.do(ctx, endpoint)
		if err != nil {
			return nil, &APIError{Endpoint: endpoint, Err: err}
		}

		switch {
		case status == http.StatusOK:
			return body, nil
		case status == http.StatusTooManyRequests && attempt < maxRateLimitAttempts:
			select {
			case <-time.After(delay):
				delay *= 2
			case <-ctx.Done():
				return nil, &APIError{Endpoint: endpoint, Err: ctx.Err()}
			}
		default:
			return nil, &APIError{
				Endpoint: endpoint,
				Status:   status,
				Err:      fmt.Errorf("unexpected status: %s", strings.TrimSpace(string(body))),
			}
		}
	}
}

func (c *Client) do(ctx context.Context, endpoint string) ([]byte, int, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.base+endpoint, nil)
	if err != nil {
		return nil, 0, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, 0, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodySize))
		return body, resp.StatusCode, nil
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, 0, err
	}
	return body, resp.StatusCode, nil
}
