// Package googlebooks wraps the Google Books volumes API. It fetches raw
// volume records and normalizes them into canonical books, filtering out
// papers, textbooks, and other non-trade content.
package googlebooks

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"golang.org/x/time/rate"
)

const (
	// DefaultEndpoint is the public Google Books volumes endpoint.
	DefaultEndpoint = "https://www.googleapis.com/books/v1/volumes"

	// Rate limit: 2 requests per second, burst of 5. The keyless quota is
	// tight and the upstream throttles aggressively past it.
	defaultRPS   = 2.0
	defaultBurst = 5

	defaultTimeout = 30 * time.Second

	// Result count bounds accepted by the upstream maxResults parameter.
	defaultMaxResults = 20
	maxMaxResults     = 40
)

// Sentinel errors for catalog operations.
var (
	ErrNotFound = errors.New("googlebooks: volume not found")
	ErrUpstream = errors.New("googlebooks: upstream rejected request")
)

// Client is a rate-limited Google Books API client.
type Client struct {
	http     *http.Client
	limiter  *rate.Limiter
	logger   *slog.Logger
	endpoint string
	apiKey   string
}

// Config carries client settings.
type Config struct {
	// Endpoint overrides the API base URL. Defaults to DefaultEndpoint.
	Endpoint string
	// APIKey is optional. When set it is attached to requests, and requests
	// that fail with it are retried once without it.
	APIKey string
}

// New creates a new Google Books client.
func New(cfg Config, logger *slog.Logger) *Client {
	endpoint := cfg.Endpoint
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	return &Client{
		http: &http.Client{
			Timeout: defaultTimeout,
		},
		limiter:  rate.NewLimiter(rate.Limit(defaultRPS), defaultBurst),
		logger:   logger,
		endpoint: endpoint,
		apiKey:   cfg.APIKey,
	}
}

// doRequest executes a GET against a fully built URL with rate limiting.
func (c *Client) doRequest(ctx context.Context, fullURL string) ([]byte, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "Buchshelf/1.0")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	switch {
	case resp.StatusCode == http.StatusOK:
		return body, nil
	case resp.StatusCode == http.StatusNotFound:
		return nil, ErrNotFound
	default:
		c.logger.Debug("google books request failed",
			"status", resp.StatusCode,
		)
		return nil, fmt.Errorf("%w: status %d", ErrUpstream, resp.StatusCode)
	}
}
