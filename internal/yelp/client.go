package yelp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/DanielTsiang/venue-recommendation-agent/internal/domain"
)

const (
	// DefaultBaseURL is the Yelp Fusion API endpoint.
	DefaultBaseURL = "https://api.yelp.com/v3"
	// DefaultTimeout bounds each physical HTTP attempt.
	DefaultTimeout = 30 * time.Second

	searchPath = "/businesses/search"
)

// Client calls the Yelp Fusion business-search API. Configuration is
// fixed at construction; the underlying connection is a scoped
// resource managed with Open/Close. One opened client is safe for
// concurrent Search calls.
type Client struct {
	apiKey     string
	baseURL    string
	timeout    time.Duration
	logger     *slog.Logger
	httpClient *http.Client // nil until Open

	// retry policy, injectable so tests can substitute schedules
	retryable func(error) bool
	backoff   func(attempt int) time.Duration
}

// NewClient creates a Yelp client with the default endpoint and timeout.
func NewClient(apiKey string, logger *slog.Logger) *Client {
	return NewClientWithConfig(apiKey, DefaultBaseURL, DefaultTimeout, logger)
}

// NewClientWithConfig creates a Yelp client with custom configuration.
func NewClientWithConfig(apiKey string, baseURL string, timeout time.Duration, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		apiKey:    apiKey,
		baseURL:   baseURL,
		timeout:   timeout,
		logger:    logger,
		retryable: isRetryable,
		backoff:   backoffDelay,
	}
}

// Open acquires the underlying HTTP connection. Callers must pair it
// with Close on every exit path, typically via defer.
func (c *Client) Open() {
	c.httpClient = &http.Client{
		Timeout: c.timeout,
	}
}

// Close releases the connection. Safe to call on a never-opened client.
func (c *Client) Close() {
	if c.httpClient != nil {
		c.httpClient.CloseIdleConnections()
		c.httpClient = nil
	}
}

// Search issues one logical business search. Transient failures
// (network errors, timeouts, 5xx) are retried up to maxAttempts with
// exponential backoff; all other failures propagate immediately,
// translated into the domain taxonomy. After exhausting retries the
// last observed failure is surfaced.
func (c *Client) Search(ctx context.Context, criteria SearchCriteria) (*SearchResponse, error) {
	if c.httpClient == nil {
		return nil, domain.NewAPIError(domain.ErrMisuse,
			"client not opened: call Open before Search", nil)
	}

	if err := criteria.Validate(); err != nil {
		return nil, err
	}

	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		if attempt > 1 {
			delay := c.backoff(attempt - 1)
			c.logger.Debug("retrying yelp search",
				"attempt", attempt,
				"delay", delay,
				"error", lastErr,
			)
			timer := time.NewTimer(delay)
			select {
			case <-ctx.Done():
				timer.Stop()
				return nil, ctx.Err()
			case <-timer.C:
			}
		}

		resp, err := c.doSearch(ctx, criteria)
		if err == nil {
			return resp, nil
		}
		lastErr = err

		if !c.retryable(err) {
			return nil, err
		}
	}

	return nil, lastErr
}

// doSearch performs one physical request and translates any failure.
func (c *Client) doSearch(ctx context.Context, criteria SearchCriteria) (*SearchResponse, error) {
	reqURL := c.baseURL + searchPath + "?" + criteria.queryValues().Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, domain.NewAPIError(domain.ErrUpstream, "failed to build request", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Accept", "application/json")

	c.logger.Info("searching yelp",
		"location", criteria.Location,
		"term", criteria.Term,
		"limit", criteria.Limit,
	)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, translateTransportError(err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, translateTransportError(err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, translateStatusError(resp.StatusCode, body)
	}

	var search SearchResponse
	if err := json.Unmarshal(body, &search); err != nil {
		return nil, domain.NewAPIError(domain.ErrValidation,
			"failed to parse yelp response", err)
	}
	if err := search.Validate(); err != nil {
		return nil, domain.NewAPIError(domain.ErrValidation,
			"malformed yelp response", err)
	}

	c.logger.Info("yelp returned businesses",
		"count", len(search.Businesses),
		"total", search.Total,
	)
	return &search, nil
}

// translateTransportError maps a failed round trip to the taxonomy.
// Caller cancellation is propagated untranslated: it is not an
// upstream failure and must not be retried.
func translateTransportError(err error) error {
	if errors.Is(err, context.Canceled) {
		return err
	}

	var urlErr *url.Error
	timeout := errors.Is(err, context.DeadlineExceeded)
	if errors.As(err, &urlErr) && urlErr.Timeout() {
		timeout = true
	}

	if timeout {
		return domain.NewAPIError(domain.ErrTimeout, "yelp API request timed out", err)
	}
	return domain.NewAPIError(domain.ErrNetwork, fmt.Sprintf("network error: %v", err), err)
}

// translateStatusError maps a non-2xx response to the taxonomy.
func translateStatusError(status int, body []byte) error {
	switch {
	case status == http.StatusUnauthorized:
		return &domain.APIError{
			Kind:    domain.ErrAuthentication,
			Message: "invalid Yelp API key",
			Status:  status,
		}
	case status == http.StatusTooManyRequests:
		return &domain.APIError{
			Kind:    domain.ErrRateLimit,
			Message: "Yelp API rate limit exceeded",
			Status:  status,
		}
	case status == http.StatusBadRequest:
		return &domain.APIError{
			Kind:    domain.ErrBadRequest,
			Message: fmt.Sprintf("bad request: %s", badRequestDescription(body)),
			Status:  status,
		}
	default:
		return &domain.APIError{
			Kind:    domain.ErrUpstream,
			Message: fmt.Sprintf("Yelp API error (status %d): %s", status, body),
			Status:  status,
		}
	}
}

// badRequestDescription extracts the upstream human-readable message
// from a 400 body, falling back to the raw text when it does not parse.
func badRequestDescription(body []byte) string {
	var parsed struct {
		Error struct {
			Description string `json:"description"`
		} `json:"error"`
	}
	if err := json.Unmarshal(body, &parsed); err == nil && parsed.Error.Description != "" {
		return parsed.Error.Description
	}
	return string(body)
}
