// internal/infrastructure/persistence/restclient.go
package persistence

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/oauth2"

	"claimdesk-service/internal/domain/entity"
	"claimdesk-service/internal/infrastructure/config"
	"claimdesk-service/pkg/logger"
	"claimdesk-service/pkg/metrics"
)

// Client issues requests against the claims backend (REST collection plus
// object storage) and wraps every call in a bounded retry loop. Failures are
// normalized to *entity.APIError before they leave this package.
//
// The retry policy is deliberately uniform: any failure, including 4xx,
// triggers the same fixed-delay retry up to the cap, then surfaces. Callers
// cancel via the request context; cancellation aborts the in-flight request
// and suppresses the remaining retries for that call only.
type Client struct {
	httpClient *http.Client
	restURL    string
	storageURL string
	token      string
	maxRetries int
	retryDelay time.Duration
	logger     logger.Logger
	metrics    *metrics.Metrics
}

// NewClient creates a client for the configured backend. The fixed bearer
// credential rides on every request through a static oauth2 token source.
func NewClient(cfg *config.Config, log logger.Logger, m *metrics.Metrics) *Client {
	tokenSource := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: cfg.Token})

	httpClient := &http.Client{
		Timeout: cfg.RequestTimeout,
		Transport: &oauth2.Transport{
			Source: tokenSource,
			Base:   http.DefaultTransport,
		},
	}

	return &Client{
		httpClient: httpClient,
		restURL:    cfg.RestURL,
		storageURL: cfg.StorageURL,
		token:      cfg.Token,
		maxRetries: cfg.MaxRetries,
		retryDelay: cfg.RetryDelay,
		logger:     log,
		metrics:    m,
	}
}

// RestEndpoint builds a URL under the REST base with the apikey attached
func (c *Client) RestEndpoint(path string, params url.Values) string {
	return c.endpoint(c.restURL, path, params)
}

// StorageEndpoint builds a URL under the storage base with the apikey attached
func (c *Client) StorageEndpoint(path string, params url.Values) string {
	return c.endpoint(c.storageURL, path, params)
}

// PublicObjectURL returns the public read URL of an uploaded object
func (c *Client) PublicObjectURL(bucket, key string) string {
	return fmt.Sprintf("%s/object/public/%s/%s", c.storageURL, bucket, key)
}

func (c *Client) endpoint(base, path string, params url.Values) string {
	if params == nil {
		params = url.Values{}
	}
	// The backend accepts the credential as header and query parameter; the
	// deployed storage endpoints check the query form.
	params.Set("apikey", c.token)
	return base + path + "?" + params.Encode()
}

// Do issues one logical operation with retries. The body, when present, is
// replayed from the byte slice on every attempt. It returns the response body
// and status of the first successful attempt.
func (c *Client) Do(ctx context.Context, op, method, rawURL string, body []byte, contentType string, headers map[string]string) ([]byte, int, error) {
	var lastErr error

	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if attempt > 0 {
			c.metrics.APIRetries.Inc()
			select {
			case <-ctx.Done():
				return nil, 0, c.normalize(op, ctx.Err())
			case <-time.After(c.retryDelay):
			}
		}

		data, status, err := c.once(ctx, op, method, rawURL, body, contentType, headers)
		if err == nil {
			return data, status, nil
		}

		lastErr = err
		c.metrics.APIErrors.WithLabelValues(op).Inc()
		c.logger.Warn("backend request failed",
			"operation", op,
			"attempt", attempt+1,
			"error", err)

		if ctx.Err() != nil {
			break
		}
	}

	return nil, 0, c.normalize(op, lastErr)
}

func (c *Client) once(ctx context.Context, op, method, rawURL string, body []byte, contentType string, headers map[string]string) ([]byte, int, error) {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, rawURL, reader)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to create request: %w", err)
	}

	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	c.logger.Debug("api request", "operation", op, "method", method, "url", req.URL.Path)
	c.metrics.APIRequests.WithLabelValues(op).Inc()

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	c.metrics.APIRequestSeconds.Observe(time.Since(start).Seconds())
	if err != nil {
		return nil, 0, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, resp.StatusCode, fmt.Errorf("failed to read response: %w", err)
	}

	c.logger.Debug("api response", "operation", op, "status", resp.StatusCode)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, resp.StatusCode, &entity.APIError{
			Message: fmt.Sprintf("backend returned status %d", resp.StatusCode),
			Status:  resp.StatusCode,
		}
	}

	return data, resp.StatusCode, nil
}

// normalize reduces any failure to the *entity.APIError shape
func (c *Client) normalize(op string, err error) *entity.APIError {
	if err == nil {
		return nil
	}
	var apiErr *entity.APIError
	if errors.As(err, &apiErr) {
		return apiErr
	}
	return &entity.APIError{
		Message: fmt.Sprintf("%s: %v", op, err),
		Code:    entity.CodeNetwork,
	}
}
