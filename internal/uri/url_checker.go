package uri

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"go.uber.org/zap"

	"github.com/nitk/memory-vault/internal/adapter"
	"github.com/nitk/memory-vault/internal/logger"
)

// HealthStatus represents the result of a health check
type HealthStatus string

const (
	// HealthStatusHealthy indicates the URL is accessible
	HealthStatusHealthy HealthStatus = "healthy"
	// HealthStatusBroken indicates the URL is not accessible
	HealthStatusBroken HealthStatus = "broken"
)

// HealthCheckResult represents the result of checking a URL's health
type HealthCheckResult struct {
	Status HealthStatus
	Error  *string // Error message if broken
}

// Healthy reports whether the URL was reachable
func (r HealthCheckResult) Healthy() bool {
	return r.Status == HealthStatusHealthy
}

// URLChecker defines the interface for checking URL health
//
//go:generate mockgen -source=url_checker.go -destination=../mocks/url_checker.go -package=mocks -mock_names=URLChecker=MockURLChecker
type URLChecker interface {
	// Check performs a health check on an HTTP(S) URL
	Check(ctx context.Context, url string) HealthCheckResult
}

type urlChecker struct {
	httpClient adapter.HTTPClient
	io         adapter.IO
}

// NewURLChecker creates a new health checker
func NewURLChecker(httpClient adapter.HTTPClient, io adapter.IO) URLChecker {
	return &urlChecker{
		httpClient: httpClient,
		io:         io,
	}
}

// Check tries a HEAD request, then a ranged GET for gateways that reject HEAD
func (c *urlChecker) Check(ctx context.Context, rawURL string) HealthCheckResult {
	parsed, err := url.Parse(rawURL)
	if err != nil || (parsed.Scheme != "http" && parsed.Scheme != "https") || parsed.Host == "" {
		return broken("only HTTP/HTTPS URLs are supported")
	}

	resp, err := c.httpClient.Head(ctx, rawURL)
	if resp != nil && resp.Body != nil {
		_ = resp.Body.Close()
	}
	if err == nil && resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return HealthCheckResult{Status: HealthStatusHealthy}
	}

	logger.DebugCtx(ctx, "HEAD request failed, trying GET with Range", zap.String("url", rawURL), zap.Error(err))

	return c.checkWithRange(ctx, rawURL)
}

// checkWithRange performs a GET request with Range header to minimize data transfer
func (c *urlChecker) checkWithRange(ctx context.Context, rawURL string) HealthCheckResult {
	headers := map[string]string{
		"Range": "bytes=0-1023", // Request only first 1KB
	}

	resp, err := c.httpClient.GetResponse(ctx, rawURL, headers)
	if err != nil {
		return broken(err.Error())
	}
	defer func() {
		if resp.Body != nil {
			_ = c.io.Discard(resp.Body)
			_ = resp.Body.Close()
		}
	}()

	switch resp.StatusCode {
	case http.StatusPartialContent, http.StatusOK:
		return HealthCheckResult{Status: HealthStatusHealthy}
	default:
		return broken(fmt.Sprintf("HTTP %d", resp.StatusCode))
	}
}

func broken(message string) HealthCheckResult {
	return HealthCheckResult{
		Status: HealthStatusBroken,
		Error:  &message,
	}
}
