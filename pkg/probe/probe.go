package probe

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"time"

	"github.com/payflow/balance-service/internal/logging"
)

// ErrUnhealthy is returned when the endpoint answers but does not report a healthy service.
var ErrUnhealthy = errors.New("service unhealthy")

// maxBodySize bounds how much of the health response is read.
const maxBodySize = 4 << 10

// Checker performs a single HTTP liveness check against a balance-service instance.
type Checker struct {
	client  *http.Client   // HTTP client for health checks
	logger  logging.Logger // Logger for check events, may be nil
	timeout time.Duration  // Timeout for the whole request
	path    string         // Path for health check requests
	service string         // Expected service name in the response
}

// Option configures a Checker.
type Option func(c *Checker)

// WithTimeout sets the timeout for a single check.
func WithTimeout(d time.Duration) Option {
	return func(c *Checker) { c.timeout = d }
}

// WithPath sets the HTTP path to use when checking health status.
func WithPath(p string) Option {
	return func(c *Checker) { c.path = p }
}

// WithLogger sets the logger used for check events.
func WithLogger(logger logging.Logger) Option {
	return func(c *Checker) { c.logger = logger }
}

// WithExpectedService sets the service name the response must carry.
func WithExpectedService(name string) Option {
	return func(c *Checker) { c.service = name }
}

// NewChecker creates a Checker with provided options.
func NewChecker(opts ...Option) *Checker {
	c := &Checker{
		timeout: 2 * time.Second,
		path:    "/health",
		service: "balance-service",
	}
	for _, opt := range opts {
		opt(c)
	}

	c.client = &http.Client{
		Transport: &http.Transport{
			DialContext:         (&net.Dialer{Timeout: c.timeout}).DialContext,
			TLSHandshakeTimeout: c.timeout,
			DisableKeepAlives:   true,
		},
		Timeout: c.timeout,
	}

	return c
}

type healthResponse struct {
	Status  string `json:"status"`
	Service string `json:"service"`
}

// Check calls the health endpoint under baseURL and returns nil when the
// service reports status "ok" with the expected name.
func (c *Checker) Check(ctx context.Context, baseURL string) error {
	u, err := url.Parse(baseURL)
	if err != nil {
		return fmt.Errorf("invalid base URL: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return errors.New("invalid base URL: the scheme must be http or https")
	}
	if u.Host == "" {
		return errors.New("invalid base URL: requires a host")
	}
	u.Path = c.path
	u.RawQuery = ""

	reqCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(reqCtx, http.MethodGet, u.String(), nil)
	if err != nil {
		return fmt.Errorf("failed to create health check request: %w", err)
	}
	req.Header.Set("User-Agent", "balance-service-healthcheck/1.0")
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		c.warn("Health check failed", "url", u.String(), "error", err)
		return fmt.Errorf("health check request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.warn("Service returned unhealthy status", "url", u.String(), "status", resp.StatusCode)
		return fmt.Errorf("%w: status %d", ErrUnhealthy, resp.StatusCode)
	}

	var body healthResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxBodySize)).Decode(&body); err != nil {
		c.warn("Service returned malformed health body", "url", u.String(), "error", err)
		return fmt.Errorf("%w: malformed body: %v", ErrUnhealthy, err)
	}
	if body.Status != "ok" {
		return fmt.Errorf("%w: status %q", ErrUnhealthy, body.Status)
	}
	if body.Service != c.service {
		return fmt.Errorf("%w: service %q, want %q", ErrUnhealthy, body.Service, c.service)
	}

	if c.logger != nil {
		c.logger.Debug("Service is healthy", "url", u.String())
	}
	return nil
}

func (c *Checker) warn(msg string, keysAndValues ...interface{}) {
	if c.logger != nil {
		c.logger.Warn(msg, keysAndValues...)
	}
}
