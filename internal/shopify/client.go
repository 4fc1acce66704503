package shopify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/awadali7/Pro-shopify-backend/internal/config"
	apperrors "github.com/awadali7/Pro-shopify-backend/pkg/errors"
)

// Upstream call outcomes reported to the Observer
const (
	OutcomeOK          = "ok"
	OutcomeErrorStatus = "error_status"
	OutcomeUnreachable = "unreachable"
	OutcomeSetup       = "setup"
)

// Observer receives one record per upstream call
type Observer interface {
	ObserveUpstream(resource, outcome string, elapsed time.Duration)
}

type Client struct {
	baseURL     string
	accessToken string
	httpClient  *http.Client
	limiter     *rate.Limiter
	observer    Observer
	logger      *zap.Logger
}

// Option customises a Client
type Option func(*Client)

// WithObserver reports every upstream call to o
func WithObserver(o Observer) Option {
	return func(c *Client) {
		c.observer = o
	}
}

// WithHTTPClient replaces the instrumented default HTTP client
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// NewClient creates a new Shopify Admin REST client
func NewClient(cfg config.ShopifyConfig, logger *zap.Logger, opts ...Option) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}

	// Normalize shop domain - default to https://, drop trailing slashes.
	// An explicit scheme is kept so local mocks can be plain http.
	origin := strings.TrimSuffix(strings.TrimSpace(cfg.ShopDomain), "/")
	if !strings.HasPrefix(origin, "https://") && !strings.HasPrefix(origin, "http://") {
		origin = "https://" + origin
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	c := &Client{
		baseURL:     fmt.Sprintf("%s/admin/api/%s", origin, cfg.APIVersion),
		accessToken: cfg.AccessToken,
		httpClient: &http.Client{
			Transport: otelhttp.NewTransport(http.DefaultTransport),
			Timeout:   timeout,
		},
		logger: logger,
	}
	if cfg.RateLimit > 0 {
		c.limiter = rate.NewLimiter(rate.Limit(cfg.RateLimit), cfg.RateBurst)
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the versioned Admin API root, e.g. https://shop/admin/api/2024-10
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Response is a successful (2xx) upstream response
type Response struct {
	StatusCode int
	Header     http.Header
	Body       []byte
}

// ContentType returns the upstream Content-Type, defaulting to JSON
func (r *Response) ContentType() string {
	if ct := r.Header.Get("Content-Type"); ct != "" {
		return ct
	}
	return "application/json"
}

// Do sends one request to the Admin REST API. path is relative to the
// versioned root ("price_rules.json") unless it is already an absolute URL,
// as pagination links are. Failures are classified into the pkg/errors types.
func (c *Client) Do(ctx context.Context, method, resource, path string, payload interface{}) (*Response, error) {
	start := time.Now()
	resp, outcome, err := c.do(ctx, method, resource, path, payload)
	if c.observer != nil {
		c.observer.ObserveUpstream(resource, outcome, time.Since(start))
	}
	return resp, err
}

func (c *Client) do(ctx context.Context, method, resource, path string, payload interface{}) (*Response, string, error) {
	url := path
	if !strings.HasPrefix(path, "http://") && !strings.HasPrefix(path, "https://") {
		url = c.baseURL + "/" + strings.TrimPrefix(path, "/")
	}

	var body io.Reader
	if payload != nil {
		jsonData, err := json.Marshal(payload)
		if err != nil {
			return nil, OutcomeSetup, &apperrors.ErrRequestSetup{Resource: resource, Err: fmt.Errorf("failed to marshal request: %w", err)}
		}
		body = bytes.NewBuffer(jsonData)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return nil, OutcomeSetup, &apperrors.ErrRequestSetup{Resource: resource, Err: fmt.Errorf("failed to create request: %w", err)}
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Shopify-Access-Token", c.accessToken)

	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, OutcomeSetup, &apperrors.ErrRequestSetup{Resource: resource, Err: fmt.Errorf("rate limiter: %w", err)}
		}
	}

	c.logger.Debug("Shopify request", zap.String("method", method), zap.String("resource", resource), zap.String("url", url))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warn("Shopify request failed", zap.Error(err), zap.String("resource", resource))
		return nil, OutcomeUnreachable, &apperrors.ErrUpstreamUnreachable{Resource: resource, Err: err}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		c.logger.Warn("Failed to read Shopify response", zap.Error(err), zap.String("resource", resource))
		return nil, OutcomeUnreachable, &apperrors.ErrUpstreamUnreachable{Resource: resource, Err: fmt.Errorf("failed to read response: %w", err)}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.logger.Warn("Shopify API error",
			zap.String("resource", resource),
			zap.Int("status", resp.StatusCode),
			zap.ByteString("body", truncate(respBody, 512)),
		)
		return nil, OutcomeErrorStatus, &apperrors.ErrUpstream{Resource: resource, StatusCode: resp.StatusCode, Body: respBody}
	}

	return &Response{StatusCode: resp.StatusCode, Header: resp.Header, Body: respBody}, OutcomeOK, nil
}

func truncate(b []byte, n int) []byte {
	if len(b) <= n {
		return b
	}
	return b[:n]
}
