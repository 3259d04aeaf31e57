// Package sru talks to an SRU 2.0 searchRetrieve endpoint and reads its
// XML envelope.
package sru

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"golang.org/x/time/rate"

	infraerrors "github.com/jonesrussell/overheid-search/infrastructure/errors"
	infrahttp "github.com/jonesrussell/overheid-search/infrastructure/http"
	"github.com/jonesrussell/overheid-search/infrastructure/logger"
)

// Protocol constants for searchRetrieve.
const (
	Version      = "2.0"
	RecordSchema = "gzd"

	// MaxRecordsCeiling is the hard upper bound on maximumRecords.
	MaxRecordsCeiling = 100

	DefaultBaseURL          = "https://repository.overheid.nl/sru"
	DefaultTimeout          = 15 * time.Second
	DefaultUserAgent        = "OverheidNL-SearchApp/1.0"
	DefaultFacetLimit       = "50:dt.type,50:w.organisatietype,50:c.product-area,50:dt.creator,25:dt.language,25:w.publicatienaam"
	DefaultMaxResponseBytes = 32 << 20
)

var (
	// ErrTimeout means the request did not complete within the timeout.
	ErrTimeout = errors.New("sru request timed out")
	// ErrUnreachable means no HTTP exchange took place (DNS, refused, reset).
	ErrUnreachable = errors.New("sru endpoint unreachable")
	// ErrResponseTooLarge means the body exceeded MaxResponseBytes.
	ErrResponseTooLarge = errors.New("sru response too large")
)

// Config configures Client.
type Config struct {
	BaseURL          string
	UserAgent        string
	Timeout          time.Duration
	MaxRecords       int
	RateLimitRPS     float64
	RateLimitBurst   int
	MaxResponseBytes int64
}

// Request is one searchRetrieve call.
type Request struct {
	Query          string
	StartRecord    int
	MaximumRecords int
	FacetLimit     string
	// SortKeys is omitted when empty.
	SortKeys string
}

// Client issues single-attempt searchRetrieve requests. It never retries.
type Client struct {
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
	timeout    time.Duration
	maxRecords int
	maxBytes   int64
	log        logger.Logger
}

// Option customizes a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// NewClient creates a Client. Zero config fields take the package defaults.
func NewClient(cfg Config, log logger.Logger, opts ...Option) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = DefaultUserAgent
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.MaxRecords <= 0 || cfg.MaxRecords > MaxRecordsCeiling {
		cfg.MaxRecords = MaxRecordsCeiling
	}
	if cfg.MaxResponseBytes <= 0 {
		cfg.MaxResponseBytes = DefaultMaxResponseBytes
	}
	if log == nil {
		log = logger.NewNop()
	}

	c := &Client{
		baseURL:    cfg.BaseURL,
		timeout:    cfg.Timeout,
		maxRecords: cfg.MaxRecords,
		maxBytes:   cfg.MaxResponseBytes,
		log:        log,
		httpClient: infrahttp.NewClient(&infrahttp.ClientConfig{
			// The context deadline enforces the timeout so it can be told
			// apart from other failures; this is only a backstop.
			Timeout: cfg.Timeout + time.Second,
			Headers: map[string]string{
				"User-Agent": cfg.UserAgent,
				"Accept":     "application/xml",
			},
		}),
	}
	if cfg.RateLimitRPS > 0 {
		c.limiter = rate.NewLimiter(rate.Limit(cfg.RateLimitRPS), max(cfg.RateLimitBurst, 1))
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Endpoint returns the base URL requests are sent to.
func (c *Client) Endpoint() string {
	return c.baseURL
}

// Execute runs one searchRetrieve request and returns the raw XML body.
func (c *Client) Execute(ctx context.Context, req Request) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("%w: waiting for rate limiter: %w", ErrTimeout, err)
		}
	}

	reqURL := c.BuildURL(req)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, http.NoBody)
	if err != nil {
		return nil, infraerrors.WrapWithContext(err, "build sru request")
	}

	start := time.Now()
	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, classify(ctx, err)
	}
	defer func() {
		if closeErr := resp.Body.Close(); closeErr != nil {
			c.log.Debug("Failed to close SRU response body", logger.Error(closeErr))
		}
	}()

	if httpErr := infraerrors.ParseHTTPError(resp); httpErr != nil {
		return nil, infraerrors.WrapWithContext(httpErr, "sru searchRetrieve")
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, c.maxBytes+1))
	if err != nil {
		return nil, classify(ctx, err)
	}
	if int64(len(body)) > c.maxBytes {
		return nil, infraerrors.WrapWithContextf(ErrResponseTooLarge, "body over %d bytes", c.maxBytes)
	}

	c.log.Debug("SRU request completed",
		logger.String("url", reqURL),
		logger.Int("status", resp.StatusCode),
		logger.Int("bytes", len(body)),
		logger.Duration("duration", time.Since(start)),
	)
	return body, nil
}

// BuildURL encodes req as a searchRetrieve URL, clamping maximumRecords.
func (c *Client) BuildURL(req Request) string {
	params := url.Values{}
	params.Set("operation", "searchRetrieve")
	params.Set("version", Version)
	params.Set("query", req.Query)
	params.Set("startRecord", strconv.Itoa(max(req.StartRecord, 1)))
	params.Set("maximumRecords", strconv.Itoa(c.clampRecords(req.MaximumRecords)))
	params.Set("recordSchema", RecordSchema)

	facetLimit := req.FacetLimit
	if facetLimit == "" {
		facetLimit = DefaultFacetLimit
	}
	params.Set("facetLimit", facetLimit)

	if req.SortKeys != "" {
		params.Set("sortKeys", req.SortKeys)
	}
	return c.baseURL + "?" + params.Encode()
}

func (c *Client) clampRecords(n int) int {
	if n < 1 {
		return 1
	}
	return min(n, c.maxRecords)
}

// classify maps a transport failure to ErrTimeout or ErrUnreachable.
// Cancellation by the caller is passed through unchanged.
func classify(ctx context.Context, err error) error {
	if errors.Is(ctx.Err(), context.DeadlineExceeded) || errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %w", ErrTimeout, err)
	}
	if errors.Is(err, context.Canceled) {
		return fmt.Errorf("sru request canceled: %w", err)
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return fmt.Errorf("%w: %w", ErrTimeout, err)
	}
	return fmt.Errorf("%w: %w", ErrUnreachable, err)
}
