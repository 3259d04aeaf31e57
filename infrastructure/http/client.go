// Package http builds the outbound HTTP clients used by the gateway.
package http

import (
	"net/http"
	"time"
)

const (
	DefaultTimeout               = 15 * time.Second
	DefaultMaxIdleConns          = 50
	DefaultMaxIdleConnsPerHost   = 10
	DefaultIdleConnTimeout       = 90 * time.Second
	DefaultTLSHandshakeTimeout   = 10 * time.Second
	DefaultExpectContinueTimeout = 1 * time.Second
)

// ClientConfig configures NewClient. Zero fields take the defaults above.
type ClientConfig struct {
	// Timeout bounds the whole exchange, body read included.
	Timeout             time.Duration
	MaxIdleConns        int
	MaxIdleConnsPerHost int
	IdleConnTimeout     time.Duration
	TLSHandshakeTimeout time.Duration

	// Headers are set on every request that does not already carry them,
	// e.g. User-Agent and Accept.
	Headers map[string]string

	// Transport overrides the pooled transport. Tests use it to inject
	// round trippers.
	Transport http.RoundTripper
}

// NewClient creates an *http.Client with pooled keep-alive connections.
// A nil cfg uses the defaults.
func NewClient(cfg *ClientConfig) *http.Client {
	if cfg == nil {
		cfg = &ClientConfig{}
	}

	base := cfg.Transport
	if base == nil {
		base = &http.Transport{
			Proxy:                 http.ProxyFromEnvironment,
			MaxIdleConns:          orDefault(cfg.MaxIdleConns, DefaultMaxIdleConns),
			MaxIdleConnsPerHost:   orDefault(cfg.MaxIdleConnsPerHost, DefaultMaxIdleConnsPerHost),
			IdleConnTimeout:       orDefault(cfg.IdleConnTimeout, DefaultIdleConnTimeout),
			TLSHandshakeTimeout:   orDefault(cfg.TLSHandshakeTimeout, DefaultTLSHandshakeTimeout),
			ExpectContinueTimeout: DefaultExpectContinueTimeout,
		}
	}

	if len(cfg.Headers) > 0 {
		headers := make(map[string]string, len(cfg.Headers))
		for k, v := range cfg.Headers {
			headers[http.CanonicalHeaderKey(k)] = v
		}
		base = &headerTransport{base: base, headers: headers}
	}

	return &http.Client{
		Timeout:   orDefault(cfg.Timeout, DefaultTimeout),
		Transport: base,
	}
}

type headerTransport struct {
	base    http.RoundTripper
	headers map[string]string
}

func (t *headerTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	missing := false
	for k := range t.headers {
		if req.Header.Get(k) == "" {
			missing = true
			break
		}
	}
	if !missing {
		return t.base.RoundTrip(req)
	}

	// RoundTrippers must not modify the caller's request.
	clone := req.Clone(req.Context())
	for k, v := range t.headers {
		if clone.Header.Get(k) == "" {
			clone.Header.Set(k, v)
		}
	}
	return t.base.RoundTrip(clone)
}

func orDefault[T comparable](v, def T) T {
	var zero T
	if v == zero {
		return def
	}
	return v
}
