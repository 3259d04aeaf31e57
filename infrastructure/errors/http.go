// Package errors holds the error types shared across the gateway's packages.
package errors

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
)

const (
	// MinErrorStatusCode is the lowest status treated as an upstream failure.
	MinErrorStatusCode = 400

	// maxErrorBody bounds how much of an error body is kept for logging.
	maxErrorBody = 2048
)

// HTTPError is a non-2xx answer from an upstream HTTP service.
type HTTPError struct {
	StatusCode int
	Status     string
	Body       string
}

func (e *HTTPError) Error() string {
	if e.Body != "" {
		return fmt.Sprintf("HTTP error (%d %s): %s", e.StatusCode, e.Status, e.Body)
	}
	return fmt.Sprintf("HTTP error: %d %s", e.StatusCode, e.Status)
}

// ParseHTTPError returns nil for successful responses. Otherwise it returns
// an *HTTPError carrying the start of the body, whitespace-collapsed.
// The caller still owns resp.Body.
func ParseHTTPError(resp *http.Response) error {
	if resp.StatusCode < MinErrorStatusCode {
		return nil
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	if err != nil {
		return &HTTPError{StatusCode: resp.StatusCode, Status: resp.Status}
	}

	return &HTTPError{
		StatusCode: resp.StatusCode,
		Status:     resp.Status,
		Body:       strings.Join(strings.Fields(string(body)), " "),
	}
}

// GetHTTPStatusCode extracts the status of a wrapped *HTTPError.
func GetHTTPStatusCode(err error) (int, bool) {
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return httpErr.StatusCode, true
	}
	return 0, false
}

// WrapWithContext wraps err with a context prefix, keeping nil as nil.
func WrapWithContext(err error, context string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", context, err)
}

// WrapWithContextf is WrapWithContext with a formatted prefix.
func WrapWithContextf(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), err)
}
