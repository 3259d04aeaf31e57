package errors_test

import (
	"fmt"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	infraerrors "github.com/jonesrussell/overheid-search/infrastructure/errors"
)

func TestParseHTTPError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		status   int
		body     string
		wantNil  bool
		wantBody string
	}{
		{name: "success", status: http.StatusOK, body: "<ok/>", wantNil: true},
		{name: "redirect is not an error", status: http.StatusFound, wantNil: true},
		{name: "server error", status: http.StatusBadGateway, body: "upstream\n  down", wantBody: "upstream down"},
		{name: "empty body", status: http.StatusNotFound, body: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			resp := &http.Response{
				StatusCode: tt.status,
				Status:     fmt.Sprintf("%d %s", tt.status, http.StatusText(tt.status)),
				Body:       io.NopCloser(strings.NewReader(tt.body)),
			}

			err := infraerrors.ParseHTTPError(resp)
			if tt.wantNil {
				assert.NoError(t, err)
				return
			}

			require.Error(t, err)
			code, ok := infraerrors.GetHTTPStatusCode(infraerrors.WrapWithContext(err, "sru request"))
			require.True(t, ok)
			assert.Equal(t, tt.status, code)

			var httpErr *infraerrors.HTTPError
			require.ErrorAs(t, err, &httpErr)
			assert.Equal(t, tt.wantBody, httpErr.Body)
		})
	}
}

func TestParseHTTPError_TruncatesBody(t *testing.T) {
	t.Parallel()

	resp := &http.Response{
		StatusCode: http.StatusInternalServerError,
		Status:     "500 Internal Server Error",
		Body:       io.NopCloser(strings.NewReader(strings.Repeat("a", 10_000))),
	}

	var httpErr *infraerrors.HTTPError
	require.ErrorAs(t, infraerrors.ParseHTTPError(resp), &httpErr)
	assert.Len(t, httpErr.Body, 2048)
}

func TestWrapWithContext_Nil(t *testing.T) {
	t.Parallel()

	assert.NoError(t, infraerrors.WrapWithContext(nil, "ctx"))
	assert.NoError(t, infraerrors.WrapWithContextf(nil, "ctx %d", 1))
	assert.EqualError(t, infraerrors.WrapWithContextf(io.EOF, "read %s", "body"), "read body: EOF")

	_, ok := infraerrors.GetHTTPStatusCode(io.EOF)
	assert.False(t, ok)
}
