package logger_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonesrussell/overheid-search/infrastructure/logger"
)

func TestFromContext_ReturnsStoredLogger(t *testing.T) {
	t.Parallel()

	l := newTestLogger(t)
	ctx := logger.WithContext(context.Background(), l)

	assert.Same(t, l, logger.FromContext(ctx))
}

func TestFromContext_FallbackIsSingleton(t *testing.T) {
	t.Parallel()

	a := logger.FromContext(context.Background())
	b := logger.FromContext(context.Background())

	require.NotNil(t, a)
	assert.Same(t, a, b)

	a.Warn("fallback logger usable", logger.String("key", "value"))
}

func TestWithContext_LastWriterWins(t *testing.T) {
	t.Parallel()

	first := newTestLogger(t)
	second := first.With(logger.String("request_id", "abc-123"))

	ctx := logger.WithContext(context.Background(), first)
	ctx = logger.WithContext(ctx, second)

	assert.Same(t, second, logger.FromContext(ctx))
	assert.NotSame(t, first, second)
}

func TestNew_ConsoleFormat(t *testing.T) {
	t.Parallel()

	l, err := logger.New(logger.Config{Level: "debug", Format: logger.FormatConsole, OutputPaths: []string{"stderr"}})
	require.NoError(t, err)

	l.Debug("console encoder", logger.Int("n", 1))
}

func newTestLogger(t *testing.T) logger.Logger {
	t.Helper()

	l, err := logger.New(logger.Config{Level: "warn", OutputPaths: []string{"stderr"}})
	require.NoError(t, err)

	return l
}
