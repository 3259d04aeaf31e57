package redis_test

import (
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonesrussell/overheid-search/infrastructure/redis"
)

func TestNewClient_ReturnsErrorWhenAddressEmpty(t *testing.T) {
	t.Parallel()

	client, err := redis.NewClient(t.Context(), redis.Config{})

	require.ErrorIs(t, err, redis.ErrEmptyAddress)
	assert.Nil(t, client)
}

func TestNewClient_ConnectsToRedis(t *testing.T) {
	t.Parallel()

	mr := miniredis.RunT(t)

	client, err := redis.NewClient(t.Context(), redis.Config{Address: mr.Addr()})
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })

	require.NoError(t, client.Set(t.Context(), "k", "v", 0).Err())
	got, err := mr.Get("k")
	require.NoError(t, err)
	assert.Equal(t, "v", got)
}

func TestNewClient_FailsWhenUnreachable(t *testing.T) {
	t.Parallel()

	mr := miniredis.RunT(t)
	addr := mr.Addr()
	mr.Close()

	client, err := redis.NewClient(t.Context(), redis.Config{Address: addr})
	require.Error(t, err)
	assert.Nil(t, client)
}

func TestNewClient_RequiresPassword(t *testing.T) {
	t.Parallel()

	mr := miniredis.RunT(t)
	mr.RequireAuth("secret")

	_, err := redis.NewClient(t.Context(), redis.Config{Address: mr.Addr()})
	require.Error(t, err)

	client, err := redis.NewClient(t.Context(), redis.Config{Address: mr.Addr(), Password: "secret"})
	require.NoError(t, err)
	_ = client.Close()
}
