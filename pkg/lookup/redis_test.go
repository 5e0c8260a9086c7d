package lookup_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/cockroachdb/errors"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/validatorkit/pkg/lookup"
	"github.com/dmitrymomot/validatorkit/pkg/validator"
)

func setupRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return mr, client
}

func TestRedisExists(t *testing.T) {
	t.Parallel()
	mr, client := setupRedis(t)
	require.NoError(t, mr.Set("invite:abc", "1"))

	reg := validator.New()
	reg.Add("knownInvite", lookup.RedisExists(client, lookup.PrefixKey("invite:")))

	verr, err := reg.Call(context.Background(), "knownInvite", "abc")
	require.NoError(t, err)
	assert.Nil(t, verr)

	verr, err = reg.Call(context.Background(), "knownInvite", "xyz")
	require.NoError(t, err)
	assert.Equal(t, "knownInvite", verr.Validator())
	assert.Equal(t, "xyz does not exist", verr.Message())
	assert.Equal(t, "lookup.not_found", verr["code"])
}

func TestRedisUnique(t *testing.T) {
	t.Parallel()
	mr, client := setupRedis(t)
	require.NoError(t, mr.Set("user:alice", "1"))

	reg := validator.New()
	reg.Add("freeUsername", lookup.RedisUnique(client, lookup.PrefixKey("user:")))
	reg.Add("freeHandle", validator.Alias("freeUsername"), validator.Params{
		DefaultOptions: validator.Options{"prefix": "handle:"},
	})

	verr, err := reg.Call(context.Background(), "freeUsername", "alice")
	require.NoError(t, err)
	assert.Equal(t, "alice is already taken", verr.Message())

	verr, err = reg.Call(context.Background(), "freeUsername", "bob")
	require.NoError(t, err)
	assert.Nil(t, verr)

	verr, err = reg.Call(context.Background(), "freeHandle", "alice")
	require.NoError(t, err)
	assert.Nil(t, verr, "prefix option should select another key space")
}

func TestRedisExists_StoreErrorIsException(t *testing.T) {
	t.Parallel()
	mr, client := setupRedis(t)
	mr.SetError("server unavailable")

	reg := validator.New()
	reg.Add("knownInvite", lookup.RedisExists(client, lookup.PrefixKey("invite:")))

	verr, err := reg.Call(context.Background(), "knownInvite", "abc")
	assert.Nil(t, verr)
	require.Error(t, err)
	assert.True(t, validator.IsException(err))
	assert.True(t, errors.Is(err, lookup.ErrLookupFailed))
}

func TestConnectRedis(t *testing.T) {
	t.Parallel()

	t.Run("success", func(t *testing.T) {
		t.Parallel()
		mr := miniredis.RunT(t)

		client, err := lookup.ConnectRedis(context.Background(), lookup.RedisConfig{
			ConnectionURL:  "redis://" + mr.Addr() + "/0",
			RetryAttempts:  1,
			RetryInterval:  time.Millisecond,
			ConnectTimeout: time.Second,
		})
		require.NoError(t, err)
		t.Cleanup(func() { _ = client.Close() })

		assert.NoError(t, lookup.RedisHealthcheck(client)(context.Background()))
	})

	t.Run("invalid url", func(t *testing.T) {
		t.Parallel()
		_, err := lookup.ConnectRedis(context.Background(), lookup.RedisConfig{
			ConnectionURL: "http://localhost:6379",
			RetryAttempts: 1,
		})
		require.Error(t, err)
		assert.True(t, errors.Is(err, lookup.ErrFailedToParseRedisConnString))
	})

	t.Run("not ready", func(t *testing.T) {
		t.Parallel()
		mr := miniredis.RunT(t)
		addr := mr.Addr()
		mr.Close()

		_, err := lookup.ConnectRedis(context.Background(), lookup.RedisConfig{
			ConnectionURL:  "redis://" + addr,
			RetryAttempts:  2,
			RetryInterval:  time.Millisecond,
			ConnectTimeout: time.Second,
		})
		require.Error(t, err)
		assert.True(t, errors.Is(err, lookup.ErrRedisNotReady))
	})
}

func TestRedisHealthcheck_Failure(t *testing.T) {
	t.Parallel()
	mr, client := setupRedis(t)
	mr.Close()

	err := lookup.RedisHealthcheck(client)(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, lookup.ErrHealthcheckFailed))
}
