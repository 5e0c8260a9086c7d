package lookup

import (
	"context"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/redis/go-redis/v9"

	"github.com/dmitrymomot/validatorkit/pkg/validator"
)

// RedisExists fails when the key for the value is missing from Redis.
//
//	reg.Add("knownInvite", lookup.RedisExists(client, lookup.PrefixKey("invite:")))
func RedisExists(client redis.UniversalClient, key KeyFunc) validator.CallFunc {
	return existsValidator(redisProbe(client, key))
}

// RedisUnique fails when the key for the value already exists in Redis.
func RedisUnique(client redis.UniversalClient, key KeyFunc) validator.CallFunc {
	return uniqueValidator(redisProbe(client, key))
}

func redisProbe(client redis.UniversalClient, key KeyFunc) probe {
	return func(ctx context.Context, value any, opts validator.Options) (bool, error) {
		k := key(value, opts)
		n, err := client.Exists(ctx, k).Result()
		if err != nil {
			return false, errors.Wrapf(err, "redis exists %q", k)
		}
		return n > 0, nil
	}
}

// ConnectRedis opens a client and pings it until it answers, the retry
// attempts run out or the connect timeout expires.
func ConnectRedis(ctx context.Context, cfg RedisConfig) (*redis.Client, error) {
	if cfg.ConnectTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.ConnectTimeout)
		defer cancel()
	}

	opts, err := redis.ParseURL(cfg.ConnectionURL)
	if err != nil {
		return nil, mark(ErrFailedToParseRedisConnString, err)
	}

	for range cfg.RetryAttempts {
		client := redis.NewClient(opts)

		if err := client.Ping(ctx).Err(); err == nil {
			return client, nil
		}

		_ = client.Close()

		select {
		case <-ctx.Done():
			return nil, mark(ErrRedisNotReady, ctx.Err())
		case <-time.After(cfg.RetryInterval):
		}
	}

	return nil, ErrRedisNotReady
}

// RedisHealthcheck returns a ping check suitable for health endpoints.
func RedisHealthcheck(client redis.UniversalClient) func(context.Context) error {
	return func(ctx context.Context) error {
		if err := client.Ping(ctx).Err(); err != nil {
			return mark(ErrHealthcheckFailed, err)
		}
		return nil
	}
}
