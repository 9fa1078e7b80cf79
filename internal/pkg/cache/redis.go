package cache

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

type Redis struct {
	client *redis.Client
}

var _ Backend = (*Redis)(nil)

func NewRedis(client *redis.Client) *Redis {
	return &Redis{client: client}
}

func (r *Redis) Get(ctx context.Context, key string) ([]byte, error) {
	resp, err := r.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrNotFound
		}
		log.Error().Err(err).Str("key", key).Msg("failed to get value from redis")
		return nil, err
	}
	return resp, nil
}

func (r *Redis) Set(ctx context.Context, key string, value []byte, expire time.Duration) error {
	if err := r.client.Set(ctx, key, value, expire).Err(); err != nil {
		log.Error().Err(err).Str("key", key).Msg("failed to set value to redis")
		return err
	}
	return nil
}

func (r *Redis) Delete(ctx context.Context, key string) error {
	if err := r.client.Del(ctx, key).Err(); err != nil {
		log.Error().Err(err).Str("key", key).Msg("failed to delete value from redis")
		return err
	}
	return nil
}

var clearScript = redis.NewScript(`local keys = redis.call('keys', ARGV[1])
	for i=1,#keys,5000 do
		redis.call('del', unpack(keys, i, math.min(i+4999, #keys)))
	end
return #keys`)

func (r *Redis) Clear(ctx context.Context, prefix string) error {
	if err := clearScript.Run(ctx, r.client, []string{}, prefix+"*").Err(); err != nil {
		log.Error().Err(err).Str("prefix", prefix).Msg("failed to clear cache")
		return err
	}
	return nil
}

func (r *Redis) Name() string {
	return "redis"
}
