package infra

import (
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"github.com/statismics/backend/internal/pkg/cache"
)

// CacheBackend keeps cached GitHub responses in Redis when it is configured,
// and in process memory otherwise.
func CacheBackend(client *redis.Client) cache.Backend {
	if client == nil {
		log.Info().Str("evt.name", "infra.cache.backend").Str("backend", "memory").Msg("caching in memory")
		return cache.NewMemory()
	}
	log.Info().Str("evt.name", "infra.cache.backend").Str("backend", "redis").Msg("caching in redis")
	return cache.NewRedis(client)
}
