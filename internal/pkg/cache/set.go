package cache

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github.com/vmihailenco/msgpack/v5"
	"golang.org/x/sync/singleflight"
)

// Set is a namespace of keys within a Backend.
type Set struct {
	backend Backend
	prefix  string
	expire  time.Duration

	// group collapses concurrent loads of the same key
	group singleflight.Group
}

// NewSet creates a set whose values live for expire. A non-positive expire
// disables caching: GetSet always loads.
func NewSet(backend Backend, prefix string, expire time.Duration) *Set {
	return &Set{
		backend: backend,
		prefix:  prefix + ":",
		expire:  expire,
	}
}

func (s *Set) key(key string) string {
	return s.prefix + key
}

func (s *Set) Enabled() bool {
	return s.expire > 0
}

func (s *Set) Get(ctx context.Context, key string, dest any) error {
	b, err := s.backend.Get(ctx, s.key(key))
	if err != nil {
		return err
	}
	if err := msgpack.Unmarshal(b, dest); err != nil {
		log.Error().Err(err).Str("key", s.key(key)).Msg("failed to unmarshal cached value with msgpack")
		return err
	}
	return nil
}

func (s *Set) Set(ctx context.Context, key string, value any) error {
	if l := log.Trace(); l.Enabled() {
		l.Str("key", s.key(key)).Str("backend", s.backend.Name()).Msg("setting value to cache")
	}
	b, err := msgpack.Marshal(value)
	if err != nil {
		log.Error().Err(err).Str("key", s.key(key)).Msg("failed to marshal value with msgpack")
		return err
	}
	return s.backend.Set(ctx, s.key(key), b, s.expire)
}

func (s *Set) Delete(ctx context.Context, key string) error {
	return s.backend.Delete(ctx, s.key(key))
}

func (s *Set) Clear(ctx context.Context) error {
	return s.backend.Clear(ctx, s.prefix)
}

// GetSet returns the value cached under key, or calls valueFunc to compute it
// and caches the result. Concurrent calls for the same missing key share one
// valueFunc call. Errors of valueFunc are returned and never cached; errors of
// the backend only cost a cache miss.
func GetSet[T any](ctx context.Context, s *Set, key string, valueFunc func(ctx context.Context) (T, error)) (T, error) {
	if !s.Enabled() {
		return valueFunc(ctx)
	}

	var cached T
	err := s.Get(ctx, key, &cached)
	if err == nil {
		return cached, nil
	} else if !errors.Is(err, ErrNotFound) {
		log.Warn().Err(err).Str("key", s.key(key)).Msg("cache unavailable, loading value directly")
	}

	v, err, _ := s.group.Do(key, func() (any, error) {
		value, err := valueFunc(ctx)
		if err != nil {
			return value, err
		}
		if err := s.Set(ctx, key, value); err != nil {
			log.Warn().Err(err).Str("key", s.key(key)).Msg("failed to cache loaded value")
		}
		return value, nil
	})
	if err != nil {
		if ctx.Err() == nil && errors.Is(err, context.Canceled) {
			// the shared load ran on the context of a caller that went away
			return valueFunc(ctx)
		}
		var zero T
		return zero, err
	}
	return v.(T), nil
}
