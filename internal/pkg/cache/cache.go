// Package cache keeps values under string keys in either process memory or
// Redis. Values are msgpack encoded in both backends, so callers always get
// their own copy of a cached value.
package cache

import (
	"context"
	"time"

	"github.com/pkg/errors"
)

var ErrNotFound = errors.New("cache: key not found")

// Backend stores encoded values. Get returns ErrNotFound for missing keys.
type Backend interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, expire time.Duration) error
	Delete(ctx context.Context, key string) error
	// Clear removes every key starting with prefix.
	Clear(ctx context.Context, prefix string) error
	Name() string
}
