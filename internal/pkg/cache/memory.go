package cache

import (
	"context"
	"strings"
	"time"

	"github.com/patrickmn/go-cache"
)

type Memory struct {
	c *cache.Cache
}

var _ Backend = (*Memory)(nil)

func NewMemory() *Memory {
	return &Memory{
		c: cache.New(cache.NoExpiration, time.Minute*10),
	}
}

func (m *Memory) Get(_ context.Context, key string) ([]byte, error) {
	v, ok := m.c.Get(key)
	if !ok {
		return nil, ErrNotFound
	}
	return v.([]byte), nil
}

func (m *Memory) Set(_ context.Context, key string, value []byte, expire time.Duration) error {
	m.c.Set(key, value, expire)
	return nil
}

func (m *Memory) Delete(_ context.Context, key string) error {
	m.c.Delete(key)
	return nil
}

func (m *Memory) Clear(_ context.Context, prefix string) error {
	for key := range m.c.Items() {
		if strings.HasPrefix(key, prefix) {
			m.c.Delete(key)
		}
	}
	return nil
}

func (m *Memory) Name() string {
	return "memory"
}
