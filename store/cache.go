package store

import (
	"context"
	"time"

	"github.com/patrickmn/go-cache"
)

// ContentStore keeps immutable content keyed by its content address.
type ContentStore interface {
	Get(ctx context.Context, key string) (string, bool)
	Set(ctx context.Context, key string, value string)
}

type MemoryStore struct {
	c   *cache.Cache
	ttl time.Duration
}

func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{
		c:   cache.New(ttl, 2*ttl),
		ttl: ttl,
	}
}

func contentKey(key string) string {
	return "content:" + key
}

func (m *MemoryStore) Get(_ context.Context, key string) (string, bool) {
	v, ok := m.c.Get(contentKey(key))
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}

func (m *MemoryStore) Set(_ context.Context, key string, value string) {
	m.c.Set(contentKey(key), value, m.ttl)
}

func (m *MemoryStore) Delete(key string) {
	m.c.Delete(contentKey(key))
}
