package inmemory

import (
	"context"
	"sync"
	"time"

	"github.com/chungjai123/food-bot/internal/ports/cache"
)

type item struct {
	value   string
	expires time.Time // нулевое - без TTL
}

func (i item) expired(now time.Time) bool {
	return !i.expires.IsZero() && !now.Before(i.expires)
}

// Cache in-memory реализация cache.Cache для запуска без Redis.
// Истёкшие ключи удаляются при обращении и через Purge.
type Cache struct {
	mu    sync.Mutex
	items map[string]item
	now   func() time.Time
}

// NewCache создаёт новый in-memory кэш
func NewCache() *Cache {
	return &Cache{
		items: make(map[string]item),
		now:   time.Now,
	}
}

var _ cache.Cache = (*Cache)(nil)

func (c *Cache) newItem(value string, ttl time.Duration) item {
	it := item{value: value}
	if ttl > 0 {
		it.expires = c.now().Add(ttl)
	}
	return it
}

// lookup ищет живой ключ; вызывается под mu
func (c *Cache) lookup(key string) (item, bool) {
	it, ok := c.items[key]
	if !ok {
		return item{}, false
	}
	if it.expired(c.now()) {
		delete(c.items, key)
		return item{}, false
	}
	return it, true
}

func (c *Cache) Get(_ context.Context, key string) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	it, ok := c.lookup(key)
	if !ok {
		return "", cache.ErrCacheMiss
	}
	return it.value, nil
}

func (c *Cache) Set(_ context.Context, key string, value string, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.items[key] = c.newItem(value, ttl)
	return nil
}

func (c *Cache) SetNX(_ context.Context, key string, value string, ttl time.Duration) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.lookup(key); ok {
		return false, nil
	}
	c.items[key] = c.newItem(value, ttl)
	return true, nil
}

func (c *Cache) Delete(_ context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	delete(c.items, key)
	return nil
}

func (c *Cache) Exists(_ context.Context, key string) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	_, ok := c.lookup(key)
	return ok, nil
}

// Purge удаляет истёкшие ключи, возвращает их количество
func (c *Cache) Purge() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	removed := 0
	for key, it := range c.items {
		if it.expired(now) {
			delete(c.items, key)
			removed++
		}
	}
	return removed
}

func (c *Cache) Close() error {
	return nil
}
