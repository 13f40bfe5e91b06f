// Package contextcache memoizes the per-user profile context block so the
// retrieval orchestrator does not re-read preferences from the store on every
// message. Entries live for five minutes and expired items are purged in the
// background.
package contextcache

import (
	"strconv"
	"time"

	"github.com/patrickmn/go-cache"
)

// TTL is how long a cached user context stays valid.
const TTL = 5 * time.Minute

type Cache struct {
	store *cache.Cache
}

func New() *Cache {
	return &Cache{
		store: cache.New(TTL, 10*time.Minute),
	}
}

// Get returns the cached context text for userId if present and unexpired.
func (c *Cache) Get(userId int64) (string, bool) {
	if x, found := c.store.Get(key(userId)); found {
		return x.(string), true
	}
	return "", false
}

// Set stores the context text for userId with the standard TTL.
func (c *Cache) Set(userId int64, text string) {
	c.store.Set(key(userId), text, cache.DefaultExpiration)
}

// Invalidate drops one user's entry.
func (c *Cache) Invalidate(userId int64) {
	c.store.Delete(key(userId))
}

// InvalidateAll drops every entry.
func (c *Cache) InvalidateAll() {
	c.store.Flush()
}

// Len reports live entry count, used by admin stats.
func (c *Cache) Len() int {
	return c.store.ItemCount()
}

func key(userId int64) string {
	return strconv.FormatInt(userId, 10)
}
