package catalog

import (
	"context"
	"time"

	"github.com/go-redis/redis/v8"
)

const cacheKeyPrefix = "seller_verified:"

// Cache holds recently resolved seller-verified flags in Redis so listing
// pages don't hit the resolver for every product row. Entries expire; the
// resolver stays the source of truth.
type Cache struct {
	Client *redis.Client
	TTL    time.Duration
}

func NewCache(client *redis.Client, ttl time.Duration) *Cache {
	return &Cache{Client: client, TTL: ttl}
}

// Get returns (verified, found). Any Redis error reads as a miss.
func (c *Cache) Get(sellerID string) (bool, bool) {
	val, err := c.Client.Get(context.Background(), cacheKeyPrefix+sellerID).Result()
	if err != nil {
		return false, false
	}
	return val == "1", true
}

func (c *Cache) Set(sellerID string, verified bool) error {
	val := "0"
	if verified {
		val = "1"
	}
	return c.Client.Set(context.Background(), cacheKeyPrefix+sellerID, val, c.TTL).Err()
}

// Invalidate drops a seller's cached flag, forcing the next annotation to
// re-resolve. Used when a verification decision lands.
func (c *Cache) Invalidate(sellerID string) error {
	return c.Client.Del(context.Background(), cacheKeyPrefix+sellerID).Err()
}
