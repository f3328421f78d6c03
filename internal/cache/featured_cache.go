package cache

import (
	"context"
	"encoding/json"
	"time"

	"fitnexus_backend/internal/models"

	"github.com/redis/go-redis/v9"
)

const featuredClassesKey = "fitnexus:featured-classes"

// FeaturedClassCache keeps the most-booked-classes ranking in Redis with TTL.
// Every method fails open: a Redis error means "cache miss", never a request
// failure.
type FeaturedClassCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewFeaturedClassCache builds a Redis-backed ranking cache.
func NewFeaturedClassCache(addr, password string, ttl time.Duration) *FeaturedClassCache {
	return &FeaturedClassCache{
		client: redis.NewClient(&redis.Options{
			Addr:     addr,
			Password: password,
		}),
		ttl: ttl,
	}
}

// Get returns the cached ranking, or found=false on miss or Redis error.
func (c *FeaturedClassCache) Get() ([]models.ClassPopularity, bool) {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	val, err := c.client.Get(ctx, featuredClassesKey).Result()
	if err != nil {
		return nil, false
	}

	var ranking []models.ClassPopularity
	if err := json.Unmarshal([]byte(val), &ranking); err != nil {
		return nil, false
	}
	return ranking, true
}

// Set stores the ranking with the configured TTL.
func (c *FeaturedClassCache) Set(ranking []models.ClassPopularity) {
	data, err := json.Marshal(ranking)
	if err != nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	_ = c.client.Set(ctx, featuredClassesKey, data, c.ttl).Err()
}

// Invalidate drops the cached ranking. Called after every confirmed booking.
func (c *FeaturedClassCache) Invalidate() {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	_ = c.client.Del(ctx, featuredClassesKey).Err()
}
