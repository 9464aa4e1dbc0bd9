package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"minibank/internal/geolocation/models"
	"minibank/internal/platform/redis"
)

const keyPrefix = "geolocation:"

// Redis caches resolved locations in Redis as JSON values with a TTL.
type Redis struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedis creates a Redis-backed cache. A non-positive ttl falls back to
// DefaultTTL.
func NewRedis(client *redis.Client, ttl time.Duration) *Redis {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Redis{client: client, ttl: ttl}
}

// Get returns the cached location for key, if present.
func (c *Redis) Get(ctx context.Context, key string) (models.Geolocation, bool, error) {
	raw, err := c.client.Get(ctx, keyPrefix+key).Result()
	if errors.Is(err, goredis.Nil) {
		return models.Geolocation{}, false, nil
	}
	if err != nil {
		return models.Geolocation{}, false, fmt.Errorf("cache get %s: %w", key, err)
	}

	var location models.Geolocation
	if err := json.Unmarshal([]byte(raw), &location); err != nil {
		return models.Geolocation{}, false, fmt.Errorf("cache decode %s: %w", key, err)
	}
	return location, true, nil
}

// Set stores the location for key with the configured TTL.
func (c *Redis) Set(ctx context.Context, key string, location models.Geolocation) error {
	raw, err := json.Marshal(location)
	if err != nil {
		return fmt.Errorf("cache encode %s: %w", key, err)
	}
	if err := c.client.Set(ctx, keyPrefix+key, raw, c.ttl).Err(); err != nil {
		return fmt.Errorf("cache set %s: %w", key, err)
	}
	return nil
}
