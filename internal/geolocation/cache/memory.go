package cache

import (
	"context"
	"sync"
	"time"

	"minibank/internal/geolocation/models"
)

type memoryEntry struct {
	location  models.Geolocation
	expiresAt time.Time
}

// Memory is a mutex-guarded in-process cache with per-entry expiry.
type Memory struct {
	mu      sync.RWMutex
	ttl     time.Duration
	entries map[string]memoryEntry
}

// NewMemory creates an in-memory cache. A non-positive ttl falls back to
// DefaultTTL.
func NewMemory(ttl time.Duration) *Memory {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Memory{
		ttl:     ttl,
		entries: make(map[string]memoryEntry),
	}
}

// Get returns the cached location for key, if present and unexpired.
func (c *Memory) Get(_ context.Context, key string) (models.Geolocation, bool, error) {
	c.mu.RLock()
	entry, ok := c.entries[key]
	c.mu.RUnlock()

	if !ok || time.Now().After(entry.expiresAt) {
		return models.Geolocation{}, false, nil
	}
	return entry.location, true, nil
}

// Set stores the location for key.
func (c *Memory) Set(_ context.Context, key string, location models.Geolocation) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = memoryEntry{location: location, expiresAt: time.Now().Add(c.ttl)}
	return nil
}
