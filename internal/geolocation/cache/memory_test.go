package cache_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"minibank/internal/geolocation/cache"
	"minibank/internal/geolocation/models"
)

var mountainView = models.Geolocation{
	Country:   "United States",
	City:      "Mountain View",
	Latitude:  37.386,
	Longitude: -122.0838,
}

func TestMemoryCache(t *testing.T) {
	ctx := context.Background()

	t.Run("miss on unknown key", func(t *testing.T) {
		c := cache.NewMemory(time.Minute)
		_, ok, err := c.Get(ctx, "8.8.8.8")
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("returns what was stored", func(t *testing.T) {
		c := cache.NewMemory(time.Minute)
		require.NoError(t, c.Set(ctx, "8.8.8.8", mountainView))

		got, ok, err := c.Get(ctx, "8.8.8.8")
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, mountainView, got)
	})

	t.Run("entries expire", func(t *testing.T) {
		c := cache.NewMemory(time.Nanosecond)
		require.NoError(t, c.Set(ctx, "8.8.8.8", mountainView))
		time.Sleep(5 * time.Millisecond)

		_, ok, err := c.Get(ctx, "8.8.8.8")
		require.NoError(t, err)
		assert.False(t, ok)
	})
}
