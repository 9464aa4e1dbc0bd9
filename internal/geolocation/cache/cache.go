// Package cache provides lookup caches for resolved geolocations. The redis
// implementation is used when Redis is configured; the in-memory one is the
// fallback for single-process deployments and tests.
package cache

import "time"

// DefaultTTL is how long a resolved location stays cached. Locations for a
// given IP change rarely, so a long TTL is safe.
const DefaultTTL = time.Hour
