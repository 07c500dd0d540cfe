// Package cache provides the volatile key-value store shared by the
// evaluator, the read APIs and the price publisher. Entries carry an
// independent TTL; expiry is the store's responsibility.
package cache

import (
	"context"
	"time"
)

// Key patterns. Triggered alerts live under alert:<alert_id> as JSON,
// latest prices under price:<symbol> as a plain decimal string.
const (
	alertPrefix = "alert:"
	pricePrefix = "price:"
)

// AlertKey returns the cache key for a triggered alert
func AlertKey(alertID string) string {
	return alertPrefix + alertID
}

// AlertPattern matches all triggered alert keys
func AlertPattern() string {
	return alertPrefix + "*"
}

// PriceKey returns the cache key for the latest price of a symbol
func PriceKey(symbol string) string {
	return pricePrefix + symbol
}

// Cache is implemented by Redis in deployment and by Memory in local mode
// and tests.
type Cache interface {
	// Set stores a value under key with an independent TTL; an existing
	// entry is overwritten (last-write-wins).
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	// Get returns the value for key. The second return is false when the
	// entry is absent or expired; that is not an error.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Keys enumerates live keys matching a glob pattern such as "alert:*".
	Keys(ctx context.Context, pattern string) ([]string, error)
}
