// Package cache stores catalog responses and fetches them on a miss.
package cache

import (
	"context"
	"strings"
	"time"
)

// Store is a durable key to blob map. Get reports a miss for absent and
// expired entries alike.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, bool)
	Put(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	// Prune removes expired entries and returns how many were removed.
	Prune(ctx context.Context) (int64, error)
}

// TTLs assigns a lifetime to keys by their longest matching prefix.
type TTLs struct {
	Default  time.Duration
	ByPrefix map[string]time.Duration
}

// DefaultTTLs keeps catalog data for a day and the mapping list for a week.
func DefaultTTLs() TTLs {
	return TTLs{
		Default: 24 * time.Hour,
		ByPrefix: map[string]time.Duration{
			"animelist:": 7 * 24 * time.Hour,
			"anidb:":     7 * 24 * time.Hour,
		},
	}
}

// For returns the TTL for key.
func (t TTLs) For(key string) time.Duration {
	best, bestLen := t.Default, -1
	for prefix, ttl := range t.ByPrefix {
		if strings.HasPrefix(key, prefix) && len(prefix) > bestLen {
			best, bestLen = ttl, len(prefix)
		}
	}
	return best
}
