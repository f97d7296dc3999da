package cache

import (
	"context"
	"time"
)

// Store is an expiring key/value cache. Get treats "found but expired"
// identically to "not found". Set always overwrites; concurrent writers
// for the same key race and last write wins, which only shifts freshness
// by at most one fetch interval.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
}
