package cache

import (
	"context"
	"log"
	"time"
)

// Fallback layers a primary store (Redis) over an in-process secondary.
// Any primary failure degrades to the secondary instead of surfacing an
// error: a broken cache backend costs freshness, never availability.
type Fallback struct {
	primary   Store
	secondary Store
}

// NewFallback wraps primary with an in-memory secondary.
func NewFallback(primary Store) *Fallback {
	return &Fallback{primary: primary, secondary: NewMemory()}
}

func (f *Fallback) Get(ctx context.Context, key string) ([]byte, bool, error) {
	data, ok, err := f.primary.Get(ctx, key)
	if err == nil {
		return data, ok, nil
	}
	log.Printf("[cache] primary get %s failed, using memory: %v", key, err)
	return f.secondary.Get(ctx, key)
}

func (f *Fallback) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	// Keep the secondary warm so a primary outage mid-TTL still has data.
	if err := f.secondary.Set(ctx, key, value, ttl); err != nil {
		return err
	}
	if err := f.primary.Set(ctx, key, value, ttl); err != nil {
		log.Printf("[cache] primary set %s failed: %v", key, err)
	}
	return nil
}
