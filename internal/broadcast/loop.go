// Package broadcast runs the periodic feed: a fixed-interval, forced-fresh
// fetch of every sport pushed to all websocket subscribers.
package broadcast

import (
	"context"
	"log"
	"time"

	"github.com/XavierBriggs/fortuna/services/livesports-api/internal/hub"
	"github.com/XavierBriggs/fortuna/services/livesports-api/pkg/models"
)

// Interval between feed updates.
const Interval = 3 * time.Second

// Fetcher yields a full snapshot; useCache=false forces fresh data.
type Fetcher interface {
	FetchAll(ctx context.Context, useCache bool) models.Snapshot
}

// Broadcaster is the hub-facing side of the loop.
type Broadcaster interface {
	Broadcast(msg hub.UpdateMessage)
	ClientCount() int
}

// Loop re-fetches all sports on a fixed interval and pushes the merged
// snapshot to subscribers. It shares the cache store with request
// handling but is otherwise independent.
type Loop struct {
	fetcher  Fetcher
	hub      Broadcaster
	interval time.Duration
}

// New creates the periodic broadcast loop.
func New(fetcher Fetcher, h Broadcaster) *Loop {
	return &Loop{fetcher: fetcher, hub: h, interval: Interval}
}

// SetInterval overrides the tick interval, for tests.
func (l *Loop) SetInterval(d time.Duration) {
	l.interval = d
}

// Run drives the loop until ctx is canceled.
func (l *Loop) Run(ctx context.Context) {
	log.Printf("[broadcast] starting feed loop (every %s)", l.interval)

	ticker := time.NewTicker(l.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Println("[broadcast] stopping feed loop")
			return
		case <-ticker.C:
			l.tick(ctx)
		}
	}
}

func (l *Loop) tick(ctx context.Context) {
	if l.hub.ClientCount() == 0 {
		// Nobody listening; skip the forced-fresh fetch to spare the
		// upstreams.
		return
	}
	snap := l.fetcher.FetchAll(ctx, false)
	l.hub.Broadcast(hub.NewUpdate(snap))
}
