package fetch

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/XavierBriggs/fortuna/services/livesports-api/pkg/models"
)

// FetchAll fans out to all four sports concurrently and merges the
// results. The sports are independent and the merge is commutative, so
// completion order does not matter. Individual sources never fail, so
// the merged snapshot always carries all four keys.
func (s *Service) FetchAll(ctx context.Context, useCache bool) models.Snapshot {
	var snap models.Snapshot

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		snap.Fight = s.FetchFight(ctx, useCache)
		return nil
	})
	g.Go(func() error {
		snap.Football = s.FetchFootball(ctx, useCache)
		return nil
	})
	g.Go(func() error {
		snap.Basketball = s.FetchBasketball(ctx, useCache)
		return nil
	})
	g.Go(func() error {
		snap.Golf = s.FetchGolf(ctx, useCache)
		return nil
	})
	g.Wait()

	return snap
}
