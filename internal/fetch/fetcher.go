// Package fetch composes cache lookup, upstream normalization, and
// write-back for each sport. Results are cached for a short TTL even when
// empty: an upstream outage is itself cached so a failing source is not
// hammered on every request.
package fetch

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/XavierBriggs/fortuna/services/livesports-api/internal/cache"
	"github.com/XavierBriggs/fortuna/services/livesports-api/pkg/models"
)

// TTL is how long a fetched list stays fresh.
const TTL = 30 * time.Second

// Cache keys, one per sport.
const (
	KeyFight      = "fight_events"
	KeyFootball   = "football_games"
	KeyBasketball = "basketball_games"
	KeyGolf       = "golf_tournaments"
)

// FightSource yields normalized fight events. Implementations never fail.
type FightSource interface {
	Fetch(ctx context.Context) []models.FightEvent
}

// GameSource yields normalized games. Implementations never fail.
type GameSource interface {
	Fetch(ctx context.Context) []models.Game
}

// GolfSource yields normalized tournaments. Implementations never fail.
type GolfSource interface {
	Fetch(ctx context.Context) []models.Tournament
}

// Persister records the latest normalized payload per sport. Persistence
// is best-effort; failures are logged, never propagated.
type Persister interface {
	SaveFightEvents(ctx context.Context, events []models.FightEvent) error
	SaveGames(ctx context.Context, sport models.Sport, games []models.Game) error
	SaveTournaments(ctx context.Context, tournaments []models.Tournament) error
}

// Service is the per-sport fetch orchestrator.
type Service struct {
	store      cache.Store
	fight      FightSource
	football   GameSource
	basketball GameSource
	golf       GolfSource
	persister  Persister // may be nil
}

// NewService wires the orchestrator. persister may be nil when snapshot
// persistence is disabled.
func NewService(store cache.Store, fight FightSource, football, basketball GameSource, golf GolfSource, persister Persister) *Service {
	return &Service{
		store:      store,
		fight:      fight,
		football:   football,
		basketball: basketball,
		golf:       golf,
		persister:  persister,
	}
}

// FetchFight returns fight events, from cache when useCache is set.
func (s *Service) FetchFight(ctx context.Context, useCache bool) []models.FightEvent {
	return fetchCached(ctx, s.store, KeyFight, useCache, s.fight.Fetch, func(ctx context.Context, events []models.FightEvent) {
		if s.persister != nil {
			if err := s.persister.SaveFightEvents(ctx, events); err != nil {
				log.Printf("[fight] snapshot save failed: %v", err)
			}
		}
	})
}

// FetchFootball returns football games, from cache when useCache is set.
func (s *Service) FetchFootball(ctx context.Context, useCache bool) []models.Game {
	return fetchCached(ctx, s.store, KeyFootball, useCache, s.football.Fetch, func(ctx context.Context, games []models.Game) {
		if s.persister != nil {
			if err := s.persister.SaveGames(ctx, models.SportFootball, games); err != nil {
				log.Printf("[football] snapshot save failed: %v", err)
			}
		}
	})
}

// FetchBasketball returns basketball games, from cache when useCache is set.
func (s *Service) FetchBasketball(ctx context.Context, useCache bool) []models.Game {
	return fetchCached(ctx, s.store, KeyBasketball, useCache, s.basketball.Fetch, func(ctx context.Context, games []models.Game) {
		if s.persister != nil {
			if err := s.persister.SaveGames(ctx, models.SportBasketball, games); err != nil {
				log.Printf("[basketball] snapshot save failed: %v", err)
			}
		}
	})
}

// FetchGolf returns golf tournaments, from cache when useCache is set.
func (s *Service) FetchGolf(ctx context.Context, useCache bool) []models.Tournament {
	return fetchCached(ctx, s.store, KeyGolf, useCache, s.golf.Fetch, func(ctx context.Context, tournaments []models.Tournament) {
		if s.persister != nil {
			if err := s.persister.SaveTournaments(ctx, tournaments); err != nil {
				log.Printf("[golf] snapshot save failed: %v", err)
			}
		}
	})
}

// fetchCached is the shared cache-aside path: hit returns the cached list,
// miss invokes the upstream and unconditionally writes the result back
// (empty included) before returning it.
func fetchCached[T any](
	ctx context.Context,
	store cache.Store,
	key string,
	useCache bool,
	fetch func(context.Context) []T,
	persist func(context.Context, []T),
) []T {
	if useCache {
		if data, ok, err := store.Get(ctx, key); err == nil && ok {
			var cached []T
			if err := json.Unmarshal(data, &cached); err == nil {
				return cached
			}
			log.Printf("[%s] discarding undecodable cache entry", key)
		} else if err != nil {
			log.Printf("[%s] cache read failed: %v", key, err)
		}
	}

	result := fetch(ctx)
	if result == nil {
		result = []T{}
	}

	if data, err := json.Marshal(result); err == nil {
		if err := store.Set(ctx, key, data, TTL); err != nil {
			log.Printf("[%s] cache write failed: %v", key, err)
		}
	}

	persist(ctx, result)
	return result
}
