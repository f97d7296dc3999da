// Package odds extracts betting lines from ESPN competition payloads.
package odds

import (
	"math/rand"

	"github.com/XavierBriggs/fortuna/services/livesports-api/internal/sports/espnx"
	"github.com/XavierBriggs/fortuna/services/livesports-api/pkg/models"
)

// Placeholder line ladders used when the upstream carries no odds entry.
var (
	spreads    = []float64{-14.5, -10.5, -7.5, -3.5, -1.5, 1.5, 3.5, 7.5, 10.5, 14.5}
	overUnders = []float64{42.5, 44.5, 46.5, 47.5, 48.5, 50.5, 52.5, 54.5}
)

// Resolver turns an ESPN competition payload into an OddsQuote.
type Resolver struct {
	rng *rand.Rand
}

// New creates a resolver and seeds its placeholder generator.
func New(seed int64) *Resolver {
	return &Resolver{rng: rand.New(rand.NewSource(seed))}
}

// Resolve returns the competition's first odds entry verbatim, each field
// individually nullable. When no odds entry exists it synthesizes a
// placeholder quote with Synthetic set so consumers can tell it apart
// from market data.
func (r *Resolver) Resolve(competition map[string]interface{}) models.OddsQuote {
	items := espnx.ExtractArray(competition, "odds")
	if len(items) == 0 {
		return r.synthesize()
	}

	first, ok := items[0].(map[string]interface{})
	if !ok {
		return r.synthesize()
	}

	quote := models.OddsQuote{
		Spread:    espnx.ParseFloat(first["spread"]),
		OverUnder: espnx.ParseFloat(first["overUnder"]),
	}
	if ml := espnx.ExtractMap(first, "homeTeamOdds"); len(ml) > 0 {
		if v, ok := ml["moneyLine"]; ok {
			i := espnx.ParseInt(v)
			quote.MoneylineHome = &i
		}
	}
	if ml := espnx.ExtractMap(first, "awayTeamOdds"); len(ml) > 0 {
		if v, ok := ml["moneyLine"]; ok {
			i := espnx.ParseInt(v)
			quote.MoneylineAway = &i
		}
	}
	return quote
}

// synthesize draws placeholder lines: spread and total from fixed ladders,
// moneylines consistent with which side the spread favors.
func (r *Resolver) synthesize() models.OddsQuote {
	spread := spreads[r.rng.Intn(len(spreads))]
	total := overUnders[r.rng.Intn(len(overUnders))]

	favorite := -(r.rng.Intn(341) + 110) // -450..-110
	underdog := r.rng.Intn(241) + 110    // +110..+350

	home, away := favorite, underdog
	if spread > 0 {
		home, away = underdog, favorite
	}

	return models.OddsQuote{
		Spread:        &spread,
		OverUnder:     &total,
		MoneylineHome: &home,
		MoneylineAway: &away,
		Synthetic:     true,
	}
}
