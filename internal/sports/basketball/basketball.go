// Package basketball normalizes the ESPN college basketball scoreboard.
package basketball

import (
	"context"
	"log"
	"time"

	"github.com/XavierBriggs/fortuna/services/livesports-api/internal/odds"
	"github.com/XavierBriggs/fortuna/services/livesports-api/internal/providers/espn"
	"github.com/XavierBriggs/fortuna/services/livesports-api/internal/sports/scoreboard"
	"github.com/XavierBriggs/fortuna/services/livesports-api/pkg/models"
)

const (
	// WindowDays keeps near-term games only; college slates are huge.
	WindowDays = 3

	// MaxGames caps a single fetch.
	MaxGames = 50

	Source = "ESPN (Official - Live)"
)

// Client fetches and normalizes basketball games.
type Client struct {
	espn   *espn.Client
	parser *scoreboard.Parser
}

// New creates a basketball client.
func New(espnClient *espn.Client, resolver *odds.Resolver) *Client {
	return &Client{
		espn: espnClient,
		parser: scoreboard.NewParser(scoreboard.Config{
			Sport:       models.SportBasketball,
			Source:      Source,
			WindowDays:  WindowDays,
			MaxGames:    MaxGames,
			IncludeRank: true,
		}, resolver),
	}
}

// SetClock overrides the parser's wall clock, for tests.
func (c *Client) SetClock(now func() time.Time) {
	c.parser.SetClock(now)
}

// Fetch returns normalized games for the next three days. It never fails:
// any upstream or shape error is logged and surfaces as an empty list.
func (c *Client) Fetch(ctx context.Context) []models.Game {
	doc, err := c.espn.FetchScoreboard(ctx, espn.PathBasketball)
	if err != nil {
		log.Printf("[basketball] scoreboard fetch failed: %v", err)
		return []models.Game{}
	}
	return c.parser.ParseGames(doc)
}
