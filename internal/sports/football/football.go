// Package football normalizes the ESPN NFL scoreboard.
package football

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
	// WindowDays keeps games from today through the coming week.
	WindowDays = 7

	Source = "ESPN (Official - Live)"
)

// Client fetches and normalizes football games.
type Client struct {
	espn   *espn.Client
	parser *scoreboard.Parser
}

// New creates a football client.
func New(espnClient *espn.Client, resolver *odds.Resolver) *Client {
	return &Client{
		espn: espnClient,
		parser: scoreboard.NewParser(scoreboard.Config{
			Sport:      models.SportFootball,
			Source:     Source,
			WindowDays: WindowDays,
		}, resolver),
	}
}

// SetClock overrides the parser's wall clock, for tests.
func (c *Client) SetClock(now func() time.Time) {
	c.parser.SetClock(now)
}

// Fetch returns normalized games for the coming week. It never fails:
// any upstream or shape error is logged and surfaces as an empty list.
func (c *Client) Fetch(ctx context.Context) []models.Game {
	doc, err := c.espn.FetchScoreboard(ctx, espn.PathFootball)
	if err != nil {
		log.Printf("[football] scoreboard fetch failed: %v", err)
		return []models.Game{}
	}
	return c.parser.ParseGames(doc)
}
