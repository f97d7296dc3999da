// Package golf normalizes the ESPN PGA scoreboard. Tournaments run for
// days, so there is no date window: anything live or scheduled is kept.
package golf

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/XavierBriggs/fortuna/services/livesports-api/internal/providers/espn"
	"github.com/XavierBriggs/fortuna/services/livesports-api/internal/sports/espnx"
	"github.com/XavierBriggs/fortuna/services/livesports-api/pkg/models"
)

const (
	// MaxLeaders caps leaderboard entries per tournament.
	MaxLeaders = 10

	Source = "ESPN PGA (Official - Live)"
)

// Client fetches and normalizes golf tournaments.
type Client struct {
	espn *espn.Client
	now  func() time.Time
}

// New creates a golf client.
func New(espnClient *espn.Client) *Client {
	return &Client{espn: espnClient, now: time.Now}
}

// Fetch returns active and scheduled tournaments. It never fails: any
// upstream or shape error is logged and surfaces as an empty list.
func (c *Client) Fetch(ctx context.Context) []models.Tournament {
	doc, err := c.espn.FetchScoreboard(ctx, espn.PathGolf)
	if err != nil {
		log.Printf("[golf] scoreboard fetch failed: %v", err)
		return []models.Tournament{}
	}
	return c.parse(doc)
}

func (c *Client) parse(doc map[string]interface{}) []models.Tournament {
	tournaments := []models.Tournament{}

	for _, ei := range espnx.ExtractArray(doc, "events") {
		event, ok := ei.(map[string]interface{})
		if !ok {
			continue
		}

		// Tournaments without a name are dropped outright.
		if espnx.ExtractString(event, "name") == "" {
			continue
		}

		competitions := espnx.ExtractArray(event, "competitions")
		if len(competitions) == 0 {
			continue
		}
		competition, ok := competitions[0].(map[string]interface{})
		if !ok {
			continue
		}

		status := espnx.ExtractMap(competition, "status")
		statusType := espnx.ExtractMap(status, "type")
		state := espnx.ExtractString(statusType, "state")
		if state == "" {
			state = "pre"
		}
		if !espnx.KeepableState(state) {
			continue
		}

		venue := espnx.ExtractMap(competition, "venue")
		address := espnx.ExtractMap(venue, "address")
		city := espnx.ExtractString(address, "city")
		if city == "" {
			city = "TBA"
		}
		region := espnx.ExtractString(address, "state")
		if region == "" {
			region = "TBA"
		}

		shortDetail := espnx.ExtractString(statusType, "shortDetail")
		if shortDetail == "" {
			shortDetail = "In Progress"
		}

		round := espnx.ExtractInt(status, "period")
		if round == 0 {
			round = 1
		}

		purse := espnx.ExtractString(competition, "purse")
		if purse == "" {
			purse = "N/A"
		}

		tournaments = append(tournaments, models.Tournament{
			ID:             espnx.ExtractString(event, "id"),
			Sport:          models.SportGolf,
			TournamentName: espnx.ExtractString(event, "name"),
			Status:         shortDetail,
			Date:           espnx.ExtractString(event, "date"),
			Venue:          venueName(venue),
			Location:       fmt.Sprintf("%s, %s", city, region),
			Purse:          purse,
			Round:          round,
			Leaders:        c.parseLeaders(competition),
			Source:         Source,
			LastUpdated:    c.now(),
		})
	}

	return tournaments
}

func (c *Client) parseLeaders(competition map[string]interface{}) []models.Leader {
	leaders := []models.Leader{}

	for _, ci := range espnx.ExtractArray(competition, "competitors") {
		if len(leaders) >= MaxLeaders {
			break
		}
		competitor, ok := ci.(map[string]interface{})
		if !ok {
			continue
		}

		athlete := espnx.ExtractMap(competitor, "athlete")
		name := espnx.ExtractString(athlete, "displayName")
		if name == "" {
			continue
		}

		status := espnx.ExtractMap(competitor, "status")
		position := espnx.ExtractString(espnx.ExtractMap(status, "position"), "displayValue")
		if position == "" {
			position = "-"
		}
		thru := espnx.StringOrNumber(status, "thru", "-")

		score := espnx.ExtractString(espnx.ExtractMap(competitor, "score"), "displayValue")
		if score == "" {
			score = "E"
		}

		country := espnx.ExtractString(espnx.ExtractMap(athlete, "flag"), "alt")
		if country == "" {
			country = "Unknown"
		}

		leaders = append(leaders, models.Leader{
			Name:     name,
			Position: position,
			Score:    score,
			Thru:     thru,
			Country:  country,
		})
	}

	return leaders
}

func venueName(venue map[string]interface{}) string {
	if name := espnx.ExtractString(venue, "fullName"); name != "" {
		return name
	}
	return "TBA"
}
