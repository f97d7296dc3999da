// Package scoreboard reshapes ESPN event/competition scoreboard documents
// into normalized Game records. Football and basketball share this shape;
// only the window, cap, and rank handling differ per sport.
package scoreboard

import (
	"time"

	"github.com/XavierBriggs/fortuna/services/livesports-api/internal/odds"
	"github.com/XavierBriggs/fortuna/services/livesports-api/internal/sports/espnx"
	"github.com/XavierBriggs/fortuna/services/livesports-api/pkg/models"
)

// Config fixes the per-sport knobs of the shared game shape.
type Config struct {
	Sport       models.Sport
	Source      string
	WindowDays  int // events dated past today+WindowDays are dropped
	MaxGames    int // 0 means unlimited
	IncludeRank bool
}

// Parser turns a raw scoreboard document into Game records.
type Parser struct {
	cfg  Config
	odds *odds.Resolver
	now  func() time.Time
}

// NewParser creates a parser for one sport's scoreboard.
func NewParser(cfg Config, resolver *odds.Resolver) *Parser {
	return &Parser{cfg: cfg, odds: resolver, now: time.Now}
}

// SetClock overrides the wall clock, for window tests.
func (p *Parser) SetClock(now func() time.Time) {
	p.now = now
}

// ParseGames extracts every keepable game from a scoreboard document.
// An event survives only if its date parses and falls inside the sport's
// window, its state is live or scheduled, and both sides resolve to
// non-empty team names. Malformed entries are dropped, not reported.
func (p *Parser) ParseGames(doc map[string]interface{}) []models.Game {
	today := p.now()
	games := []models.Game{}

	for _, ei := range espnx.ExtractArray(doc, "events") {
		event, ok := ei.(map[string]interface{})
		if !ok {
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

		statusType := espnx.ExtractMap(espnx.ExtractMap(competition, "status"), "type")
		state := espnx.ExtractString(statusType, "state")
		if !espnx.KeepableState(state) {
			continue
		}

		dateStr := espnx.ExtractString(event, "date")
		eventDate, err := espnx.ParseEventDate(dateStr)
		if err != nil || !espnx.WithinWindow(eventDate, today, p.cfg.WindowDays) {
			continue
		}

		competitors := espnx.ExtractArray(competition, "competitors")
		home := espnx.Competitor(competitors, "home")
		away := espnx.Competitor(competitors, "away")
		if home == nil || away == nil {
			continue
		}

		homeTeam := p.shapeTeam(home)
		awayTeam := p.shapeTeam(away)
		if homeTeam.Name == "" || awayTeam.Name == "" {
			continue
		}

		status := espnx.ExtractString(statusType, "shortDetail")
		if espnx.DaysUntil(eventDate, today) == 0 {
			status = models.StatusLiveToday
		}

		games = append(games, models.Game{
			ID:          espnx.ExtractString(event, "id"),
			Sport:       p.cfg.Sport,
			Name:        espnx.ExtractString(event, "name"),
			Status:      status,
			State:       state,
			GameTime:    dateStr,
			HomeTeam:    homeTeam,
			AwayTeam:    awayTeam,
			Venue:       espnx.ExtractString(espnx.ExtractMap(competition, "venue"), "fullName"),
			Broadcast:   espnx.FirstBroadcast(competition, "N/A"),
			Odds:        p.odds.Resolve(competition),
			Source:      p.cfg.Source,
			LastUpdated: today,
		})

		if p.cfg.MaxGames > 0 && len(games) >= p.cfg.MaxGames {
			break
		}
	}

	return games
}

func (p *Parser) shapeTeam(competitor map[string]interface{}) models.Team {
	teamData := espnx.ExtractMap(competitor, "team")
	name := espnx.ExtractString(teamData, "displayName")

	team := models.Team{
		Name:         name,
		Abbreviation: espnx.AbbreviationOr(espnx.ExtractString(teamData, "abbreviation"), name),
		Score:        espnx.Score(competitor),
		Logo:         espnx.ExtractString(teamData, "logo"),
		Record:       espnx.RecordSummary(competitor),
	}

	if p.cfg.IncludeRank {
		rank := espnx.ExtractMap(competitor, "curatedRank")
		if v, ok := rank["current"]; ok {
			r := espnx.ParseInt(v)
			team.Rank = &r
		}
	}

	return team
}
