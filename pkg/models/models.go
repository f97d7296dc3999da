package models

import "time"

// Sport identifies one of the four supported sport feeds.
type Sport string

const (
	SportFight      Sport = "fight"
	SportFootball   Sport = "football"
	SportBasketball Sport = "basketball"
	SportGolf       Sport = "golf"
)

// Upstream competition states we keep. Anything else (post, canceled,
// postponed) is filtered out at the client boundary.
const (
	StateLive     = "in"
	StateUpcoming = "pre"
)

// StatusLiveToday marks a record whose calendar date matches today.
const StatusLiveToday = "LIVE TODAY"

// Team is one side of a football or basketball matchup.
type Team struct {
	Name         string `json:"name"`
	Abbreviation string `json:"abbreviation"`
	Score        string `json:"score"`
	Logo         string `json:"logo"`
	Record       string `json:"record"`
	Rank         *int   `json:"rank,omitempty"` // basketball only
}

// Game is a normalized football or basketball matchup.
type Game struct {
	ID          string    `json:"id"`
	Sport       Sport     `json:"sport"`
	Name        string    `json:"name"`
	Status      string    `json:"status"`
	State       string    `json:"state"`
	GameTime    string    `json:"game_time"`
	HomeTeam    Team      `json:"home_team"`
	AwayTeam    Team      `json:"away_team"`
	Venue       string    `json:"venue"`
	Broadcast   string    `json:"broadcast"`
	Odds        OddsQuote `json:"odds"`
	Source      string    `json:"source"`
	LastUpdated time.Time `json:"last_updated"`
}

// FightEvent is a normalized fight card. The Date field keeps the
// upstream-native date text (the UFC.com listing is not ISO formatted).
type FightEvent struct {
	ID          string    `json:"id"`
	Sport       Sport     `json:"sport"`
	EventName   string    `json:"event_name"`
	EventType   string    `json:"event_type"` // "PPV" or "Fight Night"
	Date        string    `json:"date"`
	Venue       string    `json:"venue"`
	City        string    `json:"city"`
	Country     string    `json:"country"`
	Status      string    `json:"status"`
	Fighter1    string    `json:"fighter1"`
	Fighter2    string    `json:"fighter2"`
	Broadcast   string    `json:"broadcast"`
	Source      string    `json:"source"`
	LastUpdated time.Time `json:"last_updated"`
}

// Leader is one leaderboard entry of a golf tournament.
type Leader struct {
	Name     string `json:"name"`
	Position string `json:"position"`
	Score    string `json:"score"`
	Thru     string `json:"thru"`
	Country  string `json:"country"`
}

// Tournament is a normalized golf tournament with its top leaders.
type Tournament struct {
	ID             string    `json:"id"`
	Sport          Sport     `json:"sport"`
	TournamentName string    `json:"tournament_name"`
	Status         string    `json:"status"`
	Date           string    `json:"date"`
	Venue          string    `json:"venue"`
	Location       string    `json:"location"`
	Purse          string    `json:"purse"`
	Round          int       `json:"round"`
	Leaders        []Leader  `json:"leaders"`
	Source         string    `json:"source"`
	LastUpdated    time.Time `json:"last_updated"`
}

// OddsQuote holds betting lines for a single matchup. Every field is
// individually nullable because upstream odds entries are sparse.
// Synthetic is true when no upstream odds existed and the quote was
// generated as a placeholder; consumers must not treat synthetic quotes
// as market data.
type OddsQuote struct {
	Spread        *float64 `json:"spread"`
	OverUnder     *float64 `json:"over_under"`
	MoneylineHome *int     `json:"moneyline_home"`
	MoneylineAway *int     `json:"moneyline_away"`
	Synthetic     bool     `json:"synthetic"`
}

// Snapshot bundles one fetch of all four sports.
type Snapshot struct {
	Fight      []FightEvent `json:"fight"`
	Football   []Game       `json:"football"`
	Basketball []Game       `json:"basketball"`
	Golf       []Tournament `json:"golf"`
}

// TodayEvent returns the featured fight card: the first event flagged
// LIVE TODAY, else the first event in listing order, else nil.
func TodayEvent(events []FightEvent) *FightEvent {
	if len(events) == 0 {
		return nil
	}
	for i := range events {
		if events[i].Status == StatusLiveToday {
			return &events[i]
		}
	}
	return &events[0]
}
