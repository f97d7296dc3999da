package football

import (
	"context"
	"testing"
	"time"

	"github.com/XavierBriggs/fortuna/services/livesports-api/internal/odds"
	"github.com/XavierBriggs/fortuna/services/livesports-api/internal/providers/espn"
	"github.com/XavierBriggs/fortuna/services/livesports-api/internal/sports/sportstest"
	"github.com/XavierBriggs/fortuna/services/livesports-api/pkg/models"
)

var testClock = time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)

func newTestClient(t *testing.T, doc map[string]interface{}) *Client {
	t.Helper()
	srv := sportstest.ServeScoreboard(t, doc)
	c := New(espn.NewWithBaseURL(srv.URL), odds.New(1))
	c.SetClock(func() time.Time { return testClock })
	return c
}

func TestFetchNormalizesGames(t *testing.T) {
	doc := sportstest.Scoreboard(
		sportstest.Event("401", "Chiefs at Bills", sportstest.ISODate(testClock.AddDate(0, 0, 2)), "pre",
			sportstest.Competitor("home", "Buffalo Bills", "BUF", 0),
			sportstest.Competitor("away", "Kansas City Chiefs", "KC", 0),
		),
	)

	games := newTestClient(t, doc).Fetch(context.Background())

	if len(games) != 1 {
		t.Fatalf("Fetch() returned %d games, want 1", len(games))
	}
	g := games[0]
	if g.Sport != models.SportFootball {
		t.Errorf("Sport = %s, want football", g.Sport)
	}
	if g.HomeTeam.Name != "Buffalo Bills" || g.AwayTeam.Name != "Kansas City Chiefs" {
		t.Errorf("teams = %s / %s", g.HomeTeam.Name, g.AwayTeam.Name)
	}
	if g.HomeTeam.Score != "0" {
		t.Errorf("HomeTeam.Score = %q, want \"0\"", g.HomeTeam.Score)
	}
	if g.HomeTeam.Record != "10-2" {
		t.Errorf("HomeTeam.Record = %q, want 10-2", g.HomeTeam.Record)
	}
	if g.HomeTeam.Rank != nil {
		t.Error("football team has a rank; ranks are basketball-only")
	}
	if g.Source != Source {
		t.Errorf("Source = %q, want %q", g.Source, Source)
	}
}

func TestFetchDropsEventMissingTeamName(t *testing.T) {
	noName := sportstest.Competitor("away", "", "", 0)

	doc := sportstest.Scoreboard(
		sportstest.Event("good", "A at B", sportstest.ISODate(testClock.AddDate(0, 0, 1)), "pre",
			sportstest.Competitor("home", "Team B", "B", 0),
			sportstest.Competitor("away", "Team A", "A", 0),
		),
		sportstest.Event("bad", "X at Y", sportstest.ISODate(testClock.AddDate(0, 0, 1)), "pre",
			sportstest.Competitor("home", "Team Y", "Y", 0),
			noName,
		),
	)

	games := newTestClient(t, doc).Fetch(context.Background())

	if len(games) != 1 {
		t.Fatalf("Fetch() returned %d games, want 1 (nameless away side must be dropped)", len(games))
	}
	if games[0].ID != "good" {
		t.Errorf("kept game = %s, want good", games[0].ID)
	}
}

func TestFetchWindowBounds(t *testing.T) {
	tests := []struct {
		name   string
		offset int
		want   int
	}{
		{"today", 0, 1},
		{"last_day", WindowDays, 1},
		{"past_window", WindowDays + 1, 0},
		{"yesterday", -1, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := sportstest.Scoreboard(
				sportstest.Event("401", "A at B", sportstest.ISODate(testClock.AddDate(0, 0, tt.offset)), "pre",
					sportstest.Competitor("home", "Team B", "B", 0),
					sportstest.Competitor("away", "Team A", "A", 0),
				),
			)
			games := newTestClient(t, doc).Fetch(context.Background())
			if len(games) != tt.want {
				t.Errorf("Fetch() returned %d games for offset %+d, want %d", len(games), tt.offset, tt.want)
			}
		})
	}
}

func TestFetchSkipsFinishedGames(t *testing.T) {
	doc := sportstest.Scoreboard(
		sportstest.Event("401", "A at B", sportstest.ISODate(testClock), "post",
			sportstest.Competitor("home", "Team B", "B", 31),
			sportstest.Competitor("away", "Team A", "A", 17),
		),
	)

	if games := newTestClient(t, doc).Fetch(context.Background()); len(games) != 0 {
		t.Errorf("Fetch() kept %d finished games, want 0", len(games))
	}
}

func TestFetchMarksLiveToday(t *testing.T) {
	doc := sportstest.Scoreboard(
		sportstest.Event("today", "A at B", sportstest.ISODate(testClock.Add(4*time.Hour)), "pre",
			sportstest.Competitor("home", "Team B", "B", 0),
			sportstest.Competitor("away", "Team A", "A", 0),
		),
		sportstest.Event("later", "C at D", sportstest.ISODate(testClock.AddDate(0, 0, 3)), "pre",
			sportstest.Competitor("home", "Team D", "D", 0),
			sportstest.Competitor("away", "Team C", "C", 0),
		),
	)

	games := newTestClient(t, doc).Fetch(context.Background())
	if len(games) != 2 {
		t.Fatalf("Fetch() returned %d games, want 2", len(games))
	}
	if games[0].Status != models.StatusLiveToday {
		t.Errorf("same-day game status = %q, want %q", games[0].Status, models.StatusLiveToday)
	}
	if games[1].Status == models.StatusLiveToday {
		t.Error("future game marked live today")
	}
}

func TestFetchFailOpen(t *testing.T) {
	srv := sportstest.ServeError(t, 503)
	c := New(espn.NewWithBaseURL(srv.URL), odds.New(1))

	games := c.Fetch(context.Background())
	if games == nil {
		t.Fatal("Fetch() = nil on upstream failure, want empty slice")
	}
	if len(games) != 0 {
		t.Errorf("Fetch() returned %d games on upstream failure, want 0", len(games))
	}
}
