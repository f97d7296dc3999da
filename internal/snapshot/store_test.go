package snapshot

import (
	"context"
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/XavierBriggs/fortuna/services/livesports-api/pkg/models"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "snapshots.db"))
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestSaveGamesAndReadBack(t *testing.T) {
	ctx := context.Background()
	store := openTestStore(t)

	games := []models.Game{
		{ID: "401", Sport: models.SportFootball, Status: "Sun 1:00 PM", State: "pre", GameTime: "2026-09-06T17:00Z"},
		{ID: "402", Sport: models.SportFootball, Status: "Q2 4:31", State: "in", GameTime: "2026-09-01T17:00Z"},
	}
	if err := store.SaveGames(ctx, models.SportFootball, games); err != nil {
		t.Fatalf("SaveGames() error = %v", err)
	}

	payloads, err := store.Latest(ctx, models.SportFootball)
	if err != nil {
		t.Fatalf("Latest() error = %v", err)
	}
	if len(payloads) != 2 {
		t.Fatalf("Latest() returned %d rows, want 2", len(payloads))
	}

	var got models.Game
	if err := json.Unmarshal(payloads[0], &got); err != nil {
		t.Fatalf("unmarshaling payload: %v", err)
	}
	if got.Sport != models.SportFootball {
		t.Errorf("payload sport = %s, want football", got.Sport)
	}
}

func TestSaveReplacesExistingRow(t *testing.T) {
	ctx := context.Background()
	store := openTestStore(t)

	first := []models.FightEvent{{ID: "f1", EventName: "UFC 320", Status: "Upcoming"}}
	second := []models.FightEvent{{ID: "f1", EventName: "UFC 320", Status: models.StatusLiveToday}}

	if err := store.SaveFightEvents(ctx, first); err != nil {
		t.Fatalf("SaveFightEvents() error = %v", err)
	}
	if err := store.SaveFightEvents(ctx, second); err != nil {
		t.Fatalf("SaveFightEvents() error = %v", err)
	}

	payloads, err := store.Latest(ctx, models.SportFight)
	if err != nil {
		t.Fatalf("Latest() error = %v", err)
	}
	if len(payloads) != 1 {
		t.Fatalf("Latest() returned %d rows, want 1 (upsert should replace)", len(payloads))
	}

	var got models.FightEvent
	json.Unmarshal(payloads[0], &got)
	if got.Status != models.StatusLiveToday {
		t.Errorf("status = %s, want replacement row's status", got.Status)
	}
}

func TestLatestEmptySport(t *testing.T) {
	store := openTestStore(t)

	payloads, err := store.Latest(context.Background(), models.SportGolf)
	if err != nil {
		t.Fatalf("Latest() error = %v", err)
	}
	if len(payloads) != 0 {
		t.Errorf("Latest() returned %d rows for empty sport, want 0", len(payloads))
	}
}
