package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"github.com/XavierBriggs/fortuna/services/livesports-api/internal/hub"
	"github.com/XavierBriggs/fortuna/services/livesports-api/pkg/models"
)

type stubFetcher struct {
	fight      []models.FightEvent
	football   []models.Game
	basketball []models.Game
	golf       []models.Tournament

	usedCache []bool
}

func (s *stubFetcher) FetchFight(_ context.Context, useCache bool) []models.FightEvent {
	s.usedCache = append(s.usedCache, useCache)
	return s.fight
}

func (s *stubFetcher) FetchFootball(_ context.Context, useCache bool) []models.Game {
	s.usedCache = append(s.usedCache, useCache)
	return s.football
}

func (s *stubFetcher) FetchBasketball(_ context.Context, useCache bool) []models.Game {
	s.usedCache = append(s.usedCache, useCache)
	return s.basketball
}

func (s *stubFetcher) FetchGolf(_ context.Context, useCache bool) []models.Tournament {
	s.usedCache = append(s.usedCache, useCache)
	return s.golf
}

func (s *stubFetcher) FetchAll(ctx context.Context, useCache bool) models.Snapshot {
	return models.Snapshot{
		Fight:      s.FetchFight(ctx, useCache),
		Football:   s.FetchFootball(ctx, useCache),
		Basketball: s.FetchBasketball(ctx, useCache),
		Golf:       s.FetchGolf(ctx, useCache),
	}
}

func newTestHandler(t *testing.T, fetcher *stubFetcher) *Handler {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	h := hub.New()
	go h.Run(ctx)
	return New(fetcher, h, ctx)
}

func do(t *testing.T, handlerFn http.HandlerFunc, target string) map[string]interface{} {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	handlerFn(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("GET %s: status %d, want 200", target, rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type = %q, want application/json", ct)
	}

	var body map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	return body
}

func TestHandleFight(t *testing.T) {
	fetcher := &stubFetcher{fight: []models.FightEvent{
		{ID: "ufc-299", EventName: "UFC 299", Status: "Sep 13, 2026"},
		{ID: "ufc-300", EventName: "UFC 300", Status: models.StatusLiveToday},
	}}
	h := newTestHandler(t, fetcher)

	body := do(t, h.HandleFight, "/api/fight")

	if body["sport"] != "fight" {
		t.Errorf("sport = %v, want fight", body["sport"])
	}
	if body["count"] != float64(2) {
		t.Errorf("count = %v, want 2", body["count"])
	}
	today, ok := body["today_event"].(map[string]interface{})
	if !ok {
		t.Fatalf("today_event = %v, want the live card", body["today_event"])
	}
	if today["id"] != "ufc-300" {
		t.Errorf("today_event.id = %v, want the LIVE TODAY card", today["id"])
	}
}

func TestHandleFightNoEvents(t *testing.T) {
	h := newTestHandler(t, &stubFetcher{fight: []models.FightEvent{}})

	body := do(t, h.HandleFight, "/api/fight")

	if body["count"] != float64(0) {
		t.Errorf("count = %v, want 0", body["count"])
	}
	events, ok := body["events"].([]interface{})
	if !ok || len(events) != 0 {
		t.Errorf("events = %v, want empty list", body["events"])
	}
	if body["today_event"] != nil {
		t.Errorf("today_event = %v, want null", body["today_event"])
	}
}

func TestHandleFootball(t *testing.T) {
	fetcher := &stubFetcher{football: []models.Game{
		{ID: "401", Sport: models.SportFootball, Status: models.StatusLiveToday},
	}}
	h := newTestHandler(t, fetcher)

	body := do(t, h.HandleFootball, "/api/football")

	if body["sport"] != "football" {
		t.Errorf("sport = %v, want football", body["sport"])
	}
	if body["count"] != float64(1) {
		t.Errorf("count = %v, want 1", body["count"])
	}
}

func TestHandleGolf(t *testing.T) {
	fetcher := &stubFetcher{golf: []models.Tournament{
		{ID: "pga1", TournamentName: "The Open"},
	}}
	h := newTestHandler(t, fetcher)

	body := do(t, h.HandleGolf, "/api/golf")

	if body["count"] != float64(1) {
		t.Errorf("count = %v, want 1", body["count"])
	}
	tournaments, ok := body["tournaments"].([]interface{})
	if !ok || len(tournaments) != 1 {
		t.Fatalf("tournaments = %v, want one entry", body["tournaments"])
	}
}

func TestFreshParamBypassesCache(t *testing.T) {
	tests := []struct {
		name      string
		target    string
		wantCache bool
	}{
		{"default_uses_cache", "/api/basketball", true},
		{"fresh_true_bypasses", "/api/basketball?fresh=true", false},
		{"fresh_other_value_uses_cache", "/api/basketball?fresh=1", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fetcher := &stubFetcher{}
			h := newTestHandler(t, fetcher)

			do(t, h.HandleBasketball, tt.target)

			if len(fetcher.usedCache) != 1 {
				t.Fatalf("fetcher called %d times, want 1", len(fetcher.usedCache))
			}
			if fetcher.usedCache[0] != tt.wantCache {
				t.Errorf("useCache = %v, want %v", fetcher.usedCache[0], tt.wantCache)
			}
		})
	}
}

func TestHandleAllAlwaysHasFourSections(t *testing.T) {
	// Every upstream empty still yields a complete, well-formed envelope.
	h := newTestHandler(t, &stubFetcher{})

	body := do(t, h.HandleAll, "/api/all")

	for _, key := range []string{"fight", "football", "basketball", "golf"} {
		section, ok := body[key].(map[string]interface{})
		if !ok {
			t.Fatalf("missing %s section: %v", key, body[key])
		}
		if section["count"] != float64(0) {
			t.Errorf("%s count = %v, want 0", key, section["count"])
		}
	}
	if _, ok := body["last_updated"].(string); !ok {
		t.Errorf("last_updated = %v, want a timestamp", body["last_updated"])
	}
}

func TestHandleAllCarriesData(t *testing.T) {
	fetcher := &stubFetcher{
		fight:    []models.FightEvent{{ID: "ufc-300", Status: models.StatusLiveToday}},
		football: []models.Game{{ID: "401"}},
	}
	h := newTestHandler(t, fetcher)

	body := do(t, h.HandleAll, "/api/all")

	fight := body["fight"].(map[string]interface{})
	if fight["count"] != float64(1) {
		t.Errorf("fight count = %v, want 1", fight["count"])
	}
	today, ok := fight["today_event"].(map[string]interface{})
	if !ok || today["id"] != "ufc-300" {
		t.Errorf("fight today_event = %v, want ufc-300", fight["today_event"])
	}
	football := body["football"].(map[string]interface{})
	if football["count"] != float64(1) {
		t.Errorf("football count = %v, want 1", football["count"])
	}
}

func TestHandleRoot(t *testing.T) {
	h := newTestHandler(t, &stubFetcher{})

	body := do(t, h.HandleRoot, "/")

	if body["version"] != Version {
		t.Errorf("version = %v, want %s", body["version"], Version)
	}
	endpoints, ok := body["endpoints"].(map[string]interface{})
	if !ok {
		t.Fatal("missing endpoints map")
	}
	for _, ep := range []string{"/api/fight", "/api/football", "/api/basketball", "/api/golf", "/api/all", "/ws"} {
		if _, ok := endpoints[ep]; !ok {
			t.Errorf("endpoints missing %s", ep)
		}
	}
}

func TestHandleHealth(t *testing.T) {
	h := newTestHandler(t, &stubFetcher{})

	body := do(t, h.HandleHealth, "/health")

	if body["status"] != "healthy" {
		t.Errorf("status = %v, want healthy", body["status"])
	}
	if body["active_clients"] != float64(0) {
		t.Errorf("active_clients = %v, want 0", body["active_clients"])
	}
}

func TestHandleWebSocketSubscribes(t *testing.T) {
	fetcher := &stubFetcher{}
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	feedHub := hub.New()
	go feedHub.Run(ctx)
	h := New(fetcher, feedHub, ctx)

	srv := httptest.NewServer(http.HandlerFunc(h.HandleWebSocket))
	defer srv.Close()

	wsURL, _ := url.Parse(srv.URL)
	wsURL.Scheme = "ws"
	conn, _, err := websocket.DefaultDialer.Dial(wsURL.String(), nil)
	if err != nil {
		t.Fatalf("dialing websocket: %v", err)
	}
	defer conn.Close()

	waitFor(t, func() bool { return feedHub.ClientCount() == 1 })

	feedHub.Broadcast(hub.NewUpdate(models.Snapshot{
		Fight: []models.FightEvent{{ID: "ufc-300"}},
	}))

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	var msg hub.UpdateMessage
	if err := conn.ReadJSON(&msg); err != nil {
		t.Fatalf("reading feed message: %v", err)
	}
	if msg.Type != "update" {
		t.Errorf("Type = %q, want update", msg.Type)
	}
	if len(msg.Data.Fight) != 1 || msg.Data.Fight[0].ID != "ufc-300" {
		t.Errorf("payload = %+v, want the broadcast snapshot", msg.Data)
	}

	conn.Close()
	waitFor(t, func() bool { return feedHub.ClientCount() == 0 })
}

func TestHandleWebSocketRejectsPlainGet(t *testing.T) {
	h := newTestHandler(t, &stubFetcher{})

	req := httptest.NewRequest(http.MethodGet, "/ws", nil)
	rec := httptest.NewRecorder()
	h.HandleWebSocket(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d for non-upgrade request, want 400", rec.Code)
	}
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("condition not met before deadline")
}
