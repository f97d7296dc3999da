// Package handlers exposes the REST and websocket surface. Handlers are
// thin: every sport endpoint is cache lookup + JSON envelope, and fetch
// failures never surface as errors: callers get a success response with
// an empty list and count 0.
package handlers

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/XavierBriggs/fortuna/services/livesports-api/internal/fetch"
	"github.com/XavierBriggs/fortuna/services/livesports-api/internal/hub"
	"github.com/XavierBriggs/fortuna/services/livesports-api/pkg/models"
)

// Version of the service API.
const Version = "4.1.0"

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// Fetcher is the slice of the fetch service the handlers need.
type Fetcher interface {
	FetchFight(ctx context.Context, useCache bool) []models.FightEvent
	FetchFootball(ctx context.Context, useCache bool) []models.Game
	FetchBasketball(ctx context.Context, useCache bool) []models.Game
	FetchGolf(ctx context.Context, useCache bool) []models.Tournament
	FetchAll(ctx context.Context, useCache bool) models.Snapshot
}

// Handler serves the HTTP API.
type Handler struct {
	fetcher Fetcher
	hub     *hub.Hub
	ctx     context.Context // lifecycle context for websocket pumps
}

// New creates a handler. ctx bounds the lifetime of websocket pumps, so
// pass the process context rather than a request context.
func New(fetcher Fetcher, h *hub.Hub, ctx context.Context) *Handler {
	return &Handler{fetcher: fetcher, hub: h, ctx: ctx}
}

// useCache derives the cache flag from the request's fresh parameter.
func useCache(r *http.Request) bool {
	return r.URL.Query().Get("fresh") != "true"
}

func writeJSON(w http.ResponseWriter, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Printf("[http] encoding response: %v", err)
	}
}

// HandleRoot returns service metadata.
// GET /
func (h *Handler) HandleRoot(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, map[string]interface{}{
		"version": Version,
		"sources": map[string]string{
			"fight":      "UFC.com (Official - Web Scraping)",
			"football":   "ESPN Official API",
			"basketball": "ESPN Official API",
			"golf":       "ESPN PGA Official API",
		},
		"features": []string{
			"Live and upcoming events only",
			"30-second cache for freshness",
			"3-second WebSocket updates",
			"Official sources only",
		},
		"endpoints": map[string]string{
			"/api/fight":      "Fight events",
			"/api/football":   "Football games",
			"/api/basketball": "Basketball games",
			"/api/golf":       "Golf tournaments",
			"/api/all":        "All sports combined",
			"/ws":             "Periodic feed",
		},
	})
}

// HandleHealth returns service health.
// GET /health
func (h *Handler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, map[string]interface{}{
		"status":         "healthy",
		"service":        "livesports-api",
		"active_clients": h.hub.ClientCount(),
	})
}

// HandleFight returns fight events plus the featured card.
// GET /api/fight?fresh=true
func (h *Handler) HandleFight(w http.ResponseWriter, r *http.Request) {
	events := h.fetcher.FetchFight(r.Context(), useCache(r))
	writeJSON(w, map[string]interface{}{
		"sport":       models.SportFight,
		"source":      "UFC.com (Official)",
		"events":      events,
		"count":       len(events),
		"today_event": models.TodayEvent(events),
	})
}

// HandleFootball returns football games.
// GET /api/football?fresh=true
func (h *Handler) HandleFootball(w http.ResponseWriter, r *http.Request) {
	games := h.fetcher.FetchFootball(r.Context(), useCache(r))
	writeJSON(w, map[string]interface{}{
		"sport":  models.SportFootball,
		"source": "ESPN",
		"games":  games,
		"count":  len(games),
	})
}

// HandleBasketball returns basketball games.
// GET /api/basketball?fresh=true
func (h *Handler) HandleBasketball(w http.ResponseWriter, r *http.Request) {
	games := h.fetcher.FetchBasketball(r.Context(), useCache(r))
	writeJSON(w, map[string]interface{}{
		"sport":  models.SportBasketball,
		"source": "ESPN",
		"games":  games,
		"count":  len(games),
	})
}

// HandleGolf returns golf tournaments.
// GET /api/golf?fresh=true
func (h *Handler) HandleGolf(w http.ResponseWriter, r *http.Request) {
	tournaments := h.fetcher.FetchGolf(r.Context(), useCache(r))
	writeJSON(w, map[string]interface{}{
		"sport":       models.SportGolf,
		"source":      "ESPN PGA",
		"tournaments": tournaments,
		"count":       len(tournaments),
	})
}

// HandleAll returns the merged snapshot of every sport.
// GET /api/all?fresh=true
func (h *Handler) HandleAll(w http.ResponseWriter, r *http.Request) {
	snap := h.fetcher.FetchAll(r.Context(), useCache(r))
	writeJSON(w, map[string]interface{}{
		"fight": map[string]interface{}{
			"events":      snap.Fight,
			"count":       len(snap.Fight),
			"source":      "UFC.com Official",
			"today_event": models.TodayEvent(snap.Fight),
		},
		"football": map[string]interface{}{
			"games":  snap.Football,
			"count":  len(snap.Football),
			"source": "ESPN Official",
		},
		"basketball": map[string]interface{}{
			"games":  snap.Basketball,
			"count":  len(snap.Basketball),
			"source": "ESPN Official",
		},
		"golf": map[string]interface{}{
			"tournaments": snap.Golf,
			"count":       len(snap.Golf),
			"source":      "ESPN PGA Official",
		},
		"last_updated": time.Now(),
	})
}

// HandleWebSocket upgrades the connection and registers the caller as a
// feed subscriber.
// GET /ws
func (h *Handler) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("[http] websocket upgrade failed: %v", err)
		return
	}

	c := hub.NewClient(uuid.New().String(), conn, h.hub)
	h.hub.Register(c)

	// Pumps run on the process context, not the request context, so the
	// connection outlives this handler.
	go c.WritePump(h.ctx)
	go c.ReadPump(h.ctx)
}

var _ Fetcher = (*fetch.Service)(nil)
