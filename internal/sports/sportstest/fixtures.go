// Package sportstest holds shared fixtures for exercising the sport
// normalizers against fake upstream documents.
package sportstest

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

// Event builds an ESPN scoreboard event with two competitors.
func Event(id, name, date, state string, home, away map[string]interface{}) map[string]interface{} {
	return map[string]interface{}{
		"id":   id,
		"name": name,
		"date": date,
		"competitions": []interface{}{
			map[string]interface{}{
				"status": map[string]interface{}{
					"type": map[string]interface{}{
						"state":       state,
						"shortDetail": "Sun 1:00 PM",
					},
				},
				"competitors": []interface{}{home, away},
				"venue": map[string]interface{}{
					"fullName": "Test Stadium",
				},
			},
		},
	}
}

// Competitor builds one side of a matchup.
func Competitor(side, displayName, abbreviation string, score float64) map[string]interface{} {
	return map[string]interface{}{
		"homeAway": side,
		"score":    score,
		"team": map[string]interface{}{
			"displayName":  displayName,
			"abbreviation": abbreviation,
			"logo":         "https://example.com/logo.png",
		},
		"records": []interface{}{
			map[string]interface{}{"summary": "10-2"},
		},
	}
}

// Scoreboard wraps events into a scoreboard document.
func Scoreboard(events ...map[string]interface{}) map[string]interface{} {
	list := make([]interface{}, len(events))
	for i, e := range events {
		list[i] = e
	}
	return map[string]interface{}{"events": list}
}

// ServeScoreboard starts a fake ESPN API serving doc for every scoreboard
// path. The server is torn down with the test.
func ServeScoreboard(t *testing.T, doc map[string]interface{}) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(doc)
	}))
	t.Cleanup(srv.Close)
	return srv
}

// ServeError starts a fake upstream that always fails with the status.
func ServeError(t *testing.T, status int) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "upstream down", status)
	}))
	t.Cleanup(srv.Close)
	return srv
}

// ISODate renders t in ESPN's event date format.
func ISODate(t time.Time) string {
	return t.UTC().Format("2006-01-02T15:04Z")
}
