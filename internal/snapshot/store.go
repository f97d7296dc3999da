// Package snapshot persists the latest normalized payload per sport in an
// embedded SQLite database. Orchestrators write through on every fresh
// fetch; Latest reads back the stored rows for a sport.
package snapshot

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	_ "modernc.org/sqlite"

	"github.com/XavierBriggs/fortuna/services/livesports-api/pkg/models"
)

const schema = `
CREATE TABLE IF NOT EXISTS sport_records (
	sport        TEXT NOT NULL,
	id           TEXT NOT NULL,
	payload      TEXT NOT NULL,
	status       TEXT,
	event_date   TEXT,
	is_live      INTEGER DEFAULT 0,
	last_updated TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
	PRIMARY KEY (sport, id)
);
CREATE INDEX IF NOT EXISTS idx_sport_records_date ON sport_records(sport, event_date);
`

// Store is the SQLite-backed snapshot writer. It is opened once at
// startup and shared; there is no per-operation connection churn.
type Store struct {
	db *sql.DB
}

// Open opens (creating if needed) the snapshot database at path.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening snapshot db: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("initializing snapshot schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Close releases the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

type row struct {
	id        string
	payload   interface{}
	status    string
	eventDate string
	isLive    bool
}

// SaveFightEvents upserts the latest fight-event payloads.
func (s *Store) SaveFightEvents(ctx context.Context, events []models.FightEvent) error {
	rows := make([]row, 0, len(events))
	for _, e := range events {
		rows = append(rows, row{
			id:        e.ID,
			payload:   e,
			status:    e.Status,
			eventDate: e.Date,
		})
	}
	return s.save(ctx, models.SportFight, rows)
}

// SaveGames upserts the latest game payloads for a sport.
func (s *Store) SaveGames(ctx context.Context, sport models.Sport, games []models.Game) error {
	rows := make([]row, 0, len(games))
	for _, g := range games {
		rows = append(rows, row{
			id:        g.ID,
			payload:   g,
			status:    g.Status,
			eventDate: g.GameTime,
			isLive:    g.State == models.StateLive,
		})
	}
	return s.save(ctx, sport, rows)
}

// SaveTournaments upserts the latest tournament payloads.
func (s *Store) SaveTournaments(ctx context.Context, tournaments []models.Tournament) error {
	rows := make([]row, 0, len(tournaments))
	for _, t := range tournaments {
		rows = append(rows, row{
			id:        t.ID,
			payload:   t,
			status:    t.Status,
			eventDate: t.Date,
		})
	}
	return s.save(ctx, models.SportGolf, rows)
}

func (s *Store) save(ctx context.Context, sport models.Sport, rows []row) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning snapshot tx: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT OR REPLACE INTO sport_records
			(sport, id, payload, status, event_date, is_live, last_updated)
		VALUES (?, ?, ?, ?, ?, ?, datetime('now'))`)
	if err != nil {
		return fmt.Errorf("preparing snapshot insert: %w", err)
	}
	defer stmt.Close()

	for _, r := range rows {
		payload, err := json.Marshal(r.payload)
		if err != nil {
			return fmt.Errorf("marshaling record %s: %w", r.id, err)
		}
		if _, err := stmt.ExecContext(ctx, string(sport), r.id, string(payload), r.status, r.eventDate, r.isLive); err != nil {
			return fmt.Errorf("upserting record %s: %w", r.id, err)
		}
	}

	return tx.Commit()
}

// Latest returns the stored payloads for a sport, newest update first.
func (s *Store) Latest(ctx context.Context, sport models.Sport) ([]json.RawMessage, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT payload FROM sport_records WHERE sport = ? ORDER BY last_updated DESC, id`,
		string(sport))
	if err != nil {
		return nil, fmt.Errorf("querying snapshots: %w", err)
	}
	defer rows.Close()

	var payloads []json.RawMessage
	for rows.Next() {
		var payload string
		if err := rows.Scan(&payload); err != nil {
			return nil, fmt.Errorf("scanning snapshot row: %w", err)
		}
		payloads = append(payloads, json.RawMessage(payload))
	}
	return payloads, rows.Err()
}
