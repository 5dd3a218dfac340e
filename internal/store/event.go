package store

import (
	"database/sql"
	"time"
)

// Kind classifies a journal event.
type Kind string

const (
	// KindMuteToggle is recorded after the sink confirmed a mute toggle.
	KindMuteToggle Kind = "mute_toggle"
	// KindLevelChange is recorded when a new level was written to the sink.
	KindLevelChange Kind = "level_change"
	// KindFrameError is recorded when a frame could not be read or analyzed.
	KindFrameError Kind = "frame_error"
)

// Event is one journal entry.
type Event struct {
	ID        int64
	SessionID string
	Kind      Kind
	Level     int
	Muted     bool
	Detail    string
	At        time.Time
}

// EventRepository appends and queries journal events.
type EventRepository struct {
	db *sql.DB
}

// Events returns the event repository for this store.
func (s *Store) Events() *EventRepository {
	return &EventRepository{db: s.db}
}

// Record appends e and sets its ID. A zero At is replaced by the current time.
func (r *EventRepository) Record(e *Event) error {
	if e.At.IsZero() {
		e.At = time.Now()
	}

	result, err := r.db.Exec(
		`INSERT INTO events (session_id, kind, level, muted, detail, at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		e.SessionID, string(e.Kind), e.Level, e.Muted, e.Detail, e.At.UTC(),
	)
	if err != nil {
		return err
	}

	id, err := result.LastInsertId()
	if err != nil {
		return err
	}
	e.ID = id
	return nil
}

// ListBySession returns the session's events in insertion order.
func (r *EventRepository) ListBySession(sessionID string) ([]*Event, error) {
	rows, err := r.db.Query(
		`SELECT id, session_id, kind, level, muted, detail, at
		 FROM events WHERE session_id = ? ORDER BY id`,
		sessionID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []*Event
	for rows.Next() {
		e := &Event{}
		var kind string
		var muted int
		if err := rows.Scan(&e.ID, &e.SessionID, &kind, &e.Level, &muted, &e.Detail, &e.At); err != nil {
			return nil, err
		}
		e.Kind = Kind(kind)
		e.Muted = muted != 0
		events = append(events, e)
	}

	return events, rows.Err()
}

// CountByKind returns how many events of each kind the session recorded.
func (r *EventRepository) CountByKind(sessionID string) (map[Kind]int, error) {
	rows, err := r.db.Query(
		`SELECT kind, COUNT(*) FROM events WHERE session_id = ? GROUP BY kind`,
		sessionID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[Kind]int)
	for rows.Next() {
		var kind string
		var n int
		if err := rows.Scan(&kind, &n); err != nil {
			return nil, err
		}
		counts[Kind(kind)] = n
	}

	return counts, rows.Err()
}
