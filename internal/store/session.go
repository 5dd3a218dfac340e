package store

import (
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
)

// Session is one run of the controller.
type Session struct {
	ID        string
	Backend   string
	LevelMin  int
	LevelMax  int
	StartedAt time.Time
	EndedAt   time.Time // zero while running
	Frames    int
}

// Running reports whether the session has not been ended.
func (s *Session) Running() bool {
	return s.EndedAt.IsZero()
}

// SessionRepository records session boundaries.
type SessionRepository struct {
	db *sql.DB
}

// Sessions returns the session repository for this store.
func (s *Store) Sessions() *SessionRepository {
	return &SessionRepository{db: s.db}
}

// Start inserts a new session. An empty ID is replaced by a fresh UUID and a
// zero StartedAt by the current time.
func (r *SessionRepository) Start(s *Session) error {
	if s.ID == "" {
		s.ID = uuid.New().String()
	}
	if s.StartedAt.IsZero() {
		s.StartedAt = time.Now()
	}

	_, err := r.db.Exec(
		`INSERT INTO sessions (id, backend, level_min, level_max, started_at)
		 VALUES (?, ?, ?, ?, ?)`,
		s.ID, s.Backend, s.LevelMin, s.LevelMax, s.StartedAt.UTC(),
	)
	return err
}

// End marks the session finished after frames processed frames.
func (r *SessionRepository) End(id string, at time.Time, frames int) error {
	result, err := r.db.Exec(
		`UPDATE sessions SET ended_at = ?, frames = ? WHERE id = ?`,
		at.UTC(), frames, id,
	)
	if err != nil {
		return err
	}

	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// GetByID retrieves a session.
func (r *SessionRepository) GetByID(id string) (*Session, error) {
	s := &Session{}
	var ended sql.NullTime

	err := r.db.QueryRow(
		`SELECT id, backend, level_min, level_max, started_at, ended_at, frames
		 FROM sessions WHERE id = ?`,
		id,
	).Scan(&s.ID, &s.Backend, &s.LevelMin, &s.LevelMax, &s.StartedAt, &ended, &s.Frames)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if ended.Valid {
		s.EndedAt = ended.Time
	}
	return s, nil
}

// List returns all sessions, newest first.
func (r *SessionRepository) List() ([]*Session, error) {
	rows, err := r.db.Query(
		`SELECT id, backend, level_min, level_max, started_at, ended_at, frames
		 FROM sessions ORDER BY started_at DESC`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sessions []*Session
	for rows.Next() {
		s := &Session{}
		var ended sql.NullTime
		if err := rows.Scan(&s.ID, &s.Backend, &s.LevelMin, &s.LevelMax, &s.StartedAt, &ended, &s.Frames); err != nil {
			return nil, err
		}
		if ended.Valid {
			s.EndedAt = ended.Time
		}
		sessions = append(sessions, s)
	}

	return sessions, rows.Err()
}
