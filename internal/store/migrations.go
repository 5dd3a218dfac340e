package store

// runMigrations creates the journal schema.
func (s *Store) runMigrations() error {
	migrations := []string{
		// One row per controller run
		`CREATE TABLE IF NOT EXISTS sessions (
			id TEXT PRIMARY KEY,
			backend TEXT NOT NULL,
			level_min INTEGER NOT NULL,
			level_max INTEGER NOT NULL,
			started_at DATETIME NOT NULL,
			ended_at DATETIME,
			frames INTEGER NOT NULL DEFAULT 0
		)`,

		// What the controller did during a session
		`CREATE TABLE IF NOT EXISTS events (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			session_id TEXT NOT NULL REFERENCES sessions(id) ON DELETE CASCADE,
			kind TEXT NOT NULL CHECK(kind IN ('mute_toggle', 'level_change', 'frame_error')),
			level INTEGER NOT NULL DEFAULT 0,
			muted INTEGER NOT NULL DEFAULT 0,
			detail TEXT NOT NULL DEFAULT '',
			at DATETIME NOT NULL
		)`,

		`CREATE INDEX IF NOT EXISTS idx_events_session_id ON events(session_id)`,
		`CREATE INDEX IF NOT EXISTS idx_events_kind ON events(session_id, kind)`,
	}

	for _, migration := range migrations {
		if _, err := s.db.Exec(migration); err != nil {
			return err
		}
	}

	return nil
}
