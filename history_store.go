package shell

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// ArgHistoryStore is an additive, structured record of executed commands —
// command text, base command name, cwd, session, exit status, and timestamp —
// kept in a SQLite database alongside the authoritative plain-text
// HISTFILE. It exists for inspection outside the shell (a later `sqlite3
// ~/.goshell_history.db` query); the `history` builtin itself reads only
// HistoryManager's in-memory entries, never this store.
type ArgHistoryStore struct {
	mu sync.Mutex
	db *sql.DB
}

// DefaultArgHistoryPath returns ~/.goshell_history.db.
func DefaultArgHistoryPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		home = os.Getenv("HOME")
	}
	return filepath.Join(home, ".goshell_history.db")
}

// OpenArgHistoryStore opens (creating if necessary) the structured history
// database at path.
func OpenArgHistoryStore(path string) (*ArgHistoryStore, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating history store directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("opening history store: %w", err)
	}

	store := &ArgHistoryStore{db: db}
	if err := store.init(); err != nil {
		db.Close()
		return nil, err
	}
	return store, nil
}

func (s *ArgHistoryStore) init() error {
	const schema = `
	CREATE TABLE IF NOT EXISTS commands (
		id           INTEGER PRIMARY KEY AUTOINCREMENT,
		session_id   TEXT NOT NULL,
		cwd          TEXT NOT NULL,
		command      TEXT NOT NULL,
		base_command TEXT NOT NULL,
		exit_code    INTEGER NOT NULL,
		executed_at  INTEGER NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_commands_session_id ON commands(session_id);
	CREATE INDEX IF NOT EXISTS idx_commands_base_command ON commands(base_command);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Record inserts one executed line's outcome.
func (s *ArgHistoryStore) Record(sessionID, cwd, line, baseCommand string, exitCode int, at time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec(
		`INSERT INTO commands (session_id, cwd, command, base_command, exit_code, executed_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		sessionID, cwd, line, baseCommand, exitCode, at.Unix(),
	)
	return err
}

func (s *ArgHistoryStore) Close() error {
	return s.db.Close()
}
