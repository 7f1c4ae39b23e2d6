package shell

import (
	"os"
	"time"

	"github.com/google/uuid"
)

// Session identifies one REPL invocation. Its ID is carried into every
// structured history row so a direct SQLite query against the history
// database can group entries by the shell process that produced them.
type Session struct {
	ID        string
	StartTime time.Time
	UserName  string
	PID       int
}

// NewSession initializes a new session with current environmental data.
func NewSession() *Session {
	return &Session{
		ID:        uuid.New().String(),
		StartTime: time.Now(),
		UserName:  os.Getenv("USER"),
		PID:       os.Getpid(),
	}
}
