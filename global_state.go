package shell

import (
	"os"
	"sync"
)

// GlobalState holds the shell's process-global, mutable state: the current
// working directory, the previous directory (for parity with bash's OLDPWD),
// the shell's own PID, and the exit status of the last pipeline. Builtins
// and the executor synchronize through it instead of through package
// globals scattered across files.
type GlobalState struct {
	mu             sync.RWMutex
	cwd            string
	previousDir    string
	shellPID       int
	lastExitStatus int
}

var (
	globalState     *GlobalState
	globalStateOnce sync.Once
)

// GetGlobalState returns the process-wide GlobalState, initializing it from
// the OS on first use.
func GetGlobalState() *GlobalState {
	globalStateOnce.Do(func() {
		cwd, err := os.Getwd()
		if err != nil {
			cwd = os.Getenv("HOME")
		}
		globalState = &GlobalState{
			cwd:      cwd,
			shellPID: os.Getpid(),
		}
	})
	return globalState
}

func (gs *GlobalState) GetCWD() string {
	gs.mu.RLock()
	defer gs.mu.RUnlock()
	return gs.cwd
}

// UpdateCWD records a successful directory change, remembering the prior
// directory the way bash tracks $OLDPWD.
func (gs *GlobalState) UpdateCWD(newCWD string) {
	gs.mu.Lock()
	defer gs.mu.Unlock()
	gs.previousDir = gs.cwd
	gs.cwd = newCWD
}

func (gs *GlobalState) GetPreviousDir() string {
	gs.mu.RLock()
	defer gs.mu.RUnlock()
	return gs.previousDir
}

func (gs *GlobalState) GetShellPID() int {
	gs.mu.RLock()
	defer gs.mu.RUnlock()
	return gs.shellPID
}

func (gs *GlobalState) SetLastExitStatus(status int) {
	gs.mu.Lock()
	defer gs.mu.Unlock()
	gs.lastExitStatus = status
}

func (gs *GlobalState) GetLastExitStatus() int {
	gs.mu.RLock()
	defer gs.mu.RUnlock()
	return gs.lastExitStatus
}
