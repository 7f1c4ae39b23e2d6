package shell

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"time"

	"github.com/chzyer/readline"

	"goshell/parser"
)

const prompt = "$ "

// Run drives the REPL: read a line, lex/parse it into zero or more
// pipelines, execute each pipeline in turn, record history, and loop until
// EOF or the `exit` builtin terminates the process directly.
func Run() int {
	log.SetFlags(0)

	state := GetGlobalState()
	session := NewSession()
	log.Printf("session %s started for %s (pid %d)", session.ID, session.UserName, session.PID)

	hist := NewHistoryManager()
	histFile := DefaultHistFile()
	if err := hist.LoadFile(histFile); err != nil && !os.IsNotExist(err) {
		log.Printf("warning: could not load history file %s: %v", histFile, err)
	}

	store, err := OpenArgHistoryStore(DefaultArgHistoryPath())
	if err != nil {
		log.Printf("warning: structured history disabled: %v", err)
		store = nil
	} else {
		defer store.Close()
	}

	editor, err := NewLineEditor(prompt, histFile, NewCompleter())
	if err != nil {
		fmt.Fprintf(os.Stderr, "goshell: %v\n", err)
		return 1
	}
	defer editor.Close()

	for {
		line, err := editor.ReadLine()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return state.GetLastExitStatus()
			}
			if errors.Is(err, readline.ErrInterrupt) {
				continue
			}
			log.Printf("read error: %v", err)
			continue
		}

		if strings.TrimSpace(line) == "" {
			continue
		}

		hist.Add(line)
		editor.AddHistory(line)

		status := runLine(line, state, hist, session, store)
		state.SetLastExitStatus(status)
	}
}

// runLine lexes and parses line into zero or more pipelines and executes
// each in turn, returning the status of the last one (or 2 on a parse
// failure, per the shell's convention for malformed input).
func runLine(line string, state *GlobalState, hist *HistoryManager, session *Session, store *ArgHistoryStore) int {
	parsed, err := parser.Parse(line)
	if err != nil {
		fmt.Fprintf(os.Stderr, "goshell: %v\n", err)
		return 2
	}

	pipelines, err := BuildPipelines(parsed)
	if err != nil {
		fmt.Fprintf(os.Stderr, "goshell: %v\n", err)
		return 2
	}

	status := 0
	for _, p := range pipelines {
		status = Execute(p, state, hist)
		recordStructuredHistory(store, session, state, line, p, status)
	}
	return status
}

func recordStructuredHistory(store *ArgHistoryStore, session *Session, state *GlobalState, line string, p *Pipeline, status int) {
	if store == nil {
		return
	}
	base := ""
	if len(p.Commands) > 0 {
		base = p.Commands[0].Location.String()
	}
	if err := store.Record(session.ID, state.GetCWD(), line, base, status, time.Now()); err != nil {
		log.Printf("structured history write failed: %v", err)
	}
}
