package shell

import (
	"bufio"
	"io"
	"os"

	"github.com/chzyer/readline"
	"golang.org/x/term"
)

// LineEditor is the REPL's single input source. When stdin is a terminal
// it wraps a chzyer/readline Instance for prompting, line editing, and
// arrow-key history recall; otherwise (input piped from a file or another
// process) it falls back to a plain line scanner, since readline requires
// a real terminal device.
type LineEditor struct {
	rl        *readline.Instance
	scanner   *bufio.Scanner
	plainMode bool
}

// NewLineEditor constructs a LineEditor. histFile seeds readline's own
// recall ring from disk and is appended to as new lines are accepted via
// AddHistory; it is independent of HistoryManager's plain-text round trip,
// which the `history` builtin drives explicitly.
func NewLineEditor(prompt, histFile string, completer readline.AutoCompleter) (*LineEditor, error) {
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return &LineEditor{scanner: bufio.NewScanner(os.Stdin), plainMode: true}, nil
	}

	rl, err := readline.NewEx(&readline.Config{
		Prompt:                 prompt,
		HistoryFile:            histFile,
		AutoComplete:           completer,
		InterruptPrompt:        "^C",
		EOFPrompt:              "exit",
		DisableAutoSaveHistory: true,
	})
	if err != nil {
		return nil, err
	}
	return &LineEditor{rl: rl}, nil
}

// ReadLine blocks for the next line of input. It returns io.EOF at end of
// input and readline.ErrInterrupt on Ctrl-C.
func (le *LineEditor) ReadLine() (string, error) {
	if le.plainMode {
		if !le.scanner.Scan() {
			if err := le.scanner.Err(); err != nil {
				return "", err
			}
			return "", io.EOF
		}
		return le.scanner.Text(), nil
	}
	return le.rl.Readline()
}

// AddHistory records line in readline's own recall ring (and, if a history
// file is configured, appends it there).
func (le *LineEditor) AddHistory(line string) {
	if le.plainMode {
		return
	}
	le.rl.SaveHistory(line)
}

// SetPrompt updates the interactive prompt, a no-op in plain-scanner mode.
func (le *LineEditor) SetPrompt(prompt string) {
	if !le.plainMode {
		le.rl.SetPrompt(prompt)
	}
}

func (le *LineEditor) Close() error {
	if le.plainMode {
		return nil
	}
	return le.rl.Close()
}
