package shell

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
)

// v2Marker is a header line some history files carry; after any write this
// shell performs, a leading marker line is stripped in place.
const v2Marker = "#V2"

// HistoryManager is the in-memory command history plus its round-trip to a
// plain-text HISTFILE. It backs both interactive recall (fed into the
// LineEditor) and the `history` builtin.
type HistoryManager struct {
	mu      sync.Mutex
	entries []string
	// saved is how many of entries have already been written to a file by
	// a prior -w or -a, so `history -a` only appends what's new.
	saved int
}

func NewHistoryManager() *HistoryManager {
	return &HistoryManager{}
}

// Add appends a line to history. Called for every non-empty line the REPL
// reads, regardless of whether it parsed or ran successfully.
func (h *HistoryManager) Add(line string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.entries = append(h.entries, line)
}

// Entries returns a copy of the full history, oldest first.
func (h *HistoryManager) Entries() []string {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := make([]string, len(h.entries))
	copy(out, h.entries)
	return out
}

func (h *HistoryManager) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.entries)
}

// DefaultHistFile returns $HISTFILE, falling back to ~/.bash_history.
func DefaultHistFile() string {
	if f := os.Getenv("HISTFILE"); f != "" {
		return f
	}
	home := os.Getenv("HOME")
	return filepath.Join(home, ".bash_history")
}

// LoadFile appends the contents of path into history, one entry per line.
func (h *HistoryManager) LoadFile(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	h.mu.Lock()
	defer h.mu.Unlock()
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		h.entries = append(h.entries, scanner.Text())
	}
	return scanner.Err()
}

// WriteFile overwrites path with the full in-memory history.
func (h *HistoryManager) WriteFile(path string) error {
	h.mu.Lock()
	entries := append([]string(nil), h.entries...)
	h.saved = len(h.entries)
	h.mu.Unlock()

	if err := writeLines(path, entries, os.O_WRONLY|os.O_CREATE|os.O_TRUNC); err != nil {
		return err
	}
	return stripV2Marker(path)
}

// AppendFile appends the history entries recorded since the last -w/-a to
// path.
func (h *HistoryManager) AppendFile(path string) error {
	h.mu.Lock()
	fresh := append([]string(nil), h.entries[h.saved:]...)
	h.saved = len(h.entries)
	h.mu.Unlock()

	if err := writeLines(path, fresh, os.O_WRONLY|os.O_CREATE|os.O_APPEND); err != nil {
		return err
	}
	return stripV2Marker(path)
}

func writeLines(path string, lines []string, flag int) error {
	f, err := os.OpenFile(path, flag, 0o644)
	if err != nil {
		return err
	}
	defer f.Close()
	w := bufio.NewWriter(f)
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return w.Flush()
}

// stripV2Marker removes a single leading "#V2" header line from path, if
// present.
func stripV2Marker(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if !strings.HasPrefix(string(data), v2Marker+"\n") {
		return nil
	}
	rest := strings.TrimPrefix(string(data), v2Marker+"\n")
	return os.WriteFile(path, []byte(rest), 0o644)
}

// FormatHistory renders entries numbered starting at startNumber, 1-based,
// right-aligned in a 5-column field followed by a space and the entry text
// — the format `history` (with no args, or with a count) prints.
func FormatHistory(w *bufio.Writer, entries []string, startNumber int) {
	for i, entry := range entries {
		fmt.Fprintf(w, "%5d %s\n", startNumber+i, entry)
	}
}

// RunHistoryBuiltin implements the four `history` modes described in
// spec.md §4.4: no-arg listing, `N` tail listing, `-r FILE...`, and
// `-w|-a [FILE]`.
func RunHistoryBuiltin(h *HistoryManager, args []string, stdout, stderr *bufio.Writer) int {
	if len(args) == 0 {
		all := h.Entries()
		FormatHistory(stdout, all, 1)
		stdout.Flush()
		return 0
	}

	switch args[0] {
	case "-r":
		if len(args) < 2 {
			fmt.Fprintln(stderr, "expected argument")
			stderr.Flush()
			return 1
		}
		for _, f := range args[1:] {
			if err := h.LoadFile(f); err != nil {
				fmt.Fprintf(stderr, "history: %s: %v\n", f, err)
				stderr.Flush()
				return 1
			}
		}
		return 0

	case "-w":
		path := DefaultHistFile()
		if len(args) > 1 {
			path = args[1]
		}
		if err := h.WriteFile(path); err != nil {
			fmt.Fprintf(stderr, "history: %s: %v\n", path, err)
			stderr.Flush()
			return 1
		}
		return 0

	case "-a":
		path := DefaultHistFile()
		if len(args) > 1 {
			path = args[1]
		}
		if err := h.AppendFile(path); err != nil {
			fmt.Fprintf(stderr, "history: %s: %v\n", path, err)
			stderr.Flush()
			return 1
		}
		return 0

	default:
		n, err := strconv.Atoi(args[0])
		if err != nil || n < 0 {
			fmt.Fprintf(stderr, "history: %s: numeric argument required\n", args[0])
			stderr.Flush()
			return 1
		}
		all := h.Entries()
		if n >= len(all) {
			FormatHistory(stdout, all, 1)
		} else {
			start := len(all) - n
			FormatHistory(stdout, all[start:], start+1)
		}
		stdout.Flush()
		return 0
	}
}
