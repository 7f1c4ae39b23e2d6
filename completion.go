package shell

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
)

// Completer implements chzyer/readline's AutoCompleter for the shell: the
// first word of a line completes against built-in names and PATH
// executables, later words complete against filenames in the current
// directory.
type Completer struct {
	mu       sync.RWMutex
	commands []string
}

// NewCompleter builds a Completer seeded with the six built-in names and
// the executables currently reachable through PATH.
func NewCompleter() *Completer {
	c := &Completer{}
	c.Refresh()
	return c
}

// Refresh re-scans PATH. The shell's own commands never change, but PATH's
// contents can if the user's environment does between lines.
func (c *Completer) Refresh() {
	names := make([]string, 0, len(builtinNames)+32)
	for name := range builtinNames {
		names = append(names, name)
	}
	names = append(names, ListPathExecutables()...)
	sort.Strings(names)

	c.mu.Lock()
	c.commands = names
	c.mu.Unlock()
}

// Do implements readline.AutoCompleter.
func (c *Completer) Do(line []rune, pos int) (newLine [][]rune, length int) {
	text := string(line[:pos])
	fields := strings.Fields(text)

	completingCommand := len(fields) == 0 || (len(fields) == 1 && !strings.HasSuffix(text, " "))
	if completingCommand {
		prefix := ""
		if len(fields) == 1 {
			prefix = fields[0]
		}
		return c.completeCommand(prefix)
	}

	prefix := ""
	if !strings.HasSuffix(text, " ") {
		prefix = fields[len(fields)-1]
	}
	return c.completeFilename(prefix)
}

func (c *Completer) completeCommand(prefix string) ([][]rune, int) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	var out [][]rune
	for _, name := range c.commands {
		if strings.HasPrefix(name, prefix) {
			out = append(out, []rune(name[len(prefix):]))
		}
	}
	return out, len(prefix)
}

func (c *Completer) completeFilename(prefix string) ([][]rune, int) {
	dir, base := filepath.Split(prefix)
	searchDir := dir
	if searchDir == "" {
		searchDir = "."
	}

	entries, err := os.ReadDir(searchDir)
	if err != nil {
		return nil, len(prefix)
	}

	var out [][]rune
	for _, entry := range entries {
		name := entry.Name()
		if !strings.HasPrefix(name, base) {
			continue
		}
		suffix := name[len(base):]
		if entry.IsDir() {
			suffix += string(os.PathSeparator)
		}
		out = append(out, []rune(suffix))
	}
	return out, len(prefix)
}
