package shell

import (
	"os"
	"path/filepath"
	"strings"
)

// ResolveExecutable searches the colon-separated PATH for a regular file
// named name with the owner-execute bit (0o100) set. The first match wins.
// Mirrors the original shell's first_match_in_path/Executable trait.
func ResolveExecutable(name string) (string, bool) {
	path := os.Getenv("PATH")
	for _, dir := range strings.Split(path, ":") {
		if dir == "" {
			continue
		}
		candidate := filepath.Join(dir, name)
		if isExecutableFile(candidate) {
			return candidate, true
		}
	}
	return "", false
}

func isExecutableFile(path string) bool {
	info, err := os.Stat(path)
	if err != nil || !info.Mode().IsRegular() {
		return false
	}
	return info.Mode().Perm()&0o100 != 0
}

// expandTilde replaces a leading "~" path component with $HOME, per the
// `cd` and redirect-target rules: only a leading "~" is special, and only
// as the whole first component (no "~user" form).
func expandTilde(path string) string {
	if path == "~" {
		return os.Getenv("HOME")
	}
	if strings.HasPrefix(path, "~/") {
		return filepath.Join(os.Getenv("HOME"), path[2:])
	}
	return path
}

// ListPathExecutables enumerates every non-directory entry reachable through
// PATH whose own mode has the owner-execute bit set, for use by tab
// completion. A symlink is judged by its own mode, not by its target's.
// Order follows PATH
// precedence but duplicate names (an earlier directory shadows a later one)
// are suppressed.
func ListPathExecutables() []string {
	seen := make(map[string]bool)
	var names []string
	for _, dir := range strings.Split(os.Getenv("PATH"), ":") {
		if dir == "" {
			continue
		}
		entries, err := os.ReadDir(dir)
		if err != nil {
			continue
		}
		for _, entry := range entries {
			if seen[entry.Name()] {
				continue
			}
			info, err := entry.Info()
			if err != nil {
				continue
			}
			if !info.IsDir() && info.Mode().Perm()&0o100 != 0 {
				seen[entry.Name()] = true
				names = append(names, entry.Name())
			}
		}
	}
	return names
}
