package commit

import (
	"os"
	"path/filepath"
	"strings"
)

// ProcessProbe reports whether the game is currently running. A nil
// probe disables the check.
type ProcessProbe func() bool

// ProcProbe scans /proc/*/comm for any of the given process names
// (case-insensitive). On platforms without procfs it reports false.
func ProcProbe(names ...string) ProcessProbe {
	lowered := make([]string, len(names))
	for i, n := range names {
		lowered[i] = strings.ToLower(n)
	}
	return func() bool {
		entries, err := os.ReadDir("/proc")
		if err != nil {
			return false
		}
		for _, e := range entries {
			if !e.IsDir() || !isNumeric(e.Name()) {
				continue
			}
			comm, err := os.ReadFile(filepath.Join("/proc", e.Name(), "comm"))
			if err != nil {
				continue
			}
			got := strings.ToLower(strings.TrimSpace(string(comm)))
			for _, want := range lowered {
				if got == want {
					return true
				}
			}
		}
		return false
	}
}

func isNumeric(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
