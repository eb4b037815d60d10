// Package trace holds the process-wide debug trace flags toggled by the
// "logs trace" command, ported from app/trace.py's flag store. Flags live
// in memory rather than a side file — this process already persists
// everything durable through internal/persist, so a second ad hoc JSON
// file for two booleans would just be another thing to keep in sync.
package trace

import "sync"

var (
	mu    sync.Mutex
	flags = map[string]bool{}
)

// SetFlag enables or disables the named trace flag.
func SetFlag(name string, on bool) {
	mu.Lock()
	defer mu.Unlock()
	flags[name] = on
}

// GetFlag reports whether the named trace flag is enabled.
func GetFlag(name string) bool {
	mu.Lock()
	defer mu.Unlock()
	return flags[name]
}
