package shell

import "sync"

// History is the in-memory command history. The mutex keeps it safe to read
// from a completion or suggestion task while the REPL appends.
type History struct {
	mu      sync.Mutex
	entries []string
	max     int
}

// NewHistory creates a history seeded with previously persisted entries,
// keeping at most max of them.
func NewHistory(seed []string, max int) *History {
	if max <= 0 {
		max = 1000
	}
	entries := make([]string, len(seed))
	copy(entries, seed)
	if len(entries) > max {
		entries = entries[len(entries)-max:]
	}
	return &History{entries: entries, max: max}
}

// Add appends a command line, dropping consecutive duplicates and trimming
// to the maximum size.
func (h *History) Add(line string) {
	if line == "" {
		return
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	if n := len(h.entries); n > 0 && h.entries[n-1] == line {
		return
	}
	h.entries = append(h.entries, line)
	if len(h.entries) > h.max {
		h.entries = h.entries[len(h.entries)-h.max:]
	}
}

// Entries returns a snapshot of the history, oldest first.
func (h *History) Entries() []string {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := make([]string, len(h.entries))
	copy(out, h.entries)
	return out
}

// Len returns the number of stored entries.
func (h *History) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.entries)
}
