package status

import (
	"strings"
	"sync"
)

// DefaultCapacity is the number of diagnostic lines kept before the oldest are evicted.
const DefaultCapacity = 500

// Ring is a bounded FIFO of diagnostic log lines. When full, appending evicts the oldest line.
// It is safe for concurrent use.
type Ring struct {
	mu    sync.Mutex
	lines []string
	start int
	size  int
}

// NewRing returns an empty Ring holding at most capacity lines.
// A non-positive capacity uses DefaultCapacity.
func NewRing(capacity int) *Ring {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Ring{lines: make([]string, capacity)}
}

// Append adds line, evicting the oldest line when the ring is full.
func (r *Ring) Append(line string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	end := (r.start + r.size) % len(r.lines)
	r.lines[end] = line

	if r.size < len(r.lines) {
		r.size++
		return
	}
	r.start = (r.start + 1) % len(r.lines)
}

// Snapshot returns the retained lines, oldest first.
func (r *Ring) Snapshot() []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]string, 0, r.size)
	for i := range r.size {
		out = append(out, r.lines[(r.start+i)%len(r.lines)])
	}
	return out
}

// String returns the retained lines joined by newlines.
func (r *Ring) String() string {
	return strings.Join(r.Snapshot(), "\n")
}

// Len returns the number of retained lines.
func (r *Ring) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.size
}

// Cap returns the maximum number of retained lines.
func (r *Ring) Cap() int {
	return len(r.lines)
}
