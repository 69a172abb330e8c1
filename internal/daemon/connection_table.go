package daemon

import (
	"sync"

	"github.com/mozilla-ai/mcpscout/internal/domain"
)

// ConnectionTable holds the latest connection record for each server name.
// It is safe for concurrent use by multiple goroutines.
type ConnectionTable struct {
	mu      sync.RWMutex
	records map[string]domain.ConnectionRecord
}

// NewConnectionTable creates an empty, concurrency-safe ConnectionTable.
func NewConnectionTable() *ConnectionTable {
	return &ConnectionTable{
		records: make(map[string]domain.ConnectionRecord),
	}
}

// Put stores r as the record for its server, replacing any previous record.
func (t *ConnectionTable) Put(r domain.ConnectionRecord) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.records[r.ServerName] = r.Clone()
}

// Get returns a copy of the record for name.
// It returns a boolean to indicate whether the record was found.
func (t *ConnectionTable) Get(name string) (domain.ConnectionRecord, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	r, ok := t.records[name]
	if !ok {
		return domain.ConnectionRecord{}, false
	}
	return r.Clone(), true
}

// Remove deletes the record for name.
func (t *ConnectionTable) Remove(name string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	delete(t.records, name)
}

// Reset removes every record.
func (t *ConnectionTable) Reset() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.records = make(map[string]domain.ConnectionRecord)
}
