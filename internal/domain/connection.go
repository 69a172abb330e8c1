package domain

import "slices"

const (
	ConnectionStatusPending ConnectionStatus = "pending"
	ConnectionStatusActive  ConnectionStatus = "active"
	ConnectionStatusFailed  ConnectionStatus = "failed"
)

// ConnectionStatus represents the outcome of the latest connection attempt for an MCP server.
type ConnectionStatus string

// ToolDescriptor is a snapshot of one tool exposed by a server at list time.
type ToolDescriptor struct {
	Name        string
	Description string
}

// ConnectionRecord tracks one connection attempt for an MCP server.
// Status moves from pending to active or failed exactly once per attempt.
// The client used for the attempt is always torn down before the record becomes terminal,
// so records never hold a live client.
type ConnectionRecord struct {
	ServerName string
	Status     ConnectionStatus
	Tools      []ToolDescriptor
	Message    string

	// Generation is the configuration generation that produced this record.
	Generation uint64
}

// Pending returns a new record for an attempt that has just started.
func Pending(name string, generation uint64) ConnectionRecord {
	return ConnectionRecord{
		ServerName: name,
		Status:     ConnectionStatusPending,
		Tools:      []ToolDescriptor{},
		Generation: generation,
	}
}

// Active returns a terminal record for a successful attempt.
func Active(name string, tools []ToolDescriptor) ConnectionRecord {
	if tools == nil {
		tools = []ToolDescriptor{}
	}
	return ConnectionRecord{
		ServerName: name,
		Status:     ConnectionStatusActive,
		Tools:      tools,
	}
}

// Failed returns a terminal record for a failed attempt. Failed records never carry tools.
func Failed(name string, message string) ConnectionRecord {
	return ConnectionRecord{
		ServerName: name,
		Status:     ConnectionStatusFailed,
		Tools:      []ToolDescriptor{},
		Message:    message,
	}
}

// Terminal reports whether the attempt has finished.
func (r ConnectionRecord) Terminal() bool {
	return r.Status == ConnectionStatusActive || r.Status == ConnectionStatusFailed
}

// Clone returns a copy of the record that shares no memory with the original.
func (r ConnectionRecord) Clone() ConnectionRecord {
	c := r
	c.Tools = slices.Clone(r.Tools)
	if c.Tools == nil {
		c.Tools = []ToolDescriptor{}
	}
	return c
}
