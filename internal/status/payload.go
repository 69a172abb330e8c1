// Package status renders connection records for presentation and keeps the rolling diagnostic log.
package status

import (
	"github.com/mozilla-ai/mcpscout/internal/domain"
)

// Payload is the presentation of every configured server, in declaration order.
type Payload struct {
	Servers []ServerEntry `json:"servers" yaml:"servers"`
}

// ServerEntry is the presentation of one server's latest connection record.
type ServerEntry struct {
	Name    string                  `json:"name" yaml:"name"`
	Status  domain.ConnectionStatus `json:"status" yaml:"status"`
	Tools   []Tool                  `json:"tools" yaml:"tools"`
	Message string                  `json:"message,omitempty" yaml:"message,omitempty"`
}

// Tool is the presentation of one tool.
type Tool struct {
	Name        string `json:"name" yaml:"name"`
	Description string `json:"description" yaml:"description"`
}

// Snapshot renders records into a Payload, keeping their order.
// Tools are never nil so that encoded payloads always contain a list.
func Snapshot(records []domain.ConnectionRecord) Payload {
	servers := make([]ServerEntry, 0, len(records))
	for _, r := range records {
		servers = append(servers, Entry(r))
	}
	return Payload{Servers: servers}
}

// Entry renders a single record.
func Entry(r domain.ConnectionRecord) ServerEntry {
	tools := make([]Tool, 0, len(r.Tools))
	if r.Status == domain.ConnectionStatusActive {
		for _, t := range r.Tools {
			tools = append(tools, Tool{Name: t.Name, Description: t.Description})
		}
	}

	return ServerEntry{
		Name:    r.ServerName,
		Status:  r.Status,
		Tools:   tools,
		Message: r.Message,
	}
}
