package contracts

import (
	"context"

	"github.com/mozilla-ai/mcpscout/internal/domain"
)

// ServerCatalog provides a way to discover MCP servers and their tools.
type ServerCatalog interface {
	// Load returns the records of every configured server, connecting only servers
	// that have no record in the current configuration generation.
	Load(ctx context.Context) ([]domain.ConnectionRecord, error)

	// Refresh re-reads configuration and reconnects servers.
	// When force is true every server is reconnected and every input is prompted for again.
	Refresh(ctx context.Context, force bool) ([]domain.ConnectionRecord, error)

	// Record returns the latest record for a configured server without connecting anything.
	// Servers not yet attempted are reported as pending.
	Record(name string) (domain.ConnectionRecord, error)
}

// DiagnosticLog provides read access to the rolling diagnostic log.
type DiagnosticLog interface {
	// Snapshot returns the retained lines, oldest first.
	Snapshot() []string

	// String returns the retained lines joined by newlines.
	String() string
}
