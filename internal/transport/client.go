// Package transport establishes stdio connections to MCP servers and retrieves their tool lists.
//
// MCP client implementations differ in shape: some expose a tool list call returning an envelope,
// others an accessor returning a flat list, and teardown may be Close, Disconnect or both.
// The Connector probes for these capabilities instead of assuming a single client interface.
package transport

import (
	"context"
)

// Client is the minimal surface every MCP client must provide: a protocol handshake.
// Tool queries and teardown are optional capabilities discovered through the interfaces below.
type Client interface {
	Initialize(ctx context.Context) error
}

// ToolLister is implemented by clients exposing a tool list call.
// The result may be a flat list of tools or an object wrapping the list in a 'tools' field.
type ToolLister interface {
	ListTools(ctx context.Context) (any, error)
}

// ToolsAccessor is implemented by clients exposing a no-argument tool accessor.
// The result follows the same shapes as ToolLister.
type ToolsAccessor interface {
	Tools(ctx context.Context) (any, error)
}

// Closer is implemented by clients that can be closed.
type Closer interface {
	Close() error
}

// Disconnecter is implemented by clients that can be disconnected from their transport.
type Disconnecter interface {
	Disconnect() error
}

// LaunchSpec is a fully resolved description of a subprocess to start.
type LaunchSpec struct {
	// Name of the server, used for logging.
	Name string

	Command string
	Args    []string

	// Env contains additional KEY=VALUE entries appended to the current process environment.
	Env []string
}

// ClientFactory spawns the subprocess described by spec and returns an uninitialized client attached to it.
type ClientFactory func(ctx context.Context, spec LaunchSpec) (Client, error)
