package domain

import (
	"maps"
	"slices"
)

const (
	// ServerTypeStdio is the only transport supported for launching MCP servers.
	ServerTypeStdio ServerType = "stdio"
)

// ServerType identifies the transport a server is reached through.
type ServerType string

// ServerDescriptor describes how to launch one MCP server.
// Descriptors are immutable once loaded and are replaced wholesale when configuration is re-read.
type ServerDescriptor struct {
	// Name is unique within one configuration generation.
	Name string

	// Type is the declared transport, ServerTypeStdio when omitted in configuration.
	Type ServerType

	// Command is the launcher binary, it may be empty in which case the server fails downstream.
	Command string

	// Args may contain input placeholders that are resolved before launch.
	Args []string

	// Env may contain input placeholders in its values.
	Env map[string]string
}

// Clone returns a deep copy of the descriptor.
func (d ServerDescriptor) Clone() ServerDescriptor {
	return ServerDescriptor{
		Name:    d.Name,
		Type:    d.Type,
		Command: d.Command,
		Args:    slices.Clone(d.Args),
		Env:     maps.Clone(d.Env),
	}
}

// Equal reports whether both descriptors would launch the same server in the same way.
func (d ServerDescriptor) Equal(o ServerDescriptor) bool {
	return d.Name == o.Name &&
		d.Type == o.Type &&
		d.Command == o.Command &&
		slices.Equal(d.Args, o.Args) &&
		maps.Equal(d.Env, o.Env)
}

// InputDefinition describes a placeholder that must be supplied by the operator.
type InputDefinition struct {
	ID          string
	Title       string
	Description string
}
