package config

import (
	"slices"

	"github.com/mozilla-ai/mcpscout/internal/domain"
)

var _ Loader = (*DefaultLoader)(nil)

// Loader reads the MCP server configuration for a workspace root.
// Implementations absorb missing or malformed documents and return an empty Config instead,
// because a workspace without tool servers is a normal state.
type Loader interface {
	Load(root string) *Config
}

// Config is the normalized content of one configuration document.
type Config struct {
	// Path is the document that produced this Config, empty when nothing was read.
	Path string

	// Servers are kept in declaration order.
	Servers []domain.ServerDescriptor

	// Inputs are kept in declaration order.
	Inputs []domain.InputDefinition
}

// Empty returns a Config with no servers and no inputs.
func Empty() *Config {
	return &Config{
		Servers: []domain.ServerDescriptor{},
		Inputs:  []domain.InputDefinition{},
	}
}

// ListServers returns a copy of the configured server descriptors.
func (c *Config) ListServers() []domain.ServerDescriptor {
	out := make([]domain.ServerDescriptor, 0, len(c.Servers))
	for _, s := range c.Servers {
		out = append(out, s.Clone())
	}
	return out
}

// ListInputs returns a copy of the configured input definitions.
func (c *Config) ListInputs() []domain.InputDefinition {
	return slices.Clone(c.Inputs)
}
