package daemon

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/hashicorp/go-hclog"

	"github.com/mozilla-ai/mcpscout/internal/config"
	"github.com/mozilla-ai/mcpscout/internal/inputs"
)

// ManagerDependencies contains required dependencies for the Manager.
// NewManagerDependencies should be used to create instances of ManagerDependencies.
type ManagerDependencies struct {
	// Logger for registry operations.
	Logger hclog.Logger

	// Loader reads the server configuration for Workspace.
	Loader config.Loader

	// Resolver substitutes input placeholders before servers are launched.
	Resolver *inputs.Resolver

	// Connector validates and connects individual servers.
	Connector Connector

	// Workspace is the single configuration root, empty when no workspace is open.
	Workspace string
}

// NewManagerDependencies creates and validates ManagerDependencies.
func NewManagerDependencies(
	logger hclog.Logger,
	loader config.Loader,
	resolver *inputs.Resolver,
	connector Connector,
	workspace string,
) (ManagerDependencies, error) {
	deps := ManagerDependencies{
		Logger:    logger,
		Loader:    loader,
		Resolver:  resolver,
		Connector: connector,
		Workspace: strings.TrimSpace(workspace),
	}

	if err := deps.Validate(); err != nil {
		return ManagerDependencies{}, err
	}

	return deps, nil
}

// Validate ensures all required dependencies are provided.
// An empty workspace is valid.
func (d ManagerDependencies) Validate() error {
	if d.Logger == nil || reflect.ValueOf(d.Logger).IsNil() {
		return fmt.Errorf("logger cannot be nil")
	}
	if d.Loader == nil || reflect.ValueOf(d.Loader).IsNil() {
		return fmt.Errorf("config loader cannot be nil")
	}
	if d.Resolver == nil {
		return fmt.Errorf("input resolver cannot be nil")
	}
	if d.Connector == nil || reflect.ValueOf(d.Connector).IsNil() {
		return fmt.Errorf("connector cannot be nil")
	}
	return nil
}
