package cmd

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/hashicorp/go-hclog"

	"github.com/mozilla-ai/mcpscout/internal/config"
	"github.com/mozilla-ai/mcpscout/internal/daemon"
	"github.com/mozilla-ai/mcpscout/internal/inputs"
	"github.com/mozilla-ai/mcpscout/internal/status"
	"github.com/mozilla-ai/mcpscout/internal/transport"
)

// FactoryBuilder selects a client factory by name, see transport.FactoryFor.
type FactoryBuilder func(name string, logger hclog.Logger, info transport.ClientInfo) (transport.ClientFactory, error)

// SessionConfig selects the components a Session is built from.
// Nil components are replaced with defaults derived from the remaining fields.
type SessionConfig struct {
	// Workspace is the configuration root, empty when no workspace is open.
	Workspace string

	// ConfigFile is the configuration document, relative to Workspace unless absolute.
	ConfigFile string

	// Client names the MCP client implementation, see transport.Clients.
	Client string

	// ConnectTimeout bounds each connection attempt, zero uses the connector default.
	ConnectTimeout time.Duration

	// PersistInputs stores resolved input values on disk for the workspace.
	PersistInputs bool

	Loader     config.Loader
	Store      inputs.Store
	Prompter   inputs.Prompter
	FactoryFor FactoryBuilder
	Listeners  []daemon.Listener
}

// Session holds the wired components serving one command invocation.
type Session struct {
	Workspace   string
	Loader      config.Loader
	Store       inputs.Store
	Manager     *daemon.Manager
	Diagnostics *status.Ring
}

// NewSession wires the loader, input resolver, connector and server registry for cfg.
func (c *BaseCmd) NewSession(cfg SessionConfig) (*Session, error) {
	logger := c.Logger()

	workspace, err := resolveWorkspace(cfg.Workspace)
	if err != nil {
		return nil, err
	}

	loader := cfg.Loader
	if loader == nil {
		if loader, err = config.NewDefaultLoader(logger, cfg.ConfigFile); err != nil {
			return nil, err
		}
	}

	store := cfg.Store
	if store == nil {
		if store, err = openStore(workspace, cfg.PersistInputs); err != nil {
			return nil, err
		}
	}

	prompter := cfg.Prompter
	if prompter == nil {
		prompter = inputs.NonInteractivePrompter{}
	}

	resolver, err := inputs.NewResolver(logger, store, prompter)
	if err != nil {
		return nil, err
	}

	factoryFor := cfg.FactoryFor
	if factoryFor == nil {
		factoryFor = transport.FactoryFor
	}
	factory, err := factoryFor(cfg.Client, logger.Named("client"), transport.ClientInfo{Name: AppName, Version: Version()})
	if err != nil {
		return nil, err
	}

	var connectorOpts []transport.ConnectorOption
	if cfg.ConnectTimeout > 0 {
		connectorOpts = append(connectorOpts, transport.WithConnectTimeout(cfg.ConnectTimeout))
	}
	connector, err := transport.NewConnector(logger, factory, connectorOpts...)
	if err != nil {
		return nil, err
	}

	deps, err := daemon.NewManagerDependencies(logger, loader, resolver, connector, workspace)
	if err != nil {
		return nil, err
	}

	managerOpts := make([]daemon.ManagerOption, 0, len(cfg.Listeners))
	for _, l := range cfg.Listeners {
		managerOpts = append(managerOpts, daemon.WithListener(l))
	}

	manager, err := daemon.NewManager(deps, managerOpts...)
	if err != nil {
		return nil, err
	}

	return &Session{
		Workspace:   workspace,
		Loader:      loader,
		Store:       store,
		Manager:     manager,
		Diagnostics: c.Diagnostics(),
	}, nil
}

// Config reads the workspace configuration without connecting any server.
func (s *Session) Config() *config.Config {
	return s.Loader.Load(s.Workspace)
}

// resolveWorkspace returns the absolute workspace root, or empty when no workspace is open.
func resolveWorkspace(workspace string) (string, error) {
	workspace = strings.TrimSpace(workspace)
	if workspace == "" {
		return "", nil
	}

	abs, err := filepath.Abs(workspace)
	if err != nil {
		return "", fmt.Errorf("could not resolve workspace '%s': %w", workspace, err)
	}

	return abs, nil
}

// openStore opens the durable store for workspace, or an in-memory store when values are not persisted.
func openStore(workspace string, persist bool) (inputs.Store, error) {
	if workspace == "" || !persist {
		return inputs.NewMemoryStore(), nil
	}

	path, err := inputs.DefaultStorePath(workspace)
	if err != nil {
		return nil, err
	}

	return inputs.OpenFileStore(path, workspace)
}
