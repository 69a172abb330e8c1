package transport

import (
	"context"
	stdErrors "errors"
	"fmt"
	"reflect"
	"runtime"
	"strings"
	"time"

	"github.com/hashicorp/go-hclog"

	"github.com/mozilla-ai/mcpscout/internal/domain"
	"github.com/mozilla-ai/mcpscout/internal/errors"
)

const (
	msgUnsupportedType   = "Unsupported server type (expected stdio)"
	msgMissingCommand    = "Missing command"
	msgClientUnavailable = "MCP client library not available"
	msgConnectFallback   = "Failed to connect"
)

// Connector establishes one client per server descriptor, lists its tools and tears the client down.
// NewConnector should be used to create instances of Connector.
type Connector struct {
	logger  hclog.Logger
	factory ClientFactory
	goos    string
	timeout time.Duration
}

// NewConnector returns a Connector that spawns clients with factory.
// A nil factory is valid and means no MCP client implementation is available,
// in which case every connection attempt fails without spawning anything.
func NewConnector(logger hclog.Logger, factory ClientFactory, opts ...ConnectorOption) (*Connector, error) {
	if logger == nil || reflect.ValueOf(logger).IsNil() {
		return nil, fmt.Errorf("logger cannot be nil")
	}

	options, err := NewConnectorOptions(opts...)
	if err != nil {
		return nil, err
	}

	goos := options.GOOS
	if goos == "" {
		goos = runtime.GOOS
	}

	return &Connector{
		logger:  logger.Named("transport"),
		factory: factory,
		goos:    goos,
		timeout: options.Timeout,
	}, nil
}

// Available reports whether a client implementation was supplied.
func (c *Connector) Available() bool {
	return c.factory != nil
}

// Validate reports whether d can be launched at all.
// The transport type is checked before the command.
func (c *Connector) Validate(d domain.ServerDescriptor) error {
	if d.Type != domain.ServerTypeStdio {
		return fmt.Errorf("%w: '%s' declares '%s'", errors.ErrUnsupportedServerType, d.Name, d.Type)
	}

	if strings.TrimSpace(d.Command) == "" {
		return fmt.Errorf("%w: '%s'", errors.ErrMissingCommand, d.Name)
	}

	return nil
}

// Connect launches the server described by d, whose args and env must already be resolved,
// and returns a terminal record. It never returns an error: every failure becomes a failed record.
// The client is always torn down before returning, and teardown failures are ignored.
func (c *Connector) Connect(ctx context.Context, d domain.ServerDescriptor) (record domain.ConnectionRecord) {
	logger := c.logger.With("server", d.Name)

	if err := c.Validate(d); err != nil {
		logger.Error("Invalid MCP server", "error", err)
		return domain.Failed(d.Name, FailureMessage(err))
	}

	if !c.Available() {
		logger.Error("Cannot connect to MCP server", "error", errors.ErrClientUnavailable)
		return domain.Failed(d.Name, msgClientUnavailable)
	}

	defer func() {
		if r := recover(); r != nil {
			err := fmt.Errorf("%v", r)
			logger.Error("Failed to connect to MCP server", "error", fmt.Errorf("%w: %w", errors.ErrConnectFailed, err))
			record = domain.Failed(d.Name, FailureMessage(err))
		}
	}()

	command, args := NormalizeLauncher(c.goos, d.Command, d.Args)
	logger.Info(
		"Connecting to MCP server",
		"command", command,
		"args", strings.Join(args, " "),
	)

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	client, err := c.factory(ctx, LaunchSpec{
		Name:    d.Name,
		Command: command,
		Args:    args,
		Env:     EnvList(d.Env),
	})
	if err != nil {
		logger.Error("Failed to start MCP server", "error", fmt.Errorf("%w: %w", errors.ErrConnectFailed, err))
		return domain.Failed(d.Name, FailureMessage(err))
	}
	defer teardown(client)

	if err := client.Initialize(ctx); err != nil {
		logger.Error("Failed to connect to MCP server", "error", fmt.Errorf("%w: %w", errors.ErrConnectFailed, err))
		return domain.Failed(d.Name, FailureMessage(err))
	}

	tools, err := queryTools(ctx, client)
	switch {
	case stdErrors.Is(err, errors.ErrToolQueryUnsupported):
		logger.Warn("MCP client exposes no tool query, reporting no tools", "client", fmt.Sprintf("%T", client))
		tools = []domain.ToolDescriptor{}
	case err != nil:
		logger.Error("Failed to list tools", "error", fmt.Errorf("%w: %w", errors.ErrToolListFailed, err))
		return domain.Failed(d.Name, FailureMessage(err))
	}

	names := make([]string, 0, len(tools))
	for _, t := range tools {
		names = append(names, t.Name)
	}
	logger.Info("MCP server tools", "tools", names)

	return domain.Active(d.Name, tools)
}

// FailureMessage converts an error from validation or a connection attempt into a human-readable reason.
func FailureMessage(err error) string {
	switch {
	case err == nil:
		return ""
	case stdErrors.Is(err, errors.ErrUnsupportedServerType):
		return msgUnsupportedType
	case stdErrors.Is(err, errors.ErrMissingCommand):
		return msgMissingCommand
	case stdErrors.Is(err, errors.ErrClientUnavailable):
		return msgClientUnavailable
	}

	if msg := strings.TrimSpace(err.Error()); msg != "" {
		return msg
	}

	return msgConnectFallback
}

// teardown closes and disconnects client when it supports either. Failures are swallowed.
func teardown(client Client) {
	if c, ok := client.(Closer); ok {
		func() {
			defer func() { _ = recover() }()
			_ = c.Close()
		}()
	}

	if d, ok := client.(Disconnecter); ok {
		func() {
			defer func() { _ = recover() }()
			_ = d.Disconnect()
		}()
	}
}
