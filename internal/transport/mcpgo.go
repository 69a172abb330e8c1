package transport

import (
	"bufio"
	"context"
	"fmt"
	"io"

	"github.com/hashicorp/go-hclog"
	"github.com/mark3labs/mcp-go/client"
	"github.com/mark3labs/mcp-go/mcp"
)

var (
	_ Client     = (*mcpGoClient)(nil)
	_ ToolLister = (*mcpGoClient)(nil)
	_ Closer     = (*mcpGoClient)(nil)
)

// mcpGoClient adapts a mark3labs/mcp-go stdio client.
type mcpGoClient struct {
	client *client.Client
	info   mcp.Implementation
}

// NewMCPGoFactory returns a ClientFactory backed by mark3labs/mcp-go.
// Subprocess stderr is forwarded line by line to logger.
func NewMCPGoFactory(logger hclog.Logger, info ClientInfo) ClientFactory {
	return func(_ context.Context, spec LaunchSpec) (Client, error) {
		c, err := client.NewStdioMCPClient(spec.Command, spec.Env, spec.Args...)
		if err != nil {
			return nil, fmt.Errorf("error starting MCP server '%s': %w", spec.Name, err)
		}

		if stderr, ok := client.GetStderr(c); ok {
			go forwardStderr(logger.Named(spec.Name), stderr)
		}

		return &mcpGoClient{
			client: c,
			info:   mcp.Implementation{Name: info.Name, Version: info.Version},
		}, nil
	}
}

func (m *mcpGoClient) Initialize(ctx context.Context) error {
	_, err := m.client.Initialize(ctx, mcp.InitializeRequest{
		Params: mcp.InitializeParams{
			ProtocolVersion: mcp.LATEST_PROTOCOL_VERSION,
			ClientInfo:      m.info,
		},
	})
	return err
}

// ListTools returns the raw list result, which wraps the tools in a 'tools' field.
func (m *mcpGoClient) ListTools(ctx context.Context) (any, error) {
	res, err := m.client.ListTools(ctx, mcp.ListToolsRequest{})
	if err != nil {
		return nil, err
	}
	return res, nil
}

func (m *mcpGoClient) Close() error {
	return m.client.Close()
}

// forwardStderr logs every line read from stderr until it is closed.
func forwardStderr(logger hclog.Logger, stderr io.Reader) {
	scanner := bufio.NewScanner(stderr)
	for scanner.Scan() {
		logger.Info("stderr", "line", scanner.Text())
	}
}
