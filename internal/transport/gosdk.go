package transport

import (
	"context"
	"fmt"
	"os"
	"os/exec"

	"github.com/hashicorp/go-hclog"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

var (
	_ Client        = (*goSDKClient)(nil)
	_ ToolsAccessor = (*goSDKClient)(nil)
	_ Disconnecter  = (*goSDKClient)(nil)
)

// goSDKClient adapts the official MCP Go SDK. The subprocess is started by the handshake.
type goSDKClient struct {
	client  *mcp.Client
	cmd     *exec.Cmd
	session *mcp.ClientSession
}

// NewGoSDKFactory returns a ClientFactory backed by modelcontextprotocol/go-sdk.
// Subprocess stderr is written to logger.
func NewGoSDKFactory(logger hclog.Logger, info ClientInfo) ClientFactory {
	return func(_ context.Context, spec LaunchSpec) (Client, error) {
		cmd := exec.Command(spec.Command, spec.Args...)
		if len(spec.Env) > 0 {
			cmd.Env = append(os.Environ(), spec.Env...)
		}
		cmd.Stderr = logger.Named(spec.Name).StandardWriter(&hclog.StandardLoggerOptions{
			ForceLevel: hclog.Info,
		})

		return &goSDKClient{
			client: mcp.NewClient(&mcp.Implementation{Name: info.Name, Version: info.Version}, nil),
			cmd:    cmd,
		}, nil
	}
}

func (g *goSDKClient) Initialize(ctx context.Context) error {
	session, err := g.client.Connect(ctx, &mcp.CommandTransport{Command: g.cmd}, nil)
	if err != nil {
		return err
	}
	g.session = session
	return nil
}

// Tools collects every page of the session's tool list into a flat list.
func (g *goSDKClient) Tools(ctx context.Context) (any, error) {
	if g.session == nil {
		return nil, fmt.Errorf("session not connected")
	}

	tools := []*mcp.Tool{}
	for tool, err := range g.session.Tools(ctx, nil) {
		if err != nil {
			return nil, err
		}
		tools = append(tools, tool)
	}

	return tools, nil
}

func (g *goSDKClient) Disconnect() error {
	if g.session == nil {
		return nil
	}
	return g.session.Close()
}
