package transport

import (
	"fmt"
	"strings"

	"github.com/hashicorp/go-hclog"
)

const (
	// ClientMCPGo selects the mark3labs/mcp-go client.
	ClientMCPGo = "mcp-go"

	// ClientGoSDK selects the modelcontextprotocol/go-sdk client.
	ClientGoSDK = "go-sdk"

	// ClientNone disables MCP clients entirely, every server then fails as unavailable.
	ClientNone = "none"
)

// ClientInfo identifies this application to MCP servers during the handshake.
type ClientInfo struct {
	Name    string
	Version string
}

// Clients returns the accepted client implementation names.
func Clients() []string {
	return []string{ClientMCPGo, ClientGoSDK, ClientNone}
}

// FactoryFor returns the ClientFactory for the named implementation.
// ClientNone yields a nil factory, which a Connector treats as no client being available.
func FactoryFor(name string, logger hclog.Logger, info ClientInfo) (ClientFactory, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", ClientMCPGo:
		return NewMCPGoFactory(logger, info), nil
	case ClientGoSDK:
		return NewGoSDKFactory(logger, info), nil
	case ClientNone:
		return nil, nil
	default:
		return nil, fmt.Errorf(
			"unknown MCP client '%s', expected one of: %s",
			name,
			strings.Join(Clients(), ", "),
		)
	}
}
