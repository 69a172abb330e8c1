// Package errors defines domain-level errors used throughout the application.
// These errors represent failures of the connection manager and are mapped to appropriate HTTP status codes
// at the API boundary.
//
// NOTE: Important for developers
// When adding a new error here, you MUST consider how it should be handled when returned from API endpoints.
//
// Unmapped errors will default to HTTP 500 Internal Server Error.
//
// Don't forget to:
// 1. Add your error to mapError (internal/daemon/api_server.go)
// 2. Add a test case to TestMapError (internal/daemon/api_server_test.go)
package errors

import (
	"errors"
)

var (
	// ErrBadRequest indicates that the client provided invalid input or made a malformed request.
	// Recommended to map to HTTP 400 Bad Request.
	ErrBadRequest = errors.New("bad request")

	// ErrServerNotFound indicates that the requested MCP server is not part of the current configuration generation.
	// Recommended to map to HTTP 404 Not Found.
	ErrServerNotFound = errors.New("server not found")

	// ErrUnsupportedServerType indicates that a server descriptor declares a transport other than stdio.
	// It is reported per server and never fails a whole pass.
	// Recommended to map to HTTP 422 Unprocessable Entity.
	ErrUnsupportedServerType = errors.New("unsupported server type")

	// ErrMissingCommand indicates that a server descriptor has no launch command.
	// It is reported per server and never fails a whole pass.
	// Recommended to map to HTTP 422 Unprocessable Entity.
	ErrMissingCommand = errors.New("missing command")

	// ErrClientUnavailable indicates that no MCP client implementation was made available at startup.
	// Recommended to map to HTTP 503 Service Unavailable.
	ErrClientUnavailable = errors.New("MCP client library not available")

	// ErrConnectFailed indicates that spawning or initializing an MCP server failed.
	// Recommended to map to HTTP 502 Bad Gateway.
	ErrConnectFailed = errors.New("connect failed")

	// ErrToolListFailed indicates that listing tools from an MCP server failed.
	// This represents a communication or protocol error with the external MCP server.
	// Recommended to map to HTTP 502 Bad Gateway.
	ErrToolListFailed = errors.New("tool list failed")

	// ErrToolQueryUnsupported indicates that a client exposes neither of the supported tool query entry points.
	// Recommended to map to HTTP 502 Bad Gateway.
	ErrToolQueryUnsupported = errors.New("client does not support tool queries")

	// ErrInputStoreFailed indicates that the durable input store could not be read or written.
	// Recommended to map to HTTP 500 Internal Server Error.
	ErrInputStoreFailed = errors.New("input store failed")
)
