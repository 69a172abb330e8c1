package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/mozilla-ai/mcpscout/internal/contracts"
	"github.com/mozilla-ai/mcpscout/internal/status"
)

// ServersResponse represents the wrapped API response for the presentation payload.
type ServersResponse struct {
	Body status.Payload
}

// ServerRequest represents the incoming API request for a single server.
type ServerRequest struct {
	Name string `doc:"Name of the server" example:"time" path:"name"`
}

// ServerResponse represents the wrapped API response for a single server.
type ServerResponse struct {
	Body status.ServerEntry
}

// RefreshRequest represents the incoming API request to refresh servers.
type RefreshRequest struct {
	Force bool `default:"false" doc:"Reconnect every server and prompt for every input again" query:"force"`
}

// RegisterServerRoutes sets up server related API endpoints.
func RegisterServerRoutes(routerAPI huma.API, catalog contracts.ServerCatalog, apiPathPrefix string) {
	serversAPI := huma.NewGroup(routerAPI, apiPathPrefix)
	tags := []string{"Servers"}

	huma.Register(
		serversAPI,
		huma.Operation{
			OperationID: "loadServers",
			Method:      http.MethodGet,
			Summary:     "List servers and their tools",
			Description: "Connects servers not yet connected in the current configuration generation.",
			Tags:        tags,
		},
		func(ctx context.Context, _ *struct{}) (*ServersResponse, error) {
			return handleLoadServers(ctx, catalog)
		},
	)

	huma.Register(
		serversAPI,
		huma.Operation{
			OperationID: "refreshServers",
			Method:      http.MethodPost,
			Path:        "/refresh",
			Summary:     "Re-read configuration and reconnect servers",
			Tags:        tags,
		},
		func(ctx context.Context, input *RefreshRequest) (*ServersResponse, error) {
			return handleRefreshServers(ctx, catalog, input.Force)
		},
	)

	huma.Register(
		serversAPI,
		huma.Operation{
			OperationID: "getServer",
			Method:      http.MethodGet,
			Path:        "/{name}",
			Summary:     "Get the latest status of a server",
			Tags:        tags,
		},
		func(_ context.Context, input *ServerRequest) (*ServerResponse, error) {
			return handleServer(catalog, input.Name)
		},
	)
}

// handleLoadServers returns the payload for every configured server.
func handleLoadServers(ctx context.Context, catalog contracts.ServerCatalog) (*ServersResponse, error) {
	records, err := catalog.Load(ctx)
	if err != nil {
		return nil, err
	}

	resp := &ServersResponse{}
	resp.Body = status.Snapshot(records)

	return resp, nil
}

// handleRefreshServers refreshes servers and returns the resulting payload.
func handleRefreshServers(ctx context.Context, catalog contracts.ServerCatalog, force bool) (*ServersResponse, error) {
	records, err := catalog.Refresh(ctx, force)
	if err != nil {
		return nil, err
	}

	resp := &ServersResponse{}
	resp.Body = status.Snapshot(records)

	return resp, nil
}

// handleServer returns the latest entry for a single server.
func handleServer(catalog contracts.ServerCatalog, name string) (*ServerResponse, error) {
	record, err := catalog.Record(name)
	if err != nil {
		return nil, err
	}

	resp := &ServerResponse{}
	resp.Body = status.Entry(record)

	return resp, nil
}
