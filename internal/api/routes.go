package api

import (
	"fmt"
	"net/url"
	"reflect"

	"github.com/danielgtaylor/huma/v2"

	"github.com/mozilla-ai/mcpscout/internal/contracts"
)

// APIVersion is the version used in the OpenAPI spec and URL paths.
const APIVersion = "v1"

// RegisterRoutes registers all API routes on the provided Huma router.
// This is the single source of truth for the API route structure.
// Returns the API path prefix (e.g., "/api/v1") under which the routes are created.
func RegisterRoutes(
	router huma.API,
	catalog contracts.ServerCatalog,
	diagnostics contracts.DiagnosticLog,
) (string, error) {
	if router == nil || reflect.ValueOf(router).IsNil() {
		return "", fmt.Errorf("router cannot be nil")
	}
	if catalog == nil || reflect.ValueOf(catalog).IsNil() {
		return "", fmt.Errorf("server catalog cannot be nil")
	}
	if diagnostics == nil || reflect.ValueOf(diagnostics).IsNil() {
		return "", fmt.Errorf("diagnostic log cannot be nil")
	}

	// Safe way to ensure /api/{version}.
	apiPathPrefix, err := url.JoinPath("/api", APIVersion)
	if err != nil {
		return "", fmt.Errorf("failed to construct API path prefix: %w", err)
	}

	// Group all routes under the /api/{version} prefix.
	versionedGroup := huma.NewGroup(router, apiPathPrefix)
	RegisterServerRoutes(versionedGroup, catalog, "/servers")
	RegisterLogRoutes(versionedGroup, diagnostics, "/logs")

	return apiPathPrefix, nil
}
