//go:build docsgen_api
// +build docsgen_api

package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/hashicorp/go-hclog"

	"github.com/mozilla-ai/mcpscout/internal/api"
	"github.com/mozilla-ai/mcpscout/internal/domain"
)

// stubCatalog provides a stub implementation for documentation generation.
type stubCatalog struct{}

func (s *stubCatalog) Load(context.Context) ([]domain.ConnectionRecord, error) { return nil, nil }
func (s *stubCatalog) Refresh(context.Context, bool) ([]domain.ConnectionRecord, error) {
	return nil, nil
}
func (s *stubCatalog) Record(string) (domain.ConnectionRecord, error) {
	return domain.ConnectionRecord{}, nil
}

// stubDiagnostics provides a stub implementation for documentation generation.
type stubDiagnostics struct{}

func (s *stubDiagnostics) Snapshot() []string { return nil }
func (s *stubDiagnostics) String() string     { return "" }

// main generates the OpenAPI specification for the mcpscout API.
// It assumes it is run from the repository root.
func main() {
	logger := hclog.New(&hclog.LoggerOptions{
		Name:   "mcpscout.docsgen.api",
		Level:  hclog.Info,
		Output: os.Stderr,
	})

	// Output path for the OpenAPI spec, relative to the repository root.
	outputPath := "./docs/api/openapi.yaml"

	// Create a chi router (same as the daemon).
	mux := chi.NewMux()
	mux.Use(middleware.StripSlashes)

	config := huma.DefaultConfig("mcpscout docs", api.APIVersion)
	router := humachi.New(mux, config)

	// Only the route definitions are needed, not the handlers.
	apiPathPrefix, err := api.RegisterRoutes(router, &stubCatalog{}, &stubDiagnostics{})
	if err != nil {
		logger.Error("failed to register API routes", "error", err)
		os.Exit(1)
	}

	logger.Info("Routes registered", "prefix", apiPathPrefix)

	yamlBytes, err := router.OpenAPI().YAML()
	if err != nil {
		logger.Error("failed to generate OpenAPI YAML", "error", err)
		os.Exit(1)
	}

	docsDir := filepath.Dir(outputPath)
	if err := os.MkdirAll(docsDir, 0o755); err != nil {
		logger.Error("failed to create docs directory", "path", docsDir, "error", err)
		os.Exit(1)
	}

	if err := os.WriteFile(outputPath, yamlBytes, 0o644); err != nil {
		logger.Error("failed to write OpenAPI spec", "path", outputPath, "error", err)
		os.Exit(1)
	}

	logger.Info("OpenAPI spec generated", "path", outputPath, "size", fmt.Sprintf("%d bytes", len(yamlBytes)))
}
