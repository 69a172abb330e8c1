package daemon

import (
	"fmt"
	"reflect"

	"github.com/hashicorp/go-hclog"

	"github.com/mozilla-ai/mcpscout/internal/contracts"
)

// APIDependencies contains the required external dependencies for the API server.
// NewAPIDependencies should be used to create instances of APIDependencies.
type APIDependencies struct {
	// Addr specifies the network address to bind (e.g., "127.0.0.1:8091").
	Addr string

	// Catalog serves connection records.
	Catalog contracts.ServerCatalog

	// Diagnostics serves the rolling diagnostic log.
	Diagnostics contracts.DiagnosticLog

	// Logger for API server operations.
	Logger hclog.Logger
}

// NewAPIDependencies creates and validates APIDependencies.
func NewAPIDependencies(
	logger hclog.Logger,
	catalog contracts.ServerCatalog,
	diagnostics contracts.DiagnosticLog,
	addr string,
) (APIDependencies, error) {
	deps := APIDependencies{
		Addr:        addr,
		Catalog:     catalog,
		Diagnostics: diagnostics,
		Logger:      logger,
	}

	if err := deps.Validate(); err != nil {
		return APIDependencies{}, err
	}

	return deps, nil
}

// Validate ensures all required dependencies are provided and valid.
func (d APIDependencies) Validate() error {
	if err := validateAddr(d.Addr); err != nil {
		return fmt.Errorf("invalid API address '%s': %w", d.Addr, err)
	}
	if d.Catalog == nil || reflect.ValueOf(d.Catalog).IsNil() {
		return fmt.Errorf("server catalog cannot be nil")
	}
	if d.Diagnostics == nil || reflect.ValueOf(d.Diagnostics).IsNil() {
		return fmt.Errorf("diagnostic log cannot be nil")
	}
	if d.Logger == nil || reflect.ValueOf(d.Logger).IsNil() {
		return fmt.Errorf("logger cannot be nil")
	}
	return nil
}
