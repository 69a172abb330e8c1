package daemon

import (
	"fmt"
	"reflect"

	"github.com/hashicorp/go-hclog"

	"github.com/mozilla-ai/mcpscout/internal/contracts"
)

// Dependencies contains required dependencies for the Daemon.
// NewDependencies should be used to create instances of Dependencies.
type Dependencies struct {
	// APIAddr specifies the network address for the APIServer to bind (e.g., "127.0.0.1:8091").
	APIAddr string

	// Catalog is the server registry served by the API.
	Catalog contracts.ServerCatalog

	// Diagnostics is the rolling diagnostic log served by the API.
	Diagnostics contracts.DiagnosticLog

	// Logger for daemon and subcomponent (API server) operations.
	Logger hclog.Logger
}

// NewDependencies creates and validates Dependencies.
func NewDependencies(
	logger hclog.Logger,
	apiAddr string,
	catalog contracts.ServerCatalog,
	diagnostics contracts.DiagnosticLog,
) (Dependencies, error) {
	deps := Dependencies{
		APIAddr:     apiAddr,
		Catalog:     catalog,
		Diagnostics: diagnostics,
		Logger:      logger,
	}

	if err := deps.Validate(); err != nil {
		return Dependencies{}, err
	}

	return deps, nil
}

// Validate ensures all required dependencies are provided and valid.
func (d Dependencies) Validate() error {
	if d.Logger == nil || reflect.ValueOf(d.Logger).IsNil() {
		return fmt.Errorf("logger cannot be nil")
	}

	if err := validateAddr(d.APIAddr); err != nil {
		return fmt.Errorf("invalid API address '%s': %w", d.APIAddr, err)
	}

	if d.Catalog == nil || reflect.ValueOf(d.Catalog).IsNil() {
		return fmt.Errorf("server catalog cannot be nil")
	}

	if d.Diagnostics == nil || reflect.ValueOf(d.Diagnostics).IsNil() {
		return fmt.Errorf("diagnostic log cannot be nil")
	}

	return nil
}
