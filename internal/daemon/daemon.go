package daemon

import (
	"context"
	stdErrors "errors"
	"fmt"

	"github.com/hashicorp/go-hclog"

	"github.com/mozilla-ai/mcpscout/internal/contracts"
	"github.com/mozilla-ai/mcpscout/internal/domain"
)

// Daemon serves the server catalog of one workspace over HTTP.
// NewDaemon should be used to create instances of Daemon.
type Daemon struct {
	logger    hclog.Logger
	catalog   contracts.ServerCatalog
	apiServer *APIServer
	eager     bool
}

// NewDaemon creates a Daemon with the provided dependencies and options.
func NewDaemon(deps Dependencies, opt ...Option) (*Daemon, error) {
	if err := deps.Validate(); err != nil {
		return nil, fmt.Errorf("invalid dependencies for daemon: %w", err)
	}

	opts, err := NewOptions(opt...)
	if err != nil {
		return nil, fmt.Errorf("invalid daemon options: %w", err)
	}

	apiDeps, err := NewAPIDependencies(deps.Logger, deps.Catalog, deps.Diagnostics, deps.APIAddr)
	if err != nil {
		return nil, err
	}

	apiServer, err := NewAPIServer(apiDeps, opts.APIOptions...)
	if err != nil {
		return nil, fmt.Errorf("failed to create daemon API server: %w", err)
	}

	return &Daemon{
		logger:    deps.Logger.Named("daemon"),
		catalog:   deps.Catalog,
		apiServer: apiServer,
		eager:     opts.EagerLoad,
	}, nil
}

// StartAndManage serves the API until ctx is canceled.
// When eager loading is enabled every configured server is connected in the background while the API is served,
// and requests arriving during that load wait on the attempts already in flight.
// Cancellation is a clean shutdown and is not reported as an error.
func (d *Daemon) StartAndManage(ctx context.Context) error {
	if d.eager {
		go d.initialLoad(ctx)
	}

	err := d.apiServer.Start(ctx)
	if err != nil && !stdErrors.Is(err, context.Canceled) {
		return fmt.Errorf("API server failed: %w", err)
	}

	return nil
}

// initialLoad connects every configured server. Failures are logged, the API keeps serving.
func (d *Daemon) initialLoad(ctx context.Context) {
	records, err := d.catalog.Load(ctx)
	switch {
	case stdErrors.Is(err, context.Canceled):
		d.logger.Info("Initial load cancelled")
	case err != nil:
		d.logger.Error("Initial load failed", "error", err)
	default:
		d.logger.Info("Initial load complete", summarize(records)...)
	}
}

// summarize returns key/value pairs counting records per status.
func summarize(records []domain.ConnectionRecord) []any {
	counts := map[domain.ConnectionStatus]int{}
	for _, r := range records {
		counts[r.Status]++
	}

	return []any{
		"servers", len(records),
		string(domain.ConnectionStatusActive), counts[domain.ConnectionStatusActive],
		string(domain.ConnectionStatusFailed), counts[domain.ConnectionStatusFailed],
	}
}
