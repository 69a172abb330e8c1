package daemon

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"github.com/google/uuid"
	"github.com/hashicorp/go-hclog"
	"golang.org/x/sync/singleflight"

	"github.com/mozilla-ai/mcpscout/internal/config"
	"github.com/mozilla-ai/mcpscout/internal/contracts"
	"github.com/mozilla-ai/mcpscout/internal/domain"
	"github.com/mozilla-ai/mcpscout/internal/errors"
	"github.com/mozilla-ai/mcpscout/internal/inputs"
	"github.com/mozilla-ai/mcpscout/internal/status"
	"github.com/mozilla-ai/mcpscout/internal/transport"
)

var _ contracts.ServerCatalog = (*Manager)(nil)

// Connector validates and connects a single server.
type Connector interface {
	Validate(d domain.ServerDescriptor) error
	Connect(ctx context.Context, d domain.ServerDescriptor) domain.ConnectionRecord
}

// Listener receives the presentation payload whenever a load or refresh pass completes.
type Listener func(payload status.Payload)

// Manager maintains the connection table for the servers of one workspace.
//
// Each configuration read starts a new generation. Records are tagged with the generation that produced them,
// and results from a superseded generation are discarded rather than stored.
// Servers are connected one at a time in declaration order.
// NewManager should be used to create instances of Manager.
type Manager struct {
	logger    hclog.Logger
	loader    config.Loader
	resolver  *inputs.Resolver
	connector Connector
	workspace string
	listeners []Listener

	table *ConnectionTable

	// inflight deduplicates concurrent attempts for the same server within a generation.
	inflight singleflight.Group

	// mu guards the fields below, and makes generation checks atomic with table writes.
	mu          sync.Mutex
	generation  uint64
	loaded      bool
	descriptors []domain.ServerDescriptor
	definitions []domain.InputDefinition
}

// NewManager creates a Manager with the provided dependencies and options.
func NewManager(deps ManagerDependencies, opts ...ManagerOption) (*Manager, error) {
	if err := deps.Validate(); err != nil {
		return nil, fmt.Errorf("invalid dependencies for manager: %w", err)
	}

	options, err := NewManagerOptions(opts...)
	if err != nil {
		return nil, fmt.Errorf("invalid manager options: %w", err)
	}

	return &Manager{
		logger:      deps.Logger.Named("registry"),
		loader:      deps.Loader,
		resolver:    deps.Resolver,
		connector:   deps.Connector,
		workspace:   deps.Workspace,
		listeners:   options.Listeners,
		table:       NewConnectionTable(),
		descriptors: []domain.ServerDescriptor{},
		definitions: []domain.InputDefinition{},
	}, nil
}

// Load reads configuration on first use, then connects every server without a record in the current generation.
// Servers that already have a record are served from the table without reconnecting.
func (m *Manager) Load(ctx context.Context) ([]domain.ConnectionRecord, error) {
	m.mu.Lock()
	if !m.loaded {
		m.readConfigLocked()
	}
	gen := m.generation
	m.mu.Unlock()

	return m.runPass(ctx, gen, m.resolver.NewPass(false))
}

// Refresh starts a new generation from freshly read configuration.
//
// When force is true all records are cleared and stored input values are bypassed,
// so every input referenced by a server is prompted for once.
// Otherwise, terminal records whose descriptor did not change are carried into the new generation
// and only new or changed servers are connected.
func (m *Manager) Refresh(ctx context.Context, force bool) ([]domain.ConnectionRecord, error) {
	m.mu.Lock()
	previous := m.descriptors
	m.readConfigLocked()
	gen := m.generation

	carried := []domain.ConnectionRecord{}
	if !force {
		for _, d := range m.descriptors {
			i := slices.IndexFunc(previous, func(p domain.ServerDescriptor) bool { return p.Name == d.Name })
			if i < 0 || !previous[i].Equal(d) {
				continue
			}
			if r, ok := m.table.Get(d.Name); ok && r.Terminal() {
				r.Generation = gen
				carried = append(carried, r)
			}
		}
	}

	m.table.Reset()
	for _, r := range carried {
		m.table.Put(r)
	}
	m.mu.Unlock()

	m.logger.Info(
		"Refreshing MCP servers",
		"generation", gen,
		"force", force,
		"reused", len(carried),
	)

	return m.runPass(ctx, gen, m.resolver.NewPass(force))
}

// Record returns the latest record for the named server in the current generation.
func (m *Manager) Record(name string) (domain.ConnectionRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !slices.ContainsFunc(m.descriptors, func(d domain.ServerDescriptor) bool { return d.Name == name }) {
		return domain.ConnectionRecord{}, fmt.Errorf("%w: %s", errors.ErrServerNotFound, name)
	}

	return m.recordLocked(name), nil
}

// Snapshot returns the records of every configured server in declaration order.
// Servers without a record yet are reported as pending.
func (m *Manager) Snapshot() []domain.ConnectionRecord {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]domain.ConnectionRecord, 0, len(m.descriptors))
	for _, d := range m.descriptors {
		out = append(out, m.recordLocked(d.Name))
	}
	return out
}

// Generation returns the current configuration generation, zero before the first load.
func (m *Manager) Generation() uint64 {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.generation
}

// Workspace returns the configuration root the manager reads from.
func (m *Manager) Workspace() string {
	return m.workspace
}

// Inputs returns the input definitions of the current configuration.
func (m *Manager) Inputs() []domain.InputDefinition {
	m.mu.Lock()
	defer m.mu.Unlock()

	return slices.Clone(m.definitions)
}

// readConfigLocked reads configuration and starts a new generation. m.mu must be held.
func (m *Manager) readConfigLocked() {
	cfg := m.loader.Load(m.workspace)

	m.generation++
	m.loaded = true
	m.descriptors = cfg.ListServers()
	m.definitions = cfg.ListInputs()
}

// recordLocked returns the record for name in the current generation. m.mu must be held.
func (m *Manager) recordLocked(name string) domain.ConnectionRecord {
	if r, ok := m.table.Get(name); ok && r.Generation == m.generation {
		return r
	}
	return domain.Pending(name, m.generation)
}

// current returns the generation and configuration the next pass operates on.
func (m *Manager) current() (uint64, []domain.ServerDescriptor, []domain.InputDefinition) {
	m.mu.Lock()
	defer m.mu.Unlock()

	descriptors := make([]domain.ServerDescriptor, 0, len(m.descriptors))
	for _, d := range m.descriptors {
		descriptors = append(descriptors, d.Clone())
	}
	return m.generation, descriptors, slices.Clone(m.definitions)
}

// runPass connects, in declaration order, every server of generation gen that has no terminal record yet.
// The pass stops early when a newer generation supersedes it.
func (m *Manager) runPass(ctx context.Context, gen uint64, pass *inputs.Pass) ([]domain.ConnectionRecord, error) {
	current, descriptors, definitions := m.current()
	logger := m.logger.With("pass", uuid.NewString(), "generation", gen)

	if current != gen {
		logger.Debug("Pass superseded before it started", "current", current)
		return m.Snapshot(), nil
	}

	logger.Info("Loading MCP servers", "workspace", m.workspace, "servers", len(descriptors))

	for _, d := range descriptors {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		if m.Generation() != gen {
			logger.Info("Pass superseded by a newer generation, stopping")
			break
		}

		if r, ok := m.table.Get(d.Name); ok && r.Generation == gen && r.Terminal() {
			continue
		}

		m.connectOnce(ctx, logger, gen, d, definitions, pass)
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	records := m.Snapshot()
	m.notify(records)

	return records, nil
}

// connectOnce attempts a connection for d unless an attempt for the same server and generation is
// already in flight, in which case it waits for that attempt instead.
// An attempt abandoned by a canceled caller stores nothing, and waiters with a live context start their own.
func (m *Manager) connectOnce(
	ctx context.Context,
	logger hclog.Logger,
	gen uint64,
	d domain.ServerDescriptor,
	definitions []domain.InputDefinition,
	pass *inputs.Pass,
) {
	key := fmt.Sprintf("%d/%s", gen, d.Name)

	for {
		_, err, _ := m.inflight.Do(key, func() (any, error) {
			if r, ok := m.table.Get(d.Name); ok && r.Generation == gen && r.Terminal() {
				return r, nil
			}

			if !m.put(domain.Pending(d.Name, gen)) {
				return nil, nil
			}

			r := m.attempt(ctx, logger, d, definitions, pass)
			r.Generation = gen

			if err := ctx.Err(); err != nil {
				m.abandon(gen, d.Name)
				logger.Info("Discarding result of cancelled connection attempt", "server", d.Name, "status", r.Status)
				return nil, err
			}

			if !m.put(r) {
				logger.Info("Discarding result of superseded connection attempt", "server", d.Name, "status", r.Status)
			}

			return r, nil
		})
		if err == nil || ctx.Err() != nil {
			return
		}
	}
}

// attempt validates d, resolves its inputs and connects it.
// Invalid descriptors fail before any input is resolved.
func (m *Manager) attempt(
	ctx context.Context,
	logger hclog.Logger,
	d domain.ServerDescriptor,
	definitions []domain.InputDefinition,
	pass *inputs.Pass,
) domain.ConnectionRecord {
	if err := m.connector.Validate(d); err != nil {
		logger.Error("Invalid MCP server", "server", d.Name, "error", err)
		return domain.Failed(d.Name, transport.FailureMessage(err))
	}

	resolved := d.Clone()
	resolved.Args = pass.ResolveArgs(ctx, d.Args, definitions)
	resolved.Env = pass.ResolveEnv(ctx, d.Env, definitions)

	return m.connector.Connect(ctx, resolved)
}

// put stores r if it belongs to the current generation, reporting whether it was stored.
func (m *Manager) put(r domain.ConnectionRecord) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	if r.Generation != m.generation {
		return false
	}

	m.table.Put(r)
	return true
}

// abandon removes the pending record for name left by a cancelled attempt in generation gen.
func (m *Manager) abandon(gen uint64, name string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.generation != gen {
		return
	}
	if r, ok := m.table.Get(name); ok && r.Generation == gen && r.Status == domain.ConnectionStatusPending {
		m.table.Remove(name)
	}
}

func (m *Manager) notify(records []domain.ConnectionRecord) {
	if len(m.listeners) == 0 {
		return
	}

	payload := status.Snapshot(records)
	for _, l := range m.listeners {
		l(payload)
	}
}
