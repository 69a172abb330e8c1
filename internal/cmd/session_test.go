package cmd

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/hashicorp/go-hclog"
	"github.com/stretchr/testify/require"

	"github.com/mozilla-ai/mcpscout/internal/daemon"
	"github.com/mozilla-ai/mcpscout/internal/domain"
	"github.com/mozilla-ai/mcpscout/internal/inputs"
	"github.com/mozilla-ai/mcpscout/internal/status"
	"github.com/mozilla-ai/mcpscout/internal/transport"
)

type pingClient struct{}

func (pingClient) Initialize(context.Context) error { return nil }

func (pingClient) ListTools(context.Context) (any, error) {
	return map[string]any{"tools": []map[string]any{{"name": "ping"}}}, nil
}

func pingFactoryFor(t *testing.T, launches *[]transport.LaunchSpec) FactoryBuilder {
	t.Helper()

	return func(name string, _ hclog.Logger, info transport.ClientInfo) (transport.ClientFactory, error) {
		require.Equal(t, AppName, info.Name)
		if name == transport.ClientNone {
			return nil, nil
		}
		return func(_ context.Context, spec transport.LaunchSpec) (transport.Client, error) {
			*launches = append(*launches, spec)
			return pingClient{}, nil
		}, nil
	}
}

func writeWorkspace(t *testing.T, doc string) string {
	t.Helper()

	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, ".vscode"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, ".vscode", "mcp.json"), []byte(doc), 0o644))
	return root
}

func TestBaseCmd_NewSession(t *testing.T) {
	t.Parallel()

	root := writeWorkspace(t, `{"servers": {"echo": {"command": "echo-server", "env": {"TOKEN": "${input:token}"}}}}`)
	store := inputs.NewMemoryStore()
	require.NoError(t, store.Set(inputs.Key("token"), "t1"))

	var launches []transport.LaunchSpec
	var payloads []status.Payload

	c := &BaseCmd{}
	s, err := c.NewSession(SessionConfig{
		Workspace:  root,
		Store:      store,
		FactoryFor: pingFactoryFor(t, &launches),
		Listeners:  []daemon.Listener{func(p status.Payload) { payloads = append(payloads, p) }},
	})
	require.NoError(t, err)
	require.Equal(t, root, s.Workspace)
	require.Same(t, c.Diagnostics(), s.Diagnostics)
	require.Len(t, s.Config().Servers, 1)

	records, err := s.Manager.Load(context.Background())
	require.NoError(t, err)
	require.Len(t, records, 1)
	require.Equal(t, domain.ConnectionStatusActive, records[0].Status)
	require.Equal(t, []string{"TOKEN=t1"}, launches[0].Env)
	require.Len(t, payloads, 1)
	require.NotEmpty(t, s.Diagnostics.Snapshot())
}

func TestBaseCmd_NewSession_NoClient(t *testing.T) {
	t.Parallel()

	root := writeWorkspace(t, `{"servers": {"echo": {"command": "echo-server"}}}`)

	var launches []transport.LaunchSpec
	s, err := (&BaseCmd{}).NewSession(SessionConfig{
		Workspace:  root,
		Client:     transport.ClientNone,
		FactoryFor: pingFactoryFor(t, &launches),
	})
	require.NoError(t, err)

	records, err := s.Manager.Load(context.Background())
	require.NoError(t, err)
	require.Equal(t, domain.ConnectionStatusFailed, records[0].Status)
	require.Equal(t, "MCP client library not available", records[0].Message)
	require.Empty(t, launches)
}

func TestBaseCmd_NewSession_UnknownClient(t *testing.T) {
	t.Parallel()

	_, err := (&BaseCmd{}).NewSession(SessionConfig{Client: "other"})
	require.ErrorContains(t, err, "unknown MCP client 'other'")
}

func TestBaseCmd_NewSession_NoWorkspace(t *testing.T) {
	t.Parallel()

	s, err := (&BaseCmd{}).NewSession(SessionConfig{Client: transport.ClientNone, PersistInputs: true})
	require.NoError(t, err)
	require.Empty(t, s.Workspace)
	require.IsType(t, &inputs.MemoryStore{}, s.Store)

	records, err := s.Manager.Load(context.Background())
	require.NoError(t, err)
	require.Empty(t, records)
}

func TestBaseCmd_NewSession_PersistentStore(t *testing.T) {
	t.Setenv("XDG_STATE_HOME", t.TempDir())

	root := writeWorkspace(t, `{}`)

	s, err := (&BaseCmd{}).NewSession(SessionConfig{Workspace: root, Client: transport.ClientNone, PersistInputs: true})
	require.NoError(t, err)

	fs, ok := s.Store.(*inputs.FileStore)
	require.True(t, ok)

	want, err := inputs.DefaultStorePath(root)
	require.NoError(t, err)
	require.Equal(t, want, fs.Path())
}

func TestResolveWorkspace(t *testing.T) {
	t.Parallel()

	got, err := resolveWorkspace("  ")
	require.NoError(t, err)
	require.Empty(t, got)

	got, err = resolveWorkspace(".")
	require.NoError(t, err)
	require.True(t, filepath.IsAbs(got))
}
