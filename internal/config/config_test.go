package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/hashicorp/go-hclog"
	"github.com/stretchr/testify/require"

	"github.com/mozilla-ai/mcpscout/internal/domain"
)

func writeDocument(t *testing.T, root string, content string) {
	t.Helper()

	path := filepath.Join(root, filepath.FromSlash(DefaultRelativePath))
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func newTestLoader(t *testing.T) *DefaultLoader {
	t.Helper()

	l, err := NewDefaultLoader(hclog.NewNullLogger(), "")
	require.NoError(t, err)
	return l
}

func TestNewDefaultLoader(t *testing.T) {
	t.Parallel()

	_, err := NewDefaultLoader(nil, "")
	require.EqualError(t, err, "logger cannot be nil")

	l, err := NewDefaultLoader(hclog.NewNullLogger(), "  ")
	require.NoError(t, err)
	require.Equal(t, DefaultRelativePath, l.path)

	l, err = NewDefaultLoader(hclog.NewNullLogger(), "conf/servers.json")
	require.NoError(t, err)
	require.Equal(t, "conf/servers.json", l.path)
}

func TestParse_ShapeInvariance(t *testing.T) {
	t.Parallel()

	expected := []domain.ServerDescriptor{
		{Name: "alpha", Type: domain.ServerTypeStdio, Command: "npx", Args: []string{"-y", "alpha-mcp"}},
		{Name: "beta", Type: domain.ServerTypeStdio, Command: "uvx", Args: []string{"beta", "${input:token}"}},
	}

	tests := []struct {
		name string
		doc  string
	}{
		{
			name: "servers object",
			doc: `{
  "servers": {
    "alpha": {"type": "stdio", "command": "npx", "args": ["-y", "alpha-mcp"]},
    "beta": {"command": "uvx", "args": ["beta", "${input:token}"]}
  }
}`,
		},
		{
			name: "servers array",
			doc: `{
  "servers": [
    {"name": "alpha", "command": "npx", "args": ["-y", "alpha-mcp"]},
    {"id": "beta", "type": "stdio", "command": "uvx", "args": ["beta", "${input:token}"]}
  ]
}`,
		},
		{
			name: "legacy array",
			doc: `{
  "mcpServers": [
    {"name": "alpha", "command": "npx", "args": ["-y", "alpha-mcp"]},
    {"name": "beta", "command": "uvx", "args": ["beta", "${input:token}"]}
  ]
}`,
		},
		{
			name: "legacy object",
			doc: `{
  "mcpServers": {
    "alpha": {"command": "npx", "args": ["-y", "alpha-mcp"]},
    "beta": {"command": "uvx", "args": ["beta", "${input:token}"]}
  }
}`,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			cfg, err := Parse([]byte(tc.doc), nil)
			require.NoError(t, err)
			require.Equal(t, expected, cfg.Servers)
		})
	}
}

func TestParse_ServersPreferredOverLegacyKey(t *testing.T) {
	t.Parallel()

	cfg, err := Parse([]byte(`{
  "mcpServers": {"old": {"command": "old"}},
  "servers": {"new": {"command": "new"}}
}`), nil)
	require.NoError(t, err)
	require.Len(t, cfg.Servers, 1)
	require.Equal(t, "new", cfg.Servers[0].Name)
}

func TestParse_PositionalNames(t *testing.T) {
	t.Parallel()

	cfg, err := Parse([]byte(`{
  "servers": [
    {"command": "first"},
    {"name": "named", "command": "second"},
    {"command": "third"}
  ]
}`), nil)
	require.NoError(t, err)

	names := make([]string, 0, len(cfg.Servers))
	for _, s := range cfg.Servers {
		names = append(names, s.Name)
	}
	require.Equal(t, []string{"server-1", "named", "server-3"}, names)
}

func TestParse_DescriptorWithoutCommandIsRetained(t *testing.T) {
	t.Parallel()

	cfg, err := Parse([]byte(`{"servers": {"broken": {"args": ["x"]}, "ok": {"command": "echo"}}}`), nil)
	require.NoError(t, err)
	require.Len(t, cfg.Servers, 2)
	require.Equal(t, "broken", cfg.Servers[0].Name)
	require.Empty(t, cfg.Servers[0].Command)
	require.Equal(t, []string{"x"}, cfg.Servers[0].Args)
}

func TestParse_UnsupportedTypeIsRetained(t *testing.T) {
	t.Parallel()

	cfg, err := Parse([]byte(`{"servers": {"remote": {"type": "sse", "command": "x"}}}`), nil)
	require.NoError(t, err)
	require.Len(t, cfg.Servers, 1)
	require.Equal(t, domain.ServerType("sse"), cfg.Servers[0].Type)
}

func TestParse_DuplicateNamesKeepFirst(t *testing.T) {
	t.Parallel()

	cfg, err := Parse([]byte(`{
  "servers": [
    {"name": "dup", "command": "first"},
    {"name": "dup", "command": "second"}
  ]
}`), nil)
	require.NoError(t, err)
	require.Len(t, cfg.Servers, 1)
	require.Equal(t, "first", cfg.Servers[0].Command)
}

func TestParse_ArgsAndEnv(t *testing.T) {
	t.Parallel()

	cfg, err := Parse([]byte(`{
  "servers": {
    "s": {
      "command": "run",
      "args": ["a", 3, true, {"nested": 1}, null],
      "env": {"TOKEN": "${input:token}", "PORT": 8080}
    }
  }
}`), nil)
	require.NoError(t, err)
	require.Len(t, cfg.Servers, 1)
	require.Equal(t, []string{"a", "3", "true"}, cfg.Servers[0].Args)
	require.Equal(t, map[string]string{"TOKEN": "${input:token}", "PORT": "8080"}, cfg.Servers[0].Env)
}

func TestParse_Inputs(t *testing.T) {
	t.Parallel()

	cfg, err := Parse([]byte(`{
  "inputs": [
    {"id": "apiKey", "title": "API key", "description": "Your key"},
    {"title": "no id"},
    {"id": "region"},
    {"id": "apiKey", "title": "duplicate"}
  ]
}`), nil)
	require.NoError(t, err)
	require.Equal(t, []domain.InputDefinition{
		{ID: "apiKey", Title: "API key", Description: "Your key"},
		{ID: "region"},
	}, cfg.Inputs)
	require.NotNil(t, cfg.Servers)
	require.Empty(t, cfg.Servers)
}

func TestParse_Invalid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		doc  string
	}{
		{name: "not json", doc: `{"servers": `},
		{name: "root array", doc: `[1, 2]`},
		{name: "servers string", doc: `{"servers": "nope"}`},
		{name: "inputs object", doc: `{"inputs": {"id": "x"}}`},
		{name: "inputs of strings", doc: `{"inputs": ["x"]}`},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			cfg, err := Parse([]byte(tc.doc), nil)
			require.ErrorIs(t, err, ErrInvalidDocument)
			require.Nil(t, cfg)
		})
	}
}

func TestDefaultLoader_Load(t *testing.T) {
	t.Parallel()

	t.Run("no root", func(t *testing.T) {
		t.Parallel()

		cfg := newTestLoader(t).Load("")
		require.Equal(t, Empty(), cfg)
	})

	t.Run("missing document", func(t *testing.T) {
		t.Parallel()

		cfg := newTestLoader(t).Load(t.TempDir())
		require.Empty(t, cfg.Servers)
		require.Empty(t, cfg.Path)
	})

	t.Run("malformed document", func(t *testing.T) {
		t.Parallel()

		root := t.TempDir()
		writeDocument(t, root, "{ not json")

		cfg := newTestLoader(t).Load(root)
		require.NotNil(t, cfg.Servers)
		require.Empty(t, cfg.Servers)
	})

	t.Run("valid document", func(t *testing.T) {
		t.Parallel()

		root := t.TempDir()
		writeDocument(t, root, `{"servers": {"echo": {"type": "stdio", "command": "echo", "args": ["hi"]}}}`)

		cfg := newTestLoader(t).Load(root)
		require.Equal(t, filepath.Join(root, ".vscode", "mcp.json"), cfg.Path)
		require.Equal(t, []domain.ServerDescriptor{
			{Name: "echo", Type: domain.ServerTypeStdio, Command: "echo", Args: []string{"hi"}},
		}, cfg.Servers)
	})

	t.Run("absolute path override", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "custom.json")
		require.NoError(t, os.WriteFile(path, []byte(`{"servers": [{"command": "x"}]}`), 0o644))

		l, err := NewDefaultLoader(hclog.NewNullLogger(), path)
		require.NoError(t, err)

		cfg := l.Load(t.TempDir())
		require.Len(t, cfg.Servers, 1)
		require.Equal(t, "server-1", cfg.Servers[0].Name)
	})
}

func TestConfig_ListReturnsCopies(t *testing.T) {
	t.Parallel()

	cfg := &Config{
		Servers: []domain.ServerDescriptor{{Name: "a", Args: []string{"x"}, Env: map[string]string{"K": "V"}}},
		Inputs:  []domain.InputDefinition{{ID: "i"}},
	}

	servers := cfg.ListServers()
	servers[0].Args[0] = "changed"
	servers[0].Env["K"] = "changed"

	inputs := cfg.ListInputs()
	inputs[0].ID = "changed"

	require.Equal(t, "x", cfg.Servers[0].Args[0])
	require.Equal(t, "V", cfg.Servers[0].Env["K"])
	require.Equal(t, "i", cfg.Inputs[0].ID)
}
