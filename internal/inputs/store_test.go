package inputs

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/mozilla-ai/mcpscout/internal/perms"
)

func TestKey(t *testing.T) {
	t.Parallel()

	require.Equal(t, "mcp.input.apiKey", Key("apiKey"))
	require.Equal(t, "mcp.input.apiKey", Key(" apiKey "))

	id, ok := IDFromKey("mcp.input.apiKey")
	require.True(t, ok)
	require.Equal(t, "apiKey", id)

	_, ok = IDFromKey("other.apiKey")
	require.False(t, ok)

	_, ok = IDFromKey(KeyPrefix)
	require.False(t, ok)
}

func TestMemoryStore(t *testing.T) {
	t.Parallel()

	s := NewMemoryStore()

	_, ok, err := s.Get("k")
	require.NoError(t, err)
	require.False(t, ok)

	require.NoError(t, s.Set("k", "v"))
	v, ok, err := s.Get("k")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "v", v)

	all, err := s.List()
	require.NoError(t, err)
	all["k"] = "mutated"
	v, _, _ = s.Get("k")
	require.Equal(t, "v", v)

	require.NoError(t, s.Delete("k"))
	require.NoError(t, s.Delete("missing"))
	require.NoError(t, s.Set("a", "1"))
	require.NoError(t, s.Clear())

	all, err = s.List()
	require.NoError(t, err)
	require.Empty(t, all)
}

func TestFileStore_RoundTrip(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "state", "workspaces", "ws.toml")

	s, err := OpenFileStore(path, "/work/project")
	require.NoError(t, err)
	require.Equal(t, path, s.Path())

	require.NoError(t, s.Set(Key("apiKey"), "secret123"))
	require.NoError(t, s.Set(Key("region"), "eu-west-1"))

	info, err := os.Stat(path)
	require.NoError(t, err)
	require.Equal(t, perms.SecureFile, info.Mode().Perm())

	reopened, err := OpenFileStore(path, "")
	require.NoError(t, err)

	all, err := reopened.List()
	require.NoError(t, err)
	require.Equal(t, map[string]string{
		"mcp.input.apiKey": "secret123",
		"mcp.input.region": "eu-west-1",
	}, all)
	require.Equal(t, "/work/project", reopened.data.Workspace)

	require.NoError(t, reopened.Delete(Key("region")))
	again, err := OpenFileStore(path, "")
	require.NoError(t, err)
	_, ok, err := again.Get(Key("region"))
	require.NoError(t, err)
	require.False(t, ok)

	require.NoError(t, again.Clear())
	cleared, err := OpenFileStore(path, "")
	require.NoError(t, err)
	all, err = cleared.List()
	require.NoError(t, err)
	require.Empty(t, all)
}

func TestFileStore_FailedSaveKeepsPreviousState(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		mutate func(s *FileStore) error
	}{
		{name: "set new key", mutate: func(s *FileStore) error { return s.Set(Key("region"), "eu-west-1") }},
		{name: "overwrite key", mutate: func(s *FileStore) error { return s.Set(Key("apiKey"), "rotated") }},
		{name: "delete key", mutate: func(s *FileStore) error { return s.Delete(Key("apiKey")) }},
		{name: "clear", mutate: func(s *FileStore) error { return s.Clear() }},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			dir := filepath.Join(t.TempDir(), "state")
			s, err := OpenFileStore(filepath.Join(dir, "ws.toml"), "")
			require.NoError(t, err)
			require.NoError(t, s.Set(Key("apiKey"), "secret123"))

			// The store directory becomes a regular file, so every later write fails.
			require.NoError(t, os.RemoveAll(dir))
			require.NoError(t, os.WriteFile(dir, []byte("not a directory"), 0o600))

			require.Error(t, tc.mutate(s))

			all, err := s.List()
			require.NoError(t, err)
			require.Equal(t, map[string]string{"mcp.input.apiKey": "secret123"}, all)
		})
	}
}

func TestFileStore_MissingFileIsEmpty(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "missing.toml")
	s, err := OpenFileStore(path, "")
	require.NoError(t, err)

	all, err := s.List()
	require.NoError(t, err)
	require.Empty(t, all)

	_, err = os.Stat(path)
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestFileStore_InvalidFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "bad.toml")
	require.NoError(t, os.WriteFile(path, []byte("inputs = [unterminated"), 0o600))

	_, err := OpenFileStore(path, "")
	require.Error(t, err)
	require.Contains(t, err.Error(), "could not be parsed")

	_, err = OpenFileStore("  ", "")
	require.EqualError(t, err, "path cannot be empty")
}

func TestDefaultStorePath(t *testing.T) {
	state := t.TempDir()
	t.Setenv("XDG_STATE_HOME", state)

	a, err := DefaultStorePath("/work/a")
	require.NoError(t, err)
	b, err := DefaultStorePath("/work/b")
	require.NoError(t, err)
	again, err := DefaultStorePath("/work/a")
	require.NoError(t, err)

	require.NotEqual(t, a, b)
	require.Equal(t, a, again)
	require.True(t, strings.HasPrefix(a, filepath.Join(state, "mcpscout", "workspaces")))
	require.Equal(t, ".toml", filepath.Ext(a))

	_, err = DefaultStorePath("")
	require.Error(t, err)
}

func TestLinePrompter(t *testing.T) {
	t.Parallel()

	in := strings.NewReader("first\r\nsecond\n")
	var out bytes.Buffer
	p := NewLinePrompter(in, &out)

	v, ok, err := p.Prompt(context.Background(), PromptRequest{ID: "a", Title: "Value for a", Prompt: "Enter value for a"})
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "first", v)

	v, ok, err = p.Prompt(context.Background(), PromptRequest{ID: "b", Title: "B", Prompt: "b?"})
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "second", v)

	_, ok, err = p.Prompt(context.Background(), PromptRequest{ID: "c", Title: "C", Prompt: "c?"})
	require.NoError(t, err)
	require.False(t, ok)

	require.Equal(t, "Value for a\nEnter value for a: B\nb?: C\nc?: ", out.String())
}

func TestLinePrompter_ContextCancelled(t *testing.T) {
	t.Parallel()

	r, w, err := os.Pipe()
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = w.Close()
		_ = r.Close()
	})

	p := NewLinePrompter(r, &bytes.Buffer{})
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, ok, err := p.Prompt(ctx, PromptRequest{ID: "x"})
	require.ErrorIs(t, err, context.DeadlineExceeded)
	require.False(t, ok)
}
