package daemon

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/hashicorp/go-hclog"
	"github.com/stretchr/testify/require"

	"github.com/mozilla-ai/mcpscout/internal/domain"
	"github.com/mozilla-ai/mcpscout/internal/errors"
	"github.com/mozilla-ai/mcpscout/internal/status"
)

// staticCatalog serves fixed records.
type staticCatalog struct {
	records []domain.ConnectionRecord
	forced  []bool
}

func (s *staticCatalog) Load(context.Context) ([]domain.ConnectionRecord, error) {
	return s.records, nil
}

func (s *staticCatalog) Refresh(_ context.Context, force bool) ([]domain.ConnectionRecord, error) {
	s.forced = append(s.forced, force)
	return s.records, nil
}

func (s *staticCatalog) Record(name string) (domain.ConnectionRecord, error) {
	for _, r := range s.records {
		if r.ServerName == name {
			return r, nil
		}
	}
	return domain.ConnectionRecord{}, fmt.Errorf("%w: %s", errors.ErrServerNotFound, name)
}

func testAPIDependencies(t *testing.T) APIDependencies {
	t.Helper()

	ring := status.NewRing(10)
	ring.Append("[2026-01-01T00:00:00.000Z] registry: Loading MCP servers")

	deps, err := NewAPIDependencies(
		hclog.NewNullLogger(),
		&staticCatalog{records: []domain.ConnectionRecord{
			domain.Active("echo", []domain.ToolDescriptor{{Name: "ping", Description: "Replies with pong"}}),
		}},
		ring,
		"localhost:8091",
	)
	require.NoError(t, err)
	return deps
}

func TestNewAPIDependencies_Validation(t *testing.T) {
	t.Parallel()

	logger := hclog.NewNullLogger()
	catalog := &staticCatalog{}
	ring := status.NewRing(1)

	tests := []struct {
		name    string
		deps    func() (APIDependencies, error)
		wantErr string
	}{
		{
			name:    "invalid address",
			deps:    func() (APIDependencies, error) { return NewAPIDependencies(logger, catalog, ring, "localhost") },
			wantErr: "invalid API address 'localhost'",
		},
		{
			name:    "nil catalog",
			deps:    func() (APIDependencies, error) { return NewAPIDependencies(logger, nil, ring, ":8091") },
			wantErr: "server catalog cannot be nil",
		},
		{
			name:    "nil diagnostics",
			deps:    func() (APIDependencies, error) { return NewAPIDependencies(logger, catalog, nil, ":8091") },
			wantErr: "diagnostic log cannot be nil",
		},
		{
			name:    "nil logger",
			deps:    func() (APIDependencies, error) { return NewAPIDependencies(nil, catalog, ring, ":8091") },
			wantErr: "logger cannot be nil",
		},
		{
			name: "valid",
			deps: func() (APIDependencies, error) { return NewAPIDependencies(logger, catalog, ring, "127.0.0.1:http") },
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			_, err := tc.deps()
			if tc.wantErr != "" {
				require.ErrorContains(t, err, tc.wantErr)
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestNewAPIOptions(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		opts    []APIOption
		want    func(t *testing.T, o APIOptions)
		wantErr string
	}{
		{
			name: "defaults",
			want: func(t *testing.T, o APIOptions) {
				require.False(t, o.CORS.Enabled)
				require.Equal(t, DefaultAPIShutdownTimeout(), o.ShutdownTimeout)
				require.Equal(t, DefaultCORSAllowMethods(), o.CORS.AllowMethods)
				require.Equal(t, "dev", o.DocsVersion)
			},
		},
		{
			name: "origins enable CORS and drop blanks",
			opts: []APIOption{nil, WithCORSOrigins(" vscode-webview://abc ", "", "  ")},
			want: func(t *testing.T, o APIOptions) {
				require.True(t, o.CORS.Enabled)
				require.Equal(t, []string{"vscode-webview://abc"}, o.CORS.AllowOrigins)
			},
		},
		{
			name: "blank origins leave CORS disabled",
			opts: []APIOption{WithCORSOrigins(" ")},
			want: func(t *testing.T, o APIOptions) {
				require.False(t, o.CORS.Enabled)
			},
		},
		{
			name: "overrides",
			opts: []APIOption{
				WithShutdownTimeout(time.Second),
				WithDocsVersion("1.2.3"),
				WithCORSMaxAge(0),
				WithCORSAllowCredentials(true),
			},
			want: func(t *testing.T, o APIOptions) {
				require.Equal(t, time.Second, o.ShutdownTimeout)
				require.Equal(t, "1.2.3", o.DocsVersion)
				require.Zero(t, o.CORS.MaxAge)
				require.True(t, o.CORS.AllowCredentials)
			},
		},
		{
			name:    "non-positive shutdown timeout",
			opts:    []APIOption{WithShutdownTimeout(0)},
			wantErr: "shutdown timeout must be positive, got 0s",
		},
		{
			name:    "negative max age",
			opts:    []APIOption{WithCORSMaxAge(-time.Second)},
			wantErr: "CORS max age cannot be negative, got -1s",
		},
		{
			name:    "empty docs version",
			opts:    []APIOption{WithDocsVersion(" ")},
			wantErr: "docs version cannot be empty",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			o, err := NewAPIOptions(tc.opts...)
			if tc.wantErr != "" {
				require.EqualError(t, err, tc.wantErr)
				return
			}
			require.NoError(t, err)
			tc.want(t, o)
		})
	}
}

// Handler installs the process-wide huma error constructor, so tests that build handlers do not run in parallel.
func TestAPIServer_Handler(t *testing.T) {
	server, err := NewAPIServer(testAPIDependencies(t), WithCORSOrigins("vscode-webview://abc"))
	require.NoError(t, err)

	handler, err := server.Handler()
	require.NoError(t, err)

	ts := httptest.NewServer(handler)
	defer ts.Close()

	// Trailing slashes are stripped.
	resp, err := http.Get(ts.URL + "/api/v1/servers/")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var payload status.Payload
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&payload))
	require.Len(t, payload.Servers, 1)
	require.Equal(t, "echo", payload.Servers[0].Name)
	require.Equal(t, []status.Tool{{Name: "ping", Description: "Replies with pong"}}, payload.Servers[0].Tools)

	notFound, err := http.Get(ts.URL + "/api/v1/servers/unknown")
	require.NoError(t, err)
	defer notFound.Body.Close()
	require.Equal(t, http.StatusNotFound, notFound.StatusCode)

	logs, err := http.Get(ts.URL + "/api/v1/logs")
	require.NoError(t, err)
	defer logs.Body.Close()
	require.Equal(t, http.StatusOK, logs.StatusCode)

	req, err := http.NewRequest(http.MethodOptions, ts.URL+"/api/v1/servers", nil)
	require.NoError(t, err)
	req.Header.Set("Origin", "vscode-webview://abc")
	req.Header.Set("Access-Control-Request-Method", http.MethodGet)
	preflight, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer preflight.Body.Close()
	require.Equal(t, "vscode-webview://abc", preflight.Header.Get("Access-Control-Allow-Origin"))
}

func TestAPIServer_StartStopsOnCancel(t *testing.T) {
	deps := testAPIDependencies(t)
	deps.Addr = "127.0.0.1:0"

	server, err := NewAPIServer(deps, WithShutdownTimeout(time.Second))
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() { errCh <- server.Start(ctx) }()

	cancel()
	select {
	case err := <-errCh:
		require.ErrorIs(t, err, context.Canceled)
	case <-time.After(5 * time.Second):
		t.Fatal("API server did not stop")
	}
}

func TestMapError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		err    error
		status int
	}{
		{name: "bad request", err: errors.ErrBadRequest, status: http.StatusBadRequest},
		{name: "server not found", err: fmt.Errorf("%w: echo", errors.ErrServerNotFound), status: http.StatusNotFound},
		{name: "unsupported type", err: errors.ErrUnsupportedServerType, status: http.StatusUnprocessableEntity},
		{name: "missing command", err: errors.ErrMissingCommand, status: http.StatusUnprocessableEntity},
		{name: "client unavailable", err: errors.ErrClientUnavailable, status: http.StatusServiceUnavailable},
		{name: "connect failed", err: errors.ErrConnectFailed, status: http.StatusBadGateway},
		{name: "tool list failed", err: errors.ErrToolListFailed, status: http.StatusBadGateway},
		{name: "tool query unsupported", err: errors.ErrToolQueryUnsupported, status: http.StatusBadGateway},
		{name: "input store failed", err: errors.ErrInputStoreFailed, status: http.StatusInternalServerError},
		{name: "cancelled", err: context.Canceled, status: 499},
		{name: "unknown", err: fmt.Errorf("boom"), status: http.StatusInternalServerError},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			got := mapError(hclog.NewNullLogger(), tc.err)
			require.Equal(t, tc.status, got.GetStatus())
		})
	}
}

func TestErrorHandler(t *testing.T) {
	t.Parallel()

	handle := errorHandler(hclog.NewNullLogger())

	require.Equal(t, http.StatusTeapot, handle(nil, http.StatusTeapot, "teapot").GetStatus())
	require.Equal(t, http.StatusNotFound, handle(nil, http.StatusInternalServerError, "", errors.ErrServerNotFound).GetStatus())
	require.Equal(
		t,
		http.StatusNotFound,
		handle(nil, http.StatusInternalServerError, "", fmt.Errorf("wrapped"), errors.ErrServerNotFound).GetStatus(),
	)
}
