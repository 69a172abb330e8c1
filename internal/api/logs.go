package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/mozilla-ai/mcpscout/internal/contracts"
)

// DiagnosticLog is the API representation of the rolling diagnostic log.
type DiagnosticLog struct {
	Lines []string `doc:"Retained log lines, oldest first" json:"lines"`
	Text  string   `doc:"Retained log lines joined by newlines" json:"text"`
}

// DiagnosticLogResponse represents the wrapped API response for the diagnostic log.
type DiagnosticLogResponse struct {
	Body DiagnosticLog
}

// RegisterLogRoutes sets up diagnostic log API endpoints.
func RegisterLogRoutes(routerAPI huma.API, diagnostics contracts.DiagnosticLog, apiPathPrefix string) {
	logsAPI := huma.NewGroup(routerAPI, apiPathPrefix)

	huma.Register(
		logsAPI,
		huma.Operation{
			OperationID: "getDiagnosticLog",
			Method:      http.MethodGet,
			Summary:     "Get the rolling diagnostic log",
			Tags:        []string{"Logs"},
		},
		func(_ context.Context, _ *struct{}) (*DiagnosticLogResponse, error) {
			resp := &DiagnosticLogResponse{}
			resp.Body = DiagnosticLog{
				Lines: diagnostics.Snapshot(),
				Text:  diagnostics.String(),
			}
			return resp, nil
		},
	)
}
