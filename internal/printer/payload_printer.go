package printer

import (
	"fmt"
	"io"

	"github.com/mozilla-ai/mcpscout/internal/cmd/output"
	"github.com/mozilla-ai/mcpscout/internal/domain"
	"github.com/mozilla-ai/mcpscout/internal/status"
)

var _ output.Printer[status.Payload] = (*PayloadPrinter)(nil)

// PayloadPrinter renders the presentation payload as a list of servers and their tools.
type PayloadPrinter struct {
	headerFunc output.WriteFunc[status.Payload]
	footerFunc output.WriteFunc[status.Payload]
}

// NewPayloadPrinter creates a PayloadPrinter without header or footer.
func NewPayloadPrinter() *PayloadPrinter {
	return &PayloadPrinter{}
}

func (p *PayloadPrinter) Header(w io.Writer, count int) {
	if p.headerFunc != nil {
		p.headerFunc(w, count)
	}
}

func (p *PayloadPrinter) SetHeader(fn output.WriteFunc[status.Payload]) {
	p.headerFunc = fn
}

func (p *PayloadPrinter) Item(w io.Writer, payload status.Payload) error {
	if len(payload.Servers) == 0 {
		_, _ = fmt.Fprintln(w, "No MCP servers configured")
		return nil
	}

	for _, s := range payload.Servers {
		switch s.Status {
		case domain.ConnectionStatusFailed:
			_, _ = fmt.Fprintf(w, "%s %s (%s): %s\n", statusIcon(s.Status), s.Name, s.Status, s.Message)
		default:
			_, _ = fmt.Fprintf(w, "%s %s (%s)\n", statusIcon(s.Status), s.Name, s.Status)
		}

		for _, t := range s.Tools {
			if t.Description == "" {
				_, _ = fmt.Fprintf(w, "  %s\n", t.Name)
				continue
			}
			_, _ = fmt.Fprintf(w, "  %s - %s\n", t.Name, t.Description)
		}
	}

	summarize(w, payload)

	return nil
}

func (p *PayloadPrinter) Footer(w io.Writer, count int) {
	if p.footerFunc != nil {
		p.footerFunc(w, count)
	}
}

func (p *PayloadPrinter) SetFooter(fn output.WriteFunc[status.Payload]) {
	p.footerFunc = fn
}

func statusIcon(s domain.ConnectionStatus) string {
	switch s {
	case domain.ConnectionStatusActive:
		return "✅"
	case domain.ConnectionStatusFailed:
		return "❌"
	default:
		return "⏳"
	}
}

// summarize writes one line counting servers per status.
func summarize(w io.Writer, payload status.Payload) {
	var active, failed int
	for _, s := range payload.Servers {
		switch s.Status {
		case domain.ConnectionStatusActive:
			active++
		case domain.ConnectionStatusFailed:
			failed++
		}
	}

	total := len(payload.Servers)
	_, _ = fmt.Fprintf(
		w,
		"\n%d server%s: %d active, %d failed\n",
		total,
		map[bool]string{true: "s"}[total != 1],
		active,
		failed,
	)
}
