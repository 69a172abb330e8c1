package printer

import (
	"fmt"
	"io"

	"github.com/mozilla-ai/mcpscout/internal/cmd/output"
)

var _ output.Printer[string] = (*LinePrinter)(nil)

// LinePrinter writes each item on its own line, as is.
type LinePrinter struct {
	headerFunc output.WriteFunc[string]
	footerFunc output.WriteFunc[string]
}

func (p *LinePrinter) Header(w io.Writer, count int) {
	if p.headerFunc != nil {
		p.headerFunc(w, count)
	}
}

func (p *LinePrinter) SetHeader(fn output.WriteFunc[string]) {
	p.headerFunc = fn
}

func (p *LinePrinter) Item(w io.Writer, line string) error {
	_, err := fmt.Fprintln(w, line)
	return err
}

func (p *LinePrinter) Footer(w io.Writer, count int) {
	if p.footerFunc != nil {
		p.footerFunc(w, count)
	}
}

func (p *LinePrinter) SetFooter(fn output.WriteFunc[string]) {
	p.footerFunc = fn
}
