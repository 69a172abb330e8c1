package printer

import (
	"fmt"
	"io"

	"github.com/mozilla-ai/mcpscout/internal/cmd/output"
)

var _ output.Printer[InputEntry] = (*InputPrinter)(nil)

// InputEntry describes one input referenced by the workspace configuration.
// Values are never included.
type InputEntry struct {
	ID          string `json:"id"                    yaml:"id"`
	Title       string `json:"title,omitempty"       yaml:"title,omitempty"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
	Declared    bool   `json:"declared"              yaml:"declared"`
	Stored      bool   `json:"stored"                yaml:"stored"`
}

// InputPrinter renders one input per line.
type InputPrinter struct {
	headerFunc output.WriteFunc[InputEntry]
	footerFunc output.WriteFunc[InputEntry]
}

// NewInputPrinter creates an InputPrinter with the default header.
func NewInputPrinter() *InputPrinter {
	return &InputPrinter{
		headerFunc: DefaultInputHeader(),
	}
}

func (p *InputPrinter) Header(w io.Writer, count int) {
	if p.headerFunc != nil {
		p.headerFunc(w, count)
	}
}

func (p *InputPrinter) SetHeader(fn output.WriteFunc[InputEntry]) {
	p.headerFunc = fn
}

func (p *InputPrinter) Item(w io.Writer, in InputEntry) error {
	state := "not set"
	if in.Stored {
		state = "stored"
	}

	_, _ = fmt.Fprintf(w, "  %s (%s)", in.ID, state)
	if !in.Declared {
		_, _ = fmt.Fprint(w, " [not declared]")
	}

	label := in.Description
	if label == "" {
		label = in.Title
	}
	if label != "" {
		_, _ = fmt.Fprintf(w, " - %s", label)
	}
	_, _ = fmt.Fprintln(w)

	return nil
}

func (p *InputPrinter) Footer(w io.Writer, count int) {
	if p.footerFunc != nil {
		p.footerFunc(w, count)
	}
}

func (p *InputPrinter) SetFooter(fn output.WriteFunc[InputEntry]) {
	p.footerFunc = fn
}

// DefaultInputHeader writes the number of inputs.
func DefaultInputHeader() output.WriteFunc[InputEntry] {
	return func(w io.Writer, count int) {
		_, _ = fmt.Fprintf(w, "Inputs (%d total):\n", count)
	}
}
