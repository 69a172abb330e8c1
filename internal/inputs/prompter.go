package inputs

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
	"sync"
)

var (
	_ Prompter = (*LinePrompter)(nil)
	_ Prompter = NonInteractivePrompter{}
)

// PromptRequest asks the operator for the value of one input.
type PromptRequest struct {
	ID     string
	Title  string
	Prompt string

	// IgnoreFocusOut asks interactive front-ends to keep the prompt open when it loses focus,
	// so that dismissal is always an explicit operator action.
	IgnoreFocusOut bool
}

// Prompter obtains input values from an operator.
// ok is false when the operator cancelled the prompt.
type Prompter interface {
	Prompt(ctx context.Context, req PromptRequest) (value string, ok bool, err error)
}

// interactivePrompter is implemented by prompters that can report whether an operator is attached.
// Prompters that do not implement it are treated as interactive.
type interactivePrompter interface {
	Interactive() bool
}

// NonInteractivePrompter cancels every prompt. Used where no operator is attached, such as the daemon.
type NonInteractivePrompter struct{}

func (NonInteractivePrompter) Prompt(context.Context, PromptRequest) (string, bool, error) {
	return "", false, nil
}

// Interactive reports false, no operator is ever asked.
func (NonInteractivePrompter) Interactive() bool {
	return false
}

// LinePrompter prompts on a writer and reads a single line answer from a reader.
// End of input is treated as cancellation.
type LinePrompter struct {
	in  io.Reader
	out io.Writer

	mu    sync.Mutex
	once  sync.Once
	lines chan string
}

// NewLinePrompter returns a prompter reading answers from in and writing prompts to out.
func NewLinePrompter(in io.Reader, out io.Writer) *LinePrompter {
	return &LinePrompter{in: in, out: out}
}

func (p *LinePrompter) Prompt(ctx context.Context, req PromptRequest) (string, bool, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.once.Do(p.start)

	if _, err := fmt.Fprintf(p.out, "%s\n%s: ", req.Title, req.Prompt); err != nil {
		return "", false, fmt.Errorf("could not write prompt for '%s': %w", req.ID, err)
	}

	select {
	case <-ctx.Done():
		return "", false, ctx.Err()
	case line, ok := <-p.lines:
		if !ok {
			return "", false, nil
		}
		return strings.TrimRight(line, "\r"), true, nil
	}
}

// start launches the single reader goroutine that feeds lines to prompts.
// A prompt abandoned through its context leaves any line typed for it to the next prompt.
func (p *LinePrompter) start() {
	p.lines = make(chan string)

	go func() {
		defer close(p.lines)

		scanner := bufio.NewScanner(p.in)
		for scanner.Scan() {
			p.lines <- scanner.Text()
		}
	}()
}
