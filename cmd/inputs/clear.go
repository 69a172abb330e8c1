package inputs

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mozilla-ai/mcpscout/internal/cmd"
	cmdopts "github.com/mozilla-ai/mcpscout/internal/cmd/options"
	internalinputs "github.com/mozilla-ai/mcpscout/internal/inputs"
)

// ClearCmd represents the 'inputs clear' command.
type ClearCmd struct {
	*cmd.BaseCmd
	opts cmdopts.CmdOptions
}

// NewClearCmd creates a newly configured (Cobra) command.
func NewClearCmd(baseCmd *cmd.BaseCmd, opt ...cmdopts.CmdOption) (*cobra.Command, error) {
	opts, err := cmdopts.NewOptions(opt...)
	if err != nil {
		return nil, err
	}

	c := &ClearCmd{
		BaseCmd: baseCmd,
		opts:    opts,
	}

	cobraCmd := &cobra.Command{
		Use:   "clear [input-id]",
		Short: "Removes the stored value of one input, or of every input when no id is given",
		Args:  cobra.MaximumNArgs(1),
		RunE:  c.run,
	}

	return cobraCmd, nil
}

func (c *ClearCmd) run(cobraCmd *cobra.Command, args []string) error {
	s, err := openSession(c.BaseCmd, c.opts)
	if err != nil {
		return err
	}

	if len(args) == 0 {
		if err := s.Store.Clear(); err != nil {
			return fmt.Errorf("could not clear stored inputs: %w", err)
		}
		_, _ = fmt.Fprintln(cobraCmd.OutOrStdout(), "✓ Cleared every stored input")
		return nil
	}

	id := strings.TrimSpace(args[0])
	if id == "" {
		return fmt.Errorf("input id cannot be empty")
	}

	if err := s.Store.Delete(internalinputs.Key(id)); err != nil {
		return fmt.Errorf("could not clear input '%s': %w", id, err)
	}
	_, _ = fmt.Fprintf(cobraCmd.OutOrStdout(), "✓ Cleared input '%s'\n", id)

	return nil
}
