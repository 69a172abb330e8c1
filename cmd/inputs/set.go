package inputs

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mozilla-ai/mcpscout/internal/cmd"
	cmdopts "github.com/mozilla-ai/mcpscout/internal/cmd/options"
	internalinputs "github.com/mozilla-ai/mcpscout/internal/inputs"
)

// SetCmd represents the 'inputs set' command.
type SetCmd struct {
	*cmd.BaseCmd
	opts cmdopts.CmdOptions
}

// NewSetCmd creates a newly configured (Cobra) command.
func NewSetCmd(baseCmd *cmd.BaseCmd, opt ...cmdopts.CmdOption) (*cobra.Command, error) {
	opts, err := cmdopts.NewOptions(opt...)
	if err != nil {
		return nil, err
	}

	c := &SetCmd{
		BaseCmd: baseCmd,
		opts:    opts,
	}

	cobraCmd := &cobra.Command{
		Use:   "set <input-id> [value]",
		Short: "Stores the value of an input, prompting for it when omitted",
		Long: "Stores the value of an input for the workspace. " +
			"When the value is omitted it is read from standard input, so that secrets stay out of shell history",
		Args: cobra.RangeArgs(1, 2),
		RunE: c.run,
	}

	return cobraCmd, nil
}

func (c *SetCmd) run(cobraCmd *cobra.Command, args []string) error {
	id := strings.TrimSpace(args[0])
	if id == "" {
		return fmt.Errorf("input id is required and cannot be empty")
	}

	s, err := openSession(c.BaseCmd, c.opts)
	if err != nil {
		return err
	}

	var value string
	if len(args) == 2 {
		value = args[1]
	} else {
		prompter := c.opts.Prompter
		if prompter == nil {
			prompter = internalinputs.NewLinePrompter(cobraCmd.InOrStdin(), cobraCmd.ErrOrStderr())
		}

		v, ok, err := prompter.Prompt(cobraCmd.Context(), internalinputs.PromptFor(id, s.Config().ListInputs()))
		if err != nil {
			return fmt.Errorf("prompt for input '%s' failed: %w", id, err)
		}
		if !ok {
			return fmt.Errorf("no value supplied for input '%s'", id)
		}
		value = v
	}

	if value == "" {
		return fmt.Errorf("value for input '%s' cannot be empty", id)
	}

	if err := s.Store.Set(internalinputs.Key(id), value); err != nil {
		return fmt.Errorf("could not store input '%s': %w", id, err)
	}

	_, _ = fmt.Fprintf(cobraCmd.OutOrStdout(), "✓ Stored input '%s'\n", id)

	return nil
}
