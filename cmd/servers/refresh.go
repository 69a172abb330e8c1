package servers

import (
	"github.com/spf13/cobra"

	"github.com/mozilla-ai/mcpscout/internal/cmd"
	cmdopts "github.com/mozilla-ai/mcpscout/internal/cmd/options"
)

// RefreshCmd represents the 'servers refresh' command.
type RefreshCmd struct {
	*cmd.BaseCmd
	session cmd.SessionFlags
	format  cmd.OutputFormat
	force   bool
	opts    cmdopts.CmdOptions
}

// NewRefreshCmd creates a newly configured (Cobra) command.
func NewRefreshCmd(baseCmd *cmd.BaseCmd, opt ...cmdopts.CmdOption) (*cobra.Command, error) {
	opts, err := cmdopts.NewOptions(opt...)
	if err != nil {
		return nil, err
	}

	c := &RefreshCmd{
		BaseCmd: baseCmd,
		format:  cmd.FormatText,
		opts:    opts,
	}

	cobraCmd := &cobra.Command{
		Use:   "refresh [--force]",
		Short: "Re-reads configuration, reconnects servers and lists their tools",
		Long: "Re-reads configuration and reconnects servers. " +
			"With --force every server is reconnected and every referenced input is prompted for again, " +
			"ignoring stored values",
		Args: cobra.NoArgs,
		RunE: c.run,
	}

	c.session.AddFlags(cobraCmd.Flags(), true)
	cobraCmd.Flags().BoolVar(&c.force, "force", false, "Reconnect every server and prompt for every input again")
	allowed := cmd.AllowedOutputFormats()
	cobraCmd.Flags().Var(&c.format, "format", "Specify the output format, one of: "+allowed.String())

	return cobraCmd, nil
}

func (c *RefreshCmd) run(cobraCmd *cobra.Command, _ []string) error {
	return listServers(cobraCmd, c.BaseCmd, c.opts, &c.session, c.format, true, c.force)
}
