package servers

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/mozilla-ai/mcpscout/internal/cmd"
	cmdopts "github.com/mozilla-ai/mcpscout/internal/cmd/options"
	"github.com/mozilla-ai/mcpscout/internal/domain"
	"github.com/mozilla-ai/mcpscout/internal/printer"
	"github.com/mozilla-ai/mcpscout/internal/status"
)

// ListCmd represents the 'servers list' command.
type ListCmd struct {
	*cmd.BaseCmd
	session cmd.SessionFlags
	format  cmd.OutputFormat
	refresh bool
	force   bool
	opts    cmdopts.CmdOptions
}

// NewListCmd creates a newly configured (Cobra) command.
func NewListCmd(baseCmd *cmd.BaseCmd, opt ...cmdopts.CmdOption) (*cobra.Command, error) {
	opts, err := cmdopts.NewOptions(opt...)
	if err != nil {
		return nil, err
	}

	c := &ListCmd{
		BaseCmd: baseCmd,
		format:  cmd.FormatText,
		opts:    opts,
	}

	cobraCmd := &cobra.Command{
		Use:   "list",
		Short: "Connects every configured server and lists its status and tools",
		Args:  cobra.NoArgs,
		RunE:  c.run,
	}

	c.session.AddFlags(cobraCmd.Flags(), true)
	cobraCmd.Flags().BoolVar(&c.refresh, "refresh", false, "Re-read configuration before listing")
	cobraCmd.Flags().BoolVar(
		&c.force,
		"force",
		false,
		"Reconnect every server and prompt for every input again (implies --refresh)",
	)
	allowed := cmd.AllowedOutputFormats()
	cobraCmd.Flags().Var(&c.format, "format", "Specify the output format, one of: "+allowed.String())

	return cobraCmd, nil
}

func (c *ListCmd) run(cobraCmd *cobra.Command, _ []string) error {
	return listServers(cobraCmd, c.BaseCmd, c.opts, &c.session, c.format, c.refresh || c.force, c.force)
}

// listServers connects the configured servers and prints the resulting payload.
func listServers(
	cobraCmd *cobra.Command,
	baseCmd *cmd.BaseCmd,
	opts cmdopts.CmdOptions,
	session *cmd.SessionFlags,
	format cmd.OutputFormat,
	refresh bool,
	force bool,
) error {
	handler, err := cmd.NewHandler[status.Payload](format, cobraCmd.OutOrStdout(), printer.NewPayloadPrinter())
	if err != nil {
		return err
	}

	s, err := baseCmd.NewSession(opts.Apply(session.SessionConfig(cobraCmd.InOrStdin(), cobraCmd.ErrOrStderr())))
	if err != nil {
		return handler.HandleError(err)
	}

	records, err := load(cobraCmd.Context(), s, refresh, force)
	if err != nil {
		return handler.HandleError(err)
	}

	return handler.HandleResult(status.Snapshot(records))
}

func load(ctx context.Context, s *cmd.Session, refresh bool, force bool) ([]domain.ConnectionRecord, error) {
	if refresh {
		return s.Manager.Refresh(ctx, force)
	}
	return s.Manager.Load(ctx)
}
