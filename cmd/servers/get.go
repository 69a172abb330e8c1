package servers

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mozilla-ai/mcpscout/internal/cmd"
	cmdopts "github.com/mozilla-ai/mcpscout/internal/cmd/options"
	"github.com/mozilla-ai/mcpscout/internal/printer"
	"github.com/mozilla-ai/mcpscout/internal/status"
)

// GetCmd represents the 'servers get' command.
type GetCmd struct {
	*cmd.BaseCmd
	session cmd.SessionFlags
	format  cmd.OutputFormat
	opts    cmdopts.CmdOptions
}

// NewGetCmd creates a newly configured (Cobra) command.
func NewGetCmd(baseCmd *cmd.BaseCmd, opt ...cmdopts.CmdOption) (*cobra.Command, error) {
	opts, err := cmdopts.NewOptions(opt...)
	if err != nil {
		return nil, err
	}

	c := &GetCmd{
		BaseCmd: baseCmd,
		format:  cmd.FormatText,
		opts:    opts,
	}

	cobraCmd := &cobra.Command{
		Use:   "get <server-name>",
		Short: "Connects the configured servers and shows the status and tools of one of them",
		Args:  cobra.ExactArgs(1),
		RunE:  c.run,
	}

	c.session.AddFlags(cobraCmd.Flags(), true)
	allowed := cmd.AllowedOutputFormats()
	cobraCmd.Flags().Var(&c.format, "format", "Specify the output format, one of: "+allowed.String())

	return cobraCmd, nil
}

func (c *GetCmd) run(cobraCmd *cobra.Command, args []string) error {
	name := strings.TrimSpace(args[0])
	if name == "" {
		return fmt.Errorf("server name is required and cannot be empty")
	}

	handler, err := cmd.NewHandler[status.Payload](c.format, cobraCmd.OutOrStdout(), printer.NewPayloadPrinter())
	if err != nil {
		return err
	}

	s, err := c.NewSession(c.opts.Apply(c.session.SessionConfig(cobraCmd.InOrStdin(), cobraCmd.ErrOrStderr())))
	if err != nil {
		return handler.HandleError(err)
	}

	if _, err := s.Manager.Load(cobraCmd.Context()); err != nil {
		return handler.HandleError(err)
	}

	record, err := s.Manager.Record(name)
	if err != nil {
		return handler.HandleError(err)
	}

	return handler.HandleResult(status.Payload{Servers: []status.ServerEntry{status.Entry(record)}})
}
