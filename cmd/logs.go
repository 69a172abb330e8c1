package cmd

import (
	"github.com/spf13/cobra"

	"github.com/mozilla-ai/mcpscout/internal/cmd"
	cmdopts "github.com/mozilla-ai/mcpscout/internal/cmd/options"
	"github.com/mozilla-ai/mcpscout/internal/printer"
)

// LogsCmd represents the 'logs' command.
type LogsCmd struct {
	*cmd.BaseCmd
	session cmd.SessionFlags
	format  cmd.OutputFormat
	noLoad  bool
	opts    cmdopts.CmdOptions
}

// NewLogsCmd creates a newly configured (Cobra) command.
func NewLogsCmd(baseCmd *cmd.BaseCmd, opt ...cmdopts.CmdOption) (*cobra.Command, error) {
	opts, err := cmdopts.NewOptions(opt...)
	if err != nil {
		return nil, err
	}

	c := &LogsCmd{
		BaseCmd: baseCmd,
		format:  cmd.FormatText,
		opts:    opts,
	}

	cobraCmd := &cobra.Command{
		Use:   "logs",
		Short: "Connects the configured servers and prints the diagnostic log",
		Long: "Connects the configured servers, then prints the rolling diagnostic log " +
			"collected while doing so, oldest line first",
		Args: cobra.NoArgs,
		RunE: c.run,
	}

	c.session.AddFlags(cobraCmd.Flags(), true)
	cobraCmd.Flags().BoolVar(&c.noLoad, "no-load", false, "Print the log without connecting any server")
	allowed := cmd.AllowedOutputFormats()
	cobraCmd.Flags().Var(&c.format, "format", "Specify the output format, one of: "+allowed.String())

	return cobraCmd, nil
}

func (c *LogsCmd) run(cobraCmd *cobra.Command, _ []string) error {
	handler, err := cmd.NewHandler[string](c.format, cobraCmd.OutOrStdout(), &printer.LinePrinter{})
	if err != nil {
		return err
	}

	s, err := c.NewSession(c.opts.Apply(c.session.SessionConfig(cobraCmd.InOrStdin(), cobraCmd.ErrOrStderr())))
	if err != nil {
		return handler.HandleError(err)
	}

	if !c.noLoad {
		if _, err := s.Manager.Load(cobraCmd.Context()); err != nil {
			return handler.HandleError(err)
		}
	}

	return handler.HandleResults(s.Diagnostics.Snapshot()...)
}
