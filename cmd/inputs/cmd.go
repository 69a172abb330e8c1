package inputs

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mozilla-ai/mcpscout/internal/cmd"
	cmdopts "github.com/mozilla-ai/mcpscout/internal/cmd/options"
	"github.com/mozilla-ai/mcpscout/internal/flags"
	"github.com/mozilla-ai/mcpscout/internal/transport"
)

// NewCmd creates the 'inputs' command group.
func NewCmd(baseCmd *cmd.BaseCmd, opt ...cmdopts.CmdOption) (*cobra.Command, error) {
	cobraCmd := &cobra.Command{
		Use:   "inputs",
		Short: "Manages the stored values of workspace inputs",
		Long: "Manages the values stored for ${input:id} placeholders in the workspace configuration. " +
			"Values are kept per workspace and never printed",
	}

	fns := []func(baseCmd *cmd.BaseCmd, opt ...cmdopts.CmdOption) (*cobra.Command, error){
		NewListCmd,
		NewSetCmd,
		NewClearCmd,
	}

	for _, fn := range fns {
		tempCmd, err := fn(baseCmd, opt...)
		if err != nil {
			return nil, err
		}
		cobraCmd.AddCommand(tempCmd)
	}

	return cobraCmd, nil
}

// openSession opens the workspace and its durable input store without any MCP client.
func openSession(baseCmd *cmd.BaseCmd, opts cmdopts.CmdOptions) (*cmd.Session, error) {
	s, err := baseCmd.NewSession(opts.Apply(cmd.SessionConfig{
		Workspace:     flags.Workspace,
		ConfigFile:    flags.ConfigFile,
		Client:        transport.ClientNone,
		PersistInputs: true,
	}))
	if err != nil {
		return nil, err
	}

	if s.Workspace == "" {
		return nil, fmt.Errorf("no workspace is open, use --%s to select one", flags.FlagNameWorkspace)
	}

	return s, nil
}
