package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mozilla-ai/mcpscout/cmd/inputs"
	"github.com/mozilla-ai/mcpscout/cmd/servers"
	"github.com/mozilla-ai/mcpscout/internal/cmd"
	cmdopts "github.com/mozilla-ai/mcpscout/internal/cmd/options"
	"github.com/mozilla-ai/mcpscout/internal/flags"
)

// RootCmd represents the 'mcpscout' command.
type RootCmd struct {
	*cmd.BaseCmd
}

// Execute runs the root command, exiting with a non-zero status on failure.
func Execute() {
	rootCmd, err := NewRootCmd(&cmd.BaseCmd{})
	if err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "error creating root command: %s\n", err)
		os.Exit(1)
	}

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// NewRootCmd creates the root command with every subcommand attached.
func NewRootCmd(c *cmd.BaseCmd, opt ...cmdopts.CmdOption) (*cobra.Command, error) {
	rc := &RootCmd{
		BaseCmd: c,
	}

	rootCmd := &cobra.Command{
		Use:          cmd.AppName + " <command> [args]",
		Short:        "Discover the tools offered by the MCP servers configured for a workspace.",
		Long:         rc.longDescription(),
		SilenceUsage: true,
		Version:      cmd.Version(),
	}

	// Global flags
	flags.InitFlags(rootCmd.PersistentFlags())

	fns := []func(*cmd.BaseCmd, ...cmdopts.CmdOption) (*cobra.Command, error){
		servers.NewCmd,
		inputs.NewCmd,
		NewLogsCmd,
		NewDaemonCmd,
	}

	for _, fn := range fns {
		tempCmd, err := fn(rc.BaseCmd, opt...)
		if err != nil {
			return nil, err
		}
		rootCmd.AddCommand(tempCmd)
	}

	return rootCmd, nil
}

func (c *RootCmd) longDescription() string {
	return `The 'mcpscout' CLI reads the MCP server configuration of a workspace (.vscode/mcp.json),
launches each stdio server, and reports which tools every server offers.

Input placeholders such as ${input:apiKey} are resolved from the workspace input store,
prompting for missing values.`
}
