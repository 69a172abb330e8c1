package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/mozilla-ai/mcpscout/internal/cmd"
	cmdopts "github.com/mozilla-ai/mcpscout/internal/cmd/options"
	"github.com/mozilla-ai/mcpscout/internal/daemon"
	"github.com/mozilla-ai/mcpscout/internal/flags"
)

// DaemonCmd should be used to represent the 'daemon' command.
type DaemonCmd struct {
	*cmd.BaseCmd
	session     cmd.SessionFlags
	Addr        string
	CORSOrigins []string
	Lazy        bool
	opts        cmdopts.CmdOptions
}

// NewDaemonCmd creates a newly configured (Cobra) command.
func NewDaemonCmd(baseCmd *cmd.BaseCmd, opt ...cmdopts.CmdOption) (*cobra.Command, error) {
	opts, err := cmdopts.NewOptions(opt...)
	if err != nil {
		return nil, err
	}

	c := &DaemonCmd{
		BaseCmd: baseCmd,
		opts:    opts,
	}

	cobraCommand := &cobra.Command{
		Use:   "daemon [--addr] [--cors-origin]",
		Short: "Serves server status and tools over an HTTP API",
		Long: "Launches an `mcpscout` daemon that connects the workspace MCP servers and serves their status, " +
			"tools and the diagnostic log over an HTTP API. The daemon never prompts; " +
			"store input values beforehand with 'mcpscout inputs set'",
		Args: cobra.NoArgs,
		RunE: c.run,
	}

	c.session.AddFlags(cobraCommand.Flags(), false)

	cobraCommand.Flags().StringVar(
		&c.Addr,
		"addr",
		daemon.DefaultAPIAddr(),
		"Address for the daemon to bind",
	)

	cobraCommand.Flags().StringSliceVar(
		&c.CORSOrigins,
		"cors-origin",
		nil,
		"Origin allowed to call the API from a browser or webview (can be repeated)",
	)

	cobraCommand.Flags().BoolVar(
		&c.Lazy,
		"lazy",
		false,
		"Connect servers on the first API request instead of at startup",
	)

	return cobraCommand, nil
}

// run is configured (via NewDaemonCmd) to be called by the Cobra framework when the command is executed.
func (c *DaemonCmd) run(cobraCmd *cobra.Command, _ []string) error {
	logger := c.Logger()
	addr := strings.TrimSpace(c.Addr)

	s, err := c.NewSession(c.opts.Apply(c.session.SessionConfig(cobraCmd.InOrStdin(), cobraCmd.ErrOrStderr())))
	if err != nil {
		return err
	}

	deps, err := daemon.NewDependencies(logger, addr, s.Manager, s.Diagnostics)
	if err != nil {
		return fmt.Errorf("error configuring mcpscout daemon dependencies: %w", err)
	}

	d, err := daemon.NewDaemon(
		deps,
		daemon.WithEagerLoad(!c.Lazy),
		daemon.WithAPIOptions(
			daemon.WithCORSOrigins(c.CORSOrigins...),
			daemon.WithDocsVersion(cmd.Version()),
		),
	)
	if err != nil {
		return fmt.Errorf("failed to create mcpscout daemon instance: %w", err)
	}

	// Create the signal handling context for the application.
	daemonCtx, daemonCtxCancel := signal.NotifyContext(
		cobraCmd.Context(),
		os.Interrupt,
		syscall.SIGTERM, syscall.SIGINT,
	)
	defer daemonCtxCancel()

	runErr := make(chan error, 1)
	go func() {
		if err := d.StartAndManage(daemonCtx); err != nil && !errors.Is(err, context.Canceled) {
			runErr <- err
		}
		close(runErr)
	}()

	workspace := s.Workspace
	if workspace == "" {
		workspace = "(none)"
	}
	banner := fmt.Sprintf("mcpscout daemon running.\n\n"+
		"  Local API:\thttp://%s/api/v1\n"+
		"  OpenAPI UI:\thttp://%s/docs\n"+
		"  Workspace:\t%s\n",
		addr, addr, workspace)
	if flags.LogPath != "" {
		banner += fmt.Sprintf("  Log file:\t%s => (%s)\n", flags.LogPath, cmd.LogLevel())
	}
	banner += "\nPress Ctrl+C to stop.\n\n"
	_, _ = fmt.Fprint(cobraCmd.OutOrStdout(), banner)

	select {
	case <-daemonCtx.Done():
		logger.Info("Shutting down daemon")
		return <-runErr // Wait for cleanup and deferred logging.
	case err := <-runErr:
		if err != nil {
			logger.Error("daemon exited with error", "error", err)
		}
		return err
	}
}
