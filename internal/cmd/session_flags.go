package cmd

import (
	"io"
	"time"

	"github.com/spf13/pflag"

	"github.com/mozilla-ai/mcpscout/internal/flags"
	"github.com/mozilla-ai/mcpscout/internal/inputs"
)

const (
	FlagNameConnectTimeout = "connect-timeout"
	FlagNameNoStore        = "no-store"
	FlagNameNoPrompt       = "no-prompt"
)

// SessionFlags are the per-command flags controlling how servers are connected.
type SessionFlags struct {
	ConnectTimeout time.Duration
	NoStore        bool
	NoPrompt       bool
}

// AddFlags registers the session flags on fs.
// interactive controls whether the prompt flag is offered at all.
func (f *SessionFlags) AddFlags(fs *pflag.FlagSet, interactive bool) {
	fs.DurationVar(
		&f.ConnectTimeout,
		FlagNameConnectTimeout,
		0,
		"Maximum time to spawn a server and list its tools (default 30s)",
	)
	fs.BoolVar(
		&f.NoStore,
		FlagNameNoStore,
		false,
		"Keep input values in memory only, without reading or writing the workspace input store",
	)
	if interactive {
		fs.BoolVar(
			&f.NoPrompt,
			FlagNameNoPrompt,
			false,
			"Never prompt for input values, unresolved inputs become empty strings",
		)
	} else {
		f.NoPrompt = true
	}
}

// SessionConfig builds the session configuration from global and per-command flags.
// Prompts read from in and are written to out.
func (f *SessionFlags) SessionConfig(in io.Reader, out io.Writer) SessionConfig {
	var prompter inputs.Prompter = inputs.NonInteractivePrompter{}
	if !f.NoPrompt {
		prompter = inputs.NewLinePrompter(in, out)
	}

	return SessionConfig{
		Workspace:      flags.Workspace,
		ConfigFile:     flags.ConfigFile,
		Client:         flags.Client,
		ConnectTimeout: f.ConnectTimeout,
		PersistInputs:  !f.NoStore,
		Prompter:       prompter,
	}
}
