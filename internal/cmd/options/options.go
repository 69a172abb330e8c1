package options

import (
	"github.com/mozilla-ai/mcpscout/internal/cmd"
	"github.com/mozilla-ai/mcpscout/internal/config"
	"github.com/mozilla-ai/mcpscout/internal/inputs"
)

// CmdOption configures CmdOptions.
type CmdOption func(*CmdOptions) error

// CmdOptions overrides the components commands wire by default.
// Nil fields are filled in by cmd.BaseCmd.NewSession from flags.
type CmdOptions struct {
	ConfigLoader config.Loader
	InputStore   inputs.Store
	Prompter     inputs.Prompter
	FactoryFor   cmd.FactoryBuilder
}

// NewOptions creates CmdOptions with the given options applied in order.
func NewOptions(opt ...CmdOption) (CmdOptions, error) {
	opts := CmdOptions{}

	for _, o := range opt {
		if o == nil {
			continue
		}
		if err := o(&opts); err != nil {
			return CmdOptions{}, err
		}
	}
	return opts, nil
}

// Apply copies the configured overrides into cfg.
func (o CmdOptions) Apply(cfg cmd.SessionConfig) cmd.SessionConfig {
	if o.ConfigLoader != nil {
		cfg.Loader = o.ConfigLoader
	}
	if o.InputStore != nil {
		cfg.Store = o.InputStore
	}
	if o.Prompter != nil {
		cfg.Prompter = o.Prompter
	}
	if o.FactoryFor != nil {
		cfg.FactoryFor = o.FactoryFor
	}
	return cfg
}

func WithConfigLoader(l config.Loader) CmdOption {
	return func(o *CmdOptions) error {
		o.ConfigLoader = l
		return nil
	}
}

func WithInputStore(s inputs.Store) CmdOption {
	return func(o *CmdOptions) error {
		o.InputStore = s
		return nil
	}
}

func WithPrompter(p inputs.Prompter) CmdOption {
	return func(o *CmdOptions) error {
		o.Prompter = p
		return nil
	}
}

func WithFactoryBuilder(b cmd.FactoryBuilder) CmdOption {
	return func(o *CmdOptions) error {
		o.FactoryFor = b
		return nil
	}
}
