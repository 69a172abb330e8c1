package inputs

import (
	"slices"

	"github.com/spf13/cobra"

	"github.com/mozilla-ai/mcpscout/internal/cmd"
	cmdopts "github.com/mozilla-ai/mcpscout/internal/cmd/options"
	"github.com/mozilla-ai/mcpscout/internal/domain"
	internalinputs "github.com/mozilla-ai/mcpscout/internal/inputs"
	"github.com/mozilla-ai/mcpscout/internal/printer"
)

// ListCmd represents the 'inputs list' command.
type ListCmd struct {
	*cmd.BaseCmd
	format cmd.OutputFormat
	opts   cmdopts.CmdOptions
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
		Short: "Lists declared inputs and whether a value is stored for each",
		Args:  cobra.NoArgs,
		RunE:  c.run,
	}

	allowed := cmd.AllowedOutputFormats()
	cobraCmd.Flags().Var(&c.format, "format", "Specify the output format, one of: "+allowed.String())

	return cobraCmd, nil
}

func (c *ListCmd) run(cobraCmd *cobra.Command, _ []string) error {
	handler, err := cmd.NewHandler[printer.InputEntry](c.format, cobraCmd.OutOrStdout(), printer.NewInputPrinter())
	if err != nil {
		return err
	}

	s, err := openSession(c.BaseCmd, c.opts)
	if err != nil {
		return handler.HandleError(err)
	}

	stored, err := s.Store.List()
	if err != nil {
		return handler.HandleError(err)
	}

	return handler.HandleResults(entries(s.Config().ListInputs(), stored)...)
}

// entries merges declared inputs, in declaration order, with ids that only have a stored value, sorted by id.
func entries(defs []domain.InputDefinition, stored map[string]string) []printer.InputEntry {
	storedIDs := make(map[string]struct{}, len(stored))
	for key := range stored {
		if id, ok := internalinputs.IDFromKey(key); ok {
			storedIDs[id] = struct{}{}
		}
	}

	out := make([]printer.InputEntry, 0, len(defs)+len(storedIDs))
	declared := make(map[string]struct{}, len(defs))
	for _, def := range defs {
		if _, seen := declared[def.ID]; seen {
			continue
		}
		declared[def.ID] = struct{}{}

		_, ok := storedIDs[def.ID]
		out = append(out, printer.InputEntry{
			ID:          def.ID,
			Title:       def.Title,
			Description: def.Description,
			Declared:    true,
			Stored:      ok,
		})
	}

	extra := make([]string, 0, len(storedIDs))
	for id := range storedIDs {
		if _, ok := declared[id]; !ok {
			extra = append(extra, id)
		}
	}
	slices.Sort(extra)

	for _, id := range extra {
		out = append(out, printer.InputEntry{ID: id, Stored: true})
	}

	return out
}
