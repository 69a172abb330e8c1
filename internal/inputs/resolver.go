package inputs

import (
	"context"
	"fmt"
	"maps"
	"reflect"
	"regexp"
	"slices"
	"sync"

	"github.com/hashicorp/go-hclog"

	"github.com/mozilla-ai/mcpscout/internal/domain"
)

// placeholderPattern matches an argument that is exactly one input placeholder.
var placeholderPattern = regexp.MustCompile(`^\$\{input:([^}]+)\}$`)

// PlaceholderID returns the input id when value is exactly one placeholder of the form ${input:<id>}.
// Placeholders embedded in a longer string are not recognized.
func PlaceholderID(value string) (string, bool) {
	m := placeholderPattern.FindStringSubmatch(value)
	if m == nil {
		return "", false
	}
	return m[1], true
}

// Resolver substitutes input placeholders with values from a Store, prompting for missing values.
// NewResolver should be used to create instances of Resolver.
type Resolver struct {
	logger      hclog.Logger
	store       Store
	prompter    Prompter
	interactive bool
}

// NewResolver returns a Resolver backed by store that asks prompter for missing values.
func NewResolver(logger hclog.Logger, store Store, prompter Prompter) (*Resolver, error) {
	if logger == nil || reflect.ValueOf(logger).IsNil() {
		return nil, fmt.Errorf("logger cannot be nil")
	}
	if store == nil || reflect.ValueOf(store).IsNil() {
		return nil, fmt.Errorf("store cannot be nil")
	}
	if prompter == nil {
		return nil, fmt.Errorf("prompter cannot be nil")
	}

	interactive := true
	if p, ok := prompter.(interactivePrompter); ok {
		interactive = p.Interactive()
	}

	return &Resolver{
		logger:      logger.Named("inputs"),
		store:       store,
		prompter:    prompter,
		interactive: interactive,
	}, nil
}

// NewPass starts a resolution pass.
// When force is true stored values are ignored and every input referenced during the pass is prompted for,
// but each input is prompted for at most once per pass.
// Without an interactive prompter a forced pass still reads stored values, since nobody can answer a prompt.
func (r *Resolver) NewPass(force bool) *Pass {
	if force && !r.interactive {
		r.logger.Debug("Forced pass without an interactive prompter, using stored input values")
		force = false
	}

	return &Pass{
		resolver: r,
		force:    force,
		resolved: map[string]string{},
	}
}

// ResolveArgs is a shorthand for resolving args in a pass of its own.
func (r *Resolver) ResolveArgs(
	ctx context.Context,
	args []string,
	defs []domain.InputDefinition,
	force bool,
) []string {
	return r.NewPass(force).ResolveArgs(ctx, args, defs)
}

// Pass resolves placeholders for one load or refresh of the server set.
// It is safe for concurrent use.
type Pass struct {
	resolver *Resolver
	force    bool

	mu       sync.Mutex
	resolved map[string]string
}

// ResolveArgs returns a copy of args with every placeholder argument replaced by its value.
// Arguments that are not exactly one placeholder pass through unchanged.
func (p *Pass) ResolveArgs(ctx context.Context, args []string, defs []domain.InputDefinition) []string {
	out := make([]string, 0, len(args))
	for _, arg := range args {
		id, ok := PlaceholderID(arg)
		if !ok {
			out = append(out, arg)
			continue
		}
		out = append(out, p.value(ctx, id, defs))
	}

	return out
}

// ResolveEnv returns a copy of env with every placeholder value replaced.
// Keys are visited in sorted order so prompts appear in a stable order.
func (p *Pass) ResolveEnv(ctx context.Context, env map[string]string, defs []domain.InputDefinition) map[string]string {
	if env == nil {
		return nil
	}

	out := make(map[string]string, len(env))
	for _, k := range slices.Sorted(maps.Keys(env)) {
		v := env[k]
		if id, ok := PlaceholderID(v); ok {
			v = p.value(ctx, id, defs)
		}
		out[k] = v
	}

	return out
}

// value resolves a single input id. It never fails: cancellation and errors resolve to an empty string.
func (p *Pass) value(ctx context.Context, id string, defs []domain.InputDefinition) string {
	p.mu.Lock()
	defer p.mu.Unlock()

	if v, ok := p.resolved[id]; ok {
		return v
	}

	r := p.resolver
	key := Key(id)
	logger := r.logger.With("input", id)

	if !p.force {
		v, ok, err := r.store.Get(key)
		if err != nil {
			logger.Warn("Could not read stored input value", "error", err)
		} else if ok && v != "" {
			p.resolved[id] = v
			return v
		}
	}

	v, ok, err := r.prompter.Prompt(ctx, PromptFor(id, defs))
	switch {
	case err != nil:
		logger.Warn("Prompt for input failed", "error", err)
		v = ""
	case !ok:
		logger.Info("Prompt for input cancelled")
		v = ""
	case v != "":
		if err := r.store.Set(key, v); err != nil {
			logger.Warn("Could not store input value", "error", err)
		}
	}

	p.resolved[id] = v
	return v
}

// PromptFor builds the prompt for id, using its definition when one exists.
func PromptFor(id string, defs []domain.InputDefinition) PromptRequest {
	req := PromptRequest{
		ID:             id,
		Title:          "Value for " + id,
		Prompt:         "Enter value for " + id,
		IgnoreFocusOut: true,
	}

	i := slices.IndexFunc(defs, func(d domain.InputDefinition) bool { return d.ID == id })
	if i < 0 {
		return req
	}

	if defs[i].Title != "" {
		req.Title = defs[i].Title
	}
	if defs[i].Description != "" {
		req.Prompt = defs[i].Description
	}

	return req
}
