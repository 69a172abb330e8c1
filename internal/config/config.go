package config

import (
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/hashicorp/go-hclog"
	"github.com/tidwall/gjson"

	"github.com/mozilla-ai/mcpscout/internal/domain"
)

const (
	// DefaultRelativePath is where the configuration document lives inside a workspace root.
	DefaultRelativePath = ".vscode/mcp.json"

	keyInputs        = "inputs"
	keyServers       = "servers"
	keyLegacyServers = "mcpServers"
)

// DefaultLoader reads a JSON configuration document from a fixed location under the workspace root.
// NewDefaultLoader should be used to create instances of DefaultLoader.
type DefaultLoader struct {
	logger hclog.Logger
	path   string
}

// NewDefaultLoader creates a loader for the document at path.
// Relative paths are resolved against the root passed to Load, absolute paths are used as-is.
func NewDefaultLoader(logger hclog.Logger, path string) (*DefaultLoader, error) {
	if logger == nil || reflect.ValueOf(logger).IsNil() {
		return nil, fmt.Errorf("logger cannot be nil")
	}

	path = strings.TrimSpace(path)
	if path == "" {
		path = DefaultRelativePath
	}

	return &DefaultLoader{
		logger: logger.Named("config"),
		path:   path,
	}, nil
}

// Load reads and normalizes the configuration for root.
// An empty root, a missing file or a malformed document all yield an empty Config.
func (d *DefaultLoader) Load(root string) *Config {
	root = strings.TrimSpace(root)
	if root == "" {
		d.logger.Debug("No workspace root open, no MCP servers to load")
		return Empty()
	}

	path := d.path
	if !filepath.IsAbs(path) {
		path = filepath.Join(root, filepath.FromSlash(path))
	}

	data, err := os.ReadFile(path)
	if err != nil {
		d.logger.Info("No MCP config found or unreadable", "path", path, "error", err)
		return Empty()
	}

	cfg, err := Parse(data, d.logger)
	if err != nil {
		d.logger.Info("Invalid MCP config", "path", path, "error", err)
		return Empty()
	}
	cfg.Path = path

	d.logger.Info(
		"Loaded MCP config",
		"path", path,
		"servers", len(cfg.Servers),
		"inputs", len(cfg.Inputs),
	)

	return cfg
}

// Parse normalizes a configuration document.
// The server collection may be an object keyed by server name, an array of objects,
// or either of those under the legacy 'mcpServers' key.
// Declaration order is preserved for servers and inputs.
func Parse(data []byte, logger hclog.Logger) (*Config, error) {
	if logger == nil || reflect.ValueOf(logger).IsNil() {
		logger = hclog.NewNullLogger()
	}

	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("%w: not valid JSON", ErrInvalidDocument)
	}

	if err := validateShape(data); err != nil {
		return nil, err
	}

	doc := gjson.ParseBytes(data)

	cfg := Empty()
	cfg.Inputs = parseInputs(doc.Get(keyInputs), logger)
	cfg.Servers = parseServers(serverCollection(doc), logger)

	return cfg, nil
}

// serverCollection picks the server collection, preferring 'servers' over the legacy key.
func serverCollection(doc gjson.Result) gjson.Result {
	if servers := doc.Get(keyServers); servers.IsArray() || servers.IsObject() {
		return servers
	}

	return doc.Get(keyLegacyServers)
}

func parseInputs(raw gjson.Result, logger hclog.Logger) []domain.InputDefinition {
	inputs := []domain.InputDefinition{}
	if !raw.IsArray() {
		return inputs
	}

	seen := map[string]struct{}{}
	raw.ForEach(func(_, v gjson.Result) bool {
		id := strings.TrimSpace(v.Get("id").String())
		if id == "" {
			logger.Warn("Ignoring input definition without id", "input", v.Raw)
			return true
		}
		if _, ok := seen[id]; ok {
			logger.Warn("Ignoring duplicate input definition", "id", id)
			return true
		}
		seen[id] = struct{}{}

		inputs = append(inputs, domain.InputDefinition{
			ID:          id,
			Title:       v.Get("title").String(),
			Description: v.Get("description").String(),
		})
		return true
	})

	return inputs
}

func parseServers(raw gjson.Result, logger hclog.Logger) []domain.ServerDescriptor {
	servers := []domain.ServerDescriptor{}
	seen := map[string]struct{}{}

	add := func(d domain.ServerDescriptor) {
		if _, ok := seen[d.Name]; ok {
			logger.Warn("Ignoring duplicate MCP server", "name", d.Name)
			return
		}
		seen[d.Name] = struct{}{}
		servers = append(servers, d)
	}

	switch {
	case raw.IsObject():
		raw.ForEach(func(k, v gjson.Result) bool {
			add(parseServer(k.String(), v, logger))
			return true
		})
	case raw.IsArray():
		i := 0
		raw.ForEach(func(_, v gjson.Result) bool {
			i++
			name := strings.TrimSpace(v.Get("name").String())
			if name == "" {
				name = strings.TrimSpace(v.Get("id").String())
			}
			if name == "" {
				name = fmt.Sprintf("server-%d", i)
			}
			add(parseServer(name, v, logger))
			return true
		})
	}

	return servers
}

// parseServer builds a descriptor from one server entry.
// Entries without a command are kept so that the failure can be reported against the server.
func parseServer(name string, v gjson.Result, logger hclog.Logger) domain.ServerDescriptor {
	serverType := domain.ServerType(strings.TrimSpace(v.Get("type").String()))
	if serverType == "" {
		serverType = domain.ServerTypeStdio
	}

	d := domain.ServerDescriptor{
		Name:    name,
		Type:    serverType,
		Command: strings.TrimSpace(v.Get("command").String()),
		Args:    []string{},
	}

	if args := v.Get("args"); args.IsArray() {
		args.ForEach(func(_, a gjson.Result) bool {
			if a.IsObject() || a.IsArray() || a.Type == gjson.Null {
				logger.Warn("Ignoring non-scalar argument", "server", name, "arg", a.Raw)
				return true
			}
			d.Args = append(d.Args, a.String())
			return true
		})
	}

	if env := v.Get("env"); env.IsObject() {
		d.Env = map[string]string{}
		env.ForEach(func(k, val gjson.Result) bool {
			if val.IsObject() || val.IsArray() {
				logger.Warn("Ignoring non-scalar environment value", "server", name, "key", k.String())
				return true
			}
			d.Env[k.String()] = val.String()
			return true
		})
	}

	return d
}
