package flags

import (
	"os"
	"strings"

	"github.com/spf13/pflag"
)

const (
	// Env vars
	EnvVarWorkspace  = "MCPSCOUT_WORKSPACE"
	EnvVarConfigFile = "MCPSCOUT_CONFIG_FILE"
	EnvVarLogPath    = "MCPSCOUT_LOG_PATH"
	EnvVarLogLevel   = "MCPSCOUT_LOG_LEVEL"
	EnvVarClient     = "MCPSCOUT_CLIENT"

	// Defaults
	DefaultWorkspace  = "."
	DefaultConfigFile = ".vscode/mcp.json"
	DefaultClient     = "mcp-go"
	DefaultLogPath    = ""
	DefaultLogLevel   = "info"

	// Flag names
	FlagNameWorkspace  = "workspace"
	FlagNameConfigFile = "config-file"
	FlagNameLogPath    = "log-path"
	FlagNameLogLevel   = "log-level"
	FlagNameClient     = "client"
)

var (
	// Workspace is the single configuration root. An explicitly empty value means no workspace is open.
	Workspace string

	// ConfigFile is the configuration document path, relative paths are resolved against Workspace.
	ConfigFile string

	LogPath  string
	LogLevel string

	// Client names the MCP client implementation used to connect servers.
	Client string
)

func InitFlags(fs *pflag.FlagSet) {
	initWorkspace(fs)
	initConfigFile(fs)
	initLogger(fs)
	initClient(fs)
}

func initWorkspace(fs *pflag.FlagSet) {
	if Workspace == "" {
		if env, ok := os.LookupEnv(EnvVarWorkspace); ok {
			Workspace = strings.TrimSpace(env)
		} else {
			Workspace = DefaultWorkspace
		}
	}
	fs.StringVar(&Workspace, FlagNameWorkspace, Workspace, "workspace root containing the MCP configuration")
}

func initConfigFile(fs *pflag.FlagSet) {
	if ConfigFile == "" {
		if env := strings.TrimSpace(os.Getenv(EnvVarConfigFile)); env != "" {
			ConfigFile = env
		} else {
			ConfigFile = DefaultConfigFile
		}
	}
	fs.StringVar(&ConfigFile, FlagNameConfigFile, ConfigFile, "path to MCP server config file")
}

func initLogger(fs *pflag.FlagSet) {
	if LogPath == "" {
		if env := strings.TrimSpace(os.Getenv(EnvVarLogPath)); env != "" {
			LogPath = env
		} else {
			LogPath = DefaultLogPath
		}
	}
	fs.StringVar(&LogPath, FlagNameLogPath, LogPath, "path to generated log file")

	if LogLevel == "" {
		if env := strings.TrimSpace(os.Getenv(EnvVarLogLevel)); env != "" {
			LogLevel = strings.ToLower(env)
		} else {
			LogLevel = DefaultLogLevel
		}
	}
	fs.StringVar(&LogLevel, FlagNameLogLevel, LogLevel, "log level for mcpscout logs")
}

func initClient(fs *pflag.FlagSet) {
	if Client == "" {
		if env := strings.TrimSpace(os.Getenv(EnvVarClient)); env != "" {
			Client = strings.ToLower(env)
		} else {
			Client = DefaultClient
		}
	}
	fs.StringVar(&Client, FlagNameClient, Client, "MCP client implementation (mcp-go, go-sdk, none)")
}
