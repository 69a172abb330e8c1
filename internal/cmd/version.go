package cmd

// AppName is the name used for the CLI, its logger and its MCP client identity.
const AppName = "mcpscout"

var version = "dev" // Set at build time using -ldflags

// Version returns the application version.
func Version() string {
	return version
}
