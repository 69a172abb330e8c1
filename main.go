package main

import (
	"github.com/mozilla-ai/mcpscout/cmd"
)

func main() {
	cmd.Execute()
}
