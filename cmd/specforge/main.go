// specforge: interactive specification questionnaire MCP server.
//
// A universal MCP server that integrates with any AI coding tool to turn
// a guided question-and-answer flow into a structured markdown
// specification document.
//
// Usage:
//
//	specforge serve     # Start MCP server (stdio transport)
//	specforge version   # Print the version
package main

import (
	"os"

	"github.com/specforge/specforge/internal/cli"
)

func main() {
	if err := cli.RootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
