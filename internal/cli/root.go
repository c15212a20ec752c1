// Package cli implements the specforge CLI commands.
package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
)

var (
	dataDir     string
	storageFlag string
	catalogPath string
)

// RootCmd is the top-level command.
var RootCmd = &cobra.Command{
	Use:   "specforge",
	Short: "Interactive specification questionnaire MCP server",
	Long: "specforge walks an AI assistant's user through a feature questionnaire " +
		"and renders the answers into a structured markdown specification.",
}

func init() {
	RootCmd.PersistentFlags().StringVarP(&dataDir, "data-dir", "d", "", "Data directory (default: $SPECFORGE_DATA or ~/.specforge)")
	RootCmd.PersistentFlags().StringVarP(&storageFlag, "storage", "s", "sqlite", "Session storage backend: sqlite or file")
	RootCmd.PersistentFlags().StringVarP(&catalogPath, "catalog", "c", "", "YAML file replacing the built-in question catalog")
}

func getDataDir() string {
	if dataDir != "" {
		return dataDir
	}
	if env := os.Getenv("SPECFORGE_DATA"); env != "" {
		return env
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".specforge")
}

func exitErr(msg string, err error) {
	fmt.Fprintf(os.Stderr, "error: %s: %v\n", msg, err)
	os.Exit(1)
}
