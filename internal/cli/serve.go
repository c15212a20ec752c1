package cli

import (
	"fmt"
	"log"
	"path/filepath"

	mcpserver "github.com/mark3labs/mcp-go/server"
	"github.com/spf13/cobra"

	"github.com/specforge/specforge/internal/catalog"
	"github.com/specforge/specforge/internal/server"
	"github.com/specforge/specforge/internal/session"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the MCP server (stdio transport)",
	Run: func(cmd *cobra.Command, args []string) {
		if err := runServe(); err != nil {
			exitErr("serve", err)
		}
	},
}

func init() {
	RootCmd.AddCommand(serveCmd)
}

func runServe() error {
	base := catalog.Default()
	if catalogPath != "" {
		loaded, err := catalog.Load(catalogPath)
		if err != nil {
			return fmt.Errorf("loading catalog: %w", err)
		}
		base = loaded
		// Stderr only — stdout is the MCP transport.
		log.Printf("loaded %d questions from %s", base.Len(), catalogPath)
	}

	repo, err := openRepository()
	if err != nil {
		return fmt.Errorf("opening session storage: %w", err)
	}
	defer func() {
		if err := repo.Close(); err != nil {
			log.Printf("WARNING: closing session storage: %v", err)
		}
	}()

	specDir := filepath.Join(getDataDir(), "specs")
	s := server.New(repo, base, specDir)
	return mcpserver.ServeStdio(s)
}

// openRepository resolves the session storage backend from the flags.
func openRepository() (session.Repository, error) {
	switch storageFlag {
	case "sqlite":
		return session.NewSQLStore(filepath.Join(getDataDir(), "sessions.db"))
	case "file":
		return session.NewFileStore(filepath.Join(getDataDir(), "sessions"))
	default:
		return nil, fmt.Errorf("unknown storage backend %q: must be sqlite or file", storageFlag)
	}
}
