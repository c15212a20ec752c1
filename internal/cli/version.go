package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/specforge/specforge/internal/server"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the specforge version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("specforge v%s\n", server.Version)
	},
}

func init() {
	RootCmd.AddCommand(versionCmd)
}
