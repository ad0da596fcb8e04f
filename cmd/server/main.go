// Command server runs the ideaforge validation-pipeline API.
//
// Usage:
//
//	server serve     # HTTP API
//	server migrate   # apply the schema and exit
//	server mcp       # MCP tool server over stdio
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// Version is set at build time with -ldflags "-X main.Version=...".
var Version = "dev"

var configPath string

var rootCmd = &cobra.Command{
	Use:   "server",
	Short: "Idea validation pipeline API",
	Long: `Stores project ideas and the artifacts an assistant produces for them:
scores, improvements, features, tech stack, kanban tickets and a user flow.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "path to a YAML config file")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(mcpCmd)
	rootCmd.AddCommand(versionCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
