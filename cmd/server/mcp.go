package main

import (
	"fmt"
	"os"

	"github.com/mark3labs/mcp-go/server"
	"github.com/spf13/cobra"

	"github.com/sakif/ideaforge/internal/mcptools"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Serve the idea tools over MCP (stdio)",
	RunE: func(cmd *cobra.Command, args []string) error {
		// stdout carries the MCP protocol, so logs go to stderr.
		a, err := newApp(cmd.Context(), os.Stderr)
		if err != nil {
			return err
		}
		defer a.close()

		if err := server.ServeStdio(mcptools.NewServer(a.service(), Version)); err != nil {
			return fmt.Errorf("mcp server: %w", err)
		}
		return nil
	},
}
