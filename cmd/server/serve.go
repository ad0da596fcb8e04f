package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/sakif/ideaforge/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd.Context(), os.Stdout)
		if err != nil {
			return err
		}
		defer a.close()

		srv := server.New(a.cfg.Server, a.service(), a.metrics, a.logger)
		return srv.Start(cmd.Context())
	},
}
