package main

import (
	"fmt"

	"github.com/ritzau/electre-kernel/pkg/model"
	"github.com/ritzau/electre-kernel/pkg/web"
	"github.com/spf13/cobra"
)

func newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve kernel extraction and relation cuts over HTTP",
		Long: `Starts an HTTP server with JSON endpoints:

  GET  /api/health
  POST /api/kernel
  POST /api/cut

Requests that omit the method or cut threshold use the configured defaults.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, nil)
			if err != nil {
				return err
			}
			method, err := cfg.EliminationMethod()
			if err != nil {
				return err
			}

			server := web.NewServer(web.Defaults{
				Method:       method,
				CutThreshold: cfg.CutThreshold,
			})
			return server.Start(cmd.Context(), fmt.Sprintf(":%d", cfg.Port))
		},
	}

	cmd.Flags().IntP("port", "p", 8080, "port to listen on")
	cmd.Flags().String("method", string(model.MethodAggregate), "default cycle elimination method")
	cmd.Flags().Float64("cut-threshold", 1.0, "default cut threshold")
	return cmd
}
