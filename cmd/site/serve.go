package main

import (
	"github.com/spf13/cobra"

	site "github.com/raha-io/site"
)

func newServeCommand(envFile *string) *cobra.Command {
	var addr string
	var backend string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the web server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := site.LoadConfig(*envFile)
			if err != nil {
				return err
			}
			if addr != "" {
				cfg.Addr = addr
			}
			if backend != "" {
				cfg.ContentBackend = backend
			}
			logger := site.NewLogger(cfg, cmd.ErrOrStderr())

			app, err := site.New(cmd.Context(), cfg, logger)
			if err != nil {
				return err
			}
			defer func() {
				if err := app.Close(); err != nil {
					logger.Error().Err(err).Msg("close")
				}
			}()
			return app.Run(cmd.Context())
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (overrides ADDR)")
	cmd.Flags().StringVar(&backend, "backend", "", "Content backend: dir, embed, sqlite or s3 (overrides CONTENT_BACKEND)")
	return cmd
}
