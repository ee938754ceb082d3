package cli

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/mlindner/pkgstats/internal/server"
)

// serveCommand creates the serve command exposing statistics over HTTP.
func (c *CLI) serveCommand() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve package statistics as a JSON API",
		Long: `Serve package statistics over HTTP.

Endpoints:
  GET /healthz              liveness probe
  GET /v1/stats/{arch}?k=N  top-K packages for an architecture

Results are cached per index URL using the configured cache backend, so
repeated requests for the same architecture don't re-download the index.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			runner := c.newRunner(ctx, false)
			defer runner.Cache.Close()

			srv := &http.Server{
				Addr:              addr,
				Handler:           server.New(runner, c.Config, c.Logger),
				ReadHeaderTimeout: 10 * time.Second,
			}

			// Shut down cleanly when the signal context fires.
			go func() {
				<-ctx.Done()
				shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				_ = srv.Shutdown(shutdownCtx)
			}()

			c.Logger.Info("serving package statistics", "addr", addr)
			if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&addr, "addr", ":8080", "listen address")

	return cmd
}
