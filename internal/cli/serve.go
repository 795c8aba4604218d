package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/courseflow/courseflow/internal/server"
	"github.com/courseflow/courseflow/pkg/catalog"
)

// serveCommand creates the serve command for running the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr    string
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API server",
		Long: `Run the HTTP API server.

The server exposes the prerequisite graph pipeline over HTTP:

  GET /healthz
  GET /api/courses/{id}/graph
  GET /api/courses/{id}/summary

Graph and layout results are cached using the configured backend.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if addr == "" {
				addr = c.Config.ListenAddr
			}
			return c.runServe(cmd.Context(), addr, noCache)
		},
	}

	cmd.Flags().StringVarP(&addr, "addr", "a", "", "listen address (default from config, :8080)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")

	return cmd
}

// runServe starts the server and shuts it down when ctx is cancelled.
func (c *CLI) runServe(ctx context.Context, addr string, noCache bool) error {
	runner, backend, err := c.newRunner(ctx, noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer backend.Close()

	client := catalog.NewClient(c.Config.BaseURL, backend, c.Config.CacheTTL())
	srv := server.New(runner, client, c.metadataSource(ctx, client), c.Logger)

	httpServer := &http.Server{
		Addr:              addr,
		Handler:           srv.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		c.Logger.Info("server listening", "addr", addr)
		errCh <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	c.Logger.Info("shutting down")
	if err := httpServer.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
