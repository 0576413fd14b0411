package cli

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/askonen/zoomview/internal/httpapi"
	"github.com/askonen/zoomview/pkg/httputil"
	"github.com/askonen/zoomview/pkg/observability"
	"github.com/askonen/zoomview/pkg/probe"
)

// shutdownTimeout bounds how long in-flight requests may drain.
const shutdownTimeout = 10 * time.Second

// logViewerHooks mirrors viewer lifecycle events into the logger.
type logViewerHooks struct {
	logger *log.Logger
}

func (h logViewerHooks) OnOpen(_ context.Context, viewerID, url string) {
	h.logger.Info("viewer opened", "id", viewerID, "src", url)
}

func (h logViewerHooks) OnClose(_ context.Context, viewerID string) {
	h.logger.Info("viewer closed", "id", viewerID)
}

func (h logViewerHooks) OnRejected(_ context.Context, viewerID, op string) {
	h.logger.Debug("transition rejected", "id", viewerID, "op", op)
}

// serveCommand creates the serve command hosting viewers over HTTP.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr    string
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve viewers over an HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			if addr == "" {
				addr = c.Config.Serve.Addr
			}

			backend, err := c.newCache(cmd.Context(), noCache)
			if err != nil {
				return err
			}
			defer backend.Close()

			observability.SetViewerHooks(logViewerHooks{logger: c.Logger})
			defer observability.Reset()

			server := httpapi.NewServer(
				httpapi.WithLogger(c.Logger),
				httpapi.WithProber(probe.New(backend, httputil.NewFetcher(nil), c.Logger)),
			)

			httpServer := &http.Server{
				Addr:              addr,
				Handler:           server.Handler(),
				ReadHeaderTimeout: 5 * time.Second,
			}

			errCh := make(chan error, 1)
			go func() {
				c.Logger.Info("listening", "addr", addr)
				errCh <- httpServer.ListenAndServe()
			}()

			select {
			case err := <-errCh:
				return err
			case <-cmd.Context().Done():
			}

			c.Logger.Info("shutting down")
			ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			if err := httpServer.Shutdown(ctx); err != nil {
				return err
			}
			if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return cmd.Context().Err()
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (overrides config)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the dimension cache")
	return cmd
}
