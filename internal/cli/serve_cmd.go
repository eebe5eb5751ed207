package cli

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alexanderramin/timesheet/internal/httpapi"
	"github.com/spf13/cobra"
)

const shutdownTimeout = 5 * time.Second

func newServeCmd(app *App) *cobra.Command {
	addr := app.HTTPAddr

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the week sheets over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			api := &httpapi.Server{
				Sheets:  app.Sheets,
				Timers:  app.Timers,
				Submit:  app.Submit,
				Catalog: app.Catalog,
				Now:     app.now,
			}
			ln, err := net.Listen("tcp", addr)
			if err != nil {
				return err
			}
			printf(cmd, "Listening on http://%s\n", ln.Addr())
			return serveHTTP(ctx, ln, api.Handler())
		},
	}
	cmd.Flags().StringVar(&addr, "addr", addr, "Listen address")

	return cmd
}

// serveHTTP serves until ctx is done, then drains in-flight requests.
func serveHTTP(ctx context.Context, ln net.Listener, handler http.Handler) error {
	srv := &http.Server{
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() { errCh <- srv.Serve(ln) }()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	slog.Info("shutting down http server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
