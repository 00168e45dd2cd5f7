package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/spf13/cobra"

	"github.com/vitalvas/swagdoc/config"
	"github.com/vitalvas/swagdoc/endpoint"
	"github.com/vitalvas/swagdoc/examples/petstore"
)

const shutdownTimeout = 10 * time.Second

func (c *CLI) serveCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the demo API with its documents and viewer",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			return c.serve(ctx, cfg)
		},
	}
}

func (c *CLI) serve(ctx context.Context, cfg *config.Config) error {
	log := c.logger(cfg)

	srv, cleanup, err := newServer(cfg, log)
	if err != nil {
		return err
	}
	defer cleanup()

	errCh := make(chan error, 1)
	go func() {
		log.Info("listening", "addr", cfg.Server.Addr, "scopes", cfg.Server.Scopes)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	log.Info("shutting down")
	return srv.Shutdown(shutdownCtx)
}

// newServer wires the demo API and the documentation endpoint. The
// returned cleanup releases the custom viewer archive.
func newServer(cfg *config.Config, log *slog.Logger) (*http.Server, func(), error) {
	ep := endpoint.New(newBuilder(cfg, log), endpoint.Options{
		Scopes:         cfg.Server.Scopes,
		DisableUI:      cfg.Swagger.DisableUI,
		MaxArchiveSize: cfg.Swagger.MaxArchiveSizeBytes(),
		Logger:         log,
	})

	cleanup := func() {}
	if path := cfg.Swagger.UIArchive; path != "" {
		f, err := openArchive(ep, path)
		if err != nil {
			return nil, nil, err
		}
		cleanup = func() { f.Close() }
	}

	if err := ep.Init(); err != nil {
		cleanup()
		return nil, nil, fmt.Errorf("build documents: %w", err)
	}

	r := mux.NewRouter()
	r.Use(ep.Middleware()...)
	petstore.NewStore().Register(r)
	ep.Register(r)

	return &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           r,
		ReadTimeout:       cfg.Server.ReadTimeoutDuration(),
		ReadHeaderTimeout: cfg.Server.ReadTimeoutDuration(),
	}, cleanup, nil
}

func openArchive(ep *endpoint.Endpoint, path string) (*os.File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open viewer archive: %w", err)
	}

	stat, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("open viewer archive: %w", err)
	}

	if err := ep.SetCustomArchive(f, stat.Size()); err != nil {
		f.Close()
		return nil, fmt.Errorf("load viewer archive %s: %w", path, err)
	}
	return f, nil
}
