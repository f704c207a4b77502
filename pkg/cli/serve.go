package cli

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"

	"github.com/m-mizutani/depdiff/pkg/cli/config"
	controller "github.com/m-mizutani/depdiff/pkg/controller/http"
	"github.com/m-mizutani/depdiff/pkg/infra/jobstore"
	"github.com/m-mizutani/depdiff/pkg/usecase"
)

func cmdServe() *cli.Command {
	var (
		serverCfg config.Server
		deps      collaborators
	)

	flags := append(serverCfg.Flags(), deps.flags()...)

	return &cli.Command{
		Name:    "serve",
		Aliases: []string{"s"},
		Usage:   "Start HTTP server",
		Flags:   flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			logger := ctxlog.From(ctx)

			logger.Info("Starting depdiff server",
				slog.String("addr", serverCfg.Addr),
			)

			// Create use cases
			scanUC, err := deps.newScanUseCase(ctx)
			if err != nil {
				return err
			}
			jobUC := usecase.NewJobs(scanUC, jobstore.NewMemory())

			// Create HTTP server with options
			server, err := controller.NewServer(
				ctx,
				scanUC,
				jobUC,
				controller.WithAddr(serverCfg.Addr),
				controller.WithMaxBodyBytes(serverCfg.MaxBodyBytes),
			)
			if err != nil {
				return goerr.Wrap(err, "failed to create HTTP server")
			}

			// Start server in goroutine
			go func() {
				logger.Info("HTTP server starting", slog.String("addr", serverCfg.Addr))
				if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					logger.Error("HTTP server error", slog.Any("error", err))
				}
			}()

			// Wait for interrupt signal
			sigChan := make(chan os.Signal, 1)
			signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

			select {
			case <-ctx.Done():
				logger.Info("Context cancelled, shutting down...")
			case sig := <-sigChan:
				logger.Info("Signal received, shutting down...", slog.Any("signal", sig))
			}

			// Graceful shutdown
			shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 10*time.Second)
			defer cancel()

			if err := server.Shutdown(shutdownCtx); err != nil {
				return goerr.Wrap(err, "failed to shutdown server gracefully")
			}

			logger.Info("Server shutdown complete")
			return nil
		},
	}
}
