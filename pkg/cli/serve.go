package cli

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"

	"github.com/recall-lab/recall/pkg/cli/config"
	httpctrl "github.com/recall-lab/recall/pkg/controller/http"
	"github.com/recall-lab/recall/pkg/utils/logging"
	"github.com/recall-lab/recall/pkg/utils/safe"
)

func cmdServe() *cli.Command {
	var addr string
	var appKey string
	var policyCfg config.Policy
	var repoCfg config.Repository
	var llmCfg config.LLM

	flags := []cli.Flag{
		&cli.StringFlag{
			Name:        "addr",
			Usage:       "HTTP server address",
			Value:       ":8080",
			Sources:     cli.EnvVars("RECALL_ADDR"),
			Destination: &addr,
		},
		&cli.StringFlag{
			Name:        "app-key",
			Usage:       "Shared X-App-Key value; endpoints are open when empty",
			Sources:     cli.EnvVars("RECALL_APP_KEY"),
			Destination: &appKey,
		},
	}
	flags = append(flags, policyCfg.Flags()...)
	flags = append(flags, repoCfg.Flags()...)
	flags = append(flags, llmCfg.Flags()...)

	return &cli.Command{
		Name:    "serve",
		Aliases: []string{"s"},
		Usage:   "Start HTTP server",
		Flags:   flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			uc, index, err := buildUseCases(ctx, &policyCfg, &repoCfg, &llmCfg)
			if err != nil {
				return err
			}
			defer safe.Close(ctx, index)

			if appKey == "" {
				logging.Default().Warn("No app key configured, endpoints are open")
			}

			handler := httpctrl.New(uc, httpctrl.WithAppKey(appKey))
			server := &http.Server{
				Addr:              addr,
				Handler:           handler,
				ReadHeaderTimeout: 30 * time.Second,
			}

			sigCh := make(chan os.Signal, 1)
			signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

			errCh := make(chan error, 1)
			go func() {
				logging.Default().Info("Starting HTTP server", "addr", addr)
				if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					errCh <- goerr.Wrap(err, "failed to start server")
				}
			}()

			select {
			case err := <-errCh:
				return err
			case sig := <-sigCh:
				logging.Default().Info("Received shutdown signal", "signal", sig)

				shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
				defer cancel()

				if err := server.Shutdown(shutdownCtx); err != nil {
					return goerr.Wrap(err, "failed to shutdown server gracefully")
				}

				logging.Default().Info("Server shutdown completed")
				return nil
			}
		},
	}
}
