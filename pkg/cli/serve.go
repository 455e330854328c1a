package cli

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gots/slice"
	"github.com/secmon-lab/repotally/pkg/cli/config"
	"github.com/secmon-lab/repotally/pkg/controller/server"
	"github.com/secmon-lab/repotally/pkg/domain/interfaces"
	"github.com/secmon-lab/repotally/pkg/infra"
	"github.com/secmon-lab/repotally/pkg/repository/memory"
	"github.com/secmon-lab/repotally/pkg/usecase"
	"github.com/secmon-lab/repotally/pkg/utils/logging"

	"github.com/urfave/cli/v3"
)

func serveCommand() *cli.Command {
	var (
		addr string

		githubCfg    config.GitHub
		firestoreCfg config.Firestore
		sentryCfg    config.Sentry
	)
	serveFlags := []cli.Flag{
		&cli.StringFlag{
			Name:        "addr",
			Usage:       "Binding address",
			Value:       "127.0.0.1:8000",
			Sources:     cli.EnvVars("REPOTALLY_ADDR"),
			Destination: &addr,
		},
	}

	return &cli.Command{
		Name:    "serve",
		Aliases: []string{"s"},
		Usage:   "Server mode",
		Flags: slice.Flatten(
			serveFlags,
			githubCfg.Flags(),
			firestoreCfg.Flags(),
			sentryCfg.Flags(),
		),
		Action: func(ctx context.Context, c *cli.Command) error {
			logging.Default().Info("starting serve",
				slog.Any("Addr", addr),
				slog.Any("GitHub", githubCfg),
				slog.Any("Firestore", firestoreCfg),
				slog.Any("Sentry", sentryCfg),
			)

			if err := sentryCfg.Configure(ctx); err != nil {
				return err
			}

			var statsRepo interfaces.StatsRepository
			if firestoreCfg.Enabled() {
				repo, err := firestoreCfg.NewRepository(ctx)
				if err != nil {
					return err
				}
				statsRepo = repo
			} else {
				logging.Default().Warn("firestore is not configured, counters are kept in memory only")
				statsRepo = memory.New()
			}

			infraOptions := []infra.Option{
				infra.WithStatsRepository(statsRepo),
			}

			if githubCfg.HasToken() {
				ghClient, err := githubCfg.NewClient()
				if err != nil {
					return err
				}
				infraOptions = append(infraOptions, infra.WithGitHub(ghClient))
			}

			clients := infra.New(infraOptions...)

			uc := usecase.New(clients)
			s := server.New(uc, server.WithWebhookSecret(githubCfg.Secret()))

			serverErr := make(chan error, 1)
			httpServer := &http.Server{
				Addr:    addr,
				Handler: s.Mux(),

				ReadHeaderTimeout: 10 * time.Second,
				ReadTimeout:       30 * time.Second,
				WriteTimeout:      30 * time.Second,
			}

			go func() {
				logging.Default().Info("starting http server", "addr", addr)
				if err := httpServer.ListenAndServe(); err != http.ErrServerClosed {
					serverErr <- goerr.Wrap(err, "failed to listen and serve")
				}
			}()

			quit := make(chan os.Signal, 1)
			signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

			select {
			case err := <-serverErr:
				return err

			case sig := <-quit:
				logging.Default().Info("shutting down server", "signal", sig)

				ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
				defer cancel()

				if err := httpServer.Shutdown(ctx); err != nil {
					return goerr.Wrap(err, "failed to shutdown server")
				}
			}

			return nil
		},
	}
}
