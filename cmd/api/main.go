package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"

	"github.com/Overland-East-Bay/fellow-passengers/internal/adapters/httpapi"
	memidempotency "github.com/Overland-East-Bay/fellow-passengers/internal/adapters/memory/idempotency"
	memtripregistry "github.com/Overland-East-Bay/fellow-passengers/internal/adapters/memory/tripregistry"
	"github.com/Overland-East-Bay/fellow-passengers/internal/app/session"
	platformclock "github.com/Overland-East-Bay/fellow-passengers/internal/platform/clock"
	"github.com/Overland-East-Bay/fellow-passengers/internal/platform/config"
	"github.com/Overland-East-Bay/fellow-passengers/internal/platform/logging"
	tripregistryport "github.com/Overland-East-Bay/fellow-passengers/internal/ports/out/tripregistry"
)

func main() {
	app := &cli.App{
		Name:  "fellow-passengers",
		Usage: "find out who travels in your train car",
		Commands: []*cli.Command{
			{
				Name:  "serve",
				Usage: "run the web server",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "config",
						Usage:   "path to a YAML config file",
						EnvVars: []string{"CONFIG_FILE"},
					},
					&cli.StringFlag{
						Name:  "listen",
						Usage: "listen address, overrides config and env",
					},
				},
				Action: serve,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal().Err(err).Send()
	}
}

func serve(c *cli.Context) error {
	cfg, err := config.Load(c.String("config"))
	if err != nil {
		return err
	}
	if v := c.String("listen"); v != "" {
		cfg.Listen = v
	}
	logger := logging.Setup(cfg.Log.Format, cfg.Log.Level)

	clk := platformclock.NewSystemClock()
	mgr := session.NewManager(
		func() tripregistryport.Registry { return memtripregistry.NewRegistry() },
		clk,
		cfg.Session.IdleTimeout.Std(),
	)

	idemStore := memidempotency.NewStore()

	handler := httpapi.NewRouter(mgr, httpapi.RouterOptions{
		Logger: logger,
		Cookie: httpapi.CookieOptions{
			Name:   cfg.Session.CookieName,
			Secure: cfg.Session.SecureCookie,
		},
		Idempotency: idemStore,
	})

	srv := &http.Server{
		Addr:              cfg.Listen,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}

	// Graceful shutdown
	ctx, stop := signal.NotifyContext(c.Context, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Replay records cannot outlive the sessions they belong to.
	go mgr.Run(ctx, cfg.Session.SweepInterval.Std(), func(dropped int) {
		pruned, err := idemStore.Prune(ctx, clk.Now().Add(-cfg.Session.IdleTimeout.Std()))
		if err != nil {
			logger.Warn().Err(err).Msg("prune idempotency records")
		}
		if dropped > 0 || pruned > 0 {
			logger.Debug().Int("dropped", dropped).Int("pruned", pruned).Int("live", mgr.Len()).Msg("expired sessions swept")
		}
	})

	errCh := make(chan error, 1)
	go func() {
		logger.Info().Str("listen", cfg.Listen).Msg("web server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return err
		}
	case <-ctx.Done():
	}

	logger.Info().Msg("shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
