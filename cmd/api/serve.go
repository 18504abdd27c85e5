package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"pet-marketplace/internal/adapters/auth/jwt"
	"pet-marketplace/internal/adapters/auth/remote"
	"pet-marketplace/internal/adapters/realtime"
	pg "pet-marketplace/internal/adapters/storage/postgres"
	"pet-marketplace/internal/app"
	"pet-marketplace/internal/platform/config"
	"pet-marketplace/internal/platform/logger"
	"pet-marketplace/internal/ports/auth"
	"pet-marketplace/internal/router"
)

func newServeCommand(rootOpts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Levanta el servidor HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, log, err := rootOpts.load()
			if err != nil {
				return err
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return serve(ctx, cfg, log)
		},
	}
}

func serve(ctx context.Context, cfg config.Config, log logger.Logger) error {
	verifier, issuer, err := buildAuth(cfg)
	if err != nil {
		return err
	}
	if verifier == nil {
		log.Warn("auth disabled: using X-Debug-User-ID", nil)
	}

	stores := app.MemoryStores()
	if cfg.DatabaseDSN != "" {
		sqlDB, err := pg.Open(cfg.DatabaseDSN)
		if err != nil {
			return err
		}
		defer sqlDB.Close()

		db, err := pg.NewGorm(sqlDB)
		if err != nil {
			return err
		}
		if cfg.AutoMigrate {
			if err := pg.AutoMigrate(ctx, db); err != nil {
				return err
			}
		}
		stores = app.PostgresStores(db)
		log.Info("using postgres store", nil)
	} else {
		log.Info("using in-memory store", nil)
	}

	hub := realtime.NewHub(log.With(map[string]any{"module": "realtime"}))
	defer hub.Close()

	svcs := app.NewServices(stores, app.Deps{
		Issuer:      issuer,
		AdminEmails: cfg.AdminEmails,
		Broadcaster: hub,
		Log:         log,
	})

	srv := &http.Server{
		Addr: cfg.Addr(),
		Handler: router.NewRouter(router.Options{
			AuthVerifier:   verifier,
			Services:       svcs,
			Hub:            hub,
			Log:            log,
			RateLimitRPS:   cfg.RateLimitRPS,
			RateLimitBurst: cfg.RateLimitBurst,
		}),
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("starting server", map[string]any{"addr": srv.Addr})
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down", nil)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// buildAuth: JWT propio si hay secreto; si no, verificador remoto; si no, modo dev.
func buildAuth(cfg config.Config) (auth.AuthVerifier, auth.TokenIssuer, error) {
	if cfg.JWTSecret != "" {
		m, err := jwt.NewManager(jwt.Config{Secret: cfg.JWTSecret, Issuer: cfg.JWTIssuer, TTL: cfg.JWTTTL})
		if err != nil {
			return nil, nil, err
		}
		return m, m, nil
	}
	if cfg.IdentityBaseURL != "" {
		c, err := remote.NewClient(remote.Config{BaseURL: cfg.IdentityBaseURL, APIKey: cfg.IdentityAPIKey})
		if err != nil {
			return nil, nil, err
		}
		return remote.NewVerifier(c), nil, nil
	}
	return nil, nil, nil
}
