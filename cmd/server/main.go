package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/anonto42/idea-board/backend/internal/auth"
	"github.com/anonto42/idea-board/backend/internal/logging"
	"github.com/anonto42/idea-board/backend/internal/router"
	"github.com/anonto42/idea-board/backend/internal/services"
	"github.com/anonto42/idea-board/backend/pkg/config"
	"github.com/anonto42/idea-board/backend/pkg/firebase"
)

func main() {
	cfg := config.Load()
	logger := logging.New(os.Stdout, cfg.Env, cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger); err != nil {
		logger.Error(ctx, "server stopped", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, logger logging.Logger) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	db, err := config.InitDB(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer db.CloseDB()

	store, activity, err := router.SetupStore(ctx, cfg, db, logger)
	if err != nil {
		return err
	}

	var federated services.IdentityVerifier
	if cfg.FirebaseCredentialsPath != "" {
		app, err := firebase.InitFirebase(ctx, cfg.FirebaseCredentialsPath)
		if err != nil {
			return err
		}
		federated = app.Verifier()
		logger.Info(ctx, "Firebase login enabled")
	}

	deps := router.Deps{
		Config:    cfg,
		Logger:    logger,
		Store:     store,
		Tokens:    auth.NewTokenIssuer(cfg.JWTSecret),
		Activity:  activity,
		Federated: federated,
	}
	if rdb := config.NewRedisClient(ctx, cfg, logger); rdb != nil {
		defer rdb.Close()
		deps.Redis = rdb
	}

	e := router.NewServer(deps)

	errCh := make(chan error, 1)
	go func() {
		logger.Info(ctx, "server starting", "port", cfg.Port, "env", cfg.Env, "store", cfg.StoreDriver)
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info(context.Background(), "shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return e.Shutdown(shutdownCtx)
}
