// cmd/main.go is the application entry point.
// It wires together all layers and starts the HTTP server.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Shivanand-hulikatti/wedding-rsvp/internal/auth"
	"github.com/Shivanand-hulikatti/wedding-rsvp/internal/config"
	"github.com/Shivanand-hulikatti/wedding-rsvp/internal/database"
	"github.com/Shivanand-hulikatti/wedding-rsvp/internal/handler"
	"github.com/Shivanand-hulikatti/wedding-rsvp/internal/logging"
	"github.com/Shivanand-hulikatti/wedding-rsvp/internal/repository"
	"github.com/Shivanand-hulikatti/wedding-rsvp/internal/service"
	"go.uber.org/zap"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// ── 1. Configuration and logging ─────────────────────────────────────
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}
	log, err := logging.New(cfg.LogLevel, cfg.IsProduction())
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	if cfg.UsesDevPassword() {
		log.Warn("ADMIN_PASSWORD_HASH not set, admin login uses the development password")
	}
	if cfg.UsesDevSecret() {
		log.Warn("ADMIN_JWT_SECRET not set, sessions are signed with the development secret")
	}

	// ── 2. Connect to PostgreSQL and migrate ──────────────────────────────
	dbCfg := database.ConfigFromEnv()
	pool, err := database.NewPool(ctx, dbCfg, log)
	if err != nil {
		return fmt.Errorf("database: %w", err)
	}
	defer pool.Close()
	log.Info("connected to PostgreSQL")

	if err := database.Migrate(dbCfg, log); err != nil {
		return err
	}

	// ── 3. Wire up layers ────────────────────────────────────────────────
	groupRepo := repository.NewGroupRepository(pool)
	guestRepo := repository.NewGuestRepository(pool)
	rsvpRepo := repository.NewRSVPRepository(pool)
	settingsRepo := repository.NewSettingsRepository(pool)
	timelineRepo := repository.NewTimelineRepository(pool)

	svc := handler.Services{
		Groups:  service.NewGroupService(groupRepo, guestRepo, rsvpRepo, log),
		Guests:  service.NewGuestService(guestRepo, groupRepo),
		RSVP:    service.NewRSVPService(groupRepo, guestRepo, rsvpRepo, log),
		Import:  service.NewImportService(repository.NewImportRepository(pool), log),
		Content: service.NewContentService(settingsRepo, timelineRepo),
		Export:  service.NewExportService(groupRepo, guestRepo, rsvpRepo),
	}

	// Default page content and programme on an empty database.
	seeder := service.NewSeeder(settingsRepo, svc.Content, svc.Groups, svc.Guests, log)
	if _, err := seeder.Seed(ctx, false); err != nil {
		return fmt.Errorf("seed defaults: %w", err)
	}

	h := handler.New(svc, auth.NewVerifier(cfg), auth.NewSessions(cfg.JWTSecret), cfg, log)

	// ── 4. Start server with graceful shutdown ────────────────────────────
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Port),
		Handler:      handler.NewRouter(h),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 35 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("server listening", zap.String("addr", srv.Addr), zap.String("env", cfg.Env))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	// Block until SIGINT/SIGTERM or a listener failure.
	select {
	case err, ok := <-errCh:
		if ok {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}
	log.Info("server stopped")
	return nil
}
