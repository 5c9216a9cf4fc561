package main

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

	"github.com/inamate/focusframe/internal/api"
	"github.com/inamate/focusframe/internal/auth"
	"github.com/inamate/focusframe/internal/config"
	"github.com/inamate/focusframe/internal/geom"
	"github.com/inamate/focusframe/internal/preview"
	"github.com/inamate/focusframe/internal/session"
	"github.com/inamate/focusframe/internal/store"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("load config", "error", err)
		os.Exit(1)
	}

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.Level()})))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pool, err := store.NewPool(ctx, cfg.DatabaseURL)
	if err != nil {
		slog.Error("connect to database", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	viewports := store.New(pool)
	if err := viewports.Migrate(ctx); err != nil {
		slog.Error("migrate database", "error", err)
		os.Exit(1)
	}

	authService := auth.NewService(cfg.JWTSecret)
	authHandler := auth.NewHandler(authService, viewports)

	// Viewport loader for the session hub
	loader := func(ctx context.Context, sessionID string) (geom.Viewport, error) {
		snap, err := viewports.LatestViewport(ctx, sessionID)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return geom.Viewport{}, session.ErrNoViewport
			}
			return geom.Viewport{}, err
		}
		return snap.Viewport, nil
	}

	// Viewport saver for the session hub
	saver := func(ctx context.Context, sessionID, signature string, vp geom.Viewport) error {
		if err := viewports.SaveViewport(ctx, sessionID, signature, vp); err != nil {
			return fmt.Errorf("save viewport: %w", err)
		}
		if n, err := viewports.PruneViewports(ctx, sessionID, cfg.ViewportHistory); err != nil {
			slog.Warn("prune viewports", "error", err, "session", sessionID)
		} else if n > 0 {
			slog.Debug("pruned viewports", "session", sessionID, "removed", n)
		}
		return nil
	}

	hub := session.NewHub(session.Options{
		Transition:   cfg.Transition(),
		TickInterval: cfg.TickInterval,
		Loader:       loader,
		Saver:        saver,
	})
	go hub.Run()

	apiHandler := api.NewHandler(api.NewService(viewports, hub))
	previewHandler := preview.NewHandler(hub, cfg.PreviewSize)

	r := api.NewRouter(api.RouterConfig{
		Auth:        authService,
		AuthHandler: authHandler,
		Handler:     apiHandler,
		Preview:     previewHandler,
		Hub:         hub,
		Origins:     cfg.Origins(),
	})

	addr := fmt.Sprintf(":%d", cfg.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh

		slog.Info("shutting down server")

		// Stop hub first to save pending viewports
		hub.Stop()

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		srv.Shutdown(shutdownCtx)
	}()

	slog.Info("server starting", "addr", addr, "tick", cfg.TickInterval, "easing", cfg.TransitionEasing)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		slog.Error("server error", "error", err)
		os.Exit(1)
	}
}
