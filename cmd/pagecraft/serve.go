// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

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

	"github.com/spf13/cobra"

	"pagecraft/internal/generator"
	"pagecraft/internal/handlers"
	"pagecraft/internal/middleware"
	"pagecraft/internal/render"
	"pagecraft/internal/router"
	"pagecraft/internal/session"
	"pagecraft/internal/workspace"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		slog.Info("configuration loaded",
			"env", cfg.Env,
			"addr", cfg.Addr(),
			"store", cfg.StoreDriver,
		)

		b, err := connect(cfg)
		if err != nil {
			return err
		}
		defer b.Close()

		configs, err := b.configStore(cfg)
		if err != nil {
			return err
		}

		// Landing page markup changes with each release; drop stale copies.
		pageCache := b.pageCache(cfg)
		if pageCache != nil {
			pageCache.InvalidateAll(cmd.Context())
		}

		renderer, err := render.New()
		if err != nil {
			return fmt.Errorf("initializing template renderer: %w", err)
		}

		reg := newRegistry(cfg)
		workspaces := workspace.NewManager(configs, newChain(cfg, reg), cfg.WorkspaceIdleTTL,
			generator.WithModerator(reg),
		)
		defer workspaces.Stop()

		limiter := middleware.NewRateLimiter(cfg.GenerateRate, cfg.GenerateBurst)
		defer limiter.Stop()

		// In non-development environments, mark cookies as Secure (HTTPS-only).
		secureCookies := !cfg.IsDev()

		r := router.New(
			session.NewManager(secureCookies),
			limiter,
			handlers.NewAPI(workspaces),
			handlers.NewPublic(renderer, pageCache, workspaces),
			router.Options{SecureCookies: secureCookies, CORSOrigins: cfg.CORSOrigins},
		)

		// WriteTimeout must cover a generation walking both remote tiers.
		srv := &http.Server{
			Addr:         cfg.Addr(),
			Handler:      r,
			ReadTimeout:  5 * time.Second,
			WriteTimeout: 2*cfg.RemoteTimeout + cfg.LocalDelay + 15*time.Second,
			IdleTimeout:  120 * time.Second,
		}

		errCh := make(chan error, 1)
		go func() {
			slog.Info("server starting", "addr", cfg.Addr())
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				errCh <- err
			}
		}()

		// Graceful shutdown: wait for SIGINT or SIGTERM, then drain connections.
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		select {
		case sig := <-quit:
			slog.Info("shutdown signal received", "signal", sig)
		case err := <-errCh:
			return fmt.Errorf("server failed: %w", err)
		}

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			return fmt.Errorf("server forced to shutdown: %w", err)
		}

		slog.Info("server stopped gracefully")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
