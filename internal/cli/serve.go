package cli

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"bankfolio/internal/config"
	httpapi "bankfolio/internal/http"
	applog "bankfolio/internal/log"
)

type ServeCmd struct {
	Port            string        `help:"Listen port, PORT from the environment when empty."`
	ShutdownTimeout time.Duration `help:"Time allowed for in-flight requests on shutdown." default:"10s"`
}

func (cmd *ServeCmd) Run(env *Env) error {
	cfg := env.Config
	if cfg == nil {
		cfg = config.Load()
	}
	port := cmd.Port
	if port == "" {
		port = cfg.Port
	}

	logger := env.Logger
	if logger == nil {
		logger = applog.New(applog.DefaultConfig())
	}
	logger = logger.WithComponent(applog.ComponentHTTP)

	srv := httpapi.NewServer(net.JoinHostPort("", port), env.Ledger, env.Settings, httpapi.Options{
		RateLimitPerMinute: cfg.RateLimitPerMinute,
		ReportCacheTTL:     cfg.ReportCacheTTL,
		Logger:             logger,
	})

	// Configure server timeouts and limits
	srv.ReadTimeout = 10 * time.Second
	srv.WriteTimeout = 10 * time.Second
	srv.IdleTimeout = 60 * time.Second
	srv.MaxHeaderBytes = 1 << 16 // 64KB

	ctx, done := GracefulShutdown(logger, cmd.ShutdownTimeout, func(shutdownCtx context.Context) {
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("HTTP server shutdown failed", applog.FieldError, err)
		}
	})

	if env.Settings != nil {
		go func() {
			if err := env.Settings.Watch(ctx); err != nil {
				logger.Warn("Settings watcher stopped", applog.FieldError, err)
			}
		}()
	}

	logger.Info("Starting HTTP server", "addr", srv.Addr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("serve http: %w", err)
	}

	WaitForShutdown(ctx, done)
	return nil
}
