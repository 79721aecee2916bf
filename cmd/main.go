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

	"github.com/gin-gonic/gin"
	"github.com/urfave/cli/v2"

	"shopadmin/internal/backend"
	"shopadmin/internal/config"
	httpapi "shopadmin/internal/http"
	"shopadmin/internal/logging"
	"shopadmin/internal/tracing"

	_ "shopadmin/docs"
)

// @title shopadmin console API
// @version 1.0
// @description Admin console over the e-commerce backend: orders, catalog, users and analytics.
// @BasePath /api/v1
func main() {
	app := &cli.App{
		Name:  "shopadmin",
		Usage: "admin console API over the e-commerce backend",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "config", Value: "configs", Usage: "directory with base.yaml and <env>.yaml", EnvVars: []string{"SHOPADMIN_CONFIG_DIR"}},
			&cli.StringFlag{Name: "env", Value: "dev", Usage: "environment overlay name", EnvVars: []string{"SHOPADMIN_ENV"}},
		},
		Action: func(c *cli.Context) error {
			return run(c.String("config"), c.String("env"))
		},
	}
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(configDir, env string) error {
	cfg, err := config.Load(configDir, env)
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}

	log := logging.Init(logging.Options{Component: cfg.App.Name, FilePath: cfg.App.LogFile, Level: cfg.App.LogLevel})
	if cfg.App.Env != "dev" {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := tracing.Init(ctx, tracing.Config{
		ServiceName: cfg.App.Name,
		Environment: cfg.App.Env,
		ExporterURL: cfg.Tracing.ExporterURL,
		SampleRate:  cfg.Tracing.SampleRate,
	})
	if err != nil {
		return fmt.Errorf("tracing: %w", err)
	}

	client, err := backend.New(backend.Config{
		BaseURL: cfg.Backend.BaseURL,
		Timeout: cfg.Backend.Timeout,
		Logger:  log,
	})
	if err != nil {
		return err
	}

	sessions := httpapi.NewSessionStore(cfg.Session.IdleTTL)
	go sessions.RunJanitor(ctx, time.Minute, log)

	srv := httpapi.NewServer(httpapi.Options{
		Backend:     client,
		BearerToken: cfg.Backend.BearerToken,
		Sessions:    sessions,
		Logger:      log,
	})

	httpServer := &http.Server{
		Addr:         cfg.App.HTTPAddr,
		Handler:      tracing.WrapHTTPHandler(srv.Engine(), "shopadmin"),
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  cfg.HTTP.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("HTTP server listening", "addr", httpServer.Addr, "backend", cfg.Backend.BaseURL)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case <-ctx.Done():
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server: %w", err)
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Error("shutdown error", "err", err)
	}
	if err := shutdownTracing(shutdownCtx); err != nil {
		log.Error("tracing shutdown", "err", err)
	}
	log.Info("stopped")
	return nil
}
