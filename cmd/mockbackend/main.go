// Command mockbackend serves an in-memory e-commerce backend for local
// development of the console.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v2"

	"shopadmin/internal/config"
	"shopadmin/internal/logging"
	"shopadmin/internal/mockbackend"
	"shopadmin/internal/repository"
)

func main() {
	app := &cli.App{
		Name:  "mockbackend",
		Usage: "in-memory e-commerce backend",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "config", Value: "configs", Usage: "directory with base.yaml and <env>.yaml", EnvVars: []string{"SHOPADMIN_CONFIG_DIR"}},
			&cli.StringFlag{Name: "env", Value: "dev", Usage: "environment overlay name", EnvVars: []string{"SHOPADMIN_ENV"}},
			&cli.StringFlag{Name: "addr", Usage: "listen address, overrides mock.http_addr"},
		},
		Action: func(c *cli.Context) error {
			cfg, err := config.Load(c.String("config"), c.String("env"))
			if err != nil {
				return fmt.Errorf("config: %w", err)
			}
			if a := c.String("addr"); a != "" {
				cfg.Mock.HTTPAddr = a
			}
			return run(cfg)
		},
	}
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(cfg config.Config) error {
	log := logging.Init(logging.Options{Component: "mockbackend", Level: cfg.App.LogLevel})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store := repository.NewMemoryStore()
	if cfg.Mock.Seed {
		if err := mockbackend.Seed(ctx, store); err != nil {
			return err
		}
		log.Info("seeded", "admin", mockbackend.SeedAdminUsername)
	}

	srv := &http.Server{
		Addr:    cfg.Mock.HTTPAddr,
		Handler: mockbackend.New(store, mockbackend.Options{AdminToken: cfg.Mock.AdminToken, Logger: log}).Handler(),
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("mock backend listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case <-ctx.Done():
	case err := <-errCh:
		if err != nil {
			return err
		}
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
