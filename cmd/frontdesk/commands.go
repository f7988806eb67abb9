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

	"github.com/go-telegram/bot"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Freeeeeet/clinic_frontdesk/internal/app"
	"github.com/Freeeeeet/clinic_frontdesk/internal/controller"
	"github.com/Freeeeeet/clinic_frontdesk/internal/controller/httpapi"
)

const shutdownTimeout = 10 * time.Second

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API and the daily digest",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			rt, err := newRuntime(ctx)
			if err != nil {
				return err
			}
			defer rt.Close()

			if err := rt.migrate(ctx); err != nil {
				return err
			}

			digest := app.NewDigest(rt.reports, rt.cfg.DigestInterval, rt.logger)
			digest.Start(ctx)
			defer digest.Stop()

			var opts []httpapi.ServerOption
			if rt.cfg.RateLimitRPS > 0 {
				opts = append(opts, httpapi.WithRateLimit(rt.cfg.RateLimitRPS, rt.cfg.RateLimitBurst))
			}

			handler := httpapi.NewHandler(rt.appointments, rt.reports, rt.logger)
			e := httpapi.NewServer(handler, rt.logger, opts...)

			errCh := make(chan error, 1)
			go func() {
				rt.logger.Info("Starting HTTP server", zap.String("addr", rt.cfg.HTTPAddr))
				if err := e.Start(rt.cfg.HTTPAddr); err != nil && !errors.Is(err, http.ErrServerClosed) {
					errCh <- err
				}
			}()

			select {
			case <-ctx.Done():
			case err := <-errCh:
				return fmt.Errorf("http server: %w", err)
			}

			rt.logger.Info("Shutting down HTTP server")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()

			if err := e.Shutdown(shutdownCtx); err != nil {
				return fmt.Errorf("shutdown http server: %w", err)
			}

			rt.logger.Info("HTTP server stopped")
			return nil
		},
	}
}

func botCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "bot",
		Short: "Start the Telegram front desk bot",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			rt, err := newRuntime(ctx)
			if err != nil {
				return err
			}
			defer rt.Close()

			if err := rt.cfg.RequireTelegram(); err != nil {
				return err
			}

			botInstance, err := bot.New(rt.cfg.TelegramToken)
			if err != nil {
				return fmt.Errorf("create bot: %w", err)
			}

			botController := controller.NewBotController(botInstance, rt.appointments, rt.reports, rt.logger)
			if err := botController.RegisterHandlers(ctx); err != nil {
				return fmt.Errorf("register bot handlers: %w", err)
			}

			return botController.Start(ctx)
		},
	}
}

func migrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Manage database migrations",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "up",
		Short: "Apply pending migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withMigrator(cmd.Context(), func(ctx context.Context, m *app.Migrator) error {
				return m.Run(ctx)
			})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "down",
		Short: "Roll back the last migration",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withMigrator(cmd.Context(), func(ctx context.Context, m *app.Migrator) error {
				return m.Down(ctx)
			})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "status",
		Short: "Show the current schema version",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withMigrator(cmd.Context(), func(ctx context.Context, m *app.Migrator) error {
				version, err := m.Version(ctx)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Schema version: %d\n", version)
				return nil
			})
		},
	})

	return cmd
}

func withMigrator(ctx context.Context, fn func(context.Context, *app.Migrator) error) error {
	rt, err := newRuntime(ctx)
	if err != nil {
		return err
	}
	defer rt.Close()

	migrator, err := app.NewMigrator(rt.pool, rt.cfg.MigrationsPath, rt.logger)
	if err != nil {
		return err
	}
	defer migrator.Close()

	return fn(ctx, migrator)
}
