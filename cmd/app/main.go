package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"marketplace/cmd"
	"marketplace/internal/adapters/in/http/auth"
	"marketplace/internal/adapters/out/persistence"
	"marketplace/internal/core/domain/model/identity"
	"marketplace/internal/pkg/telemetry"

	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           "marketplace",
		Short:         "Order lifecycle and tracking service for a multi-vendor marketplace",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	root.AddCommand(newServeCommand(), newMigrateCommand(), newTokenCommand())
	return root
}

func newServeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API and the background jobs",
		RunE: func(c *cobra.Command, _ []string) error {
			config, err := cmd.LoadConfig()
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(c.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			return serve(ctx, config)
		},
	}
}

func newMigrateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database schema and exit",
		RunE: func(_ *cobra.Command, _ []string) error {
			config, err := cmd.LoadConfig()
			if err != nil {
				return err
			}

			db, err := persistence.Open(config.DBDriver, config.DSN())
			if err != nil {
				return fmt.Errorf("failed to connect to database: %w", err)
			}
			defer closeDatabase(db)

			if err = persistence.Migrate(db); err != nil {
				return fmt.Errorf("failed to migrate database: %w", err)
			}
			fmt.Println("Database schema is up to date")
			return nil
		},
	}
}

func newTokenCommand() *cobra.Command {
	var (
		subject string
		role    string
		ttl     time.Duration
	)

	command := &cobra.Command{
		Use:   "token",
		Short: "Mint a development bearer token signed with JWT_SECRET",
		RunE: func(c *cobra.Command, _ []string) error {
			secret, issuer, err := cmd.LoadTokenConfig()
			if err != nil {
				return err
			}

			parsedRole, err := identity.ParseRole(role)
			if err != nil {
				return err
			}
			principal, err := identity.NewPrincipal(subject, parsedRole)
			if err != nil {
				return err
			}

			tokens, err := auth.NewTokens(secret, issuer)
			if err != nil {
				return err
			}
			raw, err := tokens.Issue(principal, ttl, time.Now())
			if err != nil {
				return err
			}

			_, err = fmt.Fprintln(c.OutOrStdout(), raw)
			return err
		},
	}

	command.Flags().StringVar(&subject, "sub", "", "subject id of the caller")
	command.Flags().StringVar(&role, "role", "consumer", "role claim: consumer, vendor or admin")
	command.Flags().DurationVar(&ttl, "ttl", time.Hour, "token lifetime")
	_ = command.MarkFlagRequired("sub")

	return command
}

func serve(ctx context.Context, config cmd.Config) error {
	logger, err := telemetry.NewLogger(os.Stdout, config.LogLevel, config.LogFormat)
	if err != nil {
		return err
	}
	slog.SetDefault(logger)

	shutdownTracer, err := telemetry.SetupTracer(ctx, config.ServiceName, config.OTLPEndpoint)
	if err != nil {
		return err
	}

	db, err := persistence.Open(config.DBDriver, config.DSN())
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer closeDatabase(db)

	if config.DBAutoMigrate {
		if err = persistence.Migrate(db); err != nil {
			return fmt.Errorf("failed to migrate database: %w", err)
		}
	}

	idempotency, closeRedis, err := cmd.NewRedisIdempotencyStore(ctx, config)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := closeRedis(); closeErr != nil {
			logger.Warn("Failed to close redis client", "error", closeErr)
		}
	}()
	if idempotency == nil {
		logger.Info("REDIS_ADDR is not set, Idempotency-Key headers are ignored")
	}

	app := cmd.NewCompositionRoot(config, db, idempotency, logger)

	jobManager := app.CreateJobManager()
	if err = jobManager.StartAll(); err != nil {
		return err
	}
	defer jobManager.StopAll()

	e, err := app.CreateHTTPServer()
	if err != nil {
		return err
	}
	e.Logger.SetLevel(echoLogLevel(config.LogLevel))

	serverErr := make(chan error, 1)
	go func() {
		logger.Info("HTTP server listening", "port", config.HTTPPort, "transition_policy", config.TransitionPolicy.String())
		serverErr <- e.Start(fmt.Sprintf("0.0.0.0:%s", config.HTTPPort))
	}()

	select {
	case err = <-serverErr:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server failed: %w", err)
		}
	case <-ctx.Done():
		logger.Info("Shutting down")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), config.ShutdownTimeout)
	defer cancel()

	if err = shutdownHTTP(shutdownCtx, e); err != nil {
		logger.Error("HTTP server shutdown failed", "error", err)
	}
	if err = shutdownTracer(shutdownCtx); err != nil {
		logger.Error("Tracer shutdown failed", "error", err)
	}
	return nil
}

func shutdownHTTP(ctx context.Context, e *echo.Echo) error {
	if err := e.Shutdown(ctx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func closeDatabase(db *gorm.DB) {
	sqlDB, err := db.DB()
	if err != nil {
		return
	}
	_ = sqlDB.Close()
}

func echoLogLevel(level string) log.Lvl {
	switch strings.ToLower(level) {
	case "debug":
		return log.DEBUG
	case "warn", "warning":
		return log.WARN
	case "error":
		return log.ERROR
	default:
		return log.INFO
	}
}
