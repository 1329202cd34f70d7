package app

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

	"github.com/go-chi/chi/v5/middleware"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/fridgeboard/calendar-server/internal/api"
	"github.com/fridgeboard/calendar-server/internal/config"
	"github.com/fridgeboard/calendar-server/internal/db"
	"github.com/fridgeboard/calendar-server/internal/provider"
	"github.com/fridgeboard/calendar-server/internal/service"
	"github.com/fridgeboard/calendar-server/internal/store"
	pkgsync "github.com/fridgeboard/calendar-server/internal/sync"
	"github.com/fridgeboard/calendar-server/internal/sync/coordinator"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the calendar server",
	Long: `Start the calendar server.

The server requires a configuration file (--config) that specifies:
- Postgres connection parameters for the canonical event store
- The external CalDAV provider (server URL, credentials, calendar home)
- Sync window defaults and the optional scheduled run interval

See examples/ directory for sample configurations.`,
	RunE: runServe,
}

const (
	defaultGracefulTimeout = 30 * time.Second
	serverRequestTimeout   = 60 * time.Second // A manual sync run waits on the provider
	serverReadTimeout      = 10 * time.Second
	serverWriteTimeout     = 65 * time.Second // Must be > serverRequestTimeout to let middleware handle timeout
	serverIdleTimeout      = 60 * time.Second
)

func init() {
	serveCmd.Flags().String("address", "", "Address to listen on (overrides config)")
	serveCmd.Flags().String("config", "", "Path to configuration file (YAML format, required)")

	err := viper.BindPFlag("address", serveCmd.Flags().Lookup("address"))
	if err != nil {
		slog.Error("Failed to bind address flag", "error", err)
		os.Exit(1)
	}
	err = viper.BindPFlag("config", serveCmd.Flags().Lookup("config"))
	if err != nil {
		slog.Error("Failed to bind config flag", "error", err)
		os.Exit(1)
	}

	if err := serveCmd.MarkFlagRequired("config"); err != nil {
		slog.Error("Failed to mark config flag as required", "error", err)
		os.Exit(1)
	}
}

func runServe(_ *cobra.Command, _ []string) error {
	ctx := context.Background()

	configPath := viper.GetString("config")
	cfg, err := config.LoadConfig(config.WithConfigPath(configPath))
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	address := viper.GetString("address")
	if address == "" {
		address = cfg.GetAddress()
	}

	slog.Info("Starting calendar server",
		"address", address,
		"config", configPath,
		"provider", cfg.Provider.ServerURL)

	pool, err := db.NewPool(ctx, cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer pool.Close()

	eventStore, err := store.NewPostgresStore(pool)
	if err != nil {
		return fmt.Errorf("failed to create event store: %w", err)
	}

	client, err := provider.NewCalDAVClient(cfg.Provider)
	if err != nil {
		return fmt.Errorf("failed to create CalDAV client: %w", err)
	}

	manager := pkgsync.NewManager(eventStore, client)
	svc := service.New(eventStore, client, manager)

	// Scheduled runs are optional; without an interval the API trigger is
	// the only way to start a run.
	interval, err := cfg.GetSyncInterval()
	if err != nil {
		return fmt.Errorf("invalid sync interval: %w", err)
	}

	var syncCoordinator coordinator.Coordinator
	if interval > 0 {
		syncCoordinator = coordinator.New(svc, interval, pkgsync.Options{
			DaysBack:    cfg.GetDaysBack(),
			DaysForward: cfg.GetDaysForward(),
		})

		syncCtx, syncCancel := context.WithCancel(context.Background())
		defer syncCancel()
		go func() {
			if err := syncCoordinator.Start(syncCtx); err != nil {
				slog.Error("Sync coordinator failed", "error", err)
			}
		}()
	} else {
		slog.Info("Scheduled sync disabled, runs are triggered through the API only")
	}

	router := api.NewServer(svc,
		api.WithMiddlewares(
			middleware.RequestID,
			middleware.RealIP,
			middleware.Recoverer,
			middleware.Timeout(serverRequestTimeout),
			api.LoggingMiddleware,
		),
	)

	server := &http.Server{
		Addr:         address,
		Handler:      router,
		ReadTimeout:  serverReadTimeout,
		WriteTimeout: serverWriteTimeout,
		IdleTimeout:  serverIdleTimeout,
	}

	go func() {
		slog.Info("Server listening", "address", address)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Failed to start server", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	slog.Info("Shutting down server...")

	if syncCoordinator != nil {
		if err := syncCoordinator.Stop(); err != nil {
			slog.Error("Failed to stop sync coordinator", "error", err)
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), defaultGracefulTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("Server forced to shutdown", "error", err)
		return err
	}

	slog.Info("Server shutdown complete")
	return nil
}
