package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dmehra2102/prod-golang-projects/clinicdesk/internal/app"
	"github.com/dmehra2102/prod-golang-projects/clinicdesk/internal/config"
	"github.com/dmehra2102/prod-golang-projects/clinicdesk/internal/seed"
	"github.com/dmehra2102/prod-golang-projects/clinicdesk/internal/store/memory"
	"github.com/dmehra2102/prod-golang-projects/clinicdesk/internal/store/postgres"
	"github.com/dmehra2102/prod-golang-projects/clinicdesk/pkg/database"
	"github.com/dmehra2102/prod-golang-projects/clinicdesk/pkg/logger"
	"github.com/dmehra2102/prod-golang-projects/clinicdesk/pkg/metrics"
	"github.com/dmehra2102/prod-golang-projects/clinicdesk/pkg/tracer"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func main() {
	rootCmd := &cobra.Command{
		Use:          "clinicdesk",
		Short:        "Hospital records API backed by sample data",
		SilenceUsage: true,
	}

	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(migrateCmd())
	rootCmd.AddCommand(seedCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer(cmd.Context())
		},
	}
}

func migrateCmd() *cobra.Command {
	var withSeed bool

	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Create the PostgreSQL schemas and tables",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := bootstrap()
			if err != nil {
				return err
			}
			defer func() { _ = log.Sync() }()

			db, err := database.Connect(cfg.Database, log)
			if err != nil {
				return err
			}
			defer func() { _ = database.Close(db) }()

			if err := database.Migrate(db, log); err != nil {
				return err
			}
			if !withSeed {
				return nil
			}

			ds := seed.Build(cfg.Store.RandomSeed, time.Now())
			loaded, err := postgres.Load(cmd.Context(), db, ds)
			if err != nil {
				return err
			}
			if !loaded {
				log.Info("sample data already present, skipping seed")
				return nil
			}
			log.Info("sample data loaded", zap.Int("patients", len(ds.Patients)))
			return nil
		},
	}
	cmd.Flags().BoolVar(&withSeed, "seed", false, "load the sample dataset after migrating")
	return cmd
}

func seedCmd() *cobra.Command {
	var randomSeed uint64

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Print the generated sample dataset as JSON",
		RunE: func(cmd *cobra.Command, args []string) error {
			ds := seed.Build(randomSeed, time.Now())
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(ds)
		},
	}
	cmd.Flags().Uint64Var(&randomSeed, "random-seed", 0, "generator seed; 0 uses the clock")
	return cmd
}

func bootstrap() (*config.Config, *zap.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("loading config: %w", err)
	}

	log, err := logger.New(cfg.Log)
	if err != nil {
		return nil, nil, fmt.Errorf("initializing logger: %w", err)
	}
	zap.ReplaceGlobals(log)

	return cfg, log.With(
		zap.String("service", cfg.App.Name),
		zap.String("env", cfg.App.Environment),
	), nil
}

func runServer(parent context.Context) error {
	cfg, log, err := bootstrap()
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	ctx, stop := signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := tracer.Init(ctx, cfg.Tracing, cfg.App.Version)
	if err != nil {
		return fmt.Errorf("initializing tracer: %w", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownTracing(shutdownCtx); err != nil {
			log.Warn("tracer shutdown failed", zap.Error(err))
		}
	}()

	m := metrics.NewCollector(cfg.App.Name, prometheus.DefaultRegisterer)

	var repos app.Repositories
	switch cfg.Store.Driver {
	case config.DriverPostgres:
		db, err := database.Connect(cfg.Database, log)
		if err != nil {
			return err
		}
		defer func() { _ = database.Close(db) }()
		repos = app.PostgresRepositories(db)

	default:
		ds := seed.Build(cfg.Store.RandomSeed, time.Now())
		store := memory.New(ds, memory.Latency{
			List:  cfg.Store.ListLatency,
			Get:   cfg.Store.GetLatency,
			Write: cfg.Store.WriteLatency,
			Login: cfg.Store.LoginLatency,
		})
		log.Info("in-memory store seeded", zap.Any("collections", store.Count()))
		repos = app.MemoryRepositories(store)
	}

	a := app.New(cfg, repos, m, prometheus.DefaultGatherer, log)
	defer a.Shutdown()

	srv := &http.Server{
		Addr:         cfg.Server.Address(),
		Handler:      a.Router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("server starting",
			zap.String("addr", srv.Addr),
			zap.String("store", cfg.Store.Driver),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown: %w", err)
	}
	log.Info("server stopped")
	return nil
}
