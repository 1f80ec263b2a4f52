package main

import (
	"context"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dvloznov/bankview/internal/api/handlers"
	"github.com/dvloznov/bankview/internal/config"
	"github.com/dvloznov/bankview/internal/loads"
	"github.com/dvloznov/bankview/internal/loads/inmemory"
	"github.com/dvloznov/bankview/internal/logger"
	"github.com/dvloznov/bankview/internal/pipeline"
	"github.com/dvloznov/bankview/internal/sources"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log := logger.New()
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	// Command-line flags override the environment.
	var (
		port     = flag.String("port", cfg.ServerPort, "HTTP server port")
		clients  = flag.String("clients", cfg.ClientsSource, "Clients table source URI")
		accounts = flag.String("accounts", cfg.AccountsSource, "Accounts table source URI")
		branches = flag.String("branches", cfg.BranchesSource, "Branches table source URI")
	)
	flag.Parse()

	log := logger.NewWithOptions(logger.Options{
		Level:  cfg.LogLevel,
		Format: logger.Format(cfg.LogFormat),
	})

	ctx, cancel := context.WithCancel(logger.WithContext(context.Background(), log))
	defer cancel()

	srcs, err := sources.OpenAll(ctx, *clients, *accounts, *branches, sources.Options{
		Timeout:          cfg.FetchTimeout,
		CredentialsFile:  cfg.GCPCredentialsFile,
		BigQueryLocation: cfg.BigQueryLocation,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to open sources")
	}

	var loaderOpts []pipeline.LoaderOption
	if cfg.StrictDecoding {
		loaderOpts = append(loaderOpts, pipeline.WithStrictDecoding())
	}

	store := inmemory.NewStore()
	manager := loads.NewManager(pipeline.NewLoader(srcs, loaderOpts...), store)

	// Initial load runs in the background; data endpoints answer 503
	// until it finishes.
	go func() {
		if _, err := manager.Reload(ctx, loads.TriggerStartup); err != nil {
			log.Error().Err(err).Msg("Initial load failed")
		}
	}()

	var scheduler *loads.Scheduler
	if cfg.RefreshSchedule != "" {
		scheduler, err = loads.NewScheduler(manager, cfg.RefreshSchedule, log)
		if err != nil {
			log.Fatal().Err(err).Msg("Invalid refresh schedule")
		}
		if err := scheduler.Start(ctx); err != nil {
			log.Fatal().Err(err).Msg("Failed to start refresh schedule")
		}
	}

	handler := handlers.NewRouter(handlers.Deps{
		Catalogs: manager,
		Reloader: manager,
		Loads:    store,
		PageSize: cfg.PageSize,
	}, log)

	// Create HTTP server
	server := &http.Server{
		Addr:         ":" + *port,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 2 * time.Minute,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		log.Info().
			Str("port", *port).
			Str("clients", srcs.Clients.Describe()).
			Str("accounts", srcs.Accounts.Describe()).
			Str("branches", srcs.Branches.Describe()).
			Msg("Starting API server")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	// Cancel in-flight loads
	cancel()

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancelShutdown()

	if scheduler != nil {
		select {
		case <-scheduler.Stop().Done():
		case <-shutdownCtx.Done():
			log.Warn().Msg("Scheduled reload still running at shutdown")
		}
	}

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exited")
}
