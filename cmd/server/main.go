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

	"github.com/Netflix/go-env"
	"github.com/blugelabs/bluge"
	"github.com/dgraph-io/badger/v4"
	"github.com/joho/godotenv"

	"stageshow/infrastructure"
	"stageshow/internal"
	"stageshow/observability"
	"stageshow/repositories"
	"stageshow/runtime"
	"stageshow/runtime/workers"
	"stageshow/services"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Fatal error: %v\n", err)
		os.Exit(1)
	}
}

// run initializes all components, manages the server lifecycle, and
// centralizes error reporting. Deferred cleanup (Badger, Bluge) executes
// before the process exits, which os.Exit in main would skip.
func run() error {
	// 1. Configuration & Logger
	_ = godotenv.Load()
	var config internal.Config
	if _, err := env.UnmarshalFromEnviron(&config); err != nil {
		return fmt.Errorf("config error: %w", err)
	}
	log := internal.NewLogger(config.LogLevel)

	// 2. Storage (BadgerDB for action history, Bluge for question search)
	db, err := badger.Open(badger.DefaultOptions(config.BadgerFilepath).
		WithLoggingLevel(badger.INFO))
	if err != nil {
		return fmt.Errorf("database opening failed: %w", err)
	}
	defer func() {
		log.Info("Closing BadgerDB...")
		_ = db.Close()
	}()

	blugeWriter, err := bluge.OpenWriter(bluge.DefaultConfig(config.BlugeFilepath))
	if err != nil {
		return fmt.Errorf("failed to open bluge writer: %w", err)
	}
	defer func() {
		log.Info("Closing Bluge...")
		_ = blugeWriter.Close()
	}()

	// 3. Catalog & repositories
	catalog, err := repositories.LoadCatalog(config.PacksDir, config.MediaDir, log)
	if err != nil {
		return fmt.Errorf("catalog loading failed: %w", err)
	}

	searchRepository := repositories.NewSearchRepository(blugeWriter, log, config.SearchLimit)
	if err := searchRepository.IndexCatalog(catalog); err != nil {
		return fmt.Errorf("question indexing failed: %w", err)
	}
	historyRepository := repositories.NewHistoryRepository(db, log, config.HistoryLimit)

	// 4. Session runtime & services
	store := runtime.NewSessionStore(catalog, config.Title())
	registry := runtime.NewRegistry()
	showService := services.NewShowService(store, registry, historyRepository, catalog, log)
	authService := services.NewAuthService(
		config.OperatorKeyHash, []byte(config.TokenSigningKey), config.AuthTokenDuration)

	stats, err := observability.NewStatsCollector(log)
	if err != nil {
		return fmt.Errorf("stats collector failed: %w", err)
	}

	// 5. Background workers
	janitor := workers.NewJanitor(log, store, registry, config.JanitorInterval, config.SessionIdleTTL)
	supervisor := workers.NewSupervisor(log, config.RestartInterval).Add(janitor)

	// 6. Context & signals
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go supervisor.Run(ctx)

	// 7. HTTP & WebSocket server
	wsHandler := infrastructure.NewWSHandler(log, showService, authService,
		config.WriteTimeout, config.PongTimeout)
	api := infrastructure.NewAPIHandler(log, catalog, historyRepository, searchRepository, stats, store)

	server := &http.Server{
		Addr:    config.Addr(),
		Handler: api.Router(wsHandler, config.PublicDir),
	}

	errChan := make(chan error, 1)
	go func() {
		log.Info("Starting server", "address", config.Addr(), "title", config.Title())
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- fmt.Errorf("server error: %w", err)
		}
	}()

	// 8. Wait for stop or error
	select {
	case <-ctx.Done():
		log.Info("Shutdown signal received")
	case err := <-errChan:
		return err
	}

	// 9. Graceful shutdown
	log.Info("Shutting down gracefully...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Warn("Forced shutdown", "err", err)
	}
	supervisor.Stop()
	log.Info("Program stopped cleanly")

	return nil
}
