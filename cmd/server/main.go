/*
main.go - Application entry point

PURPOSE:
  Initializes and starts the attendance dashboard server.
  Handles configuration, dependency injection, and graceful shutdown.

STARTUP SEQUENCE:
  1. Load .env and parse configuration (env + flags)
  2. Initialize zap logger
  3. Initialize SQLite store
  4. Create API handler with dependencies
  5. Start server with graceful shutdown

CONFIGURATION:
  -a / RUN_ADDRESS            listen address (default localhost:8080)
  -db / DATABASE_PATH         SQLite path (":memory:" for in-memory)
  -convention / PERIOD_CONVENTION  period boundary convention
  -user-a, -user-b / USER_A, USER_B  the two tracked users
  -rate / GAS_MONEY_RATE      gas money per coincident day
  SLACK_BOT_TOKEN, SLACK_CHANNEL_ID  optional Slack reporting

GRACEFUL SHUTDOWN:
  On SIGINT/SIGTERM:
  1. Stop accepting new connections
  2. Wait for active requests to complete (30s timeout)
  3. Close database connection
  4. Exit

SEE ALSO:
  - api/server.go: Router configuration
  - store/sqlite/sqlite.go: Database implementation
*/
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/rzlpil/attendance-engine/api"
	"github.com/rzlpil/attendance-engine/config"
	"github.com/rzlpil/attendance-engine/notify"
	"github.com/rzlpil/attendance-engine/store/sqlite"
)

func main() {
	logger, _ := zap.NewProduction()
	defer logger.Sync()
	sugar := logger.Sugar()

	cfg, err := config.Parse()
	if err != nil {
		sugar.Fatalw("configuration error", "error", err)
	}

	convention, err := cfg.PeriodConvention()
	if err != nil {
		sugar.Fatalw("invalid period convention", "error", err)
	}
	rate, err := cfg.RatePerDay()
	if err != nil {
		sugar.Fatalw("invalid gas money rate", "error", err)
	}

	store, err := sqlite.New(cfg.DatabasePath, sugar)
	if err != nil {
		sugar.Fatalw("database initialization error", "error", err)
	}
	defer store.Close()

	reporter := notify.NewReporter(cfg.SlackToken, cfg.SlackChannel)

	handler := api.NewHandler(store, sugar, convention, rate, cfg.UserA, cfg.UserB, reporter)
	router := api.NewRouter(handler)

	server := &http.Server{
		Addr:         cfg.RunAddress,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		sugar.Infow("server starting",
			"address", cfg.RunAddress,
			"convention", string(convention),
			"slack_enabled", cfg.SlackEnabled(),
		)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			sugar.Fatalw("server failed", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	sugar.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		sugar.Fatalw("server forced to shutdown", "error", err)
	}

	sugar.Info("server stopped")
}
