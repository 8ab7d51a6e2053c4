package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/Skotchmaster/orders/internal/config"
	"github.com/Skotchmaster/orders/internal/db"
	"github.com/Skotchmaster/orders/internal/httpserver"
	"github.com/Skotchmaster/orders/internal/logging"
	"github.com/Skotchmaster/orders/internal/metrics"
	"github.com/Skotchmaster/orders/internal/repo"
	"github.com/Skotchmaster/orders/internal/service"
)

// exit status when the store cannot be opened or migrated
const exitDatabaseUnavailable = 4

func main() {
	config.LoadEnvFile(".env")

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatal(err)
	}

	logger := logging.New(cfg.ServiceName, cfg.LogLevel)
	slog.SetDefault(logger)

	ctx, cancel := context.WithTimeout(logging.IntoContext(context.Background(), logger), 10*time.Second)
	store, err := db.Open(ctx, cfg.DatabaseURL)
	cancel()
	if err == nil {
		err = db.Migrate(store)
	}
	if err != nil {
		logger.Error("database init failed", "error", err)
		os.Exit(exitDatabaseUnavailable)
	}

	svc := service.New(repo.New(store))
	handler := &httpserver.OrderHTTP{Svc: svc}

	e := httpserver.New(logger, &httpserver.Deps{
		OrderHandler: handler,
		DB:           store,
		Metrics:      metrics.NewServerMetrics(prometheus.DefaultRegisterer, cfg.ServiceName),
		Gatherer:     prometheus.DefaultGatherer,
	})

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           e,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      15 * time.Second,
		ReadHeaderTimeout: 3 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		logger.Info("orders service running", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
			os.Exit(1)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	logger.Info("shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown error", "error", err)
	}

	if err := db.Close(store); err != nil {
		logger.Error("db close error", "error", err)
	}

	logger.Info("shutdown complete")
}
