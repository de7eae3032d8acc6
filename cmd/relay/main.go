package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/DanielPopoola/checkout-relay/internal/api"
	"github.com/DanielPopoola/checkout-relay/internal/app"
	"github.com/DanielPopoola/checkout-relay/internal/config"
	"github.com/DanielPopoola/checkout-relay/internal/interfaces/rest/handlers"
	"github.com/DanielPopoola/checkout-relay/internal/interfaces/rest/middleware"
	"github.com/DanielPopoola/checkout-relay/internal/worker"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	logger := cfg.Logger.NewLogger()
	slog.SetDefault(logger)

	logger.Info("starting checkout relay",
		"env", cfg.Primary.Env,
		"port", cfg.Server.Port,
		"log_level", cfg.Logger.Level,
	)

	relay := app.New(cfg, logger)

	doc, err := api.LoadSpec(context.Background())
	if err != nil {
		logger.Error("failed to load api spec", "error", err)
		os.Exit(1)
	}

	mux := http.NewServeMux()
	if err := api.RegisterDocsRoutes(mux, doc); err != nil {
		logger.Error("failed to register docs routes", "error", err)
		os.Exit(1)
	}

	h := handlers.NewPaymentHandler(relay.Payments, cfg.Server.PublicBaseURL, logger)
	h.RegisterRoutes(mux)

	router := http.Handler(mux)

	handler := middleware.Recovery(logger)(router)
	handler = middleware.Timeout(cfg.Server.RequestTimeout)(handler)
	handler = middleware.Logging(logger)(handler)

	server := &http.Server{
		Addr:         "0.0.0.0:" + cfg.Server.Port,
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	tokenWarmer := worker.NewTokenWarmer(relay.Tokens, cfg.Worker.TokenWarmInterval, logger)

	workerCtx, cancelWorkers := context.WithCancel(context.Background())
	defer cancelWorkers()

	go tokenWarmer.Start(workerCtx)

	go func() {
		logger.Info("server starting", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server...")

	cancelWorkers()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
	}

	logger.Info("server exited")
}
