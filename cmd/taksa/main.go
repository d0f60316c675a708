package main

import (
	"context"
	"net/http"
	"os"
	"time"

	"taksa/internal/amqp"
	"taksa/internal/auth"
	"taksa/internal/backend"
	"taksa/internal/cli"
	"taksa/internal/core"
	apphttp "taksa/internal/http"
	applog "taksa/internal/log"
	"taksa/internal/roster"
	"taksa/internal/services"
)

func main() {
	cli.LoadEnvFile()
	logger := cli.SetupLogger(applog.ComponentApp)
	cfg := cli.LoadAndValidateConfig(logger)

	// Persistence backend (file or sqlite)
	backendConfig, err := backend.FromAppConfig(cfg)
	if err != nil {
		logger.Error("Invalid backend configuration", "error", err)
		os.Exit(1)
	}
	factory := backend.NewFactory(logger.Logger)
	result, err := factory.CreateBackend(context.Background(), backendConfig)
	if err != nil {
		logger.Error("Failed to initialize data backend", "error", err, "backend", cfg.DataBackend)
		os.Exit(1)
	}
	if result.Cleanup != nil {
		defer func() {
			if err := result.Cleanup(); err != nil {
				logger.Error("Backend cleanup error", "error", err)
			}
		}()
	}
	store := result.Backend

	// AMQP is optional: without it payments are still recorded, just not
	// mirrored to the spreadsheet.
	var amqpClient *amqp.Client
	if cfg.AMQPURL != "" {
		amqpClient, err = amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
		if err != nil {
			logger.Warn("AMQP unavailable, payment mirroring disabled", "error", err)
			amqpClient = nil
		} else {
			logger.Info("AMQP client initialized", "exchange", cfg.AMQPExchange, "queue", cfg.AMQPQueue)
		}
	} else {
		logger.Info("AMQP disabled - no AMQP_URL provided")
	}

	gate := auth.NewGate(store, store)
	dues := services.NewDuesService(store, cfg.Tariff())
	payments := services.NewPaymentService(store, amqpClient)
	defer payments.Close()
	rosterSvc := services.NewRosterService(store, roster.Options{
		FundDefault:    cfg.FundMonthly,
		PINPlaceholder: cfg.PINPlaceholder,
	})

	srv := apphttp.NewServer(":"+cfg.Port, gate, dues, payments, rosterSvc, core.FeeMode(cfg.DefaultFeeMode))

	// Configure server timeouts and limits
	srv.ReadTimeout = 10 * time.Second
	srv.WriteTimeout = 10 * time.Second
	srv.IdleTimeout = 60 * time.Second
	srv.MaxHeaderBytes = 1 << 16 // 64KB

	ctx, done := cli.GracefulShutdown(logger, 30*time.Second, func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("Server shutdown error", "error", err)
		}
	})

	logger.Info("Starting taksa server", "port", cfg.Port, "backend", cfg.DataBackend, "default_mode", cfg.DefaultFeeMode)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error("Server error", "error", err, "port", cfg.Port)
		os.Exit(1)
	}

	cli.WaitForShutdown(ctx, done)
	logger.Info("Server stopped gracefully")
}
