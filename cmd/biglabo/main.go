package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"time"

	"biglabo/internal/amqp"
	"biglabo/internal/cli"
	"biglabo/internal/core"
	apphttp "biglabo/internal/http"
	"biglabo/internal/services"
)

func main() {
	cli.LoadEnvFile()
	logger := cli.SetupLogger()
	cfg := cli.LoadAndValidateConfig(logger)

	store := cli.InitConfigStore(logger, cfg)
	logger.Info("Initialized configuration store", "backend", cfg.ConfigBackend)

	// AMQP is optional: without it saves still work, they just aren't
	// forwarded to the spreadsheet sync worker.
	var amqpClient *amqp.Client
	if cfg.AMQPURL != "" {
		var err error
		amqpClient, err = amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
		if err != nil {
			logger.Error("Failed to initialize AMQP client", "error", err)
			os.Exit(1)
		}
		logger.Info("AMQP client initialized", "exchange", cfg.AMQPExchange, "queue", cfg.AMQPQueue)
	} else {
		logger.Info("AMQP disabled - no AMQP_URL provided")
	}

	configService := services.NewConfigService(store, amqpClient)
	srv := apphttp.NewServer(":"+cfg.Port, core.NewStore(), configService)

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
		if err := configService.Close(); err != nil {
			logger.Error("Config service close error", "error", err)
		}
	})

	logger.Info("Starting biglabo server", "port", cfg.Port, "backend", cfg.ConfigBackend)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error("Server error", "error", err, "port", cfg.Port)
		os.Exit(1)
	}

	cli.WaitForShutdown(ctx, done)
	slog.Info("Server stopped gracefully")
}
