package main

import (
	"os"
	"time"

	"gestionale/internal/amqp"
	"gestionale/internal/cli"
	"gestionale/internal/services"
)

func main() {
	cli.LoadEnvFile()
	logger := cli.SetupLogger()
	logger.Info("Starting checkup-worker")

	cfg := cli.LoadAndValidateConfig(logger)
	if cfg.AMQPURL == "" {
		logger.Error("AMQP_URL=off disables the broker, but the checkup worker cannot run without one")
		os.Exit(1)
	}

	repo := cli.InitSQLite(logger, cfg.SQLiteDBPath)
	defer repo.Close()

	ctx, done := cli.GracefulShutdown(logger, 30*time.Second, nil)

	amqpClient, err := amqp.ConnectWithRetry(ctx, cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPCheckupQueue)
	if err != nil {
		logger.Error("Failed to connect to AMQP broker", "error", err)
		os.Exit(1)
	}
	defer amqpClient.Close()

	session := services.NewSessionService(repo)
	processor := services.NewCheckupProcessor(repo, session, amqpClient)

	runOnce := func() {
		sent, err := processor.RunOnce(ctx)
		if err != nil {
			logger.Error("Checkup run failed", "error", err)
			return
		}
		logger.Info("Checkup run finished", "sent", sent)
	}

	runOnce()

	ticker := time.NewTicker(cfg.CheckupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			cli.WaitForShutdown(ctx, done)
			logger.Info("Checkup worker stopped gracefully")
			return
		case <-ticker.C:
			runOnce()
		}
	}
}
