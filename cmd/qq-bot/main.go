package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/jiangdengke/qq-bot/internal/amqp"
	"github.com/jiangdengke/qq-bot/internal/bot"
	"github.com/jiangdengke/qq-bot/internal/config"
	"github.com/jiangdengke/qq-bot/internal/echarts"
	"github.com/jiangdengke/qq-bot/internal/log"
	"github.com/jiangdengke/qq-bot/internal/services"
	"github.com/jiangdengke/qq-bot/internal/storage"
	"github.com/jiangdengke/qq-bot/internal/storage/memory"
	"github.com/jiangdengke/qq-bot/internal/translate"
)

func main() {
	// Load .env file for local development (ignore errors in production/docker)
	_ = godotenv.Load()

	logger := log.New(log.DefaultConfig())
	log.SetDefault(logger)

	logger.Info("Starting qq-bot")

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Error("Configuration validation failed", log.FieldError, err)
		os.Exit(1)
	}

	loc, err := cfg.Location()
	if err != nil {
		logger.Error("Failed to load timezone", log.FieldError, err, "timezone", cfg.Timezone)
		os.Exit(1)
	}
	clock := services.NewZoneClock(loc)

	// Choose the ledger backend. The city code lookup is only available
	// with the SQLite backend where the seeded table lives.
	var (
		ledger services.Ledger
		cities bot.CityCodeFinder
	)
	switch cfg.DataBackend {
	case "memory":
		ledger = memory.New()
		logger.Info("Using in-memory ledger")
	default:
		repo, err := storage.NewSQLiteRepository(cfg.SQLiteDBPath)
		if err != nil {
			logger.Error("Failed to initialize SQLite repository", log.FieldError, err, log.FieldPath, cfg.SQLiteDBPath)
			os.Exit(1)
		}
		defer repo.Close()
		ledger = repo
		cities = repo
		logger.Info("Using SQLite ledger", log.FieldPath, cfg.SQLiteDBPath)
	}

	overtime := services.NewOvertimeService(ledger, clock)
	renderer := echarts.NewClient(cfg.RenderBaseURL, cfg.ChartOutDir)
	translator := translate.NewClient(cfg.TranslateBaseURL)
	dispatcher := bot.NewDispatcher(overtime, renderer, translator, cities)

	amqpClient, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPEventQueue, cfg.AMQPReplyKey)
	if err != nil {
		logger.Error("Failed to initialize AMQP client", log.FieldError, err)
		os.Exit(1)
	}
	defer amqpClient.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		handler := func(ctx context.Context, event *amqp.MessageEvent) ([]bot.Reply, error) {
			return dispatcher.Dispatch(ctx, event.UserID, event.Text), nil
		}
		if err := amqpClient.Consume(ctx, handler); err != nil {
			if err != context.Canceled {
				logger.Error("Event consumption failed", log.FieldError, err)
			}
			cancel()
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigChan:
		logger.Info("Shutdown signal received", "signal", sig.String())
	case <-ctx.Done():
		logger.Info("Context cancelled")
	}

	logger.Info("Shutting down...")
	cancel()

	// Give the consumer a moment to ack in-flight deliveries.
	time.Sleep(2 * time.Second)
	logger.Info("Shutdown complete")
}
