// Command sighting-feed consumes sighting events from RabbitMQ and appends
// them to a plain text feed.
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/iliyamo/superhero-sightings/internal/config"
	"github.com/iliyamo/superhero-sightings/internal/logging"
	"github.com/iliyamo/superhero-sightings/internal/queue"
)

func main() {
	_ = godotenv.Load()

	cfg := config.LoadFeedConfig()
	logger, err := logging.New(cfg.Env, cfg.LogLevel)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	c := &queue.Consumer{URL: cfg.AMQPURL, FeedPath: cfg.Path, Log: logger}
	logger.Info("consuming sighting events", zap.String("queue", queue.SightingReportedQueue), zap.String("feed", cfg.Path))
	err = c.Run(ctx)
	failed := err != nil && ctx.Err() == nil
	stop()
	if failed {
		logger.Error("consumer stopped", zap.Error(err))
	}
	_ = logger.Sync()
	if failed {
		os.Exit(1)
	}
}
