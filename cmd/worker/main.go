package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/linkup-social/linkup/internal/config"
	"github.com/linkup-social/linkup/internal/repository"
	"github.com/linkup-social/linkup/internal/workers"
	"github.com/linkup-social/linkup/pkg/cache"
	"github.com/linkup-social/linkup/pkg/logger"
	"github.com/linkup-social/linkup/pkg/queue"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger := logger.NewLoggerWithLevel(cfg.Server.LogLevel)
	logger.Info("Starting LinkUp notification worker...")

	db, err := repository.NewDatabase(&cfg.Database)
	if err != nil {
		logger.WithError(err).Fatal("Failed to connect to database")
	}
	defer db.Close()

	redisClient := cache.NewRedisClient(
		cfg.Redis.Addr(),
		cfg.Redis.Password,
		cfg.Redis.DB,
		cfg.Redis.PoolSize,
		cfg.Redis.MinIdleConns,
	)
	defer redisClient.Close()

	ctx := context.Background()
	if err := redisClient.Ping(ctx); err != nil {
		logger.WithError(err).Fatal("Failed to connect to Redis")
	}

	consumer := queue.NewKafkaConsumer(cfg.Kafka.Brokers, cfg.Kafka.Topics.EngagementEvents, "notification-worker-group")
	defer consumer.Close()

	notificationRepo := repository.NewNotificationRepository(db.DB)

	worker := workers.NewNotificationWorker(consumer, notificationRepo, redisClient, logger)
	worker.Start(ctx)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down worker...")
	worker.Stop()
	logger.Info("Worker exited")
}
