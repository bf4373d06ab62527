// Command consumer reads prediction.completed events from RabbitMQ and
// logs them.  It reconnects until interrupted.
package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/iliyamo/diabetes-risk-predictor/internal/config"
	"github.com/iliyamo/diabetes-risk-predictor/internal/queue"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}
	log, err := config.NewLogger(cfg)
	if err != nil {
		panic(err)
	}
	defer func() { _ = log.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.Info("prediction consumer starting", zap.String("queue", queue.PredictionQueueName))
	if err := queue.StartPredictionConsumer(ctx, cfg.AMQPURL, nil, log); err != nil && !errors.Is(err, context.Canceled) {
		log.Error("consumer stopped", zap.Error(err))
		os.Exit(1)
	}
	log.Info("prediction consumer stopped")
}
