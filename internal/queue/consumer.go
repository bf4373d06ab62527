package queue

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

// Dialer opens broker connections.  It is amqp.Dial in production.
type Dialer func(url string) (*amqp.Connection, error)

// StartPredictionConsumer connects to RabbitMQ, declares the
// prediction.completed queue (durable) and logs every event it receives.
// It runs a reconnect loop with exponential backoff and only returns once
// ctx is cancelled.  Malformed messages are rejected without requeueing
// so the consumer never spins on them.
func StartPredictionConsumer(ctx context.Context, url string, dial Dialer, log *zap.Logger) error {
	if dial == nil {
		dial = amqp.Dial
	}
	backoff := time.Second
	for {
		conn, err := dial(url)
		if err != nil {
			log.Warn("prediction-consumer: failed to dial broker", zap.Error(err), zap.Duration("retry_in", backoff))
			if !sleep(ctx, backoff) {
				return ctx.Err()
			}
			if backoff < 30*time.Second {
				backoff *= 2
			}
			continue
		}
		backoff = time.Second // reset after successful connect

		err = consumeLoop(ctx, conn, log)
		_ = conn.Close()
		if ctx.Err() != nil {
			return ctx.Err()
		}
		log.Warn("prediction-consumer: consume loop ended, reconnecting", zap.Error(err))
		if !sleep(ctx, 2*time.Second) {
			return ctx.Err()
		}
	}
}

func consumeLoop(ctx context.Context, conn *amqp.Connection, log *zap.Logger) error {
	ch, err := conn.Channel()
	if err != nil {
		return fmt.Errorf("channel open: %w", err)
	}
	defer func() { _ = ch.Close() }()

	if err := ch.Qos(50, 0, false); err != nil {
		log.Warn("prediction-consumer: set QoS failed", zap.Error(err))
	}

	if _, err := ch.QueueDeclare(PredictionQueueName, true, false, false, false, nil); err != nil {
		return fmt.Errorf("queue declare: %w", err)
	}

	msgs, err := ch.Consume(PredictionQueueName, "", false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("queue consume: %w", err)
	}
	log.Info("prediction-consumer: consuming", zap.String("queue", PredictionQueueName))

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case d, ok := <-msgs:
			if !ok {
				return errors.New("deliveries channel closed")
			}
			if err := HandleMessage(d.Body, log); err != nil {
				log.Warn("prediction-consumer: handle message failed", zap.Error(err))
				_ = d.Nack(false, false) // reject, do not requeue to avoid tight loops
				continue
			}
			_ = d.Ack(false)
		}
	}
}

// HandleMessage decodes one event body and writes it to the log.
func HandleMessage(body []byte, log *zap.Logger) error {
	var ev PredictionCompletedEvent
	if err := json.Unmarshal(body, &ev); err != nil {
		return fmt.Errorf("unmarshal: %w", err)
	}
	if ev.RiskLevel == "" || ev.CompletedAt == "" {
		return errors.New("incomplete event")
	}
	log.Info("prediction completed",
		zap.Int("label", ev.Label),
		zap.Float64("p_diabetes", ev.ProbabilityDiabetes),
		zap.Float64("p_no_diabetes", ev.ProbabilityNoDiabetes),
		zap.String("risk_level", ev.RiskLevel),
		zap.Int("risk_factors", ev.RiskFactorCount),
		zap.Int("protective_factors", ev.ProtectiveFactorCount),
		zap.String("model_version", ev.ModelVersion),
		zap.String("source", ev.Source),
		zap.String("completed_at", ev.CompletedAt),
	)
	return nil
}

func sleep(ctx context.Context, d time.Duration) bool {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}
