package service

import (
	"context"
	"encoding/json"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"

	q "github.com/iliyamo/diabetes-risk-predictor/internal/queue"
)

// EventPublisher delivers prediction events.  Failures are reported to
// the caller, which logs them and carries on.
type EventPublisher interface {
	PublishPredictionCompleted(ctx context.Context, event q.PredictionCompletedEvent) error
}

// AMQPPublisher publishes events to RabbitMQ.  Each call dials its own
// connection, which is plenty for the event rate of a single form.
type AMQPPublisher struct {
	URL string
	Log *zap.Logger
}

// PublishPredictionCompleted publishes event to the prediction.completed
// queue.  It never panics; any error is logged and returned so the caller
// can choose to ignore it.  Messages are marked as persistent.
func (p *AMQPPublisher) PublishPredictionCompleted(ctx context.Context, event q.PredictionCompletedEvent) error {
	conn, err := amqp.Dial(p.URL)
	if err != nil {
		p.Log.Warn("rabbitmq: dial failed", zap.Error(err))
		return err
	}
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		p.Log.Warn("rabbitmq: channel open failed", zap.Error(err))
		return err
	}
	defer func() { _ = ch.Close() }()

	// Ensure the queue exists (idempotent). Durable so messages survive broker restarts.
	if _, err := ch.QueueDeclare(
		q.PredictionQueueName, // name
		true,                  // durable
		false,                 // autoDelete
		false,                 // exclusive
		false,                 // noWait
		nil,                   // args
	); err != nil {
		p.Log.Warn("rabbitmq: queue declare failed", zap.Error(err))
		return err
	}

	body, err := json.Marshal(event)
	if err != nil {
		p.Log.Warn("rabbitmq: marshal event failed", zap.Error(err))
		return err
	}

	pub := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent, // store on disk
		Timestamp:    time.Now().UTC(),
		Body:         body,
	}

	if err := ch.PublishWithContext(ctx,
		"",                    // default exchange
		q.PredictionQueueName, // routing key = queue name
		false,                 // mandatory
		false,                 // immediate
		pub,
	); err != nil {
		p.Log.Warn("rabbitmq: publish failed", zap.Error(err))
		return err
	}
	return nil
}
