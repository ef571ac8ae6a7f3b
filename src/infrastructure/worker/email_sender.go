package worker

import (
	"context"
	"encoding/json"

	"notification-dispatch-api/src/application/usecases/sender"
	domainEvent "notification-dispatch-api/src/domain/event"
	logger "notification-dispatch-api/src/infrastructure/logger"

	"github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

// Consumer hands the worker a stream of queue deliveries.
type Consumer interface {
	Consume(ctx context.Context) (<-chan amqp091.Delivery, error)
}

// EmailSenderWorker consumes verified events from the queue and drives each
// one through the send pipeline. One bad event never stops the loop; the
// event in flight always finishes before shutdown completes.
type EmailSenderWorker struct {
	consumer Consumer
	pipeline sender.ISendPipeline
	Logger   *logger.Logger
}

func NewEmailSenderWorker(
	consumer Consumer,
	pipeline sender.ISendPipeline,
	loggerInstance *logger.Logger,
) *EmailSenderWorker {
	return &EmailSenderWorker{
		consumer: consumer,
		pipeline: pipeline,
		Logger:   loggerInstance,
	}
}

// Run blocks consuming the queue until the context is cancelled or the
// delivery channel closes.
func (w *EmailSenderWorker) Run(ctx context.Context) error {
	deliveries, err := w.consumer.Consume(ctx)
	if err != nil {
		return err
	}

	w.Logger.Info("Start listening sending message queue")

	for {
		select {
		case <-ctx.Done():
			w.Logger.Info("Email sender worker stopping")
			return nil
		case delivery, ok := <-deliveries:
			if !ok {
				w.Logger.Warn("Queue delivery channel closed")
				return nil
			}
			w.handleDelivery(ctx, delivery)
		}
	}
}

// handleDelivery processes one queue delivery and acknowledges it once
// processing completed, whether the outcome was success or a handled failure.
func (w *EmailSenderWorker) handleDelivery(ctx context.Context, delivery amqp091.Delivery) {
	defer func() {
		if r := recover(); r != nil {
			w.Logger.Error("Panic while processing event", zap.Any("panic", r))
			if err := delivery.Nack(false, false); err != nil {
				w.Logger.Error("Failed to nack delivery after panic", zap.Error(err))
			}
		}
	}()

	var ev domainEvent.VerifiedEvent
	if err := json.Unmarshal(delivery.Body, &ev); err != nil {
		// Undecodable payloads are poison; requeueing them would loop forever.
		w.Logger.Error("Discarding undecodable event payload", zap.Error(err))
		if err := delivery.Nack(false, false); err != nil {
			w.Logger.Error("Failed to nack undecodable delivery", zap.Error(err))
		}
		return
	}

	if err := w.pipeline.ProcessEvent(ctx, &ev); err != nil {
		w.Logger.Error("Error processing verified event",
			zap.String("eventID", ev.EventID),
			zap.String("event", ev.Event),
			zap.Error(err))
	}

	if err := delivery.Ack(false); err != nil {
		w.Logger.Error("Failed to ack delivery", zap.String("eventID", ev.EventID), zap.Error(err))
	}
}
