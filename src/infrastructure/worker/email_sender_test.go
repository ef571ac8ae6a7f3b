package worker

import (
	"context"
	"errors"
	"testing"
	"time"

	domainEvent "notification-dispatch-api/src/domain/event"
	logger "notification-dispatch-api/src/infrastructure/logger"

	"github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
)

type mockPipeline struct {
	processEventFn func(context.Context, *domainEvent.VerifiedEvent) error
	processed      []*domainEvent.VerifiedEvent
}

func (m *mockPipeline) ProcessEvent(ctx context.Context, ev *domainEvent.VerifiedEvent) error {
	m.processed = append(m.processed, ev)
	if m.processEventFn != nil {
		return m.processEventFn(ctx, ev)
	}
	return nil
}

type fakeAcknowledger struct {
	acked       bool
	nacked      bool
	nackRequeue bool
}

func (f *fakeAcknowledger) Ack(tag uint64, multiple bool) error {
	f.acked = true
	return nil
}

func (f *fakeAcknowledger) Nack(tag uint64, multiple bool, requeue bool) error {
	f.nacked = true
	f.nackRequeue = requeue
	return nil
}

func (f *fakeAcknowledger) Reject(tag uint64, requeue bool) error {
	f.nacked = true
	f.nackRequeue = requeue
	return nil
}

func setupLogger(t *testing.T) *logger.Logger {
	loggerInstance, err := logger.NewLogger()
	if err != nil {
		t.Fatalf("Failed to create logger: %v", err)
	}
	return loggerInstance
}

func TestEmailSenderWorker_HandleDelivery_Success(t *testing.T) {
	pipeline := &mockPipeline{}
	ack := &fakeAcknowledger{}
	w := NewEmailSenderWorker(nil, pipeline, setupLogger(t))

	body := []byte(`{"event":"verified","event_id":"evt-1","email":"alice@example.com","verification_code":"582341"}`)
	w.handleDelivery(context.Background(), amqp091.Delivery{Acknowledger: ack, Body: body})

	assert.Len(t, pipeline.processed, 1)
	assert.Equal(t, "verified", pipeline.processed[0].Event)
	assert.Equal(t, "evt-1", pipeline.processed[0].EventID)
	assert.Equal(t, "alice@example.com", pipeline.processed[0].Email)
	assert.Equal(t, "582341", pipeline.processed[0].VerificationCode)
	assert.True(t, ack.acked)
	assert.False(t, ack.nacked)
}

func TestEmailSenderWorker_HandleDelivery_UndecodablePayload(t *testing.T) {
	pipeline := &mockPipeline{}
	ack := &fakeAcknowledger{}
	w := NewEmailSenderWorker(nil, pipeline, setupLogger(t))

	w.handleDelivery(context.Background(), amqp091.Delivery{Acknowledger: ack, Body: []byte("not json")})

	assert.Empty(t, pipeline.processed)
	assert.True(t, ack.nacked)
	assert.False(t, ack.nackRequeue)
	assert.False(t, ack.acked)
}

func TestEmailSenderWorker_HandleDelivery_ProcessErrorStillAcks(t *testing.T) {
	pipeline := &mockPipeline{
		processEventFn: func(ctx context.Context, ev *domainEvent.VerifiedEvent) error {
			return errors.New("smtp unreachable")
		},
	}
	ack := &fakeAcknowledger{}
	w := NewEmailSenderWorker(nil, pipeline, setupLogger(t))

	body := []byte(`{"event":"verified","event_id":"evt-2","email":"bob@example.com","verification_code":"111111"}`)
	w.handleDelivery(context.Background(), amqp091.Delivery{Acknowledger: ack, Body: body})

	assert.Len(t, pipeline.processed, 1)
	assert.True(t, ack.acked)
	assert.False(t, ack.nacked)
}

func TestEmailSenderWorker_HandleDelivery_PanicNacks(t *testing.T) {
	pipeline := &mockPipeline{
		processEventFn: func(ctx context.Context, ev *domainEvent.VerifiedEvent) error {
			panic("boom")
		},
	}
	ack := &fakeAcknowledger{}
	w := NewEmailSenderWorker(nil, pipeline, setupLogger(t))

	body := []byte(`{"event":"verified","event_id":"evt-3","email":"eve@example.com","verification_code":"222222"}`)
	w.handleDelivery(context.Background(), amqp091.Delivery{Acknowledger: ack, Body: body})

	assert.True(t, ack.nacked)
	assert.False(t, ack.acked)
}

type mockConsumer struct {
	deliveries chan amqp091.Delivery
	consumeErr error
}

func (m *mockConsumer) Consume(ctx context.Context) (<-chan amqp091.Delivery, error) {
	if m.consumeErr != nil {
		return nil, m.consumeErr
	}
	return m.deliveries, nil
}

func TestEmailSenderWorker_Run_ConsumeError(t *testing.T) {
	consumer := &mockConsumer{consumeErr: errors.New("broker unavailable")}
	w := NewEmailSenderWorker(consumer, &mockPipeline{}, setupLogger(t))

	err := w.Run(context.Background())

	assert.Error(t, err)
}

func TestEmailSenderWorker_Run_StopsWhenChannelCloses(t *testing.T) {
	consumer := &mockConsumer{deliveries: make(chan amqp091.Delivery)}
	pipeline := &mockPipeline{}
	ack := &fakeAcknowledger{}
	w := NewEmailSenderWorker(consumer, pipeline, setupLogger(t))

	done := make(chan error, 1)
	go func() {
		done <- w.Run(context.Background())
	}()

	body := []byte(`{"event":"verified","event_id":"evt-10","email":"alice@example.com","verification_code":"582341"}`)
	consumer.deliveries <- amqp091.Delivery{Acknowledger: ack, Body: body}
	close(consumer.deliveries)

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after the delivery channel closed")
	}
	assert.Len(t, pipeline.processed, 1)
	assert.True(t, ack.acked)
}

func TestEmailSenderWorker_Run_CancelWaitsForInFlightEvent(t *testing.T) {
	consumer := &mockConsumer{deliveries: make(chan amqp091.Delivery, 1)}
	processing := make(chan struct{})
	release := make(chan struct{})
	pipeline := &mockPipeline{
		processEventFn: func(ctx context.Context, ev *domainEvent.VerifiedEvent) error {
			close(processing)
			<-release
			return nil
		},
	}
	ack := &fakeAcknowledger{}
	w := NewEmailSenderWorker(consumer, pipeline, setupLogger(t))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- w.Run(ctx)
	}()

	body := []byte(`{"event":"verified","event_id":"evt-11","email":"bob@example.com","verification_code":"111111"}`)
	consumer.deliveries <- amqp091.Delivery{Acknowledger: ack, Body: body}
	<-processing
	cancel()

	// The event in flight must finish before Run returns.
	select {
	case <-done:
		t.Fatal("Run returned while an event was still in flight")
	case <-time.After(50 * time.Millisecond):
	}

	close(release)
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after cancellation")
	}
	assert.True(t, ack.acked)
}

func TestEmailSenderWorker_Run_CancelStopsIdleWorker(t *testing.T) {
	consumer := &mockConsumer{deliveries: make(chan amqp091.Delivery)}
	w := NewEmailSenderWorker(consumer, &mockPipeline{}, setupLogger(t))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- w.Run(ctx)
	}()

	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after cancellation")
	}
}
