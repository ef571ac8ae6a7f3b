package queue

import (
	"context"
	"errors"
	"testing"

	logger "notification-dispatch-api/src/infrastructure/logger"

	"github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
)

type fakeChannel struct {
	published   []amqp091.Publishing
	exchanges   []string
	routingKeys []string
	publishErr  error

	deliveries   chan amqp091.Delivery
	consumeQueue string
	autoAck      bool
	consumeErr   error
}

func (f *fakeChannel) ConsumeWithContext(ctx context.Context, queue, consumer string, autoAck, exclusive, noLocal, noWait bool, args amqp091.Table) (<-chan amqp091.Delivery, error) {
	f.consumeQueue = queue
	f.autoAck = autoAck
	if f.consumeErr != nil {
		return nil, f.consumeErr
	}
	return f.deliveries, nil
}

func (f *fakeChannel) PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp091.Publishing) error {
	f.exchanges = append(f.exchanges, exchange)
	f.routingKeys = append(f.routingKeys, key)
	f.published = append(f.published, msg)
	return f.publishErr
}

func (f *fakeChannel) Close() error {
	return nil
}

func setupLogger(t *testing.T) *logger.Logger {
	loggerInstance, err := logger.NewLogger()
	if err != nil {
		t.Fatalf("Failed to create logger: %v", err)
	}
	return loggerInstance
}

func setupClient(t *testing.T, channel *fakeChannel) *Client {
	return &Client{
		Channel: channel,
		Config:  RabbitConfig{Queue: "sending_message"},
		Logger:  setupLogger(t),
	}
}

func TestClient_Publish_PersistentJSONOnQueue(t *testing.T) {
	channel := &fakeChannel{}
	client := setupClient(t, channel)

	body := []byte(`{"event":"verified","event_id":"evt-1","email":"alice@example.com","verification_code":"582341"}`)
	err := client.Publish(context.Background(), body)

	assert.NoError(t, err)
	assert.Len(t, channel.published, 1)
	assert.Equal(t, "", channel.exchanges[0])
	assert.Equal(t, "sending_message", channel.routingKeys[0])
	assert.Equal(t, "application/json", channel.published[0].ContentType)
	assert.Equal(t, amqp091.Persistent, channel.published[0].DeliveryMode)
	assert.Equal(t, body, channel.published[0].Body)
}

func TestClient_Publish_Error(t *testing.T) {
	channel := &fakeChannel{publishErr: errors.New("channel closed")}
	client := setupClient(t, channel)

	err := client.Publish(context.Background(), []byte(`{}`))

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "sending_message")
}

func TestClient_Consume_ManualAckOnQueue(t *testing.T) {
	channel := &fakeChannel{deliveries: make(chan amqp091.Delivery)}
	client := setupClient(t, channel)

	deliveries, err := client.Consume(context.Background())

	assert.NoError(t, err)
	assert.NotNil(t, deliveries)
	assert.Equal(t, "sending_message", channel.consumeQueue)
	assert.False(t, channel.autoAck)
}

func TestClient_Consume_Error(t *testing.T) {
	channel := &fakeChannel{consumeErr: errors.New("channel closed")}
	client := setupClient(t, channel)

	_, err := client.Consume(context.Background())

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "sending_message")
}
