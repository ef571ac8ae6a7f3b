package queue

import (
	"context"
	"fmt"

	logger "notification-dispatch-api/src/infrastructure/logger"
	"notification-dispatch-api/src/infrastructure/utils"

	"github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

// RabbitConfig holds queue-related configuration
type RabbitConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	VHost    string
	Queue    string
}

func loadRabbitConfig() RabbitConfig {
	return RabbitConfig{
		Host:     utils.GetEnv("RABBITMQ_HOST", "localhost"),
		Port:     utils.GetEnvInt("RABBITMQ_PORT", 5672),
		User:     utils.GetEnv("RABBITMQ_USER", "guest"),
		Password: utils.GetEnv("RABBITMQ_PASSWORD", "guest"),
		VHost:    utils.GetEnv("RABBITMQ_VHOST", "/"),
		Queue:    utils.GetEnv("RABBITMQ_QUEUE", "sending_message"),
	}
}

func (c RabbitConfig) URL() string {
	vhost := c.VHost
	if vhost == "/" {
		vhost = ""
	}
	return fmt.Sprintf("amqp://%s:%s@%s:%d/%s", c.User, c.Password, c.Host, c.Port, vhost)
}

// amqpChannel is the subset of amqp091.Channel the client uses.
type amqpChannel interface {
	ConsumeWithContext(ctx context.Context, queue, consumer string, autoAck, exclusive, noLocal, noWait bool, args amqp091.Table) (<-chan amqp091.Delivery, error)
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp091.Publishing) error
	Close() error
}

// Client wraps one AMQP connection and channel with the durable queue the
// sender worker listens on already declared.
type Client struct {
	Conn    *amqp091.Connection
	Channel amqpChannel
	Config  RabbitConfig
	Logger  *logger.Logger
}

func NewClient(loggerInstance *logger.Logger) (*Client, error) {
	cfg := loadRabbitConfig()

	conn, err := amqp091.Dial(cfg.URL())
	if err != nil {
		return nil, fmt.Errorf("error connecting to rabbitmq: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("error creating channel: %w", err)
	}

	_, err = ch.QueueDeclare(
		cfg.Queue,
		true,  // durable
		false, // autoDelete
		false, // exclusive
		false, // noWait
		nil,
	)
	if err != nil {
		ch.Close()
		conn.Close()
		return nil, fmt.Errorf("error declaring queue %q: %w", cfg.Queue, err)
	}

	loggerInstance.Info("Connected to RabbitMQ",
		zap.String("host", cfg.Host),
		zap.String("queue", cfg.Queue))

	return &Client{
		Conn:    conn,
		Channel: ch,
		Config:  cfg,
		Logger:  loggerInstance,
	}, nil
}

// Consume starts delivering messages from the queue with manual
// acknowledgement. The caller acks after processing each delivery; the channel
// closes when the connection goes away or Close is called.
func (c *Client) Consume(ctx context.Context) (<-chan amqp091.Delivery, error) {
	deliveries, err := c.Channel.ConsumeWithContext(
		ctx,
		c.Config.Queue,
		"",    // consumer tag
		false, // autoAck
		false, // exclusive
		false, // noLocal
		false, // noWait
		nil,
	)
	if err != nil {
		return nil, fmt.Errorf("error consuming queue %q: %w", c.Config.Queue, err)
	}
	return deliveries, nil
}

// Publish sends a persistent JSON payload to the queue via the default
// exchange.
func (c *Client) Publish(ctx context.Context, body []byte) error {
	err := c.Channel.PublishWithContext(
		ctx,
		"", // default exchange
		c.Config.Queue,
		false, // mandatory
		false, // immediate
		amqp091.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp091.Persistent,
			Body:         body,
		},
	)
	if err != nil {
		return fmt.Errorf("error publishing to queue %q: %w", c.Config.Queue, err)
	}
	return nil
}

func (c *Client) Close() error {
	if err := c.Channel.Close(); err != nil {
		c.Logger.Warn("Error closing rabbitmq channel", zap.Error(err))
	}
	if err := c.Conn.Close(); err != nil {
		return fmt.Errorf("error closing rabbitmq connection: %w", err)
	}
	return nil
}
