package queue

import (
	"fmt"
	"time"

	"creatitube/pkg/config"
	"creatitube/pkg/logger"
	"creatitube/pkg/metrics"

	"github.com/goccy/go-json"
	amqp "github.com/rabbitmq/amqp091-go"
)

const (
	NotificationQueueName = "notification_queue"
	NotificationExchange  = "notifications"
	OrderPlacedRoutingKey = "order_placed"
)

type Client struct {
	conn    *amqp.Connection
	channel *amqp.Channel
	logger  *logger.Logger
}

func NewRabbitMQClient(cfg *config.Config, log *logger.Logger) (*Client, error) {
	url := fmt.Sprintf("amqp://%s:%s@%s:%s/",
		cfg.RabbitMQUser,
		cfg.RabbitMQPassword,
		cfg.RabbitMQHost,
		cfg.RabbitMQPort,
	)

	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}

	channel, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to open channel: %w", err)
	}

	err = channel.ExchangeDeclare(
		NotificationExchange, // name
		"direct",             // type
		true,                 // durable
		false,                // auto-deleted
		false,                // internal
		false,                // no-wait
		nil,                  // arguments
	)
	if err != nil {
		channel.Close()
		conn.Close()
		return nil, fmt.Errorf("failed to declare exchange: %w", err)
	}

	_, err = channel.QueueDeclare(
		NotificationQueueName, // name
		true,                  // durable
		false,                 // delete when unused
		false,                 // exclusive
		false,                 // no-wait
		amqp.Table{
			"x-max-priority": 10,
		},
	)
	if err != nil {
		channel.Close()
		conn.Close()
		return nil, fmt.Errorf("failed to declare queue: %w", err)
	}

	err = channel.QueueBind(
		NotificationQueueName, // queue name
		OrderPlacedRoutingKey, // routing key
		NotificationExchange,  // exchange
		false,
		nil,
	)
	if err != nil {
		channel.Close()
		conn.Close()
		return nil, fmt.Errorf("failed to bind queue: %w", err)
	}

	log.Info("Connected to RabbitMQ at %s:%s", cfg.RabbitMQHost, cfg.RabbitMQPort)

	return &Client{
		conn:    conn,
		channel: channel,
		logger:  log,
	}, nil
}

func (c *Client) Close() error {
	if c.channel != nil {
		c.channel.Close()
	}
	if c.conn != nil {
		return c.conn.Close()
	}
	return nil
}

// PublishOrderPlaced publishes a purchase to the notification queue.
func (c *Client) PublishOrderPlaced(event OrderPlacedEvent) error {
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	err = c.channel.Publish(
		NotificationExchange,  // exchange
		OrderPlacedRoutingKey, // routing key
		false,                 // mandatory
		false,                 // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			Body:         body,
			Priority:     clampPriority(event.Priority),
			DeliveryMode: amqp.Persistent,
			Timestamp:    time.Now(),
		},
	)
	metrics.RecordPublish(OrderPlacedRoutingKey, err)
	if err != nil {
		c.logger.Error("[RABBITMQ] Failed to publish message to exchange=%s, routing_key=%s: %v", NotificationExchange, OrderPlacedRoutingKey, err)
		return fmt.Errorf("failed to publish message: %w", err)
	}

	c.logger.Info("[RABBITMQ] Published order %s to exchange=%s, routing_key=%s", event.OrderID, NotificationExchange, OrderPlacedRoutingKey)
	return nil
}

// ConsumeOrderEvents delivers queued purchases to handler until the channel
// closes. Malformed messages are dropped; handler failures are requeued.
func (c *Client) ConsumeOrderEvents(handler func(event OrderPlacedEvent) error) error {
	msgs, err := c.channel.Consume(
		NotificationQueueName, // queue
		"",                    // consumer
		false,                 // auto-ack
		false,                 // exclusive
		false,                 // no-local
		false,                 // no-wait
		nil,                   // args
	)
	if err != nil {
		return fmt.Errorf("failed to register consumer: %w", err)
	}

	c.logger.Info("[RABBITMQ] Started consuming from notification queue: %s", NotificationQueueName)

	go func() {
		for msg := range msgs {
			event, err := DecodeOrderPlaced(msg.Body)
			if err != nil {
				c.logger.Error("[RABBITMQ] Dropping malformed message: %v, body=%s", err, string(msg.Body))
				msg.Nack(false, false)
				continue
			}

			if err := handler(event); err != nil {
				c.logger.Error("[RABBITMQ] Handler failed for order %s: %v", event.OrderID, err)
				msg.Nack(false, true)
				continue
			}

			msg.Ack(false)
			c.logger.Info("[RABBITMQ] Processed order %s", event.OrderID)
		}
	}()

	return nil
}

// GetQueueLength returns the number of messages waiting in the queue.
func (c *Client) GetQueueLength() (int, error) {
	queue, err := c.channel.QueueInspect(NotificationQueueName)
	if err != nil {
		return 0, err
	}
	return queue.Messages, nil
}

func clampPriority(p int) uint8 {
	if p < 0 {
		return 0
	}
	if p > 10 {
		return 10
	}
	return uint8(p)
}
