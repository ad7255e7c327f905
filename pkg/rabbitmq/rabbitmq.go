package rabbitmq

import (
	"context"
	"encoding/json"
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"
)

// Client wraps a single AMQP connection and channel. Queues are declared
// durable on first use so publisher and consumer can start in any order.
type Client struct {
	conn    *amqp.Connection
	channel *amqp.Channel
}

func NewClient(url string) (*Client, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %v", err)
	}

	channel, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("failed to open AMQP channel: %v", err)
	}

	return &Client{conn: conn, channel: channel}, nil
}

func (c *Client) declareQueue(name string) error {
	_, err := c.channel.QueueDeclare(name, true, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("failed to declare queue %q: %v", name, err)
	}
	return nil
}

// PublishJSON marshals payload and publishes it to the named queue via the
// default exchange.
func (c *Client) PublishJSON(ctx context.Context, queue string, payload any) error {
	if err := c.declareQueue(queue); err != nil {
		return err
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal message for queue %q: %v", queue, err)
	}

	err = c.channel.PublishWithContext(ctx, "", queue, false, false, amqp.Publishing{
		ContentType: "application/json",
		Body:        body,
	})
	if err != nil {
		return fmt.Errorf("failed to publish to queue %q: %v", queue, err)
	}
	return nil
}

// Consume starts delivering messages from the named queue to handler on a new
// goroutine. Acknowledgement is left to the handler.
func (c *Client) Consume(queue string, handler func(d amqp.Delivery)) error {
	if err := c.declareQueue(queue); err != nil {
		return err
	}

	deliveries, err := c.channel.Consume(queue, "", false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("failed to consume queue %q: %v", queue, err)
	}

	go func() {
		for d := range deliveries {
			handler(d)
		}
	}()

	return nil
}

func (c *Client) Close() error {
	if err := c.channel.Close(); err != nil {
		return err
	}
	return c.conn.Close()
}
