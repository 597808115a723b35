// Package amqp is the bot's transport: it consumes chat message events
// published by the gateway and publishes the bot's replies back.
package amqp

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/rabbitmq/amqp091-go"

	"github.com/jiangdengke/qq-bot/internal/bot"
)

type Client struct {
	conn         *amqp091.Connection
	channel      *amqp091.Channel
	exchangeName string
	eventQueue   string
	replyKey     string

	// Indirection over PublishReplies so delivery handling is testable
	// without a live channel.
	publish func(ctx context.Context, msg *ReplyMessage) error
}

func NewClient(url, exchangeName, eventQueue, replyKey string) (*Client, error) {
	conn, err := amqp091.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("dial AMQP: %w", err)
	}

	channel, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("open channel: %w", err)
	}

	client := &Client{
		conn:         conn,
		channel:      channel,
		exchangeName: exchangeName,
		eventQueue:   eventQueue,
		replyKey:     replyKey,
	}
	client.publish = client.PublishReplies

	if err := client.setup(); err != nil {
		client.Close()
		return nil, fmt.Errorf("setup exchange and queue: %w", err)
	}

	return client, nil
}

func (c *Client) setup() error {
	err := c.channel.ExchangeDeclare(
		c.exchangeName, // name
		"direct",       // type
		true,           // durable
		false,          // auto-deleted
		false,          // internal
		false,          // no-wait
		nil,            // arguments
	)
	if err != nil {
		return fmt.Errorf("declare exchange: %w", err)
	}

	_, err = c.channel.QueueDeclare(
		c.eventQueue, // name
		true,         // durable
		false,        // delete when unused
		false,        // exclusive
		false,        // no-wait
		nil,          // arguments
	)
	if err != nil {
		return fmt.Errorf("declare event queue: %w", err)
	}

	err = c.channel.QueueBind(
		c.eventQueue,   // queue name
		c.eventQueue,   // routing key (same as queue name for direct exchange)
		c.exchangeName, // exchange
		false,
		nil,
	)
	if err != nil {
		return fmt.Errorf("bind event queue: %w", err)
	}

	return nil
}

// PublishReplies sends one handled event's replies to the reply routing key.
func (c *Client) PublishReplies(ctx context.Context, msg *ReplyMessage) error {
	body, err := msg.ToJSON()
	if err != nil {
		return fmt.Errorf("marshal reply message: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	err = c.channel.PublishWithContext(
		ctx,
		c.exchangeName, // exchange
		c.replyKey,     // routing key
		false,          // mandatory
		false,          // immediate
		amqp091.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp091.Persistent,
			Timestamp:    time.Now(),
			Body:         body,
		},
	)
	if err != nil {
		return fmt.Errorf("publish replies: %w", err)
	}

	slog.InfoContext(ctx, "Published replies",
		"message_id", msg.MessageID,
		"user_id", msg.UserID,
		"count", len(msg.Replies))

	return nil
}

// Handler processes one chat event and returns the replies to send back.
// Returning an error requeues the event.
type Handler func(ctx context.Context, event *MessageEvent) ([]bot.Reply, error)

// Consume reads chat events until the context ends. Malformed events are
// dropped (nack, no requeue); handler failures are requeued; events that
// produce no replies are acked silently.
func (c *Client) Consume(ctx context.Context, handler Handler) error {
	msgs, err := c.channel.Consume(
		c.eventQueue, // queue
		"",           // consumer
		false,        // auto-ack (we want manual ack)
		false,        // exclusive
		false,        // no-local
		false,        // no-wait
		nil,          // args
	)
	if err != nil {
		return fmt.Errorf("start consuming: %w", err)
	}

	slog.InfoContext(ctx, "Started consuming chat events", "queue", c.eventQueue)

	for {
		select {
		case <-ctx.Done():
			slog.InfoContext(ctx, "Stopping event consumption", "reason", ctx.Err())
			return ctx.Err()
		case delivery, ok := <-msgs:
			if !ok {
				return fmt.Errorf("event channel closed")
			}
			c.handleDelivery(ctx, delivery, handler)
		}
	}
}

// handleDelivery applies the ack policy to one delivery: malformed
// events are dropped without requeue, handler and publish failures are
// requeued, everything else is acked.
func (c *Client) handleDelivery(ctx context.Context, delivery amqp091.Delivery, handler Handler) {
	event, err := MessageEventFromJSON(delivery.Body)
	if err != nil {
		slog.ErrorContext(ctx, "Failed to unmarshal chat event", "error", err)
		delivery.Nack(false, false) // reject and don't requeue
		return
	}

	replies, err := handler(ctx, event)
	if err != nil {
		slog.ErrorContext(ctx, "Failed to handle chat event",
			"error", err,
			"message_id", event.MessageID,
			"user_id", event.UserID)
		delivery.Nack(false, true) // reject and requeue
		return
	}

	if len(replies) > 0 {
		if err := c.publish(ctx, NewReplyMessage(event, replies)); err != nil {
			slog.ErrorContext(ctx, "Failed to publish replies",
				"error", err,
				"message_id", event.MessageID)
			delivery.Nack(false, true)
			return
		}
	}

	delivery.Ack(false)
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
