package events

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/sirupsen/logrus"
)

type HandlerFunc func(ctx context.Context, ev AppointmentBooked) error

type Consumer struct {
	url     string
	log     logrus.FieldLogger
	handler HandlerFunc
}

func NewConsumer(url string, log logrus.FieldLogger, h HandlerFunc) *Consumer {
	return &Consumer{url: url, log: log, handler: h}
}

// Run consumes until ctx is cancelled, redialing with exponential backoff.
func (c *Consumer) Run(ctx context.Context) error {
	backoff := time.Second
	for {
		conn, err := amqp.Dial(c.url)
		if err != nil {
			c.log.WithError(err).WithField("retry_in", backoff.String()).Warn("broker dial failed")
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(backoff):
			}
			if backoff < 30*time.Second {
				backoff *= 2
			}
			continue
		}
		backoff = time.Second

		err = c.consume(ctx, conn)
		_ = conn.Close()
		if ctx.Err() != nil {
			return ctx.Err()
		}
		c.log.WithError(err).Warn("consume loop ended, reconnecting")
	}
}

func (c *Consumer) consume(ctx context.Context, conn *amqp.Connection) error {
	ch, err := conn.Channel()
	if err != nil {
		return fmt.Errorf("channel open: %w", err)
	}
	defer func() { _ = ch.Close() }()

	if err := ch.Qos(50, 0, false); err != nil {
		c.log.WithError(err).Warn("set qos failed")
	}
	if _, err := ch.QueueDeclare(QueueAppointmentBooked, true, false, false, false, nil); err != nil {
		return fmt.Errorf("queue declare: %w", err)
	}

	msgs, err := ch.Consume(QueueAppointmentBooked, "", false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("queue consume: %w", err)
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case d, ok := <-msgs:
			if !ok {
				return errors.New("deliveries channel closed")
			}
			c.Handle(ctx, d)
		}
	}
}

// Handle acks processed messages. Malformed or failing ones are rejected
// without requeue so one bad message cannot spin the consumer.
func (c *Consumer) Handle(ctx context.Context, d amqp.Delivery) {
	var ev AppointmentBooked
	if err := json.Unmarshal(d.Body, &ev); err != nil {
		c.log.WithError(err).Warn("malformed booking event")
		_ = d.Nack(false, false)
		return
	}
	if err := c.handler(ctx, ev); err != nil {
		c.log.WithError(err).WithField("appointment_id", ev.AppointmentID).Warn("booking event handler failed")
		_ = d.Nack(false, false)
		return
	}
	_ = d.Ack(false)
}
