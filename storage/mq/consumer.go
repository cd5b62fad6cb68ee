package mq

import (
	"fmt"

	"go.uber.org/zap"

	"Opora/pkg/logger"
)

type MessageHandler func([]byte) error

type ConsumeOptions struct {
	Queue         string
	Exchange      string
	RoutingKey    string
	ConsumerTag   string
	PrefetchCount int
	Handler       MessageHandler
}

// Consume 声明队列并阻塞消费，handler 返回错误时 nack 重入队
func Consume(opts ConsumeOptions) error {
	conn := Connection()

	if conn == nil {
		return fmt.Errorf("RabbitMQ connection is nil")
	}

	ch, err := conn.Channel()
	if err != nil {
		return fmt.Errorf("failed to open channel: %w", err)
	}
	defer ch.Close()

	if opts.Exchange != "" {
		if err := ch.ExchangeDeclare(
			opts.Exchange,
			"topic",
			true,  // durable
			false, // auto-delete
			false, // internal
			false, // no-wait
			nil,
		); err != nil {
			return fmt.Errorf("failed to declare exchange: %w", err)
		}
	}

	if _, err := ch.QueueDeclare(
		opts.Queue,
		true,  // durable
		false, // auto-delete
		false, // exclusive
		false, // no-wait
		nil,
	); err != nil {
		return fmt.Errorf("failed to declare queue: %w", err)
	}

	if opts.Exchange != "" && opts.RoutingKey != "" {
		if err := ch.QueueBind(opts.Queue, opts.RoutingKey, opts.Exchange, false, nil); err != nil {
			return fmt.Errorf("failed to bind queue: %w", err)
		}
	}

	if opts.PrefetchCount > 0 {
		if err := ch.Qos(opts.PrefetchCount, 0, false); err != nil {
			return fmt.Errorf("failed to set QoS: %w", err)
		}
	}

	msgs, err := ch.Consume(
		opts.Queue,
		opts.ConsumerTag,
		false, // auto-ack = false
		false, // exclusive
		false, // no-local
		false, // no-wait
		nil,
	)
	if err != nil {
		return fmt.Errorf("failed to register consumer: %w", err)
	}

	logger.Logger.Info("Started consuming messages",
		zap.String("queue", opts.Queue),
		zap.String("consumer_tag", opts.ConsumerTag),
		zap.Int("prefetch_count", opts.PrefetchCount),
	)

	for msg := range msgs {
		if err := opts.Handler(msg.Body); err != nil {
			logger.Logger.Error("Failed to process message",
				zap.String("queue", opts.Queue),
				zap.String("consumer_tag", opts.ConsumerTag),
				zap.Error(err),
			)

			msg.Nack(false, true) // requeue = true
			continue
		}

		msg.Ack(false)
	}

	return nil
}
