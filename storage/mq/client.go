package mq

import (
	"context"
	"sync"

	amqp "github.com/rabbitmq/amqp091-go"

	"Opora/config"
)

var (
	conn     *amqp.Connection
	connOnce sync.Once
	connErr  error
)

func Init() error {
	connOnce.Do(func() {
		url := config.Cfg.GetRabbitMQURL()
		conn, connErr = amqp.Dial(url)
	})

	return connErr
}

// Connection 获取底层连接（供 consumer 使用）
func Connection() *amqp.Connection {
	return conn
}

func Close(ctx context.Context) error {
	if conn == nil {
		return nil
	}

	done := make(chan error, 1)
	go func() {
		done <- conn.Close()
	}()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case err := <-done:
		return err
	}
}
