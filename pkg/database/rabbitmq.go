package database

import (
	"fmt"
	"time"

	"taskflow_realtime/pkg/logger"

	"github.com/streadway/amqp"
	"go.uber.org/zap"
)

// RabbitRepo definition rabbit repo
type RabbitRepo interface {
	QueueDeclare(name string) error
	Publish(exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	Close() error
}

type rabbitRepo struct {
	channel *amqp.Channel
}

// NewRabbitRepository create a RabbitRepository
func NewRabbitRepository(ch *amqp.Channel) RabbitRepo {
	return &rabbitRepo{channel: ch}
}

// AMQPURI build amqp connect string
func AMQPURI(host string, port int, user, password string) string {
	return fmt.Sprintf("amqp://%s:%s@%s:%d/", user, password, host, port)
}

// ConnectRabbitMQWithRetry 嘗試連線到 RabbitMQ
func ConnectRabbitMQWithRetry(d Connection) (*amqp.Connection, error) {
	var conn *amqp.Connection
	var err error

	for attempt := 1; attempt <= d.RetryCount; attempt++ {
		conn, err = amqp.Dial(d.ConnectStr)
		if err == nil {
			logger.Log.Info("rabbitmq connected", zap.Int("attempt", attempt))
			return conn, nil
		}

		logger.Log.Warn("rabbitmq connect failed", zap.Int("attempt", attempt), zap.Int("max", d.RetryCount), zap.Error(err))
		time.Sleep(d.RetryInterval)
	}

	return nil, fmt.Errorf("rabbitmq unreachable after %d attempts: %w", d.RetryCount, err)
}

// GetRabbitMQChannelWithRetry 使用已有的 RabbitMQ 連線嘗試取得 Channel
func GetRabbitMQChannelWithRetry(conn *amqp.Connection, maxRetries int, delay time.Duration) (*amqp.Channel, error) {
	var ch *amqp.Channel
	var err error

	for attempt := 1; attempt <= maxRetries; attempt++ {
		ch, err = conn.Channel()
		if err == nil {
			return ch, nil
		}

		logger.Log.Warn("rabbitmq channel failed", zap.Int("attempt", attempt), zap.Error(err))
		time.Sleep(delay)
	}

	return nil, fmt.Errorf("rabbitmq channel unavailable after %d attempts: %w", maxRetries, err)
}

func (r *rabbitRepo) QueueDeclare(name string) error {
	_, err := r.channel.QueueDeclare(name, true, false, false, false, nil)
	return err
}

func (r *rabbitRepo) Publish(exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error {
	return r.channel.Publish(exchange, key, mandatory, immediate, msg)
}

func (r *rabbitRepo) Close() error {
	return r.channel.Close()
}
