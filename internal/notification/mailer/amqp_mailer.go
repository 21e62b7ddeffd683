package mailer

import (
	"context"
	"fmt"
	"time"

	"taskflow_realtime/pkg/database"
	errprocess "taskflow_realtime/pkg/err"
	"taskflow_realtime/pkg/logger"

	"github.com/streadway/amqp"
	"go.uber.org/zap"
)

// AMQPMailer publish email jobs to a durable rabbitmq queue
type AMQPMailer struct {
	repo   database.RabbitRepo
	queue  string
	sender Sender
}

// NewAMQPMailer declare queue and create AMQPMailer
func NewAMQPMailer(repo database.RabbitRepo, queue string, sender Sender) (*AMQPMailer, error) {
	if err := repo.QueueDeclare(queue); err != nil {
		return nil, fmt.Errorf("declare queue %s: %w", queue, err)
	}
	return &AMQPMailer{repo: repo, queue: queue, sender: sender}, nil
}

// Send publish one job on the default exchange
func (m *AMQPMailer) Send(_ context.Context, to, subject, body string) (string, error) {
	job, data, err := m.sender.job(to, subject, body)
	if err != nil {
		return "", err
	}

	err = m.repo.Publish(
		"",      // 預設 exchange
		m.queue, // queue 名稱
		false,
		false,
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			MessageId:    job.ID,
			Timestamp:    time.Now(),
			Body:         data,
		},
	)
	if err != nil {
		return "", errprocess.Set(fmt.Sprintf("to[%s] 發送 RabbitMQ 訊息失敗 : %v", to, err))
	}

	logger.Log.Debug("email job queued", zap.String("job_id", job.ID), zap.String("queue", m.queue))
	return job.ID, nil
}

// Close close channel
func (m *AMQPMailer) Close() error {
	return m.repo.Close()
}
