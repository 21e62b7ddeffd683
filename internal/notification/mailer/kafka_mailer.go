package mailer

import (
	"context"
	"fmt"

	errprocess "taskflow_realtime/pkg/err"
	"taskflow_realtime/pkg/logger"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// MessageWriter subset of *kafka.Writer
type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaMailer write email jobs to a kafka topic, keyed by recipient
type KafkaMailer struct {
	writer MessageWriter
	sender Sender
}

// NewKafkaMailer create KafkaMailer
func NewKafkaMailer(writer MessageWriter, sender Sender) *KafkaMailer {
	return &KafkaMailer{writer: writer, sender: sender}
}

// Send write one job
func (m *KafkaMailer) Send(ctx context.Context, to, subject, body string) (string, error) {
	job, data, err := m.sender.job(to, subject, body)
	if err != nil {
		return "", err
	}

	err = m.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(to),
		Value: data,
		Headers: []kafka.Header{
			{Key: "job_id", Value: []byte(job.ID)},
		},
	})
	if err != nil {
		return "", errprocess.Set(fmt.Sprintf("to[%s] 寫入 Kafka 失敗 : %v", to, err))
	}

	logger.Log.Debug("email job written", zap.String("job_id", job.ID))
	return job.ID, nil
}

// Close flush and close writer
func (m *KafkaMailer) Close() error {
	return m.writer.Close()
}
