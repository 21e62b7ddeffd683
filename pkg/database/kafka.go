package database

import (
	"context"
	"fmt"
	"time"

	"taskflow_realtime/pkg/logger"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// NewKafkaWriterWithRetry 建立 Kafka Writer 並確認 topic leader 可連線
func NewKafkaWriterWithRetry(ctx context.Context, k KafkaConnection) (*kafka.Writer, error) {
	if len(k.Brokers) == 0 {
		return nil, fmt.Errorf("kafka brokers not configured")
	}

	var err error
	for attempt := 1; attempt <= k.RetryCount; attempt++ {
		var conn *kafka.Conn
		conn, err = kafka.DialLeader(ctx, "tcp", k.Brokers[0], k.Topic, 0)
		if err == nil {
			_ = conn.Close()
			logger.Log.Info("kafka writer ready", zap.String("topic", k.Topic), zap.Int("attempt", attempt))
			return &kafka.Writer{
				Addr:     kafka.TCP(k.Brokers...),
				Topic:    k.Topic,
				Balancer: &kafka.LeastBytes{},
			}, nil
		}

		logger.Log.Warn("kafka dial failed", zap.Int("attempt", attempt), zap.Int("max", k.RetryCount), zap.Error(err))
		time.Sleep(k.RetryInterval)
	}

	return nil, fmt.Errorf("kafka unreachable after %d attempts: %w", k.RetryCount, err)
}
