package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"taskflow_realtime/internal/realtime/domain"
	"taskflow_realtime/pkg/logger"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// RedisEventBus fan-out events over redis pub/sub, channels chat:room:<id> and chat:user:<id>
type RedisEventBus struct {
	client redis.UniversalClient
}

// NewRedisEventBus create RedisEventBus
func NewRedisEventBus(client redis.UniversalClient) *RedisEventBus {
	return &RedisEventBus{client: client}
}

// Publish 將 frame 序列化後，發布到指定 channel
func (r *RedisEventBus) Publish(ctx context.Context, channel string, resp domain.WSResponse) error {
	data, err := json.Marshal(resp)
	if err != nil {
		return fmt.Errorf("marshal %s: %w", resp.Event, err)
	}
	return r.client.Publish(ctx, channel, data).Err()
}

// Subscribe 訂閱所有 room/user channel, handler runs on one goroutine until ctx is done
func (r *RedisEventBus) Subscribe(ctx context.Context, handler func(channel string, env domain.Envelope)) error {
	sub := r.client.PSubscribe(ctx, domain.RoomChannelPattern, domain.UserChannelPattern)

	// wait for the subscription to be confirmed
	if _, err := sub.Receive(ctx); err != nil {
		_ = sub.Close()
		return fmt.Errorf("psubscribe: %w", err)
	}

	go func() {
		defer sub.Close()
		ch := sub.Channel()

		for {
			select {
			case m, ok := <-ch:
				if !ok {
					return
				}

				var env domain.Envelope
				if err := json.Unmarshal([]byte(m.Payload), &env); err != nil {
					logger.Log.Error("event bus decode", zap.String("channel", m.Channel), zap.Error(err))
					continue
				}
				handler(m.Channel, env)
			case <-ctx.Done():
				logger.Log.Info("event bus subscription closed")
				return
			}
		}
	}()
	return nil
}
