package database

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"taskflow_realtime/pkg/logger"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// ErrCacheMiss key not in redis
var ErrCacheMiss = errors.New("redis.Nil")

// RedisRepository 定义接口
type RedisRepository[T any] interface {
	Set(ctx context.Context, key string, value T, ttl time.Duration) error
	Get(ctx context.Context, key string) (T, error)
	Del(ctx context.Context, key string) error
}

type redisRepository[T any] struct {
	client redis.UniversalClient
}

// NewRedisClient init Redis connection, Sentinel when sentinel addrs exist
func NewRedisClient(ctx context.Context, c RedisConnection) (redis.UniversalClient, error) {
	var rdb redis.UniversalClient
	if len(c.SentinelAddrs) > 0 {
		rdb = redis.NewFailoverClient(&redis.FailoverOptions{
			MasterName:    c.MasterName,    // 哨兵主节点名称
			SentinelAddrs: c.SentinelAddrs, // 哨兵地址列表
			DB:            c.DB,
		})
	} else {
		rdb = redis.NewClient(&redis.Options{
			Addr: c.Addr,
			DB:   c.DB,
		})
	}

	// 测试连接
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return rdb, nil
}

// NewRedisRepository wrap client as json typed repository (Set, Get, Del)
func NewRedisRepository[T any](client redis.UniversalClient) RedisRepository[T] {
	return &redisRepository[T]{client: client}
}

func (r *redisRepository[T]) Set(ctx context.Context, key string, value T, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal %s: %w", key, err)
	}

	return r.client.Set(ctx, key, data, ttl).Err()
}

func (r *redisRepository[T]) Get(ctx context.Context, key string) (T, error) {
	var zeroValue T
	val, err := r.client.Get(ctx, key).Result()
	if err == redis.Nil {
		return zeroValue, ErrCacheMiss
	} else if err != nil {
		return zeroValue, fmt.Errorf("failed to get %s: %w", key, err)
	}

	var result T
	if err := json.Unmarshal([]byte(val), &result); err != nil {
		logger.Log.Error("redis get", zap.String("key", key), zap.Error(err))
		return zeroValue, fmt.Errorf("failed to unmarshal %s: %w", key, err)
	}

	return result, nil
}

func (r *redisRepository[T]) Del(ctx context.Context, key string) error {
	return r.client.Del(ctx, key).Err()
}
