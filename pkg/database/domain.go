package database

import (
	"time"

	"go.mongodb.org/mongo-driver/mongo"
)

// Connection definition connection string + retry setting
type Connection struct {
	ConnectStr string

	RetryCount    int
	RetryInterval time.Duration
}

// MongoDB definition mongo db
type MongoDB struct {
	Client   *mongo.Client
	Database *mongo.Database
}

// RedisConnection definition redis, sentinel wins when SentinelAddrs is set
type RedisConnection struct {
	Addr          string
	MasterName    string
	SentinelAddrs []string
	DB            int
}

// KafkaConnection definition kafka
type KafkaConnection struct {
	Brokers       []string
	Topic         string
	RetryCount    int
	RetryInterval time.Duration
}
