package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"taskflow_realtime/internal/api/handlers"
	"taskflow_realtime/internal/api/router"
	chatapp "taskflow_realtime/internal/chat/app"
	chatrepo "taskflow_realtime/internal/chat/repository"
	ntapp "taskflow_realtime/internal/notification/app"
	ntdomain "taskflow_realtime/internal/notification/domain"
	"taskflow_realtime/internal/notification/mailer"
	ntrepo "taskflow_realtime/internal/notification/repository"
	rtapp "taskflow_realtime/internal/realtime/app"
	rtrepo "taskflow_realtime/internal/realtime/repository"
	"taskflow_realtime/pkg/config"
	"taskflow_realtime/pkg/database"
	"taskflow_realtime/pkg/logger"
	"taskflow_realtime/pkg/metrics"
	"taskflow_realtime/pkg/token"

	gfshutdown "github.com/gelmium/graceful-shutdown"
	"github.com/go-redis/redis/v8"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	fiber_log "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"
)

const shutdownTimeout = 15 * time.Second

func main() {
	logger.Log = logger.Initialize(config.EnvConfig.RealtimeService, config.EnvConfig.RealtimeLogPath)
	cfg, err := config.LoadConfig[config.Realtime](config.EnvConfig.RealtimeService, config.EnvConfig.RealtimeYAMLPath)
	if err != nil {
		logger.Log.Fatal("load config", zap.Error(err))
	}
	cfg.ApplyDefaults()
	if config.EnvConfig.RealtimePort != "" {
		cfg.Port = config.EnvConfig.RealtimePort
	}
	token.SetSecret(cfg.JWT.Secret)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// 1. 建立 Mongo 連線
	uri := database.MongoURI(cfg.MongoSQL.Host, cfg.MongoSQL.Port, cfg.MongoSQL.User, cfg.MongoSQL.Password)
	mongo, err := database.NewMongoDB(ctx,
		database.Connection{
			ConnectStr:    uri,
			RetryCount:    cfg.MongoSQL.RetryCount,
			RetryInterval: time.Duration(cfg.MongoSQL.RetryInterval) * time.Second,
		},
		cfg.MongoSQL.Database)
	if err != nil {
		logger.Log.Fatal("Unable to connect to mongoDB database after retries",
			zap.String("host", cfg.MongoSQL.Host),
			zap.Error(err))
	}

	// 2. metrics
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.NewMetrics(reg)

	// 3. Redis (跨實例事件 + 設定快取), optional
	var (
		redisClient redis.UniversalClient
		bus         rtapp.EventBus
		recipients  = ntrepo.NewMongoRecipientRepository(mongo.Database)
	)
	masterName, sentinel := config.GetRedisSetting()
	if len(sentinel) > 0 || cfg.Redis.Addr != "" {
		redisClient, err = database.NewRedisClient(ctx, database.RedisConnection{
			Addr:          cfg.Redis.Addr,
			MasterName:    masterName,
			SentinelAddrs: sentinel,
			DB:            cfg.Redis.RedisDB,
		})
		if err != nil {
			logger.Log.Fatal(fmt.Sprintf("connect redis err : %v", err))
		}
		bus = rtrepo.NewRedisEventBus(redisClient)
		recipients = ntrepo.NewCachedRecipientRepository(
			recipients,
			database.NewRedisRepository[ntdomain.Recipient](redisClient),
			cfg.Redis.SettingsTTL,
		)
	} else {
		logger.Log.Warn("redis not configured, events stay in process")
	}

	// 4. mail transport
	mail, err := newMailer(ctx, cfg)
	if err != nil {
		logger.Log.Fatal("mail transport", zap.String("transport", cfg.Mail.Transport), zap.Error(err))
	}

	// 5. realtime core
	hub := rtapp.NewHub(m)
	typing := rtapp.NewTypingBroadcaster(hub, cfg.Typing.StaleAfter)
	if err := typing.Start(cfg.Typing.SweepSpec); err != nil {
		logger.Log.Fatal("typing sweep schedule", zap.String("spec", cfg.Typing.SweepSpec), zap.Error(err))
	}
	fanout := rtapp.NewFanout(hub, bus)
	if err := fanout.Listen(ctx); err != nil {
		logger.Log.Fatal("event bus subscribe", zap.Error(err))
	}

	// 6. UseCases
	groupRepo := chatrepo.NewMongoGroupRepository(mongo.Database)
	msgRepo := chatrepo.NewMongoChatMessageRepository(mongo.Database)
	memberRepo := chatrepo.NewMongoMemberRepository(mongo.Database)

	messageUC := chatapp.NewMessageUseCase(groupRepo, msgRepo, memberRepo, fanout)
	groupUC := chatapp.NewGroupUseCase(groupRepo, memberRepo, fanout)
	notificationUC := ntapp.NewNotificationUseCase(recipients, fanout, mail, m)

	// 7. 啟動 Fiber
	r := fiber.New(fiber.Config{DisableStartupMessage: config.IsProduction()})
	file, err := os.OpenFile(fmt.Sprintf("%s/access.log", config.EnvConfig.RealtimeLogPath), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0666)
	if err != nil {
		log.Fatalf("Failed to open log file: %v", err)
	}
	defer file.Close()

	r.Use(recover.New())
	r.Use(cors.New())
	r.Use(fiber_log.New(fiber_log.Config{
		Output: file, // 将日志输出到文件
	}))

	router.RegisterRoutes(r, router.Handlers{
		Chat:         handlers.NewChatHandler(messageUC, groupUC),
		Notification: handlers.NewNotificationHandler(notificationUC),
		Voice:        handlers.NewVoiceHandler(hub),
		Realtime:     rtapp.NewRealtimeWebsocketHandler(hub, typing, cfg.WS.PingInterval, cfg.WS.SendBuffer),
	}, reg)

	port := ":" + cfg.Port
	go func() {
		logger.Log.Info("Realtime Service listening", zap.String("port", port))
		if err := r.Listen(port); err != nil {
			logger.Log.Fatal("Failed to start Fiber", zap.Error(err))
		}
	}()

	wait := gfshutdown.GracefulShutdown(ctx, shutdownTimeout, map[string]gfshutdown.Operation{
		"fiber": func(ctx context.Context) error {
			return r.ShutdownWithContext(ctx)
		},
		"typing": func(ctx context.Context) error {
			return typing.Stop(ctx)
		},
		"mongo": func(ctx context.Context) error {
			return mongo.Close(ctx)
		},
		"redis": func(context.Context) error {
			cancel()
			if redisClient == nil {
				return nil
			}
			return redisClient.Close()
		},
		"mail": func(context.Context) error {
			if mail == nil {
				return nil
			}
			return mail.Close()
		},
	})

	exitCode := <-wait
	logger.Log.Info("Realtime Service exited", zap.Int("code", exitCode))
	logger.Log.Sync()
	os.Exit(exitCode)
}

// newMailer pick mail transport by config; nil when mail is disabled
func newMailer(ctx context.Context, cfg config.Realtime) (mailer.Mailer, error) {
	sender := mailer.Sender{Name: cfg.Mail.SenderName, Address: cfg.Mail.From}

	switch cfg.Mail.Transport {
	case "amqp":
		conn, err := database.ConnectRabbitMQWithRetry(database.Connection{
			ConnectStr:    database.AMQPURI(cfg.RabbitMQ.Host, cfg.RabbitMQ.Port, cfg.RabbitMQ.User, cfg.RabbitMQ.Password),
			RetryCount:    cfg.RabbitMQ.RetryCount,
			RetryInterval: time.Duration(cfg.RabbitMQ.RetryInterval) * time.Second,
		})
		if err != nil {
			return nil, err
		}
		ch, err := database.GetRabbitMQChannelWithRetry(conn, cfg.RabbitMQ.RetryCount, time.Duration(cfg.RabbitMQ.RetryInterval)*time.Second)
		if err != nil {
			return nil, err
		}
		return mailer.NewAMQPMailer(database.NewRabbitRepository(ch), cfg.Mail.Queue, sender)
	case "kafka":
		writer, err := database.NewKafkaWriterWithRetry(ctx, database.KafkaConnection{
			Brokers:       cfg.Kafka.Brokers,
			Topic:         cfg.Kafka.Topic,
			RetryCount:    cfg.Kafka.RetryCount,
			RetryInterval: time.Duration(cfg.Kafka.RetryInterval) * time.Second,
		})
		if err != nil {
			return nil, err
		}
		return mailer.NewKafkaMailer(writer, sender), nil
	case "":
		logger.Log.Warn("mail transport disabled")
		return nil, nil
	}
	return nil, fmt.Errorf("unknown mail transport %q", cfg.Mail.Transport)
}
