package config

import "time"

// Realtime definition realtime_service YAML structure
type Realtime struct {
	Port     string         `mapstructure:"port"`
	MongoSQL DatabaseConfig `mapstructure:"mongo"`
	Redis    RedisConfig    `mapstructure:"redis"`
	RabbitMQ DatabaseConfig `mapstructure:"rabbitmq"`
	Kafka    KafkaConfig    `mapstructure:"kafka"`
	Mail     MailConfig     `mapstructure:"mail"`
	Typing   TypingConfig   `mapstructure:"typing"`
	WS       WSConfig       `mapstructure:"ws"`
	JWT      JWTConfig      `mapstructure:"jwt"`
}

// RedisConfig definition redis setting
type RedisConfig struct {
	// Addr single node address, used when no sentinel is configured in .env
	Addr        string        `mapstructure:"addr"`
	RedisDB     int           `mapstructure:"redis_db"`
	SettingsTTL time.Duration `mapstructure:"settings_ttl"`
}

// DatabaseConfig definition db setting
type DatabaseConfig struct {
	Host          string `mapstructure:"host"`
	Port          int    `mapstructure:"port"`
	User          string `mapstructure:"user"`
	Password      string `mapstructure:"password"`
	Database      string `mapstructure:"database"`
	RetryInterval int    `mapstructure:"retry_interval"`
	RetryCount    int    `mapstructure:"retry_count"`
}

// KafkaConfig definition kafka setting
type KafkaConfig struct {
	Brokers       []string `mapstructure:"brokers"`
	Topic         string   `mapstructure:"topic"`
	RetryInterval int      `mapstructure:"retry_interval"`
	RetryCount    int      `mapstructure:"retry_count"`
}

// MailConfig definition outbound mail dispatch
type MailConfig struct {
	// Transport amqp | kafka | "" (disabled)
	Transport  string `mapstructure:"transport"`
	Queue      string `mapstructure:"queue"`
	SenderName string `mapstructure:"sender_name"`
	From       string `mapstructure:"from"`
}

// TypingConfig definition typing indicator timing
type TypingConfig struct {
	StaleAfter time.Duration `mapstructure:"stale_after"`
	SweepSpec  string        `mapstructure:"sweep_spec"`
}

// WSConfig definition websocket connection setting
type WSConfig struct {
	PingInterval time.Duration `mapstructure:"ping_interval"`
	SendBuffer   int           `mapstructure:"send_buffer"`
}

// JWTConfig definition jwt verification
type JWTConfig struct {
	Secret string `mapstructure:"secret"`
}

// ApplyDefaults fill zero values
func (c *Realtime) ApplyDefaults() {
	if c.Port == "" {
		c.Port = "5000"
	}
	if c.Typing.StaleAfter <= 0 {
		c.Typing.StaleAfter = 3 * time.Second
	}
	if c.Typing.SweepSpec == "" {
		c.Typing.SweepSpec = "@every 5s"
	}
	if c.WS.PingInterval <= 0 {
		c.WS.PingInterval = 30 * time.Second
	}
	if c.WS.SendBuffer <= 0 {
		c.WS.SendBuffer = 64
	}
	if c.Redis.SettingsTTL <= 0 {
		c.Redis.SettingsTTL = 5 * time.Minute
	}
	if c.Mail.Queue == "" {
		c.Mail.Queue = "mail.outbound"
	}
	if c.Mail.SenderName == "" {
		c.Mail.SenderName = "Frooxi Workspace"
	}
}
