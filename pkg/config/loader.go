package config

import (
	"bytes"
	"errors"
	"fmt"
	"log"
	"os"
	"strings"
	"sync"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// EnvInfo 服務資訊 from .env
type EnvInfo struct {
	RealtimeService  string
	RealtimePort     string
	RealtimeYAMLPath string
	RealtimeLogPath  string
}

// EnvConfig 服務資訊
var (
	EnvConfig = initEnv()
	envConfig EnvInfo
	once      sync.Once
	env       string
)

func initEnv() EnvInfo {
	once.Do(func() {
		loadDotEnv()

		env = os.Getenv("ENV")

		envConfig = EnvInfo{
			RealtimeService:  getEnvOr("REALTIME_SERVICE", "realtime_service"),
			RealtimePort:     os.Getenv("REALTIME_SERVICE_PORT"),
			RealtimeYAMLPath: getEnvOr("REALTIME_SERVICE_YAML", "./config"),
			RealtimeLogPath:  getEnvOr("REALTIME_SERVICE_LOG", "./logs"),
		}
	})

	return envConfig
}

func loadDotEnv() {
	path, err := GetPath(".env", 5)
	if err != nil {
		log.Printf("Warning: Could not get .env path: %v", err)
		return
	}
	if err := godotenv.Load(path); err != nil {
		log.Printf("Warning: Could not load .env file: %v", err)
	}
}

func getEnvOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// IsProduction check run env
func IsProduction() bool {
	return env == "production"
}

// IsLocal check run env
func IsLocal() bool {
	return env == "local"
}

// LoadConfig 加載配置, ${VAR} placeholders are expanded from the environment
func LoadConfig[T any](serviceName string, configPath string) (T, error) {
	var cfg T

	v := viper.New()
	v.SetConfigName(serviceName)
	v.SetConfigType("yaml")
	v.AddConfigPath(configPath)

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		return cfg, fmt.Errorf("loading config file: %w", err)
	}

	rawConfig, err := os.ReadFile(v.ConfigFileUsed())
	if err != nil {
		return cfg, fmt.Errorf("reading raw config file: %w", err)
	}

	// 替換 ${} 占位符為環境變數的值
	expandedConfig := os.ExpandEnv(string(rawConfig))
	if err := v.ReadConfig(bytes.NewBufferString(expandedConfig)); err != nil {
		return cfg, fmt.Errorf("reading expanded config: %w", err)
	}

	if err := v.Unmarshal(&cfg); err != nil {
		return cfg, fmt.Errorf("unmarshaling config: %w", err)
	}
	return cfg, nil
}

// GetRedisSetting get redis sentinel setting from .env
func GetRedisSetting() (string, []string) {
	var sentinelAddrs []string

	// REDIS_SENTINEL*_IP + REDIS_SENTINEL*_PORT
	for _, kv := range os.Environ() {
		parts := strings.SplitN(kv, "=", 2)
		if len(parts) != 2 {
			continue
		}
		key, value := parts[0], parts[1]

		if strings.HasPrefix(key, "REDIS_SENTINEL") && strings.HasSuffix(key, "_IP") {
			port := os.Getenv(strings.Replace(key, "_IP", "_PORT", 1))
			if port != "" {
				sentinelAddrs = append(sentinelAddrs, fmt.Sprintf("%s:%s", value, port))
			}
		}
	}

	return getEnvOr("REDIS_MASTER_NAME", "mymaster"), sentinelAddrs
}

// GetPath use fileName loop maxCount find file path
func GetPath(fileName string, maxCount int) (string, error) {
	path := "./" + fileName

	for i := 0; i < maxCount; i++ {
		if _, err := os.Stat(path); err == nil {
			return path, nil
		}
		path = "../" + path
	}
	return "", errors.New(fileName + " can't find path")
}
