package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"wisefido-monitor/pkg/config"

	"github.com/joho/godotenv"
)

// Config monitor service configuration
type Config struct {
	HTTP struct {
		Addr string
	}

	Simulation struct {
		TickInterval time.Duration // default 3000ms
		Seed         int64         // 0 = seeded from the wall clock
	}

	Redis struct {
		Enabled bool
		config.RedisConfig
		KeyPrefix   string // "vital-monitor:patient:"
		TTL         int    // seconds
		AlarmStream string // "vital-monitor:alarm-events"
	}

	Database struct {
		Enabled bool
		config.DatabaseConfig
	}

	MQTT struct {
		Enabled bool
		config.MQTTConfig
		AlarmTopic string // "vital-monitor/alarms"
	}

	Metrics struct {
		Enabled bool
	}

	Log struct {
		Level  string
		Format string
	}
}

// Load reads the configuration from the environment. Variables from ENV_FILE
// (default ".env") fill in anything not already set; a missing file is ignored.
func Load() (*Config, error) {
	envFile := getEnv("ENV_FILE", ".env")
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load %s: %w", envFile, err)
	}

	cfg := &Config{}

	cfg.HTTP.Addr = getEnv("HTTP_ADDR", ":8080")

	tickMs, err := getEnvInt("SIM_TICK_INTERVAL_MS", 3000)
	if err != nil {
		return nil, err
	}
	if tickMs <= 0 {
		return nil, fmt.Errorf("SIM_TICK_INTERVAL_MS must be positive, got %d", tickMs)
	}
	cfg.Simulation.TickInterval = time.Duration(tickMs) * time.Millisecond

	seed, err := strconv.ParseInt(getEnv("SIM_SEED", "0"), 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid SIM_SEED: %w", err)
	}
	cfg.Simulation.Seed = seed

	// Redis
	cfg.Redis.Enabled = getEnvBool("REDIS_ENABLED", false)
	cfg.Redis.Addr = "localhost:6379"
	cfg.Redis.RedisConfig.LoadFromEnv("REDIS")
	cfg.Redis.KeyPrefix = getEnv("CACHE_KEY_PREFIX", "vital-monitor:patient:")
	if cfg.Redis.TTL, err = getEnvInt("CACHE_TTL", 30); err != nil {
		return nil, err
	}
	cfg.Redis.AlarmStream = getEnv("ALARM_EVENT_STREAM", "vital-monitor:alarm-events")

	// PostgreSQL
	cfg.Database.Enabled = getEnvBool("DB_ENABLED", false)
	cfg.Database.Host = "localhost"
	cfg.Database.Port = 5432
	cfg.Database.User = "postgres"
	cfg.Database.Password = "postgres"
	cfg.Database.Database = "vital_monitor"
	cfg.Database.SSLMode = "disable"
	cfg.Database.DatabaseConfig.LoadFromEnv("DB")

	// MQTT
	cfg.MQTT.Enabled = getEnvBool("MQTT_ENABLED", false)
	cfg.MQTT.Broker = "tcp://localhost:1883"
	cfg.MQTT.ClientID = "wisefido-monitor"
	cfg.MQTT.QoS = 1
	cfg.MQTT.MQTTConfig.LoadFromEnv("MQTT")
	cfg.MQTT.AlarmTopic = getEnv("MQTT_ALARM_TOPIC", "vital-monitor/alarms")

	cfg.Metrics.Enabled = getEnvBool("METRICS_ENABLED", true)

	cfg.Log.Level = getEnv("LOG_LEVEL", "info")
	cfg.Log.Format = getEnv("LOG_FORMAT", "json")

	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return n, nil
}

func getEnvBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		return defaultValue
	}
	return b
}
