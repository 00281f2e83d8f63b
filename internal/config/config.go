package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"

	"github.com/carnaval-microservice/internal/domain"
)

type Config struct {
	Server   ServerConfig
	Storage  StorageConfig
	Database DatabaseConfig
	Redis    RedisConfig
	Alerts   AlertsConfig
	Log      LogConfig
	Worker   WorkerConfig
}

type ServerConfig struct {
	Host string
	Port int
	Env  string
}

// StorageConfig selects the repository backend.
// "memory" is the default; "postgres" enables the durable variant.
type StorageConfig struct {
	Driver string
}

type DatabaseConfig struct {
	Host            string
	Port            int
	User            string
	Password        string
	DBName          string
	SSLMode         string
	MaxConns        int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	ConnMaxIdleTime time.Duration
}

type RedisConfig struct {
	Enabled  bool
	Host     string
	Port     int
	Password string
	DB       int
}

// AlertsConfig - initial occupancy thresholds, adjustable at runtime
// through the config endpoint
type AlertsConfig struct {
	CriticalThreshold float64
	WarningThreshold  float64
	LowThreshold      float64
}

type LogConfig struct {
	Level string
}

type WorkerConfig struct {
	Enabled           bool
	ConsumerGroup     string
	StreamReadTimeout time.Duration
}

func Load() (*Config, error) {
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	// A missing .env is fine: environment variables still apply
	_ = viper.ReadInConfig()

	cfg := &Config{
		Server: ServerConfig{
			Host: viper.GetString("API_HOST"),
			Port: viper.GetInt("API_PORT"),
			Env:  viper.GetString("API_ENV"),
		},
		Storage: StorageConfig{
			Driver: viper.GetString("STORAGE_DRIVER"),
		},
		Database: DatabaseConfig{
			Host:            viper.GetString("DB_HOST"),
			Port:            viper.GetInt("DB_PORT"),
			User:            viper.GetString("DB_USER"),
			Password:        viper.GetString("DB_PASSWORD"),
			DBName:          viper.GetString("DB_NAME"),
			SSLMode:         viper.GetString("DB_SSLMODE"),
			MaxConns:        viper.GetInt("DB_MAX_CONNS"),
			MaxIdleConns:    viper.GetInt("DB_MAX_IDLE_CONNS"),
			ConnMaxLifetime: time.Duration(viper.GetInt("DB_CONN_MAX_LIFETIME")) * time.Second,
			ConnMaxIdleTime: time.Duration(viper.GetInt("DB_CONN_MAX_IDLE_TIME")) * time.Second,
		},
		Redis: RedisConfig{
			Enabled:  viper.GetBool("REDIS_ENABLED"),
			Host:     viper.GetString("REDIS_HOST"),
			Port:     viper.GetInt("REDIS_PORT"),
			Password: viper.GetString("REDIS_PASSWORD"),
			DB:       viper.GetInt("REDIS_DB"),
		},
		Alerts: AlertsConfig{
			CriticalThreshold: viper.GetFloat64("ALERT_CRITICAL_THRESHOLD"),
			WarningThreshold:  viper.GetFloat64("ALERT_WARNING_THRESHOLD"),
			LowThreshold:      viper.GetFloat64("ALERT_LOW_THRESHOLD"),
		},
		Log: LogConfig{
			Level: viper.GetString("LOG_LEVEL"),
		},
		Worker: WorkerConfig{
			Enabled:           viper.GetBool("WORKER_ENABLED"),
			ConsumerGroup:     viper.GetString("WORKER_CONSUMER_GROUP"),
			StreamReadTimeout: time.Duration(viper.GetInt("WORKER_STREAM_READ_TIMEOUT")) * time.Millisecond,
		},
	}

	// Set default values if not provided
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Storage.Driver == "" {
		cfg.Storage.Driver = "memory"
	}
	if cfg.Storage.Driver != "memory" && cfg.Storage.Driver != "postgres" {
		return nil, fmt.Errorf("unknown storage driver: %s", cfg.Storage.Driver)
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	defaults := domain.DefaultThresholds()
	if cfg.Alerts.CriticalThreshold == 0 {
		cfg.Alerts.CriticalThreshold = defaults.Critical
	}
	if cfg.Alerts.WarningThreshold == 0 {
		cfg.Alerts.WarningThreshold = defaults.Warning
	}
	if cfg.Alerts.LowThreshold == 0 {
		cfg.Alerts.LowThreshold = defaults.Low
	}
	if cfg.Worker.ConsumerGroup == "" {
		cfg.Worker.ConsumerGroup = "carnaval-notification-workers"
	}
	if cfg.Worker.StreamReadTimeout == 0 {
		cfg.Worker.StreamReadTimeout = 5000 * time.Millisecond
	}

	return cfg, nil
}

// Thresholds converts the alerts section into the domain value passed to
// the venue use case at construction.
func (c *Config) Thresholds() domain.AlertThresholds {
	return domain.AlertThresholds{
		Critical: c.Alerts.CriticalThreshold,
		Warning:  c.Alerts.WarningThreshold,
		Low:      c.Alerts.LowThreshold,
	}
}

func (c *Config) GetServerAddr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

func (c *Config) GetRedisAddr() string {
	return fmt.Sprintf("%s:%d", c.Redis.Host, c.Redis.Port)
}
