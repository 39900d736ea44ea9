package utils

import (
	"errors"
	"io/fs"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	App       AppConfig
	Database  DatabaseConfig
	Payment   PaymentConfig
	Trust     TrustConfig
	Messaging MessagingConfig
	Audit     AuditConfig
	RateLimit RateLimitConfig
}

type AppConfig struct {
	Name           string
	Port           string
	Debug          bool
	LogPath        string
	RequestTimeout time.Duration
	StoreDriver    string // postgres | memory
}

type DatabaseConfig struct {
	Host             string
	Port             string
	Name             string
	User             string
	Password         string
	MaxConns         int32
	AutoMigrate      bool
	LockTimeout      time.Duration
	StatementTimeout time.Duration
}

type PaymentConfig struct {
	Provider   string // mock | stripe
	SecretKey  string
	Currency   string
	HourlyRate int64 // minor units per hour
	Method     string
}

type TrustConfig struct {
	Queue         string // inline | asynq
	Workers       int
	QueueSize     int
	RedisAddr     string
	RedisPassword string
	RedisDB       int
}

type MessagingConfig struct {
	AMQPURL  string
	Exchange string
}

type AuditConfig struct {
	Buffer int
}

type RateLimitConfig struct {
	RPS   float64
	Burst int
}

func LoadConfig() (*Config, error) {
	viper.SetConfigFile(".env")
	viper.SetConfigType("env")

	// Set defaults
	viper.SetDefault("APP_NAME", "sevasetu")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("DEBUG", false)
	viper.SetDefault("LOG_PATH", "logs/")
	viper.SetDefault("REQUEST_TIMEOUT", "15s")
	viper.SetDefault("STORE_DRIVER", "postgres")
	viper.SetDefault("DB_PORT", "5432")
	viper.SetDefault("DB_MAX_CONNS", 10)
	viper.SetDefault("DB_AUTO_MIGRATE", false)
	viper.SetDefault("DB_LOCK_TIMEOUT", "3s")
	viper.SetDefault("DB_STATEMENT_TIMEOUT", "10s")
	viper.SetDefault("PAYMENT_PROVIDER", "mock")
	viper.SetDefault("PAYMENT_CURRENCY", "inr")
	viper.SetDefault("PAYMENT_HOURLY_RATE", 50000)
	viper.SetDefault("PAYMENT_METHOD", "pm_card_visa")
	viper.SetDefault("TRUST_QUEUE", "inline")
	viper.SetDefault("TRUST_WORKERS", 2)
	viper.SetDefault("TRUST_QUEUE_SIZE", 256)
	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("REDIS_DB", 0)
	viper.SetDefault("EVENTS_EXCHANGE", "sevasetu.events")
	viper.SetDefault("AUDIT_BUFFER", 1024)
	viper.SetDefault("RATE_LIMIT_RPS", 10)
	viper.SetDefault("RATE_LIMIT_BURST", 20)

	// .env is optional; environment variables win
	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
	}

	viper.AutomaticEnv()

	config := &Config{
		App: AppConfig{
			Name:           viper.GetString("APP_NAME"),
			Port:           viper.GetString("PORT"),
			Debug:          viper.GetBool("DEBUG"),
			LogPath:        viper.GetString("LOG_PATH"),
			RequestTimeout: viper.GetDuration("REQUEST_TIMEOUT"),
			StoreDriver:    viper.GetString("STORE_DRIVER"),
		},
		Database: DatabaseConfig{
			Host:             viper.GetString("DB_HOST"),
			Port:             viper.GetString("DB_PORT"),
			Name:             viper.GetString("DB_NAME"),
			User:             viper.GetString("DB_USER"),
			Password:         viper.GetString("DB_PASS"),
			MaxConns:         viper.GetInt32("DB_MAX_CONNS"),
			AutoMigrate:      viper.GetBool("DB_AUTO_MIGRATE"),
			LockTimeout:      viper.GetDuration("DB_LOCK_TIMEOUT"),
			StatementTimeout: viper.GetDuration("DB_STATEMENT_TIMEOUT"),
		},
		Payment: PaymentConfig{
			Provider:   viper.GetString("PAYMENT_PROVIDER"),
			SecretKey:  viper.GetString("STRIPE_SECRET_KEY"),
			Currency:   viper.GetString("PAYMENT_CURRENCY"),
			HourlyRate: viper.GetInt64("PAYMENT_HOURLY_RATE"),
			Method:     viper.GetString("PAYMENT_METHOD"),
		},
		Trust: TrustConfig{
			Queue:         viper.GetString("TRUST_QUEUE"),
			Workers:       viper.GetInt("TRUST_WORKERS"),
			QueueSize:     viper.GetInt("TRUST_QUEUE_SIZE"),
			RedisAddr:     viper.GetString("REDIS_ADDR"),
			RedisPassword: viper.GetString("REDIS_PASSWORD"),
			RedisDB:       viper.GetInt("REDIS_DB"),
		},
		Messaging: MessagingConfig{
			AMQPURL:  viper.GetString("AMQP_URL"),
			Exchange: viper.GetString("EVENTS_EXCHANGE"),
		},
		Audit: AuditConfig{
			Buffer: viper.GetInt("AUDIT_BUFFER"),
		},
		RateLimit: RateLimitConfig{
			RPS:   viper.GetFloat64("RATE_LIMIT_RPS"),
			Burst: viper.GetInt("RATE_LIMIT_BURST"),
		},
	}

	return config, nil
}
