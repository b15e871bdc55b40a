// Package config предоставляет структуры и функцию для парсинга и загрузки конфига.
package config

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config общая структура для хранения настроек приложения PlayerZERO.
type Config struct {
	Env                     string `yaml:"env"`
	StorageConnectionString string `yaml:"storage_connection_string"`
	MigrationsPath          string `yaml:"migrations_path"`
	RedisConnection         `yaml:"redis_connection"`
	HTTPServer              `yaml:"http_server"`
	JWTToken                `yaml:"jwttoken"`
	RabbitMQ                `yaml:"rabbitmq"`
	SMTP                    `yaml:"smtp"`
	PaymentProvider         `yaml:"payment_provider"`
	Access                  `yaml:"access"`
	Uploads                 `yaml:"uploads"`
}

// HTTPServer структура для настройки сервера.
type HTTPServer struct {
	AddressHTTP    string        `yaml:"addresshttp"`
	TimeoutHTTP    time.Duration `yaml:"timeouthttp"`
	IdleTimeout    time.Duration `yaml:"idle_timeout"`
	FrontendOrigin string        `yaml:"frontend_origin"`
}

// RedisConnection структура для настройки подключения к redis.
type RedisConnection struct {
	AddressRedis string        `yaml:"addressredis"`
	Password     string        `yaml:"password"`
	User         string        `yaml:"user"`
	DB           int           `yaml:"db"`
	MaxRetries   int           `yaml:"max_retries"`
	DialTimeout  time.Duration `yaml:"dial_timeout"`
	TimeoutRedis time.Duration `yaml:"timeoutredis"`
}

// JWTToken структура для работы с jwt-токеном.
type JWTToken struct {
	JWTSecretKey string        `yaml:"jwt_secret_key"`
	TokenTTL     time.Duration `yaml:"token_ttl"`
}

// RabbitMQ структура для настройки подключения к брокеру уведомлений.
type RabbitMQ struct {
	RabbitMQURL        string        `yaml:"rabbitmq_url"`
	RabbitMQMaxRetries int           `yaml:"rabbitmq_max_retries"`
	RabbitMQRetryDelay time.Duration `yaml:"rabbitmq_retry_delay"`
}

// SMTP структура для настройки почтового транспорта.
type SMTP struct {
	SMTPHost string `yaml:"smtp_host"`
	SMTPPort int    `yaml:"smtp_port"`
	SMTPUser string `yaml:"smtp_user"`
	SMTPPass string `yaml:"smtp_pass"`
}

// PaymentProvider структура для работы с платёжным провайдером (Stripe).
type PaymentProvider struct {
	ProviderSecretKey string `yaml:"provider_secret_key"`
	WebhookSecret     string `yaml:"webhook_secret"`
	PriceID           string `yaml:"price_id"`
	SuccessURL        string `yaml:"success_url"`
	CancelURL         string `yaml:"cancel_url"`
}

// Access структура с параметрами логики доступа: пробный период,
// буферное окно для выбора базового снапшота и период обновления
// флага free mode.
type Access struct {
	TrialLength         time.Duration `yaml:"trial_length" env-default:"168h"`
	BufferWindow        time.Duration `yaml:"buffer_window" env-default:"4h"`
	FreeModeRefreshRate time.Duration `yaml:"free_mode_refresh_rate" env-default:"5m"`
}

// Uploads структура с лимитами загрузки снапшотов.
type Uploads struct {
	DailyUploadLimit    int `yaml:"daily_upload_limit" env-default:"1"`
	RetainedScreenshots int `yaml:"retained_screenshots" env-default:"7"`
}

// MustLoad функция для загрузки конфига, путь берётся из переменной окружения CONFIG_PATH.
func MustLoad() *Config {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		log.Fatal("CONFIG_PATH is not set")
	}
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		log.Fatalf("file: %s - does not exist", configPath)
	}
	var cfg Config

	if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
		log.Fatalf("cannot read config: %s", err)
	}
	return &cfg
}

func (c *Config) String() string {
	return fmt.Sprintf(
		"Env: %s\n"+
			"StorageConnectionString: %s\n"+
			"HTTPServer:\n"+
			"  Address: %s\n"+
			"  Timeout: %s\n"+
			"  IdleTimeout: %s\n"+
			"Access:\n"+
			"  TrialLength: %s\n"+
			"  BufferWindow: %s\n"+
			"  FreeModeRefreshRate: %s\n"+
			"Uploads:\n"+
			"  DailyUploadLimit: %d\n"+
			"  RetainedScreenshots: %d\n",
		c.Env,
		c.StorageConnectionString,
		c.AddressHTTP,
		c.TimeoutHTTP,
		c.IdleTimeout,
		c.TrialLength,
		c.BufferWindow,
		c.FreeModeRefreshRate,
		c.DailyUploadLimit,
		c.RetainedScreenshots,
	)
}
