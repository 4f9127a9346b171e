package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/m04kA/SMC-SalonService/internal/scheduling"
)

var ErrInvalidConfig = errors.New("config: invalid configuration")

// Config конфигурация сервиса
type Config struct {
	Server       ServerConfig       `toml:"server"`
	Database     DatabaseConfig     `toml:"database"`
	Logs         LogsConfig         `toml:"logs"`
	Metrics      MetricsConfig      `toml:"metrics"`
	Booking      BookingConfig      `toml:"booking"`
	Notification NotificationConfig `toml:"notification"`
	Redis        RedisConfig        `toml:"redis"`
	Kafka        KafkaConfig        `toml:"kafka"`
	RateLimit    RateLimitConfig    `toml:"rate_limit"`
}

// ServerConfig параметры HTTP сервера, таймауты в секундах
type ServerConfig struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`
	WriteTimeout    int `toml:"write_timeout"`
	IdleTimeout     int `toml:"idle_timeout"`
	ShutdownTimeout int `toml:"shutdown_timeout"`
}

type DatabaseConfig struct {
	Host            string `toml:"host"`
	Port            int    `toml:"port"`
	User            string `toml:"user"`
	Password        string `toml:"password"`
	DBName          string `toml:"dbname"`
	SSLMode         string `toml:"sslmode"`
	MaxOpenConns    int    `toml:"max_open_conns"`
	MaxIdleConns    int    `toml:"max_idle_conns"`
	ConnMaxLifetime int    `toml:"conn_max_lifetime"` // секунды
}

// DSN строка подключения для lib/pq
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode)
}

type LogsConfig struct {
	Level string `toml:"level"`
	File  string `toml:"file"`
}

type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

// BookingConfig правила расписания салона
type BookingConfig struct {
	Timezone                  string `toml:"timezone"`
	OpenHour                  int    `toml:"open_hour"`
	CloseHour                 int    `toml:"close_hour"`
	SlotIntervalMinutes       int    `toml:"slot_interval_minutes"`
	DefaultDurationMinutes    int    `toml:"default_duration_minutes"`
	MaxAppointmentsPerDay     int    `toml:"max_appointments_per_day"`
	CancellationDeadlineHours int    `toml:"cancellation_deadline_hours"`
}

// Policy собирает scheduling.Policy из конфигурации
func (b BookingConfig) Policy() (scheduling.Policy, error) {
	loc, err := time.LoadLocation(b.Timezone)
	if err != nil {
		return scheduling.Policy{}, fmt.Errorf("%w: timezone %q: %w", ErrInvalidConfig, b.Timezone, err)
	}

	p := scheduling.Policy{
		OpenHour:              b.OpenHour,
		CloseHour:             b.CloseHour,
		SlotInterval:          time.Duration(b.SlotIntervalMinutes) * time.Minute,
		DefaultDuration:       time.Duration(b.DefaultDurationMinutes) * time.Minute,
		MaxAppointmentsPerDay: b.MaxAppointmentsPerDay,
		CancellationDeadline:  time.Duration(b.CancellationDeadlineHours) * time.Hour,
		Location:              loc,
	}
	if err := p.Validate(); err != nil {
		return scheduling.Policy{}, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return p, nil
}

// NotificationConfig клиент отправки писем-подтверждений
// Пустой URL отключает отправку
type NotificationConfig struct {
	URL     string `toml:"url"`
	APIKey  string `toml:"api_key"`
	Timeout int    `toml:"timeout"` // секунды
}

func (n NotificationConfig) Enabled() bool {
	return n.URL != ""
}

type RedisConfig struct {
	Enabled  bool   `toml:"enabled"`
	Addr     string `toml:"addr"`
	Password string `toml:"password"`
	DB       int    `toml:"db"`
}

// KafkaConfig публикация событий записей
// Пустой brokers отключает публикацию
type KafkaConfig struct {
	Brokers          string `toml:"brokers"` // через запятую
	Topic            string `toml:"topic"`
	PublishTimeoutMs int    `toml:"publish_timeout_ms"`
}

// PublishTimeout предел ожидания брокера на одно событие
func (k KafkaConfig) PublishTimeout() time.Duration {
	return time.Duration(k.PublishTimeoutMs) * time.Millisecond
}

// BrokerList разбирает список брокеров
func (k KafkaConfig) BrokerList() []string {
	var out []string
	for _, b := range strings.Split(k.Brokers, ",") {
		if b = strings.TrimSpace(b); b != "" {
			out = append(out, b)
		}
	}
	return out
}

// RateLimitConfig лимит запросов на изменяющие эндпоинты
type RateLimitConfig struct {
	Enabled           bool     `toml:"enabled"`
	RequestsPerSecond float64  `toml:"requests_per_second"`
	Burst             int      `toml:"burst"`
	WindowSeconds     int      `toml:"window_seconds"` // окно для redis-лимитера
	WindowLimit       int      `toml:"window_limit"`
	TrustedProxies    []string `toml:"trusted_proxies"` // CIDR прокси, которым верим X-Forwarded-For
}

// Default возвращает конфигурацию по умолчанию
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			HTTPPort:        8080,
			ReadTimeout:     10,
			WriteTimeout:    10,
			IdleTimeout:     60,
			ShutdownTimeout: 15,
		},
		Database: DatabaseConfig{
			Host:            "localhost",
			Port:            5432,
			SSLMode:         "disable",
			MaxOpenConns:    25,
			MaxIdleConns:    5,
			ConnMaxLifetime: 300,
		},
		Logs: LogsConfig{
			Level: "info",
		},
		Metrics: MetricsConfig{
			Path:        "/metrics",
			ServiceName: "salon-service",
		},
		Booking: BookingConfig{
			Timezone:                  "Asia/Tokyo",
			OpenHour:                  scheduling.DefaultOpenHour,
			CloseHour:                 scheduling.DefaultCloseHour,
			SlotIntervalMinutes:       int(scheduling.DefaultSlotInterval / time.Minute),
			DefaultDurationMinutes:    int(scheduling.DefaultServiceDuration / time.Minute),
			MaxAppointmentsPerDay:     scheduling.DefaultMaxAppointmentsPerDay,
			CancellationDeadlineHours: int(scheduling.DefaultCancellationDeadline / time.Hour),
		},
		Notification: NotificationConfig{
			Timeout: 5,
		},
		Redis: RedisConfig{
			Addr: "localhost:6379",
		},
		Kafka: KafkaConfig{
			Topic:            "salon.appointments",
			PublishTimeoutMs: 2000,
		},
		RateLimit: RateLimitConfig{
			RequestsPerSecond: 5,
			Burst:             10,
			WindowSeconds:     60,
			WindowLimit:       30,
		},
	}
}

// Load читает конфигурацию из TOML файла поверх значений по умолчанию
func Load(path string) (*Config, error) {
	cfg := Default()
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate проверяет обязательные параметры
func (c *Config) Validate() error {
	if c.Server.HTTPPort <= 0 || c.Server.HTTPPort > 65535 {
		return fmt.Errorf("%w: server.http_port %d", ErrInvalidConfig, c.Server.HTTPPort)
	}
	if c.Database.Host == "" || c.Database.DBName == "" {
		return fmt.Errorf("%w: database.host and database.dbname are required", ErrInvalidConfig)
	}
	if c.Metrics.Enabled && !strings.HasPrefix(c.Metrics.Path, "/") {
		return fmt.Errorf("%w: metrics.path must start with /", ErrInvalidConfig)
	}
	if _, err := c.Booking.Policy(); err != nil {
		return err
	}
	if c.Redis.Enabled && c.Redis.Addr == "" {
		return fmt.Errorf("%w: redis.addr is required when redis is enabled", ErrInvalidConfig)
	}
	if len(c.Kafka.BrokerList()) > 0 && c.Kafka.Topic == "" {
		return fmt.Errorf("%w: kafka.topic is required when brokers are set", ErrInvalidConfig)
	}
	if c.Kafka.PublishTimeoutMs <= 0 {
		return fmt.Errorf("%w: kafka.publish_timeout_ms must be positive", ErrInvalidConfig)
	}
	if c.RateLimit.Enabled {
		if c.RateLimit.RequestsPerSecond <= 0 || c.RateLimit.Burst <= 0 {
			return fmt.Errorf("%w: rate_limit.requests_per_second and burst must be positive", ErrInvalidConfig)
		}
		if c.Redis.Enabled && (c.RateLimit.WindowSeconds <= 0 || c.RateLimit.WindowLimit <= 0) {
			return fmt.Errorf("%w: rate_limit.window_seconds and window_limit must be positive", ErrInvalidConfig)
		}
	}
	return nil
}
