package config

import (
	"fmt"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/AnujNayak108/DHWANI-SLOT-BOOKING/internal/domain"
)

// Config конфигурация сервиса
type Config struct {
	Server   ServerConfig   `toml:"server"`
	Database DatabaseConfig `toml:"database"`
	Redis    RedisConfig    `toml:"redis"`
	Logs     LogsConfig     `toml:"logs"`
	Metrics  MetricsConfig  `toml:"metrics"`
	Auth     AuthConfig     `toml:"auth"`
	Schedule ScheduleConfig `toml:"schedule"`
}

// ServerConfig настройки HTTP-сервера
type ServerConfig struct {
	HTTPPort        int      `toml:"http_port"`
	ReadTimeout     int      `toml:"read_timeout"`
	WriteTimeout    int      `toml:"write_timeout"`
	IdleTimeout     int      `toml:"idle_timeout"`
	ShutdownTimeout int      `toml:"shutdown_timeout"`
	AllowedOrigins  []string `toml:"allowed_origins"`
}

// DatabaseConfig настройки подключения к PostgreSQL
type DatabaseConfig struct {
	Host            string `toml:"host"`
	Port            int    `toml:"port"`
	User            string `toml:"user"`
	Password        string `toml:"password"`
	DBName          string `toml:"dbname"`
	SSLMode         string `toml:"sslmode"`
	MaxOpenConns    int    `toml:"max_open_conns"`
	MaxIdleConns    int    `toml:"max_idle_conns"`
	ConnMaxLifetime int    `toml:"conn_max_lifetime"`
}

// DSN возвращает строку подключения к PostgreSQL
func (c DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode)
}

// RedisConfig настройки подключения к Redis
type RedisConfig struct {
	Addr        string `toml:"addr"`
	Password    string `toml:"password"`
	DB          int    `toml:"db"`
	CacheTTLSec int    `toml:"cache_ttl"`
}

// CacheTTL TTL кэша недельного расписания
func (c RedisConfig) CacheTTL() time.Duration {
	if c.CacheTTLSec <= 0 {
		return 30 * time.Second
	}
	return time.Duration(c.CacheTTLSec) * time.Second
}

// LogsConfig настройки логирования
type LogsConfig struct {
	File  string `toml:"file"`
	Level string `toml:"level"`
}

// MetricsConfig настройки метрик
type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

// AuthConfig настройки аутентификации.
// AdminEmails — allow-list администраторов: членство в нём и есть роль admin.
type AuthConfig struct {
	JWTSecret   string   `toml:"jwt_secret"`
	AdminEmails []string `toml:"admin_emails"`
}

// IsAdmin сообщает, является ли email администратором
func (c AuthConfig) IsAdmin(email string) bool {
	if email == "" {
		return false
	}
	for _, admin := range c.AdminEmails {
		if admin == email {
			return true
		}
	}
	return false
}

// ScheduleConfig настройки расписания репетиционной точки.
// Неизменяемые данные: передаются в schedule.Service при старте.
type ScheduleConfig struct {
	Timezone               string `toml:"timezone"`
	WeekStartsOn           int    `toml:"week_starts_on"` // 0=Sunday .. 6=Saturday
	WeekendMaxSlotsPerBand int    `toml:"weekend_max_slots_per_band"`
}

// Load загружает конфигурацию из TOML-файла
func Load(path string) (*Config, error) {
	var cfg Config
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, fmt.Errorf("config: failed to decode %s: %w", path, err)
	}

	applyDefaults(&cfg)

	if err := validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func applyDefaults(cfg *Config) {
	if cfg.Schedule.Timezone == "" {
		cfg.Schedule.Timezone = domain.DefaultTimezone
	}
	if cfg.Schedule.WeekendMaxSlotsPerBand == 0 {
		cfg.Schedule.WeekendMaxSlotsPerBand = domain.DefaultWeekendMaxSlotsPerBand
	}
	if cfg.Metrics.Path == "" {
		cfg.Metrics.Path = "/metrics"
	}
	if cfg.Logs.Level == "" {
		cfg.Logs.Level = "info"
	}
	if len(cfg.Server.AllowedOrigins) == 0 {
		cfg.Server.AllowedOrigins = []string{"*"}
	}
}

func validate(cfg *Config) error {
	if cfg.Server.HTTPPort <= 0 {
		return fmt.Errorf("config: server.http_port must be positive")
	}
	if cfg.Schedule.WeekStartsOn < 0 || cfg.Schedule.WeekStartsOn > 6 {
		return fmt.Errorf("config: schedule.week_starts_on must be in range 0..6")
	}
	if cfg.Schedule.WeekendMaxSlotsPerBand < 1 {
		return fmt.Errorf("config: schedule.weekend_max_slots_per_band must be at least 1")
	}
	if cfg.Auth.JWTSecret == "" {
		return fmt.Errorf("config: auth.jwt_secret is required")
	}
	return nil
}
