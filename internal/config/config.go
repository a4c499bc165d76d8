// Package config загружает конфигурацию сервиса из TOML файла
package config

import (
	"fmt"

	"github.com/BurntSushi/toml"

	"github.com/m04kA/SMC-SchedulingService/internal/scheduling/slotquality"
)

// Config корневая конфигурация сервиса
type Config struct {
	Server           ServerConfig           `toml:"server"`
	Database         DatabaseConfig         `toml:"database"`
	Logs             LogsConfig             `toml:"logs"`
	Metrics          MetricsConfig          `toml:"metrics"`
	DirectoryService DirectoryServiceConfig `toml:"directory_service"`
	Scoring          ScoringConfig          `toml:"scoring"`
}

// ServerConfig настройки HTTP сервера
type ServerConfig struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`     // seconds
	WriteTimeout    int `toml:"write_timeout"`    // seconds
	IdleTimeout     int `toml:"idle_timeout"`     // seconds
	ShutdownTimeout int `toml:"shutdown_timeout"` // seconds
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
	ConnMaxLifetime int    `toml:"conn_max_lifetime"` // seconds
}

// DSN возвращает строку подключения к базе данных
func (c *DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode)
}

// LogsConfig настройки логирования
type LogsConfig struct {
	File  string `toml:"file"`
	Level string `toml:"level"`
}

// MetricsConfig настройки Prometheus метрик
type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

// DirectoryServiceConfig настройки клиента DirectoryService
type DirectoryServiceConfig struct {
	URL     string `toml:"url"`
	Timeout int    `toml:"timeout"` // seconds
}

// ScoringConfig переопределение весов оценки слотов.
// Нулевые значения означают "использовать дефолт" - это позволяет
// переопределять веса выборочно.
type ScoringConfig struct {
	Base                  float64 `toml:"base"`
	MorningBonus          float64 `toml:"morning_bonus"`
	AfternoonBonus        float64 `toml:"afternoon_bonus"`
	HourBoundaryBonus     float64 `toml:"hour_boundary_bonus"`
	HalfHourBoundaryBonus float64 `toml:"half_hour_boundary_bonus"`
	ShortDurationBonus    float64 `toml:"short_duration_bonus"`
	MediumDurationBonus   float64 `toml:"medium_duration_bonus"`
	ExcellentThreshold    float64 `toml:"excellent_threshold"`
	GoodThreshold         float64 `toml:"good_threshold"`
}

// Weights строит веса оценки слотов: дефолты с выборочным переопределением
func (c *ScoringConfig) Weights() slotquality.Weights {
	weights := slotquality.DefaultWeights()

	if c.Base > 0 {
		weights.Base = c.Base
	}
	if c.MorningBonus > 0 {
		weights.MorningBonus = c.MorningBonus
	}
	if c.AfternoonBonus > 0 {
		weights.AfternoonBonus = c.AfternoonBonus
	}
	if c.HourBoundaryBonus > 0 {
		weights.HourBoundaryBonus = c.HourBoundaryBonus
	}
	if c.HalfHourBoundaryBonus > 0 {
		weights.HalfHourBoundaryBonus = c.HalfHourBoundaryBonus
	}
	if c.ShortDurationBonus > 0 {
		weights.ShortDurationBonus = c.ShortDurationBonus
	}
	if c.MediumDurationBonus > 0 {
		weights.MediumDurationBonus = c.MediumDurationBonus
	}
	if c.ExcellentThreshold > 0 {
		weights.ExcellentThreshold = c.ExcellentThreshold
	}
	if c.GoodThreshold > 0 {
		weights.GoodThreshold = c.GoodThreshold
	}

	return weights
}

// Load читает и валидирует конфигурацию из TOML файла
func Load(path string) (*Config, error) {
	var cfg Config

	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config file %s: %w", path, err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// validate проверяет обязательные поля конфигурации
func (c *Config) validate() error {
	if c.Server.HTTPPort <= 0 {
		return fmt.Errorf("config: server.http_port must be positive")
	}

	if c.Database.Host == "" {
		return fmt.Errorf("config: database.host is required")
	}

	if c.Database.DBName == "" {
		return fmt.Errorf("config: database.dbname is required")
	}

	if c.DirectoryService.URL == "" {
		return fmt.Errorf("config: directory_service.url is required")
	}

	if c.Metrics.Enabled && c.Metrics.Path == "" {
		return fmt.Errorf("config: metrics.path is required when metrics are enabled")
	}

	return nil
}
