package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
)

const (
	envConfigPath = "CONFIG_PATH"
	envDBPassword = "DB_PASSWORD"
)

// ErrInvalidConfig возвращается, когда значения конфигурации противоречивы
var ErrInvalidConfig = errors.New("config: invalid configuration")

// Config конфигурация сервиса
type Config struct {
	Server            ServerConfig            `toml:"server"`
	Database          DatabaseConfig          `toml:"database"`
	Logs              LogsConfig              `toml:"logs"`
	Metrics           MetricsConfig           `toml:"metrics"`
	TechnicianService TechnicianServiceConfig `toml:"technician_service"`
	Redis             RedisConfig             `toml:"redis"`
	Engine            EngineConfig            `toml:"engine"`
}

// ServerConfig параметры HTTP сервера, таймауты в секундах
type ServerConfig struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`
	WriteTimeout    int `toml:"write_timeout"`
	IdleTimeout     int `toml:"idle_timeout"`
	ShutdownTimeout int `toml:"shutdown_timeout"`
}

// DatabaseConfig параметры подключения к PostgreSQL
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

// LogsConfig параметры логирования
type LogsConfig struct {
	Level string `toml:"level"`
	File  string `toml:"file"`
}

// MetricsConfig параметры Prometheus
type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

// TechnicianServiceConfig параметры справочника техников
type TechnicianServiceConfig struct {
	URL     string `toml:"url"`
	Timeout int    `toml:"timeout"` // секунды
}

// RedisConfig параметры кэша справочника, пустой addr отключает кэш
type RedisConfig struct {
	Addr            string `toml:"addr"`
	Password        string `toml:"password"`
	DB              int    `toml:"db"`
	CacheTTLSeconds int    `toml:"cache_ttl_seconds"`
}

// EngineConfig параметры движка доступности
type EngineConfig struct {
	DefaultTimezone      string `toml:"default_timezone"`
	FleetScanConcurrency int    `toml:"fleet_scan_concurrency"`
}

// Load читает конфигурацию из TOML файла
// Путь из CONFIG_PATH имеет приоритет над переданным, пароль БД берется из DB_PASSWORD, если задан
func Load(path string) (*Config, error) {
	if envPath := os.Getenv(envConfigPath); envPath != "" {
		path = envPath
	}

	cfg := &Config{}
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("config: failed to decode %s: %w", path, err)
	}

	if password := os.Getenv(envDBPassword); password != "" {
		cfg.Database.Password = password
	}

	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) applyDefaults() {
	setDefault(&c.Server.HTTPPort, 8080)
	setDefault(&c.Server.ReadTimeout, 10)
	setDefault(&c.Server.WriteTimeout, 10)
	setDefault(&c.Server.IdleTimeout, 60)
	setDefault(&c.Server.ShutdownTimeout, 10)

	setDefault(&c.Database.Port, 5432)
	setDefault(&c.Database.MaxOpenConns, 25)
	setDefault(&c.Database.MaxIdleConns, 5)
	setDefault(&c.Database.ConnMaxLifetime, 300)
	if c.Database.SSLMode == "" {
		c.Database.SSLMode = "disable"
	}

	if c.Logs.Level == "" {
		c.Logs.Level = "info"
	}

	if c.Metrics.Path == "" {
		c.Metrics.Path = "/metrics"
	}
	if c.Metrics.ServiceName == "" {
		c.Metrics.ServiceName = "availability-service"
	}

	setDefault(&c.TechnicianService.Timeout, 5)
	setDefault(&c.Redis.CacheTTLSeconds, 60)

	if c.Engine.DefaultTimezone == "" {
		c.Engine.DefaultTimezone = "UTC"
	}
	setDefault(&c.Engine.FleetScanConcurrency, 8)
}

func setDefault(v *int, def int) {
	if *v == 0 {
		*v = def
	}
}

// Validate проверяет согласованность значений
func (c *Config) Validate() error {
	if c.Server.HTTPPort < 1 || c.Server.HTTPPort > 65535 {
		return fmt.Errorf("%w: server.http_port must be in [1, 65535], got %d", ErrInvalidConfig, c.Server.HTTPPort)
	}
	if c.Database.Host == "" || c.Database.DBName == "" || c.Database.User == "" {
		return fmt.Errorf("%w: database.host, database.user and database.dbname are required", ErrInvalidConfig)
	}
	if c.Database.MaxIdleConns > c.Database.MaxOpenConns {
		return fmt.Errorf("%w: database.max_idle_conns (%d) exceeds max_open_conns (%d)",
			ErrInvalidConfig, c.Database.MaxIdleConns, c.Database.MaxOpenConns)
	}
	if c.TechnicianService.URL == "" {
		return fmt.Errorf("%w: technician_service.url is required", ErrInvalidConfig)
	}
	if c.Redis.CacheTTLSeconds < 0 {
		return fmt.Errorf("%w: redis.cache_ttl_seconds must not be negative", ErrInvalidConfig)
	}
	if c.Engine.FleetScanConcurrency < 1 {
		return fmt.Errorf("%w: engine.fleet_scan_concurrency must be positive", ErrInvalidConfig)
	}
	if _, err := time.LoadLocation(c.Engine.DefaultTimezone); err != nil {
		return fmt.Errorf("%w: engine.default_timezone: %v", ErrInvalidConfig, err)
	}
	return nil
}

// DSN строка подключения для lib/pq
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode)
}

// DefaultLocation часовой пояс для техников без собственного пояса
func (e EngineConfig) DefaultLocation() (*time.Location, error) {
	return time.LoadLocation(e.DefaultTimezone)
}

// CacheTTL время жизни записи кэша справочника
func (r RedisConfig) CacheTTL() time.Duration {
	return time.Duration(r.CacheTTLSeconds) * time.Second
}

// Enabled true, если кэш настроен
func (r RedisConfig) Enabled() bool {
	return r.Addr != ""
}
