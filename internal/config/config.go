package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

var (
	ErrReadConfig    = errors.New("config: failed to read config file")
	ErrInvalidConfig = errors.New("config: invalid configuration")
)

// Переменные окружения, переопределяющие значения из config.toml
const (
	envLeasingAPIHost = "LEASING_API_HOST"
	envDatabasePass   = "DATABASE_PASSWORD"
	envHTTPPort       = "HTTP_PORT"
)

// Config конфигурация шлюза
type Config struct {
	Server     ServerConfig     `toml:"server"`
	Database   DatabaseConfig   `toml:"database"`
	LeasingAPI LeasingAPIConfig `toml:"leasing_api"`
	Checkout   CheckoutConfig   `toml:"checkout"`
	Admin      AdminConfig      `toml:"admin"`
	Logs       LogsConfig       `toml:"logs"`
	Metrics    MetricsConfig    `toml:"metrics"`
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
	ConnMaxLifetime int    `toml:"conn_max_lifetime"`
}

// DSN строка подключения для lib/pq
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode)
}

// LeasingAPIConfig адрес бэкенда лизинга
type LeasingAPIConfig struct {
	Host    string `toml:"host"`
	Timeout int    `toml:"timeout"` // в секундах
}

// TimeoutDuration таймаут запросов к бэкенду
func (c LeasingAPIConfig) TimeoutDuration() time.Duration {
	return time.Duration(c.Timeout) * time.Second
}

// CheckoutConfig параметры оформления лизинга
type CheckoutConfig struct {
	// RedirectAfter задержка перехода в профиль, которую шлюз отдает клиенту (секунды)
	RedirectAfter int `toml:"redirect_after"`

	// ReceiptFont путь к TTF шрифту с кириллицей для PDF квитанций
	// Без него квитанция печатается встроенным Helvetica
	ReceiptFont string `toml:"receipt_font"`
}

// RedirectAfterDuration задержка перехода в профиль
func (c CheckoutConfig) RedirectAfterDuration() time.Duration {
	return time.Duration(c.RedirectAfter) * time.Second
}

// AdminConfig параметры консоли администратора
type AdminConfig struct {
	PageSize int `toml:"page_size"`
}

// LogsConfig параметры логирования
type LogsConfig struct {
	Level string `toml:"level"`
	File  string `toml:"file"`
}

// MetricsConfig параметры Prometheus метрик
type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

// Load читает конфигурацию из toml файла и применяет переопределения из окружения
// Файл .env необязателен: если его нет, используются переменные процесса
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	cfg := defaults()
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrReadConfig, path, err)
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func defaults() *Config {
	return &Config{
		Server: ServerConfig{
			HTTPPort:        8080,
			ReadTimeout:     15,
			WriteTimeout:    15,
			IdleTimeout:     60,
			ShutdownTimeout: 10,
		},
		Database: DatabaseConfig{
			Host:            "localhost",
			Port:            5432,
			SSLMode:         "disable",
			MaxOpenConns:    25,
			MaxIdleConns:    5,
			ConnMaxLifetime: 300,
		},
		LeasingAPI: LeasingAPIConfig{
			Host:    "http://localhost:7247",
			Timeout: 10,
		},
		Checkout: CheckoutConfig{
			RedirectAfter: 3,
		},
		Admin: AdminConfig{
			PageSize: 100,
		},
		Logs: LogsConfig{
			Level: "info",
		},
		Metrics: MetricsConfig{
			Path:        "/metrics",
			ServiceName: "leasing-gateway",
		},
	}
}

func (c *Config) applyEnv() error {
	if host := os.Getenv(envLeasingAPIHost); host != "" {
		c.LeasingAPI.Host = host
	}
	if password := os.Getenv(envDatabasePass); password != "" {
		c.Database.Password = password
	}
	if raw := os.Getenv(envHTTPPort); raw != "" {
		port, err := strconv.Atoi(raw)
		if err != nil {
			return fmt.Errorf("%w: %s=%q is not a number", ErrInvalidConfig, envHTTPPort, raw)
		}
		c.Server.HTTPPort = port
	}
	return nil
}

func (c *Config) validate() error {
	if c.LeasingAPI.Host == "" {
		return fmt.Errorf("%w: leasing_api.host is required", ErrInvalidConfig)
	}
	if c.LeasingAPI.Timeout <= 0 {
		return fmt.Errorf("%w: leasing_api.timeout must be positive", ErrInvalidConfig)
	}
	if c.Admin.PageSize <= 0 {
		return fmt.Errorf("%w: admin.page_size must be positive", ErrInvalidConfig)
	}
	if c.Server.HTTPPort <= 0 {
		return fmt.Errorf("%w: server.http_port must be positive", ErrInvalidConfig)
	}
	return nil
}
