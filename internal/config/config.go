package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

// Источники данных
const (
	SourceHTTP = "http"
	SourceDB   = "db"
)

// Config содержит настройки приложения
type Config struct {
	Server   ServerConfig
	Source   SourceConfig
	Upstream UpstreamConfig
	Database DatabaseConfig
	Redis    RedisConfig
	Log      LogConfig
}

// ServerConfig - настройки HTTP сервера
type ServerConfig struct {
	Port            string        `validate:"required,numeric"`
	ShutdownTimeout time.Duration `validate:"gt=0"`
}

// SourceConfig - откуда берутся подразделения
type SourceConfig struct {
	Kind          string `validate:"oneof=http db"`
	TokenPrecheck bool
}

// UpstreamConfig - настройки удалённого сервиса с подразделениями
type UpstreamConfig struct {
	URL     string        `validate:"required_if=Kind http,omitempty,url"`
	Timeout time.Duration `validate:"gt=0"`
	Kind    string        `validate:"-"`
}

// DatabaseConfig - настройки подключения к БД
type DatabaseConfig struct {
	Driver   string `validate:"oneof=postgres sqlite"`
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
	// Path используется драйвером sqlite
	Path          string
	RunMigrations bool
	// CompanyID ограничивает выборку одной компанией; 0 - все записи
	CompanyID int64 `validate:"gte=0"`
}

// RedisConfig - настройки кеша выборок
type RedisConfig struct {
	Addr     string
	Password string
	DB       int           `validate:"gte=0"`
	TTL      time.Duration `validate:"gte=0"`
}

// LogConfig - настройки логгера
type LogConfig struct {
	Level string `validate:"oneof=debug info warn error"`
}

// DSN возвращает строку подключения к PostgreSQL
func (c *DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode,
	)
}

// CacheEnabled сообщает, нужно ли кешировать выборки в Redis
func (c RedisConfig) CacheEnabled() bool {
	return c.Addr != "" && c.TTL > 0
}

// SlogLevel переводит уровень логирования в slog.Level
func (c LogConfig) SlogLevel() slog.Level {
	switch c.Level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Load загружает конфигурацию из .env и переменных окружения
func Load() (*Config, error) {
	_ = godotenv.Load()

	kind := strings.ToLower(getEnv("SOURCE_KIND", SourceHTTP))
	cfg := &Config{
		Server: ServerConfig{
			Port:            getEnv("SERVER_PORT", "8080"),
			ShutdownTimeout: getEnvAsDuration("SERVER_SHUTDOWN_TIMEOUT", 30*time.Second),
		},
		Source: SourceConfig{
			Kind:          kind,
			TokenPrecheck: getEnvAsBool("TOKEN_PRECHECK", true),
		},
		Upstream: UpstreamConfig{
			URL:     getEnv("UPSTREAM_URL", "https://seatek-api.seateklab.vn/api/get-departments-through-access-token"),
			Timeout: getEnvAsDuration("UPSTREAM_TIMEOUT", 15*time.Second),
			Kind:    kind,
		},
		Database: DatabaseConfig{
			Driver:        strings.ToLower(getEnv("DB_DRIVER", "postgres")),
			Host:          getEnv("DB_HOST", "localhost"),
			Port:          getEnv("DB_PORT", "5432"),
			User:          getEnv("DB_USER", "postgres"),
			Password:      getEnv("DB_PASSWORD", "postgres"),
			DBName:        getEnv("DB_NAME", "orgchart"),
			SSLMode:       getEnv("DB_SSLMODE", "disable"),
			Path:          getEnv("DB_PATH", "orgchart.db"),
			RunMigrations: getEnvAsBool("DB_RUN_MIGRATIONS", true),
			CompanyID:     int64(getEnvAsInt("DB_COMPANY_ID", 0)),
		},
		Redis: RedisConfig{
			Addr:     os.Getenv("REDIS_ADDR"),
			Password: os.Getenv("REDIS_PASSWORD"),
			DB:       getEnvAsInt("REDIS_DB", 0),
			TTL:      getEnvAsDuration("CACHE_TTL", 0),
		},
		Log: LogConfig{
			Level: strings.ToLower(getEnv("LOG_LEVEL", "info")),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate проверяет согласованность настроек
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

// getEnv возвращает значение переменной окружения или значение по умолчанию
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}
	return parsed
}

func getEnvAsBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return defaultValue
	}
	return parsed
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	parsed, err := time.ParseDuration(value)
	if err != nil {
		return defaultValue
	}
	return parsed
}
