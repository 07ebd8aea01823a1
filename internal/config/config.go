package config

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Драйверы хранилища документов
const (
	DriverPostgres  = "postgres"
	DriverRedis     = "redis"
	DriverFirestore = "firestore"
	DriverMemory    = "memory"
)

type Config struct {
	Environment   string `env:"ENV" envDefault:"development"`
	TelegramToken string `env:"TELEGRAM_TOKEN"`

	StoreDriver string `env:"STORE_DRIVER"`
	Postgres    PostgresConfig
	Redis       RedisConfig
	Firebase    FirebaseConfig

	Gemini GeminiConfig
	Log    LogConfig

	// SessionIdleTimeout сессии чатов без активности закрываются
	SessionIdleTimeout time.Duration `env:"SESSION_IDLE_TIMEOUT" envDefault:"12h"`
}

type PostgresConfig struct {
	DSN           string `env:"DB_DSN"`
	MigrationsDir string `env:"MIGRATIONS_DIR"`
}

type RedisConfig struct {
	Addr     string `env:"REDIS_ADDR"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB" envDefault:"0"`
}

type FirebaseConfig struct {
	ProjectID       string `env:"FIREBASE_PROJECT_ID"`
	CredentialsFile string `env:"FIREBASE_CREDENTIALS_FILE"`
}

type GeminiConfig struct {
	APIKey string `env:"GEMINI_API_KEY"`
	// AltAPIKey старое имя переменной
	AltAPIKey string `env:"API_KEY"`
	Model     string `env:"GEMINI_MODEL" envDefault:"gemini-2.5-flash"`
}

type LogConfig struct {
	File  string `env:"LOG_FILE"`
	Level string `env:"LOG_LEVEL" envDefault:"info"`
}

func Load() (*Config, error) {
	// Пытаемся загрузить .env файл (игнорируем ошибку, если файла нет)
	if err := godotenv.Load(".env"); err != nil {
		log.Println("⚠️  No .env file found, using environment variables")
	} else {
		log.Println("✅ Loaded configuration from .env file")
	}

	return Parse()
}

// Parse читает конфигурацию из переменных окружения
func Parse() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	cfg.StoreDriver = strings.ToLower(strings.TrimSpace(cfg.StoreDriver))
	if cfg.StoreDriver == "" && cfg.Postgres.DSN != "" {
		cfg.StoreDriver = DriverPostgres
	}

	switch cfg.StoreDriver {
	case "", DriverPostgres, DriverRedis, DriverFirestore, DriverMemory:
	default:
		return nil, fmt.Errorf("unknown STORE_DRIVER %q", cfg.StoreDriver)
	}

	return cfg, nil
}

// StoreConfigured заданы ли настройки хранилища. Без них бот работает в режиме настройки.
func (c *Config) StoreConfigured() bool {
	switch c.StoreDriver {
	case DriverPostgres:
		return c.Postgres.DSN != ""
	case DriverRedis:
		return c.Redis.Addr != ""
	case DriverFirestore:
		return c.Firebase.ProjectID != ""
	case DriverMemory:
		return true
	default:
		return false
	}
}

// GeminiAPIKey ключ генерации; пустая строка отключает помощника
func (c *Config) GeminiAPIKey() string {
	if c.Gemini.APIKey != "" {
		return c.Gemini.APIKey
	}
	return c.Gemini.AltAPIKey
}

// IsProduction боевое окружение
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}
