package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

const (
	envPath  = ".env"
	EnvLocal = "local"
	EnvDev   = "dev"
	EnvProd  = "prod"
)

// Config - настройки dev-сервера API, только из переменных окружения.
type Config struct {
	Env    string `env:"APP_ENV" envDefault:"local"`
	Server Server `envPrefix:"SERVER_"`
	Logger Logger `envPrefix:"LOG_"`
	Auth   Auth   `envPrefix:"AUTH_"`
	OCR    OCR    `envPrefix:"OCR_"`
}

type Server struct {
	RunAddress string `env:"ADDRESS" envDefault:"localhost:18080"`
	BasePath   string `env:"BASE_PATH" envDefault:"/api"`
}

type Logger struct {
	LogLevel string `env:"LEVEL" envDefault:"info"`
}

type Auth struct {
	// Вход только после подтверждения почты
	RequireVerified bool `env:"REQUIRE_VERIFIED" envDefault:"false"`
	// Запросы без токена отклоняются
	RequireToken bool `env:"REQUIRE_TOKEN" envDefault:"false"`
	// Адрес страницы подтверждения, в лог пишется ссылка вместо письма
	VerifyURL string `env:"VERIFY_URL" envDefault:"http://localhost:18080/api/verify-email"`
}

type OCR struct {
	// Ответ /upload для файлов, в которых не нашлось ни одной строки
	DefaultValues  []string `env:"DEFAULT_VALUES" envSeparator:","`
	MaxUploadBytes int64    `env:"MAX_UPLOAD_BYTES" envDefault:"10485760"`
}

// Load читает .env, если он есть, и переменные окружения.
func Load() (*Config, error) {
	// Отсутствие .env не ошибка
	_ = godotenv.Load(envPath)

	cfg := Config{}
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func MustLoad() *Config {
	cfg, err := Load()
	if err != nil {
		panic(err)
	}
	return cfg
}

func (c *Config) validate() error {
	if c.Server.RunAddress == "" {
		return fmt.Errorf("SERVER_ADDRESS не может быть пустым")
	}
	if c.OCR.MaxUploadBytes <= 0 {
		return fmt.Errorf("OCR_MAX_UPLOAD_BYTES должен быть положительным")
	}
	switch c.Env {
	case EnvLocal, EnvDev, EnvProd:
	default:
		return fmt.Errorf("неизвестное окружение APP_ENV: %q", c.Env)
	}
	return nil
}
