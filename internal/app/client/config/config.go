package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	EnvLocal = "local"
	EnvDev   = "dev"
	EnvProd  = "prod"
)

const (
	defaultAPIBaseURL     = "http://localhost:18080/api"
	defaultLogLevel       = "info"
	defaultEnv            = EnvLocal
	defaultConfigDir      = ".swimlog"
	defaultRequestTimeout = 30 * time.Second
	configFileName        = "config.yaml"
	dataFileName          = "session.db"
)

type Config struct {
	Env            string        `mapstructure:"app_env"`
	APIBaseURL     string        `mapstructure:"api_base_url"`
	LogLevel       string        `mapstructure:"log_level"`
	ConfigDir      string        `mapstructure:"config_dir"`
	DataPath       string        `mapstructure:"data_path"`
	RequestTimeout time.Duration `mapstructure:"request_timeout"`

	// ConfigFile - путь, откуда читался или куда будет записан yaml
	ConfigFile string `mapstructure:"-"`
}

// Options - переопределения из флагов командной строки.
type Options struct {
	// ConfigFile - явный путь к yaml-файлу, иначе <config_dir>/config.yaml
	ConfigFile string
	APIBaseURL string
	Debug      bool
}

// Load собирает конфигурацию: значения по умолчанию, yaml-файл, .env и переменные окружения,
// затем флаги. Каждый следующий источник перекрывает предыдущий.
func Load(opts Options) (*Config, error) {
	loadDotEnv()

	v := viper.New()
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Устанавливаем значения по умолчанию
	v.SetDefault("APP_ENV", defaultEnv)
	v.SetDefault("API_BASE_URL", defaultAPIBaseURL)
	v.SetDefault("LOG_LEVEL", defaultLogLevel)
	v.SetDefault("CONFIG_DIR", defaultConfigDir)
	v.SetDefault("REQUEST_TIMEOUT", defaultRequestTimeout)

	// Получаем домашнюю директорию пользователя
	homeDir, err := os.UserHomeDir()
	if err != nil {
		homeDir = "."
	}

	configDir := v.GetString("CONFIG_DIR")
	if configDir == defaultConfigDir {
		configDir = filepath.Join(homeDir, configDir)
	}

	configFile := opts.ConfigFile
	if configFile == "" {
		configFile = filepath.Join(configDir, configFileName)
	}
	// Отсутствие файла по умолчанию не ошибка, явно указанный файл обязан существовать
	if _, err := os.Stat(configFile); err == nil || opts.ConfigFile != "" {
		v.SetConfigFile(configFile)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("чтение файла конфигурации %s: %w", configFile, err)
		}
	}

	dataPath := v.GetString("DATA_PATH")
	if dataPath == "" {
		dataPath = filepath.Join(configDir, dataFileName)
	}

	cfg := &Config{
		Env:            v.GetString("APP_ENV"),
		APIBaseURL:     strings.TrimRight(v.GetString("API_BASE_URL"), "/"),
		LogLevel:       v.GetString("LOG_LEVEL"),
		ConfigDir:      configDir,
		DataPath:       dataPath,
		RequestTimeout: v.GetDuration("REQUEST_TIMEOUT"),
		ConfigFile:     configFile,
	}

	if opts.APIBaseURL != "" {
		cfg.APIBaseURL = strings.TrimRight(opts.APIBaseURL, "/")
	}
	if opts.Debug {
		cfg.LogLevel = "debug"
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("ошибка конфигурации: %w", err)
	}
	return cfg, nil
}

// MustLoad загружает конфигурацию клиента
func MustLoad(opts Options) *Config {
	cfg, err := Load(opts)
	if err != nil {
		panic(err)
	}
	return cfg
}

// EnsureDirs создаёт директорию с локальными данными клиента.
func (c *Config) EnsureDirs() error {
	if err := os.MkdirAll(filepath.Dir(c.DataPath), 0700); err != nil {
		return fmt.Errorf("ошибка создания директории данных: %w", err)
	}
	return nil
}

// Save записывает текущие настройки в yaml-файл ConfigFile.
// Существующий файл перезаписывается только при force.
func (c *Config) Save(force bool) error {
	if _, err := os.Stat(c.ConfigFile); err == nil && !force {
		return fmt.Errorf("файл конфигурации %s уже существует", c.ConfigFile)
	}
	if err := os.MkdirAll(filepath.Dir(c.ConfigFile), 0700); err != nil {
		return fmt.Errorf("ошибка создания директории конфигурации: %w", err)
	}

	v := viper.New()
	v.SetConfigType("yaml")
	v.Set("app_env", c.Env)
	v.Set("api_base_url", c.APIBaseURL)
	v.Set("log_level", c.LogLevel)
	v.Set("request_timeout", c.RequestTimeout.String())
	if c.DataPath != filepath.Join(c.ConfigDir, dataFileName) {
		v.Set("data_path", c.DataPath)
	}

	if err := v.WriteConfigAs(c.ConfigFile); err != nil {
		return fmt.Errorf("запись файла конфигурации: %w", err)
	}
	return nil
}

func (c *Config) validate() error {
	if c.APIBaseURL == "" {
		return fmt.Errorf("api_base_url не может быть пустым")
	}
	u, err := url.Parse(c.APIBaseURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("api_base_url должен быть http(s) адресом: %q", c.APIBaseURL)
	}
	if c.DataPath == "" {
		return fmt.Errorf("data_path не может быть пустым")
	}
	if c.RequestTimeout < 0 {
		return fmt.Errorf("request_timeout не может быть отрицательным")
	}
	switch c.Env {
	case EnvLocal, EnvDev, EnvProd:
	default:
		return fmt.Errorf("неизвестное окружение app_env: %q", c.Env)
	}
	return nil
}

// IsProd проверяет, prod ли окружение
func (c *Config) IsProd() bool {
	return c.Env == EnvProd
}

// IsDev проверяет, dev ли окружение
func (c *Config) IsDev() bool {
	return c.Env == EnvDev
}

// IsLocal проверяет, local ли окружение
func (c *Config) IsLocal() bool {
	return c.Env == EnvLocal || c.Env == ""
}

func loadDotEnv() {
	// Определяем путь к .env файлу (относительно места запуска)
	envPath := ".env"
	if _, err := os.Stat(envPath); os.IsNotExist(err) {
		envPath = "../.env"
	}
	if _, err := os.Stat(envPath); err == nil {
		if err := godotenv.Load(envPath); err != nil {
			fmt.Fprintf(os.Stderr, "Ошибка загрузки .env файла: %v\n", err)
		}
	}
}
