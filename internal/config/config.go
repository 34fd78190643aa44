package config

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

var (
	ErrMissingAPIKey     = errors.New("CHATGPT_API_KEY is required")
	ErrMissingEndpoint   = errors.New("CHATGPT_ENDPOINT is required")
	ErrInvalidAuthMethod = errors.New("CHATGPT_AUTH_METHOD must be GET or POST")
	ErrInvalidTimeout    = errors.New("timeout must be non-negative")
)

type Config struct {
	ChatGPT ChatGPTConfig
	Log     LogConfig
	Metrics MetricsConfig
}

type ChatGPTConfig struct {
	APIKey      string
	Endpoint    string
	TokenURL    string
	Engine      string
	AuthMethod  string
	Timeout     time.Duration
	CheckStatus bool
}

type LogConfig struct {
	Level  string
	Format string // json | console
}

type MetricsConfig struct {
	PushgatewayURL string
	Job            string
}

// LoadDotEnv подтягивает переменные из .env, уже выставленные не трогает.
// Отсутствующий файл не ошибка.
func LoadDotEnv(path string) error {
	if path == "" {
		return nil
	}
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("load %s: %w", path, err)
	}
	return nil
}

// Load читает конфиг из окружения без валидации: CLI сначала
// накладывает флаги, потом зовёт Validate.
func Load() *Config {
	return &Config{
		ChatGPT: ChatGPTConfig{
			APIKey:      os.Getenv("CHATGPT_API_KEY"),
			Endpoint:    os.Getenv("CHATGPT_ENDPOINT"),
			TokenURL:    getEnvOrDefault("CHATGPT_TOKEN_URL", "https://api.cognitive.microsoft.com/sts/v1.0/issueToken"),
			Engine:      getEnvOrDefault("CHATGPT_ENGINE", "davinci"),
			AuthMethod:  getEnvOrDefault("CHATGPT_AUTH_METHOD", http.MethodGet),
			Timeout:     time.Duration(getEnvIntOrDefault("CHATGPT_TIMEOUT_SEC", 60)) * time.Second,
			CheckStatus: getEnvBoolOrDefault("CHATGPT_CHECK_STATUS", false),
		},
		Log: LogConfig{
			Level:  getEnvOrDefault("LOG_LEVEL", "info"),
			Format: getEnvOrDefault("LOG_FORMAT", "json"),
		},
		Metrics: MetricsConfig{
			PushgatewayURL: os.Getenv("PUSHGATEWAY_URL"),
			Job:            getEnvOrDefault("PUSHGATEWAY_JOB", "chatgpt_plugin"),
		},
	}
}

func (c *Config) Validate() error {
	if c.ChatGPT.APIKey == "" {
		return ErrMissingAPIKey
	}
	if c.ChatGPT.Endpoint == "" {
		return ErrMissingEndpoint
	}
	switch strings.ToUpper(c.ChatGPT.AuthMethod) {
	case http.MethodGet, http.MethodPost:
	default:
		return ErrInvalidAuthMethod
	}
	if c.ChatGPT.Timeout < 0 {
		return ErrInvalidTimeout
	}
	return nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvBoolOrDefault(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}
