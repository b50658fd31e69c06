package config

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

type Config struct {
	Env                string        `yaml:"env" env:"APP_ENV" env-default:"production"`
	ServerPort         string        `yaml:"server_port" env:"SERVER_PORT" env-default:"8080"`
	CORSAllowedOrigins string        `yaml:"cors_allowed_origins" env:"CORS_ALLOWED_ORIGINS"`
	PushSendTimeout    time.Duration `yaml:"push_send_timeout" env:"PUSH_SEND_TIMEOUT" env-default:"10s"`
	WebPush            WebPushConfig
	Log                LogConfig
}

// WebPushConfig - учетные данные VAPID для аутентификации на push-сервисах.
type WebPushConfig struct {
	VAPIDPublicKey  string `yaml:"vapid_public_key" env:"VAPID_PUBLIC_KEY"`
	VAPIDPrivateKey string `yaml:"vapid_private_key" env:"VAPID_PRIVATE_KEY"`
	Subscriber      string `yaml:"vapid_subscriber" env:"VAPID_SUBSCRIBER" env-default:"mailto:admin@example.com"`
	TTLSeconds      int    `yaml:"ttl_seconds" env:"PUSH_TTL_SECONDS" env-default:"60"`
}

type LogConfig struct {
	Level string `yaml:"level" env:"LOG_LEVEL" env-default:"info"`
}

// Configured сообщает, заданы ли реальные (не плейсхолдерные) ключи VAPID.
// Шаблонные значения вида "YOUR_..." из примеров конфигурации не считаются настройкой.
func (w WebPushConfig) Configured() bool {
	if w.VAPIDPublicKey == "" || w.VAPIDPrivateKey == "" {
		return false
	}
	for _, key := range []string{w.VAPIDPublicKey, w.VAPIDPrivateKey} {
		if strings.HasPrefix(key, "YOUR_") || strings.HasPrefix(key, "REPLACE") {
			return false
		}
	}
	return true
}

// GetAllowedOrigins возвращает список разрешенных CORS origin'ов.
func (c *Config) GetAllowedOrigins() []string {
	if c.CORSAllowedOrigins == "" {
		return nil
	}
	parts := strings.Split(c.CORSAllowedOrigins, ",")
	origins := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			origins = append(origins, trimmed)
		}
	}
	return origins
}

// LoadConfig загружает конфигурацию: сначала пробуем config.yml,
// при его отсутствии читаем только переменные окружения.
// Локальный .env подхватывается до разбора (удобно для разработки).
func LoadConfig() (*Config, error) {
	// Ошибку игнорируем: .env опционален.
	_ = godotenv.Load()

	configPath := "config.yml"

	var cfg Config
	if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
		log.Printf("Предупреждение: не удалось прочитать файл конфигурации '%s': %v. Попытка чтения из переменных окружения.", configPath, err)
		if err := cleanenv.ReadEnv(&cfg); err != nil {
			return nil, fmt.Errorf("ошибка загрузки конфигурации: %w", err)
		}
	}

	return &cfg, nil
}
