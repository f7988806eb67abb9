package config

import (
	"fmt"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	DBDSN          string        `mapstructure:"DB_DSN"`
	Environment    string        `mapstructure:"ENV"`
	HTTPAddr       string        `mapstructure:"HTTP_ADDR"`
	TelegramToken  string        `mapstructure:"TELEGRAM_TOKEN"`
	MigrationsPath string        `mapstructure:"MIGRATIONS_PATH"`
	DigestInterval time.Duration `mapstructure:"DIGEST_INTERVAL"`
	RateLimitRPS   float64       `mapstructure:"RATE_LIMIT_RPS"`   // 0 отключает ограничение
	RateLimitBurst int           `mapstructure:"RATE_LIMIT_BURST"`
}

var keys = []string{
	"DB_DSN",
	"ENV",
	"HTTP_ADDR",
	"TELEGRAM_TOKEN",
	"MIGRATIONS_PATH",
	"DIGEST_INTERVAL",
	"RATE_LIMIT_RPS",
	"RATE_LIMIT_BURST",
}

func Load() (*Config, error) {
	// Пытаемся загрузить .env файл (игнорируем ошибку, если файла нет)
	if err := godotenv.Load(".env"); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("ENV", "development")
	v.SetDefault("HTTP_ADDR", ":8080")
	v.SetDefault("MIGRATIONS_PATH", "migrations")
	v.SetDefault("DIGEST_INTERVAL", "24h")
	v.SetDefault("RATE_LIMIT_RPS", 20)
	v.SetDefault("RATE_LIMIT_BURST", 40)

	for _, key := range keys {
		if err := v.BindEnv(key); err != nil {
			return nil, fmt.Errorf("bind env %s: %w", key, err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	// Проверяем обязательные поля
	if cfg.DBDSN == "" {
		return nil, fmt.Errorf("DB_DSN is required but not set")
	}

	if cfg.DigestInterval <= 0 {
		return nil, fmt.Errorf("DIGEST_INTERVAL must be positive, got %s", cfg.DigestInterval)
	}

	if cfg.RateLimitRPS < 0 || (cfg.RateLimitRPS > 0 && cfg.RateLimitBurst <= 0) {
		return nil, fmt.Errorf("invalid rate limit: %v rps, burst %d", cfg.RateLimitRPS, cfg.RateLimitBurst)
	}

	return cfg, nil
}

// RequireTelegram проверяет, что задан токен бота
func (c *Config) RequireTelegram() error {
	if c.TelegramToken == "" {
		return fmt.Errorf("TELEGRAM_TOKEN is required but not set")
	}
	return nil
}

func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}
