package app

import (
	"fmt"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"

	server "github.com/chungjai123/food-bot/internal/adapters/primary/http"
	alerterAdapter "github.com/chungjai123/food-bot/internal/adapters/secondary/alerter"
	kafkaAdapter "github.com/chungjai123/food-bot/internal/adapters/secondary/kafka"
	redisAdapter "github.com/chungjai123/food-bot/internal/adapters/secondary/storage/redis"
	s3Adapter "github.com/chungjai123/food-bot/internal/adapters/secondary/storage/s3"
	"github.com/chungjai123/food-bot/internal/adapters/secondary/storage/sqldb"
	"github.com/chungjai123/food-bot/internal/adapters/secondary/telegram"
	"github.com/chungjai123/food-bot/internal/adapters/secondary/vision"
	"github.com/chungjai123/food-bot/internal/pkg/logger"
	"github.com/chungjai123/food-bot/internal/usecases/food"
)

type Config struct {
	DB       *sqldb.Config          `envconfig:"DB"`
	Log      *logger.Config         `envconfig:"LOG"`
	Server   *server.Config         `envconfig:"APISERVER"`
	Telegram *telegram.Config       `envconfig:"TELEGRAM"`
	Vision   *vision.Config         `envconfig:"VISION"`
	Redis    *redisAdapter.Config   `envconfig:"REDIS"`
	Kafka    *kafkaAdapter.Config   `envconfig:"KAFKA"`
	S3       *s3Adapter.Config      `envconfig:"S3"`
	Alerter  *alerterAdapter.Config `envconfig:"ALERTER"`
	Food     food.Config            `envconfig:"FOOD"`
}

// NewEnvConfig читает конфиг из окружения: FOOD_BOT_DB_DRIVER, FOOD_BOT_TELEGRAM_BOT_TOKEN, ...
func NewEnvConfig(envPrefix string) (*Config, error) {
	cfg := &Config{}

	_ = godotenv.Load("deployments/local/.env")

	if err := envconfig.Process(envPrefix, cfg); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if !c.DB.Dialect().IsValid() {
		return fmt.Errorf("unsupported db driver: %s", c.DB.Driver)
	}
	if c.Telegram.IsWebhookEnabled() && c.Telegram.WebhookURL == "" {
		return fmt.Errorf("webhook_url is required when use_webhook is true")
	}
	if c.Food.HistoryLimit <= 0 || c.Food.WelcomeHistoryLimit <= 0 {
		return fmt.Errorf("history limits must be positive")
	}
	if c.Food.SessionTTL < 0 || c.Food.AnalysisCooldown < 0 {
		return fmt.Errorf("session ttl and analysis cooldown must not be negative")
	}
	return nil
}
