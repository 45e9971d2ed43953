package kafka

import (
	"strings"
)

// Config конфигурация Kafka producer; пустой BROKERS отключает публикацию событий
type Config struct {
	Brokers          string `envconfig:"BROKERS"`                                  // "broker1:9092,broker2:9092"
	Topic            string `envconfig:"TOPIC" default:"food_bot.analysis_saved"` // топик событий о сохранённых анализах
	ClientID         string `envconfig:"CLIENT_ID" default:"food_bot"`
	SecurityProtocol string `envconfig:"SECURITY_PROTOCOL"` // "SASL_SSL", "SASL_PLAINTEXT", "PLAINTEXT"
	SASLMechanism    string `envconfig:"SASL_MECHANISM"`    // "PLAIN", "SCRAM-SHA-256"
	SASLUsername     string `envconfig:"SASL_USERNAME"`
	SASLPassword     string `envconfig:"SASL_PASSWORD"`
}

func (c *Config) Enabled() bool {
	return c != nil && strings.TrimSpace(c.Brokers) != ""
}

// GetBrokers возвращает список брокеров из строки
func (c *Config) GetBrokers() []string {
	var brokers []string
	for _, b := range strings.Split(c.Brokers, ",") {
		if b = strings.TrimSpace(b); b != "" {
			brokers = append(brokers, b)
		}
	}
	return brokers
}
