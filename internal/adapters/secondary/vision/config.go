package vision

import "time"

// Config OpenAI-совместимый endpoint vision-модели
type Config struct {
	BaseURL     string        `envconfig:"BASE_URL" default:"https://router.huggingface.co/v1"`
	APIKey      string        `envconfig:"API_KEY" required:"true"`
	Model       string        `envconfig:"MODEL" default:"Qwen/Qwen2.5-VL-7B-Instruct:hyperbolic"`
	MaxTokens   int           `envconfig:"MAX_TOKENS" default:"450"`
	Temperature float32       `envconfig:"TEMPERATURE" default:"0.35"`
	Timeout     time.Duration `envconfig:"TIMEOUT" default:"90s"`
}
