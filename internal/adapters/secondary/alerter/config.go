package alerter

// Config чат для алертов; пустой BOT_TOKEN отключает алертер
type Config struct {
	BotToken        string `envconfig:"BOT_TOKEN"`
	ChatID          int64  `envconfig:"CHAT_ID"`
	MessageThreadID *int64 `envconfig:"MESSAGE_THREAD_ID"`
	APIURL          string `envconfig:"API_URL" default:"https://api.telegram.org"`
}

func (c *Config) Enabled() bool {
	return c != nil && c.BotToken != "" && c.ChatID != 0
}
