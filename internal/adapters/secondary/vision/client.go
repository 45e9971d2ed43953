// Package vision распознавание еды на фото через chat completions с картинкой
package vision

import (
	"context"
	"encoding/base64"
	"log/slog"
	"net/http"
	"strings"

	"github.com/sashabaranov/go-openai"

	"github.com/chungjai123/food-bot/internal/domain"
)

// Client клиент vision-модели
type Client struct {
	config *Config
	client *openai.Client
	log    *slog.Logger
}

func NewClient(cfg *Config, log *slog.Logger) *Client {
	clientConfig := openai.DefaultConfig(cfg.APIKey)
	clientConfig.BaseURL = cfg.BaseURL
	clientConfig.HTTPClient = &http.Client{Timeout: cfg.Timeout}

	return &Client{
		config: cfg,
		client: openai.NewClientWithConfig(clientConfig),
		log:    log,
	}
}

// ImageDataURL кодирует jpeg в data URL для image_url
func ImageDataURL(image []byte) string {
	return "data:image/jpeg;base64," + base64.StdEncoding.EncodeToString(image)
}

// AnalyzeImage отправляет инструкцию и картинку одним сообщением, возвращает текст ответа без пробелов по краям.
// Пустая строка без ошибки означает, что модель ничего не ответила.
func (c *Client) AnalyzeImage(ctx context.Context, image []byte, prompt string) (string, error) {
	request := openai.ChatCompletionRequest{
		Model: c.config.Model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role: openai.ChatMessageRoleUser,
				MultiContent: []openai.ChatMessagePart{
					{
						Type: openai.ChatMessagePartTypeText,
						Text: prompt,
					},
					{
						Type: openai.ChatMessagePartTypeImageURL,
						ImageURL: &openai.ChatMessageImageURL{
							URL: ImageDataURL(image),
						},
					},
				},
			},
		},
		MaxTokens:   c.config.MaxTokens,
		Temperature: c.config.Temperature,
	}

	response, err := c.client.CreateChatCompletion(ctx, request)
	if err != nil {
		c.log.Error("vision chat completion failed",
			"error", err,
			"model", c.config.Model,
			"image_size", len(image))
		return "", &domain.CollaboratorError{Op: "vision inference failed", Err: err}
	}

	if len(response.Choices) == 0 {
		c.log.Warn("vision response has no choices", "model", c.config.Model)
		return "", nil
	}

	content := strings.TrimSpace(response.Choices[0].Message.Content)
	c.log.Debug("vision analysis received",
		"model", c.config.Model,
		"completion_tokens", response.Usage.CompletionTokens,
		"length", len(content))
	return content, nil
}
