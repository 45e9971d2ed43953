package telegram

import (
	"context"
	"net/http"
	"strings"
	"time"

	"log/slog"
)

const apiTimeout = 30 * time.Second

// Client клиент для работы с Telegram Bot API
type Client struct {
	httpClient *http.Client
	apiURL     string
	token      string
	log        *slog.Logger
}

// NewClient создаёт новый клиент для Telegram Bot API
func NewClient(cfg *Config, log *slog.Logger) *Client {
	return newClient(cfg, &http.Client{Timeout: apiTimeout}, log)
}

func newClient(cfg *Config, httpClient *http.Client, log *slog.Logger) *Client {
	apiURL := strings.TrimRight(cfg.APIURL, "/")
	if apiURL == "" {
		apiURL = "https://api.telegram.org"
	}
	return &Client{
		httpClient: httpClient,
		apiURL:     apiURL,
		token:      cfg.BotToken,
		log:        log,
	}
}

func (c *Client) methodURL(method string) string {
	return c.apiURL + "/bot" + c.token + "/" + method
}

// SendMessageRequest запрос на отправку сообщения
type SendMessageRequest struct {
	ChatID           int64                  `json:"chat_id"`
	Text             string                 `json:"text"`
	ParseMode        string                 `json:"parse_mode,omitempty"` // "HTML", "Markdown", "MarkdownV2"
	ReplyToMessageID int64                  `json:"reply_to_message_id,omitempty"`
	MessageThreadID  *int64                 `json:"message_thread_id,omitempty"` // топик форума
	ReplyMarkup      map[string]interface{} `json:"reply_markup,omitempty"`
}

// SendMessageResult результат отправки сообщения
type SendMessageResult struct {
	MessageID int64 `json:"message_id"`
	Chat      struct {
		ID int64 `json:"id"`
	} `json:"chat"`
}

// SendMessage отправляет текстовое сообщение
func (c *Client) SendMessage(ctx context.Context, chatID int64, text string) error {
	return c.sendMessage(ctx, SendMessageRequest{
		ChatID: chatID,
		Text:   text,
	})
}

// SendMessageWithKeyboard отправляет сообщение с клавиатурой
func (c *Client) SendMessageWithKeyboard(ctx context.Context, chatID int64, text string, keyboard map[string]interface{}) error {
	return c.sendMessage(ctx, SendMessageRequest{
		ChatID:      chatID,
		Text:        text,
		ReplyMarkup: keyboard,
	})
}

// ReplyToMessage отвечает на сообщение пользователя, keyboard может быть nil
func (c *Client) ReplyToMessage(ctx context.Context, chatID, messageID int64, text string, keyboard map[string]interface{}) error {
	return c.sendMessage(ctx, SendMessageRequest{
		ChatID:           chatID,
		Text:             text,
		ReplyToMessageID: messageID,
		ReplyMarkup:      keyboard,
	})
}

func (c *Client) sendMessage(ctx context.Context, req SendMessageRequest) error {
	_, err := c.SendMessageWithRequest(ctx, req)
	return err
}

// SendMessageWithRequest выполняет sendMessage с произвольными параметрами
func (c *Client) SendMessageWithRequest(ctx context.Context, req SendMessageRequest) (*SendMessageResult, error) {
	var result SendMessageResult
	if err := c.call(ctx, "sendMessage", req, &result); err != nil {
		c.log.Error("failed to send message",
			"error", err,
			"chat_id", req.ChatID,
		)
		return nil, err
	}

	c.log.Debug("message sent successfully",
		"chat_id", req.ChatID,
		"message_id", result.MessageID,
	)
	return &result, nil
}

// EditMessageTextRequest запрос на замену текста сообщения, клавиатура при этом снимается
type EditMessageTextRequest struct {
	ChatID    int64  `json:"chat_id"`
	MessageID int64  `json:"message_id"`
	Text      string `json:"text"`
}

// EditMessageText заменяет текст ранее отправленного сообщения
func (c *Client) EditMessageText(ctx context.Context, chatID, messageID int64, text string) error {
	req := EditMessageTextRequest{
		ChatID:    chatID,
		MessageID: messageID,
		Text:      text,
	}
	if err := c.call(ctx, "editMessageText", req, nil); err != nil {
		c.log.Error("failed to edit message",
			"error", err,
			"chat_id", chatID,
			"message_id", messageID,
		)
		return err
	}

	c.log.Debug("message edited successfully", "chat_id", chatID, "message_id", messageID)
	return nil
}

// BotUser ответ getMe
type BotUser struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
}

// GetMe получает информацию о боте
func (c *Client) GetMe(ctx context.Context) (*BotUser, error) {
	var me BotUser
	if err := c.call(ctx, "getMe", struct{}{}, &me); err != nil {
		return nil, err
	}
	c.log.Info("bot info retrieved successfully", "bot_username", me.Username)
	return &me, nil
}

// BotCommand представляет команду бота
type BotCommand struct {
	Command     string `json:"command"`
	Description string `json:"description"`
}

// SetMyCommands регистрирует команды бота в меню
func (c *Client) SetMyCommands(ctx context.Context, commands []BotCommand) error {
	req := struct {
		Commands []BotCommand `json:"commands"`
	}{
		Commands: commands,
	}
	if err := c.call(ctx, "setMyCommands", req, nil); err != nil {
		return err
	}

	c.log.Info("bot commands registered successfully", "commands_count", len(commands))
	return nil
}

// SetWebhook регистрирует webhook; secret приходит обратно в X-Telegram-Bot-Api-Secret-Token
func (c *Client) SetWebhook(ctx context.Context, url, secret string) error {
	req := struct {
		URL            string   `json:"url"`
		SecretToken    string   `json:"secret_token,omitempty"`
		AllowedUpdates []string `json:"allowed_updates"`
	}{
		URL:            url,
		SecretToken:    secret,
		AllowedUpdates: []string{"message", "callback_query"},
	}
	if err := c.call(ctx, "setWebhook", req, nil); err != nil {
		return err
	}

	c.log.Info("webhook registered", "url", url)
	return nil
}

// DeleteWebhook удаляет webhook (нужно вызывать перед запуском polling)
func (c *Client) DeleteWebhook(ctx context.Context) error {
	req := struct {
		DropPendingUpdates bool `json:"drop_pending_updates"`
	}{
		DropPendingUpdates: true,
	}
	if err := c.call(ctx, "deleteWebhook", req, nil); err != nil {
		return err
	}

	c.log.Info("webhook deleted successfully")
	return nil
}
