package telegram

import (
	"context"
	"errors"
	"net/http"
	"time"

	"log/slog"

	"github.com/chungjai123/food-bot/internal/domain"
)

const retryDelay = 5 * time.Second

// UpdateHandler функция для обработки обновлений от Telegram
type UpdateHandler func(ctx context.Context, update *domain.Update) error

// Poller реализует long polling для получения обновлений от Telegram
type Poller struct {
	client       *Client // копия клиента с увеличенным таймаутом под long polling
	timeout      int
	handler      UpdateHandler
	lastUpdateID int64
	log          *slog.Logger
}

func NewPoller(client *Client, config *Config, handler UpdateHandler, log *slog.Logger) *Poller {
	pollingTimeout := config.PollingTimeout
	if pollingTimeout <= 0 {
		pollingTimeout = 30
	}
	// HTTP таймаут = polling timeout + запас (10 секунд)
	httpTimeout := time.Duration(pollingTimeout+10) * time.Second

	pollClient := *client
	pollClient.httpClient = &http.Client{Timeout: httpTimeout}

	return &Poller{
		client:  &pollClient,
		timeout: pollingTimeout,
		handler: handler,
		log:     log,
	}
}

type getUpdatesRequest struct {
	Offset         int64    `json:"offset"`
	Timeout        int      `json:"timeout"`
	AllowedUpdates []string `json:"allowed_updates"`
}

// Start крутит long polling до отмены контекста
func (p *Poller) Start(ctx context.Context) error {
	p.log.Info("starting telegram polling", "timeout", p.timeout)

	for {
		if ctx.Err() != nil {
			p.log.Info("polling stopped")
			return ctx.Err()
		}

		updates, err := p.getUpdates(ctx)
		if err != nil {
			if ctx.Err() != nil {
				continue
			}
			p.log.Error("failed to get updates", "error", err)
			select {
			case <-ctx.Done():
			case <-time.After(retryDelay):
			}
			continue
		}

		for i := range updates {
			update := &updates[i]
			if update.UpdateID >= p.lastUpdateID {
				p.lastUpdateID = update.UpdateID + 1
			}

			if err := p.handler(ctx, update); err != nil {
				p.log.Error("failed to handle update",
					"error", err,
					"update_id", update.UpdateID,
				)
			}
		}
	}
}

// getUpdates получает обновления от Telegram API
func (p *Poller) getUpdates(ctx context.Context) ([]domain.Update, error) {
	req := getUpdatesRequest{
		Offset:         p.lastUpdateID,
		Timeout:        p.timeout,
		AllowedUpdates: []string{"message", "callback_query"},
	}

	var updates []domain.Update
	err := p.client.call(ctx, "getUpdates", req, &updates)
	if err != nil {
		// 409 - конфликт (другой экземпляр бота или активный webhook), пробуем снова
		var apiErr *APIError
		if errors.As(err, &apiErr) && apiErr.Code == http.StatusConflict {
			p.log.Warn("telegram API conflict - another bot instance or webhook is active",
				"description", apiErr.Description,
			)
			select {
			case <-ctx.Done():
			case <-time.After(retryDelay):
			}
			return nil, nil
		}
		return nil, err
	}
	return updates, nil
}
