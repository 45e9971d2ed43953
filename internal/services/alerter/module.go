package alerter

import (
	"context"
	"fmt"
	"strings"

	"github.com/chungjai123/food-bot/internal/adapters/secondary/alerter"
	"github.com/chungjai123/food-bot/internal/ports/service"
)

// maxAlertLength лимит текста сообщения Telegram
const maxAlertLength = 4096

// Service реализует IAlerterService для отправки алертов
type Service struct {
	client *alerter.Client
	app    string
}

// New создаёт сервис алертов; nil-клиент даёт nil-сервис, вызывающие это проверяют
func New(client *alerter.Client, app string) service.IAlerterService {
	if client == nil {
		return nil
	}
	return &Service{
		client: client,
		app:    app,
	}
}

// SendAlert отправляет алерт с префиксом приложения
func (s *Service) SendAlert(ctx context.Context, message string) error {
	if s.client == nil {
		return fmt.Errorf("alerter client is not initialized")
	}

	text := fmt.Sprintf("⚠️ [%s]\n%s", s.app, strings.TrimSpace(message))
	if len(text) > maxAlertLength {
		text = strings.ToValidUTF8(text[:maxAlertLength], "")
	}
	return s.client.SendAlert(ctx, text)
}
