package telegram

import (
	"log/slog"

	"github.com/chungjai123/food-bot/internal/ports/service"
)

// Service роутинг апдейтов Telegram в UseCase бота
type Service struct {
	Bot service.IBotService
	Log *slog.Logger
}

func New(bot service.IBotService, log *slog.Logger) *Service {
	return &Service{
		Bot: bot,
		Log: log,
	}
}
