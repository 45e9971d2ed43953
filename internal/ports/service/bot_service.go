package service

import (
	"context"

	"github.com/chungjai123/food-bot/internal/domain"
)

// IBotService бизнес-логика бота, вызывается из роутинга обновлений
type IBotService interface {
	HandleCommand(ctx context.Context, user *domain.TelegramUser, message *domain.Message, command string) error
	HandleText(ctx context.Context, user *domain.TelegramUser, message *domain.Message, text string) error
	HandlePhoto(ctx context.Context, user *domain.TelegramUser, message *domain.Message) error
	HandleCallback(ctx context.Context, user *domain.TelegramUser, callback *domain.CallbackQuery) error
}
