package telegram

import (
	"context"
	"fmt"
	"strings"

	"github.com/chungjai123/food-bot/internal/domain"
)

const privateChat = "private"

// HandleUpdate Основной метод для обработки всех типов обновлений
func (s *Service) HandleUpdate(ctx context.Context, update *domain.Update) error {
	if update == nil {
		return fmt.Errorf("update is nil")
	}

	var err error
	switch {
	case update.Message != nil:
		err = s.HandleMessage(ctx, update.Message, update.UpdateID)
	case update.CallbackQuery != nil:
		err = s.HandleCallback(ctx, update.CallbackQuery, update.UpdateID)
	default:
		s.Log.Debug("ignoring unsupported update", "update_id", update.UpdateID)
		return nil
	}

	// пользователь уже получил ответ, ошибка залогирована в UseCase
	if domain.IsBusinessError(err) {
		s.Log.Warn("update handled with business error",
			"update_id", update.UpdateID,
			"error", err,
		)
		return nil
	}
	return err
}

// HandleMessage обрабатывает входящее сообщение - роутинг в usecase
func (s *Service) HandleMessage(ctx context.Context, message *domain.Message, updateID int64) error {
	if message.From == nil || message.From.IsBot {
		s.Log.Debug("ignoring message from bot", "update_id", updateID)
		return nil
	}

	if message.Chat == nil || message.Chat.Type != privateChat {
		s.Log.Warn("ignoring message from group/chat",
			"update_id", updateID,
			"user_id", message.From.ID,
		)
		return nil
	}

	switch {
	case message.Text != nil:
		return s.routeTextMessage(ctx, message, *message.Text)
	case len(message.Photo) > 0:
		return s.Bot.HandlePhoto(ctx, message.From, message)
	default:
		s.Log.Debug("ignoring message without text or photo",
			"update_id", updateID,
			"user_id", message.From.ID,
		)
		return nil
	}
}

// HandleCallback нажатие inline-кнопки
func (s *Service) HandleCallback(ctx context.Context, callback *domain.CallbackQuery, updateID int64) error {
	if callback.From == nil || callback.From.IsBot {
		s.Log.Debug("ignoring callback from bot", "update_id", updateID)
		return nil
	}
	return s.Bot.HandleCallback(ctx, callback.From, callback)
}

// routeTextMessage роутит в команду/текст
func (s *Service) routeTextMessage(ctx context.Context, message *domain.Message, text string) error {
	if IsCommand(text) {
		command := ParseCommand(text)
		return s.Bot.HandleCommand(ctx, message.From, message, command)
	}

	return s.Bot.HandleText(ctx, message.From, message, text)
}

// ParseCommand "/History@food_bot extra" -> "history"
func ParseCommand(text string) string {
	text = strings.TrimPrefix(text, "/")

	if idx := strings.IndexAny(text, " \n\t"); idx != -1 {
		text = text[:idx]
	}

	if idx := strings.Index(text, "@"); idx != -1 {
		text = text[:idx]
	}

	return strings.ToLower(text)
}

func IsCommand(text string) bool {
	return len(text) > 0 && text[0] == '/'
}
