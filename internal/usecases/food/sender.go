package food

import (
	"context"
	"fmt"

	"github.com/chungjai123/food-bot/internal/domain"
)

// reply отвечает на сообщение пользователя
func (s *Service) reply(ctx context.Context, message *domain.Message, text string) error {
	return s.replyWithKeyboard(ctx, message, text, nil)
}

// replyWithKeyboard отвечает на сообщение с inline клавиатурой
func (s *Service) replyWithKeyboard(ctx context.Context, message *domain.Message, text string, keyboard map[string]interface{}) error {
	if err := s.TelegramClient.ReplyToMessage(ctx, message.Chat.ID, message.MessageID, text, keyboard); err != nil {
		s.Log.Error("failed to reply to message",
			"error", err,
			"chat_id", message.Chat.ID,
			"message_id", message.MessageID,
		)
		return fmt.Errorf("failed to reply to message: %w", err)
	}

	return nil
}

// editMessage заменяет текст сообщения с кнопками; сообщение может быть недоступно (старое inline)
func (s *Service) editMessage(ctx context.Context, message *domain.Message, text string) error {
	if message == nil || message.Chat == nil {
		return nil
	}
	if err := s.TelegramClient.EditMessageText(ctx, message.Chat.ID, message.MessageID, text); err != nil {
		s.Log.Error("failed to edit message",
			"error", err,
			"chat_id", message.Chat.ID,
			"message_id", message.MessageID,
		)
		return fmt.Errorf("failed to edit message: %w", err)
	}

	return nil
}

// answerCallback убирает "часики" на кнопке; text может быть пустым
func (s *Service) answerCallback(ctx context.Context, callback *domain.CallbackQuery, text string) error {
	if err := s.TelegramClient.AnswerCallbackQuery(ctx, callback.ID, text, false); err != nil {
		s.Log.Error("failed to answer callback query",
			"error", err,
			"callback_id", callback.ID,
		)
		return fmt.Errorf("failed to answer callback query: %w", err)
	}

	return nil
}
