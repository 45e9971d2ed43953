package telegram

import (
	"context"

	"github.com/chungjai123/food-bot/internal/domain"
)

// IClient интерфейс для клиента Telegram API
type IClient interface {
	SendMessage(ctx context.Context, chatID int64, text string) error
	SendMessageWithKeyboard(ctx context.Context, chatID int64, text string, keyboard map[string]interface{}) error
	// ReplyToMessage ответ на сообщение пользователя; keyboard может быть nil
	ReplyToMessage(ctx context.Context, chatID, messageID int64, text string, keyboard map[string]interface{}) error
	EditMessageText(ctx context.Context, chatID, messageID int64, text string) error
	AnswerCallbackQuery(ctx context.Context, callbackID string, text string, showAlert bool) error
	GetFile(ctx context.Context, fileID string) (*domain.File, error)
	DownloadFile(ctx context.Context, filePath string) ([]byte, error)
}
