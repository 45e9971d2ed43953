package repository

import (
	"context"

	"github.com/chungjai123/food-bot/internal/domain"
	"github.com/chungjai123/food-bot/internal/ports/persistence"
)

// IHistoryRepo журнал сохранённых анализов, только вставка
type IHistoryRepo interface {
	// Append вставляет запись и проставляет record.ID
	Append(ctx context.Context, record *domain.HistoryRecord) error
	// Recent последние limit записей пользователя, новые первыми
	Recent(ctx context.Context, userID int64, limit int) ([]domain.HistoryRecord, error)
	// TotalCalories сумма калорий по всем записям пользователя, 0 если записей нет
	TotalCalories(ctx context.Context, userID int64) (float64, error)
	DeleteByUser(ctx context.Context, userID int64) (int64, error)

	// Транзакционные методы
	DeleteByUserTx(ctx context.Context, tx persistence.Transaction, userID int64) (int64, error)
}
