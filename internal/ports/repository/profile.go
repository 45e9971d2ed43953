package repository

import (
	"context"

	"github.com/chungjai123/food-bot/internal/domain"
	"github.com/chungjai123/food-bot/internal/ports/persistence"
)

// IProfileRepo профили пользователей, одна запись на user_id
type IProfileRepo interface {
	// Upsert целиком перезаписывает профиль
	Upsert(ctx context.Context, profile *domain.UserProfile) error
	// Get возвращает domain.ErrProfileNotFound, если профиля нет
	Get(ctx context.Context, userID int64) (*domain.UserProfile, error)
	Delete(ctx context.Context, userID int64) error

	WithTransaction(ctx context.Context, fn func(context.Context, persistence.Transaction) error) error

	// Транзакционные методы
	DeleteTx(ctx context.Context, tx persistence.Transaction, userID int64) error
}
