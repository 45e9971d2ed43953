package persistence

import (
	"context"

	"github.com/jmoiron/sqlx"
)

// Persistence базовые операции с БД. Запросы пишутся с плейсхолдерами `?`,
// реализация сама переводит их в синтаксис драйвера.
type Persistence interface {
	Get(ctx context.Context, dest interface{}, query string, args ...interface{}) error
	Select(ctx context.Context, dest interface{}, query string, args ...interface{}) error
	Exec(ctx context.Context, query string, args ...interface{}) error
	ExecWithResult(ctx context.Context, query string, args ...interface{}) (int64, error)
	QueryRow(ctx context.Context, query string, args ...interface{}) *sqlx.Row
}

// Transaction открытая транзакция
type Transaction interface {
	Persistence
	Commit() error
	Rollback() error
}

// Transactional Persistence с поддержкой транзакций
type Transactional interface {
	Persistence
	BeginTx(ctx context.Context) (Transaction, error)
	WithTransaction(ctx context.Context, fn func(context.Context, Transaction) error) error
}
