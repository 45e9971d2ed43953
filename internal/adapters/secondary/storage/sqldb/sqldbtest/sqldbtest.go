// Package sqldbtest поднимает временную sqlite-базу для тестов репозиториев
package sqldbtest

import (
	"path/filepath"
	"testing"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"

	"github.com/chungjai123/food-bot/internal/adapters/secondary/storage/sqldb"
	"github.com/chungjai123/food-bot/internal/pkg/logger"
)

// Open пустая sqlite-база во временной директории теста, без миграций
func Open(t testing.TB) *sqlx.DB {
	t.Helper()

	cfg := &sqldb.Config{
		Driver: string(sqldb.DialectSQLite),
		Path:   filepath.Join(t.TempDir(), "food_bot_test.db"),
	}

	db, err := cfg.NewConnection()
	require.NoError(t, err)

	t.Cleanup(func() { _ = db.Close() })
	return db
}

// New база с применёнными миграциями
func New(t testing.TB) *sqldb.DB {
	t.Helper()

	db := Open(t)
	require.NoError(t, sqldb.Migrate(db, sqldb.DialectSQLite, logger.Discard()))

	return sqldb.NewDB(db, sqldb.DialectSQLite)
}
