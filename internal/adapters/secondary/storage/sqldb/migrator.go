package sqldb

import (
	"embed"
	"fmt"
	"log/slog"
	"path"
	"sort"
	"strconv"
	"strings"

	"github.com/jmoiron/sqlx"
)

//go:embed migrations/sqlite/*.sql migrations/postgres/*.sql
var migrationsFS embed.FS

// Migrate применяет версионные миграции и дотягивает недостающие колонки.
// Существующие строки не удаляются и не пересоздаются.
func Migrate(db *sqlx.DB, dialect Dialect, logger *slog.Logger) error {
	if err := RunMigrations(db, dialect, logger); err != nil {
		return err
	}

	if _, err := ReconcileColumns(db, dialect, logger); err != nil {
		return fmt.Errorf("failed to reconcile columns: %w", err)
	}

	return nil
}

// RunMigrations применяет миграции к базе данных
func RunMigrations(db *sqlx.DB, dialect Dialect, logger *slog.Logger) error {
	if !dialect.IsValid() {
		return fmt.Errorf("unsupported dialect: %s", dialect)
	}

	logger.Info("starting database migrations", "dialect", dialect)

	if err := createMigrationsTable(db); err != nil {
		return fmt.Errorf("failed to create migrations table: %w", err)
	}

	dirty, err := getDirtyVersion(db)
	if err != nil {
		return fmt.Errorf("failed to check dirty migrations: %w", err)
	}
	if dirty > 0 {
		return fmt.Errorf("database is dirty at migration %d, fix it manually", dirty)
	}

	migrations, err := getMigrations(dialect)
	if err != nil {
		return fmt.Errorf("failed to get migrations: %w", err)
	}

	currentVersion, err := getCurrentVersion(db)
	if err != nil {
		return fmt.Errorf("failed to get current version: %w", err)
	}

	applied := 0
	for _, m := range migrations {
		if m.Version <= currentVersion {
			logger.Debug("migration already applied", "version", m.Version, "name", m.Name)
			continue
		}

		logger.Info("applying migration", "version", m.Version, "name", m.Name)

		if err := applyMigration(db, m); err != nil {
			return fmt.Errorf("failed to apply migration %d (%s): %w", m.Version, m.Name, err)
		}

		applied++
		logger.Info("migration applied successfully", "version", m.Version, "name", m.Name)
	}

	logger.Info("database migrations completed", "applied", applied, "total", len(migrations))
	return nil
}

type migration struct {
	Version int64
	Name    string
	Content string
}

// getMigrations читает SQL файлы диалекта и сортирует их по версии
func getMigrations(dialect Dialect) ([]migration, error) {
	dir := path.Join("migrations", string(dialect))

	entries, err := migrationsFS.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read migrations directory: %w", err)
	}

	var migrations []migration

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".sql") {
			continue
		}

		version, name, err := parseMigrationName(entry.Name())
		if err != nil {
			return nil, fmt.Errorf("invalid migration name %s: %w", entry.Name(), err)
		}

		content, err := migrationsFS.ReadFile(path.Join(dir, entry.Name()))
		if err != nil {
			return nil, fmt.Errorf("failed to read migration %s: %w", entry.Name(), err)
		}

		migrations = append(migrations, migration{
			Version: version,
			Name:    name,
			Content: string(content),
		})
	}

	sort.Slice(migrations, func(i, j int) bool {
		return migrations[i].Version < migrations[j].Version
	})

	return migrations, nil
}

// parseMigrationName парсит имя файла миграции (формат: 0001_name.sql)
func parseMigrationName(filename string) (int64, string, error) {
	name := strings.TrimSuffix(filename, ".sql")

	parts := strings.SplitN(name, "_", 2)
	if len(parts) != 2 {
		return 0, "", fmt.Errorf("invalid format: expected NNNN_name.sql")
	}

	version, err := strconv.ParseInt(parts[0], 10, 64)
	if err != nil {
		return 0, "", fmt.Errorf("invalid version number: %w", err)
	}

	return version, parts[1], nil
}

// applyMigration выполняет миграцию в транзакции. dirty-флаг ставится до начала
// и снимается в той же транзакции, что и сама миграция: если процесс упал посередине,
// следующий старт остановится на dirty-версии.
func applyMigration(db *sqlx.DB, m migration) error {
	if err := markDirty(db, m.Version, true); err != nil {
		return fmt.Errorf("failed to mark dirty: %w", err)
	}

	tx, err := db.Beginx()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	if _, err := tx.Exec(m.Content); err != nil {
		_ = tx.Rollback()
		// DDL откатился вместе с транзакцией, dirty-отметка не нужна
		_ = deleteVersion(db, m.Version)
		return fmt.Errorf("failed to execute migration: %w", err)
	}

	if _, err := tx.Exec(tx.Rebind(upsertVersionQuery), m.Version, false); err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("failed to record migration: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

const upsertVersionQuery = `
	INSERT INTO schema_migrations (version, dirty, applied_at)
	VALUES (?, ?, CURRENT_TIMESTAMP)
	ON CONFLICT (version) DO UPDATE SET dirty = excluded.dirty, applied_at = excluded.applied_at
`

// getCurrentVersion получает текущую версию БД
func getCurrentVersion(db *sqlx.DB) (int64, error) {
	var version int64
	err := db.Get(&version, "SELECT COALESCE(MAX(version), 0) FROM schema_migrations WHERE dirty = false")
	if err != nil {
		return 0, fmt.Errorf("failed to get current version: %w", err)
	}
	return version, nil
}

// getDirtyVersion версия, оставшаяся dirty после падения, или 0
func getDirtyVersion(db *sqlx.DB) (int64, error) {
	var version int64
	err := db.Get(&version, "SELECT COALESCE(MAX(version), 0) FROM schema_migrations WHERE dirty = true")
	if err != nil {
		return 0, err
	}
	return version, nil
}

// markDirty устанавливает флаг dirty для миграции
func markDirty(db *sqlx.DB, version int64, dirty bool) error {
	_, err := db.Exec(db.Rebind(upsertVersionQuery), version, dirty)
	return err
}

func deleteVersion(db *sqlx.DB, version int64) error {
	_, err := db.Exec(db.Rebind("DELETE FROM schema_migrations WHERE version = ?"), version)
	return err
}

// createMigrationsTable создает таблицу для отслеживания выполненных миграций
func createMigrationsTable(db *sqlx.DB) error {
	query := `
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version BIGINT NOT NULL PRIMARY KEY,
			dirty BOOLEAN NOT NULL DEFAULT FALSE,
			applied_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
		)
	`
	_, err := db.Exec(query)
	if err != nil {
		return fmt.Errorf("failed to create schema_migrations table: %w", err)
	}
	return nil
}
