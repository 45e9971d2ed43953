package sqldb

import (
	"fmt"
	"log/slog"

	"github.com/jmoiron/sqlx"
)

type columnSpec struct {
	Name         string
	SQLiteType   string
	PostgresType string
}

func (c columnSpec) typeFor(dialect Dialect) string {
	if dialect == DialectPostgres {
		return c.PostgresType
	}
	return c.SQLiteType
}

type tableSpec struct {
	Name    string
	Columns []columnSpec
}

// optionalColumns колонки, которых может не быть в базах, созданных старыми версиями бота.
// Ключевые колонки (user_id, id, timestamp) есть во всех версиях.
var optionalColumns = []tableSpec{
	{
		Name: "users",
		Columns: []columnSpec{
			{"sex", "TEXT", "TEXT"},
			{"age", "INTEGER", "INTEGER"},
			{"height_cm", "REAL", "DOUBLE PRECISION"},
			{"weight_kg", "REAL", "DOUBLE PRECISION"},
			{"updated_at", "TEXT", "TIMESTAMPTZ"},
		},
	},
	{
		Name: "history",
		Columns: []columnSpec{
			{"recognized", "TEXT", "TEXT"},
			{"calories", "REAL", "DOUBLE PRECISION"},
			{"protein", "REAL", "DOUBLE PRECISION"},
			{"carbs", "REAL", "DOUBLE PRECISION"},
			{"fat", "REAL", "DOUBLE PRECISION"},
			{"sugar", "REAL", "DOUBLE PRECISION"},
			{"tips", "TEXT", "TEXT"},
			{"full_text", "TEXT", "TEXT"},
			{"analysis_id", "TEXT", "UUID"},
		},
	},
}

// ReconcileColumns добавляет недостающие колонки через ALTER TABLE ... ADD COLUMN.
// Возвращает список добавленных колонок в виде table.column.
func ReconcileColumns(db *sqlx.DB, dialect Dialect, logger *slog.Logger) ([]string, error) {
	var added []string

	for _, table := range optionalColumns {
		existing, err := listColumns(db, dialect, table.Name)
		if err != nil {
			return added, fmt.Errorf("failed to list columns of %s: %w", table.Name, err)
		}
		if len(existing) == 0 {
			logger.Warn("table not found, skipping column reconcile", "table", table.Name)
			continue
		}

		for _, col := range table.Columns {
			if existing[col.Name] {
				continue
			}

			query := fmt.Sprintf("ALTER TABLE %s ADD COLUMN %s %s", table.Name, col.Name, col.typeFor(dialect))
			if _, err := db.Exec(query); err != nil {
				return added, fmt.Errorf("failed to add column %s.%s: %w", table.Name, col.Name, err)
			}

			logger.Info("added missing column", "table", table.Name, "column", col.Name)
			added = append(added, table.Name+"."+col.Name)
		}
	}

	return added, nil
}

func listColumns(db *sqlx.DB, dialect Dialect, table string) (map[string]bool, error) {
	var query string
	switch dialect {
	case DialectSQLite:
		query = "SELECT name FROM pragma_table_info(?)"
	case DialectPostgres:
		query = `SELECT column_name FROM information_schema.columns
			WHERE table_schema = current_schema() AND table_name = ?`
	default:
		return nil, fmt.Errorf("unsupported dialect: %s", dialect)
	}

	var names []string
	if err := db.Select(&names, db.Rebind(query), table); err != nil {
		return nil, err
	}

	columns := make(map[string]bool, len(names))
	for _, name := range names {
		columns[name] = true
	}
	return columns, nil
}
