package historyRepo

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/chungjai123/food-bot/internal/adapters/secondary/storage/sqldb"
	"github.com/chungjai123/food-bot/internal/domain"
	"github.com/chungjai123/food-bot/internal/ports/persistence"
	ports "github.com/chungjai123/food-bot/internal/ports/repository"
)

type historyColumns struct {
	TableName  string
	ID         string
	UserID     string
	AnalysisID string
	CreatedAt  string
	Recognized string
	Calories   string
	Protein    string
	Carbs      string
	Fat        string
	Sugar      string
	Tips       string
	FullText   string
}

type Repository struct {
	db      persistence.Persistence
	Log     *slog.Logger
	columns historyColumns
}

// New создаёт репозиторий истории
func New(db persistence.Persistence, log *slog.Logger) ports.IHistoryRepo {
	cols := historyColumns{
		TableName:  "history",
		ID:         "id",
		UserID:     "user_id",
		AnalysisID: "analysis_id",
		CreatedAt:  `"timestamp"`,
		Recognized: "recognized",
		Calories:   "calories",
		Protein:    "protein",
		Carbs:      "carbs",
		Fat:        "fat",
		Sugar:      "sugar",
		Tips:       "tips",
		FullText:   "full_text",
	}
	return &Repository{
		db:      db,
		Log:     log,
		columns: cols,
	}
}

// historyRow строка history; числовые и текстовые поля в старых базах бывают NULL
type historyRow struct {
	ID         int64           `db:"id"`
	UserID     int64           `db:"user_id"`
	AnalysisID sql.NullString  `db:"analysis_id"`
	CreatedAt  sqldb.Timestamp `db:"timestamp"`
	Recognized sql.NullString  `db:"recognized"`
	Calories   sql.NullFloat64 `db:"calories"`
	Protein    sql.NullFloat64 `db:"protein"`
	Carbs      sql.NullFloat64 `db:"carbs"`
	Fat        sql.NullFloat64 `db:"fat"`
	Sugar      sql.NullFloat64 `db:"sugar"`
	Tips       sql.NullString  `db:"tips"`
	FullText   sql.NullString  `db:"full_text"`
}

func (r historyRow) toDomain() domain.HistoryRecord {
	rec := domain.HistoryRecord{
		ID:         r.ID,
		UserID:     r.UserID,
		CreatedAt:  r.CreatedAt.Time,
		Recognized: r.Recognized.String,
		Calories:   r.Calories.Float64,
		Protein:    r.Protein.Float64,
		Carbs:      r.Carbs.Float64,
		Fat:        r.Fat.Float64,
		Sugar:      r.Sugar.Float64,
		Tips:       r.Tips.String,
		FullText:   r.FullText.String,
	}
	if r.AnalysisID.Valid {
		if id, err := uuid.Parse(r.AnalysisID.String); err == nil {
			rec.AnalysisID = &id
		}
	}
	return rec
}

// insertColumns колонки для вставки, без id
func (r *Repository) insertColumns() string {
	return fmt.Sprintf("%s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s",
		r.columns.UserID,
		r.columns.AnalysisID,
		r.columns.CreatedAt,
		r.columns.Recognized,
		r.columns.Calories,
		r.columns.Protein,
		r.columns.Carbs,
		r.columns.Fat,
		r.columns.Sugar,
		r.columns.Tips,
		r.columns.FullText)
}

// Append добавляет запись в историю
func (r *Repository) Append(ctx context.Context, record *domain.HistoryRecord) error {
	var analysisID sql.NullString
	if record.AnalysisID != nil {
		analysisID = sql.NullString{String: record.AnalysisID.String(), Valid: true}
	}

	query := fmt.Sprintf(`INSERT INTO %s (%s) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?) RETURNING %s`,
		r.columns.TableName,
		r.insertColumns(),
		r.columns.ID)
	var id int64
	err := r.db.QueryRow(ctx, query,
		record.UserID,
		analysisID,
		sqldb.NewTimestamp(record.CreatedAt),
		record.Recognized,
		record.Calories,
		record.Protein,
		record.Carbs,
		record.Fat,
		record.Sugar,
		record.Tips,
		record.FullText).Scan(&id)
	if err != nil {
		r.Log.Error("failed to append history record",
			"error", err,
			"user_id", record.UserID,
			"analysis_id", analysisID.String)
		return fmt.Errorf("failed to append history record: %w", err)
	}
	record.ID = id
	r.Log.Debug("history record appended",
		"id", id,
		"user_id", record.UserID,
		"analysis_id", analysisID.String)
	return nil
}

// Recent последние записи пользователя, новые первыми
func (r *Repository) Recent(ctx context.Context, userID int64, limit int) ([]domain.HistoryRecord, error) {
	if limit <= 0 {
		return []domain.HistoryRecord{}, nil
	}

	var rows []historyRow
	query := fmt.Sprintf(`SELECT %s, %s FROM %s WHERE %s = ? ORDER BY %s DESC LIMIT ?`,
		r.columns.ID,
		r.insertColumns(),
		r.columns.TableName,
		r.columns.UserID,
		r.columns.ID)
	err := r.db.Select(ctx, &rows, query, userID, limit)
	if err != nil {
		r.Log.Error("failed to get recent history",
			"error", err,
			"user_id", userID)
		return nil, fmt.Errorf("failed to get recent history: %w", err)
	}

	records := make([]domain.HistoryRecord, 0, len(rows))
	for _, row := range rows {
		records = append(records, row.toDomain())
	}
	r.Log.Debug("recent history retrieved", "user_id", userID, "count", len(records))
	return records, nil
}

// TotalCalories сумма калорий по всей истории пользователя; NULL-строки не учитываются
func (r *Repository) TotalCalories(ctx context.Context, userID int64) (float64, error) {
	var total float64
	query := fmt.Sprintf(`SELECT COALESCE(SUM(%s), 0) FROM %s WHERE %s = ?`,
		r.columns.Calories,
		r.columns.TableName,
		r.columns.UserID)
	err := r.db.Get(ctx, &total, query, userID)
	if err != nil {
		r.Log.Error("failed to sum calories",
			"error", err,
			"user_id", userID)
		return 0, fmt.Errorf("failed to sum calories: %w", err)
	}
	return total, nil
}

// DeleteByUser удаляет всю историю пользователя
func (r *Repository) DeleteByUser(ctx context.Context, userID int64) (int64, error) {
	return r.deleteByUserWith(ctx, r.db, userID)
}

// DeleteByUserTx удаляет всю историю пользователя в транзакции
func (r *Repository) DeleteByUserTx(ctx context.Context, tx persistence.Transaction, userID int64) (int64, error) {
	return r.deleteByUserWith(ctx, tx, userID)
}

func (r *Repository) deleteByUserWith(ctx context.Context, db persistence.Persistence, userID int64) (int64, error) {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = ?`,
		r.columns.TableName,
		r.columns.UserID)
	rowsAffected, err := db.ExecWithResult(ctx, query, userID)
	if err != nil {
		r.Log.Error("failed to delete history",
			"error", err,
			"user_id", userID)
		return 0, fmt.Errorf("failed to delete history: %w", err)
	}
	r.Log.Debug("history deleted", "user_id", userID, "rowsAffected", rowsAffected)
	return rowsAffected, nil
}
