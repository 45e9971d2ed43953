package profileRepo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/chungjai123/food-bot/internal/adapters/secondary/storage/sqldb"
	"github.com/chungjai123/food-bot/internal/domain"
	"github.com/chungjai123/food-bot/internal/ports/persistence"
	ports "github.com/chungjai123/food-bot/internal/ports/repository"
)

type profileColumns struct {
	TableName string
	UserID    string
	Sex       string
	Age       string
	HeightCm  string
	WeightKg  string
	UpdatedAt string
}

type Repository struct {
	db      persistence.Transactional
	Log     *slog.Logger
	columns profileColumns
}

// New создаёт репозиторий профилей
func New(db persistence.Transactional, log *slog.Logger) ports.IProfileRepo {
	cols := profileColumns{
		TableName: "users",
		UserID:    "user_id",
		Sex:       "sex",
		Age:       "age",
		HeightCm:  "height_cm",
		WeightKg:  "weight_kg",
		UpdatedAt: "updated_at",
	}
	return &Repository{
		db:      db,
		Log:     log,
		columns: cols,
	}
}

// profileRow строка users; любое поле, кроме user_id, может быть NULL в старых базах
type profileRow struct {
	UserID    int64           `db:"user_id"`
	Sex       sql.NullString  `db:"sex"`
	Age       sql.NullInt64   `db:"age"`
	HeightCm  sql.NullFloat64 `db:"height_cm"`
	WeightKg  sql.NullFloat64 `db:"weight_kg"`
	UpdatedAt sqldb.Timestamp `db:"updated_at"`
}

func (r profileRow) toDomain() *domain.UserProfile {
	p := &domain.UserProfile{
		UserID:    r.UserID,
		Sex:       domain.Sex(r.Sex.String),
		UpdatedAt: r.UpdatedAt.Ptr(),
	}
	if r.Age.Valid {
		age := int(r.Age.Int64)
		p.Age = &age
	}
	if r.HeightCm.Valid {
		h := r.HeightCm.Float64
		p.HeightCm = &h
	}
	if r.WeightKg.Valid {
		w := r.WeightKg.Float64
		p.WeightKg = &w
	}
	return p
}

// allColumns возвращает строку со всеми колонками
func (r *Repository) allColumns() string {
	return fmt.Sprintf("%s, %s, %s, %s, %s, %s",
		r.columns.UserID,
		r.columns.Sex,
		r.columns.Age,
		r.columns.HeightCm,
		r.columns.WeightKg,
		r.columns.UpdatedAt)
}

// Upsert записывает профиль целиком, перезаписывая существующий
func (r *Repository) Upsert(ctx context.Context, profile *domain.UserProfile) error {
	if !profile.IsComplete() {
		r.Log.Warn("refusing to store incomplete profile", "user_id", profile.UserID)
		return fmt.Errorf("failed to upsert profile: profile is incomplete")
	}

	var updatedAt sqldb.Timestamp
	if profile.UpdatedAt != nil {
		updatedAt = sqldb.NewTimestamp(*profile.UpdatedAt)
	}

	query := fmt.Sprintf(`INSERT INTO %s (%s) VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT (%s) DO UPDATE SET
		%s = excluded.%s, %s = excluded.%s, %s = excluded.%s, %s = excluded.%s, %s = excluded.%s`,
		r.columns.TableName,
		r.allColumns(),
		r.columns.UserID,
		r.columns.Sex, r.columns.Sex,
		r.columns.Age, r.columns.Age,
		r.columns.HeightCm, r.columns.HeightCm,
		r.columns.WeightKg, r.columns.WeightKg,
		r.columns.UpdatedAt, r.columns.UpdatedAt)
	err := r.db.Exec(ctx, query,
		profile.UserID,
		profile.Sex.String(),
		*profile.Age,
		*profile.HeightCm,
		*profile.WeightKg,
		updatedAt)
	if err != nil {
		r.Log.Error("failed to upsert profile",
			"error", err,
			"user_id", profile.UserID)
		return fmt.Errorf("failed to upsert profile: %w", err)
	}
	r.Log.Debug("profile upserted successfully", "user_id", profile.UserID)
	return nil
}

// Get получает профиль по user_id
func (r *Repository) Get(ctx context.Context, userID int64) (*domain.UserProfile, error) {
	var row profileRow
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = ?`,
		r.allColumns(),
		r.columns.TableName,
		r.columns.UserID)
	err := r.db.Get(ctx, &row, query, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			r.Log.Debug("profile not found", "user_id", userID)
			return nil, domain.ErrProfileNotFound
		}
		r.Log.Error("failed to get profile",
			"error", err,
			"user_id", userID)
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}
	r.Log.Debug("profile retrieved successfully", "user_id", userID)
	return row.toDomain(), nil
}

// Delete удаляет профиль; отсутствие профиля не ошибка
func (r *Repository) Delete(ctx context.Context, userID int64) error {
	return r.deleteWith(ctx, r.db, userID)
}

// WithTransaction выполняет функцию в транзакции с автоматическим commit/rollback
func (r *Repository) WithTransaction(ctx context.Context, fn func(context.Context, persistence.Transaction) error) error {
	return r.db.WithTransaction(ctx, fn)
}

// DeleteTx удаляет профиль в транзакции
func (r *Repository) DeleteTx(ctx context.Context, tx persistence.Transaction, userID int64) error {
	return r.deleteWith(ctx, tx, userID)
}

func (r *Repository) deleteWith(ctx context.Context, db persistence.Persistence, userID int64) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = ?`,
		r.columns.TableName,
		r.columns.UserID)
	rowsAffected, err := db.ExecWithResult(ctx, query, userID)
	if err != nil {
		r.Log.Error("failed to delete profile",
			"error", err,
			"user_id", userID)
		return fmt.Errorf("failed to delete profile: %w", err)
	}
	r.Log.Debug("profile deleted", "user_id", userID, "rowsAffected", rowsAffected)
	return nil
}
