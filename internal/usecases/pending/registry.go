// Package pending ожидающие подтверждения анализы, один слот на пользователя
package pending

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/chungjai123/food-bot/internal/domain"
	"github.com/chungjai123/food-bot/internal/pkg/keylock"
	"github.com/chungjai123/food-bot/internal/pkg/nutritiontext"
	"github.com/chungjai123/food-bot/internal/ports/repository"
)

// Registry держит не больше одного неподтверждённого анализа на пользователя.
// Живёт только в памяти процесса, после рестарта кнопки отвечают "session expired".
type Registry struct {
	HistoryRepo repository.IHistoryRepo
	Log         *slog.Logger

	locks   *keylock.Locker
	mu      sync.Mutex
	entries map[int64]*domain.PendingAnalysis
	now     func() time.Time
}

func New(historyRepo repository.IHistoryRepo, log *slog.Logger) *Registry {
	return &Registry{
		HistoryRepo: historyRepo,
		Log:         log,
		locks:       keylock.New(),
		entries:     make(map[int64]*domain.PendingAnalysis),
		now:         time.Now,
	}
}

// Put разбирает ответ модели и кладёт его в слот пользователя, затирая прежний
func (r *Registry) Put(userID, chatID int64, rawText string) *domain.PendingAnalysis {
	unlock := r.locks.Lock(userID)
	defer unlock()

	entry := &domain.PendingAnalysis{
		ID:        uuid.New(),
		UserID:    userID,
		ChatID:    chatID,
		Facts:     nutritiontext.Parse(rawText),
		RawText:   rawText,
		CreatedAt: r.now(),
	}

	r.mu.Lock()
	prev, replaced := r.entries[userID]
	r.entries[userID] = entry
	r.mu.Unlock()

	if replaced {
		r.Log.Debug("pending analysis replaced",
			"user_id", userID,
			"previous_id", prev.ID,
			"analysis_id", entry.ID)
	}
	return entry
}

// Get текущий ожидающий анализ без изъятия
func (r *Registry) Get(userID int64) (*domain.PendingAnalysis, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	entry, ok := r.entries[userID]
	return entry, ok
}

// Resolve изымает анализ и применяет решение ровно один раз.
// Save добавляет запись в историю с временем анализа; discard ничего не пишет.
// Без анализа возвращает domain.ErrNoPendingEntry. Если запись в историю не удалась,
// анализ возвращается в слот и решение можно повторить.
func (r *Registry) Resolve(ctx context.Context, userID int64, decision domain.Decision) (*domain.PendingAnalysis, *domain.HistoryRecord, error) {
	if !decision.IsValid() {
		return nil, nil, fmt.Errorf("unknown decision %q", decision)
	}

	unlock := r.locks.Lock(userID)
	defer unlock()

	entry := r.take(userID)
	if entry == nil {
		return nil, nil, domain.ErrNoPendingEntry
	}

	if decision == domain.DecisionDiscard {
		r.Log.Debug("pending analysis discarded", "user_id", userID, "analysis_id", entry.ID)
		return entry, nil, nil
	}

	record := domain.NewHistoryRecord(entry)
	if err := r.HistoryRepo.Append(ctx, record); err != nil {
		r.reinstate(userID, entry)
		r.Log.Error("failed to save pending analysis, entry reinstated",
			"error", err,
			"user_id", userID,
			"analysis_id", entry.ID)
		return entry, nil, fmt.Errorf("failed to save analysis: %w", err)
	}

	r.Log.Info("pending analysis saved",
		"user_id", userID,
		"analysis_id", entry.ID,
		"history_id", record.ID)
	return entry, record, nil
}

// Drop выбрасывает анализ без записи; false если его не было
func (r *Registry) Drop(userID int64) bool {
	unlock := r.locks.Lock(userID)
	defer unlock()
	return r.take(userID) != nil
}

// Sweep удаляет анализы старше ttl. ttl <= 0 отключает очистку.
func (r *Registry) Sweep(now time.Time, ttl time.Duration) int {
	if ttl <= 0 {
		return 0
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	removed := 0
	for userID, entry := range r.entries {
		if now.Sub(entry.CreatedAt) > ttl {
			delete(r.entries, userID)
			removed++
		}
	}
	return removed
}

// Len количество ожидающих анализов
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.entries)
}

func (r *Registry) take(userID int64) *domain.PendingAnalysis {
	r.mu.Lock()
	defer r.mu.Unlock()
	entry, ok := r.entries[userID]
	if !ok {
		return nil
	}
	delete(r.entries, userID)
	return entry
}

// reinstate возвращает анализ, если слот всё ещё пуст
func (r *Registry) reinstate(userID int64, entry *domain.PendingAnalysis) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.entries[userID]; !ok {
		r.entries[userID] = entry
	}
}
