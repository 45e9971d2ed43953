package intake

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/looplab/fsm"

	"github.com/chungjai123/food-bot/internal/domain"
)

// Start начинает диалог заново; прежняя сессия молча заменяется
func (m *Machine) Start(userID int64) domain.IntakeStep {
	unlock := m.locks.Lock(userID)
	defer unlock()

	s := &session{
		machine:    fsm.NewFSM(domain.IntakeStepSex.String(), transitions, fsm.Callbacks{}),
		lastActive: m.now(),
	}
	if m.lookup(userID) != nil {
		m.Log.Debug("intake session replaced", "user_id", userID)
	}
	m.store(userID, s)
	return s.step()
}

// Current текущий шаг живой сессии
func (m *Machine) Current(userID int64) (domain.IntakeStep, bool) {
	s := m.lookup(userID)
	if s == nil {
		return "", false
	}
	return s.step(), true
}

// AwaitsText есть сессия на шаге текстового ввода
func (m *Machine) AwaitsText(userID int64) bool {
	step, ok := m.Current(userID)
	return ok && step.AwaitsText()
}

// Cancel удаляет сессию; false если её не было
func (m *Machine) Cancel(userID int64) bool {
	unlock := m.locks.Lock(userID)
	defer unlock()

	s := m.lookup(userID)
	if s == nil {
		return false
	}
	m.remove(userID, s)
	return true
}

// SubmitSex шаг выбора пола. domain.ErrNoSession если сессии на этом шаге нет.
func (m *Machine) SubmitSex(ctx context.Context, userID int64, sex domain.Sex) (*domain.IntakeResult, error) {
	unlock := m.locks.Lock(userID)
	defer unlock()

	s := m.lookup(userID)
	if s == nil || s.step() != domain.IntakeStepSex {
		return nil, domain.ErrNoSession
	}
	m.touch(s)

	if !sex.IsValid() {
		return nil, &domain.ValidationError{Step: domain.IntakeStepSex, Input: sex.String()}
	}

	if err := s.machine.Event(ctx, eventChooseSex); err != nil {
		return nil, fmt.Errorf("failed to advance intake: %w", err)
	}
	s.draft.Sex = sex

	return &domain.IntakeResult{Next: s.step(), Draft: s.draft}, nil
}

// SubmitText текстовый ввод для шагов age/height/weight.
// Неверный ввод возвращает *domain.ValidationError, сессия остаётся на том же шаге.
// На шаге weight профиль записывается до уничтожения сессии; при ошибке записи сессия остаётся на weight.
func (m *Machine) SubmitText(ctx context.Context, userID int64, text string) (*domain.IntakeResult, error) {
	unlock := m.locks.Lock(userID)
	defer unlock()

	s := m.lookup(userID)
	if s == nil || !s.step().AwaitsText() {
		return nil, domain.ErrNoSession
	}
	m.touch(s)

	input := strings.TrimSpace(text)

	switch s.step() {
	case domain.IntakeStepAge:
		age, err := strconv.Atoi(input)
		if err != nil || age < MinAge || age > MaxAge {
			return nil, &domain.ValidationError{Step: domain.IntakeStepAge, Input: input, Min: MinAge, Max: MaxAge}
		}
		if err := s.machine.Event(ctx, eventEnterAge); err != nil {
			return nil, fmt.Errorf("failed to advance intake: %w", err)
		}
		s.draft.Age = &age

	case domain.IntakeStepHeight:
		height, ok := parseInRange(input, MinHeightCm, MaxHeightCm)
		if !ok {
			return nil, &domain.ValidationError{Step: domain.IntakeStepHeight, Input: input, Min: MinHeightCm, Max: MaxHeightCm}
		}
		if err := s.machine.Event(ctx, eventEnterHeight); err != nil {
			return nil, fmt.Errorf("failed to advance intake: %w", err)
		}
		s.draft.HeightCm = &height

	case domain.IntakeStepWeight:
		weight, ok := parseInRange(input, MinWeightKg, MaxWeightKg)
		if !ok {
			return nil, &domain.ValidationError{Step: domain.IntakeStepWeight, Input: input, Min: MinWeightKg, Max: MaxWeightKg}
		}
		return m.commit(ctx, userID, s, weight)
	}

	return &domain.IntakeResult{Next: s.step(), Draft: s.draft}, nil
}

// commit пишет профиль, считает BMR и закрывает сессию
func (m *Machine) commit(ctx context.Context, userID int64, s *session, weight float64) (*domain.IntakeResult, error) {
	draft := s.draft
	draft.WeightKg = &weight
	if !draft.Sex.IsValid() || draft.Age == nil || draft.HeightCm == nil {
		m.Log.Error("intake draft is incomplete at weight step", "user_id", userID)
		m.remove(userID, s)
		return nil, domain.ErrNoSession
	}

	profile := domain.NewUserProfile(userID, draft.Sex, *draft.Age, *draft.HeightCm, weight, m.now())
	if err := m.ProfileRepo.Upsert(ctx, profile); err != nil {
		return nil, fmt.Errorf("failed to commit profile: %w", err)
	}

	bmr, _ := domain.ComputeBMR(profile)
	if err := s.machine.Event(ctx, eventEnterWeight); err != nil {
		m.Log.Warn("failed to finish intake transition", "error", err, "user_id", userID)
	}
	s.draft = draft
	m.remove(userID, s)

	m.Log.Info("profile committed", "user_id", userID, "bmr", bmr)
	return &domain.IntakeResult{
		Next:    domain.IntakeStepCommitted,
		Draft:   draft,
		Profile: profile,
		BMR:     bmr,
	}, nil
}

// Sweep удаляет сессии, простаивающие дольше ttl. ttl <= 0 отключает очистку.
func (m *Machine) Sweep(now time.Time, ttl time.Duration) int {
	if ttl <= 0 {
		return 0
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	removed := 0
	for userID, s := range m.sessions {
		if now.Sub(s.lastActive) > ttl {
			delete(m.sessions, userID)
			removed++
		}
	}
	return removed
}

func parseInRange(input string, min, max float64) (float64, bool) {
	v, err := strconv.ParseFloat(input, 64)
	if err != nil || math.IsNaN(v) || v < min || v > max {
		return 0, false
	}
	return v, true
}
