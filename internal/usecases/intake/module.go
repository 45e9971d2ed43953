// Package intake диалог /setprofile: пол → возраст → рост → вес → запись профиля
package intake

import (
	"log/slog"
	"sync"
	"time"

	"github.com/looplab/fsm"

	"github.com/chungjai123/food-bot/internal/domain"
	"github.com/chungjai123/food-bot/internal/pkg/keylock"
	"github.com/chungjai123/food-bot/internal/ports/repository"
)

// события переходов
const (
	eventChooseSex   = "choose_sex"
	eventEnterAge    = "enter_age"
	eventEnterHeight = "enter_height"
	eventEnterWeight = "enter_weight"
)

// допустимые диапазоны ввода, границы включительно
const (
	MinAge      = 10
	MaxAge      = 120
	MinHeightCm = 100.0
	MaxHeightCm = 250.0
	MinWeightKg = 30.0
	MaxWeightKg = 300.0
)

// transitions таблица переходов диалога, committed терминальное состояние
var transitions = fsm.Events{
	{Name: eventChooseSex, Src: []string{domain.IntakeStepSex.String()}, Dst: domain.IntakeStepAge.String()},
	{Name: eventEnterAge, Src: []string{domain.IntakeStepAge.String()}, Dst: domain.IntakeStepHeight.String()},
	{Name: eventEnterHeight, Src: []string{domain.IntakeStepHeight.String()}, Dst: domain.IntakeStepWeight.String()},
	{Name: eventEnterWeight, Src: []string{domain.IntakeStepWeight.String()}, Dst: domain.IntakeStepCommitted.String()},
}

type session struct {
	machine    *fsm.FSM
	draft      domain.IntakeDraft
	lastActive time.Time
}

func (s *session) step() domain.IntakeStep {
	return domain.IntakeStep(s.machine.Current())
}

// Machine реестр сессий диалога, не больше одной на пользователя
type Machine struct {
	ProfileRepo repository.IProfileRepo
	Log         *slog.Logger

	locks    *keylock.Locker
	mu       sync.Mutex
	sessions map[int64]*session
	now      func() time.Time
}

func New(profileRepo repository.IProfileRepo, log *slog.Logger) *Machine {
	return &Machine{
		ProfileRepo: profileRepo,
		Log:         log,
		locks:       keylock.New(),
		sessions:    make(map[int64]*session),
		now:         time.Now,
	}
}

func (m *Machine) lookup(userID int64) *session {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.sessions[userID]
}

func (m *Machine) store(userID int64, s *session) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[userID] = s
}

func (m *Machine) touch(s *session) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s.lastActive = m.now()
}

// remove удаляет сессию, только если это всё ещё она
func (m *Machine) remove(userID int64, s *session) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if current, ok := m.sessions[userID]; ok && current == s {
		delete(m.sessions, userID)
	}
}

// Len количество живых сессий
func (m *Machine) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}
