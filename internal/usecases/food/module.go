package food

import (
	"log/slog"
	"time"

	"github.com/chungjai123/food-bot/internal/ports/cache"
	"github.com/chungjai123/food-bot/internal/ports/repository"
	"github.com/chungjai123/food-bot/internal/ports/service"
	"github.com/chungjai123/food-bot/internal/ports/storage"
	"github.com/chungjai123/food-bot/internal/ports/telegram"
	"github.com/chungjai123/food-bot/internal/usecases/food/texts"
	"github.com/chungjai123/food-bot/internal/usecases/intake"
	"github.com/chungjai123/food-bot/internal/usecases/pending"
)

type Config struct {
	HistoryLimit        int           `envconfig:"HISTORY_LIMIT" default:"10"`
	WelcomeHistoryLimit int           `envconfig:"WELCOME_HISTORY_LIMIT" default:"8"`
	AnalysisCooldown    time.Duration `envconfig:"ANALYSIS_COOLDOWN" default:"0s"`
	SessionTTL          time.Duration `envconfig:"SESSION_TTL" default:"6h"`
	SweepInterval       time.Duration `envconfig:"SWEEP_INTERVAL" default:"1m"`
	// Prompt пустой - используется texts.AnalysisPrompt
	Prompt string `envconfig:"PROMPT"`
}

// Service бизнес-логика бота подсчёта калорий
type Service struct {
	ProfileRepo    repository.IProfileRepo
	HistoryRepo    repository.IHistoryRepo
	Intake         *intake.Machine
	Pending        *pending.Registry
	TelegramClient telegram.IClient
	Vision         service.IVisionService
	Cache          cache.Cache

	// опциональные интеграции, nil если не настроены
	Archive        storage.IPhotoArchive
	Events         service.IEventPublisher
	AlerterService service.IAlerterService

	Cfg Config
	Log *slog.Logger
}

// New создаёт новый сервис для бизнес-логики бота
func New(
	profileRepo repository.IProfileRepo,
	historyRepo repository.IHistoryRepo,
	intakeMachine *intake.Machine,
	pendingRegistry *pending.Registry,
	telegramClient telegram.IClient,
	vision service.IVisionService,
	cache cache.Cache,
	cfg Config,
	log *slog.Logger,
) *Service {
	if cfg.Prompt == "" {
		cfg.Prompt = texts.AnalysisPrompt
	}
	return &Service{
		ProfileRepo:    profileRepo,
		HistoryRepo:    historyRepo,
		Intake:         intakeMachine,
		Pending:        pendingRegistry,
		TelegramClient: telegramClient,
		Vision:         vision,
		Cache:          cache,
		Cfg:            cfg,
		Log:            log,
	}
}

// WithArchive включает архив фото в S3
func (s *Service) WithArchive(archive storage.IPhotoArchive) *Service {
	s.Archive = archive
	return s
}

// WithEvents включает публикацию событий о сохранённых анализах
func (s *Service) WithEvents(events service.IEventPublisher) *Service {
	s.Events = events
	return s
}

// WithAlerter включает алерты в служебный чат
func (s *Service) WithAlerter(alerter service.IAlerterService) *Service {
	s.AlerterService = alerter
	return s
}
