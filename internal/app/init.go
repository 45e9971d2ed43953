package app

import (
	"context"
	"fmt"
	"net/http"

	server "github.com/chungjai123/food-bot/internal/adapters/primary/http"
	healthcheckController "github.com/chungjai123/food-bot/internal/adapters/primary/http/controllers/healthcheck"
	telegramController "github.com/chungjai123/food-bot/internal/adapters/primary/http/controllers/telegram"
	alerterAdapter "github.com/chungjai123/food-bot/internal/adapters/secondary/alerter"
	kafkaAdapter "github.com/chungjai123/food-bot/internal/adapters/secondary/kafka"
	"github.com/chungjai123/food-bot/internal/adapters/secondary/storage/inmemory"
	redisAdapter "github.com/chungjai123/food-bot/internal/adapters/secondary/storage/redis"
	s3Adapter "github.com/chungjai123/food-bot/internal/adapters/secondary/storage/s3"
	"github.com/chungjai123/food-bot/internal/adapters/secondary/storage/sqldb"
	tgAdapter "github.com/chungjai123/food-bot/internal/adapters/secondary/telegram"
	visionAdapter "github.com/chungjai123/food-bot/internal/adapters/secondary/vision"
	"github.com/chungjai123/food-bot/internal/ports/cache"
	"github.com/chungjai123/food-bot/internal/ports/repository"
	"github.com/chungjai123/food-bot/internal/ports/service"
	"github.com/chungjai123/food-bot/internal/ports/storage"
	historyRepo "github.com/chungjai123/food-bot/internal/repository/history"
	profileRepo "github.com/chungjai123/food-bot/internal/repository/profile"
	alerterService "github.com/chungjai123/food-bot/internal/services/alerter"
	jobScheduler "github.com/chungjai123/food-bot/internal/services/jobs"
	telegramService "github.com/chungjai123/food-bot/internal/services/telegram"
	foodUsecase "github.com/chungjai123/food-bot/internal/usecases/food"
	"github.com/chungjai123/food-bot/internal/usecases/intake"
	"github.com/chungjai123/food-bot/internal/usecases/pending"
)

type Dependencies struct {
	DB              *sqldb.DB
	HTTPServer      *http.Server
	TelegramService *telegramService.Service
	TelegramClient  *tgAdapter.Client
	TelegramPoller  *tgAdapter.Poller
	KafkaProducer   *kafkaAdapter.Producer
	Cache           cache.Cache
	JobScheduler    *jobScheduler.Scheduler
}

// initDependencies инициализирует все зависимости приложения
func (a *App) initDependencies(ctx context.Context) (*Dependencies, error) {
	db, err := a.initDatabase()
	if err != nil {
		return nil, fmt.Errorf("failed to init database: %w", err)
	}

	repos := a.initRepositories(db)
	tgClient := tgAdapter.NewClient(a.Cfg.Telegram, a.Log)
	if err := a.registerBotCommands(ctx, tgClient); err != nil {
		a.Log.Warn("failed to register bot commands", "error", err)
	}

	externalServices := a.initExternalServices()

	intakeMachine := intake.New(repos.Profile, a.Log)
	pendingRegistry := pending.New(repos.History, a.Log)
	foodUseCase := a.initUseCase(repos, intakeMachine, pendingRegistry, tgClient, externalServices)

	tgService := telegramService.New(foodUseCase, a.Log)

	httpServer := a.initHTTP(db, tgService)
	poller, err := a.initTelegramMode(ctx, tgService, tgClient)
	if err != nil {
		return nil, fmt.Errorf("failed to init telegram mode: %w", err)
	}

	scheduler := a.initJobScheduler(externalServices, intakeMachine, pendingRegistry)

	return &Dependencies{
		DB:              db,
		HTTPServer:      httpServer,
		TelegramService: tgService,
		TelegramClient:  tgClient,
		TelegramPoller:  poller,
		KafkaProducer:   externalServices.Producer,
		Cache:           externalServices.Cache,
		JobScheduler:    scheduler,
	}, nil
}

// repositories содержит инициализированные репозитории
type repositories struct {
	Profile repository.IProfileRepo
	History repository.IHistoryRepo
}

// initRepositories инициализирует репозитории для работы с БД
func (a *App) initRepositories(db *sqldb.DB) *repositories {
	return &repositories{
		Profile: profileRepo.New(db, a.Log),
		History: historyRepo.New(db, a.Log),
	}
}

// externalServices содержит внешние сервисы; всё, кроме Vision и Cache, опционально
type externalServices struct {
	Vision   service.IVisionService
	Alerter  service.IAlerterService
	Cache    cache.Cache
	Memory   *inmemory.Cache // != nil, если кэш в памяти и его надо чистить джобой
	Archive  storage.IPhotoArchive
	Producer *kafkaAdapter.Producer
}

// initExternalServices инициализирует внешние сервисы (Vision, Alerter, Cache, S3, Kafka)
func (a *App) initExternalServices() *externalServices {
	services := &externalServices{
		Vision: visionAdapter.NewClient(a.Cfg.Vision, a.Log),
	}

	// Alerter - опциональный
	if a.Cfg.Alerter.Enabled() {
		alerterClient := alerterAdapter.NewClient(a.Cfg.Alerter, a.Log)
		services.Alerter = alerterService.New(alerterClient, a.Name)
		a.Log.Info("alerter enabled", "chat_id", a.Cfg.Alerter.ChatID)
	}

	// Redis Cache - опциональный, без него кэш в памяти процесса
	if a.Cfg.Redis.Enabled() {
		redisClient, err := a.Cfg.Redis.NewConnection()
		if err != nil {
			a.Log.Warn("failed to init redis cache, falling back to in-memory cache", "error", err)
		} else {
			services.Cache = redisAdapter.NewClient(redisClient, a.Cfg.Redis.KeyPrefix)
			a.Log.Info("redis cache connected successfully")
		}
	}
	if services.Cache == nil {
		services.Memory = inmemory.NewCache()
		services.Cache = services.Memory
	}

	// S3 архив фото - опциональный
	if a.Cfg.S3.Enabled() {
		minioClient, err := a.Cfg.S3.NewClient()
		if err != nil {
			a.Log.Warn("failed to init s3 photo archive, continuing without it", "error", err)
		} else {
			services.Archive = s3Adapter.NewClient(minioClient, a.Cfg.S3.Bucket, a.Log)
			a.Log.Info("s3 photo archive enabled", "bucket", a.Cfg.S3.Bucket)
		}
	}

	// Kafka producer - опциональный
	if a.Cfg.Kafka.Enabled() {
		producer, err := kafkaAdapter.NewProducer(a.Cfg.Kafka, a.Log)
		if err != nil {
			a.Log.Warn("failed to create kafka producer, continuing without events", "error", err)
		} else {
			services.Producer = producer
		}
	}

	return services
}

// initUseCase собирает UseCase бота; опциональные интеграции подключаются только если есть
func (a *App) initUseCase(
	repos *repositories,
	intakeMachine *intake.Machine,
	pendingRegistry *pending.Registry,
	tgClient *tgAdapter.Client,
	externalServices *externalServices,
) *foodUsecase.Service {
	uc := foodUsecase.New(
		repos.Profile,
		repos.History,
		intakeMachine,
		pendingRegistry,
		tgClient,
		externalServices.Vision,
		externalServices.Cache,
		a.Cfg.Food,
		a.Log,
	)

	if externalServices.Archive != nil {
		uc.WithArchive(externalServices.Archive)
	}
	if externalServices.Producer != nil {
		uc.WithEvents(externalServices.Producer)
	}
	if externalServices.Alerter != nil {
		uc.WithAlerter(externalServices.Alerter)
	}

	return uc
}

// initHTTP инициализирует HTTP сервер и контроллеры
func (a *App) initHTTP(db *sqldb.DB, tgService *telegramService.Service) *http.Server {
	controllers := []server.Controller{
		healthcheckController.New(db, a.Name, a.Log),
		telegramController.New(tgService, a.Cfg.Telegram.WebhookSecret, a.Log),
	}

	return server.NewHTTPServer(a.Cfg.Server, a.Log, controllers...)
}

// initTelegramMode инициализирует режим работы Telegram (webhook или polling)
func (a *App) initTelegramMode(
	ctx context.Context,
	tgService *telegramService.Service,
	tgClient *tgAdapter.Client,
) (*tgAdapter.Poller, error) {
	a.Log.Info("telegram configuration",
		"use_webhook", a.Cfg.Telegram.IsWebhookEnabled(),
		"webhook_url", a.Cfg.Telegram.WebhookURL,
	)

	if a.Cfg.Telegram.IsWebhookEnabled() {
		if err := a.setupWebhook(ctx, tgClient); err != nil {
			return nil, fmt.Errorf("failed to setup webhook: %w", err)
		}
		return nil, nil // webhook режим, poller не нужен
	}

	a.Log.Warn("polling mode enabled - this should only be used for local development")
	return tgAdapter.NewPoller(tgClient, a.Cfg.Telegram, tgService.HandleUpdate, a.Log), nil
}

// initJobScheduler инициализирует планировщик джоб
func (a *App) initJobScheduler(
	externalServices *externalServices,
	intakeMachine *intake.Machine,
	pendingRegistry *pending.Registry,
) *jobScheduler.Scheduler {
	scheduler := jobScheduler.NewScheduler(a.Log, externalServices.Alerter)

	// Purger nil-интерфейс, если кэш в Redis
	var purger jobScheduler.Purger
	if externalServices.Memory != nil {
		purger = externalServices.Memory
	}

	sweeper := jobScheduler.NewSessionSweeper(
		intakeMachine,
		pendingRegistry,
		purger,
		a.Cfg.Food.SessionTTL,
		a.Cfg.Food.SweepInterval,
		a.Log,
	)
	scheduler.Register(sweeper)
	a.Log.Info("session sweeper job registered",
		"session_ttl", a.Cfg.Food.SessionTTL,
		"interval", a.Cfg.Food.SweepInterval,
	)

	return scheduler
}

// setupWebhook устанавливает webhook бота
func (a *App) setupWebhook(ctx context.Context, tgClient *tgAdapter.Client) error {
	webhookURL := fmt.Sprintf("%s/webhook/", a.Cfg.Telegram.WebhookURL)

	if err := tgClient.SetWebhook(ctx, webhookURL, a.Cfg.Telegram.WebhookSecret); err != nil {
		a.Log.Error("failed to set webhook", "error", err, "webhook_url", webhookURL)
		return fmt.Errorf("failed to set webhook: %w", err)
	}

	a.Log.Info("webhook set successfully", "webhook_url", webhookURL)
	return nil
}

// registerBotCommands регистрирует команды бота в Telegram
func (a *App) registerBotCommands(ctx context.Context, client *tgAdapter.Client) error {
	commands := []tgAdapter.BotCommand{
		{Command: "start", Description: "Welcome and recent meals"},
		{Command: "history", Description: "Calorie summary and recent records"},
		{Command: "bmr", Description: "Show your profile and BMR"},
		{Command: "setprofile", Description: "Enter sex, age, height and weight"},
		{Command: "clearprofile", Description: "Delete your profile"},
		{Command: "clear", Description: "Delete your meal history"},
		{Command: "clearall", Description: "Delete profile and history"},
	}

	return client.SetMyCommands(ctx, commands)
}

// initDatabase подключается к БД (sqlite или postgres) и применяет миграции
func (a *App) initDatabase() (*sqldb.DB, error) {
	conn, err := a.Cfg.DB.NewConnection()
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	dialect := a.Cfg.DB.Dialect()
	a.Log.Info("database connected successfully", "dialect", dialect)

	if err := sqldb.Migrate(conn, dialect, a.Log); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return sqldb.NewDB(conn, dialect), nil
}
