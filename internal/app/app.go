package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/chungjai123/food-bot/internal/pkg/logger"
)

type App struct {
	Name string
	Cfg  *Config
	Log  *slog.Logger
}

func New(name string, cfg *Config) *App {
	return &App{
		Name: name,
		Cfg:  cfg,
		Log:  logger.New(name, cfg.Log),
	}
}

func (a *App) Run(ctx context.Context) error {
	a.Log.Info("running food bot",
		"db_driver", a.Cfg.DB.Dialect(),
		"webhook", a.Cfg.Telegram.IsWebhookEnabled(),
	)

	deps, err := a.initDependencies(ctx)
	if err != nil {
		return fmt.Errorf("failed to init dependencies: %w", err)
	}

	return a.runServices(ctx, deps)
}
