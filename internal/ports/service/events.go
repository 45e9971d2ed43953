package service

import (
	"context"

	"github.com/chungjai123/food-bot/internal/domain"
)

// IEventPublisher публикация доменных событий во внешнюю шину
type IEventPublisher interface {
	PublishAnalysisSaved(ctx context.Context, event *domain.AnalysisSavedEvent) error
}
