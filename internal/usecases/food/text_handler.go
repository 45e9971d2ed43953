package food

import (
	"context"
	"errors"

	"github.com/chungjai123/food-bot/internal/domain"
	"github.com/chungjai123/food-bot/internal/usecases/food/texts"
)

// HandleText ввод возраста, роста и веса; вне диалога подсказка
func (s *Service) HandleText(ctx context.Context, user *domain.TelegramUser, message *domain.Message, text string) error {
	if !s.Intake.AwaitsText(user.ID) {
		return s.reply(ctx, message, texts.TextHint)
	}

	result, err := s.Intake.SubmitText(ctx, user.ID, text)
	if err != nil {
		var validationErr *domain.ValidationError
		switch {
		case errors.As(err, &validationErr):
			return s.reply(ctx, message, invalidInputPrompt(validationErr.Step))
		case errors.Is(err, domain.ErrNoSession):
			// сессию вытеснили между проверкой и вводом
			return s.reply(ctx, message, texts.TextHint)
		default:
			return s.storeFailure(ctx, message, err)
		}
	}

	switch result.Next {
	case domain.IntakeStepHeight:
		return s.reply(ctx, message, texts.AskHeight)
	case domain.IntakeStepWeight:
		return s.reply(ctx, message, texts.AskWeight)
	case domain.IntakeStepCommitted:
		return s.reply(ctx, message, texts.FormatProfileSaved(result.Profile, result.BMR))
	default:
		s.Log.Warn("unexpected intake step after text input",
			"user_id", user.ID,
			"step", result.Next,
		)
		return nil
	}
}

func invalidInputPrompt(step domain.IntakeStep) string {
	switch step {
	case domain.IntakeStepAge:
		return texts.InvalidAge
	case domain.IntakeStepHeight:
		return texts.InvalidHeight
	default:
		return texts.InvalidWeight
	}
}
