package food

import (
	"context"
	"errors"
	"strings"

	"github.com/chungjai123/food-bot/internal/domain"
	"github.com/chungjai123/food-bot/internal/usecases/food/texts"
)

// HandleCallback нажатия кнопок выбора пола и сохранения анализа
func (s *Service) HandleCallback(ctx context.Context, user *domain.TelegramUser, callback *domain.CallbackQuery) error {
	data := ""
	if callback.Data != nil {
		data = *callback.Data
	}

	if strings.HasPrefix(data, callbackSexPrefix) {
		return s.handleSexCallback(ctx, user, callback, data)
	}

	decision, ownerID, ok := parseSaveCallback(data)
	if !ok {
		s.Log.Warn("unknown callback data", "user_id", user.ID, "data", data)
		return s.answerCallback(ctx, callback, texts.InvalidAction)
	}
	// кнопка из чужого сообщения ведёт себя как протухшая
	if ownerID != user.ID {
		s.Log.Warn("callback user mismatch", "user_id", user.ID, "owner_id", ownerID)
		return s.answerCallback(ctx, callback, texts.AnalysisSessionExpired)
	}

	return s.handleSaveCallback(ctx, user, callback, decision)
}

func (s *Service) handleSexCallback(ctx context.Context, user *domain.TelegramUser, callback *domain.CallbackQuery, data string) error {
	var sex domain.Sex
	switch data {
	case callbackSexMale:
		sex = domain.SexMale
	case callbackSexFemale:
		sex = domain.SexFemale
	default:
		return s.answerCallback(ctx, callback, texts.InvalidAction)
	}

	if _, err := s.Intake.SubmitSex(ctx, user.ID, sex); err != nil {
		if errors.Is(err, domain.ErrNoSession) {
			return s.answerCallback(ctx, callback, texts.SessionExpired)
		}
		s.Log.Error("failed to submit sex", "error", err, "user_id", user.ID)
		return s.answerCallback(ctx, callback, texts.SomethingWentWrong)
	}

	if err := s.editMessage(ctx, callback.Message, texts.FormatSexSet(sex)); err != nil {
		return err
	}
	return s.answerCallback(ctx, callback, "")
}

func (s *Service) handleSaveCallback(ctx context.Context, user *domain.TelegramUser, callback *domain.CallbackQuery, decision domain.Decision) error {
	entry, record, err := s.Pending.Resolve(ctx, user.ID, decision)
	if err != nil {
		if errors.Is(err, domain.ErrNoPendingEntry) {
			return s.answerCallback(ctx, callback, texts.AnalysisSessionExpired)
		}
		// анализ вернулся в слот, пользователь может нажать ещё раз
		if entry != nil {
			s.sendAlertOrLog(ctx, user.ID, entry.ID, err)
		}
		if answerErr := s.answerCallback(ctx, callback, texts.SaveFailed); answerErr != nil {
			return answerErr
		}
		return domain.WrapBusinessError(err)
	}

	if decision == domain.DecisionDiscard {
		if err := s.editMessage(ctx, callback.Message, entry.RawText+texts.NotSavedSuffix); err != nil {
			return err
		}
		return s.answerCallback(ctx, callback, texts.NotSaved)
	}

	s.publishSaved(ctx, entry, record)
	if err := s.editMessage(ctx, callback.Message, entry.RawText+texts.SavedSuffix); err != nil {
		return err
	}
	return s.answerCallback(ctx, callback, "")
}

// publishSaved событие в Kafka; ошибка публикации не отменяет сохранение
func (s *Service) publishSaved(ctx context.Context, entry *domain.PendingAnalysis, record *domain.HistoryRecord) {
	if s.Events == nil {
		return
	}
	event := &domain.AnalysisSavedEvent{
		AnalysisID: entry.ID,
		UserID:     entry.UserID,
		HistoryID:  record.ID,
		Facts:      entry.Facts,
		CreatedAt:  entry.CreatedAt,
	}
	if err := s.Events.PublishAnalysisSaved(ctx, event); err != nil {
		s.Log.Warn("failed to publish analysis saved event",
			"error", err,
			"user_id", entry.UserID,
			"analysis_id", entry.ID,
		)
	}
}
