package food

import (
	"context"
	"errors"
	"fmt"

	"github.com/chungjai123/food-bot/internal/domain"
	"github.com/chungjai123/food-bot/internal/ports/persistence"
	"github.com/chungjai123/food-bot/internal/usecases/food/texts"
)

func (s *Service) HandleCommand(ctx context.Context, user *domain.TelegramUser, message *domain.Message, command string) error {
	switch command {
	case "start", "help":
		return s.HandleStart(ctx, user, message)
	case "history":
		return s.HandleHistory(ctx, user, message)
	case "bmr":
		return s.HandleBMR(ctx, user, message)
	case "setprofile":
		return s.HandleSetProfile(ctx, user, message)
	case "clearprofile":
		return s.HandleClearProfile(ctx, user, message)
	case "clear":
		return s.HandleClearHistory(ctx, user, message)
	case "clearall":
		return s.HandleClearAll(ctx, user, message)
	default:
		profile, err := s.loadProfile(ctx, user.ID)
		if err != nil {
			return s.storeFailure(ctx, message, err)
		}
		return s.reply(ctx, message, texts.FormatWelcome(profile))
	}
}

// HandleStart приветствие со строкой BMR и превью истории
func (s *Service) HandleStart(ctx context.Context, user *domain.TelegramUser, message *domain.Message) error {
	profile, err := s.loadProfile(ctx, user.ID)
	if err != nil {
		return s.storeFailure(ctx, message, err)
	}
	if err := s.reply(ctx, message, texts.FormatWelcome(profile)); err != nil {
		return err
	}

	return s.sendHistory(ctx, user, message, s.Cfg.WelcomeHistoryLimit)
}

// HandleHistory обрабатывает команду /history
func (s *Service) HandleHistory(ctx context.Context, user *domain.TelegramUser, message *domain.Message) error {
	return s.sendHistory(ctx, user, message, s.Cfg.HistoryLimit)
}

func (s *Service) sendHistory(ctx context.Context, user *domain.TelegramUser, message *domain.Message, limit int) error {
	records, err := s.HistoryRepo.Recent(ctx, user.ID, limit)
	if err != nil {
		return s.storeFailure(ctx, message, err)
	}

	var total float64
	if len(records) > 0 {
		total, err = s.HistoryRepo.TotalCalories(ctx, user.ID)
		if err != nil {
			return s.storeFailure(ctx, message, err)
		}
	}

	return s.reply(ctx, message, texts.FormatHistory(records, total))
}

// HandleBMR обрабатывает команду /bmr
func (s *Service) HandleBMR(ctx context.Context, user *domain.TelegramUser, message *domain.Message) error {
	profile, err := s.loadProfile(ctx, user.ID)
	if err != nil {
		return s.storeFailure(ctx, message, err)
	}
	if profile == nil {
		return s.reply(ctx, message, texts.BMRNoProfile)
	}

	bmr, ok := domain.ComputeBMR(profile)
	if !ok {
		return s.reply(ctx, message, texts.BMRIncomplete)
	}

	return s.reply(ctx, message, texts.FormatBMR(profile, bmr))
}

// HandleSetProfile начинает диалог заново, прежняя сессия молча затирается
func (s *Service) HandleSetProfile(ctx context.Context, user *domain.TelegramUser, message *domain.Message) error {
	s.Intake.Start(user.ID)
	return s.replyWithKeyboard(ctx, message, texts.SelectSex, sexKeyboard())
}

// HandleClearProfile удаляет профиль и сессию диалога, история остаётся
func (s *Service) HandleClearProfile(ctx context.Context, user *domain.TelegramUser, message *domain.Message) error {
	if err := s.ProfileRepo.Delete(ctx, user.ID); err != nil {
		return s.storeFailure(ctx, message, err)
	}
	s.Intake.Cancel(user.ID)

	s.Log.Info("profile cleared", "user_id", user.ID)
	return s.reply(ctx, message, texts.ProfileCleared)
}

// HandleClearHistory удаляет историю, профиль остаётся
func (s *Service) HandleClearHistory(ctx context.Context, user *domain.TelegramUser, message *domain.Message) error {
	deleted, err := s.HistoryRepo.DeleteByUser(ctx, user.ID)
	if err != nil {
		return s.storeFailure(ctx, message, err)
	}

	s.Log.Info("history cleared", "user_id", user.ID, "deleted", deleted)
	return s.reply(ctx, message, texts.HistoryCleared)
}

// HandleClearAll удаляет профиль и историю одной транзакцией
func (s *Service) HandleClearAll(ctx context.Context, user *domain.TelegramUser, message *domain.Message) error {
	var deleted int64
	err := s.ProfileRepo.WithTransaction(ctx, func(ctx context.Context, tx persistence.Transaction) error {
		if err := s.ProfileRepo.DeleteTx(ctx, tx, user.ID); err != nil {
			return err
		}
		var err error
		deleted, err = s.HistoryRepo.DeleteByUserTx(ctx, tx, user.ID)
		return err
	})
	if err != nil {
		return s.storeFailure(ctx, message, err)
	}

	s.Intake.Cancel(user.ID)
	s.Pending.Drop(user.ID)

	s.Log.Info("profile and history cleared", "user_id", user.ID, "deleted", deleted)
	return s.reply(ctx, message, texts.AllCleared)
}

// loadProfile nil без ошибки, если профиля нет
func (s *Service) loadProfile(ctx context.Context, userID int64) (*domain.UserProfile, error) {
	profile, err := s.ProfileRepo.Get(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrProfileNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return profile, nil
}

// storeFailure ошибка хранилища прерывает только текущий запрос
func (s *Service) storeFailure(ctx context.Context, message *domain.Message, cause error) error {
	s.Log.Error("store failure",
		"error", cause,
		"chat_id", message.Chat.ID,
	)
	if err := s.reply(ctx, message, texts.SomethingWentWrong); err != nil {
		return err
	}
	return domain.WrapBusinessError(fmt.Errorf("store failure: %w", cause))
}
