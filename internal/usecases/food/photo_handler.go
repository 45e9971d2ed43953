package food

import (
	"context"
	"fmt"
	"strconv"

	"github.com/chungjai123/food-bot/internal/domain"
	"github.com/chungjai123/food-bot/internal/usecases/food/texts"
)

const cooldownKeyPrefix = "cooldown:"

// HandlePhoto скачивает самое большое фото, отправляет на распознавание
// и предлагает сохранить результат
func (s *Service) HandlePhoto(ctx context.Context, user *domain.TelegramUser, message *domain.Message) error {
	photo := message.LargestPhoto()
	if photo == nil {
		return nil
	}

	if !s.acquireCooldown(ctx, user.ID) {
		return s.reply(ctx, message, texts.AnalysisCooldown)
	}

	image, err := s.downloadPhoto(ctx, photo.FileID)
	if err != nil {
		s.releaseCooldown(ctx, user.ID)
		return s.analysisFailure(ctx, user, message, err)
	}

	result, err := s.Vision.AnalyzeImage(ctx, image, s.Cfg.Prompt)
	if err != nil {
		s.releaseCooldown(ctx, user.ID)
		return s.analysisFailure(ctx, user, message, err)
	}
	if result == "" {
		s.Log.Warn("empty analysis result", "user_id", user.ID)
		return s.reply(ctx, message, texts.AnalysisEmpty)
	}

	entry := s.Pending.Put(user.ID, message.Chat.ID, result)
	s.archivePhoto(ctx, user.ID, entry, image)

	s.Log.Info("photo analyzed",
		"user_id", user.ID,
		"analysis_id", entry.ID,
		"recognized", entry.Facts.Recognized,
		"calories", entry.Facts.Calories,
	)
	return s.replyWithKeyboard(ctx, message, texts.FormatAnalysis(result), saveKeyboard(user.ID))
}

func (s *Service) downloadPhoto(ctx context.Context, fileID string) ([]byte, error) {
	file, err := s.TelegramClient.GetFile(ctx, fileID)
	if err != nil {
		return nil, &domain.CollaboratorError{Op: "failed to get file", Err: err}
	}
	data, err := s.TelegramClient.DownloadFile(ctx, file.FilePath)
	if err != nil {
		return nil, &domain.CollaboratorError{Op: "failed to download file", Err: err}
	}
	return data, nil
}

// acquireCooldown true если анализ разрешён. Ошибка кэша не блокирует пользователя.
func (s *Service) acquireCooldown(ctx context.Context, userID int64) bool {
	if s.Cache == nil || s.Cfg.AnalysisCooldown <= 0 {
		return true
	}

	ok, err := s.Cache.SetNX(ctx, cooldownKey(userID), "1", s.Cfg.AnalysisCooldown)
	if err != nil {
		s.Log.Warn("failed to check analysis cooldown", "error", err, "user_id", userID)
		return true
	}
	if !ok {
		s.Log.Debug("analysis cooldown active", "user_id", userID)
	}
	return ok
}

// releaseCooldown снимает кулдаун после неудачного анализа, чтобы можно было сразу повторить
func (s *Service) releaseCooldown(ctx context.Context, userID int64) {
	if s.Cache == nil || s.Cfg.AnalysisCooldown <= 0 {
		return
	}
	if err := s.Cache.Delete(ctx, cooldownKey(userID)); err != nil {
		s.Log.Warn("failed to release analysis cooldown", "error", err, "user_id", userID)
	}
}

func cooldownKey(userID int64) string {
	return cooldownKeyPrefix + strconv.FormatInt(userID, 10)
}

// archivePhoto кладёт фото в S3 под id анализа; ошибка не мешает ответу
func (s *Service) archivePhoto(ctx context.Context, userID int64, entry *domain.PendingAnalysis, image []byte) {
	if s.Archive == nil {
		return
	}
	key, err := s.Archive.PutPhoto(ctx, userID, entry.ID, image)
	if err != nil {
		s.Log.Warn("failed to archive photo",
			"error", err,
			"user_id", userID,
			"analysis_id", entry.ID,
		)
		return
	}
	s.Log.Debug("photo archived", "user_id", userID, "analysis_id", entry.ID, "key", key)
}

// analysisFailure сообщает пользователю классифицированную ошибку распознавания
func (s *Service) analysisFailure(ctx context.Context, user *domain.TelegramUser, message *domain.Message, cause error) error {
	kind := ClassifyFailure(cause)
	s.Log.Error("photo analysis failed",
		"error", cause,
		"kind", kind.String(),
		"user_id", user.ID,
	)
	if err := s.reply(ctx, message, texts.FormatFailure(kind, domain.CollaboratorCause(cause))); err != nil {
		return err
	}
	return domain.WrapBusinessError(fmt.Errorf("photo analysis failed: %w", cause))
}
