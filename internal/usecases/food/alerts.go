package food

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// sendAlertOrLog отправляет алерт в Telegram канал, не падает если алертер не настроен
func (s *Service) sendAlertOrLog(ctx context.Context, userID int64, analysisID uuid.UUID, cause error) {
	if s.AlerterService == nil {
		return
	}

	var builder strings.Builder
	builder.WriteString("❌ Не удалось сохранить анализ в историю\n\n")
	builder.WriteString(fmt.Sprintf("👤 User ID: %d\n", userID))
	builder.WriteString(fmt.Sprintf("🆔 Analysis ID: %s\n", analysisID))
	builder.WriteString(fmt.Sprintf("💬 Ошибка: %s\n", cause))

	if err := s.AlerterService.SendAlert(ctx, builder.String()); err != nil {
		s.Log.Warn("failed to send alert (non-critical)",
			"error", err,
			"user_id", userID,
			"analysis_id", analysisID,
		)
	}
}
