package food

import (
	"strings"

	"github.com/chungjai123/food-bot/internal/domain"
)

// ClassifyFailure класс ошибки распознавания по тексту ошибки
func ClassifyFailure(err error) domain.FailureKind {
	if err == nil {
		return domain.FailureGeneric
	}
	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "rate limit"), strings.Contains(msg, "quota"):
		return domain.FailureThrottled
	case strings.Contains(msg, "unavailable"), strings.Contains(msg, "bad request"):
		return domain.FailureUnavailable
	default:
		return domain.FailureGeneric
	}
}
