package texts

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/chungjai123/food-bot/internal/domain"
)

// FailureDetailLimit сколько символов текста ошибки показываем пользователю
const FailureDetailLimit = 180

// FormatNumber число как его печатает пользователю старый бот: 180 -> "180.0", 65.5 -> "65.5"
func FormatNumber(v float64) string {
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if !strings.ContainsAny(s, ".eEnN") {
		s += ".0"
	}
	return s
}

// FormatBMRLine строка BMR для приветствия
func FormatBMRLine(profile *domain.UserProfile) string {
	if profile == nil {
		return BMRLineMissing
	}
	if bmr, ok := domain.ComputeBMR(profile); ok {
		return fmt.Sprintf(bmrLineTemplate, bmr)
	}
	return BMRLineIncomplete
}

// FormatWelcome приветствие для /start и /help
func FormatWelcome(profile *domain.UserProfile) string {
	return fmt.Sprintf(welcomeTemplate, FormatBMRLine(profile))
}

// FormatSexSet подтверждение выбора пола
func FormatSexSet(sex domain.Sex) string {
	return fmt.Sprintf(sexSetTemplate, sex.Title())
}

// FormatProfileSaved итог диалога /setprofile
func FormatProfileSaved(profile *domain.UserProfile, bmr float64) string {
	return fmt.Sprintf(profileSavedTemplate,
		profile.Sex.Title(),
		*profile.Age,
		FormatNumber(*profile.HeightCm),
		FormatNumber(*profile.WeightKg),
		bmr)
}

// FormatBMR ответ на /bmr для полного профиля
func FormatBMR(profile *domain.UserProfile, bmr float64) string {
	return fmt.Sprintf(bmrTemplate,
		profile.Sex.Title(),
		*profile.Age,
		FormatNumber(*profile.HeightCm),
		FormatNumber(*profile.WeightKg),
		bmr)
}

// FormatHistory сводка калорий и последние записи, новые первыми
func FormatHistory(records []domain.HistoryRecord, totalCalories float64) string {
	if len(records) == 0 {
		return HistoryEmpty
	}

	var message strings.Builder
	message.WriteString(fmt.Sprintf(historyHeader, totalCalories, len(records)))
	for _, r := range records {
		message.WriteString(fmt.Sprintf(historyRecord,
			r.CreatedAt.Format(HistoryTimeLayout),
			r.Recognized,
			FormatNumber(r.Protein),
			FormatNumber(r.Carbs),
			FormatNumber(r.Fat),
			FormatNumber(r.Sugar),
			FormatNumber(r.Calories)))
	}
	return message.String()
}

// FormatAnalysis ответ модели с вопросом о сохранении
func FormatAnalysis(rawText string) string {
	return rawText + AskSave
}

// FormatFailure сообщение об ошибке распознавания
func FormatFailure(kind domain.FailureKind, err error) string {
	switch kind {
	case domain.FailureThrottled:
		return FailureThrottled
	case domain.FailureUnavailable:
		return FailureUnavailable
	default:
		return fmt.Sprintf(failureGeneric, truncate(err.Error(), FailureDetailLimit))
	}
}

// truncate первые limit символов (не байт)
func truncate(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit])
}
