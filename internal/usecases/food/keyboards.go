package food

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/chungjai123/food-bot/internal/domain"
	"github.com/chungjai123/food-bot/internal/usecases/food/texts"
)

const (
	callbackSexMale   = "profile_sex_m"
	callbackSexFemale = "profile_sex_f"
	callbackSexPrefix = "profile_sex_"
	callbackSaveYes   = "save_yes_"
	callbackSaveNo    = "save_no_"
)

func sexKeyboard() map[string]interface{} {
	return domain.InlineKeyboard([]domain.InlineButton{
		{Text: texts.SexButtonMale, CallbackData: callbackSexMale},
		{Text: texts.SexButtonFemale, CallbackData: callbackSexFemale},
	})
}

func saveKeyboard(userID int64) map[string]interface{} {
	return domain.InlineKeyboard([]domain.InlineButton{
		{Text: texts.SaveButtonYes, CallbackData: fmt.Sprintf("%s%d", callbackSaveYes, userID)},
		{Text: texts.SaveButtonNo, CallbackData: fmt.Sprintf("%s%d", callbackSaveNo, userID)},
	})
}

// parseSaveCallback "save_yes_42" -> save, 42. ok=false для чужих данных.
// uid, который не разобрался, возвращается как 0
func parseSaveCallback(data string) (domain.Decision, int64, bool) {
	var decision domain.Decision
	var rest string
	switch {
	case strings.HasPrefix(data, callbackSaveYes):
		decision, rest = domain.DecisionSave, strings.TrimPrefix(data, callbackSaveYes)
	case strings.HasPrefix(data, callbackSaveNo):
		decision, rest = domain.DecisionDiscard, strings.TrimPrefix(data, callbackSaveNo)
	default:
		return "", 0, false
	}
	userID, err := strconv.ParseInt(rest, 10, 64)
	if err != nil {
		return decision, 0, true
	}
	return decision, userID, true
}
