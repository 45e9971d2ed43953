package service

import (
	"context"
)

// IVisionService распознавание блюда на фото
type IVisionService interface {
	// AnalyzeImage возвращает свободный текст модели; "" без ошибки - модель ничего не ответила
	AnalyzeImage(ctx context.Context, image []byte, prompt string) (string, error)
}
