package domain

import (
	"time"

	"github.com/google/uuid"
)

// UnknownFood значение Recognized, если модель не подписала блюдо
const UnknownFood = "Unknown"

// NutritionFacts структурированный результат разбора ответа модели
type NutritionFacts struct {
	Recognized string  `json:"recognized"`
	Calories   float64 `json:"calories"`
	Protein    float64 `json:"protein"`
	Carbs      float64 `json:"carbs"`
	Fat        float64 `json:"fat"`
	Sugar      float64 `json:"sugar"`
	Tips       string  `json:"tips"`
}

// EmptyNutritionFacts значения по умолчанию
func EmptyNutritionFacts() NutritionFacts {
	return NutritionFacts{Recognized: UnknownFood}
}

// PendingAnalysis результат анализа фото, ожидающий решения пользователя (в памяти, не в БД)
type PendingAnalysis struct {
	ID        uuid.UUID      `json:"id"`
	UserID    int64          `json:"user_id"`
	ChatID    int64          `json:"chat_id"`
	Facts     NutritionFacts `json:"facts"`
	RawText   string         `json:"raw_text"`
	CreatedAt time.Time      `json:"created_at"`
}

type Decision string

const (
	DecisionSave    Decision = "save"
	DecisionDiscard Decision = "discard"
)

func (d Decision) IsValid() bool {
	return d == DecisionSave || d == DecisionDiscard
}

// AnalysisSavedEvent событие о сохранённой записи в истории
type AnalysisSavedEvent struct {
	AnalysisID uuid.UUID      `json:"analysis_id"`
	UserID     int64          `json:"user_id"`
	HistoryID  int64          `json:"history_id"`
	Facts      NutritionFacts `json:"facts"`
	CreatedAt  time.Time      `json:"created_at"`
}
