package domain

import (
	"time"

	"github.com/google/uuid"
)

// HistoryRecord сохранённый анализ. Только вставка, не обновляется.
type HistoryRecord struct {
	ID         int64      `json:"id" db:"id"`
	UserID     int64      `json:"user_id" db:"user_id"`
	AnalysisID *uuid.UUID `json:"analysis_id,omitempty" db:"analysis_id"`
	CreatedAt  time.Time  `json:"timestamp" db:"timestamp"`
	Recognized string     `json:"recognized" db:"recognized"`
	Calories   float64    `json:"calories" db:"calories"`
	Protein    float64    `json:"protein" db:"protein"`
	Carbs      float64    `json:"carbs" db:"carbs"`
	Fat        float64    `json:"fat" db:"fat"`
	Sugar      float64    `json:"sugar" db:"sugar"`
	Tips       string     `json:"tips" db:"tips"`
	FullText   string     `json:"full_text" db:"full_text"`
}

// NewHistoryRecord запись истории из подтверждённого анализа; время берётся из анализа
func NewHistoryRecord(p *PendingAnalysis) *HistoryRecord {
	id := p.ID
	return &HistoryRecord{
		UserID:     p.UserID,
		AnalysisID: &id,
		CreatedAt:  p.CreatedAt,
		Recognized: p.Facts.Recognized,
		Calories:   p.Facts.Calories,
		Protein:    p.Facts.Protein,
		Carbs:      p.Facts.Carbs,
		Fat:        p.Facts.Fat,
		Sugar:      p.Facts.Sugar,
		Tips:       p.Facts.Tips,
		FullText:   p.RawText,
	}
}
