package domain

import (
	"strings"
	"time"
)

type Sex string

const (
	SexMale   Sex = "male"
	SexFemale Sex = "female"
)

func (s Sex) String() string {
	return string(s)
}

func (s Sex) IsValid() bool {
	switch s {
	case SexMale, SexFemale:
		return true
	default:
		return false
	}
}

// Title пол с заглавной буквы для вывода пользователю
func (s Sex) Title() string {
	if s == "" {
		return ""
	}
	str := string(s)
	return strings.ToUpper(str[:1]) + str[1:]
}

// UserProfile антропометрия пользователя для расчёта BMR
// Пишется целиком по завершении диалога /setprofile. Поля-указатели nil только у строк,
// оставшихся от старых версий схемы.
type UserProfile struct {
	UserID    int64      `json:"user_id" db:"user_id"`
	Sex       Sex        `json:"sex" db:"sex"`
	Age       *int       `json:"age,omitempty" db:"age"`
	HeightCm  *float64   `json:"height_cm,omitempty" db:"height_cm"`
	WeightKg  *float64   `json:"weight_kg,omitempty" db:"weight_kg"`
	UpdatedAt *time.Time `json:"updated_at,omitempty" db:"updated_at"`
}

// NewUserProfile собирает полностью заполненный профиль
func NewUserProfile(userID int64, sex Sex, age int, heightCm, weightKg float64, now time.Time) *UserProfile {
	return &UserProfile{
		UserID:    userID,
		Sex:       sex,
		Age:       &age,
		HeightCm:  &heightCm,
		WeightKg:  &weightKg,
		UpdatedAt: &now,
	}
}

// IsComplete все поля для расчёта BMR на месте
func (p *UserProfile) IsComplete() bool {
	return p != nil && p.Sex.IsValid() && p.Age != nil && p.HeightCm != nil && p.WeightKg != nil
}

// ComputeBMR базальный обмен по формуле Mifflin–St Jeor, ккал/сутки.
// false если профиля нет или он неполный. Округление на стороне вывода.
func ComputeBMR(p *UserProfile) (float64, bool) {
	if !p.IsComplete() {
		return 0, false
	}

	base := 10*(*p.WeightKg) + 6.25*(*p.HeightCm) - 5*float64(*p.Age)

	switch p.Sex {
	case SexMale:
		return base + 5, true
	case SexFemale:
		return base - 161, true
	default:
		return 0, false
	}
}
