package domain

// IntakeStep шаг диалога заполнения профиля
type IntakeStep string

const (
	IntakeStepSex       IntakeStep = "sex"
	IntakeStepAge       IntakeStep = "age"
	IntakeStepHeight    IntakeStep = "height"
	IntakeStepWeight    IntakeStep = "weight"
	IntakeStepCommitted IntakeStep = "committed"
)

func (s IntakeStep) String() string {
	return string(s)
}

// AwaitsText шаг ждёт текстового ввода
func (s IntakeStep) AwaitsText() bool {
	switch s {
	case IntakeStepAge, IntakeStepHeight, IntakeStepWeight:
		return true
	default:
		return false
	}
}

// IntakeDraft данные, собранные до завершения диалога
type IntakeDraft struct {
	Sex      Sex
	Age      *int
	HeightCm *float64
	WeightKg *float64
}

// IntakeResult итог успешного шага
// Profile и BMR заполнены только после шага weight
type IntakeResult struct {
	Next    IntakeStep
	Draft   IntakeDraft
	Profile *UserProfile
	BMR     float64
}
